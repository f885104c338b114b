package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripPRRef(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"trailing reference":           {input: "Add foo (#123)", want: "Add foo"},
		"no space before reference":    {input: "Add foo(#7)", want: "Add foo"},
		"trailing whitespace after ref": {input: "Add foo (#123)  \t", want: "Add foo"},
		"reference only":               {input: "(#42)", want: ""},
		"reference not at end":         {input: "Fix (#12) parser", want: "Fix (#12) parser"},
		"no digits":                    {input: "Add foo (#)", want: "Add foo (#)"},
		"only last reference removed":  {input: "Revert (#1) (#2)", want: "Revert (#1)"},
		"surrounding whitespace":       {input: "  Add foo  ", want: "Add foo"},
		"empty":                        {input: "", want: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripPRRef(tt.input))
		})
	}
}

func TestStripListMarker(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"dash marker":          {input: "- did a thing", want: "did a thing"},
		"star marker":          {input: "* did a thing", want: "did a thing"},
		"several spaces":       {input: "-   did a thing", want: "did a thing"},
		"marker without space": {input: "-did a thing", want: "-did a thing"},
		"double marker":        {input: "- - nested", want: "- nested"},
		"plain line":           {input: "did a thing", want: "did a thing"},
		"non-breaking space":   {input: "-\u00a0did a thing", want: "did a thing"},
		"em space after star":  {input: "*\u2003did a thing", want: "did a thing"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripListMarker(tt.input))
		})
	}
}

func TestSubjectFromHeader(t *testing.T) {
	tests := map[string]struct {
		message string
		want    string
	}{
		"conventional header":       {message: "feat(core)!: improve speed (#9)", want: "improve speed"},
		"no scope":                  {message: "fix: handle nil body", want: "handle nil body"},
		"only first line used":      {message: "fix: first\n\nsecond line", want: "first"},
		"no colon":                  {message: "Merge branch 'main'", want: "Merge branch 'main'"},
		"splits on first colon":     {message: "docs: note: keep this", want: "note: keep this"},
		"colon without whitespace":  {message: "chore:bump deps", want: "bump deps"},
		"header with empty subject": {message: "feat(api):", want: ""},
		"windows line endings":      {message: "fix: crlf\r\nbody", want: "crlf"},
		"lone carriage return":      {message: "fix: cr\rbody", want: "cr"},
		"empty message":             {message: "", want: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, SubjectFromHeader(tt.message))
		})
	}
}
