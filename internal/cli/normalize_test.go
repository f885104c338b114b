package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCmd(t *testing.T) {
	tests := map[string]struct {
		args     []string
		stdin    string
		want     string
		wantCode int
	}{
		"strips PR reference": {
			args: []string{"normalize", "feat(core)!: improve speed (#9)"},
			want: "improve speed\n",
		},
		"body fallback": {
			args: []string{"normalize", "fix: (#20)\n\n- restore retry loop"},
			want: "restore retry loop\n",
		},
		"non-conventional header": {
			args: []string{"normalize", "Update dependencies (#4)"},
			want: "Update dependencies\n",
		},
		"from stdin": {
			args:  []string{"normalize"},
			stdin: "docs: explain flags\n\nlonger body\n",
			want:  "explain flags\n",
		},
		"dropped": {
			args:     []string{"normalize", "chore: (#1)"},
			wantCode: ExitValidationFailed,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			chdirProject(t)

			stdout, stderr, err := runCLI(t, tt.stdin, tt.args...)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, ExitCode(err))
				assert.Contains(t, stderr, "dropped")
				assert.Empty(t, stdout)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestNormalizeCmd_EmptyStdin(t *testing.T) {
	chdirProject(t)

	_, _, err := runCLI(t, "  \n", "normalize")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no commit message given")
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}
