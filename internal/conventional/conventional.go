// Package conventional parses "type(scope)!: subject" commit headers into
// changelog entries.
package conventional

import (
	"regexp"
	"strings"

	"github.com/ariel-frischer/chlog/internal/normalize"
)

var headerPattern = regexp.MustCompile(`^([A-Za-z][\w-]*)(?:\(([^)]*)\))?(!)?:\s*(.*)$`)

// Header is the parsed first line of a commit message.
type Header struct {
	Type     string
	Scope    string
	Subject  string
	Breaking bool
	// Conventional is false when the line does not follow the
	// "type(scope)!: subject" form. Subject then holds the whole line.
	Conventional bool
}

// ParseHeader parses the first line of message.
func ParseHeader(message string) Header {
	line := strings.TrimSpace(FirstLine(message))

	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return Header{Subject: line}
	}

	return Header{
		Type:         m[1],
		Scope:        strings.TrimSpace(m[2]),
		Breaking:     m[3] == "!",
		Subject:      strings.TrimSpace(m[4]),
		Conventional: true,
	}
}

// EntryFromCommit builds the raw changelog entry for a commit. The subject is
// left exactly as parsed, including any PR reference, and may be empty.
func EntryFromCommit(hash, message string) *normalize.Entry {
	h := ParseHeader(message)
	if !h.Conventional {
		return &normalize.Entry{Subject: h.Subject, Hash: hash}
	}

	return &normalize.Entry{
		ChangeType: strings.ToLower(h.Type),
		Type:       h.Type,
		Scope:      h.Scope,
		Subject:    h.Subject,
		Breaking:   h.Breaking,
		Hash:       hash,
	}
}

// FirstLine returns text up to the first line break.
func FirstLine(text string) string {
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		return text[:i]
	}
	return text
}
