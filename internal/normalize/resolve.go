package normalize

import (
	"strings"
)

// Resolve returns the cleaned subject for entry, trying in order:
//  1. the parsed subject
//  2. the first non-blank line of the commit body, without a list marker
//  3. the text after the first colon of the commit header
//
// Trailing pull request references are stripped from whichever source wins.
// Resolve returns "" when every source is blank; it never fails.
func Resolve(entry *Entry, commit Commit) string {
	if entry != nil {
		if subject := StripPRRef(strings.TrimSpace(entry.Subject)); subject != "" {
			return subject
		}
	}

	body, message := commitText(commit)

	candidate := subjectFromBody(body)
	if candidate == "" {
		candidate = SubjectFromHeader(message)
	}
	return StripPRRef(candidate)
}

// subjectFromBody returns the first non-blank body line with its list marker
// removed.
func subjectFromBody(body string) string {
	for _, line := range splitLines(body) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return StripListMarker(line)
	}
	return ""
}

func commitText(commit Commit) (body, message string) {
	if commit == nil {
		return "", ""
	}
	return commit.Body(), commit.Message()
}
