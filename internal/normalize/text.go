package normalize

import (
	"regexp"
	"strings"
)

var (
	// prRefPattern matches a trailing pull request reference like " (#123)".
	prRefPattern = regexp.MustCompile(`(?i)\s*\(#\d+\)\s*$`)
	// listMarkerPattern matches a leading "- " or "* " bullet. \p{Zs} covers
	// non-breaking and other Unicode spaces that \s does not.
	listMarkerPattern = regexp.MustCompile(`^[-*][\s\p{Zs}]+`)
	// lineBreakPattern matches every line boundary, including a lone "\r".
	lineBreakPattern = regexp.MustCompile(`\r\n|[\n\v\f\r\x{1c}-\x{1e}\x{85}\x{2028}\x{2029}]`)
	// headerSplitPattern separates "type(scope)!" from the header subject.
	headerSplitPattern = regexp.MustCompile(`:\s*`)
)

// StripPRRef removes a trailing "(#123)" pull request reference and
// surrounding whitespace.
func StripPRRef(text string) string {
	return strings.TrimSpace(prRefPattern.ReplaceAllString(text, ""))
}

// StripListMarker removes a single leading "-" or "*" list marker followed by
// whitespace.
func StripListMarker(line string) string {
	return listMarkerPattern.ReplaceAllString(line, "")
}

// SubjectFromHeader extracts the subject from the first line of a raw commit
// message. Text before the first colon is treated as the conventional
// "type(scope)!" prefix; headers without a colon are returned whole.
func SubjectFromHeader(message string) string {
	if message == "" {
		return ""
	}

	firstLine := strings.TrimSpace(firstLine(message))
	parts := headerSplitPattern.Split(firstLine, 2)

	candidate := firstLine
	if len(parts) == 2 {
		candidate = strings.TrimSpace(parts[1])
	}
	return StripPRRef(candidate)
}

// firstLine returns text up to the first line break.
func firstLine(text string) string {
	if loc := lineBreakPattern.FindStringIndex(text); loc != nil {
		return text[:loc[0]]
	}
	return text
}

// splitLines splits text on any line boundary.
func splitLines(text string) []string {
	return lineBreakPattern.Split(text, -1)
}

func normalizeSubjectKey(subject string) string {
	return strings.ToLower(strings.TrimSpace(subject))
}
