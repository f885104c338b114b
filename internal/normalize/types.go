package normalize

// Entry is a single changelog bullet as produced by the commit parser.
// Empty strings mean the field was not present in the commit header.
type Entry struct {
	// ChangeType is the normalized commit category (e.g. "feat", "fix").
	ChangeType string
	// Type is the raw type token from the header. Used for dedup when
	// ChangeType is empty.
	Type  string
	Scope string
	// Subject is the short description rendered in the changelog.
	Subject string
	// Message mirrors Subject for renderers that read it instead.
	Message  string
	Breaking bool
	Hash     string
}

// Commit exposes the raw commit text an Entry was parsed from.
// Implementations return an empty string when a value is unset.
type Commit interface {
	Body() string
	Message() string
}

// MessageBuilderHook is invoked by the changelog builder once per commit.
// It returns the entry to render, or false when the entry must be dropped.
type MessageBuilderHook func(entry *Entry, commit Commit) (*Entry, bool)

// Key identifies an entry for deduplication within a run.
type Key struct {
	ChangeType string
	Scope      string
	Subject    string
}

// KeyFor builds the dedup key for entry using the given resolved subject.
// ChangeType is preferred over Type; the subject is compared case-insensitively.
func KeyFor(entry *Entry, subject string) Key {
	changeType := entry.ChangeType
	if changeType == "" {
		changeType = entry.Type
	}
	return Key{
		ChangeType: changeType,
		Scope:      entry.Scope,
		Subject:    normalizeSubjectKey(subject),
	}
}
