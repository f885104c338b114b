package normalize

import "sync"

// Session holds the dedup state of one changelog generation run.
// The zero value is not usable; call NewSession.
type Session struct {
	mu   sync.Mutex
	seen map[Key]struct{}
}

// NewSession returns a Session with an empty seen set.
func NewSession() *Session {
	return &Session{seen: make(map[Key]struct{})}
}

// Admit writes subject into entry and decides whether it should be rendered.
// Message is only overwritten when subject is non-empty. Empty subjects and
// keys already admitted in this session are dropped; a dropped entry never
// changes the seen set.
func (s *Session) Admit(entry *Entry, subject string) (*Entry, bool) {
	if entry == nil {
		return nil, false
	}

	entry.Subject = subject
	if subject == "" {
		return nil, false
	}
	entry.Message = subject

	key := KeyFor(entry, subject)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.seen[key]; dup {
		return nil, false
	}
	s.seen[key] = struct{}{}
	return entry, true
}

// Process resolves the entry subject from entry and commit, then runs it
// through Admit.
func (s *Session) Process(entry *Entry, commit Commit) (*Entry, bool) {
	if entry == nil {
		return nil, false
	}
	return s.Admit(entry, Resolve(entry, commit))
}

// Hook returns Process as a MessageBuilderHook for injection into a builder.
func (s *Session) Hook() MessageBuilderHook {
	return s.Process
}

// Seen reports whether key was admitted during this session.
func (s *Session) Seen(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[key]
	return ok
}

// Len returns the number of admitted keys.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
