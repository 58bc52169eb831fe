package conversation

import "sync"

// Store is an append-only in-memory transcript. It is safe for
// concurrent use; the TUI appends from the update loop while the
// client reads the window from a worker goroutine.
type Store struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewStore returns an empty transcript.
func NewStore() *Store {
	return &Store{}
}

// Append adds a turn to the end of the transcript.
func (s *Store) Append(t Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, t)
}

// RecentWindow returns up to n of the most recent non-system turns in
// chronological order. System turns never count against n and are never
// returned. The result is a copy; mutating it does not affect the store.
func (s *Store) RecentWindow(n int) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return nil
	}

	window := make([]Turn, 0, n)
	for i := len(s.turns) - 1; i >= 0 && len(window) < n; i-- {
		if s.turns[i].Role == RoleSystem {
			continue
		}
		window = append(window, s.turns[i])
	}

	// Collected newest-first, flip back to chronological.
	for i, j := 0, len(window)-1; i < j; i, j = i+1, j-1 {
		window[i], window[j] = window[j], window[i]
	}

	return window
}

// Turns returns a copy of the full transcript in chronological order.
func (s *Store) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len reports the number of turns in the transcript, system turns included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.turns)
}
