// Package history records the most recent puzzle attempts.
package history

// Capacity is the number of attempts remembered.
const Capacity = 3

// Entry is one finished attempt.
type Entry struct {
	Formula string
	Correct bool
}

// History is a bounded, oldest-first list of attempts.
type History struct {
	entries []Entry
	limit   int
}

// New creates an empty history holding at most Capacity entries
func New() *History {
	return NewWithLimit(Capacity)
}

// NewWithLimit creates an empty history holding at most limit entries
func NewWithLimit(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{
		entries: make([]Entry, 0, limit),
		limit:   limit,
	}
}

// Add appends an attempt, evicting the oldest entries once the limit is reached
func (h *History) Add(formula string, correct bool) {
	h.entries = append(h.entries, Entry{Formula: formula, Correct: correct})

	if len(h.entries) > h.limit {
		h.entries = append([]Entry(nil), h.entries[len(h.entries)-h.limit:]...)
	}
}

// Entries returns a copy of the attempts, oldest first
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of recorded attempts
func (h *History) Len() int {
	return len(h.entries)
}

// Clear forgets all attempts
func (h *History) Clear() {
	h.entries = h.entries[:0]
}
