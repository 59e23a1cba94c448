package xtail

import "sync"

// DefaultCapacity is the number of entries History retains by default.
const DefaultCapacity = 1000

// history is a bounded, insertion-ordered buffer of entries, oldest first.
// A single mutex guards every read-modify-write of the sequence; appending
// beyond capacity evicts exactly the one oldest entry. Readers only ever
// receive copies, never the internal slice.
type history struct {
	mu      sync.Mutex
	entries []Entry
	cap     int
}

// NewHistory returns a store holding at most capacity entries.
// Capacity <= 0 falls back to DefaultCapacity.
func NewHistory(capacity int) *history {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &history{cap: capacity}
}

// Append adds e at the tail, evicting the oldest entry when full.
func (h *history) Append(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) >= h.cap {
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, e)
}

// Snapshot returns a copy of the current sequence, oldest first. The copy
// is unaffected by later appends.
func (h *history) Snapshot() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len reports the number of retained entries.
func (h *history) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Clear drops all retained entries.
func (h *history) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// Capacity reports the maximum number of retained entries.
func (h *history) Capacity() int { return h.cap }
