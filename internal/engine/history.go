package engine

import "github.com/lgbarn/chessrules-go/internal/errors"

// DefaultHistoryLimit is the number of snapshots kept when no limit is given.
const DefaultHistoryLimit = 30

// History is a bounded stack of serialized positions. When full, pushing
// evicts the oldest entry.
type History struct {
	entries []string
	limit   int
}

// NewHistory creates a history holding at most limit entries. A limit below
// one selects DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	return &History{entries: make([]string, 0, limit), limit: limit}
}

// Push records a snapshot, evicting the oldest one if the history is full.
func (h *History) Push(fen string) {
	if len(h.entries) == h.limit {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, fen)
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (string, error) {
	fen, err := h.Peek()
	if err != nil {
		return "", err
	}
	h.entries = h.entries[:len(h.entries)-1]
	return fen, nil
}

// Peek returns the most recent snapshot without removing it.
func (h *History) Peek() (string, error) {
	if len(h.entries) == 0 {
		return "", errors.ErrHistoryEmpty
	}
	return h.entries[len(h.entries)-1], nil
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Limit returns the capacity of the history.
func (h *History) Limit() int {
	return h.limit
}

// Entries returns a copy of the snapshots, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
