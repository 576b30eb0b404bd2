package engine

import (
	"fmt"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func TestHistory_PushPop(t *testing.T) {
	h := NewHistory(3)

	h.Push("a")
	h.Push("b")
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
	top, err := h.Peek()
	testutil.AssertNoError(t, err)
	if top != "b" {
		t.Errorf("Peek() = %q, want %q", top, "b")
	}

	got, err := h.Pop()
	testutil.AssertNoError(t, err)
	if got != "b" {
		t.Errorf("Pop() = %q, want %q", got, "b")
	}
	got, _ = h.Pop()
	if got != "a" {
		t.Errorf("Pop() = %q, want %q", got, "a")
	}

	_, err = h.Pop()
	testutil.AssertErrorIs(t, err, errors.ErrHistoryEmpty)
	_, err = h.Peek()
	testutil.AssertErrorIs(t, err, errors.ErrHistoryEmpty)
}

func TestHistory_EvictsOldest(t *testing.T) {
	h := NewHistory(DefaultHistoryLimit)
	for i := 0; i < 35; i++ {
		h.Push(fmt.Sprintf("s%d", i))
	}

	if h.Len() != 30 {
		t.Fatalf("Len() = %d, want 30", h.Len())
	}
	entries := h.Entries()
	if entries[0] != "s5" || entries[29] != "s34" {
		t.Errorf("Entries() = [%s ... %s], want [s5 ... s34]", entries[0], entries[29])
	}

	entries[0] = "changed"
	if h.Entries()[0] != "s5" {
		t.Error("Entries() returned shared storage")
	}
}

func TestNewHistory_DefaultLimit(t *testing.T) {
	for _, n := range []int{0, -4} {
		if got := NewHistory(n).Limit(); got != DefaultHistoryLimit {
			t.Errorf("NewHistory(%d).Limit() = %d, want %d", n, got, DefaultHistoryLimit)
		}
	}
}
