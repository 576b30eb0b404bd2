package engine

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

func mustDecode(t *testing.T, fen string) *chess.Position {
	t.Helper()
	pos, err := DecodePosition(fen)
	if err != nil {
		t.Fatalf("DecodePosition(%q) error: %v", fen, err)
	}
	return pos
}

func TestFoolsMate(t *testing.T) {
	pos := NewInitialPosition()
	for _, text := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, err := ParseMove(text)
		if err != nil {
			t.Fatalf("ParseMove(%q) error: %v", text, err)
		}
		if err := ApplyMove(pos, m); err != nil {
			t.Fatalf("ApplyMove(%s) error: %v", text, err)
		}
	}

	if !IsCheckmate(pos, chess.White) {
		t.Error("IsCheckmate(White) = false after fool's mate")
	}
	if IsCheckmate(pos, chess.Black) {
		t.Error("IsCheckmate(Black) = true after fool's mate")
	}
	if IsDraw(pos) {
		t.Error("IsDraw() = true after fool's mate")
	}
	if got := Evaluate(pos); got != chess.Checkmate {
		t.Errorf("Evaluate() = %v, want checkmate", got)
	}
}

func TestHasInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"K vs K", "4k3/8/8/8/8/8/8/4K3 w - - 0 0", true},
		{"K+B vs K", "4k3/8/8/8/8/8/8/4KB2 w - - 0 0", true},
		{"K+N vs K", "4k3/8/8/8/8/8/8/4KN2 w - - 0 0", true},
		{"K vs K+b", "4k1b1/8/8/8/8/8/8/4K3 w - - 0 0", true},
		{"K vs K+n", "4k1n1/8/8/8/8/8/8/4K3 w - - 0 0", true},
		{"K+B vs K+B", "4kb2/8/8/8/8/8/8/2B1K3 w - - 0 0", true},
		{"K+N vs K+B", "4kb2/8/8/8/8/8/8/2N1K3 w - - 0 0", true},
		{"K+R vs K", "4k3/8/8/8/8/8/8/4KR2 w - - 0 0", false},
		{"K+Q vs K", "4k3/8/8/8/8/8/8/4KQ2 w - - 0 0", false},
		{"K+P vs K", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 0", false},
		{"K+B+B vs K", "4k3/8/8/8/8/8/8/2B1KB2 w - - 0 0", false},
		{"K+N+N vs K", "4k3/8/8/8/8/8/8/1N2K1N1 w - - 0 0", false},
		{"standard starting position", InitialFEN, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pos := mustDecode(t, tt.fen)
			if got := HasInsufficientMaterial(pos); got != tt.want {
				t.Errorf("HasInsufficientMaterial() = %v, want %v", got, tt.want)
			}
			if got := IsDraw(pos); got != tt.want {
				t.Errorf("IsDraw() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStalemate(t *testing.T) {
	// White king a1, black king a3, black rook b8: no check, no move.
	pos := mustDecode(t, "1r6/8/8/8/8/k7/8/K7 w - - 0 0")

	if !KingIsSafe(pos, chess.White) {
		t.Fatal("KingIsSafe(White) = false, want true")
	}
	if !IsStalemate(pos) {
		t.Error("IsStalemate() = false, want true")
	}
	if !IsDraw(pos) {
		t.Error("IsDraw() = false, want true")
	}
	if IsCheckmate(pos, chess.White) {
		t.Error("IsCheckmate(White) = true for stalemate")
	}
	if got := Evaluate(pos); got != chess.Stalemate {
		t.Errorf("Evaluate() = %v, want stalemate", got)
	}
}

// Draw is judged for the side to move only.
func TestStalemate_SideToMove(t *testing.T) {
	pos := mustDecode(t, "1r6/8/8/8/8/k7/8/K7 b - - 0 0")
	if IsStalemate(pos) {
		t.Error("IsStalemate() = true with the free side to move")
	}
	if got := Evaluate(pos); got != chess.Ongoing {
		t.Errorf("Evaluate() = %v, want ongoing", got)
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want chess.Status
	}{
		{"initial", InitialFEN, chess.Ongoing},
		{"check", "4k3/8/8/8/8/8/8/r3K3 w - - 0 0", chess.Check},
		{"back rank mate", "6k1/5ppp/8/8/8/8/8/R3K3 b - - 0 0", chess.Ongoing},
		{"back rank mated", "R5k1/5ppp/8/8/8/8/8/4K3 b - - 0 0", chess.Checkmate},
		{"bare kings", "4k3/8/8/8/8/8/8/4K3 b - - 0 0", chess.InsufficientMaterial},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Evaluate(mustDecode(t, tt.fen)); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}
