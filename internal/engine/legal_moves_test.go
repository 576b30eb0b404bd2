package engine

import (
	"sort"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func TestCanMoveOrCapture(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from string
		to   string
		want bool
	}{
		{"opening pawn", InitialFEN, "e2", "e4", true},
		{"own piece on destination", InitialFEN, "d1", "d2", false},
		{"knight over pawns", InitialFEN, "b1", "c3", true},
		{"pinned knight", "4k3/4r3/8/8/8/8/4N3/4K3 w - - 0 0", "e2", "c3", false},
		{"pinned rook along pin", "4k3/4r3/8/8/8/8/4R3/4K3 w - - 0 0", "e2", "e5", true},
		{"capture the pinner", "4k3/4r3/8/8/8/8/4R3/4K3 w - - 0 0", "e2", "e7", true},
		{"king into check", "4k3/3r4/8/8/8/8/8/4K3 w - - 0 0", "e1", "d2", false},
		{"king captures protected piece", "4k3/8/8/8/8/3r4/3b4/4K3 w - - 0 0", "e1", "d2", false},
		{"king captures loose piece", "4k3/8/8/8/8/8/3r4/4K3 w - - 0 0", "e1", "d2", true},
		{"ignore a check", "4k3/4r3/8/8/8/8/8/R3K3 w - - 0 0", "a1", "a4", false},
		{"block a check", "4k3/4r3/8/8/8/8/R7/4K3 w - - 0 0", "a2", "e2", true},
		{"pawn captures diagonally", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 0", "e4", "d5", true},
		{"pawn cannot capture forward", "4k3/8/8/4p3/4P3/8/8/4K3 w - - 0 0", "e4", "e5", false},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 0", "e5", "d6", true},
		{"en passant wrong square", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 0", "e5", "f6", false},
		{"en passant exposing king", "8/8/8/K2pP2r/8/8/8/4k3 w - d6 0 0", "e5", "d6", false},
		{"castle", "4k3/8/8/8/8/8/8/4K2R w K - 0 0", "e1", "g1", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pos, err := DecodePosition(tt.fen)
			if err != nil {
				t.Fatalf("DecodePosition(%q) error: %v", tt.fen, err)
			}
			before := pos.Clone()
			pc := testutil.MustPieceAt(t, pos, tt.from)

			got := CanMoveOrCapture(pos, pc.ID, testutil.MustSquare(t, tt.to))
			if got != tt.want {
				t.Errorf("CanMoveOrCapture(%s-%s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
			testutil.AssertSamePosition(t, pos, before, "position changed by legality check")
		})
	}
}

func TestCanMoveOrCapture_InactivePiece(t *testing.T) {
	pos := testutil.MustPlace(t, "Ke1 Nb1 ke8")
	knight := testutil.MustPieceAt(t, pos, "b1")
	pos.Remove(knight.ID)

	if CanMoveOrCapture(pos, knight.ID, chess.Sq(3, 3)) {
		t.Error("CanMoveOrCapture() = true for a captured piece")
	}
	if CanMoveOrCapture(pos, chess.PieceID(99), chess.Sq(3, 3)) {
		t.Error("CanMoveOrCapture() = true for an unknown piece")
	}
}

func TestLegalDestinations(t *testing.T) {
	pos := NewInitialPosition()
	knight := testutil.MustPieceAt(t, pos, "g1")

	var got []string
	for _, sq := range LegalDestinations(pos, knight.ID) {
		got = append(got, sq.String())
	}
	testutil.AssertEqual(t, got, []string{"f3", "h3"})
}

func TestLegalMoves_Initial(t *testing.T) {
	pos := NewInitialPosition()
	if got := len(LegalMoves(pos, chess.White)); got != 20 {
		t.Errorf("len(LegalMoves(White)) = %d, want 20", got)
	}
	if got := len(LegalMoves(pos, chess.Black)); got != 20 {
		t.Errorf("len(LegalMoves(Black)) = %d, want 20", got)
	}
}

func TestLegalMoves_Promotion(t *testing.T) {
	pos, err := DecodePosition("4k3/P7/8/8/8/8/8/4K3 w - - 0 0")
	if err != nil {
		t.Fatal(err)
	}

	var promos []string
	for _, m := range LegalMoves(pos, chess.White) {
		if m.From == chess.Sq(1, 7) {
			promos = append(promos, m.String())
		}
	}
	sort.Strings(promos)
	testutil.AssertEqual(t, promos, []string{"a7a8b", "a7a8n", "a7a8q", "a7a8r"})
}

func TestHasAnyLegalMove(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		colour chess.Colour
		want   bool
	}{
		{"initial white", InitialFEN, chess.White, true},
		{"initial black", InitialFEN, chess.Black, true},
		{"king can take the rook", "8/8/8/8/8/k7/8/Kr6 w - - 0 0", chess.White, true},
		{"cornered king", "1r6/8/8/8/8/k7/8/K7 w - - 0 0", chess.White, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pos, err := DecodePosition(tt.fen)
			if err != nil {
				t.Fatalf("DecodePosition(%q) error: %v", tt.fen, err)
			}
			if got := HasAnyLegalMove(pos, tt.colour); got != tt.want {
				t.Errorf("HasAnyLegalMove(%v) = %v, want %v", tt.colour, got, tt.want)
			}
		})
	}
}

// Every piece to every square through the full legality gate must leave the
// position exactly as it was.
func TestLegality_Atomicity(t *testing.T) {
	fens := []string{
		InitialFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 0",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 0",
	}
	for _, fen := range fens {
		fen := fen
		pos, err := DecodePosition(fen)
		if err != nil {
			t.Fatalf("DecodePosition(%q) error: %v", fen, err)
		}
		before := pos.Clone()
		for _, pc := range before.Pieces() {
			for col := 1; col <= chess.BoardSize; col++ {
				for row := 1; row <= chess.BoardSize; row++ {
					CanMoveOrCapture(pos, pc.ID, chess.Sq(col, row))
					if pos.TrialOpen() {
						t.Fatalf("%s: trial left open after %v to %v", fen, pc, chess.Sq(col, row))
					}
				}
			}
		}
		testutil.AssertSamePosition(t, pos, before, fen)
	}
}
