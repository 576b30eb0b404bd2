package testutil

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// MustPlace builds a position from a space separated list of placements such
// as "Ke1 Rh1 ke8 pd7". Uppercase letters are White, lowercase Black. Kings
// and rooks on their home squares and pawns on their start rows are unmoved;
// every other piece is marked as moved. White is to move and no castling
// rights are set.
func MustPlace(t testing.TB, placements string) *chess.Position {
	t.Helper()
	pos := chess.NewPosition()
	for _, f := range strings.Fields(placements) {
		if len(f) != 3 {
			t.Fatalf("placement %q: want letter and square", f)
		}
		kind := chess.KindFromLetter(f[0])
		if kind == chess.NoKind {
			t.Fatalf("placement %q: unknown piece letter", f)
		}
		colour := chess.Black
		if f[0] >= 'A' && f[0] <= 'Z' {
			colour = chess.White
		}
		sq, err := chess.ParseSquare(f[1:])
		if err != nil {
			t.Fatalf("placement %q: %v", f, err)
		}
		if _, err := pos.Add(kind, colour, sq, !startsUnmoved(kind, colour, sq)); err != nil {
			t.Fatalf("placement %q: %v", f, err)
		}
	}
	return pos
}

func startsUnmoved(kind chess.Kind, colour chess.Colour, sq chess.Square) bool {
	switch kind {
	case chess.Pawn:
		return sq.Row == chess.PawnStartRow(colour)
	case chess.King:
		return sq == chess.Sq(5, chess.HomeRow(colour))
	case chess.Rook:
		return sq.Row == chess.HomeRow(colour) && (sq.Col == 1 || sq.Col == chess.BoardSize)
	}
	return false
}

// MustSquare parses an algebraic square name, failing the test on error.
func MustSquare(t testing.TB, name string) chess.Square {
	t.Helper()
	sq, err := chess.ParseSquare(name)
	if err != nil {
		t.Fatalf("MustSquare(%q): %v", name, err)
	}
	return sq
}

// MustPieceAt returns the piece on the named square, failing the test if the
// square is empty.
func MustPieceAt(t testing.TB, pos *chess.Position, name string) chess.Piece {
	t.Helper()
	pc, ok := pos.PieceAt(MustSquare(t, name))
	if !ok {
		t.Fatalf("no piece on %s", name)
	}
	return pc
}

// PositionDiff returns a human readable diff of two positions, including
// unexported state, or "" when they are identical.
func PositionDiff(want, got *chess.Position) string {
	return cmp.Diff(want, got, cmp.AllowUnexported(chess.Position{}))
}

// AssertSamePosition fails if two positions differ in any field.
func AssertSamePosition(t testing.TB, got, want *chess.Position, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := PositionDiff(want, got); diff != "" {
		msg := formatMessage(msgAndArgs...)
		if msg != "" {
			t.Errorf("%s: position mismatch (-want +got):\n%s", msg, diff)
		} else {
			t.Errorf("position mismatch (-want +got):\n%s", diff)
		}
	}
}
