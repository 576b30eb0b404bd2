package engine

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func TestIsSquareAttacked(t *testing.T) {
	tests := []struct {
		name     string
		pieces   string
		square   string
		attacker chess.Colour
		want     bool
	}{
		{"pawn attacks diagonally", "Ke1 Pe4 ke8", "d5", chess.White, true},
		{"pawn does not attack forward", "Ke1 Pe4 ke8", "e5", chess.White, false},
		{"black pawn attacks down", "Ke1 ke8 pd5", "e4", chess.Black, true},
		{"knight", "Ke1 Ng1 ke8", "f3", chess.White, true},
		{"rook blocked", "Ke1 Ra1 Pa3 ke8", "a5", chess.White, false},
		{"queen diagonal", "Ke1 Qb2 ke8", "g7", chess.White, true},
		{"king adjacent", "Ke1 ke8", "d7", chess.Black, true},
		{"wrong colour", "Ke1 Ng1 ke8", "f3", chess.Black, false},
		{"pinned piece still attacks", "Ke1 Nd2 ke8 qe2", "f3", chess.White, true},
		{"attacks own piece square", "Ke1 Rd1 Nd4 ke8", "d4", chess.White, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pos := testutil.MustPlace(t, tt.pieces)
			got := IsSquareAttacked(pos, testutil.MustSquare(t, tt.square), tt.attacker)
			if got != tt.want {
				t.Errorf("IsSquareAttacked(%s, %v) = %v, want %v", tt.square, tt.attacker, got, tt.want)
			}
		})
	}
}

func TestKingIsSafe(t *testing.T) {
	tests := []struct {
		name   string
		pieces string
		colour chess.Colour
		want   bool
	}{
		{"quiet", "Ke1 ke8", chess.White, true},
		{"rook check", "Ke1 ke8 re5", chess.White, false},
		{"blocked rook", "Ke1 Pe2 ke8 re5", chess.White, true},
		{"knight check", "Ke1 ke8 nf3", chess.White, false},
		{"pawn check on black", "Ke1 Pd7 ke8", chess.Black, false},
		{"no king", "Ra1 ke8", chess.White, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pos := testutil.MustPlace(t, tt.pieces)
			if got := KingIsSafe(pos, tt.colour); got != tt.want {
				t.Errorf("KingIsSafe(%v) = %v, want %v", tt.colour, got, tt.want)
			}
			if got := IsInCheck(pos, tt.colour); got == tt.want {
				t.Errorf("IsInCheck(%v) = %v, want %v", tt.colour, got, !tt.want)
			}
		})
	}
}
