package engine

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func TestLegalMove_Geometry(t *testing.T) {
	tests := []struct {
		name   string
		pieces string
		from   string
		to     string
		want   bool
	}{
		{"pawn single step", "Ke1 Pe2 ke8", "e2", "e3", true},
		{"pawn double step", "Ke1 Pe2 ke8", "e2", "e4", true},
		{"pawn double step blocked", "Ke1 Pe2 Ne3 ke8", "e2", "e4", false},
		{"pawn double step off start", "Ke1 Pe3 ke8", "e3", "e5", false},
		{"pawn backwards", "Ke1 Pe3 ke8", "e3", "e2", false},
		{"pawn onto piece", "Ke1 Pe2 ke8 ne3", "e2", "e3", false},
		{"pawn diagonal is not a move", "Ke1 Pe2 ke8", "e2", "d3", false},
		{"black pawn forward", "Ke1 ke8 pd7", "d7", "d5", true},
		{"black pawn wrong way", "Ke1 ke8 pd6", "d6", "d7", false},
		{"knight", "Ke1 Ng1 ke8", "g1", "f3", true},
		{"knight jumps", "Ke1 Ng1 Pf2 Pg2 Ph2 ke8", "g1", "h3", true},
		{"knight straight", "Ke1 Ng1 ke8", "g1", "g3", false},
		{"bishop diagonal", "Ke1 Bc1 ke8", "c1", "h6", true},
		{"bishop blocked", "Ke1 Bc1 Pd2 ke8", "c1", "h6", false},
		{"bishop straight", "Ke1 Bc1 ke8", "c1", "c4", false},
		{"rook file", "Ke1 Ra1 ke8", "a1", "a7", true},
		{"rook rank", "Ke1 Ra1 ke8", "a1", "d1", true},
		{"rook blocked", "Ke1 Ra1 Pa4 ke8", "a1", "a7", false},
		{"rook diagonal", "Ke1 Ra1 ke8", "a1", "b2", false},
		{"queen diagonal", "Ke1 Qd1 ke8", "d1", "h5", true},
		{"queen file", "Ke1 Qd1 ke8", "d1", "d7", true},
		{"queen knight jump", "Ke1 Qd1 ke8", "d1", "e3", false},
		{"king step", "Ke1 ke8", "e1", "d2", true},
		{"king two squares without rights", "Ke1 Rh1 ke8", "e1", "g1", false},
		{"same square", "Ke1 ke8", "e1", "e1", false},
		{"off board", "Ke1 Ra1 ke8", "a1", "a0", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pos := testutil.MustPlace(t, tt.pieces)
			pc := testutil.MustPieceAt(t, pos, tt.from)
			to, _ := chess.ParseSquare(tt.to)
			if got := LegalMove(pos, pc, to); got != tt.want {
				t.Errorf("LegalMove(%s %s-%s) = %v, want %v", pc.Kind, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestLegalCapture_Geometry(t *testing.T) {
	tests := []struct {
		name   string
		pieces string
		from   string
		to     string
		want   bool
	}{
		{"white pawn diagonal", "Ke1 Pe4 ke8", "e4", "d5", true},
		{"white pawn diagonal backwards", "Ke1 Pe4 ke8", "e4", "d3", false},
		{"pawn forward is not a capture", "Ke1 Pe4 ke8", "e4", "e5", false},
		{"black pawn diagonal", "Ke1 ke8 pe5", "e5", "f4", true},
		{"knight", "Ke1 Nb1 ke8", "b1", "c3", true},
		{"bishop through piece", "Ke1 Bb2 Pc3 ke8", "b2", "d4", false},
		{"rook adjacent", "Ke1 Rd4 ke8", "d4", "d5", true},
		{"queen far", "Ke1 Qa1 ke8", "a1", "h8", true},
		{"king adjacent", "Ke1 ke8", "e1", "f2", true},
		{"king two squares", "Ke1 ke8", "e1", "e3", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pos := testutil.MustPlace(t, tt.pieces)
			pc := testutil.MustPieceAt(t, pos, tt.from)
			to := testutil.MustSquare(t, tt.to)
			if got := LegalCapture(pos, pc, to); got != tt.want {
				t.Errorf("LegalCapture(%s %s-%s) = %v, want %v", pc.Kind, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCastlingPreconditions(t *testing.T) {
	tests := []struct {
		name   string
		pieces string
		rights chess.CastlingRights
		to     string
		want   bool
	}{
		{"king side", "Ke1 Rh1 ke8", chess.CastlingRights{WhiteKingside: true}, "g1", true},
		{"queen side", "Ke1 Ra1 ke8", chess.CastlingRights{WhiteQueenside: true}, "c1", true},
		{"right cleared", "Ke1 Rh1 ke8", chess.CastlingRights{WhiteQueenside: true}, "g1", false},
		{"piece between", "Ke1 Ng1 Rh1 ke8", chess.CastlingRights{WhiteKingside: true}, "g1", false},
		{"b-file piece blocks queen side", "Ke1 Nb1 Ra1 ke8", chess.CastlingRights{WhiteQueenside: true}, "c1", false},
		{"no rook", "Ke1 ke8", chess.CastlingRights{WhiteKingside: true}, "g1", false},
		{"king in check", "Ke1 Rh1 ke8 re5", chess.CastlingRights{WhiteKingside: true}, "g1", false},
		{"transit attacked", "Ke1 Rh1 ke8 rf5", chess.CastlingRights{WhiteKingside: true}, "g1", false},
		{"destination attacked", "Ke1 Rh1 ke8 rg5", chess.CastlingRights{WhiteKingside: true}, "g1", false},
		{"rook attacked is fine", "Ke1 Rh1 ke8 rh5", chess.CastlingRights{WhiteKingside: true}, "g1", true},
		{"b1 attacked is fine", "Ke1 Ra1 ke8 rb5", chess.CastlingRights{WhiteQueenside: true}, "c1", true},
		{"black king side", "Ke1 ke8 rh8", chess.CastlingRights{BlackKingside: true}, "g8", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pos := testutil.MustPlace(t, tt.pieces)
			pos.RestoreCastling(tt.rights)
			from := "e1"
			if tt.to[1] == '8' {
				from = "e8"
			}
			king := testutil.MustPieceAt(t, pos, from)
			if got := LegalMove(pos, king, testutil.MustSquare(t, tt.to)); got != tt.want {
				t.Errorf("LegalMove(castle %s-%s) = %v, want %v", from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCastling_MovedPieces(t *testing.T) {
	pos := chess.NewPosition()
	pos.RestoreCastling(chess.CastlingRights{WhiteKingside: true})
	if _, err := pos.Add(chess.King, chess.White, chess.Sq(5, 1), true); err != nil {
		t.Fatal(err)
	}
	if _, err := pos.Add(chess.Rook, chess.White, chess.Sq(8, 1), false); err != nil {
		t.Fatal(err)
	}
	king := testutil.MustPieceAt(t, pos, "e1")
	if LegalMove(pos, king, chess.Sq(7, 1)) {
		t.Error("moved king may castle")
	}

	pos2 := chess.NewPosition()
	pos2.RestoreCastling(chess.CastlingRights{WhiteKingside: true})
	if _, err := pos2.Add(chess.King, chess.White, chess.Sq(5, 1), false); err != nil {
		t.Fatal(err)
	}
	if _, err := pos2.Add(chess.Rook, chess.White, chess.Sq(8, 1), true); err != nil {
		t.Fatal(err)
	}
	king = testutil.MustPieceAt(t, pos2, "e1")
	if LegalMove(pos2, king, chess.Sq(7, 1)) {
		t.Error("king may castle with a moved rook")
	}
}

func TestPathClear(t *testing.T) {
	pos := testutil.MustPlace(t, "Ke1 Ra1 Pd4 ke8")

	tests := []struct {
		from, to string
		want     bool
	}{
		{"a1", "a8", true},
		{"a1", "e1", true}, // ends are excluded
		{"a1", "h8", false},
		{"c3", "e5", false},
		{"d1", "d8", false},
		{"a1", "b2", true},
	}
	for _, tt := range tests {
		tt := tt
		got := pathClear(pos, testutil.MustSquare(t, tt.from), testutil.MustSquare(t, tt.to))
		if got != tt.want {
			t.Errorf("pathClear(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
