// Package engine implements the chess rules: per-kind move geometry, king
// safety, terminal states, move commit, position serialization and history.
package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// rule describes the geometry of one piece kind. Neither method considers
// whether the mover's own king is left in check.
type rule interface {
	// move reports whether the piece may move to an empty dest.
	move(pos *chess.Position, pc chess.Piece, dest chess.Square) bool
	// capture reports whether the piece attacks dest.
	capture(pos *chess.Position, pc chess.Piece, dest chess.Square) bool
}

var rules = [chess.NumKinds]rule{
	chess.Pawn:   pawnRule{},
	chess.Knight: knightRule{},
	chess.Bishop: bishopRule{},
	chess.Rook:   rookRule{},
	chess.Queen:  queenRule{},
	chess.King:   kingRule{},
}

func ruleFor(k chess.Kind) rule {
	if k <= chess.NoKind || k >= chess.NumKinds {
		return nil
	}
	return rules[k]
}

// LegalMove reports whether pc may move, without capturing, to dest by the
// geometry of its kind. King safety is not considered, except for the
// squares a castling king passes over.
func LegalMove(pos *chess.Position, pc chess.Piece, dest chess.Square) bool {
	r := ruleFor(pc.Kind)
	if r == nil || !dest.Valid() || dest == pc.Square {
		return false
	}
	return r.move(pos, pc, dest)
}

// LegalCapture reports whether pc attacks dest by the geometry of its kind.
// The square does not have to be occupied.
func LegalCapture(pos *chess.Position, pc chess.Piece, dest chess.Square) bool {
	r := ruleFor(pc.Kind)
	if r == nil || !dest.Valid() || dest == pc.Square {
		return false
	}
	return r.capture(pos, pc, dest)
}

type pawnRule struct{}

func (pawnRule) move(pos *chess.Position, pc chess.Piece, dest chess.Square) bool {
	dir := chess.ColourOffset(pc.Colour)
	dc, dr := dest.Col-pc.Square.Col, dest.Row-pc.Square.Row
	if dc != 0 || !pos.IsEmpty(dest) {
		return false
	}
	switch dr {
	case dir:
		return true
	case 2 * dir:
		return pc.Square.Row == chess.PawnStartRow(pc.Colour) && pos.IsEmpty(pc.Square.Offset(0, dir))
	}
	return false
}

func (pawnRule) capture(_ *chess.Position, pc chess.Piece, dest chess.Square) bool {
	dc, dr := dest.Col-pc.Square.Col, dest.Row-pc.Square.Row
	return abs(dc) == 1 && dr == chess.ColourOffset(pc.Colour)
}

type knightRule struct{}

func (knightRule) move(pos *chess.Position, pc chess.Piece, dest chess.Square) bool {
	return knightRule{}.capture(pos, pc, dest)
}

func (knightRule) capture(_ *chess.Position, pc chess.Piece, dest chess.Square) bool {
	dc, dr := dest.Col-pc.Square.Col, dest.Row-pc.Square.Row
	return abs(dc*dr) == 2
}

type bishopRule struct{}

func (bishopRule) move(pos *chess.Position, pc chess.Piece, dest chess.Square) bool {
	return bishopRule{}.capture(pos, pc, dest)
}

func (bishopRule) capture(pos *chess.Position, pc chess.Piece, dest chess.Square) bool {
	dc, dr := dest.Col-pc.Square.Col, dest.Row-pc.Square.Row
	return dc != 0 && abs(dc) == abs(dr) && pathClear(pos, pc.Square, dest)
}

type rookRule struct{}

func (rookRule) move(pos *chess.Position, pc chess.Piece, dest chess.Square) bool {
	return rookRule{}.capture(pos, pc, dest)
}

func (rookRule) capture(pos *chess.Position, pc chess.Piece, dest chess.Square) bool {
	dc, dr := dest.Col-pc.Square.Col, dest.Row-pc.Square.Row
	return (dc == 0) != (dr == 0) && pathClear(pos, pc.Square, dest)
}

type queenRule struct{}

func (queenRule) move(pos *chess.Position, pc chess.Piece, dest chess.Square) bool {
	return queenRule{}.capture(pos, pc, dest)
}

func (queenRule) capture(pos *chess.Position, pc chess.Piece, dest chess.Square) bool {
	return bishopRule{}.capture(pos, pc, dest) || rookRule{}.capture(pos, pc, dest)
}

type kingRule struct{}

func (kingRule) move(pos *chess.Position, pc chess.Piece, dest chess.Square) bool {
	return kingRule{}.capture(pos, pc, dest) || canCastle(pos, pc, dest)
}

func (kingRule) capture(_ *chess.Position, pc chess.Piece, dest chess.Square) bool {
	dc, dr := dest.Col-pc.Square.Col, dest.Row-pc.Square.Row
	return max(abs(dc), abs(dr)) == 1
}

// canCastle reports whether a king move two columns along its row is a
// castling move: king and rook unmoved, the matching right still held, every
// square between them empty, and the king's start, transit and destination
// squares not attacked.
func canCastle(pos *chess.Position, king chess.Piece, dest chess.Square) bool {
	dc := dest.Col - king.Square.Col
	if dest.Row != king.Square.Row || abs(dc) != 2 || king.HasMoved {
		return false
	}

	kingside := dc > 0
	rights := pos.Castling()
	rookCol := 1
	if kingside {
		if !rights.Kingside(king.Colour) {
			return false
		}
		rookCol = chess.BoardSize
	} else if !rights.Queenside(king.Colour) {
		return false
	}

	rook, ok := pos.PieceAt(chess.Sq(rookCol, king.Square.Row))
	if !ok || rook.Kind != chess.Rook || rook.Colour != king.Colour || rook.HasMoved {
		return false
	}
	if !pathClear(pos, king.Square, rook.Square) {
		return false
	}

	step := sign(dc)
	enemy := king.Colour.Opposite()
	for sq := king.Square; ; sq = sq.Offset(step, 0) {
		if IsSquareAttacked(pos, sq, enemy) {
			return false
		}
		if sq == dest {
			break
		}
	}
	return true
}
