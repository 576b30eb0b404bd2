package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// promotionKinds lists the kinds a pawn may become, strongest first.
var promotionKinds = []chess.Kind{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// Move is a move in long algebraic form: source, destination and, for a
// pawn reaching the back rank, the promotion kind.
type Move struct {
	From      chess.Square
	To        chess.Square
	Promotion chess.Kind
}

// String returns the long algebraic text, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != chess.NoKind {
		s += strings.ToLower(string(m.Promotion.Letter()))
	}
	return s
}

// ParseMove parses long algebraic move text such as "e2e4" or "a7a8q".
// The promotion letter may be in either case.
func ParseMove(text string) (Move, error) {
	text = strings.TrimSpace(text)
	if len(text) != 4 && len(text) != 5 {
		return Move{}, errors.Wrapf(errors.ErrInvalidMoveText, "%q", text)
	}
	from, err := chess.ParseSquare(text[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("%v: %w", err, errors.ErrInvalidMoveText)
	}
	to, err := chess.ParseSquare(text[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("%v: %w", err, errors.ErrInvalidMoveText)
	}
	m := Move{From: from, To: to}
	if len(text) == 5 {
		m.Promotion = chess.KindFromLetter(text[4])
		if !m.Promotion.IsPromotionTarget() {
			return Move{}, errors.Wrapf(errors.ErrInvalidPromotion, "%q", text)
		}
	}
	return m, nil
}

// ApplyMove validates and commits a move for the side to move. On any error
// the position is left untouched.
//
// A pawn reaching the back rank needs m.Promotion; without it
// ErrPromotionRequired is returned so the caller can ask and resubmit.
func ApplyMove(pos *chess.Position, m Move) error {
	pc, ok := pos.PieceAt(m.From)
	if !ok {
		return errors.Wrapf(errors.ErrNoPiece, "%s", m.From)
	}
	if pc.Colour != pos.SideToMove() {
		return errors.Wrapf(errors.ErrWrongSide, "%s on %s", pc.Colour, m.From)
	}
	captured, ok := legality(pos, pc, m.To)
	if !ok {
		return errors.Wrapf(errors.ErrIllegalMove, "%s", m)
	}

	promotes := pc.Kind == chess.Pawn && m.To.Row == chess.PromotionRow(pc.Colour)
	switch {
	case promotes && m.Promotion == chess.NoKind:
		return errors.Wrapf(errors.ErrPromotionRequired, "%s", m)
	case promotes && !m.Promotion.IsPromotionTarget():
		return errors.Wrapf(errors.ErrInvalidPromotion, "%s", m)
	case !promotes && m.Promotion != chess.NoKind:
		return errors.Wrapf(errors.ErrInvalidPromotion, "%s does not reach the back rank", m)
	}

	updateCastlingRights(pos, pc, captured)
	updateEnPassant(pos, pc, m.To)

	rec := pos.TryApply(pc.ID, m.To, captured)
	pos.Commit(rec)

	if promotes {
		if err := pos.Promote(pc.ID, m.Promotion); err != nil {
			// Checked above; a failure here means the arena is corrupt.
			panic(err)
		}
	}
	pos.SetSideToMove(pc.Colour.Opposite())
	return nil
}

// updateCastlingRights clears rights lost by this move, judged from the
// squares before it is made.
func updateCastlingRights(pos *chess.Position, pc chess.Piece, captured chess.PieceID) {
	switch pc.Kind {
	case chess.King:
		pos.ClearAllCastling(pc.Colour)
	case chess.Rook:
		clearRookRight(pos, pc)
	}
	if captured == chess.NoPiece {
		return
	}
	if victim, ok := pos.Piece(captured); ok && victim.Kind == chess.Rook {
		clearRookRight(pos, victim)
	}
}

// clearRookRight clears the right tied to a rook standing in its home corner.
func clearRookRight(pos *chess.Position, rook chess.Piece) {
	if rook.Square.Row != chess.HomeRow(rook.Colour) {
		return
	}
	switch rook.Square.Col {
	case chess.BoardSize:
		pos.ClearCastling(rook.Colour, true)
	case 1:
		pos.ClearCastling(rook.Colour, false)
	}
}

// updateEnPassant sets the target to the passed-over square after a pawn
// double step and clears it after any other move.
func updateEnPassant(pos *chess.Position, pc chess.Piece, dest chess.Square) {
	if pc.Kind == chess.Pawn && abs(dest.Row-pc.Square.Row) == 2 {
		pos.SetEnPassant(chess.Sq(dest.Col, (dest.Row+pc.Square.Row)/2))
		return
	}
	pos.ClearEnPassant()
}
