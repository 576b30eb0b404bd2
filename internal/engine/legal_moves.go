package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// classify decides how pc would reach dest, ignoring king safety. It returns
// the piece that would be captured (NoPiece for a quiet move) and whether
// the move is geometrically possible at all.
//
// Precedence: an enemy piece on dest is a capture; an empty dest reached by
// move geometry is a quiet move; a pawn capturing onto the en-passant target
// takes the pawn behind it; anything else is illegal.
func classify(pos *chess.Position, pc chess.Piece, dest chess.Square) (chess.PieceID, bool) {
	if !dest.Valid() || dest == pc.Square {
		return chess.NoPiece, false
	}
	if occ, ok := pos.PieceAt(dest); ok {
		if occ.Colour != pc.Colour && LegalCapture(pos, pc, dest) {
			return occ.ID, true
		}
		return chess.NoPiece, false
	}
	if LegalMove(pos, pc, dest) {
		return chess.NoPiece, true
	}
	if pc.Kind == chess.Pawn {
		if ep, ok := pos.EnPassant(); ok && ep == dest && LegalCapture(pos, pc, dest) {
			victim, ok := pos.PieceAt(dest.Offset(0, -chess.ColourOffset(pc.Colour)))
			if ok && victim.Kind == chess.Pawn && victim.Colour != pc.Colour {
				return victim.ID, true
			}
		}
	}
	return chess.NoPiece, false
}

// legality classifies the move and then trial-applies it to confirm that
// the mover's king is not left attacked. The position is unchanged on return.
func legality(pos *chess.Position, pc chess.Piece, dest chess.Square) (chess.PieceID, bool) {
	captured, ok := classify(pos, pc, dest)
	if !ok {
		return chess.NoPiece, false
	}
	rec := pos.TryApply(pc.ID, dest, captured)
	safe := KingIsSafe(pos, pc.Colour)
	pos.Undo(rec)
	return captured, safe
}

// CanMoveOrCapture reports whether the piece may legally go to dest,
// including the requirement that its own king is not left in check.
func CanMoveOrCapture(pos *chess.Position, id chess.PieceID, dest chess.Square) bool {
	pc, ok := pos.Piece(id)
	if !ok || !pc.Active {
		return false
	}
	_, ok = legality(pos, pc, dest)
	return ok
}

// LegalDestinations returns every square the piece may legally go to, in
// column then row order.
func LegalDestinations(pos *chess.Position, id chess.PieceID) []chess.Square {
	var out []chess.Square
	for col := 1; col <= chess.BoardSize; col++ {
		for row := 1; row <= chess.BoardSize; row++ {
			if sq := chess.Sq(col, row); CanMoveOrCapture(pos, id, sq) {
				out = append(out, sq)
			}
		}
	}
	return out
}

// LegalMoves returns every legal move of the given colour. A pawn reaching
// the back rank yields one move per promotion kind.
func LegalMoves(pos *chess.Position, colour chess.Colour) []Move {
	var out []Move
	for _, pc := range pos.PiecesOf(colour) {
		for _, dest := range LegalDestinations(pos, pc.ID) {
			if pc.Kind == chess.Pawn && dest.Row == chess.PromotionRow(colour) {
				for _, k := range promotionKinds {
					out = append(out, Move{From: pc.Square, To: dest, Promotion: k})
				}
				continue
			}
			out = append(out, Move{From: pc.Square, To: dest})
		}
	}
	return out
}

// HasAnyLegalMove reports whether the colour has at least one legal move.
// It stops at the first one found.
func HasAnyLegalMove(pos *chess.Position, colour chess.Colour) bool {
	// PiecesOf returns a snapshot, so trial moves cannot disturb the scan.
	for _, pc := range pos.PiecesOf(colour) {
		for col := 1; col <= chess.BoardSize; col++ {
			for row := 1; row <= chess.BoardSize; row++ {
				if _, ok := legality(pos, pc, chess.Sq(col, row)); ok {
					return true
				}
			}
		}
	}
	return false
}
