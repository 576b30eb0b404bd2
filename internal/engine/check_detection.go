package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// IsSquareAttacked reports whether any active piece of the attacker colour
// could capture on sq. Only capture geometry is consulted, so pinned pieces
// still attack and castling never recurses into itself.
func IsSquareAttacked(pos *chess.Position, sq chess.Square, attacker chess.Colour) bool {
	for _, pc := range pos.PiecesOf(attacker) {
		if LegalCapture(pos, pc, sq) {
			return true
		}
	}
	return false
}

// KingIsSafe reports whether the king of the given colour is not attacked.
// A position without that king is treated as safe.
func KingIsSafe(pos *chess.Position, colour chess.Colour) bool {
	king, ok := pos.King(colour)
	if !ok {
		return true
	}
	return !IsSquareAttacked(pos, king.Square, colour.Opposite())
}

// IsInCheck returns true if the given colour's king is in check.
func IsInCheck(pos *chess.Position, colour chess.Colour) bool {
	return !KingIsSafe(pos, colour)
}
