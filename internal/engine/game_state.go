package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// IsCheckmate returns true if the colour is in check and has no legal move.
func IsCheckmate(pos *chess.Position, colour chess.Colour) bool {
	return IsInCheck(pos, colour) && !HasAnyLegalMove(pos, colour)
}

// IsStalemate returns true if the side to move is not in check but has no
// legal move.
func IsStalemate(pos *chess.Position) bool {
	colour := pos.SideToMove()
	return KingIsSafe(pos, colour) && !HasAnyLegalMove(pos, colour)
}

// HasInsufficientMaterial returns true if at most four pieces remain and
// neither side has more than its king and one bishop or knight. Bishop
// square colours are not considered.
func HasInsufficientMaterial(pos *chess.Position) bool {
	if pos.Count() > 4 {
		return false
	}
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		minors := 0
		for _, pc := range pos.PiecesOf(colour) {
			switch {
			case pc.Kind == chess.King:
			case pc.Kind.IsMinor():
				minors++
			default:
				return false
			}
		}
		if minors > 1 {
			return false
		}
	}
	return true
}

// IsDraw returns true for insufficient material or stalemate of the side to
// move.
func IsDraw(pos *chess.Position) bool {
	return HasInsufficientMaterial(pos) || IsStalemate(pos)
}

// Evaluate reports the status of the position for the side to move.
// Insufficient material takes precedence over every other state.
func Evaluate(pos *chess.Position) chess.Status {
	if HasInsufficientMaterial(pos) {
		return chess.InsufficientMaterial
	}
	colour := pos.SideToMove()
	safe := KingIsSafe(pos, colour)
	if HasAnyLegalMove(pos, colour) {
		if safe {
			return chess.Ongoing
		}
		return chess.Check
	}
	if safe {
		return chess.Stalemate
	}
	return chess.Checkmate
}
