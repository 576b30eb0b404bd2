package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// pathClear reports whether every square strictly between from and to is
// empty. The squares must share a row, column or diagonal.
func pathClear(pos *chess.Position, from, to chess.Square) bool {
	dc := sign(to.Col - from.Col)
	dr := sign(to.Row - from.Row)

	for sq := from.Offset(dc, dr); sq != to; sq = sq.Offset(dc, dr) {
		if !sq.Valid() {
			return false
		}
		if !pos.IsEmpty(sq) {
			return false
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns -1, 0 or 1.
func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
