// Package chess provides core chess types and the authoritative game position.
package chess

import "fmt"

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Kind represents a chess piece type.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumKinds
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// IsMinor reports whether the kind is a bishop or a knight.
func (k Kind) IsMinor() bool {
	return k == Bishop || k == Knight
}

// IsPromotionTarget reports whether a pawn may promote to this kind.
func (k Kind) IsPromotionTarget() bool {
	switch k {
	case Queen, Rook, Bishop, Knight:
		return true
	default:
		return false
	}
}

// KindFromLetter converts a piece letter (either case) to a kind.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'P', 'p':
		return Pawn
	default:
		return NoKind
	}
}

// Constants for board dimensions.
const (
	BoardSize = 8

	ColBase = 'a'
	RowBase = '1'
)

// Square is a (column, row) pair, each in 1..8. Column 1 is the a-file and
// row 1 is White's back rank.
type Square struct {
	Col int
	Row int
}

// Sq is shorthand for Square{Col: col, Row: row}.
func Sq(col, row int) Square {
	return Square{Col: col, Row: row}
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.Col >= 1 && s.Col <= BoardSize && s.Row >= 1 && s.Row <= BoardSize
}

// Offset returns the square dc columns and dr rows away. The result may be
// off the board.
func (s Square) Offset(dc, dr int) Square {
	return Square{Col: s.Col + dc, Row: s.Row + dr}
}

// String returns the algebraic name of the square, e.g. "e3".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte(ColBase + s.Col - 1), byte(RowBase + s.Row - 1)})
}

// ParseSquare parses an algebraic square name such as "e3".
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return Square{}, fmt.Errorf("square %q: want two characters", name)
	}
	s := Square{Col: int(name[0]-ColBase) + 1, Row: int(name[1]-RowBase) + 1}
	if name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' || !s.Valid() {
		return Square{}, fmt.Errorf("square %q: off the board", name)
	}
	return s, nil
}

// HomeRow returns the back rank of the given colour.
func HomeRow(colour Colour) int {
	if colour == White {
		return 1
	}
	return BoardSize
}

// PawnStartRow returns the row on which pawns of the given colour start.
func PawnStartRow(colour Colour) int {
	if colour == White {
		return 2
	}
	return BoardSize - 1
}

// PromotionRow returns the row on which pawns of the given colour promote.
func PromotionRow(colour Colour) int {
	return HomeRow(colour.Opposite())
}

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// CastlingRights holds the four independent castling flags.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// AllCastlingRights is the rights set of the standard starting position.
var AllCastlingRights = CastlingRights{true, true, true, true}

// Kingside reports whether the colour may still castle king-side.
func (c CastlingRights) Kingside(colour Colour) bool {
	if colour == White {
		return c.WhiteKingside
	}
	return c.BlackKingside
}

// Queenside reports whether the colour may still castle queen-side.
func (c CastlingRights) Queenside(colour Colour) bool {
	if colour == White {
		return c.WhiteQueenside
	}
	return c.BlackQueenside
}

// Any reports whether any castling right remains.
func (c CastlingRights) Any() bool {
	return c.WhiteKingside || c.WhiteQueenside || c.BlackKingside || c.BlackQueenside
}

// Status summarises the position for the side to move.
type Status int

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
	InsufficientMaterial
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the game has ended.
func (s Status) IsTerminal() bool {
	return s == Checkmate || s == Stalemate || s == InsufficientMaterial
}

// IsDraw reports whether the status is a drawn result.
func (s Status) IsDraw() bool {
	return s == Stalemate || s == InsufficientMaterial
}
