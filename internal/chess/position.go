package chess

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// PieceID identifies a piece within a Position's arena. Identifiers are
// stable for the lifetime of the Position, including while a piece is
// captured.
type PieceID int

// NoPiece is the PieceID used where no piece is referenced.
const NoPiece PieceID = -1

// Piece is a single chess piece owned by a Position.
type Piece struct {
	ID       PieceID
	Kind     Kind
	Colour   Colour
	Square   Square
	HasMoved bool
	Active   bool
}

// String returns a short description such as "White Knight g1".
func (p Piece) String() string {
	return fmt.Sprintf("%s %s %s", p.Colour, p.Kind, p.Square)
}

// Letter returns the serialization letter: uppercase for White.
func (p Piece) Letter() byte {
	l := p.Kind.Letter()
	if p.Colour == Black {
		l += 'a' - 'A'
	}
	return l
}

// Position is the authoritative game state: every piece ever placed (the
// arena), which of them are active, the side to move, castling rights and
// the en-passant target.
type Position struct {
	pieces []Piece

	// grid holds PieceID+1 for the active piece on each square, 0 if empty.
	grid [BoardSize][BoardSize]int

	toMove    Colour
	castling  CastlingRights
	enPassant Square
	hasEP     bool

	trialOpen bool
}

// NewPosition creates an empty position with White to move and no castling rights.
func NewPosition() *Position {
	return &Position{toMove: White}
}

// Add places a new piece on an empty square and returns its identifier.
func (p *Position) Add(kind Kind, colour Colour, sq Square, hasMoved bool) (PieceID, error) {
	if kind <= NoKind || kind >= NumKinds {
		return NoPiece, fmt.Errorf("add %s: invalid kind %d", sq, kind)
	}
	if !sq.Valid() {
		return NoPiece, fmt.Errorf("add %s %s: square off the board", colour, kind)
	}
	if p.occupant(sq) != NoPiece {
		return NoPiece, fmt.Errorf("add %s %s: %s is occupied", colour, kind, sq)
	}
	id := PieceID(len(p.pieces))
	p.pieces = append(p.pieces, Piece{
		ID:       id,
		Kind:     kind,
		Colour:   colour,
		Square:   sq,
		HasMoved: hasMoved,
		Active:   true,
	})
	p.setOccupant(sq, id)
	return id, nil
}

func (p *Position) occupant(sq Square) PieceID {
	if !sq.Valid() {
		return NoPiece
	}
	return PieceID(p.grid[sq.Col-1][sq.Row-1] - 1)
}

func (p *Position) setOccupant(sq Square, id PieceID) {
	p.grid[sq.Col-1][sq.Row-1] = int(id) + 1
}

// PieceAt returns the active piece on the square, if any.
func (p *Position) PieceAt(sq Square) (Piece, bool) {
	id := p.occupant(sq)
	if id == NoPiece {
		return Piece{}, false
	}
	return p.pieces[id], true
}

// IsEmpty reports whether no active piece occupies the square.
func (p *Position) IsEmpty(sq Square) bool {
	return p.occupant(sq) == NoPiece
}

// Piece returns the piece with the given identifier, active or not.
func (p *Position) Piece(id PieceID) (Piece, bool) {
	if id < 0 || int(id) >= len(p.pieces) {
		return Piece{}, false
	}
	return p.pieces[id], true
}

// Pieces returns all active pieces in arena order.
func (p *Position) Pieces() []Piece {
	out := make([]Piece, 0, len(p.pieces))
	for _, pc := range p.pieces {
		if pc.Active {
			out = append(out, pc)
		}
	}
	return out
}

// PiecesOf returns the active pieces of one colour.
func (p *Position) PiecesOf(colour Colour) []Piece {
	out := make([]Piece, 0, 16)
	for _, pc := range p.pieces {
		if pc.Active && pc.Colour == colour {
			out = append(out, pc)
		}
	}
	return out
}

// Count returns the number of active pieces.
func (p *Position) Count() int {
	n := 0
	for _, pc := range p.pieces {
		if pc.Active {
			n++
		}
	}
	return n
}

// King returns the active king of the given colour.
func (p *Position) King(colour Colour) (Piece, bool) {
	for _, pc := range p.pieces {
		if pc.Active && pc.Kind == King && pc.Colour == colour {
			return pc, true
		}
	}
	return Piece{}, false
}

// Remove takes an active piece off the board. The piece keeps its square so
// that Reinstate can put it back.
func (p *Position) Remove(id PieceID) {
	pc := &p.pieces[id]
	if !pc.Active {
		panic(fmt.Sprintf("chess: remove of inactive piece %s", pc))
	}
	pc.Active = false
	p.grid[pc.Square.Col-1][pc.Square.Row-1] = 0
}

// Reinstate returns a previously removed piece to its square.
func (p *Position) Reinstate(id PieceID) {
	pc := &p.pieces[id]
	if pc.Active {
		panic(fmt.Sprintf("chess: reinstate of active piece %s", pc))
	}
	if occ := p.occupant(pc.Square); occ != NoPiece {
		panic(fmt.Sprintf("chess: reinstate %s onto occupied square", pc))
	}
	pc.Active = true
	p.setOccupant(pc.Square, id)
}

// relocate moves an active piece to an empty square.
func (p *Position) relocate(id PieceID, to Square) {
	pc := &p.pieces[id]
	if occ := p.occupant(to); occ != NoPiece && occ != id {
		panic(fmt.Sprintf("chess: relocate %s onto occupied square %s", pc, to))
	}
	p.grid[pc.Square.Col-1][pc.Square.Row-1] = 0
	pc.Square = to
	p.setOccupant(to, id)
}

// Promote replaces the kind of a piece in place.
func (p *Position) Promote(id PieceID, kind Kind) error {
	pc := &p.pieces[id]
	if pc.Kind != Pawn {
		return errors.Wrapf(errors.ErrInvalidPromotion, "%s is not a pawn", pc)
	}
	if !kind.IsPromotionTarget() {
		return errors.Wrapf(errors.ErrInvalidPromotion, "cannot promote to %s", kind)
	}
	pc.Kind = kind
	pc.HasMoved = true
	return nil
}

// SideToMove returns the colour whose turn it is.
func (p *Position) SideToMove() Colour {
	return p.toMove
}

// SetSideToMove sets the colour whose turn it is.
func (p *Position) SetSideToMove(c Colour) {
	p.toMove = c
}

// Castling returns the current castling rights.
func (p *Position) Castling() CastlingRights {
	return p.castling
}

// ClearCastling removes one castling right. Rights can only be cleared.
func (p *Position) ClearCastling(colour Colour, kingside bool) {
	switch {
	case colour == White && kingside:
		p.castling.WhiteKingside = false
	case colour == White:
		p.castling.WhiteQueenside = false
	case kingside:
		p.castling.BlackKingside = false
	default:
		p.castling.BlackQueenside = false
	}
}

// ClearAllCastling removes both castling rights of a colour.
func (p *Position) ClearAllCastling(colour Colour) {
	p.ClearCastling(colour, true)
	p.ClearCastling(colour, false)
}

// RestoreCastling replaces the rights wholesale. It is only used when a
// position is reconstructed from its serialized form.
func (p *Position) RestoreCastling(rights CastlingRights) {
	p.castling = rights
}

// EnPassant returns the en-passant target square, if one is set.
func (p *Position) EnPassant() (Square, bool) {
	return p.enPassant, p.hasEP
}

// SetEnPassant sets the en-passant target square.
func (p *Position) SetEnPassant(sq Square) {
	p.enPassant = sq
	p.hasEP = true
}

// ClearEnPassant removes the en-passant target square.
func (p *Position) ClearEnPassant() {
	p.enPassant = Square{}
	p.hasEP = false
}

// EnPassantVictim returns the pawn that may be captured en passant: the
// pawn one rank behind the target square, from the capturer's point of view.
func (p *Position) EnPassantVictim() (Piece, bool) {
	if !p.hasEP {
		return Piece{}, false
	}
	// A target on row 6 was passed over by a black pawn now on row 5.
	dr := -1
	if p.enPassant.Row == 3 {
		dr = 1
	}
	pc, ok := p.PieceAt(p.enPassant.Offset(0, dr))
	if !ok || pc.Kind != Pawn {
		return Piece{}, false
	}
	return pc, true
}

// Clone returns a deep copy of the position.
func (p *Position) Clone() *Position {
	c := *p
	c.pieces = make([]Piece, len(p.pieces))
	copy(c.pieces, p.pieces)
	return &c
}
