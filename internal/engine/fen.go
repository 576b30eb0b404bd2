package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// InitialFEN is the serialized standard starting position. Move counters are
// not tracked, so they are always written as "0 0".
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0"

// NewInitialPosition returns the standard starting position.
func NewInitialPosition() *chess.Position {
	pos, err := DecodePosition(InitialFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// EncodePosition serializes a position: piece placement from row 8 down,
// side to move, castling rights, en-passant target and "0 0".
func EncodePosition(pos *chess.Position) string {
	var sb strings.Builder
	writePiecePositions(&sb, pos)
	sb.WriteByte(' ')
	if pos.SideToMove() == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(castlingField(pos.Castling()))
	sb.WriteByte(' ')
	if ep, ok := pos.EnPassant(); ok {
		sb.WriteString(ep.String())
	} else {
		sb.WriteByte('-')
	}
	sb.WriteString(" 0 0")
	return sb.String()
}

func writePiecePositions(sb *strings.Builder, pos *chess.Position) {
	for row := chess.BoardSize; row >= 1; row-- {
		empty := 0
		for col := 1; col <= chess.BoardSize; col++ {
			pc, ok := pos.PieceAt(chess.Sq(col, row))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pc.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row > 1 {
			sb.WriteByte('/')
		}
	}
}

func castlingField(c chess.CastlingRights) string {
	if !c.Any() {
		return "-"
	}
	var sb strings.Builder
	if c.WhiteKingside {
		sb.WriteByte('K')
	}
	if c.WhiteQueenside {
		sb.WriteByte('Q')
	}
	if c.BlackKingside {
		sb.WriteByte('k')
	}
	if c.BlackQueenside {
		sb.WriteByte('q')
	}
	return sb.String()
}

// placement is a decoded piece before hasMoved is known.
type placement struct {
	kind   chess.Kind
	colour chess.Colour
	sq     chess.Square
}

// DecodePosition parses a serialized position. Every failure wraps
// errors.ErrInvalidPosition. The string must have exactly six fields and
// describe a structurally sound position: one king per side, no pawn on the
// first or last row, castling rights backed by unmoved pieces, and an
// en-passant target behind a pawn that could just have double stepped.
func DecodePosition(fen string) (*chess.Position, error) {
	parts := strings.Split(fen, " ")
	if len(parts) != 6 {
		return nil, &errors.ParseError{
			Err:      errors.ErrInvalidPosition,
			Field:    "position",
			Expected: "6 space separated fields",
			Got:      strconv.Itoa(len(parts)),
		}
	}

	placements, err := parsePiecePositions(parts[0])
	if err != nil {
		return nil, err
	}
	toMove, err := parseSideToMove(parts[1])
	if err != nil {
		return nil, err
	}
	rights, err := parseCastlingRights(parts[2])
	if err != nil {
		return nil, err
	}
	ep, hasEP, err := parseEnPassant(parts[3])
	if err != nil {
		return nil, err
	}
	for i, name := range []string{"halfmove clock", "fullmove number"} {
		if n, err := strconv.Atoi(parts[4+i]); err != nil || n < 0 || parts[4+i][0] == '+' {
			return nil, &errors.ParseError{
				Err:      errors.ErrInvalidPosition,
				Field:    name,
				Expected: "non-negative integer",
				Got:      strconv.Quote(parts[4+i]),
			}
		}
	}

	pos := chess.NewPosition()
	pos.SetSideToMove(toMove)
	pos.RestoreCastling(rights)
	if hasEP {
		pos.SetEnPassant(ep)
	}
	for _, p := range placements {
		if _, err := pos.Add(p.kind, p.colour, p.sq, !startsUnmoved(p, rights)); err != nil {
			return nil, errors.Wrap(errors.ErrInvalidPosition, err.Error())
		}
	}

	if err := validateStructure(pos); err != nil {
		return nil, fmt.Errorf("%v: %w", err, errors.ErrInvalidPosition)
	}
	return pos, nil
}

// parsePiecePositions parses the piece placement field.
func parsePiecePositions(field string) ([]placement, error) {
	ranks := strings.Split(field, "/")
	if len(ranks) != chess.BoardSize {
		return nil, &errors.ParseError{
			Err:      errors.ErrInvalidPosition,
			Field:    "placement",
			Expected: "8 ranks",
			Got:      strconv.Itoa(len(ranks)),
		}
	}

	var out []placement
	column := 0
	for i, rank := range ranks {
		row := chess.BoardSize - i
		col := 1
		for j := 0; j < len(rank); j++ {
			c := rank[j]
			column++
			switch {
			case c >= '1' && c <= '8':
				col += int(c - '0')
			case chess.KindFromLetter(c) != chess.NoKind:
				if col <= chess.BoardSize {
					colour := chess.White
					if c >= 'a' && c <= 'z' {
						colour = chess.Black
					}
					out = append(out, placement{chess.KindFromLetter(c), colour, chess.Sq(col, row)})
				}
				col++
			default:
				return nil, &errors.ParseError{
					Err:      errors.ErrInvalidPosition,
					Field:    "placement",
					Column:   column,
					Expected: "piece letter or digit",
					Got:      strconv.QuoteRune(rune(c)),
				}
			}
			if col > chess.BoardSize+1 {
				break
			}
		}
		column++ // separator
		if col != chess.BoardSize+1 {
			return nil, &errors.ParseError{
				Err:      errors.ErrInvalidPosition,
				Field:    "placement",
				Column:   column - 1,
				Expected: fmt.Sprintf("rank %d to cover 8 squares", row),
				Got:      strconv.Itoa(col - 1),
			}
		}
	}
	return out, nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(field string) (chess.Colour, error) {
	switch field {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	}
	return chess.White, &errors.ParseError{
		Err:      errors.ErrInvalidPosition,
		Field:    "side to move",
		Expected: "w or b",
		Got:      strconv.Quote(field),
	}
}

// parseCastlingRights accepts "-" or a non-empty subsequence of "KQkq".
func parseCastlingRights(field string) (chess.CastlingRights, error) {
	var rights chess.CastlingRights
	if field == "-" {
		return rights, nil
	}
	const order = "KQkq"
	next := 0
	for i := 0; i < len(field); i++ {
		at := strings.IndexByte(order, field[i])
		if at < next {
			return rights, &errors.ParseError{
				Err:      errors.ErrInvalidPosition,
				Field:    "castling",
				Column:   i + 1,
				Expected: "KQkq in order or -",
				Got:      strconv.Quote(field),
			}
		}
		next = at + 1
		switch field[i] {
		case 'K':
			rights.WhiteKingside = true
		case 'Q':
			rights.WhiteQueenside = true
		case 'k':
			rights.BlackKingside = true
		case 'q':
			rights.BlackQueenside = true
		}
	}
	if field == "" {
		return rights, &errors.ParseError{Err: errors.ErrInvalidPosition, Field: "castling", Expected: "KQkq in order or -"}
	}
	return rights, nil
}

// parseEnPassant accepts "-" or a square on row 3 or 6.
func parseEnPassant(field string) (chess.Square, bool, error) {
	if field == "-" {
		return chess.Square{}, false, nil
	}
	sq, err := chess.ParseSquare(field)
	if err != nil || (sq.Row != 3 && sq.Row != 6) {
		return chess.Square{}, false, &errors.ParseError{
			Err:      errors.ErrInvalidPosition,
			Field:    "en passant",
			Expected: "square on row 3 or 6 or -",
			Got:      strconv.Quote(field),
		}
	}
	return sq, true, nil
}

// startsUnmoved reconstructs hasMoved: a king or rook on its home square is
// unmoved only while a matching castling right is held, and a pawn only
// while it stands on its start row.
func startsUnmoved(p placement, rights chess.CastlingRights) bool {
	home := chess.HomeRow(p.colour)
	switch p.kind {
	case chess.Pawn:
		return p.sq.Row == chess.PawnStartRow(p.colour)
	case chess.King:
		return p.sq == chess.Sq(5, home) && (rights.Kingside(p.colour) || rights.Queenside(p.colour))
	case chess.Rook:
		switch p.sq {
		case chess.Sq(chess.BoardSize, home):
			return rights.Kingside(p.colour)
		case chess.Sq(1, home):
			return rights.Queenside(p.colour)
		}
		return false
	}
	return true
}

// validateStructure collects every structural problem of a decoded position.
func validateStructure(pos *chess.Position) error {
	var result *multierror.Error

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		kings := 0
		for _, pc := range pos.PiecesOf(colour) {
			switch pc.Kind {
			case chess.King:
				kings++
			case chess.Pawn:
				if pc.Square.Row == 1 || pc.Square.Row == chess.BoardSize {
					result = multierror.Append(result, fmt.Errorf("%s pawn on %s", colour, pc.Square))
				}
			}
		}
		if kings != 1 {
			result = multierror.Append(result, fmt.Errorf("%s has %d kings", colour, kings))
		}
		if err := validateCastling(pos, colour); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := validateEnPassant(pos); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func validateCastling(pos *chess.Position, colour chess.Colour) error {
	rights := pos.Castling()
	home := chess.HomeRow(colour)
	check := func(held bool, rookCol int, side string) error {
		if !held {
			return nil
		}
		king, ok := pos.PieceAt(chess.Sq(5, home))
		if !ok || king.Kind != chess.King || king.Colour != colour {
			return fmt.Errorf("%s %s castling without king on %s", colour, side, chess.Sq(5, home))
		}
		rook, ok := pos.PieceAt(chess.Sq(rookCol, home))
		if !ok || rook.Kind != chess.Rook || rook.Colour != colour {
			return fmt.Errorf("%s %s castling without rook on %s", colour, side, chess.Sq(rookCol, home))
		}
		return nil
	}
	if err := check(rights.Kingside(colour), chess.BoardSize, "king-side"); err != nil {
		return err
	}
	return check(rights.Queenside(colour), 1, "queen-side")
}

// validateEnPassant checks that the target lies behind a pawn of the side
// that just moved, with the target and the pawn's start square empty.
func validateEnPassant(pos *chess.Position) error {
	ep, ok := pos.EnPassant()
	if !ok {
		return nil
	}
	mover := pos.SideToMove().Opposite()
	wantRow := 3
	if mover == chess.Black {
		wantRow = 6
	}
	if ep.Row != wantRow {
		return fmt.Errorf("en passant target %s with %s to move", ep, pos.SideToMove())
	}
	victim, ok := pos.EnPassantVictim()
	if !ok || victim.Colour != mover {
		return fmt.Errorf("en passant target %s without a %s pawn in front", ep, mover)
	}
	start := ep.Offset(0, -chess.ColourOffset(mover))
	if !pos.IsEmpty(ep) || !pos.IsEmpty(start) {
		return fmt.Errorf("en passant target %s with occupied path", ep)
	}
	return nil
}
