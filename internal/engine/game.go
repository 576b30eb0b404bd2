package engine

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Game owns a position together with its undo history. It is the surface
// callers drive: query pieces, attempt moves, read the status and undo.
// A Game is not safe for concurrent use.
type Game struct {
	pos     *chess.Position
	history *History
	ply     int
}

// GameOption configures a Game.
type GameOption func(*Game)

// WithHistoryLimit sets how many snapshots the game keeps for undo.
func WithHistoryLimit(n int) GameOption {
	return func(g *Game) {
		if n >= 1 {
			g.history = NewHistory(n)
		}
	}
}

// WithPosition starts the game from the given position instead of the
// standard one.
func WithPosition(pos *chess.Position) GameOption {
	return func(g *Game) {
		if pos != nil {
			g.pos = pos
		}
	}
}

// NewGame creates a game from the standard starting position.
func NewGame(opts ...GameOption) *Game {
	g := &Game{history: NewHistory(DefaultHistoryLimit)}
	for _, opt := range opts {
		opt(g)
	}
	if g.pos == nil {
		g.pos = NewInitialPosition()
	}
	return g
}

// NewGameFromFEN creates a game starting at a serialized position.
func NewGameFromFEN(fen string, opts ...GameOption) (*Game, error) {
	pos, err := DecodePosition(fen)
	if err != nil {
		return nil, err
	}
	return NewGame(append(opts, WithPosition(pos))...), nil
}

// Position returns the live position. Callers must not mutate it.
func (g *Game) Position() *chess.Position {
	return g.pos
}

// PieceAt returns the piece on the square, if any.
func (g *Game) PieceAt(sq chess.Square) (chess.Piece, bool) {
	return g.pos.PieceAt(sq)
}

// SideToMove returns the colour whose turn it is.
func (g *Game) SideToMove() chess.Colour {
	return g.pos.SideToMove()
}

// CanMove reports whether the piece on from may legally go to to. It does
// not check whose turn it is.
func (g *Game) CanMove(from, to chess.Square) bool {
	pc, ok := g.pos.PieceAt(from)
	if !ok {
		return false
	}
	return CanMoveOrCapture(g.pos, pc.ID, to)
}

// LegalDestinations returns the legal destinations of the piece on from.
func (g *Game) LegalDestinations(from chess.Square) []chess.Square {
	pc, ok := g.pos.PieceAt(from)
	if !ok {
		return nil
	}
	return LegalDestinations(g.pos, pc.ID)
}

// Move commits a move for the side to move. The position before the move is
// pushed to the history only when the move succeeds. Errors are returned as
// *errors.MoveError.
func (g *Game) Move(m Move) error {
	side := g.pos.SideToMove()
	if Evaluate(g.pos).IsTerminal() {
		return &errors.MoveError{Err: errors.ErrGameOver, PlyNum: g.ply + 1, MoveText: m.String(), Side: side.String()}
	}
	before := EncodePosition(g.pos)
	if err := ApplyMove(g.pos, m); err != nil {
		return &errors.MoveError{Err: err, PlyNum: g.ply + 1, MoveText: m.String(), Side: side.String()}
	}
	g.history.Push(before)
	g.ply++
	return nil
}

// MoveText parses and commits a long algebraic move such as "e2e4".
func (g *Game) MoveText(text string) error {
	m, err := ParseMove(text)
	if err != nil {
		return &errors.MoveError{Err: err, PlyNum: g.ply + 1, MoveText: text, Side: g.pos.SideToMove().String()}
	}
	return g.Move(m)
}

// Status reports check, checkmate or draw for the side to move.
func (g *Game) Status() chess.Status {
	return Evaluate(g.pos)
}

// Undo rewinds the game by one snapshot. It fails with ErrHistoryEmpty when
// nothing is recorded and leaves the game unchanged.
func (g *Game) Undo() error {
	fen, err := g.history.Pop()
	if err != nil {
		return err
	}
	pos, err := DecodePosition(fen)
	if err != nil {
		g.history.Push(fen)
		return errors.Wrap(err, "history snapshot")
	}
	g.pos = pos
	if g.ply > 0 {
		g.ply--
	}
	return nil
}

// FEN returns the serialized current position.
func (g *Game) FEN() string {
	return EncodePosition(g.pos)
}

// Ply returns the number of moves committed and not undone.
func (g *Game) Ply() int {
	return g.ply
}

// History returns the undo history.
func (g *Game) History() *History {
	return g.history
}
