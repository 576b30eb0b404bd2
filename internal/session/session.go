// Package session holds games driven by callers, with optional automated
// sides played by an oracle.
package session

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/oracle"
	"github.com/lgbarn/chessrules-go/internal/output"
)

// Options configures a new session.
type Options struct {
	// FEN is the starting position; empty means the standard one.
	FEN          string
	HistoryLimit int
	AutoWhite    bool
	AutoBlack    bool
	// Oracle plays automated sides. It may be shared between sessions.
	Oracle oracle.Oracle
	Logger *log.Logger
}

// Session is one game plus who plays each side. It is safe for concurrent
// use; operations are serialized.
type Session struct {
	ID      string
	Name    string
	Created time.Time

	mu        sync.Mutex
	game      *engine.Game
	automated [2]bool // indexed by chess.Colour
	oracle    oracle.Oracle
	logger    *log.Logger

	lastMove string
	lastEval string
}

// New creates a session.
func New(opts Options) (*Session, error) {
	var gameOpts []engine.GameOption
	if opts.HistoryLimit > 0 {
		gameOpts = append(gameOpts, engine.WithHistoryLimit(opts.HistoryLimit))
	}

	var g *engine.Game
	if opts.FEN == "" {
		g = engine.NewGame(gameOpts...)
	} else {
		var err error
		if g, err = engine.NewGameFromFEN(opts.FEN, gameOpts...); err != nil {
			return nil, err
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	s := &Session{
		ID:      uuid.New().String(),
		Name:    petname.Generate(2, "-"),
		Created: time.Now(),
		game:    g,
		oracle:  opts.Oracle,
		logger:  logger,
	}
	s.automated[chess.White] = opts.AutoWhite
	s.automated[chess.Black] = opts.AutoBlack
	return s, nil
}

func (s *Session) stateLocked() output.StateDocument {
	doc := output.NewStateDocument(s.game)
	doc.ID = s.ID
	doc.Name = s.Name
	doc.LastMove = s.lastMove
	doc.Evaluation = s.lastEval
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		if s.automated[c] {
			doc.Automated = append(doc.Automated, c.String())
		}
	}
	return doc
}

// State describes the session's game.
func (s *Session) State() output.StateDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Game returns the underlying game. Callers must not mutate it while the
// session is in use elsewhere.
func (s *Session) Game() *engine.Game {
	return s.game
}

// IsAutomated reports whether the oracle plays the colour.
func (s *Session) IsAutomated(c chess.Colour) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.automated[c]
}

// AutomatedToMove reports whether the side to move is played by the oracle
// and the game is still going.
func (s *Session) AutomatedToMove() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.automatedToMoveLocked()
}

func (s *Session) automatedToMoveLocked() bool {
	return s.automated[s.game.SideToMove()] && !s.game.Status().IsTerminal()
}

// Move plays a long algebraic move for a human side.
func (s *Session) Move(text string) (output.StateDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.automated[s.game.SideToMove()] {
		return s.stateLocked(), errors.Wrapf(errors.ErrAutomatedTurn, "%s is played by the oracle", s.game.SideToMove())
	}
	if err := s.game.MoveText(text); err != nil {
		return s.stateLocked(), err
	}
	s.lastMove, s.lastEval = text, ""
	s.logger.Printf("%s: %s", s.Name, text)
	return s.stateLocked(), nil
}

// LegalDestinations lists where the piece on from may go.
func (s *Session) LegalDestinations(from chess.Square) []chess.Square {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.LegalDestinations(from)
}

// PlayOracle asks the oracle for a move in the current position and plays
// it, whoever is to move. A missing promotion letter defaults to a queen.
func (s *Session) PlayOracle(ctx context.Context) (output.StateDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.playOracleLocked(ctx)
	return s.stateLocked(), err
}

func (s *Session) playOracleLocked(ctx context.Context) error {
	if s.oracle == nil {
		return errors.Wrap(errors.ErrOracleUnresponsive, "no oracle configured")
	}
	if s.game.Status().IsTerminal() {
		return errors.ErrGameOver
	}

	fen := s.game.FEN()
	sug, err := s.oracle.BestMove(ctx, fen)
	if err != nil {
		s.logger.Printf("%s: oracle failed: %v", s.Name, err)
		return err
	}

	m := withDefaultPromotion(s.game.Position(), sug.Move)
	if err := s.game.Move(m); err != nil {
		s.logger.Printf("%s: oracle move %s rejected: %v", s.Name, m, err)
		return errors.Wrapf(errors.ErrOracleProtocol, "oracle move %s: %v", m, err)
	}
	s.lastMove = m.String()
	s.lastEval = oracle.FormatEvaluation(&sug.Evaluation)
	s.logger.Printf("%s: oracle %s (%s)", s.Name, s.lastMove, s.lastEval)
	return nil
}

func withDefaultPromotion(pos *chess.Position, m engine.Move) engine.Move {
	if m.Promotion != chess.NoKind {
		return m
	}
	pc, ok := pos.PieceAt(m.From)
	if ok && pc.Kind == chess.Pawn && m.To.Row == chess.PromotionRow(pc.Colour) {
		m.Promotion = chess.Queen
	}
	return m
}

// AutoPlay lets the oracle move while the side to move is automated, up to
// limit moves. It returns how many moves were played.
func (s *Session) AutoPlay(ctx context.Context, limit int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	played := 0
	for played < limit && s.automatedToMoveLocked() {
		if err := s.playOracleLocked(ctx); err != nil {
			return played, err
		}
		played++
	}
	return played, nil
}

// Undo rewinds one position when both sides are human and two when a
// human is to move against the oracle, so the human is to move again. It
// is refused while an automated side is to move.
func (s *Session) Undo() (output.StateDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	side := s.game.SideToMove()
	plies := 1
	switch {
	case !s.automated[chess.White] && !s.automated[chess.Black]:
	case !s.automated[side] && s.automated[side.Opposite()]:
		plies = 2
	default:
		return s.stateLocked(), errors.Wrapf(errors.ErrAutomatedTurn, "cannot undo while %s is played by the oracle", side)
	}

	if err := s.game.Undo(); err != nil {
		return s.stateLocked(), err
	}
	if plies == 2 {
		// Only one position recorded: stay on it.
		if err := s.game.Undo(); err != nil {
			s.logger.Printf("%s: undo stopped after one ply: %v", s.Name, err)
		}
	}
	s.lastMove, s.lastEval = "", ""
	return s.stateLocked(), nil
}

// SetAutomated hands a colour to the oracle or back to a human.
func (s *Session) SetAutomated(c chess.Colour, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.automated[c] = on
}

// Flip swaps the automated side when exactly one side is automated, and
// reports whether it did.
func (s *Session) Flip() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.automated[chess.White] == s.automated[chess.Black] {
		return false
	}
	s.automated[chess.White], s.automated[chess.Black] = s.automated[chess.Black], s.automated[chess.White]
	return true
}
