package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/oracle"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/session"
)

// maxAutoPlies bounds a game in which the oracle plays both sides.
const maxAutoPlies = 500

// player runs the interactive command loop over one session.
type player struct {
	cfg    *config.Config
	sess   *session.Session
	out    io.Writer
	states output.StateWriter
	flip   bool
	logger *log.Logger
}

func newPlayer(cfg *config.Config, o oracle.Oracle) (*player, error) {
	logger := cfg.Logger("chessplay: ")
	sess, err := session.New(session.Options{
		FEN:          cfg.Game.StartFEN,
		HistoryLimit: cfg.Game.HistoryLimit,
		AutoWhite:    cfg.Game.AutoWhite,
		AutoBlack:    cfg.Game.AutoBlack,
		Oracle:       o,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}
	p := &player{
		cfg:    cfg,
		sess:   sess,
		out:    cfg.OutputFile,
		states: output.NewStateWriter(cfg.OutputFile, cfg),
		logger: logger,
	}
	// Put the human side at the bottom.
	p.flip = cfg.Game.AutoWhite && !cfg.Game.AutoBlack
	p.orient()
	return p, nil
}

func (p *player) orient() {
	if tw, ok := p.states.(*output.TextWriter); ok {
		tw.SetFlip(p.flip)
	}
}

// run reads commands until quit or end of input.
func (p *player) run(ctx context.Context, r io.Reader) error {
	defer p.states.Close() //nolint:errcheck // nothing buffered in interactive use

	p.autoPlay(ctx)
	if err := p.show(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		quit, err := p.execute(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(p.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

func (p *player) show() error {
	return p.states.WriteState(p.sess.Game(), p.sess.State())
}

// autoPlay lets the oracle answer, reporting rather than returning its
// failure so the human can carry on.
func (p *player) autoPlay(ctx context.Context) {
	if _, err := p.sess.AutoPlay(ctx, maxAutoPlies); err != nil {
		fmt.Fprintf(p.out, "oracle: %v\n", err)
	}
}

// execute runs one command line.
func (p *player) execute(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "quit", "exit", "q":
		return true, nil
	case "board", "status":
		return false, p.show()
	case "fen":
		_, err = fmt.Fprintln(p.out, p.sess.State().FEN)
		return false, err
	case "moves":
		return false, p.listMoves(fields[1:])
	case "undo":
		if _, err := p.sess.Undo(); err != nil {
			return false, err
		}
	case "hint", "oracle":
		if _, err := p.sess.PlayOracle(ctx); err != nil {
			return false, err
		}
	case "auto":
		if err := p.setAutomated(fields[1:]); err != nil {
			return false, err
		}
	case "flip":
		if !p.sess.Flip() {
			return false, fmt.Errorf("flip needs exactly one automated side")
		}
		p.flip = !p.flip
		p.orient()
	case "rotate":
		p.flip = !p.flip
		p.orient()
		return false, p.show()
	default:
		if _, err := p.sess.Move(fields[0]); err != nil {
			return false, err
		}
	}

	p.autoPlay(ctx)
	return false, p.show()
}

func (p *player) setAutomated(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: auto white|black|both|none")
	}
	white, black := false, false
	switch args[0] {
	case "white":
		white = true
	case "black":
		black = true
	case "both":
		white, black = true, true
	case "none", "off":
	default:
		return fmt.Errorf("unknown side %q", args[0])
	}
	p.sess.SetAutomated(chess.White, white)
	p.sess.SetAutomated(chess.Black, black)
	p.logger.Printf("automated: white=%t black=%t", white, black)
	return nil
}

// listMoves prints every legal move, or marks the destinations of one piece
// on the board.
func (p *player) listMoves(args []string) error {
	doc := p.sess.State()
	if len(args) == 0 {
		_, err := fmt.Fprintln(p.out, strings.Join(doc.LegalMoves, " "))
		return err
	}

	from, err := chess.ParseSquare(args[0])
	if err != nil {
		return errors.Wrap(errors.ErrInvalidMoveText, err.Error())
	}
	dests := p.sess.LegalDestinations(from)
	if p.cfg.Output.JSONFormat {
		names := make([]string, len(dests))
		for i, d := range dests {
			names[i] = d.String()
		}
		return output.WriteJSON(p.out, map[string]interface{}{"from": from.String(), "destinations": names})
	}
	return output.RenderBoard(p.out, p.sess.Game().Position(), output.BoardOptions{
		NoColor:   p.cfg.Output.NoColor,
		Flip:      p.flip,
		Highlight: dests,
	})
}
