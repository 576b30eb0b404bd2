// Package oracle talks to an external move-suggestion engine over the UCI
// line protocol.
package oracle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Defaults for a UCIEngine.
const (
	DefaultMoveTime = 100 * time.Millisecond
	DefaultTimeout  = 5 * time.Second
)

// Oracle suggests a move for a serialized position.
type Oracle interface {
	BestMove(ctx context.Context, fen string) (Suggestion, error)
	Close() error
}

// Evaluation holds what the engine reported about its search.
type Evaluation struct {
	Score    int    // Centipawns from the side to move
	IsMate   bool   // True if Score is actually a mate distance
	MateIn   int    // Moves to mate, negative if being mated
	Depth    int    // Search depth reached
	BestMove string // Long algebraic text of the chosen move
}

// Suggestion is the engine's answer for one position.
type Suggestion struct {
	Move       engine.Move
	Evaluation Evaluation
}

// UCIEngine drives a UCI engine through a reader and writer pair. Requests
// are serialized; each is bounded by its context and the engine timeout.
type UCIEngine struct {
	w     io.Writer
	lines chan string
	done  chan struct{}
	once  sync.Once

	mu sync.Mutex
	// stale counts answers still owed for requests that timed out.
	stale int

	cmd      *exec.Cmd
	stdin    io.Closer
	moveTime time.Duration
	depth    int
	timeout  time.Duration

	logger    *log.Logger
	verbosity int
}

// Option configures a UCIEngine.
type Option func(*UCIEngine)

// WithMoveTime sets the thinking time sent with each "go" command.
func WithMoveTime(d time.Duration) Option {
	return func(e *UCIEngine) {
		if d > 0 {
			e.moveTime = d
		}
	}
}

// WithDepth searches to a fixed depth instead of a fixed time.
func WithDepth(n int) Option {
	return func(e *UCIEngine) {
		if n > 0 {
			e.depth = n
		}
	}
}

// WithTimeout bounds how long a request waits for "bestmove".
func WithTimeout(d time.Duration) Option {
	return func(e *UCIEngine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger logs lifecycle events at verbosity 1 and every protocol line at
// verbosity 2.
func WithLogger(l *log.Logger, verbosity int) Option {
	return func(e *UCIEngine) {
		if l != nil {
			e.logger = l
			e.verbosity = verbosity
		}
	}
}

// NewUCIEngine wraps an engine whose output is read from r and whose input
// is written to w.
func NewUCIEngine(r io.Reader, w io.Writer, opts ...Option) *UCIEngine {
	e := &UCIEngine{
		w:        w,
		lines:    make(chan string, 64),
		done:     make(chan struct{}),
		moveTime: DefaultMoveTime,
		timeout:  DefaultTimeout,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	go e.readLoop(r)
	return e
}

// Start launches the engine executable at path and completes the UCI
// handshake.
func Start(ctx context.Context, path string, opts ...Option) (*UCIEngine, error) {
	cmd := exec.Command(path)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, pkgerrors.WithStack(err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, pkgerrors.WithStack(err)
	}
	if err := cmd.Start(); err != nil {
		return nil, pkgerrors.WithMessage(err, "start oracle "+path)
	}

	e := NewUCIEngine(stdout, stdin, opts...)
	e.cmd = cmd
	e.stdin = stdin
	e.logf(1, "started %s (pid %d)", path, cmd.Process.Pid)

	if err := e.Handshake(ctx); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}
	return e, nil
}

func (e *UCIEngine) logf(level int, format string, args ...interface{}) {
	if e.verbosity >= level {
		e.logger.Printf(format, args...)
	}
}

func (e *UCIEngine) readLoop(r io.Reader) {
	defer close(e.lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		select {
		case e.lines <- line:
		case <-e.done:
			return
		}
	}
}

func (e *UCIEngine) send(format string, args ...interface{}) error {
	line := fmt.Sprintf(format, args...)
	e.logf(2, "> %s", line)
	if _, err := io.WriteString(e.w, line+"\n"); err != nil {
		return errors.Wrap(errors.ErrOracleUnresponsive, err.Error())
	}
	return nil
}

// await reads lines until match accepts one. Lines it rejects are passed to
// seen, if set.
func (e *UCIEngine) await(ctx context.Context, match func(string) bool, seen func(string)) (string, error) {
	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", errors.Wrap(errors.ErrOracleUnresponsive, ctx.Err().Error())
		case <-timer.C:
			return "", errors.Wrapf(errors.ErrOracleUnresponsive, "no answer within %v", e.timeout)
		case line, ok := <-e.lines:
			if !ok {
				return "", errors.Wrap(errors.ErrOracleUnresponsive, "output closed")
			}
			e.logf(2, "< %s", line)
			if match(line) {
				return line, nil
			}
			if seen != nil {
				seen(line)
			}
		}
	}
}

// Handshake sends "uci" and "isready" and waits for the matching replies.
func (e *UCIEngine) Handshake(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.send("uci"); err != nil {
		return err
	}
	if _, err := e.await(ctx, func(l string) bool { return l == "uciok" }, nil); err != nil {
		return err
	}
	if err := e.send("isready"); err != nil {
		return err
	}
	_, err := e.await(ctx, func(l string) bool { return l == "readyok" }, nil)
	return err
}

func isBestMove(line string) bool {
	return strings.HasPrefix(line, "bestmove")
}

// BestMove asks the engine for its move in the given position. It returns
// errors.ErrOracleUnresponsive if no answer arrives in time and
// errors.ErrOracleProtocol if the answer cannot be understood.
func (e *UCIEngine) BestMove(ctx context.Context, fen string) (Suggestion, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Skip answers to requests that were abandoned.
	for e.stale > 0 {
		if _, err := e.await(ctx, isBestMove, nil); err != nil {
			return Suggestion{}, err
		}
		e.stale--
	}

	if err := e.send("position fen %s", fen); err != nil {
		return Suggestion{}, err
	}
	var err error
	if e.depth > 0 {
		err = e.send("go depth %d", e.depth)
	} else {
		err = e.send("go movetime %d", e.moveTime.Milliseconds())
	}
	if err != nil {
		return Suggestion{}, err
	}

	var eval Evaluation
	line, err := e.await(ctx, isBestMove, func(l string) {
		if strings.HasPrefix(l, "info") {
			e.parseInfo(l, &eval)
		}
	})
	if err != nil {
		e.stale++
		_ = e.send("stop")
		e.logf(1, "request abandoned: %v", err)
		return Suggestion{}, err
	}

	m, err := ParseBestMove(line)
	if err != nil {
		return Suggestion{}, err
	}
	eval.BestMove = m.String()
	return Suggestion{Move: m, Evaluation: eval}, nil
}

// ParseBestMove extracts the move from a "bestmove" line. The move occupies
// the five characters after "bestmove ", the last being a promotion letter
// or a space.
func ParseBestMove(line string) (engine.Move, error) {
	padded := line + " "
	if !isBestMove(line) || len(padded) < 14 {
		return engine.Move{}, &errors.ParseError{
			Err:      errors.ErrOracleProtocol,
			Field:    "bestmove",
			Expected: "bestmove <from><to>[promotion]",
			Got:      strconv.Quote(line),
		}
	}
	text := strings.TrimSpace(padded[9:14])
	m, err := engine.ParseMove(text)
	if err != nil {
		return engine.Move{}, &errors.ParseError{
			Err:      errors.ErrOracleProtocol,
			Field:    "bestmove",
			Column:   10,
			Expected: "long algebraic move",
			Got:      strconv.Quote(text),
		}
	}
	return m, nil
}

// parseInfo updates eval with the depth and score found in an "info" line.
// Fields that are absent leave eval unchanged.
func (e *UCIEngine) parseInfo(line string, eval *Evaluation) {
	fields := strings.Fields(line)
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			if i+1 < len(fields) {
				if d, err := strconv.Atoi(fields[i+1]); err == nil {
					eval.Depth = d
				}
				i++
			}
		case "score":
			if i+2 < len(fields) {
				v, err := strconv.Atoi(fields[i+2])
				if err != nil {
					continue
				}
				switch fields[i+1] {
				case "cp":
					eval.Score, eval.IsMate, eval.MateIn = v, false, 0
				case "mate":
					eval.IsMate, eval.MateIn = true, v
				}
				i += 2
			}
		}
	}
}

// FormatEvaluation renders an evaluation as "+1.23" or "-M5".
func FormatEvaluation(eval *Evaluation) string {
	if eval.IsMate {
		if eval.MateIn < 0 {
			return fmt.Sprintf("-M%d", -eval.MateIn)
		}
		return fmt.Sprintf("+M%d", eval.MateIn)
	}
	sign := "+"
	score := eval.Score
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}

// Close sends "quit", stops reading and, for a launched process, waits for
// it to exit.
func (e *UCIEngine) Close() error {
	var err error
	e.once.Do(func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		_ = e.send("quit")
		close(e.done)
		if e.stdin != nil {
			_ = e.stdin.Close()
		}
		if e.cmd != nil {
			if werr := e.cmd.Wait(); werr != nil {
				err = pkgerrors.WithMessage(werr, "oracle exit")
			}
			e.logf(1, "stopped")
		}
	})
	return err
}
