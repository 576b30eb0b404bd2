// Package errors provides sentinel errors and error types for the chess rules engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidPosition indicates a malformed serialized position.
	ErrInvalidPosition = errors.New("invalid position encoding")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrWrongSide indicates an attempt to move a piece of the side not to move.
	ErrWrongSide = errors.New("not this side's turn")

	// ErrNoPiece indicates that the source square of a move is empty.
	ErrNoPiece = errors.New("no piece on square")

	// ErrPromotionRequired indicates a pawn reached the back rank without a promotion choice.
	ErrPromotionRequired = errors.New("promotion piece required")

	// ErrInvalidPromotion indicates a promotion choice other than queen, rook, bishop or knight.
	ErrInvalidPromotion = errors.New("invalid promotion piece")

	// ErrInvalidMoveText indicates move text that is not long algebraic (e2e4, e7e8q).
	ErrInvalidMoveText = errors.New("invalid move text")

	// ErrHistoryEmpty indicates an undo was requested with no recorded positions.
	ErrHistoryEmpty = errors.New("history is empty")

	// ErrGameOver indicates a move was attempted after checkmate or a draw.
	ErrGameOver = errors.New("game is over")

	// ErrOracleUnresponsive indicates the move-suggestion oracle did not answer in time
	// or its output stream closed.
	ErrOracleUnresponsive = errors.New("oracle unresponsive")

	// ErrOracleProtocol indicates the oracle answered with text that could not be understood.
	ErrOracleProtocol = errors.New("oracle protocol error")

	// ErrSessionNotFound indicates an unknown game session identifier.
	ErrSessionNotFound = errors.New("session not found")

	// ErrAutomatedTurn indicates a request that is refused while the automated side is to move.
	ErrAutomatedTurn = errors.New("automated side to move")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrTrialOutstanding indicates a trial move was started while another was still open.
	ErrTrialOutstanding = errors.New("trial move already outstanding")

	// ErrNoTrial indicates an undo or commit of a trial record that is not open.
	ErrNoTrial = errors.New("no outstanding trial move")
)

// MoveError wraps errors with move context, including the ply number
// and move text. It implements the error interface and supports
// unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err      error  // The underlying error
	PlyNum   int    // Ply number where error occurred (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
	Side     string // Side that attempted the move (if known)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Side != "" {
		parts = append(parts, e.Side)
	}
	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")
	if context == "" {
		if e.Err != nil {
			return e.Err.Error()
		}
		return "move error"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error with field location context.
// It's used for serialized positions and oracle responses.
type ParseError struct {
	Err      error  // The underlying error
	Field    string // Name of the field being parsed
	Column   int    // Character offset within the field (1-based, 0 if unknown)
	Expected string // What was expected (for syntax errors)
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Field != "" {
		loc := e.Field
		if e.Column > 0 {
			loc += fmt.Sprintf(":%d", e.Column)
		}
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
