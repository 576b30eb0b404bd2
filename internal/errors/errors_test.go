package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that sentinel errors are properly defined
// and can be checked with errors.Is()
func TestSentinelErrors_Are(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ErrInvalidPosition", ErrInvalidPosition, ErrInvalidPosition},
		{"ErrIllegalMove", ErrIllegalMove, ErrIllegalMove},
		{"ErrPromotionRequired", ErrPromotionRequired, ErrPromotionRequired},
		{"ErrHistoryEmpty", ErrHistoryEmpty, ErrHistoryEmpty},
		{"ErrOracleUnresponsive", ErrOracleUnresponsive, ErrOracleUnresponsive},
		{"ErrOracleProtocol", ErrOracleProtocol, ErrOracleProtocol},
		{"ErrInvalidConfig", ErrInvalidConfig, ErrInvalidConfig},
		{"ErrTrialOutstanding", ErrTrialOutstanding, ErrTrialOutstanding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

// TestSentinelErrors_Distinct verifies that the oracle and codec failures are
// distinguishable from each other and from illegal moves.
func TestSentinelErrors_Distinct(t *testing.T) {
	sentinels := []error{ErrInvalidPosition, ErrIllegalMove, ErrHistoryEmpty, ErrOracleUnresponsive, ErrOracleProtocol}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true, want false", a, b)
			}
		}
	}
}

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("failed to decode position: %w", ErrInvalidPosition)

	if !errors.Is(wrapped, ErrInvalidPosition) {
		t.Errorf("errors.Is(wrapped, ErrInvalidPosition) = false, want true")
	}
}

// TestMoveError_Error verifies the error message format
func TestMoveError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *MoveError
		contains []string
	}{
		{
			name: "full context",
			err: &MoveError{
				Err:      ErrIllegalMove,
				PlyNum:   12,
				MoveText: "e1g1",
				Side:     "White",
			},
			contains: []string{"White", "ply 12", "e1g1", "illegal move"},
		},
		{
			name: "minimal context",
			err: &MoveError{
				Err: ErrNoPiece,
			},
			contains: []string{"no piece on square"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("MoveError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestMoveError_Unwrap verifies that MoveError properly implements Unwrap
func TestMoveError_Unwrap(t *testing.T) {
	moveErr := &MoveError{
		Err:      ErrPromotionRequired,
		MoveText: "a7a8",
	}

	unwrapped := errors.Unwrap(moveErr)
	if !errors.Is(unwrapped, ErrPromotionRequired) {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrPromotionRequired)
	}

	if !errors.Is(moveErr, ErrPromotionRequired) {
		t.Error("errors.Is(moveErr, ErrPromotionRequired) = false, want true")
	}
}

// TestMoveError_As verifies that errors.As works with MoveError
func TestMoveError_As(t *testing.T) {
	moveErr := &MoveError{
		Err:      ErrIllegalMove,
		PlyNum:   24,
		MoveText: "e1c1",
	}

	wrapped := fmt.Errorf("session failed: %w", moveErr)

	var extractedErr *MoveError
	if !errors.As(wrapped, &extractedErr) {
		t.Fatal("errors.As() could not extract MoveError")
	}

	if extractedErr.PlyNum != 24 {
		t.Errorf("extractedErr.PlyNum = %d, want 24", extractedErr.PlyNum)
	}
	if extractedErr.MoveText != "e1c1" {
		t.Errorf("extractedErr.MoveText = %q, want %q", extractedErr.MoveText, "e1c1")
	}
}

// TestParseError_Error verifies ParseError formatting
func TestParseError_Error(t *testing.T) {
	err := &ParseError{
		Err:      ErrInvalidPosition,
		Field:    "placement",
		Column:   15,
		Expected: "piece letter or digit",
		Got:      "'x'",
	}

	msg := err.Error()

	if !containsIgnoreCase(msg, "placement:15") {
		t.Errorf("ParseError.Error() should contain field and column, got %q", msg)
	}
	if !containsIgnoreCase(msg, "expected piece letter or digit, got 'x'") {
		t.Errorf("ParseError.Error() should contain expected/got, got %q", msg)
	}
	if !containsIgnoreCase(msg, "invalid position encoding") {
		t.Errorf("ParseError.Error() should contain underlying error, got %q", msg)
	}
}

// TestParseError_Unwrap verifies ParseError implements Unwrap
func TestParseError_Unwrap(t *testing.T) {
	parseErr := &ParseError{
		Err:   ErrOracleProtocol,
		Field: "bestmove",
	}

	if !errors.Is(parseErr, ErrOracleProtocol) {
		t.Error("errors.Is(parseErr, ErrOracleProtocol) = false, want true")
	}
}

func TestParseError_Empty(t *testing.T) {
	if got := (&ParseError{}).Error(); got != "parse error" {
		t.Errorf("ParseError{}.Error() = %q, want %q", got, "parse error")
	}
}

// TestWrap verifies the Wrap helper function
func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrInvalidPosition, "decoding history entry")

	if !errors.Is(wrapped, ErrInvalidPosition) {
		t.Error("Wrap should preserve the underlying error")
	}

	msg := wrapped.Error()
	if !containsIgnoreCase(msg, "decoding history entry") {
		t.Errorf("Wrap should include context, got %q", msg)
	}

	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

// TestWrapf verifies the Wrapf helper function
func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrIllegalMove, "move %d of session %s", 15, "brave-otter")

	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("Wrapf should preserve the underlying error")
	}

	msg := wrapped.Error()
	if !containsIgnoreCase(msg, "move 15") {
		t.Errorf("Wrapf should include formatted context, got %q", msg)
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
