package config

import "time"

// OracleConfig holds settings for the external move-suggestion engine.
type OracleConfig struct {
	// Path is the engine executable; empty disables the oracle
	Path string

	// MoveTime is the thinking time requested per move
	MoveTime time.Duration

	// Depth searches to a fixed depth instead of MoveTime when positive
	Depth int

	// Timeout bounds the wait for each answer
	Timeout time.Duration
}

// NewOracleConfig creates an OracleConfig with default values.
func NewOracleConfig() *OracleConfig {
	return &OracleConfig{
		MoveTime: 100 * time.Millisecond,
		Timeout:  5 * time.Second,
	}
}

// Enabled reports whether an engine path is configured.
func (o *OracleConfig) Enabled() bool {
	return o.Path != ""
}

// Validate checks the oracle settings.
func (o *OracleConfig) Validate() error {
	switch {
	case o.MoveTime <= 0:
		return invalid("oracle move time %v must be positive", o.MoveTime)
	case o.Depth < 0:
		return invalid("oracle depth %d is negative", o.Depth)
	case o.Timeout < o.MoveTime:
		return invalid("oracle timeout %v is shorter than move time %v", o.Timeout, o.MoveTime)
	}
	return nil
}
