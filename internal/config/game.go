package config

import (
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// GameConfig holds settings for new games.
type GameConfig struct {
	// HistoryLimit is how many positions are kept for undo
	HistoryLimit int

	// AutoWhite and AutoBlack hand a side to the oracle
	AutoWhite bool
	AutoBlack bool

	// StartFEN overrides the standard starting position
	StartFEN string
}

// NewGameConfig creates a GameConfig with default values.
func NewGameConfig() *GameConfig {
	return &GameConfig{
		HistoryLimit: engine.DefaultHistoryLimit,
	}
}

// Validate checks the game settings, decoding StartFEN if set.
func (g *GameConfig) Validate() error {
	if g.HistoryLimit < 1 {
		return invalid("history limit %d must be at least 1", g.HistoryLimit)
	}
	if g.StartFEN != "" {
		if _, err := engine.DecodePosition(g.StartFEN); err != nil {
			return invalid("start position: %v", err)
		}
	}
	return nil
}
