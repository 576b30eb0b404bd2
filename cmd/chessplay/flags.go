// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"time"

	"github.com/lgbarn/chessrules-go/internal/config"
)

var (
	// Game options
	startFEN     = flag.String("fen", "", "Starting position (default: standard)")
	historyLimit = flag.Int("history", 30, "Number of positions kept for undo")
	whiteAuto    = flag.Bool("white-auto", false, "Let the oracle play White")
	blackAuto    = flag.Bool("black-auto", false, "Let the oracle play Black")

	// Oracle options
	oraclePath    = flag.String("oracle", "", "UCI engine executable (e.g. stockfish)")
	oracleTime    = flag.Duration("movetime", 100*time.Millisecond, "Oracle thinking time per move")
	oracleDepth   = flag.Int("depth", 0, "Oracle search depth (overrides -movetime)")
	oracleTimeout = flag.Duration("timeout", 5*time.Second, "Maximum wait for an oracle answer")

	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	noColor    = flag.Bool("nocolor", false, "Draw the board without colours")
	jsonOutput = flag.Bool("json", false, "Write states as JSON")
	showMoves  = flag.Bool("moves", false, "List legal moves after each position")

	// Batch classification
	checkFile  = flag.String("check", "", "Classify the positions in this file (one per line) and exit")
	workers    = flag.Int("workers", 1, "Number of positions classified in parallel")
	reportDups = flag.Bool("dupes", false, "Flag positions repeated within the batch")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	verbosity = flag.Int("v", 1, "Log verbosity: 0=off, 1=events, 2=oracle protocol")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// buildConfig turns the command-line flags into a configuration.
func buildConfig() *config.Config {
	b := config.NewConfigBuilder().
		WithStartFEN(*startFEN).
		WithHistoryLimit(*historyLimit).
		WithAutomated(*whiteAuto, *blackAuto).
		WithOracle(*oraclePath, *oracleTime).
		WithOracleDepth(*oracleDepth).
		WithOracleTimeout(*oracleTimeout).
		WithNoColor(*noColor).
		WithJSONOutput(*jsonOutput).
		WithWorkers(*workers).
		WithDuplicateReport(*reportDups).
		WithVerbosity(*verbosity)

	cfg := b.Build()
	cfg.Output.ShowLegalMoves = *showMoves
	return cfg
}
