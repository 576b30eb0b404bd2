// chessplay plays chess at the terminal against another human or a UCI
// engine, or classifies a file of positions.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/oracle"
	"github.com/lgbarn/chessrules-go/internal/output"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessplay version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := buildConfig()
	setupLogFile(cfg)
	setupOutputFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *checkFile != "" {
		os.Exit(runCheck(ctx, cfg, *checkFile))
	}

	o := startOracle(ctx, cfg)
	if o != nil {
		defer o.Close() //nolint:errcheck // best effort on exit
	}

	p, err := newPlayer(cfg, o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := p.run(ctx, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogFile redirects diagnostics to the -l file.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.SetLogFile(file)
}

// setupOutputFile redirects states and results to the -o file.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.SetOutput(file)
}

// startOracle launches the configured engine. Failure is reported and the
// game continues without automated sides.
func startOracle(ctx context.Context, cfg *config.Config) oracle.Oracle {
	if !cfg.Oracle.Enabled() {
		return nil
	}
	logger := cfg.Logger("oracle: ")
	e, err := oracle.Start(ctx, cfg.Oracle.Path,
		oracle.WithMoveTime(cfg.Oracle.MoveTime),
		oracle.WithDepth(cfg.Oracle.Depth),
		oracle.WithTimeout(cfg.Oracle.Timeout),
		oracle.WithLogger(logger, cfg.Verbosity),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting oracle %s: %v\n", cfg.Oracle.Path, err)
		return nil
	}
	return e
}

// runCheck classifies every position in path and returns the exit code.
func runCheck(ctx context.Context, cfg *config.Config, path string) int {
	file, err := os.Open(path) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file %s: %v\n", path, err)
		return 1
	}
	defer file.Close()

	w := output.NewStateWriter(cfg.OutputFile, cfg)
	stats, err := classifyPositions(ctx, cfg, file, w)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if cfg.Verbosity > 0 {
		reportStatistics(cfg, stats)
	}
	if stats.Invalid > 0 {
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessplay [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess at the terminal, or classify positions with -check.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nCommands:\n")
	fmt.Fprintf(os.Stderr, "  e2e4, e7e8q  Play a move in long algebraic notation\n")
	fmt.Fprintf(os.Stderr, "  moves [sq]   List legal moves, or mark where the piece on sq can go\n")
	fmt.Fprintf(os.Stderr, "  undo         Take back a move (two against the oracle)\n")
	fmt.Fprintf(os.Stderr, "  hint         Let the oracle play the side to move\n")
	fmt.Fprintf(os.Stderr, "  auto SIDE    Hand white, black, both or none to the oracle\n")
	fmt.Fprintf(os.Stderr, "  flip         Swap sides with the oracle\n")
	fmt.Fprintf(os.Stderr, "  rotate       Turn the board around\n")
	fmt.Fprintf(os.Stderr, "  fen          Print the position\n")
	fmt.Fprintf(os.Stderr, "  board        Print the board again\n")
	fmt.Fprintf(os.Stderr, "  quit         Leave\n")
}
