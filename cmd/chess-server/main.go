// chess-server serves chess games over HTTP and websockets.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/httpapi"
	"github.com/lgbarn/chessrules-go/internal/oracle"
	"github.com/lgbarn/chessrules-go/internal/session"
)

const programVersion = "0.1.0"

var (
	listenAddr    = flag.String("addr", ":3000", "Listen address")
	allowOrigins  = flag.String("origins", "*", "Comma-separated CORS origins")
	oraclePath    = flag.String("oracle", "", "UCI engine executable (e.g. stockfish)")
	oracleTime    = flag.Duration("movetime", 100*time.Millisecond, "Oracle thinking time per move")
	oracleDepth   = flag.Int("depth", 0, "Oracle search depth (overrides -movetime)")
	oracleTimeout = flag.Duration("timeout", 5*time.Second, "Maximum wait for an oracle answer")
	historyLimit  = flag.Int("history", 30, "Number of positions kept for undo")
	logFile       = flag.String("l", "", "Write diagnostics to log file")
	verbosity     = flag.Int("v", 1, "Log verbosity: 0=off, 1=events, 2=requests and oracle protocol")
	version       = flag.Bool("version", false, "Show version")
)

// buildConfig turns the command-line flags into a configuration.
func buildConfig() *config.Config {
	return config.NewConfigBuilder().
		WithListenAddr(*listenAddr).
		WithAllowOrigins(*allowOrigins).
		WithOracle(*oraclePath, *oracleTime).
		WithOracleDepth(*oracleDepth).
		WithOracleTimeout(*oracleTimeout).
		WithHistoryLimit(*historyLimit).
		WithVerbosity(*verbosity).
		Build()
}

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("chess-server version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := buildConfig()
	if *logFile != "" {
		file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		defer file.Close()
		cfg.SetLogFile(file)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run serves until interrupted.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var o oracle.Oracle
	if cfg.Oracle.Enabled() {
		e, err := oracle.Start(ctx, cfg.Oracle.Path,
			oracle.WithMoveTime(cfg.Oracle.MoveTime),
			oracle.WithDepth(cfg.Oracle.Depth),
			oracle.WithTimeout(cfg.Oracle.Timeout),
			oracle.WithLogger(cfg.Logger("oracle: "), cfg.Verbosity),
		)
		if err != nil {
			return err
		}
		defer e.Close() //nolint:errcheck // best effort on exit
		o = e
	}

	srv := httpapi.New(cfg, session.NewManager(cfg.Logger("sessions: ")), o)

	errc := make(chan error, 1)
	go func() { errc <- srv.Listen() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return srv.Shutdown()
	}
}
