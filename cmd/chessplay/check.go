package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/hashing"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// checkStats summarises a classified batch.
type checkStats struct {
	Total      int
	Invalid    int
	Duplicates int
	ByStatus   map[chess.Status]int
}

// readPositions returns the non-blank lines of r that are not # comments.
func readPositions(r io.Reader) ([]worker.WorkItem, error) {
	var items []worker.WorkItem
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, worker.WorkItem{FEN: line, Index: len(items)})
	}
	return items, scanner.Err()
}

// classifyPositions classifies every position in r on the worker pool and
// writes one result per position, in input order.
func classifyPositions(ctx context.Context, cfg *config.Config, r io.Reader, w output.StateWriter) (checkStats, error) {
	stats := checkStats{ByStatus: make(map[chess.Status]int)}

	items, err := readPositions(r)
	if err != nil {
		return stats, err
	}

	var detector *hashing.ThreadSafeDuplicateDetector
	if cfg.Batch.ReportDuplicates {
		detector = hashing.NewThreadSafeDuplicateDetector(0)
	}
	pool := worker.NewPool(worker.Classifier(detector),
		worker.WithWorkers(cfg.Batch.Workers),
		worker.WithBufferSize(cfg.Batch.Workers*2),
	)

	results, err := pool.Run(ctx, items)
	for _, res := range results {
		stats.Total++
		switch {
		case res.Err != nil:
			stats.Invalid++
		case res.Duplicate:
			stats.Duplicates++
			stats.ByStatus[res.Status]++
		default:
			stats.ByStatus[res.Status]++
		}
		if werr := w.WriteResult(res); werr != nil {
			return stats, werr
		}
	}
	if cerr := w.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return stats, err
}

// reportStatistics prints the batch summary to the log.
func reportStatistics(cfg *config.Config, stats checkStats) {
	fmt.Fprintf(cfg.LogFile, "%d position(s) classified, %d invalid", stats.Total, stats.Invalid)
	if cfg.Batch.ReportDuplicates {
		fmt.Fprintf(cfg.LogFile, ", %d duplicate(s)", stats.Duplicates)
	}
	fmt.Fprintln(cfg.LogFile, ".")
	for _, s := range []chess.Status{chess.Ongoing, chess.Check, chess.Checkmate, chess.Stalemate, chess.InsufficientMaterial} {
		if n := stats.ByStatus[s]; n > 0 {
			fmt.Fprintf(cfg.LogFile, "  %-22s %d\n", s, n)
		}
	}
}
