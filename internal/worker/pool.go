// Package worker classifies many serialized positions in parallel.
package worker

import (
	"context"
	"sort"
	"sync"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/hashing"
)

// WorkItem is one serialized position to classify.
type WorkItem struct {
	FEN   string
	Index int // Position in the input, used to restore order
}

// ProcessResult is the classification of one position.
type ProcessResult struct {
	FEN        string
	Index      int
	Status     chess.Status
	SideToMove chess.Colour
	LegalMoves int  // Legal moves of the side to move
	Duplicate  bool // Same position already seen in this batch
	Err        error
}

// ProcessFunc classifies a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Classifier returns a ProcessFunc that decodes each position and reports
// its status. When detector is non-nil, repeated positions are flagged.
func Classifier(detector *hashing.ThreadSafeDuplicateDetector) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		res := ProcessResult{FEN: item.FEN, Index: item.Index}
		pos, err := engine.DecodePosition(item.FEN)
		if err != nil {
			res.Err = err
			return res
		}
		res.SideToMove = pos.SideToMove()
		res.Status = engine.Evaluate(pos)
		res.LegalMoves = len(engine.LegalMoves(pos, pos.SideToMove()))
		if detector != nil {
			res.Duplicate = detector.CheckAndAdd(pos)
		}
		return res
	}
}

// Pool runs a ProcessFunc over work items on a fixed number of goroutines.
type Pool struct {
	numWorkers  int
	bufferSize  int
	processFunc ProcessFunc
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool. Default: 1 worker, buffer size of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Stream processes items as they arrive on in. The returned channel is
// closed once in is closed and drained, or ctx is cancelled; items still
// queued at cancellation are dropped.
func (p *Pool) Stream(ctx context.Context, in <-chan WorkItem) <-chan ProcessResult {
	out := make(chan ProcessResult, p.bufferSize)

	var wg sync.WaitGroup
	for i := 0; i < p.numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-in:
					if !ok {
						return
					}
					res := p.processFunc(item)
					select {
					case out <- res:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Run processes every item and returns the results in input order. If ctx
// is cancelled the results gathered so far are returned with ctx.Err().
func (p *Pool) Run(ctx context.Context, items []WorkItem) ([]ProcessResult, error) {
	in := make(chan WorkItem, p.bufferSize)
	go func() {
		defer close(in)
		for _, item := range items {
			select {
			case in <- item:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make([]ProcessResult, 0, len(items))
	for r := range p.Stream(ctx, in) {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results, ctx.Err()
}
