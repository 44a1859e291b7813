package shape

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// BatchResult holds the accepted results of a batch in input order plus the
// number of contours that produced no result.
type BatchResult struct {
	// Results holds one entry per accepted contour, in input order.
	Results []Result

	// Index maps each entry of Results back to its input position.
	Index []int

	// Rejected counts contours below the minimum area.
	Rejected int

	// Degenerate counts contours with fewer than 3 points or zero perimeter.
	Degenerate int

	// Errs holds the Analyze error of every input contour, in input order.
	// Entries for accepted contours are nil.
	Errs []error
}

type outcome struct {
	result Result
	err    error
}

// ClassifyAll runs Analyze over every contour using a fixed pool of workers.
//
// workers <= 0 uses runtime.NumCPU(). Contours are independent so the order of
// evaluation does not matter; the output keeps input order. A single bad
// contour never aborts the batch. The only error returned is ctx.Err() when
// the context is cancelled before all contours are dispatched.
func ClassifyAll(ctx context.Context, contours []Contour, minArea float64, workers int) (*BatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(contours) {
		workers = len(contours)
	}

	outcomes := make([]outcome, len(contours))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r, err := Analyze(contours[i], minArea)
				outcomes[i] = outcome{result: r, err: err}
			}
		}()
	}

	var cancelled error
dispatch:
	for i := range contours {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}

	batch := &BatchResult{
		Results: make([]Result, 0, len(contours)),
		Index:   make([]int, 0, len(contours)),
		Errs:    make([]error, len(contours)),
	}
	for i, o := range outcomes {
		batch.Errs[i] = o.err
		switch {
		case o.err == nil:
			batch.Results = append(batch.Results, o.result)
			batch.Index = append(batch.Index, i)
		case errors.Is(o.err, ErrRejected):
			batch.Rejected++
		default:
			batch.Degenerate++
		}
	}
	return batch, nil
}
