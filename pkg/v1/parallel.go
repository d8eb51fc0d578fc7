package spatialjoin

import (
	"runtime"
	"sync"
)

// joinParallel resolves points on a worker pool. Each worker reads only
// the shared, read-only index and writes into its own output slot, so the
// result is identical to a serial join; only the Progress callback
// interleaving differs.
func joinParallel(points []*PointFeature, index *PolygonIndex, opts JoinOptions) *JoinResult {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(points) {
		workers = len(points)
	}

	type pointResult struct {
		index   int
		row     Row
		skipped []SkippedPolygon
	}

	jobs := make(chan int, len(points))
	results := make(chan pointResult, len(points))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				row, skipped := resolvePoint(points[idx], index, opts)
				results <- pointResult{index: idx, row: row, skipped: skipped}
			}
		}()
	}

	for i := range points {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect into pre-sized, index-keyed slots; arrival order does not
	// matter. Skip records and ErrorLog writes happen only here, on the
	// collector goroutine.
	rows := make([]Row, len(points))
	skips := newSkipSet()
	done := 0
	for result := range results {
		done++
		rows[result.index] = result.row
		skips.add(result.skipped, opts.ErrorLog)
		if opts.Progress != nil {
			opts.Progress(done, len(points))
		}
	}

	return finishResult(rows, skips)
}
