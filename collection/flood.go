package collection

import (
	"sync"
	"sync/atomic"
	"time"
)

// Flood spreads n appends across the given number of goroutines,
// calling fn with values 0..n-1 partitioned among workers. A non-nil
// error from fn counts as a fault and never stops the run. It returns
// the fault count and the elapsed wall time once all workers joined.
func Flood(fn func(int) error, workers, n int) (faults int64, elapsed time.Duration) {
	if workers < 1 {
		workers = 1
	}
	start := time.Now()

	var (
		wg     sync.WaitGroup
		failed atomic.Int64
	)
	for w := range workers {
		lo := w * n / workers
		hi := (w + 1) * n / workers

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for x := lo; x < hi; x++ {
				if err := fn(x); err != nil {
					failed.Add(1)
				}
			}
		}(lo, hi)
	}
	wg.Wait()

	return failed.Load(), time.Since(start)
}
