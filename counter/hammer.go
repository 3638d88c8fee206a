package counter

import (
	"sync"
	"time"
)

// Hammer spreads n increments of c across the given number of
// goroutines and returns the elapsed wall time once all have joined.
// The split is as even as possible; n = 0 spawns workers that do
// nothing.
func Hammer(c Counter, workers, n int) time.Duration {
	if workers < 1 {
		workers = 1
	}
	start := time.Now()

	var wg sync.WaitGroup
	for w := range workers {
		share := n / workers
		if w < n%workers {
			share++
		}

		wg.Add(1)
		go func(share int) {
			defer wg.Done()
			for range share {
				c.Inc()
			}
		}(share)
	}
	wg.Wait()

	return time.Since(start)
}
