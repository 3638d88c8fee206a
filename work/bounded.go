package work

import (
	"errors"
	"sync"

	"github.com/notorious-go/sync/semaphore"
)

// Bounded is a second take on the bounded runner: one goroutine per
// item, with the in-flight count capped by a counting semaphore
// instead of a fixed pool. A negative limit means unlimited; a limit
// of zero is treated as one, matching Pool. Same barrier and
// error-aggregation semantics as Pool.
func Bounded(items []Item, limit int, op func(Item) error) error {
	if limit == 0 {
		// A zero-capacity semaphore can never be acquired.
		limit = 1
	}
	sem := semaphore.New(limit)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, it := range items {
		sem.Acquire()
		wg.Add(1)
		go func(it Item) {
			defer wg.Done()
			defer sem.Release()
			if err := op(it); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(it)
	}
	wg.Wait()

	return errors.Join(errs...)
}
