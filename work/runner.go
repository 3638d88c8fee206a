package work

import (
	"errors"
	"log/slog"
	"sync"
)

// Op is the per-item operation for the pooled runner. The worker index
// identifies which pool goroutine handled the item; it is for
// observability only, not a correctness guarantee.
type Op func(worker int, item Item) error

// Sequential invokes op on each item in input order on the calling
// goroutine. Side effects happen in input order. The first error
// aborts the run and is returned.
func Sequential(items []Item, op func(Item) error) error {
	for _, it := range items {
		if err := op(it); err != nil {
			return err
		}
	}
	return nil
}

// Pool runs op over items on a fixed pool of worker goroutines, so at
// most workers operations are in flight at once. It blocks until every
// item has been processed. An item error does not stop queued or
// in-flight siblings; all item errors are joined and returned after
// the run completes.
func Pool(items []Item, workers int, op Op) error {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan Item)
	errs := make([]error, workers)
	var wg sync.WaitGroup

	for w := range workers {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for it := range jobs {
				if err := op(worker, it); err != nil {
					slog.Debug("item failed",
						slog.Int("worker", worker),
						slog.Int("id", it.ID),
					)
					// Each worker owns its own slot, no lock needed.
					errs[worker] = errors.Join(errs[worker], err)
				}
			}
		}(w)
	}

	for _, it := range items {
		jobs <- it
	}
	close(jobs)
	wg.Wait()

	return errors.Join(errs...)
}
