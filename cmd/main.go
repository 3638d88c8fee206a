package main

import (
	"flag"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"racelab/collection"
	"racelab/counter"
	"racelab/work"

	"github.com/fatih/color"
	"github.com/jamiealquiza/tachymeter"
	"github.com/rodaine/table"
	"golang.org/x/exp/maps"
)

var (
	iterations int
	maxActive  int
	sol        int
	seed       int64
	verbose    bool
)

func init() {
	flag.IntVar(&iterations, "n", 1_000_000, "increments/appends per bulk demonstration")
	flag.IntVar(&maxActive, "k", 3, "max in-flight items for the parallel sleep demonstration")
	flag.IntVar(&sol, "sol", 1, "bounded runner implementation (1=pool, 2=semaphore)")
	flag.Int64Var(&seed, "seed", 42, "work generator base seed")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()
}

type result struct {
	label    string
	expected int
	got      int
	faults   int64
	elapsed  time.Duration
}

func main() {
	if verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	items := work.Generate(work.NewGenerator(seed), 10)

	results := []result{
		sequentialSleep(items),
		parallelSleep(items),
		racyCounter(),
		atomicCounter(),
		mutexCounter(),
		racyAppend(),
		safeAppend(),
	}

	printSummary(results)
}

func sequentialSleep(items []work.Item) result {
	header("1a. Sequential foreach (sleep)")

	t := tachymeter.New(&tachymeter.Config{Size: len(items)})
	start := time.Now()
	_ = work.Sequential(items, func(it work.Item) error {
		s := time.Now()
		time.Sleep(it.Duration)
		t.AddTime(time.Since(s))
		fmt.Printf("  item %d slept %v\n", it.ID, it.Duration)
		return nil
	})
	elapsed := time.Since(start)

	summarize("Sequential", len(items), elapsed)
	fmt.Printf("  per-item p99: %v\n", t.Calc().Time.P99)
	return result{label: "sequential sleep", expected: len(items), got: len(items), elapsed: elapsed}
}

func parallelSleep(items []work.Item) result {
	header(fmt.Sprintf("1b. Parallel foreach (sleep, max %d in flight)", maxActive))

	var (
		mu      sync.Mutex
		handled = make(map[int]int)
	)
	t := tachymeter.New(&tachymeter.Config{Size: len(items)})

	sleep := func(worker int, it work.Item) error {
		s := time.Now()
		time.Sleep(it.Duration)
		t.AddTime(time.Since(s))

		mu.Lock()
		handled[worker]++
		mu.Unlock()
		fmt.Printf("  item %d slept %v on worker %d\n", it.ID, it.Duration, worker)
		return nil
	}

	start := time.Now()
	switch sol {
	case 2:
		// One goroutine per item; each reports itself as its own worker.
		next := 0
		_ = work.Bounded(items, maxActive, func(it work.Item) error {
			mu.Lock()
			w := next
			next++
			mu.Unlock()
			return sleep(w, it)
		})
	default:
		_ = work.Pool(items, maxActive, sleep)
	}
	elapsed := time.Since(start)

	summarize("Parallel", len(items), elapsed)
	fmt.Printf("  per-item p99: %v\n", t.Calc().Time.P99)

	workers := maps.Keys(handled)
	sort.Ints(workers)
	for _, w := range workers {
		fmt.Printf("  worker %d handled %d items\n", w, handled[w])
	}

	return result{label: "parallel sleep", expected: len(items), got: len(items), elapsed: elapsed}
}

func racyCounter() result {
	header("2a. Counter, no synchronization")

	var c counter.Racy
	elapsed := counter.Hammer(&c, runtime.NumCPU(), iterations)

	summarizeCount("No sync", c.Value(), elapsed)
	return result{label: "counter (none)", expected: iterations, got: int(c.Value()), elapsed: elapsed}
}

func atomicCounter() result {
	header("2b. Counter, atomic increments")

	var c counter.Atomic
	elapsed := counter.Hammer(&c, runtime.NumCPU(), iterations)

	summarizeCount("Atomic", c.Value(), elapsed)
	return result{label: "counter (atomic)", expected: iterations, got: int(c.Value()), elapsed: elapsed}
}

func mutexCounter() result {
	header("2c. Counter, mutex-guarded increments")

	var c counter.Mutexed
	elapsed := counter.Hammer(&c, runtime.NumCPU(), iterations)

	summarizeCount("Mutex", c.Value(), elapsed)
	return result{label: "counter (mutex)", expected: iterations, got: int(c.Value()), elapsed: elapsed}
}

func racyAppend() result {
	header("3a. Append, unsynchronized container")

	var v collection.Vector
	faults, elapsed := collection.Flood(func(x int) error {
		return collection.TryAppend(&v, x)
	}, runtime.NumCPU(), iterations)

	summarizeCount("No sync append", int64(v.Len()), elapsed)
	fmt.Printf("  recovered faults: %d\n", faults)
	return result{
		label:    "append (none)",
		expected: iterations,
		got:      v.Len(),
		faults:   faults,
		elapsed:  elapsed,
	}
}

func safeAppend() result {
	header("3b. Append, thread-safe container")

	var s collection.Safe
	_, elapsed := collection.Flood(func(x int) error {
		s.Append(x)
		return nil
	}, runtime.NumCPU(), iterations)

	summarizeCount("Safe append", int64(s.Len()), elapsed)
	return result{label: "append (safe)", expected: iterations, got: s.Len(), elapsed: elapsed}
}

func header(s string) {
	fmt.Printf("\n== %s ==\n", s)
}

func summarize(label string, count int, elapsed time.Duration) {
	fmt.Printf("%s: Count: %d, Elapsed time: %d ms\n", label, count, elapsed.Milliseconds())
}

func summarizeCount(label string, value int64, elapsed time.Duration) {
	fmt.Printf("%s: Counter: %d, Elapsed time: %d ms\n", label, value, elapsed.Milliseconds())
}

func printSummary(results []result) {
	fmt.Println()
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()
	tbl := table.
		New("Demonstration", "Expected", "Got", "Lost", "Faults", "Elapsed").
		WithHeaderFormatter(headerFmt).
		WithFirstColumnFormatter(columnFmt)

	for _, r := range results {
		tbl.AddRow(r.label, r.expected, r.got, r.expected-r.got, r.faults, r.elapsed.Round(time.Millisecond))
	}
	tbl.Print()
}
