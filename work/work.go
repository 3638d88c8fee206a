package work

import (
	"math/rand"
	"time"
)

// Item is one unit of simulated work.
type Item struct {
	ID       int
	Duration time.Duration
}

const (
	minDuration = 100 * time.Millisecond
	maxDuration = 1000 * time.Millisecond
)

// Generator draws pseudo-random work durations from a fixed seed, so
// runs are reproducible. It is not safe for concurrent use; concurrent
// consumers should each take their own instance via Fork.
type Generator struct {
	seed int64
	r    *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed: seed,
		r:    rand.New(rand.NewSource(seed)),
	}
}

// Fork returns an independent generator for the given worker, seeded
// off the base seed so workers draw distinct but reproducible streams.
// The demo generates its whole item sequence up front on one goroutine
// and never draws during a parallel run; Fork is for consumers that do
// draw concurrently, giving each worker its own instance instead of
// racing on a shared one.
func (g *Generator) Fork(worker int) *Generator {
	return NewGenerator(g.seed + int64(worker) + 1)
}

// Duration draws a simulated work duration in [100ms, 1s).
func (g *Generator) Duration() time.Duration {
	return minDuration + time.Duration(g.r.Int63n(int64(maxDuration-minDuration)))
}

// Generate produces n items with IDs 1..n in input order. Items are
// immutable once generated.
func Generate(g *Generator, n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{ID: i + 1, Duration: g.Duration()}
	}
	return items
}
