// Package collection provides an append-only int container in two
// flavors: a Vector that is not safe for concurrent use, and a Safe
// variant that is. The unsafe one exists to be raced against: its
// faults are recoverable panics, unlike the built-in map whose
// concurrent-write check kills the process outright.
package collection

import "fmt"

// Vector is a grow-on-append container backed by a manually managed
// array. It is NOT safe for concurrent use: overlapping appends can
// lose elements, or fault when one goroutine outruns another's grow.
type Vector struct {
	buf []int
	n   int
}

// Append adds x at the end, growing the backing array when full.
func (v *Vector) Append(x int) {
	if v.n == len(v.buf) {
		grown := make([]int, max(2*len(v.buf), 8))
		copy(grown, v.buf)
		v.buf = grown
	}
	v.buf[v.n] = x
	v.n++
}

// Len reports the number of appended elements.
func (v *Vector) Len() int { return v.n }

// Items returns a snapshot copy of the contents.
func (v *Vector) Items() []int {
	out := make([]int, v.n)
	copy(out, v.buf[:v.n])
	return out
}

// TryAppend performs one append on v, recovering any fault caused by
// racy concurrent mutation so a single bad append never takes the
// process down. The returned error reports the recovered fault.
func TryAppend(v *Vector, x int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("append faulted: %v", r)
		}
	}()
	v.Append(x)
	return nil
}
