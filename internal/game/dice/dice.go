// Package dice provides the core randomness abstraction and inclusive roll
// ranges used by the duel combat engine.
package dice

import "fmt"

// Source is the randomness provider for every draw the engine makes.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float64 in [0.0, 1.0).
	Float64() float64
}

// Range is an inclusive integer interval [Min, Max] drawn uniformly.
//
// Invariant: Min <= Max after a successful ParseRange or NewRange.
type Range struct {
	Min int
	Max int
}

// NewRange returns the inclusive range [lo, hi].
//
// Postcondition: Returns a Range, or an error when lo > hi.
func NewRange(lo, hi int) (Range, error) {
	if lo > hi {
		return Range{}, fmt.Errorf("dice: range min %d exceeds max %d", lo, hi)
	}
	return Range{Min: lo, Max: hi}, nil
}

// Roll draws one value uniformly from r using src.
//
// Precondition: r.Min <= r.Max; src must be non-nil.
// Postcondition: r.Min <= result <= r.Max.
func (r Range) Roll(src Source) int {
	return r.Min + src.Intn(r.Max-r.Min+1)
}

// Contains reports whether v lies within r.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// String returns the range in the "min-max" form accepted by ParseRange.
func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}
