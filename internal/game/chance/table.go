// Package chance provides normalized probability tables over a fixed set of
// keys, with uniform redistribution, single-key override and categorical
// sampling.
package chance

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap/zapcore"
)

// Tolerance is the maximum deviation of a table's weight sum from 1.0.
const Tolerance = 1e-9

// ErrInvalidArgument is returned for every contract violation: an empty or
// duplicated key set, an out-of-range weight, an unknown key, or a table with
// no positive weight to sample from.
var ErrInvalidArgument = errors.New("chance: invalid argument")

// Source is the subset of dice.Source used for sampling.
// Using a local interface avoids importing dice.
type Source interface {
	Float64() float64
}

// Table maps each key of a fixed, ordered set to a probability weight.
//
// Invariant: after New, RedistributeUniformly, and any Override with a table
// of two or more keys, the weights sum to 1.0 within Tolerance.
type Table[K comparable] struct {
	keys    []K
	weights map[K]float64
}

// New returns a table assigning 1/N to each of the N keys, in the given order.
//
// Precondition: keys is non-empty and contains no duplicates.
// Postcondition: Returns a uniform table or an error wrapping ErrInvalidArgument.
func New[K comparable](keys []K) (*Table[K], error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: table needs at least one key", ErrInvalidArgument)
	}
	t := &Table[K]{
		keys:    make([]K, 0, len(keys)),
		weights: make(map[K]float64, len(keys)),
	}
	for _, k := range keys {
		if _, dup := t.weights[k]; dup {
			return nil, fmt.Errorf("%w: duplicate key %v", ErrInvalidArgument, k)
		}
		t.keys = append(t.keys, k)
		t.weights[k] = 0
	}
	t.RedistributeUniformly()
	return t, nil
}

// Len returns the number of keys in the table.
func (t *Table[K]) Len() int { return len(t.keys) }

// Keys returns a copy of the keys in table order.
func (t *Table[K]) Keys() []K {
	cp := make([]K, len(t.keys))
	copy(cp, t.keys)
	return cp
}

// Weight returns the weight of key and whether key is in the table.
func (t *Table[K]) Weight(key K) (float64, bool) {
	w, ok := t.weights[key]
	return w, ok
}

// Weights returns the weights in table order, parallel to Keys.
func (t *Table[K]) Weights() []float64 {
	out := make([]float64, len(t.keys))
	for i, k := range t.keys {
		out[i] = t.weights[k]
	}
	return out
}

// Sum returns the total of all weights.
func (t *Table[K]) Sum() float64 {
	var sum float64
	for _, k := range t.keys {
		sum += t.weights[k]
	}
	return sum
}

// IsUniform reports whether every weight equals 1/N within Tolerance.
func (t *Table[K]) IsUniform() bool {
	avg := 1 / float64(len(t.keys))
	for _, k := range t.keys {
		if math.Abs(t.weights[k]-avg) > Tolerance {
			return false
		}
	}
	return true
}

// RedistributeUniformly resets every weight to 1/N.
//
// Postcondition: IsUniform() is true.
func (t *Table[K]) RedistributeUniformly() {
	avg := 1 / float64(len(t.keys))
	for _, k := range t.keys {
		t.weights[k] = avg
	}
}

// Override sets key's weight to weight and spreads 1-weight evenly across all
// other keys.
//
// Precondition: key is in the table; 0 <= weight <= 1.
// Postcondition: on success Weight(key) == weight and every other key holds
// (1-weight)/(N-1); on error the table is unchanged and the error wraps
// ErrInvalidArgument.
func (t *Table[K]) Override(key K, weight float64) error {
	if math.IsNaN(weight) || weight > 1.0 || weight < 0 {
		return fmt.Errorf("%w: weight %v must be within [0, 1]", ErrInvalidArgument, weight)
	}
	if _, ok := t.weights[key]; !ok {
		return fmt.Errorf("%w: unknown key %v", ErrInvalidArgument, key)
	}

	rest := 0.0
	if others := len(t.keys) - 1; others > 0 && 1.0-weight > 0 {
		rest = (1.0 - weight) / float64(others)
	}
	for _, k := range t.keys {
		t.weights[k] = rest
	}
	t.weights[key] = weight
	return nil
}

// Sample draws one key using the weights as a categorical distribution.
// Weights need not be normalized; the draw is scaled by their sum.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a key with positive weight, or an error wrapping
// ErrInvalidArgument when no weight is positive.
func (t *Table[K]) Sample(src Source) (K, error) {
	total := t.Sum()
	if total <= 0 {
		var zero K
		return zero, fmt.Errorf("%w: cannot sample from a table with no positive weight", ErrInvalidArgument)
	}

	r := src.Float64() * total
	var cumulative float64
	last := -1
	for i, k := range t.keys {
		w := t.weights[k]
		if w <= 0 {
			continue
		}
		last = i
		cumulative += w
		if r < cumulative {
			return k, nil
		}
	}
	// Rounding can leave r at or just past the final bound.
	return t.keys[last], nil
}

// Snapshot returns an independent copy of the key → weight mapping.
func (t *Table[K]) Snapshot() map[K]float64 {
	out := make(map[K]float64, len(t.weights))
	for k, w := range t.weights {
		out[k] = w
	}
	return out
}

// MarshalLogObject implements zapcore.ObjectMarshaler so a table can be passed
// to zap.Object.
func (t *Table[K]) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for _, k := range t.keys {
		enc.AddFloat64(fmt.Sprint(k), t.weights[k])
	}
	return nil
}
