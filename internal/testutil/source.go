// Package testutil provides deterministic test helpers shared across packages.
package testutil

import (
	"fmt"
	"sync"
)

// ScriptedSource is a dice.Source that replays fixed values.
// Intn results come from Ints and Float64 results from Floats, each in order.
// It panics when a script is exhausted or a scripted int is out of [0, n),
// so a test fails loudly when its script no longer matches the code.
type ScriptedSource struct {
	mu     sync.Mutex
	Ints   []int
	Floats []float64
	ni, nf int
}

// NewScriptedSource returns a ScriptedSource over ints and floats.
func NewScriptedSource(ints []int, floats []float64) *ScriptedSource {
	return &ScriptedSource{Ints: ints, Floats: floats}
}

// Intn returns the next scripted int.
//
// Precondition: n > 0 and the next scripted int is in [0, n).
func (s *ScriptedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ni >= len(s.Ints) {
		panic(fmt.Sprintf("testutil: int script exhausted after %d draws", s.ni))
	}
	v := s.Ints[s.ni]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("testutil: scripted int %d at index %d is outside [0, %d)", v, s.ni, n))
	}
	s.ni++
	return v
}

// Float64 returns the next scripted float.
func (s *ScriptedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nf >= len(s.Floats) {
		panic(fmt.Sprintf("testutil: float script exhausted after %d draws", s.nf))
	}
	v := s.Floats[s.nf]
	s.nf++
	return v
}

// Remaining returns the number of unread ints and floats.
func (s *ScriptedSource) Remaining() (ints, floats int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Ints) - s.ni, len(s.Floats) - s.nf
}

// ConstSource returns the same int (clamped to n-1) and float for every draw.
// Use Val 0 for the minimum of any range and a large Val for the maximum.
type ConstSource struct {
	Val   int
	Float float64
}

// Intn returns min(Val, n-1).
func (c ConstSource) Intn(n int) int {
	if c.Val >= n {
		return n - 1
	}
	return c.Val
}

// Float64 returns Float.
func (c ConstSource) Float64() float64 { return c.Float }
