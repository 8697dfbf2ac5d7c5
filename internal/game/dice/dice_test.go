package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/duel/internal/game/dice"
)

// maxSource returns the largest legal value for every draw.
type maxSource struct{}

func (maxSource) Intn(n int) int   { return n - 1 }
func (maxSource) Float64() float64 { return 0.999999 }

// minSource returns the smallest legal value for every draw.
type minSource struct{}

func (minSource) Intn(int) int     { return 0 }
func (minSource) Float64() float64 { return 0 }

func TestRange_Roll_Boundaries(t *testing.T) {
	r := dice.Range{Min: 18, Max: 25}
	assert.Equal(t, 18, r.Roll(minSource{}))
	assert.Equal(t, 25, r.Roll(maxSource{}))
}

func TestRange_String(t *testing.T) {
	assert.Equal(t, "10-35", dice.Range{Min: 10, Max: 35}.String())
}

func TestNewRange_RejectsInverted(t *testing.T) {
	_, err := dice.NewRange(5, 4)
	assert.Error(t, err)
	r, err := dice.NewRange(4, 4)
	require.NoError(t, err)
	assert.Equal(t, dice.Range{Min: 4, Max: 4}, r)
}

func TestRange_Roll_Property_InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(0, 100).Draw(rt, "lo")
		width := rapid.IntRange(0, 50).Draw(rt, "width")
		seed := rapid.Int64().Draw(rt, "seed")
		r := dice.Range{Min: lo, Max: lo + width}
		src := dice.NewSeededSource(seed)
		for i := 0; i < 20; i++ {
			assert.True(rt, r.Contains(r.Roll(src)), "roll must lie in %s", r)
		}
	})
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in   string
		want dice.Range
	}{
		{"18-25", dice.Range{Min: 18, Max: 25}},
		{"10 - 35", dice.Range{Min: 10, Max: 35}},
		{" 7 ", dice.Range{Min: 7, Max: 7}},
		{"0-0", dice.Range{Min: 0, Max: 0}},
	}
	for _, tc := range tests {
		got, err := dice.ParseRange(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseRange_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "a-5", "5-b", "25-18", "-5", "1-2-3"} {
		_, err := dice.ParseRange(in)
		assert.Error(t, err, "input %q should fail", in)
	}
}

func TestParseRange_Property_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(0, 1000).Draw(rt, "lo")
		hi := rapid.IntRange(lo, lo+1000).Draw(rt, "hi")
		r := dice.Range{Min: lo, Max: hi}
		got, err := dice.ParseRange(r.String())
		require.NoError(rt, err)
		assert.Equal(rt, r, got)
	})
}

func TestMustParseRange_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { dice.MustParseRange("nope") })
	assert.NotPanics(t, func() { dice.MustParseRange("1-2") })
}

// TestCryptoSource_Intn_InRange verifies the postcondition:
// every value returned by Intn(6) is in [0, 6).
func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_Float64_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

// TestCryptoSource_Intn_PanicsOnZero verifies the precondition:
// Intn panics when called with n <= 0.
func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestSeededSource_Deterministic(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Intn(1000), b.Intn(1000))
		require.Equal(t, a.Float64(), b.Float64())
	}
}

func TestSeededSource_Intn_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewSeededSource(1).Intn(0) })
}

func TestNewSeed(t *testing.T) {
	_, err := dice.NewSeed()
	assert.NoError(t, err)
}

func TestRoller_LogsEveryRoll(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := dice.NewLoggedRoller(minSource{}, zap.New(core))

	assert.Equal(t, 18, r.Roll(dice.Range{Min: 18, Max: 25}))
	v, err := r.RollExpr("10-35")
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	entries := logs.FilterMessage("dice roll").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "18-25", entries[0].ContextMap()["range"])
	assert.Equal(t, int64(18), entries[0].ContextMap()["result"])
}

func TestRoller_RollExpr_Invalid(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewSeededSource(1), nil)
	_, err := r.RollExpr("x")
	assert.Error(t, err)
}
