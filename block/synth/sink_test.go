package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/inference-sim/blocksim/block"
)

func TestNullSink_ConsumesEverythingNeverStops(t *testing.T) {
	s := NewNullSink[complex64]()
	for i := 0; i < 1000; i++ {
		in := block.NewInput(make([]complex64, 32))
		require.Equal(t, block.WorkOK, block.ConsumeBulk[complex64](s, in))
		require.Equal(t, 32, in.Consumed())
	}
	assert.False(t, s.StopRequested())
}

func TestCountingSink_StopsAtBound(t *testing.T) {
	// GIVEN a sink bounded at 10
	s := NewCountingSink[float32]()
	require.NoError(t, block.Apply(s, map[string]any{"n_samples_max": 10}))
	stops := 0
	s.OnStop(func() { stops++ })

	// WHEN fed two batches of 6
	in := block.NewInput(make([]float32, 6))
	assert.Equal(t, block.WorkOK, block.ConsumeBulk[float32](s, in))
	assert.Equal(t, 6, in.Consumed())

	in = block.NewInput(make([]float32, 6))
	assert.Equal(t, block.WorkDone, block.ConsumeBulk[float32](s, in))

	// THEN it consumed exactly 10 and stopped once
	assert.Equal(t, 4, in.Consumed())
	assert.Equal(t, uint64(10), s.Count.Value)
	assert.Equal(t, 1, stops)
}

func TestCountingSink_UnboundedNeverStops(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		calls := rapid.IntRange(1, 200).Draw(rt, "calls")
		s := NewCountingSink[int32]()
		for i := 0; i < calls; i++ {
			s.ProcessOne(int32(i))
		}
		if s.StopRequested() {
			rt.Fatalf("unbounded sink stopped after %d calls", calls)
		}
		if s.Count.Value != uint64(calls) {
			rt.Fatalf("count = %d, want %d", s.Count.Value, calls)
		}
	})
}

func TestCountingSink_Reset(t *testing.T) {
	s := NewCountingSink[int32]()
	s.ProcessOne(1)
	s.Reset()
	assert.Zero(t, s.Count.Value)
}
