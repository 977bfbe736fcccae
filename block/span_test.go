package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput_ConsumesAllByDefault(t *testing.T) {
	in := NewInput([]int{1, 2, 3})
	assert.Equal(t, 3, in.Consumed())

	assert.True(t, in.Consume(1))
	assert.Equal(t, 1, in.Consumed())

	assert.False(t, in.Consume(4))
	assert.False(t, in.Consume(-1))
	assert.Equal(t, 1, in.Consumed())
}

func TestOutput_PublishWithinCapacity(t *testing.T) {
	out := NewOutput(make([]string, 2))
	assert.Zero(t, out.Published())

	out.Set(0, "a")
	out.Publish(1)

	assert.Equal(t, 1, out.Published())
	assert.NoError(t, out.Err())
}

func TestOutput_PublishBeyondCapacityIsRecorded(t *testing.T) {
	out := NewOutput(make([]string, 2))

	out.Publish(3)

	assert.Zero(t, out.Published())
	assert.ErrorContains(t, out.Err(), "exceeds output capacity")
}

func TestPortDescriptors(t *testing.T) {
	p := PortIn[complex64]("in")
	assert.Equal(t, In, p.Direction)
	assert.Equal(t, "complex64", p.Type)
	assert.Equal(t, "out out<float64>", PortOut[float64]("out").String())
}
