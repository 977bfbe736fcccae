package synth

import "github.com/inference-sim/blocksim/block"

const (
	paramDefaultValue = "default_value"
	paramMaxSamples   = "n_samples_max"
	paramCount        = "count"
)

func defaultValue[T any](v T) block.Annotated[T] {
	return block.Annotated[T]{Value: v, Meta: block.Descriptor{
		Name:    paramDefaultValue,
		Display: "default value",
		Doc:     "default value for each sample",
		Visible: true,
	}}
}

func maxSamples() block.Annotated[uint64] {
	return block.Annotated[uint64]{Meta: block.Descriptor{
		Name:    paramMaxSamples,
		Display: "max samples",
		Doc:     "count>=n_samples_max -> signal DONE (0: infinite)",
	}}
}

func sampleCount() block.Annotated[uint64] {
	return block.Annotated[uint64]{Meta: block.Descriptor{
		Name:    paramCount,
		Display: "count",
		Doc:     "sample count (diagnostics only)",
	}}
}

// bound counts one sample and requests stop when count reaches max > 0.
// The stop transition happens exactly once, on the crossing sample.
type bound struct {
	MaxSamples block.Annotated[uint64]
	Count      block.Annotated[uint64]
}

func newBound() bound {
	return bound{MaxSamples: maxSamples(), Count: sampleCount()}
}

func (c *bound) tick(b *block.Base) {
	c.Count.Value++
	if c.MaxSamples.Value > 0 && c.Count.Value >= c.MaxSamples.Value {
		b.RequestStop()
	}
}

func (c *bound) reset() { c.Count.Value = 0 }

func (c *bound) parameters() []block.Parameter {
	return []block.Parameter{&c.MaxSamples, &c.Count}
}
