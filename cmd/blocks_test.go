package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBlocks_ListsKindsAndParameters(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printBlocks(&out))

	output := out.String()
	for _, kind := range []string{"NullSource", "ConstantSource", "CountingSource", "SlowSource",
		"NullSink", "CountingSink", "Copy", "HeadBlock", "SimCompute"} {
		assert.Contains(t, output, kind+":")
	}
	assert.Contains(t, output, "target_throughput")
	assert.Contains(t, output, "[S/s]")
	assert.Contains(t, output, "n_samples_max")
	assert.Contains(t, output, "delay")
}
