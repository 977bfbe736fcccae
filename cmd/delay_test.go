package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inference-sim/blocksim/block/delay"
)

func TestPrintDelayTable_DefaultModel(t *testing.T) {
	// GIVEN the default model (100 MS/s, N_r = 1024, k = 1)
	var out bytes.Buffer

	// WHEN the table is printed for N = 0, 1024 and 2048
	printDelayTable(&out, delay.DefaultModel(), []int{0, 1024, 2048}, false, delay.Spin)

	// THEN delays scale linearly and N = 0 costs nothing
	output := out.String()
	assert.Contains(t, output, "R=1e+08 S/s N_r=1024 k=1")
	assert.Contains(t, output, "10.24µs")
	assert.Contains(t, output, "20.48µs")
	assert.Contains(t, output, " 0s")
	assert.NotContains(t, output, "measured")
}

func TestPrintDelayTable_Measure(t *testing.T) {
	var out bytes.Buffer
	printDelayTable(&out, delay.DefaultModel(), []int{1024}, true, delay.YieldSleep)
	assert.Contains(t, out.String(), "measured(yield-sleep)")
}
