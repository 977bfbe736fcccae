package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/blocksim/block/delay"
)

var (
	// CLI flags for `delay`
	targetThroughput  float64 // Target throughput R in samples/s
	referenceWorkSize uint64  // Reference work size N_r
	complexityOrder   float64 // Complexity exponent k
	workSizes         []int   // Batch sizes N to evaluate
	measure           bool    // Also wait out each delay and report the measured time
	busyWait          bool    // Spin instead of yield-sleep when measuring
)

// delayCmd prints the SimCompute delay for a list of batch sizes
var delayCmd = &cobra.Command{
	Use:   "delay",
	Short: "Evaluate the compute delay model for a set of batch sizes",
	Run: func(cmd *cobra.Command, args []string) {
		model, err := delay.NewModel(targetThroughput, referenceWorkSize, complexityOrder)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		printDelayTable(cmd.OutOrStdout(), model, workSizes, measure, delay.StrategyFor(busyWait))
	},
}

// printDelayTable writes one row per batch size. When measure is set every
// delay is waited out with strategy s and the observed duration reported.
func printDelayTable(w io.Writer, m delay.Model, sizes []int, measure bool, s delay.Strategy) {
	fmt.Fprintf(w, "R=%g S/s N_r=%d k=%g\n", m.TargetThroughput, m.ReferenceWorkSize, m.ComplexityOrder)
	if measure {
		fmt.Fprintf(w, "%10s %16s %14s %14s\n", "N", "seconds", "delay", "measured("+s.String()+")")
	} else {
		fmt.Fprintf(w, "%10s %16s %14s\n", "N", "seconds", "delay")
	}
	for _, n := range sizes {
		d := m.Delay(n)
		if !measure {
			fmt.Fprintf(w, "%10d %16.9g %14v\n", n, m.Seconds(n), d)
			continue
		}
		start := time.Now()
		delay.Wait(start, d, s)
		fmt.Fprintf(w, "%10d %16.9g %14v %14v\n", n, m.Seconds(n), d, time.Since(start))
	}
}

func init() {
	defaults := delay.DefaultModel()
	delayCmd.Flags().Float64Var(&targetThroughput, "throughput", defaults.TargetThroughput, "Target throughput R in samples per second")
	delayCmd.Flags().Uint64Var(&referenceWorkSize, "ref-size", defaults.ReferenceWorkSize, "Reference work size N_r")
	delayCmd.Flags().Float64Var(&complexityOrder, "order", defaults.ComplexityOrder, "Complexity order k")
	delayCmd.Flags().IntSliceVar(&workSizes, "n", []int{0, 1, 256, 1024, 4096, 65536}, "Comma-separated batch sizes N")
	delayCmd.Flags().BoolVar(&measure, "measure", false, "Wait out each delay and report the measured duration")
	delayCmd.Flags().BoolVar(&busyWait, "busy-wait", true, "Spin while measuring instead of sleeping in 10us quanta")
}
