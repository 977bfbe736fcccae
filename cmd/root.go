package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/blocksim/block/flow"
	"github.com/inference-sim/blocksim/block/metrics"
	_ "github.com/inference-sim/blocksim/block/synth" // registers the synthetic blocks
	"github.com/inference-sim/blocksim/block/trace"
)

var (
	// CLI flags for `run`
	configPath   string        // Path to the YAML flow file
	parallel     int           // Number of independent chains (overrides the file)
	timeout      time.Duration // Wall-clock limit for the whole run; 0 = none
	logLevel     string        // Log verbosity level
	traceLevel   string        // Work-call trace level
	traceMax     int           // Cap on stored trace records
	printMetrics bool          // Print Prometheus metrics after the run
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "blocksim",
	Short: "Synthetic stream-processing blocks for throughput testing",
}

// runCmd runs the chain described by a flow file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a block chain from a YAML flow file",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		if configPath == "" {
			logrus.Fatalf("Flow file not provided, use --config")
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}
		spec, err := flow.LoadSpec(configPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if err := runFlow(ctx, cmd.OutOrStdout(), spec); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Info("Run complete.")
	},
}

// setLogLevel applies a --log flag value, exiting on an unknown level.
func setLogLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(lvl)
}

// runFlow executes spec with the observers selected by the flags and prints
// reports, trace summary and metrics to w.
func runFlow(ctx context.Context, w io.Writer, spec *flow.Spec) error {
	var observers []flow.Observer
	var tracer *flow.TraceObserver
	if trace.TraceLevel(traceLevel) != trace.TraceLevelNone {
		tracer = flow.NewTraceObserver(trace.NewFlowTrace(trace.TraceConfig{
			Level:      trace.TraceLevel(traceLevel),
			MaxRecords: traceMax,
		}))
		observers = append(observers, tracer)
	}
	var collector *metrics.Collector
	if printMetrics {
		collector = metrics.NewCollector(metrics.DefaultNamespace)
		observers = append(observers, collector)
	}

	logrus.Infof("Starting %s flow from %s", spec.Type, configPath)
	reports, err := flow.RunParallel(ctx, spec, flow.RunOptions{Parallel: parallel, Observers: observers})
	if err != nil {
		return err
	}

	printReports(w, reports)
	if tracer != nil {
		printTraceSummary(w, trace.Summarize(tracer.Trace()), tracer.Trace().Dropped)
	}
	if collector != nil {
		fmt.Fprintln(w, "=== Metrics ===")
		if err := collector.WriteText(w); err != nil {
			return err
		}
	}
	return nil
}

// printReports writes one section per chain run.
func printReports(w io.Writer, reports []*flow.Report) {
	fmt.Fprintln(w, "=== Run Reports ===")
	for _, r := range reports {
		fmt.Fprintf(w, "run %s: %s", r.RunID, r.Reason)
		if r.StoppedBy != "" {
			fmt.Fprintf(w, " (%s)", r.StoppedBy)
		}
		fmt.Fprintf(w, " after %v, %.0f samples/s\n", r.Elapsed, r.Throughput())
		for _, b := range r.Blocks {
			fmt.Fprintf(w, "  %-20s calls=%-8d consumed=%-12d produced=%-12d %s\n",
				b.Name, b.Calls, b.Consumed, b.Produced, b.State)
		}
	}
}

// printTraceSummary writes per-block trace totals sorted by block name.
func printTraceSummary(w io.Writer, s *trace.TraceSummary, dropped int) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "calls=%d idle=%d dropped=%d\n", s.TotalCalls, s.IdleCalls, dropped)
	names := make([]string, 0, len(s.Blocks))
	for name := range s.Blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b := s.Blocks[name]
		fmt.Fprintf(w, "  %-20s calls=%-8d idle=%-8d busy=%v\n", name, b.Calls, b.IdleCalls, b.Busy)
	}
	if len(s.StopOrder) > 0 {
		fmt.Fprintf(w, "stop order: %v\n", s.StopOrder)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to the YAML flow file")
	runCmd.Flags().IntVar(&parallel, "parallel", 0, "Number of independent chains (0 = use the flow file)")
	runCmd.Flags().DurationVar(&timeout, "timeout", 0, "Stop all chains after this duration (0 = no limit)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Work-call trace level (none, calls)")
	runCmd.Flags().IntVar(&traceMax, "trace-max", 100000, "Maximum number of trace records kept (0 = unlimited)")
	runCmd.Flags().BoolVar(&printMetrics, "metrics", false, "Print Prometheus metrics after the run")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(delayCmd)
	rootCmd.AddCommand(blocksCmd)
}
