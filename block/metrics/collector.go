// Package metrics exports chain activity as Prometheus metrics.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/inference-sim/blocksim/block/flow"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "blocksim"

// Collector implements flow.Observer and flow.DelayObserver. Metrics are
// registered on a private registry so several collectors can coexist.
// Prometheus vectors are safe for concurrent use, so one Collector may
// observe parallel chains.
type Collector struct {
	registry *prometheus.Registry

	workCalls       *prometheus.CounterVec
	samplesConsumed *prometheus.CounterVec
	samplesProduced *prometheus.CounterVec
	workDuration    *prometheus.HistogramVec
	stops           *prometheus.CounterVec
	simDelay        *prometheus.HistogramVec
	simSamples      *prometheus.CounterVec
}

var (
	_ flow.Observer      = (*Collector)(nil)
	_ flow.DelayObserver = (*Collector)(nil)
)

// NewCollector creates a collector whose metrics are prefixed with namespace.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	c := &Collector{registry: reg}

	c.workCalls = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "work_calls_total",
			Help:      "Number of block work invocations",
		},
		[]string{"block", "status"},
	)

	c.samplesConsumed = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_consumed_total",
			Help:      "Samples consumed from block inputs",
		},
		[]string{"block"},
	)

	c.samplesProduced = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_produced_total",
			Help:      "Samples published on block outputs",
		},
		[]string{"block"},
	)

	c.workDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "work_duration_seconds",
			Help:      "Wall time of one block work invocation",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		},
		[]string{"block"},
	)

	c.stops = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "block_stops_total",
			Help:      "Running to Stopped transitions",
		},
		[]string{"block"},
	)

	c.simDelay = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulated_delay_seconds",
			Help:      "Computed delay per SimCompute batch",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		},
		[]string{"block"},
	)

	c.simSamples = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulated_samples_total",
			Help:      "Samples passed through a compute delay",
		},
		[]string{"block"},
	)

	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// OnWork records one invocation.
func (c *Collector) OnWork(e flow.WorkEvent) {
	c.workCalls.WithLabelValues(e.Block, e.Status.String()).Inc()
	if e.Consumed > 0 {
		c.samplesConsumed.WithLabelValues(e.Block).Add(float64(e.Consumed))
	}
	if e.Produced > 0 {
		c.samplesProduced.WithLabelValues(e.Block).Add(float64(e.Produced))
	}
	c.workDuration.WithLabelValues(e.Block).Observe(e.Elapsed.Seconds())
}

// OnStop records a stop transition.
func (c *Collector) OnStop(e flow.StopEvent) {
	c.stops.WithLabelValues(e.Block).Inc()
}

// OnDelay records a simulated compute delay.
func (c *Collector) OnDelay(e flow.DelayEvent) {
	c.simDelay.WithLabelValues(e.Block).Observe(e.Delay.Seconds())
	c.simSamples.WithLabelValues(e.Block).Add(float64(e.N))
}

// WriteText writes all metrics in the Prometheus text exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
