package pfqcore

import (
	"sync/atomic"
	"time"
)

// LatencyBuckets defines the latency histogram buckets in nanoseconds:
// logarithmic spacing from 1us to 10s, bucketing per-packet pipeline run
// latency.
var LatencyBuckets = []uint64{
	1_000,
	10_000,
	100_000,
	1_000_000,
	10_000_000,
	100_000_000,
	1_000_000_000,
	10_000_000_000,
}

const numLatencyBuckets = 8

// Metrics tracks performance and operational statistics for an Engine's
// pipeline runs and its MPDB queues.
type Metrics struct {
	// Pipeline run counters.
	Runs    atomic.Uint64 // Total Evaluator.Run invocations
	Drops   atomic.Uint64 // Runs that ended in a drop action
	NullRun atomic.Uint64 // Runs that returned nil (unknown group or null node result)

	// Queue counters.
	EnqueueOK       atomic.Uint64
	EnqueueFail     atomic.Uint64 // enqueues observed with ok=false; full-half rejections go to EnqueueOverflow
	EnqueueOverflow atomic.Uint64
	EnqueueBytes    atomic.Uint64
	ConsumerWakes   atomic.Uint64

	// Queue depth statistics.
	QueueDepthTotal atomic.Uint64
	QueueDepthCount atomic.Uint64
	MaxQueueDepth   atomic.Uint32

	// Performance tracking.
	TotalLatencyNs atomic.Uint64
	OpCount        atomic.Uint64

	// Latency histogram buckets (cumulative counts); bucket[i] holds the
	// count of runs with latency <= LatencyBuckets[i].
	LatencyBuckets [numLatencyBuckets]atomic.Uint64

	StartTime atomic.Int64
	StopTime  atomic.Int64
}

// NewMetrics creates a new metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.StartTime.Store(time.Now().UnixNano())
	return m
}

// RecordRun records one Evaluator.Run invocation.
func (m *Metrics) RecordRun(latencyNs uint64, dropped bool) {
	m.Runs.Add(1)
	if dropped {
		m.Drops.Add(1)
	}
	m.recordLatency(latencyNs)
}

// RecordNullRun records a run that returned nil.
func (m *Metrics) RecordNullRun() {
	m.Runs.Add(1)
	m.NullRun.Add(1)
}

// RecordEnqueue records one MPDB enqueue attempt.
func (m *Metrics) RecordEnqueue(bytes uint64, ok bool) {
	if ok {
		m.EnqueueOK.Add(1)
		m.EnqueueBytes.Add(bytes)
	} else {
		m.EnqueueFail.Add(1)
	}
}

// RecordEnqueueOverflow records a full-half rejection.
func (m *Metrics) RecordEnqueueOverflow() {
	m.EnqueueOverflow.Add(1)
}

// RecordQueueDepth records the current per-half slot count after an
// enqueue.
func (m *Metrics) RecordQueueDepth(depth uint32) {
	m.QueueDepthTotal.Add(uint64(depth))
	m.QueueDepthCount.Add(1)
	for {
		current := m.MaxQueueDepth.Load()
		if depth <= current {
			break
		}
		if m.MaxQueueDepth.CompareAndSwap(current, depth) {
			break
		}
	}
}

// RecordConsumerWake records a producer-issued consumer wake-up.
func (m *Metrics) RecordConsumerWake() {
	m.ConsumerWakes.Add(1)
}

func (m *Metrics) recordLatency(latencyNs uint64) {
	m.TotalLatencyNs.Add(latencyNs)
	m.OpCount.Add(1)
	for i, bucket := range LatencyBuckets {
		if latencyNs <= bucket {
			m.LatencyBuckets[i].Add(1)
		}
	}
}

// Stop marks the metrics instance as stopped (uptime calculations freeze).
func (m *Metrics) Stop() {
	m.StopTime.Store(time.Now().UnixNano())
}

// MetricsSnapshot is a point-in-time snapshot of Metrics.
type MetricsSnapshot struct {
	Runs    uint64
	Drops   uint64
	NullRun uint64

	EnqueueOK       uint64
	EnqueueFail     uint64
	EnqueueOverflow uint64
	EnqueueBytes    uint64
	ConsumerWakes   uint64

	AvgQueueDepth float64
	MaxQueueDepth uint32

	AvgLatencyNs uint64
	UptimeNs     uint64

	LatencyHistogram [numLatencyBuckets]uint64

	RunsPerSecond float64
	DropRate      float64
}

// Snapshot creates a point-in-time snapshot of m.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Runs:            m.Runs.Load(),
		Drops:           m.Drops.Load(),
		NullRun:         m.NullRun.Load(),
		EnqueueOK:       m.EnqueueOK.Load(),
		EnqueueFail:     m.EnqueueFail.Load(),
		EnqueueOverflow: m.EnqueueOverflow.Load(),
		EnqueueBytes:    m.EnqueueBytes.Load(),
		ConsumerWakes:   m.ConsumerWakes.Load(),
		MaxQueueDepth:   m.MaxQueueDepth.Load(),
	}

	if count := m.QueueDepthCount.Load(); count > 0 {
		snap.AvgQueueDepth = float64(m.QueueDepthTotal.Load()) / float64(count)
	}

	opCount := m.OpCount.Load()
	if opCount > 0 {
		snap.AvgLatencyNs = m.TotalLatencyNs.Load() / opCount
	}

	start := m.StartTime.Load()
	stop := m.StopTime.Load()
	if stop > 0 {
		snap.UptimeNs = uint64(stop - start)
	} else {
		snap.UptimeNs = uint64(time.Now().UnixNano() - start)
	}

	if snap.UptimeNs > 0 {
		seconds := float64(snap.UptimeNs) / 1e9
		snap.RunsPerSecond = float64(snap.Runs) / seconds
	}
	if snap.Runs > 0 {
		snap.DropRate = float64(snap.Drops) / float64(snap.Runs) * 100.0
	}

	for i := 0; i < numLatencyBuckets; i++ {
		snap.LatencyHistogram[i] = m.LatencyBuckets[i].Load()
	}
	return snap
}

// Reset zeroes every counter, useful for test isolation.
func (m *Metrics) Reset() {
	m.Runs.Store(0)
	m.Drops.Store(0)
	m.NullRun.Store(0)
	m.EnqueueOK.Store(0)
	m.EnqueueFail.Store(0)
	m.EnqueueOverflow.Store(0)
	m.EnqueueBytes.Store(0)
	m.ConsumerWakes.Store(0)
	m.QueueDepthTotal.Store(0)
	m.QueueDepthCount.Store(0)
	m.MaxQueueDepth.Store(0)
	m.TotalLatencyNs.Store(0)
	m.OpCount.Store(0)
	for i := 0; i < numLatencyBuckets; i++ {
		m.LatencyBuckets[i].Store(0)
	}
	m.StartTime.Store(time.Now().UnixNano())
	m.StopTime.Store(0)
}

// MetricsObserver adapts Metrics to interfaces.Observer, the narrow
// surface the Evaluator and MPDB Queue depend on.
type MetricsObserver struct {
	metrics *Metrics
}

// NewMetricsObserver returns an Observer that records into m.
func NewMetricsObserver(m *Metrics) *MetricsObserver {
	return &MetricsObserver{metrics: m}
}

func (o *MetricsObserver) ObserveRun(latencyNs uint64, dropped bool) {
	o.metrics.RecordRun(latencyNs, dropped)
}
func (o *MetricsObserver) ObserveEnqueue(bytes uint64, ok bool) { o.metrics.RecordEnqueue(bytes, ok) }
func (o *MetricsObserver) ObserveEnqueueOverflow()              { o.metrics.RecordEnqueueOverflow() }
func (o *MetricsObserver) ObserveQueueDepth(qLen uint32)        { o.metrics.RecordQueueDepth(qLen) }
func (o *MetricsObserver) ObserveConsumerWake()                 { o.metrics.RecordConsumerWake() }

// NoOpObserver discards every observation.
type NoOpObserver struct{}

func (NoOpObserver) ObserveRun(uint64, bool)     {}
func (NoOpObserver) ObserveEnqueue(uint64, bool) {}
func (NoOpObserver) ObserveEnqueueOverflow()     {}
func (NoOpObserver) ObserveQueueDepth(uint32)    {}
func (NoOpObserver) ObserveConsumerWake()        {}
