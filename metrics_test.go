package pfqcore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pfqcore "github.com/pfq-lang/pfqcore"
)

func TestMetrics_RecordAndSnapshot(t *testing.T) {
	m := pfqcore.NewMetrics()

	snap := m.Snapshot()
	assert.Equal(t, uint64(0), snap.Runs)

	m.RecordRun(1_000_000, false) // 1ms, pass
	m.RecordRun(2_000_000, true)  // 2ms, drop
	m.RecordNullRun()

	m.RecordEnqueue(96, true)
	m.RecordEnqueue(0, false)
	m.RecordEnqueueOverflow()
	m.RecordQueueDepth(3)
	m.RecordQueueDepth(1)
	m.RecordConsumerWake()

	snap = m.Snapshot()
	assert.Equal(t, uint64(3), snap.Runs)
	assert.Equal(t, uint64(1), snap.Drops)
	assert.Equal(t, uint64(1), snap.NullRun)
	assert.Equal(t, uint64(1), snap.EnqueueOK)
	assert.Equal(t, uint64(1), snap.EnqueueFail)
	assert.Equal(t, uint64(1), snap.EnqueueOverflow)
	assert.Equal(t, uint64(96), snap.EnqueueBytes)
	assert.Equal(t, uint64(1), snap.ConsumerWakes)
	assert.Equal(t, uint32(3), snap.MaxQueueDepth)
	assert.InDelta(t, 2.0, snap.AvgQueueDepth, 0.001)

	// Latency buckets are cumulative: a 1ms run lands in every bucket from
	// 1ms up.
	assert.Equal(t, uint64(0), snap.LatencyHistogram[0]) // <= 1us
	assert.Equal(t, uint64(1), snap.LatencyHistogram[3]) // <= 1ms
	assert.Equal(t, uint64(2), snap.LatencyHistogram[4]) // <= 10ms

	// 1 drop out of 3 runs.
	assert.InDelta(t, 100.0/3.0, snap.DropRate, 0.01)
}

func TestMetrics_Reset(t *testing.T) {
	m := pfqcore.NewMetrics()
	m.RecordRun(500, true)
	m.RecordEnqueue(64, true)
	m.Reset()

	snap := m.Snapshot()
	assert.Equal(t, uint64(0), snap.Runs)
	assert.Equal(t, uint64(0), snap.EnqueueOK)
	assert.Equal(t, uint32(0), snap.MaxQueueDepth)
}

func TestMetricsObserver_Forwards(t *testing.T) {
	m := pfqcore.NewMetrics()
	var obs pfqcore.Observer = pfqcore.NewMetricsObserver(m)

	obs.ObserveRun(1000, true)
	obs.ObserveEnqueue(32, true)
	obs.ObserveEnqueueOverflow()
	obs.ObserveQueueDepth(2)
	obs.ObserveConsumerWake()

	snap := m.Snapshot()
	assert.Equal(t, uint64(1), snap.Runs)
	assert.Equal(t, uint64(1), snap.Drops)
	assert.Equal(t, uint64(1), snap.EnqueueOK)
	assert.Equal(t, uint64(1), snap.EnqueueOverflow)
	assert.Equal(t, uint64(1), snap.ConsumerWakes)
}
