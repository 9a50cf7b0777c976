package pfqcore_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pfqcore "github.com/pfq-lang/pfqcore"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				total += c.GetValue()
			}
		}
		return total
	}
	t.Fatalf("metric %s not registered", name)
	return 0
}

func histogramCount(t *testing.T, reg *prometheus.Registry, name string) uint64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var total uint64
		for _, m := range mf.GetMetric() {
			if h := m.GetHistogram(); h != nil {
				total += h.GetSampleCount()
			}
		}
		return total
	}
	t.Fatalf("metric %s not registered", name)
	return 0
}

func TestPrometheusObserver_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := pfqcore.NewPrometheusObserver(reg)

	obs.ObserveRun(1_000_000, false)
	obs.ObserveRun(2_000_000, true)
	obs.ObserveEnqueue(96, true)
	obs.ObserveEnqueue(0, false)
	obs.ObserveEnqueueOverflow()
	obs.ObserveQueueDepth(3)
	obs.ObserveConsumerWake()

	assert.InDelta(t, 2, counterValue(t, reg, "pfq_pipeline_runs_total"), 0.001)
	assert.InDelta(t, 1, counterValue(t, reg, "pfq_pipeline_drops_total"), 0.001)
	assert.InDelta(t, 2, counterValue(t, reg, "pfq_queue_enqueues_total"), 0.001)
	assert.InDelta(t, 96, counterValue(t, reg, "pfq_queue_enqueued_bytes_total"), 0.001)
	assert.InDelta(t, 1, counterValue(t, reg, "pfq_queue_overflows_total"), 0.001)
	assert.InDelta(t, 1, counterValue(t, reg, "pfq_queue_consumer_wakes_total"), 0.001)
	assert.Equal(t, uint64(2), histogramCount(t, reg, "pfq_pipeline_run_seconds"))
	assert.Equal(t, uint64(1), histogramCount(t, reg, "pfq_queue_depth_slots"))
}

func TestPrometheusObserver_AsEngineObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := pfqcore.NewEngine(&pfqcore.Options{Observer: pfqcore.NewPrometheusObserver(reg)})
	e.AddGroup("g0", pfqcore.DefaultClassMask)

	p, err := e.Install("g0", pfqcore.NewComputationDescr(0,
		pfqcore.MonadicDescr("dummy", 1, pfqcore.IntArg(0), pfqcore.NoIndex, pfqcore.NoIndex),
	))
	require.NoError(t, err)
	defer p.Teardown()

	require.NotNil(t, p.Run(&pfqcore.Buf{Len: 16, Payload: make([]byte, 16)}))
	assert.InDelta(t, 1, counterValue(t, reg, "pfq_pipeline_runs_total"), 0.001)
}
