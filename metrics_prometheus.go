package pfqcore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusObserver exports run and queue signals as Prometheus metrics,
// an alternative to the in-process Metrics counters for deployments that
// already scrape. Wire it in through Options.Observer.
type PrometheusObserver struct {
	runsTotal      prometheus.Counter
	dropsTotal     prometheus.Counter
	runLatency     prometheus.Histogram
	enqueuesTotal  *prometheus.CounterVec
	enqueueBytes   prometheus.Counter
	overflowsTotal prometheus.Counter
	queueDepth     prometheus.Histogram
	consumerWakes  prometheus.Counter
}

// NewPrometheusObserver registers the pfqcore metric family with reg (nil
// uses the default registerer) and returns the observer.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &PrometheusObserver{
		runsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "pfq_pipeline_runs_total",
			Help: "Total packet pipeline evaluations",
		}),
		dropsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "pfq_pipeline_drops_total",
			Help: "Pipeline evaluations that ended in a drop action",
		}),
		runLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pfq_pipeline_run_seconds",
			Help:    "Per-packet pipeline evaluation latency",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
		}),
		enqueuesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pfq_queue_enqueues_total",
			Help: "MPDB enqueue attempts by result",
		}, []string{"result"}),
		enqueueBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "pfq_queue_enqueued_bytes_total",
			Help: "Payload bytes committed to queue slots",
		}),
		overflowsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "pfq_queue_overflows_total",
			Help: "Enqueue attempts rejected because the current half was full",
		}),
		queueDepth: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pfq_queue_depth_slots",
			Help:    "Per-half slot occupancy observed after each enqueue",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		consumerWakes: factory.NewCounter(prometheus.CounterOpts{
			Name: "pfq_queue_consumer_wakes_total",
			Help: "Producer-issued consumer wake-ups",
		}),
	}
}

func (o *PrometheusObserver) ObserveRun(latencyNs uint64, dropped bool) {
	o.runsTotal.Inc()
	if dropped {
		o.dropsTotal.Inc()
	}
	o.runLatency.Observe(float64(latencyNs) / 1e9)
}

func (o *PrometheusObserver) ObserveEnqueue(bytes uint64, ok bool) {
	if ok {
		o.enqueuesTotal.WithLabelValues("ok").Inc()
		o.enqueueBytes.Add(float64(bytes))
	} else {
		o.enqueuesTotal.WithLabelValues("fail").Inc()
	}
}

func (o *PrometheusObserver) ObserveEnqueueOverflow() {
	o.overflowsTotal.Inc()
}

func (o *PrometheusObserver) ObserveQueueDepth(qLen uint32) {
	o.queueDepth.Observe(float64(qLen))
}

func (o *PrometheusObserver) ObserveConsumerWake() {
	o.consumerWakes.Inc()
}
