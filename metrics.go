package custompaint

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	batches      prometheus.Counter
	skipped      prometheus.Counter
	instructions *prometheus.CounterVec
	duration     prometheus.Histogram
	views        prometheus.GaugeFunc
}

func newMetrics(views func() float64) *metrics {
	return &metrics{
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "custompaint_batches_total",
			Help: "Paint batches executed.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "custompaint_batches_skipped_total",
			Help: "Paint batches dropped because the view had no surface.",
		}),
		instructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "custompaint_instructions_total",
			Help: "Paint instructions by outcome.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "custompaint_batch_duration_seconds",
			Help:    "Time spent executing a paint batch.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		views: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "custompaint_views",
			Help: "Live views.",
		}, views),
	}
}

func (m *metrics) register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.batches, m.skipped, m.instructions, m.duration, m.views} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveBatch implements painter.Observer.
func (m *metrics) ObserveBatch(executed, ignored int, elapsed time.Duration) {
	m.batches.Inc()
	m.instructions.WithLabelValues("executed").Add(float64(executed))
	m.instructions.WithLabelValues("ignored").Add(float64(ignored))
	m.duration.Observe(elapsed.Seconds())
}
