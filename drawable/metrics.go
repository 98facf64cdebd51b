package drawable

import (
	"github.com/facebookgo/httpcontrol"
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	resultOK    = "ok"
	resultError = "error"
)

type metrics struct {
	resolves *prometheus.CounterVec
	cached   prometheus.GaugeFunc
	fetches  *prometheus.CounterVec
}

func newMetrics(s *store) *metrics {
	return &metrics{
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "custompaint",
			Subsystem: "drawable",
			Name:      "resolves_total",
			Help:      "Number of drawable resolves by kind and result.",
		}, []string{"kind", "result"}),
		cached: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "custompaint",
			Subsystem: "drawable",
			Name:      "cached",
			Help:      "Number of decoded drawables held in memory.",
		}, func() float64 { return float64(s.len()) }),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "custompaint",
			Subsystem: "drawable",
			Name:      "http_requests_total",
			Help:      "Number of HTTP attempts made by the network loader by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *metrics) register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.resolves, m.cached, m.fetches} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *metrics) observe(kind string, ok bool) {
	result := resultOK
	if !ok {
		result = resultError
	}
	m.resolves.WithLabelValues(kind, result).Inc()
}

// observeFetch counts network loader attempts reported by the transport.
func (m *metrics) observeFetch(s *httpcontrol.Stats) {
	outcome := resultOK
	switch {
	case s.Retry.Pending:
		outcome = "retry"
	case s.Error != nil:
		outcome = resultError
	case s.Response != nil && s.Response.StatusCode >= 300:
		outcome = "status"
	}
	m.fetches.WithLabelValues(outcome).Inc()
}
