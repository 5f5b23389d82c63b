package providers

import (
	"github.com/prometheus/client_golang/prometheus"

	"orcad/pkg/types"
)

var (
	providerUp = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "orcad",
		Subsystem: "provider",
		Name:      "up",
		Help:      "Result of the last health probe per provider (1 = ok).",
	}, []string{"provider"})
	providerLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "orcad",
		Subsystem: "provider",
		Name:      "health_latency_seconds",
		Help:      "Latency of successful provider health probes.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"provider"})
)

func init() {
	prometheus.MustRegister(providerUp, providerLatency)
}

func observeHealth(h types.ProviderHealth) {
	if h.OK {
		providerUp.WithLabelValues(h.ID).Set(1)
		providerLatency.WithLabelValues(h.ID).Observe(h.LatencyMS / 1000)
		return
	}
	providerUp.WithLabelValues(h.ID).Set(0)
}
