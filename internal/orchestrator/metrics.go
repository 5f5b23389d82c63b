package orchestrator

import "github.com/prometheus/client_golang/prometheus"

var (
	gpuTier = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "orcad",
		Subsystem: "gpu",
		Name:      "tier",
		Help:      "Current GPU tier (0=LOW, 1=MID, 2=HIGH)",
	})

	gpuTotalMB = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "orcad",
		Subsystem: "gpu",
		Name:      "vram_total_mb",
		Help:      "Detected total VRAM in MB",
	})

	gpuUsedMB = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "orcad",
		Subsystem: "gpu",
		Name:      "vram_used_mb",
		Help:      "Used VRAM in MB at last sample",
	})

	gpuFreeMB = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "orcad",
		Subsystem: "gpu",
		Name:      "vram_free_mb",
		Help:      "Free VRAM in MB at last sample",
	})

	hostRAMAvailableMB = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "orcad",
		Subsystem: "host",
		Name:      "ram_available_mb",
		Help:      "Available host RAM in MB at last sample",
	})

	activeModels = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "orcad",
		Subsystem: "orchestrator",
		Name:      "active_models",
		Help:      "Models in the active-model table",
	})

	directivesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orcad",
			Subsystem: "orchestrator",
			Name:      "directives_total",
			Help:      "Load directives issued",
		},
		[]string{"tier", "model_type", "keep_alive"},
	)

	evictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orcad",
			Subsystem: "orchestrator",
			Name:      "evictions_total",
			Help:      "Unload requests sent to the model host",
		},
		[]string{"result"},
	)

	adviceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orcad",
			Subsystem: "orchestrator",
			Name:      "advice_total",
			Help:      "Device recommendations by outcome",
		},
		[]string{"device"},
	)

	telemetryDegraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orcad",
			Subsystem: "telemetry",
			Name:      "degraded_total",
			Help:      "Telemetry samples that fell back to placeholder values",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(
		gpuTier, gpuTotalMB, gpuUsedMB, gpuFreeMB, hostRAMAvailableMB,
		activeModels, directivesTotal, evictionsTotal, adviceTotal, telemetryDegraded,
	)
}
