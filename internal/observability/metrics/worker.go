package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	recomputeTotal    *prometheus.CounterVec
	recomputeDuration *prometheus.HistogramVec
	recomputeInFlight prometheus.Gauge
	portfolioScore    *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	recomputeTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dee",
			Subsystem: "worker",
			Name:      "recompute_total",
			Help:      "Total per-user engagement recomputes by status.",
		},
		[]string{"service", "status"},
	)
	recomputeDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dee",
			Subsystem: "worker",
			Name:      "recompute_duration_seconds",
			Help:      "Engagement recompute duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	recomputeInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dee",
			Subsystem: "worker",
			Name:      "recompute_in_flight",
			Help:      "Number of in-flight recompute tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	portfolioScore := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dee",
			Subsystem: "worker",
			Name:      "portfolio_score",
			Help:      "Distribution of preparedness scores produced by recomputes.",
			Buckets:   []float64{0, 10, 25, 40, 50, 60, 75, 90, 100},
		},
		[]string{"service"},
	)
	registry.MustRegister(recomputeTotal, recomputeDuration, recomputeInFlight, portfolioScore)

	return &WorkerMetrics{
		registry:          registry,
		recomputeTotal:    recomputeTotal,
		recomputeDuration: recomputeDuration,
		recomputeInFlight: recomputeInFlight,
		portfolioScore:    portfolioScore,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartRecompute() {
	m.recomputeInFlight.Inc()
}

func (m *WorkerMetrics) FinishRecompute(service string, duration time.Duration, err error) {
	m.recomputeInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.recomputeTotal.WithLabelValues(service, status).Inc()
	m.recomputeDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObservePortfolioScore(service string, score int) {
	m.portfolioScore.WithLabelValues(service).Observe(float64(score))
}
