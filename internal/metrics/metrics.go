// Package metrics prometheus метрики проверок доступа.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fsdevblog/geolink/internal/models"
)

const namespace = "geolink"

// Metrics счетчики исходов, ошибки записи событий и длительность проверок.
type Metrics struct {
	registry       *prometheus.Registry
	verifications  *prometheus.CounterVec
	recordFailures *prometheus.CounterVec
	duration       prometheus.Histogram
}

// New регистрирует метрики в собственном реестре вместе с метриками процесса и go runtime.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Access verifications by outcome.",
		}, []string{"outcome"}),
		recordFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_record_failures_total",
			Help:      "Access events that could not be written, by sink.",
		}, []string{"sink"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "verification_duration_seconds",
			Help:      "Time spent verifying access, including event recording.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		m.verifications,
		m.recordFailures,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveVerification(outcome models.Outcome, elapsed time.Duration) {
	m.verifications.WithLabelValues(string(outcome)).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRecordFailure(sink string) {
	m.recordFailures.WithLabelValues(sink).Inc()
}

// Handler http обработчик для /metrics.
func (m *Metrics) Handler() http.Handler {
	// Сжатие выполняет gzip middleware роутера.
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry, DisableCompression: true})
}

// Registry нужен тестам и для регистрации дополнительных коллекторов.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
