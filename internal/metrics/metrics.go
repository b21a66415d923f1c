// metrics — Prometheus-метрики проходов обогащения.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "enrichment"

// Результаты прохода (label result).
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Metrics собирает счётчики оркестратора. Нулевой указатель допустим:
// все методы на nil ничего не делают, что упрощает тесты сервиса.
type Metrics struct {
	runs      *prometheus.CounterVec
	processed prometheus.Counter
	skipped   *prometheus.CounterVec
	created   prometheus.Counter
	duration  prometheus.Histogram
}

// New создаёт метрики и регистрирует их в reg.
// reg == nil — метрики не регистрируются (нужно для изолированных тестов).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Number of enrichment runs by result.",
		}, []string{"result"}),
		processed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interests_processed_total",
			Help:      "Interests that received new articles.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interests_skipped_total",
			Help:      "Interests skipped during a run by reason.",
		}, []string{"reason"}),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_created_total",
			Help:      "Articles created and linked to interests.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a single enrichment run.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
	}

	if reg != nil {
		reg.MustRegister(m.runs, m.processed, m.skipped, m.created, m.duration)
	}

	return m
}

// ObserveRun фиксирует итог прохода.
func (m *Metrics) ObserveRun(result string, d time.Duration) {
	if m == nil {
		return
	}

	m.runs.WithLabelValues(result).Inc()
	m.duration.Observe(d.Seconds())
}

func (m *Metrics) InterestProcessed(articles int) {
	if m == nil {
		return
	}

	m.processed.Inc()
	m.created.Add(float64(articles))
}

func (m *Metrics) InterestSkipped(reason string) {
	if m == nil {
		return
	}

	m.skipped.WithLabelValues(reason).Inc()
}
