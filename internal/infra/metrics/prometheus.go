package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIMetrics gerencia as métricas Prometheus da aplicação. Cada instância
// carrega seu próprio registry, o que evita colisão de registro em testes.
type APIMetrics struct {
	registry        *prometheus.Registry
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	activeRequests  *prometheus.GaugeVec
	errorsTotal     *prometheus.CounterVec
	registrosTotal  *prometheus.CounterVec
	cacheHitRatio   *prometheus.GaugeVec
}

// NewAPIMetrics cria e registra as métricas do prometheus
func NewAPIMetrics() *APIMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &APIMetrics{
		registry: registry,

		requestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sereno_requests_total",
				Help: "Total number of HTTP requests by path, method, and status code",
			},
			[]string{"path", "method", "status"},
		),

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sereno_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		activeRequests: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sereno_active_requests",
				Help: "Number of in-flight requests being processed",
			},
			[]string{"path", "method"},
		),

		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sereno_errors_total",
				Help: "Total number of errors by type",
			},
			[]string{"path", "method", "error_type"},
		),

		registrosTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sereno_registros_diarios_total",
				Help: "Daily entry registrations by kind (emocao, calendario) and outcome",
			},
			[]string{"kind", "outcome"},
		),

		cacheHitRatio: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sereno_cache_hit_ratio",
				Help: "Cache hit ratio by cache type",
			},
			[]string{"cache_type"},
		),
	}
}

// Handler retorna o handler HTTP que expõe as métricas deste registry
func (m *APIMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RequestStarted registra o início de uma requisição
func (m *APIMetrics) RequestStarted(path, method string) {
	m.activeRequests.WithLabelValues(path, method).Inc()
}

// RequestCompleted registra o fim de uma requisição
func (m *APIMetrics) RequestCompleted(path, method string, status int, duration time.Duration) {
	m.activeRequests.WithLabelValues(path, method).Dec()
	m.requestCounter.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// ErrorOccurred registra um erro de processamento
func (m *APIMetrics) ErrorOccurred(path, method, errorType string) {
	m.errorsTotal.WithLabelValues(path, method, errorType).Inc()
}

// RegistroDiario registra o resultado de uma tentativa de registro diário.
// kind é "emocao" ou "calendario"; outcome é "created" ou "conflict".
func (m *APIMetrics) RegistroDiario(kind, outcome string) {
	m.registrosTotal.WithLabelValues(kind, outcome).Inc()
}

// UpdateCacheHitRatio atualiza a taxa de acerto do cache
func (m *APIMetrics) UpdateCacheHitRatio(hits, misses int64, cacheType string) {
	total := hits + misses
	if total == 0 {
		return
	}
	m.cacheHitRatio.WithLabelValues(cacheType).Set(float64(hits) / float64(total))
}
