package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serenoapp/sereno-api/internal/infra/metrics"
	"go.uber.org/zap"
)

// MetricsMiddleware fornece middleware para coletar métricas
type MetricsMiddleware struct {
	metrics *metrics.APIMetrics
	logger  *zap.Logger
}

// NewMetricsMiddleware cria um novo middleware de métricas
func NewMetricsMiddleware(apiMetrics *metrics.APIMetrics, logger *zap.Logger) *MetricsMiddleware {
	return &MetricsMiddleware{
		metrics: apiMetrics,
		logger:  logger,
	}
}

// Middleware registra métricas para cada requisição
func (m *MetricsMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method

		m.metrics.RequestStarted(path, method)
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		m.metrics.RequestCompleted(path, method, status, time.Since(start))

		if status >= 500 {
			m.metrics.ErrorOccurred(path, method, "server_error")
		} else if status >= 400 {
			m.metrics.ErrorOccurred(path, method, "client_error")
		}
	}
}
