package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serenoapp/sereno-api/internal/adapter/database"
	"go.uber.org/zap"
)

// HealthHandler expõe liveness e readiness
type HealthHandler struct {
	db     *database.Database
	logger *zap.Logger
}

func NewHealthHandler(db *database.Database, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// HealthCheck responde 200 enquanto o processo estiver vivo
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// ReadinessCheck verifica dependências antes de aceitar tráfego
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.Error("banco de dados indisponível", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "database",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
