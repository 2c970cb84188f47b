package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/serenoapp/sereno-api/internal/app/chat"
	"go.uber.org/zap"
)

// ChatHandler expõe o chat de resposta automática
type ChatHandler struct {
	service *chat.Service
	logger  *zap.Logger
}

func NewChatHandler(service *chat.Service, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

type chatRequest struct {
	UsuarioID uint   `json:"usuario_id" binding:"required"`
	Mensagem  string `json:"mensagem" binding:"required"`
}

// Enviar trata POST /chat
func (h *ChatHandler) Enviar(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Campos obrigatórios faltando!"})
		return
	}

	resposta, err := h.service.Enviar(c.Request.Context(), req.UsuarioID, req.Mensagem)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resposta": resposta})
}
