package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serenoapp/sereno-api/internal/app/diario"
	"go.uber.org/zap"
)

// DiarioHandler expõe o registro de emoções e o calendário emocional
type DiarioHandler struct {
	service *diario.Service
	logger  *zap.Logger
}

func NewDiarioHandler(service *diario.Service, logger *zap.Logger) *DiarioHandler {
	return &DiarioHandler{
		service: service,
		logger:  logger,
	}
}

type emocaoRequest struct {
	UsuarioID   uint    `json:"usuario_id" binding:"required"`
	Tipo        string  `json:"tipo" binding:"required"`
	Intensidade *int    `json:"intensidade"`
	Observacao  *string `json:"observacao"`
}

// RegistrarEmocao trata POST /emocao
func (h *DiarioHandler) RegistrarEmocao(c *gin.Context) {
	var req emocaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Campos obrigatórios faltando!"})
		return
	}

	emocao, err := h.service.RegistrarEmocao(c.Request.Context(), diario.EmocaoInput{
		UsuarioID:   req.UsuarioID,
		Tipo:        req.Tipo,
		Intensidade: req.Intensidade,
		Observacao:  req.Observacao,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Emoção registrada com sucesso!",
		"data_criacao": emocao.DataCriacao.Format(time.RFC3339),
	})
}

type calendarioRequest struct {
	UsuarioID   uint    `json:"usuario_id" binding:"required"`
	Emocao      string  `json:"emocao" binding:"required"`
	Intensidade *int    `json:"intensidade"`
	Observacao  *string `json:"observacao"`
}

// RegistrarCalendario trata POST /calendario/registrar
func (h *DiarioHandler) RegistrarCalendario(c *gin.Context) {
	var req calendarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Campos obrigatórios faltando!"})
		return
	}

	registro, err := h.service.RegistrarCalendario(c.Request.Context(), diario.CalendarioInput{
		UsuarioID:   req.UsuarioID,
		Emocao:      req.Emocao,
		Intensidade: req.Intensidade,
		Observacao:  req.Observacao,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registro salvo!",
		"data":    registro.Data,
	})
}

// ListarMes trata GET /calendario/:usuario_id/:ano/:mes
func (h *DiarioHandler) ListarMes(c *gin.Context) {
	usuarioID, ok := paramUint(c, "usuario_id")
	if !ok {
		return
	}
	ano, ok := paramInt(c, "ano")
	if !ok {
		return
	}
	mes, ok := paramInt(c, "mes")
	if !ok {
		return
	}

	registros, err := h.service.ListarMes(c.Request.Context(), usuarioID, ano, mes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"usuario_id": usuarioID,
		"ano":        ano,
		"mes":        mes,
		"registros":  registros,
	})
}
