package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/serenoapp/sereno-api/internal/app/usuario"
	"github.com/serenoapp/sereno-api/internal/clock"
	"github.com/serenoapp/sereno-api/internal/domain/model"
	"go.uber.org/zap"
)

// UsuarioHandler expõe registro, login e perfil
type UsuarioHandler struct {
	service *usuario.Service
	logger  *zap.Logger
}

func NewUsuarioHandler(service *usuario.Service, logger *zap.Logger) *UsuarioHandler {
	return &UsuarioHandler{
		service: service,
		logger:  logger,
	}
}

type registerRequest struct {
	Nome           string  `json:"nome" binding:"required"`
	Email          string  `json:"email" binding:"required"`
	Senha          string  `json:"senha" binding:"required"`
	DataNascimento *string `json:"data_nascimento"`
	Hobby          *string `json:"hobby"`
}

// Register trata POST /register
func (h *UsuarioHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("JSON inválido no registro", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Campos obrigatórios faltando!"})
		return
	}

	_, err := h.service.Register(c.Request.Context(), usuario.RegisterInput{
		Nome:           req.Nome,
		Email:          req.Email,
		Senha:          req.Senha,
		DataNascimento: req.DataNascimento,
		Hobby:          req.Hobby,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Usuário registrado com sucesso!"})
}

type loginRequest struct {
	Email string `json:"email" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}

// Login trata POST /login
func (h *UsuarioHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Campos obrigatórios faltando!"})
		return
	}

	u, token, err := h.service.Login(c.Request.Context(), req.Email, req.Senha)
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{
		"message":    "Login bem-sucedido!",
		"usuario_id": u.ID,
		"nome":       u.Nome,
	}
	if token != "" {
		body["token"] = token
	}

	c.JSON(http.StatusOK, body)
}

// GetPerfil trata GET /usuario/:id
func (h *UsuarioHandler) GetPerfil(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	u, err := h.service.GetPerfil(c.Request.Context(), id)
	if err != nil {
		// Este endpoint sempre respondeu {"error": ...} em vez de
		// {"message": ...}; os clientes dependem disso.
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              u.ID,
		"nome":            u.Nome,
		"email":           u.Email,
		"hobby":           u.Hobby,
		"data_nascimento": formatDataNascimento(u),
	})
}

type atualizarRequest struct {
	Hobby          *string `json:"hobby"`
	DataNascimento *string `json:"data_nascimento"`
}

// AtualizarPerfil trata PUT /usuario/:id/atualizar
func (h *UsuarioHandler) AtualizarPerfil(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req atualizarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Dados inválidos"})
		return
	}

	_, err := h.service.AtualizarPerfil(c.Request.Context(), id, usuario.UpdateInput{
		Hobby:          req.Hobby,
		DataNascimento: req.DataNascimento,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Informações atualizadas com sucesso!"})
}

func formatDataNascimento(u *model.Usuario) interface{} {
	if u.DataNascimento == nil {
		return nil
	}
	return u.DataNascimento.Format(clock.DayLayout)
}
