package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/serenoapp/sereno-api/pkg/errors"
)

// respondError mapeia o erro de domínio para o status HTTP e o corpo JSON
// padrão da API ({"message": ...}).
func respondError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		body := gin.H{"message": apiErr.Message}
		if apiErr.Details != nil {
			body["details"] = apiErr.Details
		}
		c.JSON(apiErr.Code, body)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor"})
}

// paramUint interpreta um parâmetro de rota numérico
func paramUint(c *gin.Context, name string) (uint, bool) {
	valor, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Parâmetro inválido: " + name})
		return 0, false
	}
	return uint(valor), true
}

// paramInt interpreta um parâmetro de rota inteiro
func paramInt(c *gin.Context, name string) (int, bool) {
	valor, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Parâmetro inválido: " + name})
		return 0, false
	}
	return valor, true
}
