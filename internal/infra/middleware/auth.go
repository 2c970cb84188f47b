package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/serenoapp/sereno-api/pkg/security"
	"go.uber.org/zap"
)

// AuthMiddleware valida o token Bearer emitido no login. É montado nas
// rotas de perfil e de registros apenas quando auth.enabled está ligado.
type AuthMiddleware struct {
	keyManager *security.KeyManager
	logger     *zap.Logger
}

// NewAuthMiddleware cria uma nova instância do middleware de autenticação
func NewAuthMiddleware(keyManager *security.KeyManager, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		keyManager: keyManager,
		logger:     logger,
	}
}

// Authenticate verifica se o usuário está autenticado
func (m *AuthMiddleware) Authenticate(c *gin.Context) {
	if m.keyManager == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Autenticação não configurada"})
		return
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header não fornecido"})
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Formato inválido do token"})
		return
	}

	claims, err := m.keyManager.VerifyToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token inválido ou expirado"})
		return
	}

	// Armazena o usuário autenticado no contexto para uso posterior
	c.Set("usuario_id", claims.UsuarioID)
	c.Next()
}
