package security

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Claims são as claims carregadas nos tokens emitidos no login
type Claims struct {
	UsuarioID uint `json:"usuario_id"`
	jwt.RegisteredClaims
}

// KeyManager emite e valida tokens HS256
type KeyManager struct {
	secretKey []byte
	logger    *zap.Logger
}

// GetJWTSecret obtém o segredo JWT das variáveis de ambiente, na ordem
// JWT_SECRET_KEY e depois SERENO_AUTH_JWT_SECRET_KEY.
func GetJWTSecret() []byte {
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		return []byte(secret)
	}
	if secret := os.Getenv("SERENO_AUTH_JWT_SECRET_KEY"); secret != "" {
		return []byte(secret)
	}
	return nil
}

// NewKeyManager cria o gerenciador com o segredo do ambiente
func NewKeyManager(logger *zap.Logger) (*KeyManager, error) {
	secretKey := GetJWTSecret()
	if len(secretKey) < 32 {
		return nil, errors.New("jwt secret key ausente ou muito curta (mínimo 32 bytes)")
	}

	return &KeyManager{
		secretKey: secretKey,
		logger:    logger,
	}, nil
}

// NewKeyManagerWithSecret cria o gerenciador com um segredo explícito.
// Útil em testes.
func NewKeyManagerWithSecret(secret []byte, logger *zap.Logger) *KeyManager {
	return &KeyManager{secretKey: secret, logger: logger}
}

// GenerateToken emite um token para o usuário com a duração informada
func (km *KeyManager) GenerateToken(usuarioID uint, duration time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		UsuarioID: usuarioID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(km.secretKey)
	if err != nil {
		km.logger.Error("falha ao gerar token JWT", zap.Error(err))
		return "", err
	}

	return tokenString, nil
}

// VerifyToken valida um token e retorna suas claims
func (km *KeyManager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return km.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token expirado")
		}
		km.logger.Error("falha ao validar token JWT", zap.Error(err))
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("token inválido")
}
