package database

import (
	"context"

	"github.com/serenoapp/sereno-api/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConversaRepository implementa repository.ConversaRepository com GORM
type ConversaRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewConversaRepository(db *gorm.DB, logger *zap.Logger) *ConversaRepository {
	return &ConversaRepository{db: db, logger: logger}
}

func (r *ConversaRepository) Create(ctx context.Context, conversa *model.Conversa) error {
	result := r.db.WithContext(ctx).Create(conversa)
	if result.Error != nil {
		r.logger.Error("erro ao gravar conversa",
			zap.Uint("usuario_id", conversa.UsuarioID),
			zap.Error(result.Error))
		return result.Error
	}
	return nil
}
