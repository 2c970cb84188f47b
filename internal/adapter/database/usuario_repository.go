package database

import (
	"context"
	"errors"

	"github.com/serenoapp/sereno-api/internal/domain/model"
	"github.com/serenoapp/sereno-api/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UsuarioRepository implementa repository.UsuarioRepository com GORM
type UsuarioRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewUsuarioRepository(db *gorm.DB, logger *zap.Logger) *UsuarioRepository {
	return &UsuarioRepository{db: db, logger: logger}
}

// Create persiste um novo usuário. A unicidade do e-mail é garantida pelo
// índice único; a violação é traduzida para ErrEmailDuplicado.
func (r *UsuarioRepository) Create(ctx context.Context, usuario *model.Usuario) error {
	result := r.db.WithContext(ctx).Create(usuario)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return repository.ErrEmailDuplicado
		}
		r.logger.Error("erro ao criar usuário",
			zap.String("email", usuario.Email),
			zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *UsuarioRepository) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var usuario model.Usuario
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&usuario).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUsuarioNotFound
		}
		return nil, err
	}
	return &usuario, nil
}

func (r *UsuarioRepository) FindByID(ctx context.Context, id uint) (*model.Usuario, error) {
	var usuario model.Usuario
	err := r.db.WithContext(ctx).First(&usuario, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUsuarioNotFound
		}
		return nil, err
	}
	return &usuario, nil
}

func (r *UsuarioRepository) Update(ctx context.Context, usuario *model.Usuario) error {
	result := r.db.WithContext(ctx).Save(usuario)
	if result.Error != nil {
		r.logger.Error("erro ao atualizar usuário",
			zap.Uint("usuario_id", usuario.ID),
			zap.Error(result.Error))
		return result.Error
	}
	return nil
}
