package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/serenoapp/sereno-api/internal/domain/model"
	"github.com/serenoapp/sereno-api/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmocaoRepository implementa repository.EmocaoRepository com GORM.
// A inserção é a única escrita: a regra "uma emoção por dia" é decidida
// pelo índice único (usuario_id, dia), não por consulta prévia.
type EmocaoRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewEmocaoRepository(db *gorm.DB, logger *zap.Logger) *EmocaoRepository {
	return &EmocaoRepository{db: db, logger: logger}
}

func (r *EmocaoRepository) Create(ctx context.Context, emocao *model.Emocao) error {
	result := r.db.WithContext(ctx).Create(emocao)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return repository.ErrRegistroDuplicado
		}
		r.logger.Error("erro ao gravar emoção",
			zap.Uint("usuario_id", emocao.UsuarioID),
			zap.String("dia", emocao.Dia),
			zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *EmocaoRepository) FindByDia(ctx context.Context, usuarioID uint, dia string) (*model.Emocao, error) {
	var emocao model.Emocao
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND dia = ?", usuarioID, dia).
		First(&emocao).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &emocao, nil
}

// RegistroDiarioRepository implementa repository.RegistroDiarioRepository
type RegistroDiarioRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewRegistroDiarioRepository(db *gorm.DB, logger *zap.Logger) *RegistroDiarioRepository {
	return &RegistroDiarioRepository{db: db, logger: logger}
}

func (r *RegistroDiarioRepository) Create(ctx context.Context, registro *model.RegistroDiario) error {
	result := r.db.WithContext(ctx).Create(registro)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return repository.ErrRegistroDuplicado
		}
		r.logger.Error("erro ao gravar registro diário",
			zap.Uint("usuario_id", registro.UsuarioID),
			zap.String("data", registro.Data),
			zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *RegistroDiarioRepository) FindByDia(ctx context.Context, usuarioID uint, dia string) (*model.RegistroDiario, error) {
	var registro model.RegistroDiario
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND data = ?", usuarioID, dia).
		First(&registro).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &registro, nil
}

// ListMes busca por faixa de datas em vez de extract(year/month), o que
// funciona igualmente em sqlite, mysql e postgres já que a coluna guarda
// o dia no formato ISO (ordenável lexicograficamente).
func (r *RegistroDiarioRepository) ListMes(ctx context.Context, usuarioID uint, ano int, mes int) ([]*model.RegistroDiario, error) {
	inicio := fmt.Sprintf("%04d-%02d-01", ano, mes)
	var fim string
	if mes == 12 {
		fim = fmt.Sprintf("%04d-01-01", ano+1)
	} else {
		fim = fmt.Sprintf("%04d-%02d-01", ano, mes+1)
	}

	var registros []*model.RegistroDiario
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND data >= ? AND data < ?", usuarioID, inicio, fim).
		Order("data").
		Find(&registros).Error
	if err != nil {
		return nil, err
	}
	return registros, nil
}
