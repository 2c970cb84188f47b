package mocks

import (
	"context"

	"github.com/serenoapp/sereno-api/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockUsuarioRepository é um mock para repository.UsuarioRepository
type MockUsuarioRepository struct {
	mock.Mock
}

func (m *MockUsuarioRepository) Create(ctx context.Context, usuario *model.Usuario) error {
	args := m.Called(ctx, usuario)
	return args.Error(0)
}

func (m *MockUsuarioRepository) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) FindByID(ctx context.Context, id uint) (*model.Usuario, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) Update(ctx context.Context, usuario *model.Usuario) error {
	args := m.Called(ctx, usuario)
	return args.Error(0)
}

// MockConversaRepository é um mock para repository.ConversaRepository
type MockConversaRepository struct {
	mock.Mock
}

func (m *MockConversaRepository) Create(ctx context.Context, conversa *model.Conversa) error {
	args := m.Called(ctx, conversa)
	return args.Error(0)
}

// MockEmocaoRepository é um mock para repository.EmocaoRepository
type MockEmocaoRepository struct {
	mock.Mock
}

func (m *MockEmocaoRepository) Create(ctx context.Context, emocao *model.Emocao) error {
	args := m.Called(ctx, emocao)
	return args.Error(0)
}

func (m *MockEmocaoRepository) FindByDia(ctx context.Context, usuarioID uint, dia string) (*model.Emocao, error) {
	args := m.Called(ctx, usuarioID, dia)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Emocao), args.Error(1)
}

// MockRegistroDiarioRepository é um mock para repository.RegistroDiarioRepository
type MockRegistroDiarioRepository struct {
	mock.Mock
}

func (m *MockRegistroDiarioRepository) Create(ctx context.Context, registro *model.RegistroDiario) error {
	args := m.Called(ctx, registro)
	return args.Error(0)
}

func (m *MockRegistroDiarioRepository) FindByDia(ctx context.Context, usuarioID uint, dia string) (*model.RegistroDiario, error) {
	args := m.Called(ctx, usuarioID, dia)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegistroDiario), args.Error(1)
}

func (m *MockRegistroDiarioRepository) ListMes(ctx context.Context, usuarioID uint, ano int, mes int) ([]*model.RegistroDiario, error) {
	args := m.Called(ctx, usuarioID, ano, mes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RegistroDiario), args.Error(1)
}
