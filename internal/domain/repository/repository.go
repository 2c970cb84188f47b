package repository

import (
	"context"
	"errors"

	"github.com/serenoapp/sereno-api/internal/domain/model"
)

var (
	ErrUsuarioNotFound = errors.New("usuário não encontrado")
	ErrEmailDuplicado  = errors.New("e-mail já cadastrado")

	// ErrRegistroDuplicado indica violação da regra de um registro por dia.
	// É produzido pela tradução da violação do índice único no banco, não
	// por uma consulta prévia de existência.
	ErrRegistroDuplicado = errors.New("registro duplicado para o dia")
)

// UsuarioRepository define a interface para armazenamento de usuários
type UsuarioRepository interface {
	// Create persiste um novo usuário; e-mail duplicado → ErrEmailDuplicado
	Create(ctx context.Context, usuario *model.Usuario) error

	// FindByEmail busca um usuário pelo e-mail exato
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)

	// FindByID busca um usuário pelo id
	FindByID(ctx context.Context, id uint) (*model.Usuario, error)

	// Update persiste alterações de perfil (hobby, data de nascimento)
	Update(ctx context.Context, usuario *model.Usuario) error
}

// ConversaRepository define a interface para armazenamento de conversas
type ConversaRepository interface {
	// Create persiste uma nova troca de mensagens
	Create(ctx context.Context, conversa *model.Conversa) error
}

// EmocaoRepository é o armazenamento append-only de emoções diárias
type EmocaoRepository interface {
	// Create insere de forma atômica; duplicidade no dia → ErrRegistroDuplicado
	Create(ctx context.Context, emocao *model.Emocao) error

	// FindByDia retorna a emoção do usuário no dia lógico, se houver
	FindByDia(ctx context.Context, usuarioID uint, dia string) (*model.Emocao, error)
}

// RegistroDiarioRepository é o armazenamento append-only do calendário
type RegistroDiarioRepository interface {
	// Create insere de forma atômica; duplicidade no dia → ErrRegistroDuplicado
	Create(ctx context.Context, registro *model.RegistroDiario) error

	// FindByDia retorna o registro do usuário no dia, se houver
	FindByDia(ctx context.Context, usuarioID uint, dia string) (*model.RegistroDiario, error)

	// ListMes retorna os registros do usuário dentro de um ano/mês
	ListMes(ctx context.Context, usuarioID uint, ano int, mes int) ([]*model.RegistroDiario, error)
}
