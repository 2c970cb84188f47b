package usuario

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/serenoapp/sereno-api/internal/clock"
	"github.com/serenoapp/sereno-api/internal/domain/model"
	"github.com/serenoapp/sereno-api/internal/domain/repository"
	apierrors "github.com/serenoapp/sereno-api/pkg/errors"
	"github.com/serenoapp/sereno-api/pkg/security"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// O e-mail é validado com o mesmo padrão permissivo de sempre; a comparação
// com o cadastro é sempre exata, sem normalização de caixa.
var emailRegex = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// Service implementa registro, login e perfil de usuários
type Service struct {
	repo       repository.UsuarioRepository
	keyManager *security.KeyManager
	tokenTTL   time.Duration
	logger     *zap.Logger
}

// NewService cria o serviço de usuários. keyManager pode ser nil; nesse
// caso o login não emite token.
func NewService(repo repository.UsuarioRepository, keyManager *security.KeyManager, tokenTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		keyManager: keyManager,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

// RegisterInput são os dados aceitos no registro
type RegisterInput struct {
	Nome           string
	Email          string
	Senha          string
	DataNascimento *string
	Hobby          *string
}

// Register cria um novo usuário com a senha protegida por bcrypt.
// A unicidade do e-mail é decidida pelo índice único do banco.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*model.Usuario, error) {
	if !emailRegex.MatchString(input.Email) {
		return nil, apierrors.BadRequest("E-mail inválido!", nil)
	}

	dataNascimento, err := parseDataNascimento(input.DataNascimento)
	if err != nil {
		return nil, err
	}

	senhaHash, err := bcrypt.GenerateFromPassword([]byte(input.Senha), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("erro ao gerar hash da senha", zap.Error(err))
		return nil, apierrors.InternalServer("Erro ao processar senha", err)
	}

	usuario := &model.Usuario{
		Nome:           input.Nome,
		Email:          input.Email,
		Senha:          string(senhaHash),
		DataNascimento: dataNascimento,
		Hobby:          input.Hobby,
	}

	if err := s.repo.Create(ctx, usuario); err != nil {
		if errors.Is(err, repository.ErrEmailDuplicado) {
			return nil, apierrors.Conflict("E-mail já cadastrado!", err)
		}
		return nil, apierrors.InternalServer("", err)
	}

	s.logger.Info("usuário registrado",
		zap.Uint("usuario_id", usuario.ID),
		zap.String("email", usuario.Email))

	return usuario, nil
}

// Login autentica por e-mail e senha; retorna o usuário e o token de acesso
func (s *Service) Login(ctx context.Context, email, senha string) (*model.Usuario, string, error) {
	usuario, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUsuarioNotFound) {
			return nil, "", apierrors.NotFound("E-mail não encontrado!", err)
		}
		return nil, "", apierrors.InternalServer("", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Senha), []byte(senha)); err != nil {
		return nil, "", apierrors.Unauthorized("Senha incorreta!", err)
	}

	var token string
	if s.keyManager != nil {
		token, err = s.keyManager.GenerateToken(usuario.ID, s.tokenTTL)
		if err != nil {
			return nil, "", apierrors.InternalServer("Erro ao gerar token", err)
		}
	}

	return usuario, token, nil
}

// GetPerfil busca o perfil pelo id
func (s *Service) GetPerfil(ctx context.Context, id uint) (*model.Usuario, error) {
	usuario, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUsuarioNotFound) {
			return nil, apierrors.NotFound("Usuário não encontrado", err)
		}
		return nil, apierrors.InternalServer("", err)
	}
	return usuario, nil
}

// UpdateInput são os campos mutáveis do perfil
type UpdateInput struct {
	Hobby          *string
	DataNascimento *string
}

// AtualizarPerfil altera hobby e data de nascimento; os demais campos do
// cadastro são imutáveis.
func (s *Service) AtualizarPerfil(ctx context.Context, id uint, input UpdateInput) (*model.Usuario, error) {
	usuario, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUsuarioNotFound) {
			return nil, apierrors.NotFound("Usuário não encontrado", err)
		}
		return nil, apierrors.InternalServer("", err)
	}

	if input.Hobby != nil {
		usuario.Hobby = input.Hobby
	}

	if input.DataNascimento != nil {
		dataNascimento, err := parseDataNascimento(input.DataNascimento)
		if err != nil {
			return nil, err
		}
		usuario.DataNascimento = dataNascimento
	}

	if err := s.repo.Update(ctx, usuario); err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	return usuario, nil
}

// parseDataNascimento interpreta a data no formato YYYY-MM-DD
func parseDataNascimento(valor *string) (*time.Time, error) {
	if valor == nil || *valor == "" {
		return nil, nil
	}
	data, err := time.Parse(clock.DayLayout, *valor)
	if err != nil {
		return nil, apierrors.BadRequest("Formato de data inválido. Use YYYY-MM-DD", err)
	}
	return &data, nil
}
