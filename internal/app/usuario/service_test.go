package usuario_test

import (
	"errors"
	"testing"
	"time"

	"github.com/serenoapp/sereno-api/internal/app/usuario"
	"github.com/serenoapp/sereno-api/internal/domain/model"
	"github.com/serenoapp/sereno-api/internal/domain/repository"
	"github.com/serenoapp/sereno-api/internal/mocks"
	"github.com/serenoapp/sereno-api/internal/testutils"
	apierrors "github.com/serenoapp/sereno-api/pkg/errors"
	"github.com/serenoapp/sereno-api/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, repo repository.UsuarioRepository) *usuario.Service {
	t.Helper()
	keyManager := security.NewKeyManagerWithSecret(
		[]byte("segredo-de-teste-com-32-bytes-ok!"), testutils.TestLogger(t))
	return usuario.NewService(repo, keyManager, time.Hour, testutils.TestLogger(t))
}

func TestRegister(t *testing.T) {
	t.Run("registra com senha protegida por bcrypt", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := newTestService(t, repo)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Usuario")).
			Run(func(args mock.Arguments) {
				u := args.Get(1).(*model.Usuario)
				assert.NotEqual(t, "abc123", u.Senha)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Senha), []byte("abc123")))
			}).
			Return(nil).Once()

		u, err := service.Register(ctx, usuario.RegisterInput{
			Nome:  "Ana",
			Email: "ana@x.com",
			Senha: "abc123",
		})

		require.NoError(t, err)
		assert.Equal(t, "Ana", u.Nome)
		repo.AssertExpectations(t)
	})

	t.Run("e-mail malformado", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := newTestService(t, repo)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Register(ctx, usuario.RegisterInput{
			Nome:  "Ana",
			Email: "sem-arroba",
			Senha: "abc123",
		})

		var apiErr *apierrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 400, apiErr.Code)
		assert.Equal(t, "E-mail inválido!", apiErr.Message)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("e-mail duplicado", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := newTestService(t, repo)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Usuario")).
			Return(repository.ErrEmailDuplicado).Once()

		_, err := service.Register(ctx, usuario.RegisterInput{
			Nome:  "Ana",
			Email: "ana@x.com",
			Senha: "abc123",
		})

		var apiErr *apierrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 400, apiErr.Code)
		assert.Equal(t, "E-mail já cadastrado!", apiErr.Message)
	})

	t.Run("data de nascimento inválida", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := newTestService(t, repo)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		data := "10/03/1990"
		_, err := service.Register(ctx, usuario.RegisterInput{
			Nome:           "Ana",
			Email:          "ana@x.com",
			Senha:          "abc123",
			DataNascimento: &data,
		})

		var apiErr *apierrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Formato de data inválido. Use YYYY-MM-DD", apiErr.Message)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("abc123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	ana := &model.Usuario{ID: 1, Nome: "Ana", Email: "ana@x.com", Senha: string(hash)}

	t.Run("login com credenciais corretas emite token", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := newTestService(t, repo)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("FindByEmail", mock.Anything, "ana@x.com").Return(ana, nil).Once()

		u, token, err := service.Login(ctx, "ana@x.com", "abc123")

		require.NoError(t, err)
		assert.Equal(t, uint(1), u.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("senha incorreta", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := newTestService(t, repo)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("FindByEmail", mock.Anything, "ana@x.com").Return(ana, nil).Once()

		_, _, err := service.Login(ctx, "ana@x.com", "errada")

		var apiErr *apierrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 401, apiErr.Code)
		assert.Equal(t, "Senha incorreta!", apiErr.Message)
	})

	t.Run("e-mail desconhecido", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := newTestService(t, repo)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("FindByEmail", mock.Anything, "ninguem@x.com").
			Return(nil, repository.ErrUsuarioNotFound).Once()

		_, _, err := service.Login(ctx, "ninguem@x.com", "abc123")

		var apiErr *apierrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 404, apiErr.Code)
		assert.Equal(t, "E-mail não encontrado!", apiErr.Message)
	})

	t.Run("a comparação de e-mail é exata", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := newTestService(t, repo)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("FindByEmail", mock.Anything, "ANA@x.com").
			Return(nil, repository.ErrUsuarioNotFound).Once()

		_, _, err := service.Login(ctx, "ANA@x.com", "abc123")
		require.Error(t, err)
	})
}

func TestAtualizarPerfil(t *testing.T) {
	t.Run("atualiza hobby preservando os demais campos", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := newTestService(t, repo)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		ana := &model.Usuario{ID: 1, Nome: "Ana", Email: "ana@x.com"}
		repo.On("FindByID", mock.Anything, uint(1)).Return(ana, nil).Once()
		repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Usuario")).
			Return(nil).Once()

		hobby := "pintura"
		u, err := service.AtualizarPerfil(ctx, 1, usuario.UpdateInput{Hobby: &hobby})

		require.NoError(t, err)
		require.NotNil(t, u.Hobby)
		assert.Equal(t, "pintura", *u.Hobby)
		assert.Equal(t, "Ana", u.Nome)
	})

	t.Run("usuário inexistente", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := newTestService(t, repo)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("FindByID", mock.Anything, uint(42)).
			Return(nil, repository.ErrUsuarioNotFound).Once()

		_, err := service.AtualizarPerfil(ctx, 42, usuario.UpdateInput{})

		var apiErr *apierrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 404, apiErr.Code)
	})
}
