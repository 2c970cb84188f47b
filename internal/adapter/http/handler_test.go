package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serenoapp/sereno-api/internal/adapter/database"
	apphttp "github.com/serenoapp/sereno-api/internal/adapter/http"
	"github.com/serenoapp/sereno-api/internal/app/chat"
	"github.com/serenoapp/sereno-api/internal/app/diario"
	"github.com/serenoapp/sereno-api/internal/app/usuario"
	"github.com/serenoapp/sereno-api/internal/mocks"
	"github.com/serenoapp/sereno-api/internal/testutils"
	"github.com/serenoapp/sereno-api/pkg/cache"
	"github.com/serenoapp/sereno-api/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const respostaBot = "Olá! Esta é uma mensagem automática de resposta."

func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()

	logger := testutils.TestLogger(t)
	db := testutils.SetupTestDB(t)

	usuarioRepo := database.NewUsuarioRepository(db, logger)
	conversaRepo := database.NewConversaRepository(db, logger)
	emocaoRepo := database.NewEmocaoRepository(db, logger)
	registroRepo := database.NewRegistroDiarioRepository(db, logger)

	keyManager := security.NewKeyManagerWithSecret(
		[]byte("segredo-de-teste-com-32-bytes-ok!"), logger)
	relogio := &mocks.FixedClock{
		Instant: time.Date(2025, 3, 10, 14, 30, 0, 0, time.FixedZone("-03", -3*60*60)),
	}

	usuarioService := usuario.NewService(usuarioRepo, keyManager, time.Hour, logger)
	chatService := chat.NewService(conversaRepo, respostaBot, logger)
	diarioService := diario.NewService(usuarioRepo, emocaoRepo, registroRepo,
		&cache.NoOpCache{}, time.Minute, relogio, nil, logger)

	router := testutils.SetupTestRouter(t)
	usuarioHandler := apphttp.NewUsuarioHandler(usuarioService, logger)
	chatHandler := apphttp.NewChatHandler(chatService, logger)
	diarioHandler := apphttp.NewDiarioHandler(diarioService, logger)

	router.POST("/register", usuarioHandler.Register)
	router.POST("/login", usuarioHandler.Login)
	router.GET("/usuario/:id", usuarioHandler.GetPerfil)
	router.PUT("/usuario/:id/atualizar", usuarioHandler.AtualizarPerfil)
	router.POST("/chat", chatHandler.Enviar)
	router.POST("/emocao", diarioHandler.RegistrarEmocao)
	router.POST("/calendario/registrar", diarioHandler.RegistrarCalendario)
	router.GET("/calendario/:usuario_id/:ano/:mes", diarioHandler.ListarMes)

	return router
}

func registerAna(t *testing.T, router *gin.Engine) {
	t.Helper()
	rec := testutils.MakeRequest(t, router, http.MethodPost, "/register", map[string]any{
		"nome":  "Ana",
		"email": "ana@x.com",
		"senha": "abc123",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegisterELogin(t *testing.T) {
	router := setupAPI(t)

	registerAna(t, router)

	t.Run("registro repetido com o mesmo e-mail", func(t *testing.T) {
		rec := testutils.MakeRequest(t, router, http.MethodPost, "/register", map[string]any{
			"nome":  "Ana de novo",
			"email": "ana@x.com",
			"senha": "outra",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]any
		testutils.DecodeResponse(t, rec, &body)
		assert.Equal(t, "E-mail já cadastrado!", body["message"])
	})

	t.Run("e-mail malformado", func(t *testing.T) {
		rec := testutils.MakeRequest(t, router, http.MethodPost, "/register", map[string]any{
			"nome":  "Bia",
			"email": "nada",
			"senha": "abc123",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("login com senha correta", func(t *testing.T) {
		rec := testutils.MakeRequest(t, router, http.MethodPost, "/login", map[string]any{
			"email": "ana@x.com",
			"senha": "abc123",
		}, nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		testutils.DecodeResponse(t, rec, &body)
		assert.Equal(t, "Login bem-sucedido!", body["message"])
		assert.EqualValues(t, 1, body["usuario_id"])
		assert.Equal(t, "Ana", body["nome"])
		assert.NotEmpty(t, body["token"])
	})

	t.Run("login com senha incorreta", func(t *testing.T) {
		rec := testutils.MakeRequest(t, router, http.MethodPost, "/login", map[string]any{
			"email": "ana@x.com",
			"senha": "errada",
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("login com e-mail desconhecido", func(t *testing.T) {
		rec := testutils.MakeRequest(t, router, http.MethodPost, "/login", map[string]any{
			"email": "ninguem@x.com",
			"senha": "abc123",
		}, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPerfil(t *testing.T) {
	router := setupAPI(t)
	registerAna(t, router)

	t.Run("busca o perfil", func(t *testing.T) {
		rec := testutils.MakeRequest(t, router, http.MethodGet, "/usuario/1", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		testutils.DecodeResponse(t, rec, &body)
		assert.Equal(t, "Ana", body["nome"])
		assert.Equal(t, "ana@x.com", body["email"])
		assert.Nil(t, body["hobby"])
		assert.Nil(t, body["data_nascimento"])
	})

	t.Run("perfil inexistente responde com a chave error", func(t *testing.T) {
		rec := testutils.MakeRequest(t, router, http.MethodGet, "/usuario/99", nil, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		var body map[string]any
		testutils.DecodeResponse(t, rec, &body)
		assert.Equal(t, "Usuário não encontrado", body["error"])
	})

	t.Run("atualiza hobby e data de nascimento", func(t *testing.T) {
		rec := testutils.MakeRequest(t, router, http.MethodPut, "/usuario/1/atualizar", map[string]any{
			"hobby":           "pintura",
			"data_nascimento": "1990-03-10",
		}, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = testutils.MakeRequest(t, router, http.MethodGet, "/usuario/1", nil, nil)
		var body map[string]any
		testutils.DecodeResponse(t, rec, &body)
		assert.Equal(t, "pintura", body["hobby"])
		assert.Equal(t, "1990-03-10", body["data_nascimento"])
	})

	t.Run("data de nascimento inválida", func(t *testing.T) {
		rec := testutils.MakeRequest(t, router, http.MethodPut, "/usuario/1/atualizar", map[string]any{
			"data_nascimento": "10-03-1990",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestChat(t *testing.T) {
	router := setupAPI(t)
	registerAna(t, router)

	rec := testutils.MakeRequest(t, router, http.MethodPost, "/chat", map[string]any{
		"usuario_id": 1,
		"mensagem":   "oi",
	}, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	testutils.DecodeResponse(t, rec, &body)
	assert.Equal(t, respostaBot, body["resposta"])
}

func TestRegistrarEmocao(t *testing.T) {
	router := setupAPI(t)
	registerAna(t, router)

	t.Run("registra a emoção do dia", func(t *testing.T) {
		rec := testutils.MakeRequest(t, router, http.MethodPost, "/emocao", map[string]any{
			"usuario_id":  1,
			"tipo":        "feliz",
			"intensidade": 8,
		}, nil)

		require.Equal(t, http.StatusCreated, rec.Code)

		var body map[string]any
		testutils.DecodeResponse(t, rec, &body)
		assert.Equal(t, "Emoção registrada com sucesso!", body["message"])

		criado, err := time.Parse(time.RFC3339, body["data_criacao"].(string))
		require.NoError(t, err)
		assert.Equal(t, 2025, criado.Year())
	})

	t.Run("segunda emoção no mesmo dia", func(t *testing.T) {
		rec := testutils.MakeRequest(t, router, http.MethodPost, "/emocao", map[string]any{
			"usuario_id": 1,
			"tipo":       "triste",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]any
		testutils.DecodeResponse(t, rec, &body)
		assert.Equal(t, "Você já registrou uma emoção hoje!", body["message"])
	})

	t.Run("usuário desconhecido", func(t *testing.T) {
		rec := testutils.MakeRequest(t, router, http.MethodPost, "/emocao", map[string]any{
			"usuario_id": 99,
			"tipo":       "feliz",
		}, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("campos obrigatórios", func(t *testing.T) {
		rec := testutils.MakeRequest(t, router, http.MethodPost, "/emocao", map[string]any{
			"usuario_id": 1,
		}, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]any
		testutils.DecodeResponse(t, rec, &body)
		assert.Equal(t, "Campos obrigatórios faltando!", body["message"])
	})
}

func TestCalendario(t *testing.T) {
	router := setupAPI(t)
	registerAna(t, router)

	t.Run("registra e lista o mês correspondente", func(t *testing.T) {
		rec := testutils.MakeRequest(t, router, http.MethodPost, "/calendario/registrar", map[string]any{
			"usuario_id":  1,
			"emocao":      "calmo",
			"intensidade": 5,
			"observacao":  "dia tranquilo",
		}, nil)

		require.Equal(t, http.StatusCreated, rec.Code)

		var criado map[string]any
		testutils.DecodeResponse(t, rec, &criado)
		assert.Equal(t, "Registro salvo!", criado["message"])
		assert.Equal(t, "2025-03-10", criado["data"])

		// O registro aparece no mês certo...
		rec = testutils.MakeRequest(t, router, http.MethodGet, "/calendario/1/2025/3", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var listagem struct {
			UsuarioID int `json:"usuario_id"`
			Ano       int `json:"ano"`
			Mes       int `json:"mes"`
			Registros []struct {
				Dia         int     `json:"dia"`
				Emocao      string  `json:"emocao"`
				Intensidade *int    `json:"intensidade"`
				Observacao  *string `json:"observacao"`
			} `json:"registros"`
		}
		testutils.DecodeResponse(t, rec, &listagem)
		require.Len(t, listagem.Registros, 1)
		assert.Equal(t, 10, listagem.Registros[0].Dia)
		assert.Equal(t, "calmo", listagem.Registros[0].Emocao)
		require.NotNil(t, listagem.Registros[0].Intensidade)
		assert.Equal(t, 5, *listagem.Registros[0].Intensidade)
		require.NotNil(t, listagem.Registros[0].Observacao)
		assert.Equal(t, "dia tranquilo", *listagem.Registros[0].Observacao)

		// ...e em nenhum outro
		rec = testutils.MakeRequest(t, router, http.MethodGet, "/calendario/1/2025/4", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		testutils.DecodeResponse(t, rec, &listagem)
		assert.Empty(t, listagem.Registros)
	})

	t.Run("segundo registro no mesmo dia", func(t *testing.T) {
		rec := testutils.MakeRequest(t, router, http.MethodPost, "/calendario/registrar", map[string]any{
			"usuario_id": 1,
			"emocao":     "ansioso",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]any
		testutils.DecodeResponse(t, rec, &body)
		assert.Equal(t, "Você já registrou sua emoção hoje!", body["message"])
	})

	t.Run("mês sem registros responde lista vazia", func(t *testing.T) {
		rec := testutils.MakeRequest(t, router, http.MethodGet, "/calendario/1/2024/1", nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
