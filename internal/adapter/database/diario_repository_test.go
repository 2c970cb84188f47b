package database_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/serenoapp/sereno-api/internal/adapter/database"
	"github.com/serenoapp/sereno-api/internal/domain/model"
	"github.com/serenoapp/sereno-api/internal/domain/repository"
	"github.com/serenoapp/sereno-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmocaoRepository_UnicidadePorDia(t *testing.T) {
	db := testutils.SetupTestDB(t)
	logger := testutils.TestLogger(t)
	repo := database.NewEmocaoRepository(db, logger)
	ctx := context.Background()

	primeira := &model.Emocao{
		UsuarioID:   1,
		Tipo:        "feliz",
		DataCriacao: time.Now(),
		Dia:         "2025-03-10",
	}
	require.NoError(t, repo.Create(ctx, primeira))
	assert.NotZero(t, primeira.ID)

	// Mesmo usuário, mesmo dia: o índice único rejeita
	segunda := &model.Emocao{
		UsuarioID:   1,
		Tipo:        "triste",
		DataCriacao: time.Now(),
		Dia:         "2025-03-10",
	}
	err := repo.Create(ctx, segunda)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrRegistroDuplicado))

	// Outro dia e outro usuário continuam livres
	require.NoError(t, repo.Create(ctx, &model.Emocao{
		UsuarioID: 1, Tipo: "calmo", DataCriacao: time.Now(), Dia: "2025-03-11",
	}))
	require.NoError(t, repo.Create(ctx, &model.Emocao{
		UsuarioID: 2, Tipo: "feliz", DataCriacao: time.Now(), Dia: "2025-03-10",
	}))
}

func TestEmocaoRepository_FindByDia(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := database.NewEmocaoRepository(db, testutils.TestLogger(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Emocao{
		UsuarioID: 1, Tipo: "feliz", DataCriacao: time.Now(), Dia: "2025-03-10",
	}))

	encontrada, err := repo.FindByDia(ctx, 1, "2025-03-10")
	require.NoError(t, err)
	require.NotNil(t, encontrada)
	assert.Equal(t, "feliz", encontrada.Tipo)

	ausente, err := repo.FindByDia(ctx, 1, "2025-03-11")
	require.NoError(t, err)
	assert.Nil(t, ausente)
}

// Submissões concorrentes para o mesmo (usuário, dia) devem produzir
// exatamente um sucesso; todas as demais devem falhar com duplicidade.
func TestRegistroDiarioRepository_ConcorrenciaMesmoDia(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := database.NewRegistroDiarioRepository(db, testutils.TestLogger(t))
	ctx := context.Background()

	const tentativas = 16
	var wg sync.WaitGroup
	resultados := make(chan error, tentativas)

	for i := 0; i < tentativas; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resultados <- repo.Create(ctx, &model.RegistroDiario{
				UsuarioID: 1,
				Data:      "2025-03-10",
				Emocao:    "feliz",
			})
		}()
	}

	wg.Wait()
	close(resultados)

	sucessos, conflitos := 0, 0
	for err := range resultados {
		switch {
		case err == nil:
			sucessos++
		case errors.Is(err, repository.ErrRegistroDuplicado):
			conflitos++
		default:
			t.Fatalf("erro inesperado: %v", err)
		}
	}

	assert.Equal(t, 1, sucessos)
	assert.Equal(t, tentativas-1, conflitos)

	var count int64
	require.NoError(t, db.Model(&model.RegistroDiario{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegistroDiarioRepository_ListMes(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := database.NewRegistroDiarioRepository(db, testutils.TestLogger(t))
	ctx := context.Background()

	intensidade := 6
	registros := []*model.RegistroDiario{
		{UsuarioID: 1, Data: "2025-03-01", Emocao: "feliz", Intensidade: &intensidade},
		{UsuarioID: 1, Data: "2025-03-31", Emocao: "calmo"},
		{UsuarioID: 1, Data: "2025-04-01", Emocao: "ansioso"}, // fora do mês
		{UsuarioID: 2, Data: "2025-03-15", Emocao: "triste"},  // outro usuário
		{UsuarioID: 1, Data: "2024-12-25", Emocao: "feliz"},   // outro ano
	}
	for _, r := range registros {
		require.NoError(t, repo.Create(ctx, r))
	}

	mes, err := repo.ListMes(ctx, 1, 2025, 3)
	require.NoError(t, err)
	require.Len(t, mes, 2)
	assert.Equal(t, "2025-03-01", mes[0].Data)
	assert.Equal(t, "2025-03-31", mes[1].Data)

	// Dezembro usa a virada de ano como limite superior
	dezembro, err := repo.ListMes(ctx, 1, 2024, 12)
	require.NoError(t, err)
	require.Len(t, dezembro, 1)
	assert.Equal(t, "2024-12-25", dezembro[0].Data)
}

func TestUsuarioRepository_EmailUnico(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := database.NewUsuarioRepository(db, testutils.TestLogger(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Usuario{
		Nome: "Ana", Email: "ana@x.com", Senha: "hash",
	}))

	err := repo.Create(ctx, &model.Usuario{
		Nome: "Outra Ana", Email: "ana@x.com", Senha: "hash",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrEmailDuplicado))

	var count int64
	require.NoError(t, db.Model(&model.Usuario{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
