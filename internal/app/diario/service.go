package diario

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/serenoapp/sereno-api/internal/clock"
	"github.com/serenoapp/sereno-api/internal/domain/model"
	"github.com/serenoapp/sereno-api/internal/domain/repository"
	"github.com/serenoapp/sereno-api/internal/infra/metrics"
	"github.com/serenoapp/sereno-api/pkg/cache"
	apierrors "github.com/serenoapp/sereno-api/pkg/errors"
	"go.uber.org/zap"
)

// Service concentra a regra de "no máximo um registro por usuário por dia",
// compartilhada pelos dois tipos de entrada: emoções (dia derivado do
// instante de criação no fuso fixo) e registros do calendário (dia
// explícito). A decisão de unicidade é do banco, via índice único; aqui a
// violação é apenas traduzida para o erro de conflito esperado pela API.
type Service struct {
	usuarios  repository.UsuarioRepository
	emocoes   repository.EmocaoRepository
	registros repository.RegistroDiarioRepository
	cache     cache.Cache
	cacheTTL  time.Duration
	relogio   clock.Clock
	metrics   *metrics.APIMetrics
	logger    *zap.Logger
}

func NewService(
	usuarios repository.UsuarioRepository,
	emocoes repository.EmocaoRepository,
	registros repository.RegistroDiarioRepository,
	c cache.Cache,
	cacheTTL time.Duration,
	relogio clock.Clock,
	apiMetrics *metrics.APIMetrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		usuarios:  usuarios,
		emocoes:   emocoes,
		registros: registros,
		cache:     c,
		cacheTTL:  cacheTTL,
		relogio:   relogio,
		metrics:   apiMetrics,
		logger:    logger,
	}
}

// EmocaoInput são os dados aceitos no registro de emoção
type EmocaoInput struct {
	UsuarioID   uint
	Tipo        string
	Intensidade *int
	Observacao  *string
}

// RegistrarEmocao grava a emoção do dia. O dia lógico é derivado do
// instante atual no fuso fixo e gravado em coluna própria; submissões
// concorrentes no mesmo dia resultam em exatamente um sucesso.
func (s *Service) RegistrarEmocao(ctx context.Context, input EmocaoInput) (*model.Emocao, error) {
	if input.Tipo == "" {
		return nil, apierrors.BadRequest("Campos obrigatórios faltando!", nil)
	}

	agora := s.relogio.Now()
	emocao := &model.Emocao{
		UsuarioID:   input.UsuarioID,
		Tipo:        input.Tipo,
		Intensidade: input.Intensidade,
		Observacao:  input.Observacao,
		DataCriacao: agora,
		Dia:         clock.FormatDay(agora),
	}

	err := s.registrarUnico(ctx, input.UsuarioID, "emocao", "Você já registrou uma emoção hoje!",
		func(ctx context.Context) error {
			return s.emocoes.Create(ctx, emocao)
		})
	if err != nil {
		return nil, err
	}

	s.logger.Info("emoção registrada",
		zap.Uint("usuario_id", input.UsuarioID),
		zap.String("dia", emocao.Dia),
		zap.String("tipo", emocao.Tipo))

	return emocao, nil
}

// CalendarioInput são os dados aceitos no registro do calendário
type CalendarioInput struct {
	UsuarioID   uint
	Emocao      string
	Intensidade *int
	Observacao  *string
}

// RegistrarCalendario grava a entrada do calendário para o dia lógico
// atual. A listagem do mês correspondente é invalidada no cache.
func (s *Service) RegistrarCalendario(ctx context.Context, input CalendarioInput) (*model.RegistroDiario, error) {
	if input.Emocao == "" {
		return nil, apierrors.BadRequest("Campos obrigatórios faltando!", nil)
	}

	hoje := s.relogio.Today()
	registro := &model.RegistroDiario{
		UsuarioID:   input.UsuarioID,
		Data:        clock.FormatDay(hoje),
		Emocao:      input.Emocao,
		Intensidade: input.Intensidade,
		Observacao:  input.Observacao,
	}

	err := s.registrarUnico(ctx, input.UsuarioID, "calendario", "Você já registrou sua emoção hoje!",
		func(ctx context.Context) error {
			return s.registros.Create(ctx, registro)
		})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, mesCacheKey(input.UsuarioID, hoje.Year(), int(hoje.Month()))); err != nil {
		s.logger.Warn("falha ao invalidar cache do calendário", zap.Error(err))
	}

	s.logger.Info("registro diário criado",
		zap.Uint("usuario_id", input.UsuarioID),
		zap.String("data", registro.Data))

	return registro, nil
}

// registrarUnico é o caminho comum das duas inserções diárias: valida o
// usuário, insere e traduz a violação de unicidade em conflito. Não há
// consulta prévia de existência; a inserção é a própria verificação.
func (s *Service) registrarUnico(ctx context.Context, usuarioID uint, kind, msgConflito string, inserir func(context.Context) error) error {
	if _, err := s.usuarios.FindByID(ctx, usuarioID); err != nil {
		if errors.Is(err, repository.ErrUsuarioNotFound) {
			return apierrors.NotFound("Usuário não encontrado!", err)
		}
		return apierrors.InternalServer("", err)
	}

	if err := inserir(ctx); err != nil {
		if errors.Is(err, repository.ErrRegistroDuplicado) {
			if s.metrics != nil {
				s.metrics.RegistroDiario(kind, "conflict")
			}
			return apierrors.Conflict(msgConflito, err)
		}
		return apierrors.InternalServer("", err)
	}

	if s.metrics != nil {
		s.metrics.RegistroDiario(kind, "created")
	}
	return nil
}

// DiaRegistrado é a projeção de um registro na listagem mensal
type DiaRegistrado struct {
	Dia         int     `json:"dia"`
	Emocao      string  `json:"emocao"`
	Intensidade *int    `json:"intensidade"`
	Observacao  *string `json:"observacao"`
}

// ListarMes lista os registros do usuário no ano/mês informado, um por dia
// registrado, sem preencher os dias vazios. Resultado cacheado por TTL.
func (s *Service) ListarMes(ctx context.Context, usuarioID uint, ano, mes int) ([]DiaRegistrado, error) {
	if mes < 1 || mes > 12 {
		return nil, apierrors.BadRequest("Mês inválido!", nil)
	}

	key := mesCacheKey(usuarioID, ano, mes)

	var cached []DiaRegistrado
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	registros, err := s.registros.ListMes(ctx, usuarioID, ano, mes)
	if err != nil {
		return nil, apierrors.InternalServer("", err)
	}

	dias := make([]DiaRegistrado, 0, len(registros))
	for _, r := range registros {
		data, err := time.Parse(clock.DayLayout, r.Data)
		if err != nil {
			s.logger.Error("data inválida armazenada",
				zap.Uint("registro_id", r.ID),
				zap.String("data", r.Data))
			continue
		}
		dias = append(dias, DiaRegistrado{
			Dia:         data.Day(),
			Emocao:      r.Emocao,
			Intensidade: r.Intensidade,
			Observacao:  r.Observacao,
		})
	}

	if err := s.cache.Set(ctx, key, dias, s.cacheTTL); err != nil {
		s.logger.Warn("falha ao gravar listagem no cache", zap.Error(err))
	}

	return dias, nil
}

func mesCacheKey(usuarioID uint, ano, mes int) string {
	return fmt.Sprintf("calendario:%d:%d:%d", usuarioID, ano, mes)
}
