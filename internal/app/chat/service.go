package chat

import (
	"context"

	"github.com/serenoapp/sereno-api/internal/domain/model"
	"github.com/serenoapp/sereno-api/internal/domain/repository"
	apierrors "github.com/serenoapp/sereno-api/pkg/errors"
	"go.uber.org/zap"
)

// Service grava as trocas de mensagens com o bot. A resposta é fixa e vem
// da configuração; não há motor de conversação.
type Service struct {
	conversas repository.ConversaRepository
	resposta  string
	logger    *zap.Logger
}

func NewService(conversas repository.ConversaRepository, resposta string, logger *zap.Logger) *Service {
	return &Service{
		conversas: conversas,
		resposta:  resposta,
		logger:    logger,
	}
}

// Enviar registra a mensagem do usuário junto da resposta do bot e a retorna
func (s *Service) Enviar(ctx context.Context, usuarioID uint, mensagem string) (string, error) {
	conversa := &model.Conversa{
		UsuarioID:       usuarioID,
		MensagemUsuario: mensagem,
		MensagemBot:     s.resposta,
	}

	if err := s.conversas.Create(ctx, conversa); err != nil {
		return "", apierrors.InternalServer("", err)
	}

	s.logger.Debug("conversa registrada",
		zap.Uint("usuario_id", usuarioID),
		zap.Uint("conversa_id", conversa.ID))

	return s.resposta, nil
}
