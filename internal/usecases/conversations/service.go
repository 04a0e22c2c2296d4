package conversations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/petshop-admin-api/infrastructure/repository"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/pkg/log"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// quantidade de mensagens recentes usada para descobrir as sessões ativas
	recentHistoryLimit = 10

	NoMessage     = "Sem mensagem"
	UnnamedClient = "Cliente sem nome"
	NoEmail       = "Sem email"
	NotInformed   = "Não informado"
)

var (
	ErrFetchHistory = errors.New("erro ao buscar histórico de conversas")
	ErrFetchClients = errors.New("erro ao buscar clientes das conversas")
)

type ConversationService interface {
	List(ctx context.Context) ([]*domain.Conversation, error)
}

type Service struct {
	chatRepo   repository.ChatHistoryRepository
	clientRepo repository.ClientRepository
}

func NewService(chatRepo repository.ChatHistoryRepository, clientRepo repository.ClientRepository) ConversationService {
	return &Service{
		chatRepo:   chatRepo,
		clientRepo: clientRepo,
	}
}

func (s *Service) List(ctx context.Context) ([]*domain.Conversation, error) {
	logger := log.ForComponent(ctx, "conversations")

	histories, err := s.chatRepo.ListRecent(ctx, recentHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchHistory, err)
	}

	sessionIDs := uniqueSessionIDs(histories)
	if len(sessionIDs) == 0 {
		return []*domain.Conversation{}, nil
	}

	clients, err := s.clientRepo.ListBySessionIDs(ctx, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchClients, err)
	}

	if len(clients) == 0 {
		logger.WithField("sessions", len(sessionIDs)).
			Warn("conversations: nenhuma sessão recente tem cliente, usando todos os clientes com sessão")

		clients, err = s.clientRepo.ListWithSession(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetchClients, err)
		}
	} else {
		logOrphanSessions(logger, sessionIDs, clients)
	}

	conversations := make([]*domain.Conversation, 0, len(clients))
	for _, client := range clients {
		if !domain.NonEmpty(client.SessionID) {
			continue
		}

		conversation := newConversation(client)
		conversation.LastMessage = s.lastMessage(ctx, *client.SessionID)
		conversations = append(conversations, conversation)
	}

	return conversations, nil
}

// lastMessage nunca falha: erro de leitura vira "Sem mensagem" no card
func (s *Service) lastMessage(ctx context.Context, sessionID string) string {
	history, err := s.chatRepo.GetLastMessage(ctx, sessionID)
	if err != nil {
		log.ForComponent(ctx, "conversations").
			WithField("session_id", sessionID).
			WithError(err).
			Warn("conversations: falha ao buscar última mensagem")
		return NoMessage
	}
	if history == nil {
		return NoMessage
	}

	return ParseMessage(history.Message)
}

func newConversation(client *domain.Client) *domain.Conversation {
	return &domain.Conversation{
		ID:       *client.SessionID,
		Name:     domain.ValueOr(client.Nome, UnnamedClient),
		Phone:    domain.ValueOr(client.Telefone, ""),
		Email:    domain.ValueOr(client.Email, NoEmail),
		PetName:  domain.ValueOr(client.NomePet, NotInformed),
		PetType:  domain.ValueOr(client.PortePet, NotInformed),
		PetBreed: domain.ValueOr(client.RacaPet, NotInformed),
	}
}

func uniqueSessionIDs(histories []*domain.ChatHistory) []string {
	seen := make(map[string]bool, len(histories))
	ids := make([]string, 0, len(histories))
	for _, h := range histories {
		if h == nil || strings.TrimSpace(h.SessionID) == "" || seen[h.SessionID] {
			continue
		}
		seen[h.SessionID] = true
		ids = append(ids, h.SessionID)
	}
	return ids
}

func logOrphanSessions(logger log.Logger, sessionIDs []string, clients []*domain.Client) {
	known := make(map[string]bool, len(clients))
	for _, c := range clients {
		if c.SessionID != nil {
			known[*c.SessionID] = true
		}
	}

	for _, id := range sessionIDs {
		if !known[id] {
			logger.WithField("session_id", id).Info("conversations: sessão sem cliente ignorada")
		}
	}
}

type chatEnvelope struct {
	Type     string `json:"type"`
	Content  string `json:"content"`
	Messages []struct {
		Content string `json:"content"`
	} `json:"messages"`
}

// ParseMessage extrai o texto exibido de uma linha de n8n_chat_histories.
// Aceita string JSON com type e content, texto puro, objeto com content ou
// objeto com a lista messages (vale a última).
func ParseMessage(raw []byte) string {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return NoMessage
	}

	var value any
	if err := jsonAPI.Unmarshal(raw, &value); err != nil {
		// coluna texto sem JSON
		return string(raw)
	}

	switch v := value.(type) {
	case string:
		return parseStringMessage(v)
	case map[string]any:
		var envelope chatEnvelope
		if err := jsonAPI.Unmarshal(raw, &envelope); err != nil {
			return NoMessage
		}
		return parseObjectMessage(envelope)
	}

	return NoMessage
}

func parseStringMessage(s string) string {
	if s == "" {
		return NoMessage
	}

	var envelope chatEnvelope
	if err := jsonAPI.UnmarshalFromString(s, &envelope); err != nil {
		return s
	}

	if envelope.Type != "" && envelope.Content != "" {
		return envelope.Content
	}
	return NoMessage
}

func parseObjectMessage(envelope chatEnvelope) string {
	if envelope.Content != "" {
		return envelope.Content
	}

	if n := len(envelope.Messages); n > 0 && envelope.Messages[n-1].Content != "" {
		return envelope.Messages[n-1].Content
	}

	return NoMessage
}
