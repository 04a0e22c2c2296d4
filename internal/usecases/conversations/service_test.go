package conversations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/petshop-admin-api/infrastructure/repository/mocks"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "String JSON com type e content",
			raw:      `"{\"type\":\"human\",\"content\":\"Quero agendar banho\"}"`,
			expected: "Quero agendar banho",
		},
		{
			name:     "String JSON sem type",
			raw:      `"{\"content\":\"oi\"}"`,
			expected: NoMessage,
		},
		{
			name:     "Texto puro em string JSON",
			raw:      `"Olá, tudo bem?"`,
			expected: "Olá, tudo bem?",
		},
		{
			name:     "Texto fora de JSON",
			raw:      `mensagem direta`,
			expected: "mensagem direta",
		},
		{
			name:     "Objeto com content",
			raw:      `{"type":"ai","content":"Seu horário está confirmado"}`,
			expected: "Seu horário está confirmado",
		},
		{
			name:     "Objeto com lista de mensagens",
			raw:      `{"messages":[{"content":"primeira"},{"content":"última"}]}`,
			expected: "última",
		},
		{
			name:     "Lista de mensagens com última vazia",
			raw:      `{"messages":[{"content":"primeira"},{}]}`,
			expected: NoMessage,
		},
		{
			name:     "Objeto sem campos conhecidos",
			raw:      `{"foo":"bar"}`,
			expected: NoMessage,
		},
		{
			name:     "Vazio",
			raw:      ``,
			expected: NoMessage,
		},
		{
			name:     "Número",
			raw:      `42`,
			expected: NoMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseMessage([]byte(tt.raw)))
		})
	}
}

func TestService_List(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(chat *mocks.MockChatHistoryRepository, clients *mocks.MockClientRepository)
		validate func(t *testing.T, result []*domain.Conversation, err error)
	}{
		{
			name: "Sessões com cliente viram conversas",
			setup: func(chat *mocks.MockChatHistoryRepository, clients *mocks.MockClientRepository) {
				chat.EXPECT().ListRecent(gomock.Any(), uint64(10)).Return([]*domain.ChatHistory{
					{ID: 3, SessionID: "s1"},
					{ID: 2, SessionID: "s2"},
					{ID: 1, SessionID: "s1"},
					{ID: 0, SessionID: ""},
				}, nil)
				clients.EXPECT().ListBySessionIDs(gomock.Any(), []string{"s1", "s2"}).Return([]*domain.Client{
					{ID: 1, Nome: stringPtr("Ana"), Telefone: stringPtr("1199999"), NomePet: stringPtr("Thor"),
						PortePet: stringPtr("Grande"), RacaPet: stringPtr("Labrador"), SessionID: stringPtr("s1")},
				}, nil)
				chat.EXPECT().GetLastMessage(gomock.Any(), "s1").
					Return(&domain.ChatHistory{ID: 3, SessionID: "s1", Message: []byte(`{"type":"human","content":"oi"}`)}, nil)
			},
			validate: func(t *testing.T, result []*domain.Conversation, err error) {
				require.NoError(t, err)
				require.Len(t, result, 1)
				assert.Equal(t, &domain.Conversation{
					ID:          "s1",
					Name:        "Ana",
					Phone:       "1199999",
					Email:       NoEmail,
					PetName:     "Thor",
					PetType:     "Grande",
					PetBreed:    "Labrador",
					LastMessage: "oi",
				}, result[0])
			},
		},
		{
			name: "Sem correspondência usa clientes com sessão",
			setup: func(chat *mocks.MockChatHistoryRepository, clients *mocks.MockClientRepository) {
				chat.EXPECT().ListRecent(gomock.Any(), uint64(10)).Return([]*domain.ChatHistory{{ID: 1, SessionID: "x"}}, nil)
				clients.EXPECT().ListBySessionIDs(gomock.Any(), []string{"x"}).Return([]*domain.Client{}, nil)
				clients.EXPECT().ListWithSession(gomock.Any()).Return([]*domain.Client{
					{ID: 7, SessionID: stringPtr("antiga")},
				}, nil)
				chat.EXPECT().GetLastMessage(gomock.Any(), "antiga").Return(nil, nil)
			},
			validate: func(t *testing.T, result []*domain.Conversation, err error) {
				require.NoError(t, err)
				require.Len(t, result, 1)
				assert.Equal(t, UnnamedClient, result[0].Name)
				assert.Equal(t, NotInformed, result[0].PetName)
				assert.Equal(t, NotInformed, result[0].PetType)
				assert.Equal(t, NoMessage, result[0].LastMessage)
			},
		},
		{
			name: "Histórico vazio não consulta clientes",
			setup: func(chat *mocks.MockChatHistoryRepository, clients *mocks.MockClientRepository) {
				chat.EXPECT().ListRecent(gomock.Any(), uint64(10)).Return([]*domain.ChatHistory{}, nil)
			},
			validate: func(t *testing.T, result []*domain.Conversation, err error) {
				require.NoError(t, err)
				assert.Empty(t, result)
			},
		},
		{
			name: "Falha ao buscar a última mensagem mantém a conversa",
			setup: func(chat *mocks.MockChatHistoryRepository, clients *mocks.MockClientRepository) {
				chat.EXPECT().ListRecent(gomock.Any(), uint64(10)).Return([]*domain.ChatHistory{{ID: 1, SessionID: "s1"}}, nil)
				clients.EXPECT().ListBySessionIDs(gomock.Any(), []string{"s1"}).
					Return([]*domain.Client{{ID: 1, SessionID: stringPtr("s1")}}, nil)
				chat.EXPECT().GetLastMessage(gomock.Any(), "s1").Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, result []*domain.Conversation, err error) {
				require.NoError(t, err)
				require.Len(t, result, 1)
				assert.Equal(t, NoMessage, result[0].LastMessage)
			},
		},
		{
			name: "Erro no histórico",
			setup: func(chat *mocks.MockChatHistoryRepository, clients *mocks.MockClientRepository) {
				chat.EXPECT().ListRecent(gomock.Any(), uint64(10)).Return(nil, errors.New("conexão recusada"))
			},
			validate: func(t *testing.T, result []*domain.Conversation, err error) {
				assert.ErrorIs(t, err, ErrFetchHistory)
				assert.Nil(t, result)
			},
		},
		{
			name: "Erro na busca de clientes",
			setup: func(chat *mocks.MockChatHistoryRepository, clients *mocks.MockClientRepository) {
				chat.EXPECT().ListRecent(gomock.Any(), uint64(10)).Return([]*domain.ChatHistory{{ID: 1, SessionID: "s1"}}, nil)
				clients.EXPECT().ListBySessionIDs(gomock.Any(), []string{"s1"}).Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, result []*domain.Conversation, err error) {
				assert.ErrorIs(t, err, ErrFetchClients)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			chat := mocks.NewMockChatHistoryRepository(ctrl)
			clients := mocks.NewMockClientRepository(ctrl)
			tt.setup(chat, clients)

			result, err := NewService(chat, clients).List(context.Background())
			tt.validate(t, result, err)
		})
	}
}
