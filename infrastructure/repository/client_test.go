package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRepository_ListBySessionIDs(t *testing.T) {
	createdAt := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)

	t.Run("Busca clientes das sessões informadas", func(t *testing.T) {
		conn, mock := setupMockDB(t)
		rows := sqlmock.NewRows(clientColumns).
			AddRow(1, "Maria", "11999990000", nil, "Thor", "grande", "Labrador", "sess-1", nil, createdAt).
			AddRow(2, nil, nil, nil, nil, nil, nil, "sess-2", nil, nil)
		mock.ExpectQuery(regexp.QuoteMeta("FROM dados_cliente WHERE sessionid IN ($1,$2) ORDER BY id ASC")).
			WithArgs("sess-1", "sess-2").
			WillReturnRows(rows)

		repo := NewClientRepository(conn)
		clients, err := repo.ListBySessionIDs(context.Background(), []string{"sess-1", "sess-2"})

		require.NoError(t, err)
		require.Len(t, clients, 2)
		assert.Equal(t, int64(1), clients[0].ID)
		assert.Equal(t, "Maria", *clients[0].Nome)
		assert.Equal(t, "sess-1", *clients[0].SessionID)
		require.NotNil(t, clients[0].CreatedAt)
		assert.True(t, createdAt.Equal(*clients[0].CreatedAt))

		assert.Nil(t, clients[1].Nome)
		assert.Nil(t, clients[1].CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Lista vazia não consulta o banco", func(t *testing.T) {
		conn, mock := setupMockDB(t)

		repo := NewClientRepository(conn)
		clients, err := repo.ListBySessionIDs(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, clients)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClientRepository_ListWithSession(t *testing.T) {
	conn, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM dados_cliente WHERE sessionid IS NOT NULL ORDER BY id ASC")).
		WillReturnRows(sqlmock.NewRows(clientColumns))

	repo := NewClientRepository(conn)
	clients, err := repo.ListWithSession(context.Background())

	require.NoError(t, err)
	assert.Empty(t, clients)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatHistoryRepository_GetLastMessage(t *testing.T) {
	t.Run("Retorna a mensagem mais recente", func(t *testing.T) {
		conn, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM n8n_chat_histories WHERE session_id = $1 ORDER BY id DESC LIMIT 1")).
			WithArgs("sess-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "message"}).
				AddRow(42, "sess-1", []byte(`{"type":"ai","content":"Olá!"}`)))

		repo := NewChatHistoryRepository(conn)
		history, err := repo.GetLastMessage(context.Background(), "sess-1")

		require.NoError(t, err)
		require.NotNil(t, history)
		assert.Equal(t, int64(42), history.ID)
		assert.JSONEq(t, `{"type":"ai","content":"Olá!"}`, string(history.Message))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Sessão sem mensagens", func(t *testing.T) {
		conn, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM n8n_chat_histories WHERE session_id = $1")).
			WithArgs("sess-vazia").
			WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "message"}))

		repo := NewChatHistoryRepository(conn)
		history, err := repo.GetLastMessage(context.Background(), "sess-vazia")

		require.NoError(t, err)
		assert.Nil(t, history)
	})
}
