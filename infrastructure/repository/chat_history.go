package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/petshop-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
)

type ChatHistoryRepository interface {
	ListRecent(ctx context.Context, limit uint64) ([]*domain.ChatHistory, error)
	GetLastMessage(ctx context.Context, sessionID string) (*domain.ChatHistory, error)
}

type chatHistoryRepository struct {
	conn *postgres.Connection
}

func NewChatHistoryRepository(conn *postgres.Connection) ChatHistoryRepository {
	return &chatHistoryRepository{
		conn: conn,
	}
}

func (r *chatHistoryRepository) ListRecent(ctx context.Context, limit uint64) ([]*domain.ChatHistory, error) {
	query, args, err := squirrel.
		Select("id", "session_id", "message").
		From(domain.TableChatHistories).
		OrderBy("id DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPQError("erro ao consultar histórico de conversas", err)
	}
	defer rows.Close()

	histories := make([]*domain.ChatHistory, 0)
	for rows.Next() {
		var h domain.ChatHistory
		if err := rows.Scan(&h.ID, &h.SessionID, &h.Message); err != nil {
			return nil, fmt.Errorf("erro ao ler histórico: %w", err)
		}
		histories = append(histories, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return histories, nil
}

// GetLastMessage retorna nil quando a sessão não tem mensagens
func (r *chatHistoryRepository) GetLastMessage(ctx context.Context, sessionID string) (*domain.ChatHistory, error) {
	query, args, err := squirrel.
		Select("id", "session_id", "message").
		From(domain.TableChatHistories).
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("id DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var h domain.ChatHistory
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&h.ID, &h.SessionID, &h.Message)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapPQError("erro ao consultar última mensagem", err)
	}

	return &h, nil
}
