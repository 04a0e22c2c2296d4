package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/petshop-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
)

var clientColumns = []string{
	"id", "nome", "telefone", "email", "nome_pet", "porte_pet", "raca_pet", "sessionid", "cpf_cnpj", "created_at",
}

type ClientRepository interface {
	ListClients(ctx context.Context) ([]*domain.Client, error)
	ListBySessionIDs(ctx context.Context, sessionIDs []string) ([]*domain.Client, error)
	ListWithSession(ctx context.Context) ([]*domain.Client, error)
}

type clientRepository struct {
	conn *postgres.Connection
}

func NewClientRepository(conn *postgres.Connection) ClientRepository {
	return &clientRepository{
		conn: conn,
	}
}

func (r *clientRepository) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return r.list(ctx, nil)
}

func (r *clientRepository) ListBySessionIDs(ctx context.Context, sessionIDs []string) ([]*domain.Client, error) {
	if len(sessionIDs) == 0 {
		return []*domain.Client{}, nil
	}
	return r.list(ctx, squirrel.Eq{"sessionid": sessionIDs})
}

func (r *clientRepository) ListWithSession(ctx context.Context) ([]*domain.Client, error) {
	return r.list(ctx, squirrel.NotEq{"sessionid": nil})
}

func (r *clientRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.Client, error) {
	queryBuilder := squirrel.
		Select(clientColumns...).
		From(domain.TableClients).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if where != nil {
		queryBuilder = queryBuilder.Where(where)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPQError("erro ao consultar clientes", err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}

func scanClient(rows *sql.Rows) (*domain.Client, error) {
	var (
		client    domain.Client
		createdAt sql.NullTime
	)

	if err := rows.Scan(
		&client.ID,
		&client.Nome,
		&client.Telefone,
		&client.Email,
		&client.NomePet,
		&client.PortePet,
		&client.RacaPet,
		&client.SessionID,
		&client.CPFCNPJ,
		&createdAt,
	); err != nil {
		return nil, fmt.Errorf("erro ao ler cliente: %w", err)
	}

	if createdAt.Valid {
		client.CreatedAt = &createdAt.Time
	}

	return &client, nil
}
