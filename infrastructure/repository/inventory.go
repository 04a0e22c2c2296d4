package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/petshop-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
)

type InventoryRepository interface {
	ListInventory(ctx context.Context) ([]*domain.InventoryItem, error)
}

type inventoryRepository struct {
	conn *postgres.Connection
}

func NewInventoryRepository(conn *postgres.Connection) InventoryRepository {
	return &inventoryRepository{
		conn: conn,
	}
}

func (r *inventoryRepository) ListInventory(ctx context.Context) ([]*domain.InventoryItem, error) {
	query, args, err := squirrel.
		Select(
			"e.id", "e.produto_id", "p.nome", "e.quantidade", "e.quantidade_minima", "e.preco_custo",
			"e.lote", "e.data_validade", "e.status", "e.created_at", "e.updated_at",
		).
		From(domain.TableInventory + " e").
		LeftJoin(domain.TableProducts + " p ON p.id = e.produto_id").
		OrderBy("e.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPQError("erro ao consultar estoque", err)
	}
	defer rows.Close()

	items := make([]*domain.InventoryItem, 0)
	for rows.Next() {
		var (
			item     domain.InventoryItem
			expireAt sql.NullTime
		)

		if err := rows.Scan(
			&item.ID,
			&item.ProdutoID,
			&item.ProdutoNome,
			&item.Quantidade,
			&item.QuantidadeMinima,
			&item.PrecoCusto,
			&item.Lote,
			&expireAt,
			&item.Status,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao ler item de estoque: %w", err)
		}

		if expireAt.Valid {
			item.DataValidade = &expireAt.Time
		}

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
