package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/petshop-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
)

type OrderRepository interface {
	ListOrders(ctx context.Context) ([]*domain.Order, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	query, args, err := squirrel.
		Select(
			"id", "cliente_nome", "cliente_telefone", "items", "valor_total", "status",
			"tipo", "observacoes", "data_entrega", "created_at", "updated_at",
		).
		From(domain.TableOrders).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPQError("erro ao consultar pedidos", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		var (
			o        domain.Order
			items    []byte
			delivery sql.NullTime
		)

		if err := rows.Scan(
			&o.ID,
			&o.ClienteNome,
			&o.ClienteTelefone,
			&items,
			&o.ValorTotal,
			&o.Status,
			&o.Tipo,
			&o.Observacoes,
			&delivery,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao ler pedido: %w", err)
		}

		if len(items) > 0 {
			o.Items = append([]byte(nil), items...)
		}
		if delivery.Valid {
			o.DataEntrega = &delivery.Time
		}
		o.StatusLabel = o.Status.Label()

		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
