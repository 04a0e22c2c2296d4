package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/petshop-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
)

type SaleRepository interface {
	CountConcluded(ctx context.Context) (int64, error)
	ListConcluded(ctx context.Context) ([]*domain.Sale, error)
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

func (r *saleRepository) CountConcluded(ctx context.Context) (int64, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(domain.TableSales).
		Where(squirrel.Eq{"status": domain.SaleStatusConcluded}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, wrapPQError("erro ao contar vendas", err)
	}

	return total, nil
}

// ListConcluded traz as vendas concluídas da mais recente para a mais antiga
func (r *saleRepository) ListConcluded(ctx context.Context) ([]*domain.Sale, error) {
	query, args, err := squirrel.
		Select(
			"id", "cliente_id", "cliente_nome", "tipo", "item_nome", "quantidade",
			"valor_unitario", "valor_total", "metodo_pagamento", "data_venda", "status",
		).
		From(domain.TableSales).
		Where(squirrel.Eq{"status": domain.SaleStatusConcluded}).
		OrderBy("data_venda DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPQError("erro ao consultar vendas", err)
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(
			&s.ID,
			&s.ClienteID,
			&s.ClienteNome,
			&s.Tipo,
			&s.ItemNome,
			&s.Quantidade,
			&s.ValorUnitario,
			&s.ValorTotal,
			&s.MetodoPagamento,
			&s.DataVenda,
			&s.Status,
		); err != nil {
			return nil, fmt.Errorf("erro ao ler venda: %w", err)
		}
		sales = append(sales, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sales, nil
}
