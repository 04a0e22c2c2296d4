package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/petshop-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
)

// CatalogRepository lê produtos, serviços e funcionários com tipagem
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ListServices(ctx context.Context) ([]*domain.Product, error)
	ListEmployees(ctx context.Context) ([]*domain.Employee, error)
}

type catalogRepository struct {
	conn *postgres.Connection
}

func NewCatalogRepository(conn *postgres.Connection) CatalogRepository {
	return &catalogRepository{
		conn: conn,
	}
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return r.listProducts(ctx, domain.TableProducts, false)
}

func (r *catalogRepository) ListServices(ctx context.Context) ([]*domain.Product, error) {
	return r.listProducts(ctx, domain.TableServices, true)
}

func (r *catalogRepository) listProducts(ctx context.Context, table string, withDuration bool) ([]*domain.Product, error) {
	columns := []string{"id", "nome", "descricao", "preco", "categoria", "ativo", "created_at", "updated_at"}
	if withDuration {
		columns = append(columns, "duracao_minutos")
	}

	query, args, err := squirrel.
		Select(columns...).
		From(table).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPQError(fmt.Sprintf("erro ao consultar %s", table), err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		var (
			p        domain.Product
			duration sql.NullInt64
		)

		dest := []any{&p.ID, &p.Nome, &p.Descricao, &p.Preco, &p.Categoria, &p.Ativo, &p.CreatedAt, &p.UpdatedAt}
		if withDuration {
			dest = append(dest, &duration)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("erro ao ler %s: %w", table, err)
		}

		if duration.Valid {
			minutes := int(duration.Int64)
			p.DuracaoMinutos = &minutes
		}

		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *catalogRepository) ListEmployees(ctx context.Context) ([]*domain.Employee, error) {
	query, args, err := squirrel.
		Select("id", "nome", "cargo", "email", "telefone", "salario", "data_admissao", "status", "created_at", "updated_at").
		From(domain.TableEmployees).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPQError("erro ao consultar funcionários", err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		var (
			e         domain.Employee
			salary    decimal.NullDecimal
			admission sql.NullTime
		)

		if err := rows.Scan(
			&e.ID,
			&e.Nome,
			&e.Cargo,
			&e.Email,
			&e.Telefone,
			&salary,
			&admission,
			&e.Status,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao ler funcionário: %w", err)
		}

		if salary.Valid {
			e.Salario = &salary.Decimal
		}
		if admission.Valid {
			e.DataAdmissao = &admission.Time
		}

		employees = append(employees, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}
