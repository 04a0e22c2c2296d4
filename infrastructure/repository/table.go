package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/petshop-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
)

var (
	ErrInvalidTable    = errors.New("tabela não permitida")
	ErrInvalidColumn   = errors.New("coluna inválida")
	ErrInvalidFilter   = errors.New("filtro inválido")
	ErrRecordNotFound  = errors.New("registro não encontrado")
	ErrNothingToUpdate = errors.New("nenhuma coluna para atualizar")
)

var columnPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// TableRepository é o acesso genérico às tabelas do painel: listagem filtrada,
// contagem exata e escrita por id.
type TableRepository interface {
	Select(ctx context.Context, table string, query domain.Query) ([]domain.Record, error)
	Count(ctx context.Context, table string, filters ...domain.Filter) (int64, error)
	Insert(ctx context.Context, table string, values map[string]any) (domain.Record, error)
	Update(ctx context.Context, table string, id any, values map[string]any) (domain.Record, error)
	Delete(ctx context.Context, table string, id any) error
}

type tableRepository struct {
	conn *postgres.Connection
}

func NewTableRepository(conn *postgres.Connection) TableRepository {
	return &tableRepository{
		conn: conn,
	}
}

func (r *tableRepository) Select(ctx context.Context, table string, query domain.Query) ([]domain.Record, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}

	where, err := buildWhere(query.Filters)
	if err != nil {
		return nil, err
	}

	queryBuilder := squirrel.
		Select("*").
		From(table).
		PlaceholderFormat(squirrel.Dollar)

	if len(where) > 0 {
		queryBuilder = queryBuilder.Where(where)
	}

	if query.OrderBy != "" {
		if !columnPattern.MatchString(query.OrderBy) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidColumn, query.OrderBy)
		}

		direction := "ASC"
		if query.Descending {
			direction = "DESC"
		}
		queryBuilder = queryBuilder.OrderBy(fmt.Sprintf("%s %s", query.OrderBy, direction))
	}

	if query.Limit > 0 {
		queryBuilder = queryBuilder.Limit(query.Limit)
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapPQError(fmt.Sprintf("erro ao consultar %s", table), err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (r *tableRepository) Count(ctx context.Context, table string, filters ...domain.Filter) (int64, error) {
	if err := validateTable(table); err != nil {
		return 0, err
	}

	where, err := buildWhere(filters)
	if err != nil {
		return 0, err
	}

	queryBuilder := squirrel.
		Select("COUNT(*)").
		From(table).
		PlaceholderFormat(squirrel.Dollar)

	if len(where) > 0 {
		queryBuilder = queryBuilder.Where(where)
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&total); err != nil {
		return 0, wrapPQError(fmt.Sprintf("erro ao contar %s", table), err)
	}

	return total, nil
}

func (r *tableRepository) Insert(ctx context.Context, table string, values map[string]any) (domain.Record, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}

	columns, args, err := sortedColumns(values)
	if err != nil {
		return nil, err
	}

	sqlQuery, sqlArgs, err := squirrel.
		Insert(table).
		Columns(columns...).
		Values(args...).
		Suffix("RETURNING *").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryOne(ctx, table, sqlQuery, sqlArgs)
}

func (r *tableRepository) Update(ctx context.Context, table string, id any, values map[string]any) (domain.Record, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}

	if len(values) == 0 {
		return nil, ErrNothingToUpdate
	}

	columns, args, err := sortedColumns(values)
	if err != nil {
		return nil, err
	}

	queryBuilder := squirrel.
		Update(table).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING *").
		PlaceholderFormat(squirrel.Dollar)

	for i, column := range columns {
		queryBuilder = queryBuilder.Set(column, args[i])
	}

	sqlQuery, sqlArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryOne(ctx, table, sqlQuery, sqlArgs)
}

func (r *tableRepository) Delete(ctx context.Context, table string, id any) error {
	if err := validateTable(table); err != nil {
		return err
	}

	sqlQuery, args, err := squirrel.
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return wrapPQError(fmt.Sprintf("erro ao excluir de %s", table), err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (r *tableRepository) queryOne(ctx context.Context, table, sqlQuery string, args []any) (domain.Record, error) {
	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapPQError(fmt.Sprintf("erro ao gravar em %s", table), err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrRecordNotFound
	}

	return records[0], nil
}

func validateTable(table string) error {
	if !domain.IsKnownTable(table) {
		return fmt.Errorf("%w: %s", ErrInvalidTable, table)
	}
	return nil
}

// buildWhere traduz os filtros do domínio para squirrel; vários filtros são combinados com AND
func buildWhere(filters []domain.Filter) (squirrel.And, error) {
	where := squirrel.And{}
	for _, f := range filters {
		if !columnPattern.MatchString(f.Column) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidColumn, f.Column)
		}

		switch f.Op {
		case domain.FilterEq, domain.FilterIn:
			// slice dentro de Eq vira IN (...)
			where = append(where, squirrel.Eq{f.Column: f.Value})
		case domain.FilterNotNull:
			where = append(where, squirrel.NotEq{f.Column: nil})
		case domain.FilterGte:
			where = append(where, squirrel.GtOrEq{f.Column: f.Value})
		case domain.FilterLte:
			where = append(where, squirrel.LtOrEq{f.Column: f.Value})
		default:
			return nil, fmt.Errorf("%w: %s", ErrInvalidFilter, f.Op)
		}
	}
	return where, nil
}

// sortedColumns ordena as colunas para gerar SQL determinístico
func sortedColumns(values map[string]any) ([]string, []any, error) {
	columns := make([]string, 0, len(values))
	for column := range values {
		if !columnPattern.MatchString(column) {
			return nil, nil, fmt.Errorf("%w: %s", ErrInvalidColumn, column)
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	args := make([]any, 0, len(columns))
	for _, column := range columns {
		args = append(args, values[column])
	}

	return columns, args, nil
}

func scanRecords(rows *sql.Rows) ([]domain.Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler colunas: %w", err)
	}

	records := make([]domain.Record, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("erro ao ler linha: %w", err)
		}

		record := make(domain.Record, 0, len(columns))
		for i, column := range columns {
			record = append(record, domain.Field{Key: column, Value: normalizeValue(values[i])})
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// normalizeValue converte os []byte do driver (numeric, json, uuid) em tipos serializáveis
func normalizeValue(value any) any {
	raw, ok := value.([]byte)
	if !ok {
		return value
	}

	if len(raw) > 0 && (raw[0] == '{' || raw[0] == '[') && json.Valid(raw) {
		return json.RawMessage(append([]byte(nil), raw...))
	}

	return string(raw)
}

func wrapPQError(message string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s (pq %s): %w", message, pqErr.Code, err)
	}
	return fmt.Errorf("%s: %w", message, err)
}
