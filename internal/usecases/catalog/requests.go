package catalog

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
)

// Request é o corpo de criação/edição de uma entidade
type Request interface {
	Columns() map[string]any
}

type ProductRequest struct {
	Nome      string          `json:"nome" validate:"required,max=200"`
	Descricao *string         `json:"descricao"`
	Preco     decimal.Decimal `json:"preco" validate:"gte=0"`
	Categoria *string         `json:"categoria" validate:"omitempty,max=100"`
	Ativo     *bool           `json:"ativo"`
}

func (r *ProductRequest) Columns() map[string]any {
	ativo := true
	if r.Ativo != nil {
		ativo = *r.Ativo
	}

	return map[string]any{
		"nome":      r.Nome,
		"descricao": r.Descricao,
		"preco":     r.Preco,
		"categoria": r.Categoria,
		"ativo":     ativo,
	}
}

type ServiceRequest struct {
	ProductRequest
	DuracaoMinutos *int `json:"duracao_minutos" validate:"omitempty,gt=0"`
}

func (r *ServiceRequest) Columns() map[string]any {
	columns := r.ProductRequest.Columns()
	columns["duracao_minutos"] = r.DuracaoMinutos
	return columns
}

type InventoryRequest struct {
	ProdutoID        string          `json:"produto_id" validate:"required"`
	Quantidade       int             `json:"quantidade" validate:"gte=0"`
	QuantidadeMinima *int            `json:"quantidade_minima" validate:"omitempty,gte=0"`
	PrecoCusto       decimal.Decimal `json:"preco_custo" validate:"gte=0"`
	Lote             string          `json:"lote" validate:"max=50"`
	DataValidade     string          `json:"data_validade" validate:"omitempty,datetime=2006-01-02"`
	Status           string          `json:"status" validate:"omitempty,max=30"`
}

func (r *InventoryRequest) Columns() map[string]any {
	minimum := domain.DefaultMinimumQuantity
	if r.QuantidadeMinima != nil {
		minimum = *r.QuantidadeMinima
	}

	status := r.Status
	if status == "" {
		status = domain.InventoryStatusAvailable
	}

	return map[string]any{
		"produto_id":        r.ProdutoID,
		"quantidade":        r.Quantidade,
		"quantidade_minima": minimum,
		"preco_custo":       r.PrecoCusto,
		"lote":              r.Lote,
		"data_validade":     optionalDate(r.DataValidade),
		"status":            status,
	}
}

type OrderRequest struct {
	ClienteNome     string          `json:"cliente_nome" validate:"required,max=200"`
	ClienteTelefone *string         `json:"cliente_telefone"`
	Items           json.RawMessage `json:"items" validate:"required"`
	ValorTotal      decimal.Decimal `json:"valor_total" validate:"gte=0"`
	Status          string          `json:"status" validate:"omitempty,order_status"`
	Tipo            *string         `json:"tipo"`
	Observacoes     *string         `json:"observacoes"`
	DataEntrega     string          `json:"data_entrega" validate:"omitempty,datetime=2006-01-02"`
}

func (r *OrderRequest) Columns() map[string]any {
	status := r.Status
	if status == "" {
		status = string(domain.OrderStatusPending)
	}

	return map[string]any{
		"cliente_nome":     r.ClienteNome,
		"cliente_telefone": r.ClienteTelefone,
		"items":            string(r.Items),
		"valor_total":      r.ValorTotal,
		"status":           status,
		"tipo":             r.Tipo,
		"observacoes":      r.Observacoes,
		"data_entrega":     optionalDate(r.DataEntrega),
	}
}

type EmployeeRequest struct {
	Nome         string           `json:"nome" validate:"required,max=200"`
	Cargo        string           `json:"cargo" validate:"required,max=100"`
	Email        *string          `json:"email" validate:"omitempty,email"`
	Telefone     *string          `json:"telefone"`
	Salario      *decimal.Decimal `json:"salario" validate:"omitempty,gte=0"`
	DataAdmissao string           `json:"data_admissao" validate:"omitempty,datetime=2006-01-02"`
	Status       string           `json:"status" validate:"omitempty,oneof=ativo inativo"`
}

func (r *EmployeeRequest) Columns() map[string]any {
	status := r.Status
	if status == "" {
		status = domain.EmployeeStatusActive
	}

	return map[string]any{
		"nome":          r.Nome,
		"cargo":         r.Cargo,
		"email":         r.Email,
		"telefone":      r.Telefone,
		"salario":       r.Salario,
		"data_admissao": optionalDate(r.DataAdmissao),
		"status":        status,
	}
}

// optionalDate devolve nil para datas vazias; o formato já foi validado
func optionalDate(value string) any {
	if value == "" {
		return nil
	}

	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil
	}
	return date
}
