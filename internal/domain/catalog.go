package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa produtos e, com DuracaoMinutos preenchido, servicos
type Product struct {
	ID             string          `json:"id"`
	Nome           string          `json:"nome"`
	Descricao      *string         `json:"descricao"`
	Preco          decimal.Decimal `json:"preco"`
	Categoria      *string         `json:"categoria"`
	Ativo          bool            `json:"ativo"`
	DuracaoMinutos *int            `json:"duracao_minutos,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

const (
	EmployeeStatusActive   = "ativo"
	EmployeeStatusInactive = "inativo"
)

type Employee struct {
	ID           string           `json:"id"`
	Nome         string           `json:"nome"`
	Cargo        string           `json:"cargo"`
	Email        *string          `json:"email"`
	Telefone     *string          `json:"telefone"`
	Salario      *decimal.Decimal `json:"salario"`
	DataAdmissao *time.Time       `json:"data_admissao"`
	Status       string           `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}
