package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SaleStatusConcluded = "concluida"
	SaleStatusPending   = "pendente"
	SaleStatusCanceled  = "cancelada"

	SaleTypeProduct = "produto"
	SaleTypeService = "servico"
)

// Sale representa uma linha da tabela vendas
type Sale struct {
	ID              string          `json:"id"`
	ClienteID       *int64          `json:"cliente_id"`
	ClienteNome     *string         `json:"cliente_nome"`
	Tipo            string          `json:"tipo"`
	ItemNome        string          `json:"item_nome"`
	Quantidade      int             `json:"quantidade"`
	ValorUnitario   decimal.Decimal `json:"valor_unitario"`
	ValorTotal      decimal.Decimal `json:"valor_total"`
	MetodoPagamento *string         `json:"metodo_pagamento"`
	DataVenda       time.Time       `json:"data_venda"`
	Status          string          `json:"status"`
}
