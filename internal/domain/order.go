package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pendente"
	OrderStatusConfirmed OrderStatus = "confirmado"
	OrderStatusPreparing OrderStatus = "em_preparo"
	OrderStatusReady     OrderStatus = "pronto"
	OrderStatusDelivered OrderStatus = "entregue"
	OrderStatusCanceled  OrderStatus = "cancelado"
)

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:   "Pendente",
	OrderStatusConfirmed: "Confirmado",
	OrderStatusPreparing: "Em Preparo",
	OrderStatusReady:     "Pronto",
	OrderStatusDelivered: "Entregue",
	OrderStatusCanceled:  "Cancelado",
}

func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// Label devolve o rótulo em português; status desconhecido cai em Pendente
func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return orderStatusLabels[OrderStatusPending]
}

type Order struct {
	ID              string          `json:"id"`
	ClienteNome     string          `json:"cliente_nome"`
	ClienteTelefone *string         `json:"cliente_telefone"`
	Items           json.RawMessage `json:"items"`
	ValorTotal      decimal.Decimal `json:"valor_total"`
	Status          OrderStatus     `json:"status"`
	StatusLabel     string          `json:"status_label"`
	Tipo            *string         `json:"tipo"`
	Observacoes     *string         `json:"observacoes"`
	DataEntrega     *time.Time      `json:"data_entrega"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
