package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	InventoryStatusAvailable = "disponivel"

	InventoryLabelExpired  = "Vencido"
	InventoryLabelLowStock = "Estoque Baixo"

	DefaultMinimumQuantity = 5
)

type InventoryItem struct {
	ID               string          `json:"id"`
	ProdutoID        string          `json:"produto_id"`
	ProdutoNome      *string         `json:"produto_nome"`
	Quantidade       int             `json:"quantidade"`
	QuantidadeMinima int             `json:"quantidade_minima"`
	PrecoCusto       decimal.Decimal `json:"preco_custo"`
	Lote             string          `json:"lote"`
	DataValidade     *time.Time      `json:"data_validade"`
	Status           string          `json:"status"`
	StatusLabel      string          `json:"status_label"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// StatusLabelAt resolve o rótulo exibido: vencido tem precedência sobre estoque baixo,
// que tem precedência sobre o status gravado.
func (i *InventoryItem) StatusLabelAt(now time.Time) string {
	if i.DataValidade != nil && i.DataValidade.Before(now) {
		return InventoryLabelExpired
	}
	if i.Quantidade <= i.QuantidadeMinima {
		return InventoryLabelLowStock
	}
	return i.Status
}
