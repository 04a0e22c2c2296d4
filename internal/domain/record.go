package domain

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Tabelas conhecidas pela camada de acesso a dados
const (
	TableClients       = "dados_cliente"
	TableChatHistories = "n8n_chat_histories"
	TableSales         = "vendas"
	TableProducts      = "produtos"
	TableServices      = "servicos"
	TableInventory     = "estoque"
	TableOrders        = "pedidos"
	TableEmployees     = "funcionarios"
)

var knownTables = map[string]bool{
	TableClients:       true,
	TableChatHistories: true,
	TableSales:         true,
	TableProducts:      true,
	TableServices:      true,
	TableInventory:     true,
	TableOrders:        true,
	TableEmployees:     true,
}

// IsKnownTable indica se a tabela pode ser acessada pelo repositório genérico
func IsKnownTable(table string) bool {
	return knownTables[table]
}

// Field é um par coluna/valor de uma linha
type Field struct {
	Key   string
	Value any
}

// Record é uma linha genérica que preserva a ordem das colunas retornadas pelo banco.
// A ordem importa para exportação: o cabeçalho do CSV segue as chaves da primeira linha.
type Record []Field

func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for _, f := range r {
		keys = append(keys, f.Key)
	}
	return keys
}

// Set substitui o valor da chave ou acrescenta no final
func (r Record) Set(key string, value any) Record {
	for i, f := range r {
		if f.Key == key {
			r[i].Value = value
			return r
		}
	}
	return append(r, Field{Key: key, Value: value})
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := jsonAPI.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := jsonAPI.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FilterOp é a gramática mínima de filtros aceita pelo repositório genérico
type FilterOp string

const (
	FilterEq      FilterOp = "eq"
	FilterIn      FilterOp = "in"
	FilterNotNull FilterOp = "not_null"
	FilterGte     FilterOp = "gte"
	FilterLte     FilterOp = "lte"
)

type Filter struct {
	Column string
	Op     FilterOp
	Value  any
}

func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: FilterEq, Value: value}
}

func In(column string, values any) Filter {
	return Filter{Column: column, Op: FilterIn, Value: values}
}

func NotNull(column string) Filter {
	return Filter{Column: column, Op: FilterNotNull}
}

func Gte(column string, value any) Filter {
	return Filter{Column: column, Op: FilterGte, Value: value}
}

func Lte(column string, value any) Filter {
	return Filter{Column: column, Op: FilterLte, Value: value}
}

type Query struct {
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      uint64
}
