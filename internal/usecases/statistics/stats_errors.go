package statistics

import (
	"errors"
	"fmt"
)

var (
	ErrFetchClients   = errors.New("erro ao buscar clientes")
	ErrFetchCatalog   = errors.New("erro ao buscar produtos, serviços ou funcionários")
	ErrFetchSales     = errors.New("erro ao buscar vendas")
	ErrNoSnapshotYet  = errors.New("estatísticas ainda não calculadas")
	ErrRefreshAborted = errors.New("recálculo de estatísticas interrompido")
)

// StatsError carrega o código de API junto do erro de origem
type StatsError struct {
	Err     error
	Code    string
	Details string
}

func (e *StatsError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *StatsError) Unwrap() error {
	return e.Err
}

func NewStatsError(err error, code string, details string) *StatsError {
	return &StatsError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
