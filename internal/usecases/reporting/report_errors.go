package reporting

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidReportType       = errors.New("tipo de relatório inválido")
	ErrInvalidDateRange        = errors.New("data inicial posterior à data final")
	ErrNoDataToExport          = errors.New("nenhum dado para exportar")
	ErrUnsupportedExportFormat = errors.New("formato de exportação não suportado")
	ErrFetchReportData         = errors.New("erro ao buscar dados do relatório")
	ErrBuildExportFile         = errors.New("erro ao gerar arquivo de exportação")
)

// ReportError é um erro com o código de API e a entidade envolvida
type ReportError struct {
	Err     error
	Code    string
	Entity  string
	Details string
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func NewReportError(err error, code string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewReportErrorWithEntity(err error, code string, entity string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Entity:  entity,
		Details: details,
	}
}
