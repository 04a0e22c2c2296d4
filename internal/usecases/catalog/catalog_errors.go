package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownEntity   = errors.New("entidade desconhecida")
	ErrReadOnlyEntity  = errors.New("entidade somente leitura")
	ErrInvalidRequest  = errors.New("dados inválidos")
	ErrInvalidItems    = errors.New("itens do pedido inválidos")
	ErrRecordNotFound  = errors.New("registro não encontrado")
	ErrDatabaseFailure = errors.New("erro ao acessar o banco de dados")
	ErrGenerateID      = errors.New("erro ao gerar id")
)

// CatalogError carrega o código de API e a entidade da operação
type CatalogError struct {
	Err     error
	Code    string
	Entity  string
	Details any
}

func (e *CatalogError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

func NewCatalogError(err error, code string, entity string, details any) *CatalogError {
	return &CatalogError{
		Err:     err,
		Code:    code,
		Entity:  entity,
		Details: details,
	}
}
