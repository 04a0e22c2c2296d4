package handler

import (
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/petshop-admin-api/infrastructure/integrator/webhook"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/authenticating"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/catalog"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/conversations"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/preferences"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/reporting"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/statistics"
	"github.com/vfg2006/petshop-admin-api/pkg/apiErrors"
	"github.com/vfg2006/petshop-admin-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodySize = 1 << 20

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Error("Erro ao enviar resposta")
	}
}

// decodeBody lê o corpo JSON limitado a 1 MiB; corpo vazio é erro
func decodeBody(r *http.Request, dest any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	return decoder.Decode(dest)
}

// writeUseCaseError traduz os erros tipados dos casos de uso para a resposta padronizada
func writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	log.ForContext(r.Context()).WithError(err).Warn("Requisição falhou")

	var (
		catalogErr *catalog.CatalogError
		reportErr  *reporting.ReportError
		statsErr   *statistics.StatsError
		authErr    *authenticating.AuthError
	)

	switch {
	case errors.As(err, &catalogErr):
		apiErrors.WriteError(w, catalogErr.Code, catalogErr.Err.Error(), catalogErr.Details)
	case errors.As(err, &reportErr):
		apiErrors.WriteError(w, reportErr.Code, reportErr.Err.Error(), detailsOrNil(reportErr.Details))
	case errors.As(err, &statsErr):
		apiErrors.WriteError(w, statsErr.Code, statsErr.Err.Error(), nil)
	case errors.As(err, &authErr):
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)

	case errors.Is(err, webhook.ErrEndpointNotConfigured):
		apiErrors.WriteError(w, apiErrors.ErrEndpointNotConfigured, err.Error(), nil)
	case errors.Is(err, webhook.ErrUnexpectedStatus):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)

	case errors.Is(err, preferences.ErrEmptyCardOrder):
		apiErrors.WriteError(w, apiErrors.ErrInvalidDashboardCardList, err.Error(), nil)
	case errors.Is(err, preferences.ErrInvalidURL), errors.Is(err, preferences.ErrInvalidEndpointName):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	case errors.Is(err, preferences.ErrPersistPreferences):
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar preferências", nil)

	case errors.Is(err, conversations.ErrFetchHistory), errors.Is(err, conversations.ErrFetchClients):
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, err.Error(), nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
	}
}

func detailsOrNil(details string) any {
	if details == "" {
		return nil
	}
	return details
}
