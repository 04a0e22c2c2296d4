package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/preferences"
	"github.com/vfg2006/petshop-admin-api/pkg/apiErrors"
)

type WebhookEndpointRequest struct {
	URL string `json:"url"`
}

type CardOrderRequest struct {
	Order []string `json:"order"`
}

type ReorderCardsRequest struct {
	ActiveID string `json:"activeId"`
	OverID   string `json:"overId"`
}

func GetPreferences(service preferences.PreferencesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.Current())
	}
}

// writePreferences responde com o estado atual após uma alteração bem sucedida
func writePreferences(w http.ResponseWriter, r *http.Request, service preferences.PreferencesService, err error) {
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, service.Current())
}

func SetWebhookEndpoint(service preferences.PreferencesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := httprouter.ParamsFromContext(r.Context()).ByName("name")

		var req WebhookEndpointRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		writePreferences(w, r, service, service.SetWebhookEndpoint(r.Context(), name, req.URL))
	}
}

func RemoveWebhookEndpoint(service preferences.PreferencesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := httprouter.ParamsFromContext(r.Context()).ByName("name")
		writePreferences(w, r, service, service.RemoveWebhookEndpoint(r.Context(), name))
	}
}

func SetZapierWebhook(service preferences.PreferencesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WebhookEndpointRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		writePreferences(w, r, service, service.SetZapierWebhook(r.Context(), req.URL))
	}
}

func SetCardOrder(service preferences.PreferencesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CardOrderRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		writePreferences(w, r, service, service.SetCardOrder(r.Context(), req.Order))
	}
}

func ReorderCards(service preferences.PreferencesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReorderCardsRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		order, err := service.ReorderCards(r.Context(), req.ActiveID, req.OverID)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, CardOrderRequest{Order: order})
	}
}

func ResetCardOrder(service preferences.PreferencesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePreferences(w, r, service, service.ResetCardOrder(r.Context()))
	}
}
