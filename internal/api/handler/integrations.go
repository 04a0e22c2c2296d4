package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/petshop-admin-api/infrastructure/integrator/webhook"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/pkg/apiErrors"
)

// decodePayload aceita corpo vazio como payload sem campos
func decodePayload(r *http.Request) (map[string]any, error) {
	payload := map[string]any{}
	if err := decodeBody(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return payload, nil
}

func writeRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// CallWebhook repassa {action, ...payload} ao endpoint nomeado e devolve a resposta do fluxo
func CallWebhook(client webhook.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())

		payload, err := decodePayload(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		response, err := client.Call(r.Context(), params.ByName("endpoint"), params.ByName("action"), payload)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeRaw(w, response)
	}
}

// ListRemote devolve a listagem mantida pelo fluxo de automação do endpoint
func ListRemote(client webhook.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		endpoint := httprouter.ParamsFromContext(r.Context()).ByName("endpoint")

		response, err := webhook.ForEntity(client, endpoint).List(r.Context())
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeRaw(w, response)
	}
}

// CallAgenda aciona a agenda do tipo informado (geral, banho ou vet)
func CallAgenda(client webhook.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())

		agenda, ok := domain.ParseAgendaType(params.ByName("type"))
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de agenda inválido", params.ByName("type"))
			return
		}

		payload, err := decodePayload(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		response, err := client.CallCalendar(r.Context(), agenda, params.ByName("action"), payload)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeRaw(w, response)
	}
}

func NotifyZapier(client webhook.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := decodePayload(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if err := client.NotifyZapier(r.Context(), payload); err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
