package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/catalog"
	"github.com/vfg2006/petshop-admin-api/pkg/apiErrors"
)

// ListEntity lista a entidade com busca opcional em ?search=
func ListEntity(service catalog.CatalogService, entity catalog.Entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		search := r.URL.Query().Get("search")

		var (
			result any
			err    error
		)

		switch entity {
		case catalog.EntityClients:
			result, err = service.ListClients(ctx, search)
		case catalog.EntityProducts:
			result, err = service.ListProducts(ctx, search)
		case catalog.EntityServices:
			result, err = service.ListServices(ctx, search)
		case catalog.EntityInventory:
			result, err = service.ListInventory(ctx, search)
		case catalog.EntityOrders:
			result, err = service.ListOrders(ctx, search)
		case catalog.EntityEmployees:
			result, err = service.ListEmployees(ctx, search)
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Entidade desconhecida", string(entity))
			return
		}

		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func decodeEntityRequest(w http.ResponseWriter, r *http.Request, entity catalog.Entity) (catalog.Request, bool) {
	req, err := catalog.NewRequest(entity)
	if err != nil {
		writeUseCaseError(w, r, err)
		return nil, false
	}

	if err := decodeBody(r, req); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", err.Error())
		return nil, false
	}

	return req, true
}

func CreateEntity(service catalog.CatalogService, entity catalog.Entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeEntityRequest(w, r, entity)
		if !ok {
			return
		}

		record, err := service.Create(r.Context(), entity, req)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, record)
	}
}

func UpdateEntity(service catalog.CatalogService, entity catalog.Entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		req, ok := decodeEntityRequest(w, r, entity)
		if !ok {
			return
		}

		record, err := service.Update(r.Context(), entity, id, req)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, record)
	}
}

func DeleteEntity(service catalog.CatalogService, entity catalog.Entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.Delete(r.Context(), entity, id); err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
