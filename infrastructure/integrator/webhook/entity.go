package webhook

import (
	"context"
	"encoding/json"
)

// Ações aceitas pelos fluxos de automação das entidades
const (
	ActionCreate = "create"
	ActionList   = "list"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// EntityAPI agrupa as ações CRUD do fluxo de uma entidade (produtos, servicos, estoque, pedidos)
type EntityAPI struct {
	client   Client
	endpoint string
}

func ForEntity(client Client, endpoint string) EntityAPI {
	return EntityAPI{client: client, endpoint: endpoint}
}

func (e EntityAPI) Create(ctx context.Context, data map[string]any) (json.RawMessage, error) {
	return e.client.Call(ctx, e.endpoint, ActionCreate, data)
}

func (e EntityAPI) List(ctx context.Context) (json.RawMessage, error) {
	return e.client.Call(ctx, e.endpoint, ActionList, nil)
}

func (e EntityAPI) Update(ctx context.Context, data map[string]any) (json.RawMessage, error) {
	return e.client.Call(ctx, e.endpoint, ActionUpdate, data)
}

func (e EntityAPI) Delete(ctx context.Context, id string) (json.RawMessage, error) {
	return e.client.Call(ctx, e.endpoint, ActionDelete, map[string]any{"id": id})
}
