package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vfg2006/petshop-admin-api/infrastructure/integrator/webhook"
	"github.com/vfg2006/petshop-admin-api/infrastructure/repository"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/pkg/apiErrors"
	"github.com/vfg2006/petshop-admin-api/pkg/log"
	"github.com/vfg2006/petshop-admin-api/pkg/utils"
)

// Entity identifica as tabelas editáveis pelo painel
type Entity string

const (
	EntityClients   Entity = "clients"
	EntityProducts  Entity = "produtos"
	EntityServices  Entity = "servicos"
	EntityInventory Entity = "estoque"
	EntityOrders    Entity = "pedidos"
	EntityEmployees Entity = "funcionarios"
)

var entityTables = map[Entity]string{
	EntityClients:   domain.TableClients,
	EntityProducts:  domain.TableProducts,
	EntityServices:  domain.TableServices,
	EntityInventory: domain.TableInventory,
	EntityOrders:    domain.TableOrders,
	EntityEmployees: domain.TableEmployees,
}

// entidades espelhadas nos fluxos de automação
var webhookEntities = map[Entity]bool{
	EntityProducts:  true,
	EntityServices:  true,
	EntityInventory: true,
	EntityOrders:    true,
}

func ParseEntity(s string) (Entity, bool) {
	e := Entity(s)
	_, ok := entityTables[e]
	return e, ok
}

// NewRequest devolve o corpo vazio esperado para a entidade
func NewRequest(entity Entity) (Request, error) {
	switch entity {
	case EntityProducts:
		return &ProductRequest{}, nil
	case EntityServices:
		return &ServiceRequest{}, nil
	case EntityInventory:
		return &InventoryRequest{}, nil
	case EntityOrders:
		return &OrderRequest{}, nil
	case EntityEmployees:
		return &EmployeeRequest{}, nil
	case EntityClients:
		return nil, NewCatalogError(ErrReadOnlyEntity, apiErrors.ErrInvalidRequest, string(entity), nil)
	}
	return nil, NewCatalogError(ErrUnknownEntity, apiErrors.ErrInvalidRequest, string(entity), nil)
}

type CatalogService interface {
	ListClients(ctx context.Context, search string) ([]*domain.Client, error)
	ListProducts(ctx context.Context, search string) ([]*domain.Product, error)
	ListServices(ctx context.Context, search string) ([]*domain.Product, error)
	ListInventory(ctx context.Context, search string) ([]*domain.InventoryItem, error)
	ListOrders(ctx context.Context, search string) ([]*domain.Order, error)
	ListEmployees(ctx context.Context, search string) ([]*domain.Employee, error)
	Create(ctx context.Context, entity Entity, req Request) (domain.Record, error)
	Update(ctx context.Context, entity Entity, id string, req Request) (domain.Record, error)
	Delete(ctx context.Context, entity Entity, id string) error
}

type Service struct {
	tableRepo     repository.TableRepository
	clientRepo    repository.ClientRepository
	catalogRepo   repository.CatalogRepository
	inventoryRepo repository.InventoryRepository
	orderRepo     repository.OrderRepository
	webhookClient webhook.Client
	validate      *validator.Validate
	now           func() time.Time
	generateID    func() (string, error)
}

func NewService(
	tableRepo repository.TableRepository,
	clientRepo repository.ClientRepository,
	catalogRepo repository.CatalogRepository,
	inventoryRepo repository.InventoryRepository,
	orderRepo repository.OrderRepository,
	webhookClient webhook.Client,
) CatalogService {
	return &Service{
		tableRepo:     tableRepo,
		clientRepo:    clientRepo,
		catalogRepo:   catalogRepo,
		inventoryRepo: inventoryRepo,
		orderRepo:     orderRepo,
		webhookClient: webhookClient,
		validate:      newValidator(),
		now:           time.Now,
		generateID:    utils.GenerateID,
	}
}

func dbError(entity Entity, err error) error {
	return NewCatalogError(ErrDatabaseFailure, apiErrors.ErrDatabaseOperation, string(entity), err.Error())
}

func (s *Service) ListClients(ctx context.Context, search string) ([]*domain.Client, error) {
	clients, err := s.clientRepo.ListClients(ctx)
	if err != nil {
		return nil, dbError(EntityClients, err)
	}

	return filter(clients, search, func(c *domain.Client) []string {
		return []string{domain.ValueOr(c.Nome, ""), domain.ValueOr(c.NomePet, ""), domain.ValueOr(c.RacaPet, "")}
	}), nil
}

func (s *Service) ListProducts(ctx context.Context, search string) ([]*domain.Product, error) {
	products, err := s.catalogRepo.ListProducts(ctx)
	if err != nil {
		return nil, dbError(EntityProducts, err)
	}

	return filter(products, search, productFields), nil
}

func (s *Service) ListServices(ctx context.Context, search string) ([]*domain.Product, error) {
	services, err := s.catalogRepo.ListServices(ctx)
	if err != nil {
		return nil, dbError(EntityServices, err)
	}

	return filter(services, search, productFields), nil
}

func productFields(p *domain.Product) []string {
	return []string{p.Nome, domain.ValueOr(p.Categoria, "")}
}

func (s *Service) ListInventory(ctx context.Context, search string) ([]*domain.InventoryItem, error) {
	items, err := s.inventoryRepo.ListInventory(ctx)
	if err != nil {
		return nil, dbError(EntityInventory, err)
	}

	now := s.now()
	for _, item := range items {
		item.StatusLabel = item.StatusLabelAt(now)
	}

	return filter(items, search, func(i *domain.InventoryItem) []string {
		return []string{domain.ValueOr(i.ProdutoNome, ""), i.Lote}
	}), nil
}

func (s *Service) ListOrders(ctx context.Context, search string) ([]*domain.Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		return nil, dbError(EntityOrders, err)
	}

	return filter(orders, search, func(o *domain.Order) []string {
		return []string{o.ClienteNome, string(o.Status), o.StatusLabel}
	}), nil
}

func (s *Service) ListEmployees(ctx context.Context, search string) ([]*domain.Employee, error) {
	employees, err := s.catalogRepo.ListEmployees(ctx)
	if err != nil {
		return nil, dbError(EntityEmployees, err)
	}

	return filter(employees, search, func(e *domain.Employee) []string {
		return []string{e.Nome, e.Cargo}
	}), nil
}

// filter aplica a busca sem diferenciar maiúsculas em qualquer um dos campos
func filter[T any](items []T, search string, fields func(T) []string) []T {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return items
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), term) {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

func (s *Service) checkRequest(entity Entity, req Request) error {
	if _, ok := entityTables[entity]; !ok {
		return NewCatalogError(ErrUnknownEntity, apiErrors.ErrInvalidRequest, string(entity), nil)
	}
	if entity == EntityClients {
		return NewCatalogError(ErrReadOnlyEntity, apiErrors.ErrInvalidRequest, string(entity), nil)
	}

	if err := s.validate.Struct(req); err != nil {
		return NewCatalogError(ErrInvalidRequest, apiErrors.ErrInvalidFormat, string(entity), validationDetails(err))
	}

	if order, ok := req.(*OrderRequest); ok {
		if err := validateOrderItems(order.Items); err != nil {
			return NewCatalogError(ErrInvalidItems, apiErrors.ErrInvalidFormat, string(entity), err.Error())
		}
	}

	return nil
}

func (s *Service) Create(ctx context.Context, entity Entity, req Request) (domain.Record, error) {
	if err := s.checkRequest(entity, req); err != nil {
		return nil, err
	}

	id, err := s.generateID()
	if err != nil {
		return nil, NewCatalogError(ErrGenerateID, apiErrors.ErrInternalServer, string(entity), err.Error())
	}

	columns := req.Columns()
	columns["id"] = id

	record, err := s.tableRepo.Insert(ctx, entityTables[entity], columns)
	if err != nil {
		return nil, dbError(entity, err)
	}

	s.notify(ctx, entity, webhook.ActionCreate, columns)

	return record, nil
}

func (s *Service) Update(ctx context.Context, entity Entity, id string, req Request) (domain.Record, error) {
	if err := s.checkRequest(entity, req); err != nil {
		return nil, err
	}

	columns := req.Columns()
	columns["updated_at"] = s.now()

	record, err := s.tableRepo.Update(ctx, entityTables[entity], id, columns)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, NewCatalogError(ErrRecordNotFound, apiErrors.ErrRecordNotFound, string(entity), id)
	}
	if err != nil {
		return nil, dbError(entity, err)
	}

	payload := req.Columns()
	payload["id"] = id
	s.notify(ctx, entity, webhook.ActionUpdate, payload)

	return record, nil
}

func (s *Service) Delete(ctx context.Context, entity Entity, id string) error {
	table, ok := entityTables[entity]
	if !ok {
		return NewCatalogError(ErrUnknownEntity, apiErrors.ErrInvalidRequest, string(entity), nil)
	}
	if entity == EntityClients {
		return NewCatalogError(ErrReadOnlyEntity, apiErrors.ErrInvalidRequest, string(entity), nil)
	}

	err := s.tableRepo.Delete(ctx, table, id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return NewCatalogError(ErrRecordNotFound, apiErrors.ErrRecordNotFound, string(entity), id)
	}
	if err != nil {
		return dbError(entity, err)
	}

	s.notify(ctx, entity, webhook.ActionDelete, map[string]any{"id": id})

	return nil
}

// notify espelha a alteração no fluxo de automação da entidade. Falhas não
// desfazem a gravação no banco.
func (s *Service) notify(ctx context.Context, entity Entity, action string, payload map[string]any) {
	if s.webhookClient == nil || !webhookEntities[entity] {
		return
	}

	logger := log.ForComponent(ctx, "webhook").WithFields(log.Fields{
		"entity": string(entity),
		"action": action,
	})

	api := webhook.ForEntity(s.webhookClient, string(entity))

	var err error
	switch action {
	case webhook.ActionCreate:
		_, err = api.Create(ctx, payload)
	case webhook.ActionUpdate:
		_, err = api.Update(ctx, payload)
	case webhook.ActionDelete:
		id, _ := payload["id"].(string)
		_, err = api.Delete(ctx, id)
	}

	switch {
	case errors.Is(err, webhook.ErrEndpointNotConfigured):
		logger.Debug("webhook: endpoint não configurado, notificação ignorada")
	case err != nil:
		logger.WithError(err).Warn("webhook: falha ao notificar alteração")
	}
}
