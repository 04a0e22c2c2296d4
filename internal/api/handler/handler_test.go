package handler

import (
	"context"
	stdjson "encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/petshop-admin-api/infrastructure/integrator/webhook"
	webhookmocks "github.com/vfg2006/petshop-admin-api/infrastructure/integrator/webhook/mocks"
	"github.com/vfg2006/petshop-admin-api/infrastructure/repository/mocks"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/catalog"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/preferences"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/reporting"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/statistics"
	"github.com/vfg2006/petshop-admin-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

// serve registra um único handler num httprouter para que os parâmetros de rota sejam resolvidos
func serve(method, path string, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rt := httprouter.New()
	rt.Handler(method, path, h)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, stdjson.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

type fakeStatsService struct {
	snapshot   *domain.DashboardStats
	refreshed  *domain.DashboardStats
	refreshErr error
	updates    chan domain.DashboardStats
	refreshes  int
}

func (f *fakeStatsService) Refresh(ctx context.Context) (*domain.DashboardStats, error) {
	f.refreshes++
	return f.refreshed, f.refreshErr
}

func (f *fakeStatsService) Snapshot() (*domain.DashboardStats, bool) {
	return f.snapshot, f.snapshot != nil
}

func (f *fakeStatsService) Subscribe() (<-chan domain.DashboardStats, func()) {
	return f.updates, func() {}
}

func TestGetStats(t *testing.T) {
	tests := []struct {
		name          string
		service       *fakeStatsService
		wantStatus    int
		wantTotal     int
		wantRefreshes int
		wantCode      string
	}{
		{
			name:       "Devolve snapshot publicado sem recalcular",
			service:    &fakeStatsService{snapshot: &domain.DashboardStats{TotalClients: 7}},
			wantStatus: http.StatusOK,
			wantTotal:  7,
		},
		{
			name:          "Sem snapshot calcula na hora",
			service:       &fakeStatsService{refreshed: &domain.DashboardStats{TotalClients: 3}},
			wantStatus:    http.StatusOK,
			wantTotal:     3,
			wantRefreshes: 1,
		},
		{
			name: "Falha no cálculo usa o código do erro",
			service: &fakeStatsService{
				refreshErr: statistics.NewStatsError(statistics.ErrFetchClients, apiErrors.ErrDatabaseOperation, "timeout"),
			},
			wantStatus:    http.StatusInternalServerError,
			wantRefreshes: 1,
			wantCode:      apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
			rec := serve(http.MethodGet, "/v1/stats", GetStats(tt.service), req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRefreshes, tt.service.refreshes)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
				return
			}

			var stats domain.DashboardStats
			require.NoError(t, stdjson.Unmarshal(rec.Body.Bytes(), &stats))
			assert.Equal(t, tt.wantTotal, stats.TotalClients)
		})
	}
}

func TestStreamStats(t *testing.T) {
	updates := make(chan domain.DashboardStats, 1)
	updates <- domain.DashboardStats{TotalClients: 11}
	close(updates)

	service := &fakeStatsService{
		snapshot: &domain.DashboardStats{TotalClients: 10},
		updates:  updates,
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/stats/stream", nil)
	rec := serve(http.MethodGet, "/v1/stats/stream", StreamStats(service), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Equal(t, 2, strings.Count(body, "event: stats\n"))

	first := strings.Index(body, `"totalClients":10`)
	second := strings.Index(body, `"totalClients":11`)
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second, "snapshot inicial deve vir antes das atualizações")
}

func TestExportReport(t *testing.T) {
	records := []domain.Record{
		{{Key: "id", Value: "p1"}, {Key: "nome", Value: "Ração"}, {Key: "preco", Value: "89.90"}},
	}

	tests := []struct {
		name            string
		url             string
		setup           func(repo *mocks.MockTableRepository)
		wantStatus      int
		wantContentType string
		wantCode        string
	}{
		{
			name: "CSV é o formato padrão",
			url:  "/v1/reports/produtos/export",
			setup: func(repo *mocks.MockTableRepository) {
				repo.EXPECT().Select(gomock.Any(), domain.TableProducts, gomock.Any()).Return(records, nil)
			},
			wantStatus:      http.StatusOK,
			wantContentType: reporting.ContentTypeCSV,
		},
		{
			name: "Planilha xlsx",
			url:  "/v1/reports/produtos/export?format=xlsx",
			setup: func(repo *mocks.MockTableRepository) {
				repo.EXPECT().Select(gomock.Any(), domain.TableProducts, gomock.Any()).Return(records, nil)
			},
			wantStatus:      http.StatusOK,
			wantContentType: reporting.ContentTypeXLSX,
		},
		{
			name:       "Formato não suportado",
			url:        "/v1/reports/produtos/export?format=pdf",
			setup:      func(repo *mocks.MockTableRepository) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrUnsupportedExportFormat,
		},
		{
			name:       "Relatório geral não pode ser exportado",
			url:        "/v1/reports/geral/export",
			setup:      func(repo *mocks.MockTableRepository) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidReportType,
		},
		{
			name:       "Data inválida",
			url:        "/v1/reports/vendas/export?start=15-06-2024",
			setup:      func(repo *mocks.MockTableRepository) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name: "Entidade sem registros",
			url:  "/v1/reports/funcionarios/export",
			setup: func(repo *mocks.MockTableRepository) {
				repo.EXPECT().Select(gomock.Any(), domain.TableEmployees, gomock.Any()).Return([]domain.Record{}, nil)
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apiErrors.ErrNoDataToExport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockTableRepository(ctrl)
			tt.setup(repo)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := serve(http.MethodGet, "/v1/reports/:type/export", ExportReport(reporting.NewService(repo)), req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
				return
			}

			assert.Equal(t, tt.wantContentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=")
			assert.Contains(t, rec.Header().Get("Content-Disposition"), "produtos")
			assert.NotEmpty(t, rec.Body.Bytes())
		})
	}
}

type fakeCatalogService struct {
	catalog.CatalogService
	search  string
	deleted string
}

func (f *fakeCatalogService) ListProducts(ctx context.Context, search string) ([]*domain.Product, error) {
	f.search = search
	return []*domain.Product{{ID: "p1", Nome: "Ração Premium"}}, nil
}

func (f *fakeCatalogService) Delete(ctx context.Context, entity catalog.Entity, id string) error {
	if id == "inexistente" {
		return catalog.NewCatalogError(catalog.ErrRecordNotFound, apiErrors.ErrRecordNotFound, string(entity), id)
	}
	f.deleted = id
	return nil
}

func TestCatalogHandlers(t *testing.T) {
	t.Run("Listagem repassa a busca", func(t *testing.T) {
		service := &fakeCatalogService{}

		req := httptest.NewRequest(http.MethodGet, "/v1/produtos?search=ra%C3%A7%C3%A3o", nil)
		rec := serve(http.MethodGet, "/v1/produtos", ListEntity(service, catalog.EntityProducts), req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ração", service.search)
		assert.Contains(t, rec.Body.String(), "Ração Premium")
	})

	t.Run("Clientes não aceitam escrita", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/clients", strings.NewReader(`{"nome":"x"}`))
		rec := serve(http.MethodPost, "/v1/clients", CreateEntity(&fakeCatalogService{}, catalog.EntityClients), req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidRequest, decodeAPIError(t, rec).Code)
	})

	t.Run("Corpo inválido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/produtos", strings.NewReader(`{"nome":`))
		rec := serve(http.MethodPost, "/v1/produtos", CreateEntity(&fakeCatalogService{}, catalog.EntityProducts), req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Exclusão devolve 204", func(t *testing.T) {
		service := &fakeCatalogService{}

		req := httptest.NewRequest(http.MethodDelete, "/v1/servicos/s1", nil)
		rec := serve(http.MethodDelete, "/v1/servicos/:id", DeleteEntity(service, catalog.EntityServices), req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "s1", service.deleted)
	})

	t.Run("Exclusão de registro inexistente", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/v1/servicos/inexistente", nil)
		rec := serve(http.MethodDelete, "/v1/servicos/:id", DeleteEntity(&fakeCatalogService{}, catalog.EntityServices), req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrRecordNotFound, decodeAPIError(t, rec).Code)
	})
}

type fakePreferencesService struct {
	preferences.PreferencesService
	reorderErr error
}

func (f *fakePreferencesService) ReorderCards(ctx context.Context, active, over string) ([]string, error) {
	if f.reorderErr != nil {
		return nil, f.reorderErr
	}
	return []string{over, active}, nil
}

func (f *fakePreferencesService) SetWebhookEndpoint(ctx context.Context, name, rawURL string) error {
	return preferences.ErrInvalidURL
}

func TestPreferencesHandlers(t *testing.T) {
	t.Run("Reordenação devolve a nova ordem", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/preferences/cards/reorder", strings.NewReader(`{"activeId":"vendas","overId":"clientes"}`))
		rec := serve(http.MethodPost, "/v1/preferences/cards/reorder", ReorderCards(&fakePreferencesService{}), req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body CardOrderRequest
		require.NoError(t, stdjson.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, []string{"clientes", "vendas"}, body.Order)
	})

	t.Run("Falha ao salvar vira erro de banco", func(t *testing.T) {
		service := &fakePreferencesService{reorderErr: preferences.ErrPersistPreferences}

		req := httptest.NewRequest(http.MethodPost, "/v1/preferences/cards/reorder", strings.NewReader(`{"activeId":"a","overId":"b"}`))
		rec := serve(http.MethodPost, "/v1/preferences/cards/reorder", ReorderCards(service), req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, decodeAPIError(t, rec).Code)
	})

	t.Run("URL inválida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/v1/preferences/webhooks/produtos", strings.NewReader(`{"url":"ftp://x"}`))
		rec := serve(http.MethodPut, "/v1/preferences/webhooks/:name", SetWebhookEndpoint(&fakePreferencesService{}), req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
	})
}

func TestIntegrationHandlers(t *testing.T) {
	t.Run("Agenda desconhecida", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		req := httptest.NewRequest(http.MethodPost, "/v1/agenda/tosa/list", nil)
		rec := serve(http.MethodPost, "/v1/agenda/:type/:action", CallAgenda(webhookmocks.NewMockClient(ctrl)), req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Agenda de banho repassa ação e corpo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := webhookmocks.NewMockClient(ctrl)
		client.EXPECT().
			CallCalendar(gomock.Any(), domain.AgendaGrooming, "create", map[string]any{"pet": "Rex"}).
			Return(stdjson.RawMessage(`{"ok":true}`), nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/agenda/banho/create", strings.NewReader(`{"pet":"Rex"}`))
		rec := serve(http.MethodPost, "/v1/agenda/:type/:action", CallAgenda(client), req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	})

	t.Run("Webhook sem corpo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := webhookmocks.NewMockClient(ctrl)
		client.EXPECT().
			Call(gomock.Any(), "produtos", "list", map[string]any{}).
			Return(stdjson.RawMessage(`[]`), nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/integrations/produtos/list", nil)
		rec := serve(http.MethodPost, "/v1/integrations/:endpoint/:action", CallWebhook(client), req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("Listagem remota usa a ação list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := webhookmocks.NewMockClient(ctrl)
		client.EXPECT().
			Call(gomock.Any(), "estoque", webhook.ActionList, gomock.Nil()).
			Return(stdjson.RawMessage(`[{"id":"e1"}]`), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/integrations/estoque", nil)
		rec := serve(http.MethodGet, "/v1/integrations/:endpoint", ListRemote(client), req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"id":"e1"}]`, rec.Body.String())
	})

	t.Run("Zapier não configurado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := webhookmocks.NewMockClient(ctrl)
		client.EXPECT().NotifyZapier(gomock.Any(), gomock.Any()).Return(fmt.Errorf("%w: zapier", webhook.ErrEndpointNotConfigured))

		req := httptest.NewRequest(http.MethodPost, "/v1/zapier", strings.NewReader(`{"evento":"teste"}`))
		rec := serve(http.MethodPost, "/v1/zapier", NotifyZapier(client), req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, apiErrors.ErrEndpointNotConfigured, decodeAPIError(t, rec).Code)
	})
}

type fakeCronJob struct {
	started bool
}

func (f *fakeCronJob) TriggerManualSync() bool {
	return f.started
}

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"sync_running": !f.started}
}

func TestRunStatsCron(t *testing.T) {
	tests := []struct {
		name       string
		job        CronJob
		wantStatus int
	}{
		{name: "Recálculo iniciado", job: &fakeCronJob{started: true}, wantStatus: http.StatusAccepted},
		{name: "Recálculo já em andamento", job: &fakeCronJob{started: false}, wantStatus: http.StatusConflict},
		{name: "Agendador ausente", job: nil, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/cron/stats/run", nil)
			rec := serve(http.MethodPost, "/v1/cron/stats/run", RunStatsCron(tt.job), req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHealthcheck(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return fmt.Errorf("connection refused") }

	tests := []struct {
		name           string
		checks         map[string]HealthCheck
		expectedStatus int
		expectedChecks map[string]string
	}{
		{
			name:           "todas as dependências disponíveis",
			checks:         map[string]HealthCheck{"postgres": up, "redis": up},
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]string{"postgres": "up", "redis": "up"},
		},
		{
			name:           "redis fora do ar",
			checks:         map[string]HealthCheck{"postgres": up, "redis": down},
			expectedStatus: http.StatusServiceUnavailable,
			expectedChecks: map[string]string{"postgres": "up", "redis": "down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
			rec := serve(http.MethodGet, "/healthcheck", HealthcheckHandler(tt.checks), req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body healthResponse
			require.NoError(t, stdjson.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedChecks, body.Checks)
		})
	}
}
