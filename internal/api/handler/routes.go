package handler

import (
	"net/http"

	"github.com/vfg2006/petshop-admin-api/infrastructure/integrator/webhook"
	"github.com/vfg2006/petshop-admin-api/internal/api/handler/router"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/authenticating"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/catalog"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/conversations"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/preferences"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/reporting"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/statistics"
	"github.com/vfg2006/petshop-admin-api/pkg/metrics"
	"github.com/vfg2006/petshop-admin-api/pkg/middleware"
)

type Middlewares = []func(http.Handler) http.Handler

func Healthcheck(checks map[string]HealthCheck) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(checks),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: Middlewares{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: Middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: Middlewares{middleware.AdminOnly()},
		},
	}
}

func Stats(service statistics.StatsService, salesService statistics.SalesStatsService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/stats",
			Method:      http.MethodGet,
			Handler:     GetStats(service),
			Middlewares: Middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/stats/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshStats(service),
			Middlewares: Middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/stats/stream",
			Method:      http.MethodGet,
			Handler:     StreamStats(service),
			Middlewares: Middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/stats/sales",
			Method:      http.MethodGet,
			Handler:     GetSalesStats(salesService),
			Middlewares: Middlewares{middleware.AllRoles()},
		},
	}
}

func Reports(service reporting.ReportService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/:type",
			Method:      http.MethodGet,
			Handler:     GetReport(service),
			Middlewares: Middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/:type/export",
			Method:      http.MethodGet,
			Handler:     ExportReport(service),
			Middlewares: Middlewares{middleware.AllRoles()},
		},
	}
}

// catalogEntities são as entidades expostas em /v1/<entidade>; clientes só aceitam leitura
var catalogEntities = []catalog.Entity{
	catalog.EntityClients,
	catalog.EntityProducts,
	catalog.EntityServices,
	catalog.EntityInventory,
	catalog.EntityOrders,
	catalog.EntityEmployees,
}

func Catalog(service catalog.CatalogService) []router.Route {
	routes := make([]router.Route, 0, len(catalogEntities)*4)

	for _, entity := range catalogEntities {
		basePath := "/v1/" + string(entity)

		routes = append(routes, router.Route{
			Path:        basePath,
			Method:      http.MethodGet,
			Handler:     ListEntity(service, entity),
			Middlewares: Middlewares{middleware.AllRoles()},
		})

		if entity == catalog.EntityClients {
			continue
		}

		routes = append(routes,
			router.Route{
				Path:        basePath,
				Method:      http.MethodPost,
				Handler:     CreateEntity(service, entity),
				Middlewares: Middlewares{middleware.AllRoles()},
			},
			router.Route{
				Path:        basePath + "/:id",
				Method:      http.MethodPut,
				Handler:     UpdateEntity(service, entity),
				Middlewares: Middlewares{middleware.AllRoles()},
			},
			router.Route{
				Path:        basePath + "/:id",
				Method:      http.MethodDelete,
				Handler:     DeleteEntity(service, entity),
				Middlewares: Middlewares{middleware.AdminOnly()},
			},
		)
	}

	return routes
}

func Conversations(service conversations.ConversationService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/conversations",
			Method:      http.MethodGet,
			Handler:     ListConversations(service),
			Middlewares: Middlewares{middleware.AllRoles()},
		},
	}
}

func Preferences(service preferences.PreferencesService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/preferences",
			Method:      http.MethodGet,
			Handler:     GetPreferences(service),
			Middlewares: Middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/preferences/webhooks/:name",
			Method:      http.MethodPut,
			Handler:     SetWebhookEndpoint(service),
			Middlewares: Middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/preferences/webhooks/:name",
			Method:      http.MethodDelete,
			Handler:     RemoveWebhookEndpoint(service),
			Middlewares: Middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/preferences/zapier",
			Method:      http.MethodPut,
			Handler:     SetZapierWebhook(service),
			Middlewares: Middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/preferences/cards",
			Method:      http.MethodPut,
			Handler:     SetCardOrder(service),
			Middlewares: Middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/preferences/cards/reorder",
			Method:      http.MethodPost,
			Handler:     ReorderCards(service),
			Middlewares: Middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/preferences/cards/reset",
			Method:      http.MethodPost,
			Handler:     ResetCardOrder(service),
			Middlewares: Middlewares{middleware.AllRoles()},
		},
	}
}

func Integrations(client webhook.Client) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/integrations/:endpoint",
			Method:      http.MethodGet,
			Handler:     ListRemote(client),
			Middlewares: Middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/integrations/:endpoint/:action",
			Method:      http.MethodPost,
			Handler:     CallWebhook(client),
			Middlewares: Middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/agenda/:type/:action",
			Method:      http.MethodPost,
			Handler:     CallAgenda(client),
			Middlewares: Middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/zapier",
			Method:      http.MethodPost,
			Handler:     NotifyZapier(client),
			Middlewares: Middlewares{middleware.AllRoles()},
		},
	}
}

func CronJobs(job CronJob) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/stats/run",
			Method:      http.MethodPost,
			Handler:     RunStatsCron(job),
			Middlewares: Middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(job),
			Middlewares: Middlewares{middleware.AdminOnly()},
		},
	}
}
