package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/petshop-admin-api/infrastructure/integrator/webhook"
	"github.com/vfg2006/petshop-admin-api/internal/api/handler"
	"github.com/vfg2006/petshop-admin-api/internal/api/handler/router"
	"github.com/vfg2006/petshop-admin-api/internal/config"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/authenticating"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/catalog"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/conversations"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/preferences"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/reporting"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/statistics"
	"github.com/vfg2006/petshop-admin-api/pkg/middleware"
)

// Services agrupa os casos de uso expostos pela API
type Services struct {
	Authenticator  authenticating.Authenticator
	Stats          statistics.StatsService
	SalesStats     statistics.SalesStatsService
	Reports        reporting.ReportService
	Catalog        catalog.CatalogService
	Conversations  conversations.ConversationService
	Preferences    preferences.PreferencesService
	Webhook        webhook.Client
	StatsRefresher handler.CronJob
	HealthChecks   map[string]handler.HealthCheck
}

type Server struct {
	httpServer *http.Server
	// cancela o contexto base das requisições, encerrando streams SSE abertos
	closeStreams context.CancelFunc
}

func New(config *config.Config, services Services) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.HealthChecks)...),
		router.WithRoutes(handler.Metrics()...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.User(services.Authenticator)...),
		router.WithRoutes(handler.Stats(services.Stats, services.SalesStats)...),
		router.WithRoutes(handler.Reports(services.Reports)...),
		router.WithRoutes(handler.Catalog(services.Catalog)...),
		router.WithRoutes(handler.Conversations(services.Conversations)...),
		router.WithRoutes(handler.Preferences(services.Preferences)...),
		router.WithRoutes(handler.Integrations(services.Webhook)...),
		router.WithRoutes(handler.CronJobs(services.StatsRefresher)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	h := alice.New(middlewares...).Then(rt)

	baseCtx, closeStreams := context.WithCancel(context.Background())

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           h,
			ReadHeaderTimeout: 2 * time.Second,
			BaseContext: func(net.Listener) context.Context {
				return baseCtx
			},
		},
		closeStreams: closeStreams,
	}

	return srv, nil
}

// Run bloqueia até receber SIGINT/SIGTERM ou o cancelamento do contexto
func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	s.closeStreams()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
