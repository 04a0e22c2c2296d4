package main

import (
	"context"
	"os"
	"path"
	"runtime"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/petshop-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/petshop-admin-api/infrastructure/database/redis"
	"github.com/vfg2006/petshop-admin-api/infrastructure/integrator/webhook"
	"github.com/vfg2006/petshop-admin-api/infrastructure/repository"
	"github.com/vfg2006/petshop-admin-api/internal/api"
	"github.com/vfg2006/petshop-admin-api/internal/api/handler"
	"github.com/vfg2006/petshop-admin-api/internal/config"
	"github.com/vfg2006/petshop-admin-api/internal/scheduler"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/authenticating"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/catalog"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/conversations"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/preferences"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/realtime"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/reporting"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/statistics"
	"github.com/vfg2006/petshop-admin-api/pkg/log"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := log.Setup(cfg.App.LogLevel); err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	redisClient := redisconn(ctx, cfg.Redis)
	defer redisClient.Close()

	tableRepo := repository.NewTableRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	clientRepo := repository.NewClientRepository(pgConn)
	catalogRepo := repository.NewCatalogRepository(pgConn)
	inventoryRepo := repository.NewInventoryRepository(pgConn)
	orderRepo := repository.NewOrderRepository(pgConn)
	saleRepo := repository.NewSaleRepository(pgConn)
	chatRepo := repository.NewChatHistoryRepository(pgConn)
	preferencesRepo := repository.NewPreferencesRepository(redisClient, cfg.Redis.KeyPrefix)

	preferencesService := preferences.NewService(cfg, preferencesRepo)
	if err := preferencesService.Load(ctx); err != nil {
		// segue com os padrões da configuração
		logrus.WithError(err).Warn("Não foi possível carregar as preferências do painel")
	}

	webhookClient := webhook.NewClient(cfg, preferencesService)

	authenticator := authenticating.NewService(userRepo, cfg)
	statsService := statistics.NewService(clientRepo, catalogRepo)
	salesService := statistics.NewSalesService(saleRepo)
	reportService := reporting.NewService(tableRepo)
	catalogService := catalog.NewService(tableRepo, clientRepo, catalogRepo, inventoryRepo, orderRepo, webhookClient)
	conversationService := conversations.NewService(chatRepo, clientRepo)

	if _, err := statsService.Refresh(ctx); err != nil {
		logrus.WithError(err).Error("Erro no cálculo inicial das estatísticas")
	}

	if cfg.Realtime.Enabled {
		listener := postgres.NewListener(cfg.Database, cfg.Realtime.MinReconnect, cfg.Realtime.MaxReconnect)
		defer listener.Close()

		trigger := realtime.NewTrigger(listener, statsService, cfg.Realtime.CoalesceWindow)
		if err := trigger.Start(ctx); err != nil {
			logrus.WithError(err).Error("Erro ao iniciar a escuta de alterações em tempo real")
		} else {
			defer trigger.Stop()
			logrus.Info("Escuta de alterações em tempo real iniciada com sucesso")
		}
	}

	statsRefreshService := scheduler.NewStatsRefreshService(statsService, cfg)
	if err := statsRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recálculo de estatísticas")
	} else {
		logrus.Info("Agendador de recálculo de estatísticas iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator:  authenticator,
		Stats:          statsService,
		SalesStats:     salesService,
		Reports:        reportService,
		Catalog:        catalogService,
		Conversations:  conversationService,
		Preferences:    preferencesService,
		Webhook:        webhookClient,
		StatsRefresher: statsRefreshService,
		HealthChecks: map[string]handler.HealthCheck{
			"postgres": pgConn.Ping,
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToSource permite achar o .env rodando com go run de qualquer diretório
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	if err := os.Chdir(path.Dir(file)); err != nil {
		logrus.WithError(err).Warn("Não foi possível mudar para o diretório do binário")
	}
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

func redisconn(ctx context.Context, redisConfig config.Redis) *goredis.Client {
	client, err := redis.NewClient(ctx, redisConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}

	logrus.Info("Conexão com Redis estabelecida com sucesso")
	return client
}
