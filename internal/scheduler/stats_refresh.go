package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/petshop-admin-api/internal/config"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/pkg/log"
)

// StatsRefresher é o recálculo agendado; o serviço de estatísticas implementa
type StatsRefresher interface {
	Refresh(ctx context.Context) (*domain.DashboardStats, error)
}

// StatsRefreshService roda o recálculo periódico como rede de segurança para
// notificações perdidas do LISTEN/NOTIFY.
type StatsRefreshService struct {
	scheduler *gocron.Scheduler
	refresher StatsRefresher
	config    config.StatsRefresh
	timeout   time.Duration

	syncMutex           sync.Mutex
	syncRunning         bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
	runs                int
}

func NewStatsRefreshService(refresher StatsRefresher, appConfig *config.Config) *StatsRefreshService {
	log.L.WithFields(log.Fields{
		"cron_schedule": appConfig.StatsRefresh.CronSchedule,
		"sync_enabled":  appConfig.StatsRefresh.Enabled,
	}).Info("Configuração do agendador de estatísticas carregada")

	return &StatsRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		refresher: refresher,
		config:    appConfig.StatsRefresh,
		timeout:   2 * time.Minute,
	}
}

func (s *StatsRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.L.Info("Recálculo agendado de estatísticas desabilitado por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de estatísticas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunRefresh(ctx); err != nil {
			log.ForComponent(ctx, "scheduler").WithError(err).Error("Erro no recálculo agendado de estatísticas")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recálculo de estatísticas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando agendador de estatísticas")
		s.scheduler.Stop()
	}()

	return nil
}

// RunRefresh executa um recálculo; chamadas concorrentes são ignoradas
func (s *StatsRefreshService) RunRefresh(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Warn("Recálculo de estatísticas já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.refresher.Refresh(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.runs++
	s.lastSyncError = ""
	if err != nil {
		s.lastSyncError = err.Error()
	}
	s.syncMutex.Unlock()

	return err
}

// TriggerManualSync dispara o recálculo em segundo plano e informa se foi aceito
func (s *StatsRefreshService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		log.L.Info("Recálculo de estatísticas em andamento, ignorando solicitação manual")
		return false
	}

	log.L.Info("Iniciando recálculo manual de estatísticas")
	go func() {
		if err := s.RunRefresh(context.Background()); err != nil {
			log.L.WithError(err).Error("Erro no recálculo manual de estatísticas")
		}
	}()

	return true
}

func (s *StatsRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"runs":                   s.runs,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
