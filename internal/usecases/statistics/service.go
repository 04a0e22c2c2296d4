package statistics

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/petshop-admin-api/infrastructure/repository"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/pkg/apiErrors"
	"github.com/vfg2006/petshop-admin-api/pkg/log"
	"github.com/vfg2006/petshop-admin-api/pkg/metrics"
)

const dashboardKind = "dashboard"

type StatsService interface {
	Refresh(ctx context.Context) (*domain.DashboardStats, error)
	Snapshot() (*domain.DashboardStats, bool)
	Subscribe() (<-chan domain.DashboardStats, func())
}

// Service mantém o último snapshot publicado do painel.
// Recálculos podem rodar em paralelo; publica o recálculo iniciado por último.
type Service struct {
	clientRepo  repository.ClientRepository
	catalogRepo repository.CatalogRepository
	now         func() time.Time

	mu          sync.RWMutex
	started     uint64
	published   uint64
	snapshot    *domain.DashboardStats
	subscribers map[uint64]chan domain.DashboardStats
	nextSubID   uint64
}

func NewService(
	clientRepo repository.ClientRepository,
	catalogRepo repository.CatalogRepository,
) *Service {
	return &Service{
		clientRepo:  clientRepo,
		catalogRepo: catalogRepo,
		now:         time.Now,
		subscribers: make(map[uint64]chan domain.DashboardStats),
	}
}

func (s *Service) nextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started++
	return s.started
}

// Refresh busca as tabelas e recalcula o snapshot. Em caso de erro o snapshot
// anterior continua publicado.
func (s *Service) Refresh(ctx context.Context) (*domain.DashboardStats, error) {
	logger := log.ForComponent(ctx, "stats")
	generation := s.nextGeneration()
	startedAt := time.Now()

	var (
		clients   []*domain.Client
		products  []*domain.Product
		services  []*domain.Product
		employees []*domain.Employee

		clientsErr, productsErr, servicesErr, employeesErr error
	)

	wg := sync.WaitGroup{}
	wg.Add(4)

	go func() {
		defer wg.Done()
		clients, clientsErr = s.clientRepo.ListClients(ctx)
	}()

	go func() {
		defer wg.Done()
		products, productsErr = s.catalogRepo.ListProducts(ctx)
	}()

	go func() {
		defer wg.Done()
		services, servicesErr = s.catalogRepo.ListServices(ctx)
	}()

	go func() {
		defer wg.Done()
		employees, employeesErr = s.catalogRepo.ListEmployees(ctx)
	}()

	wg.Wait()

	if clientsErr != nil {
		return nil, s.fail(logger, NewStatsError(ErrFetchClients, apiErrors.ErrDatabaseOperation, clientsErr.Error()))
	}

	for _, err := range []error{productsErr, servicesErr, employeesErr} {
		if err != nil {
			return nil, s.fail(logger, NewStatsError(ErrFetchCatalog, apiErrors.ErrDatabaseOperation, err.Error()))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, s.fail(logger, NewStatsError(ErrRefreshAborted, apiErrors.ErrInternalServer, err.Error()))
	}

	stats := Compute(s.now(), clients, products, services, employees)

	if !s.publish(generation, stats) {
		logger.WithField("generation", generation).Debug("stats: recálculo mais novo já publicado, descartando resultado")
	}

	metrics.StatsRefreshes.WithLabelValues(dashboardKind, "success").Inc()
	metrics.StatsRefreshDuration.WithLabelValues(dashboardKind).Observe(time.Since(startedAt).Seconds())

	logger.WithFields(log.Fields{
		"total_clients": stats.TotalClients,
		"duration_ms":   time.Since(startedAt).Milliseconds(),
	}).Info("stats: snapshot recalculado")

	return &stats, nil
}

func (s *Service) fail(logger log.Logger, err *StatsError) error {
	metrics.StatsRefreshes.WithLabelValues(dashboardKind, "error").Inc()
	logger.WithError(err).Error("stats: falha ao recalcular estatísticas, mantendo snapshot anterior")
	return err
}

// publish troca o snapshot se nenhum recálculo mais novo já tiver publicado
func (s *Service) publish(generation uint64, stats domain.DashboardStats) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation < s.published {
		return false
	}

	s.published = generation
	snapshot := stats
	s.snapshot = &snapshot

	for _, ch := range s.subscribers {
		deliverLatest(ch, stats)
	}

	return true
}

// deliverLatest substitui um snapshot pendente não lido pelo mais novo
func deliverLatest(ch chan domain.DashboardStats, stats domain.DashboardStats) {
	select {
	case ch <- stats:
		return
	default:
	}

	select {
	case <-ch:
	default:
	}

	select {
	case ch <- stats:
	default:
	}
}

func (s *Service) Snapshot() (*domain.DashboardStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return nil, false
	}

	snapshot := *s.snapshot
	return &snapshot, true
}

// Subscribe recebe cada snapshot publicado. A função retornada cancela a inscrição e fecha o canal.
func (s *Service) Subscribe() (<-chan domain.DashboardStats, func()) {
	ch := make(chan domain.DashboardStats, 1)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
			close(ch)
		})
	}

	return ch, unsubscribe
}
