package realtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vfg2006/petshop-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/pkg/log"
	"github.com/vfg2006/petshop-admin-api/pkg/metrics"
)

// Canais notificados pelos triggers do banco, um por tabela
const (
	ChannelClients   = "dashboard_clients_changes"
	ChannelProducts  = "dashboard_products_changes"
	ChannelServices  = "dashboard_services_changes"
	ChannelEmployees = "dashboard_employees_changes"
)

var Channels = []string{ChannelClients, ChannelProducts, ChannelServices, ChannelEmployees}

// ChannelTables relaciona cada canal com a tabela observada
var ChannelTables = map[string]string{
	ChannelClients:   domain.TableClients,
	ChannelProducts:  domain.TableProducts,
	ChannelServices:  domain.TableServices,
	ChannelEmployees: domain.TableEmployees,
}

const reconnectLabel = "reconnect"

var ErrAlreadyStarted = errors.New("trigger de tempo real já iniciado")

type Listener interface {
	Listen(channel string) error
	Unlisten(channel string) error
	Notifications() <-chan postgres.Notification
	Close() error
}

type Refresher interface {
	Refresh(ctx context.Context) (*domain.DashboardStats, error)
}

// Trigger escuta as alterações das tabelas do painel e dispara o recálculo das estatísticas.
// Com window zero cada notificação gera o seu próprio recálculo.
type Trigger struct {
	listener  Listener
	refresher Refresher
	window    time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	started bool
	stopped bool
	pending bool
	timer   *time.Timer
	wg      sync.WaitGroup
}

func NewTrigger(listener Listener, refresher Refresher, window time.Duration) *Trigger {
	return &Trigger{
		listener:  listener,
		refresher: refresher,
		window:    window,
	}
}

func (t *Trigger) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return ErrAlreadyStarted
	}

	for _, channel := range Channels {
		if err := t.listener.Listen(channel); err != nil {
			return fmt.Errorf("erro ao escutar canal %s: %w", channel, err)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.started = true

	t.wg.Add(1)
	go t.run(runCtx)

	log.ForComponent(ctx, "realtime").
		WithField("coalesce_window", t.window.String()).
		Infof("realtime: escutando %d canais", len(Channels))

	return nil
}

func (t *Trigger) run(ctx context.Context) {
	defer t.wg.Done()

	notifications := t.listener.Notifications()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-notifications:
			if !ok {
				return
			}
			t.handle(ctx, n)
		}
	}
}

func (t *Trigger) handle(ctx context.Context, n postgres.Notification) {
	logger := log.ForComponent(ctx, "realtime")

	if n.Reconnected {
		metrics.RealtimeNotifications.WithLabelValues(reconnectLabel).Inc()
		logger.Warn("realtime: listener reconectado, recalculando para cobrir eventos perdidos")
	} else {
		metrics.RealtimeNotifications.WithLabelValues(n.Channel).Inc()
		logger.WithFields(log.Fields{
			"channel": n.Channel,
			"entity":  ChannelTables[n.Channel],
		}).Debug("realtime: alteração recebida")
	}

	t.schedule(ctx)
}

func (t *Trigger) schedule(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	if t.window <= 0 {
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			t.refresh(ctx)
		}()
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending || t.stopped {
		return
	}

	t.pending = true
	t.wg.Add(1)
	t.timer = time.AfterFunc(t.window, func() {
		defer t.wg.Done()

		t.mu.Lock()
		t.pending = false
		t.timer = nil
		t.mu.Unlock()

		t.refresh(ctx)
	})
}

func (t *Trigger) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	if _, err := t.refresher.Refresh(ctx); err != nil {
		log.ForComponent(ctx, "realtime").WithError(err).Error("realtime: recálculo disparado por notificação falhou")
	}
}

// Stop encerra a escuta e espera os recálculos em andamento. Pode ser chamado mais de uma vez.
func (t *Trigger) Stop() {
	t.mu.Lock()
	if !t.started || t.stopped {
		t.mu.Unlock()
		return
	}

	t.stopped = true
	t.cancel()

	if t.timer != nil && t.timer.Stop() {
		t.pending = false
		t.timer = nil
		t.wg.Done()
	}
	t.mu.Unlock()

	t.wg.Wait()

	for _, channel := range Channels {
		if err := t.listener.Unlisten(channel); err != nil {
			log.L.WithError(err).WithField("channel", channel).Warn("realtime: erro ao cancelar escuta")
		}
	}

	if err := t.listener.Close(); err != nil {
		log.L.WithError(err).Warn("realtime: erro ao fechar listener")
	}
}
