package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/petshop-admin-api/internal/config"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
)

type fakeRefresher struct {
	calls   atomic.Int32
	err     error
	release chan struct{}
}

func (f *fakeRefresher) Refresh(ctx context.Context) (*domain.DashboardStats, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.DashboardStats{}, nil
}

func newTestConfig(enabled bool, cron string) *config.Config {
	return &config.Config{StatsRefresh: config.StatsRefresh{Enabled: enabled, CronSchedule: cron}}
}

func TestStatsRefreshService_RunRefresh(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedError string
	}{
		{
			name: "Recálculo com sucesso",
		},
		{
			name:          "Erro fica registrado no status",
			err:           errors.New("banco indisponível"),
			expectedError: "banco indisponível",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refresher := &fakeRefresher{err: tt.err}
			service := NewStatsRefreshService(refresher, newTestConfig(true, "*/15 * * * *"))

			err := service.RunRefresh(context.Background())

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}

			status := service.GetStatus()
			assert.Equal(t, 1, status["runs"])
			assert.Equal(t, false, status["sync_running"])
			assert.Equal(t, tt.expectedError, status["last_sync_error"])
			assert.Equal(t, int32(1), refresher.calls.Load())
		})
	}
}

func TestStatsRefreshService_SkipsWhileRunning(t *testing.T) {
	refresher := &fakeRefresher{release: make(chan struct{})}
	service := NewStatsRefreshService(refresher, newTestConfig(true, "*/15 * * * *"))

	assert.True(t, service.TriggerManualSync())

	require.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == true
	}, time.Second, 5*time.Millisecond)

	assert.False(t, service.TriggerManualSync())
	assert.NoError(t, service.RunRefresh(context.Background()))

	close(refresher.release)

	require.Eventually(t, func() bool {
		return service.GetStatus()["runs"] == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), refresher.calls.Load())
}

func TestStatsRefreshService_Start(t *testing.T) {
	t.Run("Desabilitado não agenda", func(t *testing.T) {
		service := NewStatsRefreshService(&fakeRefresher{}, newTestConfig(false, "expressão inválida"))
		assert.NoError(t, service.Start(context.Background()))
	})

	t.Run("Cron inválido", func(t *testing.T) {
		service := NewStatsRefreshService(&fakeRefresher{}, newTestConfig(true, "expressão inválida"))
		assert.Error(t, service.Start(context.Background()))
	})

	t.Run("Cron válido para ao cancelar o contexto", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		service := NewStatsRefreshService(&fakeRefresher{}, newTestConfig(true, "0 3 * * *"))

		require.NoError(t, service.Start(ctx))
		assert.True(t, service.scheduler.IsRunning())

		cancel()
		assert.Eventually(t, func() bool {
			return !service.scheduler.IsRunning()
		}, time.Second, 5*time.Millisecond)
	})
}
