package realtime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/petshop-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
)

type fakeListener struct {
	mu         sync.Mutex
	listened   []string
	unlistened []string
	closed     int
	listenErr  error
	ch         chan postgres.Notification
}

func newFakeListener() *fakeListener {
	return &fakeListener{ch: make(chan postgres.Notification, 16)}
}

func (f *fakeListener) Listen(channel string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listenErr != nil {
		return f.listenErr
	}
	f.listened = append(f.listened, channel)
	return nil
}

func (f *fakeListener) Unlisten(channel string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unlistened = append(f.unlistened, channel)
	return nil
}

func (f *fakeListener) Notifications() <-chan postgres.Notification {
	return f.ch
}

func (f *fakeListener) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

type countingRefresher struct {
	calls int32
	err   error
}

func (r *countingRefresher) Refresh(ctx context.Context) (*domain.DashboardStats, error) {
	atomic.AddInt32(&r.calls, 1)
	if r.err != nil {
		return nil, r.err
	}
	return &domain.DashboardStats{}, nil
}

func (r *countingRefresher) count() int32 {
	return atomic.LoadInt32(&r.calls)
}

func TestTrigger_OneRefreshPerNotification(t *testing.T) {
	listener := newFakeListener()
	refresher := &countingRefresher{}
	trigger := NewTrigger(listener, refresher, 0)

	require.NoError(t, trigger.Start(context.Background()))
	defer trigger.Stop()

	assert.Equal(t, Channels, listener.listened)

	listener.ch <- postgres.Notification{Channel: ChannelClients, Payload: "INSERT"}
	listener.ch <- postgres.Notification{Channel: ChannelProducts}
	listener.ch <- postgres.Notification{Channel: ChannelEmployees, Payload: "qualquer coisa"}

	assert.Eventually(t, func() bool { return refresher.count() == 3 }, time.Second, 5*time.Millisecond)
}

func TestTrigger_ReconnectTriggersRefresh(t *testing.T) {
	listener := newFakeListener()
	refresher := &countingRefresher{}
	trigger := NewTrigger(listener, refresher, 0)

	require.NoError(t, trigger.Start(context.Background()))
	defer trigger.Stop()

	listener.ch <- postgres.Notification{Reconnected: true}

	assert.Eventually(t, func() bool { return refresher.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestTrigger_CoalesceWindow(t *testing.T) {
	listener := newFakeListener()
	refresher := &countingRefresher{}
	trigger := NewTrigger(listener, refresher, 50*time.Millisecond)

	require.NoError(t, trigger.Start(context.Background()))
	defer trigger.Stop()

	for i := 0; i < 5; i++ {
		listener.ch <- postgres.Notification{Channel: ChannelServices}
	}

	assert.Eventually(t, func() bool { return refresher.count() == 1 }, time.Second, 5*time.Millisecond)

	// nova rajada depois da janela gera outro recálculo
	listener.ch <- postgres.Notification{Channel: ChannelServices}
	assert.Eventually(t, func() bool { return refresher.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestTrigger_RefreshErrorKeepsListening(t *testing.T) {
	listener := newFakeListener()
	refresher := &countingRefresher{err: errors.New("banco fora do ar")}
	trigger := NewTrigger(listener, refresher, 0)

	require.NoError(t, trigger.Start(context.Background()))
	defer trigger.Stop()

	listener.ch <- postgres.Notification{Channel: ChannelClients}
	listener.ch <- postgres.Notification{Channel: ChannelClients}

	assert.Eventually(t, func() bool { return refresher.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestTrigger_Stop(t *testing.T) {
	listener := newFakeListener()
	refresher := &countingRefresher{}
	trigger := NewTrigger(listener, refresher, time.Hour)

	require.NoError(t, trigger.Start(context.Background()))

	// fica pendente na janela e é descartado no Stop
	listener.ch <- postgres.Notification{Channel: ChannelClients}
	time.Sleep(20 * time.Millisecond)

	trigger.Stop()
	trigger.Stop()

	assert.Equal(t, int32(0), refresher.count())
	assert.Equal(t, Channels, listener.unlistened)
	assert.Equal(t, 1, listener.closed)
}

func TestTrigger_StartErrors(t *testing.T) {
	t.Run("Falha ao escutar canal", func(t *testing.T) {
		listener := newFakeListener()
		listener.listenErr = errors.New("conexão recusada")

		trigger := NewTrigger(listener, &countingRefresher{}, 0)
		err := trigger.Start(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), ChannelClients)
	})

	t.Run("Start duplicado", func(t *testing.T) {
		trigger := NewTrigger(newFakeListener(), &countingRefresher{}, 0)

		require.NoError(t, trigger.Start(context.Background()))
		defer trigger.Stop()

		assert.ErrorIs(t, trigger.Start(context.Background()), ErrAlreadyStarted)
	})
}
