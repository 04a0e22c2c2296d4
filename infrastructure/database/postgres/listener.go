package postgres

import (
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/petshop-admin-api/internal/config"
)

// Notification é uma notificação recebida via LISTEN. Reconnected indica que a
// conexão caiu e voltou, e eventos do intervalo podem ter sido perdidos.
type Notification struct {
	Channel     string
	Payload     string
	Reconnected bool
}

// Listener adapta o pq.Listener para um canal de Notification
type Listener struct {
	pql       *pq.Listener
	out       chan Notification
	done      chan struct{}
	closeOnce sync.Once
}

func NewListener(cfg config.Database, minReconnect, maxReconnect time.Duration) *Listener {
	l := &Listener{
		out:  make(chan Notification, 64),
		done: make(chan struct{}),
	}

	l.pql = pq.NewListener(cfg.DSN, minReconnect, maxReconnect, logListenerEvent)
	go l.forward()

	return l
}

func logListenerEvent(event pq.ListenerEventType, err error) {
	entry := logrus.WithField("component", "pg-listener")
	if err != nil {
		entry = entry.WithError(err)
	}

	switch event {
	case pq.ListenerEventConnected:
		entry.Info("Listener conectado ao PostgreSQL")
	case pq.ListenerEventDisconnected:
		entry.Warn("Listener desconectado do PostgreSQL")
	case pq.ListenerEventReconnected:
		entry.Info("Listener reconectado ao PostgreSQL")
	case pq.ListenerEventConnectionAttemptFailed:
		entry.Warn("Falha ao reconectar listener ao PostgreSQL")
	}
}

func (l *Listener) forward() {
	defer close(l.out)

	for {
		select {
		case <-l.done:
			return
		case n, ok := <-l.pql.Notify:
			if !ok {
				return
			}

			// pq envia nil após reconectar
			notification := Notification{Reconnected: true}
			if n != nil {
				notification = Notification{Channel: n.Channel, Payload: n.Extra}
			}

			select {
			case l.out <- notification:
			case <-l.done:
				return
			}
		}
	}
}

func (l *Listener) Listen(channel string) error {
	return l.pql.Listen(channel)
}

func (l *Listener) Unlisten(channel string) error {
	return l.pql.Unlisten(channel)
}

func (l *Listener) Notifications() <-chan Notification {
	return l.out
}

func (l *Listener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.done)
		err = l.pql.Close()
	})
	return err
}
