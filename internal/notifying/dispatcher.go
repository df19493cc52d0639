package notifying

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-sync-engine/internal/config"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
	"github.com/vfg2006/ads-sync-engine/internal/telemetry"
)

const saveTimeout = 5 * time.Second

// Sink persiste uma notificação. Implementado por repository.NotificationRepository.
type Sink interface {
	Save(ctx context.Context, notification domain.Notification) error
}

// Dispatcher desacopla o envio de notificações da sincronização: Raise só enfileira
// e um worker grava no Sink em segundo plano
type Dispatcher struct {
	sink  Sink
	queue chan domain.Notification
	now   func() time.Time

	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Int64
}

func NewDispatcher(sink Sink, cfg *config.Config) *Dispatcher {
	size := cfg.Notification.BufferSize
	if size < 1 {
		size = 1
	}

	return &Dispatcher{
		sink:  sink,
		queue: make(chan domain.Notification, size),
		now:   time.Now,
	}
}

// Start inicia o worker. O cancelamento do contexto equivale a Stop.
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go d.run()

	go func() {
		<-ctx.Done()
		d.Stop()
	}()

	logrus.Info("notificações: dispatcher iniciado")
}

// Raise nunca bloqueia. Com a fila cheia a notificação é descartada.
func (d *Dispatcher) Raise(notification domain.Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = d.now()
	}

	if d.closed {
		d.drop(notification, "dispatcher encerrado")
		return
	}

	select {
	case d.queue <- notification:
	default:
		d.drop(notification, "fila cheia")
	}
}

// Stop fecha a fila e espera o worker gravar o que já foi enfileirado
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Dropped retorna quantas notificações foram descartadas desde o início
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for notification := range d.queue {
		d.save(notification)
	}

	logrus.Info("notificações: fila drenada, dispatcher parado")
}

func (d *Dispatcher) save(notification domain.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := d.sink.Save(ctx, notification); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":  notification.UserID,
			"category": notification.Category,
		}).WithError(err).Error("notificações: erro ao gravar notificação")
	}
}

func (d *Dispatcher) drop(notification domain.Notification, reason string) {
	d.dropped.Add(1)
	telemetry.NotificationsDroppedTotal.Inc()

	logrus.WithFields(logrus.Fields{
		"user_id":  notification.UserID,
		"category": notification.Category,
		"reason":   reason,
	}).Warn("notificações: notificação descartada")
}
