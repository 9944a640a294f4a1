package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tracknest.dev/tracknest/internal/apperrors"
	"tracknest.dev/tracknest/internal/logging"
	repository "tracknest.dev/tracknest/internal/repositories"
)

// Dispatcher derives notifications from domain events. Dispatch is
// fire-and-forget: it never returns an error and nothing that happens while
// building or persisting a notification can reach the caller. Failures are
// logged at this single boundary and discarded.
//
// Events are consumed by one goroutine, which keeps per-recipient delivery
// in the order the events were dispatched.
type Dispatcher struct {
	notifications *repository.NotificationRepository

	queue  chan Event
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(notifications *repository.NotificationRepository, queueSize int) *Dispatcher {
	d := &Dispatcher{
		notifications: notifications,
		queue:         make(chan Event, queueSize),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// Dispatch hands the event to the background consumer. Call sites sit after
// the triggering mutation has committed, so a recipient can never observe a
// notification before its subject is durable. After Shutdown, events are
// delivered inline so late emitters still never see an error.
func (d *Dispatcher) Dispatch(e Event) {
	e.ID = uuid.NewString()
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		d.deliver(e)
		return
	}
	d.queue <- e
	d.mu.RUnlock()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for e := range d.queue {
		d.deliver(e)
	}
}

func (d *Dispatcher) deliver(e Event) {
	defer func() {
		if r := recover(); r != nil {
			logging.Logger.WithFields(logrus.Fields{
				"event_kind": e.Kind,
				"event_id":   e.ID,
				"panic":      r,
			}).Error("notification dispatch panicked")
		}
	}()

	notifications, err := buildNotifications(e)
	if err != nil {
		d.absorb(e, err)
		return
	}

	for i := range notifications {
		if err := d.notifications.Create(context.Background(), &notifications[i]); err != nil {
			d.absorb(e, err)
		}
	}
}

func (d *Dispatcher) absorb(e Event, err error) {
	dispatchErr := &apperrors.DispatchError{EventKind: string(e.Kind), Err: err}
	logging.Logger.WithFields(logrus.Fields{
		"event_kind": e.Kind,
		"event_id":   e.ID,
		"error":      dispatchErr.Err,
	}).Error("notification dispatch failed")
}

// Shutdown drains the queue and stops the consumer. Pending events are still
// delivered before it returns, unless the context expires first.
func (d *Dispatcher) Shutdown(ctx context.Context) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logging.Logger.Warn("dispatcher shutdown timed out with events still queued")
	}
}
