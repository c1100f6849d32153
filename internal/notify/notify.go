// Package notify delivers watchdog notifications to the desktop, to
// connected websocket clients (through the event bus) and to the log.
package notify

import (
	"context"
	"errors"

	"actiowatch/internal/domain"
	"actiowatch/internal/event"
	"actiowatch/internal/logger"

	"github.com/gen2brain/beeep"
)

// Desktop shows a native notification.
type Desktop struct {
	show func(title, message string, icon any) error
}

func NewDesktop() *Desktop {
	return &Desktop{show: beeep.Notify}
}

func (d *Desktop) Notify(_ context.Context, n domain.Notification) error {
	return d.show(n.Title, n.Body, n.Icon)
}

// Bus republishes notifications as events for UI subscribers.
type Bus struct {
	bus *event.Bus
}

func NewBus(bus *event.Bus) *Bus {
	return &Bus{bus: bus}
}

func (b *Bus) Notify(_ context.Context, n domain.Notification) error {
	b.bus.Publish(domain.WsEventNotification, n)
	return nil
}

// History records notifications so they can be listed later.
type History struct {
	repo domain.NotificationRepository
}

func NewHistory(repo domain.NotificationRepository) *History {
	return &History{repo: repo}
}

func (h *History) Notify(ctx context.Context, n domain.Notification) error {
	return h.repo.Save(ctx, n)
}

type Log struct {
	log logger.Logger
}

func NewLog(log logger.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Notify(_ context.Context, n domain.Notification) error {
	l.log.Info("notification", "kind", n.Kind, "title", n.Title, "body", n.Body)
	return nil
}

// Multi delivers to every notifier, even after one fails, and joins the
// errors.
type Multi []domain.Notifier

func (m Multi) Notify(ctx context.Context, n domain.Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
