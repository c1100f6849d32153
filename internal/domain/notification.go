package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AlertKind string

const (
	AlertHighCPU       AlertKind = "high_cpu"
	AlertHighMemory    AlertKind = "high_memory"
	AlertProcessMemory AlertKind = "process_memory"
)

type Notification struct {
	ID        uuid.UUID `json:"id"`
	Kind      AlertKind `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier delivers a notification to the user. Callers treat a returned
// error as informational only.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type NotificationRepository interface {
	Save(ctx context.Context, n Notification) error
	Recent(ctx context.Context, limit int) ([]Notification, error)
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}
