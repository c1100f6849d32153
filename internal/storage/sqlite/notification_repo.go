package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"actiowatch/internal/domain"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) domain.NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Save(ctx context.Context, n domain.Notification) error {
	query := `INSERT INTO notifications (id, kind, title, body, icon, created_at) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, n.ID.String(), string(n.Kind), n.Title, n.Body, n.Icon, n.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// Recent returns up to limit notifications, newest first.
func (r *NotificationRepository) Recent(ctx context.Context, limit int) ([]domain.Notification, error) {
	query := `SELECT id, kind, title, body, icon, created_at FROM notifications ORDER BY created_at DESC, rowid DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	out := []domain.Notification{}
	for rows.Next() {
		var (
			n       domain.Notification
			id      string
			kind    string
			created int64
		)
		if err := rows.Scan(&id, &kind, &n.Title, &n.Body, &n.Icon, &created); err != nil {
			return nil, err
		}
		if n.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("notification %q: %w", id, err)
		}
		n.Kind = domain.AlertKind(kind)
		n.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// Prune deletes notifications older than cutoff and returns how many went.
func (r *NotificationRepository) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE created_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to prune notifications: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve affected rows: %w", err)
	}
	return n, nil
}
