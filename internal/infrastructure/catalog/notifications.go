package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cafeassist/backend/internal/domain"
)

// CreateNotification stores a contact message and returns its id
func (s *Store) CreateNotification(ctx context.Context, n *domain.Notification) (int64, error) {
	if n == nil || strings.TrimSpace(n.FullName) == "" || strings.TrimSpace(n.Email) == "" || strings.TrimSpace(n.Message) == "" {
		return 0, domain.ErrInvalidRequest
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications (full_name, email, category, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		n.FullName, n.Email, n.Category, n.Message, n.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert notification: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read notification id: %w", err)
	}

	n.ID = id
	return id, nil
}

// ListNotifications returns every open notification, newest first
func (s *Store) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, full_name, email, COALESCE(category, ''), message, created_at
		FROM notifications ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.FullName, &n.Email, &n.Category, &n.Message, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}
	return notifications, nil
}

// DeleteNotification resolves a notification by removing it
func (s *Store) DeleteNotification(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return requireRow(res, domain.ErrNotificationNotFound)
}
