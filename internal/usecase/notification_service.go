package usecase

import (
	"context"
	"strings"

	"github.com/cafeassist/backend/internal/domain"
	log "github.com/sirupsen/logrus"
)

// NotificationService stores contact form messages for the admin panel
type NotificationService struct {
	repo domain.NotificationRepository
}

// NewNotificationService creates a notification service
func NewNotificationService(repo domain.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Submit records a contact message
func (s *NotificationService) Submit(ctx context.Context, request domain.ContactRequest) (*domain.Notification, error) {
	n := &domain.Notification{
		FullName: strings.TrimSpace(request.FullName),
		Email:    strings.TrimSpace(request.Email),
		Category: strings.TrimSpace(request.Category),
		Message:  strings.TrimSpace(request.Message),
	}
	if n.FullName == "" || n.Email == "" || n.Message == "" {
		return nil, domain.ErrInvalidRequest
	}

	if _, err := s.repo.CreateNotification(ctx, n); err != nil {
		return nil, err
	}

	log.WithField("category", n.Category).Infof("[CONTACT] New message %d", n.ID)
	return n, nil
}

// List returns open notifications, newest first
func (s *NotificationService) List(ctx context.Context) ([]domain.Notification, error) {
	return s.repo.ListNotifications(ctx)
}

// Resolve marks a notification handled by deleting it
func (s *NotificationService) Resolve(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotificationNotFound
	}
	if err := s.repo.DeleteNotification(ctx, id); err != nil {
		return err
	}
	log.Infof("[CONTACT] Resolved message %d", id)
	return nil
}
