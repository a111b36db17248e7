package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultListLimit caps how many notifications a list returns.
const DefaultListLimit = 50

// Service serves a recipient's own notifications.
type Service struct {
	repo      Repository
	listLimit int
	logger    *zap.Logger
}

// NewService creates a new notification service.
func NewService(repo Repository, listLimit int, logger *zap.Logger) *Service {
	if listLimit <= 0 {
		listLimit = DefaultListLimit
	}
	return &Service{repo: repo, listLimit: listLimit, logger: logger}
}

// List returns the latest notifications of userID, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*Notification, error) {
	out, err := s.repo.ListByUser(ctx, userID, unreadOnly, s.listLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}

// UnreadCount returns how many notifications of userID are unread.
func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one of userID's notifications as read. Notifications of
// other users are reported as not found.
func (s *Service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	found, err := s.repo.MarkRead(ctx, notificationID, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if !found {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of userID as read.
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	if updated > 0 {
		s.logger.Debug("notifications marked read",
			zap.String("user_id", userID.String()),
			zap.Int64("count", updated),
		)
	}
	return updated, nil
}
