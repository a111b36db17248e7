package notification

import (
	"context"
	"fmt"

	"github.com/campuscollab/server/internal/shared/events"
	"github.com/campuscollab/server/internal/shared/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Subscriber turns lifecycle events into notifications. It runs after the
// triggering change has been committed, so its failures are reported to the
// bus and never reach the caller that caused the event.
type Subscriber struct {
	sink    Sink
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewSubscriber creates a notification subscriber.
func NewSubscriber(sink Sink, m *metrics.Metrics, logger *zap.Logger) *Subscriber {
	return &Subscriber{sink: sink, metrics: m, logger: logger}
}

// Handles returns the event types that notify someone.
func (s *Subscriber) Handles() []string {
	return []string{
		events.ApplicationSubmittedType,
		events.ApplicationStatusChangedType,
		events.MemberLeftType,
		events.MemberRemovedType,
	}
}

// Handle composes and delivers the notification for event.
func (s *Subscriber) Handle(ctx context.Context, event events.Event) error {
	n := Compose(event)
	if n == nil {
		return nil
	}
	n.ID = uuid.New()

	// A client hanging up after the commit must not drop the notification.
	if err := s.sink.Send(context.WithoutCancel(ctx), n); err != nil {
		s.metrics.RecordNotification(string(n.Type), "failed")
		return fmt.Errorf("deliver %s notification to %s: %w", n.Type, n.UserID, err)
	}

	s.metrics.RecordNotification(string(n.Type), "delivered")
	s.logger.Debug("notification delivered",
		zap.String("notification_id", n.ID.String()),
		zap.String("user_id", n.UserID.String()),
		zap.String("event_type", event.EventType()),
	)
	return nil
}
