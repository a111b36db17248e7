package membership

import (
	"context"
	"fmt"

	"github.com/campuscollab/server/internal/shared/events"
	"go.uber.org/zap"
)

// Invalidator drops cached member sets when a project's team may have changed.
type Invalidator struct {
	service *Service
	logger  *zap.Logger
}

// NewInvalidator creates a cache invalidation subscriber for service.
func NewInvalidator(service *Service, logger *zap.Logger) *Invalidator {
	return &Invalidator{service: service, logger: logger}
}

// Handles returns the event types that can change a team.
func (i *Invalidator) Handles() []string {
	return []string{
		events.ApplicationStatusChangedType,
		events.MemberLeftType,
		events.MemberRemovedType,
		events.ProjectDeletedType,
	}
}

// Handle invalidates the cached member set of the event's project.
func (i *Invalidator) Handle(ctx context.Context, event events.Event) error {
	scoped, ok := event.(events.ProjectScoped)
	if !ok {
		return nil
	}
	projectID := scoped.ScopeProjectID()

	if err := i.service.Invalidate(context.WithoutCancel(ctx), projectID); err != nil {
		return fmt.Errorf("invalidate members of %s: %w", projectID, err)
	}
	i.logger.Debug("membership cache invalidated",
		zap.String("project_id", projectID.String()),
		zap.String("event_type", event.EventType()),
	)
	return nil
}
