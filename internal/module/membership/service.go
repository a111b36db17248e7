package membership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campuscollab/server/internal/module/application"
	"github.com/campuscollab/server/internal/module/project"
	"github.com/campuscollab/server/internal/module/user"
	"github.com/campuscollab/server/internal/shared/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const cacheName = "membership"

// ProjectLookup loads projects.
type ProjectLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error)
}

// ApplicationReader is the read side of the application store.
type ApplicationReader interface {
	ListAccepted(ctx context.Context, projectID uuid.UUID) ([]*application.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID, projectIDs []uuid.UUID) ([]*application.Application, error)
	CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
}

// ProfileLookup loads public profiles.
type ProfileLookup interface {
	Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.Profile, error)
}

// Snapshot is a user's relation to one project.
type Snapshot struct {
	ProjectID         uuid.UUID
	IsOwner           bool
	IsMember          bool
	ApplicationStatus *application.Status
}

// Service answers membership questions from stored applications.
// It satisfies project.Membership.
type Service struct {
	projects ProjectLookup
	apps     ApplicationReader
	users    ProfileLookup
	cache    Cache
	cacheTTL time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewService creates a new membership service. A nil cache disables caching.
func NewService(
	projects ProjectLookup,
	apps ApplicationReader,
	users ProfileLookup,
	cache Cache,
	cacheTTL time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		projects: projects,
		apps:     apps,
		users:    users,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  m,
		logger:   logger,
	}
}

// IsMember reports whether userID owns projectID or holds an accepted
// application for it.
func (s *Service) IsMember(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return false, err
	}
	if IsOwner(userID, p.OwnerID) {
		return true, nil
	}
	if userID == uuid.Nil {
		return false, nil
	}

	members, err := s.acceptedMembers(ctx, projectID)
	if err != nil {
		return false, err
	}
	for _, id := range members {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

// GetTeam returns the owner followed by accepted members of projectID.
func (s *Service) GetTeam(ctx context.Context, projectID uuid.UUID) ([]project.TeamMember, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.Team(ctx, p)
}

// Team returns the team of an already loaded project.
func (s *Service) Team(ctx context.Context, p *project.Project) ([]project.TeamMember, error) {
	apps, err := s.apps.ListAccepted(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list accepted applications: %w", err)
	}

	profiles, err := s.users.Profiles(ctx, memberIDs(p.OwnerID, apps))
	if err != nil {
		return nil, fmt.Errorf("load team profiles: %w", err)
	}

	return Team(p, apps, profiles), nil
}

// ApplicationCount returns the number of applications of projectID in any status.
func (s *Service) ApplicationCount(ctx context.Context, projectID uuid.UUID) (int64, error) {
	count, err := s.apps.CountByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return count, nil
}

// MyApplicationStatus returns userID's application status for projectID,
// or nil when the user has not applied.
func (s *Service) MyApplicationStatus(ctx context.Context, userID, projectID uuid.UUID) (*application.Status, error) {
	statuses, err := s.MyApplicationStatuses(ctx, userID, []uuid.UUID{projectID})
	if err != nil {
		return nil, err
	}
	status, ok := statuses[projectID]
	if !ok {
		return nil, nil
	}
	return &status, nil
}

// MyApplicationStatuses returns userID's application status for each of
// projectIDs the user applied to. Only the user's own applications are read.
func (s *Service) MyApplicationStatuses(ctx context.Context, userID uuid.UUID, projectIDs []uuid.UUID) (map[uuid.UUID]application.Status, error) {
	out := make(map[uuid.UUID]application.Status)
	if userID == uuid.Nil || len(projectIDs) == 0 {
		return out, nil
	}

	apps, err := s.apps.ListByUser(ctx, userID, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("list own applications: %w", err)
	}
	for _, a := range apps {
		out[a.ProjectID] = a.Status
	}
	return out, nil
}

// ViewerStatuses is MyApplicationStatuses with plain string values.
func (s *Service) ViewerStatuses(ctx context.Context, viewerID uuid.UUID, projectIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	statuses, err := s.MyApplicationStatuses(ctx, viewerID, projectIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]string, len(statuses))
	for id, status := range statuses {
		out[id] = string(status)
	}
	return out, nil
}

// Snapshot returns userID's full relation to projectID.
func (s *Service) Snapshot(ctx context.Context, userID, projectID uuid.UUID) (*Snapshot, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	apps, err := s.apps.ListByUser(ctx, userID, []uuid.UUID{projectID})
	if err != nil {
		return nil, fmt.Errorf("list own applications: %w", err)
	}

	return &Snapshot{
		ProjectID:         projectID,
		IsOwner:           IsOwner(userID, p.OwnerID),
		IsMember:          IsMember(userID, p.OwnerID, apps),
		ApplicationStatus: MyApplicationStatus(userID, apps),
	}, nil
}

// Invalidate drops the cached member set of projectID.
func (s *Service) Invalidate(ctx context.Context, projectID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, projectID)
}

// acceptedMembers returns the accepted applicants of projectID, from the
// cache when possible. Cache failures fall back to storage.
func (s *Service) acceptedMembers(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	cacheable := false
	var generation uint64
	if s.cache != nil {
		ids, err := s.cache.Members(ctx, projectID)
		if err == nil {
			s.metrics.RecordCacheHit(cacheName)
			return ids, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.Warn("membership cache read failed",
				zap.String("project_id", projectID.String()),
				zap.Error(err),
			)
		}
		s.metrics.RecordCacheMiss(cacheName)

		// The generation must be read before storage so that an invalidation
		// racing with the load below makes the write back fail.
		generation, err = s.cache.Generation(ctx, projectID)
		if err != nil {
			s.logger.Warn("membership cache generation read failed",
				zap.String("project_id", projectID.String()),
				zap.Error(err),
			)
		} else {
			cacheable = true
		}
	}

	apps, err := s.apps.ListAccepted(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list accepted applications: %w", err)
	}
	ids := make([]uuid.UUID, len(apps))
	for i, a := range apps {
		ids[i] = a.UserID
	}

	if cacheable {
		err := s.cache.SetMembers(ctx, projectID, generation, ids, s.cacheTTL)
		switch {
		case errors.Is(err, ErrStaleGeneration):
			s.logger.Debug("membership changed during load, not caching",
				zap.String("project_id", projectID.String()),
			)
		case err != nil:
			s.logger.Warn("membership cache write failed",
				zap.String("project_id", projectID.String()),
				zap.Error(err),
			)
		}
	}
	return ids, nil
}
