package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campuscollab/server/internal/module/project"
	"github.com/campuscollab/server/internal/module/user"
	"github.com/campuscollab/server/internal/shared/events"
	"github.com/campuscollab/server/internal/shared/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProjectLookup loads projects for ownership checks.
type ProjectLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error)
}

// UserDirectory resolves names and public profiles.
type UserDirectory interface {
	DisplayName(ctx context.Context, userID uuid.UUID) string
	Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.Profile, error)
}

// Service is the application lifecycle manager. It is the only path by
// which applications are created, decided or removed.
type Service struct {
	repo      Repository
	projects  ProjectLookup
	users     UserDirectory
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewService creates a new application service.
func NewService(
	repo Repository,
	projects ProjectLookup,
	users UserDirectory,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		repo:      repo,
		projects:  projects,
		users:     users,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// SubmitApplication creates a pending application from actorID to projectID.
func (s *Service) SubmitApplication(ctx context.Context, actorID, projectID uuid.UUID, req *SubmitRequest) (*Application, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if p.IsOwner(actorID) {
		s.metrics.RecordApplication("own_project")
		return nil, ErrOwnProject
	}

	app := &Application{
		ID:        uuid.New(),
		UserID:    actorID,
		ProjectID: projectID,
		Message:   strings.TrimSpace(req.Message),
		Status:    StatusPending,
	}

	if err := s.repo.Create(ctx, app); err != nil {
		if errors.Is(err, ErrDuplicateApplication) {
			s.metrics.RecordApplication("duplicate")
			return nil, err
		}
		return nil, fmt.Errorf("create application: %w", err)
	}

	s.metrics.RecordApplication("created")
	s.logger.Info("application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("project_id", projectID.String()),
		zap.String("user_id", actorID.String()),
	)

	s.publisher.Publish(ctx, events.NewApplicationSubmittedEvent(
		app.ID, p.ID, p.Title, p.OwnerID, actorID, s.users.DisplayName(ctx, actorID),
	))

	return app, nil
}

// SetApplicationStatus applies an owner decision to an application of projectID.
// Setting the current status again is a no-op.
func (s *Service) SetApplicationStatus(ctx context.Context, actorID, projectID, applicationID uuid.UUID, newStatus Status) (*Application, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !p.IsOwner(actorID) {
		return nil, project.ErrNotOwner
	}

	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.ProjectID != projectID {
		return nil, ErrApplicationNotFound
	}

	if !newStatus.IsDecision() {
		return nil, ErrInvalidStatus
	}

	if app.Status == newStatus {
		return app, nil
	}

	transition, err := NextTransition(app.Status, newStatus)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CompareAndSetStatus(ctx, app.ID, app.Status, newStatus); err != nil {
		if errors.Is(err, ErrStaleStatus) {
			return nil, err
		}
		return nil, fmt.Errorf("set application status: %w", err)
	}

	from := app.Status
	app.Status = newStatus
	app.UpdatedAt = time.Now()

	s.metrics.RecordTransition(string(transition))
	s.logger.Info("application decided",
		zap.String("application_id", app.ID.String()),
		zap.String("project_id", projectID.String()),
		zap.String("transition", string(transition)),
	)

	s.publisher.Publish(ctx, events.NewApplicationStatusChangedEvent(
		app.ID, p.ID, p.Title, p.OwnerID, app.UserID, string(from), string(newStatus), string(transition),
	))

	return app, nil
}

// LeaveProject removes actorID from the team of projectID.
func (s *Service) LeaveProject(ctx context.Context, actorID, projectID uuid.UUID) error {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}

	if p.IsOwner(actorID) {
		return ErrOwnerCannotLeave
	}

	deleted, err := s.repo.DeleteAccepted(ctx, projectID, actorID)
	if err != nil {
		return fmt.Errorf("leave project: %w", err)
	}
	if !deleted {
		return ErrNotMember
	}

	s.metrics.RecordDeparture("left")
	s.logger.Info("member left project",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", actorID.String()),
	)

	s.publisher.Publish(ctx, events.NewMemberLeftEvent(
		p.ID, p.Title, p.OwnerID, actorID, s.users.DisplayName(ctx, actorID),
	))

	return nil
}

// RemoveMember removes targetID from the team of projectID on behalf of the owner.
func (s *Service) RemoveMember(ctx context.Context, actorID, projectID, targetID uuid.UUID) error {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}

	if !p.IsOwner(actorID) {
		return project.ErrNotOwner
	}

	if targetID == actorID {
		return ErrCannotRemoveSelf
	}

	deleted, err := s.repo.DeleteAccepted(ctx, projectID, targetID)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	if !deleted {
		return ErrMemberNotFound
	}

	s.metrics.RecordDeparture("removed")
	s.logger.Info("member removed from project",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", targetID.String()),
		zap.String("removed_by", actorID.String()),
	)

	s.publisher.Publish(ctx, events.NewMemberRemovedEvent(p.ID, p.Title, p.OwnerID, targetID))

	return nil
}

// ListApplications returns every application of projectID, newest first,
// with applicant profiles. Owner only.
func (s *Service) ListApplications(ctx context.Context, actorID, projectID uuid.UUID) ([]*WithApplicant, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !p.IsOwner(actorID) {
		return nil, project.ErrNotOwner
	}

	apps, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	ids := make([]uuid.UUID, len(apps))
	for i, a := range apps {
		ids[i] = a.UserID
	}
	profiles, err := s.users.Profiles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load applicants: %w", err)
	}

	out := make([]*WithApplicant, len(apps))
	for i, a := range apps {
		profile, ok := profiles[a.UserID]
		if !ok {
			profile = user.Profile{ID: a.UserID, Name: user.UnknownName, Skills: []string{}}
		}
		out[i] = &WithApplicant{Application: a, Applicant: profile}
	}
	return out, nil
}
