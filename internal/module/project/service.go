package project

import (
	"context"
	"fmt"
	"strings"

	"github.com/campuscollab/server/internal/shared/events"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ThreadRegistry resolves threads for project creation and listing.
type ThreadRegistry interface {
	ResolveSlug(ctx context.Context, slug string) (uuid.UUID, error)
	JoinedThreadIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Membership is the read side of the membership resolver.
// Statuses are application status names.
type Membership interface {
	Team(ctx context.Context, p *Project) ([]TeamMember, error)
	ApplicationCount(ctx context.Context, projectID uuid.UUID) (int64, error)
	ViewerStatuses(ctx context.Context, viewerID uuid.UUID, projectIDs []uuid.UUID) (map[uuid.UUID]string, error)
}

// Service provides project lifecycle operations.
type Service struct {
	repo       Repository
	threads    ThreadRegistry
	membership Membership
	publisher  events.Publisher
	logger     *zap.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, threads ThreadRegistry, membership Membership, publisher events.Publisher, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		repo:       repo,
		threads:    threads,
		membership: membership,
		publisher:  publisher,
		logger:     logger,
	}
}

// CreateProject creates a project owned by ownerID in the thread named by the request slug.
func (s *Service) CreateProject(ctx context.Context, ownerID uuid.UUID, req *CreateProjectRequest) (*Project, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	switch {
	case title == "":
		return nil, ErrTitleRequired
	case description == "":
		return nil, ErrDescriptionRequired
	case strings.TrimSpace(req.ThreadSlug) == "":
		return nil, ErrThreadRequired
	}

	threadID, err := s.threads.ResolveSlug(ctx, req.ThreadSlug)
	if err != nil {
		return nil, err
	}

	project := &Project{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
		ThreadID:    threadID,
		Skills:      NormalizeSkills(req.Skills),
		Dept:        strings.TrimSpace(req.Dept),
		Year:        strings.TrimSpace(req.Year),
		GithubURL:   strings.TrimSpace(req.GithubURL),
		FileLinks:   datatypes.JSONSlice[FileLink]{},
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.logger.Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("thread_id", threadID.String()),
	)

	return project, nil
}

// GetProject returns a project with its team, application count and the
// viewer's own application status. viewerID may be uuid.Nil.
func (s *Service) GetProject(ctx context.Context, projectID, viewerID uuid.UUID) (*Detail, error) {
	project, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	team, err := s.membership.Team(ctx, project)
	if err != nil {
		return nil, err
	}

	count, err := s.membership.ApplicationCount(ctx, projectID)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Project: project, Team: team, ApplicationCount: count}
	if viewerID != uuid.Nil {
		statuses, err := s.membership.ViewerStatuses(ctx, viewerID, []uuid.UUID{projectID})
		if err != nil {
			return nil, err
		}
		detail.MyStatus = statuses[projectID]
	}

	return detail, nil
}

// ListProjects lists projects visible to viewerID. Authenticated viewers
// only see projects in threads they joined; anonymous viewers see all.
func (s *Service) ListProjects(ctx context.Context, viewerID uuid.UUID, query *ListProjectsQuery) (*Listing, error) {
	filter := &ListFilter{
		Search: query.Search,
		Skills: query.SkillFilter(),
	}

	if viewerID != uuid.Nil {
		threadIDs, err := s.threads.JoinedThreadIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		filter.RestrictThreads = true
		filter.ThreadIDs = threadIDs
	}

	page := query.Pagination
	projects, total, err := s.repo.List(ctx, filter, &page)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	listing := &Listing{Projects: projects, Total: total, Statuses: map[uuid.UUID]string{}}
	if viewerID != uuid.Nil && len(projects) > 0 {
		ids := make([]uuid.UUID, len(projects))
		for i, p := range projects {
			ids[i] = p.ID
		}
		statuses, err := s.membership.ViewerStatuses(ctx, viewerID, ids)
		if err != nil {
			return nil, err
		}
		listing.Statuses = statuses
	}

	return listing, nil
}

// UpdateCollaborationInfo applies a partial update to the collaboration fields.
func (s *Service) UpdateCollaborationInfo(ctx context.Context, actorID, projectID uuid.UUID, req *UpdateCollaborationRequest) (*Project, error) {
	project, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !project.IsOwner(actorID) {
		return nil, ErrNotOwner
	}

	if req.IsEmpty() {
		return project, nil
	}

	fields := make(map[string]any, 4)
	if req.Goal != nil {
		fields["goal"] = *req.Goal
		project.Goal = *req.Goal
	}
	if req.ExecutionPlan != nil {
		fields["execution_plan"] = *req.ExecutionPlan
		project.ExecutionPlan = *req.ExecutionPlan
	}
	if req.Resources != nil {
		fields["resources"] = *req.Resources
		project.Resources = *req.Resources
	}
	if req.FileLinks != nil {
		links := make(datatypes.JSONSlice[FileLink], 0, len(*req.FileLinks))
		for _, l := range *req.FileLinks {
			l.Name = strings.TrimSpace(l.Name)
			l.URL = strings.TrimSpace(l.URL)
			if l.Name == "" || l.URL == "" {
				return nil, ErrInvalidFileLink
			}
			links = append(links, l)
		}
		fields["file_links"] = links
		project.FileLinks = links
	}

	if err := s.repo.UpdateFields(ctx, projectID, fields); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	s.logger.Info("project collaboration info updated",
		zap.String("project_id", projectID.String()),
		zap.Int("fields", len(fields)),
	)

	return project, nil
}

// DeleteProject deletes a project together with all of its applications.
func (s *Service) DeleteProject(ctx context.Context, actorID, projectID uuid.UUID) error {
	project, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}

	if !project.IsOwner(actorID) {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.logger.Info("project deleted",
		zap.String("project_id", projectID.String()),
		zap.String("deleted_by", actorID.String()),
	)

	s.publisher.Publish(ctx, events.NewProjectDeletedEvent(project.ID, project.Title, project.OwnerID))

	return nil
}
