package application

import (
	"context"
	"errors"
	"testing"

	"github.com/campuscollab/server/internal/module/project"
	"github.com/campuscollab/server/internal/module/user"
	apperrors "github.com/campuscollab/server/internal/shared/errors"
	"github.com/campuscollab/server/internal/shared/events"
	"github.com/campuscollab/server/internal/shared/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, app *Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Application), args.Error(1)
}

func (m *MockRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Application, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Application), args.Error(1)
}

func (m *MockRepository) ListAccepted(ctx context.Context, projectID uuid.UUID) ([]*Application, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Application), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uuid.UUID, projectIDs []uuid.UUID) ([]*Application, error) {
	args := m.Called(ctx, userID, projectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Application), args.Error(1)
}

func (m *MockRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to Status) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockRepository) DeleteAccepted(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

type MockProjects struct {
	mock.Mock
}

func (m *MockProjects) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) DisplayName(ctx context.Context, userID uuid.UUID) string {
	args := m.Called(ctx, userID)
	return args.String(0)
}

func (m *MockUsers) Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.Profile, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]user.Profile), args.Error(1)
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) {
	p.events = append(p.events, e)
}

type fixture struct {
	repo      *MockRepository
	projects  *MockProjects
	users     *MockUsers
	publisher *recordingPublisher
	metrics   *metrics.Metrics
	service   *Service

	owner   uuid.UUID
	project *project.Project
}

func setup() *fixture {
	owner := uuid.New()
	f := &fixture{
		repo:      new(MockRepository),
		projects:  new(MockProjects),
		users:     new(MockUsers),
		publisher: &recordingPublisher{},
		metrics:   metrics.New("test", prometheus.NewRegistry()),
		owner:     owner,
		project:   &project.Project{ID: uuid.New(), OwnerID: owner, Title: "Robot arm"},
	}
	f.service = NewService(f.repo, f.projects, f.users, f.publisher, f.metrics, zap.NewNop())
	f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)
	return f
}

func (f *fixture) application(userID uuid.UUID, status Status) *Application {
	return &Application{ID: uuid.New(), UserID: userID, ProjectID: f.project.ID, Status: status}
}

// --- Tests ---

func TestService_SubmitApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending application and notifies owner", func(t *testing.T) {
		f := setup()
		applicant := uuid.New()
		f.repo.On("Create", ctx, mock.AnythingOfType("*application.Application")).Return(nil)
		f.users.On("DisplayName", ctx, applicant).Return("Ada")

		app, err := f.service.SubmitApplication(ctx, applicant, f.project.ID, &SubmitRequest{Message: "  I know ROS  "})
		require.NoError(t, err)

		assert.Equal(t, StatusPending, app.Status)
		assert.Equal(t, applicant, app.UserID)
		assert.Equal(t, "I know ROS", app.Message)

		require.Len(t, f.publisher.events, 1)
		e := f.publisher.events[0].(*events.ApplicationSubmittedEvent)
		assert.Equal(t, f.owner, e.OwnerID)
		assert.Equal(t, "Ada", e.ApplicantName)
		assert.Equal(t, "Robot arm", e.ProjectTitle)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ApplicationsTotal.WithLabelValues("created")))
	})

	t.Run("owner cannot apply to own project", func(t *testing.T) {
		f := setup()

		_, err := f.service.SubmitApplication(ctx, f.owner, f.project.ID, &SubmitRequest{})
		assert.ErrorIs(t, err, ErrOwnProject)
		assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("duplicate is a conflict with no notification", func(t *testing.T) {
		f := setup()
		f.repo.On("Create", ctx, mock.Anything).Return(ErrDuplicateApplication)

		_, err := f.service.SubmitApplication(ctx, uuid.New(), f.project.ID, &SubmitRequest{})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Empty(t, f.publisher.events)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ApplicationsTotal.WithLabelValues("duplicate")))
	})

	t.Run("missing project", func(t *testing.T) {
		f := setup()
		missing := uuid.New()
		f.projects.On("GetByID", ctx, missing).Return(nil, project.ErrProjectNotFound)

		_, err := f.service.SubmitApplication(ctx, uuid.New(), missing, &SubmitRequest{})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		f := setup()
		f.repo.On("Create", ctx, mock.Anything).Return(errors.New("connection reset"))

		_, err := f.service.SubmitApplication(ctx, uuid.New(), f.project.ID, &SubmitRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create application")
		assert.Empty(t, f.publisher.events)
	})
}

func TestService_SetApplicationStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("owner accepts pending", func(t *testing.T) {
		f := setup()
		app := f.application(uuid.New(), StatusPending)
		f.repo.On("GetByID", ctx, app.ID).Return(app, nil)
		f.repo.On("CompareAndSetStatus", ctx, app.ID, StatusPending, StatusAccepted).Return(nil)

		got, err := f.service.SetApplicationStatus(ctx, f.owner, f.project.ID, app.ID, StatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, got.Status)

		require.Len(t, f.publisher.events, 1)
		e := f.publisher.events[0].(*events.ApplicationStatusChangedEvent)
		assert.Equal(t, "pending", e.From)
		assert.Equal(t, "accepted", e.To)
		assert.Equal(t, "accept", e.Transition)
		assert.Equal(t, app.UserID, e.ApplicantID)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TransitionsTotal.WithLabelValues("accept")))
	})

	t.Run("owner reconsiders a rejection", func(t *testing.T) {
		f := setup()
		app := f.application(uuid.New(), StatusRejected)
		f.repo.On("GetByID", ctx, app.ID).Return(app, nil)
		f.repo.On("CompareAndSetStatus", ctx, app.ID, StatusRejected, StatusAccepted).Return(nil)

		got, err := f.service.SetApplicationStatus(ctx, f.owner, f.project.ID, app.ID, StatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, got.Status)

		e := f.publisher.events[0].(*events.ApplicationStatusChangedEvent)
		assert.Equal(t, "reconsider", e.Transition)
	})

	t.Run("non-owner is forbidden and nothing changes", func(t *testing.T) {
		f := setup()

		_, err := f.service.SetApplicationStatus(ctx, uuid.New(), f.project.ID, uuid.New(), StatusAccepted)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		f.repo.AssertNotCalled(t, "CompareAndSetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("accepted cannot be rejected", func(t *testing.T) {
		f := setup()
		app := f.application(uuid.New(), StatusAccepted)
		f.repo.On("GetByID", ctx, app.ID).Return(app, nil)

		_, err := f.service.SetApplicationStatus(ctx, f.owner, f.project.ID, app.ID, StatusRejected)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("pending is not a decision", func(t *testing.T) {
		f := setup()
		app := f.application(uuid.New(), StatusRejected)
		f.repo.On("GetByID", ctx, app.ID).Return(app, nil)

		_, err := f.service.SetApplicationStatus(ctx, f.owner, f.project.ID, app.ID, StatusPending)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		f := setup()
		app := f.application(uuid.New(), StatusRejected)
		f.repo.On("GetByID", ctx, app.ID).Return(app, nil)

		got, err := f.service.SetApplicationStatus(ctx, f.owner, f.project.ID, app.ID, StatusRejected)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, got.Status)
		f.repo.AssertNotCalled(t, "CompareAndSetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("application of another project is not found", func(t *testing.T) {
		f := setup()
		app := f.application(uuid.New(), StatusPending)
		app.ProjectID = uuid.New()
		f.repo.On("GetByID", ctx, app.ID).Return(app, nil)

		_, err := f.service.SetApplicationStatus(ctx, f.owner, f.project.ID, app.ID, StatusAccepted)
		assert.ErrorIs(t, err, ErrApplicationNotFound)
	})

	t.Run("concurrent decision loses the race", func(t *testing.T) {
		f := setup()
		app := f.application(uuid.New(), StatusPending)
		f.repo.On("GetByID", ctx, app.ID).Return(app, nil)
		f.repo.On("CompareAndSetStatus", ctx, app.ID, StatusPending, StatusRejected).Return(ErrStaleStatus)

		_, err := f.service.SetApplicationStatus(ctx, f.owner, f.project.ID, app.ID, StatusRejected)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Empty(t, f.publisher.events)
	})
}

func TestService_LeaveProject(t *testing.T) {
	ctx := context.Background()

	t.Run("member leaves and owner is told", func(t *testing.T) {
		f := setup()
		member := uuid.New()
		f.repo.On("DeleteAccepted", ctx, f.project.ID, member).Return(true, nil)
		f.users.On("DisplayName", ctx, member).Return("Grace")

		require.NoError(t, f.service.LeaveProject(ctx, member, f.project.ID))

		require.Len(t, f.publisher.events, 1)
		e := f.publisher.events[0].(*events.MemberLeftEvent)
		assert.Equal(t, member, e.MemberID)
		assert.Equal(t, "Grace", e.MemberName)
		assert.Equal(t, f.owner, e.OwnerID)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.DeparturesTotal.WithLabelValues("left")))
	})

	t.Run("owner cannot leave", func(t *testing.T) {
		f := setup()

		err := f.service.LeaveProject(ctx, f.owner, f.project.ID)
		assert.ErrorIs(t, err, ErrOwnerCannotLeave)
		f.repo.AssertNotCalled(t, "DeleteAccepted", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-member gets not found", func(t *testing.T) {
		f := setup()
		stranger := uuid.New()
		f.repo.On("DeleteAccepted", ctx, f.project.ID, stranger).Return(false, nil)

		err := f.service.LeaveProject(ctx, stranger, f.project.ID)
		assert.ErrorIs(t, err, ErrNotMember)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Empty(t, f.publisher.events)
	})
}

func TestService_RemoveMember(t *testing.T) {
	ctx := context.Background()

	t.Run("owner removes member", func(t *testing.T) {
		f := setup()
		member := uuid.New()
		f.repo.On("DeleteAccepted", ctx, f.project.ID, member).Return(true, nil)

		require.NoError(t, f.service.RemoveMember(ctx, f.owner, f.project.ID, member))

		require.Len(t, f.publisher.events, 1)
		e := f.publisher.events[0].(*events.MemberRemovedEvent)
		assert.Equal(t, member, e.MemberID)
		assert.Equal(t, "Robot arm", e.ProjectTitle)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		f := setup()

		err := f.service.RemoveMember(ctx, uuid.New(), f.project.ID, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("owner cannot remove self", func(t *testing.T) {
		f := setup()

		err := f.service.RemoveMember(ctx, f.owner, f.project.ID, f.owner)
		assert.ErrorIs(t, err, ErrCannotRemoveSelf)
	})

	t.Run("pending applicant is not a member", func(t *testing.T) {
		f := setup()
		applicant := uuid.New()
		f.repo.On("DeleteAccepted", ctx, f.project.ID, applicant).Return(false, nil)

		err := f.service.RemoveMember(ctx, f.owner, f.project.ID, applicant)
		assert.ErrorIs(t, err, ErrMemberNotFound)
		assert.Empty(t, f.publisher.events)
	})
}

func TestService_ListApplications(t *testing.T) {
	ctx := context.Background()

	t.Run("owner sees applicants", func(t *testing.T) {
		f := setup()
		known, gone := uuid.New(), uuid.New()
		apps := []*Application{f.application(known, StatusPending), f.application(gone, StatusRejected)}
		f.repo.On("ListByProject", ctx, f.project.ID).Return(apps, nil)
		f.users.On("Profiles", ctx, []uuid.UUID{known, gone}).Return(map[uuid.UUID]user.Profile{
			known: {ID: known, Name: "Ada", Skills: []string{"Go"}},
		}, nil)

		out, err := f.service.ListApplications(ctx, f.owner, f.project.ID)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "Ada", out[0].Applicant.Name)
		assert.Equal(t, user.UnknownName, out[1].Applicant.Name)
		assert.Equal(t, gone, out[1].Applicant.ID)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		f := setup()

		_, err := f.service.ListApplications(ctx, uuid.New(), f.project.ID)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}
