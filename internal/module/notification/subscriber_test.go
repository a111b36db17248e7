package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campuscollab/server/internal/shared/events"
	"github.com/campuscollab/server/internal/shared/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, n *Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]*Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Notification), args.Error(1)
}

func (m *MockRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Tests ---

func TestSubscriber_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("stores notification for recipient", func(t *testing.T) {
		repo := new(MockRepository)
		m := metrics.New("test", prometheus.NewRegistry())
		sub := NewSubscriber(NewBreakerSink(repo, nil, m, zap.NewNop()), m, zap.NewNop())
		member := uuid.New()

		repo.On("Create", mock.Anything, mock.MatchedBy(func(n *Notification) bool {
			return n.UserID == member && n.Type == TypeWarning && n.ID != uuid.Nil
		})).Return(nil)

		err := sub.Handle(ctx, events.NewMemberRemovedEvent(uuid.New(), "Robot arm", uuid.New(), member))
		require.NoError(t, err)
		repo.AssertExpectations(t)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsTotal.WithLabelValues("warning", "delivered")))
	})

	t.Run("ignores events without recipients", func(t *testing.T) {
		repo := new(MockRepository)
		sub := NewSubscriber(NewBreakerSink(repo, nil, nil, zap.NewNop()), nil, zap.NewNop())

		require.NoError(t, sub.Handle(ctx, events.NewProjectDeletedEvent(uuid.New(), "x", uuid.New())))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("failures reach the bus, not the publisher", func(t *testing.T) {
		repo := new(MockRepository)
		m := metrics.New("test", prometheus.NewRegistry())
		sub := NewSubscriber(NewBreakerSink(repo, nil, m, zap.NewNop()), m, zap.NewNop())
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		err := sub.Handle(ctx, events.NewMemberRemovedEvent(uuid.New(), "Robot arm", uuid.New(), uuid.New()))
		assert.Error(t, err)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsTotal.WithLabelValues("warning", "failed")))

		bus := events.NewBus(zap.NewNop())
		bus.Register(sub)
		assert.NotPanics(t, func() {
			bus.Publish(ctx, events.NewMemberRemovedEvent(uuid.New(), "Robot arm", uuid.New(), uuid.New()))
		})
	})

	t.Run("delivery survives a cancelled request", func(t *testing.T) {
		repo := new(MockRepository)
		sub := NewSubscriber(NewBreakerSink(repo, nil, nil, zap.NewNop()), nil, zap.NewNop())
		repo.On("Create", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }), mock.Anything).Return(nil)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		require.NoError(t, sub.Handle(cancelled, events.NewMemberRemovedEvent(uuid.New(), "x", uuid.New(), uuid.New())))
		repo.AssertExpectations(t)
	})
}

func TestBreakerSink_Trips(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	m := metrics.New("test", prometheus.NewRegistry())
	sink := NewBreakerSink(repo, &SinkConfig{MaxFailures: 2, Timeout: time.Minute}, m, zap.NewNop())
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	for range 2 {
		assert.Error(t, sink.Send(ctx, &Notification{}))
	}

	err := sink.Send(ctx, &Notification{})
	assert.ErrorIs(t, err, ErrSinkUnavailable)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	repo.AssertNumberOfCalls(t, "Create", 2)
	assert.Equal(t, float64(gobreaker.StateOpen), testutil.ToFloat64(m.BreakerState.WithLabelValues(breakerName)))
}
