package notification

import (
	"context"
	"errors"
	"time"

	"github.com/campuscollab/server/internal/shared/metrics"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const breakerName = "notification_sink"

// Sink delivers notifications.
type Sink interface {
	Send(ctx context.Context, n *Notification) error
}

// SinkConfig configures the breaker in front of notification storage.
type SinkConfig struct {
	MaxFailures uint32
	Timeout     time.Duration
	Interval    time.Duration
}

// DefaultSinkConfig returns the default sink configuration.
func DefaultSinkConfig() *SinkConfig {
	return &SinkConfig{
		MaxFailures: 5,
		Timeout:     30 * time.Second,
		Interval:    60 * time.Second,
	}
}

// breakerSink writes notifications to storage behind a circuit breaker so a
// struggling database is not hammered by side effects of committed work.
type breakerSink struct {
	repo    Repository
	breaker *gobreaker.CircuitBreaker[any]
}

// NewBreakerSink creates a storage sink guarded by a circuit breaker.
func NewBreakerSink(repo Repository, cfg *SinkConfig, m *metrics.Metrics, logger *zap.Logger) Sink {
	if cfg == nil {
		cfg = DefaultSinkConfig()
	}
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			m.SetBreakerState(name, int(to))
		},
	}

	return &breakerSink{
		repo:    repo,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

func (s *breakerSink) Send(ctx context.Context, n *Notification) error {
	_, err := s.breaker.Execute(func() (any, error) {
		return nil, s.repo.Create(ctx, n)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errors.Join(ErrSinkUnavailable, err)
	}
	return err
}
