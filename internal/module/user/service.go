package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UnknownName is shown when a profile cannot be loaded.
const UnknownName = "Someone"

// Directory looks up public profiles.
type Directory struct {
	repo   Repository
	logger *zap.Logger
}

// NewDirectory creates a new user directory.
func NewDirectory(repo Repository, logger *zap.Logger) *Directory {
	return &Directory{repo: repo, logger: logger}
}

// DisplayName returns the name of userID for notification copy.
// Lookup failures degrade to UnknownName; the caller's transition has
// already been committed by the time names are needed.
func (d *Directory) DisplayName(ctx context.Context, userID uuid.UUID) string {
	u, err := d.repo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			d.logger.Warn("display name lookup failed",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
		return UnknownName
	}
	if u.Name == "" {
		return UnknownName
	}
	return u.Name
}

// Profiles returns the public profiles for ids keyed by user id.
// Missing users are absent from the map.
func (d *Directory) Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Profile, error) {
	users, err := d.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]Profile, len(users))
	for _, u := range users {
		out[u.ID] = u.ToProfile()
	}
	return out, nil
}
