package thread

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository resolves threads and thread membership.
type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*Thread, error)
	JoinedThreadIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new thread repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Thread, error) {
	var t Thread
	err := r.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) JoinedThreadIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&Member{}).
		Where("user_id = ?", userID).
		Pluck("thread_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
