package thread

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Registry is the read-only view of threads used by the project module.
type Registry struct {
	repo Repository
}

// NewRegistry creates a new thread registry.
func NewRegistry(repo Repository) *Registry {
	return &Registry{repo: repo}
}

// ResolveSlug returns the id of the thread with the given slug.
func (r *Registry) ResolveSlug(ctx context.Context, slug string) (uuid.UUID, error) {
	if strings.TrimSpace(slug) == "" {
		return uuid.Nil, ErrThreadNotFound
	}
	t, err := r.repo.GetBySlug(ctx, slug)
	if err != nil {
		return uuid.Nil, err
	}
	return t.ID, nil
}

// JoinedThreadIDs returns the threads userID has joined.
func (r *Registry) JoinedThreadIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := r.repo.JoinedThreadIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("joined threads: %w", err)
	}
	return ids, nil
}
