package project

import (
	"context"
	"errors"
	"strings"

	"github.com/campuscollab/server/internal/shared/pagination"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// CascadeFunc deletes rows owned by a project inside the deletion transaction.
type CascadeFunc func(tx *gorm.DB, projectID uuid.UUID) error

// Repository defines the interface for project data access.
type Repository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	// Delete removes the project and everything its cascades own in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *ListFilter, p *pagination.Pagination) ([]*Project, int64, error)
}

type repository struct {
	db       *gorm.DB
	cascades []CascadeFunc
}

// NewRepository creates a new project repository.
func NewRepository(db *gorm.DB, cascades ...CascadeFunc) Repository {
	return &repository{db: db, cascades: cascades}
}

func (r *repository) Create(ctx context.Context, project *Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	var project Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&Project{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, cascade := range r.cascades {
			if err := cascade(tx, id); err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", id).Delete(&Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		return nil
	})
}

func (r *repository) List(ctx context.Context, filter *ListFilter, p *pagination.Pagination) ([]*Project, int64, error) {
	if filter == nil {
		filter = &ListFilter{}
	}
	if filter.RestrictThreads && len(filter.ThreadIDs) == 0 {
		return []*Project{}, 0, nil
	}

	query := r.db.WithContext(ctx).Model(&Project{})

	if filter.RestrictThreads {
		query = query.Where("thread_id IN ?", filter.ThreadIDs)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR ? = ANY(skills)",
			pattern, pattern, search,
		)
	}

	if len(filter.Skills) > 0 {
		query = query.Where("skills && ?", pq.StringArray(filter.Skills))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []*Project
	err := query.
		Order("created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
