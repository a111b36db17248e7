package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for application data access.
type Repository interface {
	// Create inserts a pending application. The unique index on
	// (user_id, project_id) is the only duplicate check.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*Application, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Application, error)
	ListAccepted(ctx context.Context, projectID uuid.UUID) ([]*Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID, projectIDs []uuid.UUID) ([]*Application, error)
	CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
	// CompareAndSetStatus moves id from one status to another in a single statement.
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to Status) error
	// DeleteAccepted deletes the accepted application of userID and reports whether a row went away.
	DeleteAccepted(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new application repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, app *Application) error {
	err := r.db.WithContext(ctx).Omit("Project").Create(app).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateApplication
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	var app Application
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *repository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Application, error) {
	var apps []*Application
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *repository) ListAccepted(ctx context.Context, projectID uuid.UUID) ([]*Application, error) {
	var apps []*Application
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND status = ?", projectID, StatusAccepted).
		Order("created_at ASC").
		Find(&apps).Error
	return apps, err
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, projectIDs []uuid.UUID) ([]*Application, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var apps []*Application
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id IN ?", userID, projectIDs).
		Find(&apps).Error
	return apps, err
}

func (r *repository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Application{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func (r *repository) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to Status) error {
	result := r.db.WithContext(ctx).
		Model(&Application{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (r *repository) DeleteAccepted(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ? AND status = ?", projectID, userID, StatusAccepted).
		Delete(&Application{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteByProject removes all applications of a project inside the
// project deletion transaction.
func DeleteByProject(tx *gorm.DB, projectID uuid.UUID) error {
	return tx.Where("project_id = ?", projectID).Delete(&Application{}).Error
}
