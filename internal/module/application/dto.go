package application

import (
	"time"

	"github.com/campuscollab/server/internal/module/user"
	"github.com/google/uuid"
)

// SubmitRequest represents a request to join a project.
type SubmitRequest struct {
	Message string `json:"message" binding:"max=2000"`
}

// SetStatusRequest represents an owner decision on an application.
type SetStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

// ApplicationResponse represents an application in API responses.
type ApplicationResponse struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	ProjectID uuid.UUID     `json:"project_id"`
	Message   string        `json:"message"`
	Status    Status        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Applicant *user.Profile `json:"applicant,omitempty"`
}

// ToResponse converts an Application to ApplicationResponse.
func (a *Application) ToResponse() *ApplicationResponse {
	return &ApplicationResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		ProjectID: a.ProjectID,
		Message:   a.Message,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ToResponse converts a WithApplicant to ApplicationResponse.
func (a *WithApplicant) ToResponse() *ApplicationResponse {
	resp := a.Application.ToResponse()
	applicant := a.Applicant
	resp.Applicant = &applicant
	return resp
}
