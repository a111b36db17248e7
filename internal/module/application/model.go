package application

import (
	"time"

	"github.com/campuscollab/server/internal/module/project"
	"github.com/campuscollab/server/internal/module/user"
	"github.com/google/uuid"
)

// Status represents the status of an application.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// IsValid checks if the status is a known application status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// IsDecision reports whether s is a status an owner may set.
func (s Status) IsDecision() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Transition names an owner decision on an application.
type Transition string

const (
	TransitionAccept     Transition = "accept"
	TransitionReject     Transition = "reject"
	TransitionReconsider Transition = "reconsider"
)

// transitions lists every permitted status change. An accepted application
// is never demoted; the owner removes the member instead.
var transitions = map[Status]map[Status]Transition{
	StatusPending: {
		StatusAccepted: TransitionAccept,
		StatusRejected: TransitionReject,
	},
	StatusRejected: {
		StatusAccepted: TransitionReconsider,
	},
}

// NextTransition returns the named transition from one status to another.
// Callers handle from == to before asking.
func NextTransition(from, to Status) (Transition, error) {
	if !to.IsDecision() {
		return "", ErrInvalidStatus
	}
	t, ok := transitions[from][to]
	if !ok {
		return "", ErrInvalidTransition
	}
	return t, nil
}

// Application is a request by a user to join a project's team.
// At most one row exists per (user, project); departure deletes it.
type Application struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_application_user_project,priority:1"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_application_user_project,priority:2;index"`
	Message   string    `json:"message" gorm:"type:text"`
	Status    Status    `json:"status" gorm:"type:varchar(16);not null;default:pending;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Project *project.Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the database table name.
func (Application) TableName() string {
	return "applications"
}

// IsAccepted reports whether the applicant is on the team.
func (a *Application) IsAccepted() bool {
	return a.Status == StatusAccepted
}

// WithApplicant is an application together with the applicant's public profile.
type WithApplicant struct {
	*Application
	Applicant user.Profile `json:"applicant"`
}
