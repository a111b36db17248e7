package project

import (
	"time"

	"github.com/campuscollab/server/internal/module/user"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// FileLink is a named link to a shared resource.
type FileLink struct {
	Name string `json:"name" binding:"required,max=200"`
	URL  string `json:"url" binding:"required"`
}

// Project is a unit of work posted in a thread by its owner.
// The team is derived from applications and never stored here.
type Project struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text;not null"`
	OwnerID     uuid.UUID      `json:"owner_id" gorm:"type:uuid;not null;index"`
	ThreadID    uuid.UUID      `json:"thread_id" gorm:"type:uuid;not null;index"`
	Skills      pq.StringArray `json:"skills" gorm:"type:text[]"`
	Dept        string         `json:"dept,omitempty"`
	Year        string         `json:"year,omitempty"`
	GithubURL   string         `json:"github_url,omitempty" gorm:"column:github_url"`

	// Collaboration info, editable by the owner.
	Goal          string                       `json:"goal" gorm:"type:text"`
	ExecutionPlan string                       `json:"execution_plan" gorm:"type:text"`
	Resources     string                       `json:"resources" gorm:"type:text"`
	FileLinks     datatypes.JSONSlice[FileLink] `json:"file_links" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Project) TableName() string {
	return "projects"
}

// IsOwner reports whether userID owns the project.
func (p *Project) IsOwner(userID uuid.UUID) bool {
	return userID != uuid.Nil && p.OwnerID == userID
}

// Team roles.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// TeamMember is one entry of a project's derived team.
type TeamMember struct {
	user.Profile
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// Detail is a project with its derived membership data.
type Detail struct {
	Project          *Project
	Team             []TeamMember
	ApplicationCount int64
	// MyStatus is the viewer's own application status, empty when none.
	MyStatus string
}

// Listing is a page of projects annotated with the viewer's application statuses.
type Listing struct {
	Projects []*Project
	Statuses map[uuid.UUID]string
	Total    int64
}

// ListFilter narrows a project listing.
type ListFilter struct {
	// RestrictThreads limits results to ThreadIDs, even when ThreadIDs is empty.
	RestrictThreads bool
	ThreadIDs       []uuid.UUID
	Search          string
	Skills          []string
}
