package project

import (
	"strings"
	"time"

	"github.com/campuscollab/server/internal/shared/pagination"
	"github.com/google/uuid"
)

// CreateProjectRequest represents a request to create a project.
// Required fields are checked by the service so the error taxonomy applies.
type CreateProjectRequest struct {
	Title       string    `json:"title" binding:"max=200"`
	Description string    `json:"description" binding:"max=5000"`
	ThreadSlug  string    `json:"thread_slug"`
	Skills      SkillList `json:"skills" swaggertype:"array,string"`
	Dept        string    `json:"dept" binding:"max=100"`
	Year        string    `json:"year" binding:"max=20"`
	GithubURL   string    `json:"github_url" binding:"omitempty,url"`
}

// UpdateCollaborationRequest is a partial update; nil fields are left unchanged.
type UpdateCollaborationRequest struct {
	Goal          *string     `json:"goal"`
	ExecutionPlan *string     `json:"execution_plan"`
	Resources     *string     `json:"resources"`
	FileLinks     *[]FileLink `json:"file_links" binding:"omitempty,dive"`
}

// IsEmpty reports whether the request changes nothing.
func (r *UpdateCollaborationRequest) IsEmpty() bool {
	return r.Goal == nil && r.ExecutionPlan == nil && r.Resources == nil && r.FileLinks == nil
}

// ListProjectsQuery holds listing query parameters.
type ListProjectsQuery struct {
	pagination.Pagination
	Search string `form:"search"`
	Skills string `form:"skills"`
}

// SkillFilter returns the normalized skills filter.
func (q *ListProjectsQuery) SkillFilter() []string {
	if strings.TrimSpace(q.Skills) == "" {
		return nil
	}
	return ParseSkills(q.Skills)
}

// ProjectResponse represents a project in API responses.
type ProjectResponse struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	OwnerID       uuid.UUID  `json:"owner_id"`
	ThreadID      uuid.UUID  `json:"thread_id"`
	Skills        []string   `json:"skills"`
	Dept          string     `json:"dept,omitempty"`
	Year          string     `json:"year,omitempty"`
	GithubURL     string     `json:"github_url,omitempty"`
	Goal          string     `json:"goal"`
	ExecutionPlan string     `json:"execution_plan"`
	Resources     string     `json:"resources"`
	FileLinks     []FileLink `json:"file_links"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Current viewer's own application status, if any.
	MyApplication *string `json:"my_application,omitempty"`
}

// ToResponse converts a Project to ProjectResponse.
func (p *Project) ToResponse(myStatus string) *ProjectResponse {
	skills := []string(p.Skills)
	if skills == nil {
		skills = []string{}
	}
	links := []FileLink(p.FileLinks)
	if links == nil {
		links = []FileLink{}
	}

	resp := &ProjectResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		OwnerID:       p.OwnerID,
		ThreadID:      p.ThreadID,
		Skills:        skills,
		Dept:          p.Dept,
		Year:          p.Year,
		GithubURL:     p.GithubURL,
		Goal:          p.Goal,
		ExecutionPlan: p.ExecutionPlan,
		Resources:     p.Resources,
		FileLinks:     links,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if myStatus != "" {
		resp.MyApplication = &myStatus
	}
	return resp
}

// ProjectDetailResponse is a project with its team.
type ProjectDetailResponse struct {
	*ProjectResponse
	Team             []TeamMember `json:"team"`
	MemberCount      int          `json:"member_count"`
	ApplicationCount int64        `json:"application_count"`
}

// ToResponse converts a Detail to ProjectDetailResponse.
func (d *Detail) ToResponse() *ProjectDetailResponse {
	team := d.Team
	if team == nil {
		team = []TeamMember{}
	}
	return &ProjectDetailResponse{
		ProjectResponse:  d.Project.ToResponse(d.MyStatus),
		Team:             team,
		MemberCount:      len(team),
		ApplicationCount: d.ApplicationCount,
	}
}

// ProjectListResponse is a page of projects.
type ProjectListResponse struct {
	Projects []*ProjectResponse  `json:"projects"`
	Page     pagination.PageInfo `json:"page"`
}
