package membership

import (
	"github.com/campuscollab/server/internal/module/project"
	"github.com/google/uuid"
)

// TeamResponse is the roster of a project.
type TeamResponse struct {
	ProjectID   uuid.UUID            `json:"project_id"`
	Members     []project.TeamMember `json:"members"`
	MemberCount int                  `json:"member_count"`
}

// MembershipResponse is the caller's relation to a project.
type MembershipResponse struct {
	ProjectID         uuid.UUID `json:"project_id"`
	IsOwner           bool      `json:"is_owner"`
	IsMember          bool      `json:"is_member"`
	ApplicationStatus *string   `json:"application_status"`
}

// ToResponse converts a Snapshot to MembershipResponse.
func (s *Snapshot) ToResponse() *MembershipResponse {
	resp := &MembershipResponse{
		ProjectID: s.ProjectID,
		IsOwner:   s.IsOwner,
		IsMember:  s.IsMember,
	}
	if s.ApplicationStatus != nil {
		status := string(*s.ApplicationStatus)
		resp.ApplicationStatus = &status
	}
	return resp
}
