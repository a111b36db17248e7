// Package membership derives project teams from accepted applications.
//
// Nothing here stores membership. A user is on a project's team when they own
// the project or hold an accepted application for it; every answer is
// computed from those two facts.
package membership

import (
	"sort"

	"github.com/campuscollab/server/internal/module/application"
	"github.com/campuscollab/server/internal/module/project"
	"github.com/campuscollab/server/internal/module/user"
	"github.com/google/uuid"
)

// IsOwner reports whether userID is the project owner.
func IsOwner(userID, ownerID uuid.UUID) bool {
	return userID != uuid.Nil && userID == ownerID
}

// IsMember reports whether userID owns the project or holds an accepted
// application among apps.
func IsMember(userID, ownerID uuid.UUID, apps []*application.Application) bool {
	if IsOwner(userID, ownerID) {
		return true
	}
	for _, a := range apps {
		if a.UserID == userID && a.IsAccepted() {
			return true
		}
	}
	return false
}

// MyApplicationStatus returns the status of userID's application among apps,
// or nil when the user has not applied.
func MyApplicationStatus(userID uuid.UUID, apps []*application.Application) *application.Status {
	for _, a := range apps {
		if a.UserID == userID {
			status := a.Status
			return &status
		}
	}
	return nil
}

// Team returns the owner followed by accepted applicants ordered by when
// they applied. Applications that are not accepted are ignored. Profiles
// missing from profiles are rendered with user.UnknownName.
func Team(p *project.Project, apps []*application.Application, profiles map[uuid.UUID]user.Profile) []project.TeamMember {
	accepted := make([]*application.Application, 0, len(apps))
	for _, a := range apps {
		if a.IsAccepted() && a.UserID != p.OwnerID {
			accepted = append(accepted, a)
		}
	}
	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].CreatedAt.Before(accepted[j].CreatedAt)
	})

	team := make([]project.TeamMember, 0, len(accepted)+1)
	team = append(team, project.TeamMember{
		Profile:  profileOf(p.OwnerID, profiles),
		Role:     project.RoleOwner,
		JoinedAt: p.CreatedAt,
	})
	for _, a := range accepted {
		team = append(team, project.TeamMember{
			Profile:  profileOf(a.UserID, profiles),
			Role:     project.RoleMember,
			JoinedAt: a.UpdatedAt,
		})
	}
	return team
}

// memberIDs returns the owner followed by every accepted applicant.
func memberIDs(ownerID uuid.UUID, apps []*application.Application) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(apps)+1)
	ids = append(ids, ownerID)
	for _, a := range apps {
		if a.IsAccepted() && a.UserID != ownerID {
			ids = append(ids, a.UserID)
		}
	}
	return ids
}

func profileOf(id uuid.UUID, profiles map[uuid.UUID]user.Profile) user.Profile {
	if p, ok := profiles[id]; ok {
		return p
	}
	return user.Profile{ID: id, Name: user.UnknownName, Skills: []string{}}
}
