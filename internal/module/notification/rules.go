package notification

import (
	"fmt"

	"github.com/campuscollab/server/internal/shared/events"
	"github.com/google/uuid"
)

// dashboardLink is the project management view.
func dashboardLink(projectID uuid.UUID) *string {
	link := fmt.Sprintf("/projects/%s/dashboard", projectID)
	return &link
}

// Compose builds the notification a lifecycle event produces, or nil when
// the event notifies nobody.
func Compose(event events.Event) *Notification {
	switch e := event.(type) {
	case *events.ApplicationSubmittedEvent:
		return &Notification{
			UserID:  e.OwnerID,
			Type:    TypeInfo,
			Message: fmt.Sprintf(`New application from %s for "%s"`, e.ApplicantName, e.ProjectTitle),
			Link:    dashboardLink(e.ProjectID),
		}

	case *events.ApplicationStatusChangedEvent:
		n := &Notification{
			UserID:  e.ApplicantID,
			Type:    TypeError,
			Message: fmt.Sprintf(`Your application for "%s" was %s`, e.ProjectTitle, e.To),
		}
		if e.To == "accepted" {
			n.Type = TypeSuccess
			n.Link = dashboardLink(e.ProjectID)
		}
		return n

	case *events.MemberLeftEvent:
		return &Notification{
			UserID:  e.OwnerID,
			Type:    TypeWarning,
			Message: fmt.Sprintf(`%s left your project "%s"`, e.MemberName, e.ProjectTitle),
			Link:    dashboardLink(e.ProjectID),
		}

	case *events.MemberRemovedEvent:
		return &Notification{
			UserID:  e.MemberID,
			Type:    TypeWarning,
			Message: fmt.Sprintf(`You were removed from "%s"`, e.ProjectTitle),
		}
	}
	return nil
}
