package events

import "github.com/google/uuid"

// Lifecycle event types. They live here rather than in the owning modules to
// keep project, application and notification free of cyclic imports.
const (
	ApplicationSubmittedType     = "ApplicationSubmitted"
	ApplicationStatusChangedType = "ApplicationStatusChanged"
	MemberLeftType               = "MemberLeft"
	MemberRemovedType            = "MemberRemoved"
	ProjectDeletedType           = "ProjectDeleted"
)

const (
	aggregateApplication = "Application"
	aggregateProject     = "Project"
)

// LifecycleTypes lists every membership lifecycle event type.
func LifecycleTypes() []string {
	return []string{
		ApplicationSubmittedType,
		ApplicationStatusChangedType,
		MemberLeftType,
		MemberRemovedType,
		ProjectDeletedType,
	}
}

// ProjectScoped is implemented by events that concern a single project.
type ProjectScoped interface {
	Event
	ScopeProjectID() uuid.UUID
}

// ApplicationSubmittedEvent is published after a new pending application is stored.
type ApplicationSubmittedEvent struct {
	BaseEvent
	ApplicationID uuid.UUID `json:"application_id"`
	ProjectID     uuid.UUID `json:"project_id"`
	ProjectTitle  string    `json:"project_title"`
	OwnerID       uuid.UUID `json:"owner_id"`
	ApplicantID   uuid.UUID `json:"applicant_id"`
	ApplicantName string    `json:"applicant_name"`
}

// NewApplicationSubmittedEvent creates an ApplicationSubmittedEvent.
func NewApplicationSubmittedEvent(applicationID, projectID uuid.UUID, projectTitle string, ownerID, applicantID uuid.UUID, applicantName string) *ApplicationSubmittedEvent {
	return &ApplicationSubmittedEvent{
		BaseEvent:     NewBaseEvent(ApplicationSubmittedType, applicationID, aggregateApplication),
		ApplicationID: applicationID,
		ProjectID:     projectID,
		ProjectTitle:  projectTitle,
		OwnerID:       ownerID,
		ApplicantID:   applicantID,
		ApplicantName: applicantName,
	}
}

func (e *ApplicationSubmittedEvent) ScopeProjectID() uuid.UUID { return e.ProjectID }

// ApplicationStatusChangedEvent is published after an owner decision is stored.
// From and To carry the application status names.
type ApplicationStatusChangedEvent struct {
	BaseEvent
	ApplicationID uuid.UUID `json:"application_id"`
	ProjectID     uuid.UUID `json:"project_id"`
	ProjectTitle  string    `json:"project_title"`
	OwnerID       uuid.UUID `json:"owner_id"`
	ApplicantID   uuid.UUID `json:"applicant_id"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	Transition    string    `json:"transition"`
}

// NewApplicationStatusChangedEvent creates an ApplicationStatusChangedEvent.
func NewApplicationStatusChangedEvent(applicationID, projectID uuid.UUID, projectTitle string, ownerID, applicantID uuid.UUID, from, to, transition string) *ApplicationStatusChangedEvent {
	return &ApplicationStatusChangedEvent{
		BaseEvent:     NewBaseEvent(ApplicationStatusChangedType, applicationID, aggregateApplication),
		ApplicationID: applicationID,
		ProjectID:     projectID,
		ProjectTitle:  projectTitle,
		OwnerID:       ownerID,
		ApplicantID:   applicantID,
		From:          from,
		To:            to,
		Transition:    transition,
	}
}

func (e *ApplicationStatusChangedEvent) ScopeProjectID() uuid.UUID { return e.ProjectID }

// MemberLeftEvent is published after a member voluntarily leaves a project.
type MemberLeftEvent struct {
	BaseEvent
	ProjectID    uuid.UUID `json:"project_id"`
	ProjectTitle string    `json:"project_title"`
	OwnerID      uuid.UUID `json:"owner_id"`
	MemberID     uuid.UUID `json:"member_id"`
	MemberName   string    `json:"member_name"`
}

// NewMemberLeftEvent creates a MemberLeftEvent.
func NewMemberLeftEvent(projectID uuid.UUID, projectTitle string, ownerID, memberID uuid.UUID, memberName string) *MemberLeftEvent {
	return &MemberLeftEvent{
		BaseEvent:    NewBaseEvent(MemberLeftType, projectID, aggregateProject),
		ProjectID:    projectID,
		ProjectTitle: projectTitle,
		OwnerID:      ownerID,
		MemberID:     memberID,
		MemberName:   memberName,
	}
}

func (e *MemberLeftEvent) ScopeProjectID() uuid.UUID { return e.ProjectID }

// MemberRemovedEvent is published after the owner removes a member.
type MemberRemovedEvent struct {
	BaseEvent
	ProjectID    uuid.UUID `json:"project_id"`
	ProjectTitle string    `json:"project_title"`
	OwnerID      uuid.UUID `json:"owner_id"`
	MemberID     uuid.UUID `json:"member_id"`
}

// NewMemberRemovedEvent creates a MemberRemovedEvent.
func NewMemberRemovedEvent(projectID uuid.UUID, projectTitle string, ownerID, memberID uuid.UUID) *MemberRemovedEvent {
	return &MemberRemovedEvent{
		BaseEvent:    NewBaseEvent(MemberRemovedType, projectID, aggregateProject),
		ProjectID:    projectID,
		ProjectTitle: projectTitle,
		OwnerID:      ownerID,
		MemberID:     memberID,
	}
}

func (e *MemberRemovedEvent) ScopeProjectID() uuid.UUID { return e.ProjectID }

// ProjectDeletedEvent is published after a project and its applications are deleted.
type ProjectDeletedEvent struct {
	BaseEvent
	ProjectID    uuid.UUID `json:"project_id"`
	ProjectTitle string    `json:"project_title"`
	OwnerID      uuid.UUID `json:"owner_id"`
}

// NewProjectDeletedEvent creates a ProjectDeletedEvent.
func NewProjectDeletedEvent(projectID uuid.UUID, projectTitle string, ownerID uuid.UUID) *ProjectDeletedEvent {
	return &ProjectDeletedEvent{
		BaseEvent:    NewBaseEvent(ProjectDeletedType, projectID, aggregateProject),
		ProjectID:    projectID,
		ProjectTitle: projectTitle,
		OwnerID:      ownerID,
	}
}

func (e *ProjectDeletedEvent) ScopeProjectID() uuid.UUID { return e.ProjectID }
