package membership

import (
	"testing"
	"time"

	"github.com/campuscollab/server/internal/module/application"
	"github.com/campuscollab/server/internal/module/project"
	"github.com/campuscollab/server/internal/module/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func app(userID uuid.UUID, status application.Status, createdAt time.Time) *application.Application {
	return &application.Application{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt.Add(time.Hour),
	}
}

func TestIsOwner(t *testing.T) {
	owner := uuid.New()
	assert.True(t, IsOwner(owner, owner))
	assert.False(t, IsOwner(uuid.New(), owner))
	assert.False(t, IsOwner(uuid.Nil, uuid.Nil))
}

func TestIsMember(t *testing.T) {
	owner, accepted, pending, rejected := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	now := time.Now()
	apps := []*application.Application{
		app(accepted, application.StatusAccepted, now),
		app(pending, application.StatusPending, now),
		app(rejected, application.StatusRejected, now),
	}

	assert.True(t, IsMember(owner, owner, nil), "owner is always a member")
	assert.True(t, IsMember(accepted, owner, apps))
	assert.False(t, IsMember(pending, owner, apps))
	assert.False(t, IsMember(rejected, owner, apps))
	assert.False(t, IsMember(uuid.New(), owner, apps))
}

func TestMyApplicationStatus(t *testing.T) {
	me := uuid.New()
	apps := []*application.Application{
		app(uuid.New(), application.StatusAccepted, time.Now()),
		app(me, application.StatusRejected, time.Now()),
	}

	status := MyApplicationStatus(me, apps)
	require.NotNil(t, status)
	assert.Equal(t, application.StatusRejected, *status)

	assert.Nil(t, MyApplicationStatus(uuid.New(), apps))
}

func TestTeam(t *testing.T) {
	owner, early, late, pending := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &project.Project{ID: uuid.New(), OwnerID: owner, CreatedAt: base.Add(-time.Hour)}

	apps := []*application.Application{
		app(late, application.StatusAccepted, base.Add(2*time.Minute)),
		app(pending, application.StatusPending, base),
		app(early, application.StatusAccepted, base.Add(time.Minute)),
	}
	profiles := map[uuid.UUID]user.Profile{
		owner: {ID: owner, Name: "Owner"},
		early: {ID: early, Name: "Early"},
	}

	team := Team(p, apps, profiles)

	require.Len(t, team, 3)
	assert.Equal(t, owner, team[0].ID)
	assert.Equal(t, project.RoleOwner, team[0].Role)
	assert.Equal(t, p.CreatedAt, team[0].JoinedAt)

	assert.Equal(t, "Early", team[1].Name)
	assert.Equal(t, project.RoleMember, team[1].Role)

	assert.Equal(t, late, team[2].ID)
	assert.Equal(t, user.UnknownName, team[2].Name)
}

func TestTeam_OwnerOnly(t *testing.T) {
	owner := uuid.New()
	p := &project.Project{ID: uuid.New(), OwnerID: owner}

	team := Team(p, nil, nil)

	require.Len(t, team, 1)
	assert.Equal(t, owner, team[0].ID)
	assert.Equal(t, project.RoleOwner, team[0].Role)
}
