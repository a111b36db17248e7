package membership

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campuscollab/server/internal/module/application"
	"github.com/campuscollab/server/internal/module/user"
	"github.com/campuscollab/server/internal/shared/middleware"
	"github.com/campuscollab/server/internal/shared/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(f *fixture, userID uuid.UUID) *gin.Engine {
	requireAuth := func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}

	router := gin.New()
	NewHandler(f.service, zap.NewNop()).RegisterRoutes(router.Group("/api/v1"), requireAuth)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandler_GetTeam(t *testing.T) {
	t.Run("member sees roster", func(t *testing.T) {
		f := setup()
		member := uuid.New()
		f.apps.On("ListAccepted", mock.Anything, f.project.ID).
			Return([]*application.Application{accepted(f.project.ID, member)}, nil)
		f.users.On("Profiles", mock.Anything, mock.Anything).Return(map[uuid.UUID]user.Profile{
			member: {ID: member, Name: "Ada", Skills: []string{"Go"}},
		}, nil)

		w := get(newTestRouter(f, member), "/api/v1/projects/"+f.project.ID.String()+"/team")

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			MemberCount int `json:"member_count"`
			Members     []struct {
				ID   uuid.UUID `json:"id"`
				Name string    `json:"name"`
				Role string    `json:"role"`
			} `json:"members"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.MemberCount)
		assert.Equal(t, "owner", resp.Members[0].Role)
		assert.Equal(t, f.owner, resp.Members[0].ID)
		assert.Equal(t, "Ada", resp.Members[1].Name)
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		f := setup()
		f.apps.On("ListAccepted", mock.Anything, f.project.ID).Return([]*application.Application{}, nil)

		w := get(newTestRouter(f, uuid.New()), "/api/v1/projects/"+f.project.ID.String()+"/team")

		assert.Equal(t, http.StatusForbidden, w.Code)
		var resp response.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "FORBIDDEN", resp.Code)
		f.users.AssertNotCalled(t, "Profiles", mock.Anything, mock.Anything)
	})

	t.Run("bad project id", func(t *testing.T) {
		f := setup()

		w := get(newTestRouter(f, uuid.New()), "/api/v1/projects/xyz/team")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetMembership(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		f := setup()
		f.apps.On("ListByUser", mock.Anything, f.owner, []uuid.UUID{f.project.ID}).Return([]*application.Application{}, nil)

		w := get(newTestRouter(f, f.owner), "/api/v1/projects/"+f.project.ID.String()+"/membership")

		require.Equal(t, http.StatusOK, w.Code)
		var resp MembershipResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.IsOwner)
		assert.True(t, resp.IsMember)
		assert.Nil(t, resp.ApplicationStatus)
	})

	t.Run("pending applicant", func(t *testing.T) {
		f := setup()
		me := uuid.New()
		f.apps.On("ListByUser", mock.Anything, me, []uuid.UUID{f.project.ID}).Return([]*application.Application{
			{UserID: me, ProjectID: f.project.ID, Status: application.StatusPending},
		}, nil)

		w := get(newTestRouter(f, me), "/api/v1/projects/"+f.project.ID.String()+"/membership")

		require.Equal(t, http.StatusOK, w.Code)
		var resp MembershipResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.IsMember)
		require.NotNil(t, resp.ApplicationStatus)
		assert.Equal(t, "pending", *resp.ApplicationStatus)
	})
}
