package application

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

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

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_SubmitApplication(t *testing.T) {
	t.Run("201 on success", func(t *testing.T) {
		f := setup()
		applicant := uuid.New()
		f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.users.On("DisplayName", mock.Anything, applicant).Return("Ada")

		w := serve(newTestRouter(f, applicant), http.MethodPost,
			"/api/v1/projects/"+f.project.ID.String()+"/apply", `{"message":"hi"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp ApplicationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, StatusPending, resp.Status)
		assert.Equal(t, "hi", resp.Message)
	})

	t.Run("empty body is allowed", func(t *testing.T) {
		f := setup()
		applicant := uuid.New()
		f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.users.On("DisplayName", mock.Anything, applicant).Return("Ada")

		w := serve(newTestRouter(f, applicant), http.MethodPost,
			"/api/v1/projects/"+f.project.ID.String()+"/apply", "")

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("409 on duplicate", func(t *testing.T) {
		f := setup()
		f.repo.On("Create", mock.Anything, mock.Anything).Return(ErrDuplicateApplication)

		w := serve(newTestRouter(f, uuid.New()), http.MethodPost,
			"/api/v1/projects/"+f.project.ID.String()+"/apply", `{}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp response.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "duplicate application", resp.Error)
		assert.Equal(t, "CONFLICT", resp.Code)
	})

	t.Run("400 when owner applies", func(t *testing.T) {
		f := setup()

		w := serve(newTestRouter(f, f.owner), http.MethodPost,
			"/api/v1/projects/"+f.project.ID.String()+"/apply", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("400 on malformed project id", func(t *testing.T) {
		f := setup()

		w := serve(newTestRouter(f, uuid.New()), http.MethodPost, "/api/v1/projects/nope/apply", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_SetApplicationStatus(t *testing.T) {
	t.Run("200 on accept", func(t *testing.T) {
		f := setup()
		app := f.application(uuid.New(), StatusPending)
		f.repo.On("GetByID", mock.Anything, app.ID).Return(app, nil)
		f.repo.On("CompareAndSetStatus", mock.Anything, app.ID, StatusPending, StatusAccepted).Return(nil)

		w := serve(newTestRouter(f, f.owner), http.MethodPatch,
			"/api/v1/projects/"+f.project.ID.String()+"/applications/"+app.ID.String(), `{"status":"accepted"}`)

		require.Equal(t, http.StatusOK, w.Code)
		var resp ApplicationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, StatusAccepted, resp.Status)
	})

	t.Run("403 for non-owner", func(t *testing.T) {
		f := setup()

		w := serve(newTestRouter(f, uuid.New()), http.MethodPatch,
			"/api/v1/projects/"+f.project.ID.String()+"/applications/"+uuid.NewString(), `{"status":"accepted"}`)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("400 without status", func(t *testing.T) {
		f := setup()

		w := serve(newTestRouter(f, f.owner), http.MethodPatch,
			"/api/v1/projects/"+f.project.ID.String()+"/applications/"+uuid.NewString(), `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Departures(t *testing.T) {
	t.Run("leave", func(t *testing.T) {
		f := setup()
		member := uuid.New()
		f.repo.On("DeleteAccepted", mock.Anything, f.project.ID, member).Return(true, nil)
		f.users.On("DisplayName", mock.Anything, member).Return("Grace")

		w := serve(newTestRouter(f, member), http.MethodDelete,
			"/api/v1/projects/"+f.project.ID.String()+"/leave", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("leave as non-member", func(t *testing.T) {
		f := setup()
		f.repo.On("DeleteAccepted", mock.Anything, f.project.ID, mock.Anything).Return(false, nil)

		w := serve(newTestRouter(f, uuid.New()), http.MethodDelete,
			"/api/v1/projects/"+f.project.ID.String()+"/leave", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("remove", func(t *testing.T) {
		f := setup()
		member := uuid.New()
		f.repo.On("DeleteAccepted", mock.Anything, f.project.ID, member).Return(true, nil)

		w := serve(newTestRouter(f, f.owner), http.MethodDelete,
			"/api/v1/projects/"+f.project.ID.String()+"/members/"+member.String(), "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("remove by non-owner", func(t *testing.T) {
		f := setup()

		w := serve(newTestRouter(f, uuid.New()), http.MethodDelete,
			"/api/v1/projects/"+f.project.ID.String()+"/members/"+uuid.NewString(), "")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandler_ListApplications(t *testing.T) {
	f := setup()
	applicant := uuid.New()
	f.repo.On("ListByProject", mock.Anything, f.project.ID).Return([]*Application{f.application(applicant, StatusPending)}, nil)
	f.users.On("Profiles", mock.Anything, []uuid.UUID{applicant}).Return(nil, assert.AnError)

	w := serve(newTestRouter(f, f.owner), http.MethodGet,
		"/api/v1/projects/"+f.project.ID.String()+"/applications", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "internal error", resp.Error)
}
