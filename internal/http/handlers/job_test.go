package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/jobs"
)

func newJobRouter(store *jobs.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/jobs/:id", NewJobHandler(store).GetJob)
	return r
}

func getPath(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetJob(t *testing.T) {
	store := jobs.NewStore(0)
	job := store.Create(domain.PlanRequest{Calories: 2000})
	r := newJobRouter(store)

	w := getPath(t, r, "/api/jobs/"+job.ID.String())
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Job struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"job"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, job.ID.String(), resp.Job.ID)
	assert.Equal(t, string(jobs.StatusQueued), resp.Job.Status)
}

func TestGetJobInvalidID(t *testing.T) {
	r := newJobRouter(jobs.NewStore(0))

	w := getPath(t, r, "/api/jobs/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_job_id")
}

func TestGetJobNotFound(t *testing.T) {
	r := newJobRouter(jobs.NewStore(0))

	w := getPath(t, r, "/api/jobs/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "job_not_found")
}
