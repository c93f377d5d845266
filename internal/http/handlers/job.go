package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platewise/platewise-backend/internal/http/response"
	"github.com/platewise/platewise-backend/internal/jobs"
)

type JobHandler struct {
	store *jobs.Store
}

func NewJobHandler(store *jobs.Store) *JobHandler {
	return &JobHandler{store: store}
}

// GET /api/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_job_id", err)
		return
	}
	job, ok := h.store.Get(jobID)
	if !ok {
		response.RespondError(c, http.StatusNotFound, "job_not_found", fmt.Errorf("job %s not found", jobID))
		return
	}
	response.RespondOK(c, gin.H{"job": job})
}
