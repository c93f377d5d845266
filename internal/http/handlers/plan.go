package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/http/response"
	"github.com/platewise/platewise-backend/internal/jobs"
	"github.com/platewise/platewise-backend/internal/services"
)

type PlanHandler struct {
	planner services.PlannerService
	worker  *jobs.Worker
}

func NewPlanHandler(planner services.PlannerService, worker *jobs.Worker) *PlanHandler {
	return &PlanHandler{planner: planner, worker: worker}
}

// POST /api/plans
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req domain.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}

	resp, err := h.planner.Generate(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, services.AsAPIError(err))
		return
	}
	response.RespondOK(c, resp)
}

// POST /api/plans/async
func (h *PlanHandler) CreatePlanAsync(c *gin.Context) {
	var req domain.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}

	id, err := h.worker.Enqueue(req)
	if err != nil {
		response.RespondError(c, http.StatusServiceUnavailable, "queue_full", err)
		return
	}
	response.RespondAccepted(c, gin.H{"job_id": id})
}
