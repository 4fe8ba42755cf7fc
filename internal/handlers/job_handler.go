package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medville/medjobs/internal/dtos"
	"github.com/medville/medjobs/internal/middleware"
	"github.com/medville/medjobs/internal/services"
)

type JobHandler struct {
	Jobs         *services.JobService
	Applications *services.ApplicationService
}

func NewJobHandler(jobs *services.JobService, applications *services.ApplicationService) *JobHandler {
	return &JobHandler{Jobs: jobs, Applications: applications}
}

// Create is the POST /datas/jobs endpoint
func (h *JobHandler) Create(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	job, err := h.Jobs.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) GetAll(c *gin.Context) {
	jobs, err := h.Jobs.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "jobId", "Invalid job ID")
	if !ok {
		return
	}
	job, err := h.Jobs.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "jobId", "Invalid job ID")
	if !ok {
		return
	}
	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	job, err := h.Jobs.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "jobId", "Invalid job ID")
	if !ok {
		return
	}
	if err := h.Jobs.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully", "id": id})
}

// Apply is the POST /datas/jobs/:jobId/apply endpoint. The route is guarded
// by the auth middleware and the token's user must be the applying user.
func (h *JobHandler) Apply(c *gin.Context) {
	jobID, ok := parseIDParam(c, "jobId", "Invalid job ID")
	if !ok {
		return
	}
	var req dtos.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if middleware.AuthUserID(c) != req.UserID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token does not match user"})
		return
	}
	result, err := h.Applications.Apply(c.Request.Context(), jobID, req.UserID, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Application successful",
		"job":         result.Job,
		"application": result.Application,
	})
}

// FindByUser is the GET /datas/jobs/user/:userId endpoint, also guarded.
func (h *JobHandler) FindByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "Invalid user ID")
	if !ok {
		return
	}
	if middleware.AuthUserID(c) != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token does not match user"})
		return
	}
	applications, err := h.Applications.FindByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

func (h *JobHandler) FindByCity(c *gin.Context) {
	cityID, ok := parseIDParam(c, "cityId", "Invalid city ID")
	if !ok {
		return
	}
	jobs, err := h.Jobs.FindByCity(c.Request.Context(), cityID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// AuditOrphans reports applicants with no ledger row for reconciliation.
func (h *JobHandler) AuditOrphans(c *gin.Context) {
	orphans, err := h.Applications.AuditOrphans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orphans": orphans, "count": len(orphans)})
}
