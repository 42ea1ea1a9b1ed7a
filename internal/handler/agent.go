package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/LouisDeconinck/ai-real-estate-agent/internal/model"
	"github.com/LouisDeconinck/ai-real-estate-agent/internal/repository"
	"github.com/LouisDeconinck/ai-real-estate-agent/internal/service"

	"github.com/gin-gonic/gin"
)

// AgentHandler handles agent pipeline HTTP requests
type AgentHandler struct {
	agentService *service.AgentService
	repo         *repository.PostgresRepository // nil when persistence is disabled
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(agentService *service.AgentService, repo *repository.PostgresRepository) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
		repo:         repo,
	}
}

// Run handles POST /api/v1/agent/runs
func (h *AgentHandler) Run(c *gin.Context) {
	var req model.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.agentService.Run(c.Request.Context(), req.Search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent run failed: " + err.Error()})
		return
	}

	// Persist the combined result; a storage failure does not discard the
	// response already produced for the caller
	if h.repo != nil {
		id, err := h.repo.SaveRun(c.Request.Context(), result)
		if err != nil {
			log.Printf("Warning: failed to persist run: %v", err)
		} else {
			result.ID = id
		}
	}

	c.JSON(http.StatusOK, result)
}

// GetRun handles GET /api/v1/runs/:id
func (h *AgentHandler) GetRun(c *gin.Context) {
	record, ok := h.lookupRun(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetReport handles GET /api/v1/runs/:id/report, serving the rendered
// markdown document
func (h *AgentHandler) GetReport(c *gin.Context) {
	record, ok := h.lookupRun(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(record.Report))
}

// ListRuns handles GET /api/v1/runs
func (h *AgentHandler) ListRuns(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Persistence is not configured"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	records, err := h.repo.ListRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list runs: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": records})
}

// lookupRun resolves the :id parameter into a persisted run, writing the
// error response itself on failure
func (h *AgentHandler) lookupRun(c *gin.Context) (*model.RunRecord, bool) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Persistence is not configured"})
		return nil, false
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid run ID"})
		return nil, false
	}

	record, err := h.repo.GetRun(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get run: " + err.Error()})
		return nil, false
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Run not found"})
		return nil, false
	}

	return record, true
}
