// Package handlers contains the gin HTTP handlers. They translate requests
// into service calls and map domain errors onto HTTP statuses through the
// response package.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wedkarski/competitions-api/internal/logger"
	"github.com/wedkarski/competitions-api/internal/middleware"
	"github.com/wedkarski/competitions-api/internal/response"
	"github.com/wedkarski/competitions-api/internal/services"
)

type CompetitionHandler struct {
	competitions *services.CompetitionService
}

func NewCompetitionHandler(competitions *services.CompetitionService) *CompetitionHandler {
	return &CompetitionHandler{competitions: competitions}
}

// CreateCompetition handles POST /api/competitions
func (h *CompetitionHandler) CreateCompetition(c *gin.Context) {
	var req services.CreateCompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "invalid request body: "+err.Error())
		return
	}

	userID, userName := middleware.CurrentUser(c)
	comp, err := h.competitions.CreateCompetition(userID, userName, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	logger.Handler("competition").Info("Competition created", "competition_id", comp.ID)
	response.SuccessResponse(c, http.StatusCreated, "Competition created successfully", comp)
}

// GetMyCompetitions handles GET /api/competitions
func (h *CompetitionHandler) GetMyCompetitions(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)
	comps, err := h.competitions.GetMyCompetitions(userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Competitions retrieved successfully", comps)
}

// GetCompetition handles GET /api/competitions/:id
func (h *CompetitionHandler) GetCompetition(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	comp, err := h.competitions.GetCompetition(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Competition retrieved successfully", comp)
}

// UpdateCompetition handles PUT /api/competitions/:id
func (h *CompetitionHandler) UpdateCompetition(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "invalid request body: "+err.Error())
		return
	}

	userID, _ := middleware.CurrentUser(c)
	comp, err := h.competitions.UpdateCompetition(id, userID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Competition updated successfully", comp)
}

// DeleteCompetition handles DELETE /api/competitions/:id
func (h *CompetitionHandler) DeleteCompetition(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUser(c)
	if err := h.competitions.DeleteCompetition(id, userID); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Competition deleted successfully", nil)
}

// ApplyLifecycleAction handles POST /api/competitions/:id/lifecycle
func (h *CompetitionHandler) ApplyLifecycleAction(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.LifecycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "invalid request body: "+err.Error())
		return
	}

	userID, _ := middleware.CurrentUser(c)
	comp, err := h.competitions.ApplyLifecycleAction(id, userID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	logger.Handler("competition").Info("Lifecycle action applied",
		"competition_id", id, "action", req.Action, "status", comp.Status)
	response.SuccessResponse(c, http.StatusOK, "Competition status updated successfully", comp)
}

// pathUUID parses a UUID path parameter, writing a bad request on failure
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequestError(c, name+" must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
