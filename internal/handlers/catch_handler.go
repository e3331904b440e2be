package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wedkarski/competitions-api/internal/logger"
	"github.com/wedkarski/competitions-api/internal/middleware"
	"github.com/wedkarski/competitions-api/internal/response"
	"github.com/wedkarski/competitions-api/internal/services"
)

type CatchHandler struct {
	competitions *services.CompetitionService
}

func NewCatchHandler(competitions *services.CompetitionService) *CatchHandler {
	return &CatchHandler{competitions: competitions}
}

// RecordCatch handles POST /api/competitions/:id/catches
func (h *CatchHandler) RecordCatch(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.RecordCatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "invalid request body: "+err.Error())
		return
	}

	userID, _ := middleware.CurrentUser(c)
	record, err := h.competitions.RecordCatch(id, userID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	logger.Handler("catch").Info("Catch recorded", "competition_id", id, "catch_id", record.ID)
	response.SuccessResponse(c, http.StatusCreated, "Catch recorded successfully", record)
}

// RemoveCatch handles DELETE /api/competitions/:id/catches/:catchID
func (h *CatchHandler) RemoveCatch(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	catchID, ok := pathUUID(c, "catchID")
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUser(c)
	if err := h.competitions.RemoveCatch(id, userID, catchID); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Catch removed successfully", nil)
}
