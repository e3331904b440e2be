package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wedkarski/competitions-api/internal/response"
	"github.com/wedkarski/competitions-api/internal/services"
)

type ResultsHandler struct {
	results *services.ResultsService
}

func NewResultsHandler(results *services.ResultsService) *ResultsHandler {
	return &ResultsHandler{results: results}
}

// GetResults handles GET /api/competitions/:id/results
func (h *ResultsHandler) GetResults(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.results.GetResults(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Results computed successfully", view)
}

// GetPublicResults handles GET /api/results/:token without authentication
func (h *ResultsHandler) GetPublicResults(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if len(token) < 10 || len(token) > 64 {
		// Un token fuera de rango no puede existir, responde igual que un desconocido
		response.SuccessResponse(c, http.StatusOK, "Results not available", nil)
		return
	}

	view, err := h.results.GetResultsByToken(token)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if view == nil {
		response.SuccessResponse(c, http.StatusOK, "Results not available", nil)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Results computed successfully", view)
}
