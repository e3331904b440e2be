package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wedkarski/competitions-api/internal/middleware"
	"github.com/wedkarski/competitions-api/internal/response"
	"github.com/wedkarski/competitions-api/internal/services"
)

type ParticipantHandler struct {
	competitions *services.CompetitionService
}

func NewParticipantHandler(competitions *services.CompetitionService) *ParticipantHandler {
	return &ParticipantHandler{competitions: competitions}
}

// AddParticipant handles POST /api/competitions/:id/participants
//
// Without a body user_id the caller registers themselves; with one, the
// organizer is adding someone (or a guest when user_id stays empty and
// added_by_organizer is set).
func (h *ParticipantHandler) AddParticipant(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req struct {
		SelfRegister bool    `json:"self_register"`
		UserID       *int64  `json:"user_id"`
		Name         string  `json:"name"`
		Role         string  `json:"role"`
		GuestCode    *string `json:"guest_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "invalid request body: "+err.Error())
		return
	}

	userID, userName := middleware.CurrentUser(c)

	if req.SelfRegister {
		p, err := h.competitions.JoinCompetition(id, userID, userName)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.SuccessResponse(c, http.StatusCreated, "Registration received, awaiting approval", p)
		return
	}

	p, err := h.competitions.AddParticipant(id, userID, services.AddParticipantRequest{
		UserID:    req.UserID,
		Name:      req.Name,
		Role:      req.Role,
		GuestCode: req.GuestCode,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusCreated, "Participant added successfully", p)
}

// DecideParticipant handles POST /api/competitions/:id/participants/:pid/approval
func (h *ParticipantHandler) DecideParticipant(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	pid, ok := pathUUID(c, "pid")
	if !ok {
		return
	}

	var req struct {
		Decision string `json:"decision" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "invalid request body: "+err.Error())
		return
	}
	if req.Decision != "approve" && req.Decision != "reject" {
		response.BadRequestError(c, "decision must be approve or reject")
		return
	}

	userID, _ := middleware.CurrentUser(c)
	comp, err := h.competitions.DecideParticipant(id, userID, pid, req.Decision == "approve")
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Registration decision applied", comp.FindParticipant(pid))
}

// RemoveParticipant handles DELETE /api/competitions/:id/participants/:pid
func (h *ParticipantHandler) RemoveParticipant(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	pid, ok := pathUUID(c, "pid")
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUser(c)
	if err := h.competitions.RemoveParticipant(id, userID, pid); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Participant removed successfully", nil)
}

// AssignSector handles PUT /api/competitions/:id/participants/:pid/assignment
func (h *ParticipantHandler) AssignSector(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	pid, ok := pathUUID(c, "pid")
	if !ok {
		return
	}

	var req services.AssignSectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "invalid request body: "+err.Error())
		return
	}

	userID, _ := middleware.CurrentUser(c)
	p, err := h.competitions.AssignSector(id, userID, pid, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Sector assignment updated", p)
}

// AssignJudge handles POST /api/competitions/:id/judges
func (h *ParticipantHandler) AssignJudge(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.AssignJudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "invalid request body: "+err.Error())
		return
	}

	userID, _ := middleware.CurrentUser(c)
	p, err := h.competitions.AssignJudge(id, userID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusCreated, "Judge assigned successfully", p)
}

// RemoveJudge handles DELETE /api/competitions/:id/judges/:pid
func (h *ParticipantHandler) RemoveJudge(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	pid, ok := pathUUID(c, "pid")
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUser(c)
	if err := h.competitions.RemoveJudge(id, userID, pid); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Judge removed successfully", nil)
}
