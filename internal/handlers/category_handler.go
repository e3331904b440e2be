package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wedkarski/competitions-api/internal/middleware"
	"github.com/wedkarski/competitions-api/internal/response"
	"github.com/wedkarski/competitions-api/internal/services"
)

type CategoryHandler struct {
	competitions *services.CompetitionService
}

func NewCategoryHandler(competitions *services.CompetitionService) *CategoryHandler {
	return &CategoryHandler{competitions: competitions}
}

// AddCategory handles POST /api/competitions/:id/categories
func (h *CategoryHandler) AddCategory(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "invalid request body: "+err.Error())
		return
	}

	userID, _ := middleware.CurrentUser(c)
	cat, err := h.competitions.AddCategory(id, userID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusCreated, "Category added successfully", cat)
}

// UpdateCategory handles PUT /api/competitions/:id/categories/:cid
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	cid, ok := pathUUID(c, "cid")
	if !ok {
		return
	}

	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "invalid request body: "+err.Error())
		return
	}

	userID, _ := middleware.CurrentUser(c)
	comp, err := h.competitions.UpdateCategory(id, userID, cid, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Category updated successfully", comp)
}

// RemoveCategory handles DELETE /api/competitions/:id/categories/:cid
func (h *CategoryHandler) RemoveCategory(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	cid, ok := pathUUID(c, "cid")
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUser(c)
	if err := h.competitions.RemoveCategory(id, userID, cid); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Category removed successfully", nil)
}
