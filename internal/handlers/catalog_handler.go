package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wedkarski/competitions-api/internal/response"
	"github.com/wedkarski/competitions-api/internal/services"
)

type CatalogHandler struct {
	catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListDefinitions handles GET /api/catalog/definitions
func (h *CatalogHandler) ListDefinitions(c *gin.Context) {
	definitions, err := h.catalog.ListDefinitions()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Category definitions retrieved successfully", definitions)
}

// GetDefinition handles GET /api/catalog/definitions/:id
func (h *CatalogHandler) GetDefinition(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	definition, err := h.catalog.GetDefinition(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Category definition retrieved successfully", definition)
}

// CreateDefinition handles POST /api/catalog/definitions
func (h *CatalogHandler) CreateDefinition(c *gin.Context) {
	var req services.CreateDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "invalid request body: "+err.Error())
		return
	}

	definition, err := h.catalog.CreateDefinition(req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusCreated, "Category definition created successfully", definition)
}

// ListSpecies handles GET /api/catalog/species
func (h *CatalogHandler) ListSpecies(c *gin.Context) {
	species, err := h.catalog.ListSpecies()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Fish species retrieved successfully", species)
}

// ListFisheries handles GET /api/catalog/fisheries
func (h *CatalogHandler) ListFisheries(c *gin.Context) {
	fisheries, err := h.catalog.ListFisheries()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Fisheries retrieved successfully", fisheries)
}

// GetFishery handles GET /api/catalog/fisheries/:id
func (h *CatalogHandler) GetFishery(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	fishery, err := h.catalog.GetFishery(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Fishery retrieved successfully", fishery)
}
