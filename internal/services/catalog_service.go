package services

import (
	"github.com/google/uuid"

	"github.com/wedkarski/competitions-api/internal/apperrors"
	"github.com/wedkarski/competitions-api/internal/domain/catalog"
	"github.com/wedkarski/competitions-api/internal/storage"
)

// CatalogService sirve el catálogo compartido: definiciones de categorías,
// especies y pesquerías
type CatalogService struct {
	definitions storage.DefinitionRepository
	species     storage.SpeciesRepository
	fisheries   storage.FisheryRepository
}

// NewCatalogService crea una nueva instancia del servicio de catálogo
func NewCatalogService(definitions storage.DefinitionRepository, species storage.SpeciesRepository, fisheries storage.FisheryRepository) *CatalogService {
	return &CatalogService{
		definitions: definitions,
		species:     species,
		fisheries:   fisheries,
	}
}

// ListDefinitions lista todas las definiciones de categorías
func (s *CatalogService) ListDefinitions() ([]*catalog.CategoryDefinition, error) {
	return s.definitions.GetAll()
}

// GetDefinition obtiene una definición por su ID
func (s *CatalogService) GetDefinition(id uuid.UUID) (*catalog.CategoryDefinition, error) {
	return s.definitions.GetByID(id)
}

// CreateDefinitionRequest representa el alta de una definición reutilizable
type CreateDefinitionRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	Logic           string `json:"calculation_logic" binding:"required"`
	Metric          string `json:"metric" binding:"required"`
	EntityType      string `json:"entity_type" binding:"required"`
	Type            string `json:"category_type" binding:"required"`
	SpeciesSpecific bool   `json:"species_specific"`
	ManualWinner    bool   `json:"manual_winner"`
}

// CreateDefinition añade una definición reutilizable al catálogo
func (s *CatalogService) CreateDefinition(req CreateDefinitionRequest) (*catalog.CategoryDefinition, error) {
	logic, ok := catalog.CalculationLogicFromString(req.Logic)
	if !ok {
		return nil, apperrors.Validationf("invalid calculation logic: %s", req.Logic)
	}
	metric, ok := catalog.MetricFromString(req.Metric)
	if !ok {
		return nil, apperrors.Validationf("invalid metric: %s", req.Metric)
	}
	entityType, ok := catalog.EntityTypeFromString(req.EntityType)
	if !ok {
		return nil, apperrors.Validationf("invalid entity type: %s", req.EntityType)
	}
	categoryType, ok := catalog.CategoryTypeFromString(req.Type)
	if !ok {
		return nil, apperrors.Validationf("invalid category type: %s", req.Type)
	}

	d := &catalog.CategoryDefinition{
		Name:            req.Name,
		Description:     req.Description,
		Logic:           logic,
		Metric:          metric,
		EntityType:      entityType,
		Type:            categoryType,
		SpeciesSpecific: req.SpeciesSpecific,
		ManualWinner:    req.ManualWinner,
	}
	if err := s.definitions.Create(d); err != nil {
		return nil, err
	}
	return d, nil
}

// ListSpecies lista todas las especies de peces
func (s *CatalogService) ListSpecies() ([]*catalog.FishSpecies, error) {
	return s.species.GetAll()
}

// ListFisheries lista todas las pesquerías
func (s *CatalogService) ListFisheries() ([]*catalog.Fishery, error) {
	return s.fisheries.GetAll()
}

// GetFishery obtiene una pesquería por su ID
func (s *CatalogService) GetFishery(id uuid.UUID) (*catalog.Fishery, error) {
	return s.fisheries.GetByID(id)
}
