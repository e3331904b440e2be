package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wedkarski/competitions-api/internal/apperrors"
	"github.com/wedkarski/competitions-api/internal/domain/catalog"
	"github.com/wedkarski/competitions-api/internal/logger"
)

// DefinitionRepository serves the shared category definition catalog
type DefinitionRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewDefinitionRepository creates a new PostgreSQL definition repository
func NewDefinitionRepository(db *gorm.DB) *DefinitionRepository {
	return &DefinitionRepository{
		db:  db,
		log: logger.Repository("category_definition"),
	}
}

func (r *DefinitionRepository) Create(d *catalog.CategoryDefinition) error {
	if err := d.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}

	if err := r.db.Create(d).Error; err != nil {
		r.log.Error("Failed to create category definition", "error", err, "name", d.Name)
		return apperrors.Internal(fmt.Errorf("failed to create category definition: %w", err))
	}

	r.log.Info("Category definition created", "id", d.ID, "name", d.Name)
	return nil
}

func (r *DefinitionRepository) GetByID(id uuid.UUID) (*catalog.CategoryDefinition, error) {
	var d catalog.CategoryDefinition
	if err := r.db.First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("category definition not found")
		}
		r.log.Error("Failed to get category definition", "id", id, "error", err)
		return nil, apperrors.Internal(err)
	}
	return &d, nil
}

func (r *DefinitionRepository) GetAll() ([]*catalog.CategoryDefinition, error) {
	var out []*catalog.CategoryDefinition
	if err := r.db.Order("name").Find(&out).Error; err != nil {
		r.log.Error("Failed to get category definitions", "error", err)
		return nil, apperrors.Internal(err)
	}
	r.log.Debug("Retrieved category definitions", "count", len(out))
	return out, nil
}

// SpeciesRepository serves the shared fish species reference data
type SpeciesRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewSpeciesRepository creates a new PostgreSQL species repository
func NewSpeciesRepository(db *gorm.DB) *SpeciesRepository {
	return &SpeciesRepository{
		db:  db,
		log: logger.Repository("fish_species"),
	}
}

func (r *SpeciesRepository) GetByID(id uuid.UUID) (*catalog.FishSpecies, error) {
	var s catalog.FishSpecies
	if err := r.db.First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("fish species not found")
		}
		r.log.Error("Failed to get fish species", "id", id, "error", err)
		return nil, apperrors.Internal(err)
	}
	return &s, nil
}

func (r *SpeciesRepository) GetAll() ([]*catalog.FishSpecies, error) {
	var out []*catalog.FishSpecies
	if err := r.db.Order("name").Find(&out).Error; err != nil {
		r.log.Error("Failed to get fish species", "error", err)
		return nil, apperrors.Internal(err)
	}
	return out, nil
}

// FisheryRepository serves the shared fishery reference data
type FisheryRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewFisheryRepository creates a new PostgreSQL fishery repository
func NewFisheryRepository(db *gorm.DB) *FisheryRepository {
	return &FisheryRepository{
		db:  db,
		log: logger.Repository("fishery"),
	}
}

func (r *FisheryRepository) GetByID(id uuid.UUID) (*catalog.Fishery, error) {
	var f catalog.Fishery
	if err := r.db.First(&f, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("fishery not found")
		}
		r.log.Error("Failed to get fishery", "id", id, "error", err)
		return nil, apperrors.Internal(err)
	}
	return &f, nil
}

func (r *FisheryRepository) GetAll() ([]*catalog.Fishery, error) {
	var out []*catalog.Fishery
	if err := r.db.Order("name").Find(&out).Error; err != nil {
		r.log.Error("Failed to get fisheries", "error", err)
		return nil, apperrors.Internal(err)
	}
	return out, nil
}
