// Package catalog holds the shared reference data: reusable category
// definitions (scoring templates), fish species and fisheries. None of it is
// owned by a single competition.
package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// CategoryDefinition is a reusable scoring template. Competitions bind it
// through a CompetitionCategory with instance-specific overrides.
type CategoryDefinition struct {
	ID              uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name            string           `json:"name" gorm:"not null"`
	Description     string           `json:"description"`
	Logic           CalculationLogic `json:"calculation_logic" gorm:"type:calculation_logic;not null"`
	Metric          Metric           `json:"metric" gorm:"type:catch_metric;not null"`
	EntityType      EntityType       `json:"entity_type" gorm:"type:entity_type;not null"`
	Type            CategoryType     `json:"type" gorm:"type:category_type;not null"`
	SpeciesSpecific bool             `json:"species_specific" gorm:"default:false"`
	ManualWinner    bool             `json:"manual_winner" gorm:"default:false"`
	CreatedAt       time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (CategoryDefinition) TableName() string {
	return "category_definitions"
}

// BeforeCreate sets a UUID before creating the record
func (d *CategoryDefinition) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Validate checks if the definition data is valid
func (d *CategoryDefinition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Logic == ManualAssignment && !d.ManualWinner {
		return fmt.Errorf("manual assignment logic requires the manual winner flag")
	}
	return nil
}

// FishSpecies is shared reference data looked up when recording a catch and
// when rendering results.
type FishSpecies struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex"`
	LatinName string    `json:"latin_name"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name used by GORM
func (FishSpecies) TableName() string {
	return "fish_species"
}

func (s *FishSpecies) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Fishery is the venue a competition is held at. SpeciesIDs lists the
// species known to occur in its waters.
type Fishery struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name       string         `json:"name" gorm:"not null"`
	Location   string         `json:"location"`
	SpeciesIDs pq.StringArray `json:"species_ids" gorm:"type:uuid[]"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name used by GORM
func (Fishery) TableName() string {
	return "fisheries"
}

func (f *Fishery) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// HasSpecies reports whether the species is known to occur at this fishery
func (f *Fishery) HasSpecies(speciesID uuid.UUID) bool {
	for _, id := range f.SpeciesIDs {
		if id == speciesID.String() {
			return true
		}
	}
	return false
}
