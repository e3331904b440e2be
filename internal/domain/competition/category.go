package competition

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wedkarski/competitions-api/internal/domain/catalog"
)

// Category binds one reusable catalog definition to this competition with
// instance-specific overrides.
type Category struct {
	ID                  uuid.UUID                  `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	CompetitionID       uuid.UUID                  `json:"competition_id" gorm:"type:uuid;not null"`
	DefinitionID        uuid.UUID                  `json:"definition_id" gorm:"type:uuid;not null"`
	Definition          catalog.CategoryDefinition `json:"definition" gorm:"foreignKey:DefinitionID"`
	Enabled             bool                       `json:"enabled" gorm:"default:true"`
	Primary             bool                       `json:"primary" gorm:"column:is_primary;default:false"`
	SortOrder           int                        `json:"sort_order" gorm:"default:0"`
	MaxWinners          int                        `json:"max_winners" gorm:"default:3"`
	SpeciesFilterID     *uuid.UUID                 `json:"species_filter_id" gorm:"type:uuid"`
	NameOverride        *string                    `json:"name_override"`
	DescriptionOverride *string                    `json:"description_override"`
	CreatedAt           time.Time                  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time                  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Category) TableName() string {
	return "competition_categories"
}

// BeforeCreate sets a UUID before creating the record
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// DisplayName returns the override when present, otherwise the catalog name
func (c *Category) DisplayName() string {
	if c.NameOverride != nil && *c.NameOverride != "" {
		return *c.NameOverride
	}
	return c.Definition.Name
}

// DisplayDescription returns the override when present, otherwise the
// catalog description
func (c *Category) DisplayDescription() string {
	if c.DescriptionOverride != nil && *c.DescriptionOverride != "" {
		return *c.DescriptionOverride
	}
	return c.Definition.Description
}

// IsPrimaryScoring reports whether this is the enabled primary category
func (c *Category) IsPrimaryScoring() bool {
	return c.Enabled && c.Primary
}
