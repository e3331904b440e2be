package competition

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wedkarski/competitions-api/internal/domain/common"
)

// Catch is an immutable record of one fish brought to a judge. Species,
// length and weight are each optional; a catch with no measurement at all is
// currently accepted.
type Catch struct {
	ID                 uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	CompetitionID      uuid.UUID      `json:"competition_id" gorm:"type:uuid;not null"`
	ParticipantID      uuid.UUID      `json:"participant_id" gorm:"type:uuid;not null"`
	JudgeParticipantID uuid.UUID      `json:"judge_participant_id" gorm:"type:uuid;not null"`
	SpeciesID          *uuid.UUID     `json:"species_id" gorm:"type:uuid"`
	CaughtAt           time.Time      `json:"caught_at" gorm:"not null"`
	Length             *common.Length `json:"length_cm" gorm:"column:length_cm"`
	Weight             *common.Weight `json:"weight_kg" gorm:"column:weight_kg"`
	CreatedAt          time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name used by GORM
func (Catch) TableName() string {
	return "fish_catches"
}

// BeforeCreate sets a UUID before creating the record
func (c *Catch) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// HasLength reports whether a positive length was recorded
func (c *Catch) HasLength() bool {
	return c.Length != nil && c.Length.Cm() > 0
}

// HasWeight reports whether a positive weight was recorded
func (c *Catch) HasWeight() bool {
	return c.Weight != nil && c.Weight.Kg() > 0
}

// LengthCm returns the recorded length or 0
func (c *Catch) LengthCm() float64 {
	if c.Length == nil {
		return 0
	}
	return c.Length.Cm()
}

// WeightKg returns the recorded weight or 0
func (c *Catch) WeightKg() float64 {
	if c.Weight == nil {
		return 0
	}
	return c.Weight.Kg()
}
