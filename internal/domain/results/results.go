// Package results turns a competition snapshot into ranked, tie-broken,
// optionally sector-partitioned leaderboards. Everything here is a pure
// function of the snapshot: computing twice over unchanged state yields
// identical output, and nothing is ever cached or mutated.
package results

import (
	"time"

	"github.com/google/uuid"

	"github.com/wedkarski/competitions-api/internal/domain/catalog"
)

// CompetitionResults is the presentation DTO for one computation. In sector
// mode Sectors is populated and Categories is nil; otherwise the other way
// around.
type CompetitionResults struct {
	CompetitionID   uuid.UUID        `json:"competition_id"`
	CompetitionName string           `json:"competition_name"`
	UsesSectors     bool             `json:"uses_sectors"`
	Categories      []CategoryResult `json:"categories,omitempty"`
	Sectors         []SectorResults  `json:"sectors,omitempty"`
}

// SectorResults holds the per-category leaderboards of one sector
type SectorResults struct {
	Sector     string           `json:"sector"`
	Categories []CategoryResult `json:"categories"`
}

// CategoryResult is one leaderboard. NotComputable marks the category
// families (participant profile scoring, manual winner assignment) that have
// no computation yet; their entries are listed at value 0 so the gap is
// visible instead of silently masked.
type CategoryResult struct {
	CategoryID    uuid.UUID                `json:"category_id"`
	Name          string                   `json:"name"`
	Description   string                   `json:"description,omitempty"`
	Type          catalog.CategoryType     `json:"type"`
	Logic         catalog.CalculationLogic `json:"calculation_logic"`
	Metric        catalog.Metric           `json:"metric"`
	Primary       bool                     `json:"primary"`
	NotComputable bool                     `json:"not_computable,omitempty"`
	Entries       []Entry                  `json:"entries"`
}

// Entry is one participant's row in a leaderboard
type Entry struct {
	ParticipantID uuid.UUID     `json:"participant_id"`
	Name          string        `json:"name"`
	Sector        *string       `json:"sector,omitempty"`
	Stand         *string       `json:"stand,omitempty"`
	Position      int           `json:"position"`
	Value         float64       `json:"value"`
	DisplayValue  string        `json:"display_value"`
	CatchCount    int           `json:"catch_count"`
	BestCatch     *CatchSummary `json:"best_catch,omitempty"`
}

// CatchSummary is the display projection of the winning catch
type CatchSummary struct {
	CatchID     uuid.UUID  `json:"catch_id"`
	SpeciesID   *uuid.UUID `json:"species_id,omitempty"`
	SpeciesName string     `json:"species_name,omitempty"`
	CaughtAt    time.Time  `json:"caught_at"`
	LengthCm    float64    `json:"length_cm"`
	WeightKg    float64    `json:"weight_kg"`
}
