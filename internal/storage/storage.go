// Package storage defines the persistence ports of the application and the
// factory picking a backend. Repositories load and save whole aggregates;
// there is no partial-commit path.
package storage

import (
	"github.com/google/uuid"

	"github.com/wedkarski/competitions-api/internal/domain/catalog"
	"github.com/wedkarski/competitions-api/internal/domain/competition"
)

// CompetitionRepository loads and saves the competition aggregate as one
// unit of work. Save applies optimistic concurrency: a stale Version yields
// a conflict and nothing is persisted.
type CompetitionRepository interface {
	Create(c *competition.Competition) error
	GetByID(id uuid.UUID) (*competition.Competition, error)
	GetByResultsToken(token string) (*competition.Competition, error)
	GetByOrganizer(userID int64) ([]*competition.Competition, error)
	Save(c *competition.Competition) error
	Delete(id uuid.UUID) error
}

// DefinitionRepository serves the shared category definition catalog
type DefinitionRepository interface {
	Create(d *catalog.CategoryDefinition) error
	GetByID(id uuid.UUID) (*catalog.CategoryDefinition, error)
	GetAll() ([]*catalog.CategoryDefinition, error)
}

// SpeciesRepository serves the shared fish species reference data
type SpeciesRepository interface {
	GetByID(id uuid.UUID) (*catalog.FishSpecies, error)
	GetAll() ([]*catalog.FishSpecies, error)
}

// FisheryRepository serves the shared fishery reference data
type FisheryRepository interface {
	GetByID(id uuid.UUID) (*catalog.Fishery, error)
	GetAll() ([]*catalog.Fishery, error)
}

// Container bundles every repository of one backend
type Container interface {
	Competitions() CompetitionRepository
	Definitions() DefinitionRepository
	Species() SpeciesRepository
	Fisheries() FisheryRepository
	Health() error
	Close() error
}
