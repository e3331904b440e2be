// Package memory is the in-process storage backend. It backs the service
// tests and local development; semantics (whole-aggregate unit of work,
// optimistic version check, unknown-token reads) match the PostgreSQL
// backend.
package memory

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/wedkarski/competitions-api/internal/apperrors"
	"github.com/wedkarski/competitions-api/internal/domain/catalog"
	"github.com/wedkarski/competitions-api/internal/domain/competition"
	"github.com/wedkarski/competitions-api/internal/storage"
)

// Container implements storage.Container in memory
type Container struct {
	competitions *CompetitionRepository
	definitions  *DefinitionRepository
	species      *SpeciesRepository
	fisheries    *FisheryRepository
}

// NewContainer creates an empty in-memory container
func NewContainer() *Container {
	return &Container{
		competitions: NewCompetitionRepository(),
		definitions:  &DefinitionRepository{definitions: make(map[uuid.UUID]catalog.CategoryDefinition)},
		species:      &SpeciesRepository{species: make(map[uuid.UUID]catalog.FishSpecies)},
		fisheries:    &FisheryRepository{fisheries: make(map[uuid.UUID]catalog.Fishery)},
	}
}

func (c *Container) Competitions() storage.CompetitionRepository { return c.competitions }
func (c *Container) Definitions() storage.DefinitionRepository   { return c.definitions }
func (c *Container) Species() storage.SpeciesRepository          { return c.species }
func (c *Container) Fisheries() storage.FisheryRepository        { return c.fisheries }
func (c *Container) Health() error                               { return nil }
func (c *Container) Close() error                                { return nil }

// SeedSpecies inserts species reference data, for tests and local setups
func (c *Container) SeedSpecies(species ...catalog.FishSpecies) {
	c.species.mu.Lock()
	defer c.species.mu.Unlock()
	for _, s := range species {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		c.species.species[s.ID] = s
	}
}

// SeedFisheries inserts fishery reference data
func (c *Container) SeedFisheries(fisheries ...catalog.Fishery) {
	c.fisheries.mu.Lock()
	defer c.fisheries.mu.Unlock()
	for _, f := range fisheries {
		if f.ID == uuid.Nil {
			f.ID = uuid.New()
		}
		c.fisheries.fisheries[f.ID] = f
	}
}

// CompetitionRepository stores competition aggregates in a map. Snapshots
// are deep-copied on the way in and out so callers only change stored state
// through Save, the same way a row-mapping store behaves.
type CompetitionRepository struct {
	mu           sync.RWMutex
	competitions map[uuid.UUID]*competition.Competition
}

// NewCompetitionRepository creates an empty in-memory competition repository
func NewCompetitionRepository() *CompetitionRepository {
	return &CompetitionRepository{
		competitions: make(map[uuid.UUID]*competition.Competition),
	}
}

func (r *CompetitionRepository) Create(c *competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.Version == 0 {
		c.Version = 1
	}
	r.competitions[c.ID] = clone(c)
	return nil
}

func (r *CompetitionRepository) GetByID(id uuid.UUID) (*competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.competitions[id]
	if !ok {
		return nil, apperrors.NotFound("competition not found")
	}
	return clone(c), nil
}

func (r *CompetitionRepository) GetByResultsToken(token string) (*competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if token == "" {
		return nil, nil
	}
	for _, c := range r.competitions {
		if c.ResultsToken == token {
			return clone(c), nil
		}
	}
	return nil, nil
}

func (r *CompetitionRepository) GetByOrganizer(userID int64) ([]*competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*competition.Competition
	for _, c := range r.competitions {
		if c.IsOrganizer(userID) {
			out = append(out, clone(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *CompetitionRepository) Save(c *competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.competitions[c.ID]
	if !ok {
		return apperrors.NotFound("competition not found")
	}
	if stored.Version != c.Version {
		return apperrors.Conflict("competition was modified concurrently, reload and retry")
	}

	c.Version++
	r.competitions[c.ID] = clone(c)
	return nil
}

func (r *CompetitionRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.competitions[id]; !ok {
		return apperrors.NotFound("competition not found")
	}
	delete(r.competitions, id)
	return nil
}

func clone(c *competition.Competition) *competition.Competition {
	out := *c
	out.Participants = append([]competition.Participant(nil), c.Participants...)
	out.Categories = append([]competition.Category(nil), c.Categories...)
	out.Catches = append([]competition.Catch(nil), c.Catches...)
	return &out
}

// DefinitionRepository stores category definitions in memory
type DefinitionRepository struct {
	mu          sync.RWMutex
	definitions map[uuid.UUID]catalog.CategoryDefinition
}

func (r *DefinitionRepository) Create(d *catalog.CategoryDefinition) error {
	if err := d.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.definitions[d.ID] = *d
	return nil
}

func (r *DefinitionRepository) GetByID(id uuid.UUID) (*catalog.CategoryDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.definitions[id]
	if !ok {
		return nil, apperrors.NotFound("category definition not found")
	}
	return &d, nil
}

func (r *DefinitionRepository) GetAll() ([]*catalog.CategoryDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*catalog.CategoryDefinition, 0, len(r.definitions))
	for _, d := range r.definitions {
		dd := d
		out = append(out, &dd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// SpeciesRepository stores fish species in memory
type SpeciesRepository struct {
	mu      sync.RWMutex
	species map[uuid.UUID]catalog.FishSpecies
}

func (r *SpeciesRepository) GetByID(id uuid.UUID) (*catalog.FishSpecies, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.species[id]
	if !ok {
		return nil, apperrors.NotFound("fish species not found")
	}
	return &s, nil
}

func (r *SpeciesRepository) GetAll() ([]*catalog.FishSpecies, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*catalog.FishSpecies, 0, len(r.species))
	for _, s := range r.species {
		ss := s
		out = append(out, &ss)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// FisheryRepository stores fisheries in memory
type FisheryRepository struct {
	mu        sync.RWMutex
	fisheries map[uuid.UUID]catalog.Fishery
}

func (r *FisheryRepository) GetByID(id uuid.UUID) (*catalog.Fishery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.fisheries[id]
	if !ok {
		return nil, apperrors.NotFound("fishery not found")
	}
	return &f, nil
}

func (r *FisheryRepository) GetAll() ([]*catalog.Fishery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*catalog.Fishery, 0, len(r.fisheries))
	for _, f := range r.fisheries {
		ff := f
		out = append(out, &ff)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
