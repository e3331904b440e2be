package migrations

import (
	"github.com/wedkarski/competitions-api/internal/domain/catalog"
	"github.com/wedkarski/competitions-api/internal/domain/competition"
)

// AllModels returns every model handled by AutoMigrate, in dependency order
func AllModels() []interface{} {
	return []interface{}{
		&catalog.FishSpecies{},
		&catalog.Fishery{},
		&catalog.CategoryDefinition{},
		&competition.Competition{},
		&competition.Participant{},
		&competition.Category{},
		&competition.Catch{},
	}
}
