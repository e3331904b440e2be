package migrations

import (
	"gorm.io/gorm"

	"github.com/wedkarski/competitions-api/internal/domain/catalog"
)

// migration004Up seeds the shared catalog with the default scoring templates
// and a starter species list
func migration004Up(db *gorm.DB) error {
	definitions := []catalog.CategoryDefinition{
		{
			Name:        "Najdłuższa ryba",
			Description: "Longest single fish by length",
			Logic:       catalog.MaxValue,
			Metric:      catalog.LengthCm,
			EntityType:  catalog.FishCatch,
			Type:        catalog.MainScoring,
		},
		{
			Name:        "Najcięższa ryba",
			Description: "Heaviest single fish by weight",
			Logic:       catalog.MaxValue,
			Metric:      catalog.WeightKg,
			EntityType:  catalog.FishCatch,
			Type:        catalog.MainScoring,
		},
		{
			Name:        "Łączna waga",
			Description: "Total weight of all catches",
			Logic:       catalog.SumValue,
			Metric:      catalog.WeightKg,
			EntityType:  catalog.ParticipantAggregateCatches,
			Type:        catalog.MainScoring,
		},
		{
			Name:        "Liczba ryb",
			Description: "Number of catches",
			Logic:       catalog.SumValue,
			Metric:      catalog.FishCount,
			EntityType:  catalog.ParticipantAggregateCatches,
			Type:        catalog.MainScoring,
		},
		{
			Name:        "Różnorodność gatunków",
			Description: "Distinct species caught",
			Logic:       catalog.SumValue,
			Metric:      catalog.SpeciesVariety,
			EntityType:  catalog.ParticipantAggregateCatches,
			Type:        catalog.SpecialAchievement,
		},
		{
			Name:        "Pierwsza ryba",
			Description: "Earliest catch of the day",
			Logic:       catalog.FirstOccurrence,
			Metric:      catalog.TimeOfCatch,
			EntityType:  catalog.FishCatch,
			Type:        catalog.FunChallenge,
		},
		{
			Name:        "Ostatnia ryba",
			Description: "Latest catch of the day",
			Logic:       catalog.LastOccurrence,
			Metric:      catalog.TimeOfCatch,
			EntityType:  catalog.FishCatch,
			Type:        catalog.FunChallenge,
		},
		{
			Name:         "Nagroda jury",
			Description:  "Winner picked by the jury",
			Logic:        catalog.ManualAssignment,
			Metric:       catalog.NotApplicable,
			EntityType:   catalog.FishCatch,
			Type:         catalog.SpecialAchievement,
			ManualWinner: true,
		},
	}

	for i := range definitions {
		if err := db.Create(&definitions[i]).Error; err != nil {
			return err
		}
	}

	species := []catalog.FishSpecies{
		{Name: "Karp", LatinName: "Cyprinus carpio"},
		{Name: "Szczupak", LatinName: "Esox lucius"},
		{Name: "Sandacz", LatinName: "Sander lucioperca"},
		{Name: "Okoń", LatinName: "Perca fluviatilis"},
		{Name: "Leszcz", LatinName: "Abramis brama"},
		{Name: "Płoć", LatinName: "Rutilus rutilus"},
		{Name: "Lin", LatinName: "Tinca tinca"},
		{Name: "Sum", LatinName: "Silurus glanis"},
	}

	for i := range species {
		if err := db.Create(&species[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration004Down removes the seeded catalog data
func migration004Down(db *gorm.DB) error {
	if err := db.Exec("DELETE FROM category_definitions").Error; err != nil {
		return err
	}
	return db.Exec("DELETE FROM fish_species").Error
}
