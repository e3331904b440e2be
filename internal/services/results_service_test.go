package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wedkarski/competitions-api/internal/domain/catalog"
)

func TestResultsByToken(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCompetition(t, "public")

	szczupak := catalog.FishSpecies{ID: uuid.New(), Name: "Szczupak", LatinName: "Esox lucius"}
	env.store.SeedSpecies(szczupak)

	def, err := env.catalog.CreateDefinition(CreateDefinitionRequest{
		Name:       "Najdłuższa ryba",
		Logic:      "max_value",
		Metric:     "length_cm",
		EntityType: "fish_catch",
		Type:       "main_scoring",
	})
	require.NoError(t, err)
	_, err = env.competitions.AddCategory(c.ID, organizerID, CategoryRequest{
		DefinitionID: def.ID.String(),
		Primary:      true,
	})
	require.NoError(t, err)

	anna, err := env.competitions.AddParticipant(c.ID, organizerID, AddParticipantRequest{Name: "Anna"})
	require.NoError(t, err)
	piotr, err := env.competitions.AddParticipant(c.ID, organizerID, AddParticipantRequest{Name: "Piotr"})
	require.NoError(t, err)

	long, short := 62.0, 40.0
	_, err = env.competitions.RecordCatch(c.ID, organizerID, RecordCatchRequest{
		ParticipantID: anna.ID.String(), SpeciesID: &szczupak.ID, CaughtAt: time.Now(), LengthCm: &short,
	})
	require.NoError(t, err)
	_, err = env.competitions.RecordCatch(c.ID, organizerID, RecordCatchRequest{
		ParticipantID: piotr.ID.String(), SpeciesID: &szczupak.ID, CaughtAt: time.Now(), LengthCm: &long,
	})
	require.NoError(t, err)

	view, err := env.results.GetResultsByToken(c.ResultsToken)
	require.NoError(t, err)
	assert.Equal(t, c.ID, view.CompetitionID)
	require.NotNil(t, view.Results)
	require.Len(t, view.Results.Categories, 1)

	entries := view.Results.Categories[0].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, "Piotr", entries[0].Name)
	assert.Equal(t, "62.0 cm", entries[0].DisplayValue)
	assert.Equal(t, "Szczupak", entries[0].BestCatch.SpeciesName)

	// The organizer view computes the same leaderboard.
	byID, err := env.results.GetResults(c.ID)
	require.NoError(t, err)
	assert.Equal(t, view.Results, byID.Results)
}

func TestResultsByUnknownTokenIsNilNotError(t *testing.T) {
	env := newTestEnv(t)
	env.createCompetition(t, "public")

	view, err := env.results.GetResultsByToken("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestResultsTokenSurvivesLifecycle(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCompetition(t, "public")
	token := c.ResultsToken

	for _, action := range []string{"open_registrations", "schedule", "start", "finish"} {
		_, err := env.competitions.ApplyLifecycleAction(c.ID, organizerID, LifecycleRequest{Action: action})
		require.NoError(t, err)

		view, err := env.results.GetResultsByToken(token)
		require.NoError(t, err, "token stays valid in %s", action)
		assert.Equal(t, c.ID, view.CompetitionID)
	}
}
