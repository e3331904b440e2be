package results

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wedkarski/competitions-api/internal/domain/catalog"
	"github.com/wedkarski/competitions-api/internal/domain/common"
	"github.com/wedkarski/competitions-api/internal/domain/competition"
)

// fixture builds a competition with approved competitors and an organizer
// record able to record catches.
type fixture struct {
	t *testing.T
	c *competition.Competition

	judgeID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	start := time.Date(2026, 6, 6, 6, 0, 0, 0, time.UTC)
	timeRange, err := common.NewTimeRange(start, start.Add(8*time.Hour))
	require.NoError(t, err)

	c, err := competition.New("Zawody Testowe", timeRange, "", competition.TypePublic, 100, "Organizator", uuid.New())
	require.NoError(t, err)

	judge, err := c.AssignJudge(300, "Sędzia")
	require.NoError(t, err)

	return &fixture{t: t, c: c, judgeID: judge.ID}
}

func (f *fixture) competitor(name string) *competition.Participant {
	f.t.Helper()
	p, err := f.c.AddGuestParticipant(name, nil)
	require.NoError(f.t, err)
	return p
}

func (f *fixture) catchAt(p *competition.Participant, speciesID *uuid.UUID, caughtAt time.Time, lengthCm, weightKg float64) {
	f.t.Helper()

	var length *common.Length
	if lengthCm > 0 {
		l, err := common.NewLength(lengthCm)
		require.NoError(f.t, err)
		length = &l
	}
	var weight *common.Weight
	if weightKg > 0 {
		w, err := common.NewWeight(weightKg)
		require.NoError(f.t, err)
		weight = &w
	}

	_, err := f.c.RecordFishCatch(p.ID, f.judgeID, speciesID, caughtAt, length, weight)
	require.NoError(f.t, err)
}

func (f *fixture) category(logic catalog.CalculationLogic, metric catalog.Metric, entity catalog.EntityType, maxWinners int) *competition.Category {
	f.t.Helper()
	cat, err := f.c.AddCategory(competition.Category{
		DefinitionID: uuid.New(),
		Definition: catalog.CategoryDefinition{
			Name:       logic.String() + " " + metric.String(),
			Logic:      logic,
			Metric:     metric,
			EntityType: entity,
			Type:       catalog.MainScoring,
		},
		Enabled:    true,
		MaxWinners: maxWinners,
	})
	require.NoError(f.t, err)
	return cat
}

func TestComputeLongestFish(t *testing.T) {
	f := newFixture(t)
	anna := f.competitor("Anna")
	piotr := f.competitor("Piotr")
	kasia := f.competitor("Kasia")

	now := time.Now()
	f.catchAt(anna, nil, now, 40, 0)
	f.catchAt(anna, nil, now, 55.5, 0)
	f.catchAt(piotr, nil, now, 62, 0)
	f.catchAt(kasia, nil, now, 30, 0)

	f.category(catalog.MaxValue, catalog.LengthCm, catalog.FishCatch, 3)

	out := Compute(f.c, nil)
	require.Len(t, out.Categories, 1)
	entries := out.Categories[0].Entries
	require.Len(t, entries, 3)

	assert.Equal(t, "Piotr", entries[0].Name)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, 62.0, entries[0].Value)
	assert.Equal(t, "62.0 cm", entries[0].DisplayValue)
	require.NotNil(t, entries[0].BestCatch)
	assert.Equal(t, 62.0, entries[0].BestCatch.LengthCm)

	assert.Equal(t, "Anna", entries[1].Name)
	assert.Equal(t, 55.5, entries[1].Value, "the best of multiple catches counts")
	assert.Equal(t, "Kasia", entries[2].Name)
}

func TestComputeTotalWeightSum(t *testing.T) {
	f := newFixture(t)
	anna := f.competitor("Anna")
	piotr := f.competitor("Piotr")

	now := time.Now()
	f.catchAt(anna, nil, now, 0, 1.5)
	f.catchAt(anna, nil, now, 0, 2.25)
	f.catchAt(piotr, nil, now, 0, 3.0)

	f.category(catalog.SumValue, catalog.WeightKg, catalog.ParticipantAggregateCatches, 3)

	out := Compute(f.c, nil)
	entries := out.Categories[0].Entries
	require.Len(t, entries, 2)

	assert.Equal(t, "Anna", entries[0].Name)
	assert.Equal(t, 3.75, entries[0].Value)
	assert.Equal(t, "3.75 kg", entries[0].DisplayValue)
	assert.Equal(t, 2, entries[0].CatchCount)
	assert.Equal(t, "Piotr", entries[1].Name)
}

func TestComputeFishCount(t *testing.T) {
	f := newFixture(t)
	anna := f.competitor("Anna")
	piotr := f.competitor("Piotr")

	now := time.Now()
	f.catchAt(anna, nil, now, 0, 0)
	f.catchAt(anna, nil, now.Add(time.Minute), 0, 0)
	f.catchAt(anna, nil, now.Add(2*time.Minute), 0, 0)
	f.catchAt(piotr, nil, now, 0, 0)

	f.category(catalog.SumValue, catalog.FishCount, catalog.ParticipantAggregateCatches, 3)

	out := Compute(f.c, nil)
	entries := out.Categories[0].Entries
	assert.Equal(t, 3.0, entries[0].Value)
	assert.Equal(t, "3 szt.", entries[0].DisplayValue)
}

func TestComputeSpeciesVarietyIgnoresUnidentified(t *testing.T) {
	f := newFixture(t)
	anna := f.competitor("Anna")

	szczupak := uuid.New()
	okon := uuid.New()
	now := time.Now()
	f.catchAt(anna, &szczupak, now, 0, 0)
	f.catchAt(anna, &szczupak, now, 0, 0)
	f.catchAt(anna, &okon, now, 0, 0)
	f.catchAt(anna, nil, now, 0, 0)

	f.category(catalog.SumValue, catalog.SpeciesVariety, catalog.ParticipantAggregateCatches, 3)

	out := Compute(f.c, nil)
	entries := out.Categories[0].Entries
	assert.Equal(t, 2.0, entries[0].Value)
	assert.Equal(t, "2 gatunków", entries[0].DisplayValue)
}

func TestComputeFirstAndLastCatch(t *testing.T) {
	f := newFixture(t)
	anna := f.competitor("Anna")
	piotr := f.competitor("Piotr")
	f.competitor("Kasia")

	base := time.Date(2026, 6, 6, 7, 0, 0, 0, time.UTC)
	f.catchAt(anna, nil, base.Add(30*time.Minute), 0, 0)
	f.catchAt(piotr, nil, base, 0, 0)
	f.catchAt(piotr, nil, base.Add(3*time.Hour), 0, 0)

	f.category(catalog.FirstOccurrence, catalog.TimeOfCatch, catalog.FishCatch, 3)
	f.category(catalog.LastOccurrence, catalog.TimeOfCatch, catalog.FishCatch, 3)

	out := Compute(f.c, nil)
	require.Len(t, out.Categories, 2)

	first := out.Categories[0].Entries
	assert.Equal(t, "Piotr", first[0].Name)
	assert.Equal(t, "07:00:00", first[0].DisplayValue)
	// Kasia has no catch at all and sorts after everyone with one.
	assert.Equal(t, "Kasia", first[2].Name)
	assert.Nil(t, first[2].BestCatch)

	last := out.Categories[1].Entries
	assert.Equal(t, "Piotr", last[0].Name)
	assert.Equal(t, "10:00:00", last[0].DisplayValue)
	assert.Equal(t, "Kasia", last[2].Name)
}

func TestGapRanking(t *testing.T) {
	entries := []Entry{
		{Name: "A", Value: 5},
		{Name: "B", Value: 5},
		{Name: "C", Value: 3},
		{Name: "D", Value: 3},
		{Name: "E", Value: 1},
	}
	assignPositions(entries)

	positions := make([]int, len(entries))
	for i, e := range entries {
		positions[i] = e.Position
	}
	assert.Equal(t, []int{1, 1, 3, 3, 5}, positions)
}

func TestTieBreaksByNameButSharesPosition(t *testing.T) {
	f := newFixture(t)
	zofia := f.competitor("Zofia")
	adam := f.competitor("Adam")

	now := time.Now()
	f.catchAt(zofia, nil, now, 50, 0)
	f.catchAt(adam, nil, now, 50, 0)

	f.category(catalog.MaxValue, catalog.LengthCm, catalog.FishCatch, 3)

	entries := Compute(f.c, nil).Categories[0].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, "Adam", entries[0].Name)
	assert.Equal(t, "Zofia", entries[1].Name)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, 1, entries[1].Position)
}

func TestSpeciesFilter(t *testing.T) {
	f := newFixture(t)
	anna := f.competitor("Anna")
	piotr := f.competitor("Piotr")

	szczupak := uuid.New()
	okon := uuid.New()
	now := time.Now()
	f.catchAt(anna, &szczupak, now, 70, 0)
	f.catchAt(piotr, &okon, now, 90, 0)

	_, err := f.c.AddCategory(competition.Category{
		DefinitionID: uuid.New(),
		Definition: catalog.CategoryDefinition{
			Name:            "Najdłuższy szczupak",
			Logic:           catalog.MaxValue,
			Metric:          catalog.LengthCm,
			EntityType:      catalog.FishCatch,
			Type:            catalog.MainScoring,
			SpeciesSpecific: true,
		},
		Enabled:         true,
		MaxWinners:      3,
		SpeciesFilterID: &szczupak,
	})
	require.NoError(t, err)

	names := map[uuid.UUID]string{szczupak: "Szczupak", okon: "Okoń"}
	entries := Compute(f.c, names).Categories[0].Entries
	require.Len(t, entries, 2)

	// Piotr's longer perch does not count here.
	assert.Equal(t, "Anna", entries[0].Name)
	assert.Equal(t, 70.0, entries[0].Value)
	assert.Equal(t, "Szczupak", entries[0].BestCatch.SpeciesName)

	assert.Equal(t, "Piotr", entries[1].Name)
	assert.Equal(t, 0.0, entries[1].Value)
	assert.Nil(t, entries[1].BestCatch)
}

func TestMaxWinnersNeverTruncates(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		p := f.competitor(name)
		f.catchAt(p, nil, now, 10, 0)
	}

	f.category(catalog.MaxValue, catalog.LengthCm, catalog.FishCatch, 1)

	entries := Compute(f.c, nil).Categories[0].Entries
	assert.Len(t, entries, 5, "the winner cap widens but never narrows the list")
}

func TestSectorPartitioning(t *testing.T) {
	f := newFixture(t)
	anna := f.competitor("Anna")
	piotr := f.competitor("Piotr")
	kasia := f.competitor("Kasia")
	bez := f.competitor("Bez Sektora")

	f.c.FindParticipant(anna.ID).AssignToSectorAndStand("A", "1")
	f.c.FindParticipant(piotr.ID).AssignToSectorAndStand("A", "2")
	f.c.FindParticipant(kasia.ID).AssignToSectorAndStand("B", "1")

	now := time.Now()
	f.catchAt(anna, nil, now, 40, 0)
	f.catchAt(piotr, nil, now, 60, 0)
	f.catchAt(kasia, nil, now, 50, 0)
	f.catchAt(bez, nil, now, 99, 0)

	f.category(catalog.MaxValue, catalog.LengthCm, catalog.FishCatch, 3)

	out := Compute(f.c, nil)
	assert.True(t, out.UsesSectors)
	assert.Nil(t, out.Categories)
	require.Len(t, out.Sectors, 2)

	assert.Equal(t, "A", out.Sectors[0].Sector)
	a := out.Sectors[0].Categories[0].Entries
	require.Len(t, a, 2)
	assert.Equal(t, "Piotr", a[0].Name)
	assert.Equal(t, 1, a[0].Position)
	assert.Equal(t, "Anna", a[1].Name)

	assert.Equal(t, "B", out.Sectors[1].Sector)
	b := out.Sectors[1].Categories[0].Entries
	require.Len(t, b, 1)
	assert.Equal(t, "Kasia", b[0].Name)
	assert.Equal(t, 1, b[0].Position, "positions restart per sector")

	// An unsectored competitor appears in no sector, whatever they caught.
	for _, sector := range out.Sectors {
		for _, entry := range sector.Categories[0].Entries {
			assert.NotEqual(t, "Bez Sektora", entry.Name)
		}
	}
}

func TestNotComputableCategories(t *testing.T) {
	f := newFixture(t)
	f.competitor("Anna")

	f.category(catalog.MaxValue, catalog.NotApplicable, catalog.ParticipantProfile, 3)
	f.category(catalog.ManualAssignment, catalog.NotApplicable, catalog.FishCatch, 3)

	out := Compute(f.c, nil)
	require.Len(t, out.Categories, 2)
	for _, cr := range out.Categories {
		assert.True(t, cr.NotComputable)
		require.Len(t, cr.Entries, 1)
		assert.Equal(t, 0.0, cr.Entries[0].Value)
	}
}

func TestDisabledCategoriesAreSkippedAndOrderFollowsSortOrder(t *testing.T) {
	f := newFixture(t)
	f.competitor("Anna")

	_, err := f.c.AddCategory(competition.Category{
		DefinitionID: uuid.New(),
		Definition:   catalog.CategoryDefinition{Name: "Długość", Logic: catalog.MaxValue, Metric: catalog.LengthCm},
		Enabled:      true,
		MaxWinners:   3,
		SortOrder:    2,
	})
	require.NoError(t, err)
	_, err = f.c.AddCategory(competition.Category{
		DefinitionID: uuid.New(),
		Definition:   catalog.CategoryDefinition{Name: "Waga", Logic: catalog.MaxValue, Metric: catalog.WeightKg},
		Enabled:      true,
		MaxWinners:   3,
		SortOrder:    1,
	})
	require.NoError(t, err)

	_, err = f.c.AddCategory(competition.Category{
		DefinitionID: uuid.New(),
		Definition:   catalog.CategoryDefinition{Name: "Wyłączona", Logic: catalog.MaxValue, Metric: catalog.LengthCm},
		Enabled:      false,
		MaxWinners:   3,
	})
	require.NoError(t, err)

	out := Compute(f.c, nil)
	require.Len(t, out.Categories, 2)
	assert.Equal(t, catalog.WeightKg, out.Categories[0].Metric)
	assert.Equal(t, catalog.LengthCm, out.Categories[1].Metric)
}

func TestComputeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	anna := f.competitor("Anna")
	piotr := f.competitor("Piotr")

	now := time.Now()
	f.catchAt(anna, nil, now, 40, 1.2)
	f.catchAt(piotr, nil, now, 60, 2.4)

	f.category(catalog.MaxValue, catalog.LengthCm, catalog.FishCatch, 3)
	f.category(catalog.SumValue, catalog.WeightKg, catalog.ParticipantAggregateCatches, 3)

	first := Compute(f.c, nil)
	second := Compute(f.c, nil)
	assert.Equal(t, first, second)
}

func TestWaitingAndRejectedCompetitorsAreExcluded(t *testing.T) {
	f := newFixture(t)
	f.c.OpenRegistrations()

	_, err := f.c.AddParticipant(200, "Czekająca", competition.RoleCompetitor, false)
	require.NoError(t, err)

	rejected, err := f.c.AddParticipant(201, "Odrzucony", competition.RoleCompetitor, false)
	require.NoError(t, err)
	require.NoError(t, f.c.RejectParticipant(rejected.ID))

	anna := f.competitor("Anna")
	f.catchAt(anna, nil, time.Now(), 40, 0)

	f.category(catalog.MaxValue, catalog.LengthCm, catalog.FishCatch, 3)

	entries := Compute(f.c, nil).Categories[0].Entries
	require.Len(t, entries, 1)
	assert.Equal(t, "Anna", entries[0].Name)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "52.5 cm", FormatValue(catalog.LengthCm, 52.5))
	assert.Equal(t, "3.75 kg", FormatValue(catalog.WeightKg, 3.75))
	assert.Equal(t, "4 szt.", FormatValue(catalog.FishCount, 4))
	assert.Equal(t, "2 gatunków", FormatValue(catalog.SpeciesVariety, 2))

	at := time.Date(2026, 6, 6, 9, 30, 15, 0, time.UTC)
	assert.Equal(t, "09:30:15", FormatValue(catalog.TimeOfCatch, float64(at.Unix())))
}
