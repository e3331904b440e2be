package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wedkarski/competitions-api/internal/apperrors"
	"github.com/wedkarski/competitions-api/internal/domain/catalog"
	"github.com/wedkarski/competitions-api/internal/domain/competition"
	"github.com/wedkarski/competitions-api/internal/storage/memory"
)

const (
	organizerID   int64 = 100
	organizerName       = "Marek Organizator"
)

type testEnv struct {
	store        *memory.Container
	competitions *CompetitionService
	results      *ResultsService
	catalog      *CatalogService
	fisheryID    uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewContainer()
	fishery := catalog.Fishery{ID: uuid.New(), Name: "Jezioro Testowe", Location: "Mazury"}
	store.SeedFisheries(fishery)

	return &testEnv{
		store:        store,
		competitions: NewCompetitionService(store.Competitions(), store.Definitions(), store.Fisheries()),
		results:      NewResultsService(store.Competitions(), store.Species()),
		catalog:      NewCatalogService(store.Definitions(), store.Species(), store.Fisheries()),
		fisheryID:    fishery.ID,
	}
}

func (e *testEnv) createCompetition(t *testing.T, ctype string) *competition.Competition {
	t.Helper()

	start := time.Date(2026, 6, 6, 6, 0, 0, 0, time.UTC)
	c, err := e.competitions.CreateCompetition(organizerID, organizerName, CreateCompetitionRequest{
		Name:      "Puchar Jeziora",
		Rules:     "Łowimy do 14:00",
		Type:      ctype,
		StartDate: start,
		EndDate:   start.Add(8 * time.Hour),
		FisheryID: e.fisheryID.String(),
	})
	require.NoError(t, err)
	return c
}

func TestCreateCompetitionPersists(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCompetition(t, "public")

	stored, err := env.competitions.GetCompetition(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Puchar Jeziora", stored.Name)
	assert.Equal(t, competition.StatusDraft, stored.Status)
	assert.Len(t, stored.Participants, 1)

	mine, err := env.competitions.GetMyCompetitions(organizerID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestCreateCompetitionUnknownFishery(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.competitions.CreateCompetition(organizerID, organizerName, CreateCompetitionRequest{
		Name:      "Zawody",
		StartDate: time.Now(),
		EndDate:   time.Now().Add(time.Hour),
		FisheryID: uuid.NewString(),
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestCreateCompetitionRejectsInvertedDates(t *testing.T) {
	env := newTestEnv(t)

	start := time.Date(2026, 6, 6, 6, 0, 0, 0, time.UTC)
	_, err := env.competitions.CreateCompetition(organizerID, organizerName, CreateCompetitionRequest{
		Name:      "Zawody",
		StartDate: start,
		EndDate:   start.Add(-time.Hour),
		FisheryID: env.fisheryID.String(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	assert.Contains(t, err.Error(), "end date must be after start date")
}

func TestLifecycleActionAuthorization(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCompetition(t, "public")

	_, err := env.competitions.ApplyLifecycleAction(c.ID, 999, LifecycleRequest{Action: "open_registrations"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	updated, err := env.competitions.ApplyLifecycleAction(c.ID, organizerID, LifecycleRequest{Action: "open_registrations"})
	require.NoError(t, err)
	assert.Equal(t, competition.StatusAcceptingRegistrations, updated.Status)

	_, err = env.competitions.ApplyLifecycleAction(c.ID, organizerID, LifecycleRequest{Action: "cancel"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation), "cancelling needs a reason")

	_, err = env.competitions.ApplyLifecycleAction(c.ID, organizerID, LifecycleRequest{Action: "explode"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestJoinThenApproveFlow(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCompetition(t, "public")
	_, err := env.competitions.ApplyLifecycleAction(c.ID, organizerID, LifecycleRequest{Action: "open_registrations"})
	require.NoError(t, err)

	p, err := env.competitions.JoinCompetition(c.ID, 200, "Anna")
	require.NoError(t, err)
	assert.Equal(t, competition.ApprovalWaiting, p.ApprovalStatus)

	_, err = env.competitions.DecideParticipant(c.ID, 999, p.ID, true)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	updated, err := env.competitions.DecideParticipant(c.ID, organizerID, p.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.FindParticipant(p.ID).IsApprovedCompetitor())
}

func TestPrivateSelfJoinRejected(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCompetition(t, "private")
	_, err := env.competitions.ApplyLifecycleAction(c.ID, organizerID, LifecycleRequest{Action: "open_registrations"})
	require.NoError(t, err)

	_, err = env.competitions.JoinCompetition(c.ID, 200, "Anna")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestSectorAssignmentConflictNamesOccupant(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCompetition(t, "public")

	anna, err := env.competitions.AddParticipant(c.ID, organizerID, AddParticipantRequest{Name: "Anna"})
	require.NoError(t, err)
	piotr, err := env.competitions.AddParticipant(c.ID, organizerID, AddParticipantRequest{Name: "Piotr"})
	require.NoError(t, err)

	_, err = env.competitions.AssignSector(c.ID, organizerID, anna.ID, AssignSectorRequest{Sector: "A", Stand: "1"})
	require.NoError(t, err)

	_, err = env.competitions.AssignSector(c.ID, organizerID, piotr.ID, AssignSectorRequest{Sector: "A", Stand: "1"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
	assert.Contains(t, err.Error(), "Anna", "the conflict names the occupant")

	// Re-assigning the holder to its own slot is not a conflict.
	_, err = env.competitions.AssignSector(c.ID, organizerID, anna.ID, AssignSectorRequest{Sector: "A", Stand: "1"})
	require.NoError(t, err)

	_, err = env.competitions.AssignSector(c.ID, organizerID, piotr.ID, AssignSectorRequest{Sector: "A", Stand: "2"})
	require.NoError(t, err)
}

func TestRecordCatchRequiresJudgeRole(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCompetition(t, "public")

	anna, err := env.competitions.AddParticipant(c.ID, organizerID, AddParticipantRequest{Name: "Anna"})
	require.NoError(t, err)
	_, err = env.competitions.AssignJudge(c.ID, organizerID, AssignJudgeRequest{UserID: 300, Name: "Sędzia Basia"})
	require.NoError(t, err)

	req := RecordCatchRequest{
		ParticipantID: anna.ID.String(),
		CaughtAt:      time.Now(),
	}

	_, err = env.competitions.RecordCatch(c.ID, 999, req)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	record, err := env.competitions.RecordCatch(c.ID, 300, req)
	require.NoError(t, err)

	// The organizer may record too.
	length := 52.5
	_, err = env.competitions.RecordCatch(c.ID, organizerID, RecordCatchRequest{
		ParticipantID: anna.ID.String(),
		CaughtAt:      time.Now(),
		LengthCm:      &length,
	})
	require.NoError(t, err)

	stored, err := env.competitions.GetCompetition(c.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Catches, 2)

	// Removal is gated on the ongoing state.
	err = env.competitions.RemoveCatch(c.ID, 300, record.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	_, err = env.competitions.ApplyLifecycleAction(c.ID, organizerID, LifecycleRequest{Action: "start"})
	require.NoError(t, err)
	require.NoError(t, env.competitions.RemoveCatch(c.ID, 300, record.ID))
}

func TestNegativeMeasurementsRejected(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCompetition(t, "public")

	anna, err := env.competitions.AddParticipant(c.ID, organizerID, AddParticipantRequest{Name: "Anna"})
	require.NoError(t, err)

	bad := -3.0
	_, err = env.competitions.RecordCatch(c.ID, organizerID, RecordCatchRequest{
		ParticipantID: anna.ID.String(),
		CaughtAt:      time.Now(),
		LengthCm:      &bad,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	_, err = env.competitions.RecordCatch(c.ID, organizerID, RecordCatchRequest{
		ParticipantID: anna.ID.String(),
		CaughtAt:      time.Now(),
		WeightKg:      &bad,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestCategoryManagementThroughService(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCompetition(t, "public")

	def, err := env.catalog.CreateDefinition(CreateDefinitionRequest{
		Name:       "Najdłuższa ryba",
		Logic:      "max_value",
		Metric:     "length_cm",
		EntityType: "fish_catch",
		Type:       "main_scoring",
	})
	require.NoError(t, err)

	cat, err := env.competitions.AddCategory(c.ID, organizerID, CategoryRequest{
		DefinitionID: def.ID.String(),
		Primary:      true,
	})
	require.NoError(t, err)
	assert.True(t, cat.Enabled)
	assert.Equal(t, 3, cat.MaxWinners, "the winner cap defaults to a podium")

	_, err = env.competitions.AddCategory(c.ID, organizerID, CategoryRequest{
		DefinitionID: def.ID.String(),
		Primary:      true,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	_, err = env.competitions.AddCategory(c.ID, 999, CategoryRequest{DefinitionID: def.ID.String()})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	_, err = env.competitions.AddCategory(c.ID, organizerID, CategoryRequest{DefinitionID: uuid.NewString()})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	require.NoError(t, env.competitions.RemoveCategory(c.ID, organizerID, cat.ID))
}

func TestDeleteCompetitionOnlyInDraft(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCompetition(t, "public")

	_, err := env.competitions.ApplyLifecycleAction(c.ID, organizerID, LifecycleRequest{Action: "start"})
	require.NoError(t, err)

	err = env.competitions.DeleteCompetition(c.ID, organizerID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	_, err = env.competitions.ApplyLifecycleAction(c.ID, organizerID, LifecycleRequest{Action: "set_to_draft", Reason: "pomyłka"})
	require.NoError(t, err)

	require.NoError(t, env.competitions.DeleteCompetition(c.ID, organizerID))
	_, err = env.competitions.GetCompetition(c.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestStaleSnapshotConflicts(t *testing.T) {
	env := newTestEnv(t)
	c := env.createCompetition(t, "public")

	stale, err := env.store.Competitions().GetByID(c.ID)
	require.NoError(t, err)

	_, err = env.competitions.ApplyLifecycleAction(c.ID, organizerID, LifecycleRequest{Action: "open_registrations"})
	require.NoError(t, err)

	err = env.store.Competitions().Save(stale)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}
