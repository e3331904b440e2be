package competition

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wedkarski/competitions-api/internal/apperrors"
	"github.com/wedkarski/competitions-api/internal/domain/common"
)

const organizerID int64 = 100

func newTestCompetition(t *testing.T, ctype Type) *Competition {
	t.Helper()

	start := time.Date(2026, 6, 6, 6, 0, 0, 0, time.UTC)
	timeRange, err := common.NewTimeRange(start, start.Add(8*time.Hour))
	require.NoError(t, err)

	c, err := New("Puchar Jeziora", timeRange, "Łowimy do 14:00", ctype, organizerID, "Marek Organizator", uuid.New())
	require.NoError(t, err)
	return c
}

func TestNewCompetition(t *testing.T) {
	c := newTestCompetition(t, TypePublic)

	assert.Equal(t, StatusDraft, c.Status)
	assert.Len(t, c.ResultsToken, 32)

	require.Len(t, c.Participants, 1)
	org := c.Participants[0]
	assert.Equal(t, RoleOrganizer, org.Role)
	assert.Equal(t, ApprovalApproved, org.ApprovalStatus)
	require.NotNil(t, org.UserID)
	assert.Equal(t, organizerID, *org.UserID)

	assert.True(t, c.IsOrganizer(organizerID))
	assert.True(t, c.CanJudge(organizerID))
}

func TestNewCompetitionValidation(t *testing.T) {
	timeRange, err := common.NewTimeRange(time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = New("   ", timeRange, "", TypePublic, organizerID, "Marek", uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	_, err = New("Zawody", timeRange, "", TypePublic, organizerID, "Marek", uuid.Nil)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestResultsTokenIsUniquePerCompetition(t *testing.T) {
	a := newTestCompetition(t, TypePublic)
	b := newTestCompetition(t, TypePublic)
	assert.NotEqual(t, a.ResultsToken, b.ResultsToken)
}

func TestLifecycleTransitionsApplyUnconditionally(t *testing.T) {
	c := newTestCompetition(t, TypePublic)

	// Movements do not check the current state, only data mutations do.
	c.FinishCompetition()
	assert.Equal(t, StatusFinished, c.Status)

	c.OpenRegistrations()
	assert.Equal(t, StatusAcceptingRegistrations, c.Status)

	c.StartCompetition()
	assert.Equal(t, StatusOngoing, c.Status)

	c.ScheduleCompetition()
	assert.Equal(t, StatusScheduled, c.Status)
}

func TestSetToDraftRequiresReason(t *testing.T) {
	c := newTestCompetition(t, TypePublic)
	c.ScheduleCompetition()

	err := c.SetToDraft("  ")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	assert.Equal(t, StatusScheduled, c.Status)

	require.NoError(t, c.SetToDraft("sponsor wycofał się"))
	assert.Equal(t, StatusDraft, c.Status)
}

func TestCancelRequiresReason(t *testing.T) {
	c := newTestCompetition(t, TypePublic)

	err := c.CancelCompetition("")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	require.NoError(t, c.CancelCompetition("burza"))
	assert.Equal(t, StatusCancelled, c.Status)
	assert.True(t, c.Status.IsTerminal())
}

func TestUpdateDetailsOnlyBeforeStart(t *testing.T) {
	c := newTestCompetition(t, TypePublic)
	timeRange := c.TimeRange

	require.NoError(t, c.UpdateDetails("Nowa nazwa", timeRange, "nowe zasady", TypePrivate, c.FisheryID))
	assert.Equal(t, "Nowa nazwa", c.Name)
	assert.Equal(t, TypePrivate, c.Type)

	c.StartCompetition()
	err := c.UpdateDetails("Jeszcze raz", timeRange, "", TypePublic, c.FisheryID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
	assert.Equal(t, "Nowa nazwa", c.Name)
}

func TestSelfRegistrationFlow(t *testing.T) {
	c := newTestCompetition(t, TypePublic)

	// Registrations are closed in draft.
	_, err := c.AddParticipant(200, "Anna", RoleCompetitor, false)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	c.OpenRegistrations()

	p, err := c.AddParticipant(200, "Anna", RoleCompetitor, false)
	require.NoError(t, err)
	assert.Equal(t, ApprovalWaiting, p.ApprovalStatus)
	assert.False(t, p.AddedByOrganizer)

	// Same identity, same role: conflict.
	_, err = c.AddParticipant(200, "Anna", RoleCompetitor, false)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	// Only the competitor role is open for self-registration.
	_, err = c.AddParticipant(201, "Piotr", RoleJudge, false)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestPrivateCompetitionRejectsSelfRegistration(t *testing.T) {
	c := newTestCompetition(t, TypePrivate)
	c.OpenRegistrations()

	_, err := c.AddParticipant(200, "Anna", RoleCompetitor, false)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestOrganizerAddedParticipantIsApproved(t *testing.T) {
	c := newTestCompetition(t, TypePrivate)

	p, err := c.AddParticipant(200, "Anna", RoleCompetitor, true)
	require.NoError(t, err)
	assert.Equal(t, ApprovalApproved, p.ApprovalStatus)
	assert.True(t, p.AddedByOrganizer)

	c.StartCompetition()
	_, err = c.AddParticipant(201, "Piotr", RoleCompetitor, true)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestSameUserMayHoldMultipleRoles(t *testing.T) {
	c := newTestCompetition(t, TypePublic)

	_, err := c.AddParticipant(organizerID, "Marek Organizator", RoleCompetitor, true)
	require.NoError(t, err)

	assert.True(t, c.HasUserWithRole(organizerID, RoleOrganizer))
	assert.True(t, c.HasUserWithRole(organizerID, RoleCompetitor))
}

func TestGuestParticipants(t *testing.T) {
	c := newTestCompetition(t, TypePublic)

	code := "G-7"
	g, err := c.AddGuestParticipant("Janek", &code)
	require.NoError(t, err)
	assert.True(t, g.IsGuest())
	assert.Equal(t, ApprovalApproved, g.ApprovalStatus)

	// Duplicate guest code is a conflict, duplicate display name is not.
	dup := "G-7"
	_, err = c.AddGuestParticipant("Janek Drugi", &dup)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	_, err = c.AddGuestParticipant("Janek", nil)
	require.NoError(t, err)

	// A blank code is stored as no code at all.
	blank := "   "
	g3, err := c.AddGuestParticipant("Wojtek", &blank)
	require.NoError(t, err)
	assert.Nil(t, g3.GuestCode)
}

func TestApproveAndRejectRegistration(t *testing.T) {
	c := newTestCompetition(t, TypePublic)
	c.OpenRegistrations()

	p, err := c.AddParticipant(200, "Anna", RoleCompetitor, false)
	require.NoError(t, err)

	require.NoError(t, c.ApproveParticipant(p.ID))
	assert.True(t, p.IsApprovedCompetitor())

	// Decisions apply to waiting registrations only.
	err = c.ApproveParticipant(p.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	q, err := c.AddParticipant(201, "Piotr", RoleCompetitor, false)
	require.NoError(t, err)
	require.NoError(t, c.RejectParticipant(q.ID))
	assert.Equal(t, ApprovalRejected, q.ApprovalStatus)

	err = c.ApproveParticipant(uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestRemoveParticipantGuards(t *testing.T) {
	c := newTestCompetition(t, TypePublic)

	orgRecord := c.Participants[0]
	err := c.RemoveParticipant(orgRecord.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict), "last organizer must stay")

	p, err := c.AddParticipant(200, "Anna", RoleCompetitor, true)
	require.NoError(t, err)

	c.StartCompetition()
	err = c.RemoveParticipant(p.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	require.NoError(t, c.SetToDraft("korekta listy startowej"))
	require.NoError(t, c.RemoveParticipant(p.ID))
	assert.Nil(t, c.FindParticipant(p.ID))
}

func TestJudgeAssignment(t *testing.T) {
	c := newTestCompetition(t, TypePublic)

	j, err := c.AssignJudge(300, "Sędzia Basia")
	require.NoError(t, err)
	assert.Equal(t, RoleJudge, j.Role)
	assert.True(t, c.CanJudge(300))

	_, err = c.AssignJudge(300, "Sędzia Basia")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	// A competitor record is not removable through the judge path.
	p, err := c.AddParticipant(200, "Anna", RoleCompetitor, true)
	require.NoError(t, err)
	err = c.RemoveJudge(p.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	require.NoError(t, c.RemoveJudge(j.ID))
	assert.False(t, c.CanJudge(300))
}

func TestSinglePrimaryCategoryInvariant(t *testing.T) {
	c := newTestCompetition(t, TypePublic)

	first, err := c.AddCategory(Category{DefinitionID: uuid.New(), Enabled: true, Primary: true, MaxWinners: 3})
	require.NoError(t, err)

	_, err = c.AddCategory(Category{DefinitionID: uuid.New(), Enabled: true, Primary: true, MaxWinners: 3})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	// A disabled primary does not hold the slot.
	second, err := c.AddCategory(Category{DefinitionID: uuid.New(), Enabled: false, Primary: true, MaxWinners: 3})
	require.NoError(t, err)

	// Re-saving the holder itself keeps the invariant satisfied.
	require.NoError(t, c.UpdateCategory(Category{ID: first.ID, Enabled: true, Primary: true, MaxWinners: 5}))
	assert.Equal(t, 5, c.Categories[0].MaxWinners)

	// Enabling the second primary while the first holds the slot fails.
	err = c.UpdateCategory(Category{ID: second.ID, Enabled: true, Primary: true, MaxWinners: 3})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	require.NoError(t, c.RemoveCategory(first.ID))
	require.NoError(t, c.UpdateCategory(Category{ID: second.ID, Enabled: true, Primary: true, MaxWinners: 3}))
}

func TestCategoryEditsLockAfterStart(t *testing.T) {
	c := newTestCompetition(t, TypePublic)
	cat, err := c.AddCategory(Category{DefinitionID: uuid.New(), Enabled: true, MaxWinners: 3})
	require.NoError(t, err)

	c.StartCompetition()

	_, err = c.AddCategory(Category{DefinitionID: uuid.New(), Enabled: true, MaxWinners: 3})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
	err = c.RemoveCategory(cat.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestRecordFishCatch(t *testing.T) {
	c := newTestCompetition(t, TypePublic)
	competitor, err := c.AddParticipant(200, "Anna", RoleCompetitor, true)
	require.NoError(t, err)
	judge, err := c.AssignJudge(300, "Sędzia Basia")
	require.NoError(t, err)
	c.StartCompetition()

	length, err := common.NewLength(52.5)
	require.NoError(t, err)
	speciesID := uuid.New()

	record, err := c.RecordFishCatch(competitor.ID, judge.ID, &speciesID, time.Now(), &length, nil)
	require.NoError(t, err)
	assert.True(t, record.HasLength())
	assert.False(t, record.HasWeight())
	assert.Equal(t, 52.5, record.LengthCm())

	// The organizer record may also act as the recording judge.
	orgRecord := c.ParticipantByUser(organizerID, RoleOrganizer)
	require.NotNil(t, orgRecord)
	_, err = c.RecordFishCatch(competitor.ID, orgRecord.ID, nil, time.Now(), nil, nil)
	require.NoError(t, err)

	assert.Len(t, c.CatchesByParticipant(competitor.ID), 2)
}

func TestRecordFishCatchValidation(t *testing.T) {
	c := newTestCompetition(t, TypePublic)
	competitor, err := c.AddParticipant(200, "Anna", RoleCompetitor, true)
	require.NoError(t, err)
	judge, err := c.AssignJudge(300, "Sędzia Basia")
	require.NoError(t, err)

	_, err = c.RecordFishCatch(uuid.New(), judge.ID, nil, time.Now(), nil, nil)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	_, err = c.RecordFishCatch(competitor.ID, uuid.New(), nil, time.Now(), nil, nil)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	// A competitor cannot act as the recording judge.
	other, err := c.AddParticipant(201, "Piotr", RoleCompetitor, true)
	require.NoError(t, err)
	_, err = c.RecordFishCatch(competitor.ID, other.ID, nil, time.Now(), nil, nil)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	// Catches are recorded against competitor records only.
	_, err = c.RecordFishCatch(judge.ID, judge.ID, nil, time.Now(), nil, nil)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	_, err = c.RecordFishCatch(competitor.ID, judge.ID, nil, time.Time{}, nil, nil)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestRemoveFishCatchOnlyWhileOngoing(t *testing.T) {
	c := newTestCompetition(t, TypePublic)
	competitor, err := c.AddParticipant(200, "Anna", RoleCompetitor, true)
	require.NoError(t, err)
	judge, err := c.AssignJudge(300, "Sędzia Basia")
	require.NoError(t, err)
	c.StartCompetition()

	record, err := c.RecordFishCatch(competitor.ID, judge.ID, nil, time.Now(), nil, nil)
	require.NoError(t, err)

	c.FinishCompetition()
	err = c.RemoveFishCatch(record.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	c.StartCompetition()
	require.NoError(t, c.RemoveFishCatch(record.ID))
	assert.Empty(t, c.Catches)

	err = c.RemoveFishCatch(record.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestSectorAssignment(t *testing.T) {
	c := newTestCompetition(t, TypePublic)
	added, err := c.AddParticipant(200, "Anna", RoleCompetitor, true)
	require.NoError(t, err)
	piotr, err := c.AddParticipant(201, "Piotr", RoleCompetitor, true)
	require.NoError(t, err)

	// Re-resolve after the second append so the mutation hits the aggregate.
	anna := c.FindParticipant(added.ID)
	require.NotNil(t, anna)

	anna.AssignToSectorAndStand("A", "1")
	assert.True(t, anna.HasSector())
	assert.True(t, anna.OccupiesSlot("A", "1"))
	assert.False(t, anna.OccupiesSlot("A", "2"))

	occupant := c.FindSlotOccupant("A", "1", piotr.ID)
	require.NotNil(t, occupant)
	assert.Equal(t, "Anna", occupant.Name)

	assert.Nil(t, c.FindSlotOccupant("A", "1", anna.ID), "the holder itself is not a conflict")

	// Blank labels clear the assignment.
	anna.AssignToSectorAndStand("  ", "")
	assert.False(t, anna.HasSector())
	assert.Nil(t, c.FindSlotOccupant("A", "1", piotr.ID))
}
