// Package competition implements the competition aggregate: the lifecycle
// state machine, the participant registry, the category binding and the
// catch ledger. Every mutation validates against the current lifecycle state
// before touching in-memory state, so a failed call leaves the aggregate
// untouched.
package competition

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wedkarski/competitions-api/internal/apperrors"
	"github.com/wedkarski/competitions-api/internal/domain/common"
)

// Competition is the aggregate root. It exclusively owns its participants,
// categories and catches; fisheries, species and category definitions are
// shared reference data.
type Competition struct {
	ID           uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name         string           `json:"name" gorm:"not null"`
	Rules        string           `json:"rules" gorm:"type:text"`
	Type         Type             `json:"type" gorm:"type:competition_type;not null;default:'public'"`
	Status       Status           `json:"status" gorm:"type:competition_status;not null;default:'draft'"`
	TimeRange    common.TimeRange `json:"time_range" gorm:"embedded"`
	ResultsToken string           `json:"results_token" gorm:"uniqueIndex;not null"`
	OrganizerID  int64            `json:"organizer_id" gorm:"not null"`
	FisheryID    uuid.UUID        `json:"fishery_id" gorm:"type:uuid;not null"`
	Version      int              `json:"version" gorm:"default:1"`
	CreatedAt    time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time        `json:"updated_at" gorm:"autoUpdateTime"`

	Participants []Participant `json:"participants,omitempty" gorm:"foreignKey:CompetitionID;constraint:OnDelete:CASCADE"`
	Categories   []Category    `json:"categories,omitempty" gorm:"foreignKey:CompetitionID;constraint:OnDelete:CASCADE"`
	Catches      []Catch       `json:"catches,omitempty" gorm:"foreignKey:CompetitionID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name used by GORM
func (Competition) TableName() string {
	return "competitions"
}

// BeforeCreate sets a UUID before creating the record
func (c *Competition) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// New creates a competition in Draft with the organizer registered as its
// first approved Organizer participant and a fresh results token.
func New(name string, timeRange common.TimeRange, rules string, ctype Type, organizerID int64, organizerName string, fisheryID uuid.UUID) (*Competition, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validation("name is required")
	}
	if fisheryID == uuid.Nil {
		return nil, apperrors.Validation("fishery_id is required")
	}

	id := uuid.New()
	c := &Competition{
		ID:           id,
		Name:         name,
		Rules:        rules,
		Type:         ctype,
		Status:       StatusDraft,
		TimeRange:    timeRange,
		ResultsToken: newResultsToken(),
		OrganizerID:  organizerID,
		FisheryID:    fisheryID,
		CreatedAt:    time.Now(),
	}

	c.Participants = append(c.Participants, Participant{
		ID:               uuid.New(),
		CompetitionID:    id,
		UserID:           &organizerID,
		Name:             organizerName,
		Role:             RoleOrganizer,
		ApprovalStatus:   ApprovalApproved,
		AddedByOrganizer: true,
		CreatedAt:        time.Now(),
	})

	return c, nil
}

// newResultsToken generates the opaque public-results access token. A
// dash-stripped UUID keeps it unguessable and inside the 10-64 char window.
func newResultsToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// --- lifecycle -------------------------------------------------------------

// The transition operations below apply unconditionally: the upstream system
// allows any-state-to-any-state movement through them and only guards the
// data mutations. See DESIGN.md for the open question on a closed transition
// table.

// OpenRegistrations moves the competition to AcceptingRegistrations
func (c *Competition) OpenRegistrations() {
	c.Status = StatusAcceptingRegistrations
}

// ScheduleCompetition moves the competition to Scheduled
func (c *Competition) ScheduleCompetition() {
	c.Status = StatusScheduled
}

// ReopenRegistrations moves the competition back to AcceptingRegistrations
func (c *Competition) ReopenRegistrations() {
	c.Status = StatusAcceptingRegistrations
}

// StartCompetition moves the competition to Ongoing
func (c *Competition) StartCompetition() {
	c.Status = StatusOngoing
}

// FinishCompetition moves the competition to Finished
func (c *Competition) FinishCompetition() {
	c.Status = StatusFinished
}

// SetToDraft moves the competition back to Draft; a reason is mandatory
func (c *Competition) SetToDraft(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return apperrors.Validation("a reason is required to set the competition back to draft")
	}
	c.Status = StatusDraft
	return nil
}

// CancelCompetition moves the competition to Cancelled; a reason is mandatory
func (c *Competition) CancelCompetition(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return apperrors.Validation("a reason is required to cancel the competition")
	}
	c.Status = StatusCancelled
	return nil
}

// IsDetailsModifiable reports whether details, participants and categories
// may still be edited
func (c *Competition) IsDetailsModifiable() bool {
	switch c.Status {
	case StatusDraft, StatusAcceptingRegistrations, StatusScheduled:
		return true
	default:
		return false
	}
}

// UpdateDetails replaces the editable header fields while the competition
// has not started
func (c *Competition) UpdateDetails(name string, timeRange common.TimeRange, rules string, ctype Type, fisheryID uuid.UUID) error {
	if !c.IsDetailsModifiable() {
		return apperrors.Conflictf("competition details cannot be modified while %s", c.Status)
	}
	if strings.TrimSpace(name) == "" {
		return apperrors.Validation("name is required")
	}
	if fisheryID == uuid.Nil {
		return apperrors.Validation("fishery_id is required")
	}

	c.Name = name
	c.TimeRange = timeRange
	c.Rules = rules
	c.Type = ctype
	c.FisheryID = fisheryID
	return nil
}

// --- participants ----------------------------------------------------------

// AddParticipant registers an identity-backed participant. Self-joins are
// only accepted for public competitions while registrations are open and
// start in Waiting; organizer-added entries are accepted while details are
// modifiable and start Approved.
func (c *Competition) AddParticipant(userID int64, name string, role Role, addedByOrganizer bool) (*Participant, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validation("participant name is required")
	}
	if c.HasUserWithRole(userID, role) {
		return nil, apperrors.Conflictf("user %d already participates as %s", userID, role)
	}

	approval := ApprovalWaiting
	if addedByOrganizer {
		if !c.IsDetailsModifiable() {
			return nil, apperrors.Conflictf("participants cannot be added while the competition is %s", c.Status)
		}
		approval = ApprovalApproved
	} else {
		if c.Type != TypePublic {
			return nil, apperrors.Conflict("a private competition only accepts participants added by the organizer")
		}
		if c.Status != StatusAcceptingRegistrations {
			return nil, apperrors.Conflictf("the competition is not accepting registrations while %s", c.Status)
		}
		if role != RoleCompetitor {
			return nil, apperrors.Conflict("self-registration is only possible as a competitor")
		}
	}

	p := Participant{
		ID:               uuid.New(),
		CompetitionID:    c.ID,
		UserID:           &userID,
		Name:             name,
		Role:             role,
		ApprovalStatus:   approval,
		AddedByOrganizer: addedByOrganizer,
		CreatedAt:        time.Now(),
	}
	c.Participants = append(c.Participants, p)
	return &c.Participants[len(c.Participants)-1], nil
}

// AddGuestParticipant registers a name-only competitor with no backing
// identity. The optional guest code must be unique within the competition.
func (c *Competition) AddGuestParticipant(name string, guestCode *string) (*Participant, error) {
	if !c.IsDetailsModifiable() {
		return nil, apperrors.Conflictf("guest participants cannot be added while the competition is %s", c.Status)
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validation("guest name is required")
	}
	if guestCode != nil {
		code := strings.TrimSpace(*guestCode)
		if code == "" {
			guestCode = nil
		} else {
			for i := range c.Participants {
				existing := c.Participants[i].GuestCode
				if existing != nil && *existing == code {
					return nil, apperrors.Conflictf("guest code %q is already in use", code)
				}
			}
			guestCode = &code
		}
	}

	p := Participant{
		ID:               uuid.New(),
		CompetitionID:    c.ID,
		GuestCode:        guestCode,
		Name:             name,
		Role:             RoleCompetitor,
		ApprovalStatus:   ApprovalApproved,
		AddedByOrganizer: true,
		CreatedAt:        time.Now(),
	}
	c.Participants = append(c.Participants, p)
	return &c.Participants[len(c.Participants)-1], nil
}

// ApproveParticipant accepts a pending registration
func (c *Competition) ApproveParticipant(participantID uuid.UUID) error {
	return c.decideParticipant(participantID, ApprovalApproved)
}

// RejectParticipant declines a pending registration
func (c *Competition) RejectParticipant(participantID uuid.UUID) error {
	return c.decideParticipant(participantID, ApprovalRejected)
}

func (c *Competition) decideParticipant(participantID uuid.UUID, decision ApprovalStatus) error {
	p := c.FindParticipant(participantID)
	if p == nil {
		return apperrors.NotFound("participant not found")
	}
	if p.ApprovalStatus != ApprovalWaiting {
		return apperrors.Conflictf("participant is already %s", p.ApprovalStatus)
	}
	p.ApprovalStatus = decision
	return nil
}

// RemoveParticipant removes a participant record while the competition has
// not started; the last organizer can never be removed.
func (c *Competition) RemoveParticipant(participantID uuid.UUID) error {
	if !c.IsDetailsModifiable() {
		return apperrors.Conflictf("participants cannot be removed while the competition is %s", c.Status)
	}

	idx := c.findParticipantIndex(participantID)
	if idx < 0 {
		return apperrors.NotFound("participant not found")
	}
	if c.Participants[idx].Role == RoleOrganizer && c.organizerCount() == 1 {
		return apperrors.Conflict("cannot remove the last organizer")
	}

	c.Participants = append(c.Participants[:idx], c.Participants[idx+1:]...)
	return nil
}

// AssignJudge registers an identity as a judge of this competition
func (c *Competition) AssignJudge(userID int64, name string) (*Participant, error) {
	if !c.IsDetailsModifiable() {
		return nil, apperrors.Conflictf("judges cannot be assigned while the competition is %s", c.Status)
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Validation("judge name is required")
	}
	if c.HasUserWithRole(userID, RoleJudge) {
		return nil, apperrors.Conflictf("user %d is already a judge of this competition", userID)
	}

	p := Participant{
		ID:               uuid.New(),
		CompetitionID:    c.ID,
		UserID:           &userID,
		Name:             name,
		Role:             RoleJudge,
		ApprovalStatus:   ApprovalApproved,
		AddedByOrganizer: true,
		CreatedAt:        time.Now(),
	}
	c.Participants = append(c.Participants, p)
	return &c.Participants[len(c.Participants)-1], nil
}

// RemoveJudge removes a judge participant record
func (c *Competition) RemoveJudge(participantID uuid.UUID) error {
	if !c.IsDetailsModifiable() {
		return apperrors.Conflictf("judges cannot be removed while the competition is %s", c.Status)
	}

	idx := c.findParticipantIndex(participantID)
	if idx < 0 {
		return apperrors.NotFound("judge not found")
	}
	if c.Participants[idx].Role != RoleJudge {
		return apperrors.Conflict("participant is not a judge")
	}

	c.Participants = append(c.Participants[:idx], c.Participants[idx+1:]...)
	return nil
}

// --- categories ------------------------------------------------------------

// AddCategory binds a catalog definition to this competition. At most one
// enabled primary scoring category may exist.
func (c *Competition) AddCategory(category Category) (*Category, error) {
	if !c.IsDetailsModifiable() {
		return nil, apperrors.Conflictf("categories cannot be added while the competition is %s", c.Status)
	}
	if category.DefinitionID == uuid.Nil {
		return nil, apperrors.Validation("definition_id is required")
	}
	if category.IsPrimaryScoring() && c.hasEnabledPrimaryCategory(uuid.Nil) {
		return nil, apperrors.Conflict("the competition already has an enabled primary scoring category")
	}

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.CompetitionID = c.ID
	category.CreatedAt = time.Now()
	c.Categories = append(c.Categories, category)
	return &c.Categories[len(c.Categories)-1], nil
}

// UpdateCategory replaces the override fields of an existing binding
func (c *Competition) UpdateCategory(updated Category) error {
	if !c.IsDetailsModifiable() {
		return apperrors.Conflictf("categories cannot be modified while the competition is %s", c.Status)
	}

	idx := -1
	for i := range c.Categories {
		if c.Categories[i].ID == updated.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.NotFound("category not found")
	}
	if updated.Enabled && updated.Primary && c.hasEnabledPrimaryCategory(updated.ID) {
		return apperrors.Conflict("the competition already has an enabled primary scoring category")
	}

	cat := &c.Categories[idx]
	cat.Enabled = updated.Enabled
	cat.Primary = updated.Primary
	cat.SortOrder = updated.SortOrder
	cat.MaxWinners = updated.MaxWinners
	cat.SpeciesFilterID = updated.SpeciesFilterID
	cat.NameOverride = updated.NameOverride
	cat.DescriptionOverride = updated.DescriptionOverride
	return nil
}

// RemoveCategory unbinds a category from this competition
func (c *Competition) RemoveCategory(categoryID uuid.UUID) error {
	if !c.IsDetailsModifiable() {
		return apperrors.Conflictf("categories cannot be removed while the competition is %s", c.Status)
	}

	for i := range c.Categories {
		if c.Categories[i].ID == categoryID {
			c.Categories = append(c.Categories[:i], c.Categories[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("category not found")
}

func (c *Competition) hasEnabledPrimaryCategory(excludeID uuid.UUID) bool {
	for i := range c.Categories {
		cat := &c.Categories[i]
		if cat.ID == excludeID {
			continue
		}
		if cat.IsPrimaryScoring() {
			return true
		}
	}
	return false
}

// --- catches ---------------------------------------------------------------

// RecordFishCatch appends a catch to the ledger. The competitor must hold
// the Competitor role here and the recording judge must hold Judge or
// Organizer.
func (c *Competition) RecordFishCatch(competitorID, judgeParticipantID uuid.UUID, speciesID *uuid.UUID, caughtAt time.Time, length *common.Length, weight *common.Weight) (*Catch, error) {
	competitor := c.FindParticipant(competitorID)
	if competitor == nil {
		return nil, apperrors.NotFound("competitor does not participate in this competition")
	}
	if competitor.Role != RoleCompetitor {
		return nil, apperrors.Conflictf("participant %s does not hold the competitor role", competitor.Name)
	}

	judge := c.FindParticipant(judgeParticipantID)
	if judge == nil {
		return nil, apperrors.NotFound("judge does not participate in this competition")
	}
	if judge.Role != RoleJudge && judge.Role != RoleOrganizer {
		return nil, apperrors.Conflictf("participant %s may not record catches", judge.Name)
	}
	if caughtAt.IsZero() {
		return nil, apperrors.Validation("caught_at is required")
	}
	// TODO: the upstream rule requiring at least one of species/length/weight
	// is still disabled; re-enable once the mobile client sends measurements.

	record := Catch{
		ID:                 uuid.New(),
		CompetitionID:      c.ID,
		ParticipantID:      competitorID,
		JudgeParticipantID: judgeParticipantID,
		SpeciesID:          speciesID,
		CaughtAt:           caughtAt,
		Length:             length,
		Weight:             weight,
		CreatedAt:          time.Now(),
	}
	c.Catches = append(c.Catches, record)
	return &c.Catches[len(c.Catches)-1], nil
}

// RemoveFishCatch deletes a catch while the competition is ongoing
func (c *Competition) RemoveFishCatch(catchID uuid.UUID) error {
	if c.Status != StatusOngoing {
		return apperrors.Conflictf("catches can only be removed while the competition is ongoing, not %s", c.Status)
	}

	for i := range c.Catches {
		if c.Catches[i].ID == catchID {
			c.Catches = append(c.Catches[:i], c.Catches[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("catch not found")
}

// --- lookups ---------------------------------------------------------------

// FindParticipant returns the participant record with the given id, or nil
func (c *Competition) FindParticipant(participantID uuid.UUID) *Participant {
	idx := c.findParticipantIndex(participantID)
	if idx < 0 {
		return nil
	}
	return &c.Participants[idx]
}

func (c *Competition) findParticipantIndex(participantID uuid.UUID) int {
	for i := range c.Participants {
		if c.Participants[i].ID == participantID {
			return i
		}
	}
	return -1
}

// ParticipantByUser returns the record the identity holds for the given
// role, or nil
func (c *Competition) ParticipantByUser(userID int64, role Role) *Participant {
	for i := range c.Participants {
		p := &c.Participants[i]
		if p.UserID != nil && *p.UserID == userID && p.Role == role {
			return p
		}
	}
	return nil
}

// HasUserWithRole reports whether the identity already holds the given role
func (c *Competition) HasUserWithRole(userID int64, role Role) bool {
	return c.ParticipantByUser(userID, role) != nil
}

// IsOrganizer reports whether the identity holds the Organizer role here
func (c *Competition) IsOrganizer(userID int64) bool {
	return c.HasUserWithRole(userID, RoleOrganizer)
}

// CanJudge reports whether the identity holds the Judge or Organizer role
func (c *Competition) CanJudge(userID int64) bool {
	return c.HasUserWithRole(userID, RoleJudge) || c.HasUserWithRole(userID, RoleOrganizer)
}

func (c *Competition) organizerCount() int {
	count := 0
	for i := range c.Participants {
		if c.Participants[i].Role == RoleOrganizer {
			count++
		}
	}
	return count
}

// ApprovedCompetitors returns every approved competitor participant
func (c *Competition) ApprovedCompetitors() []*Participant {
	var out []*Participant
	for i := range c.Participants {
		if c.Participants[i].IsApprovedCompetitor() {
			out = append(out, &c.Participants[i])
		}
	}
	return out
}

// FindSlotOccupant returns the approved competitor (other than excludeID)
// already holding the given (sector, stand) pair, or nil
func (c *Competition) FindSlotOccupant(sector, stand string, excludeID uuid.UUID) *Participant {
	for i := range c.Participants {
		p := &c.Participants[i]
		if p.ID == excludeID {
			continue
		}
		if p.IsApprovedCompetitor() && p.OccupiesSlot(sector, stand) {
			return p
		}
	}
	return nil
}

// CatchesByParticipant returns all catches recorded for one competitor
func (c *Competition) CatchesByParticipant(participantID uuid.UUID) []*Catch {
	var out []*Catch
	for i := range c.Catches {
		if c.Catches[i].ParticipantID == participantID {
			out = append(out, &c.Catches[i])
		}
	}
	return out
}
