// Package services contiene la lógica de aplicación sobre el agregado de
// competición: una mutación por unidad de trabajo, autorización de roles
// antes de mutar.
package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/wedkarski/competitions-api/internal/apperrors"
	"github.com/wedkarski/competitions-api/internal/domain/common"
	"github.com/wedkarski/competitions-api/internal/domain/competition"
	"github.com/wedkarski/competitions-api/internal/logger"
	"github.com/wedkarski/competitions-api/internal/storage"
	"github.com/wedkarski/competitions-api/internal/validation"
)

// CompetitionService maneja la lógica de negocio de las competiciones
type CompetitionService struct {
	competitions storage.CompetitionRepository
	definitions  storage.DefinitionRepository
	fisheries    storage.FisheryRepository
	validator    validation.CompetitionValidation
}

// NewCompetitionService crea una nueva instancia del servicio
func NewCompetitionService(competitions storage.CompetitionRepository, definitions storage.DefinitionRepository, fisheries storage.FisheryRepository) *CompetitionService {
	return &CompetitionService{
		competitions: competitions,
		definitions:  definitions,
		fisheries:    fisheries,
		validator:    validation.CompetitionValidation{},
	}
}

// CreateCompetitionRequest representa una solicitud para crear una competición
type CreateCompetitionRequest struct {
	Name      string    `json:"name" binding:"required"`
	Rules     string    `json:"rules"`
	Type      string    `json:"type"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	FisheryID string    `json:"fishery_id" binding:"required"`
}

// CreateCompetition crea una nueva competición en estado draft
func (s *CompetitionService) CreateCompetition(organizerID int64, organizerName string, req CreateCompetitionRequest) (*competition.Competition, error) {
	if err := s.validator.ValidateName(req.Name); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if err := s.validator.ValidateRules(req.Rules); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if err := validation.ValidateUUID(req.FisheryID, "fishery_id"); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	ctype := competition.TypePublic
	if req.Type != "" {
		parsed, ok := competition.TypeFromString(req.Type)
		if !ok {
			return nil, apperrors.Validationf("invalid competition type: %s", req.Type)
		}
		ctype = parsed
	}

	if err := validation.ValidateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	timeRange, err := common.NewTimeRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	fisheryID := uuid.MustParse(req.FisheryID)
	if _, err := s.fisheries.GetByID(fisheryID); err != nil {
		return nil, apperrors.NotFound("fishery not found")
	}

	c, err := competition.New(req.Name, timeRange, req.Rules, ctype, organizerID, organizerName, fisheryID)
	if err != nil {
		return nil, err
	}

	if err := s.competitions.Create(c); err != nil {
		return nil, err
	}

	logger.Service("competition").Info("Competition created", "competition_id", c.ID, "organizer_id", organizerID)
	return c, nil
}

// GetCompetition obtiene una competición por su ID
func (s *CompetitionService) GetCompetition(id uuid.UUID) (*competition.Competition, error) {
	return s.competitions.GetByID(id)
}

// GetMyCompetitions lista las competiciones organizadas por el usuario
func (s *CompetitionService) GetMyCompetitions(userID int64) ([]*competition.Competition, error) {
	return s.competitions.GetByOrganizer(userID)
}

// UpdateCompetitionRequest representa una solicitud de actualización
type UpdateCompetitionRequest struct {
	Name      string    `json:"name" binding:"required"`
	Rules     string    `json:"rules"`
	Type      string    `json:"type" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	FisheryID string    `json:"fishery_id" binding:"required"`
}

// UpdateCompetition reemplaza los datos editables de la competición
func (s *CompetitionService) UpdateCompetition(id uuid.UUID, userID int64, req UpdateCompetitionRequest) (*competition.Competition, error) {
	if err := s.validator.ValidateName(req.Name); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if err := validation.ValidateUUID(req.FisheryID, "fishery_id"); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	ctype, ok := competition.TypeFromString(req.Type)
	if !ok {
		return nil, apperrors.Validationf("invalid competition type: %s", req.Type)
	}
	if err := validation.ValidateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	timeRange, err := common.NewTimeRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	fisheryID := uuid.MustParse(req.FisheryID)
	if _, err := s.fisheries.GetByID(fisheryID); err != nil {
		return nil, apperrors.NotFound("fishery not found")
	}

	return s.mutateAsOrganizer(id, userID, func(c *competition.Competition) error {
		return c.UpdateDetails(req.Name, timeRange, req.Rules, ctype, fisheryID)
	})
}

// DeleteCompetition borra una competición que sigue en draft
func (s *CompetitionService) DeleteCompetition(id uuid.UUID, userID int64) error {
	c, err := s.competitions.GetByID(id)
	if err != nil {
		return err
	}
	if !c.IsOrganizer(userID) {
		return apperrors.Forbidden("only an organizer may delete the competition")
	}
	if c.Status != competition.StatusDraft {
		return apperrors.Conflictf("only a draft competition can be deleted, not %s", c.Status)
	}
	return s.competitions.Delete(id)
}

// --- lifecycle -------------------------------------------------------------

// LifecycleRequest representa una solicitud de transición del ciclo de vida
type LifecycleRequest struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

// ApplyLifecycleAction aplica una transición del ciclo de vida. Solo el
// regreso a draft y la cancelación exigen un motivo.
func (s *CompetitionService) ApplyLifecycleAction(id uuid.UUID, userID int64, req LifecycleRequest) (*competition.Competition, error) {
	return s.mutateAsOrganizer(id, userID, func(c *competition.Competition) error {
		switch req.Action {
		case "open_registrations":
			c.OpenRegistrations()
		case "schedule":
			c.ScheduleCompetition()
		case "reopen_registrations":
			c.ReopenRegistrations()
		case "start":
			c.StartCompetition()
		case "finish":
			c.FinishCompetition()
		case "set_to_draft":
			return c.SetToDraft(req.Reason)
		case "cancel":
			return c.CancelCompetition(req.Reason)
		default:
			return apperrors.Validationf("invalid lifecycle action: %s", req.Action)
		}
		return nil
	})
}

// --- participants ----------------------------------------------------------

// JoinCompetition registra al usuario autenticado como competidor pendiente
func (s *CompetitionService) JoinCompetition(id uuid.UUID, userID int64, displayName string) (*competition.Participant, error) {
	c, err := s.competitions.GetByID(id)
	if err != nil {
		return nil, err
	}

	p, err := c.AddParticipant(userID, displayName, competition.RoleCompetitor, false)
	if err != nil {
		return nil, err
	}
	if err := s.competitions.Save(c); err != nil {
		return nil, err
	}

	logger.Service("competition").Info("Self-registration received", "competition_id", id, "user_id", userID)
	return p, nil
}

// AddParticipantRequest representa el alta de un participante por el organizador
type AddParticipantRequest struct {
	UserID    *int64  `json:"user_id"`
	Name      string  `json:"name" binding:"required"`
	Role      string  `json:"role"`
	GuestCode *string `json:"guest_code"`
}

// AddParticipant da de alta un participante. Sin user_id el alta es de un
// invitado sin identidad; con user_id entra ya aprobado con el rol pedido.
func (s *CompetitionService) AddParticipant(id uuid.UUID, actorID int64, req AddParticipantRequest) (*competition.Participant, error) {
	var pv validation.ParticipantValidation
	if err := pv.ValidateDisplayName(req.Name); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	role := competition.RoleCompetitor
	if req.Role != "" {
		parsed, ok := competition.RoleFromString(req.Role)
		if !ok {
			return nil, apperrors.Validationf("invalid participant role: %s", req.Role)
		}
		role = parsed
	}

	c, err := s.competitions.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !c.IsOrganizer(actorID) {
		return nil, apperrors.Forbidden("only an organizer may add participants")
	}

	var p *competition.Participant
	if req.UserID == nil {
		p, err = c.AddGuestParticipant(req.Name, req.GuestCode)
	} else {
		p, err = c.AddParticipant(*req.UserID, req.Name, role, true)
	}
	if err != nil {
		return nil, err
	}

	if err := s.competitions.Save(c); err != nil {
		return nil, err
	}
	return p, nil
}

// DecideParticipant aprueba o rechaza una inscripción pendiente
func (s *CompetitionService) DecideParticipant(id uuid.UUID, actorID int64, participantID uuid.UUID, approve bool) (*competition.Competition, error) {
	return s.mutateAsOrganizer(id, actorID, func(c *competition.Competition) error {
		if approve {
			return c.ApproveParticipant(participantID)
		}
		return c.RejectParticipant(participantID)
	})
}

// RemoveParticipant elimina un registro de participante
func (s *CompetitionService) RemoveParticipant(id uuid.UUID, actorID int64, participantID uuid.UUID) error {
	_, err := s.mutateAsOrganizer(id, actorID, func(c *competition.Competition) error {
		return c.RemoveParticipant(participantID)
	})
	return err
}

// AssignJudgeRequest representa la asignación de un juez
type AssignJudgeRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

// AssignJudge registra una identidad como juez de la competición
func (s *CompetitionService) AssignJudge(id uuid.UUID, actorID int64, req AssignJudgeRequest) (*competition.Participant, error) {
	c, err := s.competitions.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !c.IsOrganizer(actorID) {
		return nil, apperrors.Forbidden("only an organizer may assign judges")
	}

	p, err := c.AssignJudge(req.UserID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.competitions.Save(c); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveJudge elimina un registro de juez
func (s *CompetitionService) RemoveJudge(id uuid.UUID, actorID int64, participantID uuid.UUID) error {
	_, err := s.mutateAsOrganizer(id, actorID, func(c *competition.Competition) error {
		return c.RemoveJudge(participantID)
	})
	return err
}

// AssignSectorRequest representa la asignación de sector y stanowisko
type AssignSectorRequest struct {
	Sector string `json:"sector"`
	Stand  string `json:"stand"`
}

// AssignSector coloca a un competidor aprobado en un (sector, stanowisko).
// Un par ya ocupado por otro competidor aprobado es un conflicto y el mensaje
// nombra al ocupante.
func (s *CompetitionService) AssignSector(id uuid.UUID, actorID int64, participantID uuid.UUID, req AssignSectorRequest) (*competition.Participant, error) {
	c, err := s.competitions.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !c.IsOrganizer(actorID) {
		return nil, apperrors.Forbidden("only an organizer may assign sectors")
	}

	p := c.FindParticipant(participantID)
	if p == nil {
		return nil, apperrors.NotFound("participant not found")
	}
	if occupant := c.FindSlotOccupant(req.Sector, req.Stand, participantID); occupant != nil {
		return nil, apperrors.Conflictf("sector %s stand %s is already taken by %s", req.Sector, req.Stand, occupant.Name)
	}

	p.AssignToSectorAndStand(req.Sector, req.Stand)
	if err := s.competitions.Save(c); err != nil {
		return nil, err
	}
	return p, nil
}

// --- categories ------------------------------------------------------------

// CategoryRequest representa el enlace de una definición del catálogo
type CategoryRequest struct {
	DefinitionID        string     `json:"definition_id"`
	Enabled             *bool      `json:"enabled"`
	Primary             bool       `json:"primary"`
	SortOrder           int        `json:"sort_order"`
	MaxWinners          int        `json:"max_winners"`
	SpeciesFilterID     *uuid.UUID `json:"species_filter_id"`
	NameOverride        *string    `json:"name_override"`
	DescriptionOverride *string    `json:"description_override"`
}

// AddCategory vincula una definición del catálogo a la competición
func (s *CompetitionService) AddCategory(id uuid.UUID, actorID int64, req CategoryRequest) (*competition.Category, error) {
	if err := validation.ValidateUUID(req.DefinitionID, "definition_id"); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	definitionID := uuid.MustParse(req.DefinitionID)
	definition, err := s.definitions.GetByID(definitionID)
	if err != nil {
		return nil, err
	}

	c, err := s.competitions.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !c.IsOrganizer(actorID) {
		return nil, apperrors.Forbidden("only an organizer may manage categories")
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	maxWinners := req.MaxWinners
	if maxWinners <= 0 {
		maxWinners = 3
	}

	cat, err := c.AddCategory(competition.Category{
		DefinitionID:        definitionID,
		Definition:          *definition,
		Enabled:             enabled,
		Primary:             req.Primary,
		SortOrder:           req.SortOrder,
		MaxWinners:          maxWinners,
		SpeciesFilterID:     req.SpeciesFilterID,
		NameOverride:        req.NameOverride,
		DescriptionOverride: req.DescriptionOverride,
	})
	if err != nil {
		return nil, err
	}

	if err := s.competitions.Save(c); err != nil {
		return nil, err
	}
	return cat, nil
}

// UpdateCategory reemplaza los campos propios del enlace
func (s *CompetitionService) UpdateCategory(id uuid.UUID, actorID int64, categoryID uuid.UUID, req CategoryRequest) (*competition.Competition, error) {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	maxWinners := req.MaxWinners
	if maxWinners <= 0 {
		maxWinners = 3
	}

	return s.mutateAsOrganizer(id, actorID, func(c *competition.Competition) error {
		return c.UpdateCategory(competition.Category{
			ID:                  categoryID,
			Enabled:             enabled,
			Primary:             req.Primary,
			SortOrder:           req.SortOrder,
			MaxWinners:          maxWinners,
			SpeciesFilterID:     req.SpeciesFilterID,
			NameOverride:        req.NameOverride,
			DescriptionOverride: req.DescriptionOverride,
		})
	})
}

// RemoveCategory desvincula una categoría de la competición
func (s *CompetitionService) RemoveCategory(id uuid.UUID, actorID int64, categoryID uuid.UUID) error {
	_, err := s.mutateAsOrganizer(id, actorID, func(c *competition.Competition) error {
		return c.RemoveCategory(categoryID)
	})
	return err
}

// --- catches ---------------------------------------------------------------

// RecordCatchRequest representa el registro de una captura por un juez
type RecordCatchRequest struct {
	ParticipantID string     `json:"participant_id" binding:"required"`
	SpeciesID     *uuid.UUID `json:"species_id"`
	CaughtAt      time.Time  `json:"caught_at" binding:"required"`
	LengthCm      *float64   `json:"length_cm"`
	WeightKg      *float64   `json:"weight_kg"`
}

// RecordCatch registra una captura en el libro de la competición. El usuario
// actuante debe ser juez u organizador de esta competición.
func (s *CompetitionService) RecordCatch(id uuid.UUID, judgeUserID int64, req RecordCatchRequest) (*competition.Catch, error) {
	if err := validation.ValidateUUID(req.ParticipantID, "participant_id"); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	competitorID := uuid.MustParse(req.ParticipantID)

	var length *common.Length
	if req.LengthCm != nil {
		l, err := common.NewLength(*req.LengthCm)
		if err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		length = &l
	}
	var weight *common.Weight
	if req.WeightKg != nil {
		w, err := common.NewWeight(*req.WeightKg)
		if err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		weight = &w
	}

	c, err := s.competitions.GetByID(id)
	if err != nil {
		return nil, err
	}

	judge := c.ParticipantByUser(judgeUserID, competition.RoleJudge)
	if judge == nil {
		judge = c.ParticipantByUser(judgeUserID, competition.RoleOrganizer)
	}
	if judge == nil {
		return nil, apperrors.Forbidden("only a judge or organizer may record catches")
	}

	record, err := c.RecordFishCatch(competitorID, judge.ID, req.SpeciesID, req.CaughtAt, length, weight)
	if err != nil {
		return nil, err
	}

	if err := s.competitions.Save(c); err != nil {
		return nil, err
	}

	logger.Service("competition").Info("Catch recorded",
		"competition_id", id, "participant_id", competitorID, "judge_id", judge.ID)
	return record, nil
}

// RemoveCatch elimina una captura mientras la competición sigue en curso
func (s *CompetitionService) RemoveCatch(id uuid.UUID, judgeUserID int64, catchID uuid.UUID) error {
	c, err := s.competitions.GetByID(id)
	if err != nil {
		return err
	}
	if !c.CanJudge(judgeUserID) {
		return apperrors.Forbidden("only a judge or organizer may remove catches")
	}
	if err := c.RemoveFishCatch(catchID); err != nil {
		return err
	}
	return s.competitions.Save(c)
}

// mutateAsOrganizer carga el agregado, exige el rol de organizador, aplica
// una mutación y persiste el agregado completo.
func (s *CompetitionService) mutateAsOrganizer(id uuid.UUID, userID int64, fn func(c *competition.Competition) error) (*competition.Competition, error) {
	c, err := s.competitions.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !c.IsOrganizer(userID) {
		return nil, apperrors.Forbidden("only an organizer may perform this operation")
	}

	if err := fn(c); err != nil {
		return nil, err
	}

	if err := s.competitions.Save(c); err != nil {
		return nil, err
	}
	return c, nil
}
