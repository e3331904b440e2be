package postgres

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wedkarski/competitions-api/internal/apperrors"
	"github.com/wedkarski/competitions-api/internal/domain/competition"
	"github.com/wedkarski/competitions-api/internal/logger"
)

// CompetitionRepository persists the competition aggregate using GORM. The
// whole aggregate (participants, categories, catches) is loaded and saved as
// one unit; Save guards against lost updates with the aggregate Version.
type CompetitionRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewCompetitionRepository creates a new PostgreSQL competition repository
func NewCompetitionRepository(db *gorm.DB) *CompetitionRepository {
	return &CompetitionRepository{
		db:  db,
		log: logger.Repository("competition"),
	}
}

func (r *CompetitionRepository) Create(c *competition.Competition) error {
	r.log.Debug("Creating competition", "name", c.Name, "organizer_id", c.OrganizerID)

	if err := r.db.Create(c).Error; err != nil {
		r.log.Error("Failed to create competition", "error", err, "name", c.Name)
		return apperrors.Internal(err)
	}

	r.log.Info("Competition created successfully", "id", c.ID, "name", c.Name)
	return nil
}

func (r *CompetitionRepository) GetByID(id uuid.UUID) (*competition.Competition, error) {
	r.log.Debug("retrieving competition by ID", "competition_id", id)

	var c competition.Competition
	err := r.withAggregate().First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("competition not found")
		}
		r.log.Error("Failed to get competition by ID", "id", id, "error", err)
		return nil, apperrors.Internal(err)
	}

	return &c, nil
}

// GetByResultsToken resolves the public results access token. An unknown
// token returns (nil, nil) so the read path can render an empty result
// instead of an error.
func (r *CompetitionRepository) GetByResultsToken(token string) (*competition.Competition, error) {
	r.log.Debug("retrieving competition by results token")

	if token == "" {
		return nil, nil
	}

	var c competition.Competition
	err := r.withAggregate().First(&c, "results_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("Failed to get competition by results token", "error", err)
		return nil, apperrors.Internal(err)
	}

	return &c, nil
}

func (r *CompetitionRepository) GetByOrganizer(userID int64) ([]*competition.Competition, error) {
	r.log.Debug("retrieving competitions by organizer", "user_id", userID)

	var out []*competition.Competition
	err := r.db.
		Joins("JOIN participants ON participants.competition_id = competitions.id").
		Where("participants.user_id = ? AND participants.role = ?", userID, competition.RoleOrganizer).
		Order("competitions.created_at DESC").
		Find(&out).Error
	if err != nil {
		r.log.Error("Failed to get competitions by organizer", "user_id", userID, "error", err)
		return nil, apperrors.Internal(err)
	}

	return out, nil
}

// Save persists the mutated aggregate in one transaction. The version
// predicate makes concurrent writers lose cleanly: a stale snapshot updates
// zero rows and surfaces as a conflict.
func (r *CompetitionRepository) Save(c *competition.Competition) error {
	r.log.Debug("Saving competition aggregate", "id", c.ID, "version", c.Version)

	prev := c.Version
	c.Version = prev + 1

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&competition.Competition{}).
			Where("id = ? AND version = ?", c.ID, prev).
			Updates(map[string]interface{}{
				"name":       c.Name,
				"rules":      c.Rules,
				"type":       c.Type,
				"status":     c.Status,
				"start_date": c.TimeRange.StartDate,
				"end_date":   c.TimeRange.EndDate,
				"fishery_id": c.FisheryID,
				"version":    c.Version,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("competition was modified concurrently, reload and retry")
		}

		// Owned collections are replaced wholesale; the aggregate is the
		// single writer for all of them.
		if err := tx.Where("competition_id = ?", c.ID).Delete(&competition.Catch{}).Error; err != nil {
			return err
		}
		if err := tx.Where("competition_id = ?", c.ID).Delete(&competition.Category{}).Error; err != nil {
			return err
		}
		if err := tx.Where("competition_id = ?", c.ID).Delete(&competition.Participant{}).Error; err != nil {
			return err
		}

		for i := range c.Participants {
			if err := tx.Create(&c.Participants[i]).Error; err != nil {
				return err
			}
		}
		for i := range c.Categories {
			if err := tx.Omit("Definition").Create(&c.Categories[i]).Error; err != nil {
				return err
			}
		}
		for i := range c.Catches {
			if err := tx.Create(&c.Catches[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		c.Version = prev
		if apperrors.IsCode(err, apperrors.CodeConflict) {
			r.log.Warn("Concurrent modification detected", "id", c.ID, "version", prev)
			return err
		}
		r.log.Error("Failed to save competition aggregate", "id", c.ID, "error", err)
		return apperrors.Convert(err)
	}

	r.log.Debug("Competition aggregate saved", "id", c.ID, "version", c.Version)
	return nil
}

func (r *CompetitionRepository) Delete(id uuid.UUID) error {
	r.log.Debug("Deleting competition", "id", id)

	res := r.db.Delete(&competition.Competition{}, "id = ?", id)
	if res.Error != nil {
		r.log.Error("Failed to delete competition", "id", id, "error", res.Error)
		return apperrors.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("competition not found")
	}

	r.log.Info("Competition deleted", "id", id)
	return nil
}

func (r *CompetitionRepository) withAggregate() *gorm.DB {
	return r.db.
		Preload("Participants").
		Preload("Categories.Definition").
		Preload("Catches")
}
