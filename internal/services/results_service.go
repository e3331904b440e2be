package services

import (
	"github.com/google/uuid"

	"github.com/wedkarski/competitions-api/internal/domain/competition"
	"github.com/wedkarski/competitions-api/internal/domain/results"
	"github.com/wedkarski/competitions-api/internal/logger"
	"github.com/wedkarski/competitions-api/internal/storage"
)

// ResultsService calcula las clasificaciones de una competición
type ResultsService struct {
	competitions storage.CompetitionRepository
	species      storage.SpeciesRepository
}

// NewResultsService crea una nueva instancia del servicio de resultados
func NewResultsService(competitions storage.CompetitionRepository, species storage.SpeciesRepository) *ResultsService {
	return &ResultsService{
		competitions: competitions,
		species:      species,
	}
}

// ResultsView es la respuesta pública de resultados
type ResultsView struct {
	CompetitionID   uuid.UUID                   `json:"competition_id"`
	CompetitionName string                      `json:"competition_name"`
	Status          string                      `json:"status"`
	Results         *results.CompetitionResults `json:"results"`
}

// GetResults calcula los resultados para el organizador o un participante
func (s *ResultsService) GetResults(competitionID uuid.UUID) (*ResultsView, error) {
	c, err := s.competitions.GetByID(competitionID)
	if err != nil {
		return nil, err
	}
	return s.buildView(c)
}

// GetResultsByToken resuelve el token público opaco. Un token desconocido
// devuelve una vista nula sin error, nunca una pista de qué competiciones
// existen.
func (s *ResultsService) GetResultsByToken(token string) (*ResultsView, error) {
	c, err := s.competitions.GetByResultsToken(token)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return s.buildView(c)
}

func (s *ResultsService) buildView(c *competition.Competition) (*ResultsView, error) {
	names, err := s.speciesNames()
	if err != nil {
		return nil, err
	}

	computed := results.Compute(c, names)
	logger.Results().Debug("Results computed",
		"competition_id", c.ID, "categories", len(computed.Categories), "sectors", len(computed.Sectors))

	return &ResultsView{
		CompetitionID:   c.ID,
		CompetitionName: c.Name,
		Status:          c.Status.String(),
		Results:         computed,
	}, nil
}

func (s *ResultsService) speciesNames() (map[uuid.UUID]string, error) {
	all, err := s.species.GetAll()
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(all))
	for _, sp := range all {
		names[sp.ID] = sp.Name
	}
	return names, nil
}
