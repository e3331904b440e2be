package postgres

import (
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/wedkarski/competitions-api/internal/config"
	"github.com/wedkarski/competitions-api/internal/logger"
	"github.com/wedkarski/competitions-api/internal/storage"
)

// Container implements storage.Container over PostgreSQL
type Container struct {
	db              *gorm.DB
	log             *log.Logger
	competitionRepo storage.CompetitionRepository
	definitionRepo  storage.DefinitionRepository
	speciesRepo     storage.SpeciesRepository
	fisheryRepo     storage.FisheryRepository
}

// NewContainer creates a new repository container with all repositories initialized
func NewContainer(cfg *config.Config) (storage.Container, error) {
	log := logger.Repository("postgres_container")
	log.Info("Initializing PostgreSQL repository container...")

	db, err := Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		log.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	container := NewContainerWithDB(db)

	if err := container.Health(); err != nil {
		log.Error("Container health check failed", "error", err)
		return nil, fmt.Errorf("container health check failed: %w", err)
	}

	log.Info("PostgreSQL repository container initialized successfully")
	return container, nil
}

// NewContainerWithDB creates a container with an existing database connection
func NewContainerWithDB(db *gorm.DB) *Container {
	return &Container{
		db:              db,
		log:             logger.Repository("postgres_container"),
		competitionRepo: NewCompetitionRepository(db),
		definitionRepo:  NewDefinitionRepository(db),
		speciesRepo:     NewSpeciesRepository(db),
		fisheryRepo:     NewFisheryRepository(db),
	}
}

// Competitions returns the competition repository
func (c *Container) Competitions() storage.CompetitionRepository {
	return c.competitionRepo
}

// Definitions returns the category definition repository
func (c *Container) Definitions() storage.DefinitionRepository {
	return c.definitionRepo
}

// Species returns the fish species repository
func (c *Container) Species() storage.SpeciesRepository {
	return c.speciesRepo
}

// Fisheries returns the fishery repository
func (c *Container) Fisheries() storage.FisheryRepository {
	return c.fisheryRepo
}

// Health checks the underlying database connection
func (c *Container) Health() error {
	return HealthCheck(c.db)
}

// Close closes the underlying database connection
func (c *Container) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	c.log.Info("Database connection closed")
	return nil
}
