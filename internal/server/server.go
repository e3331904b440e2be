package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wedkarski/competitions-api/internal/config"
	"github.com/wedkarski/competitions-api/internal/handlers"
	"github.com/wedkarski/competitions-api/internal/logger"
	"github.com/wedkarski/competitions-api/internal/middleware"
	"github.com/wedkarski/competitions-api/internal/services"
	"github.com/wedkarski/competitions-api/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	store      storage.Container
}

// New creates a new server instance
func New(cfg *config.Config, store storage.Container) *Server {
	return &Server{
		config: cfg,
		store:  store,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	router := s.setupRouter()

	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: router,

		// Timeouts seguros según estándares de Go
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting HTTP server", "port", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(s.config.Server.GinMode)

	router := gin.New()

	// Middleware básico
	router.Use(middleware.RequestLog())
	router.Use(gin.Recovery())

	// CORS middleware
	corsConfig := cors.DefaultConfig()
	if s.config.CORS.AllowOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(s.config.CORS.AllowOrigins, ",")
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = strings.Split(s.config.CORS.AllowMethods, ",")
	corsConfig.AllowHeaders = strings.Split(s.config.CORS.AllowHeaders, ",")
	router.Use(cors.New(corsConfig))

	// Inicializar servicios
	competitionService := services.NewCompetitionService(
		s.store.Competitions(), s.store.Definitions(), s.store.Fisheries())
	resultsService := services.NewResultsService(s.store.Competitions(), s.store.Species())
	catalogService := services.NewCatalogService(
		s.store.Definitions(), s.store.Species(), s.store.Fisheries())

	// Inicializar handlers
	competitionHandler := handlers.NewCompetitionHandler(competitionService)
	participantHandler := handlers.NewParticipantHandler(competitionService)
	categoryHandler := handlers.NewCategoryHandler(competitionService)
	catchHandler := handlers.NewCatchHandler(competitionService)
	resultsHandler := handlers.NewResultsHandler(resultsService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	// Health check
	router.GET("/ping", func(c *gin.Context) {
		if err := s.store.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"message": "Competitions API is degraded",
				"status":  "unhealthy",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Competitions API is running",
			"status":  "healthy",
		})
	})

	s.setupAPIRoutes(router,
		competitionHandler, participantHandler, categoryHandler,
		catchHandler, resultsHandler, catalogHandler)

	return router
}

// setupAPIRoutes configures all API routes
func (s *Server) setupAPIRoutes(
	router *gin.Engine,
	competitionHandler *handlers.CompetitionHandler,
	participantHandler *handlers.ParticipantHandler,
	categoryHandler *handlers.CategoryHandler,
	catchHandler *handlers.CatchHandler,
	resultsHandler *handlers.ResultsHandler,
	catalogHandler *handlers.CatalogHandler,
) {
	// Los resultados públicos se resuelven solo por el token opaco
	router.GET("/api/results/:token", resultsHandler.GetPublicResults)

	// El catálogo de referencia es de solo lectura y público
	catalogRead := router.Group("/api/catalog")
	{
		catalogRead.GET("/definitions", catalogHandler.ListDefinitions)
		catalogRead.GET("/definitions/:id", catalogHandler.GetDefinition)
		catalogRead.GET("/species", catalogHandler.ListSpecies)
		catalogRead.GET("/fisheries", catalogHandler.ListFisheries)
		catalogRead.GET("/fisheries/:id", catalogHandler.GetFishery)
	}

	api := router.Group("/api")
	api.Use(middleware.Auth(s.config.Auth.JWTSecret))
	{
		competitions := api.Group("/competitions")
		{
			competitions.POST("", competitionHandler.CreateCompetition)
			competitions.GET("", competitionHandler.GetMyCompetitions)
			competitions.GET("/:id", competitionHandler.GetCompetition)
			competitions.PUT("/:id", competitionHandler.UpdateCompetition)
			competitions.DELETE("/:id", competitionHandler.DeleteCompetition)
			competitions.POST("/:id/lifecycle", competitionHandler.ApplyLifecycleAction)

			competitions.POST("/:id/participants", participantHandler.AddParticipant)
			competitions.POST("/:id/participants/:pid/approval", participantHandler.DecideParticipant)
			competitions.DELETE("/:id/participants/:pid", participantHandler.RemoveParticipant)
			competitions.PUT("/:id/participants/:pid/assignment", participantHandler.AssignSector)

			competitions.POST("/:id/judges", participantHandler.AssignJudge)
			competitions.DELETE("/:id/judges/:pid", participantHandler.RemoveJudge)

			competitions.POST("/:id/categories", categoryHandler.AddCategory)
			competitions.PUT("/:id/categories/:cid", categoryHandler.UpdateCategory)
			competitions.DELETE("/:id/categories/:cid", categoryHandler.RemoveCategory)

			competitions.POST("/:id/catches", catchHandler.RecordCatch)
			competitions.DELETE("/:id/catches/:catchID", catchHandler.RemoveCatch)

			competitions.GET("/:id/results", resultsHandler.GetResults)
		}

		// Solo la creación de definiciones requiere autenticación
		api.POST("/catalog/definitions", catalogHandler.CreateDefinition)
	}
}
