package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wedkarski/competitions-api/internal/config"
	"github.com/wedkarski/competitions-api/internal/logger"
	"github.com/wedkarski/competitions-api/internal/server"
	"github.com/wedkarski/competitions-api/internal/storage"
	"github.com/wedkarski/competitions-api/internal/storage/memory"
	"github.com/wedkarski/competitions-api/internal/storage/postgres"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Log.Level)
	log := logger.Get()

	backend, err := storage.ValidateBackend(cfg.Storage.Backend)
	if err != nil {
		log.Error("Invalid storage backend", "error", err)
		os.Exit(1)
	}

	factory := storage.NewFactory(backend,
		postgres.NewContainer,
		func() storage.Container { return memory.NewContainer() },
	)

	store, err := factory.CreateContainer(cfg)
	if err != nil {
		log.Error("Failed to initialize storage", "backend", backend, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	srv := server.New(cfg, store)

	go func() {
		if err := srv.Start(); err != nil {
			log.Error("Server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped")
}
