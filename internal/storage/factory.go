package storage

import (
	"fmt"

	"github.com/wedkarski/competitions-api/internal/config"
)

// BackendType represents the type of storage backend
type BackendType string

const (
	// BackendPostgres represents PostgreSQL storage
	BackendPostgres BackendType = "postgres"
	// BackendMemory represents the in-process backend used by tests and
	// local development
	BackendMemory BackendType = "memory"
)

// Factory provides a factory pattern for creating storage containers
type Factory struct {
	backend BackendType

	// openPostgres is injected by the postgres package wiring in cmd to
	// avoid an import cycle between storage and storage/postgres.
	openPostgres func(cfg *config.Config) (Container, error)
	openMemory   func() Container
}

// NewFactory creates a new storage factory
func NewFactory(backend BackendType, openPostgres func(cfg *config.Config) (Container, error), openMemory func() Container) *Factory {
	return &Factory{
		backend:      backend,
		openPostgres: openPostgres,
		openMemory:   openMemory,
	}
}

// CreateContainer creates a storage container based on the configured type
func (f *Factory) CreateContainer(cfg *config.Config) (Container, error) {
	switch f.backend {
	case BackendPostgres:
		if f.openPostgres == nil {
			return nil, fmt.Errorf("postgres backend is not wired")
		}
		return f.openPostgres(cfg)
	case BackendMemory:
		if f.openMemory == nil {
			return nil, fmt.Errorf("memory backend is not wired")
		}
		return f.openMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", f.backend)
	}
}

// SupportedBackends returns a list of supported storage backends
func SupportedBackends() []BackendType {
	return []BackendType{BackendPostgres, BackendMemory}
}

// ValidateBackend validates if a storage backend is supported
func ValidateBackend(backend string) (BackendType, error) {
	bt := BackendType(backend)
	for _, supported := range SupportedBackends() {
		if bt == supported {
			return bt, nil
		}
	}
	return "", fmt.Errorf("unsupported storage backend: %s. Supported backends: %v", backend, SupportedBackends())
}
