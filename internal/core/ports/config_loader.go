package ports

import "github.com/mvoegeli/mach/internal/core/domain"

// ConfigLoader defines the interface for loading the target registry.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the machfile at the given path and returns the registry.
	Load(path string) (*domain.Registry, error)
}
