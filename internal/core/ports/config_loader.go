package ports

import "go.trai.ch/ahkdeps/internal/core/domain"

// ConfigLoader defines the interface for loading the workspace configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration that applies to cwd.
	// When no config file exists the defaults rooted at cwd are returned.
	Load(cwd string) (*domain.Config, error)

	// DiscoverRoot walks up from cwd to find the directory holding ahkdeps.yaml.
	// It returns cwd itself when no config file is found.
	DiscoverRoot(cwd string) (string, error)
}
