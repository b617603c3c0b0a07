// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ahkdeps/internal/adapters/config"
	_ "go.trai.ch/ahkdeps/internal/adapters/fs"
	_ "go.trai.ch/ahkdeps/internal/adapters/logger"
	_ "go.trai.ch/ahkdeps/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/ahkdeps/internal/app"
)
