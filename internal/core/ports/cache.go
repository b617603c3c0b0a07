package ports

import (
	"context"

	"go.trai.ch/ahkdeps/internal/core/domain"
)

// DependencyCache memoizes per-file include analysis.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type DependencyCache interface {
	// Analyze returns the cached analysis of file, computing it on a miss.
	// A missing file yields an empty DependencyInfo that is not cached.
	Analyze(ctx context.Context, file string) domain.DependencyInfo
	// Invalidate drops the cached analysis of file.
	Invalidate(file string)
}
