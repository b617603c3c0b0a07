package ports

// PathResolver turns a raw include into a concrete file.
//
//go:generate mockgen -destination=mocks/mock_resolver.go -package=mocks -source=resolver.go
type PathResolver interface {
	// Resolve returns the first existing candidate for raw as seen from sourceFile.
	// The second result is false when no candidate exists; that is not an error.
	Resolve(raw, sourceFile string) (string, bool)
}
