package config

// Configfile is the on-disk shape of ahkdeps.yaml.
type Configfile struct {
	Root         string      `yaml:"root"`
	Extensions   []string    `yaml:"extensions"`
	LibraryPaths []string    `yaml:"libraryPaths"`
	Ignore       []string    `yaml:"ignore"`
	Debounce     string      `yaml:"debounce"`
	Cache        CacheDTO    `yaml:"cache"`
	Payload      PayloadDTO  `yaml:"payload"`
	Snapshot     SnapshotDTO `yaml:"snapshot"`
}

// CacheDTO configures the dependency cache.
type CacheDTO struct {
	MaxEntries *int `yaml:"maxEntries"`
}

// PayloadDTO configures tree serialization limits.
type PayloadDTO struct {
	MaxDepth *int `yaml:"maxDepth"`
	MaxBytes *int `yaml:"maxBytes"`
}

// SnapshotDTO configures snapshot rendering.
type SnapshotDTO struct {
	MaxLines *int `yaml:"maxLines"`
}
