// Package config loads the workspace configuration from ahkdeps.yaml and .env.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/ahkdeps/internal/adapters/fs"
	"go.trai.ch/ahkdeps/internal/core/domain"
	"go.trai.ch/ahkdeps/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment overrides, read from the process and from the workspace .env file.
const (
	EnvLibraryPaths = "AHKDEPS_LIBRARY_PATHS"
	EnvDebounce     = "AHKDEPS_DEBOUNCE"

	envPrefix = "AHKDEPS_"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a Loader reporting non-fatal issues through logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// DiscoverRoot returns the directory of the nearest ahkdeps.yaml at or above
// cwd, or cwd itself when there is none.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFailedToGetRoot.Error()), "cwd", cwd)
	}
	if configPath, ok := findConfiguration(abs); ok {
		return filepath.Dir(configPath), nil
	}
	return abs, nil
}

// Load resolves the configuration that applies to cwd.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFailedToGetRoot.Error()), "cwd", cwd)
	}

	cfg := domain.DefaultConfig(abs)
	if configPath, ok := findConfiguration(abs); ok {
		var file Configfile
		if err := readAndUnmarshalYAML(configPath, &file); err != nil {
			return nil, zerr.With(err, "file", configPath)
		}
		if err := applyConfigfile(cfg, &file, configPath); err != nil {
			return nil, zerr.With(err, "file", configPath)
		}
		cfg.Source = configPath
	}

	if err := l.applyEnvironment(cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

// readAndUnmarshalYAML decodes configPath strictly; unknown keys are errors.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath comes from findConfiguration
	content, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}

func applyConfigfile(cfg *domain.Config, file *Configfile, configPath string) error {
	cfg.Root = resolveRoot(configPath, file.Root)

	if file.Extensions != nil {
		cfg.Extensions = file.Extensions
	}
	if file.Ignore != nil {
		cfg.Ignore = file.Ignore
	}
	cfg.LibraryPaths = rebasePaths(file.LibraryPaths, filepath.Dir(configPath))

	if file.Debounce != "" {
		d, err := parseDebounce(file.Debounce)
		if err != nil {
			return err
		}
		cfg.Debounce = d
	}

	limits := []struct {
		key    string
		value  *int
		target *int
	}{
		{"cache.maxEntries", file.Cache.MaxEntries, &cfg.CacheMaxEntries},
		{"payload.maxDepth", file.Payload.MaxDepth, &cfg.Payload.MaxDepth},
		{"payload.maxBytes", file.Payload.MaxBytes, &cfg.Payload.MaxBytes},
		{"snapshot.maxLines", file.Snapshot.MaxLines, &cfg.SnapshotMaxLines},
	}
	for _, limit := range limits {
		if limit.value == nil {
			continue
		}
		if *limit.value < 0 {
			return zerr.With(zerr.With(domain.ErrInvalidLimit, "key", limit.key), "value", *limit.value)
		}
		*limit.target = *limit.value
	}
	return nil
}

// applyEnvironment overlays the workspace .env file, then the process environment.
func (l *Loader) applyEnvironment(cfg *domain.Config) error {
	values := map[string]string{}

	envPath := filepath.Join(cfg.Root, domain.EnvFileName)
	if _, err := os.Stat(envPath); err == nil {
		fileValues, err := godotenv.Read(envPath)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrEnvFileParseFailed.Error()), "file", envPath)
		}
		for key, value := range fileValues {
			if !strings.HasPrefix(key, envPrefix) {
				continue
			}
			if key != EnvLibraryPaths && key != EnvDebounce {
				l.Logger.Warn(fmt.Sprintf("%s: unknown setting %s ignored", envPath, key))
				continue
			}
			values[key] = value
		}
	}
	for _, key := range []string{EnvLibraryPaths, EnvDebounce} {
		if value, ok := os.LookupEnv(key); ok {
			values[key] = value
		}
	}

	if raw, ok := values[EnvLibraryPaths]; ok {
		var paths []string
		for _, p := range filepath.SplitList(raw) {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		cfg.LibraryPaths = append(cfg.LibraryPaths, rebasePaths(paths, cfg.Root)...)
	}
	if raw, ok := values[EnvDebounce]; ok {
		d, err := parseDebounce(raw)
		if err != nil {
			return zerr.With(err, "env", EnvDebounce)
		}
		cfg.Debounce = d
	}
	return nil
}

func parseDebounce(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrInvalidDebounce.Error()), "debounce", raw)
	}
	if d < 0 {
		return 0, zerr.With(domain.ErrInvalidDebounce, "debounce", raw)
	}
	return d, nil
}

func validate(cfg *domain.Config) error {
	info, err := os.Stat(cfg.Root)
	if err != nil || !info.IsDir() {
		return zerr.With(domain.ErrWorkspaceRootInvalid, "root", cfg.Root)
	}

	extensions := make([]string, 0, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if len(ext) < 2 || ext[0] != '.' {
			return zerr.With(domain.ErrInvalidExtension, "extension", ext)
		}
		extensions = append(extensions, ext)
	}
	slices.Sort(extensions)
	cfg.Extensions = slices.Compact(extensions)

	return fs.ValidatePatterns(cfg.Ignore)
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	configuredRoot = domain.NormalizeSeparators(configuredRoot)
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// rebasePaths makes relative paths absolute against base.
func rebasePaths(paths []string, base string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = domain.NormalizeSeparators(p)
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}
