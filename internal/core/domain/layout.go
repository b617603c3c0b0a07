package domain

import "time"

const (
	// ConfigFileName is the name of the workspace configuration file.
	ConfigFileName = "ahkdeps.yaml"

	// EnvFileName is the name of the optional workspace environment file.
	EnvFileName = ".env"

	// ScriptExtension is the extension appended to include names that lack one.
	ScriptExtension = ".ahk"

	// LibDirName is the name of the library folder searched for <Name> includes.
	LibDirName = "Lib"

	// DefaultDebounce is the default window used to coalesce file events.
	DefaultDebounce = 300 * time.Millisecond

	// DefaultPayloadMaxDepth is the default depth after which payload trees are cut.
	DefaultPayloadMaxDepth = 5

	// DefaultPayloadMaxBytes is the default ceiling for an encoded payload (10 MiB).
	DefaultPayloadMaxBytes = 10 * 1024 * 1024

	// DefaultSnapshotMaxLines is the default number of tree lines a snapshot may render.
	DefaultSnapshotMaxLines = 10000

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750
)

// DefaultExtensions returns the script extensions tracked when none are configured.
func DefaultExtensions() []string {
	return []string{".ahk", ".ah2"}
}

// DefaultIgnorePatterns returns the ignore globs applied when none are configured.
func DefaultIgnorePatterns() []string {
	return []string{"**/.git/**", "**/.jj/**", "**/node_modules/**"}
}
