package domain

import "go.trai.ch/zerr"

var (
	// ErrNoActiveFile is returned when pinning without a file context.
	ErrNoActiveFile = zerr.New("no active file to pin")

	// ErrNoRoot is returned when a snapshot is requested without any root file.
	ErrNoRoot = zerr.New("no root file selected")

	// ErrRootNotFound is returned when the requested root file does not exist.
	ErrRootNotFound = zerr.New("root file not found")

	// ErrRootNotScript is returned when the requested root file does not carry a tracked extension.
	ErrRootNotScript = zerr.New("root file is not a tracked script")

	// ErrWorkspaceRootInvalid is returned when the workspace root is not a directory.
	ErrWorkspaceRootInvalid = zerr.New("workspace root is not a directory")

	// ErrFailedToGetRoot is returned when the workspace root path cannot be made absolute.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of workspace root")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrEnvFileParseFailed is returned when the workspace .env file cannot be parsed.
	ErrEnvFileParseFailed = zerr.New("failed to parse .env file")

	// ErrInvalidDebounce is returned when the debounce window cannot be parsed or is negative.
	ErrInvalidDebounce = zerr.New("invalid debounce window")

	// ErrInvalidExtension is returned when a tracked extension does not start with a dot.
	ErrInvalidExtension = zerr.New("invalid script extension, expected a leading '.'")

	// ErrInvalidIgnorePattern is returned when an ignore glob is malformed.
	ErrInvalidIgnorePattern = zerr.New("invalid ignore pattern")

	// ErrInvalidLimit is returned when a size or depth limit is negative.
	ErrInvalidLimit = zerr.New("invalid limit, expected a non-negative value")

	// ErrFileReadFailed is returned when a script file cannot be read.
	ErrFileReadFailed = zerr.New("failed to read script file")

	// ErrWorkspaceWalkFailed is returned when the workspace cannot be enumerated.
	ErrWorkspaceWalkFailed = zerr.New("failed to walk workspace")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")

	// ErrPayloadEncodeFailed is returned when a tree payload cannot be encoded.
	ErrPayloadEncodeFailed = zerr.New("failed to encode tree payload")

	// ErrCacheCreateFailed is returned when the dependency cache storage cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create dependency cache")

	// ErrUnknownOutputMode is returned when the watch output flag is not recognized.
	ErrUnknownOutputMode = zerr.New("unknown output mode, expected auto, redraw or append")

	// ErrSchedulerClosed is returned when a flush is requested on a closed scheduler.
	ErrSchedulerClosed = zerr.New("refresh scheduler is closed")
)
