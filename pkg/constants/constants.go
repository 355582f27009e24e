// Package constants provides shared constants used throughout the larder codebase.
// This includes timeouts, file permissions, well-known filenames, and limits
// that should be consistent across the application.
package constants

import "time"

// Recipe collection layout constants.
const (
	// RecipeExtension is the file extension for Cooklang recipe files.
	RecipeExtension = ".cook"

	// IndexFileName is the default name of the generated tag index document.
	IndexFileName = "tags-index.md"

	// ConfigDirName is the configuration-only directory excluded from recipe scans.
	ConfigDirName = "config"

	// AisleFileName is the shopping-aisle configuration file under ConfigDirName.
	AisleFileName = "aisle.conf"
)

// Timeout constants define various timeout durations used in the application.
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP downloads.
	DefaultHTTPTimeout = 30 * time.Second

	// SuggestTimeout is the timeout for a single text-generation request.
	SuggestTimeout = 2 * time.Minute

	// DeployTimeout is the timeout for the remote update command.
	DeployTimeout = 5 * time.Minute
)

// File permission constants define standard Unix file permissions.
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x).
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--).
	FilePermissions = 0644
)

// Limit constants define various limits and capacities.
const (
	// MaxConcurrentReads caps the number of recipe files parsed in parallel.
	MaxConcurrentReads = 8

	// PopularTagLimit is the number of top tags included as popularity
	// context in suggestion prompts.
	PopularTagLimit = 8
)
