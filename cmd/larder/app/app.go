// Package app provides the application context and dependency management
// for the larder CLI. It centralizes configuration, logging, and output
// formatting for the subcommands.
package app

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/larderhq/larder/internal/cmd/application"
	"github.com/larderhq/larder/internal/deploy"
	"github.com/larderhq/larder/internal/output"
	"github.com/larderhq/larder/pkg/constants"
	"github.com/larderhq/larder/pkg/errors"
)

// App represents the larder application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger
}

// Ensure App satisfies the subcommand dependency surface at compile time.
var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "failed to load configuration", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Formatter returns the output formatter for the active format setting.
func (a *App) Formatter() output.Formatter {
	return output.NewFormatter(output.DetectFormat(a.config.Format))
}

// Root returns the recipe collection root directory.
func (a *App) Root() string {
	return a.config.Root
}

// IndexPath returns the path of the tag index document.
func (a *App) IndexPath() string {
	if a.config.IndexFile != "" {
		return a.config.IndexFile
	}
	return filepath.Join(a.config.Root, constants.IndexFileName)
}

// GenAIKey returns the API key for the text-generation service.
func (a *App) GenAIKey() string {
	return a.config.GenAIKey
}

// GenAIModel returns the configured generation model ID.
func (a *App) GenAIModel() string {
	return a.config.GenAIModel
}

// DeployTarget returns the configured deploy target.
func (a *App) DeployTarget() deploy.Config {
	return deploy.Config{
		Host:    a.config.DeployHost,
		Path:    a.config.DeployPath,
		Command: a.config.DeployCommand,
	}
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
