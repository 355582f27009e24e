// Package application defines the dependency surface subcommands receive
// from the CLI app, so command packages do not import the app package
// directly.
package application

import (
	"github.com/rs/zerolog"

	"github.com/larderhq/larder/internal/deploy"
	"github.com/larderhq/larder/internal/output"
)

// Application is implemented by the CLI app and handed to each subcommand
// constructor.
type Application interface {
	// Logger returns the configured application logger.
	Logger() *zerolog.Logger

	// Formatter returns the output formatter for the active --format.
	Formatter() output.Formatter

	// Root returns the recipe collection root directory.
	Root() string

	// IndexPath returns the path of the tag index document under the root.
	IndexPath() string

	// GenAIKey returns the API key for the text-generation service.
	GenAIKey() string

	// GenAIModel returns the configured generation model ID.
	GenAIModel() string

	// DeployTarget returns the configured deploy target.
	DeployTarget() deploy.Config
}
