package application

import (
	"github.com/rs/zerolog"

	"github.com/larderhq/larder/internal/deploy"
	"github.com/larderhq/larder/internal/output"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function
// field; a nil field returns a default value.
//
// Example usage:
//
//	mock := &application.Mock{
//	    RootFunc: func() string { return tmpDir },
//	}
//	cmd := index.NewCommand(mock)
//	// ... test command
type Mock struct {
	LoggerFunc       func() *zerolog.Logger
	FormatterFunc    func() output.Formatter
	RootFunc         func() string
	IndexPathFunc    func() string
	GenAIKeyFunc     func() string
	GenAIModelFunc   func() string
	DeployTargetFunc func() deploy.Config
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// Formatter returns a formatter using the mock function or the JSON formatter.
func (m *Mock) Formatter() output.Formatter {
	if m.FormatterFunc != nil {
		return m.FormatterFunc()
	}
	return output.NewFormatter(output.FormatJSON)
}

// Root returns the collection root using the mock function or ".".
func (m *Mock) Root() string {
	if m.RootFunc != nil {
		return m.RootFunc()
	}
	return "."
}

// IndexPath returns the index path using the mock function or the default name.
func (m *Mock) IndexPath() string {
	if m.IndexPathFunc != nil {
		return m.IndexPathFunc()
	}
	return "tags-index.md"
}

// GenAIKey returns the API key using the mock function or empty.
func (m *Mock) GenAIKey() string {
	if m.GenAIKeyFunc != nil {
		return m.GenAIKeyFunc()
	}
	return ""
}

// GenAIModel returns the model ID using the mock function or empty.
func (m *Mock) GenAIModel() string {
	if m.GenAIModelFunc != nil {
		return m.GenAIModelFunc()
	}
	return ""
}

// DeployTarget returns the deploy target using the mock function or zero.
func (m *Mock) DeployTarget() deploy.Config {
	if m.DeployTargetFunc != nil {
		return m.DeployTargetFunc()
	}
	return deploy.Config{}
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
