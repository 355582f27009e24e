// Package deploy pushes the recipe collection to the device the Cooklang
// app reads from, by running a configured update command on a remote host
// over ssh. The last deployed git commit is tracked in a state file on the
// remote side so each deploy can report what changed.
package deploy

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/larderhq/larder/pkg/errors"
	"github.com/larderhq/larder/pkg/logging"
)

// stateFileName holds the last deployed commit hash on the remote host,
// inside the deploy path.
const stateFileName = "last_deployed_commit.txt"

// Config is the deploy target: where to connect, which directory to update,
// and the command that performs the update there.
type Config struct {
	Host    string
	Path    string
	Command string
}

// Validate checks that all three values are set.
func (c Config) Validate() error {
	switch {
	case c.Host == "":
		return errors.NewValidationError("deploy.host", nil, "deploy host is required")
	case c.Path == "":
		return errors.NewValidationError("deploy.path", nil, "remote path is required")
	case c.Command == "":
		return errors.NewValidationError("deploy.command", nil, "update command is required")
	}
	return nil
}

// Change is one file changed since the previous deploy, with its git status
// letter (A added, M modified, D deleted).
type Change struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

// Result reports one deploy run.
type Result struct {
	Commit   string   `json:"commit"`
	Previous string   `json:"previous_commit,omitempty"`
	Changes  []Change `json:"changes,omitempty"`
	Output   string   `json:"output,omitempty"`
}

// CommandRunner runs one local command and returns its combined output.
// The default implementation shells out; tests substitute a fake.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// Runner performs deploys for one configured target.
type Runner struct {
	cfg    Config
	runner CommandRunner
	logger *zerolog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithCommandRunner substitutes the command execution backend.
func WithCommandRunner(r CommandRunner) Option {
	return func(d *Runner) { d.runner = r }
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(d *Runner) { d.logger = logger }
}

// New creates a Runner for the target.
func New(cfg Config, opts ...Option) *Runner {
	d := &Runner{
		cfg:    cfg,
		runner: execRunner{},
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run deploys: it resolves the local HEAD commit, reads the remote state
// file to diff against the previous deploy, runs the configured update
// command in the remote path, and records the new commit remotely. A
// missing state file simply means no change report.
func (d *Runner) Run(ctx context.Context) (*Result, error) {
	if err := d.cfg.Validate(); err != nil {
		return nil, err
	}

	commit, err := d.runner.Run(ctx, "git", "rev-parse", "HEAD")
	if err != nil {
		return nil, errors.NewProcessError("resolve HEAD", "git rev-parse HEAD", commit, err)
	}

	result := &Result{Commit: commit}

	// Best effort; a fresh target has no state file yet.
	if previous, err := d.ssh(ctx, fmt.Sprintf("cat %s/%s", d.cfg.Path, stateFileName)); err == nil && previous != "" {
		result.Previous = previous
		if previous != commit {
			if diff, err := d.runner.Run(ctx, "git", "diff", "--name-status", previous, commit); err == nil {
				result.Changes = parseChanges(diff)
			} else {
				d.logger.Warn().Str("previous", previous).Msg("Could not diff against previous deploy")
			}
		}
	}

	output, err := d.ssh(ctx, fmt.Sprintf("cd %s && %s", d.cfg.Path, d.cfg.Command))
	if err != nil {
		return nil, errors.NewProcessError("remote update", d.cfg.Command, output, err)
	}
	result.Output = output

	record := fmt.Sprintf("printf '%%s' %s > %s/%s", commit, d.cfg.Path, stateFileName)
	if _, err := d.ssh(ctx, record); err != nil {
		d.logger.Warn().Err(err).Msg("Could not record deployed commit on remote host")
	}

	d.logger.Info().
		Str("host", d.cfg.Host).
		Str("commit", commit).
		Int("changes", len(result.Changes)).
		Msg("Deploy complete")
	return result, nil
}

func (d *Runner) ssh(ctx context.Context, command string) (string, error) {
	return d.runner.Run(ctx, "ssh", d.cfg.Host, command)
}

// parseChanges reads `git diff --name-status` output into Change records.
func parseChanges(diff string) []Change {
	var changes []Change
	for _, line := range strings.Split(diff, "\n") {
		parts := strings.Split(strings.TrimSpace(line), "\t")
		if len(parts) < 2 || parts[0] == "" {
			continue
		}
		changes = append(changes, Change{
			Status: parts[0][:1],
			Path:   parts[1],
		})
	}
	return changes
}
