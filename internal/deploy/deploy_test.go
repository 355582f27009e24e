package deploy

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	larderrors "github.com/larderhq/larder/pkg/errors"
	"github.com/larderhq/larder/pkg/logging"
)

type call struct {
	name string
	args []string
}

// fakeRunner answers commands by prefix match against the joined command line.
type fakeRunner struct {
	calls     []call
	responses map[string]string
	failures  map[string]error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	line := strings.Join(append([]string{name}, args...), " ")
	for prefix, err := range f.failures {
		if strings.Contains(line, prefix) {
			return "", err
		}
	}
	for prefix, out := range f.responses {
		if strings.Contains(line, prefix) {
			return out, nil
		}
	}
	return "", nil
}

func (f *fakeRunner) commandLines() []string {
	lines := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		lines = append(lines, strings.Join(append([]string{c.name}, c.args...), " "))
	}
	return lines
}

func testConfig() Config {
	return Config{Host: "tablet", Path: "/data/recipes", Command: "git pull --ff-only"}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, testConfig().Validate())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing host", Config{Path: "/p", Command: "c"}},
		{"missing path", Config{Host: "h", Command: "c"}},
		{"missing command", Config{Host: "h", Path: "/p"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.True(t, larderrors.IsValidationError(err))
		})
	}
}

func TestRunFirstDeploy(t *testing.T) {
	fake := &fakeRunner{
		responses: map[string]string{
			"git rev-parse HEAD": "abc123",
			"git pull":           "Already up to date.",
		},
		failures: map[string]error{
			"cat /data/recipes/last_deployed_commit.txt": errors.New("no such file"),
		},
	}

	result, err := New(testConfig(), WithCommandRunner(fake), WithLogger(&logging.Nop)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "abc123", result.Commit)
	assert.Empty(t, result.Previous)
	assert.Empty(t, result.Changes)

	lines := fake.commandLines()
	assert.Contains(t, lines, "ssh tablet cd /data/recipes && git pull --ff-only")
	assert.Contains(t, lines, "ssh tablet printf '%s' abc123 > /data/recipes/last_deployed_commit.txt")
}

func TestRunReportsChanges(t *testing.T) {
	fake := &fakeRunner{
		responses: map[string]string{
			"git rev-parse HEAD":       "new456",
			"last_deployed_commit.txt": "old123",
			"git diff --name-status":   "M\tsoup/lentil.cook\nA\tbread/focaccia.cook\nD\tdesserts/flan.cook",
			"git pull":                 "Updating old123..new456",
		},
	}

	result, err := New(testConfig(), WithCommandRunner(fake), WithLogger(&logging.Nop)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "old123", result.Previous)
	assert.Equal(t, []Change{
		{Status: "M", Path: "soup/lentil.cook"},
		{Status: "A", Path: "bread/focaccia.cook"},
		{Status: "D", Path: "desserts/flan.cook"},
	}, result.Changes)
}

func TestRunNoChangesWhenCommitUnchanged(t *testing.T) {
	fake := &fakeRunner{
		responses: map[string]string{
			"git rev-parse HEAD":       "same789",
			"last_deployed_commit.txt": "same789",
		},
	}

	result, err := New(testConfig(), WithCommandRunner(fake), WithLogger(&logging.Nop)).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Changes)

	for _, line := range fake.commandLines() {
		assert.NotContains(t, line, "git diff")
	}
}

func TestRunRemoteCommandFails(t *testing.T) {
	fake := &fakeRunner{
		responses: map[string]string{
			"git rev-parse HEAD": "abc123",
		},
		failures: map[string]error{
			"git pull": errors.New("exit status 1"),
		},
	}

	_, err := New(testConfig(), WithCommandRunner(fake), WithLogger(&logging.Nop)).Run(context.Background())
	require.Error(t, err)

	var procErr *larderrors.ProcessError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, "remote update", procErr.Operation)
}

func TestRunInvalidConfig(t *testing.T) {
	fake := &fakeRunner{}
	_, err := New(Config{}, WithCommandRunner(fake), WithLogger(&logging.Nop)).Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, fake.calls, "nothing runs on invalid configuration")
}

func TestParseChanges(t *testing.T) {
	changes := parseChanges("M\ta.cook\n\nR100\told.cook\tnew.cook\nnot a diff line")
	assert.Equal(t, []Change{
		{Status: "M", Path: "a.cook"},
		{Status: "R", Path: "old.cook"},
	}, changes)
}
