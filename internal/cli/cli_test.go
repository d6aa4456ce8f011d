package cli

import (
	"bytes"
	"testing"

	"github.com/lenslab/lensconf/internal/app"
	"github.com/stretchr/testify/require"
)

// TestParse_ResolveWithOverrides validates command splitting: the first
// positional argument is the command, names become targets, and KEY=VALUE
// arguments become overrides.
func TestParse_ResolveWithOverrides(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	args := []string{
		"-c", "testdata/configs",
		"-set", "optimizer.lr=5e-5",
		"resolve", "train_unrolledadmm",
		"training.batch_size=2", "~files.n_files",
	}

	// --- Act ---
	cfg, shouldExit, err := Parse(args, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, app.CommandResolve, cfg.Command)
	require.Equal(t, []string{"train_unrolledadmm"}, cfg.Targets)
	require.Equal(t, []string{"optimizer.lr=5e-5", "training.batch_size=2", "~files.n_files"}, cfg.Overrides)
	require.Equal(t, "testdata/configs", cfg.ConfigDir)
}

// TestParse_Defaults validates the default option values.
func TestParse_Defaults(t *testing.T) {
	t.Parallel()
	// --- Act ---
	cfg, shouldExit, err := Parse([]string{"validate"}, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, "configs", cfg.ConfigDir)
	require.Equal(t, "yaml", cfg.Format)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, "info", cfg.LogLevel)
	require.False(t, cfg.Lenient)
	require.Zero(t, cfg.HTTPPort)
	require.Empty(t, cfg.Targets)
}

// TestParse_NoCommandPrintsUsage validates the clean-exit path.
func TestParse_NoCommandPrintsUsage(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	var out bytes.Buffer

	// --- Act ---
	cfg, shouldExit, err := Parse(nil, &out)

	// --- Assert ---
	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "Usage:")
	require.Contains(t, out.String(), "resolve NAME")
}

// TestParse_Help validates that -h exits cleanly instead of erroring.
func TestParse_Help(t *testing.T) {
	t.Parallel()
	_, shouldExit, err := Parse([]string{"-h"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.True(t, shouldExit)
}

// TestParse_Errors validates the exit-code-2 rejection paths.
func TestParse_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		args    []string
		wantSub string
	}{
		{"unknown flag", []string{"-bogus", "resolve", "x"}, "flag provided but not defined"},
		{"invalid format", []string{"-format", "toml", "resolve", "x"}, "invalid format"},
		{"invalid log-format", []string{"-log-format", "xml", "resolve", "x"}, "invalid log-format"},
		{"invalid log-level", []string{"-log-level", "loud", "resolve", "x"}, "invalid log-level"},
		{"unknown command", []string{"explode", "x"}, "unknown command"},
		{"resolve needs a name", []string{"resolve"}, "exactly one document name"},
		{"diff needs two names", []string{"diff", "a"}, "exactly two document names"},
		{"diff rejects overrides", []string{"diff", "a", "b", "training.epoch=1"}, "does not accept overrides"},
		{"empty config dir", []string{"-c", "", "-config-dir", "", "resolve", "x"}, "ConfigDir"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, shouldExit, err := Parse(tc.args, &bytes.Buffer{})

			require.False(t, shouldExit)
			require.Error(t, err)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, 2, exitErr.Code)
			require.Contains(t, err.Error(), tc.wantSub)
		})
	}
}

// TestParse_ShorthandWins validates that -c overrides -config-dir.
func TestParse_ShorthandWins(t *testing.T) {
	t.Parallel()
	cfg, _, err := Parse([]string{"-config-dir", "a", "-c", "b", "validate"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, "b", cfg.ConfigDir)
}
