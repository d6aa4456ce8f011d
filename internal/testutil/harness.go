// Package testutil provides a shared harness for integration tests: it
// materializes manifest fixtures on disk, runs the application through the
// same CLI path as cmd/cli, and captures output, logs, and errors.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/lenslab/lensconf/internal/app"
	"github.com/lenslab/lensconf/internal/cli"
	"github.com/stretchr/testify/require"
)

// HarnessResult captures everything a test may want to assert on after a run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
}

// WriteFiles materializes the fixture map under a fresh temp dir and returns
// the dir. Keys may contain subdirectories.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "failed to create fixture dir")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "failed to write fixture file")
	}
	return dir
}

// Run executes the application against the given fixture manifests with the
// given CLI arguments (the -config-dir flag is injected automatically).
// Startup panics are recovered into the result error, mirroring cmd/cli.
func Run(t *testing.T, files map[string]string, args ...string) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, files)
	fullArgs := append([]string{"-config-dir", dir}, args...)

	var out, logs bytes.Buffer
	result := &HarnessResult{}

	result.Err = func() (err error) {
		appConfig, shouldExit, parseErr := cli.Parse(fullArgs, &logs)
		if parseErr != nil {
			return parseErr
		}
		if shouldExit {
			return nil
		}

		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("application startup failed: %v", r)
			}
		}()

		a := app.NewApp(&out, &logs, appConfig)
		return a.Run(context.Background(), appConfig)
	}()

	result.Output = out.String()
	result.LogOutput = logs.String()
	return result
}
