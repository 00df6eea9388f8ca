// Package testutil provides shared helpers for integration-style tests:
// writing configuration trees to disk and running the app end to end
// against them.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/roterski/basisgo/internal/app"
	"github.com/roterski/basisgo/internal/hcl"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteConfig writes the given files below a fresh temp dir and returns
// the dir. Relative paths in the map create subdirectories as needed.
func WriteConfig(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

// TaskResult holds the outcomes of one end-to-end app run.
type TaskResult struct {
	// Output is what the task wrote to standard output.
	Output string
	// LogOutput is the captured log stream.
	LogOutput string
	// Err is the error returned by App.Run, if any.
	Err error
	// ConfigDir is the temp dir the configuration was written to.
	ConfigDir string
}

// RunTask writes the given configuration files to disk and runs the app
// end to end with the given config. An empty ConfigPath is pointed at the
// written tree; logging defaults to debug so failures carry context.
func RunTask(t *testing.T, files map[string]string, cfg app.Config) *TaskResult {
	t.Helper()

	dir := WriteConfig(t, files)
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = dir
	}
	if cfg.Root == "" {
		cfg.Root = dir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	outBuf := &bytes.Buffer{}
	logBuf := &SafeBuffer{}
	basisApp := app.NewApp(outBuf, logBuf, appConfig, hcl.NewLoader())
	runErr := basisApp.Run(context.Background())

	t.Cleanup(func() {
		if os.Getenv("BASISGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuf.String())
		}
	})

	return &TaskResult{
		Output:    outBuf.String(),
		LogOutput: logBuf.String(),
		Err:       runErr,
		ConfigDir: dir,
	}
}
