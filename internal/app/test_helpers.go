package app

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voglerr/eventplan/internal/hcl"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
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

// SetupAppTest writes the given definition files into a temporary directory
// and returns an App reading from it, along with its plan and log buffers.
func SetupAppTest(t *testing.T, files map[string]string, cfg Config) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg.ConfigPath = tmpDir
	if cfg.Format == "" {
		cfg.Format = "json"
	}
	cfg.LogLevel = "debug"

	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	outBuf := &SafeBuffer{}
	logBuf := &SafeBuffer{}
	testApp := New(outBuf, logBuf, appConfig, hcl.NewLoader())

	t.Cleanup(func() {
		if os.Getenv("EVENTPLAN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuf.String())
		}
	})

	return testApp, outBuf, logBuf
}
