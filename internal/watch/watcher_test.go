package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigWatcherTriggersReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docportal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o644))

	var reloads atomic.Int32
	cw, err := NewConfigWatcher(path, 0, func() { reloads.Add(1) })
	require.NoError(t, err)
	cw.debounceTime = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, cw.Start(ctx))
	defer cw.Stop()

	require.NoError(t, os.WriteFile(path, []byte("a: 2\n"), 0o644))

	require.Eventually(t, func() bool {
		return reloads.Load() >= 1
	}, 3*time.Second, 20*time.Millisecond)
}

func TestConfigWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docportal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o644))

	var reloads atomic.Int32
	cw, err := NewConfigWatcher(path, 0, func() { reloads.Add(1) })
	require.NoError(t, err)
	cw.debounceTime = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, cw.Start(ctx))
	defer cw.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), reloads.Load())
}

func TestConfigWatcherPeriodicFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docportal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o644))

	var reloads atomic.Int32
	cw, err := NewConfigWatcher(path, 100*time.Millisecond, func() { reloads.Add(1) })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, cw.Start(ctx))
	defer cw.Stop()

	require.Eventually(t, func() bool {
		return reloads.Load() >= 2
	}, 3*time.Second, 20*time.Millisecond)
}
