package jobs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"notebooklm-bridge/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingWarmer struct {
	calls atomic.Int32
	err   error
}

func (w *countingWarmer) Warm(context.Context) error {
	w.calls.Add(1)
	return w.err
}

type countingInvalidator struct {
	calls atomic.Int32
}

func (i *countingInvalidator) Invalidate(context.Context) {
	i.calls.Add(1)
}

func TestCacheWarmer_RunsImmediatelyAndRepeats(t *testing.T) {
	warmer := &countingWarmer{}
	w, err := NewCacheWarmer(warmer, 50*time.Millisecond, time.Second)
	require.NoError(t, err)

	require.NoError(t, w.Start())
	defer w.Stop()

	require.Eventually(t, func() bool { return warmer.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestCacheWarmer_RunToleratesErrors(t *testing.T) {
	for _, err := range []error{services.ErrNotAuthenticated, errors.New("upstream down")} {
		warmer := &countingWarmer{err: err}
		w, newErr := NewCacheWarmer(warmer, time.Hour, time.Second)
		require.NoError(t, newErr)

		w.run()

		assert.Equal(t, int32(1), warmer.calls.Load())
	}
}

func TestAuthFileWatcher_InvalidatesOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	target := &countingInvalidator{}
	w := NewAuthFileWatcher(path, target)
	w.debounce = 10 * time.Millisecond

	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`{"session_id":"new"}`), 0o600))

	require.Eventually(t, func() bool { return target.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestAuthFileWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	target := &countingInvalidator{}
	w := NewAuthFileWatcher(filepath.Join(dir, "auth.json"), target)
	w.debounce = 10 * time.Millisecond

	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o600))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, w.Stop())

	assert.Zero(t, target.calls.Load())
}

func TestAuthFileWatcher_MissingDirectory(t *testing.T) {
	w := NewAuthFileWatcher(filepath.Join(t.TempDir(), "nope", "auth.json"), &countingInvalidator{})

	assert.Error(t, w.Start())
	assert.NoError(t, w.Stop())
}
