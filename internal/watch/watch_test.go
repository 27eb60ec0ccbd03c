package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldReloadDebounces(t *testing.T) {
	w := New("doc.md", nil)
	now := time.Now()
	assert.True(t, w.ShouldReload(now))
	assert.False(t, w.ShouldReload(now.Add(Debounce/2)))
	assert.True(t, w.ShouldReload(now.Add(2*Debounce)))
}

func TestNextEventSingleWaiter(t *testing.T) {
	w := New("doc.md", nil)
	assert.Nil(t, w.NextEvent(), "no channel before start")

	w.Events = make(chan struct{}, 1)
	require.NotNil(t, w.NextEvent())
	assert.Nil(t, w.NextEvent())
	w.ResetWaiting()
	assert.NotNil(t, w.NextEvent())
}

func TestSignalCoalesces(t *testing.T) {
	w := New("doc.md", nil)
	w.Events = make(chan struct{}, 1)
	w.Done = make(chan struct{})
	w.Signal()
	w.Signal()
	assert.Len(t, w.Events, 1)

	close(w.Done)
	<-w.Events
	w.Signal()
	assert.Empty(t, w.Events)
}

func TestMatches(t *testing.T) {
	dir := t.TempDir()
	w := New(filepath.Join(dir, "doc.md"), nil)
	assert.True(t, w.Matches(filepath.Join(dir, "doc.md")))
	assert.False(t, w.Matches(filepath.Join(dir, "other.md")))
	assert.False(t, w.Matches(""))
}

func TestWatcherSeesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# one"), 0o600))

	w := New(path, t.Logf)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("# two"), 0o600))

	select {
	case <-w.NextEvent():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for file event")
	}
}

func TestStartMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "doc.md"), nil)
	err := w.Start(context.Background())
	require.Error(t, err)
	assert.False(t, w.Started)
	w.Stop()
}
