package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingSender) changed() []ChangedMsg {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ChangedMsg
	for _, m := range r.msgs {
		if c, ok := m.(ChangedMsg); ok {
			out = append(out, c)
		}
	}
	return out
}

func TestWatcher_StartStop(t *testing.T) {
	w := New(10*time.Millisecond, nil)
	w.AddPath(filepath.Join(t.TempDir(), "theme.yaml"))

	require.NoError(t, w.Start())
	assert.True(t, w.IsRunning())
	assert.NoError(t, w.Start(), "second start is a no-op")

	require.NoError(t, w.Stop())
	assert.False(t, w.IsRunning())
	assert.NoError(t, w.Stop(), "second stop is a no-op")
}

func TestWatcher_DebouncedChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: a\n"), 0644))

	sender := &recordingSender{}
	w := WatchTheme(path, 50*time.Millisecond, nil)
	w.SetSender(sender)
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })

	for i := range 3 {
		require.NoError(t, os.WriteFile(path, []byte("name: b\n"), 0644), "write %d", i)
	}

	require.Eventually(t, func() bool {
		return len(sender.changed()) > 0
	}, 2*time.Second, 10*time.Millisecond)

	got := sender.changed()
	assert.Len(t, got, 1, "burst of writes is reported once")
	assert.Equal(t, "theme.yaml", filepath.Base(got[0].Path))
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")

	sender := &recordingSender{}
	w := WatchTheme(path, 20*time.Millisecond, nil)
	w.SetSender(sender)
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644))
	time.Sleep(150 * time.Millisecond)

	assert.Empty(t, sender.changed())
}
