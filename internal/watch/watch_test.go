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

func startWatcher(t *testing.T, paths []string, callback ChangeCallback) {
	t.Helper()

	w, err := New(paths, callback)
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})
}

func TestWatcherCallsBackOnWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "token.abi.json")
	require.NoError(t, os.WriteFile(target, []byte("[]"), 0644))

	changed := make(chan string, 4)
	startWatcher(t, []string{target}, func(path string) error {
		changed <- path
		return nil
	})

	require.NoError(t, os.WriteFile(target, []byte(`[{"type":"receive"}]`), 0644))

	select {
	case path := <-changed:
		assert.Equal(t, "token.abi.json", filepath.Base(path))
	case <-time.After(2 * time.Second):
		t.Fatal("no callback after write")
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "watched.json")
	require.NoError(t, os.WriteFile(target, []byte("[]"), 0644))

	var calls atomic.Int32
	startWatcher(t, []string{target}, func(string) error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("[]"), 0644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "burst.json")
	require.NoError(t, os.WriteFile(target, []byte("[]"), 0644))

	var calls atomic.Int32
	w, err := New([]string{target}, func(string) error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)
	w.SetDebounce(300 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(target, []byte("[]"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewErrors(t *testing.T) {
	_, err := New(nil, func(string) error { return nil })
	assert.Error(t, err)

	_, err = New([]string{filepath.Join(t.TempDir(), "missing-dir", "abi.json")}, func(string) error { return nil })
	assert.Error(t, err)
}
