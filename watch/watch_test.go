package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRerunsOnChange(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "solarpack.yml")
	require.NoError(t, os.WriteFile(fn, []byte("name: A\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, fn, 20*time.Millisecond, zerolog.Nop(), func(context.Context) error {
			runs.Add(1)
			return nil
		})
	}()

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(fn, []byte("name: B\n"), 0o644))
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestFileIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "solarpack.yml")
	require.NoError(t, os.WriteFile(fn, nil, 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	go File(ctx, fn, 10*time.Millisecond, zerolog.Nop(), func(context.Context) error { //nolint:errcheck
		runs.Add(1)
		return nil
	})
	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
}
