package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/moisescervera/solarpack/model"
	"github.com/stretchr/testify/require"
)

// writeFiles creates files (slash paths relative to dir) with the given content.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for fn, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(fn))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func newProject(t *testing.T, dir string) *model.Project {
	t.Helper()
	prj := model.DefaultProject(dir)
	require.NoError(t, prj.Finalize())
	return prj
}

// fakeFreezer records invocations and produces the expected dist layout.
type fakeFreezer struct {
	calls [][]string
	pl    *Plan
	err   error
}

func (f *fakeFreezer) Run(ctx context.Context, dir string, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return f.err
	}
	exe := filepath.FromSlash(f.pl.ExecutablePath())
	if err := os.MkdirAll(filepath.Dir(exe), 0o755); err != nil {
		return err
	}
	if !f.pl.OneFile {
		lib := filepath.Join(filepath.FromSlash(f.pl.OutputDir()), "_internal", "base_library.zip")
		if err := os.MkdirAll(filepath.Dir(lib), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(lib, []byte("zip"), 0o644); err != nil {
			return err
		}
	}
	return os.WriteFile(exe, []byte("\x7fELF"), 0o755)
}
