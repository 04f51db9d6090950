package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/moisescervera/solarpack/model"
	"github.com/moisescervera/solarpack/platform"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.py"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "icon.ico"), nil, 0o644))

	var out bytes.Buffer
	app := newApp(&out)
	err := app.Run([]string{"solarpack", "-m", filepath.Join(dir, "solarpack.yml"), "-p", "windows", "plan"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "platform:  windows")
	assert.Contains(t, out.String(), "icon.ico")
	assert.Contains(t, out.String(), "bundle:    none")
	assert.Contains(t, out.String(), "--exclude-module")
}

func TestPlanCommandMacOS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.py"), nil, 0o644))

	var out bytes.Buffer
	err := newApp(&out).Run([]string{"solarpack", "-m", filepath.Join(dir, "solarpack.yml"), "-p", "macos", "plan"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "icon:      (default)")
	assert.Contains(t, out.String(), "Solar System Project.app")
	assert.Contains(t, out.String(), "com.moisescervera.solarsystem 1.0.0")
}

func TestLoadPlan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.py"), nil, 0o644))
	fn := filepath.Join(dir, "solarpack.yml")

	pl, err := loadPlan(fn, "freebsd", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "freebsd", pl.Platform.String())
	assert.False(t, pl.Bundle)

	_, err = loadPlan(fn, "amiga", zerolog.Nop())
	assert.ErrorIs(t, err, platform.ErrUnsupportedPlatform)

	require.NoError(t, os.WriteFile(fn, []byte("name: [\n"), 0o644))
	_, err = loadPlan(fn, "linux", zerolog.Nop())
	assert.ErrorIs(t, err, model.ErrInvalidManifest)
}

func TestQuoteArgs(t *testing.T) {
	assert.Equal(t, `pyinstaller --name "Solar System" ""`, quoteArgs([]string{"pyinstaller", "--name", "Solar System", ""}))
}
