package bundle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/moisescervera/solarpack/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInfo() model.BundleInfo {
	return model.BundleInfo{
		Identifier:     "com.moisescervera.solarsystem",
		DisplayName:    "Solar System Project",
		Version:        "1.0.0",
		HighResolution: true,
	}
}

func TestCreateWithIcon(t *testing.T) {
	dir := t.TempDir()
	icon := filepath.Join(dir, "icon.icns")
	require.NoError(t, os.WriteFile(icon, []byte("icns"), 0o644))

	b, err := Create(context.Background(), Spec{
		Path:       filepath.Join(dir, "Solar System Project.app"),
		Executable: "SolarSystemProject",
		Icon:       icon,
		Info:       testInfo(),
	}, zerolog.Nop())
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(b.ResourcesDir(), "icon.icns"))
	assert.DirExists(t, b.MacOSDir())

	pkg, err := os.ReadFile(filepath.Join(b.ContentsDir(), "PkgInfo"))
	require.NoError(t, err)
	assert.Equal(t, "APPL????", string(pkg))

	buf, err := os.ReadFile(b.InfoPlistPath())
	require.NoError(t, err)
	p, err := ReadInfoPlist(buf)
	require.NoError(t, err)
	assert.Equal(t, "com.moisescervera.solarsystem", p.Identifier)
	assert.Equal(t, "Solar System Project", p.DisplayName)
	assert.Equal(t, "1.0.0", p.ShortVersion)
	assert.Equal(t, "SolarSystemProject", p.Executable)
	assert.Equal(t, "icon.icns", p.IconFile)
	assert.True(t, p.HighResolution)
}

func TestCreateWithoutIcon(t *testing.T) {
	dir := t.TempDir()
	b, err := Create(context.Background(), Spec{
		Path:       filepath.Join(dir, "App.app"),
		Executable: "App",
		Info:       testInfo(),
	}, zerolog.Nop())
	require.NoError(t, err)

	buf, err := os.ReadFile(b.InfoPlistPath())
	require.NoError(t, err)
	assert.NotContains(t, string(buf), "CFBundleIconFile")

	entries, err := os.ReadDir(b.ResourcesDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateReplacesPrevious(t *testing.T) {
	dir := t.TempDir()
	app := filepath.Join(dir, "App.app")
	stale := filepath.Join(app, "Contents", "MacOS", "stale")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, nil, 0o755))

	_, err := Create(context.Background(), Spec{Path: app, Executable: "App", Info: testInfo()}, zerolog.Nop())
	require.NoError(t, err)
	assert.NoFileExists(t, stale)
}

func TestCreateKeepsResources(t *testing.T) {
	dir := t.TempDir()
	app := filepath.Join(dir, "App.app")
	asset := filepath.Join(app, "Contents", "Resources", "assets", "data", "Earth.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(asset), 0o755))
	require.NoError(t, os.WriteFile(asset, []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(app, "Contents", "Info.plist"), []byte("old"), 0o644))

	b, err := Create(context.Background(), Spec{Path: app, Executable: "App", Info: testInfo()}, zerolog.Nop())
	require.NoError(t, err)
	assert.FileExists(t, asset)

	buf, err := os.ReadFile(b.InfoPlistPath())
	require.NoError(t, err)
	assert.Contains(t, string(buf), "CFBundleIdentifier")
}

func TestCreateRejectsBadPath(t *testing.T) {
	_, err := Create(context.Background(), Spec{Path: t.TempDir(), Executable: "App", Info: testInfo()}, zerolog.Nop())
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	b, err := Create(context.Background(), Spec{
		Path:       filepath.Join(dir, "App.app"),
		Executable: "App",
		Info:       testInfo(),
	}, zerolog.Nop())
	require.NoError(t, err)

	assert.ErrorIs(t, b.Verify(), ErrNotBundle)

	require.NoError(t, os.WriteFile(filepath.Join(b.MacOSDir(), "App"), []byte("#!/bin/sh\n"), 0o755))
	assert.NoError(t, b.Verify())
}
