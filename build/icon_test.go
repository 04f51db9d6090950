package build

import (
	"path/filepath"
	"testing"

	"github.com/moisescervera/solarpack/model"
	"github.com/moisescervera/solarpack/platform"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestResolveIcon(t *testing.T) {
	icons := model.IconSet{"windows": "icon.ico", "darwin": "icon.icns"}

	t.Run("windows icon present", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"icon.ico": "ico"})
		got := ResolveIcon(platform.Windows, icons, dir, zerolog.Nop())
		assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "icon.ico")), got)
	})

	t.Run("macos icon absent", func(t *testing.T) {
		dir := t.TempDir()
		assert.Empty(t, ResolveIcon(platform.MacOS, icons, dir, zerolog.Nop()))
	})

	t.Run("linux has no icon", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"icon.ico": "ico", "icon.icns": "icns"})
		assert.Empty(t, ResolveIcon(platform.Linux, icons, dir, zerolog.Nop()))
	})

	t.Run("directory is not an icon", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"icon.icns/inner": "x"})
		assert.Empty(t, ResolveIcon(platform.MacOS, icons, dir, zerolog.Nop()))
	})
}

func TestResolveIconNeverReturnsMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"icon.ico": "ico"})
	icons := model.IconSet{"windows": "icon.ico", "darwin": "icon.icns", "linux": "gone.png"}

	for _, p := range []platform.Platform{platform.Windows, platform.MacOS, platform.Linux, "freebsd"} {
		got := ResolveIcon(p, icons, dir, zerolog.Nop())
		if got != "" {
			assert.FileExists(t, got, p.String())
		}
	}
}
