package build

import (
	"os"

	"github.com/moisescervera/solarpack/model"
	"github.com/moisescervera/solarpack/platform"
	"github.com/rs/zerolog"
)

// ResolveIcon picks the icon configured for p. It returns the normalized
// path of an existing regular file, or "" when the platform has no icon
// configured or the configured file is missing. A missing file is logged as
// a warning and never fails the build.
func ResolveIcon(p platform.Platform, icons model.IconSet, baseDir string, log zerolog.Logger) string {
	fn, ok := icons[p.String()]
	if !ok || fn == "" {
		log.Debug().Str("platform", p.String()).Msg("no icon configured, using default icon")
		return ""
	}

	abs := model.NormalizePath(baseDir, fn)
	st, err := os.Stat(abs)
	if err != nil || !st.Mode().IsRegular() {
		log.Warn().
			Str("platform", p.String()).
			Str("icon", abs).
			Msg("icon file not found, using default icon")
		return ""
	}
	return abs
}
