// Package resources locates packaged assets at run time, both inside a
// frozen build and in a development checkout.
package resources

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// AssetsDir is the folder holding all game assets, relative to the base path.
	AssetsDir = "assets"

	// InternalDir holds the data files of a one-folder freezer build.
	InternalDir = "_internal"
)

// BasePath returns the directory that contains AssetsDir for the executable
// exe. Inside X.app/Contents/MacOS it is X.app/Contents/Resources. For a
// frozen one-folder build it is the _internal directory, or the executable
// directory itself, whichever ships an assets folder. Otherwise devRoot.
func BasePath(exe string, devRoot string) string {
	dir := filepath.Dir(exe)
	if filepath.Base(dir) == "MacOS" {
		contents := filepath.Dir(dir)
		if filepath.Base(contents) == "Contents" && strings.HasSuffix(filepath.Dir(contents), ".app") {
			return filepath.Join(contents, "Resources")
		}
	}
	for _, cand := range []string{filepath.Join(dir, InternalDir), dir} {
		if st, err := os.Stat(filepath.Join(cand, AssetsDir)); err == nil && st.IsDir() {
			return cand
		}
	}
	return devRoot
}

// Path resolves rel (with either / or \ separators) under base/assets.
func Path(base, rel string) string {
	rel = strings.ReplaceAll(rel, `\`, "/")
	return filepath.Join(base, AssetsDir, filepath.FromSlash(rel))
}
