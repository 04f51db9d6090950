package model

import (
	"path/filepath"
)

// NormalizePath resolves fn against refdir and returns a clean slash path.
// An empty fn stays empty.
func NormalizePath(refdir string, fn string) string {
	if fn == "" {
		return fn
	}
	if !filepath.IsAbs(fn) {
		fn = filepath.Join(refdir, fn)
	}
	fn = filepath.Clean(fn)
	return filepath.ToSlash(fn)
}
