package build

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/moisescervera/solarpack/model"
	"github.com/rs/zerolog"
)

// Asset is a resolved asset mapping: an existing source on disk and its
// slash-separated destination relative to the package root. For a folder Dst
// is the folder itself; for a file it is the file path inside the
// destination folder.
type Asset struct {
	Src   string
	Dst   string
	IsDir bool
}

// Folder is the destination folder the asset is placed in.
func (a Asset) Folder() string {
	if a.IsDir {
		return a.Dst
	}
	return path.Dir(a.Dst)
}

// ResolveAssets expands globs and drops sources that do not exist. Missing
// sources are logged, not fatal.
func ResolveAssets(mappings []*model.AssetMapping, baseDir string, log zerolog.Logger) ([]Asset, error) {
	ret := []Asset{}
	seen := map[string]string{}

	add := func(src, dst string) error {
		st, err := os.Stat(src)
		if err != nil {
			log.Warn().Str("src", src).Msg("asset source not found, skipping")
			return nil
		}
		if prev, ok := seen[dst]; ok && prev != src {
			return fmt.Errorf("assets %s and %s both map to %s", prev, src, dst)
		}
		seen[dst] = src
		ret = append(ret, Asset{Src: src, Dst: dst, IsDir: st.IsDir()})
		return nil
	}

	for _, m := range mappings {
		src := model.NormalizePath(baseDir, m.Src)

		if !hasGlobMeta(m.Src) {
			if err := add(src, assetDst(src, m.Dst)); err != nil {
				return nil, err
			}
			continue
		}

		matches, err := filepath.Glob(filepath.FromSlash(src))
		if err != nil {
			return nil, fmt.Errorf("assets: bad pattern %q: %w", m.Src, err)
		}
		if len(matches) == 0 {
			log.Warn().Str("pattern", m.Src).Msg("asset pattern matched nothing")
		}
		for _, fn := range matches {
			fn = filepath.ToSlash(fn)
			dst := path.Base(fn)
			if m.Dst != "" {
				dst = path.Join(filepath.ToSlash(m.Dst), dst)
			}
			if err := add(fn, dst); err != nil {
				return nil, err
			}
		}
	}
	return ret, nil
}

// assetDst places src inside the destination folder dst. A folder without
// dst keeps its own name; a file always keeps its base name.
func assetDst(src, dst string) string {
	dst = filepath.ToSlash(dst)
	if st, err := os.Stat(src); err == nil && st.IsDir() {
		if dst == "" {
			return path.Base(src)
		}
		return path.Clean(dst)
	}
	return path.Join(dst, path.Base(src))
}

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, `*?[`)
}
