package build

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	utilfs "github.com/adnsv/go-utils/fs"
	"github.com/moisescervera/solarpack/resources"
	"golang.org/x/sync/errgroup"
)

// StageAssets copies every asset under root, keeping the destination layout.
// Files whose content is already up to date are left untouched. It returns
// the staged files, relative to root with slash separators.
func StageAssets(ctx context.Context, assets []Asset, root string) ([]string, error) {
	type job struct{ src, dst string }
	jobs := []job{}

	for _, a := range assets {
		if !a.IsDir {
			jobs = append(jobs, job{src: a.Src, dst: a.Dst})
			continue
		}
		err := filepath.WalkDir(filepath.FromSlash(a.Src), func(fn string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(filepath.FromSlash(a.Src), fn)
			if err != nil {
				return err
			}
			jobs = append(jobs, job{src: fn, dst: path.Join(a.Dst, filepath.ToSlash(rel))})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", a.Src, err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	staged := make([]string, 0, len(jobs))
	for _, j := range jobs {
		j := j
		staged = append(staged, j.dst)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return copyFile(j.src, filepath.Join(root, filepath.FromSlash(j.dst)))
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return staged, nil
}

// PruneTree removes files under root whose slash-separated relative path is
// not in keep, then drops directories left empty.
func PruneTree(root string, keep map[string]struct{}) error {
	dirs := []string{}
	err := filepath.WalkDir(root, func(fn string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if fn == root {
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, fn)
			return nil
		}
		rel, err := filepath.Rel(root, fn)
		if err != nil {
			return err
		}
		if _, ok := keep[filepath.ToSlash(rel)]; ok {
			return nil
		}
		return os.Remove(fn)
	})
	if err != nil {
		return err
	}
	// deepest first
	for i := len(dirs) - 1; i >= 0; i-- {
		if entries, err := os.ReadDir(dirs[i]); err == nil && len(entries) == 0 {
			if err := os.Remove(dirs[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	buf, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := utilfs.WriteFileIfChanged(dst, buf); err != nil {
		return fmt.Errorf("copy %s -> %s: %w", src, dst, err)
	}
	return nil
}

// CopyTree mirrors the directory src into dst, keeping file modes.
// Symbolic links are recreated as links, not followed.
func CopyTree(src, dst string) error {
	return filepath.WalkDir(src, func(fn string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, fn)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		switch {
		case d.Type()&fs.ModeSymlink != 0:
			return copySymlink(fn, target)
		case d.IsDir():
			return os.MkdirAll(target, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if err := copyFile(fn, target); err != nil {
			return err
		}
		return os.Chmod(target, info.Mode().Perm())
	})
}

func copySymlink(src, dst string) error {
	link, err := os.Readlink(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.RemoveAll(dst); err != nil {
		return err
	}
	if err := os.Symlink(link, dst); err != nil {
		return fmt.Errorf("link %s -> %s: %w", dst, link, err)
	}
	return nil
}

// MissingAssets lists asset destinations absent below the resource base
// path.
func MissingAssets(assets []Asset, base string) []string {
	missing := []string{}
	for _, a := range assets {
		if _, err := os.Stat(assetLocation(base, a.Dst)); err != nil {
			missing = append(missing, a.Dst)
		}
	}
	return missing
}

// assetLocation resolves dst below base. Destinations inside the assets
// folder go through the same lookup the game uses.
func assetLocation(base, dst string) string {
	if dst == resources.AssetsDir {
		return resources.Path(base, "")
	}
	if rel, ok := strings.CutPrefix(dst, resources.AssetsDir+"/"); ok {
		return resources.Path(base, rel)
	}
	return filepath.Join(base, filepath.FromSlash(dst))
}
