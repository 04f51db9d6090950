// Package bundle lays out a macOS .app directory around a built executable.
package bundle

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/moisescervera/solarpack/atomicfile"
	"github.com/moisescervera/solarpack/model"
	"github.com/rs/zerolog"
)

var ErrNotBundle = errors.New("not an application bundle")

// Spec describes the bundle to create.
type Spec struct {
	Path       string // X.app directory
	Executable string // executable name inside Contents/MacOS
	Icon       string // .icns source file, "" for the default icon
	Info       model.BundleInfo
}

// Bundle is an application bundle on disk.
type Bundle struct {
	Path string
}

func (b *Bundle) ContentsDir() string  { return filepath.Join(b.Path, "Contents") }
func (b *Bundle) MacOSDir() string     { return filepath.Join(b.ContentsDir(), "MacOS") }
func (b *Bundle) ResourcesDir() string { return filepath.Join(b.ContentsDir(), "Resources") }
func (b *Bundle) InfoPlistPath() string {
	return filepath.Join(b.ContentsDir(), "Info.plist")
}

// ExecutablePath returns the main executable named in Info.plist.
func (b *Bundle) ExecutablePath() (string, error) {
	buf, err := os.ReadFile(b.InfoPlistPath())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotBundle, err)
	}
	p, err := ReadInfoPlist(buf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotBundle, err)
	}
	return filepath.Join(b.MacOSDir(), p.Executable), nil
}

// Create rebuilds the bundle skeleton at spec.Path: Contents/MacOS,
// Contents/Resources (with the icon, if any), Info.plist and PkgInfo.
// Everything from a previous bundle is removed except Contents/Resources,
// which the caller restages and prunes. The caller fills Contents/MacOS
// afterwards.
func Create(ctx context.Context, spec Spec, log zerolog.Logger) (*Bundle, error) {
	if !strings.HasSuffix(spec.Path, ".app") {
		return nil, fmt.Errorf("bundle path %q must end in .app", spec.Path)
	}
	if spec.Executable == "" {
		return nil, errors.New("bundle executable name is empty")
	}

	b := &Bundle{Path: filepath.FromSlash(spec.Path)}
	log.Info().Str("bundle", b.Path).Msg("creating application bundle")

	if err := b.clear(); err != nil {
		return nil, err
	}
	for _, dir := range []string{b.MacOSDir(), b.ResourcesDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	iconName := ""
	if spec.Icon != "" {
		iconName = filepath.Base(spec.Icon)
		buf, err := os.ReadFile(filepath.FromSlash(spec.Icon))
		if err != nil {
			return nil, fmt.Errorf("read icon: %w", err)
		}
		if err := atomicfile.WriteFile(filepath.Join(b.ResourcesDir(), iconName), buf, 0o644); err != nil {
			return nil, err
		}
	} else {
		log.Debug().Msg("bundle uses the default icon")
	}

	info, err := NewInfoPlist(spec.Info, spec.Executable, iconName).Marshal()
	if err != nil {
		return nil, fmt.Errorf("encode Info.plist: %w", err)
	}
	if err := atomicfile.WriteFile(b.InfoPlistPath(), info, 0o644); err != nil {
		return nil, err
	}
	pkgInfo := []byte(packageType + signature)
	if err := atomicfile.WriteFile(filepath.Join(b.ContentsDir(), "PkgInfo"), pkgInfo, 0o644); err != nil {
		return nil, err
	}
	return b, nil
}

// clear removes a previous bundle, keeping Contents/Resources.
func (b *Bundle) clear() error {
	st, err := os.Lstat(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	if !st.IsDir() {
		return os.Remove(b.Path)
	}

	entries, err := os.ReadDir(b.Path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fn := filepath.Join(b.Path, e.Name())
		if e.Name() != "Contents" || !e.IsDir() {
			if err := os.RemoveAll(fn); err != nil {
				return err
			}
			continue
		}
		inner, err := os.ReadDir(fn)
		if err != nil {
			return err
		}
		for _, c := range inner {
			if c.Name() == "Resources" && c.IsDir() {
				continue
			}
			if err := os.RemoveAll(filepath.Join(fn, c.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// Verify checks that the executable named in Info.plist exists and is
// executable.
func (b *Bundle) Verify() error {
	exe, err := b.ExecutablePath()
	if err != nil {
		return err
	}
	st, err := os.Stat(exe)
	if err != nil {
		return fmt.Errorf("%w: missing executable: %v", ErrNotBundle, err)
	}
	if st.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: %s is not executable", ErrNotBundle, exe)
	}
	return nil
}
