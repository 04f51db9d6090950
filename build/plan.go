// Package build turns a manifest into a concrete packaging plan and carries
// it out: freezer invocation, asset staging, macOS bundle and build record.
package build

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"

	utilfs "github.com/adnsv/go-utils/fs"
	"github.com/moisescervera/solarpack/model"
	"github.com/moisescervera/solarpack/platform"
	"github.com/rs/zerolog"
)

var ErrMissingEntry = errors.New("entry script not found")

// Plan is a manifest evaluated against one platform and the current state of
// the filesystem.
type Plan struct {
	Platform platform.Platform
	BaseDir  string

	Entry   string // absolute entry script
	Name    string
	Console bool
	OneFile bool
	Icon    string // "" means the freezer's default icon
	Assets  []Asset
	Exclude []string

	Bundle     bool // wrap the executable in a .app
	BundleInfo model.BundleInfo

	FreezerCommand string
	FreezerExtra   []string
	DistDir        string
	WorkDir        string
}

// NewPlan evaluates prj for p. The only hard failure is a missing entry
// script; a missing icon or asset source degrades with a warning.
func NewPlan(prj *model.Project, p platform.Platform, log zerolog.Logger) (*Plan, error) {
	base := prj.Dir()

	entry := model.NormalizePath(base, prj.Entry)
	if !utilfs.FileExists(entry) {
		return nil, fmt.Errorf("%w: %s", ErrMissingEntry, entry)
	}

	assets, err := ResolveAssets(prj.Assets, base, log)
	if err != nil {
		return nil, err
	}

	pl := &Plan{
		Platform:       p,
		BaseDir:        base,
		Entry:          entry,
		Name:           prj.Name,
		Console:        prj.Console,
		OneFile:        prj.OneFile,
		Icon:           ResolveIcon(p, prj.Icons, base, log),
		Assets:         assets,
		Exclude:        append([]string(nil), prj.Excludes...),
		Bundle:         p.IsMacOS(),
		BundleInfo:     prj.Bundle,
		FreezerCommand: prj.Freezer.Command,
		FreezerExtra:   append([]string(nil), prj.Freezer.Args...),
		DistDir:        model.NormalizePath(base, prj.Freezer.DistDir),
		WorkDir:        model.NormalizePath(base, prj.Freezer.WorkDir),
	}

	// the app bundle wraps a one-folder build; assets go to Resources
	if pl.Bundle {
		pl.OneFile = false
	}
	return pl, nil
}

// FreezerArgs renders the PyInstaller-compatible command line.
func (pl *Plan) FreezerArgs() []string {
	args := []string{"--noconfirm", "--clean", "--name", pl.Name}
	if pl.DistDir != "" {
		args = append(args, "--distpath", filepath.FromSlash(pl.DistDir))
	}
	if pl.WorkDir != "" {
		args = append(args, "--workpath", filepath.FromSlash(pl.WorkDir))
	}
	if pl.OneFile {
		args = append(args, "--onefile")
	} else {
		args = append(args, "--onedir")
	}
	if pl.Console {
		args = append(args, "--console")
	} else {
		args = append(args, "--windowed")
	}
	if pl.Icon != "" {
		args = append(args, "--icon", filepath.FromSlash(pl.Icon))
	}
	if !pl.Bundle {
		sep := pl.Platform.PathListSeparator()
		for _, a := range pl.Assets {
			args = append(args, "--add-data", filepath.FromSlash(a.Src)+sep+a.Folder())
		}
	}
	for _, m := range pl.Exclude {
		args = append(args, "--exclude-module", m)
	}
	args = append(args, pl.FreezerExtra...)
	return append(args, filepath.FromSlash(pl.Entry))
}

// ExecutablePath is where the freezer leaves the main executable.
func (pl *Plan) ExecutablePath() string {
	exe := pl.Platform.ExecutableName(pl.Name)
	if pl.OneFile {
		return path.Join(pl.DistDir, exe)
	}
	return path.Join(pl.DistDir, pl.Name, exe)
}

// OutputDir is the one-folder build directory; empty for one-file builds.
func (pl *Plan) OutputDir() string {
	if pl.OneFile {
		return ""
	}
	return path.Join(pl.DistDir, pl.Name)
}

// BundlePath is the .app directory produced on macOS.
func (pl *Plan) BundlePath() string {
	return path.Join(pl.DistDir, pl.BundleInfo.DisplayName+".app")
}

// RecordPath is the JSON build record written after a successful build.
func (pl *Plan) RecordPath() string {
	return path.Join(pl.DistDir, pl.Name+".manifest.json")
}

// MarshalZerologObject lets a plan be logged as one structured event.
func (pl *Plan) MarshalZerologObject(e *zerolog.Event) {
	e.Str("platform", pl.Platform.String()).
		Str("entry", pl.Entry).
		Str("name", pl.Name).
		Bool("console", pl.Console).
		Bool("onefile", pl.OneFile).
		Str("icon", pl.Icon).
		Int("assets", len(pl.Assets)).
		Strs("exclude", pl.Exclude).
		Bool("bundle", pl.Bundle)
}
