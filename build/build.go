package build

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/moisescervera/solarpack/bundle"
	"github.com/moisescervera/solarpack/resources"
	"github.com/rs/zerolog"
)

// Options controls how a plan is carried out.
type Options struct {
	DryRun   bool
	Executor Executor
	Now      func() time.Time
}

// Result summarizes a finished build.
type Result struct {
	Command    []string // freezer command line
	Executable string
	BundlePath string // "" unless a bundle was produced
	Staged     int    // asset files staged into the bundle
	Record     *Record
}

// CommandLine returns the freezer command followed by its arguments.
func (pl *Plan) CommandLine() []string {
	return append([]string{pl.FreezerCommand}, pl.FreezerArgs()...)
}

// Build runs the freezer and, on macOS, wraps its output in an app bundle.
func Build(ctx context.Context, pl *Plan, opts Options, log zerolog.Logger) (*Result, error) {
	if opts.Executor == nil {
		opts.Executor = &ExecRunner{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	res := &Result{Command: pl.CommandLine(), Executable: pl.ExecutablePath()}
	log.Info().Object("plan", pl).Msg("packaging")

	if opts.DryRun {
		log.Info().Str("command", strings.Join(res.Command, " ")).Msg("dry run, freezer not started")
		return res, nil
	}

	log.Info().Str("command", pl.FreezerCommand).Msg("running freezer")
	if err := opts.Executor.Run(ctx, filepath.FromSlash(pl.BaseDir), pl.FreezerCommand, pl.FreezerArgs()...); err != nil {
		return nil, fmt.Errorf("freezer failed: %w", err)
	}
	if _, err := os.Stat(filepath.FromSlash(res.Executable)); err != nil {
		return nil, fmt.Errorf("missing freezer output: %w", err)
	}

	roots := []string{res.Executable}
	if dir := pl.OutputDir(); dir != "" {
		roots = []string{dir}
	}

	if pl.Bundle {
		b, staged, err := makeBundle(ctx, pl, log)
		if err != nil {
			return nil, err
		}
		res.BundlePath = filepath.ToSlash(b.Path)
		res.Staged = staged
		roots = append(roots, res.BundlePath)
	}

	rec, err := NewRecord(pl, pl.DistDir, roots, opts.Now())
	if err != nil {
		return nil, fmt.Errorf("build record: %w", err)
	}
	if err := rec.Write(pl.RecordPath()); err != nil {
		return nil, err
	}
	res.Record = rec

	log.Info().Int("files", rec.TotalFiles).Str("record", pl.RecordPath()).Msg("mission accomplished")
	return res, nil
}

func makeBundle(ctx context.Context, pl *Plan, log zerolog.Logger) (*bundle.Bundle, int, error) {
	exe := pl.Platform.ExecutableName(pl.Name)
	b, err := bundle.Create(ctx, bundle.Spec{
		Path:       pl.BundlePath(),
		Executable: exe,
		Icon:       pl.Icon,
		Info:       pl.BundleInfo,
	}, log)
	if err != nil {
		return nil, 0, fmt.Errorf("create bundle: %w", err)
	}

	if dir := pl.OutputDir(); dir != "" {
		err = CopyTree(filepath.FromSlash(dir), b.MacOSDir())
	} else {
		err = copyFile(filepath.FromSlash(pl.ExecutablePath()), filepath.Join(b.MacOSDir(), exe))
		if err == nil {
			err = os.Chmod(filepath.Join(b.MacOSDir(), exe), 0o755)
		}
	}
	if err != nil {
		return nil, 0, fmt.Errorf("populate bundle: %w", err)
	}

	staged, err := StageAssets(ctx, pl.Assets, b.ResourcesDir())
	if err != nil {
		return nil, 0, fmt.Errorf("stage assets: %w", err)
	}
	keep := map[string]struct{}{}
	for _, fn := range staged {
		keep[fn] = struct{}{}
	}
	if pl.Icon != "" {
		keep[path.Base(pl.Icon)] = struct{}{}
	}
	if err := PruneTree(b.ResourcesDir(), keep); err != nil {
		return nil, 0, fmt.Errorf("prune resources: %w", err)
	}
	log.Info().Int("files", len(staged)).Str("dir", b.ResourcesDir()).Msg("assets staged")

	if err := b.Verify(); err != nil {
		return nil, 0, err
	}
	return b, len(staged), nil
}

// Check verifies the output of a previous build: the executable exists and
// every asset is where the game looks for it. One-file builds carry their
// assets inside the executable, so only its presence is checked.
func Check(pl *Plan) error {
	if !pl.Bundle {
		if _, err := os.Stat(filepath.FromSlash(pl.ExecutablePath())); err != nil {
			return fmt.Errorf("missing executable: %w", err)
		}
		if pl.OneFile {
			return nil
		}
		dataDir := filepath.Join(filepath.FromSlash(pl.OutputDir()), resources.InternalDir)
		if missing := MissingAssets(pl.Assets, dataDir); len(missing) > 0 {
			return fmt.Errorf("output is missing assets: %s", strings.Join(missing, ", "))
		}
		return nil
	}

	b := &bundle.Bundle{Path: filepath.FromSlash(pl.BundlePath())}
	if err := b.Verify(); err != nil {
		return err
	}
	exe, err := b.ExecutablePath()
	if err != nil {
		return err
	}
	// resolve the way the game does at run time
	base := resources.BasePath(exe, "")
	if base == "" {
		return fmt.Errorf("bundle %s has no resource directory", b.Path)
	}
	if missing := MissingAssets(pl.Assets, base); len(missing) > 0 {
		return fmt.Errorf("bundle is missing assets: %s", strings.Join(missing, ", "))
	}
	return nil
}
