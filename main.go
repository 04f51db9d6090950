package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	cli "github.com/jawher/mow.cli"
	"github.com/moisescervera/solarpack/build"
	"github.com/moisescervera/solarpack/logging"
	"github.com/moisescervera/solarpack/model"
	"github.com/moisescervera/solarpack/platform"
	"github.com/moisescervera/solarpack/watch"
	"github.com/rs/zerolog"
)

func main() {
	app := newApp(os.Stdout)
	app.Run(os.Args)
}

func newApp(stdout io.Writer) *cli.Cli {
	app := cli.App("solarpack", "Packaging tool for the Solar System Project game")
	app.Version("version", "solarpack "+app_version())

	manifestFN := app.StringOpt("m manifest", model.DefaultManifestName, "build manifest (defaults are used when it does not exist)")
	platformTag := app.String(cli.StringOpt{
		Name:   "p platform",
		Desc:   "target platform: windows, darwin/macos or linux (default: host)",
		EnvVar: platform.EnvOverride,
	})
	verbose := app.BoolOpt("v verbose", false, "debug logging")

	app.Before = func() {
		cfg := logging.Config{Console: true}
		if *verbose {
			cfg.Level = "debug"
		}
		logging.Configure(cfg)
	}

	mustLoadPlan := func(log zerolog.Logger) *build.Plan {
		pl, err := loadPlan(*manifestFN, *platformTag, log)
		if err != nil {
			fatal(log, err)
		}
		return pl
	}

	app.Command("plan", "print the packaging plan without building", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			pl := mustLoadPlan(logging.WithComponent("plan"))
			printPlan(stdout, pl)
		}
	})

	app.Command("build", "freeze the entry script and, on macOS, create the app bundle", func(cmd *cli.Cmd) {
		dryRun := cmd.BoolOpt("n dry-run", false, "print the freezer command instead of running it")

		cmd.Action = func() {
			log := logging.WithComponent("build")
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			pl := mustLoadPlan(log)
			res, err := build.Build(ctx, pl, build.Options{DryRun: *dryRun}, log)
			if err != nil {
				fatal(log, err)
			}
			if *dryRun {
				fmt.Fprintln(stdout, quoteArgs(res.Command))
			}
		}
	})

	app.Command("check", "verify the output of a previous build", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			log := logging.WithComponent("check")
			pl := mustLoadPlan(log)
			if err := build.Check(pl); err != nil {
				fatal(log, err)
			}
			log.Info().Str("platform", pl.Platform.String()).Msg("output is complete")
		}
	})

	app.Command("watch", "re-plan (or rebuild) whenever the manifest changes", func(cmd *cli.Cmd) {
		doBuild := cmd.BoolOpt("build", false, "run the freezer on every change instead of a dry run")

		cmd.Action = func() {
			log := logging.WithComponent("watch")
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fn, err := filepath.Abs(*manifestFN)
			if err != nil {
				fatal(log, err)
			}
			err = watch.File(ctx, fn, watch.DefaultDebounce, log, func(ctx context.Context) error {
				pl, err := loadPlan(fn, *platformTag, log)
				if err != nil {
					return err
				}
				_, err = build.Build(ctx, pl, build.Options{DryRun: !*doBuild}, log)
				return err
			})
			if err != nil {
				fatal(log, err)
			}
		}
	})

	return app
}

// loadPlan reads the manifest and evaluates it for platformTag, or for the
// host when the tag is empty.
func loadPlan(manifestFN, platformTag string, log zerolog.Logger) (*build.Plan, error) {
	p := platform.Detect()
	if platformTag != "" {
		var err error
		if p, err = platform.Parse(platformTag); err != nil {
			return nil, err
		}
	}
	prj, err := model.LoadManifest(manifestFN, true)
	if err != nil {
		return nil, err
	}
	if prj.Path() == "" {
		log.Info().Str("manifest", manifestFN).Msg("manifest not found, using built-in defaults")
	}
	return build.NewPlan(prj, p, log)
}

func fatal(log zerolog.Logger, err error) {
	log.Error().Err(err).Msg("failed")
	cli.Exit(1)
}

func printPlan(w io.Writer, pl *build.Plan) {
	icon := pl.Icon
	if icon == "" {
		icon = "(default)"
	}
	fmt.Fprintf(w, "platform:  %s\n", pl.Platform)
	fmt.Fprintf(w, "entry:     %s\n", pl.Entry)
	fmt.Fprintf(w, "output:    %s\n", pl.ExecutablePath())
	fmt.Fprintf(w, "console:   %t\n", pl.Console)
	fmt.Fprintf(w, "icon:      %s\n", icon)
	for _, a := range pl.Assets {
		fmt.Fprintf(w, "asset:     %s -> %s\n", a.Src, a.Dst)
	}
	fmt.Fprintf(w, "excludes:  %s\n", strings.Join(pl.Exclude, ", "))
	if pl.Bundle {
		fmt.Fprintf(w, "bundle:    %s (%s %s)\n", pl.BundlePath(), pl.BundleInfo.Identifier, pl.BundleInfo.Version)
	} else {
		fmt.Fprintf(w, "bundle:    none\n")
	}
	fmt.Fprintf(w, "command:   %s\n", quoteArgs(pl.CommandLine()))
}

func quoteArgs(args []string) string {
	ss := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\"'") {
			a = fmt.Sprintf("%q", a)
		}
		ss[i] = a
	}
	return strings.Join(ss, " ")
}
