package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Executor runs an external command to completion.
type Executor interface {
	Run(ctx context.Context, dir string, name string, args ...string) error
}

// ExecRunner runs commands with os/exec, streaming their output.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	x := exec.CommandContext(ctx, name, args...)
	x.Dir = dir
	x.Stdout = r.Stdout
	x.Stderr = r.Stderr
	if x.Stdout == nil {
		x.Stdout = os.Stdout
	}
	if x.Stderr == nil {
		x.Stderr = os.Stderr
	}
	if err := x.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
