//go:build !windows

// Package atomicfile writes files so readers never observe partial content.
package atomicfile

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
)

// WriteFile replaces path with data: temp file, fsync, rename.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(perm))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer pendingFile.Cleanup() //nolint:errcheck // no-op once committed

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}
	return nil
}
