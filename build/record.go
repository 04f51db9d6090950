package build

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/moisescervera/solarpack/atomicfile"
)

// Record describes the files produced by a build.
type Record struct {
	Name        string      `json:"name"`
	Version     string      `json:"version"`
	Platform    string      `json:"platform"`
	GeneratedAt time.Time   `json:"generatedAt"`
	TotalFiles  int         `json:"totalFiles"`
	Files       []FileEntry `json:"files"`
}

// FileEntry is a single produced file.
type FileEntry struct {
	Path   string `json:"path"` // relative to the dist directory
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

// NewRecord hashes every regular file under the given roots. Paths are
// recorded relative to distDir, sorted. Symbolic links are skipped.
func NewRecord(pl *Plan, distDir string, roots []string, now time.Time) (*Record, error) {
	rec := &Record{
		Name:        pl.Name,
		Version:     pl.BundleInfo.Version,
		Platform:    pl.Platform.String(),
		GeneratedAt: now.UTC(),
		Files:       []FileEntry{},
	}
	for _, root := range roots {
		err := filepath.WalkDir(filepath.FromSlash(root), func(fn string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			// links point at files already listed under their real path
			if d.IsDir() || d.Type()&fs.ModeSymlink != 0 {
				return nil
			}
			e, err := hashFile(fn)
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(filepath.FromSlash(distDir), fn)
			if err != nil {
				return err
			}
			e.Path = filepath.ToSlash(rel)
			rec.Files = append(rec.Files, e)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Slice(rec.Files, func(i, j int) bool { return rec.Files[i].Path < rec.Files[j].Path })
	rec.TotalFiles = len(rec.Files)
	return rec, nil
}

func hashFile(fn string) (FileEntry, error) {
	f, err := os.Open(fn)
	if err != nil {
		return FileEntry{}, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return FileEntry{}, err
	}
	return FileEntry{Size: n, SHA256: hex.EncodeToString(h.Sum(nil))}, nil
}

// Write stores the record as indented JSON.
func (rec *Record) Write(fn string) error {
	buf, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(filepath.FromSlash(fn), append(buf, '\n'), 0o644)
}
