package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var ErrInvalidManifest = errors.New("invalid manifest")

// LoadManifest reads a YAML manifest on top of DefaultProject. A missing file
// is not an error when allowMissing is set: the defaults are returned with
// the manifest directory as base.
func LoadManifest(mainFN string, allowMissing bool) (*Project, error) {
	mainFN, err := filepath.Abs(mainFN)
	if err != nil {
		return nil, err
	}

	prj := DefaultProject(filepath.Dir(mainFN))

	buf, err := os.ReadFile(mainFN)
	if errors.Is(err, fs.ErrNotExist) && allowMissing {
		return prj, prj.Finalize()
	} else if err != nil {
		return nil, err
	}

	if err = ParseManifest(prj, buf); err != nil {
		return nil, fmt.Errorf("%s: %w", mainFN, err)
	}
	prj.path = filepath.ToSlash(mainFN)
	return prj, nil
}

// ParseManifest decodes buf into prj, expands wildcards, and validates the
// result.
func ParseManifest(prj *Project, buf []byte) error {
	if err := yaml.Unmarshal(buf, prj); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	return prj.Finalize()
}

// Finalize expands definitions, normalizes the exclusion list and validates.
func (prj *Project) Finalize() error {
	if prj.Definitions == nil {
		prj.Definitions = map[string]string{}
	}
	if err := prj.expandWildcards(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	prj.Excludes = normalizeExcludes(prj.Excludes)
	return prj.Validate()
}
