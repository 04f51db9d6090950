package model

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	reBundleID = regexp.MustCompile(`^[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)+$`)
	reVersion  = regexp.MustCompile(`^[0-9]+(\.[0-9]+){0,2}$`)
	reModule   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
)

// Validate reports every problem found in the manifest at once.
func (prj *Project) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if prj.Name == "" {
		fail("name must not be empty")
	} else if strings.ContainsAny(prj.Name, `/\:`) {
		fail("name %q must not contain path separators", prj.Name)
	}
	if prj.Entry == "" {
		fail("entry must not be empty")
	}
	for i, a := range prj.Assets {
		if a == nil || a.Src == "" {
			fail("assets[%d]: missing src", i)
			continue
		}
		if a.Dst != "" && (strings.HasPrefix(a.Dst, "/") || strings.Contains(a.Dst, "..")) {
			fail("assets[%d]: dst %q must stay inside the package", i, a.Dst)
		}
	}
	for _, m := range prj.Excludes {
		if !reModule.MatchString(m) {
			fail("excludes: invalid module name %q", m)
		}
	}
	if !reBundleID.MatchString(prj.Bundle.Identifier) {
		fail("bundle.identifier %q is not a reverse-DNS name", prj.Bundle.Identifier)
	}
	if prj.Bundle.DisplayName == "" {
		fail("bundle.name must not be empty")
	}
	if !reVersion.MatchString(prj.Bundle.Version) {
		fail("bundle.version %q must look like 1, 1.0 or 1.0.0", prj.Bundle.Version)
	}
	if prj.Freezer.Command == "" {
		fail("freezer.command must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, errors.Join(errs...))
	}
	return nil
}

func normalizeExcludes(mods []string) []string {
	seen := map[string]struct{}{}
	ret := make([]string, 0, len(mods))
	for _, m := range mods {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		ret = append(ret, m)
	}
	sort.Strings(ret)
	return ret
}
