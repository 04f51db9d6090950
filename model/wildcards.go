package model

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// wildcards are fragments in manifest strings conforming to the syntax
// `$<pref:cont>$`, e.g. `$<var:version>$` or `$<env:HOME>$`

var reWildcard = regexp.MustCompile(`(?m)\$<((?:[^>\$])*)>\$`)

var ErrInvalidVariableSyntax = errors.New("unsupported syntax")

func parseWildcardContent(s string) (k, v string, err error) {
	ss := strings.SplitN(s, ":", 2)
	if len(ss) < 2 {
		return "", "", ErrInvalidVariableSyntax
	}
	return ss[0], ss[1], nil
}

type replaceCallback = func(pre, cnt string) (string, error)

// ReplaceWildcards substitutes every wildcard in buf with the handler result.
// The first failure stops substitution and is returned with its location.
func ReplaceWildcards(buf []byte, handler replaceCallback) ([]byte, error) {
	out := make([]byte, 0, len(buf))
	last := 0
	for _, v := range reWildcard.FindAllIndex(buf, -1) {
		b, e := v[0], v[1]
		pre, cnt, err := parseWildcardContent(string(buf[b+2 : e-2]))
		var s string
		if err == nil {
			s, err = handler(pre, cnt)
		}
		if err != nil {
			sl := CalcSourceLocation(string(buf), b)
			return buf, fmt.Errorf("[%s] %w", sl.String(), err)
		}
		out = append(out, buf[last:b]...)
		out = append(out, s...)
		last = e
	}
	out = append(out, buf[last:]...)
	return out, nil
}

// Expand substitutes `var:` wildcards from defs and `env:` wildcards from the
// process environment.
func Expand(s string, defs map[string]string) (string, error) {
	if !strings.Contains(s, "$<") {
		return s, nil
	}
	out, err := ReplaceWildcards([]byte(s), func(k, v string) (string, error) {
		switch k {
		case "var":
			r, ok := defs[v]
			if !ok {
				return "", fmt.Errorf("unknown variable: %s", v)
			}
			return r, nil
		case "env":
			return os.Getenv(v), nil
		default:
			return "", fmt.Errorf("unknown wildcard kind '%s'", k)
		}
	})
	if err != nil {
		return s, err
	}
	return string(out), nil
}

func (prj *Project) expandWildcards() (err error) {
	x := func(s *string) {
		if err != nil {
			return
		}
		*s, err = Expand(*s, prj.Definitions)
	}

	x(&prj.Name)
	x(&prj.Entry)
	x(&prj.Bundle.Identifier)
	x(&prj.Bundle.DisplayName)
	x(&prj.Bundle.Version)
	x(&prj.Freezer.Command)
	x(&prj.Freezer.DistDir)
	x(&prj.Freezer.WorkDir)
	for i := range prj.Freezer.Args {
		x(&prj.Freezer.Args[i])
	}
	for _, a := range prj.Assets {
		if a != nil {
			x(&a.Src)
			x(&a.Dst)
		}
	}
	for k, v := range prj.Icons {
		x(&v)
		prj.Icons[k] = v
	}
	return err
}
