// Package platform names the operating systems a package can target.
package platform

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Platform is a GOOS-style operating system tag.
type Platform string

const (
	Windows Platform = "windows"
	MacOS   Platform = "darwin"
	Linux   Platform = "linux"
)

// EnvOverride forces the detected platform when set.
const EnvOverride = "SOLARPACK_PLATFORM"

var ErrUnsupportedPlatform = errors.New("unsupported platform")

var aliases = map[string]Platform{
	"windows": Windows,
	"win":     Windows,
	"win32":   Windows,
	"win64":   Windows,
	"darwin":  MacOS,
	"macos":   MacOS,
	"mac":     MacOS,
	"osx":     MacOS,
	"linux":   Linux,
}

// Detect returns the platform of the running process, honouring the
// SOLARPACK_PLATFORM environment override.
func Detect() Platform {
	if s := os.Getenv(EnvOverride); s != "" {
		if p, err := Parse(s); err == nil {
			return p
		}
	}
	return Platform(runtime.GOOS)
}

// other GOOS values; they build without an icon or bundle
var knownGOOS = map[string]struct{}{
	"aix": {}, "android": {}, "dragonfly": {}, "freebsd": {}, "hurd": {},
	"illumos": {}, "ios": {}, "js": {}, "netbsd": {}, "openbsd": {},
	"plan9": {}, "solaris": {}, "wasip1": {}, "zos": {},
}

// Parse accepts GOOS names and the common aliases (macos, osx, win32, ...).
func Parse(s string) (Platform, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if p, ok := aliases[s]; ok {
		return p, nil
	}
	if _, ok := knownGOOS[s]; ok {
		return Platform(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, s)
}

func (p Platform) String() string {
	return string(p)
}

func (p Platform) IsMacOS() bool {
	return p == MacOS
}

func (p Platform) IsWindows() bool {
	return p == Windows
}

// PathListSeparator separates source and destination in --add-data values.
func (p Platform) PathListSeparator() string {
	if p.IsWindows() {
		return ";"
	}
	return ":"
}

// ExecutableName appends the platform executable suffix to name.
func (p Platform) ExecutableName(name string) string {
	if p.IsWindows() && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		return name + ".exe"
	}
	return name
}
