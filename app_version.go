package main

import (
	"runtime/debug"
)

var app_ver string = ""

// app_version returns the version reported by go install, the one injected
// with -ldflags "-X main.app_ver=...", or "#UNAVAILABLE".
func app_version() string {
	v, ok := debug.ReadBuildInfo()
	if ok && v.Main.Version != "" && v.Main.Version != "(devel)" {
		return v.Main.Version
	} else if app_ver != "" {
		return app_ver
	}
	return "#UNAVAILABLE"
}
