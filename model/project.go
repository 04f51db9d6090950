package model

// Project is the build manifest of a packaged application.
type Project struct {
	Name        string            `yaml:"name"`    // output executable name
	Entry       string            `yaml:"entry"`   // entry script, relative to the manifest
	Console     bool              `yaml:"console"` // false produces a windowed app
	OneFile     bool              `yaml:"onefile"`
	Assets      []*AssetMapping   `yaml:"assets"`
	Icons       IconSet           `yaml:"icons"`
	Excludes    []string          `yaml:"excludes"`
	Bundle      BundleInfo        `yaml:"bundle"`
	Freezer     Freezer           `yaml:"freezer"`
	Definitions map[string]string `yaml:"definitions"`

	path string
	dir  string
}

// AssetMapping copies Src (a folder or a glob) to Dst inside the packaged
// output. An empty Dst reuses the base name of Src.
type AssetMapping struct {
	Src string `yaml:"src"`
	Dst string `yaml:"dst"`
}

// IconSet maps a platform tag (windows, darwin, linux) to an icon file.
type IconSet map[string]string

// BundleInfo is the identity of the macOS application bundle.
type BundleInfo struct {
	Identifier     string `yaml:"identifier"`
	DisplayName    string `yaml:"name"`
	Version        string `yaml:"version"`
	HighResolution bool   `yaml:"high-resolution"`
}

// Freezer describes the external tool that turns the entry script into an
// executable.
type Freezer struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"` // extra args appended before the entry script
	DistDir string   `yaml:"dist"`
	WorkDir string   `yaml:"work"`
}

// Path returns the absolute manifest filename, or "" for the built-in
// defaults.
func (prj *Project) Path() string {
	return prj.path
}

// Dir is the directory relative paths in the manifest are resolved against.
func (prj *Project) Dir() string {
	return prj.dir
}
