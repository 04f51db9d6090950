package model

const (
	DefaultManifestName = "solarpack.yml"

	defaultName       = "SolarSystemProject"
	defaultEntry      = "main.py"
	defaultIdentifier = "com.moisescervera.solarsystem"
	defaultBundleName = "Solar System Project"
	defaultVersion    = "1.0.0"
)

// DefaultProject returns the packaging configuration of the Solar System
// Project game. Loaded manifests are layered on top of it.
func DefaultProject(dir string) *Project {
	return &Project{
		Name:    defaultName,
		Entry:   defaultEntry,
		Console: false,
		OneFile: true,
		Assets: []*AssetMapping{
			{Src: "assets", Dst: "assets"},
		},
		Icons: IconSet{
			"windows": "icon.ico",
			"darwin":  "icon.icns",
		},
		// development-only helpers pulled in by the texture conversion script
		Excludes: []string{
			"matplotlib",
			"py360convert",
			"scipy",
			"tkinter",
		},
		Bundle: BundleInfo{
			Identifier:     defaultIdentifier,
			DisplayName:    defaultBundleName,
			Version:        defaultVersion,
			HighResolution: true,
		},
		Freezer: Freezer{
			Command: "pyinstaller",
			DistDir: "dist",
			WorkDir: "build",
		},
		Definitions: map[string]string{},
		dir:         NormalizePath("", dir),
	}
}
