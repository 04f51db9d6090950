package bundle

import (
	"github.com/moisescervera/solarpack/model"
	"howett.net/plist"
)

// InfoPlist is the subset of Info.plist keys written for the app.
type InfoPlist struct {
	Identifier        string `plist:"CFBundleIdentifier"`
	Name              string `plist:"CFBundleName"`
	DisplayName       string `plist:"CFBundleDisplayName"`
	Executable        string `plist:"CFBundleExecutable"`
	IconFile          string `plist:"CFBundleIconFile,omitempty"`
	PackageType       string `plist:"CFBundlePackageType"`
	Signature         string `plist:"CFBundleSignature"`
	ShortVersion      string `plist:"CFBundleShortVersionString"`
	Version           string `plist:"CFBundleVersion"`
	InfoDictVersion   string `plist:"CFBundleInfoDictionaryVersion"`
	HighResolution    bool   `plist:"NSHighResolutionCapable"`
	DevelopmentRegion string `plist:"CFBundleDevelopmentRegion"`
}

const (
	packageType = "APPL"
	signature   = "????"
)

// NewInfoPlist fills the plist from the manifest bundle metadata. icon is
// the file name inside Contents/Resources, or "" for the default icon.
func NewInfoPlist(info model.BundleInfo, executable, icon string) *InfoPlist {
	return &InfoPlist{
		Identifier:        info.Identifier,
		Name:              info.DisplayName,
		DisplayName:       info.DisplayName,
		Executable:        executable,
		IconFile:          icon,
		PackageType:       packageType,
		Signature:         signature,
		ShortVersion:      info.Version,
		Version:           info.Version,
		InfoDictVersion:   "6.0",
		HighResolution:    info.HighResolution,
		DevelopmentRegion: "en",
	}
}

// Marshal encodes the plist as XML.
func (p *InfoPlist) Marshal() ([]byte, error) {
	return plist.MarshalIndent(p, plist.XMLFormat, "\t")
}

// ReadInfoPlist decodes an Info.plist in any plist format.
func ReadInfoPlist(buf []byte) (*InfoPlist, error) {
	p := &InfoPlist{}
	if _, err := plist.Unmarshal(buf, p); err != nil {
		return nil, err
	}
	return p, nil
}
