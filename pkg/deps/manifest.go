package deps

import (
	"os"

	"github.com/BurntSushi/toml"

	deperrors "github.com/matzehuels/depth/pkg/errors"
)

// Manifest is the subset of a Cargo.toml needed to seed a traversal.
type Manifest struct {
	Name         string   // [package] name, empty for workspace manifests
	Version      string   // [package] version
	Dependencies []string // [dependencies] keys in declaration order
}

type cargoFile struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Dependencies map[string]toml.Primitive `toml:"dependencies"`
}

// ParseCargoManifest reads the Cargo.toml at path.
func ParseCargoManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, deperrors.Wrap(deperrors.ErrCodeInvalidManifest, err, "read %s", path)
	}
	return ParseCargo(data)
}

// ParseCargo decodes Cargo.toml contents. Only the keys of the
// [dependencies] table are collected; their values (version strings or
// inline tables) are not interpreted. Dev and build dependencies are ignored.
func ParseCargo(data []byte) (*Manifest, error) {
	var cargo cargoFile
	md, err := toml.Decode(string(data), &cargo)
	if err != nil {
		return nil, deperrors.Wrap(deperrors.ErrCodeInvalidManifest, err, "parse Cargo.toml")
	}

	m := &Manifest{Name: cargo.Package.Name, Version: cargo.Package.Version}
	for _, key := range md.Keys() {
		if len(key) == 2 && key[0] == "dependencies" {
			m.Dependencies = append(m.Dependencies, key[1])
		}
	}
	return m, nil
}
