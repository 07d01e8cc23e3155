package detect

import (
	"os"
	"path/filepath"

	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/tidwall/gjson"
)

const ManifestFile = "package.json"

// Manifest holds the parts of package.json the installer looks at.
type Manifest struct {
	Name string
	// Dependencies merges dependencies and devDependencies; dev entries win.
	Dependencies map[string]string
	Scripts      map[string]string
}

// Has reports whether dep is declared with a non-empty version.
func (m Manifest) Has(dep string) bool {
	return m.Dependencies[dep] != ""
}

// ManifestExists reports whether dir contains a package.json.
func ManifestExists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ManifestFile))
	return err == nil && !info.IsDir()
}

// ReadManifest loads dir/package.json.
func ReadManifest(dir string) (Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, errors.ErrManifestMissing.WithError(err).WithContext("path", path)
		}
		return Manifest{}, errors.ErrManifestInvalid.WithError(err).WithContext("path", path)
	}
	return ParseManifest(data)
}

// ParseManifest extracts name, dependencies and scripts from package.json bytes.
func ParseManifest(data []byte) (Manifest, error) {
	if !gjson.ValidBytes(data) {
		return Manifest{}, errors.ErrManifestInvalid
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return Manifest{}, errors.ErrManifestInvalid
	}

	m := Manifest{
		Name:         doc.Get("name").String(),
		Dependencies: make(map[string]string),
		Scripts:      make(map[string]string),
	}

	// Keys such as "@builder.io/qwik" contain path separators, so iterate
	// instead of querying each dependency by path.
	for _, section := range []string{"dependencies", "devDependencies"} {
		doc.Get(section).ForEach(func(key, value gjson.Result) bool {
			m.Dependencies[key.String()] = value.String()
			return true
		})
	}

	doc.Get("scripts").ForEach(func(key, value gjson.Result) bool {
		m.Scripts[key.String()] = value.String()
		return true
	})

	return m, nil
}
