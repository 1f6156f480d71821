package sync

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestName is the marker file written at the root of an exported
// project directory.
const ManifestName = ".docwell.yaml"

// Manifest records export metadata at the root of the external store. It is
// advisory: import tolerates its absence and never fails on a bad one.
type Manifest struct {
	Name       string    `yaml:"name"`
	Extension  string    `yaml:"extension"`
	ExportedAt time.Time `yaml:"exported_at"`
}

// WriteManifest writes (or overwrites) the project manifest in root.
func WriteManifest(root Folder, extension string) error {
	m := Manifest{
		Name:       root.Name(),
		Extension:  extension,
		ExportedAt: time.Now().UTC(),
	}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	file, err := root.File(ManifestName)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	if err := file.Write(string(data)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads the manifest from root. It returns nil without error
// when no manifest exists or it cannot be parsed.
func ReadManifest(root Folder) *Manifest {
	file, err := root.OpenFile(ManifestName)
	if err != nil {
		return nil
	}
	content, err := file.Read()
	if err != nil {
		return nil
	}
	var m Manifest
	if err := yaml.Unmarshal([]byte(content), &m); err != nil {
		return nil
	}
	return &m
}
