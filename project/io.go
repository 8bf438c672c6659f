package project

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedVersion is returned by Load when the file's version is
// newer than CurrentVersion.
var ErrUnsupportedVersion = errors.New("project: unsupported file version")

// Load reads and parses a project file from disk.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, errors.Wrap(err, "project: read file")
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, errors.Wrap(err, "project: parse yaml")
	}
	if f.Version > CurrentVersion {
		return File{}, errors.Wrapf(ErrUnsupportedVersion, "file version %d > supported %d", f.Version, CurrentVersion)
	}
	return f, nil
}

// Save serializes a project file to disk as self-describing YAML text,
// per spec.md §6's project-file contract.
func Save(path string, f File) error {
	f.Version = CurrentVersion
	data, err := yaml.Marshal(f)
	if err != nil {
		return errors.Wrap(err, "project: marshal yaml")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "project: write file")
	}
	return nil
}
