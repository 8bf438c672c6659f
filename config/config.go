// Package config loads and hot-reloads the editor's viewport/kernel
// preferences file, per SPEC_FULL.md §6.4's "host-provided config
// manager" collaborator spec.md §3 names but leaves unspecified.
package config

import (
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Values is the typed configuration the editor reads at startup and on
// every hot-reload.
type Values struct {
	// GridSpacing is the default sketch grid spacing in model units.
	GridSpacing float64 `mapstructure:"grid_spacing"`
	// SnapToGrid is the default sketch-mode snap setting for a newly
	// entered sketch.
	SnapToGrid bool `mapstructure:"snap_to_grid"`
	// DefaultKernel names a kernel.Name backend. It is decoded and shown
	// by `rk config`; kernel selection does not read it (kernel.Default()
	// takes no name, and `--kernel` picks a backend explicitly).
	DefaultKernel string `mapstructure:"default_kernel"`
	// UndoHistoryCap bounds the editor's undo stack depth.
	UndoHistoryCap int `mapstructure:"undo_history_cap"`
}

// Defaults mirrors the editor's own built-in defaults (editor.NewStore's
// 50-entry undo cap, SketchModeState's 1.0 grid spacing / snap-on), so a
// missing config file behaves identically to no config file at all.
func Defaults() Values {
	return Values{
		GridSpacing:    1.0,
		SnapToGrid:     true,
		DefaultKernel:  "native",
		UndoHistoryCap: 50,
	}
}

// Load reads a YAML config file and decodes it into Values via
// mapstructure, falling back to Defaults() for any field the file
// doesn't set (decoding into a pre-populated Values rather than a zero
// one). A missing file is not an error: Load returns Defaults().
func Load(path string) (Values, error) {
	v := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return v, nil
		}
		return v, errors.Wrap(err, "config: read file")
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return v, errors.Wrap(err, "config: parse yaml")
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &v,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return v, errors.Wrap(err, "config: build decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return v, errors.Wrap(err, "config: decode")
	}

	return v, nil
}
