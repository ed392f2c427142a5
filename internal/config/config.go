// Package config loads the process bootstrap options the spec treats
// as external collaborators' output -- the config-file grammar itself
// is out of scope (spec.md 1), but something has to hand the core its
// "parsed entry tree" (spec.md 6). This package reads a small flat TOML
// document the way noisetorch-NoiseTorch's config.go loads its options
// file with github.com/BurntSushi/toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/pekwm/pekwm-go/internal/xerrors"
)

// Options is the bootstrap configuration the WM needs before it can
// even open a display connection or read the full (out-of-scope)
// config/keys/mouse/menu/autoproperties tree.
type Options struct {
	Display string `toml:"display"`
	Replace bool   `toml:"replace"`
	ConfigDir string `toml:"config_dir"`

	DoubleClickMS int `toml:"double_click_ms"`
	SnapAttractPx int `toml:"snap_attract_px"`
	SnapResistPx  int `toml:"snap_resist_px"`

	HarbourHead     int    `toml:"harbour_head"`
	HarbourPlacement string `toml:"harbour_placement"`
	HarbourOntop    bool   `toml:"harbour_ontop"`
	HarbourSort     bool   `toml:"harbour_sort"`

	PanelTickSeconds int `toml:"panel_tick_seconds"`

	Placement string `toml:"placement"`

	ReplaceTimeout time.Duration `toml:"-"`
	ReplaceTimeoutMS int `toml:"replace_timeout_ms"`
}

// Default returns the bootstrap defaults used when no config file is
// present, matching pekwm's documented defaults for these fields.
func Default() Options {
	return Options{
		Replace:          false,
		DoubleClickMS:    250,
		SnapAttractPx:    10,
		SnapResistPx:     10,
		HarbourHead:      0,
		HarbourPlacement: "BOTTOM",
		HarbourOntop:     true,
		HarbourSort:      false,
		PanelTickSeconds: 1,
		Placement:        "SMART",
		ReplaceTimeoutMS: 2000,
		ReplaceTimeout:   2000 * time.Millisecond,
	}
}

// Load reads path (a TOML document) over the defaults. A missing file
// is not an error -- it simply yields Default(). A malformed file is
// spec.md 7's "Configuration error at reload" kind: the previous valid
// configuration (here, the defaults) stays in effect.
func Load(path string) (Options, error) {
	opts := Default()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("config: read %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), &opts); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w: %w", path, xerrors.ErrConfigInvalid, err)
	}
	opts.ReplaceTimeout = time.Duration(opts.ReplaceTimeoutMS) * time.Millisecond
	if opts.ConfigDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			opts.ConfigDir = filepath.Join(home, ".pekwm")
		}
	}
	return opts, nil
}
