package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pekwm/pekwm-go/internal/xerrors"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.DoubleClickMS != Default().DoubleClickMS {
		t.Fatalf("expected defaults, got %+v", opts)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pekwm.toml")
	if err := os.WriteFile(path, []byte("double_click_ms = 400\nharbour_sort = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.DoubleClickMS != 400 || !opts.HarbourSort {
		t.Fatalf("expected overrides applied, got %+v", opts)
	}
}

func TestLoadMalformedFileReturnsConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("not = [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, xerrors.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}
