package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/contactsheet/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
root_path = "/mnt/projects"
fixed_thumbnail_height = 240
on_bad_image = "fail"
font_paths = ["/fonts/a.ttf"]
include_lighting_only = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RootPath != "/mnt/projects" || cfg.FixedThumbnailHeight != 240 || cfg.OnBadImage != "fail" {
		t.Errorf("Load() = %+v", cfg)
	}
	if len(cfg.FontPaths) != 1 || !cfg.IncludeLightingOnly {
		t.Errorf("Load() lists/bools not decoded: %+v", cfg)
	}
	if cfg.Padding != 10 || cfg.OutputSubdir != "Contact-Sheets" {
		t.Errorf("defaults lost: padding %d, output %q", cfg.Padding, cfg.OutputSubdir)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"unknown key", `thumb_height = 100`, "unknown keys"},
		{"syntax", `padding = `, "parse config"},
		{"range", `jpeg_quality = 0`, "jpeg_quality"},
		{"policy", `on_bad_image = "retry"`, "bad-image policy"},
		{"colour", `background = "white"`, "invalid colour"},
		{"marker", `department_work_marker = "CMP"`, "work marker"},
		{"same depts", `lighting_department = "CMP"`, "must differ"},
		{"output folder", `output_subdir = "a/b"`, "output_subdir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("Load() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Load() error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
		}
	})

	t.Run("default path", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.ProjectPrefix != Default().ProjectPrefix {
			t.Errorf("Load() = %+v, want defaults", cfg)
		}
	})
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "contactsheet", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestDerivedOptions(t *testing.T) {
	cfg := Default()
	cfg.FixedThumbnailHeight = 120
	cfg.IncludeLightingOnly = true

	lo := cfg.LayoutOptions()
	if lo.ThumbHeight != 120 || lo.Padding != 10 || lo.TitleHeight != 60 {
		t.Errorf("LayoutOptions() = %+v", lo)
	}
	wc := cfg.WalkerConfig()
	if wc.WorkMarker != "CMP/work" || wc.LightingDepartment != "LGT" || !wc.IncludeLightingOnly {
		t.Errorf("WalkerConfig() = %+v", wc)
	}
}
