// Package config loads contactsheet settings from a TOML file.
//
// Settings are resolved in three layers: built-in defaults, then the config
// file, then command-line flags (applied by the CLI after Load). A missing
// file at the default location is not an error; a missing file passed
// explicitly is.
//
// Example config.toml:
//
//	root_path = "/mnt/projects"
//	project_prefix = "25"
//	fixed_thumbnail_height = 240
//	on_bad_image = "fail"
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/render/layout"
	"github.com/matzehuels/contactsheet/pkg/render/sheet"
	"github.com/matzehuels/contactsheet/pkg/renders"
)

// AppName names the config directory under the user config root.
const AppName = "contactsheet"

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// Config holds every tunable setting.
type Config struct {
	// Folder discovery
	RootPath      string `toml:"root_path"`
	ProjectPrefix string `toml:"project_prefix"`
	SequencesDir  string `toml:"sequences_dir"`

	// Render tree
	DepartmentWorkMarker string `toml:"department_work_marker"`
	LightingDepartment   string `toml:"lighting_department"`
	RendersSubdirName    string `toml:"renders_subdir_name"`
	IncludeLightingOnly  bool   `toml:"include_lighting_only"`

	// Sheet layout and drawing
	FixedThumbnailHeight int      `toml:"fixed_thumbnail_height"`
	Padding              int      `toml:"padding"`
	TitleBarHeight       int      `toml:"title_bar_height"`
	TitleFontSize        float64  `toml:"title_font_size"`
	LabelFontSize        float64  `toml:"label_font_size"`
	Background           string   `toml:"background"`
	JPEGQuality          int      `toml:"jpeg_quality"`
	FontPaths            []string `toml:"font_paths"`
	FontNames            []string `toml:"font_names"`
	OnBadImage           string   `toml:"on_bad_image"`

	// Outputs
	OutputSubdir  string `toml:"output_subdir"`
	ArchiveSubdir string `toml:"archive_subdir"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ProjectPrefix:        "25",
		SequencesDir:         renders.DefaultSequencesDir,
		DepartmentWorkMarker: "CMP/work",
		LightingDepartment:   string(renders.DeptLighting),
		RendersSubdirName:    "renders",
		FixedThumbnailHeight: layout.DefaultThumbHeight,
		Padding:              layout.DefaultPadding,
		TitleBarHeight:       layout.DefaultTitleHeight,
		TitleFontSize:        sheet.DefaultTitleFontSize,
		LabelFontSize:        sheet.DefaultLabelFontSize,
		Background:           "#ffffff",
		JPEGQuality:          sheet.DefaultJPEGQuality,
		OnBadImage:           string(sheet.PolicySkip),
		OutputSubdir:         "Contact-Sheets",
		ArchiveSubdir:        "old",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/contactsheet/config.toml, falling back
// to the platform user config directory.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, FileName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "locate config directory")
	}
	return filepath.Join(dir, AppName, FileName), nil
}

// Load reads path over the defaults. An empty path means DefaultPath, where
// a missing file yields the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	switch {
	case c.FixedThumbnailHeight < 1:
		return invalid("fixed_thumbnail_height must be at least 1")
	case c.Padding < 0:
		return invalid("padding must not be negative")
	case c.TitleBarHeight < 0:
		return invalid("title_bar_height must not be negative")
	case c.TitleFontSize <= 0 || c.LabelFontSize <= 0:
		return invalid("font sizes must be positive")
	case c.JPEGQuality < 1 || c.JPEGQuality > 100:
		return invalid("jpeg_quality must be between 1 and 100")
	case c.RendersSubdirName == "":
		return invalid("renders_subdir_name must not be empty")
	}

	if err := errors.ValidateFolderName(c.OutputSubdir); err != nil {
		return invalid("output_subdir: %s", errors.UserMessage(err))
	}
	if err := errors.ValidateFolderName(c.ArchiveSubdir); err != nil {
		return invalid("archive_subdir: %s", errors.UserMessage(err))
	}
	if _, err := sheet.ParsePolicy(c.OnBadImage); err != nil {
		return err
	}
	if _, err := sheet.ParseColor(c.Background); err != nil {
		return err
	}
	if _, err := renders.NewWalker(c.WalkerConfig()); err != nil {
		return err
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}

// WalkerConfig returns the render tree settings.
func (c Config) WalkerConfig() renders.Config {
	return renders.Config{
		WorkMarker:          c.DepartmentWorkMarker,
		LightingDepartment:  c.LightingDepartment,
		RendersDir:          c.RendersSubdirName,
		IncludeLightingOnly: c.IncludeLightingOnly,
	}
}

// LayoutOptions returns the grid settings.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{
		ThumbHeight: c.FixedThumbnailHeight,
		Padding:     c.Padding,
		TitleHeight: c.TitleBarHeight,
	}
}
