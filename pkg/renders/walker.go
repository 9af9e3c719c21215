package renders

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/contactsheet/pkg/errors"
)

// Dept is the department tag attached to a resolved render.
type Dept string

// Department tags produced by the default configuration.
const (
	DeptComposite Dept = "CMP"
	DeptLighting  Dept = "LGT"
	DeptNone      Dept = ""
)

// ShotImage is a resolved render path and the department it came from.
type ShotImage struct {
	Path string `json:"path"`
	Dept Dept   `json:"dept,omitempty"`
}

// NodeKind classifies a directory visited by the walker.
type NodeKind int

const (
	// Other directories are traversed but contribute nothing themselves.
	Other NodeKind = iota
	// CompositeWork is a <shot>/<composite dept>/<work> directory.
	CompositeWork
	// LightingWork is a <shot>/<lighting dept>/<work> directory.
	LightingWork
)

func (k NodeKind) String() string {
	switch k {
	case CompositeWork:
		return "composite-work"
	case LightingWork:
		return "lighting-work"
	default:
		return "other"
	}
}

// Defaults for Config fields left empty.
const (
	DefaultWorkMarker         = "CMP/work"
	DefaultLightingDepartment = "LGT"
	DefaultRendersDir         = "renders"
)

// Config controls how the walker recognises shot directories.
type Config struct {
	// WorkMarker is the two-segment suffix "<dept>/<work>" identifying a
	// composite-department work directory.
	WorkMarker string
	// LightingDepartment replaces the department segment of WorkMarker when
	// falling back to lighting renders.
	LightingDepartment string
	// RendersDir is the child of a work directory holding the PNG renders.
	RendersDir string
	// IncludeLightingOnly lets lighting work directories without a composite
	// sibling contribute their renders.
	IncludeLightingOnly bool
	// Logger receives warnings about unreadable directories. Nil discards.
	Logger *log.Logger
}

// Walker resolves the latest renders of every shot under a sequence folder.
type Walker struct {
	compositeDept string
	lightingDept  string
	workDir       string
	rendersDir    string
	lightingOnly  bool
	logger        *log.Logger
}

// NewWalker validates cfg, fills defaults and returns a Walker.
func NewWalker(cfg Config) (*Walker, error) {
	marker := cfg.WorkMarker
	if marker == "" {
		marker = DefaultWorkMarker
	}
	parts := strings.FieldsFunc(filepath.ToSlash(marker), func(r rune) bool { return r == '/' })
	if len(parts) != 2 {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"work marker must be two path segments like %q, got %q", DefaultWorkMarker, marker)
	}

	w := &Walker{
		compositeDept: parts[0],
		workDir:       parts[1],
		lightingDept:  cfg.LightingDepartment,
		rendersDir:    cfg.RendersDir,
		lightingOnly:  cfg.IncludeLightingOnly,
		logger:        cfg.Logger,
	}
	if w.lightingDept == "" {
		w.lightingDept = DefaultLightingDepartment
	}
	if w.rendersDir == "" {
		w.rendersDir = DefaultRendersDir
	}
	if w.lightingDept == w.compositeDept {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"lighting department %q must differ from composite department", w.lightingDept)
	}
	if w.logger == nil {
		w.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return w, nil
}

// Classify inspects the last two segments of dir.
func (w *Walker) Classify(dir string) NodeKind {
	if filepath.Base(dir) != w.workDir {
		return Other
	}
	switch filepath.Base(filepath.Dir(dir)) {
	case w.compositeDept:
		return CompositeWork
	case w.lightingDept:
		return LightingWork
	default:
		return Other
	}
}

// Walk visits every directory below root in lexical order and returns the
// resolved renders of each shot. Each composite work directory contributes
// its own latest renders, or, when it has none, those of its lighting
// sibling. A missing or empty tree yields an empty result.
func (w *Walker) Walk(root string) ([]ShotImage, error) {
	if !isDir(root) {
		w.logger.Warn("sequence folder not found", "path", root)
		return nil, nil
	}

	var shots []ShotImage
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path != root && d != nil && d.IsDir() {
				w.logger.Warn("skipping unreadable folder", "path", path, "err", err)
				return fs.SkipDir
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}

		switch w.Classify(path) {
		case CompositeWork:
			shots = append(shots, w.resolveShot(path)...)
		case LightingWork:
			if w.lightingOnly && !isDir(w.sibling(path, w.compositeDept)) {
				shots = append(shots, w.tagged(path, w.lightingDept)...)
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "walk %s", root)
	}
	return shots, nil
}

// resolveShot prefers the composite renders of workDir and falls back to the
// lighting sibling only when the composite side yields nothing.
func (w *Walker) resolveShot(workDir string) []ShotImage {
	if shots := w.tagged(workDir, w.compositeDept); len(shots) > 0 {
		w.logger.Debug("resolved composite renders", "dir", workDir, "count", len(shots))
		return shots
	}
	lighting := w.sibling(workDir, w.lightingDept)
	shots := w.tagged(lighting, w.lightingDept)
	if len(shots) > 0 {
		w.logger.Debug("fell back to lighting renders", "dir", lighting, "count", len(shots))
	}
	return shots
}

func (w *Walker) tagged(workDir, dept string) []ShotImage {
	dir := filepath.Join(workDir, w.rendersDir)
	if !isDir(dir) {
		return nil
	}
	files, err := LatestVersions(dir)
	if err != nil {
		w.logger.Warn("skipping unreadable renders", "path", dir, "err", err)
		return nil
	}
	shots := make([]ShotImage, len(files))
	for i, f := range files {
		shots[i] = ShotImage{Path: f, Dept: Dept(dept)}
	}
	return shots
}

// sibling swaps the department segment of a work directory.
func (w *Walker) sibling(workDir, dept string) string {
	shot := filepath.Dir(filepath.Dir(workDir))
	return filepath.Join(shot, dept, w.workDir)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
