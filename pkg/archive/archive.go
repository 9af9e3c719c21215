// Package archive versions contact-sheet outputs and moves superseded ones
// aside.
//
// Outputs live flat in one directory and carry their version in the name:
//
//	Contact-Sheet_SEQ010.003.jpg
//	Contact-Sheet_SEQ010_labeled.003.jpg
//	Contact-Sheet_SEQ010.003.nk
//
// Before a run writes version N, every managed file with a version below N
// is moved into the archive subdirectory, replacing any same-named file
// already there. Only the current set is left next to the archive folder.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/fsutil"
)

// DefaultSubdir is the archive folder inside the output directory.
const DefaultSubdir = "old"

const prefix = "Contact-Sheet_"

// Kind selects a family of managed output files.
type Kind int

const (
	// KindSheet covers the unlabeled and labeled JPEG sheets.
	KindSheet Kind = iota
	// KindScript covers the node-graph script and its autosave sibling.
	KindScript
	// KindPreview covers the SVG preview of the node graph.
	KindPreview
)

func (k Kind) String() string {
	switch k {
	case KindSheet:
		return "sheet"
	case KindScript:
		return "script"
	case KindPreview:
		return "preview"
	default:
		return "unknown"
	}
}

// pattern returns the anchored filename pattern for k; group 1 is the version.
func (k Kind) pattern(folder string) *regexp.Regexp {
	q := regexp.QuoteMeta(prefix + folder)
	switch k {
	case KindScript:
		return regexp.MustCompile(`^` + q + `\.(\d+)\.nk(?:\.autosave)?$`)
	case KindPreview:
		return regexp.MustCompile(`^` + q + `\.(\d+)\.graph\.svg$`)
	default:
		return regexp.MustCompile(`^` + q + `(?:_labeled)?\.(\d+)\.jpg$`)
	}
}

// SheetName returns the unlabeled sheet filename for folder and version.
func SheetName(folder string, version int) string {
	return fmt.Sprintf("%s%s.%03d.jpg", prefix, folder, version)
}

// LabeledSheetName returns the labeled sheet filename.
func LabeledSheetName(folder string, version int) string {
	return fmt.Sprintf("%s%s_labeled.%03d.jpg", prefix, folder, version)
}

// ScriptName returns the node-graph script filename.
func ScriptName(folder string, version int) string {
	return fmt.Sprintf("%s%s.%03d.nk", prefix, folder, version)
}

// PreviewName returns the node-graph preview filename.
func PreviewName(folder string, version int) string {
	return fmt.Sprintf("%s%s.%03d.graph.svg", prefix, folder, version)
}

var allKinds = []Kind{KindSheet, KindScript, KindPreview}

// NextVersion returns one more than the highest version of any managed file
// in dir for folder, or 1 when there is none. A script left behind after its
// sheets were deleted still counts, so the next run archives it instead of
// writing beside it. A missing dir counts as empty.
func NextVersion(dir, folder string) (int, error) {
	latest := 0
	for _, k := range allKinds {
		files, err := scan(dir, k.pattern(folder))
		if err != nil {
			return 0, err
		}
		for _, f := range files {
			latest = max(latest, f.version)
		}
	}
	return latest + 1, nil
}

// Archiver moves superseded outputs into Subdir.
type Archiver struct {
	Subdir string
	Logger *log.Logger
}

// New returns an Archiver using subdir (DefaultSubdir when empty).
func New(subdir string, logger *log.Logger) *Archiver {
	if subdir == "" {
		subdir = DefaultSubdir
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Archiver{Subdir: subdir, Logger: logger}
}

// Archive moves every file of the given kinds for folder whose version is
// below version into dir/Subdir and returns the archived paths. KindSheet is
// used when no kinds are given.
func (a *Archiver) Archive(dir, folder string, version int, kinds ...Kind) ([]string, error) {
	if len(kinds) == 0 {
		kinds = []Kind{KindSheet}
	}
	oldDir := filepath.Join(dir, a.Subdir)

	var moved []string
	for _, k := range kinds {
		files, err := scan(dir, k.pattern(folder))
		if err != nil {
			return moved, err
		}
		for _, f := range files {
			if f.version >= version {
				continue
			}
			if err := os.MkdirAll(oldDir, 0o755); err != nil {
				return moved, errors.Wrap(errors.ErrCodeInternal, err, "create archive folder")
			}
			dst := filepath.Join(oldDir, f.name)
			if err := fsutil.MoveReplace(filepath.Join(dir, f.name), dst); err != nil {
				return moved, errors.Wrap(errors.ErrCodeInternal, err, "archive %s", f.name)
			}
			a.Logger.Debug("archived", "file", f.name, "kind", k, "version", f.version)
			moved = append(moved, dst)
		}
	}
	return moved, nil
}

// Archive runs a default Archiver.
func Archive(dir, folder string, version int, kinds ...Kind) ([]string, error) {
	return New("", nil).Archive(dir, folder, version, kinds...)
}

type versioned struct {
	name    string
	version int
}

func scan(dir string, re *regexp.Regexp) ([]versioned, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list %s", dir)
	}
	var out []versioned
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := re.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		v, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out = append(out, versioned{name: e.Name(), version: v})
	}
	return out, nil
}
