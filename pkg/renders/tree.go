package renders

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/contactsheet/pkg/errors"
)

// DefaultSequencesDir is the folder inside a project that holds sequences.
const DefaultSequencesDir = "sequences"

// ListProjects returns the names of the directories directly under root whose
// name starts with prefix. An empty prefix matches every directory.
func ListProjects(root, prefix string) ([]string, error) {
	if err := errors.ValidateDir(root); err != nil {
		return nil, err
	}
	return subdirs(root, func(name string) bool { return strings.HasPrefix(name, prefix) })
}

// ListSequences returns the sequence folder names of a project. A project
// without a sequences folder is reported as ErrCodeNotFound; a sequences folder
// without subfolders yields an empty list.
func ListSequences(project, sequencesDir string) ([]string, error) {
	if sequencesDir == "" {
		sequencesDir = DefaultSequencesDir
	}
	dir := filepath.Join(project, sequencesDir)
	if !isDir(dir) {
		return nil, errors.New(errors.ErrCodeNotFound,
			"no %q folder found in %s", sequencesDir, filepath.Base(project))
	}
	return subdirs(dir, func(string) bool { return true })
}

func subdirs(dir string, keep func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", dir)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") && keep(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
