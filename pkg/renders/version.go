package renders

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// renderPattern matches <base>.v<NNN>.<FFFF>.png. The base group is lazy so a
// base name ending in dots keeps them for stripping below.
var renderPattern = regexp.MustCompile(`^(.*?)\.v(\d{3})\.(\d{4})\.png$`)

// RenderFile is one frame of a versioned render.
type RenderFile struct {
	Path     string
	BaseName string
	Version  int
	Frame    string
}

// ParseFilename parses a render filename such as "sh010_comp.v003.1001.png".
// It reports false for names that do not follow the versioned-render grammar.
func ParseFilename(name string) (RenderFile, bool) {
	m := renderPattern.FindStringSubmatch(name)
	if m == nil {
		return RenderFile{}, false
	}
	v, err := strconv.Atoi(m[2])
	if err != nil {
		return RenderFile{}, false
	}
	return RenderFile{
		Path:     name,
		BaseName: strings.TrimRight(m[1], "."),
		Version:  v,
		Frame:    m[3],
	}, true
}

// VersionGroup accumulates render paths by base name and version.
// Base names keep first-encounter order.
type VersionGroup struct {
	order    []string
	versions map[string]map[int][]string
}

// NewVersionGroup returns an empty group.
func NewVersionGroup() *VersionGroup {
	return &VersionGroup{versions: make(map[string]map[int][]string)}
}

// Add records f under its base name and version.
func (g *VersionGroup) Add(f RenderFile) {
	byVersion, ok := g.versions[f.BaseName]
	if !ok {
		byVersion = make(map[int][]string)
		g.versions[f.BaseName] = byVersion
		g.order = append(g.order, f.BaseName)
	}
	byVersion[f.Version] = append(byVersion[f.Version], f.Path)
}

// BaseNames returns the base names in first-encounter order.
func (g *VersionGroup) BaseNames() []string {
	return slices.Clone(g.order)
}

// Latest returns the highest version for base together with all of its files.
func (g *VersionGroup) Latest(base string) (int, []string) {
	byVersion := g.versions[base]
	best := -1
	for v := range byVersion {
		if v > best {
			best = v
		}
	}
	if best < 0 {
		return 0, nil
	}
	return best, slices.Clone(byVersion[best])
}

// LatestFiles concatenates the latest-version files of every base name.
// Base names are emitted in sorted order and files within a version sorted by
// name, so the result does not depend on directory listing order.
func (g *VersionGroup) LatestFiles() []string {
	bases := g.BaseNames()
	slices.Sort(bases)

	var out []string
	for _, base := range bases {
		_, files := g.Latest(base)
		slices.Sort(files)
		out = append(out, files...)
	}
	return out
}

// LatestVersions lists dir and returns the files of the highest version of
// every base name found. Files that do not match the render grammar are
// ignored; a directory without matches yields an empty slice.
func LatestVersions(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read renders %s: %w", dir, err)
	}

	g := NewVersionGroup()
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		f, ok := ParseFilename(e.Name())
		if !ok {
			continue
		}
		f.Path = filepath.Join(dir, e.Name())
		g.Add(f)
	}
	return g.LatestFiles(), nil
}
