// Package fonts resolves the typeface used for contact-sheet titles and
// labels.
//
// Fonts are found by trying an ordered list of [Strategy] values; the first
// one that loads wins. The default list looks for configured font files, then
// for Arial in the platform font directories (via go-findfont), then falls
// back to the Go Regular font compiled into the binary, and finally to a fixed
// 7x13 bitmap face that cannot fail. Resolution therefore never aborts a run.
package fonts

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// Strategy is one way of obtaining a font face at a given point size.
type Strategy struct {
	Name string
	Load func(size float64) (font.Face, error)
}

// parsed caches TrueType fonts by source so each file is parsed once.
var (
	parsedMu sync.Mutex
	parsed   = map[string]*truetype.Font{}
)

func parseCached(key string, data func() ([]byte, error)) (*truetype.Font, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if f, ok := parsed[key]; ok {
		return f, nil
	}
	b, err := data()
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", key, err)
	}
	parsed[key] = f
	return f, nil
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
}

// File loads a TrueType font from an explicit path.
func File(path string) Strategy {
	return Strategy{
		Name: "file:" + path,
		Load: func(size float64) (font.Face, error) {
			f, err := parseCached(path, func() ([]byte, error) { return os.ReadFile(path) })
			if err != nil {
				return nil, err
			}
			return newFace(f, size), nil
		},
	}
}

// System looks name up in the platform font directories.
func System(name string) Strategy {
	return Strategy{
		Name: "system:" + name,
		Load: func(size float64) (font.Face, error) {
			path, err := findfont.Find(name)
			if err != nil {
				return nil, err
			}
			return File(path).Load(size)
		},
	}
}

// Embedded uses the Go Regular font compiled into the binary.
func Embedded() Strategy {
	return Strategy{
		Name: "embedded:goregular",
		Load: func(size float64) (font.Face, error) {
			f, err := parseCached("goregular", func() ([]byte, error) { return goregular.TTF, nil })
			if err != nil {
				return nil, err
			}
			return newFace(f, size), nil
		},
	}
}

// Bitmap returns the fixed-size 7x13 face. The size is ignored.
func Bitmap() Strategy {
	return Strategy{
		Name: "bitmap:7x13",
		Load: func(float64) (font.Face, error) { return basicfont.Face7x13, nil },
	}
}

// DefaultNames are the system font files tried when none are configured.
func DefaultNames() []string {
	if runtime.GOOS == "windows" {
		return []string{"arial.ttf", "Arial.ttf"}
	}
	return []string{"Arial.ttf", "arial.ttf"}
}

// DefaultStrategies builds the standard resolution order: explicit paths,
// named system fonts (DefaultNames when names is empty), embedded, bitmap.
func DefaultStrategies(paths, names []string) []Strategy {
	if len(names) == 0 {
		names = DefaultNames()
	}
	out := make([]Strategy, 0, len(paths)+len(names)+2)
	for _, p := range paths {
		out = append(out, File(p))
	}
	for _, n := range names {
		out = append(out, System(n))
	}
	return append(out, Embedded(), Bitmap())
}

// Resolver tries strategies in order.
type Resolver struct {
	strategies []Strategy
	logger     *log.Logger
	warned     bool
}

// NewResolver returns a resolver over strategies. With no strategies the
// default order is used. A nil logger discards fallback warnings.
func NewResolver(logger *log.Logger, strategies ...Strategy) *Resolver {
	if len(strategies) == 0 {
		strategies = DefaultStrategies(nil, nil)
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Resolver{strategies: strategies, logger: logger}
}

// Face returns the first face that loads at size along with the name of the
// strategy that produced it. When every strategy fails the bitmap face is
// returned. The fallback warning is logged once per resolver.
func (r *Resolver) Face(size float64) (font.Face, string) {
	var failures []string
	for _, s := range r.strategies {
		face, err := s.Load(size)
		if err == nil {
			if len(failures) > 0 && !r.warned {
				r.warned = true
				r.logger.Warn("font fallback activated", "using", s.Name, "skipped", failures)
			}
			return face, s.Name
		}
		failures = append(failures, s.Name)
		r.logger.Debug("font strategy failed", "strategy", s.Name, "err", err)
	}
	if !r.warned {
		r.warned = true
		r.logger.Warn("no font strategy succeeded, using bitmap font", "skipped", failures)
	}
	return basicfont.Face7x13, Bitmap().Name
}
