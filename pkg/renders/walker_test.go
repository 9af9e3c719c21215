package renders

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/contactsheet/pkg/errors"
)

func newTestWalker(t *testing.T, cfg Config) *Walker {
	t.Helper()
	w, err := NewWalker(cfg)
	if err != nil {
		t.Fatalf("NewWalker() error = %v", err)
	}
	return w
}

func TestNewWalkerRejectsBadMarker(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"single segment", Config{WorkMarker: "CMP"}},
		{"three segments", Config{WorkMarker: "CMP/work/renders"}},
		{"same departments", Config{WorkMarker: "LGT/work", LightingDepartment: "LGT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWalker(tt.cfg)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("NewWalker() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	w := newTestWalker(t, Config{})
	tests := []struct {
		path string
		want NodeKind
	}{
		{filepath.Join("seq", "sh010", "CMP", "work"), CompositeWork},
		{filepath.Join("seq", "sh010", "LGT", "work"), LightingWork},
		{filepath.Join("seq", "sh010", "CMP"), Other},
		{filepath.Join("seq", "sh010", "ANM", "work"), Other},
		{filepath.Join("seq", "sh010", "CMP", "work", "renders"), Other},
		{filepath.Join("seq", "CMPwork"), Other},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := w.Classify(tt.path); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestClassifyCustomMarker(t *testing.T) {
	w := newTestWalker(t, Config{WorkMarker: "comp/wip", LightingDepartment: "light"})
	if got := w.Classify(filepath.Join("s", "comp", "wip")); got != CompositeWork {
		t.Errorf("Classify(comp/wip) = %v, want %v", got, CompositeWork)
	}
	if got := w.Classify(filepath.Join("s", "light", "wip")); got != LightingWork {
		t.Errorf("Classify(light/wip) = %v, want %v", got, LightingWork)
	}
}

func renders(root, shot, dept string) string {
	return filepath.Join(root, shot, dept, "work", "renders")
}

func TestWalkFallsBackToLightingPerShot(t *testing.T) {
	root := t.TempDir()

	// sh010: composite populated, lighting populated -> composite only
	touch(t, renders(root, "sh010", "CMP"), "sh010_comp.v002.0001.png", "sh010_comp.v001.0001.png")
	touch(t, renders(root, "sh010", "LGT"), "sh010_lgt.v005.0001.png")

	// sh020: composite renders folder empty -> lighting
	touch(t, renders(root, "sh020", "CMP"))
	touch(t, renders(root, "sh020", "LGT"), "sh020_lgt.v001.0001.png", "sh020_lgt.v003.0001.png")

	// sh030: composite work without renders folder -> lighting
	if err := os.MkdirAll(filepath.Join(root, "sh030", "CMP", "work"), 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, renders(root, "sh030", "LGT"), "sh030_lgt.v001.0001.png")

	// sh040: lighting only, no composite work at all -> nothing by default
	touch(t, renders(root, "sh040", "LGT"), "sh040_lgt.v001.0001.png")

	w := newTestWalker(t, Config{})
	got, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	want := []ShotImage{
		{Path: filepath.Join(renders(root, "sh010", "CMP"), "sh010_comp.v002.0001.png"), Dept: DeptComposite},
		{Path: filepath.Join(renders(root, "sh020", "LGT"), "sh020_lgt.v003.0001.png"), Dept: DeptLighting},
		{Path: filepath.Join(renders(root, "sh030", "LGT"), "sh030_lgt.v001.0001.png"), Dept: DeptLighting},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Walk() =\n%v\nwant\n%v", got, want)
	}
}

func TestWalkIncludeLightingOnly(t *testing.T) {
	root := t.TempDir()
	touch(t, renders(root, "sh010", "CMP"), "sh010.v001.0001.png")
	touch(t, renders(root, "sh010", "LGT"), "sh010_lgt.v001.0001.png")
	touch(t, renders(root, "sh040", "LGT"), "sh040_lgt.v001.0001.png")

	w := newTestWalker(t, Config{IncludeLightingOnly: true})
	got, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	want := []ShotImage{
		{Path: filepath.Join(renders(root, "sh010", "CMP"), "sh010.v001.0001.png"), Dept: DeptComposite},
		{Path: filepath.Join(renders(root, "sh040", "LGT"), "sh040_lgt.v001.0001.png"), Dept: DeptLighting},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Walk() = %v, want %v", got, want)
	}
}

func TestWalkNestedShots(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "shots", "sh010", "CMP", "work", "renders"), "sh010.v001.0001.png", "sh010.v001.0002.png")

	w := newTestWalker(t, Config{})
	got, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("Walk() returned %d images, want 2 frames of v001", len(got))
	}
	for _, s := range got {
		if s.Dept != DeptComposite {
			t.Errorf("Dept = %q, want %q", s.Dept, DeptComposite)
		}
	}
}

func TestWalkEmptyResults(t *testing.T) {
	w := newTestWalker(t, Config{})

	t.Run("missing root", func(t *testing.T) {
		got, err := w.Walk(filepath.Join(t.TempDir(), "missing"))
		if err != nil || len(got) != 0 {
			t.Errorf("Walk() = %v, %v; want empty, nil", got, err)
		}
	})

	t.Run("no shots", func(t *testing.T) {
		root := t.TempDir()
		touch(t, filepath.Join(root, "sh010", "ANM", "work"), "notes.txt")
		got, err := w.Walk(root)
		if err != nil || len(got) != 0 {
			t.Errorf("Walk() = %v, %v; want empty, nil", got, err)
		}
	})

	t.Run("both departments empty", func(t *testing.T) {
		root := t.TempDir()
		touch(t, renders(root, "sh010", "CMP"), "bad.png")
		touch(t, renders(root, "sh010", "LGT"))
		got, err := w.Walk(root)
		if err != nil || len(got) != 0 {
			t.Errorf("Walk() = %v, %v; want empty, nil", got, err)
		}
	})
}

func TestListProjectsAndSequences(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{
		filepath.Join("25_alpha", "sequences", "SEQ010"),
		filepath.Join("25_alpha", "sequences", "SEQ020"),
		filepath.Join("24_old", "sequences", "SEQ010"),
		filepath.Join("25_empty", "sequences"),
		"25_noseq",
	} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	projects, err := ListProjects(root, "25")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"25_alpha", "25_empty", "25_noseq"}; !slices.Equal(projects, want) {
		t.Errorf("ListProjects() = %v, want %v", projects, want)
	}

	seqs, err := ListSequences(filepath.Join(root, "25_alpha"), "")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"SEQ010", "SEQ020"}; !slices.Equal(seqs, want) {
		t.Errorf("ListSequences() = %v, want %v", seqs, want)
	}

	seqs, err = ListSequences(filepath.Join(root, "25_empty"), "")
	if err != nil || len(seqs) != 0 {
		t.Errorf("ListSequences(empty) = %v, %v; want empty, nil", seqs, err)
	}

	_, err = ListSequences(filepath.Join(root, "25_noseq"), "")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("ListSequences(no sequences) error = %v, want %s", err, errors.ErrCodeNotFound)
	}

	if _, err := ListProjects(filepath.Join(root, "missing"), ""); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("ListProjects(missing) error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}
