package renders

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   RenderFile
		wantOK bool
	}{
		{
			name:   "simple",
			input:  "shotA.v002.0001.png",
			want:   RenderFile{Path: "shotA.v002.0001.png", BaseName: "shotA", Version: 2, Frame: "0001"},
			wantOK: true,
		},
		{
			name:   "trailing separator stripped",
			input:  "sh010_comp..v010.1001.png",
			want:   RenderFile{Path: "sh010_comp..v010.1001.png", BaseName: "sh010_comp", Version: 10, Frame: "1001"},
			wantOK: true,
		},
		{name: "two digit version", input: "shotA.v02.0001.png"},
		{name: "four digit version", input: "shotA.v0002.0001.png"},
		{name: "three digit frame", input: "shotA.v002.001.png"},
		{name: "jpg", input: "shotA.v002.0001.jpg"},
		{name: "upper case ext", input: "shotA.v002.0001.PNG"},
		{name: "no version", input: "shotA.0001.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFilename(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseFilename(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseFilename(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLatestVersionsKeepsOnlyMaxVersion(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "shotA.v001.0001.png", "shotA.v002.0001.png", "shotA.v002.0002.png")

	got, err := LatestVersions(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "shotA.v002.0001.png"),
		filepath.Join(dir, "shotA.v002.0002.png"),
	}
	if !slices.Equal(got, want) {
		t.Errorf("LatestVersions() = %v, want %v", got, want)
	}
}

func TestLatestVersionsMultipleBases(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"sh020.v001.0001.png",
		"sh010.v003.0001.png",
		"sh010.v010.0001.png",
		"notes.txt",
		"sh010.v011.0001.exr",
		"sh030.v001.0001.png",
	)

	got, err := LatestVersions(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "sh010.v010.0001.png"),
		filepath.Join(dir, "sh020.v001.0001.png"),
		filepath.Join(dir, "sh030.v001.0001.png"),
	}
	if !slices.Equal(got, want) {
		t.Errorf("LatestVersions() = %v, want %v", got, want)
	}
}

func TestLatestVersionsEmpty(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "readme.md", "shot.png")

	got, err := LatestVersions(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("LatestVersions() = %v, want empty", got)
	}
}

func TestLatestVersionsMissingDir(t *testing.T) {
	if _, err := LatestVersions(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("LatestVersions() on missing dir should fail")
	}
}

func TestVersionGroup(t *testing.T) {
	g := NewVersionGroup()
	g.Add(RenderFile{Path: "b.v001.0001.png", BaseName: "b", Version: 1})
	g.Add(RenderFile{Path: "a.v004.0001.png", BaseName: "a", Version: 4})
	g.Add(RenderFile{Path: "b.v002.0001.png", BaseName: "b", Version: 2})

	if got := g.BaseNames(); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("BaseNames() = %v, want first-encounter order [b a]", got)
	}

	v, files := g.Latest("b")
	if v != 2 || !slices.Equal(files, []string{"b.v002.0001.png"}) {
		t.Errorf("Latest(b) = %d %v", v, files)
	}

	if v, files := g.Latest("missing"); v != 0 || files != nil {
		t.Errorf("Latest(missing) = %d %v, want 0 nil", v, files)
	}
}
