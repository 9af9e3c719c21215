package layout

import (
	"image"
	"testing"

	"github.com/matzehuels/contactsheet/pkg/errors"
)

func TestGridSize(t *testing.T) {
	tests := []struct {
		n          int
		cols, rows int
	}{
		{1, 1, 1},
		{2, 2, 1},
		{3, 2, 2},
		{4, 2, 2},
		{5, 3, 2},
		{7, 3, 3},
		{10, 4, 3},
		{17, 5, 4},
		{100, 10, 10},
	}

	for _, tt := range tests {
		cols, rows := GridSize(tt.n)
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("GridSize(%d) = %dx%d, want %dx%d", tt.n, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestGridSizeInvariants(t *testing.T) {
	for n := 1; n <= 500; n++ {
		cols, rows := GridSize(n)
		if cols < rows {
			t.Fatalf("GridSize(%d) = %dx%d: columns < rows", n, cols, rows)
		}
		if cols*rows < n {
			t.Fatalf("GridSize(%d) = %dx%d: too few cells", n, cols, rows)
		}
		if cols*(rows-1) >= n {
			t.Fatalf("GridSize(%d) = %dx%d: empty last row", n, cols, rows)
		}
	}
}

func TestScaledWidth(t *testing.T) {
	tests := []struct {
		name       string
		w, h, want int
	}{
		{"landscape", 1920, 1080, 356},
		{"square", 500, 500, 200},
		{"portrait rounds half up", 1080, 1920, 113},
		{"exact ratio", 3, 4, 150},
		{"degenerate", 0, 100, 1},
		{"tiny", 1, 10000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScaledWidth(tt.w, tt.h, 200); got != tt.want {
				t.Errorf("ScaledWidth(%d, %d, 200) = %d, want %d", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestComputeEmpty(t *testing.T) {
	_, err := Compute(nil, DefaultOptions())
	if !errors.Is(err, errors.ErrCodeNoImages) {
		t.Errorf("Compute(nil) error = %v, want %s", err, errors.ErrCodeNoImages)
	}
}

func TestComputePerColumnWidths(t *testing.T) {
	// Heights equal the thumbnail height so scaled widths equal input widths.
	sizes := []image.Point{
		{300, 200}, {100, 200}, {200, 200},
		{150, 200}, {120, 200},
	}
	opts := Options{ThumbHeight: 200, Padding: 10, TitleHeight: 60}

	p, err := Compute(sizes, opts)
	if err != nil {
		t.Fatal(err)
	}

	if p.Columns != 3 || p.Rows != 2 {
		t.Fatalf("grid = %dx%d, want 3x2", p.Columns, p.Rows)
	}

	wantWidths := []int{300, 120, 200}
	for i, w := range wantWidths {
		if p.ColumnWidths[i] != w {
			t.Errorf("ColumnWidths[%d] = %d, want %d", i, p.ColumnWidths[i], w)
		}
	}

	wantX := []int{10, 320, 450}
	for i, x := range wantX {
		if p.ColumnX[i] != x {
			t.Errorf("ColumnX[%d] = %d, want %d", i, p.ColumnX[i], x)
		}
	}

	// Cell 3 (150 wide) is centred in column 0 (300 wide).
	if c := p.Cells[3]; c.X != 10+75 || c.Y != 60+10+210 {
		t.Errorf("Cells[3] at (%d,%d), want (85,280)", c.X, c.Y)
	}
	// Cell 1 (100 wide) is centred in column 1 (120 wide).
	if c := p.Cells[1]; c.X != 330 || c.Y != 70 {
		t.Errorf("Cells[1] at (%d,%d), want (330,70)", c.X, c.Y)
	}

	if p.Width != 300+120+200+4*10 {
		t.Errorf("Width = %d, want %d", p.Width, 660)
	}
	if p.Height != 60+2*210+10 {
		t.Errorf("Height = %d, want %d", p.Height, 490)
	}
}

func TestComputeInvariants(t *testing.T) {
	opts := DefaultOptions()
	for n := 1; n <= 40; n++ {
		sizes := make([]image.Point, n)
		for i := range sizes {
			sizes[i] = image.Pt(100+(i*37)%900, 100+(i*53)%700)
		}

		p, err := Compute(sizes, opts)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		var widths int
		for _, w := range p.ColumnWidths {
			widths += w
		}
		if want := widths + (p.Columns+1)*opts.Padding; p.Width != want {
			t.Errorf("n=%d: Width = %d, want %d", n, p.Width, want)
		}
		if want := opts.TitleHeight + p.Rows*(opts.ThumbHeight+opts.Padding) + opts.Padding; p.Height != want {
			t.Errorf("n=%d: Height = %d, want %d", n, p.Height, want)
		}

		canvas := image.Rect(0, 0, p.Width, p.Height)
		for _, c := range p.Cells {
			if c.Row != c.Index/p.Columns || c.Col != c.Index%p.Columns {
				t.Errorf("n=%d: cell %d at r%d c%d, want row-major", n, c.Index, c.Row, c.Col)
			}
			if c.Width > p.ColumnWidths[c.Col] {
				t.Errorf("n=%d: cell %d width %d exceeds column width %d", n, c.Index, c.Width, p.ColumnWidths[c.Col])
			}
			left, right := p.ColumnBounds(c.Col)
			if c.X < left || c.X+c.Width > right {
				t.Errorf("n=%d: cell %d [%d,%d) outside column [%d,%d)", n, c.Index, c.X, c.X+c.Width, left, right)
			}
			if !c.Bounds().In(canvas) {
				t.Errorf("n=%d: cell %d %v outside canvas %v", n, c.Index, c.Bounds(), canvas)
			}
		}
	}
}

func TestComputeZeroOptionsUsesDefaults(t *testing.T) {
	p, err := Compute([]image.Point{{400, 400}}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if p.Options != DefaultOptions() {
		t.Errorf("Options = %+v, want defaults", p.Options)
	}
	if p.Size() != image.Pt(200+2*DefaultPadding, DefaultTitleHeight+DefaultThumbHeight+2*DefaultPadding) {
		t.Errorf("Size() = %v", p.Size())
	}
}
