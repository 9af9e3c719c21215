package layout

import (
	"image"
	"math"

	"github.com/matzehuels/contactsheet/pkg/errors"
)

// Default geometry in pixels.
const (
	DefaultThumbHeight = 200
	DefaultPadding     = 10
	DefaultTitleHeight = 60
)

// Options controls the sheet geometry.
type Options struct {
	ThumbHeight int // height every thumbnail is scaled to
	Padding     int // gap around and between cells
	TitleHeight int // height of the title bar above the grid
}

// DefaultOptions returns the standard sheet geometry.
func DefaultOptions() Options {
	return Options{ThumbHeight: DefaultThumbHeight, Padding: DefaultPadding, TitleHeight: DefaultTitleHeight}
}

// withDefaults replaces a zero Options with the defaults and clamps the rest.
func (o Options) withDefaults() Options {
	if o == (Options{}) {
		return DefaultOptions()
	}
	if o.ThumbHeight <= 0 {
		o.ThumbHeight = DefaultThumbHeight
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.TitleHeight < 0 {
		o.TitleHeight = 0
	}
	return o
}

// Cell is the placement of one thumbnail. X and Y are the top-left corner of
// the scaled image; Width and Height its scaled size.
type Cell struct {
	Index  int
	Row    int
	Col    int
	X, Y   int
	Width  int
	Height int
}

// Bounds returns the cell rectangle on the canvas.
func (c Cell) Bounds() image.Rectangle {
	return image.Rect(c.X, c.Y, c.X+c.Width, c.Y+c.Height)
}

// Plan is a computed contact-sheet layout.
type Plan struct {
	Options      Options
	Columns      int
	Rows         int
	ColumnWidths []int // widest scaled thumbnail per column
	ColumnX      []int // left edge of each column
	Cells        []Cell
	Width        int
	Height       int
}

// GridSize picks a near-square grid with at least as many columns as rows.
func GridSize(n int) (columns, rows int) {
	if n <= 0 {
		return 0, 0
	}
	columns = int(math.Ceil(math.Sqrt(float64(n))))
	rows = ceilDiv(n, columns)
	for columns < rows {
		columns++
		rows = ceilDiv(n, columns)
	}
	return columns, rows
}

// ScaledWidth returns the width of a w×h image scaled to height, preserving
// aspect ratio. The result is at least one pixel.
func ScaledWidth(w, h, height int) int {
	if w <= 0 || h <= 0 {
		return 1
	}
	sw := int(math.Round(float64(w) / float64(h) * float64(height)))
	return max(sw, 1)
}

// Compute lays out thumbnails of the given original sizes in row-major order.
// Columns shrink to fit their widest member and every image is centred
// horizontally within its column. Zero sizes is an error.
func Compute(sizes []image.Point, opts Options) (Plan, error) {
	if len(sizes) == 0 {
		return Plan{}, errors.New(errors.ErrCodeNoImages, "no images to lay out")
	}
	opts = opts.withDefaults()
	h, pad := opts.ThumbHeight, opts.Padding

	columns, rows := GridSize(len(sizes))
	p := Plan{
		Options:      opts,
		Columns:      columns,
		Rows:         rows,
		ColumnWidths: make([]int, columns),
		ColumnX:      make([]int, columns),
		Cells:        make([]Cell, len(sizes)),
	}

	for i, sz := range sizes {
		w := ScaledWidth(sz.X, sz.Y, h)
		col := i % columns
		p.Cells[i] = Cell{Index: i, Row: i / columns, Col: col, Width: w, Height: h}
		p.ColumnWidths[col] = max(p.ColumnWidths[col], w)
	}

	x := pad
	for col, w := range p.ColumnWidths {
		p.ColumnX[col] = x
		x += w + pad
	}

	for i := range p.Cells {
		c := &p.Cells[i]
		c.X = p.ColumnX[c.Col] + (p.ColumnWidths[c.Col]-c.Width)/2
		c.Y = opts.TitleHeight + pad + c.Row*(h+pad)
	}

	p.Width = sum(p.ColumnWidths) + (columns+1)*pad
	p.Height = opts.TitleHeight + rows*(h+pad) + pad
	return p, nil
}

// Size returns the canvas size.
func (p Plan) Size() image.Point {
	return image.Pt(p.Width, p.Height)
}

// ColumnBounds returns the horizontal extent of column col.
func (p Plan) ColumnBounds(col int) (left, right int) {
	return p.ColumnX[col], p.ColumnX[col] + p.ColumnWidths[col]
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func sum(xs []int) int {
	var s int
	for _, x := range xs {
		s += x
	}
	return s
}
