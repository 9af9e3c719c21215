package sheet

import (
	"bytes"
	"image"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/fonts"
	"github.com/matzehuels/contactsheet/pkg/render/layout"
)

// Defaults for Options fields left empty.
const (
	DefaultTitleFontSize = 32
	DefaultLabelFontSize = 16
	DefaultJPEGQuality   = 95

	// labelInset is the label offset from the column's left edge and the
	// cell's top edge.
	labelInset = 5
)

// Options configures sheet rendering.
type Options struct {
	Layout        layout.Options
	Title         string
	Labeled       bool
	Background    color.Color
	TitleFontSize float64
	LabelFontSize float64
	Fonts         *fonts.Resolver
	Logger        *log.Logger
}

func (o *Options) setDefaults() {
	if o.Background == nil {
		o.Background = color.White
	}
	if o.TitleFontSize <= 0 {
		o.TitleFontSize = DefaultTitleFontSize
	}
	if o.LabelFontSize <= 0 {
		o.LabelFontSize = DefaultLabelFontSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Fonts == nil {
		o.Fonts = fonts.NewResolver(o.Logger)
	}
}

// Render composites thumbnails into a single sheet image. Thumbnails must
// already be scaled to the layout's thumbnail height (see LoadThumbnails);
// any other height is ErrCodeInvalidInput.
func Render(thumbs []Thumbnail, opts Options) (image.Image, layout.Plan, error) {
	opts.setDefaults()

	sizes := make([]image.Point, len(thumbs))
	for i, t := range thumbs {
		sizes[i] = t.Original
	}
	plan, err := layout.Compute(sizes, opts.Layout)
	if err != nil {
		return nil, layout.Plan{}, err
	}
	for _, t := range thumbs {
		if h := t.Image.Bounds().Dy(); h != plan.Options.ThumbHeight {
			return nil, layout.Plan{}, errors.New(errors.ErrCodeInvalidInput,
				"thumbnail %s is %d px high, layout expects %d", t.Shot.Path, h, plan.Options.ThumbHeight)
		}
	}

	dc := gg.NewContext(plan.Width, plan.Height)
	dc.SetColor(opts.Background)
	dc.Clear()

	fg := TextColor(opts.Background)
	dc.SetColor(fg)
	if opts.Title != "" {
		face, _ := opts.Fonts.Face(opts.TitleFontSize)
		drawCentered(dc, face, opts.Title, float64(plan.Width), float64(plan.Options.TitleHeight))
	}

	var labelFace font.Face
	if opts.Labeled {
		labelFace, _ = opts.Fonts.Face(opts.LabelFontSize)
	}

	for i, c := range plan.Cells {
		dc.DrawImage(thumbs[i].Image, c.X, c.Y)

		if labelFace == nil {
			continue
		}
		label := Label(thumbs[i].Shot.Path, thumbs[i].Shot.Dept)
		if label == "" {
			continue
		}
		left, _ := plan.ColumnBounds(c.Col)
		dc.SetFontFace(labelFace)
		ascent := labelFace.Metrics().Ascent.Ceil()
		dc.DrawString(label, float64(left+labelInset), float64(c.Y+labelInset+ascent))
	}

	return dc.Image(), plan, nil
}

// drawCentered draws s centred in a w×h box at the origin using the ink
// bounds of the rendered string rather than the font's line metrics.
func drawCentered(dc *gg.Context, face font.Face, s string, w, h float64) {
	dc.SetFontFace(face)
	bounds, _ := font.BoundString(face, s)
	minX, minY := fixedToFloat(bounds.Min.X), fixedToFloat(bounds.Min.Y)
	tw := fixedToFloat(bounds.Max.X) - minX
	th := fixedToFloat(bounds.Max.Y) - minY

	x := (w-tw)/2 - minX
	y := (h-th)/2 - minY
	dc.DrawString(s, x, y)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// EncodeJPEG encodes img as JPEG at the given quality (1-100).
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode jpeg")
	}
	return buf.Bytes(), nil
}
