package sheet

import (
	"image/color"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/renders"
)

var (
	shotCodePattern = regexp.MustCompile(`sh(?:ot)?\d+`)
	versionPattern  = regexp.MustCompile(`\.v(\d{3})\.`)
)

// Label builds the corner label for a render: <shot><_dept><_vNNN>. The
// shot code is "sh" or "shot" followed by digits, as written in the name. Missing
// parts are omitted along with their separator, so a file without a shot
// code yields a label starting at the department part.
func Label(path string, dept renders.Dept) string {
	name := filepath.Base(path)

	var b strings.Builder
	b.WriteString(shotCodePattern.FindString(name))
	if dept != renders.DeptNone {
		b.WriteString("_")
		b.WriteString(string(dept))
	}
	if m := versionPattern.FindStringSubmatch(name); m != nil {
		b.WriteString("_v")
		b.WriteString(m[1])
	}
	return b.String()
}

// TextColor picks black or white text for readability on bg using the
// 0.299R + 0.587G + 0.114B luminance.
func TextColor(bg color.Color) color.Color {
	c := color.NRGBAModel.Convert(bg).(color.NRGBA)
	lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if lum < 128 {
		return color.White
	}
	return color.Black
}

// ParseColor parses a hex colour such as "#ffffff".
func ParseColor(s string) (color.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid colour %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}
