package nodegraph

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/renders"
)

// ToDOT converts the graph to Graphviz DOT for a quick visual check of the
// script wiring. Read nodes from the lighting department are filled amber.
func ToDOT(g *Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name, strings.Join(fmtAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n Node) []string {
	switch n.Type {
	case TypeRead:
		attrs := []string{fmt.Sprintf("label=%q", n.Name+"\n"+path.Base(n.File))}
		if n.Dept == renders.DeptLighting {
			attrs = append(attrs, "fillcolor=\"#ffd27f\"")
		}
		return attrs
	case TypeDot:
		return []string{"shape=point", "width=0.15", "label=\"\""}
	default:
		return []string{fmt.Sprintf("label=%q", n.Name), "fillcolor=lightgrey"}
	}
}

// PreviewMaxWidth caps the displayed width of a preview. Long sequences lay
// out as a very wide single rank; the drawing is scaled down to fit, never up.
const PreviewMaxWidth = 1600

// RenderSVG draws a DOT graph as SVG with Graphviz and fits the root element
// to PreviewMaxWidth.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse node-graph DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render node-graph preview")
	}
	return fitPreview(buf.Bytes(), PreviewMaxWidth), nil
}

var (
	rootTagRe = regexp.MustCompile(`<svg\b[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// fitPreview replaces the root <svg> element of a Graphviz drawing with one
// sized in pixels from its viewBox, scaled down to maxWidth when wider. The
// viewBox itself is kept, so the drawing scales rather than crops. Input
// without a usable viewBox is returned unchanged.
func fitPreview(svg []byte, maxWidth float64) []byte {
	root := rootTagRe.Find(svg)
	if root == nil {
		return svg
	}
	m := viewBoxRe.FindSubmatch(root)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w <= 0 || h <= 0 {
		return svg
	}

	dw, dh := w, h
	if maxWidth > 0 && w > maxWidth {
		dw, dh = maxWidth, h*maxWidth/w
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="%s %s %s %s" width="%.0f" height="%.0f">`,
		m[1], m[2], m[3], m[4], dw, dh)
	return bytes.Replace(svg, root, []byte(tag), 1)
}
