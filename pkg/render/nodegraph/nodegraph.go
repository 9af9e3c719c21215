package nodegraph

import (
	"fmt"
	"math"
	"path"
	"slices"
	"strings"

	"github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/renders"
)

// Node placement in script coordinates.
const (
	Spacing      = 180
	LightingY    = 0
	CompositeY   = 200
	DotOffsetX   = 34
	ContactY     = 400
	ContactDropY = 20
	SheetSize    = 4096
)

// Type is a node class in the compositing script.
type Type string

const (
	TypeRead         Type = "Read"
	TypeDot          Type = "Dot"
	TypeContactSheet Type = "ContactSheet"
)

// Node is one positioned node of the graph.
type Node struct {
	Type Type
	Name string
	X, Y int
	File string       // Read nodes only, forward slashes
	Dept renders.Dept // Read nodes only
}

// Edge connects two nodes by name.
type Edge struct {
	From, To string
}

// Graph is the node graph for one contact sheet: a Read and a Dot per image,
// all feeding a single ContactSheet node.
type Graph struct {
	Nodes []Node
	Edges []Edge
	// Inputs is the number of images feeding the contact sheet.
	Inputs int
	// Grid is the row and column count of the contact sheet node.
	Grid int
}

// Build lays out the graph for shots. Shots are ordered by base filename;
// the input slice is not modified.
func Build(shots []renders.ShotImage) (*Graph, error) {
	if len(shots) == 0 {
		return nil, errors.New(errors.ErrCodeNoImages, "no images for node graph")
	}

	sorted := make([]renders.ShotImage, len(shots))
	for i, s := range shots {
		s.Path = strings.ReplaceAll(s.Path, `\`, "/")
		sorted[i] = s
	}
	slices.SortStableFunc(sorted, func(a, b renders.ShotImage) int {
		return strings.Compare(path.Base(a.Path), path.Base(b.Path))
	})

	n := len(sorted)
	g := &Graph{
		Nodes:  make([]Node, 0, 2*n+1),
		Inputs: n,
		Grid:   int(math.Ceil(math.Sqrt(float64(n)))),
	}
	sheet := TypeContactSheet.name(1)

	for i, s := range sorted {
		x := i * Spacing
		y := CompositeY
		if s.Dept == renders.DeptLighting {
			y = LightingY
		}
		read := Node{Type: TypeRead, Name: TypeRead.name(i + 1), X: x, Y: y, File: s.Path, Dept: s.Dept}
		dot := Node{Type: TypeDot, Name: TypeDot.name(i + 1), X: x + DotOffsetX, Y: ContactY}
		g.Nodes = append(g.Nodes, read, dot)
		g.Edges = append(g.Edges, Edge{From: read.Name, To: dot.Name}, Edge{From: dot.Name, To: sheet})
	}

	lastX := (n - 1) * Spacing
	g.Nodes = append(g.Nodes, Node{
		Type: TypeContactSheet,
		Name: sheet,
		X:    lastX / 2,
		Y:    ContactY + ContactDropY,
	})
	return g, nil
}

func (t Type) name(i int) string {
	return fmt.Sprintf("%s%d", t, i)
}

// Script renders the graph as compositing-script text. Lines are joined with
// "\n" and there is no trailing newline.
func (g *Graph) Script() string {
	var lines []string
	for _, n := range g.Nodes {
		switch n.Type {
		case TypeRead:
			lines = append(lines,
				"Read {",
				fmt.Sprintf(" file %q", n.File),
				" name "+n.Name,
				fmt.Sprintf(" xpos %d", n.X),
				fmt.Sprintf(" ypos %d", n.Y),
				"}",
				"",
			)
		case TypeDot:
			lines = append(lines,
				"Dot {",
				" name "+n.Name,
				fmt.Sprintf(" xpos %d", n.X),
				fmt.Sprintf(" ypos %d", n.Y),
				"}",
				"",
			)
		case TypeContactSheet:
			lines = append(lines,
				"ContactSheet {",
				fmt.Sprintf(" inputs %d", g.Inputs),
				fmt.Sprintf(" width %d height %d", SheetSize, SheetSize),
				fmt.Sprintf(" rows %d", g.Grid),
				fmt.Sprintf(" columns %d", g.Grid),
				" center true",
				fmt.Sprintf(" xpos %d", n.X),
				fmt.Sprintf(" ypos %d", n.Y),
				" name "+n.Name,
				"}",
			)
		}
	}
	return strings.Join(lines, "\n")
}
