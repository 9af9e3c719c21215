// Package nodegraph exports a contact sheet as a node graph for a compositing
// tool.
//
// Each image becomes a Read node with a Dot beneath it, and all Dots feed one
// ContactSheet node. Reads are spaced 180 units apart in base-filename order;
// lighting renders sit on a higher row than composite renders so fallbacks
// stand out in the graph.
//
//	g, err := nodegraph.Build(shots)
//	script := g.Script()
//
// The same graph can be drawn with Graphviz for a preview:
//
//	svg, err := nodegraph.RenderSVG(ctx, nodegraph.ToDOT(g))
package nodegraph
