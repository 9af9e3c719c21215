// Package render groups the drawing stages of a contact-sheet run.
//
// # Overview
//
// Rendering is split into three subpackages, each usable on its own:
//
//   - [layout]: grid geometry. Given the scaled widths of the thumbnails it
//     picks a near-square column count and the canvas size.
//   - [sheet]: raster output. Loads and scales renders, paints them onto
//     the canvas with the title bar and optional corner labels, and encodes
//     the result as JPEG.
//   - [nodegraph]: the same shot list as a compositing node graph, written
//     as a script and optionally drawn as SVG through Graphviz.
//
// # Data Flow
//
//	[]renders.ShotImage
//	       ↓
//	sheet.LoadThumbnails ──→ layout.Compute
//	       ↓                      ↓
//	sheet.Render (unlabeled, labeled) → JPEG
//
//	[]renders.ShotImage → nodegraph.Build → Script / ToDOT → RenderSVG
//
// [layout]: github.com/matzehuels/contactsheet/pkg/render/layout
// [sheet]: github.com/matzehuels/contactsheet/pkg/render/sheet
// [nodegraph]: github.com/matzehuels/contactsheet/pkg/render/nodegraph
package render
