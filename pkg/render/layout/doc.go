// Package layout computes contact-sheet grid placements.
//
// Every thumbnail is scaled to a fixed height, so widths vary with aspect
// ratio. [GridSize] picks
//
//	columns = ceil(sqrt(n)), rows = ceil(n / columns)
//
// and widens the grid until columns >= rows. Images fill cells in row-major
// order. Each column is as wide as its widest member rather than a global
// maximum, so narrow columns stay narrow:
//
//	+-----------------------------------------+
//	|              title bar                  |
//	| +------+ +--+ +----------+              |
//	| |  0   | |1 | |    2     |              |
//	| +------+ +--+ +----------+              |
//	| +----+   +--+  +------+                 |
//	| | 3  |   |4 |  |  5   |                 |
//	| +----+   +--+  +------+                 |
//	+-----------------------------------------+
//
// The canvas is sum(column widths) + (columns+1)*padding wide and
// title + rows*(height+padding) + padding tall.
package layout
