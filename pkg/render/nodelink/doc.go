// Package nodelink renders BSP trees as node-link diagrams.
//
// Where package sink draws the level in map space, this package draws the
// tree itself: one box per node, an arrow from every internal node to its
// two children, and optionally a dotted link between siblings.
//
//	dot := nodelink.ToDOT(d.Tree, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToDOT] produces plain Graphviz DOT source, so it can also be saved and
// processed with external Graphviz tools. The layout is top-to-bottom
// (rankdir=TB) with the root at the top.
//
// [RenderSVG] renders in-process with [github.com/goccy/go-graphviz]; no
// Graphviz installation is required.
package nodelink
