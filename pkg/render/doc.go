// Package render groups the visual outputs of bspgen.
//
// Two renderers live in subpackages:
//
//   - [sink] draws a generated dungeon in map space as SVG: walls, rooms,
//     corridors and optionally the leaf regions of the partition.
//   - [nodelink] draws the BSP tree itself as a Graphviz node-link diagram.
//
//	svg := sink.RenderSVG(d, sink.WithRegions())
//
//	dot := nodelink.ToDOT(d.Tree, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Plain-text output needs no renderer: [dungeon.Dungeon.String] returns the
// ASCII map.
//
// [sink]: github.com/matzehuels/bspgen/pkg/render/sink
// [nodelink]: github.com/matzehuels/bspgen/pkg/render/nodelink
// [dungeon.Dungeon.String]: github.com/matzehuels/bspgen/pkg/dungeon.Dungeon.String
package render
