// Package sink renders generated dungeons as SVG.
//
// [RenderSVG] draws the level on a wall-colored background. Rooms are
// filled rectangles, corridors are drawn beneath them, and with
// [WithRegions] every leaf region of the BSP tree is outlined so the
// partition is visible behind the level:
//
//	svg := sink.RenderSVG(d,
//	    sink.WithScale(12),
//	    sink.WithRegions(),
//	    sink.WithIDs(),
//	)
//
// Hovering a room highlights it together with the leaf region it was
// placed in. Each room and region carries a data-leaf attribute holding
// the leaf's node ID, matching the ids in the JSON export.
//
// For ASCII output use [dungeon.Dungeon.String]; for a diagram of the tree
// itself see package nodelink.
package sink
