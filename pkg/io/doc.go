// Package io provides JSON export for generated dungeons and their BSP trees.
//
// # Overview
//
// The export is meant for external tools (game engines, map editors, test
// fixtures) that want the partition and the level without linking against
// bspgen. It is a one-way format: trees are cheap to regenerate from a seed,
// so there is no importer.
//
// # JSON Format
//
//	{
//	  "seed": 42,
//	  "policy": "random",
//	  "bounds": {"x": {"min": 0, "max": 80}, "y": {"min": 0, "max": 50}},
//	  "tree": {
//	    "id": "6f1c…",
//	    "depth": 0,
//	    "region": {"x": {...}, "y": {...}},
//	    "children": [
//	      {"id": "…", "depth": 1, "region": {...}, "sibling": "…", "children": [...]},
//	      ...
//	    ]
//	  },
//	  "rooms": [{"leaf": "…", "rect": {"position": {"x": 3, "y": 2}, "width": 7, "height": 5}}],
//	  "corridors": [{"from": "…", "to": "…", "segments": [...]}]
//	}
//
// Leaves carry a "room" object when a room was placed in them. Every
// non-root node names its "sibling" so consumers can pair regions without
// walking the tree.
//
// Use [WriteJSON] to write to any io.Writer, or [ExportJSON] to write a file.
package io
