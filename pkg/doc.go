// Package pkg holds the bspgen libraries.
//
// bspgen partitions a rectangle with a binary space partitioning tree and
// turns the partition into a room-and-corridor level. The packages build on
// each other:
//
//  1. [geom] - axis-aligned regions, points and rectangles
//  2. [bsp] - the generic split tree
//  3. [split] - split policies for regions (bisect, random)
//  4. [dungeon] - room placement and corridor carving over a region tree
//  5. [render], [io] - SVG, Graphviz and JSON output
//  6. [config], [cache] - TOML settings and artifact caching
//  7. [pipeline] - generate and render in one cached run, with [observability] hooks
//
// # Quick Start
//
//	root, _ := bsp.New(geom.NewRegion(0, 0, 100, 60), 3, split.Bisect())
//	if err := root.Split(); err != nil {
//	    return err
//	}
//	for _, leaf := range root.Leaves() {
//	    fmt.Println(leaf.Data)
//	}
//
// Or generate a complete level:
//
//	d, _ := dungeon.Generate(dungeon.Options{Seed: 42})
//	fmt.Print(d.String())
//
// [geom]: github.com/matzehuels/bspgen/pkg/geom
// [bsp]: github.com/matzehuels/bspgen/pkg/bsp
// [split]: github.com/matzehuels/bspgen/pkg/split
// [dungeon]: github.com/matzehuels/bspgen/pkg/dungeon
// [render]: github.com/matzehuels/bspgen/pkg/render
// [io]: github.com/matzehuels/bspgen/pkg/io
// [config]: github.com/matzehuels/bspgen/pkg/config
// [cache]: github.com/matzehuels/bspgen/pkg/cache
// [pipeline]: github.com/matzehuels/bspgen/pkg/pipeline
// [observability]: github.com/matzehuels/bspgen/pkg/observability
package pkg
