package bsp_test

import (
	"fmt"

	"github.com/matzehuels/bspgen/pkg/bsp"
	"github.com/matzehuels/bspgen/pkg/errors"
	"github.com/matzehuels/bspgen/pkg/geom"
	"github.com/matzehuels/bspgen/pkg/split"
)

func ExampleNode_Split() {
	root, _ := bsp.New(geom.NewRegion(0, 0, 100, 60), 2, split.Bisect())
	_ = root.Split()

	for _, leaf := range root.Leaves() {
		r := leaf.Data
		fmt.Printf("x=%g..%g y=%g..%g area=%g\n", r.X.Min, r.X.Max, r.Y.Min, r.Y.Max, geom.Area(r))
	}
	// Output:
	// x=0..50 y=0..30 area=1500
	// x=0..50 y=30..60 area=1500
	// x=50..100 y=0..30 area=1500
	// x=50..100 y=30..60 area=1500
}

func ExampleNode_Sibling() {
	root, _ := bsp.New(geom.NewRegion(0, 0, 100, 60), 1, split.Bisect())
	_ = root.Split()

	left := root.Leaves()[0]
	right, _ := left.Sibling()
	fmt.Println(geom.Center(left.Data), geom.Center(right.Data))

	_, err := root.Sibling()
	fmt.Println(errors.GetCode(err))
	// Output:
	// {25 30} {75 30}
	// PRECONDITION_VIOLATION
}

func ExampleNode_SiblingPairs() {
	root, _ := bsp.New(geom.NewRegion(0, 0, 64, 64), 2, split.Bisect())
	_ = root.Split()

	for _, p := range root.SiblingPairs() {
		fmt.Println(geom.Center(p[0].Data), "<->", geom.Center(p[1].Data))
	}
	// Output:
	// {16 32} <-> {48 32}
	// {16 16} <-> {16 48}
	// {48 16} <-> {48 48}
}
