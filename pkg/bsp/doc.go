// Package bsp provides a generic binary space partition tree.
//
// # Overview
//
// A [Node] holds an arbitrary payload and is recursively subdivided by an
// injected [SplitFunc] down to a fixed depth. The tree is the structural
// skeleton of a procedural level: leaves become rooms, sibling pairs become
// corridor endpoints. How a payload is divided is not this package's concern;
// see package split for region policies.
//
// # Basic Usage
//
// Create a root with [New], build the tree with [Node.Split], then query it:
//
//	root, err := bsp.New(geom.NewRegion(0, 0, 100, 60), 3, split.Bisect())
//	if err != nil {
//	    return err
//	}
//	if err := root.Split(); err != nil {
//	    return err
//	}
//	for _, leaf := range root.Leaves() {
//	    sib, _ := leaf.Sibling()
//	    fmt.Println(leaf.Data, "pairs with", sib.Data)
//	}
//
// # Shape
//
// The root's own Split call is depth 0 and every recursive call adds one.
// A node at depth MaxDepth is always a leaf, so a successful Split on the
// root produces a perfect binary tree with 2^MaxDepth leaves, all at depth
// MaxDepth. Children are built and recursed in order: index 0, then index 1.
// [Node.Leaves] returns leaves in that left-to-right order.
//
// # Errors
//
// Misuse is reported with structured errors from package errors:
//
//   - [errors.ErrCodeContractViolation]: the split function returned a
//     number of payloads other than two
//   - [errors.ErrCodePrecondition]: [Node.Sibling] was called on the root
//   - [errors.ErrCodeInvalidInput]: bad arguments to [New]
//
// # Concurrency
//
// Split mutates the tree and must not run concurrently with readers. Once
// built, a tree is never mutated again and may be read from any number of
// goroutines.
//
// [errors.ErrCodeContractViolation]: github.com/matzehuels/bspgen/pkg/errors
// [errors.ErrCodePrecondition]: github.com/matzehuels/bspgen/pkg/errors
// [errors.ErrCodeInvalidInput]: github.com/matzehuels/bspgen/pkg/errors
package bsp
