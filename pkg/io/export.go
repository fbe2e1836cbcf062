package io

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/segmentio/encoding/json"

	"github.com/matzehuels/bspgen/pkg/bsp"
	"github.com/matzehuels/bspgen/pkg/dungeon"
	"github.com/matzehuels/bspgen/pkg/geom"
)

type document struct {
	Seed      int64              `json:"seed"`
	Policy    string             `json:"policy,omitempty"`
	Bounds    geom.Region        `json:"bounds"`
	Tree      node               `json:"tree"`
	Rooms     []dungeon.Room     `json:"rooms"`
	Corridors []dungeon.Corridor `json:"corridors"`
}

type node struct {
	ID       string      `json:"id"`
	Depth    int         `json:"depth"`
	Region   geom.Region `json:"region"`
	Room     *geom.Rect  `json:"room,omitempty"`
	Sibling  string      `json:"sibling,omitempty"`
	Children []node      `json:"children,omitempty"`
}

// WriteJSON encodes a dungeon, including its full tree, as indented JSON.
func WriteJSON(d *dungeon.Dungeon, w io.Writer) error {
	doc := document{
		Seed:      d.Seed,
		Policy:    d.Policy,
		Bounds:    d.Bounds,
		Tree:      toNode(d.Tree, 0),
		Rooms:     d.Rooms,
		Corridors: d.Corridors,
	}
	if doc.Rooms == nil {
		doc.Rooms = []dungeon.Room{}
	}
	if doc.Corridors == nil {
		doc.Corridors = []dungeon.Corridor{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON returns the encoding produced by [WriteJSON].
func MarshalJSON(d *dungeon.Dungeon) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes a dungeon to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(d *dungeon.Dungeon, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

func toNode(n *bsp.Node[dungeon.Area], depth int) node {
	out := node{
		ID:     n.ID.String(),
		Depth:  depth,
		Region: n.Data.Region,
		Room:   n.Data.Room,
	}
	if sib, err := n.Sibling(); err == nil {
		out.Sibling = sib.ID.String()
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, toNode(c, depth+1))
	}
	return out
}
