package io

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/segmentio/encoding/json"

	"github.com/matzehuels/bspgen/pkg/dungeon"
	"github.com/matzehuels/bspgen/pkg/split"
)

type decodedNode struct {
	ID       string `json:"id"`
	Depth    int    `json:"depth"`
	Sibling  string `json:"sibling"`
	Room     *struct {
		Width float64 `json:"width"`
	} `json:"room"`
	Children []decodedNode `json:"children"`
}

type decodedDoc struct {
	Seed      int64       `json:"seed"`
	Policy    string      `json:"policy"`
	Tree      decodedNode `json:"tree"`
	Rooms     []any       `json:"rooms"`
	Corridors []any       `json:"corridors"`
}

func generate(t *testing.T) *dungeon.Dungeon {
	t.Helper()
	d, err := dungeon.Generate(dungeon.Options{Width: 64, Height: 40, Depth: 2, Policy: split.PolicyBisect, Seed: 11})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return d
}

func TestWriteJSON(t *testing.T) {
	d := generate(t)

	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var doc decodedDoc
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.Seed != 11 || doc.Policy != split.PolicyBisect {
		t.Errorf("seed/policy = %d/%q", doc.Seed, doc.Policy)
	}
	if doc.Tree.ID != d.Tree.ID.String() {
		t.Error("tree id mismatch")
	}
	if doc.Tree.Sibling != "" {
		t.Error("root should not name a sibling")
	}
	if len(doc.Tree.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(doc.Tree.Children))
	}

	a, b := doc.Tree.Children[0], doc.Tree.Children[1]
	if a.Sibling != b.ID || b.Sibling != a.ID {
		t.Error("children should name each other as siblings")
	}
	if a.Depth != 1 || a.Children[0].Depth != 2 {
		t.Errorf("depths = %d, %d", a.Depth, a.Children[0].Depth)
	}

	rooms := 0
	var count func(n decodedNode)
	count = func(n decodedNode) {
		if n.Room != nil {
			rooms++
		}
		for _, c := range n.Children {
			count(c)
		}
	}
	count(doc.Tree)
	if rooms != len(d.Rooms) || len(doc.Rooms) != len(d.Rooms) {
		t.Errorf("rooms in tree = %d, in list = %d, want %d", rooms, len(doc.Rooms), len(d.Rooms))
	}
	if len(doc.Corridors) != len(d.Corridors) {
		t.Errorf("corridors = %d, want %d", len(doc.Corridors), len(d.Corridors))
	}
}

func TestWriteJSONEmptyLists(t *testing.T) {
	d, err := dungeon.Generate(dungeon.Options{Width: 4, Height: 4, Depth: 1, Policy: split.PolicyBisect, Seed: 1})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	data, err := MarshalJSON(d)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if !bytes.Contains(data, []byte(`"rooms": []`)) || !bytes.Contains(data, []byte(`"corridors": []`)) {
		t.Errorf("empty lists should encode as []:\n%s", data)
	}
}

func TestExportJSON(t *testing.T) {
	d := generate(t)
	path := filepath.Join(t.TempDir(), "dungeon.json")

	if err := ExportJSON(d, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := MarshalJSON(d)
	if !bytes.Equal(data, want) {
		t.Error("ExportJSON and MarshalJSON outputs differ")
	}

	if err := ExportJSON(d, filepath.Join(t.TempDir(), "missing", "dir", "x.json")); err == nil {
		t.Error("ExportJSON into a missing directory should fail")
	}
}
