package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/bspgen/pkg/dungeon"
	"github.com/matzehuels/bspgen/pkg/split"
)

func TestToDOT(t *testing.T) {
	d, err := dungeon.Generate(dungeon.Options{Width: 40, Height: 40, Depth: 2, Policy: split.PolicyBisect, Seed: 3})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	dot := ToDOT(d.Tree, Options{})
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Fatalf("malformed DOT:\n%s", dot)
	}
	if got, want := strings.Count(dot, " -> "), d.Tree.Len()-1; got != want {
		t.Errorf("edges = %d, want %d", got, want)
	}
	for _, leaf := range d.Tree.Leaves() {
		if !strings.Contains(dot, `"`+leaf.ID.String()+`" [label="`+leaf.ID.String()[:8]+`"`) {
			t.Errorf("missing node for leaf %s", leaf.ID)
		}
	}
	if strings.Contains(dot, "area:") {
		t.Error("non-detailed labels should only show the id")
	}
}

func TestToDOTDetailedSiblings(t *testing.T) {
	d, err := dungeon.Generate(dungeon.Options{Width: 40, Height: 40, Depth: 2, Policy: split.PolicyBisect, Seed: 3})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	dot := ToDOT(d.Tree, Options{Detailed: true, Siblings: true})
	if got, want := strings.Count(dot, "style=dotted"), len(d.Tree.SiblingPairs()); got != want {
		t.Errorf("sibling links = %d, want %d", got, want)
	}
	if !strings.Contains(dot, `x: 0..40\ny: 0..40\narea: 1600`) {
		t.Errorf("root label missing region details:\n%s", dot)
	}
	if got := strings.Count(dot, "room: "); got != len(d.Rooms) {
		t.Errorf("room details = %d, want %d", got, len(d.Rooms))
	}
}

func TestToDOTEmptyLeaves(t *testing.T) {
	d, err := dungeon.Generate(dungeon.Options{Width: 8, Height: 8, Depth: 1, Policy: split.PolicyBisect, Seed: 1, MinRoomSize: 5})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	dot := ToDOT(d.Tree, Options{})
	if got := strings.Count(dot, "dashed"); got != 2 {
		t.Errorf("dashed leaves = %d, want 2", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() =\n%s\nwant\n%s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should pass through")
	}
}

func TestRenderSVG(t *testing.T) {
	d, err := dungeon.Generate(dungeon.Options{Width: 20, Height: 20, Depth: 1, Policy: split.PolicyBisect, Seed: 2})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	svg, err := RenderSVG(context.Background(), ToDOT(d.Tree, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("missing normalized svg header:\n%s", svg)
	}
}
