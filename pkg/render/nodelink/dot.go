package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bspgen/pkg/bsp"
	"github.com/matzehuels/bspgen/pkg/dungeon"
	"github.com/matzehuels/bspgen/pkg/geom"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the region, and the room for leaves, in node labels.
	// When false, only the short node ID is shown.
	Detailed bool
	// Siblings draws a dotted link between the two children of every split.
	Siblings bool
}

// ToDOT converts a dungeon tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Leaves without a room are drawn dashed and grey to set them apart from
// leaves that hold one.
func ToDOT(root *bsp.Node[dungeon.Area], opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	root.Walk(func(n *bsp.Node[dungeon.Area], _ int) bool {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID.String(), strings.Join(attrs, ", "))
		return true
	})

	buf.WriteString("\n")
	root.Walk(func(n *bsp.Node[dungeon.Area], _ int) bool {
		for _, c := range n.Children {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.ID.String(), c.ID.String())
		}
		return true
	})

	if opts.Siblings {
		buf.WriteString("\n")
		for _, pair := range root.SiblingPairs() {
			fmt.Fprintf(&buf, "  %q -> %q [dir=none, style=dotted, constraint=false];\n",
				pair[0].ID.String(), pair[1].ID.String())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *bsp.Node[dungeon.Area], detailed bool) string {
	id := n.ID.String()[:8]
	if !detailed {
		return id
	}

	r := n.Data.Region
	parts := []string{
		fmt.Sprintf("x: %g..%g", r.X.Min, r.X.Max),
		fmt.Sprintf("y: %g..%g", r.Y.Min, r.Y.Max),
		fmt.Sprintf("area: %g", geom.Area(r)),
	}
	if room := n.Data.Room; room != nil {
		parts = append(parts, fmt.Sprintf("room: %gx%g @ %g,%g", room.Width, room.Height, room.Position.X, room.Position.Y))
	}
	return id + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *bsp.Node[dungeon.Area], label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.IsLeaf() && n.Data.Room == nil:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case n.IsLeaf():
		attrs = append(attrs, "fillcolor=\"#e8dcc0\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg header, which carries pt units
// and a transform-dependent origin, with a plain pixel viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
