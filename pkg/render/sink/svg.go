package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/bspgen/pkg/bsp"
	"github.com/matzehuels/bspgen/pkg/dungeon"
	"github.com/matzehuels/bspgen/pkg/geom"
)

const interactionCSS = `
    .room { transition: stroke-width 0.2s ease; }
    .region.highlight { fill: #3a4a5c; }
    .room.highlight { stroke-width: 3; }`

const interactionJS = `
    function highlight(id) {
      document.querySelectorAll('[data-leaf="' + id + '"]').forEach(el => el.classList.add('highlight'));
    }
    function clearHighlight() {
      document.querySelectorAll('.highlight').forEach(el => el.classList.remove('highlight'));
    }
    document.querySelectorAll('.room').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.leaf));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// Palette used by [RenderSVG].
const (
	ColorWall     = "#1d1f21"
	ColorRegion   = "#5c6b7a"
	ColorFloor    = "#e8dcc0"
	ColorCorridor = "#b09a70"
	ColorLabel    = "#333333"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale       float64
	showRegions bool
	showIDs     bool
}

// DefaultScale is the number of SVG pixels per map unit.
const DefaultScale = 10

func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }
func WithRegions() SVGOption        { return func(r *svgRenderer) { r.showRegions = true } }
func WithIDs() SVGOption            { return func(r *svgRenderer) { r.showIDs = true } }

// RenderSVG draws d as an SVG image: walls as background, then leaf region
// outlines, corridors and rooms on top.
func RenderSVG(d *dungeon.Dungeon, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	w := geom.Width(d.Bounds) * r.scale
	h := geom.Height(d.Bounds) * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, `  <rect class="wall" x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", w, h, ColorWall)

	if r.showRegions {
		for _, leaf := range d.Tree.Leaves() {
			r.renderRegion(&buf, d.Bounds, leaf)
		}
	}
	for _, c := range d.Corridors {
		for _, seg := range c.Segments {
			r.renderRect(&buf, d.Bounds, seg, `class="corridor"`, ColorCorridor)
		}
	}
	for _, room := range d.Rooms {
		attrs := fmt.Sprintf(`class="room" data-leaf="%s" stroke="%s" stroke-width="1"`, room.Leaf, ColorLabel)
		r.renderRect(&buf, d.Bounds, room.Rect, attrs, ColorFloor)
	}
	if r.showIDs {
		for _, room := range d.Rooms {
			r.renderLabel(&buf, d.Bounds, room)
		}
	}

	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", interactionCSS)
	fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", interactionJS)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = DefaultScale
	}
	return r
}

// toCanvas maps a map-space position to SVG pixels relative to the bounds.
func (r svgRenderer) toCanvas(bounds geom.Region, p geom.Point) (float64, float64) {
	return (p.X - bounds.X.Min) * r.scale, (p.Y - bounds.Y.Min) * r.scale
}

func (r svgRenderer) renderRegion(buf *bytes.Buffer, bounds geom.Region, leaf *bsp.Node[dungeon.Area]) {
	reg := leaf.Data.Region
	x, y := r.toCanvas(bounds, geom.Point{X: reg.X.Min, Y: reg.Y.Min})
	fmt.Fprintf(buf, `  <rect class="region" id="region-%s" data-leaf="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-dasharray="4 2"/>`+"\n",
		leaf.ID, leaf.ID, x, y, geom.Width(reg)*r.scale, geom.Height(reg)*r.scale, ColorRegion)
}

func (r svgRenderer) renderRect(buf *bytes.Buffer, bounds geom.Region, rect geom.Rect, attrs, fill string) {
	x, y := r.toCanvas(bounds, rect.Position)
	fmt.Fprintf(buf, `  <rect %s x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		attrs, x, y, rect.Width*r.scale, rect.Height*r.scale, fill)
}

func (r svgRenderer) renderLabel(buf *bytes.Buffer, bounds geom.Region, room dungeon.Room) {
	cx, cy := r.toCanvas(bounds, room.Rect.Center())
	fmt.Fprintf(buf, `  <text class="label" x="%.1f" y="%.1f" font-family="monospace" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		cx, cy, r.scale, ColorLabel, room.Leaf.String()[:8])
}
