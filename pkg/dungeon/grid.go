package dungeon

import (
	"math"
	"strings"

	"github.com/matzehuels/bspgen/pkg/geom"
)

// Tile is a cell of a rasterized dungeon.
type Tile uint8

const (
	TileWall Tile = iota
	TileFloor
	TileCorridor
)

var tileRunes = map[Tile]rune{
	TileWall:     '#',
	TileFloor:    '.',
	TileCorridor: ',',
}

// Rune returns the ASCII glyph for t.
func (t Tile) Rune() rune { return tileRunes[t] }

// Grid rasterizes the dungeon into rows of tiles, one tile per unit.
// Corridors are drawn first so rooms keep their floor tiles.
func (d *Dungeon) Grid() [][]Tile {
	cols := int(math.Ceil(geom.Width(d.Bounds)))
	rows := int(math.Ceil(geom.Height(d.Bounds)))
	grid := make([][]Tile, rows)
	for y := range grid {
		grid[y] = make([]Tile, cols)
	}

	for _, c := range d.Corridors {
		for _, seg := range c.Segments {
			fill(grid, seg, TileCorridor)
		}
	}
	for _, r := range d.Rooms {
		fill(grid, r.Rect, TileFloor)
	}
	return grid
}

func fill(grid [][]Tile, r geom.Rect, t Tile) {
	y0, y1 := int(math.Floor(r.Position.Y)), int(math.Ceil(r.Position.Y+r.Height))
	x0, x1 := int(math.Floor(r.Position.X)), int(math.Ceil(r.Position.X+r.Width))
	for y := max(y0, 0); y < min(y1, len(grid)); y++ {
		row := grid[y]
		for x := max(x0, 0); x < min(x1, len(row)); x++ {
			row[x] = t
		}
	}
}

// String renders the dungeon as ASCII art, one line per row.
func (d *Dungeon) String() string {
	var b strings.Builder
	for _, row := range d.Grid() {
		for _, t := range row {
			b.WriteRune(t.Rune())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
