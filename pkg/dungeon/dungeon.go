// Package dungeon turns a region BSP tree into a room-and-corridor level.
//
// [Generate] splits the map bounds with a policy from package split, places
// one room inside each leaf and connects every sibling pair with an
// L-shaped corridor. The result keeps the tree so renderers can show the
// partition alongside the level.
//
//	d, err := dungeon.Generate(dungeon.Options{Width: 80, Height: 50, Depth: 4, Seed: 42})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(d.String())
package dungeon

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/bspgen/pkg/bsp"
	"github.com/matzehuels/bspgen/pkg/errors"
	"github.com/matzehuels/bspgen/pkg/geom"
	"github.com/matzehuels/bspgen/pkg/split"
)

// Defaults applied by [Options.SetDefaults].
const (
	DefaultWidth         = 80
	DefaultHeight        = 50
	DefaultDepth         = 4
	DefaultMinRatio      = 0.35
	DefaultMaxRatio      = 0.65
	DefaultPadding       = 1
	DefaultMinRoomSize   = 3
	DefaultCorridorWidth = 1
)

// Options configures [Generate].
type Options struct {
	Width, Height float64
	Depth         int
	Policy        string // split policy name, see split.ByName
	Seed          int64  // 0 picks a time-based seed
	MinRatio      float64
	MaxRatio      float64
	Padding       float64 // minimum gap between a room and its leaf's edge
	MinRoomSize   float64 // leaves that cannot fit this get no room
	CorridorWidth float64
	Logger        *log.Logger
}

// SetDefaults fills zero-valued fields with package defaults.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Policy == "" {
		o.Policy = split.PolicyRandom
	}
	if o.MinRatio == 0 {
		o.MinRatio = DefaultMinRatio
	}
	if o.MaxRatio == 0 {
		o.MaxRatio = DefaultMaxRatio
	}
	if o.MinRoomSize == 0 {
		o.MinRoomSize = DefaultMinRoomSize
	}
	if o.CorridorWidth == 0 {
		o.CorridorWidth = DefaultCorridorWidth
	}
}

// Validate checks the options without applying defaults.
func (o Options) Validate() error {
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateDepth(o.Depth, bsp.MaxDepthLimit); err != nil {
		return err
	}
	if o.Padding < 0 || o.MinRoomSize < 1 || o.CorridorWidth < 1 {
		return errors.New(errors.ErrCodeInvalidInput,
			"padding must be ≥ 0, room size and corridor width ≥ 1 (got %g, %g, %g)",
			o.Padding, o.MinRoomSize, o.CorridorWidth)
	}
	return nil
}

// Area is the payload of a dungeon tree node: the node's region and, for
// leaves that received one, the room placed inside it.
type Area struct {
	Region geom.Region `json:"region"`
	Room   *geom.Rect  `json:"room,omitempty"`
}

// Lift adapts a region policy to the Area payload. Children never inherit
// a room.
func Lift(fn bsp.SplitFunc[geom.Region]) bsp.SplitFunc[Area] {
	return func(a Area) []Area {
		parts := fn(a.Region)
		out := make([]Area, len(parts))
		for i, p := range parts {
			out[i] = Area{Region: p}
		}
		return out
	}
}

// Room is a room placed in a leaf.
type Room struct {
	Leaf uuid.UUID `json:"leaf"`
	Rect geom.Rect `json:"rect"`
}

// Corridor connects the rooms of two sibling subtrees.
type Corridor struct {
	From     uuid.UUID   `json:"from"`
	To       uuid.UUID   `json:"to"`
	Segments []geom.Rect `json:"segments"`
}

// Dungeon is a generated level.
type Dungeon struct {
	Bounds    geom.Region
	Tree      *bsp.Node[Area]
	Rooms     []Room
	Corridors []Corridor
	Seed      int64
	Policy    string
}

// Stats summarizes a dungeon.
type Stats struct {
	Nodes     int
	Leaves    int
	Depth     int
	Rooms     int
	Corridors int
	RoomArea  float64
	Coverage  float64 // room area / map area
}

// Stats computes summary numbers for d.
func (d *Dungeon) Stats() Stats {
	s := Stats{
		Nodes:     d.Tree.Len(),
		Leaves:    len(d.Tree.Leaves()),
		Depth:     d.Tree.MaxDepth,
		Rooms:     len(d.Rooms),
		Corridors: len(d.Corridors),
	}
	for _, r := range d.Rooms {
		s.RoomArea += r.Rect.Area()
	}
	if a := geom.Area(d.Bounds); a > 0 {
		s.Coverage = s.RoomArea / a
	}
	return s
}

// Generate builds a dungeon from opts. Zero-valued options take defaults.
func Generate(opts Options) (*Dungeon, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	policy, err := split.ByName(opts.Policy, opts.Seed, opts.MinRatio, opts.MaxRatio, split.WithGrid())
	if err != nil {
		return nil, err
	}

	bounds := geom.NewRegion(0, 0, opts.Width, opts.Height)
	root, err := bsp.New(Area{Region: bounds}, opts.Depth, Lift(policy))
	if err != nil {
		return nil, err
	}
	if err := root.Split(); err != nil {
		return nil, err
	}
	logger.Debug("Split map", "policy", opts.Policy, "depth", opts.Depth, "leaves", len(root.Leaves()))

	// Room and corridor placement draw from their own stream so the tree
	// shape depends only on the policy's source.
	rng := rand.New(rand.NewSource(opts.Seed ^ 0x5deece66d))

	d := &Dungeon{Bounds: bounds, Tree: root, Seed: opts.Seed, Policy: opts.Policy}
	d.Rooms = placeRooms(root, rng, opts)
	logger.Debug("Placed rooms", "rooms", len(d.Rooms))

	d.Corridors, err = connect(root, rng, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("Carved corridors", "corridors", len(d.Corridors))

	return d, nil
}

// placeRooms puts one grid-aligned room inside each leaf that can hold one.
func placeRooms(root *bsp.Node[Area], rng *rand.Rand, opts Options) []Room {
	var rooms []Room
	for _, leaf := range root.Leaves() {
		inner := geom.Inset(leaf.Data.Region, opts.Padding)
		iw, ih := math.Floor(geom.Width(inner)), math.Floor(geom.Height(inner))
		if iw < opts.MinRoomSize || ih < opts.MinRoomSize {
			continue
		}

		w := opts.MinRoomSize + math.Floor(rng.Float64()*(iw-opts.MinRoomSize+1))
		h := opts.MinRoomSize + math.Floor(rng.Float64()*(ih-opts.MinRoomSize+1))
		x := math.Ceil(inner.X.Min) + math.Floor(rng.Float64()*(iw-w+1))
		y := math.Ceil(inner.Y.Min) + math.Floor(rng.Float64()*(ih-h+1))

		rect := geom.Rect{Position: geom.Point{X: x, Y: y}, Width: w, Height: h}
		rect = clampRect(rect, inner)
		leaf.Data.Room = &rect
		rooms = append(rooms, Room{Leaf: leaf.ID, Rect: rect})
	}
	return rooms
}

// clampRect shifts and trims r so it stays inside bounds.
func clampRect(r geom.Rect, bounds geom.Region) geom.Rect {
	if r.Position.X+r.Width > bounds.X.Max {
		r.Position.X = math.Floor(bounds.X.Max - r.Width)
	}
	if r.Position.Y+r.Height > bounds.Y.Max {
		r.Position.Y = math.Floor(bounds.Y.Max - r.Height)
	}
	if r.Position.X < bounds.X.Min {
		r.Width -= bounds.X.Min - r.Position.X
		r.Position.X = bounds.X.Min
	}
	if r.Position.Y < bounds.Y.Min {
		r.Height -= bounds.Y.Min - r.Position.Y
		r.Position.Y = bounds.Y.Min
	}
	return r
}

// connect carves one corridor per internal node, joining the room of the
// first child's subtree that is nearest the sibling with the sibling's
// room nearest to it.
func connect(root *bsp.Node[Area], rng *rand.Rand, opts Options) ([]Corridor, error) {
	var corridors []Corridor
	var walkErr error
	root.Walk(func(n *bsp.Node[Area], _ int) bool {
		if n.IsLeaf() || walkErr != nil {
			return walkErr == nil
		}
		first := n.Children[0]
		second, err := first.Sibling()
		if err != nil {
			walkErr = err
			return false
		}

		a := nearestRoom(first, geom.Center(second.Data.Region))
		if a == nil {
			return true
		}
		b := nearestRoom(second, a.Data.Room.Center())
		if b == nil {
			return true
		}

		corridors = append(corridors, Corridor{
			From:     a.ID,
			To:       b.ID,
			Segments: carve(a.Data.Room.Center(), b.Data.Room.Center(), opts.CorridorWidth, rng.Intn(2) == 0),
		})
		return true
	})
	return corridors, walkErr
}

// nearestRoom returns the leaf under n whose room center is closest to p.
func nearestRoom(n *bsp.Node[Area], p geom.Point) *bsp.Node[Area] {
	var best *bsp.Node[Area]
	bestDist := math.Inf(1)
	for _, leaf := range n.Leaves() {
		if leaf.Data.Room == nil {
			continue
		}
		c := leaf.Data.Room.Center()
		if d := math.Hypot(c.X-p.X, c.Y-p.Y); d < bestDist {
			best, bestDist = leaf, d
		}
	}
	return best
}

// carve returns the segments of an L-shaped corridor between two points,
// horizontal leg first when horizontalFirst is set.
func carve(from, to geom.Point, width float64, horizontalFirst bool) []geom.Rect {
	x1, y1 := math.Floor(from.X), math.Floor(from.Y)
	x2, y2 := math.Floor(to.X), math.Floor(to.Y)

	horizontal := func(xa, xb, y float64) geom.Rect {
		return geom.Rect{
			Position: geom.Point{X: math.Min(xa, xb), Y: y},
			Width:    math.Abs(xb-xa) + width,
			Height:   width,
		}
	}
	vertical := func(ya, yb, x float64) geom.Rect {
		return geom.Rect{
			Position: geom.Point{X: x, Y: math.Min(ya, yb)},
			Width:    width,
			Height:   math.Abs(yb-ya) + width,
		}
	}

	if horizontalFirst {
		return []geom.Rect{horizontal(x1, x2, y1), vertical(y1, y2, x2)}
	}
	return []geom.Rect{vertical(y1, y2, x1), horizontal(x1, x2, y2)}
}
