// Package geom provides axis-aligned region geometry for BSP layouts.
//
// A [Region] is described by coordinate bounds on each axis. The measuring
// functions ([Width], [Height], [Center], [Area]) are total: they never fail,
// and Width and Height report magnitudes even when a bound pair is inverted.
// [Center] measures from the Min bound, so callers that split regions must
// keep Min ≤ Max on both axes; [Region.Validate] checks that.
package geom

import (
	"math"

	"github.com/matzehuels/bspgen/pkg/errors"
)

// MinMax is a closed coordinate interval on one axis.
type MinMax struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Region is an axis-aligned rectangle.
type Region struct {
	X MinMax `json:"x"`
	Y MinMax `json:"y"`
}

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewRegion returns the region spanning [x, x+w] × [y, y+h].
func NewRegion(x, y, w, h float64) Region {
	return Region{
		X: MinMax{Min: x, Max: x + w},
		Y: MinMax{Min: y, Max: y + h},
	}
}

// Width returns the absolute extent of r along X.
func Width(r Region) float64 { return math.Abs(r.X.Max - r.X.Min) }

// Height returns the absolute extent of r along Y.
func Height(r Region) float64 { return math.Abs(r.Y.Max - r.Y.Min) }

// Center returns the midpoint of r, measured from the Min bounds.
func Center(r Region) Point {
	return Point{
		X: r.X.Min + Width(r)/2,
		Y: r.Y.Min + Height(r)/2,
	}
}

// Area returns Width(r) * Height(r).
func Area(r Region) float64 { return Width(r) * Height(r) }

// Validate reports whether r has finite bounds with Min ≤ Max on both axes.
func (r Region) Validate() error {
	for _, v := range []float64{r.X.Min, r.X.Max, r.Y.Min, r.Y.Max} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidRegion, "region bounds must be finite")
		}
	}
	if r.X.Min > r.X.Max {
		return errors.New(errors.ErrCodeInvalidRegion, "inverted x bounds: %g > %g", r.X.Min, r.X.Max)
	}
	if r.Y.Min > r.Y.Max {
		return errors.New(errors.ErrCodeInvalidRegion, "inverted y bounds: %g > %g", r.Y.Min, r.Y.Max)
	}
	return nil
}

// Contains reports whether p lies inside r, bounds included.
func Contains(r Region, p Point) bool {
	return p.X >= r.X.Min && p.X <= r.X.Max && p.Y >= r.Y.Min && p.Y <= r.Y.Max
}

// Intersects reports whether the interiors of a and b overlap.
// Regions that only share an edge do not intersect.
func Intersects(a, b Region) bool {
	return a.X.Min < b.X.Max && a.X.Max > b.X.Min &&
		a.Y.Min < b.Y.Max && a.Y.Max > b.Y.Min
}

// SplitX cuts r with a vertical line at x and returns the left and right parts.
// x is clamped into the X bounds.
func SplitX(r Region, x float64) (Region, Region) {
	x = clamp(x, r.X.Min, r.X.Max)
	left, right := r, r
	left.X.Max = x
	right.X.Min = x
	return left, right
}

// SplitY cuts r with a horizontal line at y and returns the top and bottom parts.
// y is clamped into the Y bounds.
func SplitY(r Region, y float64) (Region, Region) {
	y = clamp(y, r.Y.Min, r.Y.Max)
	top, bottom := r, r
	top.Y.Max = y
	bottom.Y.Min = y
	return top, bottom
}

// Inset shrinks r by d on every side. The result collapses to the center
// when d exceeds half of an extent.
func Inset(r Region, d float64) Region {
	c := Center(r)
	hw := math.Max(Width(r)/2-d, 0)
	hh := math.Max(Height(r)/2-d, 0)
	return Region{
		X: MinMax{Min: c.X - hw, Max: c.X + hw},
		Y: MinMax{Min: c.Y - hh, Max: c.Y + hh},
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
