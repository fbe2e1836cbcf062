package geom

import (
	"math"
	"testing"

	"github.com/matzehuels/bspgen/pkg/errors"
)

func TestMeasures(t *testing.T) {
	r := Region{X: MinMax{Min: 0, Max: 10}, Y: MinMax{Min: 0, Max: 4}}

	if got := Width(r); got != 10 {
		t.Errorf("Width = %v, want 10", got)
	}
	if got := Height(r); got != 4 {
		t.Errorf("Height = %v, want 4", got)
	}
	if got := Area(r); got != 40 {
		t.Errorf("Area = %v, want 40", got)
	}
	if got := Center(r); got != (Point{X: 5, Y: 2}) {
		t.Errorf("Center = %+v, want {5 2}", got)
	}
}

func TestInvertedBounds(t *testing.T) {
	r := Region{X: MinMax{Min: 10, Max: 0}, Y: MinMax{Min: 4, Max: 0}}

	if got := Width(r); got != 10 {
		t.Errorf("Width = %v, want 10", got)
	}
	if got := Height(r); got != 4 {
		t.Errorf("Height = %v, want 4", got)
	}
	if got := Area(r); got != 40 {
		t.Errorf("Area = %v, want 40", got)
	}
	// Center is measured from Min, so it lands outside the rectangle.
	if got := Center(r); got != (Point{X: 15, Y: 6}) {
		t.Errorf("Center = %+v, want {15 6}", got)
	}
	if err := r.Validate(); !errors.Is(err, errors.ErrCodeInvalidRegion) {
		t.Errorf("Validate() = %v, want INVALID_REGION", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       Region
		wantErr bool
	}{
		{"unit", NewRegion(0, 0, 1, 1), false},
		{"degenerate", NewRegion(3, 3, 0, 0), false},
		{"negative origin", NewRegion(-5, -5, 10, 10), false},
		{"inverted x", Region{X: MinMax{Min: 1, Max: 0}}, true},
		{"inverted y", Region{Y: MinMax{Min: 1, Max: 0}}, true},
		{"NaN", Region{X: MinMax{Min: math.NaN(), Max: 1}}, true},
		{"infinite", Region{Y: MinMax{Min: 0, Max: math.Inf(1)}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestContains(t *testing.T) {
	r := NewRegion(0, 0, 10, 10)
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{5, 5}, true},
		{Point{0, 0}, true},
		{Point{10, 10}, true},
		{Point{-1, 5}, false},
		{Point{5, 11}, false},
	}
	for _, tt := range tests {
		if got := Contains(r, tt.p); got != tt.want {
			t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestIntersects(t *testing.T) {
	a := NewRegion(0, 0, 10, 10)
	tests := []struct {
		name string
		b    Region
		want bool
	}{
		{"overlap", NewRegion(5, 5, 10, 10), true},
		{"inside", NewRegion(2, 2, 2, 2), true},
		{"shared edge", NewRegion(10, 0, 5, 10), false},
		{"disjoint", NewRegion(20, 20, 1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersects(a, tt.b); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
			if got := Intersects(tt.b, a); got != tt.want {
				t.Errorf("Intersects (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	r := NewRegion(0, 0, 100, 60)

	left, right := SplitX(r, 40)
	if Width(left) != 40 || Width(right) != 60 {
		t.Errorf("SplitX widths = %v, %v", Width(left), Width(right))
	}
	if Area(left)+Area(right) != Area(r) {
		t.Error("SplitX should preserve area")
	}
	if Intersects(left, right) {
		t.Error("SplitX halves should not overlap")
	}

	top, bottom := SplitY(r, 15)
	if Height(top) != 15 || Height(bottom) != 45 {
		t.Errorf("SplitY heights = %v, %v", Height(top), Height(bottom))
	}

	// Out-of-range cut is clamped.
	l, rr := SplitX(r, 500)
	if Width(l) != 100 || Width(rr) != 0 {
		t.Errorf("clamped SplitX widths = %v, %v", Width(l), Width(rr))
	}
}

func TestInset(t *testing.T) {
	r := NewRegion(0, 0, 10, 6)

	in := Inset(r, 1)
	if in != NewRegion(1, 1, 8, 4) {
		t.Errorf("Inset(1) = %+v", in)
	}

	collapsed := Inset(r, 100)
	if Area(collapsed) != 0 {
		t.Errorf("Inset(100) area = %v, want 0", Area(collapsed))
	}
	if Center(collapsed) != Center(r) {
		t.Error("collapsed inset should keep center")
	}
}

func TestRect(t *testing.T) {
	rc := Rect{Position: Point{X: 2, Y: 3}, Width: 4, Height: 6}

	if rc.Region() != NewRegion(2, 3, 4, 6) {
		t.Errorf("Region() = %+v", rc.Region())
	}
	if rc.Center() != (Point{X: 4, Y: 6}) {
		t.Errorf("Center() = %+v", rc.Center())
	}
	if rc.Area() != 24 {
		t.Errorf("Area() = %v", rc.Area())
	}

	inverted := Region{X: MinMax{Min: 6, Max: 2}, Y: MinMax{Min: 9, Max: 3}}
	if got := RectOf(inverted); got != rc {
		t.Errorf("RectOf(inverted) = %+v, want %+v", got, rc)
	}
}
