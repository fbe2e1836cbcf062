// Package split provides splitting policies for region trees.
//
// Each policy is a [bsp.SplitFunc] over [geom.Region] that returns exactly
// two non-overlapping halves whose union is the input region. Policies are
// pure functions of their input and their own random source, so trees built
// with the same seed are identical.
//
//	root, _ := bsp.New(bounds, 4, split.Random(rand.New(rand.NewSource(42)), 0.35, 0.65, split.WithGrid()))
//	_ = root.Split()
//
// [bsp.SplitFunc]: github.com/matzehuels/bspgen/pkg/bsp.SplitFunc
// [geom.Region]: github.com/matzehuels/bspgen/pkg/geom.Region
package split

import (
	"math"
	"math/rand"
	"strings"

	"github.com/matzehuels/bspgen/pkg/bsp"
	"github.com/matzehuels/bspgen/pkg/errors"
	"github.com/matzehuels/bspgen/pkg/geom"
)

// Policy names accepted by [ByName].
const (
	PolicyBisect = "bisect"
	PolicyRandom = "random"
)

// squareTolerance is how much longer one side must be before the longer
// axis is always cut. Within it, Random picks the axis by coin flip.
const squareTolerance = 1.25

// Option configures a policy.
type Option func(*options)

type options struct {
	grid bool
}

// WithGrid rounds cut positions to whole units so leaves align to a tile grid.
func WithGrid() Option { return func(o *options) { o.grid = true } }

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Bisect halves the longer axis of each region. Square regions are cut
// along X.
func Bisect(opts ...Option) bsp.SplitFunc[geom.Region] {
	o := newOptions(opts)
	return func(r geom.Region) []geom.Region {
		return cut(r, geom.Width(r) >= geom.Height(r), 0.5, o)
	}
}

// Random cuts each region at a ratio drawn uniformly from [minRatio, maxRatio].
// The longer axis is cut when it exceeds the other by 25%; otherwise the axis
// is chosen at random.
//
// The returned function draws from rng and is not safe for concurrent use.
func Random(rng *rand.Rand, minRatio, maxRatio float64, opts ...Option) bsp.SplitFunc[geom.Region] {
	o := newOptions(opts)
	return func(r geom.Region) []geom.Region {
		w, h := geom.Width(r), geom.Height(r)
		var alongX bool
		switch {
		case w > h*squareTolerance:
			alongX = true
		case h > w*squareTolerance:
			alongX = false
		default:
			alongX = rng.Intn(2) == 0
		}
		ratio := minRatio + rng.Float64()*(maxRatio-minRatio)
		return cut(r, alongX, ratio, o)
	}
}

// ByName returns the policy registered under name. seed, minRatio and
// maxRatio only affect the random policy.
func ByName(name string, seed int64, minRatio, maxRatio float64, opts ...Option) (bsp.SplitFunc[geom.Region], error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicyBisect, "":
		return Bisect(opts...), nil
	case PolicyRandom:
		if err := errors.ValidateRatio(minRatio, maxRatio); err != nil {
			return nil, err
		}
		return Random(rand.New(rand.NewSource(seed)), minRatio, maxRatio, opts...), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidPolicy, "unknown split policy: %q (must be %q or %q)", name, PolicyBisect, PolicyRandom)
	}
}

// Names lists the available policy names.
func Names() []string { return []string{PolicyBisect, PolicyRandom} }

func cut(r geom.Region, alongX bool, ratio float64, o options) []geom.Region {
	if alongX {
		at := snap(r.X.Min+geom.Width(r)*ratio, o)
		a, b := geom.SplitX(r, at)
		return []geom.Region{a, b}
	}
	at := snap(r.Y.Min+geom.Height(r)*ratio, o)
	a, b := geom.SplitY(r, at)
	return []geom.Region{a, b}
}

func snap(v float64, o options) float64 {
	if o.grid {
		return math.Round(v)
	}
	return v
}
