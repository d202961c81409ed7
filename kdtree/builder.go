package kdtree

import (
	"math"
	"strings"
	"time"

	"github.com/achilleasa/kdtrace/geometry"
	"github.com/achilleasa/kdtrace/log"
	"github.com/pkg/errors"
)

// The algorithm used for partitioning the primitive set.
type Strategy uint8

const (
	// Split every node at the voxel midpoint, cycling the split axis by
	// depth, until a fixed depth is reached.
	NaiveSpatialMedian Strategy = iota

	// Pick splits that minimize the surface area heuristic cost.
	SurfaceAreaHeuristic
)

const (
	// Trees deeper than this are rejected.
	MaxTreeDepth = 64

	// The naive builder creates 2^depth leaves so it gets a tighter bound.
	MaxNaiveDepth = 20
)

var (
	ErrNoPrimitives     = errors.New("kdtree: no primitives to partition")
	ErrInvalidMaxDepth  = errors.New("kdtree: invalid max depth")
	ErrInvalidLeafSize  = errors.New("kdtree: max leaf size must be at least 1")
	ErrUnknownStrategy  = errors.New("kdtree: unknown build strategy")
	ErrInvalidCost      = errors.New("kdtree: invalid SAH cost parameters")
	ErrInvalidStructure = errors.New("kdtree: invalid tree structure")
)

func (s Strategy) String() string {
	switch s {
	case NaiveSpatialMedian:
		return "naive"
	case SurfaceAreaHeuristic:
		return "sah"
	}
	return "unknown"
}

// Parse a strategy name. Both the short ("sah", "naive") and the long
// ("surface-area-heuristic", "spatial-median") forms are accepted.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "naive", "spatial-median", "median":
		return NaiveSpatialMedian, nil
	case "sah", "surface-area-heuristic":
		return SurfaceAreaHeuristic, nil
	}
	return 0, errors.Wrapf(ErrUnknownStrategy, "%q", name)
}

// Build options.
type Options struct {
	Strategy Strategy

	// Nodes at this depth always become leaves.
	MaxDepth int

	// SAH only: nodes with fewer primitives than this become leaves.
	MaxLeafSize int

	// SAH only: the estimated cost of traversing an interior node and
	// of intersecting a single primitive.
	TraversalCost    float32
	IntersectionCost float32

	// SAH only: drop primitives whose triangle does not overlap a child
	// voxel even though its bounding box does.
	ExactClassification bool
}

// Get the default options for a build strategy.
func DefaultOptions(strategy Strategy) Options {
	switch strategy {
	case SurfaceAreaHeuristic:
		return Options{
			Strategy:         SurfaceAreaHeuristic,
			MaxDepth:         16,
			MaxLeafSize:      16,
			TraversalCost:    8,
			IntersectionCost: 1,
		}
	default:
		return Options{
			Strategy: NaiveSpatialMedian,
			MaxDepth: 8,
		}
	}
}

func (o Options) validate() error {
	switch o.Strategy {
	case NaiveSpatialMedian:
		if o.MaxDepth < 1 || o.MaxDepth > MaxNaiveDepth {
			return errors.Wrapf(ErrInvalidMaxDepth, "naive builder depth must be in [1, %d]; got %d", MaxNaiveDepth, o.MaxDepth)
		}
	case SurfaceAreaHeuristic:
		if o.MaxDepth < 1 || o.MaxDepth > MaxTreeDepth {
			return errors.Wrapf(ErrInvalidMaxDepth, "SAH builder depth must be in [1, %d]; got %d", MaxTreeDepth, o.MaxDepth)
		}
		if o.MaxLeafSize < 1 {
			return ErrInvalidLeafSize
		}
		if !validCost(o.TraversalCost) || !validCost(o.IntersectionCost) || o.IntersectionCost == 0 {
			return errors.Wrapf(ErrInvalidCost, "traversal: %g, intersection: %g", o.TraversalCost, o.IntersectionCost)
		}
	default:
		return ErrUnknownStrategy
	}
	return nil
}

func validCost(c float32) bool {
	return c >= 0 && !math.IsInf(float64(c), 0) && !math.IsNaN(float64(c))
}

// Build a kd-tree over prims. The returned tree references prims by index
// and keeps the slice; callers must not modify it while the tree is in use.
func Build(prims []geometry.Triangle, opts Options) (*Tree, error) {
	if len(prims) == 0 {
		return nil, ErrNoPrimitives
	}
	if uint64(len(prims)) > math.MaxUint32 {
		return nil, errors.Errorf("kdtree: too many primitives (%d)", len(prims))
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	logger := log.New("kdtree")
	start := time.Now()

	tree := &Tree{
		prims: prims,
		bbox:  geometry.ComputeAABB(prims),
		opts:  opts,
	}

	switch opts.Strategy {
	case NaiveSpatialMedian:
		b := &naiveBuilder{
			prims:    prims,
			maxDepth: opts.MaxDepth,
		}
		tree.root = b.build(tree.bbox)
	case SurfaceAreaHeuristic:
		b := newSAHBuilder(prims, opts)
		tree.root = b.build(tree.bbox)
	}

	tree.stats = collectStats(tree.root)
	tree.stats.BuildTime = time.Since(start)

	logger.Debugf(
		"%s kd-tree build time: %d ms, primitives: %d, maxDepth: %d, nodes: %d, leafs: %d",
		opts.Strategy,
		tree.stats.BuildTime.Nanoseconds()/1e6,
		len(prims),
		tree.stats.MaxDepth, tree.stats.Nodes, tree.stats.Leaves,
	)

	return tree, nil
}

// Build a tree using the spatial median strategy and its default depth.
func BuildNaive(prims []geometry.Triangle) (*Tree, error) {
	return Build(prims, DefaultOptions(NaiveSpatialMedian))
}

// Build a tree using the surface area heuristic with the default costs.
func BuildSAH(prims []geometry.Triangle, maxDepth, maxLeafSize int) (*Tree, error) {
	opts := DefaultOptions(SurfaceAreaHeuristic)
	opts.MaxDepth = maxDepth
	opts.MaxLeafSize = maxLeafSize
	return Build(prims, opts)
}
