package systems

import (
	"iter"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/vmath"
)

// DefaultQuadCapacity is the bucket size used by the particle index.
const DefaultQuadCapacity = 8

// maxQuadDepth bounds subdivision so coincident points cannot recurse forever.
const maxQuadDepth = 16

type quadPoint[T any] struct {
	pos   r2.Vec
	value T
}

// QuadTree partitions points by position for radius queries.
// It is rebuilt from scratch every tick rather than patched incrementally.
type QuadTree[T any] struct {
	bounds   r2.Box
	capacity int
	depth    int
	points   []quadPoint[T]
	children *[4]*QuadTree[T]
	size     int
}

// NewQuadTree creates an empty tree covering bounds. Capacity values below 1
// fall back to DefaultQuadCapacity.
func NewQuadTree[T any](bounds r2.Box, capacity int) *QuadTree[T] {
	if capacity < 1 {
		capacity = DefaultQuadCapacity
	}
	return &QuadTree[T]{bounds: bounds, capacity: capacity}
}

// Bounds returns the region covered by the root.
func (q *QuadTree[T]) Bounds() r2.Box {
	return q.bounds
}

// Len returns the number of points stored.
func (q *QuadTree[T]) Len() int {
	return q.size
}

// Reset empties the tree and sets new root bounds.
func (q *QuadTree[T]) Reset(bounds r2.Box) {
	q.bounds = bounds
	q.points = q.points[:0]
	q.children = nil
	q.size = 0
}

// Insert adds a point. Points outside the bounds or with non-finite
// coordinates are rejected and false is returned.
func (q *QuadTree[T]) Insert(pos r2.Vec, value T) bool {
	if !vmath.Finite(pos) || !contains(q.bounds, pos) {
		return false
	}
	q.insert(quadPoint[T]{pos: pos, value: value})
	return true
}

func (q *QuadTree[T]) insert(p quadPoint[T]) {
	q.size++
	if q.children == nil {
		if len(q.points) < q.capacity || q.depth >= maxQuadDepth {
			q.points = append(q.points, p)
			return
		}
		q.subdivide()
	}
	q.children[q.quadrant(p.pos)].insert(p)
}

func (q *QuadTree[T]) subdivide() {
	mid := r2.Scale(0.5, r2.Add(q.bounds.Min, q.bounds.Max))
	lo, hi := q.bounds.Min, q.bounds.Max

	boxes := [4]r2.Box{
		{Min: lo, Max: mid},
		{Min: r2.Vec{X: mid.X, Y: lo.Y}, Max: r2.Vec{X: hi.X, Y: mid.Y}},
		{Min: r2.Vec{X: lo.X, Y: mid.Y}, Max: r2.Vec{X: mid.X, Y: hi.Y}},
		{Min: mid, Max: hi},
	}
	var children [4]*QuadTree[T]
	for i, b := range boxes {
		children[i] = &QuadTree[T]{bounds: b, capacity: q.capacity, depth: q.depth + 1}
	}
	q.children = &children

	// Push the bucket down; each point lands in exactly one quadrant
	for _, p := range q.points {
		q.children[q.quadrant(p.pos)].insert(p)
	}
	q.points = nil
}

// quadrant routes a position to a child index. Ties on the midlines go east
// and south, so every point has exactly one home.
func (q *QuadTree[T]) quadrant(pos r2.Vec) int {
	mid := r2.Scale(0.5, r2.Add(q.bounds.Min, q.bounds.Max))
	i := 0
	if pos.X >= mid.X {
		i |= 1
	}
	if pos.Y >= mid.Y {
		i |= 2
	}
	return i
}

// QueryCircle returns every value whose position lies within radius of
// center, boundary included.
func (q *QuadTree[T]) QueryCircle(center r2.Vec, radius float64) []T {
	return q.QueryCircleInto(nil, center, radius)
}

// QueryCircleInto appends matches to dst and returns the extended slice.
func (q *QuadTree[T]) QueryCircleInto(dst []T, center r2.Vec, radius float64) []T {
	if radius < 0 || !vmath.Finite(center) || q.size == 0 {
		return dst
	}
	return q.query(dst, center, radius*radius)
}

func (q *QuadTree[T]) query(dst []T, center r2.Vec, radiusSq float64) []T {
	// Nearest point of the node box to the center
	nearest := r2.Vec{
		X: vmath.Clamp(center.X, q.bounds.Min.X, q.bounds.Max.X),
		Y: vmath.Clamp(center.Y, q.bounds.Min.Y, q.bounds.Max.Y),
	}
	if vmath.DistanceSq(nearest, center) > radiusSq {
		return dst
	}

	for _, p := range q.points {
		if vmath.DistanceSq(p.pos, center) <= radiusSq {
			dst = append(dst, p.value)
		}
	}
	if q.children != nil {
		for _, c := range q.children {
			if c.size > 0 {
				dst = c.query(dst, center, radiusSq)
			}
		}
	}
	return dst
}

// Each visits every stored value.
func (q *QuadTree[T]) Each(fn func(pos r2.Vec, value T)) {
	for _, p := range q.points {
		fn(p.pos, p.value)
	}
	if q.children != nil {
		for _, c := range q.children {
			c.Each(fn)
		}
	}
}

func contains(b r2.Box, p r2.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// BoundsOf returns the smallest box containing base and every finite position.
func BoundsOf(base r2.Box, positions iter.Seq[r2.Vec]) r2.Box {
	b := base
	for p := range positions {
		if !vmath.Finite(p) {
			continue
		}
		b.Min.X = min(b.Min.X, p.X)
		b.Min.Y = min(b.Min.Y, p.Y)
		b.Max.X = max(b.Max.X, p.X)
		b.Max.Y = max(b.Max.Y, p.Y)
	}
	return b
}
