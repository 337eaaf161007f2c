package geo

import "math"

// Polygon is a closed polygon defined by its vertices in order. The closing
// edge from the last vertex back to the first is implicit.
type Polygon struct {
	Vertices []Vec2
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Vec2) Polygon {
	return Polygon{Vertices: pts}
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// Edge returns the i-th edge as (start, end). Wraps around.
func (p Polygon) Edge(i int) (Vec2, Vec2) {
	n := len(p.Vertices)
	return p.Vertices[i%n], p.Vertices[(i+1)%n]
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Y
		area -= p.Vertices[j].X * p.Vertices[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the polygon.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// IsCounterClockwise returns true if vertices are in CCW order.
func (p Polygon) IsCounterClockwise() bool {
	return p.SignedArea() > 0
}

// EnsureCCW returns the polygon with vertices in counterclockwise order.
func (p Polygon) EnsureCCW() Polygon {
	if p.SignedArea() < 0 {
		return p.Reverse()
	}
	return p
}

// Reverse returns the polygon with reversed vertex order.
func (p Polygon) Reverse() Polygon {
	n := len(p.Vertices)
	rev := make([]Vec2, n)
	for i, v := range p.Vertices {
		rev[n-1-i] = v
	}
	return Polygon{Vertices: rev}
}

// BoundingBox returns the axis-aligned bounding box as (min, max).
func (p Polygon) BoundingBox() (Vec2, Vec2) {
	if len(p.Vertices) == 0 {
		return Vec2{}, Vec2{}
	}
	minP := p.Vertices[0]
	maxP := p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		if v.X < minP.X {
			minP.X = v.X
		}
		if v.Y < minP.Y {
			minP.Y = v.Y
		}
		if v.X > maxP.X {
			maxP.X = v.X
		}
		if v.Y > maxP.Y {
			maxP.Y = v.Y
		}
	}
	return minP, maxP
}

// Contains returns true if the point is strictly inside the polygon using
// ray casting.
func (p Polygon) Contains(pt Vec2) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// ContainsOrOnBoundary returns true if the point is inside the polygon or
// within tol of its boundary.
func (p Polygon) ContainsOrOnBoundary(pt Vec2, tol float64) bool {
	if p.Contains(pt) {
		return true
	}
	_, _, dist := p.ProjectOntoBoundary(pt)
	return dist <= tol
}

// Perimeter returns the total perimeter length.
func (p Polygon) Perimeter() float64 {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += p.Vertices[i].Distance(p.Vertices[j])
	}
	return total
}

// ProjectOntoBoundary returns the arc length from the first vertex to the
// closest boundary point, the boundary point itself, and the distance from
// pt to it.
func (p Polygon) ProjectOntoBoundary(pt Vec2) (float64, Vec2, float64) {
	n := len(p.Vertices)
	if n == 0 {
		return 0, Vec2{}, math.MaxFloat64
	}
	bestS := 0.0
	bestPt := p.Vertices[0]
	bestDist := pt.Distance(p.Vertices[0])
	walked := 0.0

	for i := 0; i < n; i++ {
		a, b := p.Edge(i)
		proj, dist := nearestPointOnSegment(pt, a, b)
		if dist < bestDist {
			bestDist = dist
			bestPt = proj
			bestS = walked + a.Distance(proj)
		}
		walked += a.Distance(b)
	}
	return bestS, bestPt, bestDist
}

// PointAtPerimeter returns the boundary point at arc length s from the first
// vertex, wrapping around the perimeter.
func (p Polygon) PointAtPerimeter(s float64) Vec2 {
	n := len(p.Vertices)
	if n == 0 {
		return Vec2{}
	}
	total := p.Perimeter()
	if total < 1e-12 {
		return p.Vertices[0]
	}
	s = math.Mod(s, total)
	if s < 0 {
		s += total
	}

	walked := 0.0
	for i := 0; i < n; i++ {
		a, b := p.Edge(i)
		segLen := a.Distance(b)
		if walked+segLen >= s {
			if segLen < 1e-12 {
				return a
			}
			return a.Lerp(b, (s-walked)/segLen)
		}
		walked += segLen
	}
	return p.Vertices[0]
}

// DedupeVertices returns the polygon with consecutive vertices closer than
// tol collapsed into one. The closing pair is included.
func (p Polygon) DedupeVertices(tol float64) Polygon {
	n := len(p.Vertices)
	if n == 0 {
		return p
	}
	out := make([]Vec2, 0, n)
	for _, v := range p.Vertices {
		if len(out) == 0 || out[len(out)-1].Distance(v) > tol {
			out = append(out, v)
		}
	}
	if len(out) > 1 && out[0].Distance(out[len(out)-1]) <= tol {
		out = out[:len(out)-1]
	}
	return Polygon{Vertices: out}
}

// SelfIntersects returns true if any two non-adjacent edges of the polygon
// properly intersect.
func (p Polygon) SelfIntersects() bool {
	n := len(p.Vertices)
	if n < 4 {
		return false
	}
	for i := 0; i < n; i++ {
		a1, a2 := p.Edge(i)
		for j := i + 1; j < n; j++ {
			// Skip adjacent edges, including the first/last pair.
			if j == i || (j+1)%n == i || (i+1)%n == j {
				continue
			}
			b1, b2 := p.Edge(j)
			if segmentsProperlyIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// segmentsProperlyIntersect reports whether segments a1-a2 and b1-b2 cross
// at an interior point of both.
func segmentsProperlyIntersect(a1, a2, b1, b2 Vec2) bool {
	d1 := a2.Sub(a1).Cross(b1.Sub(a1))
	d2 := a2.Sub(a1).Cross(b2.Sub(a1))
	d3 := b2.Sub(b1).Cross(a1.Sub(b1))
	d4 := b2.Sub(b1).Cross(a2.Sub(b1))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}
