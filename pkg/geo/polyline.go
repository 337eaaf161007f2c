package geo

import "math"

// Polyline is an ordered sequence of points forming a path in the ground
// plane.
type Polyline struct {
	Points []Vec2
}

// NewPolyline creates a polyline from a list of points.
func NewPolyline(pts ...Vec2) Polyline {
	return Polyline{Points: pts}
}

// Length returns the total arc length of the polyline.
func (pl Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(pl.Points); i++ {
		total += pl.Points[i-1].Distance(pl.Points[i])
	}
	return total
}

// PointAt returns the point at fraction t in [0,1] along the polyline length.
func (pl Polyline) PointAt(t float64) Vec2 {
	if len(pl.Points) == 0 {
		return Vec2{}
	}
	if len(pl.Points) == 1 || t <= 0 {
		return pl.Points[0]
	}
	if t >= 1 {
		return pl.Points[len(pl.Points)-1]
	}

	totalLen := pl.Length()
	targetLen := t * totalLen
	walked := 0.0

	for i := 1; i < len(pl.Points); i++ {
		segLen := pl.Points[i-1].Distance(pl.Points[i])
		if walked+segLen >= targetLen {
			frac := (targetLen - walked) / segLen
			return pl.Points[i-1].Lerp(pl.Points[i], frac)
		}
		walked += segLen
	}
	return pl.Points[len(pl.Points)-1]
}

// NearestPoint returns the closest point on the polyline to p, and the
// distance.
func (pl Polyline) NearestPoint(p Vec2) (Vec2, float64) {
	if len(pl.Points) == 0 {
		return Vec2{}, math.MaxFloat64
	}
	if len(pl.Points) == 1 {
		return pl.Points[0], p.Distance(pl.Points[0])
	}

	bestPt := pl.Points[0]
	bestDist := p.Distance(pl.Points[0])

	for i := 1; i < len(pl.Points); i++ {
		pt, dist := nearestPointOnSegment(p, pl.Points[i-1], pl.Points[i])
		if dist < bestDist {
			bestDist = dist
			bestPt = pt
		}
	}
	return bestPt, bestDist
}

// ChainageOf projects p onto the polyline and returns the arc length from
// the start to the projection.
func (pl Polyline) ChainageOf(p Vec2) float64 {
	bestDist := math.MaxFloat64
	bestS := 0.0
	walked := 0.0

	for i := 1; i < len(pl.Points); i++ {
		a, b := pl.Points[i-1], pl.Points[i]
		segLen := a.Distance(b)
		if segLen < 1e-9 {
			continue
		}
		pt, dist := nearestPointOnSegment(p, a, b)
		if dist < bestDist {
			bestDist = dist
			bestS = walked + a.Distance(pt)
		}
		walked += segLen
	}
	return bestS
}

// TangentNear returns the unit tangent of the segment closest to p.
// Falls back to +X for degenerate polylines.
func (pl Polyline) TangentNear(p Vec2) Vec2 {
	bestDist := math.MaxFloat64
	best := Vec2{X: 1}

	for i := 1; i < len(pl.Points); i++ {
		a, b := pl.Points[i-1], pl.Points[i]
		if a.Distance(b) < 1e-9 {
			continue
		}
		_, dist := nearestPointOnSegment(p, a, b)
		if dist < bestDist {
			bestDist = dist
			best = b.Sub(a).Normalize()
		}
	}
	return best
}

// nearestPointOnSegment returns the closest point on segment ab to p.
func nearestPointOnSegment(p, a, b Vec2) (Vec2, float64) {
	ab := b.Sub(a)
	abLen2 := ab.Dot(ab)
	if abLen2 < 1e-12 {
		return a, p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / abLen2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	return closest, p.Distance(closest)
}
