package safety

import (
	"math"

	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
	"github.com/ChicagoDave/bridgeplanner/pkg/route"
)

// simplify drops points whose turn angle, measured from the last kept point
// to the point's successor, stays under the threshold in all three axis-pair
// projections. The first and last point and both sides of every zone
// boundary crossing are always kept.
func (p *Processor) simplify(pts []route.Waypoint) []route.Waypoint {
	if len(pts) < 3 {
		return append([]route.Waypoint(nil), pts...)
	}
	critical := p.criticalPoints(pts)

	out := make([]route.Waypoint, 0, len(pts))
	out = append(out, pts[0])
	lastKept := 0
	for i := 1; i < len(pts)-1; i++ {
		if critical[i] {
			out = append(out, pts[i])
			lastKept = i
			continue
		}
		if p.turnExceeds(pts[lastKept].Position, pts[i].Position, pts[i+1].Position) {
			out = append(out, pts[i])
			lastKept = i
		}
	}
	out = append(out, pts[len(pts)-1])
	return out
}

// criticalPoints flags both sides of every zone entry or exit so
// simplification cannot smooth a crossing away. Membership here is the same
// volume test the adjustment stage uses; on an already adjusted route only
// points raised onto a band edge still register.
func (p *Processor) criticalPoints(pts []route.Waypoint) []bool {
	member := make([]bool, len(pts))
	for i, wp := range pts {
		for _, z := range p.zones {
			if z.Contains(wp.Position, p.reference) {
				member[i] = true
				break
			}
		}
	}
	critical := make([]bool, len(pts))
	for i := 1; i < len(pts); i++ {
		if member[i] != member[i-1] {
			critical[i] = true
			critical[i-1] = true
		}
	}
	return critical
}

// turnExceeds reports whether the turn through b, coming from a and heading
// to c, exceeds the angle threshold in any of the XY, YZ or XZ projections.
func (p *Processor) turnExceeds(a, b, c geo.Point3D) bool {
	return projectedTurn(geo.V2(a.X, a.Y), geo.V2(b.X, b.Y), geo.V2(c.X, c.Y)) > p.angle ||
		projectedTurn(geo.V2(a.Y, a.Z), geo.V2(b.Y, b.Z), geo.V2(c.Y, c.Z)) > p.angle ||
		projectedTurn(geo.V2(a.X, a.Z), geo.V2(b.X, b.Z), geo.V2(c.X, c.Z)) > p.angle
}

// projectedTurn returns the absolute direction change at b in degrees, or 0
// when either leg is degenerate.
func projectedTurn(a, b, c geo.Vec2) float64 {
	v1 := b.Sub(a)
	v2 := c.Sub(b)
	m1 := v1.Length()
	m2 := v2.Length()
	if m1 == 0 || m2 == 0 {
		return 0
	}
	cos := v1.Dot(v2) / (m1 * m2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}
