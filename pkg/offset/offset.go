// Package offset derives laterally displaced flight lines from the sampled
// trajectory: parallel overview passes, symmetric girder lines, and the
// skew-corrected points used under the deck.
package offset

import (
	"math"

	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
	"github.com/ChicagoDave/bridgeplanner/pkg/route"
)

// SideSign maps a flight side onto the perpendicular sign convention:
// the counter-clockwise perpendicular of the direction of travel is the
// right side (+1), left is -1.
func SideSign(s route.Side) float64 {
	if s == route.SideLeft {
		return -1
	}
	return 1
}

// MinimumClearance is the lateral floor every pass keeps from the
// centerline: half the structure width plus the user margin. A zero margin
// still clears the structure itself.
func MinimumClearance(halfWidth, margin float64) float64 {
	return halfWidth + margin
}

// Perpendicular displaces p sideways from the local direction of travel.
// dir is rotated 90 degrees counter-clockwise to form the base
// perpendicular, rotated further by angle (degrees), and the requested
// distance is divided by cos(angle) so the true perpendicular clearance
// stays equal to distance under rotation. Positive distance lands on the
// CCW side, negative on the CW side. A near-zero dir falls back to +X.
func Perpendicular(p geo.Point3D, dir geo.Vec2, distance, angleDeg float64) geo.Point3D {
	u := dir.Normalize()
	if u.Length() < 1e-9 {
		u = geo.V2(1, 0)
	}
	return AdjustedPoint(p, u.Perp(), distance, 0, angleDeg)
}

// AdjustedPoint displaces base along a unit normal rotated by angle
// (degrees) about the vertical axis, with the lateral distance divided by
// cos(angle) to preserve true clearance, and drops the altitude by
// heightDrop. A near-zero normal falls back to +X.
func AdjustedPoint(base geo.Point3D, normal geo.Vec2, lateral, heightDrop, angleDeg float64) geo.Point3D {
	n := normal.Normalize()
	if n.Length() < 1e-9 {
		n = geo.V2(1, 0)
	}
	rad := angleDeg * math.Pi / 180
	n = n.Rotate(rad)
	d := lateral / math.Cos(rad)
	return geo.P3(base.X+n.X*d, base.Y+n.Y*d, base.Z-heightDrop)
}

// Directions returns the locally smoothed XY direction of travel at every
// point: the average of the incoming and outgoing segment deltas at
// interior points, the single segment delta at the two ends. Directions
// are left unnormalized; degenerate geometry yields zero vectors that the
// offset math resolves to the +X fallback.
func Directions(points []geo.Point3D) []geo.Vec2 {
	dirs := make([]geo.Vec2, len(points))
	if len(points) < 2 {
		return dirs
	}
	for i := range points {
		switch {
		case i == 0:
			dirs[i] = points[1].XY().Sub(points[0].XY())
		case i == len(points)-1:
			dirs[i] = points[i].XY().Sub(points[i-1].XY())
		default:
			in := points[i].XY().Sub(points[i-1].XY())
			out := points[i+1].XY().Sub(points[i].XY())
			dirs[i] = in.Add(out).Scale(0.5)
		}
	}
	return dirs
}

// Normals returns the unit CCW normal at every point, derived from the
// smoothed directions. Degenerate points get the +X fallback normal.
func Normals(points []geo.Point3D) []geo.Vec2 {
	dirs := Directions(points)
	normals := make([]geo.Vec2, len(dirs))
	for i, d := range dirs {
		n := d.Perp().Normalize()
		if n.Length() < 1e-9 {
			n = geo.V2(1, 0)
		}
		normals[i] = n
	}
	return normals
}

// ParallelTrajectory offsets every point sideways by distance using the
// smoothed local direction, applying the angle correction throughout.
// Altitudes pass through unchanged.
func ParallelTrajectory(points []geo.Point3D, distance, angleDeg float64) []geo.Point3D {
	dirs := Directions(points)
	out := make([]geo.Point3D, len(points))
	for i, p := range points {
		out[i] = Perpendicular(p, dirs[i], distance, angleDeg)
	}
	return out
}

// GirderOffsets returns count lateral girder positions symmetric about the
// centerline of a deck of the given width, sorted descending. Odd counts
// place one girder exactly on the centerline; even counts straddle it with
// no girder at zero.
func GirderOffsets(width float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	if count == 1 {
		return []float64{0}
	}
	offsets := make([]float64, count)
	if count%2 == 1 {
		spacing := width / float64(count-1)
		for i := range offsets {
			offsets[i] = width/2 - float64(i)*spacing
		}
		offsets[count/2] = 0
	} else {
		spacing := width / float64(count)
		for i := range offsets {
			offsets[i] = width/2 - spacing/2 - float64(i)*spacing
		}
	}
	return offsets
}
