package safety

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
	"github.com/ChicagoDave/bridgeplanner/pkg/route"
)

// detourStep is the spacing between boundary samples when walking around a
// zone, in route units.
const detourStep = 1.0

// UnreachableDetourError reports an in-zone run with no safe point left to
// reconnect the route on one side of the zone.
type UnreachableDetourError struct {
	Zone  string
	Index int
}

func (e *UnreachableDetourError) Error() string {
	return fmt.Sprintf("detour around safety zone %q cannot reconnect the route at point %d", e.Zone, e.Index)
}

// buildDetour replaces the maximal planar in-zone run starting at entry with
// a path hugging the zone boundary, returning the substitute points and the
// index of the first point after the run. The last safe point before the run
// and the first safe point after it are projected onto the boundary; both
// rotational arc lengths between the projections are compared and the walk
// takes the shorter one. Every sample keeps the entry point's altitude and
// tag. The run extends while the footprint holds regardless of altitude, so
// a climb over the zone is still bypassed laterally.
func (p *Processor) buildDetour(pts []route.Waypoint, entry int, z Zone) ([]route.Waypoint, int, error) {
	exit := entry
	for exit < len(pts) && z.ContainsXY(pts[exit].Position.XY()) {
		exit++
	}
	if entry == 0 || exit >= len(pts) {
		return nil, 0, &UnreachableDetourError{Zone: z.Name, Index: entry}
	}

	last := pts[entry-1]
	next := pts[exit]

	length := z.Polygon.Perimeter()
	s1, entryProj, _ := z.Polygon.ProjectOntoBoundary(last.Position.XY())
	s2, exitProj, _ := z.Polygon.ProjectOntoBoundary(next.Position.XY())

	// Arc lengths in both rotational directions along the vertex order.
	fwd := wrapArc(s2-s1, length)
	back := wrapArc(s1-s2, length)
	alongOrder := fwd <= back
	dist := fwd
	if !alongOrder {
		dist = back
	}

	boundary := func(v geo.Vec2) route.Waypoint {
		return route.Waypoint{Position: geo.P3(v.X, v.Y, last.Position.Z), Tag: last.Tag}
	}

	steps := int(dist/detourStep) + 1
	out := make([]route.Waypoint, 0, steps+2)
	out = append(out, boundary(entryProj))
	for k := 1; k <= steps; k++ {
		s := s1 + float64(k)*detourStep
		if !alongOrder {
			s = s1 - float64(k)*detourStep
		}
		out = append(out, boundary(z.Polygon.PointAtPerimeter(s)))
	}
	out = append(out, boundary(exitProj))
	return out, exit, nil
}

// wrapArc normalizes an arc-length difference onto [0, length).
func wrapArc(d, length float64) float64 {
	m := math.Mod(d, length)
	if m < 0 {
		m += length
	}
	return m
}
