// Package route defines the tagged waypoint model and stitches named route
// segments into flyable inspection routes.
package route

import (
	"strings"

	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
)

// Waypoint is a 3D position plus the tag of the logical maneuver that
// produced it. Tags are a stable contract: the export layer maps them to
// per-segment cruise speeds.
type Waypoint struct {
	Position geo.Point3D `json:"position"`
	Tag      string      `json:"tag"`
}

// Route is an ordered sequence of tagged waypoints.
type Route struct {
	ID     string     `json:"id"`
	Points []Waypoint `json:"points"`
}

// New creates an empty route with the given ID.
func New(id string) Route {
	return Route{ID: id}
}

// Len returns the number of waypoints.
func (r Route) Len() int {
	return len(r.Points)
}

// First returns the first waypoint. The route must not be empty.
func (r Route) First() Waypoint {
	return r.Points[0]
}

// Last returns the last waypoint. The route must not be empty.
func (r Route) Last() Waypoint {
	return r.Points[len(r.Points)-1]
}

// Clone returns a deep copy of the route.
func (r Route) Clone() Route {
	pts := make([]Waypoint, len(r.Points))
	copy(pts, r.Points)
	return Route{ID: r.ID, Points: pts}
}

// Reverse returns a new route with the waypoint order reversed.
func (r Route) Reverse() Route {
	pts := make([]Waypoint, len(r.Points))
	for i, wp := range r.Points {
		pts[len(pts)-1-i] = wp
	}
	return Route{ID: r.ID, Points: pts}
}

// Append returns the route extended by the given waypoints.
func (r Route) Append(points ...Waypoint) Route {
	r.Points = append(r.Points, points...)
	return r
}

// Positions returns the bare point sequence.
func (r Route) Positions() []geo.Point3D {
	pts := make([]geo.Point3D, len(r.Points))
	for i, wp := range r.Points {
		pts[i] = wp.Position
	}
	return pts
}

// Length returns the flown distance over all waypoints.
func (r Route) Length() float64 {
	total := 0.0
	for i := 1; i < len(r.Points); i++ {
		total += r.Points[i-1].Position.Distance(r.Points[i].Position)
	}
	return total
}

// FixConnectionTags back-propagates every connection tag onto the
// immediately preceding waypoint, so vertical climbs fly at the connection
// speed from their first leg. Returns a new route.
func (r Route) FixConnectionTags() Route {
	out := r.Clone()
	for i := 1; i < len(out.Points); i++ {
		if strings.Contains(out.Points[i].Tag, "connection") {
			out.Points[i-1].Tag = out.Points[i].Tag
		}
	}
	return out
}

// Side identifies which side of the structure a segment flies on.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// SideOf derives the side from a segment identifier: IDs starting with '1'
// or containing "left" are left, everything else is right. Reversal markers
// must be stripped before calling.
func SideOf(id string) Side {
	s := strings.ToLower(id)
	if strings.HasPrefix(s, "1") || strings.Contains(s, "left") {
		return SideLeft
	}
	return SideRight
}
