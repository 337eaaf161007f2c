package underdeck

import (
	"fmt"

	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
	"github.com/ChicagoDave/bridgeplanner/pkg/offset"
	"github.com/ChicagoDave/bridgeplanner/pkg/route"
	"github.com/ChicagoDave/bridgeplanner/pkg/spec"
)

// BuildAxial emits one longitudinal girder route per span: an entry climb at
// the first pair's right point, a forward and a return pass along every
// girder line from rightmost to leftmost, and an exit climb at the first
// pair's left point. The outermost girders extend to the last pair's
// matching side point and climb there before turning back, connecting the
// girder grid to the crossing pattern's corners.
func BuildAxial(spans *Spans, u spec.Underdeck, width float64) []route.Route {
	offsets := offset.GirderOffsets(width, u.Girders)
	routes := make([]route.Route, 0, len(spans.Base))
	for s, base := range spans.Base {
		if len(base) == 0 {
			continue
		}
		routes = append(routes, buildAxialSpan(s, base, spans, offsets, u.ConnectionHeight))
	}
	return routes
}

func buildAxialSpan(span int, base []geo.Point3D, spans *Spans, offsets []float64, connectionHeight float64) route.Route {
	rt := route.New(fmt.Sprintf("axial_underdeck_span_%d", span+1))
	pairs := spans.Pairs[span]
	angle := spans.Angles[span]

	if len(pairs) > 0 {
		entry := pairs[0].Right
		tag := fmt.Sprintf("axial_span%d_entry", span+1)
		rt = rt.Append(
			route.Waypoint{Position: entry, Tag: tag},
			route.Waypoint{Position: entry.WithZ(entry.Z + connectionHeight), Tag: tag + "_climb"},
			route.Waypoint{Position: entry, Tag: tag},
		)
	}

	for g, off := range offsets {
		girderTag := fmt.Sprintf("axial_span%d_girder%d", span+1, g+1)

		forward := make([]route.Waypoint, 0, len(base)+2)
		for i, b := range base {
			p := offset.AdjustedPoint(b, spans.Normals[span][i], off, spans.Heights[span][i], angle)
			forward = append(forward, route.Waypoint{Position: p, Tag: girderTag})
		}

		// The first and last girder lines end at the crossing pattern's far
		// corner on their own side, with a climb.
		switch {
		case g == 0 && len(pairs) > 0:
			end := pairs[len(pairs)-1].Right
			forward = append(forward,
				route.Waypoint{Position: end, Tag: girderTag},
				route.Waypoint{Position: end.WithZ(end.Z + connectionHeight), Tag: girderTag},
			)
		case g == len(offsets)-1 && len(pairs) > 0:
			end := pairs[len(pairs)-1].Left
			forward = append(forward,
				route.Waypoint{Position: end, Tag: girderTag},
				route.Waypoint{Position: end.WithZ(end.Z + connectionHeight), Tag: girderTag},
			)
		}

		rt = rt.Append(forward...)
		for i := len(forward) - 1; i >= 0; i-- {
			wp := forward[i]
			wp.Tag = girderTag + "_return"
			rt = rt.Append(wp)
		}
	}

	if len(pairs) > 0 {
		exit := pairs[0].Left
		tag := fmt.Sprintf("axial_span%d_exit", span+1)
		rt = rt.Append(
			route.Waypoint{Position: exit, Tag: tag},
			route.Waypoint{Position: exit.WithZ(exit.Z + connectionHeight), Tag: tag + "_climb"},
			route.Waypoint{Position: exit, Tag: tag},
		)
	}
	return rt
}
