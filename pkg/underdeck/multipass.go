package underdeck

import (
	"fmt"

	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
	"github.com/ChicagoDave/bridgeplanner/pkg/route"
	"github.com/ChicagoDave/bridgeplanner/pkg/spec"
)

// Build emits one crossing route per span. Every base pair is crossed the
// configured number of times, alternating the starting side per pass; with
// an odd pair count the single middle pair is crossed twice as often. The
// opening pass of the first pair and the closing pass of the last pair carry
// vertical connection climbs, on both sides, when the connection height is
// positive.
func Build(spans *Spans, u spec.Underdeck) []route.Route {
	routes := make([]route.Route, 0, len(spans.Pairs))
	for s, pairs := range spans.Pairs {
		if len(pairs) == 0 {
			continue
		}
		if rt := buildCrossing(s, pairs, u.Passes, u.ConnectionHeight); rt.Len() > 0 {
			routes = append(routes, rt)
		}
	}
	return routes
}

func buildCrossing(span int, pairs []Pair, passes int, connectionHeight float64) route.Route {
	rt := route.New(fmt.Sprintf("underdeck_span_%d_crossing", span+1))
	last := len(pairs) - 1

	for baseIdx, pair := range pairs {
		count := passes
		if len(pairs)%2 == 1 && baseIdx == len(pairs)/2 {
			count = 2 * passes
		}
		hopStart := baseIdx == 0 && connectionHeight > 0
		hopEnd := baseIdx == last && connectionHeight > 0

		for p := 0; p < count; p++ {
			tag := fmt.Sprintf("underdeck_span%d_base%d_pass%d", span+1, baseIdx+1, p+1)
			hop := (hopStart && p == 0) || (hopEnd && p == count-1)

			first, second := pair.Right, pair.Left
			firstSide, secondSide := route.SideRight, route.SideLeft
			if p%2 == 1 {
				first, second = pair.Left, pair.Right
				firstSide, secondSide = route.SideLeft, route.SideRight
			}

			rt = appendSidePoint(rt, span, first, firstSide, tag, hop, connectionHeight)
			rt = appendSidePoint(rt, span, second, secondSide, tag, hop, connectionHeight)
		}
	}
	return rt
}

// appendSidePoint appends one side point of a crossing pass; on a climbing
// pass the point expands to point, climb, point so the drone rises along the
// pier face and returns before crossing.
func appendSidePoint(rt route.Route, span int, p geo.Point3D, side route.Side, tag string, hop bool, height float64) route.Route {
	rt = rt.Append(route.Waypoint{Position: p, Tag: tag})
	if hop {
		rt = rt.Append(
			route.Waypoint{
				Position: p.WithZ(p.Z + height),
				Tag:      fmt.Sprintf("connection_%s_span%d", side, span+1),
			},
			route.Waypoint{Position: p, Tag: tag},
		)
	}
	return rt
}
