package underdeck

import (
	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
	"github.com/ChicagoDave/bridgeplanner/pkg/route"
	"github.com/ChicagoDave/bridgeplanner/pkg/spec"
)

// FlythroughRouteID names the two-point middle-span crossing. Overview plans
// reference it like a segment to change sides below the deck.
const FlythroughRouteID = "underdeck_safe_flythrough"

// MiddleSpan returns the span the flythrough crosses: the explicit mission
// choice when set, otherwise the middle span. An even span count has no
// unique middle; ValidateMission requires the explicit choice then.
func MiddleSpan(u spec.Underdeck, spanCount int) int {
	if u.MiddleSpanIndex != nil {
		return *u.MiddleSpanIndex
	}
	return spanCount / 2
}

// SafeFlythrough builds the route crossing the deck through the given span,
// right side to left. With an odd number of pairs it flies through the
// central pair; with an even number, through the midpoint of the two central
// pairs.
func SafeFlythrough(spans *Spans, span int) (route.Route, error) {
	if span < 0 || span >= len(spans.Pairs) {
		return route.Route{}, &EmptySpanError{Span: span}
	}
	pairs := spans.Pairs[span]
	if len(pairs) == 0 {
		return route.Route{}, &EmptySpanError{Span: span}
	}

	var right, left geo.Point3D
	if len(pairs)%2 == 1 {
		c := pairs[len(pairs)/2]
		right, left = c.Right, c.Left
	} else {
		a, b := pairs[len(pairs)/2-1], pairs[len(pairs)/2]
		right = a.Right.Lerp(b.Right, 0.5)
		left = a.Left.Lerp(b.Left, 0.5)
	}

	rt := route.New(FlythroughRouteID)
	return rt.Append(
		route.Waypoint{Position: right, Tag: FlythroughRouteID},
		route.Waypoint{Position: left, Tag: FlythroughRouteID},
	), nil
}
