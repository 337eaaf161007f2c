package plan

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
	"github.com/ChicagoDave/bridgeplanner/pkg/route"
	"github.com/ChicagoDave/bridgeplanner/pkg/spec"
	"github.com/ChicagoDave/bridgeplanner/pkg/stats"
	"github.com/ChicagoDave/bridgeplanner/pkg/underdeck"
	"github.com/ChicagoDave/bridgeplanner/pkg/validation"
)

// Assemble converts the planned routes and their supporting reports into the
// plan document.
func Assemble(m *spec.Mission, routes []route.Route, report *validation.Report, summary *stats.Summary) *Document {
	doc := NewDocument()

	for _, rt := range routes {
		kind, span, side := classifyRoute(rt.ID)
		addEntry(doc, Entry{
			ID:       rt.ID,
			Kind:     kind,
			Span:     span,
			Side:     side,
			Distance: rt.Length(),
			Points:   rt.Points,
		})
	}

	doc.Metadata = Metadata{
		SpecVersion: m.SpecVersion,
		Mission:     m.Name,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Bounds:      computeBounds(routes),
	}
	doc.Validation = report
	doc.Stats = summary

	return doc
}

// classifyRoute derives the grouping axes from a route ID.
func classifyRoute(id string) (Kind, int, Side) {
	side := SideBoth
	switch {
	case strings.HasSuffix(id, "_left"):
		side = SideLeft
	case strings.HasSuffix(id, "_right"):
		side = SideRight
	}

	switch {
	case id == underdeck.FlythroughRouteID:
		return KindFlythrough, 0, side
	case strings.HasPrefix(id, "axial_"):
		return KindAxial, spanFromID(id), side
	case strings.HasPrefix(id, "underdeck_combined"):
		return KindCombined, 0, side
	case strings.HasPrefix(id, "underdeck_"):
		return KindUnderdeck, spanFromID(id), side
	default:
		return KindOverview, 0, side
	}
}

// spanFromID extracts the span number from IDs like
// "underdeck_span_3_crossing" or "axial_underdeck_span_2".
func spanFromID(id string) int {
	i := strings.Index(id, "span_")
	if i < 0 {
		return 0
	}
	var n int
	fmt.Sscanf(id[i+len("span_"):], "%d", &n)
	return n
}

// addEntry appends a route entry and updates all group indices.
func addEntry(doc *Document, e Entry) {
	doc.Routes = append(doc.Routes, e)
	id := e.ID

	doc.Groups.Kinds[e.Kind] = append(doc.Groups.Kinds[e.Kind], id)
	if e.Span > 0 {
		doc.Groups.Spans[e.Span] = append(doc.Groups.Spans[e.Span], id)
	}
	doc.Groups.Sides[e.Side] = append(doc.Groups.Sides[e.Side], id)
}

// computeBounds calculates the AABB of all waypoints.
func computeBounds(routes []route.Route) BoundingBox {
	minV := geo.P3(math.MaxFloat64, math.MaxFloat64, math.MaxFloat64)
	maxV := geo.P3(-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64)
	empty := true

	for _, rt := range routes {
		for _, wp := range rt.Points {
			empty = false
			p := wp.Position
			if p.X < minV.X {
				minV.X = p.X
			}
			if p.X > maxV.X {
				maxV.X = p.X
			}
			if p.Y < minV.Y {
				minV.Y = p.Y
			}
			if p.Y > maxV.Y {
				maxV.Y = p.Y
			}
			if p.Z < minV.Z {
				minV.Z = p.Z
			}
			if p.Z > maxV.Z {
				maxV.Z = p.Z
			}
		}
	}
	if empty {
		return BoundingBox{}
	}
	return BoundingBox{Min: minV, Max: maxV}
}
