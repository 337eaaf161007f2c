// Package underdeck generates the inspection routes flown beneath the deck:
// multi-pass side-to-side crossings, longitudinal girder lines, and the
// safe flythrough used to change sides through a span opening.
package underdeck

import (
	"fmt"

	"github.com/ChicagoDave/bridgeplanner/internal/logging"
	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
	"github.com/ChicagoDave/bridgeplanner/pkg/offset"
	"github.com/ChicagoDave/bridgeplanner/pkg/route"
	"github.com/ChicagoDave/bridgeplanner/pkg/spec"
	"github.com/ChicagoDave/bridgeplanner/pkg/trajectory"
)

// Pair is the two side points flanking one base point below the deck.
type Pair struct {
	Right geo.Point3D
	Left  geo.Point3D
}

// Spans holds everything derived per span before route emission: the base
// points along the deck, their unit normals and height drops, the resolved
// skew angle, and the lateral side pairs. All slices are indexed by span;
// a span swallowed by its thresholds has empty entries.
type Spans struct {
	Base    [][]geo.Point3D
	Normals [][]geo.Vec2
	Heights [][]float64
	Angles  []float64
	Pairs   [][]Pair
}

// EmptySpanError reports a request against a span that has no usable offset
// pairs, either because its thresholds swallowed it or because the index is
// out of range.
type EmptySpanError struct {
	Span int
}

func (e *EmptySpanError) Error() string {
	return fmt.Sprintf("underdeck span %d has no offset pairs", e.Span+1)
}

// Derive computes the per-span working set from the sampled trajectory and
// its pier sections. The mission's per-span arrays must cover the section
// count; ValidateMission enforces that.
func Derive(m *spec.Mission, samples *trajectory.Sampled, sections []trajectory.Section) *Spans {
	base := BasePoints(samples, sections, m.Underdeck)

	defaults := make([]float64, len(sections))
	for i, sec := range sections {
		defaults[i] = sec.Angle
	}

	sp := &Spans{
		Base:    base,
		Normals: spanNormals(base),
		Heights: spanHeights(base, m.Underdeck),
		Angles:  trajectory.ResolveAngles(defaults, m.Underdeck.Angles),
	}
	sp.Pairs = spanPairs(sp, m)
	return sp
}

// Generate derives the span working set and emits the crossing routes, plus
// the axial girder routes when the mission asks for them.
func Generate(m *spec.Mission, samples *trajectory.Sampled, sections []trajectory.Section, log logging.Logger) ([]route.Route, *Spans) {
	if log == nil {
		log = logging.Noop()
	}

	spans := Derive(m, samples, sections)
	routes := Build(spans, m.Underdeck)
	log.Info("underdeck crossing routes generated",
		logging.Int("spans", len(sections)),
		logging.Int("routes", len(routes)),
	)

	if m.Underdeck.Axial {
		axial := BuildAxial(spans, m.Underdeck, m.Bridge.Width)
		routes = append(routes, axial...)
		log.Info("axial girder routes generated",
			logging.Int("girders", m.Underdeck.Girders),
			logging.Int("routes", len(axial)),
		)
	}

	return routes, spans
}

// Combine concatenates span routes into the single unsplit product, keeping
// every waypoint tag.
func Combine(routes []route.Route) route.Route {
	combined := route.New("underdeck_combined_all_spans")
	for _, rt := range routes {
		combined = combined.Append(rt.Points...)
	}
	return combined
}

// spanNormals computes unit CCW normals over the base points of all
// spans as one continuous chain, so directions stay smooth across span
// boundaries, then slices them back per span.
func spanNormals(base [][]geo.Point3D) [][]geo.Vec2 {
	var flat []geo.Point3D
	for _, span := range base {
		flat = append(flat, span...)
	}
	all := offset.Normals(flat)

	out := make([][]geo.Vec2, len(base))
	idx := 0
	for s, span := range base {
		out[s] = all[idx : idx+len(span)]
		idx += len(span)
	}
	return out
}

// spanHeights expands each span's height-offset pattern across its base
// points, cycling the pattern and adding the general offset.
func spanHeights(base [][]geo.Point3D, u spec.Underdeck) [][]float64 {
	out := make([][]float64, len(base))
	for s, span := range base {
		if len(span) == 0 {
			continue
		}
		pattern := []float64{0}
		if s < len(u.HeightOffsets) && len(u.HeightOffsets[s]) > 0 {
			pattern = u.HeightOffsets[s]
		}
		hs := make([]float64, len(span))
		for i := range span {
			hs[i] = pattern[i%len(pattern)] + u.GeneralHeight
		}
		out[s] = hs
	}
	return out
}

// spanPairs displaces every base point to both sides at the span's clearance
// (half-width floor plus margin), applying the skew angle and height drop.
func spanPairs(sp *Spans, m *spec.Mission) [][]Pair {
	halfWidth := m.Bridge.HalfWidth()
	out := make([][]Pair, len(sp.Base))
	for s, base := range sp.Base {
		if len(base) == 0 {
			continue
		}
		clearance := offset.MinimumClearance(halfWidth, m.Underdeck.Clearances[s])
		angle := sp.Angles[s]

		pairs := make([]Pair, len(base))
		for i, b := range base {
			n := sp.Normals[s][i]
			h := sp.Heights[s][i]
			pairs[i] = Pair{
				Right: offset.AdjustedPoint(b, n, clearance, h, angle),
				Left:  offset.AdjustedPoint(b, n, -clearance, h, angle),
			}
		}
		out[s] = pairs
	}
	return out
}
