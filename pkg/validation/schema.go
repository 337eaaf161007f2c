package validation

import (
	"fmt"
	"strings"

	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
	"github.com/ChicagoDave/bridgeplanner/pkg/route"
	"github.com/ChicagoDave/bridgeplanner/pkg/spec"
)

// safeFlythroughID is the route id published by the underdeck generator for
// the middle-span crossing; plans may reference it like a segment.
const safeFlythroughID = "underdeck_safe_flythrough"

// vertexTol is the tolerance used when collapsing duplicate polygon vertices
// before the self-intersection check.
const vertexTol = 1e-6

// ValidateMission checks a parsed mission for structural and geometric
// problems before any route is generated. Missing required fields are
// errors, never silently defaulted.
func ValidateMission(m *spec.Mission) *Report {
	r := NewReport()

	validateBridge(m, r)
	validateTrajectory(m, r)
	validateOverview(m, r)
	validateUnderdeck(m, r)
	validateSafety(m, r)
	validateOutput(m, r)

	return r
}

func validateBridge(m *spec.Mission, r *Report) {
	if m.Bridge.Width <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "bridge width must be greater than 0",
			SpecPath:    "bridge.width",
			ActualValue: m.Bridge.Width,
			Expected:    "> 0",
		})
	}

	for i, p := range m.Bridge.Piers {
		if p.A.Vec2().Distance(p.B.Vec2()) < vertexTol {
			r.AddError(Result{
				Level:    LevelGeometry,
				Message:  fmt.Sprintf("bridge.piers[%d]: footprint points a and b coincide", i),
				SpecPath: fmt.Sprintf("bridge.piers[%d]", i),
				Expected: "two distinct footprint points",
			})
		}
	}
}

func validateTrajectory(m *spec.Mission, r *Report) {
	t := m.Trajectory

	if len(t.Points) < 2 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("trajectory needs at least 2 points (got %d)", len(t.Points)),
			SpecPath:    "trajectory.points",
			ActualValue: len(t.Points),
			Expected:    ">= 2 points",
		})
	}

	if t.Samples < 2 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("trajectory.samples must be at least 2 (got %d)", t.Samples),
			SpecPath:    "trajectory.samples",
			ActualValue: t.Samples,
			Expected:    ">= 2",
		})
	}

	degenerate := len(t.Points) >= 2
	for i := 1; i < len(t.Points); i++ {
		if t.Points[i].Point3D().Distance(t.Points[i-1].Point3D()) > vertexTol {
			degenerate = false
			break
		}
	}
	if degenerate {
		r.AddError(Result{
			Level:    LevelGeometry,
			Message:  "trajectory has zero length (all points coincide)",
			SpecPath: "trajectory.points",
			Expected: "non-zero total length",
		})
	}
}

func validateOverview(m *spec.Mission, r *Report) {
	o := m.Overview

	if len(o.Segments) == 0 && len(o.Plan) == 0 {
		r.AddInfo(Result{
			Level:    LevelSchema,
			Message:  "overview has no segments and no plan; overview routes disabled",
			SpecPath: "overview",
		})
		return
	}
	if len(o.Segments) > 0 && len(o.Plan) == 0 {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     "overview.segments are defined but the plan is empty; no overview route will be generated",
			SpecPath:    "overview.plan",
			Suggestions: []string{"List the segment ids to fly in overview.plan"},
		})
	}

	seen := make(map[string]bool, len(o.Segments))
	for i, seg := range o.Segments {
		path := fmt.Sprintf("overview.segments[%d]", i)

		if seg.ID == "" {
			r.AddError(Result{
				Level:    LevelSchema,
				Message:  fmt.Sprintf("overview.segments[%d]: id must not be empty", i),
				SpecPath: path + ".id",
			})
		} else if seen[seg.ID] {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("overview.segments[%d]: duplicate id %q", i, seg.ID),
				SpecPath:    path + ".id",
				ActualValue: seg.ID,
				Expected:    "unique segment ids",
			})
		}
		seen[seg.ID] = true

		if seg.Distance < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("overview.segments[%d] (%s): distance must be non-negative", i, seg.ID),
				SpecPath:    path + ".distance",
				ActualValue: seg.Distance,
				Expected:    ">= 0 (metres beyond the half-width)",
			})
		}

		if seg.Angle <= -90 || seg.Angle >= 90 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("overview.segments[%d] (%s): angle %.1f is outside (-90, 90)", i, seg.ID, seg.Angle),
				SpecPath:    path + ".angle",
				ActualValue: seg.Angle,
				Expected:    "-90 < angle < 90 degrees",
			})
		}
	}

	mode, modeErr := route.ParseTransitionMode(o.Transition.Mode)
	if modeErr != nil {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     modeErr.Error(),
			SpecPath:    "overview.transition.mode",
			ActualValue: o.Transition.Mode,
			Expected:    "separate_sides, middle_transition or auto_elevated_transition",
		})
	}

	markers := 0
	for i, raw := range o.Plan {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			r.AddError(Result{
				Level:    LevelSchema,
				Message:  fmt.Sprintf("overview.plan[%d]: entry must not be empty", i),
				SpecPath: fmt.Sprintf("overview.plan[%d]", i),
			})
			continue
		}
		if strings.EqualFold(entry, "transition") {
			markers++
			continue
		}

		id := entry
		if len(id) > 1 && id[0] == 'r' {
			id = id[1:]
		}
		if id == safeFlythroughID {
			if !m.Underdeck.Enabled {
				r.AddError(Result{
					Level:        LevelSchema,
					Message:      fmt.Sprintf("overview.plan[%d] references %s but underdeck generation is disabled", i, safeFlythroughID),
					SpecPath:     fmt.Sprintf("overview.plan[%d]", i),
					ConflictWith: "underdeck.enabled",
					Suggestions:  []string{"Enable underdeck generation or remove the flythrough from the plan"},
				})
			}
			continue
		}
		if o.SegmentByID(id) == nil {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("overview.plan[%d] references unknown segment %q", i, id),
				SpecPath:    fmt.Sprintf("overview.plan[%d]", i),
				ActualValue: raw,
				Expected:    "an id from overview.segments",
			})
		}
	}

	if modeErr != nil {
		return
	}

	switch mode {
	case route.MiddleTransition:
		if o.Transition.VerticalOffset <= 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     "transition.vertical_offset must be > 0 for middle_transition",
				SpecPath:    "overview.transition.vertical_offset",
				ActualValue: o.Transition.VerticalOffset,
				Expected:    "> 0",
			})
		}
		if o.Transition.HorizontalOffset < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     "transition.horizontal_offset must be non-negative",
				SpecPath:    "overview.transition.horizontal_offset",
				ActualValue: o.Transition.HorizontalOffset,
				Expected:    ">= 0",
			})
		}
		if markers == 0 {
			r.AddWarning(Result{
				Level:    LevelSchema,
				Message:  "middle_transition is configured but the plan has no transition marker",
				SpecPath: "overview.plan",
			})
		}
	case route.AutoElevatedTransition:
		if o.Transition.VerticalOffset <= 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     "transition.vertical_offset must be > 0 for auto_elevated_transition",
				SpecPath:    "overview.transition.vertical_offset",
				ActualValue: o.Transition.VerticalOffset,
				Expected:    "> 0",
			})
		}
	}

	if markers > 0 && mode != route.MiddleTransition {
		r.AddWarning(Result{
			Level:        LevelSchema,
			Message:      fmt.Sprintf("plan contains %d transition marker(s) but mode is %s; markers will be skipped", markers, mode),
			SpecPath:     "overview.plan",
			ConflictWith: "overview.transition.mode",
		})
	}
}

func validateUnderdeck(m *spec.Mission, r *Report) {
	u := m.Underdeck
	if !u.Enabled {
		return
	}
	spans := m.Bridge.SpanCount()

	if u.Passes < 1 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("underdeck.passes must be at least 1 (got %d)", u.Passes),
			SpecPath:    "underdeck.passes",
			ActualValue: u.Passes,
			Expected:    ">= 1",
		})
	}

	if u.ConnectionHeight < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "underdeck.connection_height must be non-negative",
			SpecPath:    "underdeck.connection_height",
			ActualValue: u.ConnectionHeight,
			Expected:    ">= 0",
		})
	} else if u.ConnectionHeight == 0 {
		r.AddInfo(Result{
			Level:    LevelSchema,
			Message:  "underdeck.connection_height is 0; vertical connection hops are disabled",
			SpecPath: "underdeck.connection_height",
		})
	}

	requireSpanLength(r, "underdeck.clearances", len(u.Clearances), spans)
	requireSpanLength(r, "underdeck.height_offsets", len(u.HeightOffsets), spans)
	requireSpanLength(r, "underdeck.base_points", len(u.BasePoints), spans)
	requireSpanLength(r, "underdeck.thresholds", len(u.Thresholds), spans)

	if len(u.Angles) != 0 && len(u.Angles) != spans {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("underdeck.angles must be empty or hold one entry per span (got %d, spans %d)", len(u.Angles), spans),
			SpecPath:    "underdeck.angles",
			ActualValue: len(u.Angles),
			Expected:    fmt.Sprintf("0 or %d entries", spans),
		})
	}

	for i, c := range u.Clearances {
		if c < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("underdeck.clearances[%d] must be non-negative", i),
				SpecPath:    fmt.Sprintf("underdeck.clearances[%d]", i),
				ActualValue: c,
				Expected:    ">= 0",
			})
		}
	}
	for i, pattern := range u.HeightOffsets {
		if len(pattern) == 0 {
			r.AddError(Result{
				Level:    LevelSchema,
				Message:  fmt.Sprintf("underdeck.height_offsets[%d] must hold at least one offset", i),
				SpecPath: fmt.Sprintf("underdeck.height_offsets[%d]", i),
				Expected: "at least 1 offset",
			})
		}
	}
	for i, n := range u.BasePoints {
		if n < 1 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("underdeck.base_points[%d] must be at least 1 (got %d)", i, n),
				SpecPath:    fmt.Sprintf("underdeck.base_points[%d]", i),
				ActualValue: n,
				Expected:    ">= 1",
			})
		}
	}
	for i, th := range u.Thresholds {
		if th.Start < 0 || th.End < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("underdeck.thresholds[%d]: start and end must be non-negative", i),
				SpecPath:    fmt.Sprintf("underdeck.thresholds[%d]", i),
				ActualValue: fmt.Sprintf("start %.2f, end %.2f", th.Start, th.End),
				Expected:    ">= 0",
			})
		}
	}

	if u.Axial && u.Girders < 1 {
		r.AddError(Result{
			Level:        LevelSchema,
			Message:      fmt.Sprintf("underdeck.girders must be at least 1 when axial routes are enabled (got %d)", u.Girders),
			SpecPath:     "underdeck.girders",
			ActualValue:  u.Girders,
			Expected:     ">= 1",
			ConflictWith: "underdeck.axial",
		})
	}

	if u.MiddleSpanIndex != nil {
		if idx := *u.MiddleSpanIndex; idx < 0 || idx >= spans {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("underdeck.middle_span_index %d is out of range for %d span(s)", idx, spans),
				SpecPath:    "underdeck.middle_span_index",
				ActualValue: idx,
				Expected:    fmt.Sprintf("0-%d", spans-1),
			})
		}
	} else if spans%2 == 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("underdeck.middle_span_index is required for an even span count (%d spans have no unique middle)", spans),
			SpecPath:    "underdeck.middle_span_index",
			Expected:    fmt.Sprintf("0-%d", spans-1),
			Suggestions: []string{"Pick the span the safe flythrough should cross"},
		})
	}
}

func requireSpanLength(r *Report, path string, got, spans int) {
	if got != spans {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s must hold one entry per span (got %d, spans %d)", path, got, spans),
			SpecPath:    path,
			ActualValue: got,
			Expected:    fmt.Sprintf("%d entries", spans),
		})
	}
}

func validateSafety(m *spec.Mission, r *Report) {
	s := m.Safety

	if s.ResampleStep <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("safety.resample_step must be > 0 (got %.3f)", s.ResampleStep),
			SpecPath:    "safety.resample_step",
			ActualValue: s.ResampleStep,
			Expected:    "> 0",
		})
	}
	if s.SimplifyAngle <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("safety.simplify_angle must be > 0 (got %.3f)", s.SimplifyAngle),
			SpecPath:    "safety.simplify_angle",
			ActualValue: s.SimplifyAngle,
			Expected:    "> 0 degrees",
		})
	}

	for i, z := range s.Zones {
		validateZone(i, z, r)
	}
}

func validateZone(i int, z spec.ZoneDef, r *Report) {
	path := fmt.Sprintf("safety.zones[%d]", i)
	name := z.Name
	if name == "" {
		name = fmt.Sprintf("#%d", i)
	}

	if len(z.Polygon) < 3 {
		r.AddError(Result{
			Level:       LevelGeometry,
			Message:     fmt.Sprintf("safety zone %s: polygon needs at least 3 vertices (got %d)", name, len(z.Polygon)),
			SpecPath:    path + ".polygon",
			ActualValue: len(z.Polygon),
			Expected:    ">= 3 vertices",
		})
	} else {
		poly := geo.NewPolygon(z.Vertices()...).DedupeVertices(vertexTol)
		if poly.Len() < 3 {
			r.AddError(Result{
				Level:    LevelGeometry,
				Message:  fmt.Sprintf("safety zone %s: polygon collapses below 3 vertices once duplicates are removed", name),
				SpecPath: path + ".polygon",
				Expected: ">= 3 distinct vertices",
			})
		} else if poly.SelfIntersects() {
			r.AddError(Result{
				Level:       LevelGeometry,
				Message:     fmt.Sprintf("safety zone %s: polygon is self-intersecting", name),
				SpecPath:    path + ".polygon",
				Suggestions: []string{"Reorder the vertices so the boundary does not cross itself"},
			})
		}
	}

	if z.ZMin >= z.ZMax {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("safety zone %s: z_min (%.2f) must be less than z_max (%.2f)", name, z.ZMin, z.ZMax),
			SpecPath:    path,
			ActualValue: fmt.Sprintf("%.2f-%.2f", z.ZMin, z.ZMax),
		})
	}

	if z.Adjustment == nil {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("safety zone %s: adjustment is required (0 = delete, -1 = detour, >0 = raise altitude)", name),
			SpecPath:    path + ".adjustment",
			Expected:    "0, -1, or a raise altitude > 0",
			Suggestions: []string{"Set an explicit adjustment policy for the zone"},
		})
		return
	}

	adj := *z.Adjustment
	switch {
	case adj == 0 || adj == -1:
		// delete and detour need no further checks
	case adj > 0:
		// The raise target must not land inside the band it is escaping.
		if adj > z.ZMin && adj < z.ZMax {
			r.AddError(Result{
				Level:        LevelSafety,
				Message:      fmt.Sprintf("safety zone %s: raise altitude %.2f lies inside the forbidden band %.2f-%.2f", name, adj, z.ZMin, z.ZMax),
				SpecPath:     path + ".adjustment",
				ActualValue:  adj,
				Expected:     fmt.Sprintf("<= %.2f or >= %.2f", z.ZMin, z.ZMax),
				ConflictWith: path + ".z_min / .z_max",
				Suggestions:  []string{"Raise above z_max or delete/detour instead"},
			})
		}
	default:
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("safety zone %s: adjustment %.2f is not a recognised policy", name, adj),
			SpecPath:    path + ".adjustment",
			ActualValue: adj,
			Expected:    "0 (delete), -1 (detour), or > 0 (raise)",
		})
	}
}

func validateOutput(m *spec.Mission, r *Report) {
	if len(m.Output.Speeds) == 0 {
		r.AddInfo(Result{
			Level:    LevelSchema,
			Message:  "output.speeds is empty; duration estimates use the built-in cruise speed",
			SpecPath: "output.speeds",
		})
		return
	}
	if _, ok := m.Output.Speeds["default"]; !ok {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     "output.speeds has no \"default\" entry; unmatched tags fall back to the built-in cruise speed",
			SpecPath:    "output.speeds",
			Suggestions: []string{"Add a default speed as a fallback"},
		})
	}
}
