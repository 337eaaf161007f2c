package validation

import (
	"testing"

	"github.com/ChicagoDave/bridgeplanner/pkg/spec"
)

func adj(v float64) *float64 { return &v }

func validMission() *spec.Mission {
	return &spec.Mission{
		SpecVersion: "0.3.0",
		Name:        "test-bridge",
		Bridge: spec.Bridge{
			Width:           13.2,
			TakeoffAltitude: 0,
			Piers: []spec.PierDef{
				{A: spec.PointDef{X: 66, Y: -8}, B: spec.PointDef{X: 66, Y: 8}},
				{A: spec.PointDef{X: 133, Y: -8}, B: spec.PointDef{X: 133, Y: 8}},
			},
		},
		Trajectory: spec.Trajectory{
			Points: []spec.PointDef{
				{X: 0, Y: 0, Z: 25},
				{X: 100, Y: 0, Z: 25},
				{X: 200, Y: 0, Z: 25},
			},
			Samples: 50,
		},
		Overview: spec.Overview{
			Segments: []spec.SegmentDef{
				{ID: "101", Distance: 6, Height: 2},
				{ID: "102", Distance: 10, Height: 6},
				{ID: "201", Distance: 6, Height: 2},
				{ID: "202", Distance: 10, Height: 6},
			},
			Plan: []string{"101", "r102", "transition", "201", "r202"},
			Transition: spec.TransitionDef{
				Mode:             "middle_transition",
				VerticalOffset:   6,
				HorizontalOffset: 8,
			},
		},
		Underdeck: spec.Underdeck{
			Enabled:          true,
			Passes:           2,
			ConnectionHeight: 12,
			GeneralHeight:    1,
			Clearances:       []float64{8, 8, 8},
			HeightOffsets:    [][]float64{{0, 1, 0}, {0, 1, 2, 1, 0}, {0, 1, 0}},
			BasePoints:       []int{3, 5, 3},
			Thresholds: []spec.ThresholdDef{
				{Start: 10, End: 5},
				{Start: 7, End: 7},
				{Start: 5, End: 10},
			},
			Split:   true,
			Axial:   true,
			Girders: 5,
		},
		Safety: spec.Safety{
			ResampleStep:  0.5,
			SimplifyAngle: 5,
			Zones: []spec.ZoneDef{
				{
					Name: "nest",
					Polygon: []spec.PointDef{
						{X: 80, Y: -18}, {X: 120, Y: -18},
						{X: 120, Y: -10}, {X: 80, Y: -10},
					},
					ZMin:       0,
					ZMax:       30,
					Adjustment: adj(35),
				},
			},
		},
		Output: spec.Output{
			Speeds: map[string]float64{"overview": 5, "default": 3},
		},
	}
}

func TestValidateMissionValid(t *testing.T) {
	r := ValidateMission(validMission())
	if !r.Valid {
		t.Errorf("expected valid report, got %d errors: %v", len(r.Errors), r.Errors)
	}
}

func TestValidateMissionZeroWidth(t *testing.T) {
	m := validMission()
	m.Bridge.Width = 0
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for width=0")
	}
	assertHasError(t, r, "bridge.width")
}

func TestValidateMissionCoincidentPier(t *testing.T) {
	m := validMission()
	m.Bridge.Piers[1].B = m.Bridge.Piers[1].A
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for coincident pier footprint")
	}
	assertHasError(t, r, "bridge.piers[1]")
}

func TestValidateMissionShortTrajectory(t *testing.T) {
	m := validMission()
	m.Trajectory.Points = m.Trajectory.Points[:1]
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for 1-point trajectory")
	}
	assertHasError(t, r, "trajectory.points")
}

func TestValidateMissionDegenerateTrajectory(t *testing.T) {
	m := validMission()
	pt := spec.PointDef{X: 50, Y: 0, Z: 25}
	m.Trajectory.Points = []spec.PointDef{pt, pt, pt}
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for zero-length trajectory")
	}
	if len(r.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(r.Errors), r.Errors)
	}
	if r.Errors[0].Level != LevelGeometry {
		t.Errorf("expected geometry-level error, got %s", r.Errors[0].Level)
	}
}

func TestValidateMissionDuplicateSegmentID(t *testing.T) {
	m := validMission()
	m.Overview.Segments[2].ID = "101"
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for duplicate segment id")
	}
	assertHasError(t, r, "overview.segments[2].id")
}

func TestValidateMissionNegativeSegmentDistance(t *testing.T) {
	m := validMission()
	m.Overview.Segments[0].Distance = -2
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for negative distance")
	}
	assertHasError(t, r, "overview.segments[0].distance")
}

func TestValidateMissionSteepSegmentAngle(t *testing.T) {
	m := validMission()
	m.Overview.Segments[1].Angle = 90
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for 90 degree skew")
	}
	assertHasError(t, r, "overview.segments[1].angle")
}

func TestValidateMissionUnknownPlanSegment(t *testing.T) {
	m := validMission()
	m.Overview.Plan = []string{"101", "999"}
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for unknown plan segment")
	}
	assertHasError(t, r, "overview.plan[1]")
}

func TestValidateMissionReversedPlanEntryResolves(t *testing.T) {
	m := validMission()
	m.Overview.Plan = []string{"101", "r102"}
	r := ValidateMission(m)
	for _, e := range r.Errors {
		if e.SpecPath == "overview.plan[1]" {
			t.Errorf("r-prefixed entry should resolve to its base segment: %v", e)
		}
	}
}

func TestValidateMissionFlythroughNeedsUnderdeck(t *testing.T) {
	m := validMission()
	m.Overview.Plan = []string{"101", "underdeck_safe_flythrough", "201"}
	m.Underdeck.Enabled = false
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for flythrough without underdeck")
	}
	assertHasError(t, r, "overview.plan[1]")
}

func TestValidateMissionUnknownTransitionMode(t *testing.T) {
	m := validMission()
	m.Overview.Transition.Mode = "sideways"
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for unknown transition mode")
	}
	assertHasError(t, r, "overview.transition.mode")
}

func TestValidateMissionMiddleTransitionNeedsVerticalOffset(t *testing.T) {
	m := validMission()
	m.Overview.Transition.VerticalOffset = 0
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for zero vertical offset")
	}
	assertHasError(t, r, "overview.transition.vertical_offset")
}

func TestValidateMissionIgnoredMarkerWarns(t *testing.T) {
	m := validMission()
	m.Overview.Transition.Mode = "auto_elevated_transition"
	r := ValidateMission(m)
	if !r.Valid {
		t.Errorf("markers under auto mode should only warn, got errors: %v", r.Errors)
	}
	if len(r.Warnings) == 0 {
		t.Error("expected a warning for ignored transition markers")
	}
}

func TestValidateMissionSegmentsWithoutPlanWarns(t *testing.T) {
	m := validMission()
	m.Overview.Plan = nil
	r := ValidateMission(m)
	if !r.Valid {
		t.Errorf("empty plan should only warn, got errors: %v", r.Errors)
	}
	found := false
	for _, w := range r.Warnings {
		if w.SpecPath == "overview.plan" {
			found = true
		}
	}
	if !found {
		t.Error("expected a warning for segments without a plan")
	}
}

func TestValidateMissionUnderdeckArrayLengths(t *testing.T) {
	m := validMission()
	m.Underdeck.Clearances = []float64{8, 8}
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for clearance count mismatch")
	}
	assertHasError(t, r, "underdeck.clearances")
}

func TestValidateMissionUnderdeckDisabledSkipsChecks(t *testing.T) {
	m := validMission()
	m.Underdeck.Enabled = false
	m.Underdeck.Clearances = nil
	m.Underdeck.Passes = 0
	r := ValidateMission(m)
	if !r.Valid {
		t.Errorf("disabled underdeck should not be validated, got errors: %v", r.Errors)
	}
}

func TestValidateMissionAxialNeedsGirders(t *testing.T) {
	m := validMission()
	m.Underdeck.Girders = 0
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for axial without girders")
	}
	assertHasError(t, r, "underdeck.girders")
}

func TestValidateMissionEvenSpansNeedMiddleIndex(t *testing.T) {
	m := validMission()
	m.Bridge.Piers = m.Bridge.Piers[:1] // 2 spans
	m.Underdeck.Clearances = []float64{8, 8}
	m.Underdeck.HeightOffsets = [][]float64{{0, 1, 0}, {0, 1, 0}}
	m.Underdeck.BasePoints = []int{3, 3}
	m.Underdeck.Thresholds = []spec.ThresholdDef{{Start: 5, End: 5}, {Start: 5, End: 5}}

	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report: even span count without middle_span_index")
	}
	assertHasError(t, r, "underdeck.middle_span_index")

	idx := 1
	m.Underdeck.MiddleSpanIndex = &idx
	r = ValidateMission(m)
	if !r.Valid {
		t.Errorf("explicit middle_span_index should validate, got errors: %v", r.Errors)
	}
}

func TestValidateMissionMiddleSpanIndexRange(t *testing.T) {
	m := validMission()
	idx := 7
	m.Underdeck.MiddleSpanIndex = &idx
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for out-of-range middle_span_index")
	}
	assertHasError(t, r, "underdeck.middle_span_index")
}

func TestValidateMissionZeroResampleStep(t *testing.T) {
	m := validMission()
	m.Safety.ResampleStep = 0
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for resample_step=0")
	}
	assertHasError(t, r, "safety.resample_step")
}

func TestValidateMissionZonePolygonTooSmall(t *testing.T) {
	m := validMission()
	m.Safety.Zones[0].Polygon = m.Safety.Zones[0].Polygon[:2]
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for 2-vertex polygon")
	}
	assertHasError(t, r, "safety.zones[0].polygon")
}

func TestValidateMissionZoneSelfIntersecting(t *testing.T) {
	m := validMission()
	m.Safety.Zones[0].Polygon = []spec.PointDef{
		{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10},
	}
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for bow-tie polygon")
	}
	assertHasError(t, r, "safety.zones[0].polygon")
	if r.Errors[0].Level != LevelGeometry {
		t.Errorf("expected geometry-level error, got %s", r.Errors[0].Level)
	}
}

func TestValidateMissionZoneDuplicateVerticesRepaired(t *testing.T) {
	m := validMission()
	m.Safety.Zones[0].Polygon = []spec.PointDef{
		{X: 80, Y: -18}, {X: 80, Y: -18}, {X: 120, Y: -18},
		{X: 120, Y: -10}, {X: 80, Y: -10},
	}
	r := ValidateMission(m)
	if !r.Valid {
		t.Errorf("consecutive duplicate vertex should be repaired, got errors: %v", r.Errors)
	}
}

func TestValidateMissionZoneMissingAdjustment(t *testing.T) {
	m := validMission()
	m.Safety.Zones[0].Adjustment = nil
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for missing adjustment")
	}
	assertHasError(t, r, "safety.zones[0].adjustment")
}

func TestValidateMissionRaiseInsideBand(t *testing.T) {
	m := validMission()
	m.Safety.Zones[0].Adjustment = adj(15) // band is 0-30
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for raise altitude inside the band")
	}
	assertHasError(t, r, "safety.zones[0].adjustment")
	if r.Errors[0].Level != LevelSafety {
		t.Errorf("expected safety-level error, got %s", r.Errors[0].Level)
	}
}

func TestValidateMissionDeleteAndDetourAdjustments(t *testing.T) {
	for _, v := range []float64{0, -1} {
		m := validMission()
		m.Safety.Zones[0].Adjustment = adj(v)
		r := ValidateMission(m)
		if !r.Valid {
			t.Errorf("adjustment %v should be accepted, got errors: %v", v, r.Errors)
		}
	}
}

func TestValidateMissionBadAdjustmentValue(t *testing.T) {
	m := validMission()
	m.Safety.Zones[0].Adjustment = adj(-5)
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for adjustment=-5")
	}
	assertHasError(t, r, "safety.zones[0].adjustment")
}

func TestValidateMissionInvertedZoneBand(t *testing.T) {
	m := validMission()
	m.Safety.Zones[0].ZMin = 30
	m.Safety.Zones[0].ZMax = 0
	r := ValidateMission(m)
	if r.Valid {
		t.Error("expected invalid report for z_min >= z_max")
	}
	assertHasError(t, r, "safety.zones[0]")
}

func TestValidateMissionSpeedsMissingDefault(t *testing.T) {
	m := validMission()
	m.Output.Speeds = map[string]float64{"overview": 5}
	r := ValidateMission(m)
	if !r.Valid {
		t.Errorf("missing default speed should only warn, got errors: %v", r.Errors)
	}
	if len(r.Warnings) == 0 {
		t.Error("expected a warning for missing default speed")
	}
}

func assertHasError(t *testing.T, r *Report, specPath string) {
	t.Helper()
	for _, e := range r.Errors {
		if e.SpecPath == specPath {
			return
		}
	}
	t.Errorf("expected error with spec_path %q, got errors: %v", specPath, r.Errors)
}
