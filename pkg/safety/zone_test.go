package safety

import (
	"errors"
	"testing"

	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
	"github.com/ChicagoDave/bridgeplanner/pkg/spec"
)

func TestZonesFromSpec(t *testing.T) {
	s := validSafety(squareZone("barge", 0, 0, 10, 10, 0, 30, adj(35)))

	zones, err := ZonesFromSpec(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zones) != 1 {
		t.Fatalf("expected 1 zone, got %d", len(zones))
	}
	z := zones[0]
	if z.Name != "barge" {
		t.Errorf("expected name %q, got %q", "barge", z.Name)
	}
	if z.Polygon.Len() != 4 {
		t.Errorf("expected 4 vertices, got %d", z.Polygon.Len())
	}
	if z.Adjustment != 35 || z.ZMin != 0 || z.ZMax != 30 {
		t.Errorf("zone fields not carried over: %+v", z)
	}
}

func TestZonesFromSpecNamesUnnamedZones(t *testing.T) {
	s := validSafety(
		squareZone("", 0, 0, 10, 10, 0, 30, adj(0)),
		squareZone("", 20, 0, 30, 10, 0, 30, adj(0)),
	)

	zones, err := ZonesFromSpec(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if zones[0].Name != "zone 1" || zones[1].Name != "zone 2" {
		t.Errorf("expected positional names, got %q and %q", zones[0].Name, zones[1].Name)
	}
}

func TestZonesFromSpecRepairsDuplicateVertices(t *testing.T) {
	def := spec.ZoneDef{
		Name: "pier",
		Polygon: []spec.PointDef{
			{X: 0, Y: 0},
			{X: 0, Y: 0},
			{X: 10, Y: 0},
			{X: 10, Y: 10},
			{X: 0, Y: 10},
		},
		ZMin: 0, ZMax: 30, Adjustment: adj(0),
	}

	zones, err := ZonesFromSpec(validSafety(def))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if zones[0].Polygon.Len() != 4 {
		t.Errorf("expected duplicate vertex dropped, got %d vertices", zones[0].Polygon.Len())
	}
}

func TestZonesFromSpecRejectsDegeneratePolygon(t *testing.T) {
	def := spec.ZoneDef{
		Name: "sliver",
		Polygon: []spec.PointDef{
			{X: 0, Y: 0},
			{X: 0, Y: 0},
			{X: 5, Y: 0},
			{X: 5, Y: 0},
		},
		ZMin: 0, ZMax: 30, Adjustment: adj(0),
	}

	var polyErr *InvalidZonePolygonError
	if _, err := ZonesFromSpec(validSafety(def)); !errors.As(err, &polyErr) {
		t.Fatalf("expected invalid polygon error, got %v", err)
	}
	if polyErr.Zone != "sliver" {
		t.Errorf("expected error to name the zone, got %q", polyErr.Zone)
	}
}

func TestZonesFromSpecRejectsSelfIntersection(t *testing.T) {
	def := spec.ZoneDef{
		Name: "bowtie",
		Polygon: []spec.PointDef{
			{X: 0, Y: 0},
			{X: 10, Y: 10},
			{X: 10, Y: 0},
			{X: 0, Y: 10},
		},
		ZMin: 0, ZMax: 30, Adjustment: adj(0),
	}

	var polyErr *InvalidZonePolygonError
	if _, err := ZonesFromSpec(validSafety(def)); !errors.As(err, &polyErr) {
		t.Errorf("expected invalid polygon error, got %v", err)
	}
}

func TestZonesFromSpecAdjustmentRules(t *testing.T) {
	var cfgErr *ConfigurationError

	missing := squareZone("barge", 0, 0, 10, 10, 0, 30, nil)
	if _, err := ZonesFromSpec(validSafety(missing)); !errors.As(err, &cfgErr) {
		t.Errorf("expected configuration error for missing adjustment, got %v", err)
	}

	negative := squareZone("barge", 0, 0, 10, 10, 0, 30, adj(-5))
	if _, err := ZonesFromSpec(validSafety(negative)); !errors.As(err, &cfgErr) {
		t.Errorf("expected configuration error for adjustment -5, got %v", err)
	}

	inside := squareZone("barge", 0, 0, 10, 10, 0, 30, adj(15))
	if _, err := ZonesFromSpec(validSafety(inside)); !errors.As(err, &cfgErr) {
		t.Errorf("expected configuration error for raise inside band, got %v", err)
	}

	for _, v := range []float64{0, -1, 30, 35} {
		ok := squareZone("barge", 0, 0, 10, 10, 0, 30, adj(v))
		if _, err := ZonesFromSpec(validSafety(ok)); err != nil {
			t.Errorf("adjustment %v: unexpected error: %v", v, err)
		}
	}
}

func TestZoneContains(t *testing.T) {
	zones, err := ZonesFromSpec(validSafety(squareZone("barge", 0, 0, 10, 10, 0, 10, adj(0))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	z := zones[0]

	if !z.Contains(geo.P3(5, 5, 5), 0) {
		t.Error("expected interior point inside the volume")
	}
	if z.Contains(geo.P3(5, 5, 11), 0) {
		t.Error("expected point above the band outside the volume")
	}
	if z.Contains(geo.P3(15, 5, 5), 0) {
		t.Error("expected point beyond the footprint outside the volume")
	}
	if !z.Contains(geo.P3(5, 5, 10), 0) {
		t.Error("expected point on the band edge inside the volume")
	}
}

func TestZoneContainsShiftsBandByReference(t *testing.T) {
	zones, err := ZonesFromSpec(validSafety(squareZone("barge", 0, 0, 10, 10, 0, 10, adj(0))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	z := zones[0]

	if !z.Contains(geo.P3(5, 5, 105), 100) {
		t.Error("expected point inside the shifted band")
	}
	if z.Contains(geo.P3(5, 5, 5), 100) {
		t.Error("expected absolute altitude below the shifted band to be outside")
	}
}

func TestZoneContainsXYExcludesBoundary(t *testing.T) {
	zones, err := ZonesFromSpec(validSafety(squareZone("barge", 0, 0, 10, 10, 0, 10, adj(0))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	z := zones[0]

	// Points produced on the outline itself must not register as members,
	// otherwise a detour would be rerouted again on the next pass.
	for _, v := range []geo.Vec2{geo.V2(0, 5), geo.V2(10, 5), geo.V2(5, 0), geo.V2(5, 10)} {
		if z.ContainsXY(v) {
			t.Errorf("boundary point %+v should not be a member", v)
		}
	}
	if !z.ContainsXY(geo.V2(0.001, 5)) {
		t.Error("expected point just inside the outline to be a member")
	}
}
