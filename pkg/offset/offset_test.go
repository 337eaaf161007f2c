package offset

import (
	"math"
	"testing"

	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
	"github.com/ChicagoDave/bridgeplanner/pkg/route"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// --- Perpendicular tests ---

func TestPerpendicularOppositeSides(t *testing.T) {
	p := geo.P3(10, 20, 5)
	dir := geo.V2(1, 0)

	plus := Perpendicular(p, dir, 3, 0)
	minus := Perpendicular(p, dir, -3, 0)

	if !approxEqual(p.Distance(plus), 3, tolerance) {
		t.Errorf("expected distance 3 on positive side, got %f", p.Distance(plus))
	}
	if !approxEqual(p.Distance(minus), 3, tolerance) {
		t.Errorf("expected distance 3 on negative side, got %f", p.Distance(minus))
	}
	if !approxEqual(plus.Y, 23, tolerance) || !approxEqual(minus.Y, 17, tolerance) {
		t.Errorf("expected offsets on opposite sides, got y=%f and y=%f", plus.Y, minus.Y)
	}
	if !approxEqual(plus.Z, 5, tolerance) {
		t.Errorf("expected altitude unchanged, got %f", plus.Z)
	}
}

func TestPerpendicularAngleKeepsClearance(t *testing.T) {
	p := geo.P3(0, 20, 0)
	dir := geo.V2(1, 0)

	// True perpendicular clearance from the travel line must stay 4 even
	// when a 30 degree rotation is requested.
	off := Perpendicular(p, dir, 4, 30)
	if !approxEqual(math.Abs(off.Y-20), 4, tolerance) {
		t.Errorf("expected perpendicular clearance 4, got %f", math.Abs(off.Y-20))
	}
}

func TestPerpendicularZeroDirection(t *testing.T) {
	p := geo.P3(1, 2, 3)
	off := Perpendicular(p, geo.V2(0, 0), 5, 0)
	// Fallback direction is +X, so the offset lands at +Y.
	if !approxEqual(off.X, 1, tolerance) || !approxEqual(off.Y, 7, tolerance) {
		t.Errorf("expected (1,7), got (%f,%f)", off.X, off.Y)
	}
}

// --- AdjustedPoint tests ---

func TestAdjustedPointDropsHeight(t *testing.T) {
	got := AdjustedPoint(geo.P3(0, 0, 10), geo.V2(0, 1), 5, 2, 0)
	if !approxEqual(got.X, 0, tolerance) || !approxEqual(got.Y, 5, tolerance) || !approxEqual(got.Z, 8, tolerance) {
		t.Errorf("expected (0,5,8), got (%f,%f,%f)", got.X, got.Y, got.Z)
	}
}

func TestAdjustedPointSkewCorrection(t *testing.T) {
	// 60 degree skew doubles the applied distance (1/cos 60), rotated
	// normal (0,1) -> (-sin60, cos60).
	got := AdjustedPoint(geo.P3(0, 0, 0), geo.V2(0, 1), 3, 0, 60)
	if !approxEqual(got.X, -6*math.Sin(math.Pi/3), tolerance) {
		t.Errorf("expected x %f, got %f", -6*math.Sin(math.Pi/3), got.X)
	}
	if !approxEqual(got.Y, 3, tolerance) {
		t.Errorf("expected y 3, got %f", got.Y)
	}
}

func TestAdjustedPointZeroNormalFallback(t *testing.T) {
	got := AdjustedPoint(geo.P3(0, 0, 0), geo.V2(0, 0), 4, 1, 0)
	if !approxEqual(got.X, 4, tolerance) || !approxEqual(got.Y, 0, tolerance) || !approxEqual(got.Z, -1, tolerance) {
		t.Errorf("expected (4,0,-1), got (%f,%f,%f)", got.X, got.Y, got.Z)
	}
}

// --- girder offset tests ---

func TestGirderOffsetsOddIncludesZero(t *testing.T) {
	offsets := GirderOffsets(12, 3)
	if len(offsets) != 3 {
		t.Fatalf("expected 3 offsets, got %d", len(offsets))
	}
	want := []float64{6, 0, -6}
	for i, w := range want {
		if !approxEqual(offsets[i], w, tolerance) {
			t.Errorf("offset %d: expected %f, got %f", i, w, offsets[i])
		}
	}
	if offsets[1] != 0 {
		t.Errorf("expected exact zero at center, got %g", offsets[1])
	}
	if !approxEqual(offsets[0]-offsets[2], 12, tolerance) {
		t.Errorf("expected offsets to span the full width, got %f", offsets[0]-offsets[2])
	}
}

func TestGirderOffsetsEvenExcludesZero(t *testing.T) {
	offsets := GirderOffsets(12, 4)
	if len(offsets) != 4 {
		t.Fatalf("expected 4 offsets, got %d", len(offsets))
	}
	want := []float64{4.5, 1.5, -1.5, -4.5}
	for i, w := range want {
		if !approxEqual(offsets[i], w, tolerance) {
			t.Errorf("offset %d: expected %f, got %f", i, w, offsets[i])
		}
		if offsets[i] == 0 {
			t.Errorf("even count must not place a girder at zero")
		}
	}
	// Symmetric about the centerline.
	if !approxEqual(offsets[0]+offsets[3], 0, tolerance) || !approxEqual(offsets[1]+offsets[2], 0, tolerance) {
		t.Errorf("expected symmetric offsets, got %v", offsets)
	}
}

func TestGirderOffsetsSingle(t *testing.T) {
	offsets := GirderOffsets(10, 1)
	if len(offsets) != 1 || offsets[0] != 0 {
		t.Errorf("expected single centerline girder, got %v", offsets)
	}
}

func TestGirderOffsetsDescending(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 7} {
		offsets := GirderOffsets(13.29, n)
		for i := 1; i < len(offsets); i++ {
			if offsets[i] >= offsets[i-1] {
				t.Errorf("n=%d: expected descending order, got %v", n, offsets)
			}
		}
	}
}

// --- clearance and direction tests ---

func TestMinimumClearance(t *testing.T) {
	if got := MinimumClearance(8, 4); !approxEqual(got, 12, tolerance) {
		t.Errorf("expected 12, got %f", got)
	}
	// A zero margin still clears the half-width.
	if got := MinimumClearance(6.645, 0); !approxEqual(got, 6.645, tolerance) {
		t.Errorf("expected 6.645, got %f", got)
	}
}

func TestSideSign(t *testing.T) {
	if SideSign(route.SideLeft) != -1 || SideSign(route.SideRight) != 1 {
		t.Errorf("expected left=-1 right=+1, got %f and %f",
			SideSign(route.SideLeft), SideSign(route.SideRight))
	}
}

func TestDirectionsAveragedAtInterior(t *testing.T) {
	points := []geo.Point3D{geo.P3(0, 0, 0), geo.P3(10, 0, 0), geo.P3(10, 10, 0)}
	dirs := Directions(points)
	if len(dirs) != 3 {
		t.Fatalf("expected 3 directions, got %d", len(dirs))
	}
	if !approxEqual(dirs[0].X, 10, tolerance) || !approxEqual(dirs[0].Y, 0, tolerance) {
		t.Errorf("expected first direction (10,0), got %v", dirs[0])
	}
	if !approxEqual(dirs[1].X, 5, tolerance) || !approxEqual(dirs[1].Y, 5, tolerance) {
		t.Errorf("expected averaged interior direction (5,5), got %v", dirs[1])
	}
	if !approxEqual(dirs[2].X, 0, tolerance) || !approxEqual(dirs[2].Y, 10, tolerance) {
		t.Errorf("expected last direction (0,10), got %v", dirs[2])
	}
}

func TestParallelTrajectoryStraight(t *testing.T) {
	points := []geo.Point3D{geo.P3(0, 0, 12), geo.P3(50, 0, 12), geo.P3(100, 0, 12)}
	off := ParallelTrajectory(points, 2, 0)
	if len(off) != 3 {
		t.Fatalf("expected 3 points, got %d", len(off))
	}
	for i, p := range off {
		if !approxEqual(p.Y, 2, tolerance) {
			t.Errorf("point %d: expected y=2, got %f", i, p.Y)
		}
		if !approxEqual(p.X, points[i].X, tolerance) || !approxEqual(p.Z, 12, tolerance) {
			t.Errorf("point %d: expected x and z unchanged, got (%f,%f)", i, p.X, p.Z)
		}
	}
}

func TestNormalsUnitLength(t *testing.T) {
	points := []geo.Point3D{geo.P3(0, 0, 0), geo.P3(10, 0, 0), geo.P3(10, 10, 0)}
	normals := Normals(points)
	for i, n := range normals {
		if !approxEqual(n.Length(), 1, tolerance) {
			t.Errorf("normal %d: expected unit length, got %f", i, n.Length())
		}
	}
	// Straight +X travel: the CCW normal points to +Y.
	if !approxEqual(normals[0].X, 0, tolerance) || !approxEqual(normals[0].Y, 1, tolerance) {
		t.Errorf("expected (0,1), got %v", normals[0])
	}
}
