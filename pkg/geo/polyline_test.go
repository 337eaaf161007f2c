package geo

import (
	"math"
	"testing"
)

func TestPolylineLength(t *testing.T) {
	pl := NewPolyline(V2(0, 0), V2(100, 0), V2(100, 100))
	if math.Abs(pl.Length()-200) > 0.01 {
		t.Errorf("expected length 200, got %.2f", pl.Length())
	}
}

func TestPolylinePointAt(t *testing.T) {
	pl := NewPolyline(V2(0, 0), V2(100, 0))

	mid := pl.PointAt(0.5)
	if mid.Distance(V2(50, 0)) > 0.01 {
		t.Errorf("expected midpoint (50,0), got %v", mid)
	}
	start := pl.PointAt(0)
	if start.Distance(V2(0, 0)) > 0.01 {
		t.Errorf("expected start (0,0), got %v", start)
	}
	end := pl.PointAt(1)
	if end.Distance(V2(100, 0)) > 0.01 {
		t.Errorf("expected end (100,0), got %v", end)
	}
}

func TestPolylineNearestPoint(t *testing.T) {
	pl := NewPolyline(V2(0, 0), V2(100, 0))

	pt, dist := pl.NearestPoint(V2(50, 10))
	if math.Abs(dist-10) > 0.01 {
		t.Errorf("expected distance 10, got %.2f", dist)
	}
	if pt.Distance(V2(50, 0)) > 0.01 {
		t.Errorf("expected nearest (50,0), got %v", pt)
	}
}

func TestPolylineChainageOf(t *testing.T) {
	pl := NewPolyline(V2(0, 0), V2(100, 0), V2(100, 100))

	s := pl.ChainageOf(V2(30, 5))
	if math.Abs(s-30) > 0.01 {
		t.Errorf("expected chainage 30, got %.2f", s)
	}
	s = pl.ChainageOf(V2(105, 40))
	if math.Abs(s-140) > 0.01 {
		t.Errorf("expected chainage 140, got %.2f", s)
	}
	// Before the start clamps to 0.
	s = pl.ChainageOf(V2(-10, 0))
	if math.Abs(s) > 0.01 {
		t.Errorf("expected chainage 0, got %.2f", s)
	}
}

func TestPolylineTangentNear(t *testing.T) {
	pl := NewPolyline(V2(0, 0), V2(100, 0), V2(100, 100))

	tan := pl.TangentNear(V2(50, 1))
	if math.Abs(tan.X-1) > 0.01 || math.Abs(tan.Y) > 0.01 {
		t.Errorf("expected tangent (1,0), got %v", tan)
	}
	tan = pl.TangentNear(V2(99, 50))
	if math.Abs(tan.X) > 0.01 || math.Abs(tan.Y-1) > 0.01 {
		t.Errorf("expected tangent (0,1), got %v", tan)
	}
}

func TestPolylineEmpty(t *testing.T) {
	pl := Polyline{}
	if pl.Length() != 0 {
		t.Error("empty polyline should have zero length")
	}
	pt := pl.PointAt(0.5)
	if pt.X != 0 || pt.Y != 0 {
		t.Error("empty polyline PointAt should return zero")
	}
}
