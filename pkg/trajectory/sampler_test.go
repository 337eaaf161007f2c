package trajectory

import (
	"errors"
	"math"
	"testing"

	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
)

func TestResampleCountAndUnitTangents(t *testing.T) {
	raw := []geo.Point3D{
		geo.P3(0, 0, 0),
		geo.P3(30, 10, 2),
		geo.P3(60, -5, 4),
		geo.P3(100, 0, 8),
	}
	s, err := Resample(raw, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 50 {
		t.Fatalf("expected 50 samples, got %d", s.Len())
	}
	if len(s.Tangents) != 50 {
		t.Fatalf("expected 50 tangents, got %d", len(s.Tangents))
	}
	for i, tan := range s.Tangents {
		if math.Abs(tan.Length()-1) > 1e-6 {
			t.Errorf("tangent %d has norm %f, expected 1", i, tan.Length())
		}
	}
}

func TestResampleStraightLine(t *testing.T) {
	raw := []geo.Point3D{geo.P3(0, 0, 0), geo.P3(100, 0, 0)}
	s, err := Resample(raw, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range s.Points {
		want := float64(i) * 10
		if math.Abs(p.X-want) > 1e-6 || math.Abs(p.Y) > 1e-6 || math.Abs(p.Z) > 1e-6 {
			t.Errorf("sample %d = %v, expected (%.0f,0,0)", i, p, want)
		}
	}
	for i, tan := range s.Tangents {
		if math.Abs(tan.X-1) > 1e-6 || math.Abs(tan.Y) > 1e-6 {
			t.Errorf("tangent %d = %v, expected (1,0,0)", i, tan)
		}
	}
}

func TestResampleEndpointsPreserved(t *testing.T) {
	raw := []geo.Point3D{
		geo.P3(5, 3, 1),
		geo.P3(40, 20, 2),
		geo.P3(80, 10, 3),
	}
	s, err := Resample(raw, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Points[0].Distance(raw[0]) > 1e-6 {
		t.Errorf("first sample %v does not match first input %v", s.Points[0], raw[0])
	}
	last := s.Points[s.Len()-1]
	if last.Distance(raw[len(raw)-1]) > 1e-6 {
		t.Errorf("last sample %v does not match last input %v", last, raw[len(raw)-1])
	}
}

func TestResampleDegenerateInput(t *testing.T) {
	var invalid *InvalidTrajectoryError

	_, err := Resample([]geo.Point3D{geo.P3(1, 2, 3)}, 10)
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidTrajectoryError for single point, got %v", err)
	}

	_, err = Resample([]geo.Point3D{geo.P3(1, 2, 3), geo.P3(1, 2, 3)}, 10)
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidTrajectoryError for zero-length input, got %v", err)
	}

	_, err = Resample([]geo.Point3D{geo.P3(0, 0, 0), geo.P3(1, 0, 0)}, 1)
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidTrajectoryError for count 1, got %v", err)
	}
}

func TestResampleDuplicateInteriorVertex(t *testing.T) {
	raw := []geo.Point3D{
		geo.P3(0, 0, 0),
		geo.P3(50, 0, 0),
		geo.P3(50, 0, 0),
		geo.P3(100, 0, 0),
	}
	s, err := Resample(raw, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, tan := range s.Tangents {
		if math.Abs(tan.Length()-1) > 1e-6 {
			t.Errorf("tangent %d has norm %f, expected 1 (fallback)", i, tan.Length())
		}
	}
}

func TestSampledLength(t *testing.T) {
	s := &Sampled{Points: []geo.Point3D{geo.P3(0, 0, 0), geo.P3(3, 4, 0), geo.P3(3, 4, 10)}}
	if math.Abs(s.Length()-15) > 1e-9 {
		t.Errorf("expected length 15, got %f", s.Length())
	}
}
