// Package trajectory turns a raw bridge centerline into a dense, evenly
// parameterized curve with per-sample tangents, and splits it into spans at
// pier positions.
package trajectory

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
)

// InvalidTrajectoryError reports a centerline that cannot be sampled.
type InvalidTrajectoryError struct {
	Reason string
	Points int
}

func (e *InvalidTrajectoryError) Error() string {
	return fmt.Sprintf("invalid trajectory (%d points): %s", e.Points, e.Reason)
}

// Sampled is a resampled trajectory: Points and Tangents always have equal
// length, and every tangent is a unit vector.
type Sampled struct {
	Points   []geo.Point3D
	Tangents []geo.Point3D
}

// Len returns the number of samples.
func (s *Sampled) Len() int {
	return len(s.Points)
}

// Length returns the total arc length of the sampled polyline.
func (s *Sampled) Length() float64 {
	total := 0.0
	for i := 1; i < len(s.Points); i++ {
		total += s.Points[i-1].Distance(s.Points[i])
	}
	return total
}

// XYPolyline returns the ground-plane projection of the samples.
func (s *Sampled) XYPolyline() geo.Polyline {
	pts := make([]geo.Vec2, len(s.Points))
	for i, p := range s.Points {
		pts[i] = p.XY()
	}
	return geo.Polyline{Points: pts}
}

// Resample fits a natural cubic spline through the raw centerline and
// evaluates it at count evenly spaced parameters. It returns exactly count
// points and count unit tangents.
//
// Near-duplicate input vertices produce a near-zero spline derivative; those
// samples take the direction of the nearest non-degenerate sample instead of
// dividing by a vanishing magnitude.
func Resample(raw []geo.Point3D, count int) (*Sampled, error) {
	if len(raw) < 2 {
		return nil, &InvalidTrajectoryError{Reason: "need at least 2 points", Points: len(raw)}
	}
	if count < 2 {
		return nil, &InvalidTrajectoryError{Reason: fmt.Sprintf("sample count %d too small", count), Points: len(raw)}
	}
	totalLen := 0.0
	for i := 1; i < len(raw); i++ {
		totalLen += raw[i-1].Distance(raw[i])
	}
	if totalLen < 1e-9 {
		return nil, &InvalidTrajectoryError{Reason: "zero-length trajectory", Points: len(raw)}
	}

	// Uniform parameterization over the input vertices, then one natural
	// cubic fit per coordinate.
	ts := floats.Span(make([]float64, len(raw)), 0, 1)
	xs := make([]float64, len(raw))
	ys := make([]float64, len(raw))
	zs := make([]float64, len(raw))
	for i, p := range raw {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}

	var cx, cy, cz interp.NaturalCubic
	if err := cx.Fit(ts, xs); err != nil {
		return nil, fmt.Errorf("fitting x spline: %w", err)
	}
	if err := cy.Fit(ts, ys); err != nil {
		return nil, fmt.Errorf("fitting y spline: %w", err)
	}
	if err := cz.Fit(ts, zs); err != nil {
		return nil, fmt.Errorf("fitting z spline: %w", err)
	}

	eval := floats.Span(make([]float64, count), 0, 1)
	points := make([]geo.Point3D, count)
	deriv := make([]geo.Point3D, count)
	for i, t := range eval {
		points[i] = geo.Point3D{X: cx.Predict(t), Y: cy.Predict(t), Z: cz.Predict(t)}
		deriv[i] = geo.Point3D{
			X: cx.PredictDerivative(t),
			Y: cy.PredictDerivative(t),
			Z: cz.PredictDerivative(t),
		}
	}

	return &Sampled{Points: points, Tangents: normalizeTangents(deriv)}, nil
}

// normalizeTangents converts derivative vectors to unit tangents. Degenerate
// entries borrow the nearest non-degenerate neighbor's direction; a trajectory
// with no usable derivative at all falls back to +X.
func normalizeTangents(deriv []geo.Point3D) []geo.Point3D {
	const eps = 1e-9

	out := make([]geo.Point3D, len(deriv))
	for i, d := range deriv {
		if l := d.Length(); l >= eps {
			out[i] = d.Scale(1 / l)
			continue
		}
		if j, ok := nearestUsable(deriv, i, eps); ok {
			out[i] = deriv[j].Scale(1 / deriv[j].Length())
		} else {
			out[i] = geo.Point3D{X: 1}
		}
	}
	return out
}

func nearestUsable(deriv []geo.Point3D, i int, eps float64) (int, bool) {
	for off := 1; off < len(deriv); off++ {
		if j := i - off; j >= 0 && deriv[j].Length() >= eps {
			return j, true
		}
		if j := i + off; j < len(deriv) && deriv[j].Length() >= eps {
			return j, true
		}
	}
	return 0, false
}
