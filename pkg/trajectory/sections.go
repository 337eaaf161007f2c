package trajectory

import (
	"math"
	"sort"

	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
)

// PierPair is the two footprint points of one bridge pier in the ground
// plane.
type PierPair struct {
	A geo.Vec2
	B geo.Vec2
}

// Center returns the midpoint between the two pier points.
func (p PierPair) Center() geo.Vec2 {
	return p.A.Lerp(p.B, 0.5)
}

// Section is one bridge span between consecutive piers (or a pier and a
// bridge end).
type Section struct {
	Length float64 // meters along the deck
	Angle  float64 // pier skew relative to the deck normal, degrees
}

// skewCap keeps extreme pier skews from destabilizing offset rotation.
const skewCap = 85.0

// Sections splits the sampled trajectory into spans at pier-pair centers.
// Centers are projected to chainage along the deck, sorted, and centers
// closer than 0.5 m collapse into one. Span lengths run start -> first pier,
// pier to pier, last pier -> end. Per-span angles derive from the pier-pair
// direction against the local deck normal, smoothed across neighbors.
//
// With no piers the whole trajectory is a single section with angle 0.
func Sections(samples *Sampled, piers []PierPair) []Section {
	deck := samples.XYPolyline()
	total := deck.Length()
	if len(piers) == 0 {
		return []Section{{Length: total}}
	}

	type pierAt struct {
		chainage float64
		angle    float64
		skewed   bool
	}
	at := make([]pierAt, 0, len(piers))
	for _, pp := range piers {
		center := pp.Center()
		entry := pierAt{chainage: deck.ChainageOf(center)}
		if dir := pp.B.Sub(pp.A); dir.Length() > 1e-9 {
			normal := deck.TangentNear(center).Perp()
			entry.angle = canonAngle(angleDeg(normal, dir.Normalize()))
			entry.skewed = true
		}
		at = append(at, entry)
	}
	sort.Slice(at, func(i, j int) bool { return at[i].chainage < at[j].chainage })

	// Collapse piers that project to nearly the same chainage.
	merged := at[:0]
	for _, e := range at {
		if len(merged) > 0 && e.chainage-merged[len(merged)-1].chainage <= 0.5 {
			continue
		}
		merged = append(merged, e)
	}

	lengths := make([]float64, 0, len(merged)+1)
	prev := 0.0
	for _, e := range merged {
		if e.chainage > prev {
			lengths = append(lengths, e.chainage-prev)
			prev = e.chainage
		}
	}
	if total > prev {
		lengths = append(lengths, total-prev)
	}
	if len(lengths) == 0 {
		return []Section{{Length: total}}
	}

	pierAngles := make([]float64, len(merged))
	for i, e := range merged {
		if e.skewed {
			pierAngles[i] = e.angle
		}
	}

	angles := smoothAngles(pierAngles, len(lengths))
	sections := make([]Section, len(lengths))
	for i, l := range lengths {
		sections[i] = Section{Length: l, Angle: angles[i]}
	}
	return sections
}

// ResolveAngles overlays user-provided per-span angles on the pier-derived
// defaults. A span without an override keeps its default.
func ResolveAngles(defaults, overrides []float64) []float64 {
	if len(defaults) == 0 {
		out := make([]float64, len(overrides))
		copy(out, overrides)
		return out
	}
	out := make([]float64, len(defaults))
	for i := range defaults {
		if i < len(overrides) {
			out[i] = overrides[i]
		} else {
			out[i] = defaults[i]
		}
	}
	return out
}

// smoothAngles spreads pier angles onto spans: the first span takes the
// first pier's angle, interior spans the average of their bounding piers,
// padded or truncated to n.
func smoothAngles(pierAngles []float64, n int) []float64 {
	out := make([]float64, 0, n)
	switch len(pierAngles) {
	case 0:
		for i := 0; i < n; i++ {
			out = append(out, 0)
		}
		return out
	case 1:
		for i := 0; i < n; i++ {
			out = append(out, pierAngles[0])
		}
		return out
	}

	out = append(out, pierAngles[0])
	for i := 0; i < len(pierAngles)-1; i++ {
		out = append(out, canonAngle((pierAngles[i]+pierAngles[i+1])/2))
	}
	for len(out) < n {
		out = append(out, out[len(out)-1])
	}
	return out[:n]
}

// angleDeg returns the signed angle from a to b in degrees.
func angleDeg(a, b geo.Vec2) float64 {
	dot := math.Max(-1, math.Min(1, a.Dot(b)))
	return math.Atan2(a.Cross(b), dot) * 180 / math.Pi
}

// canonAngle maps an angle to [-90, 90] and caps it to the stable range.
func canonAngle(deg float64) float64 {
	a := math.Mod(deg+180, 360)
	if a < 0 {
		a += 360
	}
	a -= 180
	if a > 90 {
		a -= 180
	}
	if a < -90 {
		a += 180
	}
	return math.Max(-skewCap, math.Min(skewCap, a))
}
