// Package safety runs finished routes through the avoidance pipeline:
// resample at a fixed step, detect zone membership, apply each zone's
// adjustment policy, simplify by turn angle, and deduplicate. Stage order is
// part of the contract, and reprocessing an already safe route is a no-op.
package safety

import (
	"fmt"

	"github.com/ChicagoDave/bridgeplanner/internal/logging"
	"github.com/ChicagoDave/bridgeplanner/pkg/route"
	"github.com/ChicagoDave/bridgeplanner/pkg/spec"
)

// dedupeTol is the position tolerance below which consecutive points
// collapse into one.
const dedupeTol = 1e-3

// Processor runs the five-stage pipeline over one route at a time. Every
// stage consumes its input and returns a newly allocated sequence; the
// caller's route is never mutated.
type Processor struct {
	zones     []Zone
	step      float64
	angle     float64
	reference float64
	log       logging.Logger
}

// NewProcessor builds a processor from the mission's safety configuration.
// The reference altitude shifts every zone's vertical band, keeping bands
// relative to the takeoff point.
func NewProcessor(s spec.Safety, reference float64, log logging.Logger) (*Processor, error) {
	if s.ResampleStep <= 0 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("resample step must be positive, got %v", s.ResampleStep)}
	}
	if s.SimplifyAngle <= 0 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("simplify angle must be positive, got %v", s.SimplifyAngle)}
	}
	zones, err := ZonesFromSpec(s)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Noop()
	}
	return &Processor{
		zones:     zones,
		step:      s.ResampleStep,
		angle:     s.SimplifyAngle,
		reference: reference,
		log:       log,
	}, nil
}

// Process runs resample, membership, adjustment, simplification and
// deduplication over the route, returning the processed copy.
func (p *Processor) Process(rt route.Route) (route.Route, error) {
	resampled := p.resample(rt.Points)

	adjusted, st, err := p.adjust(resampled)
	if err != nil {
		return route.Route{}, fmt.Errorf("route %s: %w", rt.ID, err)
	}

	final := dedupe(p.simplify(adjusted))

	p.log.Debug("safety pipeline complete",
		logging.String("route", rt.ID),
		logging.Int("points_in", rt.Len()),
		logging.Int("resampled", len(resampled)),
		logging.Int("points_out", len(final)),
	)
	if st.deleted > 0 || st.raised > 0 || st.detoured > 0 {
		p.log.Info("route adjusted for safety zones",
			logging.String("route", rt.ID),
			logging.Int("deleted", st.deleted),
			logging.Int("raised", st.raised),
			logging.Int("detour_points", st.detoured),
		)
	}

	return route.Route{ID: rt.ID, Points: final}, nil
}

// resample re-densifies the route at the configured step so zone tests have
// adequate resolution. Inserted points inherit the preceding vertex's tag.
func (p *Processor) resample(pts []route.Waypoint) []route.Waypoint {
	if len(pts) < 2 {
		return append([]route.Waypoint(nil), pts...)
	}
	out := make([]route.Waypoint, 0, len(pts))
	out = append(out, pts[0])
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		d := a.Position.Distance(b.Position)
		if d > p.step {
			n := int(d / p.step)
			for j := 1; j <= n; j++ {
				t := float64(j) / float64(n+1)
				out = append(out, route.Waypoint{
					Position: a.Position.Lerp(b.Position, t),
					Tag:      a.Tag,
				})
			}
		}
		out = append(out, b)
	}
	return out
}

// membership maps point index to the zones containing that point.
func (p *Processor) membership(pts []route.Waypoint) map[int][]int {
	found := map[int][]int{}
	for zi, z := range p.zones {
		for i, wp := range pts {
			if z.Contains(wp.Position, p.reference) {
				found[i] = append(found[i], zi)
			}
		}
	}
	return found
}

type adjustStats struct {
	deleted  int
	raised   int
	detoured int
}

// adjust applies each winning zone's policy: delete the point, detour around
// the zone boundary, or raise the point clear of the band.
func (p *Processor) adjust(pts []route.Waypoint) ([]route.Waypoint, adjustStats, error) {
	var st adjustStats
	inZones := p.membership(pts)
	if len(inZones) == 0 {
		return append([]route.Waypoint(nil), pts...), st, nil
	}

	out := make([]route.Waypoint, 0, len(pts))
	skip := make([]bool, len(pts))
	for i, wp := range pts {
		if skip[i] {
			continue
		}
		zis, ok := inZones[i]
		if !ok {
			out = append(out, wp)
			continue
		}
		z := p.zones[winningZone(p.zones, zis)]
		switch z.Adjustment {
		case AdjustDelete:
			st.deleted++
		case AdjustDetour:
			detour, exit, err := p.buildDetour(pts, i, z)
			if err != nil {
				return nil, st, err
			}
			out = append(out, detour...)
			for k := i; k < exit; k++ {
				skip[k] = true
			}
			st.detoured += len(detour)
		default:
			raised := wp
			raised.Position = wp.Position.WithZ(z.Adjustment + p.reference)
			out = append(out, raised)
			st.raised++
		}
	}
	return out, st, nil
}

// winningZone resolves a point caught in several zones to the one with the
// numerically highest adjustment. The first of equals wins.
func winningZone(zones []Zone, candidates []int) int {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if zones[c].Adjustment > zones[best].Adjustment {
			best = c
		}
	}
	return best
}

// dedupe collapses consecutive points identical in position and tag.
func dedupe(pts []route.Waypoint) []route.Waypoint {
	if len(pts) == 0 {
		return nil
	}
	out := make([]route.Waypoint, 0, len(pts))
	out = append(out, pts[0])
	for _, wp := range pts[1:] {
		prev := out[len(out)-1]
		if wp.Position.Distance(prev.Position) > dedupeTol || wp.Tag != prev.Tag {
			out = append(out, wp)
		}
	}
	return out
}
