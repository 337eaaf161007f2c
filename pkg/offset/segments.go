package offset

import (
	"fmt"

	"github.com/ChicagoDave/bridgeplanner/internal/logging"
	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
	"github.com/ChicagoDave/bridgeplanner/pkg/route"
	"github.com/ChicagoDave/bridgeplanner/pkg/spec"
	"github.com/ChicagoDave/bridgeplanner/pkg/trajectory"
	"github.com/ChicagoDave/bridgeplanner/pkg/validation"
)

// BuildSegments generates one parallel offset route per configured overview
// segment, keyed by segment ID. Each waypoint carries the segment ID as its
// tag. The lateral clearance is the half-width floor plus the segment's
// margin; a segment asking for a negative margin would fly inside the
// structure and is reported instead of generated.
func BuildSegments(m *spec.Mission, samples *trajectory.Sampled, log logging.Logger) (map[string]route.Route, *validation.Report) {
	if log == nil {
		log = logging.Noop()
	}
	report := validation.NewReport()
	halfWidth := m.Bridge.HalfWidth()
	segments := make(map[string]route.Route, len(m.Overview.Segments))

	for i, seg := range m.Overview.Segments {
		if seg.Distance < 0 {
			report.AddError(validation.Result{
				Level:       validation.LevelGeometry,
				Message:     fmt.Sprintf("segment %s requests %.2f m inside the minimum clearance", seg.ID, -seg.Distance),
				SpecPath:    fmt.Sprintf("overview.segments[%d].distance", i),
				ActualValue: seg.Distance,
				Expected:    ">= 0 (metres beyond the half-width)",
			})
			continue
		}

		side := route.SideOf(seg.ID)
		lateral := MinimumClearance(halfWidth, seg.Distance) * SideSign(side)
		pts := ParallelTrajectory(samples.Points, lateral, seg.Angle)

		rt := route.New(seg.ID)
		for _, p := range pts {
			rt.Points = append(rt.Points, route.Waypoint{
				Position: geo.P3(p.X, p.Y, p.Z+seg.Height),
				Tag:      seg.ID,
			})
		}
		segments[seg.ID] = rt

		log.Debug("overview segment generated",
			logging.String("segment", seg.ID),
			logging.String("side", string(side)),
			logging.Float("clearance", MinimumClearance(halfWidth, seg.Distance)),
			logging.Int("points", rt.Len()),
		)
	}

	return segments, report
}

// BuildMiddleAnchors computes the two cross-over points used by the middle
// transition mode: one per side, perpendicular to the trajectory's middle
// sample, at the half-width floor plus the configured horizontal offset.
// The vertical offset is applied later, during assembly.
func BuildMiddleAnchors(m *spec.Mission, samples *trajectory.Sampled) route.MiddleAnchors {
	mid := samples.Points[samples.Len()/2]
	dir := samples.Tangents[samples.Len()/2].XY()
	clearance := MinimumClearance(m.Bridge.HalfWidth(), m.Overview.Transition.HorizontalOffset)

	return route.MiddleAnchors{
		Left:  Perpendicular(mid, dir, clearance*SideSign(route.SideLeft), 0),
		Right: Perpendicular(mid, dir, clearance*SideSign(route.SideRight), 0),
	}
}
