package route

import (
	"fmt"
	"math"
	"strings"

	"github.com/ChicagoDave/bridgeplanner/internal/logging"
	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
)

// TransitionMode selects how the assembler joins segments that fly on
// opposite sides of the deck.
type TransitionMode string

const (
	// SeparateSides keeps the two sides as independent routes and never
	// inserts a cross-side hop.
	SeparateSides TransitionMode = "separate_sides"
	// MiddleTransition crosses sides through two anchor points above the
	// trajectory middle wherever the plan carries a transition marker.
	MiddleTransition TransitionMode = "middle_transition"
	// AutoElevatedTransition inserts an elevated two-point hop at every
	// side change, with no markers in the plan.
	AutoElevatedTransition TransitionMode = "auto_elevated_transition"
)

// ParseTransitionMode maps a config string onto a TransitionMode.
func ParseTransitionMode(s string) (TransitionMode, error) {
	switch m := TransitionMode(strings.ToLower(strings.TrimSpace(s))); m {
	case SeparateSides, MiddleTransition, AutoElevatedTransition:
		return m, nil
	default:
		return "", &ConfigurationError{
			Field:  "overview.transition.mode",
			Reason: fmt.Sprintf("unknown mode %q", s),
		}
	}
}

// ConfigurationError reports an assembly input that cannot produce a
// flyable route.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("route configuration: %s: %s", e.Field, e.Reason)
}

// MiddleAnchors are the laterally offset points above the trajectory
// middle, one per side, at deck altitude. MiddleTransition hops pass
// through them.
type MiddleAnchors struct {
	Left  geo.Point3D
	Right geo.Point3D
}

func (m MiddleAnchors) bySide(s Side) geo.Point3D {
	if s == SideLeft {
		return m.Left
	}
	return m.Right
}

// AssembleConfig controls how named segments are joined into routes.
type AssembleConfig struct {
	Mode           TransitionMode
	VerticalOffset float64        // hop elevation above segment altitude
	Middle         *MiddleAnchors // required for MiddleTransition
}

// transitionToken is the plan entry that requests a middle transition; it
// doubles as the tag on every synthetic hop waypoint.
const transitionToken = "transition"

type planEntry struct {
	id         string
	reversed   bool
	transition bool
}

// parseEntry decodes one plan entry. A leading 'r' marks the segment as
// flown in reverse.
func parseEntry(raw string) planEntry {
	s := strings.TrimSpace(raw)
	if strings.EqualFold(s, transitionToken) {
		return planEntry{transition: true}
	}
	if strings.HasPrefix(s, "r") {
		return planEntry{id: s[1:], reversed: true}
	}
	return planEntry{id: s}
}

// Assemble joins the named segments into final overview routes in plan
// order. SeparateSides yields one route per flown side; the other modes
// yield a single combined route with hops at side changes. Consecutive
// same-side segments are never joined by a hop.
func Assemble(segments map[string]Route, plan []string, cfg AssembleConfig, log logging.Logger) ([]Route, error) {
	if log == nil {
		log = logging.Noop()
	}
	if len(plan) == 0 {
		return nil, &ConfigurationError{Field: "overview.plan", Reason: "plan is empty"}
	}

	entries := make([]planEntry, len(plan))
	for i, raw := range plan {
		e := parseEntry(raw)
		if !e.transition {
			if _, ok := segments[e.id]; !ok {
				return nil, &ConfigurationError{
					Field:  "overview.plan",
					Reason: fmt.Sprintf("unknown segment %q", raw),
				}
			}
		}
		entries[i] = e
	}

	log.Info("assembling overview routes",
		logging.String("mode", string(cfg.Mode)),
		logging.Int("plan_entries", len(plan)))

	switch cfg.Mode {
	case SeparateSides:
		return assembleSeparate(segments, entries, log), nil
	case MiddleTransition:
		if cfg.Middle == nil {
			return nil, &ConfigurationError{
				Field:  "overview.transition",
				Reason: "middle transition requires middle anchor points",
			}
		}
		return assembleMiddle(segments, entries, cfg, log)
	case AutoElevatedTransition:
		return assembleAuto(segments, entries, cfg, log), nil
	default:
		return nil, &ConfigurationError{
			Field:  "overview.transition.mode",
			Reason: fmt.Sprintf("unknown mode %q", cfg.Mode),
		}
	}
}

// resolve looks up a plan entry's waypoints, reversed if marked, and the
// side it flies on.
func resolve(segments map[string]Route, e planEntry) ([]Waypoint, Side) {
	seg := segments[e.id]
	if e.reversed {
		seg = seg.Reverse()
	}
	return seg.Points, SideOf(e.id)
}

func assembleSeparate(segments map[string]Route, entries []planEntry, log logging.Logger) []Route {
	left := New("overview_left")
	right := New("overview_right")
	for _, e := range entries {
		if e.transition {
			log.Warn("ignoring transition marker in separate-sides mode")
			continue
		}
		pts, side := resolve(segments, e)
		if side == SideLeft {
			left = left.Append(pts...)
		} else {
			right = right.Append(pts...)
		}
	}
	var out []Route
	if left.Len() > 0 {
		out = append(out, left)
	}
	if right.Len() > 0 {
		out = append(out, right)
	}
	return out
}

func assembleMiddle(segments map[string]Route, entries []planEntry, cfg AssembleConfig, log logging.Logger) ([]Route, error) {
	out := New("overview")
	var prevSide Side
	havePrev := false
	for i, e := range entries {
		if !e.transition {
			pts, side := resolve(segments, e)
			out = out.Append(pts...)
			prevSide, havePrev = side, true
			continue
		}
		if !havePrev || i == len(entries)-1 {
			return nil, &ConfigurationError{
				Field:  "overview.plan",
				Reason: "transition marker must sit between two segments",
			}
		}
		next := entries[i+1]
		if next.transition {
			return nil, &ConfigurationError{
				Field:  "overview.plan",
				Reason: "consecutive transition markers",
			}
		}
		nextSide := SideOf(next.id)
		if nextSide == prevSide {
			log.Warn("skipping transition between same-side segments",
				logging.String("segment", next.id))
			continue
		}
		from := cfg.Middle.bySide(prevSide)
		to := cfg.Middle.bySide(nextSide)
		out = out.Append(
			Waypoint{Position: from.WithZ(from.Z + cfg.VerticalOffset), Tag: transitionToken},
			Waypoint{Position: to.WithZ(to.Z + cfg.VerticalOffset), Tag: transitionToken},
		)
		log.Debug("inserted middle transition",
			logging.String("from_side", string(prevSide)),
			logging.String("to_side", string(nextSide)))
	}
	return []Route{out}, nil
}

func assembleAuto(segments map[string]Route, entries []planEntry, cfg AssembleConfig, log logging.Logger) []Route {
	out := New("overview")
	var prevSide Side
	for _, e := range entries {
		if e.transition {
			log.Warn("ignoring transition marker in auto-elevated mode")
			continue
		}
		pts, side := resolve(segments, e)
		if len(pts) == 0 {
			continue
		}
		if out.Len() > 0 && side != prevSide {
			a := out.Last().Position
			b := pts[0].Position
			z := math.Max(a.Z, b.Z) + cfg.VerticalOffset
			out = out.Append(
				Waypoint{Position: a.WithZ(z), Tag: transitionToken},
				Waypoint{Position: b.WithZ(z), Tag: transitionToken},
			)
			log.Debug("inserted elevated transition",
				logging.String("to_segment", e.id),
				logging.Float("altitude", z))
		}
		out = out.Append(pts...)
		prevSide = side
	}
	return []Route{out}
}
