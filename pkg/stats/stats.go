// Package stats aggregates distance, waypoint counts and estimated flight
// time for planned routes, broken down by speed class.
package stats

import (
	"sort"
	"strings"

	"github.com/ChicagoDave/bridgeplanner/pkg/route"
)

// DefaultClass collects every waypoint whose tag matches no configured class.
const DefaultClass = "default"

// DefaultSpeed is the cruise fallback in m/s when no class speed is configured.
const DefaultSpeed = 2.0

// RouteStats describes one planned route.
type RouteStats struct {
	ID       string  `json:"id"`
	Points   int     `json:"points"`
	Distance float64 `json:"distance_m"`
	Duration float64 `json:"duration_s"`
}

// ClassStats aggregates every leg flown under one speed class.
type ClassStats struct {
	Name     string  `json:"name"`
	Points   int     `json:"points"`
	Distance float64 `json:"distance_m"`
	Speed    float64 `json:"speed_ms"`
	Duration float64 `json:"duration_s"`
}

// Summary is the complete statistics report for a plan.
type Summary struct {
	Routes   []RouteStats `json:"routes"`
	Classes  []ClassStats `json:"classes"`
	Points   int          `json:"points"`
	Distance float64      `json:"distance_m"`
	Duration float64      `json:"duration_s"`
}

// Summarize computes per-route and per-class flight statistics. Each leg is
// attributed to the class of the waypoint it leaves from, matching how
// per-waypoint speeds are applied on export, and flight time is the leg
// distance divided by the class speed.
func Summarize(routes []route.Route, speeds map[string]float64) Summary {
	sum := Summary{}
	classes := make(map[string]*ClassStats)

	for _, rt := range routes {
		rs := RouteStats{ID: rt.ID, Points: rt.Len()}
		for i, wp := range rt.Points {
			name := classifyTag(wp.Tag, speeds)
			cs := classes[name]
			if cs == nil {
				cs = &ClassStats{Name: name, Speed: classSpeed(name, speeds)}
				classes[name] = cs
			}
			cs.Points++
			if i == len(rt.Points)-1 {
				continue
			}
			leg := wp.Position.Distance(rt.Points[i+1].Position)
			cs.Distance += leg
			rs.Distance += leg
			if cs.Speed > 0 {
				cs.Duration += leg / cs.Speed
				rs.Duration += leg / cs.Speed
			}
		}
		sum.Points += rs.Points
		sum.Distance += rs.Distance
		sum.Duration += rs.Duration
		sum.Routes = append(sum.Routes, rs)
	}

	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sum.Classes = append(sum.Classes, *classes[name])
	}
	return sum
}

// classifyTag resolves a waypoint tag to a speed class. An exact key match
// wins, then the longest class name prefixing the tag, then the default.
func classifyTag(tag string, speeds map[string]float64) string {
	if _, ok := speeds[tag]; ok {
		return tag
	}
	best := ""
	for name := range speeds {
		if name == DefaultClass {
			continue
		}
		if strings.HasPrefix(tag, name) && len(name) > len(best) {
			best = name
		}
	}
	if best == "" {
		return DefaultClass
	}
	return best
}

func classSpeed(name string, speeds map[string]float64) float64 {
	if v, ok := speeds[name]; ok && v > 0 {
		return v
	}
	if v, ok := speeds[DefaultClass]; ok && v > 0 {
		return v
	}
	return DefaultSpeed
}
