package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ChicagoDave/bridgeplanner/internal/logging"
	"github.com/ChicagoDave/bridgeplanner/internal/server"
	"github.com/ChicagoDave/bridgeplanner/pkg/offset"
	"github.com/ChicagoDave/bridgeplanner/pkg/plan"
	"github.com/ChicagoDave/bridgeplanner/pkg/route"
	"github.com/ChicagoDave/bridgeplanner/pkg/safety"
	"github.com/ChicagoDave/bridgeplanner/pkg/spec"
	"github.com/ChicagoDave/bridgeplanner/pkg/stats"
	"github.com/ChicagoDave/bridgeplanner/pkg/trajectory"
	"github.com/ChicagoDave/bridgeplanner/pkg/underdeck"
	"github.com/ChicagoDave/bridgeplanner/pkg/validation"
)

// loadMission reads the mission from a project directory or a YAML file.
func loadMission(path string) (*spec.Mission, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("loading mission: %w", err)
	}
	if info.IsDir() {
		return spec.LoadProject(path)
	}
	return spec.Load(path)
}

// loadAndValidate loads the mission and runs schema validation.
func loadAndValidate(path string) (*spec.Mission, *validation.Report, error) {
	m, err := loadMission(path)
	if err != nil {
		return nil, nil, err
	}
	return m, validation.ValidateMission(m), nil
}

func runValidate(path string) error {
	_, report, err := loadAndValidate(path)
	if err != nil {
		return err
	}
	printValidationReport(report)
	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runPlan(path, output string, log logging.Logger) error {
	doc, err := runPipeline(path, log)
	if err != nil {
		return err
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func runStats(path string, log logging.Logger) error {
	doc, err := runPipeline(path, log)
	if err != nil {
		return err
	}
	printStatsSummary(doc.Stats)
	return nil
}

// missionRunner packages the pipeline for the viewer server's refresh hook.
func missionRunner(path string, log logging.Logger) server.Runner {
	return func() (*plan.Document, error) {
		return runPipeline(path, log)
	}
}

// runPipeline executes the whole planning pipeline for one mission and
// assembles the plan document.
func runPipeline(path string, log logging.Logger) (*plan.Document, error) {
	m, report, err := loadAndValidate(path)
	if err != nil {
		return nil, err
	}
	if !report.Valid {
		printValidationReport(report)
		return nil, fmt.Errorf("mission has validation errors")
	}

	routes, err := buildRoutes(m, report, log)
	if err != nil {
		return nil, err
	}

	summary := stats.Summarize(routes, m.Output.Speeds)
	return plan.Assemble(m, routes, report, &summary), nil
}

// buildRoutes generates every route of the mission, assembles the overview,
// and runs all of them through the safety pipeline.
func buildRoutes(m *spec.Mission, report *validation.Report, log logging.Logger) ([]route.Route, error) {
	samples, err := trajectory.Resample(m.Trajectory.Points3D(), m.Trajectory.Samples)
	if err != nil {
		return nil, fmt.Errorf("resampling trajectory: %w", err)
	}

	piers := make([]trajectory.PierPair, len(m.Bridge.Piers))
	for i, p := range m.Bridge.Piers {
		piers[i] = trajectory.PierPair{A: p.A.Vec2(), B: p.B.Vec2()}
	}
	sections := trajectory.Sections(samples, piers)

	var underRoutes []route.Route
	var flythrough *route.Route
	if m.Underdeck.Enabled {
		var spans *underdeck.Spans
		underRoutes, spans = underdeck.Generate(m, samples, sections, log)

		mid := underdeck.MiddleSpan(m.Underdeck, len(sections))
		if fly, err := underdeck.SafeFlythrough(spans, mid); err != nil {
			log.Warn("safe flythrough unavailable", logging.Any("error", err))
		} else {
			flythrough = &fly
		}
	}

	var routes []route.Route

	if len(m.Overview.Plan) > 0 {
		segments, segReport := offset.BuildSegments(m, samples, log)
		report.Merge(segReport)
		if !report.Valid {
			printValidationReport(report)
			return nil, fmt.Errorf("overview geometry has validation errors")
		}
		if flythrough != nil {
			segments[flythrough.ID] = *flythrough
		}

		mode, err := route.ParseTransitionMode(m.Overview.Transition.Mode)
		if err != nil {
			return nil, err
		}
		anchors := offset.BuildMiddleAnchors(m, samples)
		overview, err := route.Assemble(segments, m.Overview.Plan, route.AssembleConfig{
			Mode:           mode,
			VerticalOffset: m.Overview.Transition.VerticalOffset,
			Middle:         &anchors,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("assembling overview: %w", err)
		}
		routes = append(routes, overview...)
	}

	routes = append(routes, underRoutes...)
	if m.Underdeck.Enabled && !m.Underdeck.Split {
		routes = append(routes, underdeck.Combine(underRoutes))
	}
	// The flythrough stays a standalone product unless the overview plan
	// already consumed it as a segment.
	if flythrough != nil && !planReferences(m.Overview.Plan, flythrough.ID) {
		routes = append(routes, *flythrough)
	}

	proc, err := safety.NewProcessor(m.Safety, m.Bridge.TakeoffAltitude, log)
	if err != nil {
		return nil, err
	}
	for i := range routes {
		processed, err := proc.Process(routes[i])
		if err != nil {
			return nil, fmt.Errorf("safety pipeline: %w", err)
		}
		routes[i] = processed.FixConnectionTags()
	}
	return routes, nil
}

// planReferences reports whether the overview plan consumes the given route
// ID as a segment.
func planReferences(entries []string, id string) bool {
	for _, raw := range entries {
		s := strings.TrimSpace(raw)
		if strings.HasPrefix(s, "r") {
			s = s[1:]
		}
		if s == id {
			return true
		}
	}
	return false
}
