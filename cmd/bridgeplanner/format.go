package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/ChicagoDave/bridgeplanner/pkg/stats"
	"github.com/ChicagoDave/bridgeplanner/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.SpecPath != "" {
				fmt.Printf("    -> %s = %v\n", e.SpecPath, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			if e.ConflictWith != "" {
				fmt.Printf("    conflicts with: %s\n", e.ConflictWith)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.SpecPath != "" {
				fmt.Printf("    -> %s = %v\n", w.SpecPath, w.ActualValue)
			}
			if w.Expected != "" {
				fmt.Printf("    expected: %s\n", w.Expected)
			}
			for _, s := range w.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printStatsSummary(s *stats.Summary) {
	if s == nil || len(s.Routes) == 0 {
		fmt.Println("No routes planned.")
		return
	}

	fmt.Println("Flight Statistics")
	fmt.Println("=================")
	fmt.Println()

	fmt.Printf("%-30s %8s %12s %10s %10s\n", "Class", "Points", "Distance", "Speed", "Duration")
	fmt.Printf("%-30s %8s %12s %10s %10s\n",
		strings.Repeat("-", 30), "--------", "------------", "----------", "----------")
	for _, c := range s.Classes {
		fmt.Printf("%-30s %8d %11.1fm %7.1fm/s %10s\n",
			c.Name, c.Points, c.Distance, c.Speed, formatDuration(c.Duration))
	}

	fmt.Println()
	fmt.Printf("%-30s %8s %12s %10s\n", "Route", "Points", "Distance", "Duration")
	fmt.Printf("%-30s %8s %12s %10s\n",
		strings.Repeat("-", 30), "--------", "------------", "----------")
	for _, rt := range s.Routes {
		fmt.Printf("%-30s %8d %11.1fm %10s\n",
			rt.ID, rt.Points, rt.Distance, formatDuration(rt.Duration))
	}

	fmt.Println()
	fmt.Printf("Total: %d waypoints, %.1f m, %s flight time\n",
		s.Points, s.Distance, formatDuration(s.Duration))
}

func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	return d.Round(time.Second).String()
}
