package plan

import (
	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
	"github.com/ChicagoDave/bridgeplanner/pkg/route"
	"github.com/ChicagoDave/bridgeplanner/pkg/stats"
	"github.com/ChicagoDave/bridgeplanner/pkg/validation"
)

// Kind identifies which part of the inspection a route covers.
type Kind string

const (
	KindOverview   Kind = "overview"
	KindUnderdeck  Kind = "underdeck"
	KindAxial      Kind = "axial"
	KindFlythrough Kind = "flythrough"
	KindCombined   Kind = "combined"
)

// Side identifies which side of the deck a route flies.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
	SideBoth  Side = "both"
)

// BoundingBox is the axis-aligned extent of the planned flight volume.
type BoundingBox struct {
	Min geo.Point3D `json:"min"`
	Max geo.Point3D `json:"max"`
}

// Entry is a single planned route in the document.
type Entry struct {
	ID       string           `json:"id"`
	Kind     Kind             `json:"kind"`
	Span     int              `json:"span,omitempty"`
	Side     Side             `json:"side"`
	Distance float64          `json:"distance_m"`
	Points   []route.Waypoint `json:"points"`
}

// Document is the complete plan output written to disk and served to viewers.
type Document struct {
	Metadata   Metadata           `json:"metadata"`
	Routes     []Entry            `json:"routes"`
	Groups     Groups             `json:"groups"`
	Validation *validation.Report `json:"validation,omitempty"`
	Stats      *stats.Summary     `json:"stats,omitempty"`
}

// Metadata holds plan-level information.
type Metadata struct {
	SpecVersion string      `json:"spec_version"`
	Mission     string      `json:"mission"`
	GeneratedAt string      `json:"generated_at"`
	Bounds      BoundingBox `json:"bounds"`
}

// Groups organizes route IDs by various axes for fast filtering.
type Groups struct {
	Kinds map[Kind][]string `json:"kinds"`
	Spans map[int][]string  `json:"spans"`
	Sides map[Side][]string `json:"sides"`
}

// NewDocument creates an empty plan document.
func NewDocument() *Document {
	return &Document{
		Routes: []Entry{},
		Groups: Groups{
			Kinds: make(map[Kind][]string),
			Spans: make(map[int][]string),
			Sides: make(map[Side][]string),
		},
	}
}
