package spec

import "github.com/ChicagoDave/bridgeplanner/pkg/geo"

// Mission is the top-level specification for one planning run.
type Mission struct {
	SpecVersion string     `yaml:"spec_version" json:"spec_version"`
	Name        string     `yaml:"name" json:"name"`
	Bridge      Bridge     `yaml:"bridge" json:"bridge"`
	Trajectory  Trajectory `yaml:"trajectory" json:"trajectory"`
	Overview    Overview   `yaml:"overview" json:"overview"`
	Underdeck   Underdeck  `yaml:"underdeck" json:"underdeck"`
	Safety      Safety     `yaml:"safety" json:"safety"`
	Output      Output     `yaml:"output" json:"output"`
}

// Bridge describes the structure being inspected.
type Bridge struct {
	Width           float64   `yaml:"width" json:"width"`
	TakeoffAltitude float64   `yaml:"takeoff_altitude" json:"takeoff_altitude"`
	Piers           []PierDef `yaml:"piers" json:"piers"`
}

// HalfWidth returns the lateral extent of the deck from the centerline.
func (b Bridge) HalfWidth() float64 {
	return b.Width / 2
}

// SpanCount returns the number of spans the piers divide the deck into.
func (b Bridge) SpanCount() int {
	return len(b.Piers) + 1
}

// PierDef is one support pair, given by its two footing positions.
type PierDef struct {
	A PointDef `yaml:"a" json:"a"`
	B PointDef `yaml:"b" json:"b"`
}

// PointDef is a coordinate triple in the projected mission frame.
type PointDef struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// Point3D converts the definition to a geometry point.
func (p PointDef) Point3D() geo.Point3D {
	return geo.P3(p.X, p.Y, p.Z)
}

// Vec2 projects the definition onto the ground plane.
func (p PointDef) Vec2() geo.Vec2 {
	return geo.V2(p.X, p.Y)
}

// Trajectory is the structure centerline plus the target sample count.
type Trajectory struct {
	Points  []PointDef `yaml:"points" json:"points"`
	Samples int        `yaml:"samples" json:"samples"`
}

// Points3D returns the raw centerline as geometry points.
func (t Trajectory) Points3D() []geo.Point3D {
	pts := make([]geo.Point3D, len(t.Points))
	for i, p := range t.Points {
		pts[i] = p.Point3D()
	}
	return pts
}

// Overview configures the side-parallel photogrammetry passes.
type Overview struct {
	Segments   []SegmentDef  `yaml:"segments" json:"segments"`
	Plan       []string      `yaml:"plan" json:"plan"`
	Transition TransitionDef `yaml:"transition" json:"transition"`
}

// SegmentByID returns the segment definition with the given ID, or nil.
func (o Overview) SegmentByID(id string) *SegmentDef {
	for i := range o.Segments {
		if o.Segments[i].ID == id {
			return &o.Segments[i]
		}
	}
	return nil
}

// SegmentDef configures one overview pass. Distance is the lateral margin
// beyond the deck half-width; the flown side is encoded in the ID.
type SegmentDef struct {
	ID       string  `yaml:"id" json:"id"`
	Distance float64 `yaml:"distance" json:"distance"`
	Height   float64 `yaml:"height" json:"height"`
	Angle    float64 `yaml:"angle" json:"angle"`
}

// TransitionDef selects how opposite-side segments are joined.
type TransitionDef struct {
	Mode             string  `yaml:"mode" json:"mode"`
	VerticalOffset   float64 `yaml:"vertical_offset" json:"vertical_offset"`
	HorizontalOffset float64 `yaml:"horizontal_offset" json:"horizontal_offset"`
}

// Underdeck configures the below-deck inspection pattern. The per-span
// slices (Clearances, HeightOffsets, BasePoints, Thresholds) must match the
// span count derived from the piers.
type Underdeck struct {
	Enabled          bool           `yaml:"enabled" json:"enabled"`
	Passes           int            `yaml:"passes" json:"passes"`
	ConnectionHeight float64        `yaml:"connection_height" json:"connection_height"`
	GeneralHeight    float64        `yaml:"general_height_offset" json:"general_height_offset"`
	Clearances       []float64      `yaml:"clearances" json:"clearances"`
	HeightOffsets    [][]float64    `yaml:"height_offsets" json:"height_offsets"`
	BasePoints       []int          `yaml:"base_points" json:"base_points"`
	Thresholds       []ThresholdDef `yaml:"thresholds" json:"thresholds"`
	Angles           []float64      `yaml:"angles" json:"angles"`
	Split            bool           `yaml:"split" json:"split"`
	Axial            bool           `yaml:"axial" json:"axial"`
	Girders          int            `yaml:"girders" json:"girders"`
	MiddleSpanIndex  *int           `yaml:"middle_span_index" json:"middle_span_index,omitempty"`
}

// ThresholdDef keeps base points away from a span's boundaries.
type ThresholdDef struct {
	Start float64 `yaml:"start" json:"start"`
	End   float64 `yaml:"end" json:"end"`
}

// Safety configures the avoidance pipeline and its zones.
type Safety struct {
	ResampleStep  float64   `yaml:"resample_step" json:"resample_step"`
	SimplifyAngle float64   `yaml:"simplify_angle" json:"simplify_angle"`
	Zones         []ZoneDef `yaml:"zones" json:"zones"`
}

// ZoneDef is one restricted volume: a closed polygon with a vertical band.
// Adjustment is required: 0 deletes points inside, -1 detours around the
// boundary, a positive value raises points to that altitude.
type ZoneDef struct {
	Name       string     `yaml:"name" json:"name"`
	Polygon    []PointDef `yaml:"polygon" json:"polygon"`
	ZMin       float64    `yaml:"z_min" json:"z_min"`
	ZMax       float64    `yaml:"z_max" json:"z_max"`
	Adjustment *float64   `yaml:"adjustment" json:"adjustment"`
}

// Vertices projects the zone polygon onto the ground plane.
func (z ZoneDef) Vertices() []geo.Vec2 {
	vs := make([]geo.Vec2, len(z.Polygon))
	for i, p := range z.Polygon {
		vs[i] = p.Vec2()
	}
	return vs
}

// Output carries export-facing knobs the core itself does not consume,
// except for the per-tag-class speeds used by the stats summary.
type Output struct {
	Speeds map[string]float64 `yaml:"speeds" json:"speeds"`
}
