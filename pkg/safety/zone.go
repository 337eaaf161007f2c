package safety

import (
	"fmt"

	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
	"github.com/ChicagoDave/bridgeplanner/pkg/spec"
)

// Adjustment policies. Any other positive value raises caught points to that
// altitude above the reference.
const (
	AdjustDelete = 0
	AdjustDetour = -1
)

const (
	// vertexTol collapses consecutive zone vertices closer than this
	// during polygon repair.
	vertexTol = 1e-6

	// boundaryTol is the shell around the zone boundary excluded from
	// membership, so points sitting exactly on the polygon, such as
	// detour samples, never count as violations.
	boundaryTol = 1e-6
)

// Zone is one restricted volume ready for membership tests: a repaired
// planar polygon, a vertical band relative to the reference altitude, and
// the adjustment policy applied to points caught inside.
type Zone struct {
	Name       string
	Polygon    geo.Polygon
	ZMin       float64
	ZMax       float64
	Adjustment float64
}

// InvalidZonePolygonError reports a zone footprint the pipeline cannot use.
type InvalidZonePolygonError struct {
	Zone   string
	Reason string
}

func (e *InvalidZonePolygonError) Error() string {
	return fmt.Sprintf("safety zone %q: %s", e.Zone, e.Reason)
}

// ConfigurationError reports safety configuration the pipeline cannot act on.
type ConfigurationError struct {
	Zone   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Zone == "" {
		return "safety configuration: " + e.Reason
	}
	return fmt.Sprintf("safety zone %q: %s", e.Zone, e.Reason)
}

// ZonesFromSpec builds the runtime zone list, repairing each polygon and
// rejecting configurations the pipeline could not act on later.
func ZonesFromSpec(s spec.Safety) ([]Zone, error) {
	zones := make([]Zone, 0, len(s.Zones))
	for i, def := range s.Zones {
		z, err := buildZone(i, def)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}

func buildZone(i int, def spec.ZoneDef) (Zone, error) {
	name := def.Name
	if name == "" {
		name = fmt.Sprintf("zone %d", i+1)
	}

	poly := geo.NewPolygon(def.Vertices()...).DedupeVertices(vertexTol)
	if poly.Len() < 3 {
		return Zone{}, &InvalidZonePolygonError{Zone: name, Reason: "fewer than 3 distinct vertices"}
	}
	if poly.SelfIntersects() {
		return Zone{}, &InvalidZonePolygonError{Zone: name, Reason: "polygon self-intersects"}
	}

	if def.Adjustment == nil {
		return Zone{}, &ConfigurationError{Zone: name, Reason: "adjustment is required"}
	}
	adj := *def.Adjustment
	if adj < 0 && adj != AdjustDetour {
		return Zone{}, &ConfigurationError{Zone: name, Reason: fmt.Sprintf("unrecognised adjustment %v", adj)}
	}
	if adj > 0 && adj > def.ZMin && adj < def.ZMax {
		return Zone{}, &ConfigurationError{
			Zone:   name,
			Reason: fmt.Sprintf("raise altitude %v lies inside the restricted band [%v, %v]", adj, def.ZMin, def.ZMax),
		}
	}

	return Zone{
		Name:       name,
		Polygon:    poly,
		ZMin:       def.ZMin,
		ZMax:       def.ZMax,
		Adjustment: adj,
	}, nil
}

// Contains reports whether the point violates the zone: inside the footprint
// and within the vertical band, with the band shifted by the reference
// altitude. Both band ends are inclusive.
func (z Zone) Contains(p geo.Point3D, reference float64) bool {
	if p.Z < z.ZMin+reference || p.Z > z.ZMax+reference {
		return false
	}
	return z.ContainsXY(p.XY())
}

// ContainsXY reports planar membership: strictly inside the footprint and
// clear of the boundary shell.
func (z Zone) ContainsXY(v geo.Vec2) bool {
	if !z.Polygon.Contains(v) {
		return false
	}
	_, _, dist := z.Polygon.ProjectOntoBoundary(v)
	return dist > boundaryTol
}
