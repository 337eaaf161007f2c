package underdeck

import (
	"github.com/ChicagoDave/bridgeplanner/pkg/geo"
	"github.com/ChicagoDave/bridgeplanner/pkg/spec"
	"github.com/ChicagoDave/bridgeplanner/pkg/trajectory"
)

// BasePoints places each span's configured number of inspection stations
// along the sampled trajectory, keeping the start/end thresholds clear of
// the piers. Stations sit at even intervals of the effective span length; a
// single-station span sits at the effective start. A span whose thresholds
// consume it entirely gets no stations. Distances accumulate along the flown
// 3-D path.
func BasePoints(samples *trajectory.Sampled, sections []trajectory.Section, u spec.Underdeck) [][]geo.Point3D {
	spans := make([][]geo.Point3D, len(sections))
	spanStart := 0.0

	for s, sec := range sections {
		spanEnd := spanStart + sec.Length

		var thStart, thEnd float64
		if s < len(u.Thresholds) {
			thStart, thEnd = u.Thresholds[s].Start, u.Thresholds[s].End
		}
		count := 0
		if s < len(u.BasePoints) {
			count = u.BasePoints[s]
		}

		effStart := spanStart + thStart
		effLen := (spanEnd - thEnd) - effStart
		if effLen > 0 && count > 0 {
			interval := effLen
			if count > 1 {
				interval = effLen / float64(count-1)
			}
			spans[s] = walkChainages(samples.Points, effStart, interval, count)
		}

		spanStart = spanEnd
	}
	return spans
}

// walkChainages walks the polyline from its start, interpolating a point at
// every chainage start + k*interval until count points are placed or the
// polyline ends.
func walkChainages(points []geo.Point3D, start, interval float64, count int) []geo.Point3D {
	out := make([]geo.Point3D, 0, count)
	accumulated := 0.0

	for i := 1; i < len(points) && len(out) < count; i++ {
		segLen := points[i-1].Distance(points[i])
		if segLen < 1e-12 {
			continue
		}
		for len(out) < count && accumulated+segLen >= start+float64(len(out))*interval {
			into := start + float64(len(out))*interval - accumulated
			out = append(out, points[i-1].Lerp(points[i], into/segLen))
		}
		accumulated += segLen
	}
	return out
}
