package timing

import (
	"math"

	"github.com/lpetrov/scriptgate/internal/types"
)

// rebalanceTolerance is how far the summed estimates may drift from the
// target before proportional scaling kicks in.
const rebalanceTolerance = 0.10

// RebalanceResult carries the per-segment timings plus the scale factor
// that was applied (1.0 when estimates were adopted verbatim).
type RebalanceResult struct {
	Segments     []types.SegmentTiming `json:"segments"`
	EstimatedSec float64               `json:"estimatedSec"`
	TargetSec    float64               `json:"targetSec"`
	ScaleFactor  float64               `json:"scaleFactor"`
	Scaled       bool                  `json:"scaled"`
}

// Rebalance fits a flat list of segments to a target total duration.
// Estimates within tolerance of the target are adopted as-is;
// otherwise every estimate is scaled by target/total with the
// MinSegmentSec floor re-applied per segment. Floor clamping can push
// the final sum slightly above target; that overshoot is accepted
// rather than redistributed.
func Rebalance(segs []types.Segment, targetSec float64) RebalanceResult {
	out := RebalanceResult{
		Segments:    make([]types.SegmentTiming, 0, len(segs)),
		TargetSec:   targetSec,
		ScaleFactor: 1.0,
	}

	ests := make([]float64, len(segs))
	var total float64
	for i, s := range segs {
		ests[i] = EstimateSegment(s)
		total += ests[i]
	}
	out.EstimatedSec = round2(total)

	scale := 1.0
	if targetSec > 0 && total > 0 && math.Abs(total-targetSec) > rebalanceTolerance*targetSec {
		scale = targetSec / total
		out.Scaled = true
	}
	out.ScaleFactor = scale

	for i, s := range segs {
		dur := ests[i]
		if out.Scaled {
			dur = round2(ests[i] * scale)
			if dur < MinSegmentSec {
				dur = MinSegmentSec
			}
		}
		out.Segments = append(out.Segments, types.SegmentTiming{
			Title:             s.Title,
			DurationSeconds:   dur,
			EstimatedDuration: ests[i],
		})
	}
	return out
}
