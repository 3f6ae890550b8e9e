package timing

import (
	"math"
	"testing"

	"github.com/lpetrov/scriptgate/internal/types"
)

// tenWords estimates to 5.5s: 10 words at 150wpm = 4.0s + 1.5s buffer.
const tenWords = "one two three four five six seven eight nine ten"

func TestRebalance_WithinToleranceAdoptsEstimates(t *testing.T) {
	t.Parallel()

	// Narrative-only segments: a title would be read too and push each
	// estimate past 5.5s. Estimates sum to 16.5; target 16 is within 10%.
	segs := []types.Segment{
		{Narrative: tenWords},
		{Narrative: tenWords},
		{Narrative: tenWords},
	}
	res := Rebalance(segs, 16)

	if res.Scaled {
		t.Fatalf("expected verbatim adoption, got scaled result: %+v", res)
	}
	if res.ScaleFactor != 1.0 {
		t.Fatalf("scale factor = %v, want 1.0", res.ScaleFactor)
	}
	for i, st := range res.Segments {
		if st.DurationSeconds != 5.5 || st.EstimatedDuration != 5.5 {
			t.Fatalf("segment %d: got %+v, want 5.5/5.5", i, st)
		}
	}
}

func TestRebalance_ScalesTowardTarget(t *testing.T) {
	t.Parallel()

	segs := []types.Segment{
		{Narrative: tenWords}, {Narrative: tenWords}, {Narrative: tenWords},
		{Narrative: tenWords}, {Narrative: tenWords}, {Narrative: tenWords},
	}
	// Estimates sum to 33; target 66 forces scaling by 2.
	res := Rebalance(segs, 66)

	if !res.Scaled {
		t.Fatalf("expected scaling, got verbatim adoption")
	}
	if res.ScaleFactor != 2.0 {
		t.Fatalf("scale factor = %v, want 2.0", res.ScaleFactor)
	}
	var sum float64
	for _, st := range res.Segments {
		if st.DurationSeconds != 11 {
			t.Fatalf("scaled duration = %v, want 11", st.DurationSeconds)
		}
		if st.EstimatedDuration != 5.5 {
			t.Fatalf("original estimate lost: %v", st.EstimatedDuration)
		}
		sum += st.DurationSeconds
	}
	if math.Abs(sum-66) > 0.1*66 {
		t.Fatalf("scaled sum %v not within 10%% of target 66", sum)
	}
}

func TestRebalance_FloorClampMayOvershootTarget(t *testing.T) {
	t.Parallel()

	segs := []types.Segment{
		{Narrative: tenWords}, {Narrative: tenWords}, {Narrative: tenWords},
	}
	// Estimates sum to 16.5; target 8 would scale every segment to
	// ~2.67s, below the floor. Clamping pushes the sum above target;
	// that overshoot is accepted.
	res := Rebalance(segs, 8)

	if !res.Scaled {
		t.Fatalf("expected scaling")
	}
	var sum float64
	for _, st := range res.Segments {
		if st.DurationSeconds < MinSegmentSec {
			t.Fatalf("segment below floor: %v", st.DurationSeconds)
		}
		sum += st.DurationSeconds
	}
	if sum <= 8 {
		t.Fatalf("expected floor-clamped overshoot above target, sum=%v", sum)
	}
}

func TestRebalance_EmptyInput(t *testing.T) {
	t.Parallel()

	res := Rebalance(nil, 30)
	if len(res.Segments) != 0 || res.Scaled {
		t.Fatalf("unexpected result for empty input: %+v", res)
	}
}
