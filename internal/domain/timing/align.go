package timing

import (
	"fmt"

	"github.com/lpetrov/scriptgate/internal/types"
)

// GapConfig holds the presentation pause inserted between adjacent
// units at each level of the script hierarchy, in seconds.
type GapConfig struct {
	BeatGapSec  float64
	SceneGapSec float64
	ActGapSec   float64
}

func DefaultGaps() GapConfig {
	return GapConfig{BeatGapSec: 0.5, SceneGapSec: 1.0, ActGapSec: 2.0}
}

// AlignResult reports the totals computed by one alignment run.
type AlignResult struct {
	BeatsSum         float64
	TotalOverheadSec float64
	TotalSec         float64
	Overhead         types.Overhead
}

// Align recomputes every beat duration (estimating from voiceover where
// none was supplied), accounts for inter-unit gap overhead, and writes
// the breakdown plus the aligned total back into the document.
// Running it again on an already-aligned document with unchanged
// durations and gaps reproduces identical totals.
func Align(doc *types.ScriptDocument, gaps GapConfig) AlignResult {
	// Guardrails keep callers safe from bad config; a negative gap is
	// never meaningful.
	if gaps.BeatGapSec < 0 {
		gaps.BeatGapSec = 0
	}
	if gaps.SceneGapSec < 0 {
		gaps.SceneGapSec = 0
	}
	if gaps.ActGapSec < 0 {
		gaps.ActGapSec = 0
	}

	var beatsSum float64
	beatGaps := 0
	for si := range doc.Scenes {
		sc := &doc.Scenes[si]
		for bi := range sc.Beats {
			b := &sc.Beats[bi]
			if b.DurationSec <= 0 {
				b.DurationSec = Estimate(b.Voiceover, DefaultWordsPerMinute, DefaultBufferSec)
			}
			beatsSum += b.DurationSec
		}
		if n := len(sc.Beats); n > 1 {
			beatGaps += n - 1
		}
	}

	sceneGaps := 0
	if n := len(doc.Scenes); n > 1 {
		sceneGaps = n - 1
	}
	actGaps := 0
	if n := len(doc.Acts); n > 1 {
		actGaps = n - 1
	}

	oh := types.Overhead{
		BeatGaps:         beatGaps,
		SceneGaps:        sceneGaps,
		ActGaps:          actGaps,
		BeatOverheadSec:  round2(float64(beatGaps) * gaps.BeatGapSec),
		SceneOverheadSec: round2(float64(sceneGaps) * gaps.SceneGapSec),
		ActOverheadSec:   round2(float64(actGaps) * gaps.ActGapSec),
	}
	totalOverhead := round2(oh.BeatOverheadSec + oh.SceneOverheadSec + oh.ActOverheadSec)
	total := round2(beatsSum + totalOverhead)

	if doc.Meta == nil {
		doc.Meta = &types.Meta{}
	}
	doc.Meta.Overhead = &oh
	doc.EstimatedTotalDurationSec = total

	return AlignResult{
		BeatsSum:         beatsSum,
		TotalOverheadSec: totalOverhead,
		TotalSec:         total,
		Overhead:         oh,
	}
}

// ApplyOverrides mutates the targeted beats and then realigns the
// document. Referencing a scene or beat that does not exist is an
// input error; the document is left unaligned in that case.
func ApplyOverrides(doc *types.ScriptDocument, gaps GapConfig, ovs []types.BeatOverride) (AlignResult, error) {
	for _, ov := range ovs {
		if err := applyOne(doc, ov); err != nil {
			return AlignResult{}, err
		}
	}
	return Align(doc, gaps), nil
}

func applyOne(doc *types.ScriptDocument, ov types.BeatOverride) error {
	if ov.DurationSec <= 0 {
		return fmt.Errorf("override scene %d beat %d: duration must be > 0, got %v", ov.Scene, ov.Beat, ov.DurationSec)
	}
	for si := range doc.Scenes {
		sc := &doc.Scenes[si]
		if sc.SceneNumber != ov.Scene {
			continue
		}
		if ov.Beat < 1 || ov.Beat > len(sc.Beats) {
			return fmt.Errorf("override scene %d: beat %d does not exist (scene has %d beats)", ov.Scene, ov.Beat, len(sc.Beats))
		}
		sc.Beats[ov.Beat-1].DurationSec = ov.DurationSec
		return nil
	}
	return fmt.Errorf("override: scene %d does not exist", ov.Scene)
}
