// Package beatlint checks the rough beat/voiceover representation
// extracted early in the pipeline, before a full video document
// exists. It is deliberately separate from the final document lint:
// the two passes see different shapes with different guarantees and
// are not meant to share a rule set.
package beatlint

import (
	"fmt"
	"strings"

	"github.com/lpetrov/scriptgate/internal/types"
)

// Renderable patterns the structural checks know about.
const (
	PatternTitleBody = "title_body"
	PatternBarChart  = "bar_chart"
	PatternBigStat   = "big_stat"
)

const (
	voMinSec    = 1.5
	voMaxSec    = 12.0
	maxBodyLen  = 160
	minBars     = 2
	maxBars     = 6
	maxBarLabel = 18
)

// Bridge words that carry a viewer from one beat into the next.
var bridgeWords = []string{"So", "For example", "Next", "Meanwhile", "In short", "Then"}

type ruleFn func(i int, b types.RoughBeat) []types.Finding

// Registry of beat rules, evaluated in order for every beat.
var rules = []ruleFn{voDuration, voBridge, structural}

// Run evaluates every beat against the registry and returns all
// findings; like the document lint, rules never suppress each other.
func Run(beats []types.RoughBeat) []types.Finding {
	var out []types.Finding
	for i, b := range beats {
		for _, r := range rules {
			out = append(out, r(i, b)...)
		}
	}
	return out
}

// Report wraps the findings in the shared severity-split report shape.
func Report(beats []types.RoughBeat) types.Report {
	findings := Run(beats)
	rep := types.Report{Errors: []types.Finding{}, Warnings: []types.Finding{}}
	for _, f := range findings {
		if f.Severity == types.SeverityError {
			rep.Errors = append(rep.Errors, f)
			continue
		}
		rep.Warnings = append(rep.Warnings, f)
	}
	rep.Passed = len(rep.Errors) == 0
	rep.Summary = fmt.Sprintf("Beats: %d\nErrors: %d, warnings: %d", len(beats), len(rep.Errors), len(rep.Warnings))
	return rep
}

// estimateVOSec is the raw pace figure, without buffer or floor: the
// lower bound here sits under the aligner's 3s floor on purpose, so
// the full estimator cannot be reused.
func estimateVOSec(vo string) float64 {
	words := len(strings.Fields(vo))
	return float64(words) / 150 * 60
}

func voDuration(i int, b types.RoughBeat) []types.Finding {
	est := estimateVOSec(b.VO)
	id := beatID(i)
	switch {
	case est < voMinSec:
		return []types.Finding{warning("vo_short", id,
			fmt.Sprintf("voiceover estimates %.1fs, under %.1fs", est, voMinSec),
			"give the beat enough narration to register")}
	case est > voMaxSec:
		return []types.Finding{errorf("vo_long", id,
			fmt.Sprintf("voiceover estimates %.1fs, over %.1fs", est, voMaxSec),
			"split the beat or cut the narration")}
	}
	return nil
}

func voBridge(i int, b types.RoughBeat) []types.Finding {
	if i == 0 {
		return nil
	}
	vo := strings.TrimSpace(b.VO)
	for _, w := range bridgeWords {
		if strings.HasPrefix(vo, w) {
			return nil
		}
	}
	return []types.Finding{warning("vo_no_bridge", beatID(i),
		"voiceover does not open with a bridge word",
		"lead with So / Next / Then so beats connect")}
}

func structural(i int, b types.RoughBeat) []types.Finding {
	var out []types.Finding
	id := beatID(i)

	if strings.TrimSpace(b.Title) == "" {
		out = append(out, errorf("title_required", id, "beat has no title", ""))
	}

	switch b.Pattern {
	case PatternTitleBody:
		if strings.TrimSpace(b.Body) == "" {
			out = append(out, errorf("body_required", id, "title_body beat has no body", ""))
		} else if len(b.Body) > maxBodyLen {
			out = append(out, warning("body_length", id,
				fmt.Sprintf("body is %d characters (max %d)", len(b.Body), maxBodyLen),
				"tighten the body copy or move detail into the voiceover"))
		}
	case PatternBarChart:
		if n := len(b.Bars); n < minBars || n > maxBars {
			out = append(out, errorf("series_count", id,
				fmt.Sprintf("bar chart has %d bars; needs %d to %d", n, minBars, maxBars), ""))
		}
		for _, bar := range b.Bars {
			if len(bar.Label) > maxBarLabel {
				out = append(out, warning("bar_label_length", id,
					fmt.Sprintf("bar label %q is %d characters (max %d)", bar.Label, len(bar.Label), maxBarLabel),
					"abbreviate the label"))
			}
		}
	case PatternBigStat:
		if strings.TrimSpace(b.StatValue) == "" {
			out = append(out, errorf("stat_value_required", id, "big_stat beat has no stat value", ""))
		}
	}

	return out
}

func beatID(i int) string { return fmt.Sprintf("beat-%d", i+1) }

func errorf(rule, id, msg, suggestion string) types.Finding {
	return types.Finding{Category: "beats", Rule: rule, Severity: types.SeverityError, Message: msg, SceneID: id, Suggestion: suggestion}
}

func warning(rule, id, msg, suggestion string) types.Finding {
	return types.Finding{Category: "beats", Rule: rule, Severity: types.SeverityWarning, Message: msg, SceneID: id, Suggestion: suggestion}
}
