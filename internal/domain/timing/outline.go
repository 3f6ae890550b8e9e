package timing

import (
	"fmt"
	"strings"

	"github.com/lpetrov/scriptgate/internal/types"
)

// Outline renders the aligned document as a Markdown production
// outline. It is a derived artifact: regenerated whole on every
// alignment, never edited in place.
func Outline(doc types.ScriptDocument) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", strings.TrimSpace(doc.Title))
	if doc.Logline != "" {
		fmt.Fprintf(&b, "_%s_\n\n", doc.Logline)
	}
	if doc.VideoSpecs.Format != "" {
		fmt.Fprintf(&b, "Format: %s\n\n", doc.VideoSpecs.Format)
	}

	fmt.Fprintf(&b, "Estimated total: %.2fs\n", doc.EstimatedTotalDurationSec)
	if doc.Meta != nil && doc.Meta.Overhead != nil {
		oh := doc.Meta.Overhead
		fmt.Fprintf(&b, "Gap overhead: %.2fs beats (%d), %.2fs scenes (%d), %.2fs acts (%d)\n",
			oh.BeatOverheadSec, oh.BeatGaps,
			oh.SceneOverheadSec, oh.SceneGaps,
			oh.ActOverheadSec, oh.ActGaps)
	}
	b.WriteString("\n")

	for _, act := range doc.Acts {
		fmt.Fprintf(&b, "## %s\n", act.Label)
		if act.Summary != "" {
			fmt.Fprintf(&b, "%s\n", act.Summary)
		}
		b.WriteString("\n")
	}

	for _, sc := range doc.Scenes {
		label := sc.Label
		if label == "" {
			label = fmt.Sprintf("Scene %d", sc.SceneNumber)
		}
		fmt.Fprintf(&b, "### %d. %s\n", sc.SceneNumber, label)
		if sc.Purpose != "" {
			fmt.Fprintf(&b, "Purpose: %s\n", sc.Purpose)
		}
		b.WriteString("\n")
		for bi, beat := range sc.Beats {
			fmt.Fprintf(&b, "- Beat %d [%s/%s] %.1fs: %s\n",
				bi+1, beat.VisualType, beat.RecommendedComponent,
				beat.DurationSec, oneLine(beat.Voiceover))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
