package lint

import (
	"fmt"
	"strings"

	"github.com/lpetrov/scriptgate/internal/types"
)

const ideaPreviewRunes = 60

// BuildReport splits findings by severity and renders the human
// summary. The verdict is strict: one error fails the gate; warnings
// never do.
func BuildReport(doc types.VideoDoc, findings []types.Finding) types.Report {
	rep := types.Report{
		Errors:   []types.Finding{},
		Warnings: []types.Finding{},
	}
	for _, f := range findings {
		if f.Severity == types.SeverityError {
			rep.Errors = append(rep.Errors, f)
			continue
		}
		rep.Warnings = append(rep.Warnings, f)
	}
	rep.Passed = len(rep.Errors) == 0
	rep.Summary = summarize(doc, rep)
	return rep
}

func summarize(doc types.VideoDoc, rep types.Report) string {
	var b strings.Builder

	var actualSec float64
	for _, sc := range doc.Scenes {
		actualSec += float64(sc.DurationMs) / 1000
	}

	fmt.Fprintf(&b, "Idea: %s\n", truncateRunes(doc.Story.ControllingIdea, ideaPreviewRunes))
	fmt.Fprintf(&b, "Duration: %.1fs actual vs %.1fs target\n", actualSec, doc.Story.TargetDurationSec)
	arc := doc.Story.Arc
	if arc == "" {
		arc = "unspecified"
	}
	fmt.Fprintf(&b, "Scenes: %d (arc: %s)\n", len(doc.Scenes), arc)
	fmt.Fprintf(&b, "Errors: %d, warnings: %d\n", len(rep.Errors), len(rep.Warnings))
	if rep.Passed {
		b.WriteString("RESULT: PASSED")
	} else {
		b.WriteString("RESULT: FAILED")
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "..."
}
