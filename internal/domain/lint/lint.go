// Package lint gates a finalized video document on structural quality.
// Rule categories are independent pure functions over the document;
// every category always runs and their findings are concatenated, so
// one failing area never hides another.
package lint

import (
	"github.com/lpetrov/scriptgate/internal/types"
)

type categoryFn func(types.VideoDoc) []types.Finding

type category struct {
	name string
	fn   categoryFn
}

// Order is stable so reports are deterministic. Adding a category is
// one function plus one entry here.
var categories = []category{
	{name: "narrative", fn: narrativeRules},
	{name: "pacing", fn: pacingRules},
	{name: "design", fn: designRules},
	{name: "evidence", fn: evidenceRules},
	{name: "accessibility", fn: accessibilityRules},
}

// Run evaluates every rule category against the document and returns
// the union of all findings. The document is never mutated.
func Run(doc types.VideoDoc) []types.Finding {
	var out []types.Finding
	for _, c := range categories {
		out = append(out, c.fn(doc)...)
	}
	return out
}

// Evaluate runs all categories and aggregates the findings into a
// severity-split report with a pass/fail verdict.
func Evaluate(doc types.VideoDoc) types.Report {
	return BuildReport(doc, Run(doc))
}

func errf(category, rule, sceneID, msg, suggestion string) types.Finding {
	return types.Finding{
		Category:   category,
		Rule:       rule,
		Severity:   types.SeverityError,
		Message:    msg,
		SceneID:    sceneID,
		Suggestion: suggestion,
	}
}

func warnf(category, rule, sceneID, msg, suggestion string) types.Finding {
	return types.Finding{
		Category:   category,
		Rule:       rule,
		Severity:   types.SeverityWarning,
		Message:    msg,
		SceneID:    sceneID,
		Suggestion: suggestion,
	}
}
