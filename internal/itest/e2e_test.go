//go:build integration

package itest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestE2E_AlignThenLint(t *testing.T) {
	repoRoot := mustRepoRoot(t)
	tmp := t.TempDir()

	script := filepath.Join(tmp, "script.json")
	if err := os.WriteFile(script, []byte(`{
	  "title": "E2E fixture",
	  "logline": "A short piece about widgets",
	  "videoSpecs": {"format": "9:16"},
	  "acts": [{"label": "Act I"}, {"label": "Act II"}],
	  "scenes": [
	    {"sceneNumber": 1, "purpose": "hook", "beats": [
	      {"beat": "open", "voiceover": "Widgets changed everything. Here is how.", "visualType": "TEXT", "recommendedComponent": "TitleCard"},
	      {"beat": "context", "voiceover": "Start with the numbers from last year.", "visualType": "CHART", "recommendedComponent": "BarChart"}
	    ]},
	    {"sceneNumber": 2, "purpose": "payoff", "beats": [
	      {"beat": "close", "voiceover": "So begin your own build next week.", "visualType": "TEXT", "recommendedComponent": "Card"}
	    ]}
	  ]
	}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	outline := filepath.Join(tmp, "outline.md")

	res := runCLI(t, repoRoot, []string{"align", script, "--outline", outline}, nil)
	if res.exitCode != 0 {
		t.Fatalf("align failed (%d):\n%s", res.exitCode, res.output)
	}
	if !strings.Contains(res.output, "aligned total:") {
		t.Fatalf("missing aligned total in output:\n%s", res.output)
	}

	aligned, err := os.ReadFile(script)
	if err != nil {
		t.Fatalf("read aligned script: %v", err)
	}
	total := gjson.GetBytes(aligned, "estimatedTotalDurationSec").Float()
	if total <= 0 {
		t.Fatalf("estimatedTotalDurationSec not set:\n%s", aligned)
	}
	// 3 beats across 2 scenes within 2 acts: 1 beat gap, 1 scene gap, 1 act gap.
	if gjson.GetBytes(aligned, "meta.overhead.beatGaps").Int() != 1 ||
		gjson.GetBytes(aligned, "meta.overhead.sceneGaps").Int() != 1 ||
		gjson.GetBytes(aligned, "meta.overhead.actGaps").Int() != 1 {
		t.Fatalf("unexpected overhead breakdown:\n%s", aligned)
	}
	if _, err := os.Stat(outline); err != nil {
		t.Fatalf("outline not written: %v", err)
	}

	// Idempotence across process runs: align again, totals identical.
	res = runCLI(t, repoRoot, []string{"align", script}, nil)
	if res.exitCode != 0 {
		t.Fatalf("re-align failed (%d):\n%s", res.exitCode, res.output)
	}
	realigned, err := os.ReadFile(script)
	if err != nil {
		t.Fatalf("read realigned script: %v", err)
	}
	if got := gjson.GetBytes(realigned, "estimatedTotalDurationSec").Float(); got != total {
		t.Fatalf("alignment not idempotent: %v then %v", total, got)
	}

	videoDoc := filepath.Join(tmp, "video.json")
	if err := os.WriteFile(videoDoc, []byte(`{
	  "story": {"controllingIdea": "Widgets changed everything", "targetDurationSec": 30, "arc": "discovery"},
	  "scenes": [
	    {"id": "s1", "role": "HOOK", "durationMs": 6000, "voiceover": {"text": "Widgets changed everything."}},
	    {"id": "s2", "role": "TURN", "durationMs": 4000, "voiceover": {"text": "Then the market flipped."}},
	    {"id": "s3", "role": "CTA", "durationMs": 5000, "voiceover": {"text": "Start building."}}
	  ]
	}`), 0o644); err != nil {
		t.Fatalf("write video doc: %v", err)
	}
	report := filepath.Join(tmp, "report.json")

	res = runCLI(t, repoRoot, []string{"lint", videoDoc, "--report", report}, nil)
	if res.exitCode != 0 {
		t.Fatalf("lint failed (%d):\n%s", res.exitCode, res.output)
	}
	if !strings.Contains(res.output, "RESULT: PASSED") {
		t.Fatalf("expected pass banner:\n%s", res.output)
	}
	rep, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !gjson.GetBytes(rep, "passed").Bool() {
		t.Fatalf("report verdict mismatch:\n%s", rep)
	}
}
