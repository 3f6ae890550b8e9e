package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lpetrov/scriptgate/internal/types"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	return p
}

func TestAlignConfig_Validate(t *testing.T) {
	t.Parallel()

	script := writeTemp(t, "script.json", `{"title":"t","scenes":[]}`)

	cases := []struct {
		name    string
		cfg     AlignConfig
		wantErr string
	}{
		{name: "ok", cfg: AlignConfig{ScriptPath: script}},
		{name: "empty path", cfg: AlignConfig{}, wantErr: "script path is empty"},
		{name: "missing file", cfg: AlignConfig{ScriptPath: "nope.json"}, wantErr: "stat script"},
		{name: "negative gap", cfg: AlignConfig{ScriptPath: script, BeatGapSec: -1}, wantErr: "gap seconds"},
		{
			name:    "zero-based override",
			cfg:     AlignConfig{ScriptPath: script, Overrides: []types.BeatOverride{{Scene: 0, Beat: 1, DurationSec: 5}}},
			wantErr: "1-based",
		},
		{
			name:    "non-positive override duration",
			cfg:     AlignConfig{ScriptPath: script, Overrides: []types.BeatOverride{{Scene: 1, Beat: 1}}},
			wantErr: "duration must be > 0",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestAlign_EndToEnd(t *testing.T) {
	t.Parallel()

	script := writeTemp(t, "script.json", `{
	  "title": "Pipeline fixture",
	  "videoSpecs": {"format": "9:16"},
	  "scenes": [
	    {"sceneNumber": 1, "beats": [
	      {"beat": "a", "voiceover": "v", "visualType": "TEXT", "recommendedComponent": "Card", "durationSec": 6},
	      {"beat": "b", "voiceover": "v", "visualType": "CHART", "recommendedComponent": "Bar", "durationSec": 6}
	    ]}
	  ]
	}`)
	outline := filepath.Join(filepath.Dir(script), "outline.md")

	res, err := Align(context.Background(), AlignConfig{
		ScriptPath:  script,
		OutlinePath: outline,
		BeatGapSec:  0.5,
		SceneGapSec: 1.0,
		ActGapSec:   2.0,
	})
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	// 12s of beats plus a single 0.5s beat gap.
	if res.TotalSec != 12.5 {
		t.Fatalf("total = %v, want 12.5", res.TotalSec)
	}

	b, err := os.ReadFile(script)
	if err != nil {
		t.Fatalf("read aligned: %v", err)
	}
	if !strings.Contains(string(b), `"estimatedTotalDurationSec":12.5`) {
		t.Fatalf("aligned total not persisted:\n%s", b)
	}
	if _, err := os.Stat(outline); err != nil {
		t.Fatalf("outline not written: %v", err)
	}
}

func TestRebalanceConfig_RequiresPositiveTarget(t *testing.T) {
	t.Parallel()

	segs := writeTemp(t, "segments.json", `[]`)
	err := RebalanceConfig{SegmentsPath: segs, TargetSec: 0}.Validate()
	if err == nil || !strings.Contains(err.Error(), "target duration") {
		t.Fatalf("expected target validation error, got %v", err)
	}
}

func TestLint_EndToEnd(t *testing.T) {
	t.Parallel()

	doc := writeTemp(t, "video.json", `{
	  "story": {"controllingIdea": "x", "targetDurationSec": 30, "arc": "discovery"},
	  "scenes": [
	    {"id": "s1", "role": "HOOK", "durationMs": 8000, "voiceover": {"text": "hi"}},
	    {"id": "s2", "role": "TURN", "durationMs": 8000, "voiceover": {"text": "turn"}},
	    {"id": "s3", "role": "CTA", "durationMs": 8000, "voiceover": {"text": "go"}}
	  ]
	}`)
	report := filepath.Join(filepath.Dir(doc), "report.json")

	rep, err := Lint(context.Background(), LintConfig{DocPath: doc, ReportPath: report})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	// TURN closes at 66% -> warning, but nothing error-severity.
	if !rep.Passed {
		t.Fatalf("expected pass, got %+v", rep)
	}
	if _, err := os.Stat(report); err != nil {
		t.Fatalf("report not written: %v", err)
	}
}
