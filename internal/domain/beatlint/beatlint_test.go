package beatlint

import (
	"strings"
	"testing"

	"github.com/lpetrov/scriptgate/internal/types"
)

// fourWords estimates to 1.6s raw; thirtyOneWords to 12.4s.
var (
	fourWords      = "just enough narration here"
	thirtyOneWords = strings.Repeat("word ", 31)
)

func findBy(fs []types.Finding, rule string) *types.Finding {
	for i := range fs {
		if fs[i].Rule == rule {
			return &fs[i]
		}
	}
	return nil
}

func TestVODurationBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		vo       string
		rule     string
		severity string
	}{
		{name: "too short", vo: "three words only", rule: "vo_short", severity: types.SeverityWarning},
		{name: "in range", vo: fourWords},
		{name: "too long", vo: thirtyOneWords, rule: "vo_long", severity: types.SeverityError},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := voDuration(0, types.RoughBeat{VO: tc.vo})
			if tc.rule == "" {
				if len(got) != 0 {
					t.Fatalf("expected no findings, got %+v", got)
				}
				return
			}
			if len(got) != 1 || got[0].Rule != tc.rule || got[0].Severity != tc.severity {
				t.Fatalf("got %+v, want %s/%s", got, tc.rule, tc.severity)
			}
		})
	}
}

func TestVOBridge(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		idx  int
		vo   string
		want bool
	}{
		{name: "first beat never needs a bridge", idx: 0, vo: "Cold open line.", want: false},
		{name: "bridge present", idx: 1, vo: "For example, widgets shipped weekly.", want: false},
		{name: "then prefix", idx: 2, vo: "Then everything changed.", want: false},
		{name: "no bridge", idx: 1, vo: "Widgets shipped weekly.", want: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := voBridge(tc.idx, types.RoughBeat{VO: tc.vo})
			if (len(got) == 1) != tc.want {
				t.Fatalf("vo_no_bridge presence = %v, want %v (%+v)", len(got) == 1, tc.want, got)
			}
			if tc.want && got[0].Severity != types.SeverityWarning {
				t.Fatalf("vo_no_bridge must stay a warning, got %s", got[0].Severity)
			}
		})
	}
}

func TestStructuralChecks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		beat      types.RoughBeat
		wantRules []string
	}{
		{
			name:      "missing title",
			beat:      types.RoughBeat{Pattern: PatternTitleBody, Body: "b"},
			wantRules: []string{"title_required"},
		},
		{
			name:      "missing body",
			beat:      types.RoughBeat{Pattern: PatternTitleBody, Title: "t"},
			wantRules: []string{"body_required"},
		},
		{
			name:      "body too long",
			beat:      types.RoughBeat{Pattern: PatternTitleBody, Title: "t", Body: strings.Repeat("x", 161)},
			wantRules: []string{"body_length"},
		},
		{
			name:      "bar chart needs at least two bars",
			beat:      types.RoughBeat{Pattern: PatternBarChart, Title: "t", Bars: []types.BarDatum{{Label: "one"}}},
			wantRules: []string{"series_count"},
		},
		{
			name: "bar chart caps at six bars",
			beat: types.RoughBeat{Pattern: PatternBarChart, Title: "t", Bars: []types.BarDatum{
				{}, {}, {}, {}, {}, {}, {},
			}},
			wantRules: []string{"series_count"},
		},
		{
			name: "long bar label",
			beat: types.RoughBeat{Pattern: PatternBarChart, Title: "t", Bars: []types.BarDatum{
				{Label: "Q1"}, {Label: "a nineteen char lbl"},
			}},
			wantRules: []string{"bar_label_length"},
		},
		{
			name:      "stat value required",
			beat:      types.RoughBeat{Pattern: PatternBigStat, Title: "t"},
			wantRules: []string{"stat_value_required"},
		},
		{
			name:      "six bars is valid",
			beat:      types.RoughBeat{Pattern: PatternBarChart, Title: "t", Bars: []types.BarDatum{{}, {}, {}, {}, {}, {}}},
			wantRules: nil,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := structural(0, tc.beat)
			if len(got) != len(tc.wantRules) {
				t.Fatalf("got %+v, want rules %v", got, tc.wantRules)
			}
			for i, rule := range tc.wantRules {
				if got[i].Rule != rule {
					t.Fatalf("finding %d = %q, want %q", i, got[i].Rule, rule)
				}
			}
		})
	}
}

func TestReport_VerdictFollowsErrors(t *testing.T) {
	t.Parallel()

	clean := []types.RoughBeat{{Pattern: PatternBigStat, Title: "t", StatValue: "42%", VO: fourWords}}
	rep := Report(clean)
	if !rep.Passed || len(rep.Errors) != 0 {
		t.Fatalf("expected passing report, got %+v", rep)
	}

	broken := []types.RoughBeat{{Pattern: PatternBigStat, VO: thirtyOneWords}}
	rep = Report(broken)
	if rep.Passed {
		t.Fatalf("errors must fail the report")
	}
	if findBy(rep.Errors, "vo_long") == nil || findBy(rep.Errors, "title_required") == nil {
		t.Fatalf("expected vo_long and title_required, got %+v", rep.Errors)
	}
}
