package usecase

import (
	"context"

	"github.com/lpetrov/scriptgate/internal/domain/beatlint"
	"github.com/lpetrov/scriptgate/internal/domain/lint"
	"github.com/lpetrov/scriptgate/internal/domain/timing"
	"github.com/lpetrov/scriptgate/internal/ports"
	"github.com/lpetrov/scriptgate/internal/types"
)

type Deps struct {
	Docs ports.DocStore
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type AlignInput struct {
	ScriptPath  string
	OutPath     string // defaults to ScriptPath (align in place)
	OutlinePath string // no outline written when empty
	Gaps        timing.GapConfig
	// Overrides are applied to the targeted beats before alignment
	// recomputes the totals. Empty means plain alignment.
	Overrides []types.BeatOverride
	Logf      func(format string, args ...any)
}

// AlignScript loads a script document, applies any explicit timing
// overrides, realigns durations and overhead, and persists the
// document plus its derived outline.
func (u Usecase) AlignScript(ctx context.Context, in AlignInput) (timing.AlignResult, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	doc, raw, err := u.d.Docs.LoadScript(ctx, in.ScriptPath)
	if err != nil {
		return timing.AlignResult{}, err
	}

	var res timing.AlignResult
	if len(in.Overrides) > 0 {
		logf("applying %d timing override(s)", len(in.Overrides))
		res, err = timing.ApplyOverrides(&doc, in.Gaps, in.Overrides)
		if err != nil {
			return timing.AlignResult{}, err
		}
	} else {
		res = timing.Align(&doc, in.Gaps)
	}
	logf("aligned: %.2fs beats + %.2fs overhead = %.2fs", res.BeatsSum, res.TotalOverheadSec, res.TotalSec)

	out := in.OutPath
	if out == "" {
		out = in.ScriptPath
	}
	if err := u.d.Docs.SaveScript(ctx, out, raw, doc); err != nil {
		return timing.AlignResult{}, err
	}
	if in.OutlinePath != "" {
		if err := u.d.Docs.WriteOutline(ctx, in.OutlinePath, timing.Outline(doc)); err != nil {
			return timing.AlignResult{}, err
		}
		logf("outline: %s", in.OutlinePath)
	}
	return res, nil
}

type RebalanceInput struct {
	SegmentsPath string
	TargetSec    float64
	OutPath      string // no file written when empty
	Logf         func(format string, args ...any)
}

// RebalanceSegments fits a flat segment list to a target duration and
// optionally persists the per-segment timings.
func (u Usecase) RebalanceSegments(ctx context.Context, in RebalanceInput) (timing.RebalanceResult, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	segs, err := u.d.Docs.LoadSegments(ctx, in.SegmentsPath)
	if err != nil {
		return timing.RebalanceResult{}, err
	}
	res := timing.Rebalance(segs, in.TargetSec)
	if res.Scaled {
		logf("scaled %d segments by %.3f toward %.1fs", len(res.Segments), res.ScaleFactor, in.TargetSec)
	} else {
		logf("estimates within tolerance of %.1fs, adopted verbatim", in.TargetSec)
	}

	if in.OutPath != "" {
		if err := u.d.Docs.SaveJSON(ctx, in.OutPath, res); err != nil {
			return timing.RebalanceResult{}, err
		}
	}
	return res, nil
}

type EstimateInput struct {
	SegmentsPath string
	Logf         func(format string, args ...any)
}

// EstimateSegments aggregates a document's total duration, trusting
// supplied audio durations over estimation per segment.
func (u Usecase) EstimateSegments(ctx context.Context, in EstimateInput) (float64, error) {
	segs, err := u.d.Docs.LoadSegments(ctx, in.SegmentsPath)
	if err != nil {
		return 0, err
	}
	total := timing.EstimateTotal(segs)
	if in.Logf != nil {
		in.Logf("estimated %d segments: %.2fs", len(segs), total)
	}
	return total, nil
}

type LintInput struct {
	DocPath    string
	ReportPath string // no file written when empty
	Logf       func(format string, args ...any)
}

// LintVideoDoc gates a finalized video document and optionally writes
// the report. Findings are data, never errors: a failing document
// still returns a nil error.
func (u Usecase) LintVideoDoc(ctx context.Context, in LintInput) (types.Report, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	doc, err := u.d.Docs.LoadVideoDoc(ctx, in.DocPath)
	if err != nil {
		return types.Report{}, err
	}
	rep := lint.Evaluate(doc)
	logf("lint: %d error(s), %d warning(s)", len(rep.Errors), len(rep.Warnings))

	if in.ReportPath != "" {
		if err := u.d.Docs.SaveReport(ctx, in.ReportPath, rep); err != nil {
			return types.Report{}, err
		}
	}
	return rep, nil
}

// LintBeats runs the early beat/VO pass over an extracted beat list.
func (u Usecase) LintBeats(ctx context.Context, in LintInput) (types.Report, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	beats, err := u.d.Docs.LoadBeats(ctx, in.DocPath)
	if err != nil {
		return types.Report{}, err
	}
	rep := beatlint.Report(beats)
	logf("beat lint: %d error(s), %d warning(s)", len(rep.Errors), len(rep.Warnings))

	if in.ReportPath != "" {
		if err := u.d.Docs.SaveReport(ctx, in.ReportPath, rep); err != nil {
			return types.Report{}, err
		}
	}
	return rep, nil
}
