package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lpetrov/scriptgate/internal/domain/timing"
	"github.com/lpetrov/scriptgate/internal/ports"
	"github.com/lpetrov/scriptgate/internal/ports/adapters/fsdoc"
	"github.com/lpetrov/scriptgate/internal/types"
	"github.com/lpetrov/scriptgate/internal/usecase"
)

type AlignConfig struct {
	ScriptPath  string
	OutPath     string // empty aligns in place
	OutlinePath string

	BeatGapSec  float64
	SceneGapSec float64
	ActGapSec   float64

	// Overrides holds explicit beat assignments; OverridesPath points
	// at a batch file in the {"beats": [...]} shape. Both may be set;
	// the batch is appended after the explicit ones.
	Overrides     []types.BeatOverride
	OverridesPath string

	Logf func(format string, args ...any)
}

func (c AlignConfig) Validate() error {
	if c.ScriptPath == "" {
		return errors.New("script path is empty")
	}
	if _, err := os.Stat(c.ScriptPath); err != nil {
		return fmt.Errorf("stat script: %w", err)
	}
	if c.BeatGapSec < 0 || c.SceneGapSec < 0 || c.ActGapSec < 0 {
		return fmt.Errorf("gap seconds must be >= 0")
	}
	for i, ov := range c.Overrides {
		if ov.Scene < 1 || ov.Beat < 1 {
			return fmt.Errorf("override %d: scene and beat are 1-based, got scene=%d beat=%d", i, ov.Scene, ov.Beat)
		}
		if ov.DurationSec <= 0 {
			return fmt.Errorf("override %d: duration must be > 0", i)
		}
	}
	return nil
}

// Align runs the timing alignment flow end to end: load, apply
// overrides, recompute durations and overhead, persist the document
// and its outline.
func Align(ctx context.Context, cfg AlignConfig) (timing.AlignResult, error) {
	if err := cfg.Validate(); err != nil {
		return timing.AlignResult{}, fmt.Errorf("config: %w", err)
	}
	docs := fsdoc.New()
	overrides := cfg.Overrides
	if cfg.OverridesPath != "" {
		batch, err := docs.LoadOverrides(ctx, cfg.OverridesPath)
		if err != nil {
			return timing.AlignResult{}, err
		}
		overrides = append(overrides, batch...)
	}
	uc := usecase.New(usecase.Deps{Docs: docs})
	return uc.AlignScript(ctx, usecase.AlignInput{
		ScriptPath:  cfg.ScriptPath,
		OutPath:     cfg.OutPath,
		OutlinePath: cfg.OutlinePath,
		Gaps: timing.GapConfig{
			BeatGapSec:  cfg.BeatGapSec,
			SceneGapSec: cfg.SceneGapSec,
			ActGapSec:   cfg.ActGapSec,
		},
		Overrides: overrides,
		Logf:      cfg.Logf,
	})
}

type RebalanceConfig struct {
	SegmentsPath string
	TargetSec    float64
	OutPath      string

	Logf func(format string, args ...any)
}

func (c RebalanceConfig) Validate() error {
	if c.SegmentsPath == "" {
		return errors.New("segments path is empty")
	}
	if _, err := os.Stat(c.SegmentsPath); err != nil {
		return fmt.Errorf("stat segments: %w", err)
	}
	if c.TargetSec <= 0 {
		return fmt.Errorf("target duration must be > 0, got %v", c.TargetSec)
	}
	return nil
}

// Rebalance fits an extracted segment list to a target total duration.
func Rebalance(ctx context.Context, cfg RebalanceConfig) (timing.RebalanceResult, error) {
	if err := cfg.Validate(); err != nil {
		return timing.RebalanceResult{}, fmt.Errorf("config: %w", err)
	}
	uc := newUsecase()
	return uc.RebalanceSegments(ctx, usecase.RebalanceInput{
		SegmentsPath: cfg.SegmentsPath,
		TargetSec:    cfg.TargetSec,
		OutPath:      cfg.OutPath,
		Logf:         cfg.Logf,
	})
}

type EstimateConfig struct {
	SegmentsPath string

	Logf func(format string, args ...any)
}

func (c EstimateConfig) Validate() error {
	if c.SegmentsPath == "" {
		return errors.New("segments path is empty")
	}
	if _, err := os.Stat(c.SegmentsPath); err != nil {
		return fmt.Errorf("stat segments: %w", err)
	}
	return nil
}

// EstimateTotal aggregates the expected duration of a segment list.
func EstimateTotal(ctx context.Context, cfg EstimateConfig) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	uc := newUsecase()
	return uc.EstimateSegments(ctx, usecase.EstimateInput{
		SegmentsPath: cfg.SegmentsPath,
		Logf:         cfg.Logf,
	})
}

type LintConfig struct {
	DocPath    string
	ReportPath string

	Logf func(format string, args ...any)
}

func (c LintConfig) Validate() error {
	if c.DocPath == "" {
		return errors.New("document path is empty")
	}
	if _, err := os.Stat(c.DocPath); err != nil {
		return fmt.Errorf("stat document: %w", err)
	}
	return nil
}

// Lint gates a finalized video document.
func Lint(ctx context.Context, cfg LintConfig) (types.Report, error) {
	if err := cfg.Validate(); err != nil {
		return types.Report{}, fmt.Errorf("config: %w", err)
	}
	uc := newUsecase()
	return uc.LintVideoDoc(ctx, usecase.LintInput{
		DocPath:    cfg.DocPath,
		ReportPath: cfg.ReportPath,
		Logf:       cfg.Logf,
	})
}

// LintBeats runs the early beat/VO pass.
func LintBeats(ctx context.Context, cfg LintConfig) (types.Report, error) {
	if err := cfg.Validate(); err != nil {
		return types.Report{}, fmt.Errorf("config: %w", err)
	}
	uc := newUsecase()
	return uc.LintBeats(ctx, usecase.LintInput{
		DocPath:    cfg.DocPath,
		ReportPath: cfg.ReportPath,
		Logf:       cfg.Logf,
	})
}

func newUsecase() usecase.Usecase {
	return usecase.New(usecase.Deps{Docs: fsdoc.New()})
}

// ensure the adapter implements the port
var _ ports.DocStore = (*fsdoc.Adapter)(nil)
