package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lpetrov/scriptgate/internal/domain/timing"
	"github.com/lpetrov/scriptgate/internal/pipeline"
	"github.com/lpetrov/scriptgate/internal/types"
)

const defaultConfigFile = ".scriptgate.yaml"

const runTimeout = 5 * time.Minute

func runAlign(cmd *cobra.Command, script string, overrides []types.BeatOverride, batchPath string) error {
	gaps, err := resolveGaps(cmd)
	if err != nil {
		return err
	}
	outPath, _ := cmd.Flags().GetString("out")
	outlinePath, _ := cmd.Flags().GetString("outline")

	ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
	defer cancel()

	res, err := pipeline.Align(ctx, pipeline.AlignConfig{
		ScriptPath:    script,
		OutPath:       outPath,
		OutlinePath:   outlinePath,
		BeatGapSec:    gaps.BeatGapSec,
		SceneGapSec:   gaps.SceneGapSec,
		ActGapSec:     gaps.ActGapSec,
		Overrides:     overrides,
		OverridesPath: batchPath,
		Logf:          logfTo(cmd),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "aligned total: %.2fs (%.2fs beats + %.2fs overhead)\n",
		res.TotalSec, res.BeatsSum, res.TotalOverheadSec)
	return nil
}

func runOverride(cmd *cobra.Command, args []string) error {
	batchPath, _ := cmd.Flags().GetString("batch")

	var overrides []types.BeatOverride
	switch {
	case batchPath != "":
		if len(args) > 1 {
			return fmt.Errorf("use either positional scene/beat/duration or --batch, not both")
		}
	case len(args) == 4:
		ov, err := parseSingleOverride(args[1], args[2], args[3])
		if err != nil {
			return err
		}
		overrides = []types.BeatOverride{ov}
	default:
		return fmt.Errorf("expected <scene> <beat> <durationSec> or --batch <file>")
	}

	return runAlign(cmd, args[0], overrides, batchPath)
}

func parseSingleOverride(sceneArg, beatArg, durArg string) (types.BeatOverride, error) {
	scene, err := strconv.Atoi(sceneArg)
	if err != nil {
		return types.BeatOverride{}, fmt.Errorf("scene must be an integer, got %q", sceneArg)
	}
	beat, err := strconv.Atoi(beatArg)
	if err != nil {
		return types.BeatOverride{}, fmt.Errorf("beat must be an integer, got %q", beatArg)
	}
	dur, err := strconv.ParseFloat(durArg, 64)
	if err != nil {
		return types.BeatOverride{}, fmt.Errorf("duration must be a number, got %q", durArg)
	}
	return types.BeatOverride{Scene: scene, Beat: beat, DurationSec: dur}, nil
}

func runEstimate(cmd *cobra.Command, segments string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
	defer cancel()

	total, err := pipeline.EstimateTotal(ctx, pipeline.EstimateConfig{
		SegmentsPath: segments,
		Logf:         logfTo(cmd),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "estimated total: %.2fs\n", total)
	return nil
}

func runRebalance(cmd *cobra.Command, segments string) error {
	target, _ := cmd.Flags().GetFloat64("target")
	outPath, _ := cmd.Flags().GetString("out")

	ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
	defer cancel()

	res, err := pipeline.Rebalance(ctx, pipeline.RebalanceConfig{
		SegmentsPath: segments,
		TargetSec:    target,
		OutPath:      outPath,
		Logf:         logfTo(cmd),
	})
	if err != nil {
		return err
	}
	if res.Scaled {
		fmt.Fprintf(cmd.OutOrStdout(), "rebalanced %d segments: %.2fs estimated, scaled by %.3f toward %.2fs\n",
			len(res.Segments), res.EstimatedSec, res.ScaleFactor, res.TargetSec)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "rebalanced %d segments: %.2fs estimated, within tolerance of %.2fs\n",
			len(res.Segments), res.EstimatedSec, res.TargetSec)
	}
	return nil
}

func runLint(cmd *cobra.Command, doc string, beats bool) error {
	reportPath, _ := cmd.Flags().GetString("report")

	ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
	defer cancel()

	cfg := pipeline.LintConfig{DocPath: doc, ReportPath: reportPath, Logf: logfTo(cmd)}
	var (
		rep types.Report
		err error
	)
	if beats {
		rep, err = pipeline.LintBeats(ctx, cfg)
	} else {
		rep, err = pipeline.Lint(ctx, cfg)
	}
	if err != nil {
		return err
	}
	// Quality findings are report content, not process failure.
	fmt.Fprintln(cmd.OutOrStdout(), rep.Summary)
	return nil
}

type fileConfig struct {
	BeatGapSec  *float64 `yaml:"beatGapSec"`
	SceneGapSec *float64 `yaml:"sceneGapSec"`
	ActGapSec   *float64 `yaml:"actGapSec"`
}

// resolveGaps layers the gap constants: built-in defaults, then the
// YAML config file, then environment, then explicit flags.
func resolveGaps(cmd *cobra.Command) (timing.GapConfig, error) {
	gaps := timing.DefaultGaps()

	cfgPath, _ := cmd.Flags().GetString("config")
	explicit := cfgPath != ""
	if cfgPath == "" {
		cfgPath = defaultConfigFile
	}
	if b, err := os.ReadFile(cfgPath); err == nil {
		var fc fileConfig
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return gaps, fmt.Errorf("config %s: %w", cfgPath, err)
		}
		if fc.BeatGapSec != nil {
			gaps.BeatGapSec = *fc.BeatGapSec
		}
		if fc.SceneGapSec != nil {
			gaps.SceneGapSec = *fc.SceneGapSec
		}
		if fc.ActGapSec != nil {
			gaps.ActGapSec = *fc.ActGapSec
		}
	} else if explicit {
		return gaps, fmt.Errorf("config %s: %w", cfgPath, err)
	}

	var err error
	if gaps.BeatGapSec, err = envFloat("SCRIPTGATE_BEAT_GAP_SEC", gaps.BeatGapSec); err != nil {
		return gaps, err
	}
	if gaps.SceneGapSec, err = envFloat("SCRIPTGATE_SCENE_GAP_SEC", gaps.SceneGapSec); err != nil {
		return gaps, err
	}
	if gaps.ActGapSec, err = envFloat("SCRIPTGATE_ACT_GAP_SEC", gaps.ActGapSec); err != nil {
		return gaps, err
	}

	if cmd.Flags().Changed("beat-gap") {
		gaps.BeatGapSec, _ = cmd.Flags().GetFloat64("beat-gap")
	}
	if cmd.Flags().Changed("scene-gap") {
		gaps.SceneGapSec, _ = cmd.Flags().GetFloat64("scene-gap")
	}
	if cmd.Flags().Changed("act-gap") {
		gaps.ActGapSec, _ = cmd.Flags().GetFloat64("act-gap")
	}
	return gaps, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("%s: expected a number, got %q", key, v)
	}
	return f, nil
}

func logfTo(cmd *cobra.Command) func(format string, args ...any) {
	return func(format string, args ...any) {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}
