package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "scriptgate",
		Short:        "Align video script timing and gate script quality",
		SilenceUsage: true,
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().String("config", "", "Path to a YAML config with gap constants (default .scriptgate.yaml)")

	root.AddCommand(
		newAlignCmd(),
		newOverrideCmd(),
		newEstimateCmd(),
		newRebalanceCmd(),
		newLintCmd(),
		newLintBeatsCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAlignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "align <script.json>",
		Short: "Recompute beat durations and gap overhead for a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlign(cmd, args[0], nil, "")
		},
	}
	addGapFlags(cmd)
	cmd.Flags().String("out", "", "Write the aligned script here instead of in place")
	cmd.Flags().String("outline", "", "Write a Markdown outline here")
	return cmd
}

func newOverrideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override <script.json> [<scene> <beat> <durationSec>]",
		Short: "Override beat durations, then realign",
		Long: "Override a single beat duration with three positional values, or a batch\n" +
			"of them with --batch pointing at {\"beats\": [{scene, beat, durationSec}]}.",
		Args: cobra.RangeArgs(1, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverride(cmd, args)
		},
	}
	addGapFlags(cmd)
	cmd.Flags().String("batch", "", "Path to a batch override file")
	cmd.Flags().String("out", "", "Write the aligned script here instead of in place")
	cmd.Flags().String("outline", "", "Write a Markdown outline here")
	return cmd
}

func newEstimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate <segments.json>",
		Short: "Estimate the total spoken duration of a segment list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd, args[0])
		},
	}
}

func newRebalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebalance <segments.json>",
		Short: "Fit segment durations to a target total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRebalance(cmd, args[0])
		},
	}
	cmd.Flags().Float64("target", 0, "Target total duration in seconds (required)")
	_ = cmd.MarkFlagRequired("target")
	cmd.Flags().String("out", "", "Write per-segment timings here")
	return cmd
}

func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <videodoc.json>",
		Short: "Run the quality gate over a finalized video document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args[0], false)
		},
	}
	cmd.Flags().String("report", "", "Write the full report here")
	return cmd
}

func newLintBeatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint-beats <beats.json>",
		Short: "Run the early beat/voiceover checks over extracted beats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args[0], true)
		},
	}
	cmd.Flags().String("report", "", "Write the full report here")
	return cmd
}

func addGapFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("beat-gap", 0, "Seconds between beats (overrides env/config)")
	cmd.Flags().Float64("scene-gap", 0, "Seconds between scenes (overrides env/config)")
	cmd.Flags().Float64("act-gap", 0, "Seconds between acts (overrides env/config)")
}
