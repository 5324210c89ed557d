package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"errcode/internal/config"
	"errcode/internal/diagfmt"
	"errcode/internal/driver"
	"errcode/internal/observ"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [flags] [paths...]",
		Short: "Assign codes and write registry entries",
		Long: `Generate runs the pass over the project sources (or the given paths),
writes one registry entry per code and, with --write or --out-dir, the
rewritten sources.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := config.ModeGenerate
			if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
				mode = config.ModeDryRun
			}
			return runPass(cmd, args, mode)
		},
	}
	addPassFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "compute codes without touching the registry")
	return cmd
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [paths...]",
		Short: "Verify that every code has a registry entry",
		Long: `Check runs the pass without writing the registry and fails on the first
code whose entry is missing, telling how to fix the build.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd, args, config.ModeCheck)
		},
	}
	addPassFlags(cmd)
	return cmd
}

func runPass(cmd *cobra.Command, args []string, mode config.Mode) error {
	opts, manifest, err := buildRunOptions(cmd, args, mode)
	if err != nil {
		return err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	var clock *stageClock
	if showTimings {
		clock = newStageClock()
		opts.Progress = clock
		opts.Timings = observ.NewAggregate()
	}

	withUI, err := useProgressUI(cmd, len(opts.Files))
	if err != nil {
		return err
	}

	var res *driver.RunResult
	if withUI {
		res, err = runWithUI(cmd.Context(), mode.String(), opts)
	} else {
		res, err = driver.Run(cmd.Context(), opts)
	}
	if err != nil {
		var syn *driver.SyntaxError
		if errors.As(err, &syn) {
			syn.Bag.Sort()
			diagfmt.Pretty(cmd.ErrOrStderr(), syn.Bag, syn.FileSet, diagfmt.PrettyOpts{
				Color:     useColor(cmd, os.Stderr),
				Context:   1,
				PathMode:  diagfmt.PathModeAuto,
				BaseDir:   manifest.Root,
				ShowNotes: true,
			})
		}
		return err
	}

	out := cmd.OutOrStdout()
	if !quiet(cmd) {
		switch mode {
		case config.ModeCheck:
			fmt.Fprintf(out, "check: %d codes in %d units are registered\n", res.Sites, len(res.Units))
		default:
			fmt.Fprintf(out, "%s: %d codes in %d units (%d changed, %d cached)\n",
				mode, res.Sites, len(res.Units), res.Changed, res.Cached)
		}
	}
	if showTimings {
		printStageTimings(out, clock.Timings())
		printPhaseTimings(out, opts.Timings)
	}
	return nil
}
