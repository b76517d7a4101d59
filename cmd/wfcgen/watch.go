package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gitrdm/wfcgen/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Args:  cobra.NoArgs,
	Short: "Regenerate whenever the project JSON file changes on disk",
	Long:  `Watches --project for writes, debounces bursts of save events, and re-runs the same generation as "wfcgen generate" on each change, until interrupted.`,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().String("project", "wfc_project.json", "path to the project JSON file to watch")
	watchCmd.Flags().String("format", "text", "output format: text, json, png, svg")
	watchCmd.Flags().String("out", "", "output file path (defaults to stdout for text/json)")
	watchCmd.Flags().Bool("relaxation", false, "allow a single cap-lifting retry on exhausted backtracking")
}

func runWatch(cmd *cobra.Command, args []string) error {
	projectPath, _ := cmd.Flags().GetString("project")
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	relaxation, _ := cmd.Flags().GetBool("relaxation")

	regenerate := func() {
		lp, err := loadProject(projectPath)
		if err != nil {
			log.Error().Err(err).Msg("wfcgen watch: reloading project failed")
			return
		}
		grid, accepted, backtracks, genErr := runOnce(lp, nil, 1, relaxation, false, nil)
		if !accepted {
			log.Error().Err(genErr).Msg("wfcgen watch: generation failed")
			return
		}
		if err := writeOutput(grid, lp, format, outPath); err != nil {
			log.Error().Err(err).Msg("wfcgen watch: writing output failed")
			return
		}
		log.Info().Int("backtracks", backtracks).Msg("wfcgen watch: regenerated")
	}

	regenerate()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "watching %s for changes (ctrl-c to stop)\n", projectPath)
	return watch.File(ctx, projectPath, 0, regenerate)
}
