package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gitrdm/wfcgen/pkg/export"
	"github.com/gitrdm/wfcgen/pkg/history"
	"github.com/gitrdm/wfcgen/pkg/telemetry"
	"github.com/gitrdm/wfcgen/pkg/wfc"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Args:  cobra.NoArgs,
	Short: "Collapse a grid from a project/module configuration",
	Long:  `Loads a project JSON file and its module catalog, runs the engine (optionally through the rejection sampler), and writes the result as text, JSON, PNG, or SVG.`,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().String("project", "wfc_project.json", "path to the project JSON file")
	generateCmd.Flags().String("format", "text", "output format: text, json, png, svg")
	generateCmd.Flags().String("out", "", "output file path (defaults to stdout for text/json)")
	generateCmd.Flags().Bool("relaxation", false, "allow a single cap-lifting retry on exhausted backtracking")
	generateCmd.Flags().StringArray("validator", nil, "named validator to rejection-sample against (repeatable); see NamedValidators")
	generateCmd.Flags().Int("max-tries", 1, "max rejection-sampling attempts (ignored with no --validator)")
	generateCmd.Flags().Bool("parallel", false, "race rejection-sampling attempts concurrently instead of sequentially")
	generateCmd.Flags().String("history-db", "", "optional SQLite path to append this run's outcome to")
	generateCmd.Flags().String("metrics-addr", "", "optional host:port to expose Prometheus /metrics on while generating")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	projectPath, _ := cmd.Flags().GetString("project")
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	relaxation, _ := cmd.Flags().GetBool("relaxation")
	validatorNames, _ := cmd.Flags().GetStringArray("validator")
	maxTries, _ := cmd.Flags().GetInt("max-tries")
	parallel, _ := cmd.Flags().GetBool("parallel")
	historyDB, _ := cmd.Flags().GetString("history-db")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	lp, err := loadProject(projectPath)
	if err != nil {
		return err
	}
	validators, err := resolveValidators(validatorNames)
	if err != nil {
		return err
	}

	var metrics *telemetry.Metrics
	if metricsAddr != "" {
		metrics = telemetry.New()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := telemetry.Serve(ctx, metricsAddr, metrics); err != nil {
				log.Error().Err(err).Msg("wfcgen: metrics server stopped")
			}
		}()
	}

	start := time.Now()
	grid, accepted, backtracks, genErr := runOnce(lp, validators, maxTries, relaxation, parallel, metrics)
	duration := time.Since(start)

	if historyDB != "" {
		store, err := history.Open(historyDB)
		if err != nil {
			return fmt.Errorf("opening history db: %w", err)
		}
		defer store.Close()
		if _, err := store.Record(uint32(lp.project.Seed), accepted, duration, backtracks); err != nil {
			return fmt.Errorf("recording history: %w", err)
		}
	}

	if !accepted {
		return fmt.Errorf("generation failed: %w", genErr)
	}

	return writeOutput(grid, lp, format, outPath)
}

func writeOutput(grid *wfc.Grid, lp *loadedProject, format, outPath string) error {
	switch strings.ToLower(format) {
	case "text":
		if outPath == "" {
			return grid.Render(os.Stdout)
		}
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		return grid.Render(f)
	case "json":
		data, err := json.MarshalIndent(export.ToGridJSON(grid), "", "  ")
		if err != nil {
			return err
		}
		if outPath == "" {
			_, err := os.Stdout.Write(append(data, '\n'))
			return err
		}
		return os.WriteFile(outPath, data, 0o644)
	case "png", "svg":
		if outPath == "" {
			return fmt.Errorf("--out is required for format %q", format)
		}
		catalog := wfc.NewModuleCatalog(lp.modules)
		if strings.ToLower(format) == "png" {
			return export.SavePNG(grid, export.PNGOptions{Path: outPath, Catalog: catalog, Tileset: export.Tileset{TileSize: 32}, DrawText: true})
		}
		return export.SaveSVG(grid, export.SVGOptions{Path: outPath, Catalog: catalog})
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
