package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gitrdm/wfcgen/pkg/wfc"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Args:  cobra.NoArgs,
	Short: "Load a project/module pair and report catalog errors without running the solver",
	Long:  `Loads the project and module JSON files and constructs a ModuleCatalog, surfacing any InvalidCatalog panic (duplicate id, non-positive weight, unknown adjacency reference) as an ordinary CLI error instead of a crash.`,
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().String("project", "wfc_project.json", "path to the project JSON file")
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	projectPath, _ := cmd.Flags().GetString("project")

	lp, err := loadProject(projectPath)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			if catErr, ok := r.(*wfc.InvalidCatalogError); ok {
				err = fmt.Errorf("invalid catalog: %w", catErr)
				return
			}
			panic(r)
		}
	}()

	catalog := wfc.NewModuleCatalog(lp.modules)
	log.Info().
		Int("modules", catalog.Len()).
		Int("grid_width", lp.project.GridWidth).
		Int("grid_height", lp.project.GridHeight).
		Int("seed", lp.project.Seed).
		Msg("wfcgen: project and module catalog are valid")
	fmt.Printf("ok: %d modules, %dx%d grid\n", catalog.Len(), lp.project.GridWidth, lp.project.GridHeight)
	return nil
}
