package main

import (
	"fmt"

	"github.com/gitrdm/wfcgen/pkg/config"
	"github.com/gitrdm/wfcgen/pkg/wfc"
)

// loadedProject bundles a decoded project and its resolved module catalog,
// the shared setup every subcommand needs before touching pkg/wfc.
type loadedProject struct {
	project config.Project
	modules []wfc.Module
}

func loadProject(projectPath string) (*loadedProject, error) {
	proj, err := config.LoadProject(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	mf, err := config.LoadModuleFile(proj.ModuleSource)
	if err != nil {
		return nil, fmt.Errorf("loading module catalog %q: %w", proj.ModuleSource, err)
	}
	modules := mf.ToModules()
	if len(modules) == 0 {
		return nil, fmt.Errorf("module catalog %q has no modules", proj.ModuleSource)
	}
	return &loadedProject{project: proj, modules: modules}, nil
}

// newEngine builds a fresh Engine from lp, applying the seed and every
// configured global constraint (§6 "global_constraints").
func (lp *loadedProject) newEngine() *wfc.Engine {
	e := wfc.NewEngine(lp.project.GridWidth, lp.project.GridHeight, lp.modules)
	e.SetSeed(uint32(lp.project.Seed))
	for _, gc := range lp.project.GlobalConstraints {
		e.SetGlobalModuleLimit(gc.Id, uint32(gc.Limit))
	}
	return e
}

// resolveValidators looks names up in the closed registry (§6, "the
// validator set is fixed"), erroring on anything not in it.
func resolveValidators(names []string) ([]wfc.Validator, error) {
	out := make([]wfc.Validator, 0, len(names))
	for _, name := range names {
		v, ok := wfc.NamedValidators[name]
		if !ok {
			return nil, fmt.Errorf("unknown validator %q", name)
		}
		out = append(out, v)
	}
	return out, nil
}
