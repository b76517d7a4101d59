// Package config loads and saves the project and module JSON documents
// that configure a run of pkg/wfc: grid size, seed, per-module limits, and
// the module catalog itself (ids, weights, tile atlas coordinates,
// adjacency rules).
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/gitrdm/wfcgen/pkg/wfc"
)

// GlobalConstraint is one entry of a Project's global_constraints list: a
// hard cap on how many times a module may be collapsed into across the
// whole grid.
type GlobalConstraint struct {
	Id    wfc.ModuleId `json:"id"`
	Limit int          `json:"limit"`
}

// Project is the top-level run configuration document.
type Project struct {
	GridWidth         int                `json:"grid_width"`
	GridHeight        int                `json:"grid_height"`
	Seed              int                `json:"seed"`
	ModuleSource      string             `json:"module_source"`
	GlobalConstraints []GlobalConstraint `json:"global_constraints,omitempty"`
}

// DefaultProject returns a Project with the documented defaults.
func DefaultProject() Project {
	return Project{
		GridWidth:    10,
		GridHeight:   10,
		Seed:         12345,
		ModuleSource: "wfc_modules.json",
	}
}

// LoadProject reads and decodes a project file from path, filling in
// defaults for any field the JSON document omits.
func LoadProject(path string) (Project, error) {
	p := DefaultProject()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("reading project file: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parsing project file: %w", err)
	}
	return p, nil
}

// SaveProject writes p to path as indented JSON.
func SaveProject(p Project, path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling project file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}
	return nil
}

// ModuleDef is one entry of a ModuleFile's modules list, the JSON-shaped
// twin of wfc.Module (which has no JSON tags of its own, since the solver
// core has no persistence concerns of its own).
type ModuleDef struct {
	Id wfc.ModuleId `json:"id"`
	// Weight is a pointer so an absent field (default 1.0, §6) can be told
	// apart from an explicit "weight": 0 or negative, which §7 requires
	// NewModuleCatalog to reject rather than silently reinterpret as 1.0.
	Weight    *float64                  `json:"weight"`
	TileIndex [2]int                    `json:"tile_index"`
	Adjacency map[string][]wfc.ModuleId `json:"adjacency"`
}

// ModuleFile is the tileset + catalog document referenced by a Project's
// module_source.
type ModuleFile struct {
	TileSize    int         `json:"tile_size"`
	TilesetPath string      `json:"tileset_path"`
	Modules     []ModuleDef `json:"modules"`
}

// DefaultModuleFile returns a ModuleFile with the documented defaults and
// an empty catalog.
func DefaultModuleFile() ModuleFile {
	return ModuleFile{
		TileSize:    32,
		TilesetPath: "assets/tileset.png",
	}
}

// LoadModuleFile reads and decodes a module file from path.
func LoadModuleFile(path string) (ModuleFile, error) {
	mf := DefaultModuleFile()
	data, err := os.ReadFile(path)
	if err != nil {
		return mf, fmt.Errorf("reading module file: %w", err)
	}
	if err := json.Unmarshal(data, &mf); err != nil {
		return mf, fmt.Errorf("parsing module file: %w", err)
	}
	return mf, nil
}

// SaveModuleFile writes mf to path as indented JSON.
func SaveModuleFile(mf ModuleFile, path string) error {
	data, err := json.MarshalIndent(mf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling module file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing module file: %w", err)
	}
	return nil
}

// directionKeys maps the upper-case direction keys of the persisted format
// (§6, "Direction keys are upper-case exactly as shown") to wfc.Direction.
var directionKeys = map[string]wfc.Direction{
	"TOP":    wfc.Top,
	"BOTTOM": wfc.Bottom,
	"LEFT":   wfc.Left,
	"RIGHT":  wfc.Right,
}

// ToModules converts a decoded ModuleFile into the []wfc.Module slice
// wfc.NewEngine expects. Unknown adjacency keys are ignored, matching §6.
func (mf ModuleFile) ToModules() []wfc.Module {
	out := make([]wfc.Module, len(mf.Modules))
	for i, def := range mf.Modules {
		weight := 1.0
		if def.Weight != nil {
			weight = *def.Weight
		}
		m := wfc.Module{
			Id:     def.Id,
			Weight: weight,
			Tile:   wfc.TileIndex{Row: def.TileIndex[0], Col: def.TileIndex[1]},
		}
		for key, ids := range def.Adjacency {
			if d, ok := directionKeys[key]; ok {
				m.Adjacent[d] = ids
			}
		}
		out[i] = m
	}
	return out
}
