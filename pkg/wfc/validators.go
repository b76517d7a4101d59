package wfc

// Validator inspects a fully collapsed grid and reports whether it satisfies
// some soft post-condition not expressible as an adjacency rule (§4.7,
// §6). The set of validators is closed: adding one means writing a new Go
// function here, never a config entry (§6, "The validator set is fixed").
type Validator func(grid *Grid) bool

// ParkNeedsRoadNeighbor implements the "park_needs_road_neighbor" validator:
// every cell with id "P" must have at least one 4-neighbor with id "R".
func ParkNeedsRoadNeighbor(grid *Grid) bool {
	return everyCellWithIDHasNeighborWithID(grid, "P", "R")
}

// CommercialClustering implements "commercial_clustering": every cell with
// id "C" must have at least one 4-neighbor with id "C".
func CommercialClustering(grid *Grid) bool {
	return everyCellWithIDHasNeighborWithID(grid, "C", "C")
}

// HousingAccessibility implements "housing_accessibility": every cell with
// id "H" must have at least one 4-neighbor with id "R".
func HousingAccessibility(grid *Grid) bool {
	return everyCellWithIDHasNeighborWithID(grid, "H", "R")
}

func everyCellWithIDHasNeighborWithID(grid *Grid, subject, required ModuleId) bool {
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			id, ok := grid.ChosenModuleId(x, y)
			if !ok || id != subject {
				continue
			}
			if !hasNeighborWithID(grid, x, y, required) {
				return false
			}
		}
	}
	return true
}

func hasNeighborWithID(grid *Grid, x, y int, id ModuleId) bool {
	for _, d := range directionOrder {
		nx, ny, ok := grid.Neighbor(x, y, d)
		if !ok {
			continue
		}
		nid, collapsed := grid.ChosenModuleId(nx, ny)
		if collapsed && nid == id {
			return true
		}
	}
	return false
}

// NamedValidators is the closed registry of validators exposed through the
// outer rejection-sampling loop (§6). Config-driven callers select by name
// out of this fixed set; they cannot add new entries without a code change.
var NamedValidators = map[string]Validator{
	"park_needs_road_neighbor": ParkNeedsRoadNeighbor,
	"commercial_clustering":    CommercialClustering,
	"housing_accessibility":    HousingAccessibility,
}
