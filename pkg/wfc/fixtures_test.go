package wfc

// urbanCatalog is the 4-module {R,H,C,P} catalog used by the edge-exclusion,
// determinism, and rejection-sampling scenarios (§8, S4-S6). Roads connect
// to everything; housing, commercial, and park tiles only self-cluster or
// sit beside a road, leaving the soft post-conditions in validators.go
// genuinely unenforced by adjacency alone.
func urbanCatalog() []Module {
	return []Module{
		{
			Id:     "R",
			Weight: 2,
			Adjacent: [4][]ModuleId{
				Top:    {"R", "H", "C", "P"},
				Bottom: {"R", "H", "C", "P"},
				Left:   {"R", "H", "C", "P"},
				Right:  {"R", "H", "C", "P"},
			},
		},
		{
			Id:     "H",
			Weight: 1,
			Adjacent: [4][]ModuleId{
				Top:    {"R", "H"},
				Bottom: {"R", "H"},
				Left:   {"R", "H"},
				Right:  {"R", "H"},
			},
		},
		{
			Id:     "C",
			Weight: 1,
			Adjacent: [4][]ModuleId{
				Top:    {"R", "C"},
				Bottom: {"R", "C"},
				Left:   {"R", "C"},
				Right:  {"R", "C"},
			},
		},
		{
			Id:     "P",
			Weight: 1,
			Adjacent: [4][]ModuleId{
				Top:    {"R", "P"},
				Bottom: {"R", "P"},
				Left:   {"R", "P"},
				Right:  {"R", "P"},
			},
		},
	}
}

func removePossibilityOnBorder(e *Engine, width, height int, id ModuleId) {
	for x := 0; x < width; x++ {
		e.RemovePossibility(x, 0, id)
		e.RemovePossibility(x, height-1, id)
	}
	for y := 0; y < height; y++ {
		e.RemovePossibility(0, y, id)
		e.RemovePossibility(width-1, y, id)
	}
}

func isBorder(x, y, width, height int) bool {
	return x == 0 || y == 0 || x == width-1 || y == height-1
}
