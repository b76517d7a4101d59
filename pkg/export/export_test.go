package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gitrdm/wfcgen/pkg/wfc"
)

func smallCollapsedGrid(t *testing.T) (*wfc.Grid, *wfc.ModuleCatalog) {
	t.Helper()
	modules := []wfc.Module{
		{
			Id:     "R",
			Weight: 1,
			Adjacent: [4][]wfc.ModuleId{
				wfc.Top: {"R"}, wfc.Bottom: {"R"}, wfc.Left: {"R"}, wfc.Right: {"R"},
			},
		},
	}
	e := wfc.NewEngine(2, 2, modules)
	e.SetSeed(1)
	if !e.Run(false) {
		t.Fatalf("setup run failed: %v", e.Err())
	}
	return e.Grid(), wfc.NewModuleCatalog(modules)
}

func TestToGridJSON(t *testing.T) {
	grid, _ := smallCollapsedGrid(t)
	doc := ToGridJSON(grid)

	if doc.Width != 2 || doc.Height != 2 {
		t.Fatalf("dimensions = %dx%d, want 2x2", doc.Width, doc.Height)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if doc.GridData[y][x] != "R" {
				t.Errorf("GridData[%d][%d] = %q, want R", y, x, doc.GridData[y][x])
			}
		}
	}
}

func TestSaveSVGProducesFile(t *testing.T) {
	grid, catalog := smallCollapsedGrid(t)
	path := filepath.Join(t.TempDir(), "grid.svg")

	if err := SaveSVG(grid, SVGOptions{Path: path, Catalog: catalog, TileSize: 16}); err != nil {
		t.Fatalf("SaveSVG returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty SVG output")
	}
}

func TestSavePNGWithoutTilesetDrawsTextFallback(t *testing.T) {
	grid, catalog := smallCollapsedGrid(t)
	path := filepath.Join(t.TempDir(), "grid.png")

	err := SavePNG(grid, PNGOptions{
		Path:     path,
		Catalog:  catalog,
		Tileset:  Tileset{TileSize: 16},
		DrawText: true,
	})
	if err != nil {
		t.Fatalf("SavePNG returned error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("expected a non-empty PNG file")
	}
}

func TestSaveDispatchesByExtension(t *testing.T) {
	grid, catalog := smallCollapsedGrid(t)
	dir := t.TempDir()

	svgPath := filepath.Join(dir, "out.svg")
	if err := Save(grid, svgPath, catalog, Tileset{TileSize: 16}); err != nil {
		t.Fatalf("Save(.svg) returned error: %v", err)
	}
	if _, err := os.Stat(svgPath); err != nil {
		t.Errorf("expected svg file to exist: %v", err)
	}

	pngPath := filepath.Join(dir, "out.png")
	if err := Save(grid, pngPath, catalog, Tileset{TileSize: 16}); err != nil {
		t.Fatalf("Save(.png) returned error: %v", err)
	}
	if _, err := os.Stat(pngPath); err != nil {
		t.Errorf("expected png file to exist: %v", err)
	}
}

func TestSavePNGRejectsZeroTileSize(t *testing.T) {
	grid, catalog := smallCollapsedGrid(t)
	path := filepath.Join(t.TempDir(), "grid.png")
	err := SavePNG(grid, PNGOptions{Path: path, Catalog: catalog})
	if err == nil {
		t.Fatal("expected an error for a zero TileSize")
	}
}
