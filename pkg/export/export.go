// Package export renders a collapsed Grid to the persisted output formats:
// row-major JSON, a PNG raster indexed into a tileset, and an equivalent
// SVG. The PNG/SVG pair mirrors the gg.Context/svgo sibling render paths
// used for beadwork's graph snapshots; the grid here has no layout to
// compute, since every cell already has a fixed pixel position.
package export

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/gitrdm/wfcgen/pkg/wfc"
)

// GridJSON is the Grid-as-JSON document of §6:
// { "width":W, "height":H, "grid_data": [[id,...], ...] }.
type GridJSON struct {
	Width    int                `json:"width"`
	Height   int                `json:"height"`
	GridData [][]wfc.ModuleId   `json:"grid_data"`
}

// ToGridJSON reads every cell of grid into the row-major GridJSON shape.
// Uncollapsed cells (only reachable after a failed Run) are emitted as the
// empty ModuleId.
func ToGridJSON(grid *wfc.Grid) GridJSON {
	out := GridJSON{Width: grid.Width, Height: grid.Height, GridData: make([][]wfc.ModuleId, grid.Height)}
	for y := 0; y < grid.Height; y++ {
		row := make([]wfc.ModuleId, grid.Width)
		for x := 0; x < grid.Width; x++ {
			id, ok := grid.ChosenModuleId(x, y)
			if ok {
				row[x] = id
			}
		}
		out.GridData[y] = row
	}
	return out
}

// Tileset supplies the pixel source export draws each module's tile from.
type Tileset struct {
	Image    image.Image
	TileSize int
}

// tilePixelRect returns the source rectangle for a module's TileIndex
// within the tileset image.
func (ts Tileset) tilePixelRect(ti wfc.TileIndex) image.Rectangle {
	x0 := ti.Col * ts.TileSize
	y0 := ti.Row * ts.TileSize
	return image.Rect(x0, y0, x0+ts.TileSize, y0+ts.TileSize)
}

// PNGOptions controls the raster export.
type PNGOptions struct {
	Path     string
	Catalog  *wfc.ModuleCatalog
	Tileset  Tileset
	DrawText bool // overlay each cell's chosen id, for debugging without a tileset
}

// SavePNG rasterizes grid to a width*tileSize x height*tileSize PNG at
// opts.Path, drawing each cell's module tile from opts.Tileset, the same
// gg.Context/SavePNG flow as the teacher pack's graph snapshot renderer.
func SavePNG(grid *wfc.Grid, opts PNGOptions) error {
	tileSize := opts.Tileset.TileSize
	if tileSize <= 0 {
		return fmt.Errorf("export: tileset TileSize must be positive")
	}
	dc := gg.NewContext(grid.Width*tileSize, grid.Height*tileSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if opts.DrawText {
		dc.SetFontFace(basicfont.Face7x13)
	}

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			id, ok := grid.ChosenModuleId(x, y)
			if !ok {
				continue
			}
			module, ok := opts.Catalog.Get(id)
			if !ok {
				continue
			}
			if opts.Tileset.Image != nil {
				src := opts.Tileset.Image
				rect := opts.Tileset.tilePixelRect(module.Tile)
				sub, ok := src.(interface {
					SubImage(r image.Rectangle) image.Image
				})
				if ok {
					dc.DrawImage(sub.SubImage(rect), x*tileSize, y*tileSize)
				}
			}
			if opts.DrawText {
				dc.SetRGB(0, 0, 0)
				dc.DrawString(string(id), float64(x*tileSize)+2, float64(y*tileSize)+12)
			}
		}
	}

	return dc.SavePNG(opts.Path)
}

// SVGOptions controls the vector export, the sibling of PNGOptions.
type SVGOptions struct {
	Path     string
	Catalog  *wfc.ModuleCatalog
	TileSize int
	Colors   map[wfc.ModuleId]string // module id -> CSS color; falls back to a stable default
}

var defaultSVGColors = []string{"#4C72B0", "#DD8452", "#55A868", "#C44E52", "#8172B2", "#937860"}

// SaveSVG writes grid as an SVG document to opts.Path: one colored,
// labeled rect per collapsed cell, the same Roundrect/Text shape used by
// the teacher's renderSVG.
func SaveSVG(grid *wfc.Grid, opts SVGOptions) error {
	f, err := os.Create(opts.Path)
	if err != nil {
		return fmt.Errorf("export: creating svg file: %w", err)
	}
	defer f.Close()
	return writeSVG(f, grid, opts)
}

func writeSVG(w io.Writer, grid *wfc.Grid, opts SVGOptions) error {
	tileSize := opts.TileSize
	if tileSize <= 0 {
		tileSize = 32
	}
	canvas := svg.New(w)
	canvas.Start(grid.Width*tileSize, grid.Height*tileSize)

	colorFor := func(id wfc.ModuleId, idx int) string {
		if c, ok := opts.Colors[id]; ok {
			return c
		}
		return defaultSVGColors[idx%len(defaultSVGColors)]
	}

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			id, ok := grid.ChosenModuleId(x, y)
			if !ok {
				continue
			}
			idx, _ := opts.Catalog.IndexOf(id)
			px, py := x*tileSize, y*tileSize
			canvas.Rect(px, py, tileSize, tileSize, fmt.Sprintf("fill:%s;stroke:#222;stroke-width:1", colorFor(id, idx)))
			canvas.Text(px+4, py+tileSize/2, string(id), "font-size:11px;font-family:monospace;fill:#111")
		}
	}

	canvas.End()
	return nil
}

// inferFormat picks "png" or "svg" from path's extension, defaulting to
// "svg" when the extension is absent or unrecognized, matching §6's export
// format pair.
func inferFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	default:
		return "svg"
	}
}

// Save renders grid to path, picking PNG or SVG from path's extension
// (falling back to SVG). tileset.Image is only drawn on the PNG path;
// tileset.TileSize sets the cell size of both (SVG falls back to 32 when it
// is not positive).
func Save(grid *wfc.Grid, path string, catalog *wfc.ModuleCatalog, tileset Tileset) error {
	switch inferFormat(path) {
	case "png":
		return SavePNG(grid, PNGOptions{Path: path, Catalog: catalog, Tileset: tileset, DrawText: tileset.Image == nil})
	default:
		return SaveSVG(grid, SVGOptions{Path: path, Catalog: catalog, TileSize: tileset.TileSize})
	}
}
