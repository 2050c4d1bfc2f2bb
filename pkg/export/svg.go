package export

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/tholloway/roguecore/pkg/engine"
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/tile"
)

// SVGOptions configures SVG floor-plan export.
type SVGOptions struct {
	TilePixels  int    // Edge length of one tile (default: 12)
	Margin      int    // Canvas margin in pixels (default: 20)
	ShowRooms   bool   // Outline room rectangles with type colors
	ShowGlyphs  bool   // Draw entity glyphs on top of tiles
	ShowLegend  bool   // Show legend explaining colors
	Title       string // Optional title
}

// DefaultSVGOptions returns sensible default SVG export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		TilePixels: 12,
		Margin:     20,
		ShowRooms:  true,
		ShowGlyphs: true,
		ShowLegend: true,
		Title:      "Floor Plan",
	}
}

// tileColors maps tile kinds to fill colors on the dark canvas.
var tileColors = map[tile.Kind]string{
	tile.Wall:       "#16213e",
	tile.Floor:      "#533483",
	tile.DownStairs: "#e94560",
	tile.UpStairs:   "#f0a500",
	tile.DoorClosed: "#7a5230",
	tile.DoorOpen:   "#b07d46",
}

// roomColors maps room types to outline colors.
var roomColors = map[tile.RoomType]string{
	tile.Start:    "#4ecca3",
	tile.Boss:     "#e94560",
	tile.Treasure: "#f0a500",
	tile.Shrine:   "#9b59b6",
	tile.Library:  "#3498db",
	tile.Armory:   "#95a5a6",
	tile.Shop:     "#e67e22",
	tile.Normal:   "#444444",
}

// ExportSVG renders the world's current floor to an SVG floor plan.
func ExportSVG(w *engine.World, opts SVGOptions) ([]byte, error) {
	if w == nil {
		return nil, fmt.Errorf("world cannot be nil")
	}
	if opts.TilePixels <= 0 {
		opts.TilePixels = 12
	}
	if opts.Margin <= 0 {
		opts.Margin = 20
	}

	m := w.Map()
	width := m.Width*opts.TilePixels + 2*opts.Margin
	height := m.Height*opts.TilePixels + 2*opts.Margin + headerHeight(opts)

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#1a1a2e")

	top := opts.Margin + headerHeight(opts)
	if opts.Title != "" {
		canvas.Text(opts.Margin, opts.Margin+14,
			fmt.Sprintf("%s — seed %d, floor %d, turn %d", opts.Title, w.Seed(), w.Floor(), w.Turn()),
			"font-family:monospace;font-size:14px;fill:#eeeeee")
	}

	drawTiles(canvas, m, opts, top)
	if opts.ShowRooms {
		drawRooms(canvas, m, opts, top)
	}
	if opts.ShowGlyphs {
		drawEntities(canvas, w, opts, top)
	}
	if opts.ShowLegend {
		drawLegend(canvas, opts, top+m.Height*opts.TilePixels+16)
	}

	canvas.End()
	return buf.Bytes(), nil
}

func headerHeight(opts SVGOptions) int {
	if opts.Title == "" {
		return 0
	}
	return 24
}

func drawTiles(canvas *svg.SVG, m *tile.Map, opts SVGOptions, top int) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			kind := m.At(x, y)
			color, ok := tileColors[kind]
			if !ok {
				color = "#000000"
			}
			canvas.Rect(
				opts.Margin+x*opts.TilePixels,
				top+y*opts.TilePixels,
				opts.TilePixels, opts.TilePixels,
				"fill:"+color,
			)
		}
	}
}

func drawRooms(canvas *svg.SVG, m *tile.Map, opts SVGOptions, top int) {
	for _, room := range m.Rooms {
		color, ok := roomColors[room.RoomType]
		if !ok {
			color = "#444444"
		}
		canvas.Rect(
			opts.Margin+room.X*opts.TilePixels,
			top+room.Y*opts.TilePixels,
			room.Width*opts.TilePixels,
			room.Height*opts.TilePixels,
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", color),
		)
	}
}

func drawEntities(canvas *svg.SVG, w *engine.World, opts SVGOptions, top int) {
	for _, e := range w.Entities().All() {
		color := "#eeeeee"
		switch {
		case e.ID == engine.PlayerID:
			color = "#4ecca3"
		case e.AI != nil && e.AI.Kind == entity.Boss:
			color = "#e94560"
		case e.AI != nil:
			color = "#f05454"
		case e.Item != nil:
			color = "#f0a500"
		case e.Trap != nil:
			color = "#9b59b6"
		}
		canvas.Text(
			opts.Margin+e.Position.X*opts.TilePixels+opts.TilePixels/4,
			top+e.Position.Y*opts.TilePixels+(3*opts.TilePixels)/4,
			string(e.Glyph),
			fmt.Sprintf("font-family:monospace;font-size:%dpx;fill:%s", opts.TilePixels, color),
		)
	}
}

func drawLegend(canvas *svg.SVG, opts SVGOptions, y int) {
	x := opts.Margin
	for _, entry := range []struct {
		label string
		color string
	}{
		{"start", roomColors[tile.Start]},
		{"boss", roomColors[tile.Boss]},
		{"treasure", roomColors[tile.Treasure]},
		{"shrine", roomColors[tile.Shrine]},
		{"shop", roomColors[tile.Shop]},
		{"stairs", tileColors[tile.DownStairs]},
	} {
		canvas.Rect(x, y, 10, 10, "fill:"+entry.color)
		canvas.Text(x+14, y+9, entry.label, "font-family:monospace;font-size:10px;fill:#eeeeee")
		x += 14 + 8*len(entry.label) + 16
	}
}

// SaveSVGToFile writes the SVG floor plan to filepath.
func SaveSVGToFile(w *engine.World, filepath string, opts SVGOptions) error {
	data, err := ExportSVG(w, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write SVG file: %w", err)
	}
	return nil
}
