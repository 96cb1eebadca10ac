package debug

import (
	"fmt"
	"runtime"

	"collider-render/internal/app"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh text every N frames to reduce allocations.
	updateInterval = 30
	logLines       = 6
	logFontSize    = 14
)

// Debug holds the runtime overlays. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStats    bool
	ShowLog      bool

	// Lines supplies recent log lines for the log overlay.
	Lines func() []string

	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastStats    string
	lastMemStats runtime.MemStats
}

// New returns a Debug with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// StatsText formats scheduler totals for the overlay.
func StatsText(t app.Totals, drawn int) string {
	return fmt.Sprintf("Rendered: %d  Drawn: %d  Unsupported: %d  Pending: %d", t.Created, drawn, t.Unsupported, t.Skipped)
}

// Draw renders the enabled overlays: FPS, memory and stats at the top-right in green,
// recent log lines at the bottom-left. Text is only recomputed every updateInterval frames.
func (d *Debug) Draw(totals app.Totals, drawn int) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0 || d.frameCount == 1

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	right := func(text string) {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}

	if d.ShowFPS {
		if update || d.lastFpsText == "" {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		right(d.lastFpsText)
	}
	if d.ShowMemAlloc {
		if update || d.lastMemText == "" {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		right(d.lastMemText)
	}
	if d.ShowStats {
		if update || d.lastStats == "" {
			d.lastStats = StatsText(totals, drawn)
		}
		right(d.lastStats)
	}

	if d.ShowLog && d.Lines != nil {
		lines := d.Lines()
		if len(lines) > logLines {
			lines = lines[len(lines)-logLines:]
		}
		ly := int32(rl.GetScreenHeight()) - padding - int32(len(lines))*(logFontSize+2)
		for _, line := range lines {
			rl.DrawText(line, padding, ly, logFontSize, rl.LightGray)
			ly += logFontSize + 2
		}
	}
}
