package render

// Color is a linear RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

// RGB returns an opaque color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGB8 returns an opaque color from 8-bit channels.
func RGB8(r, g, b uint8) Color {
	return RGB(float32(r)/255, float32(g)/255, float32(b)/255)
}

// GroundColor is used for static bodies.
var GroundColor = RGB8(0xF3, 0xD9, 0xB1)

// Palette is cycled through for dynamic bodies.
var Palette = [...]Color{
	RGB8(0x98, 0xC1, 0xD9),
	RGB8(0x05, 0x3C, 0x5E),
	RGB8(0x1F, 0x7A, 0x8C),
}

// colorPicker hands out default colors for one system run.
// The counter advances before indexing, so the first dynamic body gets Palette[1].
type colorPicker struct {
	n int
}

func (p *colorPicker) next(static bool) Color {
	if static {
		return GroundColor
	}
	p.n++
	return Palette[p.n%len(Palette)]
}

// resolveColor applies an optional override to the default color.
func resolveColor(def Color, override *RenderColor) Color {
	if override == nil {
		return def
	}
	return RGB(override.R, override.G, override.B)
}
