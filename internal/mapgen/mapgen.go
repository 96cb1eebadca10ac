// Package mapgen generates procedural ground for levels.
package mapgen

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// HeightMapOptions sizes a terrain patch in tiles and shapes its noise.
// A zero Seed picks a time-based one, so fix it in level files that need repeatable ground.
type HeightMapOptions struct {
	Width       int     `yaml:"width"`
	Depth       int     `yaml:"depth"`
	TileSize    float32 `yaml:"tile_size"`
	HeightScale float32 `yaml:"height_scale"`

	Seed       int64   `yaml:"seed"`
	Octaves    int     `yaml:"octaves"`
	Frequency  float32 `yaml:"frequency"`
	Lacunarity float32 `yaml:"lacunarity"`
	Gain       float32 `yaml:"gain"`
}

// DefaultHeightMapOptions is a 32×32 patch of gentle hills.
func DefaultHeightMapOptions() HeightMapOptions {
	return HeightMapOptions{
		Width:       32,
		Depth:       32,
		TileSize:    1.0,
		HeightScale: 3.0,
		Seed:        0,
		Octaves:     4,
		Frequency:   0.08,
		Lacunarity:  2.0,
		Gain:        0.5,
	}
}

// Tile is one ground column: a static box whose bottom sits on Y=0.
type Tile struct {
	Center      mgl32.Vec3
	HalfExtents mgl32.Vec3
}

// minHeight keeps every tile tall enough to collide with.
const minHeight = float32(0.15)

// GenerateTiles builds a height map as a grid of boxes sitting on Y=0, centered on the origin in XZ.
// Each tile's height is derived from fractal noise in [minHeight, HeightScale].
func GenerateTiles(opts HeightMapOptions) []Tile {
	if opts.Width <= 0 || opts.Depth <= 0 {
		return nil
	}
	opts = opts.withDefaults()

	halfTile := opts.TileSize * 0.5
	startX := -float32(opts.Width)*halfTile + halfTile
	startZ := -float32(opts.Depth)*halfTile + halfTile

	field := newNoise(opts)
	tiles := make([]Tile, 0, opts.Width*opts.Depth)
	for z := 0; z < opts.Depth; z++ {
		for x := 0; x < opts.Width; x++ {
			h := field.at(float32(x)*opts.Frequency, float32(z)*opts.Frequency)
			height := minHeight + h*(opts.HeightScale-minHeight)
			if math32.IsNaN(height) || math32.IsInf(height, 0) || height < minHeight {
				height = minHeight
			}
			tiles = append(tiles, Tile{
				Center: mgl32.Vec3{
					startX + float32(x)*opts.TileSize,
					height * 0.5,
					startZ + float32(z)*opts.TileSize,
				},
				HalfExtents: mgl32.Vec3{halfTile, height * 0.5, halfTile},
			})
		}
	}
	return tiles
}

// GenerateStrip is the planar variant: one row of columns along X, centered on the origin, in the XY plane.
func GenerateStrip(opts HeightMapOptions) []Tile {
	opts.Depth = 1
	tiles := GenerateTiles(opts)
	for i := range tiles {
		tiles[i].Center[2] = 0
		tiles[i].HalfExtents[2] = 0
	}
	return tiles
}

// withDefaults fills non-positive fields from DefaultHeightMapOptions. A zero seed becomes time-based.
func (opts HeightMapOptions) withDefaults() HeightMapOptions {
	def := DefaultHeightMapOptions()
	for _, f := range []struct{ v, d *float32 }{
		{&opts.TileSize, &def.TileSize},
		{&opts.HeightScale, &def.HeightScale},
		{&opts.Frequency, &def.Frequency},
		{&opts.Lacunarity, &def.Lacunarity},
		{&opts.Gain, &def.Gain},
	} {
		if *f.v <= 0 {
			*f.v = *f.d
		}
	}
	if opts.Octaves <= 0 {
		opts.Octaves = def.Octaves
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return opts
}

// noise is seeded fractal value noise. Each octave samples a hashed lattice at a higher
// frequency and lower amplitude; the sum is normalized to [0,1].
type noise struct {
	seed       int32
	octaves    int
	lacunarity float32
	gain       float32
}

func newNoise(opts HeightMapOptions) noise {
	return noise{
		seed:       int32(opts.Seed),
		octaves:    opts.Octaves,
		lacunarity: opts.Lacunarity,
		gain:       opts.Gain,
	}
}

func (n noise) at(x, y float32) float32 {
	var total, norm float32
	amp, freq := float32(1), float32(1)
	for o := 0; o < n.octaves; o++ {
		total += amp * lattice(x*freq, y*freq, n.seed+int32(o))
		norm += amp
		amp *= n.gain
		freq *= n.lacunarity
	}
	if norm == 0 {
		return 0
	}
	return total / norm
}

// lattice blends the hashed corners of the unit cell containing (x, y).
func lattice(x, y float32, seed int32) float32 {
	fx, fy := math32.Floor(x), math32.Floor(y)
	cx, cy := int32(fx), int32(fy)
	u, v := ease(x-fx), ease(y-fy)
	bottom := mix(corner(cx, cy, seed), corner(cx+1, cy, seed), u)
	top := mix(corner(cx, cy+1, seed), corner(cx+1, cy+1, seed), u)
	return mix(bottom, top, v)
}

// corner hashes a lattice point to [0,1].
func corner(x, y, seed int32) float32 {
	h := uint32(x*374761393 + y*668265263 + seed*362437)
	h = (h ^ h>>13) * 1274126177
	h ^= h >> 16
	return float32(h&0x7fffffff) / 0x7fffffff
}

func mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

// ease is cubic smoothstep on [0,1].
func ease(t float32) float32 {
	t = math32.Max(0, math32.Min(1, t))
	return t * t * (3 - 2*t)
}
