// Package level loads YAML level files and spawns their bodies and colliders into an app.
package level

import (
	"os"

	"collider-render/internal/app"
	"collider-render/internal/mapgen"
	"collider-render/internal/physics"
	"collider-render/internal/render"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = eris.New("invalid level")

// ColliderDef is one collider in a level file. Which fields apply depends on Shape.
type ColliderDef struct {
	Shape       string       `yaml:"shape"`
	HalfExtents [3]float32   `yaml:"half_extents,omitempty"`
	Radius      float32      `yaml:"radius,omitempty"`
	HalfHeight  float32      `yaml:"half_height,omitempty"`
	Vertices    [][3]float32 `yaml:"vertices,omitempty"`
	Indices     [][3]uint32  `yaml:"indices,omitempty"`
	Offset      [3]float32   `yaml:"offset,omitempty"`
	Color       []float32    `yaml:"color,omitempty"`
}

// BodyDef is one rigid body and its colliders. Color applies to every collider that has none of its own.
type BodyDef struct {
	Name      string        `yaml:"name,omitempty"`
	Position  [3]float32    `yaml:"position"`
	Static    bool          `yaml:"static,omitempty"`
	Mass      float32       `yaml:"mass,omitempty"`
	Color     []float32     `yaml:"color,omitempty"`
	Colliders []ColliderDef `yaml:"colliders"`
}

// HeightmapDef generates static ground tiles. In 2D a single strip along X is generated.
type HeightmapDef struct {
	mapgen.HeightMapOptions `yaml:",inline"`

	Offset [3]float32 `yaml:"offset,omitempty"`
	Color  []float32  `yaml:"color,omitempty"`
}

// Level is the root of a level file.
type Level struct {
	Name      string        `yaml:"name,omitempty"`
	Gravity   *[3]float32   `yaml:"gravity,omitempty"`
	Bodies    []BodyDef     `yaml:"bodies"`
	Heightmap *HeightmapDef `yaml:"heightmap,omitempty"`
}

// Load reads and validates a level file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read level %s", path)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, eris.Wrapf(err, "load level %s", path)
	}
	return lvl, nil
}

// Parse decodes and validates level YAML.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, eris.Wrap(err, "decode level")
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Validate checks every body and collider. Capsules are accepted even though they are not rendered.
func (l *Level) Validate() error {
	for i, b := range l.Bodies {
		if len(b.Colliders) == 0 {
			return eris.Wrapf(ErrInvalid, "body %d (%s): no colliders", i, b.Name)
		}
		if err := checkColor(b.Color); err != nil {
			return eris.Wrapf(err, "body %d (%s)", i, b.Name)
		}
		for j, c := range b.Colliders {
			if _, err := c.shape(); err != nil {
				return eris.Wrapf(err, "body %d (%s) collider %d", i, b.Name, j)
			}
			if err := checkColor(c.Color); err != nil {
				return eris.Wrapf(err, "body %d (%s) collider %d", i, b.Name, j)
			}
		}
	}
	if l.Heightmap != nil {
		if l.Heightmap.Width <= 0 || l.Heightmap.Depth <= 0 {
			return eris.Wrap(ErrInvalid, "heightmap: width and depth must be positive")
		}
		if err := checkColor(l.Heightmap.Color); err != nil {
			return eris.Wrap(err, "heightmap")
		}
	}
	return nil
}

func checkColor(c []float32) error {
	if c == nil {
		return nil
	}
	if len(c) != 3 {
		return eris.Wrapf(ErrInvalid, "color needs 3 channels, got %d", len(c))
	}
	for _, v := range c {
		if v < 0 || v > 1 {
			return eris.Wrapf(ErrInvalid, "color channel %v out of [0, 1]", v)
		}
	}
	return nil
}

func toColor(c []float32) *render.RenderColor {
	if len(c) != 3 {
		return nil
	}
	return &render.RenderColor{R: c[0], G: c[1], B: c[2]}
}

// shape builds the physics shape for the definition.
func (c ColliderDef) shape() (physics.Shape, error) {
	switch c.Shape {
	case "cuboid":
		he := mgl32.Vec3(c.HalfExtents)
		if he.X() <= 0 || he.Y() <= 0 {
			return nil, eris.Wrapf(ErrInvalid, "cuboid half extents must be positive, got %v", c.HalfExtents)
		}
		return &physics.Cuboid{HalfExtents: he}, nil
	case "ball":
		if c.Radius <= 0 {
			return nil, eris.Wrapf(ErrInvalid, "ball radius must be positive, got %v", c.Radius)
		}
		return &physics.Ball{Radius: c.Radius}, nil
	case "capsule":
		if c.Radius <= 0 || c.HalfHeight < 0 {
			return nil, eris.Wrap(ErrInvalid, "capsule needs a positive radius and non-negative half height")
		}
		return &physics.Capsule{HalfHeight: c.HalfHeight, Radius: c.Radius}, nil
	case "trimesh":
		tm := &physics.Trimesh{Indices: c.Indices}
		for _, v := range c.Vertices {
			tm.Vertices = append(tm.Vertices, mgl32.Vec3(v))
		}
		if len(tm.Indices) == 0 {
			return nil, eris.Wrap(ErrInvalid, "trimesh has no triangles")
		}
		if !tm.Validate() {
			return nil, eris.Wrap(ErrInvalid, "trimesh index out of range")
		}
		return tm, nil
	default:
		return nil, eris.Wrapf(ErrInvalid, "unknown shape %q", c.Shape)
	}
}

// checkDepth rejects cuboids without a positive Z half extent in 3D. 2D levels may leave it at zero.
func checkDepth(shape physics.Shape, dim physics.Dimension) error {
	if c, ok := shape.(*physics.Cuboid); ok && dim == physics.Dim3 && c.HalfExtents.Z() <= 0 {
		return eris.Wrapf(ErrInvalid, "cuboid needs a positive z half extent in 3d, got %v", c.HalfExtents)
	}
	return nil
}

// Spawn inserts the level's bodies and colliders into a and creates one entity per collider.
// It returns the number of entities created.
func Spawn(a *app.App, l *Level) (int, error) {
	if l.Gravity != nil {
		a.Physics.SetGravity(mgl32.Vec3(*l.Gravity))
	}
	n := 0
	for i, b := range l.Bodies {
		bh := a.Physics.InsertBody(physics.NewBody(mgl32.Vec3(b.Position), b.Mass, b.Static))
		for j, c := range b.Colliders {
			shape, err := c.shape()
			if err == nil {
				err = checkDepth(shape, a.Physics.Config.Dimension)
			}
			if err != nil {
				return n, eris.Wrapf(err, "body %d collider %d", i, j)
			}
			col := physics.NewCollider(shape)
			col.Offset = mgl32.Vec3(c.Offset)
			color := toColor(c.Color)
			if color == nil {
				color = toColor(b.Color)
			}
			if _, err := a.SpawnCollider(col, bh, color); err != nil {
				return n, err
			}
			n++
		}
	}
	if l.Heightmap != nil {
		spawned, err := spawnHeightmap(a, l.Heightmap)
		n += spawned
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func spawnHeightmap(a *app.App, h *HeightmapDef) (int, error) {
	var tiles []mapgen.Tile
	if a.Physics.Config.Dimension == physics.Dim2 {
		tiles = mapgen.GenerateStrip(h.HeightMapOptions)
	} else {
		tiles = mapgen.GenerateTiles(h.HeightMapOptions)
	}
	offset := mgl32.Vec3(h.Offset)
	color := toColor(h.Color)
	for i, t := range tiles {
		bh := a.Physics.InsertBody(physics.NewBody(t.Center.Add(offset), 1, true))
		col := physics.NewCollider(&physics.Cuboid{HalfExtents: t.HalfExtents})
		if _, err := a.SpawnCollider(col, bh, color); err != nil {
			return i, eris.Wrap(err, "heightmap tile")
		}
	}
	return len(tiles), nil
}
