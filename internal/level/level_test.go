package level

import (
	"os"
	"path/filepath"
	"testing"

	"collider-render/internal/app"
	"collider-render/internal/physics"
	"collider-render/internal/render"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/arche/generic"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
name: sample
gravity: [0, -5, 0]
bodies:
  - name: ground
    position: [0, -1, 0]
    static: true
    colliders:
      - shape: cuboid
        half_extents: [10, 1, 10]
  - name: ball
    position: [0, 4, 0]
    mass: 2
    color: [1, 0, 0]
    colliders:
      - shape: ball
        radius: 0.5
      - shape: capsule
        radius: 0.25
        half_height: 1
        offset: [0, 2, 0]
        color: [0, 0, 1]
  - name: ramp
    position: [3, 0, 0]
    static: true
    colliders:
      - shape: trimesh
        vertices: [[0, 0, 0], [2, 0, 0], [2, 1, 0]]
        indices: [[0, 1, 2]]
`

func TestParseAndSpawn(t *testing.T) {
	lvl, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, "sample", lvl.Name)
	require.Len(t, lvl.Bodies, 3)

	a := app.New(physics.DefaultConfiguration(), zerolog.Nop())
	n, err := Spawn(a, lvl)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 3, a.Physics.Bodies.Len())
	assert.Equal(t, 4, a.Physics.Colliders.Len())
	assert.Equal(t, mgl32.Vec3{0, -5, 0}, a.Physics.Gravity)

	stats := a.Tick(0)
	assert.Equal(t, render.Stats{Created: 3, Unsupported: 1}, stats)

	// The ball collider inherits the body color.
	colors := generic.NewFilter1[render.RenderColor]()
	q := colors.Query(&a.World)
	var got []render.RenderColor
	for q.Next() {
		got = append(got, *q.Get())
	}
	assert.ElementsMatch(t, []render.RenderColor{{R: 1}, {B: 1}}, got)
}

func TestSpawnHeightmap(t *testing.T) {
	lvl, err := Parse([]byte(`
heightmap:
  width: 4
  depth: 3
  seed: 5
  height_scale: 2
  offset: [0, -2, 0]
`))
	require.NoError(t, err)

	a := app.New(physics.DefaultConfiguration(), zerolog.Nop())
	n, err := Spawn(a, lvl)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	a.Physics.Bodies.Each(func(_ physics.BodyHandle, b *physics.Body) {
		assert.True(t, b.IsStatic())
		assert.Less(t, b.Position.Y(), float32(0))
	})

	a2 := app.New(physics.Configuration{Scale: 1, Dimension: physics.Dim2}, zerolog.Nop())
	n, err = Spawn(a2, lvl)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestValidateErrors(t *testing.T) {
	tests := map[string]string{
		"unknown shape":   "bodies: [{colliders: [{shape: cone}]}]",
		"no colliders":    "bodies: [{position: [0, 0, 0]}]",
		"zero radius":     "bodies: [{colliders: [{shape: ball}]}]",
		"flat cuboid":     "bodies: [{colliders: [{shape: cuboid, half_extents: [1, 0, 1]}]}]",
		"bad index":       "bodies: [{colliders: [{shape: trimesh, vertices: [[0,0,0]], indices: [[0,1,2]]}]}]",
		"empty trimesh":   "bodies: [{colliders: [{shape: trimesh, vertices: [[0,0,0]]}]}]",
		"bad color":       "bodies: [{color: [2, 0, 0], colliders: [{shape: ball, radius: 1}]}]",
		"short color":     "bodies: [{colliders: [{shape: ball, radius: 1, color: [1]}]}]",
		"empty heightmap": "heightmap: {width: 0, depth: 3}",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrInvalid), "%v", err)
		})
	}
}

func TestSpawnRejectsFlatCuboidIn3D(t *testing.T) {
	lvl, err := Parse([]byte("bodies: [{colliders: [{shape: cuboid, half_extents: [1, 1, 0]}]}]"))
	require.NoError(t, err, "z is only required once the dimension is known")

	a := app.New(physics.DefaultConfiguration(), zerolog.Nop())
	n, err := Spawn(a, lvl)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrInvalid), "%v", err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, a.Physics.Colliders.Len())

	flat := app.New(physics.Configuration{Scale: 1, Dimension: physics.Dim2}, zerolog.Nop())
	n, err = Spawn(flat, lvl)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))
	lvl, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, lvl.Bodies, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("bodies: {"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestBundledLevelsParse(t *testing.T) {
	for _, name := range []string{"demo.yaml", "demo2d.yaml"} {
		_, err := Load(filepath.Join("..", "..", "levels", name))
		assert.NoError(t, err, name)
	}
}
