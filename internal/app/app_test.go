package app

import (
	"testing"

	"collider-render/internal/physics"
	"collider-render/internal/render"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/arche/ecs"
	"github.com/mlange-42/arche/generic"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickRendersAndSyncs(t *testing.T) {
	a := New(physics.Configuration{Scale: 10, Dimension: physics.Dim3}, zerolog.Nop())
	ground := a.Physics.InsertBody(physics.NewBody(mgl32.Vec3{0, -1, 0}, 1, true))
	ball := a.Physics.InsertBody(physics.NewBody(mgl32.Vec3{0, 5, 0}, 1, false))

	ge, err := a.SpawnCollider(physics.NewCollider(&physics.Cuboid{HalfExtents: mgl32.Vec3{5, 1, 5}}), ground, nil)
	require.NoError(t, err)
	be, err := a.SpawnCollider(physics.NewCollider(&physics.Ball{Radius: 0.5}), ball, &render.RenderColor{R: 0, G: 1, B: 0})
	require.NoError(t, err)

	stats := a.Tick(1.0 / 60)
	assert.Equal(t, render.Stats{Created: 2}, stats)
	assert.Equal(t, stats, a.LastStats())

	transforms := generic.NewMap[render.Transform](&a.World)
	assert.Equal(t, mgl32.Vec3{50, 10, 50}, transforms.Get(ge).Scale)
	assert.Equal(t, mgl32.Vec3{0, -10, 0}, transforms.Get(ge).Translation)
	assert.Equal(t, mgl32.Vec3{5, 5, 5}, transforms.Get(be).Scale)

	before := transforms.Get(be).Translation.Y()
	a.Tick(1.0 / 60)
	assert.Less(t, transforms.Get(be).Translation.Y(), before, "ball falls")
}

func TestSpawnColliderUnknownParent(t *testing.T) {
	a := New(physics.DefaultConfiguration(), zerolog.Nop())
	_, err := a.SpawnCollider(physics.NewCollider(&physics.Ball{Radius: 1}), physics.BodyHandle{Index: 9, Generation: 1}, nil)
	require.Error(t, err)
	assert.True(t, eris.Is(err, physics.ErrUnknownBody))
}

func TestRunHeadlessAccumulates(t *testing.T) {
	a := New(physics.DefaultConfiguration(), zerolog.Nop())
	b := a.Physics.InsertBody(physics.NewBody(mgl32.Vec3{}, 1, true))
	for i := 0; i < 3; i++ {
		_, err := a.SpawnCollider(physics.NewCollider(&physics.Ball{Radius: 1}), b, nil)
		require.NoError(t, err)
	}
	_, err := a.SpawnCollider(physics.NewCollider(&physics.Capsule{HalfHeight: 1, Radius: 1}), b, nil)
	require.NoError(t, err)

	var calls []float32
	a.AddSystem(System{Name: "probe", Update: func(_ *ecs.World, dt float32) { calls = append(calls, dt) }})

	totals := a.RunHeadless(5, 0.1)
	assert.Equal(t, Totals{Ticks: 5, Created: 3, Unsupported: 1}, totals)
	assert.Equal(t, totals, a.Totals())
	assert.Len(t, calls, 5)
	assert.Equal(t, float32(0.1), calls[0])
}

func TestLateSpawnIsPickedUpNextTick(t *testing.T) {
	a := New(physics.DefaultConfiguration(), zerolog.Nop())
	b := a.Physics.InsertBody(physics.NewBody(mgl32.Vec3{}, 1, true))
	assert.Equal(t, render.Stats{}, a.Tick(0))

	_, err := a.SpawnCollider(physics.NewCollider(&physics.Ball{Radius: 1}), b, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Tick(0).Created)
}
