package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodySetStaleHandle(t *testing.T) {
	w := NewWorld(DefaultConfiguration())
	h := w.InsertBody(NewBody(mgl32.Vec3{}, 1, false))
	_, ok := w.Bodies.Get(h)
	require.True(t, ok)

	require.True(t, w.RemoveBody(h))
	_, ok = w.Bodies.Get(h)
	assert.False(t, ok)
	assert.False(t, w.RemoveBody(h))

	// Slot is reused with a new generation; the old handle must not resolve to it.
	h2 := w.InsertBody(NewBody(mgl32.Vec3{1, 0, 0}, 1, false))
	assert.Equal(t, h.Index, h2.Index)
	assert.NotEqual(t, h.Generation, h2.Generation)
	_, ok = w.Bodies.Get(h)
	assert.False(t, ok)
	assert.Equal(t, 1, w.Bodies.Len())
}

func TestZeroHandleNeverResolves(t *testing.T) {
	w := NewWorld(DefaultConfiguration())
	w.InsertBody(NewBody(mgl32.Vec3{}, 1, false))
	_, ok := w.Bodies.Get(BodyHandle{})
	assert.False(t, ok)
	_, ok = w.Colliders.Get(ColliderHandle{})
	assert.False(t, ok)
}

func TestInsertColliderUnknownParent(t *testing.T) {
	w := NewWorld(DefaultConfiguration())
	_, err := w.InsertCollider(NewCollider(&Ball{Radius: 1}), BodyHandle{Index: 3, Generation: 1})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnknownBody))
}

func TestInsertColliderRejectsNilShape(t *testing.T) {
	var cuboid *Cuboid
	var ball *Ball
	var capsule *Capsule
	var mesh *Trimesh
	shapes := map[string]Shape{
		"nil":           nil,
		"typed cuboid":  cuboid,
		"typed ball":    ball,
		"typed capsule": capsule,
		"typed trimesh": mesh,
	}
	for name, shape := range shapes {
		t.Run(name, func(t *testing.T) {
			w := NewWorld(DefaultConfiguration())
			bh := w.InsertBody(NewBody(mgl32.Vec3{}, 1, false))

			_, err := w.InsertCollider(NewCollider(shape), bh)
			assert.True(t, eris.Is(err, ErrNilShape), "%v", err)
			_, err = w.InsertCollider(NewCollider(shape), BodyHandle{Index: 9, Generation: 1})
			assert.True(t, eris.Is(err, ErrNilShape), "%v", err)
			_, err = w.InsertCollider(nil, bh)
			assert.True(t, eris.Is(err, ErrNilShape), "%v", err)

			assert.Equal(t, 0, w.Colliders.Len())
			body, ok := w.Bodies.Get(bh)
			require.True(t, ok)
			assert.Empty(t, body.Colliders())
			assert.NotPanics(t, func() { w.Step(1.0 / 60) })
		})
	}
}

func TestRemoveBodyCascadesToColliders(t *testing.T) {
	w := NewWorld(DefaultConfiguration())
	bh := w.InsertBody(NewBody(mgl32.Vec3{}, 1, false))
	c1, err := w.InsertCollider(NewCollider(&Ball{Radius: 1}), bh)
	require.NoError(t, err)
	c2, err := w.InsertCollider(NewCollider(&Cuboid{HalfExtents: mgl32.Vec3{1, 1, 1}}), bh)
	require.NoError(t, err)

	c, ok := w.Colliders.Get(c1)
	require.True(t, ok)
	assert.Equal(t, bh, c.Parent())

	require.True(t, w.RemoveBody(bh))
	_, ok = w.Colliders.Get(c1)
	assert.False(t, ok)
	_, ok = w.Colliders.Get(c2)
	assert.False(t, ok)
	assert.Equal(t, 0, w.Colliders.Len())
}

func TestRemoveColliderDetaches(t *testing.T) {
	w := NewWorld(DefaultConfiguration())
	bh := w.InsertBody(NewBody(mgl32.Vec3{}, 1, false))
	ch, err := w.InsertCollider(NewCollider(&Ball{Radius: 1}), bh)
	require.NoError(t, err)

	require.True(t, w.RemoveCollider(ch))
	b, _ := w.Bodies.Get(bh)
	assert.Empty(t, b.Colliders())
	assert.False(t, w.RemoveCollider(ch))
}

func TestStepGravityAndStatic(t *testing.T) {
	w := NewWorld(DefaultConfiguration())
	dyn := w.InsertBody(NewBody(mgl32.Vec3{0, 10, 0}, 1, false))
	ground := w.InsertBody(NewBody(mgl32.Vec3{0, 0, 0}, 1, true))

	w.Step(0.5)

	d, _ := w.Bodies.Get(dyn)
	g, _ := w.Bodies.Get(ground)
	assert.InDelta(t, -4.9, d.Velocity.Y(), 1e-5)
	assert.InDelta(t, 10-2.45, d.Position.Y(), 1e-5)
	assert.Equal(t, mgl32.Vec3{}, g.Position)
}

func TestStepRestsOnStaticGround(t *testing.T) {
	w := NewWorld(DefaultConfiguration())
	ground := w.InsertBody(NewBody(mgl32.Vec3{0, -1, 0}, 1, true))
	_, err := w.InsertCollider(NewCollider(&Cuboid{HalfExtents: mgl32.Vec3{10, 1, 10}}), ground)
	require.NoError(t, err)
	ball := w.InsertBody(NewBody(mgl32.Vec3{0, 3, 0}, 1, false))
	_, err = w.InsertCollider(NewCollider(&Ball{Radius: 0.5}), ball)
	require.NoError(t, err)

	for i := 0; i < 240; i++ {
		w.Step(1.0 / 60)
	}

	b, _ := w.Bodies.Get(ball)
	assert.InDelta(t, 0.5, b.Position.Y(), 0.05)
	g, _ := w.Bodies.Get(ground)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, g.Position)
}

func TestStepTwoDimensionalIgnoresZ(t *testing.T) {
	w := NewWorld(Configuration{Scale: 1, Dimension: Dim2})
	w.SetGravity(mgl32.Vec3{0, -10, -10})
	h := w.InsertBody(NewBody(mgl32.Vec3{}, 1, false))
	w.Step(1)
	b, _ := w.Bodies.Get(h)
	assert.Equal(t, float32(0), b.Position.Z())
	assert.Equal(t, float32(-10), b.Position.Y())
}

func TestPenetrationAxis(t *testing.T) {
	a := aabb{min: mgl32.Vec3{0, 0, 0}, max: mgl32.Vec3{2, 2, 2}}
	b := aabb{min: mgl32.Vec3{1.5, 1, 1}, max: mgl32.Vec3{3, 3, 3}}
	depth, axis := penetrationAxis(a, b, Dim3)
	assert.Equal(t, 0, axis)
	assert.InDelta(t, 0.5, depth, 1e-6)

	c := aabb{min: mgl32.Vec3{5, 5, 5}, max: mgl32.Vec3{6, 6, 6}}
	_, axis = penetrationAxis(a, c, Dim3)
	assert.Equal(t, -1, axis)
}

func TestTrimeshAABBAndValidate(t *testing.T) {
	tm := &Trimesh{
		Vertices: []mgl32.Vec3{{-1, 0, 0}, {3, 2, 0}, {1, -2, 0}},
		Indices:  [][3]uint32{{0, 1, 2}},
	}
	center, half := tm.LocalAABB()
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, center)
	assert.Equal(t, mgl32.Vec3{2, 2, 0}, half)
	assert.True(t, tm.Validate())

	tm.Indices = append(tm.Indices, [3]uint32{0, 1, 3})
	assert.False(t, tm.Validate())
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		in      string
		want    Dimension
		wantErr bool
	}{
		{"3d", Dim3, false},
		{"", Dim3, false},
		{"2d", Dim2, false},
		{"4d", Dim3, true},
	}
	for _, tt := range tests {
		got, err := ParseDimension(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
