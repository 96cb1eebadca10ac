package render

import (
	"testing"

	"collider-render/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertBounds(t *testing.T, m MeshData, lo, hi mgl32.Vec3) {
	t.Helper()
	for _, p := range m.Positions {
		for i := 0; i < 3; i++ {
			assert.GreaterOrEqual(t, p[i], lo[i]-1e-5)
			assert.LessOrEqual(t, p[i], hi[i]+1e-5)
		}
	}
}

func assertIndicesInRange(t *testing.T, m MeshData) {
	t.Helper()
	for _, idx := range m.Indices {
		require.Less(t, int(idx), len(m.Positions))
	}
}

func TestCube(t *testing.T) {
	m := Cube(1)
	assert.Len(t, m.Positions, 24)
	assert.Len(t, m.Normals, 24)
	assert.Len(t, m.UVs, 24)
	assert.Len(t, m.Indices, 36)
	assertBounds(t, m, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	assertIndicesInRange(t, m)

	// Every triangle winds counter-clockwise around its face normal.
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Positions[m.Indices[i]], m.Positions[m.Indices[i+1]], m.Positions[m.Indices[i+2]]
		n := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, n.Dot(m.Normals[m.Indices[i]]), float32(0), "triangle %d", i/3)
	}
}

func TestQuad(t *testing.T) {
	m := Quad(mgl32.Vec2{2, 2})
	assert.Len(t, m.Positions, 4)
	assert.Len(t, m.Indices, 6)
	assertBounds(t, m, mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, 1, 0})
	for _, n := range m.Normals {
		assert.Equal(t, mgl32.Vec3{0, 0, 1}, n)
	}
}

func TestIcosphere(t *testing.T) {
	tests := []struct {
		subdivisions int
		verts        int
		faces        int
	}{
		{0, 12, 20},
		{1, 42, 80},
		{2, 162, 320},
	}
	for _, tt := range tests {
		m := Icosphere(1, tt.subdivisions)
		assert.Len(t, m.Positions, tt.verts)
		assert.Equal(t, tt.faces, m.TriangleCount())
		assertIndicesInRange(t, m)
		for _, p := range m.Positions {
			assert.InDelta(t, 1, p.Len(), 1e-5)
		}
	}

	m := Icosphere(2.5, 1)
	for _, p := range m.Positions {
		assert.InDelta(t, 2.5, p.Len(), 1e-5)
	}
}

func TestFromTrimesh(t *testing.T) {
	tm := &physics.Trimesh{
		Vertices: []mgl32.Vec3{{0, 0, 4}, {1, 0, 4}, {0, 1, 4}, {1, 1, 4}},
		Indices:  [][3]uint32{{0, 1, 2}, {1, 3, 2}},
	}

	m2 := FromTrimesh(tm, physics.Dim2)
	assert.Equal(t, []uint32{0, 1, 2, 1, 3, 2}, m2.Indices)
	for _, p := range m2.Positions {
		assert.Equal(t, float32(0), p.Z())
	}
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, m2.Normals[3])

	m3 := FromTrimesh(tm, physics.Dim3)
	assert.Equal(t, float32(4), m3.Positions[0].Z())
	for _, n := range m3.Normals {
		assert.InDelta(t, 1, n.Z(), 1e-6)
	}
	// The collider keeps its own vertices.
	assert.Equal(t, float32(4), tm.Vertices[0].Z())
}

func TestMeshForShape(t *testing.T) {
	m, err := MeshForShape(&physics.Cuboid{HalfExtents: mgl32.Vec3{5, 5, 5}}, physics.Dim3)
	require.NoError(t, err)
	assert.Len(t, m.Positions, 24)

	m, err = MeshForShape(&physics.Cuboid{HalfExtents: mgl32.Vec3{5, 5, 5}}, physics.Dim2)
	require.NoError(t, err)
	assert.Len(t, m.Positions, 4)

	m, err = MeshForShape(&physics.Ball{Radius: 7}, physics.Dim2)
	require.NoError(t, err)
	assert.InDelta(t, 1, m.Positions[0].Len(), 1e-5)

	_, err = MeshForShape(&physics.Capsule{HalfHeight: 1, Radius: 1}, physics.Dim3)
	assert.True(t, eris.Is(err, ErrUnsupportedShape))

	_, err = ScaleForShape(&physics.Capsule{HalfHeight: 1, Radius: 1}, physics.Dim3, 1)
	assert.True(t, eris.Is(err, ErrUnsupportedShape))

	_, err = MeshForShape(&physics.Trimesh{Vertices: nil, Indices: [][3]uint32{{0, 0, 0}}}, physics.Dim3)
	assert.True(t, eris.Is(err, ErrInvalidTrimesh))
}

func TestColorPicker(t *testing.T) {
	var p colorPicker
	assert.Equal(t, GroundColor, p.next(true))
	assert.Equal(t, Palette[1], p.next(false))
	assert.Equal(t, GroundColor, p.next(true))
	assert.Equal(t, Palette[2], p.next(false))
	assert.Equal(t, Palette[0], p.next(false))

	assert.Equal(t, RGB(0.5, 0.25, 1), resolveColor(GroundColor, &RenderColor{R: 0.5, G: 0.25, B: 1}))
	assert.Equal(t, GroundColor, resolveColor(GroundColor, nil))
	assert.InDelta(t, 243.0/255, GroundColor.R, 1e-6)
	assert.Equal(t, float32(1), Palette[0].A)
}

func TestTransformMatrix(t *testing.T) {
	tr := TransformFromScale(mgl32.Vec3{2, 3, 4})
	tr.Translation = mgl32.Vec3{1, 1, 1}
	p := tr.Matrix().Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	assert.Equal(t, mgl32.Vec4{3, 4, 5, 1}, p)
}

func TestAssets(t *testing.T) {
	a := NewAssets[StandardMaterial]()
	h1 := a.Add(StandardMaterial{BaseColor: GroundColor})
	h2 := a.Add(StandardMaterial{BaseColor: Palette[0]})
	assert.False(t, h1.IsZero())
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, 2, a.Len())

	a.Remove(h1)
	assert.Nil(t, a.Get(h1))
	h3 := a.Add(StandardMaterial{})
	assert.NotEqual(t, h1, h3)
	assert.Nil(t, a.Get(Handle{}))
}
