package render

import (
	"collider-render/internal/physics"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Topology describes how indices form primitives. Only triangle lists are produced here.
type Topology int

const (
	TriangleList Topology = iota
)

// MeshData is CPU-side geometry. Normals and UVs, when present, have one entry per position.
type MeshData struct {
	Topology  Topology
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// TriangleCount returns the number of indexed triangles.
func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// Cube returns an axis-aligned box spanning [-size, size] on every axis, four vertices per face.
func Cube(size float32) MeshData {
	type face struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
	}
	s := size
	faces := [6]face{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{-s, s, -s}, {s, s, -s}, {s, -s, -s}, {-s, -s, -s}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{s, -s, -s}, {s, s, -s}, {s, s, s}, {s, -s, s}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-s, -s, s}, {-s, s, s}, {-s, s, -s}, {-s, -s, -s}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{s, s, -s}, {-s, s, -s}, {-s, s, s}, {s, s, s}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{s, -s, s}, {-s, -s, s}, {-s, -s, -s}, {s, -s, -s}}},
	}
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	m := MeshData{Topology: TriangleList}
	for _, f := range faces {
		base := uint32(len(m.Positions))
		for i, c := range f.corners {
			m.Positions = append(m.Positions, c)
			m.Normals = append(m.Normals, f.normal)
			m.UVs = append(m.UVs, uvs[i])
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	return m
}

// Quad returns a rectangle of the given size in the XY plane, centered on the origin and facing +Z.
func Quad(size mgl32.Vec2) MeshData {
	hx, hy := size.X()/2, size.Y()/2
	return MeshData{
		Topology:  TriangleList,
		Positions: []mgl32.Vec3{{-hx, -hy, 0}, {hx, -hy, 0}, {hx, hy, 0}, {-hx, hy, 0}},
		Normals:   []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		UVs:       []mgl32.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

// Icosphere returns a sphere built by subdividing an icosahedron. Each subdivision splits
// every triangle into four, so there are 20*4^n faces and 10*4^n+2 vertices.
func Icosphere(radius float32, subdivisions int) MeshData {
	t := (1 + math32.Sqrt(5)) / 2
	verts := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range verts {
		verts[i] = verts[i].Normalize()
	}
	faces := [][3]uint32{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	for s := 0; s < subdivisions; s++ {
		mid := make(map[[2]uint32]uint32)
		midpoint := func(a, b uint32) uint32 {
			key := [2]uint32{min(a, b), max(a, b)}
			if idx, ok := mid[key]; ok {
				return idx
			}
			verts = append(verts, verts[a].Add(verts[b]).Mul(0.5).Normalize())
			idx := uint32(len(verts) - 1)
			mid[key] = idx
			return idx
		}
		next := make([][3]uint32, 0, len(faces)*4)
		for _, f := range faces {
			ab := midpoint(f[0], f[1])
			bc := midpoint(f[1], f[2])
			ca := midpoint(f[2], f[0])
			next = append(next,
				[3]uint32{f[0], ab, ca},
				[3]uint32{f[1], bc, ab},
				[3]uint32{f[2], ca, bc},
				[3]uint32{ab, bc, ca},
			)
		}
		faces = next
	}

	m := MeshData{Topology: TriangleList}
	m.Positions = make([]mgl32.Vec3, len(verts))
	m.Normals = make([]mgl32.Vec3, len(verts))
	m.UVs = make([]mgl32.Vec2, len(verts))
	for i, v := range verts {
		m.Positions[i] = v.Mul(radius)
		m.Normals[i] = v
		u := 0.5 + math32.Atan2(v.Z(), v.X())/(2*math32.Pi)
		w := 0.5 - math32.Asin(v.Y())/math32.Pi
		m.UVs[i] = mgl32.Vec2{u, w}
	}
	m.Indices = make([]uint32, 0, len(faces)*3)
	for _, f := range faces {
		m.Indices = append(m.Indices, f[0], f[1], f[2])
	}
	return m
}

// FromTrimesh copies a triangle mesh collider into render geometry. In 2D the Z coordinate is dropped.
// Normals are averaged from adjacent faces; in 2D they all face +Z.
func FromTrimesh(tm *physics.Trimesh, dim physics.Dimension) MeshData {
	m := MeshData{Topology: TriangleList}
	m.Positions = make([]mgl32.Vec3, len(tm.Vertices))
	for i, v := range tm.Vertices {
		if dim == physics.Dim2 {
			v[2] = 0
		}
		m.Positions[i] = v
	}
	m.Indices = make([]uint32, 0, len(tm.Indices)*3)
	for _, tri := range tm.Indices {
		m.Indices = append(m.Indices, tri[0], tri[1], tri[2])
	}

	m.Normals = make([]mgl32.Vec3, len(m.Positions))
	if dim == physics.Dim2 {
		for i := range m.Normals {
			m.Normals[i] = mgl32.Vec3{0, 0, 1}
		}
		return m
	}
	for _, tri := range tm.Indices {
		a, b, c := m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		for _, idx := range tri {
			m.Normals[idx] = m.Normals[idx].Add(n)
		}
	}
	for i, n := range m.Normals {
		if n.Len() > 0 {
			m.Normals[i] = n.Normalize()
		}
	}
	return m
}
