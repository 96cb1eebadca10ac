package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ShapeType identifies the geometric kind of a collider shape.
type ShapeType int

const (
	ShapeCuboid ShapeType = iota
	ShapeBall
	ShapeTrimesh
	ShapeCapsule
)

// String returns the lowercase name used in level files and log output.
func (t ShapeType) String() string {
	switch t {
	case ShapeCuboid:
		return "cuboid"
	case ShapeBall:
		return "ball"
	case ShapeTrimesh:
		return "trimesh"
	case ShapeCapsule:
		return "capsule"
	default:
		return "unknown"
	}
}

// Shape is the geometry of a collider, expressed in the collider's local frame.
type Shape interface {
	ShapeType() ShapeType
	// LocalAABB returns the half extents of the axis-aligned box centered on the collider origin
	// that contains the shape.
	LocalAABB() (center, half mgl32.Vec3)
}

// Cuboid is a box given by its half extents on each axis.
type Cuboid struct {
	HalfExtents mgl32.Vec3
}

func (c *Cuboid) ShapeType() ShapeType { return ShapeCuboid }

func (c *Cuboid) LocalAABB() (mgl32.Vec3, mgl32.Vec3) {
	return mgl32.Vec3{}, c.HalfExtents
}

// Ball is a sphere (a disc in 2D) of the given radius.
type Ball struct {
	Radius float32
}

func (b *Ball) ShapeType() ShapeType { return ShapeBall }

func (b *Ball) LocalAABB() (mgl32.Vec3, mgl32.Vec3) {
	return mgl32.Vec3{}, mgl32.Vec3{b.Radius, b.Radius, b.Radius}
}

// Capsule is a segment along Y of length 2*HalfHeight swept by Radius.
type Capsule struct {
	HalfHeight float32
	Radius     float32
}

func (c *Capsule) ShapeType() ShapeType { return ShapeCapsule }

func (c *Capsule) LocalAABB() (mgl32.Vec3, mgl32.Vec3) {
	return mgl32.Vec3{}, mgl32.Vec3{c.Radius, c.HalfHeight + c.Radius, c.Radius}
}

// Trimesh is a triangle soup. Indices refer to Vertices, three per triangle.
type Trimesh struct {
	Vertices []mgl32.Vec3
	Indices  [][3]uint32
}

func (t *Trimesh) ShapeType() ShapeType { return ShapeTrimesh }

// LocalAABB is computed from the vertex bounds; an empty mesh has a zero box.
func (t *Trimesh) LocalAABB() (mgl32.Vec3, mgl32.Vec3) {
	if len(t.Vertices) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo, hi := t.Vertices[0], t.Vertices[0]
	for _, v := range t.Vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = math32.Min(lo[i], v[i])
			hi[i] = math32.Max(hi[i], v[i])
		}
	}
	return lo.Add(hi).Mul(0.5), hi.Sub(lo).Mul(0.5)
}

// Validate reports whether every index is in range.
func (t *Trimesh) Validate() bool {
	n := uint32(len(t.Vertices))
	for _, tri := range t.Indices {
		if tri[0] >= n || tri[1] >= n || tri[2] >= n {
			return false
		}
	}
	return true
}

// isNilShape reports a nil interface or a nil pointer to one of the package's shapes.
func isNilShape(s Shape) bool {
	switch v := s.(type) {
	case nil:
		return true
	case *Cuboid:
		return v == nil
	case *Ball:
		return v == nil
	case *Capsule:
		return v == nil
	case *Trimesh:
		return v == nil
	default:
		return false
	}
}
