package render

import (
	"collider-render/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rotisserie/eris"
)

var (
	// ErrUnsupportedShape is returned for collider shapes that have no mesh representation.
	ErrUnsupportedShape = eris.New("unsupported collider shape")
	// ErrInvalidTrimesh is returned when a trimesh index points past its vertices.
	ErrInvalidTrimesh = eris.New("trimesh index out of range")
)

const icosphereSubdivisions = 2

// primitive identifies a shared unit mesh.
type primitive int

const (
	primitiveNone primitive = iota
	primitiveCube
	primitiveQuad
	primitiveSphere
)

// primitiveFor returns the shared unit mesh for shape, or primitiveNone when the shape needs its own mesh.
func primitiveFor(t physics.ShapeType, dim physics.Dimension) primitive {
	switch t {
	case physics.ShapeCuboid:
		if dim == physics.Dim2 {
			return primitiveQuad
		}
		return primitiveCube
	case physics.ShapeBall:
		return primitiveSphere
	default:
		return primitiveNone
	}
}

func (p primitive) mesh() MeshData {
	switch p {
	case primitiveCube:
		return Cube(1)
	case primitiveQuad:
		return Quad(mgl32.Vec2{2, 2})
	default:
		return Icosphere(1, icosphereSubdivisions)
	}
}

// MeshForShape builds the unit mesh for a collider shape. Cuboids become a cube (a 2×2 quad in 2D)
// and balls a radius-1 icosphere; both are sized by the transform scale. Trimeshes are copied as-is.
func MeshForShape(shape physics.Shape, dim physics.Dimension) (MeshData, error) {
	if p := primitiveFor(shape.ShapeType(), dim); p != primitiveNone {
		return p.mesh(), nil
	}
	if tm, ok := shape.(*physics.Trimesh); ok {
		if !tm.Validate() {
			return MeshData{}, ErrInvalidTrimesh
		}
		return FromTrimesh(tm, dim), nil
	}
	return MeshData{}, eris.Wrapf(ErrUnsupportedShape, "shape %s", shape.ShapeType())
}

// ScaleForShape returns the transform scale for a collider shape, multiplied by the global scale.
func ScaleForShape(shape physics.Shape, dim physics.Dimension, scale float32) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	switch s := shape.(type) {
	case *physics.Cuboid:
		if dim == physics.Dim2 {
			v = mgl32.Vec3{s.HalfExtents.X(), s.HalfExtents.Y(), 1}
		} else {
			v = s.HalfExtents
		}
	case *physics.Ball:
		v = mgl32.Vec3{s.Radius, s.Radius, s.Radius}
	case *physics.Trimesh:
		v = mgl32.Vec3{1, 1, 1}
	default:
		return mgl32.Vec3{}, eris.Wrapf(ErrUnsupportedShape, "shape %s", shape.ShapeType())
	}
	return v.Mul(scale), nil
}
