package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rotisserie/eris"
)

var (
	// ErrUnknownBody is returned when a collider is attached to a body the world does not hold.
	ErrUnknownBody = eris.New("unknown parent body")
	// ErrNilShape is returned for a collider without geometry, including typed-nil shape pointers.
	ErrNilShape = eris.New("collider has no shape")
)

// Dimension selects between planar (XY) and spatial simulation and rendering.
type Dimension int

const (
	Dim3 Dimension = iota
	Dim2
)

// String returns "3d" or "2d".
func (d Dimension) String() string {
	if d == Dim2 {
		return "2d"
	}
	return "3d"
}

// ParseDimension accepts "2d"/"3d" (case-sensitive, as written in config files).
func ParseDimension(s string) (Dimension, error) {
	switch s {
	case "3d", "":
		return Dim3, nil
	case "2d":
		return Dim2, nil
	default:
		return Dim3, eris.Errorf("invalid dimension %q (want 2d or 3d)", s)
	}
}

// Configuration holds world-wide settings shared with the rendering side.
// Scale converts physics units to render units.
type Configuration struct {
	Scale     float32
	Dimension Dimension
}

// DefaultConfiguration returns scale 1 in 3D.
func DefaultConfiguration() Configuration {
	return Configuration{Scale: 1, Dimension: Dim3}
}

// World holds bodies and colliders and runs a simple physics step: gravity, integration, AABB collision.
type World struct {
	Gravity   mgl32.Vec3
	Bodies    BodySet
	Colliders ColliderSet
	Config    Configuration
}

// NewWorld returns an empty world with gravity (0, -9.8, 0) in Y-up space.
func NewWorld(cfg Configuration) *World {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	return &World{
		Gravity: mgl32.Vec3{0, -9.8, 0},
		Config:  cfg,
	}
}

// SetGravity sets the gravity vector.
func (w *World) SetGravity(g mgl32.Vec3) {
	w.Gravity = g
}

// InsertBody adds b to the world and returns its handle.
func (w *World) InsertBody(b *Body) BodyHandle {
	return w.Bodies.Insert(b)
}

// InsertCollider attaches c to parent and returns its handle.
func (w *World) InsertCollider(c *Collider, parent BodyHandle) (ColliderHandle, error) {
	if c == nil || isNilShape(c.Shape) {
		return ColliderHandle{}, ErrNilShape
	}
	body, ok := w.Bodies.Get(parent)
	if !ok {
		return ColliderHandle{}, eris.Wrapf(ErrUnknownBody, "insert %s collider", c.Shape.ShapeType())
	}
	c.parent = parent
	h := w.Colliders.insert(c)
	body.colliders = append(body.colliders, h)
	return h, nil
}

// RemoveCollider detaches and removes the collider. Returns false for stale handles.
func (w *World) RemoveCollider(h ColliderHandle) bool {
	c, ok := w.Colliders.remove(h)
	if !ok {
		return false
	}
	if body, ok := w.Bodies.Get(c.parent); ok {
		for i, ch := range body.colliders {
			if ch == h {
				body.colliders = append(body.colliders[:i], body.colliders[i+1:]...)
				break
			}
		}
	}
	return true
}

// RemoveBody removes the body and every collider attached to it.
func (w *World) RemoveBody(h BodyHandle) bool {
	body, ok := w.Bodies.remove(h)
	if !ok {
		return false
	}
	for _, ch := range body.colliders {
		w.Colliders.remove(ch)
	}
	body.colliders = nil
	return true
}

// aabb is a world-space box.
type aabb struct {
	min, max mgl32.Vec3
}

// bodyAABB returns the union of the body's collider boxes, or false for bodies without colliders.
func (w *World) bodyAABB(b *Body) (aabb, bool) {
	var box aabb
	found := false
	for _, ch := range b.colliders {
		c, ok := w.Colliders.Get(ch)
		if !ok {
			continue
		}
		center, half := c.Shape.LocalAABB()
		center = center.Add(b.Position).Add(c.Offset)
		lo, hi := center.Sub(half), center.Add(half)
		if !found {
			box = aabb{min: lo, max: hi}
			found = true
			continue
		}
		for i := 0; i < 3; i++ {
			box.min[i] = math32.Min(box.min[i], lo[i])
			box.max[i] = math32.Max(box.max[i], hi[i])
		}
	}
	return box, found
}

// penetrationAxis returns the overlap amount and axis index (0=X, 1=Y, 2=Z) for the minimum penetration.
// If there is no overlap, returns (0, -1). In 2D the Z axis is ignored.
func penetrationAxis(a, b aabb, dim Dimension) (depth float32, axis int) {
	axes := 3
	if dim == Dim2 {
		axes = 2
	}
	axis = -1
	for i := 0; i < axes; i++ {
		overlap := math32.Min(a.max[i], b.max[i]) - math32.Max(a.min[i], b.min[i])
		if overlap <= 0 {
			return 0, -1
		}
		if axis < 0 || overlap < depth {
			depth = overlap
			axis = i
		}
	}
	return depth, axis
}

// Step advances the simulation by dt seconds: apply gravity, integrate, then resolve AABB overlaps.
// There is no global floor; dynamic bodies fall until they hit another body.
func (w *World) Step(dt float32) {
	var bodies []*Body
	w.Bodies.Each(func(_ BodyHandle, b *Body) {
		bodies = append(bodies, b)
	})

	for _, b := range bodies {
		if b.Static {
			continue
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Mul(dt))
		if w.Config.Dimension == Dim2 {
			b.Velocity[2] = 0
		}
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}

	for i := 0; i < len(bodies); i++ {
		bi := bodies[i]
		boxI, ok := w.bodyAABB(bi)
		if !ok {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			bj := bodies[j]
			if bi.Static && bj.Static {
				continue
			}
			boxJ, ok := w.bodyAABB(bj)
			if !ok {
				continue
			}
			depth, axis := penetrationAxis(boxI, boxJ, w.Config.Dimension)
			if axis < 0 {
				continue
			}
			// Push apart along the axis, away from each other. Static bodies don't move.
			dir := float32(1)
			if bi.Position[axis] > bj.Position[axis] {
				dir = -1
			}
			var moveI, moveJ float32
			switch {
			case bi.Static:
				moveJ = depth
			case bj.Static:
				moveI = -depth
			default:
				total := bi.Mass + bj.Mass
				moveI = -depth * (bj.Mass / total)
				moveJ = depth * (bi.Mass / total)
			}
			bi.Position[axis] += moveI * dir
			bj.Position[axis] += moveJ * dir
			if !bi.Static {
				bi.Velocity[axis] = 0
			}
			if !bj.Static {
				bj.Velocity[axis] = 0
			}
			boxI, _ = w.bodyAABB(bi) // update for next pair
		}
	}
}
