package physics

import "github.com/go-gl/mathgl/mgl32"

// Body is a rigid body with position, velocity and mass.
// Static bodies do not move and are not affected by gravity.
type Body struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Mass     float32
	Static   bool

	colliders []ColliderHandle
}

// NewBody returns a body at position with zero velocity.
// mass is used for collision response; values <= 0 become 1.
func NewBody(position mgl32.Vec3, mass float32, static bool) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		Position: position,
		Mass:     mass,
		Static:   static,
	}
}

// IsStatic reports whether the body is immovable.
func (b *Body) IsStatic() bool {
	return b.Static
}

// Colliders returns the handles of the colliders attached to this body.
func (b *Body) Colliders() []ColliderHandle {
	out := make([]ColliderHandle, len(b.colliders))
	copy(out, b.colliders)
	return out
}

// Collider attaches a shape to a parent body at a local offset.
type Collider struct {
	Shape  Shape
	Offset mgl32.Vec3

	parent BodyHandle
}

// NewCollider returns a collider for shape at zero offset. The parent is set on insertion.
func NewCollider(shape Shape) *Collider {
	return &Collider{Shape: shape}
}

// Parent returns the handle of the body the collider is attached to.
func (c *Collider) Parent() BodyHandle {
	return c.parent
}
