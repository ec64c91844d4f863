package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// BodyType selects how the solver treats a body.
type BodyType uint8

const (
	// BodyStatic bodies are immovable: infinite mass, never integrated,
	// never affected by gravity. Terrain and placed blocks are static.
	BodyStatic BodyType = iota
	// BodyDynamic bodies fall under gravity and are resolved against
	// statics and each other.
	BodyDynamic
)

func (t BodyType) String() string {
	if t == BodyStatic {
		return "static"
	}
	return "dynamic"
}

// ShapeKind discriminates the collision shape variants.
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeCapsule
)

// Shape is a closed variant: an axis-aligned box or a vertical capsule.
type Shape struct {
	Kind ShapeKind

	// Box
	Size rl.Vector3 // full extents

	// Capsule (axis along +Y)
	Radius float32
	Height float32 // total height, caps included
}

// BoxShape returns an axis-aligned box shape with the given full extents.
func BoxShape(size rl.Vector3) Shape {
	return Shape{Kind: ShapeBox, Size: size}
}

// CubeShape returns a box shape with equal extents on every axis.
func CubeShape(edge float32) Shape {
	return BoxShape(rl.Vector3{X: edge, Y: edge, Z: edge})
}

// CapsuleShape returns a vertical capsule. Height is the total height;
// it is clamped to at least two radii so the segment never inverts.
func CapsuleShape(radius, height float32) Shape {
	if height < 2*radius {
		height = 2 * radius
	}
	return Shape{Kind: ShapeCapsule, Radius: radius, Height: height}
}

// halfExtents returns the half extents of the shape's bounding box.
func (s Shape) halfExtents() rl.Vector3 {
	switch s.Kind {
	case ShapeCapsule:
		return rl.Vector3{X: s.Radius, Y: s.Height / 2, Z: s.Radius}
	default:
		return rl.Vector3{X: s.Size.X / 2, Y: s.Size.Y / 2, Z: s.Size.Z / 2}
	}
}

// segmentHalf returns the half length of a capsule's core segment.
func (s Shape) segmentHalf() float32 {
	half := s.Height/2 - s.Radius
	if half < 0 {
		return 0
	}
	return half
}

// Sleep thresholds. A dynamic body below the velocity threshold for the
// full time threshold is put to sleep and skipped by the integrator until
// a contact with enough relative speed wakes it.
const (
	SleepVelocityThreshold = 0.15 // units/sec
	SleepTimeThreshold     = 0.3  // seconds below threshold before sleeping
)

// Body is a rigid body owned by exactly one World. The zero value is not
// usable; bodies come from World.CreateBody and die in World.RemoveBody.
type Body struct {
	Position rl.Vector3
	Rotation rl.Vector3 // euler degrees; stays zero, kept as part of the pose
	Velocity rl.Vector3

	Mass       float32
	Bounciness float32 // 0 = dead stop, 1 = perfect bounce
	Friction   float32 // 0 = ice, 1 = stops immediately
	CanSleep   bool

	typ   BodyType
	shape Shape

	sleeping   bool
	sleepTimer float32

	world *World // nil once removed
}

// Type reports whether the body is static or dynamic.
func (b *Body) Type() BodyType { return b.typ }

// IsStatic reports whether the solver treats the body as immovable.
func (b *Body) IsStatic() bool { return b.typ == BodyStatic }

// Shape returns the body's collision shape.
func (b *Body) Shape() Shape { return b.shape }

// Sleeping reports whether the integrator is currently skipping the body.
func (b *Body) Sleeping() bool { return b.sleeping }

// Pose returns the body's translation and rotation.
func (b *Body) Pose() (rl.Vector3, rl.Vector3) {
	return b.Position, b.Rotation
}

// SetPosition teleports the body. Moving a static body invalidates the
// static broad-phase grid; the world rebuilds it on the next step.
func (b *Body) SetPosition(pos rl.Vector3) {
	b.Position = pos
	if b.world != nil && b.typ == BodyStatic {
		b.world.staticsDirty = true
	}
}

// Wake forces the body out of sleep.
func (b *Body) Wake() {
	b.sleeping = false
	b.sleepTimer = 0
}

// AABB returns the body's current bounding box.
func (b *Body) AABB() AABB {
	half := b.shape.halfExtents()
	return AABB{
		Min: rl.Vector3Subtract(b.Position, half),
		Max: rl.Vector3Add(b.Position, half),
	}
}

// trySleep accumulates quiet time and puts the body to sleep once it has
// been slow for long enough. Near-rest velocity is damped to kill jitter.
func (b *Body) trySleep(dt float32) {
	if !b.CanSleep || b.sleeping {
		return
	}
	if rl.Vector3Length(b.Velocity) < SleepVelocityThreshold {
		b.sleepTimer += dt
		b.Velocity = rl.Vector3Scale(b.Velocity, 0.9)
		if b.sleepTimer >= SleepTimeThreshold {
			b.sleeping = true
			b.Velocity = rl.Vector3{}
		}
	} else {
		b.sleepTimer = 0
	}
}
