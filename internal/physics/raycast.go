package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RayHit describes where a ray strikes a box.
type RayHit struct {
	Point    rl.Vector3
	Normal   rl.Vector3 // world-space unit normal of the struck face
	Distance float32
}

// RaycastAABB intersects a ray with a box using the slab method. The
// direction need not be normalized by the caller. Rays starting inside
// the box hit the exit face.
func RaycastAABB(origin, direction rl.Vector3, box AABB, maxDistance float32) (RayHit, bool) {
	direction = rl.Vector3Normalize(direction)
	min, max := box.Min, box.Max

	var tmin, tmax float32

	// X slab
	if direction.X != 0 {
		t1 := (min.X - origin.X) / direction.X
		t2 := (max.X - origin.X) / direction.X
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = t1
		tmax = t2
	} else if origin.X < min.X || origin.X > max.X {
		return RayHit{}, false
	} else {
		tmin = -1e30
		tmax = 1e30
	}

	// Y slab
	if direction.Y != 0 {
		t1 := (min.Y - origin.Y) / direction.Y
		t2 := (max.Y - origin.Y) / direction.Y
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if origin.Y < min.Y || origin.Y > max.Y {
		return RayHit{}, false
	}

	if tmin > tmax {
		return RayHit{}, false
	}

	// Z slab
	if direction.Z != 0 {
		t1 := (min.Z - origin.Z) / direction.Z
		t2 := (max.Z - origin.Z) / direction.Z
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if origin.Z < min.Z || origin.Z > max.Z {
		return RayHit{}, false
	}

	if tmin > tmax || tmax < 0 || tmin > maxDistance {
		return RayHit{}, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return RayHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))

	// Identify the struck face from the hit point
	var normal rl.Vector3
	epsilon := float32(0.001)
	if abs32(point.X-min.X) < epsilon {
		normal = rl.Vector3{X: -1}
	} else if abs32(point.X-max.X) < epsilon {
		normal = rl.Vector3{X: 1}
	} else if abs32(point.Y-min.Y) < epsilon {
		normal = rl.Vector3{Y: -1}
	} else if abs32(point.Y-max.Y) < epsilon {
		normal = rl.Vector3{Y: 1}
	} else if abs32(point.Z-min.Z) < epsilon {
		normal = rl.Vector3{Z: -1}
	} else {
		normal = rl.Vector3{Z: 1}
	}

	return RayHit{Point: point, Normal: normal, Distance: t}, true
}
