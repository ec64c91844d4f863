package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestCubeShapeHalfExtents(t *testing.T) {
	s := CubeShape(0.5)

	he := s.halfExtents()
	if he.X != 0.25 || he.Y != 0.25 || he.Z != 0.25 {
		t.Errorf("Expected half extents 0.25, got %v", he)
	}
}

func TestCapsuleShapeClampsHeight(t *testing.T) {
	s := CapsuleShape(0.3, 0.1)

	if s.Height < 0.6 {
		t.Errorf("Capsule height should be at least two radii, got %f", s.Height)
	}
	if s.segmentHalf() != 0 {
		t.Errorf("Degenerate capsule segment should collapse to a sphere, got %f", s.segmentHalf())
	}

	tall := CapsuleShape(0.3, 0.9)
	if tall.segmentHalf() != 0.15 {
		t.Errorf("Expected segment half 0.15, got %f", tall.segmentHalf())
	}
}

func TestBodyTypeString(t *testing.T) {
	if BodyStatic.String() != "static" {
		t.Errorf("Expected \"static\", got %q", BodyStatic.String())
	}
	if BodyDynamic.String() != "dynamic" {
		t.Errorf("Expected \"dynamic\", got %q", BodyDynamic.String())
	}
}

func TestBodyAABBForBox(t *testing.T) {
	w := NewWorld()
	b, _ := w.CreateBody(rl.Vector3{X: 1, Y: 2, Z: 3}, BodyDynamic, CubeShape(0.5))

	bb := b.AABB()
	if bb.Min.X != 0.75 || bb.Max.X != 1.25 {
		t.Errorf("Expected x range [0.75, 1.25], got [%f, %f]", bb.Min.X, bb.Max.X)
	}
	if bb.Min.Y != 1.75 || bb.Max.Y != 2.25 {
		t.Errorf("Expected y range [1.75, 2.25], got [%f, %f]", bb.Min.Y, bb.Max.Y)
	}
}

func TestBodyAABBForCapsule(t *testing.T) {
	w := NewWorld()
	b, _ := w.CreateBody(rl.Vector3{Y: 0.45}, BodyStatic, CapsuleShape(0.3, 0.9))

	bb := b.AABB()
	if bb.Min.Y != 0 || bb.Max.Y != 0.9 {
		t.Errorf("Expected y range [0, 0.9], got [%f, %f]", bb.Min.Y, bb.Max.Y)
	}
	if bb.Min.X != -0.3 || bb.Max.X != 0.3 {
		t.Errorf("Expected x range [-0.3, 0.3], got [%f, %f]", bb.Min.X, bb.Max.X)
	}
}

func TestSetPositionDirtiesStaticGrid(t *testing.T) {
	w := NewWorld()
	b, _ := w.CreateBody(rl.Vector3{}, BodyStatic, CapsuleShape(0.3, 0.9))
	w.Step()

	if w.staticsDirty {
		t.Fatal("Static grid should be clean after a step")
	}
	b.SetPosition(rl.Vector3{X: 2})
	if !w.staticsDirty {
		t.Error("Moving a static body should dirty the static grid")
	}
}

func TestSleepRequiresSustainedStillness(t *testing.T) {
	w := NewWorld()
	b, _ := w.CreateBody(rl.Vector3{Y: 0.25}, BodyDynamic, CubeShape(0.5))
	b.Velocity = rl.Vector3{X: 0.01}

	// One near-still step is not enough
	b.trySleep(FixedStep)
	if b.Sleeping() {
		t.Error("Body slept before the time threshold")
	}

	for i := 0; i < 60; i++ {
		b.trySleep(FixedStep)
	}
	if !b.Sleeping() {
		t.Error("Near-still body should be asleep after the time threshold")
	}
	if b.Velocity.X != 0 {
		t.Errorf("Sleep should zero velocity, got %f", b.Velocity.X)
	}
}

func TestFastBodyResetsSleepTimer(t *testing.T) {
	w := NewWorld()
	b, _ := w.CreateBody(rl.Vector3{Y: 0.25}, BodyDynamic, CubeShape(0.5))

	b.Velocity = rl.Vector3{X: 0.01}
	for i := 0; i < 10; i++ {
		b.trySleep(FixedStep)
	}
	b.Velocity = rl.Vector3{X: 5}
	b.trySleep(FixedStep)

	if b.sleepTimer != 0 {
		t.Errorf("Fast movement should reset the sleep timer, got %f", b.sleepTimer)
	}
}

func TestWakeClearsSleepState(t *testing.T) {
	w := NewWorld()
	b, _ := w.CreateBody(rl.Vector3{Y: 0.25}, BodyDynamic, CubeShape(0.5))

	for i := 0; i < 60; i++ {
		b.trySleep(FixedStep)
	}
	if !b.Sleeping() {
		t.Fatal("Body should be asleep")
	}

	b.Wake()
	if b.Sleeping() {
		t.Error("Wake should clear the sleeping flag")
	}
	if b.sleepTimer != 0 {
		t.Errorf("Wake should reset the sleep timer, got %f", b.sleepTimer)
	}
}

func TestCanSleepFalseNeverSleeps(t *testing.T) {
	w := NewWorld()
	b, _ := w.CreateBody(rl.Vector3{Y: 0.25}, BodyDynamic, CubeShape(0.5))
	b.CanSleep = false

	for i := 0; i < 120; i++ {
		b.trySleep(FixedStep)
	}
	if b.Sleeping() {
		t.Error("Body with CanSleep=false should never sleep")
	}
}

func TestAABBIntersectAndResolve(t *testing.T) {
	a := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5})
	b := NewAABBFromCenter(rl.Vector3{X: 0.4}, rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5})

	if !a.Intersects(b) {
		t.Fatal("Overlapping boxes should intersect")
	}
	push := a.Resolve(b)
	// Smallest overlap is on x: push a out on -x by 0.1
	if push.X > -0.09 || push.X < -0.11 {
		t.Errorf("Expected push x near -0.1, got %f", push.X)
	}
	if push.Y != 0 || push.Z != 0 {
		t.Errorf("Expected push only on x, got %v", push)
	}

	far := NewAABBFromCenter(rl.Vector3{X: 5}, rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5})
	if a.Intersects(far) {
		t.Error("Distant boxes should not intersect")
	}
	zero := a.Resolve(far)
	if zero.X != 0 || zero.Y != 0 || zero.Z != 0 {
		t.Errorf("Resolve of separated boxes should be zero, got %v", zero)
	}
}

func TestAABBClosestPoint(t *testing.T) {
	bb := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1})

	inside := bb.ClosestPoint(rl.Vector3{X: 0.1, Y: 0.2, Z: -0.1})
	if inside.X != 0.1 || inside.Y != 0.2 || inside.Z != -0.1 {
		t.Errorf("Point inside the box should map to itself, got %v", inside)
	}

	outside := bb.ClosestPoint(rl.Vector3{X: 3, Y: 0, Z: 0})
	if outside.X != 0.5 || outside.Y != 0 || outside.Z != 0 {
		t.Errorf("Expected clamp to face point (0.5, 0, 0), got %v", outside)
	}
}
