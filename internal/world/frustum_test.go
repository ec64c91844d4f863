package world

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func testCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.Vector3{},
		Target:     rl.Vector3{Z: -1},
		Up:         rl.Vector3{Y: 1},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
}

func TestFrustumContainsSphereAhead(t *testing.T) {
	f := ExtractFrustum(testCamera(), 16.0/9.0)

	if !f.ContainsSphere(rl.Vector3{Z: -10}, 1) {
		t.Error("Sphere dead ahead should be visible")
	}
	if f.ContainsSphere(rl.Vector3{Z: 10}, 1) {
		t.Error("Sphere behind the camera should be culled")
	}
}

func TestFrustumCullsBeyondFarPlane(t *testing.T) {
	f := ExtractFrustum(testCamera(), 1)

	if f.ContainsSphere(rl.Vector3{Z: -2000}, 1) {
		t.Error("Sphere beyond the far plane should be culled")
	}
}

func TestFrustumCullsOffToTheSide(t *testing.T) {
	f := ExtractFrustum(testCamera(), 1)

	if f.ContainsSphere(rl.Vector3{X: -100, Z: -10}, 1) {
		t.Error("Sphere far off the left should be culled")
	}
	if f.ContainsSphere(rl.Vector3{Y: 100, Z: -10}, 1) {
		t.Error("Sphere far above should be culled")
	}
}

func TestFrustumSphereStraddlingEdgeIsKept(t *testing.T) {
	f := ExtractFrustum(testCamera(), 1)

	// At z=-10 with fovy 60 the top edge sits near y=5.77; a unit-radius
	// sphere centered just outside still pokes in.
	if !f.ContainsSphere(rl.Vector3{Y: 6.2, Z: -10}, 1) {
		t.Error("Sphere straddling the top plane should be kept")
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	f := ExtractFrustum(testCamera(), 1)

	if !f.ContainsPoint(rl.Vector3{Z: -5}) {
		t.Error("Point ahead should be inside")
	}
	if f.ContainsPoint(rl.Vector3{Z: 5}) {
		t.Error("Point behind should be outside")
	}
}
