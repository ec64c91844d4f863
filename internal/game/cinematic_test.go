package game

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestCinematicLandsOnHandoffCamera(t *testing.T) {
	end := rl.Camera3D{
		Position:   rl.Vector3{X: 1, Y: 2, Z: 3},
		Target:     rl.Vector3{X: 4, Y: 2, Z: 3},
		Up:         rl.Vector3{Y: 1},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
	c := NewCinematic(rl.Vector3{Y: 1.5}, end)
	for !c.Done() {
		c.Advance()
	}
	cam := c.Camera()
	if cam.Position != end.Position || cam.Target != end.Target {
		t.Errorf("Expected the flight to end on the handoff camera")
	}
	if cam.Fovy != end.Fovy {
		t.Errorf("Expected the handoff field of view, got %.1f", cam.Fovy)
	}
}

func TestCinematicSkipJumpsToEnd(t *testing.T) {
	c := NewCinematic(rl.Vector3{}, rl.Camera3D{Position: rl.Vector3{X: 2}, Fovy: 60})
	c.Advance()
	if c.Done() {
		t.Fatalf("Expected the flight to still be running after one tick")
	}
	c.Skip()
	if !c.Done() {
		t.Errorf("Expected skip to finish the flight")
	}
}

func TestCinematicStartsHighAndWide(t *testing.T) {
	end := rl.Camera3D{Position: rl.Vector3{Y: 1.5}, Fovy: 60}
	c := NewCinematic(rl.Vector3{}, end)
	cam := c.Camera()
	if cam.Position.Y < 8 {
		t.Errorf("Expected the flight to open high above the homestead, got y=%.1f", cam.Position.Y)
	}
	if rl.Vector3Length(cam.Position) < 10 {
		t.Errorf("Expected the flight to open on a wide orbit")
	}
}
