package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// cinematicTicks is the length of the intro flight at one step per tick.
const cinematicTicks = 600

// Cinematic flies the camera over the homestead before handing control
// to the player: a slow descending orbit that eases onto the player's
// eye. Skipping jumps straight to the handoff pose. The flight runs
// once per session; there is no way back into it.
type Cinematic struct {
	focus rl.Vector3  // orbit center
	end   rl.Camera3D // handoff pose
	tick  uint64
	total uint64
}

func NewCinematic(focus rl.Vector3, end rl.Camera3D) *Cinematic {
	return &Cinematic{focus: focus, end: end, total: cinematicTicks}
}

// Advance moves the flight one tick forward.
func (c *Cinematic) Advance() {
	if c.tick < c.total {
		c.tick++
	}
}

// Skip ends the flight immediately.
func (c *Cinematic) Skip() {
	c.tick = c.total
}

// Done reports whether the flight has reached the handoff pose.
func (c *Cinematic) Done() bool {
	return c.tick >= c.total
}

// Camera is the current flight pose: a descending orbit blended onto
// the handoff camera, weighted so the landing is gentle. Once the
// flight is done this is exactly the handoff pose, so the cut to the
// player camera never pops.
func (c *Cinematic) Camera() rl.Camera3D {
	if c.Done() {
		return c.end
	}
	t := float32(c.tick) / float32(c.total)
	s := t * t * (3 - 2*t) // smoothstep

	angle := float64(-math.Pi/2 + 1.5*math.Pi*s)
	radius := lerp(16, 4, s)
	orbit := rl.Vector3{
		X: c.focus.X + float32(math.Cos(angle))*radius,
		Y: lerp(9, c.end.Position.Y+2, s),
		Z: c.focus.Z + float32(math.Sin(angle))*radius,
	}

	w := s * s * s
	return rl.Camera3D{
		Position:   rl.Vector3Lerp(orbit, c.end.Position, w),
		Target:     rl.Vector3Lerp(c.focus, c.end.Target, w),
		Up:         rl.Vector3{Y: 1},
		Fovy:       c.end.Fovy,
		Projection: rl.CameraPerspective,
	}
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
