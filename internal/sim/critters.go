package sim

import (
	"fmt"
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"voxelstead/internal/scene"
)

// Critter is a purely visual wanderer: a small cube drifting in a circle
// around its home point with a sine bob. Critters have no physics bodies
// and never block placement or rays; the targeter only sees blocks.
type Critter struct {
	node   *scene.Node
	home   rl.Vector3
	radius float32
	speed  float32
	phase  float32
}

// Critters owns the ambient wildlife of one session.
type Critters struct {
	scn  *scene.Scene
	rng  *rand.Rand
	list []*Critter
}

func NewCritters(scn *scene.Scene, seed int64) *Critters {
	return &Critters{
		scn: scn,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Spawn adds one critter wandering around home.
func (c *Critters) Spawn(home rl.Vector3, tint rl.Color) {
	n := scene.NewNode(fmt.Sprintf("critter:%d", len(c.list)))
	n.Position = home
	n.Scale = rl.Vector3{X: 0.4, Y: 0.4, Z: 0.4}
	n.Tint = tint
	c.scn.Add(n)

	c.list = append(c.list, &Critter{
		node:   n,
		home:   home,
		radius: 0.8 + c.rng.Float32()*1.2,
		speed:  0.3 + c.rng.Float32()*0.5,
		phase:  c.rng.Float32() * 2 * math.Pi,
	})
}

// Advance moves every critter along its orbit. Driven by the tick counter,
// so motion is deterministic for a given seed.
func (c *Critters) Advance(tick uint64) {
	tsec := float32(tick) / 60.0
	for _, cr := range c.list {
		t := tsec*cr.speed + cr.phase
		offset := rl.Vector3{
			X: float32(math.Cos(float64(t))) * cr.radius,
			Y: 0.08 * float32(math.Sin(float64(t*4))),
			Z: float32(math.Sin(float64(t))) * cr.radius,
		}
		cr.node.Position = rl.Vector3Add(cr.home, offset)
		// Face along the direction of travel
		cr.node.Rotation.Y = -t*180/math.Pi + 90
	}
}

func (c *Critters) Count() int {
	return len(c.list)
}
