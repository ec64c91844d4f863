package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"voxelstead/internal/block"
	"voxelstead/internal/config"
	"voxelstead/internal/physics"
)

// Player body tuning. The collider is a slim box so the cabin door and
// the plot gate, both two cells wide, pass comfortably; the jump clears
// one block layer but not two.
const (
	playerWidth   = 0.4
	playerGravity = 20.0
	playerJump    = 5.5
	headroom      = 0.1 // crown above the eye
)

// Player is the first-person viewpoint: mouse look, WASD on the yaw
// plane, jump and gravity, resolved against the static block set. A
// static capsule mirrors the player in the physics world so toppling
// blocks shove off the body instead of passing through it.
type Player struct {
	Position rl.Vector3 // eye position
	Velocity rl.Vector3
	Yaw      float32 // degrees
	Pitch    float32 // degrees
	Grounded bool

	MoveSpeed   float32
	Sensitivity float32
	EyeHeight   float32
	Reach       float32

	body *physics.Body
}

// NewPlayer stands the player at the given eye position and registers
// the mirror capsule.
func NewPlayer(phys *physics.World, cfg config.Player, eye rl.Vector3) (*Player, error) {
	p := &Player{
		Position:    eye,
		Yaw:         -45,
		Pitch:       -10,
		MoveSpeed:   cfg.MoveSpeed,
		Sensitivity: cfg.Sensitivity,
		EyeHeight:   cfg.EyeHeight,
		Reach:       cfg.Reach,
	}
	body, err := phys.CreateBody(p.bodyCenter(), physics.BodyStatic,
		physics.CapsuleShape(playerWidth/2, p.height()))
	if err != nil {
		return nil, fmt.Errorf("player body: %w", err)
	}
	p.body = body
	return p, nil
}

func (p *Player) height() float32 { return p.EyeHeight + headroom }

func (p *Player) feetY() float32 { return p.Position.Y - p.EyeHeight }

func (p *Player) bodyCenter() rl.Vector3 {
	return rl.Vector3{X: p.Position.X, Y: p.feetY() + p.height()/2, Z: p.Position.Z}
}

// Look turns the viewpoint by a pointer delta, pitch clamped short of
// the poles.
func (p *Player) Look(delta rl.Vector2) {
	p.Yaw += delta.X * p.Sensitivity * rl.Rad2deg
	p.Pitch -= delta.Y * p.Sensitivity * rl.Rad2deg
	if p.Pitch > 89 {
		p.Pitch = 89
	}
	if p.Pitch < -89 {
		p.Pitch = -89
	}
}

// Move advances the player one fixed step: horizontal input on the yaw
// plane, jump and gravity, then push-out against the ground plane and
// the structural statics. The mirror capsule teleports to the resolved
// spot.
func (p *Player) Move(in Input, dt float32, solids []*block.Block) {
	forward, right := p.directions()

	var moveDir rl.Vector3
	if in.Forward {
		moveDir.X += forward.X
		moveDir.Z += forward.Z
	}
	if in.Back {
		moveDir.X -= forward.X
		moveDir.Z -= forward.Z
	}
	if in.Left {
		moveDir.X += right.X
		moveDir.Z += right.Z
	}
	if in.Right {
		moveDir.X -= right.X
		moveDir.Z -= right.Z
	}

	// Normalize so diagonals are no faster
	moveLen := float32(math.Sqrt(float64(moveDir.X*moveDir.X + moveDir.Z*moveDir.Z)))
	if moveLen > 0 {
		moveDir.X /= moveLen
		moveDir.Z /= moveLen
	}
	p.Velocity.X = moveDir.X * p.MoveSpeed
	p.Velocity.Z = moveDir.Z * p.MoveSpeed

	if in.Jump && p.Grounded {
		p.Velocity.Y = playerJump
		p.Grounded = false
	}
	if !p.Grounded {
		p.Velocity.Y -= playerGravity * dt
	}

	p.Position.X += p.Velocity.X * dt
	p.Position.Y += p.Velocity.Y * dt
	p.Position.Z += p.Velocity.Z * dt

	p.resolve(solids)
	p.body.SetPosition(p.bodyCenter())
}

// resolve pushes the player out of the ground slab and every structural
// static block. Leaves, water and crops are soft; the player walks
// through them.
func (p *Player) resolve(solids []*block.Block) {
	if p.feetY() <= 0 {
		p.Position.Y = p.EyeHeight
		p.Velocity.Y = 0
		p.Grounded = true
	} else {
		p.Grounded = false
	}

	box := p.aabb()
	for _, b := range solids {
		if !b.IsStatic() || !b.Material().Structural() {
			continue
		}
		pushOut := box.Resolve(b.AABB())
		if pushOut.X == 0 && pushOut.Y == 0 && pushOut.Z == 0 {
			continue
		}
		p.Position = rl.Vector3Add(p.Position, pushOut)
		if pushOut.Y > 0 {
			p.Velocity.Y = 0
			p.Grounded = true
		}
		if pushOut.Y < 0 && p.Velocity.Y > 0 {
			p.Velocity.Y = 0
		}
		box = p.aabb()
	}
}

func (p *Player) aabb() physics.AABB {
	return physics.NewAABBFromCenter(p.bodyCenter(),
		rl.Vector3{X: playerWidth, Y: p.height(), Z: playerWidth})
}

// directions are the horizontal movement axes for the current yaw.
func (p *Player) directions() (forward, right rl.Vector3) {
	yawRad := float64(p.Yaw) * math.Pi / 180
	forward = rl.Vector3{X: float32(math.Cos(yawRad)), Z: float32(math.Sin(yawRad))}
	right = rl.Vector3{X: float32(math.Sin(yawRad)), Z: float32(-math.Cos(yawRad))}
	return
}

// Forward is the full look direction, pitch included.
func (p *Player) Forward() rl.Vector3 {
	yawRad := float64(p.Yaw) * math.Pi / 180
	pitchRad := float64(p.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
}

// Camera builds the render camera at the eye.
func (p *Player) Camera() rl.Camera3D {
	return rl.Camera3D{
		Position:   p.Position,
		Target:     rl.Vector3Add(p.Position, p.Forward()),
		Up:         rl.Vector3{Y: 1},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
}
