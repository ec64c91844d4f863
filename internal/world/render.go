package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"voxelstead/internal/physics"
	"voxelstead/internal/scene"
)

// Renderer draws the homestead: sky clear, ground slab, then every
// visible scene node as a tinted cube, frustum culled. One shared unit
// mesh serves all of them; position, yaw, scale and tint come from the
// node.
type Renderer struct {
	cube   rl.Model
	ground rl.Color
	loaded bool
}

func NewRenderer() *Renderer {
	mesh := rl.GenMeshCube(1, 1, 1)
	return &Renderer{
		cube:   rl.LoadModelFromMesh(mesh),
		ground: rl.NewColor(88, 120, 68, 255),
		loaded: true,
	}
}

// Draw renders the world pass of one frame under the given ambient
// light level and reports how many nodes survived culling. Translucent
// tints (water, leaves) ride on plain alpha blending; the homestead is
// small enough that depth sorting is not worth it.
func (r *Renderer) Draw(camera rl.Camera3D, scn *scene.Scene, sky rl.Color, light float32) int {
	rl.ClearBackground(sky)
	rl.BeginMode3D(camera)

	rl.DrawCubeV(
		rl.Vector3{Y: -0.25},
		rl.Vector3{X: physics.GroundExtent, Y: 0.5, Z: physics.GroundExtent},
		shade(r.ground, light),
	)

	aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())
	frustum := ExtractFrustum(camera, aspect)

	drawn := 0
	for _, n := range scn.Nodes() {
		if !n.Visible {
			continue
		}
		if !frustum.ContainsSphere(n.Position, cullRadius(n.Scale)) {
			continue
		}
		rl.DrawModelEx(r.cube, n.Position, rl.Vector3{Y: 1}, n.Rotation.Y, n.Scale, shade(n.Tint, light))
		if n.Highlighted {
			// The pick highlight stays full bright even at night.
			rl.DrawCubeWiresV(n.Position, rl.Vector3Scale(n.Scale, 1.04), rl.Gold)
		}
		drawn++
	}

	rl.EndMode3D()
	return drawn
}

// shade scales a tint's RGB by the ambient light level, leaving alpha
// alone.
func shade(c rl.Color, light float32) rl.Color {
	if light >= 1 {
		return c
	}
	if light < 0 {
		light = 0
	}
	return rl.NewColor(
		uint8(float32(c.R)*light),
		uint8(float32(c.G)*light),
		uint8(float32(c.B)*light),
		c.A,
	)
}

// cullRadius is the bounding-sphere radius of a unit cube under the
// node's scale.
func cullRadius(s rl.Vector3) float32 {
	return rl.Vector3Length(s) * 0.5
}

func (r *Renderer) Close() {
	if r.loaded {
		rl.UnloadModel(r.cube)
		r.loaded = false
	}
}
