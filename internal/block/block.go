package block

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"voxelstead/internal/physics"
	"voxelstead/internal/scene"
)

// Size is the edge length of every block and the pitch of the placement
// lattice. Block centers sit on multiples of Size; the terrain layer's
// centers sit on the ground plane itself.
const Size = 0.5

// Deps carries the two services every block needs. Blocks never reach for
// package-level state; whoever builds the world wires these in once.
type Deps struct {
	World *physics.World
	Scene *scene.Scene
}

func (d Deps) check() {
	if d.World == nil {
		panic("block: nil physics world")
	}
	if d.Scene == nil {
		panic("block: nil scene")
	}
}

// Block is one cube in the world. It owns exactly one physics body and
// exactly one scene node for its whole life; Destroy releases both, and
// neither representation ever outlives the other.
type Block struct {
	mat  Material
	body *physics.Body
	node *scene.Node
	deps Deps
}

// New creates a block with its body and node at the same pose. The node is
// registered only after the body exists, so a failed creation leaves no
// orphan visual.
func New(d Deps, pos rl.Vector3, mat Material, typ physics.BodyType) (*Block, error) {
	d.check()
	if !mat.valid() {
		panic("block: unknown material")
	}

	body, err := d.World.CreateBody(pos, typ, physics.CubeShape(Size))
	if err != nil {
		return nil, fmt.Errorf("block %s at %v: %w", mat, pos, err)
	}
	body.Mass = mat.Mass()

	node := scene.NewNode("block:" + mat.String())
	node.Position = pos
	node.Scale = rl.Vector3{X: Size, Y: Size, Z: Size}
	node.Tint = mat.Tint()
	d.Scene.Add(node)

	return &Block{mat: mat, body: body, node: node, deps: d}, nil
}

// Sync copies the body's pose into the scene node. Called every tick for
// every live block, after the physics step.
func (b *Block) Sync() {
	pos, rot := b.body.Pose()
	b.node.Position = pos
	b.node.Rotation = rot
}

// SetHighlight toggles the edge-outline overlay. Setting an already-set
// state is a no-op.
func (b *Block) SetHighlight(on bool) {
	b.node.Highlighted = on
}

func (b *Block) Highlighted() bool {
	return b.node.Highlighted
}

// ConvertToDynamic rebinds the block to a freshly created dynamic body at
// the current pose. No-op when already dynamic; the old static body is
// gone afterwards, so nothing else may keep a reference to it.
func (b *Block) ConvertToDynamic() {
	if b.body.Type() == physics.BodyDynamic {
		return
	}
	pos, _ := b.body.Pose()
	b.deps.World.RemoveBody(b.body)
	body, err := b.deps.World.CreateBody(pos, physics.BodyDynamic, physics.CubeShape(Size))
	if err != nil {
		// A slot was just freed; only a closed world gets here
		panic("block: rebind body: " + err.Error())
	}
	body.Mass = b.mat.Mass()
	b.body = body
}

// IsStatic is a pure query on the current body mode.
func (b *Block) IsStatic() bool {
	return b.body.IsStatic()
}

// Destroy detaches the highlight, removes the physics body, and removes
// the scene node. Destroying twice is a caller error and panics in the
// physics layer.
func (b *Block) Destroy() {
	b.node.Highlighted = false
	b.deps.World.RemoveBody(b.body)
	b.deps.Scene.Remove(b.node)
}

func (b *Block) Material() Material {
	return b.mat
}

// Position is the physics body's current center.
func (b *Block) Position() rl.Vector3 {
	return b.body.Position
}

// AABB is the body's current bounding box, used for ray targeting.
func (b *Block) AABB() physics.AABB {
	return b.body.AABB()
}

// Body exposes the owned physics body for velocity queries.
func (b *Block) Body() *physics.Body {
	return b.body
}

// UID identifies the block's scene node in logs and observer frames.
func (b *Block) UID() uint64 {
	return b.node.UID
}
