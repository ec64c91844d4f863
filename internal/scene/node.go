package scene

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var uidCounter uint64

// Node is one visual entity: a transform, a tint, and render flags. Nodes
// hold no GPU handles, so simulation tests run headless; the renderer maps
// nodes onto meshes at draw time.
type Node struct {
	UID      uint64
	Name     string
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees, yaw in Y
	Scale    rl.Vector3
	Tint     rl.Color

	Visible     bool
	Highlighted bool

	scene *Scene
}

func NewNode(name string) *Node {
	return &Node{
		UID:     atomic.AddUint64(&uidCounter, 1),
		Name:    name,
		Scale:   rl.Vector3{X: 1, Y: 1, Z: 1},
		Tint:    rl.White,
		Visible: true,
	}
}

// InScene reports whether the node is currently attached to a scene.
func (n *Node) InScene() bool {
	return n.scene != nil
}
