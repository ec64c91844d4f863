package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"voxelstead/internal/block"
	"voxelstead/internal/physics"
)

// Targeter owns the one highlighted block and the normal of the struck
// face. It recomputes both from scratch every tick; nothing here
// survives a recast except through the block set itself.
type Targeter struct {
	highlighted *block.Block
	normal      rl.Vector3
	hasHit      bool
}

// Update casts the viewpoint ray against every live block and moves the
// exclusive highlight to the nearest hit. The previous highlight is
// cleared before the new one is set, so at no point are two blocks
// marked.
func (t *Targeter) Update(origin, dir rl.Vector3, blocks []*block.Block, reach float32) {
	var best *block.Block
	var bestHit physics.RayHit
	for _, b := range blocks {
		hit, ok := physics.RaycastAABB(origin, dir, b.AABB(), reach)
		if !ok {
			continue
		}
		if best == nil || hit.Distance < bestHit.Distance {
			best, bestHit = b, hit
		}
	}

	if t.highlighted != nil && t.highlighted != best {
		t.highlighted.SetHighlight(false)
	}
	t.highlighted = best
	if best == nil {
		t.normal = rl.Vector3{}
		t.hasHit = false
		return
	}
	best.SetHighlight(true)
	t.normal = bestHit.Normal
	t.hasHit = true
}

// Target returns the highlighted block, or nil.
func (t *Targeter) Target() *block.Block {
	return t.highlighted
}

// PlacementPos is the lattice cell adjacent to the struck face: the
// target's position displaced by the normal times the lattice pitch,
// snapped.
func (t *Targeter) PlacementPos() (rl.Vector3, bool) {
	if !t.hasHit || t.highlighted == nil {
		return rl.Vector3{}, false
	}
	pos := rl.Vector3Add(t.highlighted.Position(), rl.Vector3Scale(t.normal, block.Size))
	return block.Snap(pos), true
}

// Forget drops the reference when the given block leaves the world, so
// the next recast never touches a destroyed block.
func (t *Targeter) Forget(b *block.Block) {
	if t.highlighted == b {
		t.highlighted = nil
		t.hasHit = false
		t.normal = rl.Vector3{}
	}
}
