package world

import (
	"errors"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"voxelstead/internal/block"
	"voxelstead/internal/physics"
	"voxelstead/internal/scene"
	"voxelstead/internal/sim"
)

// ErrOccupied reports a placement into a cell that already holds a static
// block.
var ErrOccupied = errors.New("world: cell already holds a block")

// World owns the live block set: statics keyed by lattice cell plus the
// loose blocks that have toppled and tumble freely. Every membership
// mutation goes through it, so the physics world, the scene, and the
// event feed never disagree about what exists.
type World struct {
	Scene *scene.Scene
	Phys  *physics.World
	Feed  *sim.Feed

	// Crops, when wired, hears about destroyed blocks so harvested
	// sites go dormant and regrow.
	Crops *sim.CropField

	// Tick is stamped onto emitted events. The orchestrator advances it
	// once per fixed step.
	Tick uint64

	blocks map[Cell]*block.Block
	loose  []*block.Block
	npcPos rl.Vector3
}

func New(phys *physics.World, feed *sim.Feed) *World {
	return &World{
		Scene:  scene.NewScene("homestead"),
		Phys:   phys,
		Feed:   feed,
		blocks: make(map[Cell]*block.Block),
	}
}

func (w *World) deps() block.Deps {
	return block.Deps{World: w.Phys, Scene: w.Scene}
}

// At returns the static block occupying a cell, or nil.
func (w *World) At(c Cell) *block.Block {
	return w.blocks[c]
}

// Blocks returns every live block, statics then loose. The slice is
// rebuilt per call; callers must not retain it across mutations.
func (w *World) Blocks() []*block.Block {
	out := make([]*block.Block, 0, len(w.blocks)+len(w.loose))
	for _, b := range w.blocks {
		out = append(out, b)
	}
	out = append(out, w.loose...)
	return out
}

// StaticCount reports the lattice-registered blocks.
func (w *World) StaticCount() int {
	return len(w.blocks)
}

// LooseCount reports the toppled blocks still tumbling.
func (w *World) LooseCount() int {
	return len(w.loose)
}

// NPCPos is the homestead keeper's spot, set during generation.
func (w *World) NPCPos() rl.Vector3 {
	return w.npcPos
}

// addStatic creates a static block at a cell without emitting an event.
// Generation and crop regrowth go through here; player placement does not.
func (w *World) addStatic(mat block.Material, c Cell) (*block.Block, error) {
	if w.blocks[c] != nil {
		return nil, ErrOccupied
	}
	b, err := block.New(w.deps(), c.World(), mat, physics.BodyStatic)
	if err != nil {
		return nil, err
	}
	w.blocks[c] = b
	return b, nil
}

// PlaceBlock snaps pos to the lattice and creates a static block there,
// announcing it on the feed. Placement into an occupied cell is refused
// with ErrOccupied.
func (w *World) PlaceBlock(mat block.Material, pos rl.Vector3) (*block.Block, error) {
	snapped := block.Snap(pos)
	b, err := w.addStatic(mat, CellOf(snapped))
	if err != nil {
		return nil, err
	}
	w.Feed.Publish(sim.Event{
		Kind:     sim.EventBlockPlaced,
		Tick:     w.Tick,
		Material: mat.String(),
		UID:      b.UID(),
		Pos:      snapped,
	})
	return b, nil
}

// DestroyBlock removes the block from the registry, the physics world and
// the scene, announces the destruction, then runs one support pass over
// the remaining set. Blocks the pass converts migrate to the loose list
// and are announced as toppled. A nil block is a no-op.
func (w *World) DestroyBlock(b *block.Block) {
	if b == nil {
		return
	}
	pos, mat, uid := b.Position(), b.Material(), b.UID()
	w.forget(b)
	b.Destroy()
	if w.Crops != nil {
		w.Crops.NotifyDestroyed(b, w.Tick)
	}
	w.Feed.Publish(sim.Event{
		Kind:     sim.EventBlockDestroyed,
		Tick:     w.Tick,
		Material: mat.String(),
		UID:      uid,
		Pos:      pos,
	})
	w.settleSupport()
}

// forget drops the block from whichever registry holds it.
func (w *World) forget(b *block.Block) {
	if b.IsStatic() {
		c := CellOf(b.Position())
		if w.blocks[c] == b {
			delete(w.blocks, c)
			return
		}
	}
	for i, lb := range w.loose {
		if lb == b {
			w.loose = append(w.loose[:i], w.loose[i+1:]...)
			return
		}
	}
}

// settleSupport runs the reactive support pass and migrates every block
// it topples from the lattice registry to the loose list. The scan set is
// ordered by block age so topple events come out the same way every run.
func (w *World) settleSupport() {
	all := w.Blocks()
	sort.Slice(all, func(i, j int) bool { return all[i].UID() < all[j].UID() })

	for _, b := range block.ConvertUnsupported(all) {
		delete(w.blocks, CellOf(b.Position()))
		w.loose = append(w.loose, b)
		w.Feed.Publish(sim.Event{
			Kind:     sim.EventBlockToppled,
			Tick:     w.Tick,
			Material: b.Material().String(),
			UID:      b.UID(),
			Pos:      b.Position(),
		})
	}
}

// Sync copies physics poses into scene nodes. Statics never move, so only
// the loose blocks need it.
func (w *World) Sync() {
	for _, b := range w.loose {
		b.Sync()
	}
}

// CropSwap adapts the registry for the crop field: destroy the old block
// in place and grow the new material at the same cell. No support pass
// and no destroy event; maturing is not a demolition.
func (w *World) CropSwap() sim.SwapFunc {
	return func(old *block.Block, mat block.Material) (*block.Block, error) {
		c := CellOf(old.Position())
		w.forget(old)
		old.Destroy()
		return w.addStatic(mat, c)
	}
}

// CropPlant adapts the registry for regrowth at a dormant site.
func (w *World) CropPlant() sim.PlantFunc {
	return func(pos rl.Vector3, mat block.Material) (*block.Block, error) {
		return w.addStatic(mat, CellOf(pos))
	}
}
