package world

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"voxelstead/internal/block"
	"voxelstead/internal/config"
	"voxelstead/internal/scene"
)

// rect is an inclusive cell-footprint on the ground plane.
type rect struct {
	x0, x1, z0, z1 int
}

func (r rect) contains(x, z int) bool {
	return x >= r.x0 && x <= r.x1 && z >= r.z0 && z <= r.z1
}

func (r rect) inflate(n int) rect {
	return rect{r.x0 - n, r.x1 + n, r.z0 - n, r.z1 + n}
}

// homestead pins the structure footprints for one platform radius. All
// anchors scale with the radius so the layout holds together from the
// smallest platform up.
type homestead struct {
	radius int
	cabin  rect // walls footprint
	well   rect // 3x3 ring
	plot   rect // soil cells; the fence sits one cell outside
}

func layoutFor(radius int) homestead {
	half := radius / 2
	return homestead{
		radius: radius,
		cabin:  rect{half - 5, half + 1, -half - 4, -half},
		well:   rect{-half - 1, -half + 1, -half - 1, -half + 1},
		plot:   rect{-half - 2, -half + 2, half - 1, half + 1},
	}
}

func (h homestead) reserved() []rect {
	return []rect{
		h.cabin.inflate(1),
		h.well.inflate(1),
		h.plot.inflate(2), // plot plus its fence line
	}
}

func (h homestead) isReserved(x, z int) bool {
	for _, r := range h.reserved() {
		if r.contains(x, z) {
			return true
		}
	}
	return false
}

// Generate builds the homestead from the seed: terrain platform with a
// soil patch, a plank cabin with a door gap and thatched roof, a stone
// well, a fenced crop plot of sprouts, a handful of trees, and the
// keeper's marker. Same seed, same homestead; every roll is a per-cell
// hash, so there is no RNG state to carry.
func (w *World) Generate(seed int64, cfg config.World) error {
	h := layoutFor(cfg.PlatformRadius)

	if err := w.genTerrain(seed, h); err != nil {
		return fmt.Errorf("world: terrain: %w", err)
	}
	if err := w.genCabin(h); err != nil {
		return fmt.Errorf("world: cabin: %w", err)
	}
	if err := w.genWell(h); err != nil {
		return fmt.Errorf("world: well: %w", err)
	}
	if err := w.genPlot(h); err != nil {
		return fmt.Errorf("world: crop plot: %w", err)
	}
	if err := w.genTrees(seed, h, cfg.TreeCount); err != nil {
		return fmt.Errorf("world: trees: %w", err)
	}
	w.genKeeper(h)
	return nil
}

// genBlock places one structure block, tolerating overlap with what is
// already there.
func (w *World) genBlock(mat block.Material, x, y, z int) error {
	_, err := w.addStatic(mat, Cell{x, y, z})
	if errors.Is(err, ErrOccupied) {
		return nil
	}
	return err
}

// genTerrain lays the ground layer: a rough disc of grass, soil inside
// the crop plot. Cells in the outer ring drop out by hash so the edge
// frays instead of tracing a circle, except where a structure needs the
// ground under it.
func (w *World) genTerrain(seed int64, h homestead) error {
	r := h.radius
	lo, hi := -r-6, r+6
	for x := lo; x <= hi; x++ {
		for z := lo; z <= hi; z++ {
			d2 := x*x + z*z
			// Structures always get ground under them, even when their
			// yard juts past the disc edge.
			if d2 > r*r && !h.isReserved(x, z) {
				continue
			}
			if d2 > (r-2)*(r-2) && !h.isReserved(x, z) && cellHash(seed, x, z, 1, 10) < 4 {
				continue
			}
			mat := block.Grass
			if h.plot.contains(x, z) {
				mat = block.Soil
			}
			if err := w.genBlock(mat, x, 0, z); err != nil {
				return err
			}
		}
	}
	return nil
}

// genCabin raises the plank walls with wood corner posts, leaves a door
// gap centered on the wall facing the platform, and lays a thatch roof.
// The gap is two cells wide and three high so the player fits through
// under the lintel. Thatch is leaves: nothing structural hangs over the
// open interior, so knocking a wall out drops the wall, not the whole
// roof in one go.
func (w *World) genCabin(h homestead) error {
	c := h.cabin
	doorX := (c.x0 + c.x1) / 2
	const wallTop = 4

	for x := c.x0; x <= c.x1; x++ {
		for z := c.z0; z <= c.z1; z++ {
			isCorner := (x == c.x0 || x == c.x1) && (z == c.z0 || z == c.z1)
			isWall := x == c.x0 || x == c.x1 || z == c.z0 || z == c.z1
			if !isWall {
				continue
			}
			for y := 1; y <= wallTop; y++ {
				if (x == doorX || x == doorX+1) && z == c.z1 && y <= 3 {
					continue // door gap
				}
				mat := block.Plank
				if isCorner {
					mat = block.Wood
				}
				if err := w.genBlock(mat, x, y, z); err != nil {
					return err
				}
			}
		}
	}

	for x := c.x0; x <= c.x1; x++ {
		for z := c.z0; z <= c.z1; z++ {
			if err := w.genBlock(block.Leaves, x, wallTop+1, z); err != nil {
				return err
			}
		}
	}
	return nil
}

// genWell builds a low stone ring two courses high with water inside.
func (w *World) genWell(h homestead) error {
	c := h.well
	cx, cz := (c.x0+c.x1)/2, (c.z0+c.z1)/2
	for x := c.x0; x <= c.x1; x++ {
		for z := c.z0; z <= c.z1; z++ {
			if x == cx && z == cz {
				if err := w.genBlock(block.Water, x, 1, z); err != nil {
					return err
				}
				continue
			}
			for y := 1; y <= 2; y++ {
				if err := w.genBlock(block.Stone, x, y, z); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// genPlot fences the soil patch and plants a sprout on every soil cell,
// registering each as a crop site when the field is wired. The fence gets
// a two-cell gate gap on the side facing the platform center.
func (w *World) genPlot(h homestead) error {
	fence := h.plot.inflate(1)
	gateX := (fence.x0 + fence.x1) / 2
	for x := fence.x0; x <= fence.x1; x++ {
		for z := fence.z0; z <= fence.z1; z++ {
			onBorder := x == fence.x0 || x == fence.x1 || z == fence.z0 || z == fence.z1
			if !onBorder {
				continue
			}
			if (x == gateX || x == gateX+1) && z == fence.z0 {
				continue // gate
			}
			if err := w.genBlock(block.Fence, x, 1, z); err != nil {
				return err
			}
		}
	}

	for x := h.plot.x0; x <= h.plot.x1; x++ {
		for z := h.plot.z0; z <= h.plot.z1; z++ {
			sprout, err := w.addStatic(block.CropSprout, Cell{x, 1, z})
			if errors.Is(err, ErrOccupied) {
				continue
			}
			if err != nil {
				return err
			}
			if w.Crops != nil {
				w.Crops.AddSite(sprout, w.Tick)
			}
		}
	}
	return nil
}

// genTrees scatters trunk-and-canopy trees on open grass. Candidate spots
// come from hashing the attempt index; a spot is taken only when it lands
// on terrain, clear of structures and other trees.
func (w *World) genTrees(seed int64, h homestead, count int) error {
	span := int64(2*(h.radius-3) + 1)
	if span < 1 || count <= 0 {
		return nil
	}

	var taken []Cell
	placed := 0
	for attempt := 0; attempt < count*8 && placed < count; attempt++ {
		tx := int(cellHash(seed, attempt, 0, 2, span)) - (h.radius - 3)
		tz := int(cellHash(seed, attempt, 0, 3, span)) - (h.radius - 3)

		if h.isReserved(tx, tz) || w.At(Cell{tx, 0, tz}) == nil {
			continue
		}
		tooClose := false
		for _, t := range taken {
			dx, dz := tx-t.X, tz-t.Z
			if dx*dx+dz*dz < 9 {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}

		trunkTop := 3 + int(cellHash(seed, tx, tz, 4, 2))
		for y := 1; y <= trunkTop; y++ {
			if err := w.genBlock(block.Wood, tx, y, tz); err != nil {
				return err
			}
		}
		for dx := -1; dx <= 1; dx++ {
			for dz := -1; dz <= 1; dz++ {
				if dx != 0 && dz != 0 && cellHash(seed, tx+dx, tz+dz, 5, 2) == 0 {
					continue // ragged corners
				}
				if err := w.genBlock(block.Leaves, tx+dx, trunkTop+1, tz+dz); err != nil {
					return err
				}
			}
		}
		if err := w.genBlock(block.Leaves, tx, trunkTop+2, tz); err != nil {
			return err
		}

		taken = append(taken, Cell{tx, 0, tz})
		placed++
	}
	return nil
}

// genKeeper drops the quest keeper's marker two cells out from the cabin
// door. The keeper is a scene node only, no physics body.
func (w *World) genKeeper(h homestead) {
	doorX := (h.cabin.x0 + h.cabin.x1) / 2
	pos := rl.Vector3{
		X: float32(doorX) * block.Size,
		Y: 0.7,
		Z: float32(h.cabin.z1+2) * block.Size,
	}

	keeper := scene.NewNode("keeper")
	keeper.Position = pos
	keeper.Scale = rl.Vector3{X: 0.35, Y: 0.9, Z: 0.35}
	keeper.Tint = rl.NewColor(224, 134, 52, 255)
	w.Scene.Add(keeper)

	w.npcPos = pos
}
