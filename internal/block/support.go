package block

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// GroundLevel is the snapped height at or below which a block counts as
// resting on the terrain regardless of neighbors.
const GroundLevel = 0

// Snap rounds each coordinate to the nearest lattice point, absorbing the
// float drift the solver introduces.
func Snap(pos rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: snapCoord(pos.X), Y: snapCoord(pos.Y), Z: snapCoord(pos.Z)}
}

func snapCoord(v float32) float32 {
	return float32(math.Round(float64(v)/Size)) * Size
}

// HasSupport reports whether blk rests on the terrain or directly atop a
// structural block in the set. Positions are snapped before comparison.
// The check is single level: it never asks whether the supporter itself
// is supported.
func HasSupport(blk *Block, all []*Block) bool {
	p := Snap(blk.Position())
	if p.Y <= GroundLevel {
		return true
	}
	for _, other := range all {
		if other == blk || !other.Material().Structural() {
			continue
		}
		q := Snap(other.Position())
		if q.X == p.X && q.Z == p.Z && q.Y == p.Y-Size {
			return true
		}
	}
	return false
}

// ConvertUnsupported runs one reactive pass over the set: every static
// structural block without support converts to dynamic. It runs once per
// destruction event, not recursively, so a multi-level unsupported tower
// loses only its lowest unsupported layer now; higher layers convert on a
// later pass triggered by another destruction. Non-structural blocks
// (leaves, water, crops) stay where they are. Returns the blocks it
// converted.
func ConvertUnsupported(all []*Block) []*Block {
	var converted []*Block
	for _, blk := range all {
		if !blk.IsStatic() || !blk.Material().Structural() {
			continue
		}
		if !HasSupport(blk, all) {
			blk.ConvertToDynamic()
			converted = append(converted, blk)
		}
	}
	return converted
}
