package world

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"voxelstead/internal/block"
)

// Cell addresses one lattice position: world coordinates divided by the
// block size, rounded to the nearest integer.
type Cell struct {
	X, Y, Z int
}

// CellOf maps a world position to its lattice cell.
func CellOf(pos rl.Vector3) Cell {
	return Cell{
		X: int(math.Round(float64(pos.X) / block.Size)),
		Y: int(math.Round(float64(pos.Y) / block.Size)),
		Z: int(math.Round(float64(pos.Z) / block.Size)),
	}
}

// World returns the cell's center in world coordinates.
func (c Cell) World() rl.Vector3 {
	return rl.Vector3{
		X: float32(c.X) * block.Size,
		Y: float32(c.Y) * block.Size,
		Z: float32(c.Z) * block.Size,
	}
}

// cellHash returns a deterministic value in [0, mod) for a ground cell and
// a salt, splitmix64 style. All generation randomness routes through here;
// there is no RNG state to carry or reseed.
func cellHash(seed int64, x, z int, salt, mod int64) int64 {
	const k1 int64 = -7046029254386353131 // splitmix64 step 1
	const k2 int64 = -4265267296055464877 // splitmix64 step 2
	h := seed ^ (int64(x) * k1) ^ (int64(z) * 7823434773480878946) ^ (salt * 2654435761)
	h ^= h >> 33
	h *= k1
	h ^= h >> 27
	h *= k2
	h ^= h >> 31
	if h < 0 {
		h = -h
	}
	return h % mod
}
