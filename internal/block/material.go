package block

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Material is a closed enumeration of block kinds. Behavior and appearance
// live in one table indexed by the material value; there is no string-keyed
// registry and no way to add materials at runtime.
type Material uint8

const (
	Grass Material = iota
	Soil
	Stone
	Wood
	Leaves
	Plank
	Water
	CropSprout
	CropGrown
	Fence

	materialCount
)

// structural: counts for the support analyzer, both as a supporter and as
// a candidate for toppling. Leaves, water and crops are decoration as far
// as structure is concerned.
// yield/harvest: what destroying the block puts in the inventory, if
// anything. Grass strips down to soil.
var properties = [materialCount]struct {
	name       string
	tint       rl.Color
	mass       float32
	placeable  bool
	structural bool
	yield      Material
	harvest    bool
}{
	Grass:      {"grass", rl.NewColor(106, 170, 64, 255), 1.2, true, true, Soil, true},
	Soil:       {"soil", rl.NewColor(134, 96, 67, 255), 1.5, true, true, Soil, true},
	Stone:      {"stone", rl.NewColor(136, 140, 141, 255), 2.5, true, true, Stone, true},
	Wood:       {"wood", rl.NewColor(94, 66, 40, 255), 1.0, true, true, Wood, true},
	Leaves:     {"leaves", rl.NewColor(60, 143, 72, 200), 0.3, true, false, 0, false},
	Plank:      {"plank", rl.NewColor(178, 148, 90, 255), 0.9, true, true, Plank, true},
	Water:      {"water", rl.NewColor(64, 120, 200, 150), 1.0, false, false, 0, false},
	CropSprout: {"crop_sprout", rl.NewColor(130, 200, 110, 255), 0.2, false, false, 0, false},
	CropGrown:  {"crop_grown", rl.NewColor(222, 206, 96, 255), 0.4, false, false, CropGrown, true},
	Fence:      {"fence", rl.NewColor(120, 92, 60, 255), 0.8, true, true, Fence, true},
}

func (m Material) valid() bool { return m < materialCount }

func (m Material) String() string {
	if !m.valid() {
		return fmt.Sprintf("material(%d)", uint8(m))
	}
	return properties[m].name
}

// Tint is the render color, alpha included.
func (m Material) Tint() rl.Color {
	return properties[m].tint
}

// Mass is the dynamic-body mass in simulation units.
func (m Material) Mass() float32 {
	return properties[m].mass
}

// Placeable reports whether the player palette offers this material.
func (m Material) Placeable() bool {
	return properties[m].placeable
}

// Structural reports whether the support analyzer sees this material at
// all. Non-structural blocks neither hold anything up nor topple.
func (m Material) Structural() bool {
	return properties[m].structural
}

// Harvest returns the item destroying this block yields, if any.
func (m Material) Harvest() (Material, bool) {
	return properties[m].yield, properties[m].harvest
}

// Placeables returns the player palette in declaration order.
func Placeables() []Material {
	var out []Material
	for m := Material(0); m < materialCount; m++ {
		if m.Placeable() {
			out = append(out, m)
		}
	}
	return out
}

// ParseMaterial resolves a config-file material name.
func ParseMaterial(s string) (Material, error) {
	for m := Material(0); m < materialCount; m++ {
		if properties[m].name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown material %q", s)
}
