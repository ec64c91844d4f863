package world

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"voxelstead/internal/block"
	"voxelstead/internal/config"
	"voxelstead/internal/physics"
	"voxelstead/internal/sim"
)

func testGenConfig() config.World {
	return config.World{PlatformRadius: 12, TreeCount: 5, CritterCount: 0}
}

func generateWorld(t *testing.T, seed int64) *World {
	t.Helper()
	w := New(physics.NewWorld(), &sim.Feed{})
	if err := w.Generate(seed, testGenConfig()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return w
}

// snapshot maps every lattice cell to its material name.
func snapshot(w *World) map[Cell]string {
	out := make(map[Cell]string, len(w.blocks))
	for c, b := range w.blocks {
		out[c] = b.Material().String()
	}
	return out
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := snapshot(generateWorld(t, 1337))
	b := snapshot(generateWorld(t, 1337))

	if len(a) != len(b) {
		t.Fatalf("Same seed produced %d vs %d blocks", len(a), len(b))
	}
	for c, mat := range a {
		if b[c] != mat {
			t.Fatalf("Cell %v differs: %q vs %q", c, mat, b[c])
		}
	}
}

func TestGenerateSeedsDiffer(t *testing.T) {
	a := snapshot(generateWorld(t, 1))
	b := snapshot(generateWorld(t, 2))

	if len(a) == len(b) {
		same := true
		for c, mat := range a {
			if b[c] != mat {
				same = false
				break
			}
		}
		if same {
			t.Error("Different seeds produced identical homesteads")
		}
	}
}

func TestGenerateHomesteadPieces(t *testing.T) {
	w := generateWorld(t, 1337)

	if b := w.At(Cell{}); b == nil || b.Material() != block.Grass {
		t.Error("Expected grass terrain at the platform center")
	}

	counts := map[block.Material]int{}
	for _, b := range w.blocks {
		counts[b.Material()]++
	}
	if counts[block.Plank] == 0 {
		t.Error("Expected cabin walls of plank")
	}
	if counts[block.Stone] == 0 {
		t.Error("Expected the stone well")
	}
	if counts[block.Water] != 1 {
		t.Errorf("Expected exactly one water block in the well, got %d", counts[block.Water])
	}
	if counts[block.Fence] == 0 {
		t.Error("Expected the plot fence")
	}
	if counts[block.CropSprout] == 0 {
		t.Error("Expected planted sprouts")
	}
	if counts[block.Wood] == 0 || counts[block.Leaves] == 0 {
		t.Error("Expected trees with trunks and canopies")
	}

	if w.NPCPos() == (rl.Vector3{}) {
		t.Error("Expected the keeper placed")
	}
	if w.Scene.Len() != w.StaticCount()+1 {
		t.Errorf("Expected one keeper node beyond the blocks, scene %d vs %d statics",
			w.Scene.Len(), w.StaticCount())
	}
}

func TestGenerateUnderBodyBudget(t *testing.T) {
	w := New(physics.NewWorld(), &sim.Feed{})
	cfg := config.World{PlatformRadius: 40, TreeCount: 64}
	if err := w.Generate(99, cfg); err != nil {
		t.Fatalf("Largest platform must fit the body budget: %v", err)
	}
	if w.StaticCount() >= physics.MaxBodies {
		t.Errorf("Block count %d leaves no room for anything else", w.StaticCount())
	}
}

func TestGenerateRegistersCropSites(t *testing.T) {
	w := New(physics.NewWorld(), &sim.Feed{})
	field := sim.NewCropField(100, 200, w.Feed, w.CropPlant(), w.CropSwap())
	w.Crops = field

	if err := w.Generate(7, testGenConfig()); err != nil {
		t.Fatal(err)
	}

	if field.SiteCount() == 0 {
		t.Fatal("Expected crop sites registered during generation")
	}
	if field.SproutCount() != field.SiteCount() {
		t.Errorf("Every generated site starts as a sprout: %d of %d",
			field.SproutCount(), field.SiteCount())
	}

	// The whole plot matures in one sweep
	field.Advance(100)
	if field.GrownCount() != field.SiteCount() {
		t.Errorf("Expected every sprout grown at the growth tick, got %d of %d",
			field.GrownCount(), field.SiteCount())
	}
	if field.SproutCount() != 0 {
		t.Errorf("Expected no sprouts left, got %d", field.SproutCount())
	}
}

func TestDoorAndGateArePassable(t *testing.T) {
	w := generateWorld(t, 1337)
	h := layoutFor(testGenConfig().PlatformRadius)

	doorX := (h.cabin.x0 + h.cabin.x1) / 2
	for _, x := range []int{doorX, doorX + 1} {
		for y := 1; y <= 3; y++ {
			if b := w.At(Cell{x, y, h.cabin.z1}); b != nil {
				t.Errorf("Door cell (%d,%d,%d) blocked by %s", x, y, h.cabin.z1, b.Material())
			}
		}
	}
	if b := w.At(Cell{doorX, 4, h.cabin.z1}); b == nil {
		t.Error("Expected a lintel above the door gap")
	}

	fence := h.plot.inflate(1)
	gateX := (fence.x0 + fence.x1) / 2
	for _, x := range []int{gateX, gateX + 1} {
		if b := w.At(Cell{x, 1, fence.z0}); b != nil {
			t.Errorf("Gate cell (%d,1,%d) blocked by %s", x, fence.z0, b.Material())
		}
	}
	if b := w.At(Cell{fence.x0, 1, fence.z0}); b == nil || b.Material() != block.Fence {
		t.Error("Expected fence posts beside the gate")
	}
}

func TestTreesStayOffTheYard(t *testing.T) {
	w := generateWorld(t, 42)
	h := layoutFor(testGenConfig().PlatformRadius)

	// Trunk bases are wood at ground+1 outside the cabin footprint
	for c, b := range w.blocks {
		if c.Y != 1 || b.Material() != block.Wood {
			continue
		}
		if h.cabin.contains(c.X, c.Z) {
			continue // cabin corner posts
		}
		if h.isReserved(c.X, c.Z) {
			t.Errorf("Tree trunk at %v sits inside a reserved yard", c)
		}
	}
}
