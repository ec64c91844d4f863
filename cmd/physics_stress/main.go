// Stress test for the support cascade: how fast a floating slab
// converts, and how long the solver takes to put the rubble to sleep.
package main

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"voxelstead/internal/block"
	"voxelstead/internal/physics"
	"voxelstead/internal/scene"
)

const (
	layers   = 3
	maxSteps = 600
)

func main() {
	for _, n := range []int{8, 16, 24, 32} {
		stressSlab(n)
	}
}

// stressSlab floats an n by n by 3 static slab, then lets the support
// cascade and the solver tear it down layer by layer.
func stressSlab(n int) {
	phys := physics.NewWorld()
	defer phys.Close()
	deps := block.Deps{World: phys, Scene: scene.NewScene("stress")}

	var all []*block.Block
	for layer := 0; layer < layers; layer++ {
		y := 3.0 + float32(layer)*block.Size
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				pos := rl.Vector3{
					X: (float32(i) - float32(n)/2) * block.Size,
					Y: y,
					Z: (float32(j) - float32(n)/2) * block.Size,
				}
				b, err := block.New(deps, pos, block.Stone, physics.BodyStatic)
				if err != nil {
					fmt.Printf("%5d blocks: ERROR: %v\n", n*n*layers, err)
					return
				}
				all = append(all, b)
			}
		}
	}

	convertStart := time.Now()
	toppled := len(block.ConvertUnsupported(all))
	convertTime := time.Since(convertStart)

	steps := 0
	var stepTotal time.Duration
	for steps < maxSteps {
		stepStart := time.Now()
		phys.Step()
		stepTotal += time.Since(stepStart)
		steps++

		// Moved rubble exposes the layer above it on the next pass
		toppled += len(block.ConvertUnsupported(all))
		for _, b := range all {
			b.Sync()
		}
		if phys.DynamicCount() > 0 && phys.SleepingCount() == phys.DynamicCount() {
			break
		}
	}

	fmt.Printf("%5d blocks: convert %8v | %4d toppled | settled in %3d steps (%8v/step)\n",
		n*n*layers, convertTime.Round(time.Microsecond), toppled, steps,
		(stepTotal / time.Duration(steps)).Round(time.Microsecond))
}
