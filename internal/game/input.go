package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input is one tick of decoded controls. The orchestrator consumes only
// this struct, never the raw device state, so the whole tick pipeline
// runs headless in tests.
type Input struct {
	LookDelta rl.Vector2

	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Jump    bool

	Destroy  bool // primary click edge
	Place    bool // secondary click edge
	Interact bool // talk to the keeper

	// Palette is 1-based; zero means no slot key this tick. WheelSteps
	// cycles the palette relative to the current slot.
	Palette    int
	WheelSteps int

	Skip        bool // ends the intro flight
	ToggleHelp  bool
	ToggleStats bool
}

var slotKeys = [...]int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour}

// Poll reads the device state for this frame.
func Poll() Input {
	in := Input{
		LookDelta: rl.GetMouseDelta(),

		Forward: rl.IsKeyDown(rl.KeyW),
		Back:    rl.IsKeyDown(rl.KeyS),
		Left:    rl.IsKeyDown(rl.KeyA),
		Right:   rl.IsKeyDown(rl.KeyD),
		Jump:    rl.IsKeyPressed(rl.KeySpace),

		Destroy:  rl.IsMouseButtonPressed(rl.MouseLeftButton),
		Place:    rl.IsMouseButtonPressed(rl.MouseRightButton),
		Interact: rl.IsKeyPressed(rl.KeyE),

		WheelSteps: int(rl.GetMouseWheelMove()),

		ToggleHelp:  rl.IsKeyPressed(rl.KeyF1),
		ToggleStats: rl.IsKeyPressed(rl.KeyF3),
	}

	in.Skip = rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) ||
		rl.IsMouseButtonPressed(rl.MouseLeftButton)

	for i, key := range slotKeys {
		if rl.IsKeyPressed(key) {
			in.Palette = i + 1
		}
	}
	return in
}
