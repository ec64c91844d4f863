package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Overlay theme, warm wood and parchment.
var (
	hudPanel     = rl.NewColor(32, 26, 20, 215)
	hudPanelLine = rl.NewColor(84, 66, 46, 255)
	hudText      = rl.NewColor(236, 228, 210, 255)
	hudMuted     = rl.NewColor(168, 156, 134, 255)
	hudAccent    = rl.NewColor(222, 178, 84, 255)
	hudGood      = rl.NewColor(150, 196, 110, 255)
)

// HUD is the draw-phase overlay: crosshair, palette hotbar, coins and
// clock, quest panel, help. It reads game state and never mutates the
// simulation.
type HUD struct {
	help  bool
	stats bool
}

// initStyle points raygui at the overlay theme. Call once, after the
// window exists.
func (h *HUD) initStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(hudPanel))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(58, 46, 32, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.NewColor(84, 66, 46, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(hudAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(hudText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(hudText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(rl.NewColor(32, 26, 20, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(hudPanelLine))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(hudAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 16)
}

// Draw renders the overlay for the current mode and reports whether the
// intro skip button was clicked.
func (h *HUD) Draw(g *Game) bool {
	sw := int32(rl.GetScreenWidth())
	sh := int32(rl.GetScreenHeight())

	if g.mode == ModeCinematic {
		return h.drawIntro(sw, sh)
	}

	h.drawCrosshair(sw, sh)
	h.drawHotbar(g, sw, sh)
	h.drawStatus(g)
	h.drawQuest(g, sw)
	if h.help {
		h.drawHelp(sh)
	}
	if h.stats {
		h.drawStats(g)
	}
	return false
}

func (h *HUD) drawIntro(sw, sh int32) bool {
	title := "VOXELSTEAD"
	w := rl.MeasureText(title, 64)
	rl.DrawText(title, (sw-w)/2+3, sh/5+3, 64, rl.Fade(rl.Black, 0.6))
	rl.DrawText(title, (sw-w)/2, sh/5, 64, hudText)

	sub := "a small homestead in the half-unit hills"
	ws := rl.MeasureText(sub, 20)
	rl.DrawText(sub, (sw-ws)/2, sh/5+74, 20, hudMuted)

	return gui.Button(rl.Rectangle{X: float32(sw - 150), Y: float32(sh - 54), Width: 130, Height: 34}, "Skip intro")
}

func (h *HUD) drawCrosshair(sw, sh int32) {
	cx, cy := sw/2, sh/2
	rl.DrawRectangle(cx-8, cy-1, 16, 2, rl.Fade(hudText, 0.8))
	rl.DrawRectangle(cx-1, cy-8, 2, 16, rl.Fade(hudText, 0.8))
}

func (h *HUD) drawHotbar(g *Game, sw, sh int32) {
	const slot, pad = int32(40), int32(6)
	n := int32(len(g.palette))
	x := (sw - (n*slot + (n-1)*pad)) / 2
	y := sh - slot - 16

	for i, mat := range g.palette {
		r := rl.Rectangle{X: float32(x + int32(i)*(slot+pad)), Y: float32(y), Width: float32(slot), Height: float32(slot)}
		rl.DrawRectangleRec(r, rl.Fade(hudPanel, 0.85))
		tint := mat.Tint()
		tint.A = 255
		rl.DrawRectangleRec(rl.Rectangle{X: r.X + 5, Y: r.Y + 5, Width: r.Width - 10, Height: r.Height - 10}, tint)
		if i == g.selected {
			rl.DrawRectangleLinesEx(r, 3, hudAccent)
		} else {
			rl.DrawRectangleLinesEx(r, 1, hudPanelLine)
		}
		if i < len(slotKeys) {
			rl.DrawText(fmt.Sprintf("%d", i+1), int32(r.X)+4, int32(r.Y)+3, 10, hudMuted)
		}
	}

	name := g.palette[g.selected].String()
	wn := rl.MeasureText(name, 16)
	rl.DrawText(name, (sw-wn)/2, y-22, 16, hudText)
}

func (h *HUD) drawStatus(g *Game) {
	rl.DrawRectangle(10, 10, 170, 58, hudPanel)
	rl.DrawRectangleLines(10, 10, 170, 58, hudPanelLine)
	rl.DrawText(fmt.Sprintf("Coins  %d", g.quests.Coins()), 22, 18, 18, hudAccent)
	rl.DrawText(fmt.Sprintf("%s  %s", clock(g.tick, g.cfg.Sim.DayTicks), g.day.Phase()), 22, 44, 16, hudMuted)
}

// clock renders the day fraction as wall time.
func clock(tick uint64, dayTicks int) string {
	frac := float64(tick%uint64(dayTicks)) / float64(dayTicks)
	m := int(frac * 24 * 60)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func (h *HUD) drawQuest(g *Game, sw int32) {
	x := sw - 250
	q := g.quests.Active()
	if q == nil {
		rl.DrawRectangle(x, 10, 240, 40, hudPanel)
		rl.DrawRectangleLines(x, 10, 240, 40, hudPanelLine)
		rl.DrawText("All quests done", x+12, 22, 16, hudGood)
		return
	}

	rl.DrawRectangle(x, 10, 240, 104, hudPanel)
	rl.DrawRectangleLines(x, 10, 240, 104, hudPanelLine)

	n, total := g.quests.Progress()
	rl.DrawText(fmt.Sprintf("Quest %d/%d", n, total), x+12, 18, 12, hudMuted)
	rl.DrawText(q.Title, x+12, 34, 16, hudText)

	have := g.quests.Have()
	if have > q.Count {
		have = q.Count
	}
	rl.DrawText(fmt.Sprintf("%d/%d %s", have, q.Count, q.Item), x+12, 58, 14, hudText)

	const barW = int32(216)
	fill := int32(float32(barW) * float32(have) / float32(q.Count))
	rl.DrawRectangle(x+12, 78, barW, 8, rl.Fade(hudPanelLine, 0.6))
	rl.DrawRectangle(x+12, 78, fill, 8, hudGood)

	if g.quests.CanTurnIn() {
		hint := "bring it to the keeper [E]"
		if g.nearKeeper() {
			hint = "press E to turn in"
		}
		rl.DrawText(hint, x+12, 92, 12, hudAccent)
	}
}

func (h *HUD) drawHelp(sh int32) {
	lines := []string{
		"WASD  move   Space  jump",
		"Mouse  look around",
		"Left click  break block",
		"Right click  place block",
		"1-4 / wheel  pick material",
		"E  talk to the keeper",
		"F1  help    F3  stats",
	}
	y := sh - int32(len(lines))*20 - 84
	rl.DrawRectangle(10, y-8, 250, int32(len(lines))*20+14, hudPanel)
	rl.DrawRectangleLines(10, y-8, 250, int32(len(lines))*20+14, hudPanelLine)
	for i, s := range lines {
		rl.DrawText(s, 20, y+int32(i)*20, 14, hudText)
	}
}

func (h *HUD) drawStats(g *Game) {
	rl.DrawText(fmt.Sprintf("Step:  %.2f ms", g.stepMs), 10, 80, 16, hudGood)
	rl.DrawText(fmt.Sprintf("Draw:  %.2f ms", g.drawMs), 10, 100, 16, hudGood)
	rl.DrawText(fmt.Sprintf("Nodes drawn: %d", g.drawn), 10, 120, 16, hudGood)
	rl.DrawText(fmt.Sprintf("Statics: %d  Loose: %d", g.world.StaticCount(), g.world.LooseCount()), 10, 140, 16, hudGood)
	rl.DrawText(fmt.Sprintf("Dynamic: %d  Sleeping: %d", g.phys.DynamicCount(), g.phys.SleepingCount()), 10, 160, 16, hudGood)
	rl.DrawFPS(10, 184)
}
