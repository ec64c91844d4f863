package game

import (
	"log"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"voxelstead/internal/audio"
	"voxelstead/internal/block"
	"voxelstead/internal/config"
	"voxelstead/internal/eventlog"
	"voxelstead/internal/observer"
	"voxelstead/internal/physics"
	"voxelstead/internal/sim"
	"voxelstead/internal/world"
)

// Mode is the coarse session state. The intro flight runs once and
// hands over to the player; there is no transition back.
type Mode uint8

const (
	ModeCinematic Mode = iota
	ModeInteractive
)

// Interaction tuning.
const (
	placeClearance = 0.5 // minimum block-center distance from the eye
	keeperRange    = 2.0 // how close counts as talking to the keeper
)

// Game wires every collaborator together and drives the fixed-order
// tick. step carries the whole simulation and runs headless; Run adds
// the window, input polling and rendering around it.
type Game struct {
	cfg config.Config

	phys     *physics.World
	feed     *sim.Feed
	world    *world.World
	day      *sim.DayCycle
	crops    *sim.CropField
	critters *sim.Critters
	quests   *sim.QuestLine
	sound    *audio.Manager
	logw     *eventlog.Writer
	obs      *observer.Server

	player   *Player
	targeter *Targeter
	cine     *Cinematic
	hud      *HUD
	renderer *world.Renderer

	mode     Mode
	tick     uint64
	palette  []block.Material
	selected int

	drawn  int
	stepMs float64
	drawMs float64
}

// New builds the whole session: physics, world, content systems, audio
// and the optional telemetry sinks. Everything here is window-free; GPU
// resources wait for Run.
func New(cfg config.Config) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		phys:     physics.NewWorld(),
		feed:     &sim.Feed{},
		palette:  block.Placeables(),
		targeter: &Targeter{},
		hud:      &HUD{},
	}

	g.world = world.New(g.phys, g.feed)
	g.crops = sim.NewCropField(uint64(cfg.Sim.CropGrowTicks), uint64(cfg.Sim.CropRegrowTicks),
		g.feed, g.world.CropPlant(), g.world.CropSwap())
	g.world.Crops = g.crops

	if err := g.world.Generate(cfg.Seed, cfg.World); err != nil {
		return nil, err
	}

	g.day = sim.NewDayCycle(uint64(cfg.Sim.DayTicks), g.feed)
	g.critters = sim.NewCritters(g.world.Scene, cfg.Seed)
	g.spawnCritters(cfg.World)

	quests, err := sim.NewQuestLine(g.feed, cfg.Quests)
	if err != nil {
		return nil, err
	}
	g.quests = quests

	g.sound = audio.NewManager(cfg.Audio.Enabled, cfg.Audio.MasterVolume, "assets/audio")
	g.feed.Subscribe(g.onEvent)

	spawn := rl.Vector3{X: -2, Y: 0.25 + cfg.Player.EyeHeight, Z: 5}
	player, err := NewPlayer(g.phys, cfg.Player, spawn)
	if err != nil {
		return nil, err
	}
	g.player = player

	g.cine = NewCinematic(rl.Vector3{Y: 1.5}, player.Camera())
	g.mode = ModeCinematic

	if cfg.Log.Enabled {
		logw, err := eventlog.NewWriter(cfg.Log.Dir)
		if err != nil {
			return nil, err
		}
		g.logw = logw
		if err := logw.Write(eventlog.NewSessionStart(cfg.Seed)); err != nil {
			return nil, err
		}
		g.feed.Subscribe(g.logEvent)
		log.Printf("session log: %s", logw.Path())
	}

	if cfg.Observer.Enabled {
		obs := observer.NewServer(cfg.Observer.Addr)
		if err := obs.Start(); err != nil {
			return nil, err
		}
		g.obs = obs
	}

	return g, nil
}

// spawnCritters rings the wildlife around the platform center, spaced
// by the golden angle so no two share a home.
func (g *Game) spawnCritters(cfg config.World) {
	tints := []rl.Color{
		rl.NewColor(232, 226, 208, 255),
		rl.NewColor(188, 122, 60, 255),
		rl.NewColor(120, 108, 96, 255),
	}
	d := float32(cfg.PlatformRadius) * block.Size * 0.55
	for i := 0; i < cfg.CritterCount; i++ {
		a := float64(i) * 2.39996
		home := rl.Vector3{
			X: float32(math.Cos(a)) * d,
			Y: 0.45,
			Z: float32(math.Sin(a)) * d,
		}
		g.critters.Spawn(home, tints[i%len(tints)])
	}
}

// Run opens the window and drives the loop until close. One step per
// frame; the physics tick is fixed, so the target FPS is the sim rate.
func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(int32(g.cfg.Window.Width), int32(g.cfg.Window.Height), g.cfg.Window.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(g.cfg.Window.TargetFPS))
	rl.DisableCursor()

	// GPU resources only exist once the GL context does
	g.renderer = world.NewRenderer()
	defer g.renderer.Close()
	g.hud.initStyle()

	for !rl.WindowShouldClose() {
		in := Poll()
		start := time.Now()
		g.step(in)
		g.stepMs = float64(time.Since(start).Microseconds()) / 1000.0
		g.draw()
	}
	g.shutdown()
}

// step advances one fixed tick in the load-bearing order: input and
// block mutation, content systems, physics, contact drain to audio,
// pose sync, targeting. Rendering happens outside, from the snapshot
// this leaves behind.
func (g *Game) step(in Input) {
	g.tick++
	g.world.Tick = g.tick

	if in.ToggleHelp {
		g.hud.help = !g.hud.help
	}
	if in.ToggleStats {
		g.hud.stats = !g.hud.stats
	}

	if g.mode == ModeCinematic {
		if in.Skip {
			g.cine.Skip()
		}
		g.cine.Advance()
		if g.cine.Done() {
			g.mode = ModeInteractive
		}
	} else {
		g.handleInput(in)
	}

	g.day.Advance(g.tick)
	g.crops.Advance(g.tick)
	g.critters.Advance(g.tick)

	g.phys.Step()

	for _, c := range g.phys.DrainContacts() {
		if c.Started {
			g.onImpact(c)
		}
	}

	g.world.Sync()

	if g.mode == ModeInteractive {
		g.targeter.Update(g.player.Position, g.player.Forward(), g.world.Blocks(), g.player.Reach)
	}

	g.updateListener()

	if g.obs != nil && g.tick%uint64(g.cfg.Observer.EveryTicks) == 0 {
		g.obs.Publish(g.frame())
	}
}

func (g *Game) handleInput(in Input) {
	g.player.Look(in.LookDelta)
	g.player.Move(in, physics.FixedStep, g.world.Blocks())

	if in.Palette >= 1 && in.Palette <= len(g.palette) {
		g.selected = in.Palette - 1
	}
	if in.WheelSteps != 0 {
		n := len(g.palette)
		g.selected = ((g.selected+in.WheelSteps)%n + n) % n
	}

	if in.Destroy {
		if b := g.targeter.Target(); b != nil {
			g.targeter.Forget(b)
			g.world.DestroyBlock(b)
		}
	}
	if in.Place {
		g.place()
	}
	if in.Interact && g.nearKeeper() {
		g.quests.TurnIn(g.tick)
	}
}

// place puts the selected material into the cell flush against the
// targeted face. No target, too close to the eye, or an occupied cell
// all reject silently; the missing block is the only feedback.
func (g *Game) place() {
	pos, ok := g.targeter.PlacementPos()
	if !ok {
		return
	}
	if rl.Vector3Distance(pos, g.player.Position) < placeClearance {
		return
	}
	g.world.PlaceBlock(g.palette[g.selected], pos)
}

func (g *Game) nearKeeper() bool {
	return rl.Vector3Distance(g.player.Position, g.world.NPCPos()) <= keeperRange
}

// onImpact turns a hard begin-contact into a thud: positional audio
// plus a feed event for the log. Soft touches stay silent.
func (g *Game) onImpact(c physics.Contact) {
	gain := audio.ThudGain(c.Speed)
	if gain <= 0 {
		return
	}
	body := c.A
	if body.IsStatic() {
		body = c.B
	}
	if body.IsStatic() {
		return
	}
	g.sound.PlayAt(audio.CueThud, body.Position, gain)
	g.feed.Publish(sim.Event{Kind: sim.EventBlockThud, Tick: g.tick, Pos: body.Position, Speed: c.Speed})
}

// onEvent drives the flat gameplay cues off the feed.
func (g *Game) onEvent(ev sim.Event) {
	switch ev.Kind {
	case sim.EventBlockPlaced:
		g.sound.PlayAt(audio.CuePlace, ev.Pos, 1)
	case sim.EventBlockDestroyed:
		g.sound.PlayAt(audio.CueBreak, ev.Pos, 1)
	case sim.EventQuestAdvanced:
		g.sound.Play(audio.CueChime)
	}
}

// logEvent mirrors the feed into the session log. A failing sink logs
// once and disables itself; telemetry never stops the game.
func (g *Game) logEvent(ev sim.Event) {
	if g.logw == nil {
		return
	}
	if err := g.logw.Write(ev); err != nil {
		log.Printf("session log: %v; disabling", err)
		g.logw.Close()
		g.logw = nil
	}
}

func (g *Game) updateListener() {
	if g.mode == ModeCinematic {
		cam := g.cine.Camera()
		g.sound.SetListener(cam.Position, rl.Vector3Subtract(cam.Target, cam.Position), cam.Up)
		return
	}
	g.sound.SetListener(g.player.Position, g.player.Forward(), rl.Vector3{Y: 1})
}

func (g *Game) frame() observer.Frame {
	return observer.Frame{
		Tick:     g.tick,
		Phase:    g.day.Phase().String(),
		Statics:  g.world.StaticCount(),
		Loose:    g.world.LooseCount(),
		Sleeping: g.phys.SleepingCount(),
		Player:   g.player.Position,
		Coins:    g.quests.Coins(),
	}
}

func (g *Game) draw() {
	cam := g.player.Camera()
	if g.mode == ModeCinematic {
		cam = g.cine.Camera()
	}

	rl.BeginDrawing()
	start := time.Now()
	g.drawn = g.renderer.Draw(cam, g.world.Scene, g.day.SkyTint(g.tick), g.day.Light(g.tick))
	g.drawMs = float64(time.Since(start).Microseconds()) / 1000.0
	if g.hud.Draw(g) {
		g.cine.Skip()
	}
	rl.EndDrawing()
}

// shutdown closes the sinks in reverse dependency order.
func (g *Game) shutdown() {
	if g.obs != nil {
		g.obs.Close()
	}
	if g.logw != nil {
		g.logw.Write(eventlog.SessionEnd{Event: "session_end", Tick: g.tick, Coins: g.quests.Coins()})
		if err := g.logw.Close(); err != nil {
			log.Printf("session log: %v", err)
		}
	}
	g.sound.Close()
	g.phys.Close()
}
