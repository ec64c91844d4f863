package sim

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// DayPhase is the coarse time of day.
type DayPhase uint8

const (
	Dawn DayPhase = iota
	Day
	Dusk
	Night
)

var dayPhaseNames = [...]string{"dawn", "day", "dusk", "night"}

func (p DayPhase) String() string {
	if int(p) >= len(dayPhaseNames) {
		return "unknown"
	}
	return dayPhaseNames[p]
}

// Phase boundaries as fractions of one day.
const (
	dawnEnd = 0.10
	dayEnd  = 0.50
	duskEnd = 0.60
)

var skyTints = [...]rl.Color{
	Dawn:  rl.NewColor(236, 170, 122, 255),
	Day:   rl.NewColor(140, 190, 230, 255),
	Dusk:  rl.NewColor(200, 120, 110, 255),
	Night: rl.NewColor(24, 28, 48, 255),
}

var lightLevels = [...]float32{
	Dawn:  0.55,
	Day:   1.0,
	Dusk:  0.60,
	Night: 0.18,
}

// Each phase's tint and light level are pinned to its midpoint, so the
// blends ease through the boundaries instead of snapping at them. The
// ends wrap around midnight.
var blendAnchors = [...]struct {
	at    float32
	phase DayPhase
}{
	{0.05, Dawn},
	{0.30, Day},
	{0.55, Dusk},
	{0.80, Night},
	{1.05, Dawn},
}

// blendAt finds the phases on either side of frac and how far between
// their anchors it sits.
func blendAt(frac float32) (from, to DayPhase, t float32) {
	prevAt, prevPhase := float32(-0.20), Night
	for _, a := range blendAnchors {
		if frac < a.at {
			return prevPhase, a.phase, (frac - prevAt) / (a.at - prevAt)
		}
		prevAt, prevPhase = a.at, a.phase
	}
	return Dawn, Dawn, 0
}

// DayCycle derives the time of day from the tick counter. No wall-clock
// time is involved, so replaying the same tick sequence yields the same
// phases.
type DayCycle struct {
	ticksPerDay uint64
	phase       DayPhase
	feed        *Feed
}

func NewDayCycle(ticksPerDay uint64, feed *Feed) *DayCycle {
	if ticksPerDay == 0 {
		ticksPerDay = 1
	}
	return &DayCycle{ticksPerDay: ticksPerDay, feed: feed}
}

// Advance recomputes the phase for the given tick and publishes a
// transition event when it changes.
func (d *DayCycle) Advance(tick uint64) {
	next := d.phaseAt(tick)
	if next == d.phase {
		return
	}
	d.phase = next
	if d.feed != nil {
		d.feed.Publish(Event{Kind: EventDayPhase, Tick: tick, Phase: next.String()})
	}
}

func (d *DayCycle) phaseAt(tick uint64) DayPhase {
	frac := float64(tick%d.ticksPerDay) / float64(d.ticksPerDay)
	switch {
	case frac < dawnEnd:
		return Dawn
	case frac < dayEnd:
		return Day
	case frac < duskEnd:
		return Dusk
	default:
		return Night
	}
}

func (d *DayCycle) Phase() DayPhase {
	return d.phase
}

// SkyTint blends between the phase colors across the day so the horizon
// never snaps.
func (d *DayCycle) SkyTint(tick uint64) rl.Color {
	frac := float32(tick%d.ticksPerDay) / float32(d.ticksPerDay)
	from, to, t := blendAt(frac)
	return lerpColor(skyTints[from], skyTints[to], t)
}

// Light is the ambient brightness in [0,1], blended with the same
// anchors as SkyTint. Full at noon, dim but never black at night.
func (d *DayCycle) Light(tick uint64) float32 {
	frac := float32(tick%d.ticksPerDay) / float32(d.ticksPerDay)
	from, to, t := blendAt(frac)
	return lightLevels[from] + (lightLevels[to]-lightLevels[from])*t
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return rl.NewColor(
		uint8(float32(a.R)+(float32(b.R)-float32(a.R))*t),
		uint8(float32(a.G)+(float32(b.G)-float32(a.G))*t),
		uint8(float32(a.B)+(float32(b.B)-float32(a.B))*t),
		255,
	)
}
