package sim

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// EventKind enumerates simulation occurrences.
type EventKind uint8

const (
	EventBlockPlaced EventKind = iota
	EventBlockDestroyed
	EventBlockToppled // static block converted to dynamic by a support pass
	EventBlockThud    // dynamic body landed hard enough to hear
	EventDayPhase
	EventCropMatured
	EventQuestAdvanced
)

var eventKindNames = [...]string{
	EventBlockPlaced:    "block_placed",
	EventBlockDestroyed: "block_destroyed",
	EventBlockToppled:   "block_toppled",
	EventBlockThud:      "block_thud",
	EventDayPhase:       "day_phase",
	EventCropMatured:    "crop_matured",
	EventQuestAdvanced:  "quest_advanced",
}

func (k EventKind) String() string {
	if int(k) >= len(eventKindNames) {
		return "unknown"
	}
	return eventKindNames[k]
}

// Event is one simulation occurrence. Only the fields relevant to the kind
// are set; the JSON names feed the session log and the observer stream.
type Event struct {
	Kind     EventKind  `json:"-"`
	Name     string     `json:"event"`
	Tick     uint64     `json:"tick"`
	Material string     `json:"material,omitempty"`
	UID      uint64     `json:"uid,omitempty"`
	Pos      rl.Vector3 `json:"pos,omitempty"`
	Speed    float32    `json:"speed,omitempty"`
	Phase    string     `json:"phase,omitempty"`
	Quest    string     `json:"quest,omitempty"`
	Coins    int        `json:"coins,omitempty"`
}

// Feed is a multicast dispatcher: any number of listeners, invoked
// synchronously in subscription order. Listeners may publish further events
// while handling one; they must not block.
type Feed struct {
	listeners []func(Event)
}

// Subscribe adds a callback invoked for every published event.
func (f *Feed) Subscribe(callback func(Event)) {
	if callback == nil {
		return
	}
	f.listeners = append(f.listeners, callback)
}

// Publish stamps the event's name and hands it to every listener.
func (f *Feed) Publish(ev Event) {
	ev.Name = ev.Kind.String()
	for _, listener := range f.listeners {
		listener(ev)
	}
}

// ListenerCount reports registered listeners.
func (f *Feed) ListenerCount() int {
	return len(f.listeners)
}
