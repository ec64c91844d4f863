package audio

import (
	"log"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Cue identifies one of the game's sound effects.
type Cue uint8

const (
	CueThud Cue = iota
	CuePlace
	CueBreak
	CueChime

	cueCount
)

var cueFiles = [cueCount]string{
	CueThud:  "thud.wav",
	CuePlace: "place.wav",
	CueBreak: "break.wav",
	CueChime: "chime.wav",
}

// Listener is the ear: position and facing, updated from the camera once
// per tick.
type Listener struct {
	Position rl.Vector3
	Forward  rl.Vector3
	Right    rl.Vector3
}

// Manager owns the audio device and the loaded cues. It is constructed
// explicitly and passed to whoever plays sounds; there is no package-level
// instance. A disabled manager, or one whose device or files failed to
// load, degrades to a silent no-op and gameplay never branches on it.
type Manager struct {
	enabled  bool
	master   float32
	listener Listener
	sounds   [cueCount]rl.Sound
	loaded   [cueCount]bool
}

// NewManager opens the audio device and loads the cue files from dir.
// With enabled=false it returns a silent manager without touching the
// device at all.
func NewManager(enabled bool, master float32, dir string) *Manager {
	m := &Manager{enabled: enabled, master: master}
	if !enabled {
		return m
	}
	rl.InitAudioDevice()
	if !rl.IsAudioDeviceReady() {
		log.Printf("audio: device unavailable, continuing silent")
		m.enabled = false
		return m
	}
	for cue, name := range cueFiles {
		s := rl.LoadSound(filepath.Join(dir, name))
		if !rl.IsSoundValid(s) {
			log.Printf("audio: missing cue %s, skipping", name)
			continue
		}
		m.sounds[cue] = s
		m.loaded[cue] = true
	}
	return m
}

// Close unloads the cues and shuts the device down.
func (m *Manager) Close() {
	if !m.enabled {
		return
	}
	for cue, ok := range m.loaded {
		if ok {
			rl.UnloadSound(m.sounds[cue])
			m.loaded[cue] = false
		}
	}
	rl.CloseAudioDevice()
	m.enabled = false
}

func (m *Manager) Enabled() bool {
	return m.enabled
}

// SetListener updates the ear from the camera pose.
func (m *Manager) SetListener(pos, forward, up rl.Vector3) {
	m.listener.Position = pos

	fwdLen := rl.Vector3Length(forward)
	if fwdLen > 0.001 {
		m.listener.Forward = rl.Vector3Scale(forward, 1.0/fwdLen)
	} else {
		m.listener.Forward = rl.Vector3{Z: -1}
	}

	right := rl.Vector3CrossProduct(m.listener.Forward, up)
	rightLen := rl.Vector3Length(right)
	if rightLen > 0.001 {
		m.listener.Right = rl.Vector3Scale(right, 1.0/rightLen)
	} else {
		m.listener.Right = rl.Vector3{X: 1}
	}
}

// PlayAt plays a cue positioned in the world, attenuated and panned
// relative to the listener. Unloaded cues and disabled managers are a
// silent no-op.
func (m *Manager) PlayAt(cue Cue, pos rl.Vector3, gain float32) {
	if !m.enabled || !m.loaded[cue] {
		return
	}
	volume, pan := Spatialize(m.listener, pos, 40.0, gain*m.master)
	if volume <= 0 {
		return
	}
	rl.SetSoundVolume(m.sounds[cue], volume)
	// raylib's pan weights the left channel, so 1.0 plays left; flip it
	rl.SetSoundPan(m.sounds[cue], 1.0-pan)
	rl.PlaySound(m.sounds[cue])
}

// Play plays a cue flat, for UI feedback.
func (m *Manager) Play(cue Cue) {
	if !m.enabled || !m.loaded[cue] {
		return
	}
	rl.SetSoundVolume(m.sounds[cue], m.master)
	rl.SetSoundPan(m.sounds[cue], 0.5)
	rl.PlaySound(m.sounds[cue])
}

// Spatialize computes volume and pan for a source heard by the listener:
// linear distance falloff, pan from the angle to the listener's right
// vector, and a mild cut for sounds behind the ear.
func Spatialize(l Listener, src rl.Vector3, maxDistance, volume float32) (float32, float32) {
	toSource := rl.Vector3Subtract(src, l.Position)
	distance := rl.Vector3Length(toSource)

	var out float32
	if distance < maxDistance {
		out = volume * (1.0 - distance/maxDistance)
	}

	pan := float32(0.5)
	if distance > 0.001 {
		direction := rl.Vector3Scale(toSource, 1.0/distance)
		rightDot := rl.Vector3DotProduct(direction, l.Right)
		pan = 0.5 + rightDot*0.5
		if pan < 0 {
			pan = 0
		} else if pan > 1 {
			pan = 1
		}

		// 1.0 at the side easing down to 0.7 directly behind
		frontDot := rl.Vector3DotProduct(direction, l.Forward)
		if frontDot < 0 {
			out *= 1.0 + 0.3*frontDot
		}
	}
	return out, pan
}

// ThudGain maps a contact's approach speed onto a 0..1 gain: silent below
// a tap, full volume for a hard landing.
func ThudGain(speed float32) float32 {
	const quiet, loud = 0.5, 6.0
	if speed <= quiet {
		return 0
	}
	if speed >= loud {
		return 1
	}
	return (speed - quiet) / (loud - quiet)
}
