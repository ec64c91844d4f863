package physics

import (
	"errors"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FixedStep is the simulated time one Step call advances. The frame loop's
// wall-clock delta never reaches the integrator; callers interpolate
// cameras and animations with their own delta and step physics once per
// tick.
const FixedStep = float32(1.0 / 60.0)

// Spatial grid cell size - bodies within same or neighboring cells are checked
const CellSize = 2.0

// MaxBodies caps the total body count a world will accept.
const MaxBodies = 8192

// GroundExtent is the edge length of the ground slab every world owns.
const GroundExtent = 128.0

var (
	ErrClosed = errors.New("physics: world closed")
	ErrFull   = errors.New("physics: body limit reached")
)

// CellKey for spatial hashing
type CellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3) CellKey {
	return CellKey{
		X: int(pos.X / CellSize),
		Y: int(pos.Y / CellSize),
		Z: int(pos.Z / CellSize),
	}
}

// pair is a consistent unordered body pair (smaller pointer first).
type pair struct {
	A, B *Body
}

func makePair(a, b *Body) pair {
	ptrA, ptrB := uintptr(unsafe.Pointer(a)), uintptr(unsafe.Pointer(b))
	if ptrA > ptrB {
		return pair{A: b, B: a}
	}
	return pair{A: a, B: b}
}

// Contact is one begin or end touch event between two bodies. Contacts are
// queued during Step and handed out exactly once by DrainContacts.
type Contact struct {
	A, B    *Body
	Started bool
	Speed   float32 // approach speed at first touch; zero for end events
}

// World owns every body and the contact event queue. Construct one with
// NewWorld, pass it down explicitly, and Close it on shutdown; there is no
// package-level instance.
type World struct {
	Gravity rl.Vector3

	dynamics []*Body
	statics  []*Body
	ground   *Body

	grid         map[CellKey][]*Body // dynamics, rebuilt every step
	staticGrid   map[CellKey][]*Body // statics, rebuilt when dirty
	staticsDirty bool

	activePairs  map[pair]bool    // pairs touching as of last step
	currentPairs map[pair]float32 // pairs touching this step, with approach speed
	events       []Contact

	closed bool
}

// NewWorld creates a world with downward gravity and a ground slab whose
// top surface is the plane y = 0.
func NewWorld() *World {
	w := &World{
		Gravity:      rl.Vector3{X: 0, Y: -20.0, Z: 0},
		grid:         make(map[CellKey][]*Body),
		staticGrid:   make(map[CellKey][]*Body),
		activePairs:  make(map[pair]bool),
		currentPairs: make(map[pair]float32),
	}
	ground := &Body{
		Position: rl.Vector3{Y: -0.25},
		typ:      BodyStatic,
		shape:    BoxShape(rl.Vector3{X: GroundExtent, Y: 0.5, Z: GroundExtent}),
		world:    w,
	}
	w.statics = append(w.statics, ground)
	w.ground = ground
	w.staticsDirty = true
	return w
}

// Ground returns the world-owned ground slab body.
func (w *World) Ground() *Body { return w.ground }

// Close marks the world unusable. Stepping or mutating a closed world
// panics; this is a programming error, not a runtime condition.
func (w *World) Close() {
	w.closed = true
}

func (w *World) mustOpen() {
	if w.closed {
		panic("physics: world used after Close")
	}
}

// CreateBody adds a body at the given position. Static bodies join the
// broad-phase immediately; dynamic bodies start awake with zero velocity.
func (w *World) CreateBody(pos rl.Vector3, typ BodyType, shape Shape) (*Body, error) {
	if w.closed {
		return nil, ErrClosed
	}
	if len(w.dynamics)+len(w.statics) >= MaxBodies {
		return nil, ErrFull
	}
	b := &Body{
		Position:   pos,
		Mass:       1.0,
		Bounciness: 0.1,
		Friction:   0.25,
		CanSleep:   true,
		typ:        typ,
		shape:      shape,
		world:      w,
	}
	if typ == BodyStatic {
		w.statics = append(w.statics, b)
		w.staticsDirty = true
	} else {
		w.dynamics = append(w.dynamics, b)
	}
	return b, nil
}

// RemoveBody deregisters a body. Removing a body this world does not own
// (nil, foreign, or already removed) is a caller error and panics; the
// ownership discipline lives with the caller, not here. Contacts involving
// the removed body are discarded, never reported as ended.
func (w *World) RemoveBody(b *Body) {
	w.mustOpen()
	if b == nil || b.world != w {
		panic("physics: RemoveBody on body not owned by this world")
	}
	if b == w.ground {
		panic("physics: cannot remove the ground slab")
	}
	if b.typ == BodyStatic {
		for i, s := range w.statics {
			if s == b {
				w.statics = append(w.statics[:i], w.statics[i+1:]...)
				break
			}
		}
		w.staticsDirty = true
		w.wakeNear(b)
	} else {
		for i, d := range w.dynamics {
			if d == b {
				w.dynamics = append(w.dynamics[:i], w.dynamics[i+1:]...)
				break
			}
		}
	}
	b.world = nil
	for p := range w.activePairs {
		if p.A == b || p.B == b {
			delete(w.activePairs, p)
		}
	}
	for p := range w.currentPairs {
		if p.A == b || p.B == b {
			delete(w.currentPairs, p)
		}
	}
}

// wakeNear wakes sleeping dynamics resting around a removed support so
// they fall instead of sleeping in mid-air.
func (w *World) wakeNear(removed *Body) {
	area := removed.AABB()
	area.Min = rl.Vector3Subtract(area.Min, rl.Vector3{X: 0.1, Y: 0.1, Z: 0.1})
	area.Max = rl.Vector3Add(area.Max, rl.Vector3{X: 0.1, Y: 0.1, Z: 0.1})
	for _, d := range w.dynamics {
		if d.sleeping && d.AABB().Intersects(area) {
			d.Wake()
		}
	}
}

// DynamicCount returns the number of dynamic bodies.
func (w *World) DynamicCount() int { return len(w.dynamics) }

// StaticCount returns the number of static bodies, ground slab included.
func (w *World) StaticCount() int { return len(w.statics) }

// SleepingCount returns how many dynamic bodies are currently asleep.
func (w *World) SleepingCount() int {
	n := 0
	for _, d := range w.dynamics {
		if d.sleeping {
			n++
		}
	}
	return n
}

// rebuildGrid clears and repopulates the dynamic spatial hash grid.
func (w *World) rebuildGrid() {
	for k := range w.grid {
		delete(w.grid, k)
	}
	for _, b := range w.dynamics {
		cell := posToCell(b.Position)
		w.grid[cell] = append(w.grid[cell], b)
	}
}

// rebuildStaticGrid repopulates the static grid. Statics move rarely (a
// teleported player capsule, block placement), so this runs only when the
// dirty flag is set.
func (w *World) rebuildStaticGrid() {
	for k := range w.staticGrid {
		delete(w.staticGrid, k)
	}
	for _, b := range w.statics {
		if b == w.ground {
			continue // the slab spans everything; checked unconditionally
		}
		cell := posToCell(b.Position)
		w.staticGrid[cell] = append(w.staticGrid[cell], b)
	}
	w.staticsDirty = false
}

// neighbors gathers bodies from the 3x3x3 cell block around pos.
func neighbors(grid map[CellKey][]*Body, pos rl.Vector3) []*Body {
	cell := posToCell(pos)
	var out []*Body
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				key := CellKey{cell.X + dx, cell.Y + dy, cell.Z + dz}
				out = append(out, grid[key]...)
			}
		}
	}
	return out
}

// Step advances the simulation by exactly one FixedStep: integrate
// dynamics, resolve collisions, then turn pair changes into contact
// events. Wall-clock time plays no part.
func (w *World) Step() {
	w.mustOpen()
	w.currentPairs = make(map[pair]float32)

	// 1. Integrate: gravity and velocity, skipping sleepers
	for _, b := range w.dynamics {
		if b.sleeping {
			continue
		}
		b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(w.Gravity, FixedStep))
		b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(b.Velocity, FixedStep))
		b.trySleep(FixedStep)
	}

	// 2. Broad phase
	w.rebuildGrid()
	if w.staticsDirty {
		w.rebuildStaticGrid()
	}

	// 3. Dynamic vs dynamic
	checked := make(map[[2]uintptr]bool)
	for _, b := range w.dynamics {
		for _, other := range neighbors(w.grid, b.Position) {
			if b == other {
				continue
			}
			ptrA, ptrB := uintptr(unsafe.Pointer(b)), uintptr(unsafe.Pointer(other))
			if ptrA > ptrB {
				ptrA, ptrB = ptrB, ptrA
			}
			key := [2]uintptr{ptrA, ptrB}
			if checked[key] {
				continue
			}
			checked[key] = true
			w.resolveDynamicPair(b, other)
		}
	}

	// 4. Dynamic vs static (sleepers included so resting contacts stay alive)
	for _, b := range w.dynamics {
		for _, s := range neighbors(w.staticGrid, b.Position) {
			w.resolveStatic(b, s)
		}
		w.resolveStatic(b, w.ground)
	}

	// 5. Pair diff -> contact events
	w.dispatchContacts()
}

// DrainContacts returns every contact event accumulated since the previous
// drain and clears the queue. Each event is delivered exactly once; order
// within a drain is unspecified.
func (w *World) DrainContacts() []Contact {
	w.mustOpen()
	out := w.events
	w.events = nil
	return out
}

// record marks a pair touching this step, keeping the highest approach
// speed seen, and wakes sleepers hit hard enough.
func (w *World) record(a, b *Body, speed float32) {
	p := makePair(a, b)
	if prev, ok := w.currentPairs[p]; !ok || speed > prev {
		w.currentPairs[p] = speed
	}
	if speed > SleepVelocityThreshold*2 {
		if a.typ == BodyDynamic && a.sleeping {
			a.Wake()
		}
		if b.typ == BodyDynamic && b.sleeping {
			b.Wake()
		}
	}
}

// dispatchContacts diffs this step's pairs against the previous step's and
// queues begin/end events.
func (w *World) dispatchContacts() {
	for p, speed := range w.currentPairs {
		if !w.activePairs[p] {
			w.events = append(w.events, Contact{A: p.A, B: p.B, Started: true, Speed: speed})
		}
	}
	for p := range w.activePairs {
		if _, ok := w.currentPairs[p]; !ok {
			w.events = append(w.events, Contact{A: p.A, B: p.B, Started: false})
		}
	}
	w.activePairs = make(map[pair]bool, len(w.currentPairs))
	for p := range w.currentPairs {
		w.activePairs[p] = true
	}
}

// resolveDynamicPair handles two dynamic boxes: split the push by mass
// ratio and exchange a restitution impulse.
func (w *World) resolveDynamicPair(a, b *Body) {
	if a.sleeping && b.sleeping {
		// Settled stack: keep the contact alive without disturbing it
		if a.AABB().Intersects(b.AABB()) {
			w.record(a, b, 0)
		}
		return
	}

	pushOut := a.AABB().Resolve(b.AABB())
	if pushOut.X == 0 && pushOut.Y == 0 && pushOut.Z == 0 {
		return
	}

	relVel := rl.Vector3Subtract(a.Velocity, b.Velocity)
	pushLen := rl.Vector3Length(pushOut)
	if pushLen < 0.0001 {
		return
	}
	normal := rl.Vector3Scale(pushOut, 1/pushLen)
	velAlongNormal := rl.Vector3DotProduct(relVel, normal)
	w.record(a, b, abs32(velAlongNormal))

	// Split the push based on mass ratio
	totalMass := a.Mass + b.Mass
	ratioA := b.Mass / totalMass
	ratioB := a.Mass / totalMass
	a.Position = rl.Vector3Add(a.Position, rl.Vector3Scale(pushOut, ratioA))
	b.Position = rl.Vector3Subtract(b.Position, rl.Vector3Scale(pushOut, ratioB))

	// Only resolve velocities if moving toward each other
	if velAlongNormal > 0 {
		return
	}
	e := (a.Bounciness + b.Bounciness) / 2
	j := -(1 + e) * velAlongNormal
	j /= (1/a.Mass + 1/b.Mass)

	impulse := rl.Vector3Scale(normal, j)
	a.Velocity = rl.Vector3Add(a.Velocity, rl.Vector3Scale(impulse, 1/a.Mass))
	b.Velocity = rl.Vector3Subtract(b.Velocity, rl.Vector3Scale(impulse, 1/b.Mass))
}

// resolveStatic pushes a dynamic body out of a static body, dispatched on
// the shape combination.
func (w *World) resolveStatic(b, s *Body) {
	switch {
	case b.shape.Kind == ShapeBox && s.shape.Kind == ShapeBox:
		w.resolveBoxVsStaticBox(b, s)
	case b.shape.Kind == ShapeBox && s.shape.Kind == ShapeCapsule:
		w.resolveBoxVsStaticCapsule(b, s)
	case b.shape.Kind == ShapeCapsule && s.shape.Kind == ShapeBox:
		w.resolveCapsuleVsStaticBox(b, s)
	}
}

func (w *World) resolveBoxVsStaticBox(b, s *Body) {
	if !b.AABB().Intersects(s.AABB()) {
		return
	}
	pushOut := b.AABB().Resolve(s.AABB())
	if pushOut.X == 0 && pushOut.Y == 0 && pushOut.Z == 0 {
		// Exactly touching: keep the resting contact alive
		w.record(b, s, 0)
		return
	}
	pushLen := rl.Vector3Length(pushOut)
	if pushLen < 0.0001 {
		return
	}
	normal := rl.Vector3Scale(pushOut, 1/pushLen)
	velAlongNormal := rl.Vector3DotProduct(b.Velocity, normal)
	w.record(b, s, abs32(velAlongNormal))

	// Push fully out (static doesn't move)
	b.Position = rl.Vector3Add(b.Position, pushOut)

	if velAlongNormal < 0 {
		b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(normal, -(1+b.Bounciness)*velAlongNormal))
		// Friction perpendicular to the normal
		b.Velocity.X *= 1 - b.Friction
		b.Velocity.Z *= 1 - b.Friction
	}
}

// resolveBoxVsStaticCapsule pushes a dynamic box away from a static
// capsule (the player). The capsule is treated as a sphere at the segment
// point nearest the box.
func (w *World) resolveBoxVsStaticCapsule(b, s *Body) {
	half := s.shape.segmentHalf()
	p0 := rl.Vector3{X: s.Position.X, Y: s.Position.Y - half, Z: s.Position.Z}
	p1 := rl.Vector3{X: s.Position.X, Y: s.Position.Y + half, Z: s.Position.Z}
	bb := b.AABB()
	seg := closestPointOnSegment(p0, p1, bb.Center())
	q := bb.ClosestPoint(seg)

	diff := rl.Vector3Subtract(q, seg)
	dist := rl.Vector3Length(diff)
	if dist >= s.shape.Radius {
		return
	}
	var normal rl.Vector3
	if dist < 0.0001 {
		normal = rl.Vector3{Y: 1}
	} else {
		normal = rl.Vector3Scale(diff, 1/dist)
	}
	velAlongNormal := rl.Vector3DotProduct(b.Velocity, normal)
	w.record(b, s, abs32(velAlongNormal))

	pen := s.shape.Radius - dist
	b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(normal, pen))
	if velAlongNormal < 0 {
		b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(normal, -(1+b.Bounciness)*velAlongNormal))
	}
}

// resolveCapsuleVsStaticBox pushes a dynamic capsule out of a static box.
func (w *World) resolveCapsuleVsStaticBox(b, s *Body) {
	half := b.shape.segmentHalf()
	p0 := rl.Vector3{X: b.Position.X, Y: b.Position.Y - half, Z: b.Position.Z}
	p1 := rl.Vector3{X: b.Position.X, Y: b.Position.Y + half, Z: b.Position.Z}
	sb := s.AABB()
	seg := closestPointOnSegment(p0, p1, sb.Center())
	q := sb.ClosestPoint(seg)

	diff := rl.Vector3Subtract(seg, q)
	dist := rl.Vector3Length(diff)
	if dist >= b.shape.Radius {
		return
	}
	var normal rl.Vector3
	if dist < 0.0001 {
		normal = rl.Vector3{Y: 1}
	} else {
		normal = rl.Vector3Scale(diff, 1/dist)
	}
	velAlongNormal := rl.Vector3DotProduct(b.Velocity, normal)
	w.record(b, s, abs32(velAlongNormal))

	pen := b.shape.Radius - dist
	b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(normal, pen))
	if velAlongNormal < 0 {
		b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(normal, -(1+b.Bounciness)*velAlongNormal))
		b.Velocity.X *= 1 - b.Friction
		b.Velocity.Z *= 1 - b.Friction
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
