// pkg/physics/world.go
package physics

import "math"

// ContactHandler receives the two bodies of a contact. Handlers run
// synchronously inside Step, before the frame's render.
type ContactHandler func(a, b *Body)

// bodyPair is an order-independent key for overlap tracking.
type bodyPair struct {
	a, b uint64
}

func makeBodyPair(a, b *Body) bodyPair {
	if a.ID > b.ID {
		a, b = b, a
	}
	return bodyPair{a: a.ID, b: b.ID}
}

// World owns every rigid body in the simulation. Bodies are mutated only
// from the frame loop; the world is not safe for concurrent use.
type World struct {
	Gravity             Vector3
	SolverIterations    int
	SleepSpeedThreshold float64

	// BeginContact fires once when two bodies start overlapping,
	// EndContact once when they separate.
	BeginContact ContactHandler
	EndContact   ContactHandler

	bodies    []*Body
	materials map[string]Material
	contacts  map[materialPair]ContactMaterial
	overlaps  map[bodyPair]bool
	nextID    uint64
}

// NewWorld creates a world with the given gravity and the default material set.
func NewWorld(gravity Vector3) *World {
	return &World{
		Gravity:             gravity,
		SolverIterations:    10,
		SleepSpeedThreshold: 0.05,
		materials:           defaultMaterials(),
		contacts:            defaultContactMaterials(),
		overlaps:            make(map[bodyPair]bool),
		nextID:              1,
	}
}

// AddBody inserts a body into the world and assigns it an ID.
func (w *World) AddBody(b *Body) {
	if b == nil {
		return
	}
	b.ID = w.nextID
	w.nextID++
	w.bodies = append(w.bodies, b)
}

// RemoveBody removes a body and clears any overlap bookkeeping that refers
// to it. Removing a body that is not in the world is a no-op.
func (w *World) RemoveBody(b *Body) {
	if b == nil {
		return
	}
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	for pair := range w.overlaps {
		if pair.a == b.ID || pair.b == b.ID {
			delete(w.overlaps, pair)
		}
	}
}

// Bodies returns the live body list. Callers must not mutate it.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// BodyCount returns the number of bodies in the world.
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// BodiesByTag returns the bodies whose UserData.Type matches tag.
func (w *World) BodiesByTag(tag string) []*Body {
	var out []*Body
	for _, b := range w.bodies {
		if b.UserData.Type == tag {
			out = append(out, b)
		}
	}
	return out
}

// SetMaterial registers or replaces a named material.
func (w *World) SetMaterial(m Material) {
	w.materials[m.Name] = m
}

// SetContactMaterial registers the response for a specific material pair.
func (w *World) SetContactMaterial(a, b string, cm ContactMaterial) {
	w.contacts[makePair(a, b)] = cm
}

// contactFor resolves friction/restitution for two bodies: an explicit pair
// entry wins, otherwise the two materials' values are averaged.
func (w *World) contactFor(a, b *Body) ContactMaterial {
	if cm, ok := w.contacts[makePair(a.Material, b.Material)]; ok {
		return cm
	}
	ma, okA := w.materials[a.Material]
	mb, okB := w.materials[b.Material]
	if !okA || !okB {
		return ContactMaterial{Friction: 0.5, Restitution: 0.3}
	}
	return ContactMaterial{
		Friction:    (ma.Friction + mb.Friction) / 2,
		Restitution: (ma.Restitution + mb.Restitution) / 2,
	}
}

// Step advances the simulation by dt seconds: integrate dynamic bodies,
// resolve dynamic-vs-solid penetration, then diff the overlap set and fire
// begin/end contact callbacks.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	w.integrate(dt)
	// Overlaps are collected before penetration resolution: push-out would
	// otherwise separate solid contacts before they are ever observed.
	current := w.collectOverlaps()
	w.resolveSolidContacts()
	w.dispatchOverlapEvents(current)
	w.applySleep()
}

// integrate applies gravity, accumulated forces and damping, then advances
// positions.
func (w *World) integrate(dt float64) {
	for _, b := range w.bodies {
		if !b.IsDynamic() {
			continue
		}
		accel := w.Gravity.Add(b.force.Scale(1 / b.Mass))
		b.Velocity = b.Velocity.Add(accel.Scale(dt))
		if b.LinearDamping > 0 {
			b.Velocity = b.Velocity.Scale(1 / (1 + b.LinearDamping*dt))
		}
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
		b.force = Vector3{}
	}
}

// resolveSolidContacts pushes dynamic bodies out of solid static/kinematic
// geometry and reflects velocity using the contact material.
func (w *World) resolveSolidContacts() {
	for _, b := range w.bodies {
		if !b.IsDynamic() || b.Shape.Type != SphereShape {
			continue
		}
		for _, other := range w.bodies {
			if other == b || other.IsDynamic() || other.Trigger {
				continue
			}
			if push, ok := penetration(b, other); ok {
				w.resolvePenetration(b, other, push)
			}
		}
	}
}

// resolvePenetration applies push-out, restitution along the contact normal
// and friction across it.
func (w *World) resolvePenetration(b, solid *Body, push Vector3) {
	depth := push.Length()
	if depth < 1e-9 {
		return
	}
	normal := push.Scale(1 / depth)
	b.Position = b.Position.Add(push)

	velAlongNormal := b.Velocity.Dot(normal)
	if velAlongNormal >= 0 {
		return
	}

	cm := w.contactFor(b, solid)
	reflect := normal.Scale(-(1 + cm.Restitution) * velAlongNormal)
	b.Velocity = b.Velocity.Add(reflect)

	// Friction damps the tangential component.
	normalComp := normal.Scale(b.Velocity.Dot(normal))
	tangential := b.Velocity.Sub(normalComp)
	b.Velocity = normalComp.Add(tangential.Scale(1 - cm.Friction*0.1))
}

// collectOverlaps gathers every dynamic-vs-nondynamic overlap pair.
func (w *World) collectOverlaps() map[bodyPair][2]*Body {
	current := make(map[bodyPair][2]*Body)

	for i := 0; i < len(w.bodies); i++ {
		a := w.bodies[i]
		if !a.IsDynamic() {
			continue
		}
		for j := 0; j < len(w.bodies); j++ {
			b := w.bodies[j]
			if a == b || b.IsDynamic() {
				continue
			}
			if overlapping(a, b) {
				current[makeBodyPair(a, b)] = [2]*Body{a, b}
			}
		}
	}

	return current
}

// dispatchOverlapEvents diffs the current overlap set against the previous
// step's and fires BeginContact / EndContact exactly once per episode.
func (w *World) dispatchOverlapEvents(current map[bodyPair][2]*Body) {
	for pair, bodies := range current {
		if !w.overlaps[pair] {
			w.overlaps[pair] = true
			if w.BeginContact != nil {
				w.BeginContact(bodies[0], bodies[1])
			}
		}
	}
	for pair := range w.overlaps {
		if _, still := current[pair]; !still {
			delete(w.overlaps, pair)
			if w.EndContact != nil {
				a, b := w.findPair(pair)
				if a != nil && b != nil {
					w.EndContact(a, b)
				}
			}
		}
	}
}

// findPair resolves a body pair key back to live bodies, if both still exist.
func (w *World) findPair(pair bodyPair) (*Body, *Body) {
	var a, b *Body
	for _, body := range w.bodies {
		switch body.ID {
		case pair.a:
			a = body
		case pair.b:
			b = body
		}
	}
	if a != nil && !a.IsDynamic() {
		a, b = b, a
	}
	return a, b
}

// applySleep zeroes velocities that fell under the sleep threshold.
func (w *World) applySleep() {
	for _, b := range w.bodies {
		if !b.IsDynamic() {
			continue
		}
		if b.Velocity.Length() < w.SleepSpeedThreshold {
			b.Velocity = Vector3{}
			b.AngularVelocity = Vector3{}
			b.sleeping = true
		} else {
			b.sleeping = false
		}
	}
}

// overlapping reports whether a dynamic sphere overlaps another body's shape.
func overlapping(sphere, other *Body) bool {
	_, ok := sphereOverlap(sphere, other, 0)
	return ok
}

// penetration returns the push-out vector that separates a dynamic sphere
// from solid geometry.
func penetration(sphere, solid *Body) (Vector3, bool) {
	return sphereOverlap(sphere, solid, 1)
}

// sphereOverlap tests a sphere body against sphere/box/cylinder geometry.
// mode 0 only answers the overlap question; mode 1 also computes push-out.
func sphereOverlap(sphere, other *Body, mode int) (Vector3, bool) {
	r := sphere.Shape.Radius

	switch other.Shape.Type {
	case SphereShape:
		delta := sphere.Position.Sub(other.Position)
		dist := delta.Length()
		minDist := r + other.Shape.Radius
		if dist >= minDist {
			return Vector3{}, false
		}
		if mode == 0 {
			return Vector3{}, true
		}
		if dist < 1e-9 {
			return Vector3{Y: minDist}, true
		}
		return delta.Scale((minDist - dist) / dist), true

	case BoxShape:
		he := other.Shape.HalfExtents
		closest := Vector3{
			X: clamp(sphere.Position.X, other.Position.X-he.X, other.Position.X+he.X),
			Y: clamp(sphere.Position.Y, other.Position.Y-he.Y, other.Position.Y+he.Y),
			Z: clamp(sphere.Position.Z, other.Position.Z-he.Z, other.Position.Z+he.Z),
		}
		delta := sphere.Position.Sub(closest)
		dist := delta.Length()
		if dist >= r {
			return Vector3{}, false
		}
		if mode == 0 {
			return Vector3{}, true
		}
		if dist < 1e-9 {
			// Center inside the box: push straight up.
			return Vector3{Y: r}, true
		}
		return delta.Scale((r - dist) / dist), true

	case CylinderShape:
		dy := math.Abs(sphere.Position.Y - other.Position.Y)
		if dy > other.Shape.HalfHeight+r {
			return Vector3{}, false
		}
		horizontal := sphere.Position.Sub(other.Position).Horizontal()
		dist := horizontal.Length()
		minDist := r + other.Shape.Radius
		if dist >= minDist {
			return Vector3{}, false
		}
		if mode == 0 {
			return Vector3{}, true
		}
		if dist < 1e-9 {
			return Vector3{X: minDist}, true
		}
		return horizontal.Scale((minDist - dist) / dist), true
	}

	return Vector3{}, false
}
