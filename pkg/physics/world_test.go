// pkg/physics/world_test.go
package physics

import (
	"testing"
)

func newTestBall(pos Vector3) *Body {
	return &Body{
		Shape:    NewSphere(0.2),
		Position: pos,
		Mass:     1,
		Material: MaterialBall,
		UserData: UserData{Type: "ball"},
	}
}

func TestWorld_AddBody_AssignsUniqueIDs(t *testing.T) {
	w := NewWorld(DefaultGravity)

	a := newTestBall(Vector3{})
	b := newTestBall(Vector3{X: 1})
	w.AddBody(a)
	w.AddBody(b)

	if a.ID == 0 || b.ID == 0 {
		t.Fatal("AddBody() left an ID unassigned")
	}
	if a.ID == b.ID {
		t.Errorf("bodies share ID %d", a.ID)
	}
	if w.BodyCount() != 2 {
		t.Errorf("BodyCount() = %d, want 2", w.BodyCount())
	}
}

func TestWorld_RemoveBody_UnknownBody_NoOp(t *testing.T) {
	w := NewWorld(DefaultGravity)
	known := newTestBall(Vector3{})
	w.AddBody(known)

	w.RemoveBody(newTestBall(Vector3{X: 5}))
	w.RemoveBody(nil)

	if w.BodyCount() != 1 {
		t.Errorf("BodyCount() = %d, want 1", w.BodyCount())
	}
}

func TestWorld_Step_GravityAcceleratesDynamicBody(t *testing.T) {
	w := NewWorld(DefaultGravity)
	ball := newTestBall(Vector3{Y: 10})
	w.AddBody(ball)

	w.Step(0.1)

	if ball.Velocity.Y >= 0 {
		t.Errorf("velocity.Y = %v, want negative after gravity", ball.Velocity.Y)
	}
	if ball.Position.Y >= 10 {
		t.Errorf("position.Y = %v, want below 10", ball.Position.Y)
	}
}

func TestWorld_Step_StaticBodyUnaffectedByGravity(t *testing.T) {
	w := NewWorld(DefaultGravity)
	wall := &Body{Shape: NewBox(1, 1, 1), Position: Vector3{Y: 5}, Material: MaterialBumper}
	w.AddBody(wall)

	w.Step(0.1)

	if !wall.Velocity.IsZero() || wall.Position.Y != 5 {
		t.Errorf("static body moved: pos %v vel %v", wall.Position, wall.Velocity)
	}
}

func TestWorld_Step_BallBouncesOffGround(t *testing.T) {
	w := NewWorld(DefaultGravity)
	ground := &Body{
		Shape:    NewBox(10, 0.5, 10),
		Position: Vector3{Y: -0.5},
		Material: MaterialGround,
		UserData: UserData{Type: "ground"},
	}
	w.AddBody(ground)

	ball := newTestBall(Vector3{Y: 0.1})
	ball.Velocity = Vector3{Y: -5}
	w.AddBody(ball)

	w.Step(1.0 / 60.0)

	if ball.Velocity.Y <= 0 {
		t.Errorf("velocity.Y = %v, want positive after bounce", ball.Velocity.Y)
	}
	if ball.Position.Y < ground.Position.Y {
		t.Errorf("ball sank through ground: %v", ball.Position)
	}
}

func TestWorld_BeginEndContact_FireOncePerOverlapEpisode(t *testing.T) {
	w := NewWorld(Vector3{}) // no gravity, controlled motion
	begins, ends := 0, 0
	w.BeginContact = func(a, b *Body) { begins++ }
	w.EndContact = func(a, b *Body) { ends++ }

	pad := &Body{
		Shape:    NewBox(1, 0.1, 1),
		Position: Vector3{},
		Trigger:  true,
		UserData: UserData{Type: "pad"},
	}
	w.AddBody(pad)

	ball := newTestBall(Vector3{X: 5})
	ball.Velocity = Vector3{X: -10}
	w.AddBody(ball)

	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60.0)
	}

	if begins != 1 {
		t.Errorf("begin contacts = %d, want exactly 1", begins)
	}
	if ends != 1 {
		t.Errorf("end contacts = %d, want exactly 1", ends)
	}
}

func TestWorld_TriggerBody_DoesNotDeflectBall(t *testing.T) {
	w := NewWorld(Vector3{})
	pad := &Body{Shape: NewBox(1, 1, 1), Position: Vector3{}, Trigger: true}
	w.AddBody(pad)

	ball := newTestBall(Vector3{X: 3})
	ball.Velocity = Vector3{X: -6}
	w.AddBody(ball)

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60.0)
	}

	if ball.Velocity.X >= 0 {
		t.Errorf("trigger deflected ball, velocity = %v", ball.Velocity)
	}
	if ball.Position.X > -1 {
		t.Errorf("ball did not pass through trigger, position = %v", ball.Position)
	}
}

func TestWorld_RemoveBody_ClearsOverlapTracking(t *testing.T) {
	w := NewWorld(Vector3{})
	ends := 0
	w.EndContact = func(a, b *Body) { ends++ }

	pad := &Body{Shape: NewBox(1, 1, 1), Trigger: true}
	w.AddBody(pad)
	ball := newTestBall(Vector3{})
	w.AddBody(ball)

	w.Step(1.0 / 60.0) // establishes the overlap
	w.RemoveBody(ball)
	w.Step(1.0 / 60.0)

	// The episode owner is gone; no end event should fire for a dead body.
	if ends != 0 {
		t.Errorf("end contacts = %d, want 0 after removal", ends)
	}
}

func TestWorld_BodiesByTag_FiltersOnUserData(t *testing.T) {
	w := NewWorld(DefaultGravity)
	w.AddBody(newTestBall(Vector3{}))
	w.AddBody(newTestBall(Vector3{X: 1}))
	w.AddBody(&Body{Shape: NewBox(1, 1, 1), UserData: UserData{Type: "bumper"}})

	if got := len(w.BodiesByTag("ball")); got != 2 {
		t.Errorf("BodiesByTag(ball) = %d bodies, want 2", got)
	}
	if got := len(w.BodiesByTag("water")); got != 0 {
		t.Errorf("BodiesByTag(water) = %d bodies, want 0", got)
	}
}

func TestWorld_ApplySleep_ZeroesSlowBodies(t *testing.T) {
	w := NewWorld(Vector3{})
	ball := newTestBall(Vector3{})
	ball.Velocity = Vector3{X: 0.01}
	w.AddBody(ball)

	w.Step(1.0 / 60.0)

	if !ball.Velocity.IsZero() {
		t.Errorf("velocity = %v, want zeroed below sleep threshold", ball.Velocity)
	}
	if !ball.Sleeping() {
		t.Error("body should report sleeping")
	}
}

func TestBody_ApplyImpulse_ScalesByInverseMass(t *testing.T) {
	ball := newTestBall(Vector3{})
	ball.Mass = 2

	ball.ApplyImpulse(Vector3{X: 4})

	if !almostEqual(ball.Velocity.X, 2) {
		t.Errorf("velocity.X = %v, want 2", ball.Velocity.X)
	}
}

func TestBody_ApplyForce_IgnoredForKinematicBodies(t *testing.T) {
	platform := &Body{Shape: NewBox(1, 0.1, 1), Kinematic: true}

	platform.ApplyForce(Vector3{Y: 100})
	platform.ApplyImpulse(Vector3{Y: 100})

	if !platform.Velocity.IsZero() {
		t.Errorf("kinematic body gained velocity %v", platform.Velocity)
	}
}
