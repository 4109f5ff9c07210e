// pkg/physics/body.go
package physics

// ShapeType enumerates the collision shapes the world understands.
type ShapeType int

const (
	SphereShape ShapeType = iota
	BoxShape
	CylinderShape
)

// Shape is the collision geometry of a body. Boxes are axis-aligned;
// cylinders stand on the Y axis.
type Shape struct {
	Type        ShapeType
	Radius      float64 // sphere and cylinder
	HalfExtents Vector3 // box
	HalfHeight  float64 // cylinder
}

// NewSphere returns a sphere shape of the given radius.
func NewSphere(radius float64) Shape {
	return Shape{Type: SphereShape, Radius: radius}
}

// NewBox returns a box shape with the given half extents.
func NewBox(halfX, halfY, halfZ float64) Shape {
	return Shape{Type: BoxShape, HalfExtents: Vector3{X: halfX, Y: halfY, Z: halfZ}}
}

// NewCylinder returns a Y-axis cylinder shape.
func NewCylinder(radius, halfHeight float64) Shape {
	return Shape{Type: CylinderShape, Radius: radius, HalfHeight: halfHeight}
}

// UserData tags a body with its gameplay role. Type identifies what the body
// is (ball, ground, bumper, water, sand, obstacle); Obstacle, when set, is a
// non-owning reference back to the obstacle the body belongs to so contact
// dispatch can reach it.
type UserData struct {
	Type     string
	Obstacle interface{}
}

// Body is a rigid body owned by a World. Obstacles and the ball manager hold
// non-owning references for force application and cleanup requests; only the
// world adds or removes bodies from the simulation.
type Body struct {
	ID              uint64
	Shape           Shape
	Position        Vector3
	Velocity        Vector3
	AngularVelocity Vector3
	Mass            float64 // 0 = static or kinematic
	Kinematic       bool    // moved by game logic, still collides with dynamics
	Trigger         bool    // overlap detection only, no collision response
	Material        string
	LinearDamping   float64
	UserData        UserData

	force    Vector3
	sleeping bool
}

// IsDynamic reports whether the body is integrated by the world.
func (b *Body) IsDynamic() bool {
	return b.Mass > 0 && !b.Kinematic
}

// ApplyForce accumulates a force for the next step.
func (b *Body) ApplyForce(f Vector3) {
	if !b.IsDynamic() {
		return
	}
	b.force = b.force.Add(f)
	b.sleeping = false
}

// ApplyImpulse changes velocity immediately by impulse / mass.
func (b *Body) ApplyImpulse(impulse Vector3) {
	if !b.IsDynamic() {
		return
	}
	b.Velocity = b.Velocity.Add(impulse.Scale(1 / b.Mass))
	b.sleeping = false
}

// Stop zeroes linear and angular velocity and any accumulated force.
func (b *Body) Stop() {
	b.Velocity = Vector3{}
	b.AngularVelocity = Vector3{}
	b.force = Vector3{}
}

// Sleeping reports whether the body was put to sleep by the last step.
func (b *Body) Sleeping() bool {
	return b.sleeping
}
