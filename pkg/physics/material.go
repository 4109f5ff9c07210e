// pkg/physics/material.go
package physics

// Named materials used for contact pairing. The ball material is paired
// against each surface material with its own friction/restitution.
const (
	MaterialBall    = "ball"
	MaterialGround  = "ground"
	MaterialBumper  = "bumper"
	MaterialHoleCup = "holeCup"
	MaterialHoleRim = "holeRim"
)

// Material describes the default surface response of a body.
type Material struct {
	Name        string
	Friction    float64
	Restitution float64
}

// ContactMaterial overrides friction/restitution for a specific material pair.
type ContactMaterial struct {
	Friction    float64
	Restitution float64
}

// materialPair is an order-independent key for contact material lookup.
type materialPair struct {
	a, b string
}

func makePair(a, b string) materialPair {
	if a > b {
		a, b = b, a
	}
	return materialPair{a: a, b: b}
}

// defaultMaterials returns the material set every fresh world starts with.
func defaultMaterials() map[string]Material {
	return map[string]Material{
		MaterialBall:    {Name: MaterialBall, Friction: 0.4, Restitution: 0.4},
		MaterialGround:  {Name: MaterialGround, Friction: 0.6, Restitution: 0.3},
		MaterialBumper:  {Name: MaterialBumper, Friction: 0.2, Restitution: 0.9},
		MaterialHoleCup: {Name: MaterialHoleCup, Friction: 0.9, Restitution: 0.0},
		MaterialHoleRim: {Name: MaterialHoleRim, Friction: 0.5, Restitution: 0.6},
	}
}

// defaultContactMaterials returns the ball-vs-surface contact pairs.
func defaultContactMaterials() map[materialPair]ContactMaterial {
	return map[materialPair]ContactMaterial{
		makePair(MaterialBall, MaterialGround):  {Friction: 0.6, Restitution: 0.3},
		makePair(MaterialBall, MaterialBumper):  {Friction: 0.2, Restitution: 0.85},
		makePair(MaterialBall, MaterialHoleCup): {Friction: 0.9, Restitution: 0.0},
		makePair(MaterialBall, MaterialHoleRim): {Friction: 0.5, Restitution: 0.6},
	}
}
