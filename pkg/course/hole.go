// pkg/course/hole.go
package course

import (
	"fmt"

	"github.com/dock108/mini-golf-break-sub004/pkg/obstacle"
	"github.com/dock108/mini-golf-break-sub004/pkg/physics"
	"github.com/dock108/mini-golf-break-sub004/pkg/render"
)

// Hole is one built hole: its static bodies, its live obstacles and the
// scene container that groups its visuals. A Hole exists only while its
// index is the active one; teardown releases every body and obstacle.
type Hole struct {
	cfg       HoleConfig
	container *render.Node
	obstacles []obstacle.Obstacle
	statics   []*physics.Body
}

// buildHole constructs the hole's physics bodies and obstacles inside the
// given container. On any error the partially built hole is torn down so no
// orphan bodies are left in the world.
func buildHole(cfg HoleConfig, container *render.Node, registry *obstacle.Registry, ctx *obstacle.Context) (*Hole, error) {
	if ctx.World == nil {
		return nil, fmt.Errorf("building hole %d: physics world not initialized", cfg.Index)
	}
	h := &Hole{cfg: cfg, container: container}

	addStatic := func(b *physics.Body) {
		ctx.World.AddBody(b)
		h.statics = append(h.statics, b)
	}

	// Playing surface. The top face sits at y=0 no matter how high the tee is.
	mid := cfg.Start().Lerp(cfg.Hole(), 0.5)
	addStatic(&physics.Body{
		Shape:    physics.NewBox(cfg.CourseWidth/2, 0.25, cfg.CourseLength/2),
		Position: physics.Vector3{X: mid.X, Y: -0.25, Z: mid.Z},
		Material: physics.MaterialGround,
		UserData: physics.UserData{Type: "ground"},
	})

	// The cup itself: a trigger cylinder so rim bounces still resolve
	// against the surface while entry detection stays proximity-based.
	addStatic(&physics.Body{
		Shape:    physics.NewCylinder(cfg.Radius(), 0.2),
		Position: cfg.Hole(),
		Material: physics.MaterialHoleCup,
		Trigger:  true,
		UserData: physics.UserData{Type: "holeCup"},
	})

	for _, b := range cfg.Bumpers {
		size := b.Size.Vector3()
		addStatic(&physics.Body{
			Shape:    physics.NewBox(size.X/2, size.Y/2, size.Z/2),
			Position: b.Position.Vector3(),
			Material: physics.MaterialBumper,
			UserData: physics.UserData{Type: "bumper"},
		})
	}

	for _, hz := range cfg.Hazards {
		size := hz.Size.Vector3()
		addStatic(&physics.Body{
			Shape:    physics.NewBox(size.X/2, size.Y/2, size.Z/2),
			Position: hz.Position.Vector3(),
			Trigger:  true,
			UserData: physics.UserData{Type: hz.Kind},
		})
	}

	for _, obCfg := range cfg.Obstacles {
		ob, err := registry.Create(obCfg)
		if err != nil {
			h.teardown(ctx.World)
			return nil, fmt.Errorf("building hole %d: %w", cfg.Index, err)
		}
		if err := ob.Init(ctx); err != nil {
			h.teardown(ctx.World)
			return nil, fmt.Errorf("initializing obstacle %q on hole %d: %w", obCfg.ID, cfg.Index, err)
		}
		h.obstacles = append(h.obstacles, ob)
	}

	return h, nil
}

// Update advances every active obstacle on the hole.
func (h *Hole) Update(dt float64) {
	for _, ob := range h.obstacles {
		if ob.Active() {
			ob.Update(dt)
		}
	}
}

// Obstacles returns the hole's live obstacles.
func (h *Hole) Obstacles() []obstacle.Obstacle {
	return h.obstacles
}

// teardown disposes obstacles and removes static bodies from the world.
func (h *Hole) teardown(world *physics.World) {
	for _, ob := range h.obstacles {
		ob.Dispose()
	}
	h.obstacles = nil

	for _, b := range h.statics {
		world.RemoveBody(b)
	}
	h.statics = nil
}
