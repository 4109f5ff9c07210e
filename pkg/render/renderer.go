// pkg/render/renderer.go
package render

import "github.com/go-gl/mathgl/mgl32"

// Instance is one drawable object snapshot handed to a renderer: the frontend
// consumes positions and orientations, never physics state.
type Instance struct {
	Name        string
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	Scale       mgl32.Vec3
	Visible     bool
}

// Renderer is the boundary between the simulation and any presentation
// frontend. The game loop calls Draw once per frame with the flattened scene.
type Renderer interface {
	// Draw presents one frame. Instances arrive pre-filtered by visibility.
	Draw(instances []Instance) error
	// Resize reacts to a viewport change.
	Resize(width, height int)
	// Close releases frontend resources.
	Close() error
}

// NullRenderer discards every frame. Used by the headless server, where the
// browser client does its own drawing from streamed state.
type NullRenderer struct{}

func (NullRenderer) Draw([]Instance) error { return nil }
func (NullRenderer) Resize(int, int)       {}
func (NullRenderer) Close() error          { return nil }

// Flatten walks a scene graph and collects instances for every shown node,
// skipping invisible subtrees entirely.
func Flatten(root *Node, lookup func(name string) (Instance, bool)) []Instance {
	var out []Instance
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil || !n.Visible {
			return
		}
		if inst, ok := lookup(n.Name); ok {
			inst.Visible = true
			out = append(out, inst)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(root)
	return out
}
