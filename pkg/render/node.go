// pkg/render/node.go
package render

// Node is a named container in the scene hierarchy. Each hole owns one node
// that groups every visual belonging to it, so showing and hiding a hole is a
// single visibility flip rather than a walk over individual objects.
type Node struct {
	Name    string
	Visible bool

	parent   *Node
	children []*Node
}

// NewNode creates a visible, empty node.
func NewNode(name string) *Node {
	return &Node{Name: name, Visible: true}
}

// Add attaches a child to this node. Adding a child that already has a
// parent reparents it.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches a child. Removing a node that is not a child is a no-op.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Children returns the direct children. Callers must not mutate the slice.
func (n *Node) Children() []*Node {
	return n.children
}

// Child returns the direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SetVisible flips this node's visibility. Children inherit an invisible
// ancestor at draw time, so hiding a hole's container hides everything in it.
func (n *Node) SetVisible(visible bool) {
	n.Visible = visible
}

// Shown reports whether this node and all its ancestors are visible.
func (n *Node) Shown() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if !cur.Visible {
			return false
		}
	}
	return true
}
