// pkg/render/node_test.go
package render

import "testing"

func TestNode_Add_ReparentsExistingChild(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")

	a.Add(child)
	b.Add(child)

	if len(a.Children()) != 0 {
		t.Errorf("old parent still has %d children", len(a.Children()))
	}
	if b.Child("child") != child {
		t.Error("new parent does not own the child")
	}
}

func TestNode_Remove_UnknownChild_NoOp(t *testing.T) {
	root := NewNode("root")
	root.Add(NewNode("kept"))

	root.Remove(NewNode("stranger"))
	root.Remove(nil)

	if len(root.Children()) != 1 {
		t.Errorf("children = %d, want 1", len(root.Children()))
	}
}

func TestNode_Shown_InheritsAncestorVisibility(t *testing.T) {
	root := NewNode("root")
	hole := NewNode("hole-0")
	flag := NewNode("flag")
	root.Add(hole)
	hole.Add(flag)

	if !flag.Shown() {
		t.Fatal("fully visible chain should be shown")
	}

	hole.SetVisible(false)

	if flag.Shown() {
		t.Error("child of a hidden container should not be shown")
	}
	if !root.Shown() {
		t.Error("hiding a child must not affect the parent")
	}
}

func TestFlatten_SkipsHiddenSubtrees(t *testing.T) {
	root := NewNode("root")
	shown := NewNode("hole-0")
	hidden := NewNode("hole-1")
	hidden.SetVisible(false)
	root.Add(shown)
	root.Add(hidden)
	shown.Add(NewNode("ball"))
	hidden.Add(NewNode("ghost"))

	instances := Flatten(root, func(name string) (Instance, bool) {
		if name == "root" {
			return Instance{}, false
		}
		return Instance{Name: name}, true
	})

	if len(instances) != 2 {
		t.Fatalf("instances = %d, want 2", len(instances))
	}
	for _, inst := range instances {
		if inst.Name == "ghost" || inst.Name == "hole-1" {
			t.Errorf("hidden subtree leaked instance %q", inst.Name)
		}
	}
}
