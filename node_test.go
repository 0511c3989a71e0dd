package stun

import (
	"slices"
	"testing"
)

// --- Constructor defaults ---

func TestNewElementDefaults(t *testing.T) {
	tests := []struct {
		name string
		n    *Node
		tag  string
	}{
		{"element", NewElement("section", "s"), "section"},
		{"container", NewContainer("c"), "div"},
		{"image", NewImageNode("i", nil), "img"},
		{"text", NewTextNode("t", "hello"), "span"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNodeDefaults(t, tt.n, tt.tag)
		})
	}
}

func assertNodeDefaults(t *testing.T, n *Node, tag string) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Tag != tag {
		t.Errorf("Tag = %q, want %q", n.Tag, tag)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if !n.Visible || !n.Interactable {
		t.Error("nodes should start visible and interactable")
	}
	if n.Parent != nil || n.NumChildren() != 0 {
		t.Error("new node should be detached and childless")
	}
}

func TestNewImageNodeTakesLoadedSize(t *testing.T) {
	im := NewImage("a.png")
	im.width, im.height, im.loaded = 64, 32, true
	n := NewImageNode("img", im)
	if n.Width != 64 || n.Height != 32 {
		t.Errorf("size = %vx%v, want 64x32", n.Width, n.Height)
	}
	pending := NewImageNode("img2", NewImage("b.png"))
	if pending.Width != 0 || pending.Height != 0 {
		t.Errorf("pending image node size = %vx%v, want 0x0", pending.Width, pending.Height)
	}
}

func TestUniqueIDs(t *testing.T) {
	seen := map[uint32]bool{}
	for range 100 {
		n := NewContainer("")
		if seen[n.ID] {
			t.Fatalf("duplicate ID %d", n.ID)
		}
		seen[n.ID] = true
	}
}

// --- Classes ---

func TestClasses(t *testing.T) {
	n := NewElement("img", "photo")
	n.AddClass("a", "b", "a", "")
	if got := n.Classes(); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("Classes = %v, want [a b]", got)
	}
	n.Classes()[0] = "mutated"
	if !n.HasClass("a") {
		t.Error("Classes must return a copy")
	}
	n.RemoveClass("a", "missing")
	if n.HasClass("a") || !n.HasClass("b") {
		t.Errorf("after RemoveClass: %v", n.Classes())
	}
	if n.Hidden() {
		t.Error("node without hide class reported hidden")
	}
	n.AddClass(ClassHide)
	if !n.Hidden() {
		t.Error("node with hide class should be hidden")
	}
}

// --- Tree manipulation ---

func TestAddChildBasic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.Children()[0] != child {
		t.Error("parent should have one child")
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	child := NewContainer("child")
	p1.AddChild(child)
	p2.AddChild(child)

	if child.Parent != p2 {
		t.Error("child should be reparented to p2")
	}
	if p1.NumChildren() != 0 {
		t.Error("p1 should have no children after reparent")
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil", func() { NewContainer("p").AddChild(nil) }},
		{"self", func() {
			n := NewContainer("n")
			n.AddChild(n)
		}},
		{"cycle", func() {
			a, b, c := NewContainer("a"), NewContainer("b"), NewContainer("c")
			a.AddChild(b)
			b.AddChild(c)
			c.AddChild(a)
		}},
		{"wrong parent", func() {
			p, other, c := NewContainer("p"), NewContainer("o"), NewContainer("c")
			p.AddChild(c)
			other.RemoveChild(c)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestRemoveFromParent(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	child.RemoveFromParent()
	if child.Parent != nil || parent.NumChildren() != 0 {
		t.Error("child should be detached")
	}
	child.RemoveFromParent() // no-op
}

func TestDispose(t *testing.T) {
	root := NewContainer("root")
	n := NewContainer("n")
	grandchild := NewContainer("gc")
	root.AddChild(n)
	n.AddChild(grandchild)
	n.OnClick(func(*ClickEvent) {})

	n.Dispose()
	if !n.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("subtree should be disposed")
	}
	if root.NumChildren() != 0 {
		t.Error("disposed node should be detached")
	}
	if n.click.len() != 0 {
		t.Error("click listeners should be cleared")
	}
	n.Dispose() // idempotent
}

func TestCallbackHandleRemove(t *testing.T) {
	n := NewContainer("n")
	calls := 0
	h := n.OnClick(func(*ClickEvent) { calls++ })
	n.OnClick(func(*ClickEvent) { calls += 10 })
	h.Remove()
	h.Remove()
	CallbackHandle{}.Remove()

	for _, fn := range n.click.snapshot() {
		fn(&ClickEvent{})
	}
	if calls != 10 {
		t.Errorf("calls = %d, want 10", calls)
	}
}
