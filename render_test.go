package stun

import (
	"slices"
	"testing"
)

func commandNames(s *Scene) []string {
	var out []string
	for _, c := range s.commands {
		out = append(out, c.node.Name)
	}
	return out
}

func TestCollectTreeOrder(t *testing.T) {
	s := NewScene(DefaultConfig())
	a := box("a", 0, 0, 10, 10)
	b := box("b", 0, 0, 10, 10)
	c := box("c", 0, 0, 10, 10)
	s.Root().AddChild(a)
	a.AddChild(b)
	s.Root().AddChild(c)

	s.collect()
	if got := commandNames(s); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("commands = %v, want [a b c]", got)
	}
}

func TestCollectSkips(t *testing.T) {
	tests := []struct {
		name  string
		setup func(parent, child *Node)
		want  []string
	}{
		{"visible", func(p, c *Node) {}, []string{"parent", "child"}},
		{"invisible subtree", func(p, c *Node) { p.Visible = false }, nil},
		{"hidden subtree", func(p, c *Node) { p.AddClass(ClassHide) }, nil},
		{"hidden child", func(p, c *Node) { c.AddClass(ClassHide) }, []string{"parent"}},
		{"transparent parent", func(p, c *Node) { p.Alpha = 0 }, nil},
		{"zero size", func(p, c *Node) { c.Width = 0 }, []string{"parent"}},
		{"collapsed scale", func(p, c *Node) { c.ScaleY = 0 }, []string{"parent"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene(DefaultConfig())
			parent := box("parent", 0, 0, 100, 100)
			child := box("child", 10, 10, 20, 20)
			s.Root().AddChild(parent)
			parent.AddChild(child)
			tt.setup(parent, child)

			s.collect()
			if got := commandNames(s); !slices.Equal(got, tt.want) {
				t.Errorf("commands = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollectResolvesScrollAndAlpha(t *testing.T) {
	s := NewScene(DefaultConfig())
	parent := box("parent", 0, 0, 100, 100)
	parent.Alpha = 0.5
	child := box("child", 10, 20, 30, 40)
	child.Alpha = 0.5
	pinned := box("pinned", 5, 5, 10, 10)
	pinned.Fixed = true
	s.Root().AddChild(parent)
	parent.AddChild(child)
	s.Root().AddChild(pinned)
	s.ScrollTo(0, 15)

	s.collect()
	if len(s.commands) != 3 {
		t.Fatalf("commands = %v", commandNames(s))
	}
	cmd := s.commands[1]
	if want := (Rect{X: 10, Y: 5, Width: 30, Height: 40}); cmd.rect != want {
		t.Errorf("child rect = %+v, want %+v", cmd.rect, want)
	}
	if !approx(cmd.alpha, 0.25) {
		t.Errorf("child alpha = %v, want 0.25", cmd.alpha)
	}
	if want := (Rect{X: 5, Y: 5, Width: 10, Height: 10}); s.commands[2].rect != want {
		t.Errorf("fixed rect = %+v, want %+v", s.commands[2].rect, want)
	}
}

func TestCollectReusesBuffer(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.Root().AddChild(box("a", 0, 0, 10, 10))
	s.collect()
	s.collect()
	if len(s.commands) != 1 {
		t.Errorf("commands = %d after two passes, want 1", len(s.commands))
	}
}
