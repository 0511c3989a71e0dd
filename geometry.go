package stun

// Geometry is a snapshot of a node's layout box.
type Geometry struct {
	// Bounds is the border box in viewport coordinates.
	Bounds Rect
	// Content is the content-box size (jQuery width()/height()).
	Content Size
	// Outer is the border-box size (jQuery outerWidth()/outerHeight()).
	Outer Size
}

// OuterSize returns the border-box size of the node.
func (n *Node) OuterSize() Size {
	return Size{
		Width:  n.Width + n.Padding.Horizontal() + n.Border.Horizontal(),
		Height: n.Height + n.Padding.Vertical() + n.Border.Vertical(),
	}
}

// ContentSize returns the content-box size of the node.
func (n *Node) ContentSize() Size {
	return Size{Width: n.Width, Height: n.Height}
}

// Offset returns the border-box top-left in document coordinates, or in
// viewport coordinates for nodes inside a Fixed subtree.
func (n *Node) Offset() Vec2 {
	x, y := n.X, n.Y
	for p := n.Parent; p != nil; p = p.Parent {
		x += p.X + p.Border.Left + p.Padding.Left
		y += p.Y + p.Border.Top + p.Padding.Top
	}
	return Vec2{X: x, Y: y}
}

// isFixed reports whether n or an ancestor is viewport-anchored.
func (n *Node) isFixed() bool {
	for p := n; p != nil; p = p.Parent {
		if p.Fixed {
			return true
		}
	}
	return false
}

// Geometry returns the node's box in the scene's viewport coordinates.
func (s *Scene) Geometry(n *Node) Geometry {
	off := n.Offset()
	if !n.isFixed() {
		off.X -= s.scrollX
		off.Y -= s.scrollY
	}
	outer := n.OuterSize()
	return Geometry{
		Bounds:  Rect{X: off.X, Y: off.Y, Width: outer.Width, Height: outer.Height},
		Content: n.ContentSize(),
		Outer:   outer,
	}
}

// visualRect returns the on-screen rectangle of n after its own visual
// transform: scaled around the border-box centre, then translated. Ancestor
// transforms are not inherited.
func (s *Scene) visualRect(n *Node) Rect {
	b := s.Geometry(n).Bounds
	c := b.Center()
	w := b.Width * n.ScaleX
	h := b.Height * n.ScaleY
	return Rect{
		X:      c.X - w/2 + n.TranslateX,
		Y:      c.Y - h/2 + n.TranslateY,
		Width:  w,
		Height: h,
	}
}

// worldAlpha multiplies the node's alpha with its ancestors'.
func worldAlpha(n *Node) float64 {
	a := 1.0
	for p := n; p != nil; p = p.Parent {
		a *= p.Alpha
	}
	return a
}
