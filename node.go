package stun

import "slices"

// Common class names used by the built-in behaviours.
const (
	ClassHide      = "hide"
	ClassShow      = "show"
	ClassZoomImage = "zoom-image"
	ClassZoomMask  = "zoom-image-mask"
)

// nodeIDCounter is a plain counter (no atomic; stun is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the element of the page tree. It carries a CSS-like box: X and Y
// place the border box relative to the parent's content origin, Width and
// Height are the content box, and Padding and Border grow it outward.
//
// TranslateX, TranslateY, ScaleX and ScaleY form a visual transform applied
// around the border-box centre. They never affect layout, so animating them
// does not move siblings.
type Node struct {
	// Identity
	ID      uint32
	Name    string
	Tag     string
	classes []string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Box
	X, Y          float64
	Width, Height float64
	Padding       Insets
	Border        Insets

	// Visual transform
	TranslateX, TranslateY float64
	ScaleX, ScaleY         float64
	Alpha                  float64

	// Visibility & interaction
	Visible      bool
	Interactable bool
	// Fixed nodes are positioned against the viewport and ignore scrolling.
	Fixed bool

	// Content
	Color     Color
	Text      string
	TextColor Color
	Image     *Image

	// Metadata
	UserData any
	EntityID uint32

	click listenerList[func(*ClickEvent)]

	disposed bool
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Visible = true
	n.Interactable = true
	n.TextColor = ColorWhite
}

// NewElement creates a node with the given tag and name.
func NewElement(tag, name string) *Node {
	n := &Node{Tag: tag, Name: name}
	nodeDefaults(n)
	return n
}

// NewContainer creates a div node with no visual output of its own.
func NewContainer(name string) *Node {
	return NewElement("div", name)
}

// NewImageNode creates an img node displaying img. The content box is taken
// from the image once it has loaded, unless Width and Height are set first.
func NewImageNode(name string, img *Image) *Node {
	n := NewElement("img", name)
	n.Image = img
	if img != nil && img.Loaded() {
		n.Width, n.Height = img.Size()
	}
	return n
}

// NewTextNode creates a span node drawing text.
func NewTextNode(name, text string) *Node {
	n := NewElement("span", name)
	n.Text = text
	return n
}

// --- Classes ---

// AddClass adds each class not already present.
func (n *Node) AddClass(names ...string) {
	for _, c := range names {
		if c != "" && !slices.Contains(n.classes, c) {
			n.classes = append(n.classes, c)
		}
	}
}

// RemoveClass removes each named class.
func (n *Node) RemoveClass(names ...string) {
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool {
		return slices.Contains(names, c)
	})
}

// HasClass reports whether the node carries class c.
func (n *Node) HasClass(c string) bool {
	return slices.Contains(n.classes, c)
}

// Classes returns a copy of the node's classes in insertion order.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

// Hidden reports whether the node carries the hide class. Hidden nodes keep
// their place in layout but are neither drawn nor hit-tested.
func (n *Node) Hidden() bool {
	return n.HasClass(ClassHide)
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("stun: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("stun: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("stun: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent. No-op if detached.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the node's children. The returned slice MUST NOT be mutated.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Dispose detaches the node and marks its whole subtree unusable. Running
// animations on disposed nodes end without calling Complete.
func (n *Node) Dispose() {
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.click = listenerList[func(*ClickEvent)]{}
	for _, c := range n.children {
		c.Parent = nil
		c.dispose()
	}
	n.children = nil
}

// IsDisposed reports whether Dispose has been called.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// OnClick registers a click listener on this node. Listeners run while the
// click bubbles from the hit node up to the root.
func (n *Node) OnClick(fn func(*ClickEvent)) CallbackHandle {
	id := n.click.add(fn)
	return CallbackHandle{id: id, reg: &n.click}
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// walk visits n and its descendants depth-first in painter order.
// Returning false from fn skips the node's subtree.
func walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		walk(c, fn)
	}
}
