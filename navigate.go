package stun

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Selectors of the previous and next post links in the default theme.
const (
	PrevPostSelector = ".article-prev a"
	NextPostSelector = ".article-next a"
)

const revealDuration = 300 * time.Millisecond

// Binding holds the listeners added by a Register helper.
type Binding struct {
	handles []CallbackHandle
}

// Remove unregisters every listener of the binding.
func (b *Binding) Remove() {
	for _, h := range b.handles {
		h.Remove()
	}
	b.handles = nil
}

// Click dispatches a click on n at the centre of its box, as if the pointer
// had been pressed and released there. Disposed nodes are ignored.
func (s *Scene) Click(n *Node) {
	if n == nil || n.IsDisposed() {
		return
	}
	c := s.visualRect(n).Center()
	s.dispatchClick(n, c.X, c.Y, MouseButtonLeft)
}

// RegisterPostHotkeys makes Ctrl+Left click the first node matching prev
// and Ctrl+Right the first node matching next. The selectors are matched on
// every key press, so links added later are found.
func (s *Scene) RegisterPostHotkeys(prev, next string) (*Binding, error) {
	prevSel, err := ParseSelector(prev)
	if err != nil {
		return nil, fmt.Errorf("register hotkeys: %w", err)
	}
	nextSel, err := ParseSelector(next)
	if err != nil {
		return nil, fmt.Errorf("register hotkeys: %w", err)
	}
	h := s.OnKey(func(ev KeyEvent) {
		if !ev.Ctrl {
			return
		}
		var sel *Selector
		switch ev.Key {
		case ebiten.KeyArrowLeft:
			sel = prevSel
		case ebiten.KeyArrowRight:
			sel = nextSel
		default:
			return
		}
		if nodes := sel.QueryAll(s.root); len(nodes) > 0 {
			s.Click(nodes[0])
		} else {
			s.debugf("hotkeys: nothing matches %q", sel)
		}
	})
	return &Binding{handles: []CallbackHandle{h}}, nil
}

// RegisterRevealToggle makes every node matching button toggle the nodes
// matching panel. A shown panel is hidden at once; a hidden one slides down
// from one panel height above its place while fading in.
func (s *Scene) RegisterRevealToggle(button, panel string) (*Binding, error) {
	buttonSel, err := ParseSelector(button)
	if err != nil {
		return nil, fmt.Errorf("register reveal: %w", err)
	}
	panelSel, err := ParseSelector(panel)
	if err != nil {
		return nil, fmt.Errorf("register reveal: %w", err)
	}
	b := &Binding{}
	for _, n := range buttonSel.QueryAll(s.root) {
		b.handles = append(b.handles, n.OnClick(func(*ClickEvent) {
			s.toggleReveal(panelSel)
		}))
	}
	return b, nil
}

func (s *Scene) toggleReveal(sel *Selector) {
	for _, p := range sel.QueryAll(s.root) {
		s.StopAnimations(p)
		if p.Visible && !p.Hidden() {
			p.Visible = false
			continue
		}
		p.Visible = true
		p.RemoveClass(ClassHide)
		p.TranslateY = -p.OuterSize().Height
		p.Alpha = 0
		s.Animate(p, Keyframe{
			TranslateX: p.TranslateX,
			Alpha:      1,
			Props:      PropTranslate | PropAlpha,
		}, AnimateOptions{Duration: revealDuration})
	}
}
