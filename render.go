package stun

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// drawCommand is one node ready to paint, resolved against the current
// scroll, viewport and visual transform.
type drawCommand struct {
	node  *Node
	rect  Rect
	alpha float64
}

// collect rebuilds s.commands in tree order. Invisible and hidden subtrees
// are skipped; hidden nodes keep their layout space.
func (s *Scene) collect() {
	s.commands = s.commands[:0]
	walk(s.root, func(n *Node) bool {
		if !n.Visible || n.Hidden() {
			return false
		}
		if n == s.root {
			return true
		}
		alpha := worldAlpha(n)
		r := s.visualRect(n)
		if alpha > 0 && r.Width > 0 && r.Height > 0 {
			s.commands = append(s.commands, drawCommand{node: n, rect: r, alpha: alpha})
		}
		return true
	})
}

// Draw paints the scene onto screen and writes any queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.collect()
	for _, cmd := range s.commands {
		drawNode(screen, cmd)
	}
	s.flushScreenshots(screen)
}

func drawNode(screen *ebiten.Image, cmd drawCommand) {
	n, r, alpha := cmd.node, cmd.rect, cmd.alpha

	if n.Color.A > 0 {
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(r.Width, r.Height)
		op.GeoM.Translate(r.X, r.Y)
		op.ColorScale.ScaleWithColor(n.Color.toRGBA())
		op.ColorScale.ScaleAlpha(float32(alpha))
		screen.DrawImage(WhitePixel, &op)
	}

	// Content box inside the scaled border box.
	sx, sy := n.ScaleX, n.ScaleY
	cx := r.X + (n.Border.Left+n.Padding.Left)*sx
	cy := r.Y + (n.Border.Top+n.Padding.Top)*sy
	cw, ch := n.Width*sx, n.Height*sy

	if im := n.Image; im != nil && im.Loaded() && im.Pixels() != nil {
		iw, ih := im.Size()
		if iw > 0 && ih > 0 && cw > 0 && ch > 0 {
			var op ebiten.DrawImageOptions
			op.GeoM.Scale(cw/iw, ch/ih)
			op.GeoM.Translate(cx, cy)
			op.ColorScale.ScaleAlpha(float32(alpha))
			op.Filter = ebiten.FilterLinear
			screen.DrawImage(im.Pixels(), &op)
		}
	}

	if n.Text != "" {
		f := DefaultFont()
		var op text.DrawOptions
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(cx, cy)
		op.LineSpacing = f.LineHeight()
		op.ColorScale.ScaleWithColor(n.TextColor.toRGBA())
		op.ColorScale.ScaleAlpha(float32(alpha))
		text.Draw(screen, n.Text, f.Face(), &op)
	}
}
