package stun

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefresh = 500 * time.Millisecond

// NewFPSWidget adds a fixed node to the top-left corner of the viewport that
// shows the current FPS and TPS, refreshed every half second on the scene
// clock.
func (s *Scene) NewFPSWidget() *Node {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	img := ebiten.NewImage(100, 32)
	n := NewImageNode("fps_widget", NewLoadedImage("fps_widget", img))
	n.Fixed = true
	n.Interactable = false
	s.root.AddChild(n)

	var refresh func()
	refresh = func() {
		if n.IsDisposed() {
			return
		}
		img.Clear()
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
		s.timeline.AfterFunc(fpsRefresh, refresh)
	}
	refresh()
	return n
}
