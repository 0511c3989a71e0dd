package stun

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// SetUpdateFunc sets a callback that runs once per tick before the scene
// steps. Returning an error stops Run with that error.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Run opens a window and drives the scene until the window closes or the
// update function returns an error.
func Run(s *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = int(s.viewport.Width)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(s.viewport.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	s.SetViewport(float64(cfg.Width), float64(cfg.Height))
	if cfg.ShowFPS {
		s.NewFPSWidget()
	}
	return ebiten.RunGame(&game{scene: s})
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
}

func (g *game) Update() error {
	if fn := g.scene.updateFunc; fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.SetViewport(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}
