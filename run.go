package carpenter

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Background fills the screen before the wireframe is drawn.
	Background color.Color
	// Overlay, when set, is drawn on top and stepped every tick.
	Overlay *StatusOverlay
}

// gameShell adapts a Scene to ebiten.Game.
type gameShell struct {
	scene *Scene
	cfg   RunConfig
}

func (g *gameShell) Update() error {
	g.scene.Update()
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	if g.cfg.Background != nil {
		screen.Fill(g.cfg.Background)
	}
	g.scene.Draw(screen)
	if g.cfg.Overlay != nil {
		g.cfg.Overlay.Draw(screen)
	}
}

// Layout keeps the camera viewport in sync with the window.
func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	cam := g.scene.Camera()
	if cam.Viewport.Width != float64(outsideWidth) || cam.Viewport.Height != float64(outsideHeight) {
		cam.SetViewport(Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and runs scene until it is closed. Implement
// ebiten.Game yourself and call Scene.Update and Scene.Draw for more
// control.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Overlay != nil {
		scene.AddStepper(cfg.Overlay)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(&gameShell{scene: scene, cfg: cfg})
}
