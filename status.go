package carpenter

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statusRefresh is how often the overlay text is rebuilt, in seconds.
const statusRefresh = 0.5

// StatusOverlay prints the cupboard's dimensions, partition counts and the
// current FPS/TPS in the corner of the screen. Schedule it with
// Scene.AddStepper so the text refreshes.
type StatusOverlay struct {
	cupboard *Cupboard
	elapsed  float64
	text     string
}

// NewStatusOverlay creates an overlay describing c.
func NewStatusOverlay(c *Cupboard) *StatusOverlay {
	o := &StatusOverlay{cupboard: c}
	o.text = statusText(c, 0, 0)
	return o
}

// Step implements Stepper.
func (o *StatusOverlay) Step(dt float64) {
	o.elapsed += dt
	if o.elapsed < statusRefresh {
		return
	}
	o.elapsed = 0
	o.text = statusText(o.cupboard, ebiten.ActualFPS(), ebiten.ActualTPS())
}

// Text returns the last rendered text.
func (o *StatusOverlay) Text() string { return o.text }

// Draw prints the text at the top-left of dst.
func (o *StatusOverlay) Draw(dst *ebiten.Image) {
	ebitenutil.DebugPrint(dst, o.text)
}

func statusText(c *Cupboard, fps, tps float64) string {
	var b strings.Builder
	size := c.Size()
	fmt.Fprintf(&b, "size: %.0f x %.0f x %.0f\n", size.X(), size.Y(), size.Z())
	fmt.Fprintf(&b, "bays: %d  shelves: %d  doors: %d\n", c.bays.Len(), c.bays.ShelfAmount(), c.doors.Len())
	switch {
	case c.active != nil:
		fmt.Fprintf(&b, "dragging %s %d: %.0f\n", c.active.kind, c.active.index,
			c.active.size[c.active.owner.direction])
	case c.wallDragging:
		fmt.Fprintf(&b, "dragging %s wall\n", c.wallSide)
	}
	fmt.Fprintf(&b, "FPS: %.1f  TPS: %.1f", fps, tps)
	return b.String()
}
