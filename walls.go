package carpenter

import "github.com/go-gl/mathgl/mgl64"

// WallSide names one outer panel of the cupboard.
type WallSide uint8

const (
	WallLeft WallSide = iota
	WallRight
	WallTop
	WallBottom
	WallBack
	numWallSides
)

func (w WallSide) String() string {
	switch w {
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	case WallTop:
		return "top"
	case WallBottom:
		return "bottom"
	case WallBack:
		return "back"
	default:
		return "WallSide(?)"
	}
}

// axis returns the axis a drag on this wall resizes.
func (w WallSide) axis() Axis {
	switch w {
	case WallTop, WallBottom:
		return AxisY
	case WallBack:
		return AxisZ
	default:
		return AxisX
	}
}

// Walls is the cupboard's outer shell: two sides, top, bottom and back,
// centered on the parent's origin.
type Walls struct {
	size      mgl64.Vec3
	thickness float64
	panels    [numWallSides]*Node
}

// NewWalls creates the five panels under parent.
func NewWalls(parent *Node, size mgl64.Vec3, thickness float64) *Walls {
	w := &Walls{size: size, thickness: thickness}
	for side := WallLeft; side < numWallSides; side++ {
		n := NewNode("wall-"+side.String(), mgl64.Vec3{})
		n.UserData = side
		w.panels[side] = n
		if parent != nil {
			parent.AddChild(n)
		}
	}
	w.layout()
	return w
}

// Panel returns the node of one side.
func (w *Walls) Panel(side WallSide) *Node { return w.panels[side] }

// Side returns which wall n is, or false when n is not a wall panel.
func (w *Walls) Side(n *Node) (WallSide, bool) {
	for side, p := range w.panels {
		if p == n {
			return WallSide(side), true
		}
	}
	return 0, false
}

// Size returns the outer size.
func (w *Walls) Size() mgl64.Vec3 { return w.size }

// Thickness returns the panel thickness.
func (w *Walls) Thickness() float64 { return w.thickness }

// Interior returns the free space between the panels.
func (w *Walls) Interior() mgl64.Vec3 {
	t := w.thickness
	return w.size.Sub(mgl64.Vec3{2 * t, 2 * t, t})
}

// InteriorOrigin returns the center of the interior.
func (w *Walls) InteriorOrigin() mgl64.Vec3 {
	return mgl64.Vec3{0, 0, w.thickness / 2}
}

// SetSizeComponent implements Resizable.
func (w *Walls) SetSizeComponent(axis Axis, size float64) {
	if !axis.Valid() {
		return
	}
	w.size[axis] = size
	w.layout()
}

func (w *Walls) layout() {
	s, t := w.size, w.thickness
	hx, hy, hz := s.X()/2, s.Y()/2, s.Z()/2
	innerY := s.Y() - 2*t

	place := func(side WallSide, size, pos mgl64.Vec3) {
		w.panels[side].Size = size
		w.panels[side].Position = pos
	}
	place(WallLeft, mgl64.Vec3{t, s.Y(), s.Z()}, mgl64.Vec3{-hx + t/2, 0, 0})
	place(WallRight, mgl64.Vec3{t, s.Y(), s.Z()}, mgl64.Vec3{hx - t/2, 0, 0})
	place(WallTop, mgl64.Vec3{s.X() - 2*t, t, s.Z()}, mgl64.Vec3{0, hy - t/2, 0})
	place(WallBottom, mgl64.Vec3{s.X() - 2*t, t, s.Z()}, mgl64.Vec3{0, -hy + t/2, 0})
	place(WallBack, mgl64.Vec3{s.X() - 2*t, innerY, t}, mgl64.Vec3{0, 0, -hz + t/2})
}
