package carpenter

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Segment is one projected box edge in device pixels.
type Segment struct {
	A, B        Vec2
	Highlighted bool
}

// boxEdges lists the 12 edges of a box as index pairs into boxCorners.
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0}, // back face
	{4, 5}, {5, 7}, {7, 6}, {6, 4}, // front face
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// boxCorners returns the corners of a box of the given half size. Bit 0 of
// the index picks +X, bit 1 +Y and bit 2 +Z.
func boxCorners(half mgl64.Vec3) [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	for i := range out {
		c := half.Mul(-1)
		if i&1 != 0 {
			c[0] = half[0]
		}
		if i&2 != 0 {
			c[1] = half[1]
		}
		if i&4 != 0 {
			c[2] = half[2]
		}
		out[i] = c
	}
	return out
}

// Wireframe appends the projected edges of every visible, sized node under
// the scene root to buf and returns it. Edges with a corner behind the
// camera are dropped.
func (s *Scene) Wireframe(buf []Segment) []Segment {
	cam := s.Camera()
	viewProj := cam.ViewProjection()
	var walk func(n *Node, parent mgl64.Mat4)
	walk = func(n *Node, parent mgl64.Mat4) {
		if !n.Visible || n.disposed {
			return
		}
		world := parent.Mul4(n.LocalMatrix())
		if n.Size[0] != 0 || n.Size[1] != 0 || n.Size[2] != 0 {
			var pts [8]Vec2
			var ok [8]bool
			for i, c := range boxCorners(n.Size.Mul(0.5)) {
				pts[i], ok[i] = project(viewProj, cam.Viewport, mgl64.TransformCoordinate(c, world))
			}
			for _, e := range boxEdges {
				if ok[e[0]] && ok[e[1]] {
					buf = append(buf, Segment{A: pts[e[0]], B: pts[e[1]], Highlighted: n.Highlighted})
				}
			}
		}
		for _, child := range n.children {
			walk(child, world)
		}
	}
	walk(s.root, mgl64.Ident4())
	return buf
}

// project maps a world point through viewProj onto viewport.
func project(viewProj mgl64.Mat4, vp Rect, p mgl64.Vec3) (Vec2, bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	return Vec2{
		X: vp.X + (ndc[0]+1)/2*vp.Width,
		Y: vp.Y + (1-ndc[1])/2*vp.Height,
	}, true
}

var (
	// WireColor is the color of ordinary edges drawn by Draw.
	WireColor color.Color = color.RGBA{R: 0xd8, G: 0xcf, B: 0xc0, A: 0xff}
	// HighlightColor is the color of hovered objects.
	HighlightColor color.Color = color.RGBA{R: 0xff, G: 0xa6, B: 0x30, A: 0xff}
)

// Draw renders the scene as a wireframe onto dst and then writes any
// pending screenshots.
func (s *Scene) Draw(dst *ebiten.Image) {
	s.wireBuf = s.Wireframe(s.wireBuf[:0])
	for _, seg := range s.wireBuf {
		clr, width := WireColor, float32(1)
		if seg.Highlighted {
			clr, width = HighlightColor, 2
		}
		vector.StrokeLine(dst,
			float32(seg.A.X), float32(seg.A.Y), float32(seg.B.X), float32(seg.B.Y),
			width, clr, true)
	}
	s.flushScreenshots(dst)
}
