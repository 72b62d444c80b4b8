package carpenter

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Rect is a screen-space rectangle. The origin is the top-left corner of
// the canvas with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Camera is a perspective look-at camera used to turn pointer positions
// into world-space rays.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	// FovY is the vertical field of view in radians.
	FovY      float64
	Near, Far float64
	// Viewport is the canvas rectangle in device pixels.
	Viewport Rect

	invViewProj mgl64.Mat4
	dirty       bool
}

// NewCamera creates a camera at position looking at target with a 45 degree
// vertical field of view.
func NewCamera(viewport Rect, position, target mgl64.Vec3) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		Up:       mgl64.Vec3{0, 1, 0},
		FovY:     mgl64.DegToRad(45),
		Near:     1,
		Far:      100000,
		Viewport: viewport,
		dirty:    true,
	}
}

// MarkDirty forces the view-projection matrix to be recomputed on next use.
// Call after changing any exported field.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// SetViewport changes the canvas rectangle, e.g. after a window resize.
func (c *Camera) SetViewport(viewport Rect) {
	c.Viewport = viewport
	c.dirty = true
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	aspect := 1.0
	if c.Viewport.Height > 0 {
		aspect = c.Viewport.Width / c.Viewport.Height
	}
	proj := mgl64.Perspective(c.FovY, aspect, c.Near, c.Far)
	view := mgl64.LookAtV(c.Position, c.Target, c.Up)
	return proj.Mul4(view)
}

func (c *Camera) inverse() mgl64.Mat4 {
	if c.dirty {
		c.invViewProj = c.ViewProjection().Inv()
		c.dirty = false
	}
	return c.invViewProj
}

// Normalize converts device pixel coordinates to normalized device
// coordinates in -1..1 relative to the viewport, with Y pointing up.
func (c *Camera) Normalize(sx, sy float64) Vec2 {
	vp := c.Viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		return Vec2{}
	}
	return Vec2{
		X: (sx-vp.X)/vp.Width*2 - 1,
		Y: -((sy-vp.Y)/vp.Height*2 - 1),
	}
}

// Ray casts a ray from the eye through the normalized point ndc.
func (c *Camera) Ray(ndc Vec2) Ray {
	far := mgl64.TransformCoordinate(mgl64.Vec3{ndc.X, ndc.Y, 1}, c.inverse())
	return Ray{
		Origin:    c.Position,
		Direction: far.Sub(c.Position).Normalize(),
	}
}

// Project converts a world-space point to device pixel coordinates. The
// boolean is false when the point is behind the camera.
func (c *Camera) Project(p mgl64.Vec3) (Vec2, bool) {
	return project(c.ViewProjection(), c.Viewport, p)
}
