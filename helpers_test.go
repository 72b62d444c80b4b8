package carpenter

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	testScreenW = 800
	testScreenH = 600
)

// newTestScene returns a scene whose camera sits on +Z looking at the
// origin, so the reference plane is z = 0 and the screen center maps to
// the world origin.
func newTestScene() *Scene {
	cam := NewCamera(Rect{Width: testScreenW, Height: testScreenH},
		mgl64.Vec3{0, 0, 1000}, mgl64.Vec3{})
	return NewScene(cam)
}

// screenOf projects a world point to device pixels.
func screenOf(t *testing.T, s *Scene, p mgl64.Vec3) Vec2 {
	t.Helper()
	v, ok := s.Camera().Project(p)
	if !ok {
		t.Fatalf("point %v is behind the camera", p)
	}
	return v
}

// testObject is an Object with a scripted intersection.
type testObject struct {
	name string
	dist float64
	miss bool
}

func (o *testObject) Intersect(ray Ray) (Hit, bool) {
	if o.miss {
		return Hit{}, false
	}
	return Hit{Object: o, Point: ray.At(o.dist), Distance: o.dist}, true
}

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// recorder collects labels from reactions in call order.
type recorder struct {
	calls []string
}

func (r *recorder) fn(label string, p Propagation) func(*Reason) Propagation {
	return func(*Reason) Propagation {
		r.calls = append(r.calls, label)
		return p
	}
}

func (r *recorder) String() string {
	out := ""
	for i, c := range r.calls {
		if i > 0 {
			out += ","
		}
		out += c
	}
	return out
}
