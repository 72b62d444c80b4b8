package carpenter

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Construction ---

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("box", mgl64.Vec3{1, 2, 3})
	if n.Name != "box" || !n.Visible || n.Scale != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("unexpected defaults: %+v", n)
	}
	if n.Size != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("Size = %v", n.Size)
	}
	c := NewContainer("c")
	if c.Size != (mgl64.Vec3{}) {
		t.Errorf("container Size = %v, want zero", c.Size)
	}
}

func TestUniqueIDs(t *testing.T) {
	seen := make(map[uint32]bool)
	for i := 0; i < 100; i++ {
		n := NewContainer("n")
		if seen[n.ID] {
			t.Fatalf("duplicate ID %d", n.ID)
		}
		seen[n.ID] = true
	}
}

// --- Tree ---

func TestAddChildBasic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.Children()[0] != child {
		t.Error("parent should contain child")
	}
}

func TestAddChildReparent(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")
	a.AddChild(child)
	b.AddChild(child)

	if a.NumChildren() != 0 {
		t.Error("child should have left its old parent")
	}
	if child.Parent != b {
		t.Error("child.Parent should be b")
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name  string
		setup func() (parent, child *Node)
	}{
		{"nil child", func() (*Node, *Node) { return NewContainer("p"), nil }},
		{"self", func() (*Node, *Node) {
			n := NewContainer("n")
			return n, n
		}},
		{"cycle", func() (*Node, *Node) {
			a := NewContainer("a")
			b := NewContainer("b")
			a.AddChild(b)
			return b, a
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent, child := tt.setup()
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}
				if !strings.HasPrefix(fmt.Sprint(r), "carpenter:") {
					t.Errorf("panic message %q lacks prefix", r)
				}
			}()
			parent.AddChild(child)
		})
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")
	a.AddChild(child)

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	b.RemoveChild(child)
}

func TestRemoveFromParent(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	child.RemoveFromParent()
	if child.Parent != nil || parent.NumChildren() != 0 {
		t.Error("child should be detached")
	}
	child.RemoveFromParent() // no-op
}

func TestDispose(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewNode("grandchild", mgl64.Vec3{1, 1, 1})
	parent.AddChild(child)
	child.AddChild(grandchild)

	child.Dispose()

	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("child and grandchild should be disposed")
	}
	if parent.NumChildren() != 0 {
		t.Error("disposed child should leave its parent")
	}
	if parent.IsDisposed() {
		t.Error("parent should not be disposed")
	}
	child.Dispose() // idempotent
}

// --- Transforms ---

func TestWorldToLocalRoundTrip(t *testing.T) {
	parent := NewContainer("parent")
	parent.Position = mgl64.Vec3{100, -50, 20}
	parent.Rotation = mgl64.Vec3{0.3, 1.1, 0}
	child := NewContainer("child")
	child.Position = mgl64.Vec3{10, 0, 5}
	child.Scale = mgl64.Vec3{2, 2, 2}
	parent.AddChild(child)

	p := mgl64.Vec3{3, 4, 5}
	back := child.WorldToLocal(child.LocalToWorld(p))
	if !back.ApproxEqualThreshold(p, 1e-9) {
		t.Errorf("round trip = %v, want %v", back, p)
	}
}

func TestLocalToWorldRotationY(t *testing.T) {
	n := NewContainer("n")
	n.Rotation = mgl64.Vec3{0, math.Pi / 2, 0}
	got := n.LocalToWorld(mgl64.Vec3{1, 0, 0})
	if !got.ApproxEqualThreshold(mgl64.Vec3{0, 0, -1}, 1e-9) {
		t.Errorf("rotated +X = %v, want (0,0,-1)", got)
	}
}

// --- Intersection ---

func TestNodeIntersect(t *testing.T) {
	down := Ray{Origin: mgl64.Vec3{0, 0, 1000}, Direction: mgl64.Vec3{0, 0, -1}}

	t.Run("front face", func(t *testing.T) {
		n := NewNode("box", mgl64.Vec3{100, 100, 100})
		h, ok := n.Intersect(down)
		if !ok {
			t.Fatal("expected hit")
		}
		if !approx(h.Distance, 950, 1e-9) || !approx(h.Point.Z(), 50, 1e-9) {
			t.Errorf("hit = %+v, want distance 950 at z=50", h)
		}
		if h.Object != n {
			t.Error("hit object should be the node")
		}
	})

	t.Run("translated away", func(t *testing.T) {
		n := NewNode("box", mgl64.Vec3{100, 100, 100})
		n.Position = mgl64.Vec3{200, 0, 0}
		if _, ok := n.Intersect(down); ok {
			t.Error("expected miss")
		}
	})

	t.Run("scaled parent", func(t *testing.T) {
		parent := NewContainer("parent")
		parent.Scale = mgl64.Vec3{2, 2, 2}
		n := NewNode("box", mgl64.Vec3{100, 100, 100})
		parent.AddChild(n)
		h, ok := n.Intersect(down)
		if !ok {
			t.Fatal("expected hit")
		}
		if !approx(h.Distance, 900, 1e-6) {
			t.Errorf("distance = %v, want 900", h.Distance)
		}
	})

	t.Run("invisible ancestor", func(t *testing.T) {
		parent := NewContainer("parent")
		parent.Visible = false
		n := NewNode("box", mgl64.Vec3{100, 100, 100})
		parent.AddChild(n)
		if _, ok := n.Intersect(down); ok {
			t.Error("hidden nodes should not be hit")
		}
	})

	t.Run("zero size", func(t *testing.T) {
		if _, ok := NewContainer("c").Intersect(down); ok {
			t.Error("containers should not be hit")
		}
	})

	t.Run("disposed", func(t *testing.T) {
		n := NewNode("box", mgl64.Vec3{100, 100, 100})
		n.Dispose()
		if _, ok := n.Intersect(down); ok {
			t.Error("disposed nodes should not be hit")
		}
	})
}
