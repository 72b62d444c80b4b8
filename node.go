package carpenter

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Object is anything the resolver can cast a pointer ray against. Objects
// are compared by identity, so implementations should be pointer types.
type Object interface {
	Intersect(ray Ray) (Hit, bool)
}

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic, carpenter is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the reference scene object: a box of Size extents centered on its
// local origin, positioned by Position, Rotation (Euler, radians, applied
// Y then X then Z) and Scale relative to its parent. The renderer owns the
// visual side; carpenter only needs transforms and ray queries.
type Node struct {
	ID   uint32
	Name string

	Parent   *Node
	children []*Node

	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
	Size     mgl64.Vec3

	Visible     bool
	Highlighted bool

	UserData any

	disposed bool
}

// NewNode creates a visible node with unit scale and the given box size.
// A zero size makes the node a pure container that never intersects.
func NewNode(name string, size mgl64.Vec3) *Node {
	return &Node{
		ID:      nextNodeID(),
		Name:    name,
		Scale:   mgl64.Vec3{1, 1, 1},
		Size:    size,
		Visible: true,
	}
}

// NewContainer creates a node with no geometry of its own.
func NewContainer(name string) *Node {
	return NewNode(name, mgl64.Vec3{})
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("carpenter: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("carpenter: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("carpenter: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Transforms ---

// LocalMatrix returns Translate * RotY * RotX * RotZ * Scale.
func (n *Node) LocalMatrix() mgl64.Mat4 {
	m := mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	if n.Rotation[1] != 0 {
		m = m.Mul4(mgl64.HomogRotate3DY(n.Rotation[1]))
	}
	if n.Rotation[0] != 0 {
		m = m.Mul4(mgl64.HomogRotate3DX(n.Rotation[0]))
	}
	if n.Rotation[2] != 0 {
		m = m.Mul4(mgl64.HomogRotate3DZ(n.Rotation[2]))
	}
	return m.Mul4(mgl64.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2]))
}

// WorldMatrix composes the local matrices from the root down to n.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	m := n.LocalMatrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// LocalToWorld converts a point in n's local space to world space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.WorldMatrix())
}

// WorldToLocal converts a world-space point into n's local space.
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.WorldMatrix().Inv())
}

// visibleInTree reports whether n and all of its ancestors are visible.
func (n *Node) visibleInTree() bool {
	for p := n; p != nil; p = p.Parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// Intersect casts ray against the node's box. The ray is moved into local
// space with the inverse world matrix; the slab parameter therefore stays
// valid for the world-space ray and Distance is measured in world units.
func (n *Node) Intersect(ray Ray) (Hit, bool) {
	if n.disposed || !n.visibleInTree() {
		return Hit{}, false
	}
	if n.Size[0] == 0 && n.Size[1] == 0 && n.Size[2] == 0 {
		return Hit{}, false
	}
	inv := n.WorldMatrix().Inv()
	local := Ray{
		Origin:    mgl64.TransformCoordinate(ray.Origin, inv),
		Direction: mgl64.TransformNormal(ray.Direction, inv),
	}
	half := n.Size.Mul(0.5)
	t, ok := local.IntersectBox(half.Mul(-1), half)
	if !ok {
		return Hit{}, false
	}
	point := ray.At(t)
	return Hit{
		Object:   n,
		Point:    point,
		Distance: point.Sub(ray.Origin).Len(),
	}, true
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
