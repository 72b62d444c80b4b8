package carpenter

import (
	"cmp"
	"slices"
)

// Resolver turns a pointer position into an ordered list of hit objects and
// tracks which object the pointer is hovering.
type Resolver struct {
	camera *Camera
	plane  *Plane

	hits []Hit

	// hover is the nearest hit of the previous pointer frame.
	hover Object
	// left and entered form the pending enter/leave pair produced by the
	// last Hover call; cleared once consumed.
	left, entered Object
}

// NewResolver creates a resolver casting rays from camera. plane is the
// invisible reference plane used for drag coordinates.
func NewResolver(camera *Camera, plane *Plane) *Resolver {
	return &Resolver{camera: camera, plane: plane}
}

// Camera returns the camera rays are cast from.
func (v *Resolver) Camera() *Camera { return v.camera }

// Plane returns the reference plane.
func (v *Resolver) Plane() *Plane { return v.plane }

// Resolve fills the ray and reference-plane fields of r and returns every
// candidate hit by the ray, nearest first. Candidates equal to the
// reference plane are ignored. The returned slice is reused by the next
// call.
func (v *Resolver) Resolve(r *Reason, candidates []Object) []Hit {
	r.NDC = v.camera.Normalize(r.Screen.X, r.Screen.Y)
	r.Ray = v.camera.Ray(r.NDC)
	r.PlaneHit = false
	if v.plane != nil {
		if h, ok := v.plane.Intersect(r.Ray); ok {
			r.PlanePoint = h.Point
			r.PlaneHit = true
		}
	}

	v.hits = v.hits[:0]
	for _, c := range candidates {
		if c == nil || c == Object(v.plane) {
			continue
		}
		if h, ok := c.Intersect(r.Ray); ok {
			h.Object = c
			v.hits = append(v.hits, h)
		}
	}
	slices.SortStableFunc(v.hits, func(a, b Hit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return v.hits
}

// Targets extracts the objects of hits, preserving order.
func Targets(hits []Hit) []Object {
	out := make([]Object, len(hits))
	for i, h := range hits {
		out[i] = h.Object
	}
	return out
}

// Modify is the ReasonModifier used for pointer dispatch: it attaches the
// target's own intersection to r, or reports false when the ray misses it.
func (v *Resolver) Modify(r *Reason, target Object) bool {
	h, ok := target.Intersect(r.Ray)
	if !ok {
		return false
	}
	r.TargetPoint = h.Point
	r.TargetDistance = h.Distance
	return true
}

// Hover compares the nearest hit with the previous frame's and records the
// pending leave/enter pair. It reports whether the hovered object changed.
func (v *Resolver) Hover(hits []Hit) (changed bool) {
	var nearest Object
	if len(hits) > 0 {
		nearest = hits[0].Object
	}
	if nearest == v.hover {
		return false
	}
	v.left, v.entered = v.hover, nearest
	v.hover = nearest
	return true
}

// TakeHover returns the pending leave/enter pair and clears it, so a stale
// pair can never be replayed on a later frame.
func (v *Resolver) TakeHover() (left, entered Object) {
	left, entered = v.left, v.entered
	v.left, v.entered = nil, nil
	return left, entered
}

// Hovered returns the object the pointer is currently over, if any.
func (v *Resolver) Hovered() Object {
	return v.hover
}

// Forget drops obj from the hover memory, e.g. when it is removed from the
// scene while under the pointer.
func (v *Resolver) Forget(obj Object) {
	if v.hover == obj {
		v.hover = nil
	}
	if v.left == obj {
		v.left = nil
	}
	if v.entered == obj {
		v.entered = nil
	}
}
