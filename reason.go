package carpenter

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Reason is the payload of one dispatch pass. It is built by the input
// passer, enriched by the resolver and read (and occasionally annotated) by
// reactions. A Reason must not be retained after the dispatch returns.
type Reason struct {
	Kind EventKind

	// Target is the object currently being dispatched to; nil while the
	// plane-level (nil-target) reactions run.
	Target Object

	// Screen is the pointer position in device pixels, NDC the same point
	// in normalized -1..1 canvas space (Y up).
	Screen Vec2
	NDC    Vec2
	Ray    Ray

	// PlanePoint is where the pointer ray crosses the reference plane.
	// PlaneHit is false when the ray is parallel to or points away from it.
	PlanePoint mgl64.Vec3
	PlaneHit   bool

	// TargetPoint and TargetDistance describe the current target's own
	// intersection; valid only while Target is non-nil.
	TargetPoint    mgl64.Vec3
	TargetDistance float64

	// Touch is true when the pointer data came from the first touch point.
	Touch bool

	Key       ebiten.Key
	Modifiers KeyModifiers
}

// clearTarget resets the per-target fields before the nil-target pass.
func (r *Reason) clearTarget() {
	r.Target = nil
	r.TargetPoint = mgl64.Vec3{}
	r.TargetDistance = 0
}
