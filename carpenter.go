package carpenter

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a 2D vector used for device and normalized pointer positions.
type Vec2 struct {
	X, Y float64
}

// Axis selects one component of a 3-vector.
type Axis uint8

const (
	AxisX Axis = iota // width
	AxisY             // height
	AxisZ             // depth
)

// String returns "x", "y" or "z".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "invalid"
	}
}

// Valid reports whether a names one of the three axes.
func (a Axis) Valid() bool {
	return a <= AxisZ
}

// EventKind identifies a kind of input event routed to reactions.
type EventKind uint8

const (
	EventPointerDown     EventKind = iota // pointer pressed over the canvas
	EventPointerUp                        // pointer released over the canvas
	EventPointerUpGlobal                  // pointer released anywhere (window-global)
	EventPointerMove                      // pointer moved, pressed or not
	EventPointerEnter                     // nearest hit changed to this target
	EventPointerLeave                     // nearest hit changed away from this target
	EventKeyDown                          // key pressed
	EventKeyUp                            // key released

	numEventKinds
)

var eventKindNames = [numEventKinds]string{
	"PointerDown", "PointerUp", "PointerUpGlobal", "PointerMove",
	"PointerEnter", "PointerLeave", "KeyDown", "KeyUp",
}

func (k EventKind) String() string {
	if k < numEventKinds {
		return eventKindNames[k]
	}
	return "EventKind(?)"
}

// IsPointer reports whether k is produced from pointer or touch input.
func (k EventKind) IsPointer() bool {
	return k <= EventPointerLeave
}

// KeyModifiers is a bitmask of keyboard modifier keys.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Limits is a closed [Min, Max] interval applied to drag-derived sizes.
type Limits struct {
	Min, Max float64
}

// Correct reports whether Min <= Max. Clamp on an incorrect Limits returns
// Min for every input.
func (l Limits) Correct() bool {
	return l.Min <= l.Max
}

// Clamp returns v restricted to [Min, Max].
func (l Limits) Clamp(v float64) float64 {
	if !l.Correct() {
		return l.Min
	}
	return math.Max(l.Min, math.Min(l.Max, v))
}

// Contains reports whether v lies inside the interval.
func (l Limits) Contains(v float64) bool {
	return l.Correct() && v >= l.Min && v <= l.Max
}

// axisLimits builds the Limits for one axis out of min/max size vectors.
func axisLimits(minSize, maxSize mgl64.Vec3, axis Axis) Limits {
	return Limits{Min: minSize[axis], Max: maxSize[axis]}
}

// Resizable is implemented by every entity whose extent along one axis can
// be driven from outside, e.g. by a numeric input field.
type Resizable interface {
	SetSizeComponent(axis Axis, size float64)
}

// sizeEpsilon is the tolerance used when comparing derived sizes.
const sizeEpsilon = 1e-9
