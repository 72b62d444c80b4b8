package carpenter

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// OpenType is the hinge side of a door.
type OpenType uint8

const (
	OpenLeft  OpenType = iota // hinged on the left edge, swings to negative angles
	OpenRight                 // hinged on the right edge, swings to positive angles
)

func (o OpenType) String() string {
	if o == OpenRight {
		return "right"
	}
	return "left"
}

// DoorState is the lifecycle of a door panel.
type DoorState uint8

const (
	DoorClosed DoorState = iota
	DoorOpening
	DoorOpen
	DoorClosing
)

func (s DoorState) String() string {
	switch s {
	case DoorClosed:
		return "closed"
	case DoorOpening:
		return "opening"
	case DoorOpen:
		return "open"
	case DoorClosing:
		return "closing"
	default:
		return "DoorState(?)"
	}
}

// ToggleResult reports what a Toggle did.
type ToggleResult uint8

const (
	ToggleOpening ToggleResult = iota // a closed door started opening
	ToggleClosing                     // an open door started closing
	ToggleIgnored                     // the door was in flight
)

// doorOpenAngle is the magnitude of the fully opened angle.
const doorOpenAngle = 0.47 * math.Pi

// DefaultDoorSwing is the open/close duration in seconds.
const DefaultDoorSwing float32 = 0.6

// Door is a hinged panel hanging in front of a door section. Toggle starts
// a transition; Step advances it. Only Closed and Open accept a toggle.
type Door struct {
	name     string
	openType OpenType
	forward  bool

	state    DoorState
	angle    float64
	tween    *gween.Tween
	duration float32

	panel   *Node
	section *Section
}

func newDoor(name string, openType OpenType, forward bool, swing float32) *Door {
	if swing <= 0 {
		swing = DefaultDoorSwing
	}
	d := &Door{
		name:     name,
		openType: openType,
		forward:  forward,
		duration: swing,
		panel:    NewNode(name, mgl64.Vec3{}),
	}
	d.panel.UserData = d
	return d
}

// State returns the lifecycle state.
func (d *Door) State() DoorState { return d.state }

// Angle returns the current rotation around the hinge in radians.
func (d *Door) Angle() float64 { return d.angle }

// OpenType returns the hinge side.
func (d *Door) OpenType() OpenType { return d.openType }

// Forward reports whether the door hangs on the front track.
func (d *Door) Forward() bool { return d.forward }

// Panel returns the door's node.
func (d *Door) Panel() *Node { return d.panel }

// Section returns the door section the door belongs to.
func (d *Door) Section() *Section { return d.section }

// openAngle returns the signed terminal angle for the hinge side.
func (d *Door) openAngle() float64 {
	if d.openType == OpenRight {
		return doorOpenAngle
	}
	return -doorOpenAngle
}

// Toggle starts opening a closed door or closing an open one. Doors in
// flight ignore the request.
func (d *Door) Toggle() ToggleResult {
	switch d.state {
	case DoorClosed:
		d.state = DoorOpening
		d.tween = gween.New(float32(d.angle), float32(d.openAngle()), d.duration, ease.OutCubic)
		return ToggleOpening
	case DoorOpen:
		d.state = DoorClosing
		d.tween = gween.New(float32(d.angle), 0, d.duration, ease.OutCubic)
		return ToggleClosing
	default:
		return ToggleIgnored
	}
}

// Step advances an in-flight transition by dt seconds. Once the angle
// reaches the threshold for the current direction the tween is dropped,
// the angle snaps to it and the terminal state is set.
func (d *Door) Step(dt float64) {
	if d.tween == nil {
		return
	}
	val, finished := d.tween.Update(float32(dt))
	d.angle = float64(val)

	target := 0.0
	if d.state == DoorOpening {
		target = d.openAngle()
	}
	if finished || d.reached(target) {
		d.angle = target
		d.tween = nil
		if d.state == DoorOpening {
			d.state = DoorOpen
		} else {
			d.state = DoorClosed
		}
	}
	if d.section != nil {
		ss := d.section.owner
		d.layout(d.section.position, d.section.size, ss.thickness)
	}
}

// reached reports whether the angle crossed target in the current direction.
func (d *Door) reached(target float64) bool {
	opening := d.state == DoorOpening
	// Left doors open towards negative angles.
	negative := (d.openType == OpenLeft) == opening
	if negative {
		return d.angle <= target
	}
	return d.angle >= target
}

// layout hangs the panel on its hinge. center and size describe the door
// section; forward doors sit one thickness in front of the back track.
func (d *Door) layout(center, size mgl64.Vec3, thickness float64) {
	w := size[AxisX]
	cz := center[AxisZ]
	if d.forward {
		cz += thickness
	}
	sin, cos := math.Sincos(d.angle)
	var pos mgl64.Vec3
	switch d.openType {
	case OpenRight:
		hx := center[AxisX] + w/2
		pos = mgl64.Vec3{hx - cos*w/2, center[AxisY], cz + sin*w/2}
	default:
		hx := center[AxisX] - w/2
		pos = mgl64.Vec3{hx + cos*w/2, center[AxisY], cz - sin*w/2}
	}
	d.panel.Size = mgl64.Vec3{w, size[AxisY], thickness}
	d.panel.Position = pos
	d.panel.Rotation = mgl64.Vec3{0, d.angle, 0}
}
