package carpenter

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Keyboard moves a node with the keyboard: arrows rotate it about Y and
// tilt it about X, W/S move it along Z, A/D along X, Q/E along Y and R
// restores the transform it had when attached. Held keys keep acting on
// every tick.
type Keyboard struct {
	node *Node

	// RotateSpeed is in radians per second, MoveSpeed in units per second.
	RotateSpeed float64
	MoveSpeed   float64

	held     map[ebiten.Key]bool
	home     mgl64.Vec3
	homeRot  mgl64.Vec3
	scene    *Scene
	bindings []*Binding
}

// keyStep is the time a single key press counts for before it is held.
const keyStep = 1.0 / 30

// AttachKeyboard binds the shortcuts for node on scene.
func AttachKeyboard(scene *Scene, node *Node) *Keyboard {
	k := &Keyboard{
		node:        node,
		RotateSpeed: math.Pi / 2,
		MoveSpeed:   800,
		held:        make(map[ebiten.Key]bool),
		home:        node.Position,
		homeRot:     node.Rotation,
		scene:       scene,
	}
	k.bindings = append(k.bindings,
		scene.OnFunc(EventKeyDown, nil, k.onKeyDown),
		scene.OnFunc(EventKeyUp, nil, k.onKeyUp),
	)
	scene.AddStepper(k)
	return k
}

// Detach removes the shortcuts.
func (k *Keyboard) Detach() {
	for _, b := range k.bindings {
		b.Remove()
	}
	k.bindings = nil
	k.scene.RemoveStepper(k)
	clear(k.held)
}

func (k *Keyboard) onKeyDown(r *Reason) Propagation {
	if r.Key == ebiten.KeyR {
		k.Reset()
		return Continue
	}
	if k.apply(r.Key, keyStep) {
		k.held[r.Key] = true
	}
	return Continue
}

func (k *Keyboard) onKeyUp(r *Reason) Propagation {
	delete(k.held, r.Key)
	return Continue
}

// Step continues every held key.
func (k *Keyboard) Step(dt float64) {
	for key := range k.held {
		k.apply(key, dt)
	}
}

// Reset restores the node's original position and rotation.
func (k *Keyboard) Reset() {
	k.node.Position = k.home
	k.node.Rotation = k.homeRot
	clear(k.held)
}

// apply moves the node for key over dt seconds. It reports whether key is
// a movement shortcut.
func (k *Keyboard) apply(key ebiten.Key, dt float64) bool {
	rot := k.RotateSpeed * dt
	move := k.MoveSpeed * dt
	n := k.node
	switch key {
	case ebiten.KeyArrowLeft:
		n.Rotation[1] -= rot
	case ebiten.KeyArrowRight:
		n.Rotation[1] += rot
	case ebiten.KeyArrowUp:
		n.Rotation[0] -= rot
	case ebiten.KeyArrowDown:
		n.Rotation[0] += rot
	case ebiten.KeyA:
		n.Position[0] -= move
	case ebiten.KeyD:
		n.Position[0] += move
	case ebiten.KeyW:
		n.Position[2] -= move
	case ebiten.KeyS:
		n.Position[2] += move
	case ebiten.KeyQ:
		n.Position[1] -= move
	case ebiten.KeyE:
		n.Position[1] += move
	default:
		return false
	}
	return true
}
