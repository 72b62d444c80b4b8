package carpenter

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Pointer and key entry points ---

// PointerDown dispatches a press at device coordinates (x, y).
func (s *Scene) PointerDown(x, y float64) DispatchResult {
	return s.dispatchPointer(EventPointerDown, Vec2{x, y}, false)
}

// PointerUp dispatches a release over the canvas at (x, y).
func (s *Scene) PointerUp(x, y float64) DispatchResult {
	return s.dispatchPointer(EventPointerUp, Vec2{x, y}, false)
}

// PointerMove dispatches a move to (x, y) and synthesizes enter/leave
// events when the nearest hit changes.
func (s *Scene) PointerMove(x, y float64) DispatchResult {
	return s.dispatchPointer(EventPointerMove, Vec2{x, y}, false)
}

// PointerUpGlobal dispatches a window-global release. Only plane-level
// reactions receive it, so drags end even when released off the canvas.
func (s *Scene) PointerUpGlobal(x, y float64) DispatchResult {
	r := &Reason{Kind: EventPointerUpGlobal, Screen: Vec2{x, y}, Modifiers: s.modifiers}
	s.resolver.Resolve(r, nil)
	s.registry.Cause(r)
	res := DispatchResult{}
	s.emit(r, nil, res)
	return res
}

// Touch dispatches a touch event of the given pointer kind using the first
// touch point. An event without touch points carries no position; it is
// dropped before any Reason is built and Touch reports false.
func (s *Scene) Touch(kind EventKind, touches []Vec2) (DispatchResult, bool) {
	if len(touches) == 0 {
		if s.debug {
			s.debugf("dropped %s touch event with no touch points", kind)
		}
		return DispatchResult{}, false
	}
	if !kind.IsPointer() || kind == EventPointerEnter || kind == EventPointerLeave {
		return DispatchResult{}, false
	}
	p := touches[0]
	if kind == EventPointerUpGlobal {
		return s.PointerUpGlobal(p.X, p.Y), true
	}
	return s.dispatchPointer(kind, p, true), true
}

// KeyDown dispatches a key press to plane-level reactions.
func (s *Scene) KeyDown(key ebiten.Key) DispatchResult {
	return s.dispatchKey(EventKeyDown, key)
}

// KeyUp dispatches a key release to plane-level reactions.
func (s *Scene) KeyUp(key ebiten.Key) DispatchResult {
	return s.dispatchKey(EventKeyUp, key)
}

func (s *Scene) dispatchKey(kind EventKind, key ebiten.Key) DispatchResult {
	r := &Reason{Kind: kind, Key: key, Modifiers: s.modifiers}
	s.registry.Cause(r)
	res := DispatchResult{}
	s.emit(r, nil, res)
	return res
}

// dispatchPointer resolves the hit list for pos, fires hover transitions on
// moves and runs CauseAll over the hits, nearest first.
func (s *Scene) dispatchPointer(kind EventKind, pos Vec2, touch bool) DispatchResult {
	r := &Reason{Kind: kind, Screen: pos, Touch: touch, Modifiers: s.modifiers}
	hits := s.resolver.Resolve(r, s.registry.Targets())
	targets := Targets(hits)

	if kind == EventPointerMove && s.resolver.Hover(hits) {
		left, entered := s.resolver.TakeHover()
		if left != nil {
			s.fireDirect(EventPointerLeave, left, r)
		}
		if entered != nil {
			s.fireDirect(EventPointerEnter, entered, r)
		}
	}

	var nearest Object
	if len(targets) > 0 {
		nearest = targets[0]
	}
	res := s.registry.CauseAll(r, targets, s.resolver.Modify)
	s.emit(r, nearest, res)
	return res
}

// fireDirect dispatches a synthesized enter/leave to one target only.
func (s *Scene) fireDirect(kind EventKind, target Object, from *Reason) {
	r := *from
	r.Kind = kind
	r.Target = target
	if !s.resolver.Modify(&r, target) {
		// Leaving objects are usually no longer under the ray.
		r.TargetPoint = r.PlanePoint
		r.TargetDistance = 0
	}
	s.registry.Cause(&r)
}

// --- Ebitengine polling ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// pollInput feeds this frame's Ebitengine mouse, touch and keyboard state
// through the passer.
func (s *Scene) pollInput() {
	s.modifiers = readModifiers()
	s.pollMouse()
	s.pollTouches()
	s.pollKeys()
}

func (s *Scene) pollMouse() {
	mx, my := ebiten.CursorPosition()
	pos := Vec2{float64(mx), float64(my)}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.mouseDown = true
		s.PointerDown(pos.X, pos.Y)
	}
	if !s.cursorKnown || pos != s.lastCursor {
		s.cursorKnown = true
		s.lastCursor = pos
		s.PointerMove(pos.X, pos.Y)
	}
	if s.mouseDown && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.mouseDown = false
		vp := s.Camera().Viewport
		if vp.Contains(pos.X, pos.Y) {
			s.PointerUp(pos.X, pos.Y)
		}
		s.PointerUpGlobal(pos.X, pos.Y)
	}
}

// activeTouches returns the positions of all touches currently down, in
// Ebitengine's order.
func (s *Scene) activeTouches() []Vec2 {
	s.touchBuf = ebiten.AppendTouchIDs(s.touchBuf[:0])
	s.touchPosBuf = s.touchPosBuf[:0]
	for _, id := range s.touchBuf {
		x, y := ebiten.TouchPosition(id)
		s.touchPosBuf = append(s.touchPosBuf, Vec2{float64(x), float64(y)})
	}
	return s.touchPosBuf
}

func (s *Scene) pollTouches() {
	active := s.activeTouches()

	s.touchBuf = inpututil.AppendJustPressedTouchIDs(s.touchBuf[:0])
	if len(s.touchBuf) > 0 {
		s.Touch(EventPointerDown, active)
	}
	if len(active) > 0 && active[0] != s.lastTouch {
		s.Touch(EventPointerMove, active)
	}
	if len(active) > 0 {
		s.lastTouch = active[0]
	}

	s.touchBuf = inpututil.AppendJustReleasedTouchIDs(s.touchBuf[:0])
	if len(s.touchBuf) > 0 {
		// Lifting the last finger leaves no touch points: the canvas-level
		// release is dropped and only the global release ends a drag.
		s.Touch(EventPointerUp, active)
		s.PointerUpGlobal(s.lastTouch.X, s.lastTouch.Y)
	}
}

func (s *Scene) pollKeys() {
	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.KeyDown(k)
	}
	s.keyBuf = inpututil.AppendJustReleasedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.KeyUp(k)
	}
}
