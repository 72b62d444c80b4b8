package carpenter

import "github.com/hajimehoshi/ebiten/v2"

type syntheticKind uint8

const (
	syntheticPress syntheticKind = iota
	syntheticMove
	syntheticRelease
	syntheticKeyDown
	syntheticKeyUp
)

// syntheticEvent represents a single injected input event in device
// coordinates, identical to what the polled path would produce.
type syntheticEvent struct {
	kind             syntheticKind
	screenX, screenY float64
	key              ebiten.Key
}

// InjectPress queues a pointer press at the given device coordinates.
// The event is consumed on the next Update.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticPress, screenX: x, screenY: y})
}

// InjectMove queues a pointer move. Use this between InjectPress and
// InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticMove, screenX: x, screenY: y})
}

// InjectRelease queues a pointer release, which dispatches both the canvas
// and the window-global release.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticRelease, screenX: x, screenY: y})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, a final
// move onto (toX, toY) and the release there. Minimum frames is 2.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectMove(toX, toY)
	s.InjectRelease(toX, toY)
}

// InjectKey queues a key press followed by its release. Consumes two frames.
func (s *Scene) InjectKey(key ebiten.Key) {
	s.injectQueue = append(s.injectQueue,
		syntheticEvent{kind: syntheticKeyDown, key: key},
		syntheticEvent{kind: syntheticKeyUp, key: key})
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the passer. Returns true if an event was consumed (real input is
// skipped for that frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticPress:
		s.PointerDown(evt.screenX, evt.screenY)
	case syntheticMove:
		s.PointerMove(evt.screenX, evt.screenY)
	case syntheticRelease:
		s.PointerUp(evt.screenX, evt.screenY)
		s.PointerUpGlobal(evt.screenX, evt.screenY)
	case syntheticKeyDown:
		s.KeyDown(evt.key)
	case syntheticKeyUp:
		s.KeyUp(evt.key)
	}
	return true
}
