package carpenter

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// EventSink is the interface for optional ECS integration.
// When set on a Scene, a summary of every dispatched event is forwarded.
type EventSink interface {
	EmitEvent(event ReactionEvent)
}

// ReactionEvent carries dispatch data for the ECS bridge.
type ReactionEvent struct {
	Kind       EventKind
	Screen     Vec2
	PlanePoint mgl64.Vec3
	PlaneHit   bool
	Key        ebiten.Key
	// Nearest is the first target in dispatch order, nil when nothing was hit.
	Nearest Object
	Visited int
	Skipped int
	Stopped bool
}

// Stepper is advanced once per tick by the scene. Door animations and the
// shuffler are steppers; tests drive them by calling Scene.Tick directly.
type Stepper interface {
	Step(dt float64)
}

// Scene is the top-level object that owns the object tree, the reaction
// registry, the resolver and the timed steppers.
type Scene struct {
	root     *Node
	registry *Registry
	resolver *Resolver
	sink     EventSink
	debug    bool

	steppers []Stepper

	modifiers KeyModifiers

	// Polled input state
	mouseDown   bool
	lastCursor  Vec2
	cursorKnown bool
	lastTouch   Vec2
	touchBuf    []ebiten.TouchID
	keyBuf      []ebiten.Key
	touchPosBuf []Vec2
	injectQueue []syntheticEvent
	testRunner  *TestRunner

	wireBuf   []Segment
	shotQueue []string
	shotDir   string
}

// NewScene creates a scene viewed through camera. The reference plane
// passes through the world origin facing the camera.
func NewScene(camera *Camera) *Scene {
	normal := camera.Position.Sub(camera.Target)
	if normal.Len() == 0 {
		normal = mgl64.Vec3{0, 0, 1}
	}
	return &Scene{
		root:     NewContainer("root"),
		registry: NewRegistry(),
		resolver: NewResolver(camera, NewPlane(mgl64.Vec3{}, normal)),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node { return s.root }

// Registry returns the reaction registry.
func (s *Scene) Registry() *Registry { return s.registry }

// Resolver returns the ray intersection resolver.
func (s *Scene) Resolver() *Resolver { return s.resolver }

// Camera returns the camera pointer rays are cast from.
func (s *Scene) Camera() *Camera { return s.resolver.camera }

// On registers reaction for kind on target (nil for plane level). Targets
// with at least one binding become candidates for pointer hit testing.
func (s *Scene) On(kind EventKind, target Object, reaction Reaction) *Binding {
	return s.registry.On(kind, target, reaction)
}

// OnFunc is On for a plain function.
func (s *Scene) OnFunc(kind EventKind, target Object, fn func(r *Reason) Propagation) *Binding {
	return s.registry.OnFunc(kind, target, fn)
}

// Off removes the first matching binding; see Registry.Off.
func (s *Scene) Off(kind EventKind, target Object, reaction Reaction) {
	s.registry.Off(kind, target, reaction)
}

// Forget removes every binding of obj and drops it from hover memory.
func (s *Scene) Forget(obj Object) {
	s.registry.OffTarget(obj)
	s.resolver.Forget(obj)
}

// AddStepper schedules st to be advanced on every tick.
func (s *Scene) AddStepper(st Stepper) {
	for _, existing := range s.steppers {
		if existing == st {
			return
		}
	}
	s.steppers = append(s.steppers, st)
}

// RemoveStepper cancels st. No-op if st is not scheduled.
func (s *Scene) RemoveStepper(st Stepper) {
	for i, existing := range s.steppers {
		if existing == st {
			copy(s.steppers[i:], s.steppers[i+1:])
			s.steppers[len(s.steppers)-1] = nil
			s.steppers = s.steppers[:len(s.steppers)-1]
			return
		}
	}
}

// Tick advances every stepper by dt seconds. A stepper added or removed
// during a tick takes effect on the next one.
func (s *Scene) Tick(dt float64) {
	steppers := make([]Stepper, len(s.steppers))
	copy(steppers, s.steppers)
	for _, st := range steppers {
		st.Step(dt)
	}
}

// Update processes one frame: scripted and injected input first, real
// Ebitengine input otherwise, then one tick of 1/TPS seconds.
func (s *Scene) Update() {
	dt := tickSeconds(ebiten.TPS())

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if !s.processInjectedInput() {
		s.pollInput()
	}
	s.Tick(dt)
}

// tickSeconds converts a ticks-per-second rate into a step length. Rates
// that are not positive, such as ebiten.SyncWithFPS, fall back to
// ebiten.DefaultTPS.
func tickSeconds(tps int) float64 {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1.0 / float64(tps)
}

// SetEventSink sets the optional ECS bridge.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetModifiers overrides the modifier state attached to subsequent events.
// Polled input refreshes it every frame.
func (s *Scene) SetModifiers(mods KeyModifiers) {
	s.modifiers = mods
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and every dispatch is logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

func (s *Scene) emit(r *Reason, nearest Object, res DispatchResult) {
	if s.debug {
		s.debugDispatch(r, nearest, res)
	}
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(ReactionEvent{
		Kind:       r.Kind,
		Screen:     r.Screen,
		PlanePoint: r.PlanePoint,
		PlaneHit:   r.PlaneHit,
		Key:        r.Key,
		Nearest:    nearest,
		Visited:    res.Visited,
		Skipped:    res.Skipped,
		Stopped:    res.Stopped,
	})
}
