package carpenter

import "reflect"

// Propagation tells the dispatcher what to do after a reaction ran.
type Propagation uint8

const (
	Continue   Propagation = iota // run the next reaction, then the next target
	SkipTarget                    // stop reactions for this target, move on to the next target
	StopAll                       // abort every remaining target for this event
)

func (p Propagation) String() string {
	switch p {
	case Continue:
		return "Continue"
	case SkipTarget:
		return "SkipTarget"
	case StopAll:
		return "StopAll"
	default:
		return "Propagation(?)"
	}
}

// Reaction is a handler bound to an event kind and an optional target.
type Reaction interface {
	React(r *Reason) Propagation
}

// ReactionFunc adapts a plain function to Reaction. Function values are not
// comparable, so a ReactionFunc can only be removed through its Binding.
type ReactionFunc func(r *Reason) Propagation

// React calls f(r).
func (f ReactionFunc) React(r *Reason) Propagation {
	return f(r)
}

// ReasonModifier enriches r for target before the target's reactions run.
// Returning false marks the target as skipped for this event.
type ReasonModifier func(r *Reason, target Object) bool

// DispatchResult summarizes one CauseAll pass.
type DispatchResult struct {
	Visited int  // targets considered
	Skipped int  // targets passed over by the modifier
	Stopped bool // a reaction returned StopAll
}

// --- Registry ---

type bindingKey struct {
	kind   EventKind
	target Object
}

// Binding is one registered (kind, target, reaction) triple.
type Binding struct {
	id       uint32
	kind     EventKind
	target   Object
	reaction Reaction
	enabled  bool
	removed  bool
	reg      *Registry
}

// Kind returns the event kind the binding listens to.
func (b *Binding) Kind() EventKind { return b.kind }

// Target returns the bound target, nil for plane-level bindings.
func (b *Binding) Target() Object { return b.target }

// Enabled reports whether the binding currently fires.
func (b *Binding) Enabled() bool { return b.enabled && !b.removed }

// SetEnabled turns the binding on or off without unregistering it.
func (b *Binding) SetEnabled(enabled bool) {
	b.enabled = enabled
}

// Remove unregisters the binding. Calling Remove twice is a no-op.
func (b *Binding) Remove() {
	if b == nil || b.reg == nil || b.removed {
		return
	}
	b.reg.remove(b)
}

// Registry stores reactions indexed by (event kind, target). Insertion
// order is dispatch order; registering the same reaction twice makes it
// fire twice.
type Registry struct {
	bindings map[bindingKey][]*Binding
	// targets lists every non-nil target with at least one binding, in
	// first-registration order; refs counts bindings per target.
	targets []Object
	refs    map[Object]int
	nextID  uint32
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[bindingKey][]*Binding),
		refs:     make(map[Object]int),
	}
}

// On registers reaction for kind on target. A nil target binds the reaction
// to the plane level: it fires once per event regardless of what was hit.
func (g *Registry) On(kind EventKind, target Object, reaction Reaction) *Binding {
	g.nextID++
	b := &Binding{
		id:       g.nextID,
		kind:     kind,
		target:   target,
		reaction: reaction,
		enabled:  true,
		reg:      g,
	}
	key := bindingKey{kind, target}
	g.bindings[key] = append(g.bindings[key], b)
	if target != nil {
		if g.refs[target] == 0 {
			g.targets = append(g.targets, target)
		}
		g.refs[target]++
	}
	return b
}

// OnFunc is On for a plain function.
func (g *Registry) OnFunc(kind EventKind, target Object, fn func(r *Reason) Propagation) *Binding {
	return g.On(kind, target, ReactionFunc(fn))
}

// Off removes the first binding of reaction for (kind, target). Removing a
// reaction that is not registered is a no-op. Reactions whose dynamic value
// is not comparable (a ReactionFunc, or a struct wrapping one) never match;
// use Binding.Remove.
func (g *Registry) Off(kind EventKind, target Object, reaction Reaction) {
	if reaction == nil || !reflect.ValueOf(reaction).Comparable() {
		return
	}
	for _, b := range g.bindings[bindingKey{kind, target}] {
		if reflect.ValueOf(b.reaction).Comparable() && b.reaction == reaction {
			g.remove(b)
			return
		}
	}
}

// OffTarget removes every binding attached to target.
func (g *Registry) OffTarget(target Object) {
	if target == nil {
		return
	}
	for k := EventKind(0); k < numEventKinds; k++ {
		list := g.bindings[bindingKey{k, target}]
		for len(list) > 0 {
			g.remove(list[0])
			list = g.bindings[bindingKey{k, target}]
		}
	}
}

// SetEnabled enables or disables every binding currently held.
func (g *Registry) SetEnabled(enabled bool) {
	for _, list := range g.bindings {
		for _, b := range list {
			b.enabled = enabled
		}
	}
}

// Len returns the number of bindings for (kind, target).
func (g *Registry) Len(kind EventKind, target Object) int {
	return len(g.bindings[bindingKey{kind, target}])
}

// Targets returns the distinct non-nil targets with at least one binding.
// The returned slice MUST NOT be mutated.
func (g *Registry) Targets() []Object {
	return g.targets
}

func (g *Registry) remove(b *Binding) {
	key := bindingKey{b.kind, b.target}
	list := g.bindings[key]
	for i := range list {
		if list[i] == b {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			list = list[:len(list)-1]
			break
		}
	}
	if len(list) == 0 {
		delete(g.bindings, key)
	} else {
		g.bindings[key] = list
	}
	b.removed = true

	if b.target == nil {
		return
	}
	g.refs[b.target]--
	if g.refs[b.target] > 0 {
		return
	}
	delete(g.refs, b.target)
	for i, t := range g.targets {
		if t == b.target {
			copy(g.targets[i:], g.targets[i+1:])
			g.targets[len(g.targets)-1] = nil
			g.targets = g.targets[:len(g.targets)-1]
			break
		}
	}
}

// --- Dispatch ---

// Cause runs every enabled reaction bound to (r.Kind, r.Target) in
// registration order. It returns the first non-Continue propagation, which
// also ends the pass for this target.
func (g *Registry) Cause(r *Reason) Propagation {
	list := g.bindings[bindingKey{r.Kind, r.Target}]
	if len(list) == 0 {
		return Continue
	}
	// Reactions may register or remove bindings (e.g. a rebuild), so
	// iterate over a snapshot and honor removals made mid-pass.
	snapshot := make([]*Binding, len(list))
	copy(snapshot, list)
	for _, b := range snapshot {
		if !b.enabled || b.removed {
			continue
		}
		if p := b.reaction.React(r); p != Continue {
			return p
		}
	}
	return Continue
}

// CauseAll dispatches r to each target in order. For every target it sets
// r.Target and lets modify enrich the reason; a false result passes over
// the target without invoking anything. A StopAll from any reaction halts
// the remaining targets. Plane-level (nil-target) reactions then run once,
// whatever happened above.
func (g *Registry) CauseAll(r *Reason, targets []Object, modify ReasonModifier) DispatchResult {
	var res DispatchResult
	for _, t := range targets {
		if t == nil {
			continue
		}
		res.Visited++
		r.Target = t
		if modify != nil && !modify(r, t) {
			res.Skipped++
			continue
		}
		if g.Cause(r) == StopAll {
			res.Stopped = true
			break
		}
	}
	r.clearTarget()
	g.Cause(r)
	return res
}
