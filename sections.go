package carpenter

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrInvalidAmount is returned when a partition count below one is requested.
	ErrInvalidAmount = errors.New("carpenter: section amount must be at least 1")
	// ErrSectionsTooSmall is returned when the requested partitions would
	// not leave every section its minimum footprint.
	ErrSectionsTooSmall = errors.New("carpenter: extent too small for requested sections")
)

// relativeTolerance bounds the drift allowed in the sum of relative sizes.
const relativeTolerance = 1e-6

// GrabResult reports the outcome of SetSectionResizing.
type GrabResult uint8

const (
	GrabAccepted GrabResult = iota // the section is now being dragged
	GrabRejected                   // another section holds the latch, or nothing to drag
	GrabReleased                   // the section is no longer being dragged
)

func (g GrabResult) String() string {
	switch g {
	case GrabAccepted:
		return "accepted"
	case GrabRejected:
		return "rejected"
	case GrabReleased:
		return "released"
	default:
		return "GrabResult(?)"
	}
}

// DragResult reports the outcome of one drag update.
type DragResult uint8

const (
	DragApplied     DragResult = iota // sizes were updated
	DragInfeasible                    // no position keeps both neighbors legal; geometry kept
	DragNotResizing                   // the section is not being dragged
	DragNoDivider                     // the section has no divider or no next sibling
)

func (d DragResult) String() string {
	switch d {
	case DragApplied:
		return "applied"
	case DragInfeasible:
		return "infeasible"
	case DragNotResizing:
		return "not resizing"
	case DragNoDivider:
		return "no divider"
	default:
		return "DragResult(?)"
	}
}

// sectionBinder is told about every section a collection creates or
// destroys, so reactions can follow rebuilds.
type sectionBinder interface {
	bindSection(s *Section)
	unbindSection(s *Section)
}

// SectionsConfig describes a new collection.
type SectionsConfig struct {
	Kind      SectionKind
	Direction Axis
	// Size is the enclosing extent on all three axes.
	Size mgl64.Vec3
	// Origin is the center of the enclosing region in Parent's space.
	Origin    mgl64.Vec3
	Thickness float64
	MinSize   float64
	Amount    int
	// Parent receives the divider and door nodes; may be nil in tests.
	Parent *Node

	// ShelfAmount is the number of shelf compartments per bay (bays only).
	ShelfAmount int
	// DoorSwing is the door open/close duration in seconds (doors only).
	DoorSwing float32
}

// Sections is an ordered partition of one axis. The relative sizes of its
// sections always sum to one outside of a drag frame, and at most one
// section is dragged at a time.
type Sections struct {
	kind      SectionKind
	direction Axis
	size      mgl64.Vec3
	origin    mgl64.Vec3
	thickness float64
	minSize   float64
	parent    *Node
	policy    sectionPolicy

	sections []*Section
	// oneResizing is the drag latch: set while any section is dragged.
	oneResizing bool

	shelfAmount int
	doorSwing   float32
	// doorCount alternates forward/back door placement across one build.
	doorCount int

	binder sectionBinder
}

// NewSections validates cfg and builds the initial partition.
func NewSections(cfg SectionsConfig) (*Sections, error) {
	if !cfg.Direction.Valid() {
		return nil, fmt.Errorf("new sections: invalid direction %d", cfg.Direction)
	}
	if cfg.Thickness < 0 || cfg.MinSize < 0 {
		return nil, fmt.Errorf("new sections: negative thickness %v or min size %v", cfg.Thickness, cfg.MinSize)
	}
	if cfg.Thickness+cfg.MinSize <= 0 {
		return nil, fmt.Errorf("new sections: thickness plus min size must be positive")
	}
	swing := cfg.DoorSwing
	if swing <= 0 {
		swing = DefaultDoorSwing
	}
	ss := &Sections{
		kind:        cfg.Kind,
		direction:   cfg.Direction,
		size:        cfg.Size,
		origin:      cfg.Origin,
		thickness:   cfg.Thickness,
		minSize:     cfg.MinSize,
		parent:      cfg.Parent,
		policy:      policyFor(cfg.Kind),
		shelfAmount: cfg.ShelfAmount,
		doorSwing:   swing,
	}
	amount := cfg.Amount
	if amount == 0 {
		amount = 1
	}
	if err := ss.SetAmount(amount); err != nil {
		return nil, fmt.Errorf("new sections: %w", err)
	}
	return ss, nil
}

// Kind returns what the collection partitions.
func (ss *Sections) Kind() SectionKind { return ss.kind }

// Direction returns the partitioned axis.
func (ss *Sections) Direction() Axis { return ss.direction }

// Size returns the enclosing extent.
func (ss *Sections) Size() mgl64.Vec3 { return ss.size }

// Origin returns the center of the enclosing region in the parent's space.
func (ss *Sections) Origin() mgl64.Vec3 { return ss.origin }

// Thickness returns the divider thickness.
func (ss *Sections) Thickness() float64 { return ss.thickness }

// MinSize returns the minimum free size of a section, excluding its divider.
func (ss *Sections) MinSize() float64 { return ss.minSize }

// Len returns the number of sections.
func (ss *Sections) Len() int { return len(ss.sections) }

// At returns the i-th section.
func (ss *Sections) At(i int) *Section { return ss.sections[i] }

// All returns the sections in order. The returned slice MUST NOT be mutated.
func (ss *Sections) All() []*Section { return ss.sections }

// OneResizing reports whether a section currently holds the drag latch.
func (ss *Sections) OneResizing() bool { return ss.oneResizing }

// RelativeSum returns the sum of all relative sizes.
func (ss *Sections) RelativeSum() float64 {
	var sum float64
	for _, s := range ss.sections {
		sum += s.relative
	}
	return sum
}

// MinExtent returns the smallest extent along the direction that keeps
// every section at or above its minimum footprint with the current
// relative sizes.
func (ss *Sections) MinExtent() float64 {
	floor := ss.thickness + ss.minSize
	var extent float64
	for _, s := range ss.sections {
		if s.relative > 0 {
			extent = math.Max(extent, floor/s.relative)
		}
	}
	return extent
}

// SetAmount discards every section and rebuilds n equal ones. The trailing
// section loses its divider unless the kind keeps it.
func (ss *Sections) SetAmount(n int) error {
	if n < 1 {
		return ErrInvalidAmount
	}
	if ss.size[ss.direction]/float64(n) < ss.thickness+ss.minSize {
		return fmt.Errorf("%w: %d %s sections in %.4g", ErrSectionsTooSmall, n, ss.kind, ss.size[ss.direction])
	}
	ss.clear()
	ss.doorCount = 0
	ss.sections = make([]*Section, n)
	rel := 1 / float64(n)
	for i := range ss.sections {
		s := &Section{kind: ss.kind, owner: ss, index: i, relative: rel}
		ss.sections[i] = s
		ss.policy.build(ss, s)
	}
	if last := ss.sections[n-1]; !ss.policy.keepLastDivider {
		last.removeDivider()
	}
	ss.updateGeometry()
	if ss.binder != nil {
		for _, s := range ss.sections {
			ss.binder.bindSection(s)
		}
	}
	return nil
}

// SetShelfAmount rebuilds the shelves of every bay. Bays too short for n
// shelves are left open. n == 0 removes all shelves.
func (ss *Sections) SetShelfAmount(n int) error {
	if ss.kind != SectionBay {
		return fmt.Errorf("set shelf amount: %s sections hold no shelves", ss.kind)
	}
	if n < 0 {
		return ErrInvalidAmount
	}
	if n > 0 && ss.size[AxisY]/float64(n) < ss.thickness+ss.minSize {
		return fmt.Errorf("%w: %d shelves in %.4g", ErrSectionsTooSmall, n, ss.size[AxisY])
	}
	ss.shelfAmount = n
	for _, s := range ss.sections {
		if s.shelves != nil {
			s.shelves.clear()
			s.shelves = nil
		}
		ss.buildShelves(s)
	}
	ss.updateGeometry()
	return nil
}

// ShelfAmount returns the number of shelves requested per bay.
func (ss *Sections) ShelfAmount() int { return ss.shelfAmount }

// buildShelves creates the shelf collection of bay s. Bays too short for
// the requested shelves are left open.
func (ss *Sections) buildShelves(s *Section) {
	if s.shelves != nil || ss.shelfAmount <= 0 {
		return
	}
	shelves, err := NewSections(SectionsConfig{
		Kind:      SectionShelf,
		Direction: AxisY,
		Size:      ss.size,
		Thickness: ss.thickness,
		MinSize:   ss.minSize,
		Amount:    ss.shelfAmount,
		Parent:    ss.parent,
	})
	if err != nil {
		return
	}
	shelves.setBinder(ss.binder)
	s.shelves = shelves
}

// clear destroys every section and releases the latch.
func (ss *Sections) clear() {
	for _, s := range ss.sections {
		if ss.binder != nil {
			ss.binder.unbindSection(s)
		}
		s.destroy()
	}
	ss.sections = nil
	ss.oneResizing = false
}

// setBinder attaches b and binds the existing sections, recursing into
// bay shelves.
func (ss *Sections) setBinder(b sectionBinder) {
	if ss.binder == b {
		return
	}
	for _, s := range ss.sections {
		if ss.binder != nil {
			ss.binder.unbindSection(s)
		}
		if b != nil {
			b.bindSection(s)
		}
		if s.shelves != nil {
			s.shelves.setBinder(b)
		}
	}
	ss.binder = b
}

// SetSectionResizing starts or ends the drag of s. Starting is rejected
// while another section holds the latch or when s has no divider.
func (ss *Sections) SetSectionResizing(s *Section, resizing bool) GrabResult {
	if s == nil || s.owner != ss {
		return GrabRejected
	}
	if !resizing {
		if s.resizing {
			s.resizing = false
			ss.oneResizing = false
		}
		return GrabReleased
	}
	if s.resizing {
		return GrabAccepted
	}
	if ss.oneResizing || s.divider == nil || s.Next() == nil {
		return GrabRejected
	}
	s.resizing = true
	ss.oneResizing = true
	return GrabAccepted
}

// ReleaseResizing ends any drag in progress.
func (ss *Sections) ReleaseResizing() {
	for _, s := range ss.sections {
		s.resizing = false
	}
	ss.oneResizing = false
}

// Resizing returns the section being dragged, or nil.
func (ss *Sections) Resizing() *Section {
	if !ss.oneResizing {
		return nil
	}
	for _, s := range ss.sections {
		if s.resizing {
			return s
		}
	}
	return nil
}

// Drag moves the divider of s towards coord, a position along the
// direction in the parent node's space. The divider may travel between the
// previous section's divider and the next section's far edge, each bound
// pulled in by thickness + minSize; outside that it is clamped. When the
// bounds cross no legal position exists and the frame is ignored.
func (ss *Sections) Drag(s *Section, coord float64) DragResult {
	if s == nil || s.owner != ss || !s.resizing {
		return DragNotResizing
	}
	next := s.Next()
	if s.divider == nil || next == nil {
		return DragNoDivider
	}
	d := ss.direction
	extent := ss.size[d]
	if extent <= 0 {
		return DragInfeasible
	}

	minEdge := -extent / 2
	if prev := s.Previous(); prev != nil {
		minEdge = prev.end
	}
	maxEdge := next.end

	floor := ss.thickness + ss.minSize
	bounds := Limits{Min: minEdge + floor, Max: maxEdge - floor}
	if !bounds.Correct() {
		return DragInfeasible
	}

	clamped := bounds.Clamp(coord - ss.origin[d])
	ss.SetRelativeSectionSizeComponent(s, (clamped-minEdge)/extent, true)

	if s.input != nil {
		s.input.SetValue(s.size[d])
	}
	if next.input != nil {
		next.input.SetValue(next.size[d])
	}
	return DragApplied
}

// SetRelativeSectionSizeComponent writes a new relative size for s. With
// propagate set, the next sibling absorbs the opposite delta so the sum
// stays one. The layout is recomputed afterwards.
func (ss *Sections) SetRelativeSectionSizeComponent(s *Section, relative float64, propagate bool) {
	ss.setRelative(s, relative, propagate)
	ss.updateGeometry()
}

func (ss *Sections) setRelative(s *Section, relative float64, propagate bool) {
	delta := relative - s.relative
	s.relative = relative
	if !propagate {
		return
	}
	if next := s.Next(); next != nil {
		ss.setRelative(next, next.relative-delta, false)
	}
}

// SetSizeComponent implements Resizable: it changes the enclosing extent on
// one axis and rescales every section proportionally. Along the direction
// the extent never drops below MinExtent.
func (ss *Sections) SetSizeComponent(axis Axis, size float64) {
	if !axis.Valid() {
		return
	}
	if axis == ss.direction {
		size = Limits{Min: ss.MinExtent(), Max: math.Inf(1)}.Clamp(size)
	}
	ss.size[axis] = size
	ss.updateGeometry()
}

// SetOrigin moves the collection's center and relays it out.
func (ss *Sections) SetOrigin(origin mgl64.Vec3) {
	ss.origin = origin
	ss.updateGeometry()
}

// fit replaces extent and origin in one layout pass.
func (ss *Sections) fit(size, origin mgl64.Vec3) {
	ss.size = size
	ss.origin = origin
	ss.updateGeometry()
}

// updateGeometry tiles the sections along the direction starting at
// -extent/2: each section is centered half its size after the running
// position, which then advances by the other half.
func (ss *Sections) updateGeometry() {
	d := ss.direction
	extent := ss.size[d]
	pos := -extent / 2
	for _, s := range ss.sections {
		var size mgl64.Vec3
		for a := AxisX; a <= AxisZ; a++ {
			if a == d {
				size[a] = extent * s.relative
			} else {
				size[a] = ss.policy.cross(ss, a)
			}
		}
		s.start = pos
		pos += size[d] / 2
		center := ss.origin
		center[d] += pos
		pos += size[d] / 2
		s.end = pos
		s.size = size
		s.position = center
		ss.policy.layout(ss, s)
	}
}

// Valid reports whether the partition-sum and minimum-size invariants hold.
func (ss *Sections) Valid() bool {
	if math.Abs(ss.RelativeSum()-1) > relativeTolerance {
		return false
	}
	floor := ss.thickness + ss.minSize
	for _, s := range ss.sections {
		if s.size[ss.direction] < floor-relativeTolerance {
			return false
		}
	}
	return true
}
