package carpenter

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// SectionKind tags what a Section partitions.
type SectionKind uint8

const (
	SectionBay   SectionKind = iota // vertical bay across the cupboard width
	SectionShelf                    // shelf compartment stacked inside a bay
	SectionDoor                     // door panel across the front
)

func (k SectionKind) String() string {
	switch k {
	case SectionBay:
		return "bay"
	case SectionShelf:
		return "shelf"
	case SectionDoor:
		return "door"
	default:
		return "section"
	}
}

// Section is one partition of a Sections collection. Its size and position
// are always derived by the owner's layout pass; clients change them only
// through the owner (SetAmount, Drag, SetRelativeSectionSizeComponent).
type Section struct {
	kind  SectionKind
	owner *Sections
	index int

	relative float64
	size     mgl64.Vec3
	position mgl64.Vec3
	// start and end are the edges along the owner's direction, relative to
	// the owner's origin.
	start, end float64
	resizing   bool

	divider *Node
	door    *Door
	shelves *Sections
	input   ValueInput

	bindings []*Binding
}

// Kind returns what the section partitions.
func (s *Section) Kind() SectionKind { return s.kind }

// Owner returns the collection the section belongs to.
func (s *Section) Owner() *Sections { return s.owner }

// Index returns the section's position in its collection.
func (s *Section) Index() int { return s.index }

// RelativeSize returns the section's fraction of the owner's extent.
func (s *Section) RelativeSize() float64 { return s.relative }

// Size returns the absolute size computed by the last layout pass.
func (s *Section) Size() mgl64.Vec3 { return s.size }

// Position returns the section's center in the parent node's space.
func (s *Section) Position() mgl64.Vec3 { return s.position }

// LeadingEdge returns the section's lower edge along the owner's direction,
// relative to the owner's center.
func (s *Section) LeadingEdge() float64 { return s.start }

// TrailingEdge returns the section's upper edge along the owner's direction.
func (s *Section) TrailingEdge() float64 { return s.end }

// Resizing reports whether the section's divider is being dragged.
func (s *Section) Resizing() bool { return s.resizing }

// Divider returns the draggable divider panel, nil once removed.
func (s *Section) Divider() *Node { return s.divider }

// Door returns the door of a door section, nil for other kinds.
func (s *Section) Door() *Door { return s.door }

// Shelves returns the shelf collection inside a bay, nil when the bay has none.
func (s *Section) Shelves() *Sections { return s.shelves }

// Previous returns the preceding sibling, nil for the first section.
func (s *Section) Previous() *Section {
	if s.index == 0 {
		return nil
	}
	return s.owner.sections[s.index-1]
}

// Next returns the following sibling, nil for the last section.
func (s *Section) Next() *Section {
	if s.index+1 >= len(s.owner.sections) {
		return nil
	}
	return s.owner.sections[s.index+1]
}

// Bind attaches a numeric input that receives this section's size along
// the owner's direction whenever a drag changes it.
func (s *Section) Bind(input ValueInput) {
	s.input = input
	if input != nil {
		input.SetValue(s.size[s.owner.direction])
	}
}

// SetSizeComponent implements Resizable. Along the owner's direction the
// requested size is clamped so that this section and its next sibling keep
// their minimum footprint; the sibling absorbs the difference. Other axes
// are owned by the collection and ignored.
func (s *Section) SetSizeComponent(axis Axis, size float64) {
	ss := s.owner
	if axis != ss.direction || s.Next() == nil {
		return
	}
	extent := ss.size[axis]
	if extent <= 0 {
		return
	}
	floor := ss.thickness + ss.minSize
	limits := Limits{Min: floor, Max: s.size[axis] + s.Next().size[axis] - floor}
	if !limits.Correct() {
		return
	}
	ss.SetRelativeSectionSizeComponent(s, limits.Clamp(size)/extent, true)
}

// removeDivider detaches and disposes the divider panel.
func (s *Section) removeDivider() {
	if s.divider == nil {
		return
	}
	s.divider.Dispose()
	s.divider = nil
}

// destroy releases every node the section created.
func (s *Section) destroy() {
	s.removeDivider()
	if s.door != nil {
		s.door.panel.Dispose()
		s.door = nil
	}
	if s.shelves != nil {
		s.shelves.clear()
		s.shelves = nil
	}
	s.input = nil
}

// --- Per-kind policies ---

// sectionPolicy holds the strategy functions that differ between kinds.
type sectionPolicy struct {
	// keepLastDivider keeps the divider on the trailing section.
	keepLastDivider bool
	// cross returns the section size on a non-direction axis.
	cross func(ss *Sections, axis Axis) float64
	// build creates the nodes owned by a new section.
	build func(ss *Sections, s *Section)
	// layout positions those nodes after a geometry pass.
	layout func(ss *Sections, s *Section)
}

func policyFor(kind SectionKind) sectionPolicy {
	switch kind {
	case SectionDoor:
		return sectionPolicy{
			cross: func(ss *Sections, axis Axis) float64 {
				if axis == AxisZ {
					return ss.thickness
				}
				return ss.size[axis]
			},
			build:  buildDoorSection,
			layout: layoutDoorSection,
		}
	case SectionBay:
		return sectionPolicy{
			cross:  enclosingCross,
			build:  buildBaySection,
			layout: layoutBaySection,
		}
	default:
		return sectionPolicy{
			cross:  enclosingCross,
			build:  buildDivider,
			layout: layoutDivider,
		}
	}
}

func enclosingCross(ss *Sections, axis Axis) float64 {
	return ss.size[axis]
}

// buildDivider creates the panel separating s from its next sibling.
func buildDivider(ss *Sections, s *Section) {
	s.divider = NewNode(fmt.Sprintf("%s-divider-%d", s.kind, s.index), mgl64.Vec3{})
	s.divider.UserData = s
	if ss.parent != nil {
		ss.parent.AddChild(s.divider)
	}
}

// layoutDivider places the divider flush with the section's trailing edge.
func layoutDivider(ss *Sections, s *Section) {
	if s.divider == nil {
		return
	}
	d := ss.direction
	size := s.size
	size[d] = ss.thickness
	pos := s.position
	pos[d] += s.size[d]/2 - ss.thickness/2
	s.divider.Size = size
	s.divider.Position = pos
}

func buildBaySection(ss *Sections, s *Section) {
	buildDivider(ss, s)
	ss.buildShelves(s)
}

// layoutBaySection places the divider and fits the bay's shelves into the
// space left of it.
func layoutBaySection(ss *Sections, s *Section) {
	layoutDivider(ss, s)
	if s.shelves == nil {
		return
	}
	inner := s.size
	origin := s.position
	if s.divider != nil {
		inner[ss.direction] -= ss.thickness
		origin[ss.direction] -= ss.thickness / 2
	}
	s.shelves.fit(inner, origin)
}

func buildDoorSection(ss *Sections, s *Section) {
	buildDivider(ss, s)
	openType := OpenLeft
	if s.index%2 == 1 {
		openType = OpenRight
	}
	forward := ss.doorCount%2 == 0
	ss.doorCount++
	s.door = newDoor(fmt.Sprintf("door-%d", s.index), openType, forward, ss.doorSwing)
	s.door.section = s
	if ss.parent != nil {
		ss.parent.AddChild(s.door.panel)
	}
}

// layoutDoorSection places the grip strip in front of the door edge and
// hangs the door panel on its hinge.
func layoutDoorSection(ss *Sections, s *Section) {
	if s.divider != nil {
		d := ss.direction
		s.divider.Size = mgl64.Vec3{ss.thickness, s.size[AxisY], ss.thickness}
		pos := s.position
		pos[d] += s.size[d] / 2
		pos[AxisZ] += ss.thickness
		s.divider.Position = pos
	}
	if s.door != nil {
		s.door.layout(s.position, s.size, ss.thickness)
	}
}
