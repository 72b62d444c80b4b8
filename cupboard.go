package carpenter

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Cupboard composes the outer walls, the bays partitioning the interior
// width (each holding its shelves) and the doors across the front. All
// geometry lives in the space of Root.
type Cupboard struct {
	root    *Node
	size    mgl64.Vec3
	minSize mgl64.Vec3
	maxSize mgl64.Vec3

	walls *Walls
	bays  *Sections
	doors *Sections

	doorThickness float64
	doorsVisible  bool
	inputs        [3]*FloatInput

	// Drag state. At most one of active and wallDragging is set.
	active       *Section
	wallSide     WallSide
	wallDragging bool

	scene    *Scene
	bindings []*Binding
}

// NewCupboard validates cfg and builds the cupboard with its bays, shelves
// and doors.
func NewCupboard(cfg Config) (*Cupboard, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Cupboard{
		root:          NewContainer("cupboard"),
		size:          mgl64.Vec3(cfg.Size),
		minSize:       mgl64.Vec3(cfg.MinSize),
		maxSize:       mgl64.Vec3(cfg.MaxSize),
		doorThickness: cfg.DoorThickness,
		doorsVisible:  true,
	}
	c.walls = NewWalls(c.root, c.size, cfg.WallThickness)

	var err error
	c.bays, err = NewSections(SectionsConfig{
		Kind:        SectionBay,
		Direction:   AxisX,
		Size:        c.walls.Interior(),
		Origin:      c.walls.InteriorOrigin(),
		Thickness:   cfg.PartitionThickness,
		MinSize:     cfg.MinSectionSize,
		Amount:      cfg.Bays,
		Parent:      c.root,
		ShelfAmount: cfg.Shelves,
	})
	if err != nil {
		return nil, fmt.Errorf("new cupboard: bays: %w", err)
	}
	c.doors, err = NewSections(SectionsConfig{
		Kind:      SectionDoor,
		Direction: AxisX,
		Size:      c.doorSize(),
		Origin:    c.doorOrigin(),
		Thickness: cfg.DoorThickness,
		MinSize:   cfg.MinSectionSize,
		Amount:    cfg.Doors,
		Parent:    c.root,
		DoorSwing: cfg.DoorSwingSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("new cupboard: doors: %w", err)
	}

	for a := AxisX; a <= AxisZ; a++ {
		lim := axisLimits(c.minSize, c.maxSize, a)
		in := &FloatInput{Limits: &lim}
		in.SetValue(c.size[a])
		BindSize(in, c, a)
		c.inputs[a] = in
	}
	c.SetDoorsVisible(cfg.DoorsVisible)
	return c, nil
}

// Root returns the node every part of the cupboard hangs from.
func (c *Cupboard) Root() *Node { return c.root }

// Size returns the outer size.
func (c *Cupboard) Size() mgl64.Vec3 { return c.size }

// MinSize returns the configured lower size bound.
func (c *Cupboard) MinSize() mgl64.Vec3 { return c.minSize }

// MaxSize returns the configured upper size bound.
func (c *Cupboard) MaxSize() mgl64.Vec3 { return c.maxSize }

// Walls returns the outer shell.
func (c *Cupboard) Walls() *Walls { return c.walls }

// Bays returns the partition of the interior width.
func (c *Cupboard) Bays() *Sections { return c.bays }

// Doors returns the partition of the front.
func (c *Cupboard) Doors() *Sections { return c.doors }

// SizeInput returns the numeric input mirroring the size along axis.
// Submitting to it resizes the cupboard.
func (c *Cupboard) SizeInput(axis Axis) *FloatInput { return c.inputs[axis] }

// Active returns the section being dragged, or nil.
func (c *Cupboard) Active() *Section { return c.active }

// Dragging reports whether a divider or an outer wall is being dragged.
func (c *Cupboard) Dragging() bool { return c.active != nil || c.wallDragging }

// DraggedWall returns the wall being dragged.
func (c *Cupboard) DraggedWall() (WallSide, bool) { return c.wallSide, c.wallDragging }

func (c *Cupboard) doorSize() mgl64.Vec3 {
	return mgl64.Vec3{c.size.X(), c.size.Y(), c.doorThickness}
}

// doorOrigin puts the back door track flush with the front of the walls.
func (c *Cupboard) doorOrigin() mgl64.Vec3 {
	return mgl64.Vec3{0, 0, c.size.Z()/2 + c.doorThickness/2}
}

// contentFloor returns the smallest outer size along axis that keeps every
// bay, shelf and door at its minimum footprint.
func (c *Cupboard) contentFloor(axis Axis) float64 {
	t := c.walls.Thickness()
	switch axis {
	case AxisX:
		return math.Max(c.bays.MinExtent()+2*t, c.doors.MinExtent())
	case AxisY:
		floor := 2 * t
		for _, bay := range c.bays.All() {
			if bay.shelves != nil {
				floor = math.Max(floor, bay.shelves.MinExtent()+2*t)
			}
		}
		return floor
	default:
		return t
	}
}

// Limits returns the legal outer sizes along axis: the configured bounds
// raised to what the content needs.
func (c *Cupboard) Limits(axis Axis) Limits {
	lim := axisLimits(c.minSize, c.maxSize, axis)
	lim.Min = math.Max(lim.Min, c.contentFloor(axis))
	return lim
}

// SetSizeComponent implements Resizable. The size is clamped to Limits and
// forwarded to the walls, the bays and the doors. When no size is legal the
// request is ignored.
func (c *Cupboard) SetSizeComponent(axis Axis, size float64) {
	if !axis.Valid() {
		return
	}
	lim := c.Limits(axis)
	if !lim.Correct() {
		return
	}
	c.size[axis] = lim.Clamp(size)
	c.inputs[axis].SetValue(c.size[axis])
	c.layout()
}

func (c *Cupboard) layout() {
	for a := AxisX; a <= AxisZ; a++ {
		c.walls.size[a] = c.size[a]
	}
	c.walls.layout()
	c.bays.fit(c.walls.Interior(), c.walls.InteriorOrigin())
	c.doors.fit(c.doorSize(), c.doorOrigin())
}

// SetBayAmount rebuilds the bays. Any drag in progress ends.
func (c *Cupboard) SetBayAmount(n int) error {
	c.Release()
	if err := c.bays.SetAmount(n); err != nil {
		return fmt.Errorf("set bay amount: %w", err)
	}
	return nil
}

// SetShelfAmount rebuilds the shelves of every bay.
func (c *Cupboard) SetShelfAmount(n int) error {
	c.Release()
	if err := c.bays.SetShelfAmount(n); err != nil {
		return fmt.Errorf("set shelf amount: %w", err)
	}
	return nil
}

// SetDoorAmount rebuilds the doors. New doors start closed and follow the
// current visibility switch.
func (c *Cupboard) SetDoorAmount(n int) error {
	c.Release()
	if err := c.doors.SetAmount(n); err != nil {
		return fmt.Errorf("set door amount: %w", err)
	}
	c.SetDoorsVisible(c.doorsVisible)
	return nil
}

// SetDoorsVisible shows or hides every door at once. Door states are kept.
// Hidden doors are not hit by pointer rays.
func (c *Cupboard) SetDoorsVisible(visible bool) {
	c.doorsVisible = visible
	for _, s := range c.doors.All() {
		if s.door != nil {
			s.door.panel.Visible = visible
		}
		if s.divider != nil {
			s.divider.Visible = visible
		}
	}
}

// DoorsVisible reports the visibility switch.
func (c *Cupboard) DoorsVisible() bool { return c.doorsVisible }

// Step advances every door animation.
func (c *Cupboard) Step(dt float64) {
	for _, s := range c.doors.All() {
		if s.door != nil {
			s.door.Step(dt)
		}
	}
}

// Grab starts dragging the divider of s. It is rejected while anything else
// is being dragged.
func (c *Cupboard) Grab(s *Section) GrabResult {
	if c.Dragging() {
		return GrabRejected
	}
	res := s.owner.SetSectionResizing(s, true)
	if res == GrabAccepted {
		c.active = s
	}
	return res
}

// GrabWall starts dragging an outer wall. The back wall cannot be dragged.
func (c *Cupboard) GrabWall(side WallSide) bool {
	if c.Dragging() || side == WallBack || side >= numWallSides {
		return false
	}
	c.wallSide = side
	c.wallDragging = true
	return true
}

// DragTo moves whatever is being dragged towards p, a point in Root's
// space. Walls move symmetrically: the cupboard stays centered and the
// dragged wall follows the pointer.
func (c *Cupboard) DragTo(p mgl64.Vec3) DragResult {
	switch {
	case c.active != nil:
		s := c.active
		return s.owner.Drag(s, p[s.owner.direction])
	case c.wallDragging:
		axis := c.wallSide.axis()
		c.SetSizeComponent(axis, 2*math.Abs(p[axis]))
		return DragApplied
	default:
		return DragNotResizing
	}
}

// Release ends any drag in progress.
func (c *Cupboard) Release() {
	if c.active != nil {
		c.active.owner.SetSectionResizing(c.active, false)
		c.active = nil
	}
	c.wallDragging = false
}
