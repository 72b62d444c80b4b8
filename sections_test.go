package carpenter

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	testThickness = 5.0
	testMinSize   = 20.0
	testFloor     = testThickness + testMinSize
	tol           = 1e-9
)

func newShelfSections(t *testing.T, extent float64, amount int, parent *Node) *Sections {
	t.Helper()
	ss, err := NewSections(SectionsConfig{
		Kind:      SectionShelf,
		Direction: AxisX,
		Size:      mgl64.Vec3{extent, 100, 50},
		Thickness: testThickness,
		MinSize:   testMinSize,
		Amount:    amount,
		Parent:    parent,
	})
	if err != nil {
		t.Fatalf("NewSections: %v", err)
	}
	return ss
}

// checkInvariants verifies the partition sum, the minimum footprint and
// that the sections tile the extent without gaps.
func checkInvariants(t *testing.T, ss *Sections) {
	t.Helper()
	if sum := ss.RelativeSum(); !approx(sum, 1, 1e-6) {
		t.Errorf("relative sum = %v, want 1", sum)
	}
	extent := ss.Size()[ss.Direction()]
	all := ss.All()
	if !approx(all[0].LeadingEdge(), -extent/2, 1e-6) {
		t.Errorf("first edge = %v, want %v", all[0].LeadingEdge(), -extent/2)
	}
	if last := all[len(all)-1]; !approx(last.TrailingEdge(), extent/2, 1e-6) {
		t.Errorf("last edge = %v, want %v", last.TrailingEdge(), extent/2)
	}
	for i, s := range all {
		if s.Size()[ss.Direction()] < testFloor-1e-6 {
			t.Errorf("section %d size %v below floor", i, s.Size()[ss.Direction()])
		}
		if i > 0 && !approx(all[i-1].TrailingEdge(), s.LeadingEdge(), 1e-6) {
			t.Errorf("gap between sections %d and %d", i-1, i)
		}
	}
}

func TestNewSectionsEqualSplit(t *testing.T) {
	ss := newShelfSections(t, 300, 3, nil)
	if ss.Len() != 3 {
		t.Fatalf("Len = %d, want 3", ss.Len())
	}
	wantCenters := []float64{-100, 0, 100}
	for i, s := range ss.All() {
		if !approx(s.RelativeSize(), 1.0/3, tol) {
			t.Errorf("section %d relative = %v", i, s.RelativeSize())
		}
		if !approx(s.Size().X(), 100, tol) {
			t.Errorf("section %d size = %v", i, s.Size().X())
		}
		if !approx(s.Position().X(), wantCenters[i], tol) {
			t.Errorf("section %d center = %v, want %v", i, s.Position().X(), wantCenters[i])
		}
		if s.Size().Y() != 100 || s.Size().Z() != 50 {
			t.Errorf("section %d cross size = %v", i, s.Size())
		}
		if s.Index() != i || s.Owner() != ss || s.Kind() != SectionShelf {
			t.Errorf("section %d bookkeeping wrong", i)
		}
	}
	if ss.At(2).Divider() != nil {
		t.Error("last section should have no divider")
	}
	if ss.At(0).Divider() == nil || ss.At(1).Divider() == nil {
		t.Error("inner sections should have dividers")
	}
	checkInvariants(t, ss)
}

func TestNewSectionsValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  SectionsConfig
	}{
		{"bad axis", SectionsConfig{Direction: Axis(5), Size: mgl64.Vec3{100, 100, 100}, Thickness: 1, MinSize: 1}},
		{"negative thickness", SectionsConfig{Size: mgl64.Vec3{100, 100, 100}, Thickness: -1, MinSize: 1}},
		{"negative min size", SectionsConfig{Size: mgl64.Vec3{100, 100, 100}, Thickness: 1, MinSize: -1}},
		{"zero footprint", SectionsConfig{Size: mgl64.Vec3{100, 100, 100}}},
		{"too small", SectionsConfig{Size: mgl64.Vec3{10, 100, 100}, Thickness: 5, MinSize: 20, Amount: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSections(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDividerNodes(t *testing.T) {
	parent := NewContainer("parent")
	ss := newShelfSections(t, 300, 3, parent)
	if parent.NumChildren() != 2 {
		t.Fatalf("parent has %d children, want 2 dividers", parent.NumChildren())
	}
	div := ss.At(0).Divider()
	if div.UserData != ss.At(0) {
		t.Error("divider should point back at its section")
	}
	if !approx(div.Size.X(), testThickness, tol) || div.Size.Y() != 100 {
		t.Errorf("divider size = %v", div.Size)
	}
	// Flush with the trailing edge of section 0 at x = -50.
	if !approx(div.Position.X(), -50-testThickness/2, tol) {
		t.Errorf("divider x = %v, want %v", div.Position.X(), -50-testThickness/2)
	}
}

func TestSetAmountRebuild(t *testing.T) {
	parent := NewContainer("parent")
	ss := newShelfSections(t, 200, 1, parent)

	if err := ss.SetAmount(4); err != nil {
		t.Fatal(err)
	}
	old := ss.At(0)
	oldDivider := old.Divider()
	if err := ss.SetAmount(2); err != nil {
		t.Fatal(err)
	}

	if ss.Len() != 2 {
		t.Fatalf("Len = %d, want 2", ss.Len())
	}
	for i, s := range ss.All() {
		if s.RelativeSize() != 0.5 || !approx(s.Size().X(), 100, tol) {
			t.Errorf("section %d: relative %v size %v", i, s.RelativeSize(), s.Size().X())
		}
	}
	if ss.At(1).Divider() != nil {
		t.Error("last divider should be removed")
	}
	if ss.At(0) == old {
		t.Error("sections should be rebuilt, not reused")
	}
	if !oldDivider.IsDisposed() {
		t.Error("old dividers should be disposed")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("parent has %d children, want 1", parent.NumChildren())
	}
	checkInvariants(t, ss)
}

func TestSetAmountErrors(t *testing.T) {
	ss := newShelfSections(t, 300, 3, nil)
	before := ss.At(0)

	if err := ss.SetAmount(0); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("SetAmount(0) = %v, want ErrInvalidAmount", err)
	}
	// 300/13 < 25
	if err := ss.SetAmount(13); !errors.Is(err, ErrSectionsTooSmall) {
		t.Errorf("SetAmount(13) = %v, want ErrSectionsTooSmall", err)
	}
	if ss.Len() != 3 || ss.At(0) != before {
		t.Error("failed SetAmount should keep the old sections")
	}
	// 300/12 == 25 exactly fits.
	if err := ss.SetAmount(12); err != nil {
		t.Errorf("SetAmount(12) = %v", err)
	}
}

func TestDragScenario(t *testing.T) {
	ss := newShelfSections(t, 300, 3, nil)
	s0, s1, s2 := ss.At(0), ss.At(1), ss.At(2)

	if got := ss.SetSectionResizing(s0, true); got != GrabAccepted {
		t.Fatalf("grab = %s", got)
	}

	// Widen the first section to 150, then bring it back to 100.
	if got := ss.Drag(s0, 0); got != DragApplied {
		t.Fatalf("drag = %s", got)
	}
	if !approx(s0.RelativeSize(), 0.5, tol) || !approx(s1.RelativeSize(), 1.0/6, tol) {
		t.Errorf("after widening: %v %v", s0.RelativeSize(), s1.RelativeSize())
	}
	checkInvariants(t, ss)

	ss.Drag(s0, -50)
	if !approx(s0.RelativeSize(), 100.0/300, tol) {
		t.Errorf("relative[0] = %v, want 1/3", s0.RelativeSize())
	}
	if !approx(s1.RelativeSize(), 1.0/3, tol) {
		t.Errorf("relative[1] = %v, want 1/3", s1.RelativeSize())
	}
	if !approx(s2.RelativeSize(), 1.0/3, tol) {
		t.Errorf("relative[2] = %v, want unchanged 1/3", s2.RelativeSize())
	}
	checkInvariants(t, ss)
}

func TestDragClamps(t *testing.T) {
	tests := []struct {
		name         string
		coord        float64
		size0, size1 float64
	}{
		{"far right", 1000, 175, 25},
		{"far left", -1000, 25, 175},
		{"exact max", 25, 175, 25},
		{"inside", -70, 80, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ss := newShelfSections(t, 300, 3, nil)
			s0, s1, s2 := ss.At(0), ss.At(1), ss.At(2)
			ss.SetSectionResizing(s0, true)
			ss.Drag(s0, tt.coord)
			if !approx(s0.Size().X(), tt.size0, 1e-6) || !approx(s1.Size().X(), tt.size1, 1e-6) {
				t.Errorf("sizes = %v, %v; want %v, %v", s0.Size().X(), s1.Size().X(), tt.size0, tt.size1)
			}
			if !approx(s2.Size().X(), 100, 1e-6) {
				t.Errorf("third section changed to %v", s2.Size().X())
			}
			checkInvariants(t, ss)
		})
	}
}

func TestDragMiddleDivider(t *testing.T) {
	ss := newShelfSections(t, 300, 3, nil)
	s0, s1, s2 := ss.At(0), ss.At(1), ss.At(2)
	ss.SetSectionResizing(s1, true)

	// Bounds: previous divider at -50, far edge at 150, pulled in by 25.
	ss.Drag(s1, -1000)
	if !approx(s1.Size().X(), testFloor, 1e-6) || !approx(s2.Size().X(), 175, 1e-6) {
		t.Errorf("sizes = %v, %v", s1.Size().X(), s2.Size().X())
	}
	if !approx(s0.Size().X(), 100, 1e-6) {
		t.Error("previous section must not move")
	}
	checkInvariants(t, ss)
}

func TestDragRelativeToOrigin(t *testing.T) {
	ss := newShelfSections(t, 300, 3, nil)
	ss.SetOrigin(mgl64.Vec3{1000, 0, 0})
	s0 := ss.At(0)
	if !approx(s0.Position().X(), 900, tol) {
		t.Fatalf("center = %v, want 900", s0.Position().X())
	}
	ss.SetSectionResizing(s0, true)
	ss.Drag(s0, 1000) // the collection's center
	if !approx(s0.Size().X(), 150, 1e-6) {
		t.Errorf("size = %v, want 150", s0.Size().X())
	}
}

func TestDragInfeasible(t *testing.T) {
	ss := newShelfSections(t, 300, 3, nil)
	s0, s1, s2 := ss.At(0), ss.At(1), ss.At(2)
	// Force both neighbors below the combined floor.
	ss.SetRelativeSectionSizeComponent(s0, 0.05, false)
	ss.SetRelativeSectionSizeComponent(s1, 0.05, false)
	ss.SetRelativeSectionSizeComponent(s2, 0.9, false)

	ss.SetSectionResizing(s0, true)
	if got := ss.Drag(s0, 0); got != DragInfeasible {
		t.Errorf("drag = %s, want infeasible", got)
	}
	if s0.RelativeSize() != 0.05 || s1.RelativeSize() != 0.05 {
		t.Error("infeasible drag must keep the geometry")
	}
}

func TestDragPreconditions(t *testing.T) {
	ss := newShelfSections(t, 300, 3, nil)
	s0, s2 := ss.At(0), ss.At(2)

	if got := ss.Drag(s0, 0); got != DragNotResizing {
		t.Errorf("drag without grab = %s", got)
	}
	if got := ss.SetSectionResizing(s2, true); got != GrabRejected {
		t.Errorf("grab of last section = %s, want rejected", got)
	}
	s2.resizing = true
	if got := ss.Drag(s2, 0); got != DragNoDivider {
		t.Errorf("drag of last section = %s, want no divider", got)
	}
	other := newShelfSections(t, 300, 3, nil)
	if got := other.SetSectionResizing(s0, true); got != GrabRejected {
		t.Errorf("foreign section grab = %s", got)
	}
}

func TestResizingLatch(t *testing.T) {
	ss := newShelfSections(t, 300, 3, nil)
	s0, s1 := ss.At(0), ss.At(1)

	if ss.SetSectionResizing(s0, true) != GrabAccepted {
		t.Fatal("first grab should be accepted")
	}
	if ss.SetSectionResizing(s0, true) != GrabAccepted {
		t.Error("re-grabbing the same section should stay accepted")
	}
	if ss.SetSectionResizing(s1, true) != GrabRejected {
		t.Error("second section should be rejected while the latch is held")
	}
	if !ss.OneResizing() || ss.Resizing() != s0 {
		t.Error("latch should name s0")
	}
	if ss.SetSectionResizing(s0, false) != GrabReleased {
		t.Error("release should report released")
	}
	if ss.OneResizing() {
		t.Error("latch should be free")
	}
	if ss.SetSectionResizing(s1, true) != GrabAccepted {
		t.Error("s1 should be accepted after release")
	}
	ss.ReleaseResizing()
	if ss.OneResizing() || s1.Resizing() {
		t.Error("ReleaseResizing should clear everything")
	}
}

func TestSetAmountReleasesLatch(t *testing.T) {
	ss := newShelfSections(t, 300, 3, nil)
	ss.SetSectionResizing(ss.At(0), true)
	if err := ss.SetAmount(2); err != nil {
		t.Fatal(err)
	}
	if ss.OneResizing() {
		t.Error("rebuild should release the latch")
	}
}

func TestBoundInputs(t *testing.T) {
	ss := newShelfSections(t, 300, 3, nil)
	s0, s1 := ss.At(0), ss.At(1)
	in0, in1 := &FloatInput{}, &FloatInput{}
	var notified int
	in0.OnChange = func(float64) { notified++ }
	s0.Bind(in0)
	s1.Bind(in1)

	if in0.Value() != 100 {
		t.Errorf("bound value = %v, want 100", in0.Value())
	}
	ss.SetSectionResizing(s0, true)
	ss.Drag(s0, 0)
	if !approx(in0.Value(), 150, 1e-6) || !approx(in1.Value(), 50, 1e-6) {
		t.Errorf("inputs = %v, %v; want 150, 50", in0.Value(), in1.Value())
	}
	if notified != 0 {
		t.Error("drag updates must not trigger the input's change callback")
	}
}

func TestSectionSetSizeComponent(t *testing.T) {
	ss := newShelfSections(t, 300, 3, nil)
	s0, s1, s2 := ss.At(0), ss.At(1), ss.At(2)

	s0.SetSizeComponent(AxisX, 120)
	if !approx(s0.Size().X(), 120, 1e-6) || !approx(s1.Size().X(), 80, 1e-6) {
		t.Errorf("sizes = %v, %v", s0.Size().X(), s1.Size().X())
	}
	s0.SetSizeComponent(AxisX, 500)
	if !approx(s0.Size().X(), 175, 1e-6) {
		t.Errorf("clamped size = %v, want 175", s0.Size().X())
	}
	s0.SetSizeComponent(AxisY, 10)
	if s0.Size().Y() != 100 {
		t.Error("cross axis should be ignored")
	}
	s2.SetSizeComponent(AxisX, 10)
	if !approx(s2.Size().X(), 100, 1e-6) {
		t.Error("last section has no sibling to absorb a change")
	}
	checkInvariants(t, ss)
}

func TestSectionsSetSizeComponentScales(t *testing.T) {
	ss := newShelfSections(t, 300, 3, nil)
	ss.SetSectionResizing(ss.At(0), true)
	ss.Drag(ss.At(0), 0) // 150, 50, 100
	ss.ReleaseResizing()

	ss.SetSizeComponent(AxisX, 600)
	want := []float64{300, 100, 200}
	for i, s := range ss.All() {
		if !approx(s.Size().X(), want[i], 1e-6) {
			t.Errorf("section %d size = %v, want %v", i, s.Size().X(), want[i])
		}
	}
	ss.SetSizeComponent(AxisY, 40)
	if ss.At(1).Size().Y() != 40 {
		t.Error("cross axis should follow the collection size")
	}
	checkInvariants(t, ss)
}

func TestSectionsSetSizeComponentClampsToMinExtent(t *testing.T) {
	ss := newShelfSections(t, 300, 3, nil)
	ss.SetSectionResizing(ss.At(0), true)
	ss.Drag(ss.At(0), 0) // relative 1/2, 1/6, 1/3
	ss.ReleaseResizing()

	ss.SetSizeComponent(AxisX, 10)
	if got := ss.Size().X(); !approx(got, 150, 1e-6) {
		t.Errorf("extent = %v, want MinExtent 150", got)
	}
	if !ss.Valid() {
		t.Error("partition should stay valid after shrinking")
	}
	checkInvariants(t, ss)

	ss.SetSizeComponent(AxisY, 10)
	if ss.Size().Y() != 10 {
		t.Error("cross axis is not clamped")
	}
}

func TestMinExtent(t *testing.T) {
	ss := newShelfSections(t, 300, 3, nil)
	if got := ss.MinExtent(); !approx(got, 75, tol) {
		t.Errorf("MinExtent = %v, want 75", got)
	}
	ss.SetSectionResizing(ss.At(0), true)
	ss.Drag(ss.At(0), 0) // relative 1/2, 1/6, 1/3
	if got := ss.MinExtent(); !approx(got, 150, 1e-6) {
		t.Errorf("MinExtent = %v, want 150", got)
	}
}

func TestSectionNeighbors(t *testing.T) {
	ss := newShelfSections(t, 300, 3, nil)
	if ss.At(0).Previous() != nil || ss.At(2).Next() != nil {
		t.Error("ends should have no outer neighbor")
	}
	if ss.At(1).Previous() != ss.At(0) || ss.At(1).Next() != ss.At(2) {
		t.Error("middle neighbors wrong")
	}
}

// --- Bays and shelves ---

func newBays(t *testing.T, parent *Node) *Sections {
	t.Helper()
	bays, err := NewSections(SectionsConfig{
		Kind:        SectionBay,
		Direction:   AxisX,
		Size:        mgl64.Vec3{300, 200, 50},
		Thickness:   testThickness,
		MinSize:     testMinSize,
		Amount:      2,
		Parent:      parent,
		ShelfAmount: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	return bays
}

func TestBayShelves(t *testing.T) {
	parent := NewContainer("parent")
	bays := newBays(t, parent)

	// One bay divider plus two shelf dividers per bay.
	if parent.NumChildren() != 5 {
		t.Errorf("parent has %d children, want 5", parent.NumChildren())
	}
	b0, b1 := bays.At(0), bays.At(1)
	for i, b := range []*Section{b0, b1} {
		sh := b.Shelves()
		if sh == nil || sh.Len() != 3 || sh.Direction() != AxisY {
			t.Fatalf("bay %d shelves = %+v", i, sh)
		}
		if !approx(sh.At(0).Size().Y(), 200.0/3, 1e-6) {
			t.Errorf("bay %d shelf height = %v", i, sh.At(0).Size().Y())
		}
	}
	// The first bay loses its divider's thickness to the shelves.
	if got := b0.Shelves().At(0).Size().X(); !approx(got, 145, 1e-6) {
		t.Errorf("bay 0 shelf width = %v, want 145", got)
	}
	if got := b1.Shelves().At(0).Size().X(); !approx(got, 150, 1e-6) {
		t.Errorf("bay 1 shelf width = %v, want 150", got)
	}
	if got := b1.Shelves().Origin().X(); !approx(got, 75, 1e-6) {
		t.Errorf("bay 1 shelves center = %v, want 75", got)
	}
}

func TestBayDragRefitsShelves(t *testing.T) {
	bays := newBays(t, nil)
	b0 := bays.At(0)
	bays.SetSectionResizing(b0, true)
	bays.Drag(b0, 50)

	if !approx(b0.Size().X(), 200, 1e-6) {
		t.Fatalf("bay width = %v, want 200", b0.Size().X())
	}
	if got := b0.Shelves().At(1).Size().X(); !approx(got, 195, 1e-6) {
		t.Errorf("shelf width = %v, want 195", got)
	}
	if got := bays.At(1).Shelves().At(0).Size().X(); !approx(got, 100, 1e-6) {
		t.Errorf("neighbor shelf width = %v, want 100", got)
	}
}

func TestSetShelfAmount(t *testing.T) {
	parent := NewContainer("parent")
	bays := newBays(t, parent)

	if err := bays.SetShelfAmount(0); err != nil {
		t.Fatal(err)
	}
	if bays.At(0).Shelves() != nil || parent.NumChildren() != 1 {
		t.Errorf("shelves should be gone, parent has %d children", parent.NumChildren())
	}
	if err := bays.SetShelfAmount(2); err != nil {
		t.Fatal(err)
	}
	if bays.At(1).Shelves().Len() != 2 || bays.ShelfAmount() != 2 {
		t.Error("two shelves expected")
	}
	if err := bays.SetShelfAmount(-1); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative amount = %v", err)
	}
	if err := bays.SetShelfAmount(9); !errors.Is(err, ErrSectionsTooSmall) {
		t.Errorf("too many shelves = %v", err)
	}
	shelves := newShelfSections(t, 300, 3, nil)
	if err := shelves.SetShelfAmount(1); err == nil {
		t.Error("shelves cannot hold shelves")
	}
}

// --- Doors ---

func newDoors(t *testing.T, amount int) *Sections {
	t.Helper()
	doors, err := NewSections(SectionsConfig{
		Kind:      SectionDoor,
		Direction: AxisX,
		Size:      mgl64.Vec3{300, 200, 10},
		Thickness: 10,
		MinSize:   testMinSize,
		Amount:    amount,
	})
	if err != nil {
		t.Fatal(err)
	}
	return doors
}

func TestDoorSectionsAlternate(t *testing.T) {
	doors := newDoors(t, 3)
	wantOpen := []OpenType{OpenLeft, OpenRight, OpenLeft}
	wantForward := []bool{true, false, true}
	for i, s := range doors.All() {
		d := s.Door()
		if d == nil {
			t.Fatalf("section %d has no door", i)
		}
		if d.OpenType() != wantOpen[i] || d.Forward() != wantForward[i] {
			t.Errorf("door %d: %s forward=%v", i, d.OpenType(), d.Forward())
		}
		if d.Section() != s || d.State() != DoorClosed {
			t.Errorf("door %d bookkeeping wrong", i)
		}
		if s.Size().Z() != 10 {
			t.Errorf("door %d depth = %v, want the thickness", i, s.Size().Z())
		}
	}

	// The forward/back count restarts with every rebuild.
	if err := doors.SetAmount(2); err != nil {
		t.Fatal(err)
	}
	if !doors.At(0).Door().Forward() || doors.At(1).Door().Forward() {
		t.Error("rebuild should restart the alternation")
	}
}

func TestDoorPanelLayout(t *testing.T) {
	doors := newDoors(t, 2)
	d0, d1 := doors.At(0).Door(), doors.At(1).Door()

	if !d0.Panel().Position.ApproxEqualThreshold(mgl64.Vec3{-75, 0, 10}, 1e-9) {
		t.Errorf("forward door at %v", d0.Panel().Position)
	}
	if !d1.Panel().Position.ApproxEqualThreshold(mgl64.Vec3{75, 0, 0}, 1e-9) {
		t.Errorf("back door at %v", d1.Panel().Position)
	}
	if d0.Panel().Size != (mgl64.Vec3{150, 200, 10}) {
		t.Errorf("panel size = %v", d0.Panel().Size)
	}
}
