package carpenter

// ValueInput is a numeric field mirrored from and into geometry, such as a
// width box in a side panel.
type ValueInput interface {
	Value() float64
	SetValue(v float64)
}

// FloatInput is a ValueInput held in memory. SetValue is the programmatic
// path and never calls OnChange; Submit is the user path and does.
type FloatInput struct {
	value float64

	// Limits, when set, clamps submitted values.
	Limits *Limits
	// OnChange receives every submitted value after clamping.
	OnChange func(v float64)
}

// Value returns the current value.
func (f *FloatInput) Value() float64 { return f.value }

// SetValue replaces the value without notifying OnChange.
func (f *FloatInput) SetValue(v float64) { f.value = v }

// Submit clamps v, stores it and notifies OnChange. It returns the stored
// value.
func (f *FloatInput) Submit(v float64) float64 {
	if f.Limits != nil && f.Limits.Correct() {
		v = f.Limits.Clamp(v)
	}
	f.value = v
	if f.OnChange != nil {
		f.OnChange(v)
	}
	return v
}

// BindSize makes submissions on input resize target along axis.
func BindSize(input *FloatInput, target Resizable, axis Axis) {
	input.OnChange = func(v float64) {
		target.SetSizeComponent(axis, v)
	}
}
