package object

import "reflect"

// Slot is a mutable storage location. Load and Store report false once the
// location no longer exists (a released variable).
type Slot interface {
	Load() (Object, bool)
	Store(Object) bool
	Address() uintptr
}

// Result pairs an optional slot with the value read from it. A non-nil Slot
// marks an l-value.
type Result struct {
	Slot  Slot
	Value Object
}

func (r Result) Absent() bool {
	return r.Slot == nil && r.Value == nil
}

func Temporary(value Object) Result {
	return Result{Value: value}
}

// ElementSlot addresses one element of a group in place.
type ElementSlot struct {
	Group *Group
	Index int
}

func (s ElementSlot) Load() (Object, bool) {
	if s.Index < 0 || s.Index >= len(s.Group.Elements) {
		return nil, false
	}
	return s.Group.Elements[s.Index], true
}

func (s ElementSlot) Store(value Object) bool {
	if s.Index < 0 || s.Index >= len(s.Group.Elements) {
		return false
	}
	s.Group.Elements[s.Index] = value
	return true
}

func (s ElementSlot) Address() uintptr {
	return reflect.ValueOf(s.Group).Pointer() + uintptr(s.Index)*8
}
