package object

import "reflect"

// Frame identifies where new variables are declared: the block nesting depth
// and the user function call depth. Recursion 0 is the top-level frame.
type Frame struct {
	Scope     int
	Recursion int
}

type VariableEntry struct {
	Name      string
	Value     Object
	Scope     int
	Recursion int
}

// Handle addresses one cell of a VariableTable. The generation changes when
// the cell is released, so a stale handle never reads a later occupant.
type Handle struct {
	index int
	gen   uint64
}

type variableCell struct {
	entry VariableEntry
	gen   uint64
	live  bool
}

// VariableTable is an arena of variable entries. Cells are allocated once and
// recycled through a free list, so handles and slots stay valid while other
// entries come and go. Visibility is most-recent-first.
type VariableTable struct {
	cells []*variableCell
	free  []int
	order []int // live cell indices, oldest first
}

func NewVariableTable() *VariableTable {
	return &VariableTable{}
}

// Declare inserts a new entry in front of every existing one, shadowing any
// earlier declaration of the same name.
func (t *VariableTable) Declare(name string, value Object, frame Frame) Handle {
	var idx int
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = len(t.cells)
		t.cells = append(t.cells, &variableCell{})
	}
	cell := t.cells[idx]
	cell.entry = VariableEntry{Name: name, Value: value, Scope: frame.Scope, Recursion: frame.Recursion}
	cell.live = true
	t.order = append(t.order, idx)
	return Handle{index: idx, gen: cell.gen}
}

// Lookup finds the most recent visible entry for name. Entries are visible
// to their own recursion depth and, for depth 0, to every frame.
func (t *VariableTable) Lookup(name string, recursion int) (Handle, bool) {
	for i := len(t.order) - 1; i >= 0; i-- {
		cell := t.cells[t.order[i]]
		if cell.entry.Name != name {
			continue
		}
		if cell.entry.Recursion == recursion || cell.entry.Recursion == 0 {
			return Handle{index: t.order[i], gen: cell.gen}, true
		}
	}
	return Handle{}, false
}

// Resolve returns an addressable result for name, or an absent result when
// the name is not visible.
func (t *VariableTable) Resolve(name string, recursion int) Result {
	h, ok := t.Lookup(name, recursion)
	if !ok {
		return Result{}
	}
	slot := t.Slot(h)
	value, _ := slot.Load()
	return Result{Slot: slot, Value: value}
}

func (t *VariableTable) Slot(h Handle) *VariableSlot {
	return &VariableSlot{table: t, handle: h}
}

// ReleaseAboveScope deletes every entry whose scope is at least scope and
// reports how many went.
func (t *VariableTable) ReleaseAboveScope(scope int) int {
	kept := t.order[:0]
	released := 0
	for _, idx := range t.order {
		cell := t.cells[idx]
		if cell.entry.Scope >= scope {
			cell.live = false
			cell.gen++
			cell.entry = VariableEntry{}
			t.free = append(t.free, idx)
			released++
			continue
		}
		kept = append(kept, idx)
	}
	t.order = kept
	return released
}

// Len reports the number of live entries.
func (t *VariableTable) Len() int {
	return len(t.order)
}

func (t *VariableTable) cell(h Handle) (*variableCell, bool) {
	if h.index < 0 || h.index >= len(t.cells) {
		return nil, false
	}
	cell := t.cells[h.index]
	if !cell.live || cell.gen != h.gen {
		return nil, false
	}
	return cell, true
}

// VariableSlot is the slot of a variable entry. Two slots for the same
// entry compare equal.
type VariableSlot struct {
	table  *VariableTable
	handle Handle
}

func (s *VariableSlot) Load() (Object, bool) {
	cell, ok := s.table.cell(s.handle)
	if !ok {
		return nil, false
	}
	return cell.entry.Value, true
}

func (s *VariableSlot) Store(value Object) bool {
	cell, ok := s.table.cell(s.handle)
	if !ok {
		return false
	}
	cell.entry.Value = value
	return true
}

func (s *VariableSlot) Address() uintptr {
	return reflect.ValueOf(s.table.cells[s.handle.index]).Pointer()
}

// SameSlot reports whether two slots address the same storage location.
func SameSlot(a, b Slot) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *VariableSlot:
		b, ok := b.(*VariableSlot)
		return ok && a.table == b.table && a.handle == b.handle
	case ElementSlot:
		b, ok := b.(ElementSlot)
		return ok && a.Group == b.Group && a.Index == b.Index
	}
	return false
}
