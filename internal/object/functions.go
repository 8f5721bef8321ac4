package object

import "rosky/internal/token"

// FunctionEntry is a user defined function. The body is kept as the token
// slice it was defined in plus the indices of its braces, so a definition
// outlives the input that produced it.
type FunctionEntry struct {
	Name   string
	Params []string
	Scope  int
	Tokens []token.Token
	Open   int
	Close  int
}

// FunctionTable holds user functions, most recent definition first.
type FunctionTable struct {
	entries []*FunctionEntry
}

func NewFunctionTable() *FunctionTable {
	return &FunctionTable{}
}

func (t *FunctionTable) Define(fn *FunctionEntry) {
	t.entries = append(t.entries, fn)
}

func (t *FunctionTable) Lookup(name string) (*FunctionEntry, bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Name == name {
			return t.entries[i], true
		}
	}
	return nil, false
}

func (t *FunctionTable) ReleaseAboveScope(scope int) int {
	kept := t.entries[:0]
	for _, fn := range t.entries {
		if fn.Scope < scope {
			kept = append(kept, fn)
		}
	}
	for i := len(kept); i < len(t.entries); i++ {
		t.entries[i] = nil
	}
	released := len(t.entries) - len(kept)
	t.entries = kept
	return released
}

func (t *FunctionTable) Len() int {
	return len(t.entries)
}
