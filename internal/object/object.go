package object

import (
	"fmt"
	"strconv"
	"strings"
)

type ObjectType string

const (
	INT_OBJ     = "int"
	FLOAT_OBJ   = "float"
	BOOL_OBJ    = "bool"
	STRING_OBJ  = "string"
	NULL_OBJ    = "null"
	GROUP_OBJ   = "group"
	POINTER_OBJ = "pointer"
)

var (
	NULL  = &Null{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

// Object is the closed set of runtime values. Operators live in ops.go and
// switch over the concrete types; there are no default method bodies.
type Object interface {
	Type() ObjectType
	Inspect() string
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INT_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }

type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string {
	s := strconv.FormatFloat(f.Value, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOL_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }

// Group is an ordered sequence with shared ownership: assigning a group to a
// second name aliases the same elements.
type Group struct {
	Elements []Object
}

func (g *Group) Type() ObjectType { return GROUP_OBJ }
func (g *Group) Inspect() string {
	var out strings.Builder
	g.inspect(&out, map[*Group]bool{})
	return out.String()
}

// inspect renders a group already being rendered further up as [...].
func (g *Group) inspect(out *strings.Builder, open map[*Group]bool) {
	if open[g] {
		out.WriteString("[...]")
		return
	}
	open[g] = true
	defer delete(open, g)

	out.WriteString("[")
	for i, el := range g.Elements {
		if i > 0 {
			out.WriteString(", ")
		}
		switch el := el.(type) {
		case *String:
			out.WriteString(`"` + el.Value + `"`)
		case *Group:
			el.inspect(out, open)
		default:
			out.WriteString(el.Inspect())
		}
	}
	out.WriteString("]")
}

// Pointer refers to a mutable slot. A nil Slot is the null pointer.
type Pointer struct {
	Slot Slot
}

func (p *Pointer) Type() ObjectType { return POINTER_OBJ }
func (p *Pointer) Inspect() string {
	if p.Slot == nil {
		return "0x0"
	}
	return fmt.Sprintf("%#x", p.Slot.Address())
}

func NativeBoolToBooleanObject(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

func NewGroup(elements ...Object) *Group {
	return &Group{Elements: elements}
}
