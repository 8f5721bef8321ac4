package object

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	ErrIncompatible = errors.New("incompatible operand")
	ErrOutOfBounds  = errors.New("index out of bounds")
)

// maxRepeatLen bounds the length of a repeated string or group.
const maxRepeatLen = 1 << 28

type binaryFn func(l, r Object) (Object, bool)

var binaryOps = map[string]binaryFn{
	"+":   Add,
	"-":   Sub,
	"*":   Mul,
	"/":   Div,
	"//":  FloorDiv,
	"%":   Mod,
	"&":   Concat,
	"==":  Equal,
	"!=":  NotEqual,
	"<":   Less,
	">":   Greater,
	"<=":  LessEqual,
	">=":  GreaterEqual,
	"and": And,
	"or":  Or,
	"xor": Xor,
}

// Binary applies a binary operator. The second result is false when the
// operator is unknown or does not support the operand types.
func Binary(op string, l, r Object) (Object, bool) {
	fn, ok := binaryOps[op]
	if !ok {
		return nil, false
	}
	return fn(l, r)
}

// Unary applies a prefix operator that works on values alone.
func Unary(op string, r Object) (Object, bool) {
	switch op {
	case "!":
		return Not(r)
	case "neg":
		return Negate(r)
	}
	return nil, false
}

// DividesByZero reports an integer division, floor division or modulo by an
// integer zero. Float operands divide to infinity instead.
func DividesByZero(op string, l, r Object) bool {
	switch op {
	case "/", "//", "%":
	default:
		return false
	}
	_, lok := l.(*Integer)
	ri, rok := r.(*Integer)
	return lok && rok && ri.Value == 0
}

func numbers(l, r Object) (float64, float64, bool) {
	lf, lok := numeric(l)
	rf, rok := numeric(r)
	return lf, rf, lok && rok
}

func numeric(o Object) (float64, bool) {
	switch o := o.(type) {
	case *Integer:
		return float64(o.Value), true
	case *Float:
		return o.Value, true
	}
	return 0, false
}

func ints(l, r Object) (int64, int64, bool) {
	li, lok := l.(*Integer)
	ri, rok := r.(*Integer)
	if !lok || !rok {
		return 0, 0, false
	}
	return li.Value, ri.Value, true
}

func Add(l, r Object) (Object, bool) {
	if a, b, ok := ints(l, r); ok {
		return &Integer{Value: a + b}, true
	}
	if a, b, ok := numbers(l, r); ok {
		return &Float{Value: a + b}, true
	}
	switch l := l.(type) {
	case *String:
		if r, ok := r.(*String); ok {
			return &String{Value: l.Value + r.Value}, true
		}
	case *Group:
		if r, ok := r.(*Group); ok {
			elements := make([]Object, 0, len(l.Elements)+len(r.Elements))
			elements = append(elements, l.Elements...)
			elements = append(elements, r.Elements...)
			return &Group{Elements: elements}, true
		}
	}
	return nil, false
}

func Sub(l, r Object) (Object, bool) {
	if a, b, ok := ints(l, r); ok {
		return &Integer{Value: a - b}, true
	}
	if a, b, ok := numbers(l, r); ok {
		return &Float{Value: a - b}, true
	}
	return nil, false
}

func Mul(l, r Object) (Object, bool) {
	if a, b, ok := ints(l, r); ok {
		return &Integer{Value: a * b}, true
	}
	if a, b, ok := numbers(l, r); ok {
		return &Float{Value: a * b}, true
	}
	count, ok := r.(*Integer)
	if !ok {
		return nil, false
	}
	n := int(max(count.Value, 0))
	switch l := l.(type) {
	case *String:
		if !repeatFits(len(l.Value), n) {
			return nil, false
		}
		return &String{Value: strings.Repeat(l.Value, n)}, true
	case *Group:
		if !repeatFits(len(l.Elements), n) {
			return nil, false
		}
		elements := make([]Object, 0, len(l.Elements)*n)
		for range n {
			elements = append(elements, l.Elements...)
		}
		return &Group{Elements: elements}, true
	}
	return nil, false
}

// repeatFits reports whether size*n elements can be allocated.
func repeatFits(size, n int) bool {
	return size == 0 || n <= maxRepeatLen/size
}

// Div truncates for two integers; the caller rejects an integer zero divisor.
func Div(l, r Object) (Object, bool) {
	if a, b, ok := ints(l, r); ok {
		return &Integer{Value: a / b}, true
	}
	if a, b, ok := numbers(l, r); ok {
		return &Float{Value: a / b}, true
	}
	return nil, false
}

func FloorDiv(l, r Object) (Object, bool) {
	if a, b, ok := ints(l, r); ok {
		q := a / b
		if a%b != 0 && (a < 0) != (b < 0) {
			q--
		}
		return &Integer{Value: q}, true
	}
	if a, b, ok := numbers(l, r); ok {
		return &Float{Value: math.Floor(a / b)}, true
	}
	return nil, false
}

func Mod(l, r Object) (Object, bool) {
	if a, b, ok := ints(l, r); ok {
		return &Integer{Value: a % b}, true
	}
	if a, b, ok := numbers(l, r); ok {
		return &Float{Value: math.Mod(a, b)}, true
	}
	return nil, false
}

// Concat is defined for every pair of values.
func Concat(l, r Object) (Object, bool) {
	return &String{Value: ToString(l) + ToString(r)}, true
}

func Equal(l, r Object) (Object, bool) {
	eq, ok := equal(l, r, nil)
	if !ok {
		return nil, false
	}
	return NativeBoolToBooleanObject(eq), true
}

func NotEqual(l, r Object) (Object, bool) {
	eq, ok := equal(l, r, nil)
	if !ok {
		return nil, false
	}
	return NativeBoolToBooleanObject(!eq), true
}

type groupPair struct{ l, r *Group }

// equal compares structurally. Pairs of groups already under comparison
// count as equal so cyclic groups terminate.
func equal(l, r Object, open map[groupPair]bool) (bool, bool) {
	_, lnull := l.(*Null)
	_, rnull := r.(*Null)
	if lnull || rnull {
		return lnull && rnull, true
	}
	if a, b, ok := ints(l, r); ok {
		return a == b, true
	}
	if a, b, ok := numbers(l, r); ok {
		return a == b, true
	}
	switch l := l.(type) {
	case *Boolean:
		if r, ok := r.(*Boolean); ok {
			return l.Value == r.Value, true
		}
	case *String:
		if r, ok := r.(*String); ok {
			return l.Value == r.Value, true
		}
	case *Group:
		r, ok := r.(*Group)
		if !ok {
			return false, false
		}
		if len(l.Elements) != len(r.Elements) {
			return false, true
		}
		pair := groupPair{l, r}
		if open[pair] {
			return true, true
		}
		if open == nil {
			open = map[groupPair]bool{}
		}
		open[pair] = true
		defer delete(open, pair)
		for i := range l.Elements {
			if eq, ok := equal(l.Elements[i], r.Elements[i], open); !ok || !eq {
				return false, true
			}
		}
		return true, true
	case *Pointer:
		if r, ok := r.(*Pointer); ok {
			return SameSlot(l.Slot, r.Slot), true
		}
	}
	return false, false
}

func ordered(l, r Object, cmp func(int) bool) (Object, bool) {
	if a, b, ok := ints(l, r); ok {
		var c int
		switch {
		case a < b:
			c = -1
		case a > b:
			c = 1
		}
		return NativeBoolToBooleanObject(cmp(c)), true
	}
	a, b, ok := numbers(l, r)
	if !ok {
		return nil, false
	}
	var c int
	switch {
	case a < b:
		c = -1
	case a > b:
		c = 1
	case a != b: // NaN
		return FALSE, true
	}
	return NativeBoolToBooleanObject(cmp(c)), true
}

func Less(l, r Object) (Object, bool) {
	return ordered(l, r, func(c int) bool { return c < 0 })
}

func Greater(l, r Object) (Object, bool) {
	return ordered(l, r, func(c int) bool { return c > 0 })
}

func LessEqual(l, r Object) (Object, bool) {
	return ordered(l, r, func(c int) bool { return c <= 0 })
}

func GreaterEqual(l, r Object) (Object, bool) {
	return ordered(l, r, func(c int) bool { return c >= 0 })
}

func bools(l, r Object) (bool, bool, bool) {
	lb, lok := l.(*Boolean)
	rb, rok := r.(*Boolean)
	if !lok || !rok {
		return false, false, false
	}
	return lb.Value, rb.Value, true
}

func And(l, r Object) (Object, bool) {
	a, b, ok := bools(l, r)
	if !ok {
		return nil, false
	}
	return NativeBoolToBooleanObject(a && b), true
}

func Or(l, r Object) (Object, bool) {
	a, b, ok := bools(l, r)
	if !ok {
		return nil, false
	}
	return NativeBoolToBooleanObject(a || b), true
}

func Xor(l, r Object) (Object, bool) {
	a, b, ok := bools(l, r)
	if !ok {
		return nil, false
	}
	return NativeBoolToBooleanObject(a != b), true
}

func Not(r Object) (Object, bool) {
	b, ok := r.(*Boolean)
	if !ok {
		return nil, false
	}
	return NativeBoolToBooleanObject(!b.Value), true
}

func Negate(r Object) (Object, bool) {
	switch r := r.(type) {
	case *Integer:
		return &Integer{Value: -r.Value}, true
	case *Float:
		return &Float{Value: -r.Value}, true
	}
	return nil, false
}

// Casts are total: a value with no meaningful conversion yields the zero
// value of the target type.

func ToInt(o Object) int64 {
	switch o := o.(type) {
	case *Integer:
		return o.Value
	case *Float:
		if math.IsNaN(o.Value) || math.IsInf(o.Value, 0) {
			return 0
		}
		return int64(o.Value)
	case *Boolean:
		if o.Value {
			return 1
		}
	case *String:
		s := strings.TrimSpace(o.Value)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int64(f)
		}
	}
	return 0
}

func ToFloat(o Object) float64 {
	switch o := o.(type) {
	case *Integer:
		return float64(o.Value)
	case *Float:
		return o.Value
	case *Boolean:
		if o.Value {
			return 1
		}
	case *String:
		if f, err := strconv.ParseFloat(strings.TrimSpace(o.Value), 64); err == nil {
			return f
		}
	}
	return 0
}

func ToString(o Object) string {
	return o.Inspect()
}

func ToBool(o Object) bool {
	switch o := o.(type) {
	case *Integer:
		return o.Value != 0
	case *Float:
		return o.Value != 0
	case *Boolean:
		return o.Value
	case *String:
		return o.Value != ""
	case *Group:
		return len(o.Elements) != 0
	case *Pointer:
		return o.Slot != nil
	}
	return false
}

func ToPointer(o Object) *Pointer {
	if p, ok := o.(*Pointer); ok {
		return p
	}
	return &Pointer{}
}

func ToGroup(o Object) *Group {
	if g, ok := o.(*Group); ok {
		return g
	}
	return &Group{}
}

func IsIterable(o Object) bool {
	switch o.(type) {
	case *String, *Group:
		return true
	}
	return false
}

// IsAddressable reports whether indexing the value can yield a slot.
func IsAddressable(o Object) bool {
	_, ok := o.(*Group)
	return ok
}

func Size(o Object) (int, bool) {
	switch o := o.(type) {
	case *String:
		return utf8.RuneCountInString(o.Value), true
	case *Group:
		return len(o.Elements), true
	}
	return 0, false
}

// Index reads element i of an iterable. With addressable set, a group
// element comes back with its slot so it can be assigned in place.
func Index(container, index Object, addressable bool) (Result, error) {
	idx, ok := index.(*Integer)
	if !ok {
		return Result{}, ErrIncompatible
	}
	i := idx.Value
	switch c := container.(type) {
	case *String:
		if i < 0 {
			return Result{}, ErrOutOfBounds
		}
		var n int64
		for _, ch := range c.Value {
			if n == i {
				return Temporary(&String{Value: string(ch)}), nil
			}
			n++
		}
		return Result{}, ErrOutOfBounds
	case *Group:
		if i < 0 || i >= int64(len(c.Elements)) {
			return Result{}, ErrOutOfBounds
		}
		if addressable {
			return Result{Slot: ElementSlot{Group: c, Index: int(i)}, Value: c.Elements[i]}, nil
		}
		return Temporary(c.Elements[i]), nil
	}
	return Result{}, ErrIncompatible
}

// Append adds value to the end of g in place.
func Append(g *Group, value Object) {
	g.Elements = append(g.Elements, value)
}
