package object

import (
	"errors"
	"math"
	"testing"
)

func i(v int64) *Integer { return &Integer{Value: v} }
func f(v float64) *Float { return &Float{Value: v} }
func s(v string) *String { return &String{Value: v} }
func g(el ...Object) *Group { return NewGroup(el...) }

func TestInspect(t *testing.T) {
	tests := []struct {
		obj      Object
		expected string
	}{
		{i(-42), "-42"},
		{f(2.5), "2.5"},
		{f(3), "3.0"},
		{f(math.Inf(1)), "+Inf"},
		{TRUE, "true"},
		{s("plain"), "plain"},
		{NULL, "null"},
		{g(i(1), s("a"), f(2.5)), `[1, "a", 2.5]`},
		{g(), "[]"},
		{g(g(i(1)), NULL), "[[1], null]"},
		{&Pointer{}, "0x0"},
	}

	for _, tt := range tests {
		if got := tt.obj.Inspect(); got != tt.expected {
			t.Errorf("Inspect() of %s wrong. expected=%q, got=%q", tt.obj.Type(), tt.expected, got)
		}
	}
}

func TestBinaryOperators(t *testing.T) {
	tests := []struct {
		op       string
		l, r     Object
		expected string
		typ      ObjectType
	}{
		{"+", i(2), i(3), "5", INT_OBJ},
		{"+", i(2), f(0.5), "2.5", FLOAT_OBJ},
		{"+", s("ab"), s("cd"), "abcd", STRING_OBJ},
		{"+", g(i(1), i(2)), g(i(3)), "[1, 2, 3]", GROUP_OBJ},
		{"-", f(1.5), i(1), "0.5", FLOAT_OBJ},
		{"*", i(6), i(7), "42", INT_OBJ},
		{"*", s("ab"), i(3), "ababab", STRING_OBJ},
		{"*", s("ab"), i(-1), "", STRING_OBJ},
		{"*", g(i(1), i(2)), i(2), "[1, 2, 1, 2]", GROUP_OBJ},
		{"/", i(7), i(2), "3", INT_OBJ},
		{"/", i(7), f(2), "3.5", FLOAT_OBJ},
		{"//", i(-7), i(2), "-4", INT_OBJ},
		{"//", f(7.5), i(2), "3.0", FLOAT_OBJ},
		{"%", i(7), i(3), "1", INT_OBJ},
		{"%", f(7.5), i(2), "1.5", FLOAT_OBJ},
		{"&", s("n="), i(4), "n=4", STRING_OBJ},
		{"&", g(i(1)), NULL, "[1]null", STRING_OBJ},
		{"==", i(1), f(1), "true", BOOL_OBJ},
		{"==", NULL, NULL, "true", BOOL_OBJ},
		{"==", NULL, i(0), "false", BOOL_OBJ},
		{"!=", s("x"), NULL, "true", BOOL_OBJ},
		{"==", g(i(1), s("a")), g(i(1), s("a")), "true", BOOL_OBJ},
		{"==", g(i(1)), g(i(1), i(2)), "false", BOOL_OBJ},
		{"<", i(1), f(1.5), "true", BOOL_OBJ},
		{">=", i(2), i(2), "true", BOOL_OBJ},
		{"<=", f(3), i(2), "false", BOOL_OBJ},
		{"and", TRUE, FALSE, "false", BOOL_OBJ},
		{"or", TRUE, FALSE, "true", BOOL_OBJ},
		{"xor", TRUE, TRUE, "false", BOOL_OBJ},
	}

	for _, tt := range tests {
		res, ok := Binary(tt.op, tt.l, tt.r)
		if !ok {
			t.Errorf("%s %s %s: expected a result, got incompatible", tt.l.Inspect(), tt.op, tt.r.Inspect())
			continue
		}
		if res.Type() != tt.typ || res.Inspect() != tt.expected {
			t.Errorf("%s %s %s: expected %s %q, got %s %q",
				tt.l.Inspect(), tt.op, tt.r.Inspect(), tt.typ, tt.expected, res.Type(), res.Inspect())
		}
	}
}

func TestIncompatibleOperators(t *testing.T) {
	tests := []struct {
		op   string
		l, r Object
	}{
		{"+", i(1), s("a")},
		{"-", s("a"), s("b")},
		{"*", s("a"), s("b")},
		{"*", i(2), s("a")},
		{"*", s("ab"), i(math.MaxInt64)},
		{"*", g(i(1), i(2)), i(math.MaxInt64)},
		{"*", s("a"), i(maxRepeatLen + 1)},
		{"+", g(), i(1)},
		{"==", TRUE, i(1)},
		{"==", s("1"), i(1)},
		{"<", s("a"), s("b")},
		{">", NULL, NULL},
		{"and", TRUE, i(1)},
		{"nope", i(1), i(1)},
	}

	for _, tt := range tests {
		if res, ok := Binary(tt.op, tt.l, tt.r); ok {
			t.Errorf("%s %s %s: expected incompatible, got %s", tt.l.Type(), tt.op, tt.r.Type(), res.Inspect())
		}
	}

	if _, ok := Unary("!", i(1)); ok {
		t.Errorf("! on int should be incompatible")
	}
	if res, ok := Unary("neg", f(2.5)); !ok || res.Inspect() != "-2.5" {
		t.Errorf("neg 2.5 wrong: %v", res)
	}
}

func TestDividesByZero(t *testing.T) {
	tests := []struct {
		op       string
		l, r     Object
		expected bool
	}{
		{"/", i(1), i(0), true},
		{"//", i(1), i(0), true},
		{"%", i(1), i(0), true},
		{"/", f(1), i(0), false},
		{"/", i(1), f(0), false},
		{"+", i(1), i(0), false},
	}

	for _, tt := range tests {
		if got := DividesByZero(tt.op, tt.l, tt.r); got != tt.expected {
			t.Errorf("DividesByZero(%s, %s, %s) = %t", tt.l.Inspect(), tt.op, tt.r.Inspect(), got)
		}
	}
}

func TestCasts(t *testing.T) {
	if ToInt(s(" 12 ")) != 12 || ToInt(f(3.9)) != 3 || ToInt(TRUE) != 1 || ToInt(s("abc")) != 0 || ToInt(g(i(1))) != 0 {
		t.Errorf("ToInt defaults wrong")
	}
	if ToFloat(s("2.5")) != 2.5 || ToFloat(i(2)) != 2 || ToFloat(NULL) != 0 {
		t.Errorf("ToFloat defaults wrong")
	}
	if ToBool(i(0)) || !ToBool(s("x")) || ToBool(g()) || ToBool(&Pointer{}) || ToBool(NULL) {
		t.Errorf("ToBool defaults wrong")
	}
	if ToString(g(s("a"))) != `["a"]` {
		t.Errorf("ToString of group wrong")
	}
	if p := ToPointer(i(1)); p.Slot != nil {
		t.Errorf("ToPointer of int should be null")
	}
	if len(ToGroup(s("abc")).Elements) != 0 {
		t.Errorf("ToGroup of string should be empty")
	}
}

func TestIndex(t *testing.T) {
	res, err := Index(s("abc"), i(1), false)
	if err != nil || res.Value.Inspect() != "b" || res.Slot != nil {
		t.Fatalf("\"abc\"[1] wrong: %v %v", res, err)
	}

	if _, err := Index(s("abc"), i(5), false); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected out of bounds, got %v", err)
	}
	if _, err := Index(g(i(1)), i(-1), true); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected out of bounds for negative index, got %v", err)
	}
	if _, err := Index(g(i(1)), s("0"), true); !errors.Is(err, ErrIncompatible) {
		t.Fatalf("expected incompatible index type, got %v", err)
	}

	grp := g(i(1), i(2))
	res, err = Index(grp, i(0), true)
	if err != nil || res.Slot == nil {
		t.Fatalf("addressable index should return a slot: %v %v", res, err)
	}
	res.Slot.Store(i(9))
	if grp.Elements[0].Inspect() != "9" {
		t.Fatalf("store through element slot did not mutate the group: %s", grp.Inspect())
	}
}

func TestSizeAndAppend(t *testing.T) {
	if n, ok := Size(s("héllo")); !ok || n != 5 {
		t.Errorf("size of string wrong: %d", n)
	}
	if _, ok := Size(i(1)); ok {
		t.Errorf("int has no size")
	}

	grp := g()
	alias := grp
	Append(grp, i(1))
	if n, _ := Size(alias); n != 1 {
		t.Errorf("append should mutate the shared group, size=%d", n)
	}
}

func TestPointerEquality(t *testing.T) {
	table := NewVariableTable()
	h := table.Declare("x", i(1), Frame{})
	a := &Pointer{Slot: table.Slot(h)}
	b := &Pointer{Slot: table.Slot(h)}
	other := &Pointer{Slot: table.Slot(table.Declare("y", i(1), Frame{}))}

	if res, _ := Equal(a, b); res != TRUE {
		t.Errorf("pointers to the same variable should be equal")
	}
	if res, _ := Equal(a, other); res != FALSE {
		t.Errorf("pointers to different variables should differ")
	}
	if res, _ := Equal(&Pointer{}, &Pointer{}); res != TRUE {
		t.Errorf("null pointers should be equal")
	}
	if a.Inspect() == "0x0" {
		t.Errorf("non-null pointer should display an address")
	}
}

func TestCyclicGroups(t *testing.T) {
	grp := g(i(1))
	Append(grp, grp)

	if got := grp.Inspect(); got != "[1, [...]]" {
		t.Errorf("Inspect() of a cyclic group wrong. got=%q", got)
	}
	if res, ok := Equal(grp, grp); !ok || res != TRUE {
		t.Errorf("a cyclic group should equal itself, got %v", res)
	}

	other := g(i(1))
	Append(other, other)
	if res, ok := Equal(grp, other); !ok || res != TRUE {
		t.Errorf("structurally equal cycles should compare equal, got %v", res)
	}
	Append(other, i(2))
	if res, ok := Equal(grp, other); !ok || res != FALSE {
		t.Errorf("cycles of different size should differ, got %v", res)
	}

	if res, _ := Concat(s("g="), grp); res.Inspect() != "g=[1, [...]]" {
		t.Errorf("concat of a cyclic group wrong. got=%q", res.Inspect())
	}

	shared := g(i(7))
	twice := g(shared, shared)
	if got := twice.Inspect(); got != "[[7], [7]]" {
		t.Errorf("a group reached twice without a cycle should render fully, got %q", got)
	}
}
