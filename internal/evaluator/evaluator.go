package evaluator

import (
	"errors"
	"fmt"
	"rosky/internal/ast"
	"rosky/internal/diag"
	"rosky/internal/object"
)

// Evaluator reduces expression trees to results. New variables created by
// assignment go into Vars at the frame passed to Eval.
type Evaluator struct {
	Vars *object.VariableTable
}

func New(vars *object.VariableTable) *Evaluator {
	return &Evaluator{Vars: vars}
}

// Eval evaluates a complete tree. A bare operand that names nothing is an
// unrecognized symbol at this level.
func (e *Evaluator) Eval(root *ast.Node, frame object.Frame) (object.Result, error) {
	if root == nil {
		return object.Result{}, nil
	}
	res, err := e.eval(root, frame)
	if err != nil {
		return object.Result{}, err
	}
	if res.Absent() {
		return object.Result{}, diag.New(diag.UnrecognizedSymbol, root.Op, root.Line, root.Column)
	}
	return res, nil
}

func (e *Evaluator) eval(node *ast.Node, frame object.Frame) (object.Result, error) {
	if node.Kind == ast.OPERAND {
		res := node.Result
		if res.Slot != nil {
			if v, ok := res.Slot.Load(); ok {
				res.Value = v
			}
		}
		return res, nil
	}

	if node.Right == nil {
		return object.Result{}, diag.New(diag.SyntaxError, node.Op, node.Line, node.Column)
	}
	right, err := e.eval(node.Right, frame)
	if err != nil {
		return object.Result{}, err
	}
	if right.Absent() {
		return object.Result{}, diag.New(diag.UnrecognizedSymbol, node.Right.Op, node.Right.Line, node.Right.Column)
	}

	if ast.IsUnary(node.Op) {
		return e.evalPrefix(node, right)
	}

	if node.Left == nil {
		return object.Result{}, diag.New(diag.UnexpectedOperator, node.Op, node.Line, node.Column)
	}
	left, err := e.eval(node.Left, frame)
	if err != nil {
		return object.Result{}, err
	}

	if ast.IsAssignment(node.Op) {
		return e.evalAssignment(node, left, right, frame)
	}

	if left.Absent() {
		return object.Result{}, diag.New(diag.UnrecognizedSymbol, node.Left.Op, node.Left.Line, node.Left.Column)
	}

	switch node.Op {
	case "<->":
		return e.evalSwap(node, left, right)
	case "[":
		return e.evalIndex(node, left, right)
	}

	value, err := e.binary(node, node.Op, left.Value, right.Value)
	if err != nil {
		return object.Result{}, err
	}
	return object.Temporary(value), nil
}

func (e *Evaluator) evalAssignment(node *ast.Node, left, right object.Result, frame object.Frame) (object.Result, error) {
	if left.Slot == nil && left.Value != nil {
		return object.Result{}, diag.New(diag.BadAssignment, "", node.Line, node.Column)
	}

	value := right.Value
	if base, ok := ast.CompoundBase(node.Op); ok {
		if left.Absent() {
			return object.Result{}, diag.New(diag.UnrecognizedSymbol, node.Left.Op, node.Left.Line, node.Left.Column)
		}
		var err error
		if value, err = e.binary(node, base, left.Value, right.Value); err != nil {
			return object.Result{}, err
		}
	}

	if left.Slot != nil {
		if !left.Slot.Store(value) {
			return object.Result{}, diag.New(diag.DereferenceNull, "", node.Line, node.Column)
		}
	} else {
		e.Vars.Declare(node.Left.Op, value, frame)
	}
	return object.Temporary(value), nil
}

func (e *Evaluator) evalSwap(node *ast.Node, left, right object.Result) (object.Result, error) {
	if left.Slot == nil || right.Slot == nil {
		return object.Result{}, diag.New(diag.BadAssignment, "", node.Line, node.Column)
	}
	lv, rv := left.Value, right.Value
	if !left.Slot.Store(rv) || !right.Slot.Store(lv) {
		return object.Result{}, diag.New(diag.DereferenceNull, "", node.Line, node.Column)
	}
	return object.Result{Slot: left.Slot, Value: rv}, nil
}

func (e *Evaluator) evalIndex(node *ast.Node, left, right object.Result) (object.Result, error) {
	if !object.IsIterable(left.Value) {
		return object.Result{}, diag.New(diag.NonIterable, string(left.Value.Type()), node.Line, node.Column)
	}

	addressable := left.Slot != nil && object.IsAddressable(left.Value)
	res, err := object.Index(left.Value, right.Value, addressable)
	switch {
	case errors.Is(err, object.ErrOutOfBounds):
		return object.Result{}, diag.New(diag.IndexOutOfBounds, right.Value.Inspect(), node.Right.Line, node.Right.Column)
	case err != nil:
		return object.Result{}, incompatible(node, node.Op, left.Value, right.Value)
	}
	return res, nil
}

func (e *Evaluator) evalPrefix(node *ast.Node, right object.Result) (object.Result, error) {
	switch node.Op {
	case "de":
		ptr, ok := right.Value.(*object.Pointer)
		if !ok {
			return object.Result{}, incompatible(node, "deref", nil, right.Value)
		}
		if ptr.Slot == nil {
			return object.Result{}, diag.New(diag.DereferenceNull, "", node.Line, node.Column)
		}
		value, ok := ptr.Slot.Load()
		if !ok {
			return object.Result{}, diag.New(diag.DereferenceNull, "", node.Line, node.Column)
		}
		return object.Result{Slot: ptr.Slot, Value: value}, nil
	case "@":
		if right.Slot == nil {
			return object.Result{}, diag.New(diag.AddressOfTemporary, "", node.Line, node.Column)
		}
		return object.Temporary(&object.Pointer{Slot: right.Slot}), nil
	}

	value, ok := object.Unary(node.Op, right.Value)
	if !ok {
		name := node.Op
		if name == "neg" {
			name = "-"
		}
		return object.Result{}, incompatible(node, name, nil, right.Value)
	}
	return object.Temporary(value), nil
}

func (e *Evaluator) binary(node *ast.Node, op string, l, r object.Object) (object.Object, error) {
	if object.DividesByZero(op, l, r) {
		return nil, diag.New(diag.DivisionByZero, "", node.Line, node.Column)
	}
	value, ok := object.Binary(op, l, r)
	if !ok {
		return nil, incompatible(node, op, l, r)
	}
	return value, nil
}

// incompatible names the operand types; l is nil for prefix operators.
func incompatible(node *ast.Node, op string, l, r object.Object) error {
	var detail string
	if l == nil {
		detail = fmt.Sprintf("'%s' with type: '%s'", op, r.Type())
	} else {
		detail = fmt.Sprintf("'%s' with types: '%s' and '%s'", op, l.Type(), r.Type())
	}
	return diag.New(diag.OperatorIncompatible, detail, node.Line, node.Column)
}
