package evaluator

import (
	"bufio"
	"fmt"
	"io"
	"rosky/internal/diag"
	"rosky/internal/object"
	"strings"
)

// CallContext carries the call position and the standard streams into a
// native function.
type CallContext struct {
	Line   int
	Column int
	Out    io.Writer
	In     *bufio.Reader
}

func (c *CallContext) errorf(kind diag.Kind, format string, a ...interface{}) error {
	return diag.New(kind, fmt.Sprintf(format, a...), c.Line, c.Column)
}

type Builtin struct {
	Fn func(ctx *CallContext, args ...object.Object) (object.Object, error)
}

// MemberBuiltin is called as receiver.name(args). The receiver's slot is
// passed along so in-place members can reach the stored value.
type MemberBuiltin struct {
	Fn func(ctx *CallContext, recv object.Result, args ...object.Object) (object.Object, error)
}

var builtins = map[string]*Builtin{
	"out":    funcOut(),
	"outln":  funcOutLn(),
	"scan":   funcScan(),
	"assert": funcAssert(),
	"range":  funcRange(),
	"type":   funcType(),

	// casts
	"int":    funcInt(),
	"float":  funcFloat(),
	"string": funcString(),
	"bool":   funcBool(),
}

var members = map[string]*MemberBuiltin{
	"size":   funcSize(),
	"append": funcAppend(),
}

func LookupBuiltin(name string) (*Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}

func LookupMember(name string) (*MemberBuiltin, bool) {
	m, ok := members[name]
	return m, ok
}

// IsBuiltin reports whether name is taken by a native function or member.
func IsBuiltin(name string) bool {
	_, native := builtins[name]
	_, member := members[name]
	return native || member
}

func expectArgs(ctx *CallContext, name string, args []object.Object, want int) error {
	if len(args) == want {
		return nil
	}
	plural := "s"
	if want == 1 {
		plural = ""
	}
	return ctx.errorf(diag.BadFunctionArgs, "'%s' expects %d argument%s, received %d", name, want, plural, len(args))
}

func funcOut() *Builtin {
	return &Builtin{
		Fn: func(ctx *CallContext, args ...object.Object) (object.Object, error) {
			if err := expectArgs(ctx, "out", args, 1); err != nil {
				return nil, err
			}
			fmt.Fprint(ctx.Out, args[0].Inspect())
			return object.NULL, nil
		},
	}
}

func funcOutLn() *Builtin {
	return &Builtin{
		Fn: func(ctx *CallContext, args ...object.Object) (object.Object, error) {
			if err := expectArgs(ctx, "outln", args, 1); err != nil {
				return nil, err
			}
			fmt.Fprintln(ctx.Out, args[0].Inspect())
			return object.NULL, nil
		},
	}
}

// funcScan reads one line from the input without its line ending. At end of
// input it returns whatever was read, possibly the empty string.
func funcScan() *Builtin {
	return &Builtin{
		Fn: func(ctx *CallContext, args ...object.Object) (object.Object, error) {
			if err := expectArgs(ctx, "scan", args, 0); err != nil {
				return nil, err
			}
			if ctx.In == nil {
				return &object.String{}, nil
			}
			line, err := ctx.In.ReadString('\n')
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("scan: %w", err)
			}
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			return &object.String{Value: line}, nil
		},
	}
}

func funcAssert() *Builtin {
	return &Builtin{
		Fn: func(ctx *CallContext, args ...object.Object) (object.Object, error) {
			if len(args) != 1 && len(args) != 2 {
				return nil, ctx.errorf(diag.BadFunctionArgs, "'assert' expects 1 or 2 arguments, received %d", len(args))
			}
			cond, ok := args[0].(*object.Boolean)
			if !ok {
				return nil, ctx.errorf(diag.BadFunctionArgs, "'assert' expects a bool condition, received '%s'", args[0].Type())
			}
			if !cond.Value {
				var msg string
				if len(args) == 2 {
					msg = args[1].Inspect()
				}
				return nil, diag.New(diag.AssertionFailure, msg, ctx.Line, ctx.Column)
			}
			return object.NULL, nil
		},
	}
}

// maxRangeLen bounds the size of the group range() builds.
const maxRangeLen = 1 << 28

// funcRange builds the group [start, end) counting by step.
func funcRange() *Builtin {
	return &Builtin{
		Fn: func(ctx *CallContext, args ...object.Object) (object.Object, error) {
			if len(args) < 1 || len(args) > 3 {
				return nil, ctx.errorf(diag.BadFunctionArgs, "'range' expects 1 to 3 arguments, received %d", len(args))
			}
			bounds := make([]int64, len(args))
			for i, arg := range args {
				n, ok := arg.(*object.Integer)
				if !ok {
					return nil, ctx.errorf(diag.BadFunctionArgs, "'range' expects int arguments, received '%s'", arg.Type())
				}
				bounds[i] = n.Value
			}

			var start, end, step int64 = 0, 0, 1
			switch len(bounds) {
			case 1:
				end = bounds[0]
			case 2:
				start, end = bounds[0], bounds[1]
			case 3:
				start, end, step = bounds[0], bounds[1], bounds[2]
			}
			if step < 1 {
				return nil, ctx.errorf(diag.BadFunctionArgs, "'range' step must be at least 1, received %d", step)
			}

			var count uint64
			if start < end {
				count = (uint64(end)-uint64(start)-1)/uint64(step) + 1
			}
			if count > maxRangeLen {
				return nil, ctx.errorf(diag.BadFunctionArgs, "'range' would hold %d elements, limit is %d", count, maxRangeLen)
			}

			elements := make([]object.Object, 0, count)
			n := start
			for range count {
				elements = append(elements, &object.Integer{Value: n})
				n += step
			}
			return &object.Group{Elements: elements}, nil
		},
	}
}

func funcType() *Builtin {
	return &Builtin{
		Fn: func(ctx *CallContext, args ...object.Object) (object.Object, error) {
			if err := expectArgs(ctx, "type", args, 1); err != nil {
				return nil, err
			}
			return &object.String{Value: string(args[0].Type())}, nil
		},
	}
}

func funcInt() *Builtin {
	return &Builtin{
		Fn: func(ctx *CallContext, args ...object.Object) (object.Object, error) {
			if err := expectArgs(ctx, "int", args, 1); err != nil {
				return nil, err
			}
			return &object.Integer{Value: object.ToInt(args[0])}, nil
		},
	}
}

func funcFloat() *Builtin {
	return &Builtin{
		Fn: func(ctx *CallContext, args ...object.Object) (object.Object, error) {
			if err := expectArgs(ctx, "float", args, 1); err != nil {
				return nil, err
			}
			return &object.Float{Value: object.ToFloat(args[0])}, nil
		},
	}
}

func funcString() *Builtin {
	return &Builtin{
		Fn: func(ctx *CallContext, args ...object.Object) (object.Object, error) {
			if err := expectArgs(ctx, "string", args, 1); err != nil {
				return nil, err
			}
			return &object.String{Value: object.ToString(args[0])}, nil
		},
	}
}

func funcBool() *Builtin {
	return &Builtin{
		Fn: func(ctx *CallContext, args ...object.Object) (object.Object, error) {
			if err := expectArgs(ctx, "bool", args, 1); err != nil {
				return nil, err
			}
			return object.NativeBoolToBooleanObject(object.ToBool(args[0])), nil
		},
	}
}

func funcSize() *MemberBuiltin {
	return &MemberBuiltin{
		Fn: func(ctx *CallContext, recv object.Result, args ...object.Object) (object.Object, error) {
			if err := expectArgs(ctx, "size", args, 0); err != nil {
				return nil, err
			}
			n, ok := object.Size(recv.Value)
			if !ok {
				return nil, ctx.errorf(diag.NonMemberFunction, "'size' is not a member function for type '%s'", recv.Value.Type())
			}
			return &object.Integer{Value: int64(n)}, nil
		},
	}
}

func funcAppend() *MemberBuiltin {
	return &MemberBuiltin{
		Fn: func(ctx *CallContext, recv object.Result, args ...object.Object) (object.Object, error) {
			if err := expectArgs(ctx, "append", args, 1); err != nil {
				return nil, err
			}
			group, ok := recv.Value.(*object.Group)
			if !ok {
				return nil, ctx.errorf(diag.NonMemberFunction, "'append' is not a member function for type '%s'", recv.Value.Type())
			}
			object.Append(group, args[0])
			return object.NULL, nil
		},
	}
}
