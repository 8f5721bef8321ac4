package parser

import (
	"fmt"
	"log/slog"
	"rosky/internal/ast"
	"rosky/internal/diag"
	"rosky/internal/evaluator"
	"rosky/internal/object"
	"rosky/internal/token"
)

func (p *Parser) callContext(tok token.Token) *evaluator.CallContext {
	return &evaluator.CallContext{Line: tok.Line, Column: tok.Column, Out: p.out, In: p.in}
}

// parseCallArgs evaluates the argument list whose `(` is at open and returns
// the values and the index of the `)`.
func (p *Parser) parseCallArgs(open, end, scope int) ([]object.Object, int, error) {
	tok := p.tokens[open]
	match := p.findMatching(open)
	switch {
	case match < 0:
		return nil, open, diag.New(diag.UnclosedParen, "", tok.Line, tok.Column)
	case match >= end:
		return nil, open, diag.New(diag.TerminatedBeforeClosure, "", tok.Line, tok.Column)
	}
	args, err := p.parseArgs(open, match, scope)
	if err != nil {
		return nil, open, err
	}
	return args, match, nil
}

// parseCall runs `name(args)` where idx is the name. Native functions take
// precedence; user functions can never shadow them.
func (p *Parser) parseCall(idx, end, scope int) (object.Result, int, error) {
	tok := p.tokens[idx]
	args, close, err := p.parseCallArgs(idx+1, end, scope)
	if err != nil {
		return object.Result{}, idx, err
	}

	if builtin, ok := evaluator.LookupBuiltin(tok.Literal); ok {
		value, err := builtin.Fn(p.callContext(tok), args...)
		if err != nil {
			return object.Result{}, idx, err
		}
		return object.Temporary(value), close, nil
	}

	if fn, ok := p.funcs.Lookup(tok.Literal); ok {
		value, err := p.invoke(fn, args, tok, scope)
		if err != nil {
			return object.Result{}, idx, err
		}
		return object.Temporary(value), close, nil
	}

	return object.Result{}, idx, diag.New(diag.UnrecognizedFunction, tok.Literal, tok.Line, tok.Column)
}

// parseMemberCall runs `.name(args)` against the receiver at the end of the
// tree and puts the result in the receiver's place. idx is the `.`.
func (p *Parser) parseMemberCall(tree *ast.Tree, idx, end, scope int) (int, error) {
	dot := p.tokens[idx]
	if idx+1 >= end || p.tokens[idx+1].Type != token.SYMBOL {
		tok := p.at(idx + 1)
		return idx, diag.New(diag.SyntaxError, tok.Literal, tok.Line, tok.Column)
	}
	name := p.tokens[idx+1]
	if idx+2 >= end || !isControl(p.tokens[idx+2], token.LPAREN) {
		return idx, diag.New(diag.MissingFunctionArgs, name.Literal, name.Line, name.Column)
	}

	receiver := tree.Receiver()
	recv, err := p.eval.Eval(receiver, p.frame(scope))
	if err != nil {
		return idx, err
	}

	args, close, err := p.parseCallArgs(idx+2, end, scope)
	if err != nil {
		return idx, err
	}

	member, ok := evaluator.LookupMember(name.Literal)
	if !ok {
		if _, native := evaluator.LookupBuiltin(name.Literal); native {
			return idx, diag.New(diag.NonMemberFunction, name.Literal, name.Line, name.Column)
		}
		if _, user := p.funcs.Lookup(name.Literal); user {
			return idx, diag.New(diag.NonMemberFunction, name.Literal, name.Line, name.Column)
		}
		return idx, diag.New(diag.UnrecognizedFunction, name.Literal, name.Line, name.Column)
	}

	value, err := member.Fn(p.callContext(dot), recv, args...)
	if err != nil {
		return idx, err
	}
	tree.Replace(receiver, ast.NewOperand(name, object.Temporary(value)))
	return close, nil
}

// invoke runs a user function one scope below the call site and one
// recursion level deeper. The function's return value, or null, is the
// result.
func (p *Parser) invoke(fn *object.FunctionEntry, args []object.Object, tok token.Token, scope int) (object.Object, error) {
	if len(args) != len(fn.Params) {
		return nil, diag.New(diag.BadFunctionArgs,
			fmt.Sprintf("'%s' expects %d arguments, received %d", fn.Name, len(fn.Params), len(args)),
			tok.Line, tok.Column)
	}
	if p.recursion+1 > p.maxDepth {
		return nil, diag.New(diag.MaxRecursionDepth, fn.Name, tok.Line, tok.Column)
	}

	saved := p.saveState()
	p.recursion++
	frame := p.frame(scope + 1)
	for i, param := range fn.Params {
		p.vars.Declare(param, args[i], frame)
	}

	p.log.Debug("calling function",
		slog.String("name", fn.Name),
		slog.Int("depth", p.recursion),
		slog.Int("line", tok.Line))

	p.tokens = fn.Tokens
	p.inLoop = false
	p.inFunction = true
	p.breakRequested = false
	p.continueRequested = false
	p.returnRequested = false
	p.returnValue = nil

	err := p.runBody(fn.Open, fn.Close, scope)

	result := p.returnValue
	if result == nil {
		result = object.NULL
	}

	p.restoreState(saved)

	if err != nil {
		return nil, err
	}
	return result, nil
}

// callState is what a function call clobbers and must put back.
type callState struct {
	tokens            []token.Token
	recursion         int
	inLoop            bool
	inFunction        bool
	breakRequested    bool
	continueRequested bool
	returnRequested   bool
	returnValue       object.Object
}

func (p *Parser) saveState() callState {
	return callState{
		tokens:            p.tokens,
		recursion:         p.recursion,
		inLoop:            p.inLoop,
		inFunction:        p.inFunction,
		breakRequested:    p.breakRequested,
		continueRequested: p.continueRequested,
		returnRequested:   p.returnRequested,
		returnValue:       p.returnValue,
	}
}

func (p *Parser) restoreState(s callState) {
	p.tokens = s.tokens
	p.recursion = s.recursion
	p.inLoop = s.inLoop
	p.inFunction = s.inFunction
	p.breakRequested = s.breakRequested
	p.continueRequested = s.continueRequested
	p.returnRequested = s.returnRequested
	p.returnValue = s.returnValue
}

// parseFuncDef registers `func name(params) { body }` without running it.
func (p *Parser) parseFuncDef(idx, end, scope int) (int, error) {
	kw := p.tokens[idx]
	if idx+1 >= end {
		return idx, diag.New(diag.UnexpectedEOF, "", kw.Line, kw.Column)
	}

	name := p.tokens[idx+1]
	if token.IsKeyword(name.Literal) || evaluator.IsBuiltin(name.Literal) {
		return idx, diag.New(diag.ReservedUse, name.Literal, name.Line, name.Column)
	}
	if name.Type != token.SYMBOL {
		return idx, diag.New(diag.SyntaxError, name.Literal, name.Line, name.Column)
	}

	open := idx + 2
	if open >= end || !isControl(p.tokens[open], token.LPAREN) {
		return idx, diag.New(diag.MissingFunctionArgs, name.Literal, name.Line, name.Column)
	}
	close := p.findMatching(open)
	if close < 0 || close >= end {
		return idx, diag.New(diag.UnclosedParen, "", p.tokens[open].Line, p.tokens[open].Column)
	}

	params, err := p.parseParams(open, close)
	if err != nil {
		return idx, err
	}

	bodyOpen := close + 1
	if bodyOpen >= end || !isControl(p.tokens[bodyOpen], token.LBRACE) {
		tok := p.tokens[close]
		return idx, diag.New(diag.MissingBody, "", tok.Line, tok.Column)
	}
	bodyClose := p.findMatching(bodyOpen)
	if bodyClose < 0 || bodyClose >= end {
		tok := p.tokens[bodyOpen]
		return idx, diag.New(diag.UnclosedBrace, "", tok.Line, tok.Column)
	}

	p.funcs.Define(&object.FunctionEntry{
		Name:   name.Literal,
		Params: params,
		Scope:  scope,
		Tokens: p.tokens,
		Open:   bodyOpen,
		Close:  bodyClose,
	})
	p.log.Debug("defined function",
		slog.String("name", name.Literal),
		slog.Int("params", len(params)),
		slog.Int("scope", scope))
	return bodyClose, nil
}

// parseParams reads the parameter names between the parentheses. The list
// is either empty or every entry is a single symbol.
func (p *Parser) parseParams(open, close int) ([]string, error) {
	params := []string{}
	if open+1 == close {
		return params, nil
	}
	for _, part := range p.splitTopLevel(open+1, close, ",") {
		if part[0] == part[1] {
			tok := p.at(part[0])
			return nil, diag.New(diag.EmptyArgument, "", tok.Line, tok.Column)
		}
		tok := p.tokens[part[0]]
		if token.IsKeyword(tok.Literal) || evaluator.IsBuiltin(tok.Literal) {
			return nil, diag.New(diag.ReservedUse, tok.Literal, tok.Line, tok.Column)
		}
		if tok.Type != token.SYMBOL {
			return nil, diag.New(diag.SyntaxError, tok.Literal, tok.Line, tok.Column)
		}
		if part[1] != part[0]+1 {
			extra := p.tokens[part[0]+1]
			return nil, diag.New(diag.SyntaxError, extra.Literal, extra.Line, extra.Column)
		}
		params = append(params, tok.Literal)
	}
	return params, nil
}

// parseReturn stores the value of `return expr;` (or null for a bare
// `return;`) and asks the enclosing call to stop.
func (p *Parser) parseReturn(idx, end, scope int) (int, error) {
	tok := p.tokens[idx]
	if !p.inFunction {
		return idx, diag.New(diag.ReservedUse, "'return' not in function", tok.Line, tok.Column)
	}
	semi := p.findNext(idx, end, token.SEMICOLON)
	if semi < 0 {
		last := p.at(end - 1)
		return idx, diag.New(diag.UnexpectedEOF, "", last.Line, last.Column)
	}

	var value object.Object = object.NULL
	if semi > idx+1 {
		res, err := p.parseExpr(idx+1, semi, scope)
		if err != nil {
			return idx, err
		}
		value = res.Value
	}
	p.returnValue = value
	p.returnRequested = true
	return semi, nil
}

// parseJump handles `break;` and `continue;`.
func (p *Parser) parseJump(idx, end, scope int) (int, error) {
	tok := p.tokens[idx]
	if !p.inLoop {
		return idx, diag.New(diag.ReservedUse, tok.Literal, tok.Line, tok.Column)
	}
	if idx+1 >= end {
		return idx, diag.New(diag.UnexpectedEOF, "", tok.Line, tok.Column)
	}
	if next := p.tokens[idx+1]; next.Literal != token.SEMICOLON || next.Type != token.DELIMITER {
		return idx, diag.New(diag.SyntaxError, next.Literal, next.Line, next.Column)
	}

	if tok.Literal == token.BREAK {
		p.breakRequested = true
	} else {
		p.continueRequested = true
	}
	return idx + 1, nil
}
