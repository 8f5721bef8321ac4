package parser

import (
	"rosky/internal/ast"
	"rosky/internal/diag"
	"rosky/internal/object"
	"rosky/internal/token"
	"strconv"
)

// parseExpr builds the expression tree for [start, end) and evaluates it.
// Parenthesized parts, group literals, index expressions and calls are
// evaluated while the tree is being built and enter it as operands.
func (p *Parser) parseExpr(start, end, scope int) (object.Result, error) {
	if start >= end {
		tok := p.at(start)
		return object.Result{}, diag.New(diag.SyntaxError, tok.Literal, tok.Line, tok.Column)
	}

	tree := &ast.Tree{}
	expectingOp := false

	for idx := start; idx < end; idx++ {
		tok := p.tokens[idx]

		if expectingOp && tok.Type != token.OPERATOR && !isControl(tok, token.LBRACKET) &&
			!(tok.Type == token.DELIMITER && tok.Literal == token.PERIOD) {
			return object.Result{}, diag.New(diag.SyntaxError, tok.Literal, tok.Line, tok.Column)
		}

		switch tok.Type {
		case token.INT, token.FLOAT, token.STRING:
			value, err := literal(tok)
			if err != nil {
				return object.Result{}, err
			}
			tree.InsertRight(ast.NewOperand(tok, object.Temporary(value)))
			expectingOp = true

		case token.SYMBOL:
			if idx+1 < end && isControl(p.tokens[idx+1], token.LPAREN) {
				res, next, err := p.parseCall(idx, end, scope)
				if err != nil {
					return object.Result{}, err
				}
				tree.InsertRight(ast.NewOperand(tok, res))
				idx = next
			} else {
				tree.InsertRight(ast.NewOperand(tok, p.vars.Resolve(tok.Literal, p.recursion)))
			}
			expectingOp = true

		case token.KEYWORD:
			value, ok := keywordValue(tok.Literal)
			if !ok {
				return object.Result{}, diag.New(diag.ReservedUse, tok.Literal, tok.Line, tok.Column)
			}
			tree.InsertRight(ast.NewOperand(tok, object.Temporary(value)))
			expectingOp = true

		case token.CONTROL:
			next, err := p.parseBracketed(tree, idx, end, scope, expectingOp)
			if err != nil {
				return object.Result{}, err
			}
			idx = next
			expectingOp = true

		case token.OPERATOR:
			if !expectingOp {
				name, ok := ast.PrefixName(tok.Literal)
				if !ok {
					return object.Result{}, diag.New(diag.SyntaxError, tok.Literal, tok.Line, tok.Column)
				}
				tree.InsertOp(ast.NewOperator(tok, name))
			} else {
				if !ast.IsOperator(tok.Literal) || ast.IsUnary(tok.Literal) {
					return object.Result{}, diag.New(diag.SyntaxError, tok.Literal, tok.Line, tok.Column)
				}
				tree.InsertOp(ast.NewOperator(tok, tok.Literal))
			}
			expectingOp = false

		case token.DELIMITER:
			if tok.Literal != token.PERIOD || !expectingOp {
				return object.Result{}, diag.New(diag.SyntaxError, tok.Literal, tok.Line, tok.Column)
			}
			next, err := p.parseMemberCall(tree, idx, end, scope)
			if err != nil {
				return object.Result{}, err
			}
			idx = next

		default:
			return object.Result{}, diag.New(diag.SyntaxError, tok.Literal, tok.Line, tok.Column)
		}
	}

	if !expectingOp {
		tok := p.at(end)
		return object.Result{}, diag.New(diag.SyntaxError, tok.Literal, tok.Line, tok.Column)
	}

	return p.eval.Eval(tree.Root, p.frame(scope))
}

// parseBracketed handles `(` and `[` inside an expression and returns the
// index of the matching closer.
func (p *Parser) parseBracketed(tree *ast.Tree, idx, end, scope int, expectingOp bool) (int, error) {
	tok := p.tokens[idx]

	switch tok.Literal {
	case token.LPAREN:
		match := p.findMatching(idx)
		switch {
		case match < 0:
			return idx, diag.New(diag.UnclosedParen, "", tok.Line, tok.Column)
		case match == idx+1:
			return idx, diag.New(diag.EmptyParens, "", tok.Line, tok.Column)
		case match >= end:
			return idx, diag.New(diag.TerminatedBeforeClosure, "", tok.Line, tok.Column)
		}
		res, err := p.parseExpr(idx+1, match, scope)
		if err != nil {
			return idx, err
		}
		tree.InsertRight(ast.NewOperand(tok, res))
		return match, nil

	case token.LBRACKET:
		match := p.findMatching(idx)
		switch {
		case match < 0:
			return idx, diag.New(diag.UnclosedBracket, "", tok.Line, tok.Column)
		case match >= end:
			return idx, diag.New(diag.TerminatedBeforeClosure, "", tok.Line, tok.Column)
		}

		if !expectingOp {
			group, err := p.parseGroup(idx, match, scope)
			if err != nil {
				return idx, err
			}
			tree.InsertRight(ast.NewOperand(tok, object.Temporary(group)))
			return match, nil
		}

		if match == idx+1 {
			return idx, diag.New(diag.EmptyArgument, "", tok.Line, tok.Column)
		}
		res, err := p.parseExpr(idx+1, match, scope)
		if err != nil {
			return idx, err
		}
		tree.InsertOp(ast.NewOperator(tok, token.LBRACKET))
		tree.InsertRight(ast.NewOperand(p.tokens[idx+1], object.Temporary(res.Value)))
		return match, nil
	}

	return idx, diag.New(diag.SyntaxError, tok.Literal, tok.Line, tok.Column)
}

func literal(tok token.Token) (object.Object, error) {
	switch tok.Type {
	case token.INT:
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, diag.New(diag.UnexpectedToken, tok.Literal, tok.Line, tok.Column)
		}
		return &object.Integer{Value: v}, nil
	case token.FLOAT:
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, diag.New(diag.UnexpectedToken, tok.Literal, tok.Line, tok.Column)
		}
		return &object.Float{Value: v}, nil
	}
	return &object.String{Value: tok.Literal}, nil
}

func keywordValue(kw string) (object.Object, bool) {
	switch kw {
	case token.TRUE:
		return object.TRUE, true
	case token.FALSE:
		return object.FALSE, true
	case token.NULL:
		return object.NULL, true
	}
	return nil, false
}
