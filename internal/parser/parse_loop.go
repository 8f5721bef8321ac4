package parser

import (
	"rosky/internal/diag"
	"rosky/internal/object"
	"rosky/internal/token"
)

// loopControl consumes a pending break or continue after one iteration and
// reports whether the loop has to stop.
func (p *Parser) loopControl() bool {
	if p.returnRequested {
		return true
	}
	if p.breakRequested {
		p.breakRequested = false
		return true
	}
	p.continueRequested = false
	return false
}

func (p *Parser) parseWhile(idx, end, scope int) (int, error) {
	open, close, err := p.conditionBody(idx, end)
	if err != nil {
		return idx, err
	}

	wasInLoop := p.inLoop
	p.inLoop = true
	defer func() { p.inLoop = wasInLoop }()

	for {
		ok, err := p.condition(idx+1, open, scope)
		if err != nil {
			return idx, err
		}
		if !ok {
			break
		}
		if err := p.runBody(open, close, scope); err != nil {
			return idx, err
		}
		if p.loopControl() {
			break
		}
	}
	return close, nil
}

// parseFor runs `for name in expr { body }`. The iterable is evaluated once
// and its size is fixed at that point.
func (p *Parser) parseFor(idx, end, scope int) (int, error) {
	kw := p.tokens[idx]
	if idx+2 >= end {
		return idx, diag.New(diag.UnexpectedEOF, "", kw.Line, kw.Column)
	}

	name := p.tokens[idx+1]
	if name.Type != token.SYMBOL {
		return idx, diag.New(diag.SyntaxError, name.Literal, name.Line, name.Column)
	}
	in := p.tokens[idx+2]
	if in.Type != token.KEYWORD || in.Literal != token.IN {
		return idx, diag.New(diag.SyntaxError, in.Literal, in.Line, in.Column)
	}

	open, close, err := p.conditionBody(idx+2, end)
	if err != nil {
		return idx, err
	}

	res, err := p.parseExpr(idx+3, open, scope)
	if err != nil {
		return idx, err
	}
	size, ok := object.Size(res.Value)
	if !ok {
		first := p.tokens[idx+3]
		return idx, diag.New(diag.NonIterable, string(res.Value.Type()), first.Line, first.Column)
	}

	wasInLoop := p.inLoop
	p.inLoop = true
	defer func() { p.inLoop = wasInLoop }()

	for i := 0; i < size; i++ {
		elem, err := object.Index(res.Value, &object.Integer{Value: int64(i)}, false)
		if err != nil {
			break
		}
		p.vars.Declare(name.Literal, elem.Value, p.frame(scope+1))
		if err := p.runBody(open, close, scope); err != nil {
			return idx, err
		}
		if p.loopControl() {
			break
		}
	}
	return close, nil
}
