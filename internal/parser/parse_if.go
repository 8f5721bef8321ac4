package parser

import (
	"fmt"
	"rosky/internal/diag"
	"rosky/internal/object"
	"rosky/internal/token"
)

// conditionBody locates the `{ ... }` that follows the condition starting
// right after the keyword at kw. It returns the brace indices.
func (p *Parser) conditionBody(kw, end int) (int, int, error) {
	tok := p.tokens[kw]
	open := p.findNext(kw+1, end, token.LBRACE)
	if open < 0 {
		return 0, 0, diag.New(diag.MissingBody, tok.Literal, tok.Line, tok.Column)
	}
	if open == kw+1 {
		return 0, 0, diag.New(diag.MissingCondition, tok.Literal, tok.Line, tok.Column)
	}
	close := p.findMatching(open)
	if close < 0 || close >= end {
		brace := p.tokens[open]
		return 0, 0, diag.New(diag.UnclosedBrace, "", brace.Line, brace.Column)
	}
	return open, close, nil
}

// condition evaluates [start, open) and insists on a bool.
func (p *Parser) condition(start, open, scope int) (bool, error) {
	res, err := p.parseExpr(start, open, scope)
	if err != nil {
		return false, err
	}
	b, ok := res.Value.(*object.Boolean)
	if !ok {
		brace := p.tokens[open]
		return false, diag.New(diag.BadConditionType,
			fmt.Sprintf("received '%s'", res.Value.Type()), brace.Line, brace.Column)
	}
	return b.Value, nil
}

// parseIf runs an if/elsif/else chain. Conditions are evaluated in order
// until one holds; at most one body runs.
func (p *Parser) parseIf(idx, end, scope int) (int, error) {
	chosenOpen, chosenClose := -1, -1
	kw := idx

	for {
		open, close, err := p.conditionBody(kw, end)
		if err != nil {
			return idx, err
		}
		if chosenOpen < 0 {
			ok, err := p.condition(kw+1, open, scope)
			if err != nil {
				return idx, err
			}
			if ok {
				chosenOpen, chosenClose = open, close
			}
		}

		next := close + 1
		if next >= end || p.tokens[next].Type != token.KEYWORD {
			idx = close
			break
		}

		if p.tokens[next].Literal == token.ELSIF {
			kw = next
			continue
		}

		if p.tokens[next].Literal == token.ELSE {
			elseTok := p.tokens[next]
			if next+1 >= end || !isControl(p.tokens[next+1], token.LBRACE) {
				return idx, diag.New(diag.MissingBody, elseTok.Literal, elseTok.Line, elseTok.Column)
			}
			elseClose := p.findMatching(next + 1)
			if elseClose < 0 || elseClose >= end {
				brace := p.tokens[next+1]
				return idx, diag.New(diag.UnclosedBrace, "", brace.Line, brace.Column)
			}
			if chosenOpen < 0 {
				chosenOpen, chosenClose = next+1, elseClose
			}
			idx = elseClose
			break
		}

		idx = close
		break
	}

	if chosenOpen >= 0 {
		if err := p.runBody(chosenOpen, chosenClose, scope); err != nil {
			return idx, err
		}
	}
	return idx, nil
}
