package parser

import (
	"rosky/internal/diag"
	"rosky/internal/object"
)

// parseGroup evaluates the literal between the brackets at open and close.
func (p *Parser) parseGroup(open, close, scope int) (*object.Group, error) {
	values, err := p.parseArgs(open, close, scope)
	if err != nil {
		return nil, err
	}
	return &object.Group{Elements: values}, nil
}

// parseArgs evaluates the comma separated expressions strictly between open
// and close. No tokens at all means no values; an empty part between commas
// is an error.
func (p *Parser) parseArgs(open, close, scope int) ([]object.Object, error) {
	if open+1 == close {
		return []object.Object{}, nil
	}

	parts := p.splitTopLevel(open+1, close, ",")
	values := make([]object.Object, 0, len(parts))
	for _, part := range parts {
		if part[0] == part[1] {
			tok := p.at(part[0])
			return nil, diag.New(diag.EmptyArgument, "", tok.Line, tok.Column)
		}
		res, err := p.parseExpr(part[0], part[1], scope)
		if err != nil {
			return nil, err
		}
		values = append(values, res.Value)
	}
	return values, nil
}
