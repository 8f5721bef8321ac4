package parser

import "rosky/internal/token"

var closers = map[string]string{
	token.LPAREN:   token.RPAREN,
	token.LBRACKET: token.RBRACKET,
	token.LBRACE:   token.RBRACE,
}

func isControl(tok token.Token, literal string) bool {
	return tok.Type == token.CONTROL && tok.Literal == literal
}

// findNext returns the index of the first token in [from, end) with the
// given literal, or -1.
func (p *Parser) findNext(from, end int, literal string) int {
	for i := from; i < end && i < len(p.tokens); i++ {
		if p.tokens[i].Literal == literal && p.tokens[i].Type != token.STRING {
			return i
		}
	}
	return -1
}

// findMatching returns the index of the control token closing the one at
// open, searching to the end of the token slice, or -1.
func (p *Parser) findMatching(open int) int {
	opener := p.tokens[open].Literal
	closer := closers[opener]
	depth := 0
	for i := open; i < len(p.tokens); i++ {
		tok := p.tokens[i]
		if tok.Type != token.CONTROL {
			continue
		}
		switch tok.Literal {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel cuts [start, end) at separators that are not nested inside
// brackets. Each part is a half open index range and may be empty.
func (p *Parser) splitTopLevel(start, end int, sep string) [][2]int {
	var parts [][2]int
	depth := 0
	from := start
	for i := start; i < end; i++ {
		tok := p.tokens[i]
		switch {
		case tok.Type == token.CONTROL && closers[tok.Literal] != "":
			depth++
		case tok.Type == token.CONTROL:
			depth--
		case depth == 0 && tok.Type == token.DELIMITER && tok.Literal == sep:
			parts = append(parts, [2]int{from, i})
			from = i + 1
		}
	}
	return append(parts, [2]int{from, end})
}

// at returns the token at i, or the last token of the slice when i is past
// the end.
func (p *Parser) at(i int) token.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	if len(p.tokens) == 0 {
		return token.Token{Line: 1, Column: 1}
	}
	return p.tokens[len(p.tokens)-1]
}
