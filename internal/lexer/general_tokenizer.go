package lexer

import (
	"rosky/internal/diag"
	"rosky/internal/token"
)

type GeneralTokenizer struct {
	lexer *Lexer
}

func NewGeneralTokenizer(lexer *Lexer) *GeneralTokenizer {
	return &GeneralTokenizer{lexer: lexer}
}

func (g *GeneralTokenizer) NextToken() (token.Token, error) {
	var tok token.Token

	g.lexer.skipWhitespace()

	line, column := g.lexer.line, g.lexer.column

	switch g.lexer.ch {
	case '=', '!', '>', '+', '-', '*', '%', '&':
		tok = g.lexer.handleCompoundToken('=')
	case '<':
		if g.lexer.peekChar() == '-' && g.lexer.peekTwoChars() == '>' {
			g.lexer.readChar() // consume <
			g.lexer.readChar() // consume -
			tok = g.lexer.newToken(token.OPERATOR, token.SWAP, line, column)
		} else {
			tok = g.lexer.handleCompoundToken('=')
		}
	case '/':
		if g.lexer.peekChar() == '/' {
			g.lexer.readChar()
			tok = g.lexer.handleCompoundToken('=')
			tok.Literal = "/" + tok.Literal
			tok.Column = column
		} else {
			tok = g.lexer.handleCompoundToken('=')
		}
	case '@':
		tok = g.lexer.newToken(token.OPERATOR, token.AT, line, column)
	case ';', ',', '.':
		tok = g.lexer.newToken(token.DELIMITER, string(g.lexer.ch), line, column)
	case '(', ')', '{', '}', '[', ']':
		tok = g.lexer.newToken(token.CONTROL, string(g.lexer.ch), line, column)
	case '"':
		g.lexer.switchMode(NewStringTokenizer(g.lexer))
		return g.lexer.currentMode.NextToken()
	case 0:
		if g.lexer.atEOF() {
			return g.lexer.newToken(token.EOF, "", line, column), nil
		}
		return tok, diag.New(diag.UnexpectedToken, "\\0", line, column)
	default:
		if isLetter(g.lexer.ch) {
			literal := g.lexer.readIdentifier()
			return g.lexer.newToken(token.LookupIdent(literal), literal, line, column), nil
		} else if isDigit(g.lexer.ch) {
			literal, tokType, err := g.lexer.readNumber()
			if err != nil {
				return tok, err
			}
			return g.lexer.newToken(tokType, literal, line, column), nil
		}
		return tok, diag.New(diag.UnexpectedToken, string(g.lexer.ch), line, column)
	}

	g.lexer.readChar()
	return tok, nil
}
