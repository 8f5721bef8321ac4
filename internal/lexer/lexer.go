package lexer

import (
	"rosky/internal/diag"
	"rosky/internal/token"
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	input        string
	position     int  // current byte position in input (points to start of current rune)
	readPosition int  // next byte position in input (start of next rune)
	ch           rune // current rune under examination; 0 means EOF
	line         int  // line of ch, 1-based
	column       int  // column of ch, 1-based

	currentMode Tokenizer // Current tokenizer strategy
}

type Tokenizer interface {
	NextToken() (token.Token, error)
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.switchMode(NewGeneralTokenizer(l))
	l.readChar()
	return l
}

// Tokenize scans the whole input. Lexing and parsing are never interleaved,
// the sequence is returned in one piece.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) switchMode(mode Tokenizer) {
	l.currentMode = mode
}

func (l *Lexer) NextToken() (token.Token, error) {
	return l.currentMode.NextToken()
}

// handleCompoundToken emits the single character operator, or the two
// character form when the next rune is ch1.
func (l *Lexer) handleCompoundToken(ch1 rune) token.Token {
	line, column := l.line, l.column
	if l.peekChar() == ch1 {
		first := l.ch
		l.readChar()
		return l.newToken(token.OPERATOR, string(first)+string(l.ch), line, column)
	}
	return l.newToken(token.OPERATOR, string(l.ch), line, column)
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch {
		case ' ', '\t', '\n', '\r', '\v':
			l.readChar()
		case '#':
			l.skipToLineEnd()
		default:
			return
		}
	}
}

func (l *Lexer) skipToLineEnd() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readChar advances by one UTF-8 rune, updating byte positions and the
// line/column counters
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
}

// peekChar returns the next rune without advancing; returns 0 at EOF
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// peekTwoChars returns the rune after next without advancing; returns 0 if unavailable
func (l *Lexer) peekTwoChars() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	idx := l.readPosition + size
	if idx >= len(l.input) {
		return 0
	}
	r2, _ := utf8.DecodeRuneInString(l.input[idx:])
	return r2
}

func (l *Lexer) atEOF() bool {
	return l.ch == 0 && l.position >= len(l.input)
}

// readIdentifier returns the substring (bytes) covering the identifier runes
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber collects digits and at most one '.'. A second '.' or a
// trailing '.' is an unexpected token.
func (l *Lexer) readNumber() (string, token.TokenType, error) {
	start := l.position
	tokType := token.TokenType(token.INT)
	for isDigit(l.ch) || l.ch == '.' {
		if l.ch == '.' {
			if tokType == token.FLOAT {
				return "", "", diag.New(diag.UnexpectedToken, l.input[start:l.position]+".", l.line, l.column)
			}
			tokType = token.FLOAT
		}
		l.readChar()
	}
	literal := l.input[start:l.position]
	if literal[len(literal)-1] == '.' {
		return "", "", diag.New(diag.UnexpectedToken, literal, l.line, l.column)
	}
	return literal, tokType, nil
}

func (l *Lexer) newToken(tokenType token.TokenType, literal string, line, column int) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Line: line, Column: column}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
