package lexer

import (
	"rosky/internal/diag"
	"rosky/internal/token"
	"strings"
)

type StringTokenizer struct {
	lexer *Lexer
}

func NewStringTokenizer(lexer *Lexer) *StringTokenizer {
	return &StringTokenizer{lexer: lexer}
}

// NextToken reads a string literal; the lexer must be positioned on the
// opening quote. Strings may span lines.
func (s *StringTokenizer) NextToken() (token.Token, error) {
	var result strings.Builder
	line, column := s.lexer.line, s.lexer.column

	// Fall back to the general tokenizer mode after the string ends
	defer s.lexer.switchMode(NewGeneralTokenizer(s.lexer))

	s.lexer.readChar() // consume the opening `"`

	for {
		if s.lexer.atEOF() {
			return token.Token{}, diag.New(diag.UnclosedQuote, "", line, column)
		}

		if s.lexer.ch == '"' {
			s.lexer.readChar() // Consume the closing `"`
			break
		}

		if s.lexer.ch == '\\' {
			s.lexer.readChar() // Move to the escaped character
			if s.lexer.atEOF() {
				return token.Token{}, diag.New(diag.UnclosedQuote, "", line, column)
			}
			switch s.lexer.ch {
			case 'n':
				result.WriteRune('\n')
			case 't':
				result.WriteRune('\t')
			case '\\':
				result.WriteRune('\\')
			case '0':
				result.WriteRune(0)
			case '"':
				result.WriteRune('"')
			default:
				return token.Token{}, diag.New(diag.InvalidEscape, string(s.lexer.ch), s.lexer.line, s.lexer.column)
			}
		} else {
			result.WriteRune(s.lexer.ch)
		}

		s.lexer.readChar()
	}

	return s.lexer.newToken(token.STRING, result.String(), line, column), nil
}
