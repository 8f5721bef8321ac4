package token

import "fmt"

type TokenType string

const (
	EOF = "EOF"

	SYMBOL    = "SYMBOL"    // foo, _bar
	OPERATOR  = "OPERATOR"  // + - == <-> and ...
	DELIMITER = "DELIMITER" // ; , .
	INT       = "INT"       // 1343456
	FLOAT     = "FLOAT"     // 3.14
	STRING    = "STRING"    // "foobar"
	CONTROL   = "CONTROL"   // ( ) { } [ ]
	KEYWORD   = "KEYWORD"   // if, while, ...
)

// Operators
const (
	ASSIGN       = "="
	PLUS         = "+"
	MINUS        = "-"
	ASTERISK     = "*"
	SLASH        = "/"
	DOUBLE_SLASH = "//"
	PERCENT      = "%"
	BANG         = "!"
	AT           = "@"
	AMPERSAND    = "&"
	SWAP         = "<->"

	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	LT_EQ  = "<="
	GT     = ">"
	GT_EQ  = ">="

	PLUS_ASSIGN         = "+="
	MINUS_ASSIGN        = "-="
	ASTERISK_ASSIGN     = "*="
	SLASH_ASSIGN        = "/="
	DOUBLE_SLASH_ASSIGN = "//="
	PERCENT_ASSIGN      = "%="
	AMPERSAND_ASSIGN    = "&="

	AND = "and"
	OR  = "or"
	XOR = "xor"
)

// Delimiters and control structures
const (
	SEMICOLON = ";"
	COMMA     = ","
	PERIOD    = "."

	LPAREN   = "("
	RPAREN   = ")"
	LBRACE   = "{"
	RBRACE   = "}"
	LBRACKET = "["
	RBRACKET = "]"
)

// Keywords
const (
	IF       = "if"
	ELSIF    = "elsif"
	ELSE     = "else"
	WHILE    = "while"
	FOR      = "for"
	IN       = "in"
	FUNCTION = "func"
	RETURN   = "return"
	BREAK    = "break"
	CONTINUE = "continue"
	TRUE     = "true"
	FALSE    = "false"
	NULL     = "null"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int // 1-based
	Column  int // 1-based
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) %d:%d", t.Type, t.Literal, t.Line, t.Column)
}

var keywords = map[string]bool{
	IF:       true,
	ELSIF:    true,
	ELSE:     true,
	WHILE:    true,
	FOR:      true,
	IN:       true,
	FUNCTION: true,
	RETURN:   true,
	BREAK:    true,
	CONTINUE: true,
	TRUE:     true,
	FALSE:    true,
	NULL:     true,
}

// word operators lex like identifiers but behave as binary operators
var wordOperators = map[string]bool{
	AND: true,
	OR:  true,
	XOR: true,
}

func LookupIdent(ident string) TokenType {
	if wordOperators[ident] {
		return OPERATOR
	}
	if keywords[ident] {
		return KEYWORD
	}
	return SYMBOL
}

func IsKeyword(ident string) bool {
	return keywords[ident] || wordOperators[ident]
}

