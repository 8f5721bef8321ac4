package lexer

import (
	"rosky/internal/diag"
	"rosky/internal/token"
	"strings"
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `x = 5;
y += 2.5; # trailing comment
s = "a\tb" & x;
a <-> b;
q //= 2 // 3 / 4;
if x >= 1 and !done { out(g[0]); }
p = @x; *p == null;
ptr.size();`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.SYMBOL, "x"},
		{token.OPERATOR, "="},
		{token.INT, "5"},
		{token.DELIMITER, ";"},

		{token.SYMBOL, "y"},
		{token.OPERATOR, "+="},
		{token.FLOAT, "2.5"},
		{token.DELIMITER, ";"},

		{token.SYMBOL, "s"},
		{token.OPERATOR, "="},
		{token.STRING, "a\tb"},
		{token.OPERATOR, "&"},
		{token.SYMBOL, "x"},
		{token.DELIMITER, ";"},

		{token.SYMBOL, "a"},
		{token.OPERATOR, "<->"},
		{token.SYMBOL, "b"},
		{token.DELIMITER, ";"},

		{token.SYMBOL, "q"},
		{token.OPERATOR, "//="},
		{token.INT, "2"},
		{token.OPERATOR, "//"},
		{token.INT, "3"},
		{token.OPERATOR, "/"},
		{token.INT, "4"},
		{token.DELIMITER, ";"},

		{token.KEYWORD, "if"},
		{token.SYMBOL, "x"},
		{token.OPERATOR, ">="},
		{token.INT, "1"},
		{token.OPERATOR, "and"},
		{token.OPERATOR, "!"},
		{token.SYMBOL, "done"},
		{token.CONTROL, "{"},
		{token.SYMBOL, "out"},
		{token.CONTROL, "("},
		{token.SYMBOL, "g"},
		{token.CONTROL, "["},
		{token.INT, "0"},
		{token.CONTROL, "]"},
		{token.CONTROL, ")"},
		{token.DELIMITER, ";"},
		{token.CONTROL, "}"},

		{token.SYMBOL, "p"},
		{token.OPERATOR, "="},
		{token.OPERATOR, "@"},
		{token.SYMBOL, "x"},
		{token.DELIMITER, ";"},
		{token.OPERATOR, "*"},
		{token.SYMBOL, "p"},
		{token.OPERATOR, "=="},
		{token.KEYWORD, "null"},
		{token.DELIMITER, ";"},

		{token.SYMBOL, "ptr"},
		{token.DELIMITER, "."},
		{token.SYMBOL, "size"},
		{token.CONTROL, "("},
		{token.CONTROL, ")"},
		{token.DELIMITER, ";"},

		{token.EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q '%q', got=%q: '%q'",
				i, tt.expectedType, tt.expectedLiteral, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestTokenPositions(t *testing.T) {
	input := "a = 1;\n  b\n\"x\ny\" z"

	tests := []struct {
		literal string
		line    int
		column  int
	}{
		{"a", 1, 1},
		{"=", 1, 3},
		{"1", 1, 5},
		{";", 1, 6},
		{"b", 2, 3},
		{"x\ny", 3, 1},
		{"z", 4, 4},
	}

	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != len(tests) {
		t.Fatalf("expected %d tokens, got %d: %v", len(tests), len(tokens), tokens)
	}

	for i, tt := range tests {
		tok := tokens[i]
		if tok.Literal != tt.literal || tok.Line != tt.line || tok.Column != tt.column {
			t.Errorf("tests[%d] - expected %q at %d:%d, got %q at %d:%d",
				i, tt.literal, tt.line, tt.column, tok.Literal, tok.Line, tok.Column)
		}
	}
}

func TestNextStringToken(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"\n\t\\\""`, "\n\t\\\""},
		{`"nul\0byte"`, "nul\x00byte"},
		{`""`, ""},
		{`"héllo wörld"`, "héllo wörld"},
		{"\"multi\nline\"", "multi\nline"},
	}

	for i, tt := range tests {
		tokens, err := Tokenize(tt.input)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if len(tokens) != 1 || tokens[0].Type != token.STRING {
			t.Fatalf("tests[%d] - expected a single STRING token, got %v", i, tokens)
		}
		if tokens[0].Literal != tt.expected {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expected, tokens[0].Literal)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   diag.Kind
		line   int
		column int
	}{
		{"second dot", "x = 1.2.3;", diag.UnexpectedToken, 1, 8},
		{"trailing dot", "x = 1.;", diag.UnexpectedToken, 1, 7},
		{"unclosed quote", "x = 1;\ns = \"abc", diag.UnclosedQuote, 2, 5},
		{"unclosed after escape", `"abc\`, diag.UnclosedQuote, 1, 1},
		{"invalid escape", `"a\qb"`, diag.InvalidEscape, 1, 4},
		{"stray character", "x = $;", diag.UnexpectedToken, 1, 5},
		{"backtick", "`", diag.UnexpectedToken, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if err == nil {
				t.Fatalf("expected %s, got no error", tt.kind)
			}
			kind, ok := diag.KindOf(err)
			if !ok || kind != tt.kind {
				t.Fatalf("expected %s, got %v", tt.kind, err)
			}
			de := err.(*diag.Error)
			if de.Line != tt.line || de.Column != tt.column {
				t.Errorf("expected position %d:%d, got %d:%d", tt.line, tt.column, de.Line, de.Column)
			}
		})
	}
}

// Joining the lexemes of a source without strings, whitespace or comments
// reproduces its meaningful characters.
func TestLexemesReproduceSource(t *testing.T) {
	input := "x=1+2.5*y; # note\nif (x >= 3) {\n\tout(x);\n}\nz <-> w;"
	want := "x=1+2.5*y;if(x>=3){out(x);}z<->w;"

	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Literal)
	}
	if sb.String() != want {
		t.Fatalf("expected %q, got %q", want, sb.String())
	}
}
