package repl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"rosky/internal/diag"
	"rosky/internal/lexer"
	"rosky/internal/runtime"
	"rosky/internal/token"
	"strings"

	"github.com/peterh/liner"
)

const (
	PROMPT      = "rosky> "
	CONT_PROMPT = "   ... "
	QUIT        = ":quit"
)

// lineReader is the part of *liner.State the loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Session feeds complete inputs to a single runtime so variables and
// functions persist between them.
type Session struct {
	Runtime *runtime.Runtime
	Out     io.Writer
	Err     io.Writer
	Color   bool
}

// Start runs an interactive session on the terminal until :quit or EOF.
// History is loaded from and saved to historyFile when it is set.
func Start(s *Session, historyFile string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			} else {
				slog.Warn("could not save history",
					slog.String("file", historyFile),
					slog.Any("error", err))
			}
		}()
	}

	fmt.Fprintf(s.Out, "rosky %s, type %s to exit\n", s.Runtime.Config.Version, QUIT)
	return s.loop(ln)
}

func (s *Session) loop(r lineReader) error {
	for {
		src, ok, err := readInput(r)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(s.Out)
			return nil
		}

		trimmed := strings.TrimSpace(src)
		switch {
		case trimmed == "":
			continue
		case trimmed == QUIT:
			return nil
		case strings.HasPrefix(trimmed, ":"):
			fmt.Fprintf(s.Out, "unknown command. Type %s to exit.\n", QUIT)
			continue
		}

		r.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		s.Eval(src)
	}
}

// Eval runs one input and reports its error, if any. The session carries
// on either way.
func (s *Session) Eval(src string) {
	if err := s.Runtime.Execute("", src); err != nil {
		diag.Render(s.Err, err, src, s.Color)
	}
	// out() leaves the cursor mid-line
	fmt.Fprintln(s.Out)
}

// readInput collects lines until they form a complete input. ok is false at
// end of input.
func readInput(r lineReader) (string, bool, error) {
	var b strings.Builder
	for {
		prompt := PROMPT
		if b.Len() > 0 {
			prompt = CONT_PROMPT
		}
		line, err := r.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("read input: %w", err)
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || Complete(src) {
			return src, true, nil
		}
	}
}

// Complete reports whether src can be run as is: every bracket is closed
// and the input ends with `;` or `}`. Input with a lexical error other than
// an open string is complete so the error gets reported.
func Complete(src string) bool {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		kind, _ := diag.KindOf(err)
		return kind != diag.UnclosedQuote
	}
	if len(tokens) == 0 {
		return true
	}

	depth := 0
	for _, tok := range tokens {
		if tok.Type != token.CONTROL {
			continue
		}
		switch tok.Literal {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		default:
			depth--
		}
	}
	if depth > 0 {
		return false
	}

	last := tokens[len(tokens)-1]
	return last.Literal == token.SEMICOLON || last.Literal == token.RBRACE
}
