package diag

import (
	"fmt"
	"io"
	"rosky/internal/util"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerColor  = lipgloss.Color("9")
	contextColor = lipgloss.Color("8")
)

// Render writes err to w. A *Error with a known position is followed by the
// surrounding source lines and a caret when src is available. With color
// set the output is styled for a terminal.
func Render(w io.Writer, err error, src string, color bool) {
	if err == nil {
		return
	}

	header := err.Error()
	var context string
	if de, ok := err.(*Error); ok && src != "" && de.Line > 0 {
		context = util.GetContextLines(src, de.Line, de.Column)
	}

	if color {
		r := lipgloss.NewRenderer(w)
		header = r.NewStyle().Bold(true).Foreground(headerColor).Render(header)
		if context != "" {
			context = r.NewStyle().Foreground(contextColor).Render(context)
		}
	}

	fmt.Fprintln(w, header)
	if context != "" {
		fmt.Fprintln(w, context)
	}
}
