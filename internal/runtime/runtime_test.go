package runtime

import (
	"bytes"
	"errors"
	"os"
	"rosky/internal/diag"
	"rosky/internal/util"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type script struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Stdin  string `yaml:"stdin"`
	Stdout string `yaml:"stdout"`
	Error  string `yaml:"error"`
}

func loadScripts(t *testing.T, path string) []script {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var scripts []script
	if err := yaml.Unmarshal(data, &scripts); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	if len(scripts) == 0 {
		t.Fatalf("%s holds no scripts", path)
	}
	return scripts
}

func newRuntime(out *bytes.Buffer, stdin string) *Runtime {
	return New(util.Configuration{MaxRecursionDepth: 999}, Options{
		Out: out,
		In:  strings.NewReader(stdin),
	})
}

func TestScripts(t *testing.T) {
	for _, sc := range loadScripts(t, "testdata/scripts.yaml") {
		t.Run(sc.Name, func(t *testing.T) {
			var out bytes.Buffer
			rt := newRuntime(&out, sc.Stdin)
			err := rt.Execute("script.rosky", sc.Source)

			if sc.Error == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			} else {
				want, ok := diag.ParseKind(sc.Error)
				if !ok {
					t.Fatalf("unknown error kind %q in fixture", sc.Error)
				}
				got, ok := diag.KindOf(err)
				if !ok || got != want {
					t.Fatalf("error wrong. expected=%s, got=%v", want, err)
				}
			}

			if out.String() != sc.Stdout {
				t.Fatalf("stdout wrong. expected=%q, got=%q", sc.Stdout, out.String())
			}
		})
	}
}

func TestExecuteLabelsErrors(t *testing.T) {
	var out bytes.Buffer
	rt := newRuntime(&out, "")

	err := rt.Execute("main.rosky", "x = 1;\nout(y);")
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *diag.Error, got %T (%v)", err, err)
	}
	if de.Filename != "main.rosky" || de.Line != 2 || de.Column != 5 {
		t.Fatalf("error wrong: %+v", de)
	}
	if !strings.HasPrefix(err.Error(), "main.rosky: Error [Line 2 Column 5]") {
		t.Fatalf("message wrong: %q", err.Error())
	}
}

func TestExecuteKeepsState(t *testing.T) {
	var out bytes.Buffer
	rt := newRuntime(&out, "")

	inputs := []string{
		"func greet(n) {\n  return \"hi \" & n;\n}",
		"who = \"there\";",
		"bad = who + 1;",
		"out(greet(who));",
	}
	for i, input := range inputs {
		err := rt.Execute("<repl>", input)
		if i == 2 {
			if kind, _ := diag.KindOf(err); kind != diag.OperatorIncompatible {
				t.Fatalf("inputs[%d] - expected OperatorIncompatible, got %v", i, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("inputs[%d] - unexpected error: %v", i, err)
		}
	}
	if out.String() != "hi there" {
		t.Fatalf("output wrong. expected=%q, got=%q", "hi there", out.String())
	}
}

func TestRuntimesAreIndependent(t *testing.T) {
	var out1, out2 bytes.Buffer
	a := newRuntime(&out1, "")
	b := newRuntime(&out2, "")

	if err := a.Execute("a", "x = 1;"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind, _ := diag.KindOf(b.Execute("b", "out(x);")); kind != diag.UnrecognizedSymbol {
		t.Fatalf("second runtime should not see x")
	}
	if a.RunID == b.RunID {
		t.Fatalf("run ids should differ")
	}
}

func TestTokens(t *testing.T) {
	rt := newRuntime(&bytes.Buffer{}, "")
	tokens, err := rt.Tokens("a = 1;\r\nb;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 6 {
		t.Fatalf("expected 6 tokens, got %d", len(tokens))
	}
	if tokens[4].Line != 2 || tokens[4].Column != 1 {
		t.Fatalf("position wrong: %v", tokens[4])
	}
}
