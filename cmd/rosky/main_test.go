package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"rosky/internal/util"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func writeScript(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(util.ConfigEnv, "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRunCommand(t *testing.T) {
	path := writeScript(t, "greet.rosky", "name = scan();\noutln(\"hello \" & name);\n")

	out, errOut, err := execute(t, "world\n", "run", path)
	if err != nil {
		t.Fatalf("unexpected error: %v (%s)", err, errOut)
	}
	if out != "hello world\n" {
		t.Fatalf("output wrong. got=%q", out)
	}
}

func TestRunCommandReportsErrors(t *testing.T) {
	path := writeScript(t, "bad.rosky", "outln(1);\nx = 1 + \"a\";\n")

	out, errOut, err := execute(t, "", "run", "--no-color", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	if out != "1\n" {
		t.Fatalf("output wrong. got=%q", out)
	}
	expected := path + ": Error [Line 2 Column 7]: Operator incompatible: ''+' with types: 'int' and 'string''"
	if !strings.HasPrefix(errOut, expected) {
		t.Fatalf("diagnostic wrong.\nexpected prefix=%q\ngot=%q", expected, errOut)
	}
	if !strings.Contains(errOut, "^ unexpected here") {
		t.Fatalf("diagnostic has no caret: %q", errOut)
	}
}

func TestRunCommandChecksExtension(t *testing.T) {
	path := writeScript(t, "script.txt", "out(1);")

	_, _, err := execute(t, "", "run", path)
	if err == nil || !strings.Contains(err.Error(), "usage: rosky run") {
		t.Fatalf("expected a usage error, got %v", err)
	}

	if _, _, err := execute(t, "", "run"); err == nil {
		t.Fatalf("expected an error without a file")
	}
}

func TestTokensCommand(t *testing.T) {
	path := writeScript(t, "t.rosky", "x = \"a b\";")

	out, errOut, err := execute(t, "", "tokens", path)
	if err != nil {
		t.Fatalf("unexpected error: %v (%s)", err, errOut)
	}

	var entries []tokenEntry
	if err := yaml.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	expected := []tokenEntry{
		{"x", "SYMBOL", 1, 1},
		{"=", "OPERATOR", 1, 3},
		{"a b", "STRING", 1, 5},
		{";", "DELIMITER", 1, 10},
	}
	if len(entries) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(entries))
	}
	for i, e := range expected {
		if entries[i] != e {
			t.Fatalf("entries[%d] wrong. expected=%+v, got=%+v", i, e, entries[i])
		}
	}
}

func TestTokensCommandLexError(t *testing.T) {
	path := writeScript(t, "t.rosky", "x = \"open;")

	_, errOut, err := execute(t, "", "tokens", "--no-color", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	if !strings.Contains(errOut, "Error [Line 1 Column 5]: Unclosed quote") {
		t.Fatalf("diagnostic wrong: %q", errOut)
	}
}

func TestConfigFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "rosky.toml")
	if err := os.WriteFile(cfgPath, []byte("max_recursion_depth = 2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	path := writeScript(t, "deep.rosky", "func f(n) { if n == 0 { return 0; } return f(n - 1); }\nf(5);\n")

	_, errOut, err := execute(t, "", "run", "--no-color", "--config", cfgPath, path)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	if !strings.Contains(errOut, "Maximum recursion depth exceeded") {
		t.Fatalf("diagnostic wrong: %q", errOut)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "rosky version 'vdev'") {
		t.Fatalf("version output wrong: %q", out)
	}
}
