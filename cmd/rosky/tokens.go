package main

import (
	"fmt"
	"io"
	"rosky/internal/diag"
	"rosky/internal/lexer"
	"rosky/internal/token"
	"rosky/internal/util"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type tokenEntry struct {
	Literal string `yaml:"literal"`
	Type    string `yaml:"type"`
	Line    int    `yaml:"line"`
	Column  int    `yaml:"column"`
}

func writeTokens(w io.Writer, tokens []token.Token) error {
	entries := make([]tokenEntry, 0, len(tokens))
	for _, tok := range tokens {
		entries = append(entries, tokenEntry{
			Literal: tok.Literal,
			Type:    string(tok.Type),
			Line:    tok.Line,
			Column:  tok.Column,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}
	return enc.Close()
}

func newTokensCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file.rosky>",
		Short: "Dump the token stream of a script as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := checkSourcePath(path); err != nil {
				return err
			}

			e, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			defer e.Close()

			src, err := util.ReadSource(path)
			if err != nil {
				return err
			}

			tokens, err := lexer.Tokenize(src)
			if err != nil {
				if de, ok := err.(*diag.Error); ok {
					de.Filename = path
				}
				diag.Render(cmd.ErrOrStderr(), err, src, useColor(e.config, cmd.ErrOrStderr()))
				return errReported
			}
			return writeTokens(cmd.OutOrStdout(), tokens)
		},
	}
}
