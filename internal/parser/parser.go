package parser

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"rosky/internal/ast"
	"rosky/internal/diag"
	"rosky/internal/evaluator"
	"rosky/internal/log"
	"rosky/internal/object"
	"rosky/internal/token"
)

const DefaultMaxRecursionDepth = 999

type statementFn func(idx, end, scope int) (int, error)

type Options struct {
	Out               io.Writer
	In                io.Reader
	MaxRecursionDepth int
	Logger            *slog.Logger
}

// Parser walks a token slice statement by statement and executes each one
// as it goes. It owns no tables; the variable and function tables are
// handed in so they can outlive a single Run.
type Parser struct {
	tokens []token.Token

	vars  *object.VariableTable
	funcs *object.FunctionTable
	eval  *evaluator.Evaluator

	out      io.Writer
	in       *bufio.Reader
	maxDepth int
	log      *slog.Logger

	statementFns map[string]statementFn

	// per call frame
	recursion         int
	inLoop            bool
	inFunction        bool
	breakRequested    bool
	continueRequested bool
	returnRequested   bool
	returnValue       object.Object
}

func New(vars *object.VariableTable, funcs *object.FunctionTable, opts Options) *Parser {
	p := &Parser{
		vars:     vars,
		funcs:    funcs,
		eval:     evaluator.New(vars),
		out:      opts.Out,
		maxDepth: opts.MaxRecursionDepth,
		log:      opts.Logger,
	}
	if p.out == nil {
		p.out = io.Discard
	}
	if opts.In != nil {
		p.in = bufio.NewReader(opts.In)
	}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxRecursionDepth
	}
	if p.log == nil {
		p.log = slog.Default()
	}

	p.statementFns = map[string]statementFn{
		token.IF:       p.parseIf,
		token.WHILE:    p.parseWhile,
		token.FOR:      p.parseFor,
		token.FUNCTION: p.parseFuncDef,
		token.RETURN:   p.parseReturn,
		token.BREAK:    p.parseJump,
		token.CONTINUE: p.parseJump,
	}

	return p
}

// Run executes a whole token sequence at the top level. The first error
// stops execution and drops whatever the blocks it was inside declared.
func (p *Parser) Run(tokens []token.Token) error {
	p.tokens = tokens
	p.resetFrame()
	if err := p.parse(0, len(tokens), 0); err != nil {
		p.release(1)
		return err
	}
	return nil
}

func (p *Parser) resetFrame() {
	p.recursion = 0
	p.inLoop = false
	p.inFunction = false
	p.breakRequested = false
	p.continueRequested = false
	p.returnRequested = false
	p.returnValue = nil
}

func (p *Parser) interrupted() bool {
	return p.breakRequested || p.continueRequested || p.returnRequested
}

func (p *Parser) frame(scope int) object.Frame {
	return object.Frame{Scope: scope, Recursion: p.recursion}
}

// release drops every variable and function declared at scope or deeper.
func (p *Parser) release(scope int) {
	vars := p.vars.ReleaseAboveScope(scope)
	funcs := p.funcs.ReleaseAboveScope(scope)
	if vars > 0 || funcs > 0 {
		p.log.Log(context.Background(), log.LevelTrace, "released scope",
			slog.Int("scope", scope),
			slog.Int("variables", vars),
			slog.Int("functions", funcs))
	}
}

// parse executes the statements in [start, end) at the given scope.
func (p *Parser) parse(start, end, scope int) error {
	baseScope := scope

	for idx := start; idx < end; idx++ {
		if p.interrupted() {
			return nil
		}

		tok := p.tokens[idx]
		var err error

		switch tok.Type {
		case token.INT, token.FLOAT, token.STRING, token.SYMBOL:
			idx, err = p.parseStatementExpr(idx, end, scope)

		case token.KEYWORD:
			if fn, ok := p.statementFns[tok.Literal]; ok {
				idx, err = fn(idx, end, scope)
			} else {
				idx, err = p.parseStatementExpr(idx, end, scope)
			}

		case token.OPERATOR:
			if _, ok := ast.PrefixName(tok.Literal); !ok {
				return diag.New(diag.SyntaxError, tok.Literal, tok.Line, tok.Column)
			}
			idx, err = p.parseStatementExpr(idx, end, scope)

		case token.CONTROL:
			switch tok.Literal {
			case token.LPAREN, token.LBRACKET:
				idx, err = p.parseStatementExpr(idx, end, scope)
			case token.LBRACE:
				if match := p.findMatching(idx); match < 0 || match >= end {
					return diag.New(diag.UnclosedBrace, "", tok.Line, tok.Column)
				}
				scope++
			case token.RBRACE:
				if scope <= baseScope {
					return diag.New(diag.SyntaxError, tok.Literal, tok.Line, tok.Column)
				}
				p.release(scope)
				scope--
			default:
				return diag.New(diag.SyntaxError, tok.Literal, tok.Line, tok.Column)
			}

		default:
			return diag.New(diag.SyntaxError, tok.Literal, tok.Line, tok.Column)
		}

		if err != nil {
			return err
		}
	}
	return nil
}

// parseStatementExpr evaluates everything up to the next `;` and discards
// the result. It returns the index of the `;`.
func (p *Parser) parseStatementExpr(idx, end, scope int) (int, error) {
	semi := p.findNext(idx, end, token.SEMICOLON)
	if semi < 0 {
		last := p.at(end - 1)
		return idx, diag.New(diag.UnexpectedEOF, "", last.Line, last.Column)
	}
	if _, err := p.parseExpr(idx, semi, scope); err != nil {
		return idx, err
	}
	return semi, nil
}

// runBody executes the statements between a pair of braces one scope
// deeper and releases what they declared.
func (p *Parser) runBody(open, close, scope int) error {
	err := p.parse(open+1, close, scope+1)
	p.release(scope + 1)
	return err
}
