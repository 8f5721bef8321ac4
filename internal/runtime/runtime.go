package runtime

import (
	"errors"
	"io"
	"log/slog"
	"rosky/internal/diag"
	"rosky/internal/lexer"
	"rosky/internal/object"
	"rosky/internal/parser"
	"rosky/internal/token"
	"rosky/internal/util"
	"time"

	"github.com/google/uuid"
)

type Options struct {
	Out    io.Writer
	In     io.Reader
	Logger *slog.Logger
}

// Runtime is one interpreter instance. Variables and functions live as long
// as the Runtime, so successive Execute calls share them.
type Runtime struct {
	Config util.Configuration
	RunID  string

	vars   *object.VariableTable
	funcs  *object.FunctionTable
	parser *parser.Parser
	log    *slog.Logger
}

func New(config util.Configuration, opts Options) *Runtime {
	runID := uuid.New().String()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("run_id", runID))

	vars := object.NewVariableTable()
	funcs := object.NewFunctionTable()

	return &Runtime{
		Config: config,
		RunID:  runID,
		vars:   vars,
		funcs:  funcs,
		parser: parser.New(vars, funcs, parser.Options{
			Out:               opts.Out,
			In:                opts.In,
			MaxRecursionDepth: config.MaxRecursionDepth,
			Logger:            logger,
		}),
		log: logger,
	}
}

// Tokens lexes src without running it.
func (r *Runtime) Tokens(src string) ([]token.Token, error) {
	return lexer.Tokenize(util.NormalizeNewlines(src))
}

// Execute lexes and runs src. filename is only used to label errors.
func (r *Runtime) Execute(filename, src string) error {
	start := time.Now()
	log := r.log.With(slog.String("file", filename))

	tokens, err := r.Tokens(src)
	if err != nil {
		return r.fail(log, filename, err)
	}
	log.Debug("tokenized", slog.Int("tokens", len(tokens)))

	if err := r.parser.Run(tokens); err != nil {
		return r.fail(log, filename, err)
	}

	log.Debug("finished",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("variables", r.vars.Len()),
		slog.Int("functions", r.funcs.Len()))
	return nil
}

func (r *Runtime) fail(log *slog.Logger, filename string, err error) error {
	var de *diag.Error
	if errors.As(err, &de) {
		de.Filename = filename
		log.Info("run failed",
			slog.String("kind", de.Kind.String()),
			slog.Int("line", de.Line),
			slog.Int("column", de.Column))
		return de
	}
	log.Error("run failed", slog.Any("error", err))
	return err
}
