// Package logifold folds logical expression documents from Go programs.
//
//	f := logifold.New(logifold.WithDefaultLogicalKind(1))
//	units, err := f.Fold("inline.yaml", src)
//	for _, e := range units[0].Entries {
//		fmt.Println(e.Name, e.Source, "=>", e.Folded)
//	}
package logifold

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/config"
	"github.com/funvibe/logifold/internal/fold"
	"github.com/funvibe/logifold/internal/parser"
	"github.com/funvibe/logifold/internal/pipeline"
	"github.com/funvibe/logifold/internal/prettyprinter"
	"github.com/funvibe/logifold/pkg/ext"
)

// Folder runs the parse and fold stages over expression documents.
type Folder struct {
	cfg        *config.Config
	logger     *slog.Logger
	contiguity ext.ContiguityAnalyzer
	marshaller *Marshaller

	// kind overrides, applied on top of cfg once every option has run
	logicalKind, realKind int
}

// Option configures a Folder.
type Option func(*Folder)

// WithConfig replaces the built-in settings. The Folder keeps its own
// copy; cfg is never modified.
func WithConfig(cfg *config.Config) Option {
	return func(f *Folder) {
		c := *cfg
		f.cfg = &c
	}
}

// WithDefaultLogicalKind and WithDefaultRealKind override the kinds of
// whatever configuration is in effect, wherever they appear among the
// options.
func WithDefaultLogicalKind(kind int) Option {
	return func(f *Folder) { f.logicalKind = kind }
}

func WithDefaultRealKind(kind int) Option {
	return func(f *Folder) { f.realKind = kind }
}

// WithLogger receives a Debug record for every folded entry.
func WithLogger(l *slog.Logger) Option {
	return func(f *Folder) { f.logger = l }
}

// WithContiguity answers IS_CONTIGUOUS from the host's own analysis.
func WithContiguity(a ext.ContiguityAnalyzer) Option {
	return func(f *Folder) { f.contiguity = a }
}

// New creates a Folder with the built-in settings.
func New(opts ...Option) *Folder {
	f := &Folder{
		cfg:        config.Default(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		marshaller: NewMarshaller(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logicalKind != 0 {
		f.cfg.DefaultLogicalKind = f.logicalKind
	}
	if f.realKind != 0 {
		f.cfg.DefaultRealKind = f.realKind
	}
	return f
}

// Diagnostic is a message attached to a unit or file.
type Diagnostic struct {
	Code    string
	File    string
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: error[%s]: %s", d.File, d.Line, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: error[%s]: %s", d.File, d.Code, d.Message)
}

// Entry is one folded expression.
type Entry struct {
	Name   string
	Source string // the expression as written
	Folded string // the folded expression

	// Constant is set when folding produced a constant; Value and Shape
	// then hold it as Go data.
	Constant bool
	Value    interface{}
	Shape    []int
}

// Decode stores the folded constant into target, converting numbers to
// the target's width. It fails when the entry did not fold to a constant.
func (e Entry) Decode(target interface{}) error {
	if !e.Constant {
		return fmt.Errorf("%s did not fold to a constant: %s", e.Name, e.Folded)
	}
	return NewMarshaller().decodeValue(e.Value, target)
}

// Unit is one document of a source.
type Unit struct {
	ID          string
	Name        string
	Entries     []Entry
	Diagnostics []Diagnostic
}

// Fold parses src and folds every entry of every document. Problems with
// the source itself are returned as an error; folding diagnostics are
// attached to their unit.
func (f *Folder) Fold(name string, src []byte) ([]Unit, error) {
	if err := f.cfg.Validate(); err != nil {
		return nil, err
	}

	ctx := pipeline.NewPipelineContext(name, src, f.cfg)
	p := pipeline.New(
		&parser.ParserProcessor{},
		&fold.FoldProcessor{Logger: f.logger, Contiguity: f.contiguity},
	)
	ctx = p.Run(ctx)

	if len(ctx.Errors) > 0 {
		errMsg := "errors in expression document:\n"
		for _, e := range ctx.Errors {
			errMsg += fmt.Sprintf("%s\n", e.Error())
		}
		return nil, fmt.Errorf("%s", errMsg)
	}

	units := make([]Unit, 0, len(ctx.Units))
	for _, u := range ctx.Units {
		unit := Unit{ID: u.ID.String(), Name: u.Name}
		for _, e := range u.Entries {
			entry, err := f.entry(e)
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", u.Name, e.Name, err)
			}
			unit.Entries = append(unit.Entries, entry)
		}
		for _, d := range u.Diagnostics {
			unit.Diagnostics = append(unit.Diagnostics, Diagnostic{
				Code:    string(d.Code),
				File:    d.File,
				Line:    d.Line,
				Message: d.Message,
			})
		}
		units = append(units, unit)
	}
	return units, nil
}

// FoldFile reads and folds a document file.
func (f *Folder) FoldFile(path string) ([]Unit, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return f.Fold(path, content)
}

func (f *Folder) entry(e *ast.Entry) (Entry, error) {
	out := Entry{
		Name:   e.Name,
		Source: prettyprinter.Print(e.Expr),
		Folded: prettyprinter.Print(e.Folded),
	}
	c, ok := e.Folded.(*ast.Constant)
	if !ok {
		return out, nil
	}
	v, err := f.marshaller.FromConstant(c)
	if err != nil {
		return out, err
	}
	out.Constant = true
	out.Value = v
	out.Shape = c.Shape()
	return out, nil
}
