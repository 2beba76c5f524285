// Package parser decodes YAML expression documents into typed ast trees.
// It stands in for name resolution: every node arrives with its type, so
// the folder never has to infer one.
//
// A file holds one or more documents, each an analysis unit:
//
//	unit: demo
//	types:
//	  - name: base
//	  - name: child
//	    extends: base
//	entries:
//	  - name: all_true
//	    expr:
//	      call: all
//	      args:
//	        - {const: logical(4), values: [true, true]}
//	  - name: small
//	    expr: {rel: "<", left: 3, right: 5}
//
// Bare YAML scalars are constants of the default kind of their category.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/diagnostics"
	"github.com/funvibe/logifold/internal/typesystem"
)

// Document is one decoded analysis unit.
type Document struct {
	Name    string
	Line    int
	Types   map[string]*typesystem.TypeDecl
	Entries []*ast.Entry
}

type documentNode struct {
	Unit    string         `yaml:"unit"`
	Types   []typeDeclNode `yaml:"types"`
	Entries []entryNode    `yaml:"entries"`
}

type typeDeclNode struct {
	Name    string `yaml:"name"`
	Extends string `yaml:"extends"`
	Line    int    `yaml:"-"`
}

// UnmarshalYAML keeps the line of the declaration. Decoding a node is not
// strict, so unknown keys are rejected here.
func (t *typeDeclNode) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			switch key := n.Content[i]; key.Value {
			case "name", "extends":
			default:
				return &yaml.TypeError{Errors: []string{
					fmt.Sprintf("line %d: field %s not found in type declaration", key.Line, key.Value),
				}}
			}
		}
	}
	type plain typeDeclNode
	var v plain
	if err := n.Decode(&v); err != nil {
		return err
	}
	*t = typeDeclNode(v)
	t.Line = n.Line
	return nil
}

type entryNode struct {
	Name string    `yaml:"name"`
	Expr yaml.Node `yaml:"expr"`
}

// Parser decodes the documents of one file.
type Parser struct {
	file    string
	logical typesystem.Type // result type of relations and calls that name none
	decls   map[string]*typesystem.TypeDecl
	errors  []*diagnostics.DiagnosticError
}

func New(file string) *Parser {
	return &Parser{file: file, logical: defaultLogical}
}

// SetDefaultLogicalKind changes the kind of untyped logical results and of
// bare true/false literals.
func (p *Parser) SetDefaultLogicalKind(kind int) {
	p.logical = typesystem.Of(typesystem.Logical, kind)
}

// Parse decodes every document in src. Entries that fail to decode are
// reported and left out; the rest of their document is kept.
func Parse(file string, src []byte) ([]*Document, []*diagnostics.DiagnosticError) {
	p := New(file)
	docs := p.ParseAll(src)
	return docs, p.Errors()
}

func (p *Parser) Errors() []*diagnostics.DiagnosticError {
	return p.errors
}

func (p *Parser) ParseAll(src []byte) []*Document {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var docs []*Document
	for index := 1; ; index++ {
		var node documentNode
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return docs
		}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			// the document was read in full; skip it and go on
			for _, msg := range typeErr.Errors {
				line, text := yamlErrorLine(msg)
				p.errorAt(line, diagnostics.ErrP001, text)
			}
			continue
		}
		if err != nil {
			// the decoder cannot resynchronise after a syntax error
			line, text := yamlErrorLine(err.Error())
			p.errorAt(line, diagnostics.ErrP001, text)
			return docs
		}
		docs = append(docs, p.parseDocument(&node, index))
	}
}

func (p *Parser) parseDocument(node *documentNode, index int) *Document {
	doc := &Document{Name: node.Unit}
	if doc.Name == "" {
		doc.Name = fmt.Sprintf("unit%d", index)
	}
	if len(node.Entries) > 0 {
		doc.Line = node.Entries[0].Expr.Line
	}
	p.decls = p.declareTypes(node.Types)
	doc.Types = p.decls

	for i := range node.Entries {
		en := &node.Entries[i]
		if en.Expr.Kind == 0 {
			p.errorAt(doc.Line, diagnostics.ErrP001, fmt.Sprintf("entry %q has no expr", en.Name))
			continue
		}
		expr, ok := p.parseExpr(&en.Expr)
		if !ok {
			continue
		}
		name := en.Name
		if name == "" {
			name = fmt.Sprintf("entry%d", i+1)
		}
		doc.Entries = append(doc.Entries, &ast.Entry{Name: name, Expr: expr})
	}
	return doc
}

// declareTypes creates the derived type declarations of a document. A
// parent may be declared after its extension.
func (p *Parser) declareTypes(nodes []typeDeclNode) map[string]*typesystem.TypeDecl {
	decls := make(map[string]*typesystem.TypeDecl, len(nodes))
	for _, n := range nodes {
		if n.Name == "" {
			p.errorAt(n.Line, diagnostics.ErrP003, "type without a name")
			continue
		}
		decls[n.Name] = &typesystem.TypeDecl{Name: n.Name}
	}
	for _, n := range nodes {
		if n.Extends == "" || decls[n.Name] == nil {
			continue
		}
		parent, ok := decls[n.Extends]
		if !ok {
			p.errorAt(n.Line, diagnostics.ErrP003, "extends("+n.Extends+")")
			continue
		}
		if parent.Extends(decls[n.Name]) {
			p.errorAt(n.Line, diagnostics.ErrP003, n.Name+" extends itself")
			continue
		}
		decls[n.Name].Parent = parent
	}
	return decls
}

var yamlLinePattern = regexp.MustCompile(`^(?:yaml: )?line (\d+): (.*)$`)

// yamlErrorLine splits a yaml.v3 message into its line and text. Messages
// without a line are reported at line 0.
func yamlErrorLine(msg string) (int, string) {
	m := yamlLinePattern.FindStringSubmatch(msg)
	if m == nil {
		return 0, msg
	}
	line, _ := strconv.Atoi(m[1])
	return line, m[2]
}

func (p *Parser) errorAt(line int, code diagnostics.ErrorCode, args ...interface{}) {
	p.errors = append(p.errors, diagnostics.NewErrorAt(code, p.file, line, args...))
}
