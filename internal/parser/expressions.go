package parser

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/config"
	"github.com/funvibe/logifold/internal/diagnostics"
	"github.com/funvibe/logifold/internal/typesystem"
)

// nodeFields lists, per node kind, the keys a mapping may carry. The kind
// is named by the first of these keys.
var nodeFields = map[string][]string{
	"const":        {"const", "value", "values", "shape"},
	"array":        {"array", "elements", "shape"},
	"call":         {"call", "result", "rank", "args"},
	"rel":          {"rel", "left", "right", "result"},
	"op":           {"op", "left", "right"},
	"not":          {"not"},
	"convert":      {"convert", "operand"},
	"var":          {"var", "type", "rank", "contiguous"},
	"nullptr":      {"nullptr", "mold"},
	"assumed_type": {"assumed_type", "rank", "contiguous"},
}

var relationalOperators = map[string]ast.RelationalOperator{
	"<":    ast.LT,
	".lt.": ast.LT,
	"<=":   ast.LE,
	".le.": ast.LE,
	"==":   ast.EQ,
	".eq.": ast.EQ,
	"/=":   ast.NE,
	".ne.": ast.NE,
	">=":   ast.GE,
	".ge.": ast.GE,
	">":    ast.GT,
	".gt.": ast.GT,
}

var logicalOperators = map[string]ast.LogicalOperator{
	".and.":  ast.And,
	".or.":   ast.Or,
	".eqv.":  ast.Eqv,
	".neqv.": ast.Neqv,
}

var defaultLogical = typesystem.Of(typesystem.Logical, config.DefaultLogicalKind)

func (p *Parser) parseExpr(n *yaml.Node) (ast.Expr, bool) {
	switch n.Kind {
	case yaml.AliasNode:
		return p.parseExpr(n.Alias)
	case yaml.ScalarNode:
		return p.parseBareScalar(n)
	case yaml.MappingNode:
	default:
		p.errorAt(n.Line, diagnostics.ErrP002, "of YAML kind "+kindName(n))
		return nil, false
	}

	fields := mappingFields(n)
	kind := ""
	for k := range nodeFields {
		if _, ok := fields[k]; ok {
			kind = k
			break
		}
	}
	if kind == "" {
		p.errorAt(n.Line, diagnostics.ErrP002, "without a kind key")
		return nil, false
	}
	if !p.checkFields(n, kind, fields) {
		return nil, false
	}

	switch kind {
	case "const":
		return p.parseConstant(n, fields)
	case "array":
		return p.parseArray(n, fields)
	case "call":
		return p.parseCall(n, fields)
	case "rel":
		return p.parseRelational(n, fields)
	case "op":
		return p.parseLogicalOperation(n, fields)
	case "not":
		operand, ok := p.parseExpr(fields["not"])
		if !ok {
			return nil, false
		}
		return &ast.Not{Operand: operand}, true
	case "convert":
		to, ok := p.typeField(fields["convert"])
		if !ok {
			return nil, false
		}
		operand, ok := p.required(n, fields, "operand")
		if !ok {
			return nil, false
		}
		return &ast.Convert{To: to, Operand: operand}, true
	case "var":
		return p.parseDesignator(n, fields)
	case "nullptr":
		return p.parseNull(fields)
	default: // assumed_type
		rank, ok := p.intField(fields["rank"], 0)
		if !ok {
			return nil, false
		}
		contiguous, ok := p.boolPtrField(fields["contiguous"])
		if !ok {
			return nil, false
		}
		return &ast.AssumedTypeDummy{Name: fields["assumed_type"].Value, Dims: rank, Contiguous: contiguous}, true
	}
}

// checkFields rejects a mapping that names two node kinds or carries a
// key its kind does not use.
func (p *Parser) checkFields(n *yaml.Node, kind string, fields map[string]*yaml.Node) bool {
	allowed := make(map[string]bool, len(nodeFields[kind]))
	for _, f := range nodeFields[kind] {
		allowed[f] = true
	}
	for key, v := range fields {
		if !allowed[key] {
			p.errorAt(v.Line, diagnostics.ErrP001, "unexpected field "+strconv.Quote(key)+" in "+kind+" node")
			return false
		}
	}
	return true
}

func (p *Parser) required(n *yaml.Node, fields map[string]*yaml.Node, key string) (ast.Expr, bool) {
	v, ok := fields[key]
	if !ok {
		p.errorAt(n.Line, diagnostics.ErrP001, "missing field "+strconv.Quote(key))
		return nil, false
	}
	return p.parseExpr(v)
}

func (p *Parser) parseCall(n *yaml.Node, fields map[string]*yaml.Node) (ast.Expr, bool) {
	result := p.logical
	if r, ok := fields["result"]; ok {
		if result, ok = p.typeField(r); !ok {
			return nil, false
		}
	}
	rank, ok := p.intField(fields["rank"], 0)
	if !ok {
		return nil, false
	}
	call := ast.NewCall(fields["call"].Value, result)
	call.Dims = rank
	if args, ok := fields["args"]; ok {
		if args.Kind != yaml.SequenceNode {
			p.errorAt(args.Line, diagnostics.ErrP001, "args must be a sequence")
			return nil, false
		}
		for _, a := range args.Content {
			if a.Kind == yaml.ScalarNode && a.ShortTag() == "!!null" {
				call.Args = append(call.Args, nil)
				continue
			}
			arg, ok := p.parseExpr(a)
			if !ok {
				return nil, false
			}
			call.Args = append(call.Args, arg)
		}
	}
	return call, true
}

func (p *Parser) parseRelational(n *yaml.Node, fields map[string]*yaml.Node) (ast.Expr, bool) {
	opNode := fields["rel"]
	op, ok := relationalOperators[strings.ToLower(opNode.Value)]
	if !ok {
		p.errorAt(opNode.Line, diagnostics.ErrP004, "relational operator", opNode.Value)
		return nil, false
	}
	result := p.logical
	if r, ok := fields["result"]; ok {
		if result, ok = p.typeField(r); !ok {
			return nil, false
		}
	}
	left, ok := p.required(n, fields, "left")
	if !ok {
		return nil, false
	}
	right, ok := p.required(n, fields, "right")
	if !ok {
		return nil, false
	}
	return &ast.Relational{Op: op, Left: left, Right: right, Result: result}, true
}

func (p *Parser) parseLogicalOperation(n *yaml.Node, fields map[string]*yaml.Node) (ast.Expr, bool) {
	opNode := fields["op"]
	name := strings.ToLower(opNode.Value)
	if !strings.HasPrefix(name, ".") {
		name = "." + name + "."
	}
	op, ok := logicalOperators[name]
	if !ok {
		p.errorAt(opNode.Line, diagnostics.ErrP004, "logical operator", opNode.Value)
		return nil, false
	}
	left, ok := p.required(n, fields, "left")
	if !ok {
		return nil, false
	}
	right, ok := p.required(n, fields, "right")
	if !ok {
		return nil, false
	}
	return &ast.LogicalOperation{Op: op, Left: left, Right: right}, true
}

func (p *Parser) parseDesignator(n *yaml.Node, fields map[string]*yaml.Node) (ast.Expr, bool) {
	typeNode, ok := fields["type"]
	if !ok {
		p.errorAt(n.Line, diagnostics.ErrP001, "missing field \"type\"")
		return nil, false
	}
	typ, ok := p.typeField(typeNode)
	if !ok {
		return nil, false
	}
	rank, ok := p.intField(fields["rank"], 0)
	if !ok {
		return nil, false
	}
	contiguous, ok := p.boolPtrField(fields["contiguous"])
	if !ok {
		return nil, false
	}
	return &ast.Designator{Name: fields["var"].Value, Typ: typ, Dims: rank, Contiguous: contiguous}, true
}

func (p *Parser) parseNull(fields map[string]*yaml.Node) (ast.Expr, bool) {
	m, ok := fields["mold"]
	if !ok {
		return &ast.NullPointer{}, true
	}
	mold, ok := p.typeField(m)
	if !ok {
		return nil, false
	}
	return &ast.NullPointer{Mold: &mold}, true
}

func (p *Parser) typeField(n *yaml.Node) (typesystem.Type, bool) {
	t, ok := ParseType(n.Value, p.decls)
	if !ok {
		p.errorAt(n.Line, diagnostics.ErrP003, n.Value)
	}
	return t, ok
}

// intField reads a non-negative integer, def when n is nil.
func (p *Parser) intField(n *yaml.Node, def int) (int, bool) {
	if n == nil {
		return def, true
	}
	v, err := strconv.Atoi(n.Value)
	if err != nil || v < 0 || n.Kind != yaml.ScalarNode {
		p.errorAt(n.Line, diagnostics.ErrP004, "integer", n.Value)
		return 0, false
	}
	return v, true
}

func (p *Parser) boolPtrField(n *yaml.Node) (*bool, bool) {
	if n == nil {
		return nil, true
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		p.errorAt(n.Line, diagnostics.ErrP004, "logical", n.Value)
		return nil, false
	}
	return &b, true
}

// mappingFields indexes the keys of a mapping node. Later duplicates win,
// as they do when decoding into a Go map.
func mappingFields(n *yaml.Node) map[string]*yaml.Node {
	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		fields[n.Content[i].Value] = n.Content[i+1]
	}
	return fields
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
