package parser

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/config"
	"github.com/funvibe/logifold/internal/diagnostics"
	"github.com/funvibe/logifold/internal/scalar"
	"github.com/funvibe/logifold/internal/typesystem"
)

var typePattern = regexp.MustCompile(`^\s*([A-Za-z]+)\s*(?:\(\s*([^)]*?)\s*\))?\s*$`)

var defaultKinds = map[typesystem.Category]int{
	typesystem.Integer:   config.DefaultIntegerKind,
	typesystem.Real:      config.DefaultRealKind,
	typesystem.Complex:   config.DefaultRealKind,
	typesystem.Character: config.DefaultCharacterKind,
	typesystem.Logical:   config.DefaultLogicalKind,
}

// ParseType reads a type spelled as in a declaration: logical, integer(8),
// real(kind=2), type(t), class(t, k=4) or class(*). Derived type names are
// looked up in decls.
func ParseType(s string, decls map[string]*typesystem.TypeDecl) (typesystem.Type, bool) {
	m := typePattern.FindStringSubmatch(s)
	if m == nil {
		return typesystem.Type{}, false
	}
	keyword := strings.ToLower(m[1])
	cat, ok := typesystem.ParseCategory(keyword)
	if !ok {
		return typesystem.Type{}, false
	}
	inner := m[2]
	if cat == typesystem.Derived {
		return parseDerivedType(keyword == "class", inner, decls)
	}
	if inner == "" {
		return typesystem.Of(cat, defaultKinds[cat]), true
	}
	inner = strings.TrimSpace(strings.TrimPrefix(strings.ToLower(inner), "kind="))
	kind, err := strconv.Atoi(inner)
	if err != nil || !typesystem.IsValidKind(cat, kind) {
		return typesystem.Type{}, false
	}
	return typesystem.Of(cat, kind), true
}

func parseDerivedType(polymorphic bool, inner string, decls map[string]*typesystem.TypeDecl) (typesystem.Type, bool) {
	if inner == "*" {
		return typesystem.UnlimitedPolymorphic(), true
	}
	parts := strings.Split(inner, ",")
	decl, ok := decls[strings.TrimSpace(parts[0])]
	if !ok {
		return typesystem.Type{}, false
	}
	spec := &typesystem.DerivedTypeSpec{Decl: decl}
	for _, part := range parts[1:] {
		name, value, found := strings.Cut(part, "=")
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if !found || err != nil {
			return typesystem.Type{}, false
		}
		if spec.Params == nil {
			spec.Params = make(map[string]int)
		}
		spec.Params[strings.ToLower(strings.TrimSpace(name))] = v
	}
	if polymorphic {
		return typesystem.ClassOf(spec), true
	}
	return typesystem.TypeOf(spec), true
}

// parseBareScalar turns a plain YAML scalar into a default-kind constant
// of the category its tag implies.
func (p *Parser) parseBareScalar(n *yaml.Node) (ast.Expr, bool) {
	var cat typesystem.Category
	switch n.ShortTag() {
	case "!!bool":
		cat = typesystem.Logical
	case "!!int":
		cat = typesystem.Integer
	case "!!float":
		cat = typesystem.Real
	case "!!str":
		cat = typesystem.Character
	default:
		p.errorAt(n.Line, diagnostics.ErrP002, strconv.Quote(n.Value))
		return nil, false
	}
	typ := typesystem.Of(cat, defaultKinds[cat])
	if cat == typesystem.Logical {
		typ = p.logical
	}
	v, ok := p.parseValue(typ, n)
	if !ok {
		return nil, false
	}
	return ast.ScalarConstant(v), true
}

func (p *Parser) parseConstant(n *yaml.Node, fields map[string]*yaml.Node) (ast.Expr, bool) {
	typ, ok := p.typeField(fields["const"])
	if !ok {
		return nil, false
	}
	if !typ.IsIntrinsic() {
		p.errorAt(fields["const"].Line, diagnostics.ErrP003, fields["const"].Value)
		return nil, false
	}
	if v, ok := fields["value"]; ok {
		if _, both := fields["values"]; both {
			p.errorAt(n.Line, diagnostics.ErrP001, "const has both value and values")
			return nil, false
		}
		value, ok := p.parseValue(typ, v)
		if !ok {
			return nil, false
		}
		return ast.ScalarConstant(value), true
	}

	vs, ok := fields["values"]
	if !ok || vs.Kind != yaml.SequenceNode {
		p.errorAt(n.Line, diagnostics.ErrP001, "const needs a value or a values sequence")
		return nil, false
	}
	shape, ok := p.shapeField(fields["shape"], len(vs.Content))
	if !ok {
		return nil, false
	}
	values := make([]scalar.Value, len(vs.Content))
	for i, el := range vs.Content {
		if values[i], ok = p.parseValue(typ, el); !ok {
			return nil, false
		}
	}
	return ast.NewConstant(typ, values, shape), true
}

func (p *Parser) parseArray(n *yaml.Node, fields map[string]*yaml.Node) (ast.Expr, bool) {
	typ, ok := p.typeField(fields["array"])
	if !ok {
		return nil, false
	}
	els, ok := fields["elements"]
	if !ok || els.Kind != yaml.SequenceNode {
		p.errorAt(n.Line, diagnostics.ErrP001, "array needs an elements sequence")
		return nil, false
	}
	shape, ok := p.shapeField(fields["shape"], len(els.Content))
	if !ok {
		return nil, false
	}
	ac := &ast.ArrayConstructor{ElementType: typ, Shape: shape}
	for _, el := range els.Content {
		e, ok := p.parseExpr(el)
		if !ok {
			return nil, false
		}
		if e.Rank() != 0 {
			p.errorAt(el.Line, diagnostics.ErrP001, "array elements must be scalars")
			return nil, false
		}
		ac.Elements = append(ac.Elements, e)
	}
	return ac, true
}

// shapeField reads the extents of an array holding count elements; a
// missing shape means a vector.
func (p *Parser) shapeField(n *yaml.Node, count int) ([]int, bool) {
	if n == nil {
		return []int{count}, true
	}
	var shape []int
	if err := n.Decode(&shape); err != nil {
		p.errorAt(n.Line, diagnostics.ErrP004, "shape", n.Value)
		return nil, false
	}
	for _, e := range shape {
		if e < 0 {
			p.errorAt(n.Line, diagnostics.ErrP004, "extent", strconv.Itoa(e))
			return nil, false
		}
	}
	if ast.ShapeSize(shape) != count {
		p.errorAt(n.Line, diagnostics.ErrP005, shape, ast.ShapeSize(shape), count)
		return nil, false
	}
	return shape, true
}

// parseValue reads one element of an intrinsic type.
func (p *Parser) parseValue(typ typesystem.Type, n *yaml.Node) (scalar.Value, bool) {
	if typ.Category == typesystem.Complex {
		if n.Kind != yaml.SequenceNode || len(n.Content) != 2 {
			p.errorAt(n.Line, diagnostics.ErrP004, "complex", n.Value)
			return nil, false
		}
		re, ok1 := parseFloat(n.Content[0].Value)
		im, ok2 := parseFloat(n.Content[1].Value)
		if !ok1 || !ok2 {
			p.errorAt(n.Line, diagnostics.ErrP004, "complex", n.Content[0].Value+","+n.Content[1].Value)
			return nil, false
		}
		return scalar.NewComplex(typ.Kind, re, im), true
	}
	if n.Kind != yaml.ScalarNode {
		p.errorAt(n.Line, diagnostics.ErrP004, strings.ToLower(typ.Category.String()), kindName(n))
		return nil, false
	}
	v, ok := scalarValue(typ, n.Value)
	if !ok {
		p.errorAt(n.Line, diagnostics.ErrP004, strings.ToLower(typ.Category.String()), n.Value)
	}
	return v, ok
}

func scalarValue(typ typesystem.Type, s string) (scalar.Value, bool) {
	switch typ.Category {
	case typesystem.Integer:
		return parseInteger(typ.Kind, s)
	case typesystem.Real:
		f, ok := parseFloat(s)
		if !ok {
			return nil, false
		}
		return scalar.NewReal(typ.Kind, f), true
	case typesystem.Character:
		return scalar.NewCharacter(typ.Kind, s), true
	case typesystem.Logical:
		switch strings.ToLower(s) {
		case "true", ".true.":
			return scalar.NewLogical(typ.Kind, true), true
		case "false", ".false.":
			return scalar.NewLogical(typ.Kind, false), true
		}
	}
	return nil, false
}

// parseInteger accepts decimal, 0x, 0o and 0b literals. A non-negative
// literal that fits the kind's width as an unsigned bit pattern is taken as
// that pattern, so 0xFF is a valid INTEGER(1) with value -1.
func parseInteger(kind int, s string) (scalar.Value, bool) {
	v, ok := new(big.Int).SetString(strings.ReplaceAll(s, "_", ""), 0)
	if !ok {
		return nil, false
	}
	i, overflow := scalar.IntegerFromBig(kind, v)
	if overflow && (v.Sign() < 0 || v.BitLen() > kind*8) {
		return nil, false
	}
	return i, true
}

// parseFloat accepts Go float syntax plus the YAML spellings .nan, .inf
// and -.inf.
func parseFloat(s string) (float64, bool) {
	switch strings.ToLower(s) {
	case ".nan", "nan":
		return math.NaN(), true
	case ".inf", "+.inf", "inf", "+inf":
		return math.Inf(1), true
	case "-.inf", "-inf":
		return math.Inf(-1), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
