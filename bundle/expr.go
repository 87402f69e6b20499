// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package bundle

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/llang/lc/ast"
)

var binaryOps = map[string]ast.BinaryOp{
	"*": ast.OpMul, "/": ast.OpDiv, "%": ast.OpRem,
	"+": ast.OpAdd, "-": ast.OpSub,
	"<<": ast.OpShl, ">>": ast.OpShr,
	"<": ast.OpLT, ">": ast.OpGT, "<=": ast.OpLE, ">=": ast.OpGE,
	"==": ast.OpEQ, "!=": ast.OpNE,
	"&": ast.OpAnd, "^": ast.OpXor, "|": ast.OpOr,
	"&&": ast.OpLAnd, "||": ast.OpLOr,
	"=": ast.OpAssign, "*=": ast.OpMulAssign, "/=": ast.OpDivAssign,
	"%=": ast.OpRemAssign, "+=": ast.OpAddAssign, "-=": ast.OpSubAssign,
	"<<=": ast.OpShlAssign, ">>=": ast.OpShrAssign,
	"&=": ast.OpAndAssign, "^=": ast.OpXorAssign, "|=": ast.OpOrAssign,
}

var unaryOps = map[string]ast.UnaryOp{
	"++": ast.OpPreInc, "--": ast.OpPreDec,
	"&": ast.OpAddrOf, "*": ast.OpDeref,
	"+": ast.OpPlus, "-": ast.OpMinus,
	"~": ast.OpNot, "!": ast.OpLNot,
}

// buildExpr builds one expression node. A nil node yields a nil
// expression, so optional fields pass through unchanged.
func (b *builder) buildExpr(n *yaml.Node) (ast.Expr, error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}

	switch n.Kind {
	case yaml.ScalarNode:
		return b.buildScalarExpr(n)

	case yaml.SequenceNode:
		return b.buildInitList(n)

	case yaml.MappingNode:
		key, value, err := singleKey(n)
		if err != nil {
			return nil, err
		}
		return b.buildKeyedExpr(n, key, value)

	default:
		return nil, b.nodeErrorf(n, "unsupported expression node")
	}
}

// buildScalarExpr interprets a bare scalar: literals keep their YAML
// type, strings are name references.
func (b *builder) buildScalarExpr(n *yaml.Node) (ast.Expr, error) {
	switch n.Tag {
	case "!!int":
		v, err := strconvInt(n)
		if err != nil {
			return nil, b.nodeErrorf(n, "bad integer %q", n.Value)
		}
		return &ast.IntegerLiteral{Value: v}, nil
	case "!!float":
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, b.nodeErrorf(n, "bad float %q", n.Value)
		}
		return &ast.FloatLiteral{Value: v}, nil
	case "!!bool":
		return &ast.BoolLiteral{Value: n.Value == "true"}, nil
	case "!!null":
		return &ast.NilExpr{}, nil
	case "!!str":
		if n.Value == "nil" {
			return &ast.NilExpr{}, nil
		}
		return b.buildRef(n, n.Value)
	default:
		return nil, b.nodeErrorf(n, "unsupported scalar tag %s", n.Tag)
	}
}

// buildRef resolves a name reference. Dotted names are module-qualified
// and become prefix member expressions.
func (b *builder) buildRef(n *yaml.Node, name string) (ast.Expr, error) {
	if strings.Contains(name, ".") {
		d, err := b.lookupDecl(name, b.curmod)
		if err != nil {
			return nil, b.nodeErrorf(n, "%v", err)
		}
		_, sym, _ := strings.Cut(name, ".")
		return &ast.MemberExpr{
			Member:       sym,
			ModulePrefix: true,
			Decl:         d,
			Pos:          b.loc(n),
		}, nil
	}
	d, err := b.lookupValue(name, b.curmod)
	if err != nil {
		return nil, b.nodeErrorf(n, "%v", err)
	}
	return &ast.IdentifierExpr{Name: name, Decl: d, Pos: b.loc(n)}, nil
}

func (b *builder) buildKeyedExpr(n *yaml.Node, key string, value *yaml.Node) (ast.Expr, error) {
	switch key {
	case "int":
		v, err := strconvInt(value)
		if err != nil {
			return nil, b.nodeErrorf(value, "bad integer %q", value.Value)
		}
		return &ast.IntegerLiteral{Value: v}, nil

	case "float":
		v, err := strconv.ParseFloat(value.Value, 64)
		if err != nil {
			return nil, b.nodeErrorf(value, "bad float %q", value.Value)
		}
		return &ast.FloatLiteral{Value: v}, nil

	case "bool":
		return &ast.BoolLiteral{Value: value.Value == "true"}, nil

	case "char":
		if len(value.Value) != 1 {
			return nil, b.nodeErrorf(value, "char literal %q must be one byte", value.Value)
		}
		return &ast.CharLiteral{Value: value.Value[0]}, nil

	case "str":
		return &ast.StringLiteral{Value: value.Value}, nil

	case "ident":
		return b.buildRef(value, value.Value)

	case "call":
		return b.buildCall(value)

	case "member":
		f, err := mappingFields(value)
		if err != nil {
			return nil, b.nodeErrorf(value, "%v", err)
		}
		base, err := b.buildExpr(f["base"])
		if err != nil {
			return nil, err
		}
		name := fieldValue(f, "name")
		if name == "" {
			return nil, b.nodeErrorf(value, "member without name")
		}
		return &ast.MemberExpr{
			Base:   base,
			Member: name,
			Arrow:  fieldValue(f, "arrow") == "true",
			Pos:    b.loc(value),
		}, nil

	case "index":
		f, err := mappingFields(value)
		if err != nil {
			return nil, b.nodeErrorf(value, "%v", err)
		}
		base, err := b.buildExpr(f["base"])
		if err != nil {
			return nil, err
		}
		index, err := b.buildExpr(f["index"])
		if err != nil {
			return nil, err
		}
		return &ast.ArraySubscriptExpr{Base: base, Index: index}, nil

	case "initlist":
		return b.buildInitList(value)

	case "paren":
		x, err := b.buildExpr(value)
		if err != nil {
			return nil, err
		}
		return &ast.ParenExpr{X: x}, nil

	case "bin":
		f, err := mappingFields(value)
		if err != nil {
			return nil, b.nodeErrorf(value, "%v", err)
		}
		op, ok := binaryOps[fieldValue(f, "op")]
		if !ok {
			return nil, b.nodeErrorf(value, "unknown binary operator %q", fieldValue(f, "op"))
		}
		lhs, err := b.buildExpr(f["lhs"])
		if err != nil {
			return nil, err
		}
		rhs, err := b.buildExpr(f["rhs"])
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: op, LHS: lhs, RHS: rhs}, nil

	case "cond":
		f, err := mappingFields(value)
		if err != nil {
			return nil, b.nodeErrorf(value, "%v", err)
		}
		cond, err := b.buildExpr(f["cond"])
		if err != nil {
			return nil, err
		}
		then, err := b.buildExpr(f["then"])
		if err != nil {
			return nil, err
		}
		els, err := b.buildExpr(f["else"])
		if err != nil {
			return nil, err
		}
		return &ast.ConditionalExpr{Cond: cond, Then: then, Else: els}, nil

	case "unary":
		f, err := mappingFields(value)
		if err != nil {
			return nil, b.nodeErrorf(value, "%v", err)
		}
		op, ok := unaryOps[fieldValue(f, "op")]
		if !ok {
			return nil, b.nodeErrorf(value, "unknown unary operator %q", fieldValue(f, "op"))
		}
		if fieldValue(f, "postfix") == "true" {
			switch op {
			case ast.OpPreInc:
				op = ast.OpPostInc
			case ast.OpPreDec:
				op = ast.OpPostDec
			default:
				return nil, b.nodeErrorf(value, "operator %q cannot be postfix", fieldValue(f, "op"))
			}
		}
		x, err := b.buildExpr(f["x"])
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op, X: x}, nil

	case "sizeof":
		x, err := b.buildExpr(value)
		if err != nil {
			return nil, err
		}
		return &ast.BuiltinExpr{Sizeof: true, X: x}, nil

	case "elemsof":
		x, err := b.buildExpr(value)
		if err != nil {
			return nil, err
		}
		return &ast.BuiltinExpr{X: x}, nil

	case "type":
		q, err := b.parseType(value.Value, b.curmod)
		if err != nil {
			return nil, b.nodeErrorf(value, "%v", err)
		}
		return &ast.TypeExpr{Type: q}, nil

	case "decl":
		return b.buildDeclExpr(value)

	default:
		return nil, b.nodeErrorf(n, "unknown expression key %q", key)
	}
}

// buildCall accepts either a bare callee reference or a mapping with fn
// and args.
func (b *builder) buildCall(n *yaml.Node) (ast.Expr, error) {
	if n.Kind == yaml.ScalarNode {
		fn, err := b.buildRef(n, n.Value)
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{Fn: fn}, nil
	}

	f, err := mappingFields(n)
	if err != nil {
		return nil, b.nodeErrorf(n, "%v", err)
	}
	fn, err := b.buildExpr(f["fn"])
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, b.nodeErrorf(n, "call without callee")
	}
	call := &ast.CallExpr{Fn: fn}
	if argsNode := f["args"]; argsNode != nil {
		if argsNode.Kind != yaml.SequenceNode {
			return nil, b.nodeErrorf(argsNode, "call args must be a sequence")
		}
		for _, a := range argsNode.Content {
			arg, err := b.buildExpr(a)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
		}
	}
	return call, nil
}

func (b *builder) buildInitList(n *yaml.Node) (ast.Expr, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, b.nodeErrorf(n, "initialiser list must be a sequence")
	}
	l := &ast.InitListExpr{}
	for _, v := range n.Content {
		e, err := b.buildExpr(v)
		if err != nil {
			return nil, err
		}
		l.Values = append(l.Values, e)
	}
	return l, nil
}

// buildDeclExpr builds a declaration in expression position and
// registers it in the innermost scope.
func (b *builder) buildDeclExpr(n *yaml.Node) (*ast.DeclExpr, error) {
	f, err := mappingFields(n)
	if err != nil {
		return nil, b.nodeErrorf(n, "%v", err)
	}
	name := fieldValue(f, "name")
	if name == "" {
		return nil, b.nodeErrorf(n, "declaration without name")
	}
	q, err := b.parseType(fieldValue(f, "type"), b.curmod)
	if err != nil {
		return nil, b.nodeErrorf(n, "declaration %q: %v", name, err)
	}

	d := &ast.DeclExpr{Name: name, Type: q, Pos: b.loc(n)}
	// visible to its own initialiser, as in C
	b.declareLocal(name, &ast.VarDecl{
		DeclCommon: ast.DeclCommon{Name: name, Pos: b.loc(n)},
		Type:       q,
	})
	init, err := b.buildExpr(f["init"])
	if err != nil {
		return nil, err
	}
	d.Init = init
	return d, nil
}

// singleKey returns the single key/value pair of a mapping node.
func singleKey(n *yaml.Node) (string, *yaml.Node, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, fmt.Errorf("expected a single-key mapping at line %d", n.Line)
	}
	return n.Content[0].Value, n.Content[1], nil
}

// mappingFields flattens a mapping node into a field map.
func mappingFields(n *yaml.Node) (map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping at line %d", n.Line)
	}
	f := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		f[n.Content[i].Value] = n.Content[i+1]
	}
	return f, nil
}

// fieldValue returns the scalar value of a field, or "".
func fieldValue(f map[string]*yaml.Node, key string) string {
	if n := f[key]; n != nil {
		return n.Value
	}
	return ""
}
