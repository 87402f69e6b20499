// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package bundle

import (
	"gopkg.in/yaml.v3"

	"github.com/llang/lc/ast"
)

// buildBlock builds a braced block from a statement sequence, opening a
// fresh local scope for its declarations.
func (b *builder) buildBlock(nodes []*yaml.Node) (*ast.CompoundStmt, error) {
	b.pushScope()
	defer b.popScope()

	c := &ast.CompoundStmt{}
	for _, n := range nodes {
		s, err := b.buildStmt(n)
		if err != nil {
			return nil, err
		}
		c.Stmts = append(c.Stmts, s)
	}
	return c, nil
}

// buildBlockNode builds a block from a field whose value is a statement
// sequence. A nil node yields nil.
func (b *builder) buildBlockNode(n *yaml.Node) (*ast.CompoundStmt, error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, b.nodeErrorf(n, "statement block must be a sequence")
	}
	return b.buildBlock(n.Content)
}

func (b *builder) buildStmt(n *yaml.Node) (ast.Stmt, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}

	if n.Kind == yaml.ScalarNode {
		switch n.Value {
		case "break":
			return &ast.BreakStmt{}, nil
		case "continue":
			return &ast.ContinueStmt{}, nil
		case "return":
			return &ast.ReturnStmt{}, nil
		default:
			return nil, b.nodeErrorf(n, "unknown statement %q", n.Value)
		}
	}

	key, value, err := singleKey(n)
	if err != nil {
		return nil, b.nodeErrorf(n, "%v", err)
	}

	switch key {
	case "return":
		result, err := b.buildExpr(value)
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Result: result}, nil

	case "expr":
		x, err := b.buildExpr(value)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: x}, nil

	case "if":
		f, err := mappingFields(value)
		if err != nil {
			return nil, b.nodeErrorf(value, "%v", err)
		}
		cond, err := b.buildExpr(f["cond"])
		if err != nil {
			return nil, err
		}
		then, err := b.buildBlockNode(f["then"])
		if err != nil {
			return nil, err
		}
		s := &ast.IfStmt{Cond: cond, Then: then}
		if f["else"] != nil {
			els, err := b.buildBlockNode(f["else"])
			if err != nil {
				return nil, err
			}
			s.Else = els
		}
		return s, nil

	case "while":
		f, err := mappingFields(value)
		if err != nil {
			return nil, b.nodeErrorf(value, "%v", err)
		}
		cond, err := b.buildExpr(f["cond"])
		if err != nil {
			return nil, err
		}
		body, err := b.buildBlockNode(f["body"])
		if err != nil {
			return nil, err
		}
		return &ast.WhileStmt{Cond: cond, Body: body}, nil

	case "do":
		f, err := mappingFields(value)
		if err != nil {
			return nil, b.nodeErrorf(value, "%v", err)
		}
		body, err := b.buildBlockNode(f["body"])
		if err != nil {
			return nil, err
		}
		cond, err := b.buildExpr(f["cond"])
		if err != nil {
			return nil, err
		}
		return &ast.DoStmt{Body: body, Cond: cond}, nil

	case "for":
		return b.buildForStmt(value)

	case "switch":
		return b.buildSwitchStmt(value)

	case "label":
		f, err := mappingFields(value)
		if err != nil {
			return nil, b.nodeErrorf(value, "%v", err)
		}
		name := fieldValue(f, "name")
		if name == "" {
			return nil, b.nodeErrorf(value, "label without name")
		}
		s := &ast.LabelStmt{Name: name}
		if f["stmt"] != nil {
			sub, err := b.buildStmt(f["stmt"])
			if err != nil {
				return nil, err
			}
			s.Stmt = sub
		}
		return s, nil

	case "goto":
		return &ast.GotoStmt{Name: value.Value}, nil

	case "block":
		c, err := b.buildBlockNode(value)
		if err != nil {
			return nil, err
		}
		return c, nil

	case "decl":
		d, err := b.buildDeclExpr(value)
		if err != nil {
			return nil, err
		}
		return &ast.DeclStmt{D: d}, nil

	default:
		return nil, b.nodeErrorf(n, "unknown statement key %q", key)
	}
}

// buildForStmt builds a for loop. The loop opens a scope so an init
// declaration stays local to the loop.
func (b *builder) buildForStmt(n *yaml.Node) (ast.Stmt, error) {
	f, err := mappingFields(n)
	if err != nil {
		return nil, b.nodeErrorf(n, "%v", err)
	}

	b.pushScope()
	defer b.popScope()

	s := &ast.ForStmt{}
	if s.Init, err = b.buildExpr(f["init"]); err != nil {
		return nil, err
	}
	if s.Cond, err = b.buildExpr(f["cond"]); err != nil {
		return nil, err
	}
	if s.Incr, err = b.buildExpr(f["incr"]); err != nil {
		return nil, err
	}
	body, err := b.buildBlockNode(f["body"])
	if err != nil {
		return nil, err
	}
	s.Body = body
	return s, nil
}

func (b *builder) buildSwitchStmt(n *yaml.Node) (ast.Stmt, error) {
	f, err := mappingFields(n)
	if err != nil {
		return nil, b.nodeErrorf(n, "%v", err)
	}
	cond, err := b.buildExpr(f["cond"])
	if err != nil {
		return nil, err
	}
	s := &ast.SwitchStmt{Cond: cond}

	casesNode := f["cases"]
	if casesNode == nil || casesNode.Kind != yaml.SequenceNode {
		return nil, b.nodeErrorf(n, "switch without cases sequence")
	}
	for _, cn := range casesNode.Content {
		key, value, err := singleKey(cn)
		if err != nil {
			return nil, b.nodeErrorf(cn, "%v", err)
		}
		switch key {
		case "case":
			cf, err := mappingFields(value)
			if err != nil {
				return nil, b.nodeErrorf(value, "%v", err)
			}
			v, err := b.buildExpr(cf["value"])
			if err != nil {
				return nil, err
			}
			body, err := b.buildCaseBody(cf["body"])
			if err != nil {
				return nil, err
			}
			s.Cases = append(s.Cases, &ast.CaseStmt{Value: v, Body: body})

		case "default":
			body, err := b.buildCaseBody(value)
			if err != nil {
				return nil, err
			}
			s.Cases = append(s.Cases, &ast.DefaultStmt{Body: body})

		default:
			return nil, b.nodeErrorf(cn, "unknown switch entry %q", key)
		}
	}
	return s, nil
}

// buildCaseBody builds the flat statement list of one switch case.
func (b *builder) buildCaseBody(n *yaml.Node) ([]ast.Stmt, error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, b.nodeErrorf(n, "case body must be a sequence")
	}

	b.pushScope()
	defer b.popScope()

	var stmts []ast.Stmt
	for _, sn := range n.Content {
		s, err := b.buildStmt(sn)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}
