// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package cgen

import (
	"fmt"

	"github.com/llang/lc/ast"
)

// emitStmt emits one statement into the source buffer at the given
// indentation. Compound sub-statements of control flow keep the parent's
// indentation so braces align with their keyword.
func (g *generator) emitStmt(s ast.Stmt, indent int) {
	switch t := s.(type) {
	case *ast.ReturnStmt:
		g.cbuf.Indent(indent)
		g.cbuf.WriteString("return")
		if t.Result != nil {
			g.cbuf.WriteByte(' ')
			g.emitExpr(t.Result, g.cbuf)
		}
		g.cbuf.WriteString(";\n")

	case *ast.ExprStmt:
		g.cbuf.Indent(indent)
		g.emitExpr(t.X, g.cbuf)
		g.cbuf.WriteString(";\n")

	case *ast.IfStmt:
		g.cbuf.Indent(indent)
		g.cbuf.WriteString("if (")
		g.emitExpr(t.Cond, g.cbuf)
		g.cbuf.WriteByte(')')
		g.emitBody(t.Then, indent, false)
		if t.Else != nil {
			g.cbuf.Indent(indent)
			g.cbuf.WriteString("else")
			g.emitBody(t.Else, indent, false)
		}

	case *ast.WhileStmt:
		g.cbuf.Indent(indent)
		g.cbuf.WriteString("while (")
		g.emitExpr(t.Cond, g.cbuf)
		g.cbuf.WriteByte(')')
		g.emitBody(t.Body, indent, true)

	case *ast.DoStmt:
		g.cbuf.Indent(indent)
		g.cbuf.WriteString("do")
		g.emitBody(t.Body, indent, true)
		g.cbuf.Indent(indent)
		g.cbuf.WriteString("while (")
		g.emitExpr(t.Cond, g.cbuf)
		g.cbuf.WriteString(");\n")

	case *ast.ForStmt:
		g.cbuf.Indent(indent)
		g.cbuf.WriteString("for (")
		if t.Init != nil {
			g.emitExpr(t.Init, g.cbuf)
		}
		g.cbuf.WriteByte(';')
		if t.Cond != nil {
			g.cbuf.WriteByte(' ')
			g.emitExpr(t.Cond, g.cbuf)
		}
		g.cbuf.WriteByte(';')
		if t.Incr != nil {
			g.cbuf.WriteByte(' ')
			g.emitExpr(t.Incr, g.cbuf)
		}
		g.cbuf.WriteByte(')')
		g.emitBody(t.Body, indent, true)

	case *ast.SwitchStmt:
		g.emitSwitchStmt(t, indent)

	case *ast.CaseStmt, *ast.DefaultStmt:
		panic("cgen: case outside switch")

	case *ast.BreakStmt:
		g.cbuf.Indent(indent)
		g.cbuf.WriteString("break;\n")

	case *ast.ContinueStmt:
		g.cbuf.Indent(indent)
		g.cbuf.WriteString("continue;\n")

	case *ast.LabelStmt:
		g.cbuf.WriteString(t.Name)
		g.cbuf.WriteString(":\n")
		if t.Stmt != nil {
			g.emitStmt(t.Stmt, indent)
		}

	case *ast.GotoStmt:
		g.cbuf.Indent(indent)
		g.cbuf.WriteString("goto ")
		g.cbuf.WriteString(t.Name)
		g.cbuf.WriteString(";\n")

	case *ast.CompoundStmt:
		g.emitCompoundStmt(t, indent, true)

	case *ast.DeclStmt:
		g.cbuf.Indent(indent)
		g.emitDeclExpr(t.D, g.cbuf)
		g.cbuf.WriteString(";\n")

	default:
		panic(fmt.Sprintf("cgen: %T in statement position", s))
	}
}

// emitBody emits the body of a control statement whose header has just
// been written, without a trailing newline. An attached compound body
// continues the header line; otherwise the brace opens on a fresh line
// at the parent indentation. Single statements start on a new line,
// indented one step.
func (g *generator) emitBody(s ast.Stmt, indent int, attached bool) {
	if c, ok := s.(*ast.CompoundStmt); ok {
		if attached {
			g.cbuf.WriteByte(' ')
			g.emitCompoundStmt(c, indent, false)
		} else {
			g.cbuf.WriteByte('\n')
			g.emitCompoundStmt(c, indent, true)
		}
		return
	}
	g.cbuf.WriteByte('\n')
	g.emitStmt(s, indent+indentStep)
}

// emitCompoundStmt emits a braced block. When indentBrace is false the
// opening brace continues the current line, as after a function header.
func (g *generator) emitCompoundStmt(c *ast.CompoundStmt, indent int, indentBrace bool) {
	if indentBrace {
		g.cbuf.Indent(indent)
	}
	g.cbuf.WriteString("{\n")
	for _, s := range c.Stmts {
		g.emitStmt(s, indent+indentStep)
	}
	g.cbuf.Indent(indent)
	g.cbuf.WriteString("}\n")
}

// emitSwitchStmt emits a switch with its cases. Case bodies are indented
// one step below the case labels.
func (g *generator) emitSwitchStmt(s *ast.SwitchStmt, indent int) {
	g.cbuf.Indent(indent)
	g.cbuf.WriteString("switch (")
	g.emitExpr(s.Cond, g.cbuf)
	g.cbuf.WriteString(") {\n")

	for _, c := range s.Cases {
		switch t := c.(type) {
		case *ast.CaseStmt:
			g.cbuf.Indent(indent + indentStep)
			g.cbuf.WriteString("case ")
			g.emitExpr(t.Value, g.cbuf)
			g.cbuf.WriteString(":\n")
			for _, b := range t.Body {
				g.emitStmt(b, indent+2*indentStep)
			}
		case *ast.DefaultStmt:
			g.cbuf.Indent(indent + indentStep)
			g.cbuf.WriteString("default:\n")
			for _, b := range t.Body {
				g.emitStmt(b, indent+2*indentStep)
			}
		default:
			panic(fmt.Sprintf("cgen: %T in switch case position", c))
		}
	}

	g.cbuf.Indent(indent)
	g.cbuf.WriteString("}\n")
}
