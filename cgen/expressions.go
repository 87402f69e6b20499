// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package cgen

import (
	"fmt"
	"strconv"

	"github.com/llang/lc/ast"
	"github.com/llang/lc/sbuf"
)

// emitExpr emits one expression into out. The front end owns
// parenthesisation; emission is a direct transliteration of the tree.
func (g *generator) emitExpr(e ast.Expr, out *sbuf.Builder) {
	switch t := e.(type) {
	case *ast.IntegerLiteral:
		out.Int(t.Value)

	case *ast.FloatLiteral:
		out.WriteString(strconv.FormatFloat(t.Value, 'f', 6, 64))

	case *ast.BoolLiteral:
		if t.Value {
			out.WriteByte('1')
		} else {
			out.WriteByte('0')
		}

	case *ast.CharLiteral:
		emitCharLiteral(t.Value, out)

	case *ast.StringLiteral:
		emitStringLiteral(t.Value, out)

	case *ast.NilExpr:
		out.WriteString("NULL")

	case *ast.IdentifierExpr:
		g.emitDecl(t.Decl, out)

	case *ast.CallExpr:
		g.emitExpr(t.Fn, out)
		out.WriteByte('(')
		for i, a := range t.Args {
			if i != 0 {
				out.WriteString(", ")
			}
			g.emitExpr(a, out)
		}
		out.WriteByte(')')

	case *ast.MemberExpr:
		if t.ModulePrefix {
			g.emitDecl(t.Decl, out)
			return
		}
		g.emitExpr(t.Base, out)
		if t.Arrow {
			out.WriteString("->")
		} else {
			out.WriteByte('.')
		}
		out.WriteString(t.Member)

	case *ast.ArraySubscriptExpr:
		g.emitExpr(t.Base, out)
		out.WriteByte('[')
		g.emitExpr(t.Index, out)
		out.WriteByte(']')

	case *ast.InitListExpr:
		g.emitInitList(t, out)

	case *ast.ParenExpr:
		out.WriteByte('(')
		g.emitExpr(t.X, out)
		out.WriteByte(')')

	case *ast.BinaryExpr:
		g.emitExpr(t.LHS, out)
		out.WriteByte(' ')
		out.WriteString(t.Op.String())
		out.WriteByte(' ')
		g.emitExpr(t.RHS, out)

	case *ast.ConditionalExpr:
		g.emitExpr(t.Cond, out)
		out.WriteString(" ? ")
		g.emitExpr(t.Then, out)
		out.WriteString(" : ")
		g.emitExpr(t.Else, out)

	case *ast.UnaryExpr:
		if t.Op.IsPostfix() {
			g.emitExpr(t.X, out)
			out.WriteString(t.Op.String())
		} else {
			out.WriteString(t.Op.String())
			g.emitExpr(t.X, out)
		}

	case *ast.BuiltinExpr:
		g.emitBuiltinExpr(t, out)

	case *ast.TypeExpr:
		g.emitTypePreName(t.Type, out)
		g.emitTypePostName(t.Type, out)

	case *ast.DeclExpr:
		g.emitDeclExpr(t, out)

	default:
		panic(fmt.Sprintf("cgen: %T in expression position", e))
	}
}

// emitInitList emits a braced initialiser. Nested initialiser lists
// break onto their own lines so array-of-struct tables stay readable.
func (g *generator) emitInitList(l *ast.InitListExpr, out *sbuf.Builder) {
	nested := false
	for _, v := range l.Values {
		if _, ok := v.(*ast.InitListExpr); ok {
			nested = true
			break
		}
	}

	if nested {
		out.WriteString("{\n")
		for _, v := range l.Values {
			g.emitExpr(v, out)
			out.WriteString(",\n")
		}
		out.WriteByte('}')
		return
	}

	out.WriteString("{ ")
	for i, v := range l.Values {
		if i != 0 {
			out.WriteString(", ")
		}
		g.emitExpr(v, out)
	}
	out.WriteString(" }")
}

// emitBuiltinExpr emits sizeof or elemsof. elemsof lowers to the
// sizeof(a)/sizeof(a[0]) idiom and is only defined on array variables.
func (g *generator) emitBuiltinExpr(b *ast.BuiltinExpr, out *sbuf.Builder) {
	if b.Sizeof {
		out.WriteString("sizeof(")
		g.emitExpr(b.X, out)
		out.WriteByte(')')
		return
	}

	ident, ok := b.X.(*ast.IdentifierExpr)
	if !ok {
		panic(fmt.Sprintf("cgen: elemsof of %T", b.X))
	}
	vd, ok := ident.Decl.(*ast.VarDecl)
	if !ok || !vd.Type.IsArray() {
		panic(fmt.Sprintf("cgen: elemsof of non-array %q", ident.Name))
	}
	out.WriteString("sizeof(")
	g.emitDecl(vd, out)
	out.WriteString(")/sizeof(")
	g.emitDecl(vd, out)
	out.WriteString("[0])")
}

// emitDeclExpr emits a declaration in expression position, as in for-loop
// initialisers and DeclStmt. The local qualifier becomes C static.
func (g *generator) emitDeclExpr(d *ast.DeclExpr, out *sbuf.Builder) {
	if d.Type.IsLocal() {
		out.WriteString("static ")
	}
	g.emitTypePreName(d.Type, out)
	out.WriteByte(' ')
	out.WriteString(d.Name)
	g.emitTypePostName(d.Type, out)
	if d.Init != nil {
		out.WriteString(" = ")
		g.emitExpr(d.Init, out)
	}
}

// emitCharLiteral emits a single-quoted character constant.
func emitCharLiteral(c byte, out *sbuf.Builder) {
	out.WriteByte('\'')
	switch c {
	case '\n':
		out.WriteString(`\n`)
	case '\r':
		out.WriteString(`\r`)
	case '\t':
		out.WriteString(`\t`)
	case '\'':
		out.WriteString(`\'`)
	case '\\':
		out.WriteString(`\\`)
	default:
		out.WriteByte(c)
	}
	out.WriteByte('\'')
}

// emitStringLiteral emits a double-quoted string constant. Escape is the
// source-level escape set; other bytes pass through unchanged.
func emitStringLiteral(s string, out *sbuf.Builder) {
	out.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			out.WriteString(`\n`)
		case '\r':
			out.WriteString(`\r`)
		case '\t':
			out.WriteString(`\t`)
		case 033:
			out.WriteString(`\033`)
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		default:
			out.WriteByte(c)
		}
	}
	out.WriteByte('"')
}
