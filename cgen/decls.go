// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package cgen

import (
	"fmt"

	"github.com/llang/lc/ast"
	"github.com/llang/lc/sbuf"
)

// emitTypeDecl emits one module-scope type declaration into the header
// or source buffer depending on linkage.
func (g *generator) emitTypeDecl(d ast.Decl) {
	out := g.cbuf
	if d.Common().Public {
		out = g.hbuf
	}

	switch t := d.(type) {
	case *ast.AliasTypeDecl:
		out.WriteString("typedef ")
		g.emitTypePreName(t.Type, out)
		out.WriteByte(' ')
		g.addPrefix(g.curmod, t.Name, out)
		g.emitTypePostName(t.Type, out)
		out.WriteString(";\n\n")

	case *ast.StructTypeDecl:
		g.emitStructType(t, out, 0)

	case *ast.EnumTypeDecl:
		g.emitEnumType(t, out)

	case *ast.FunctionTypeDecl:
		g.emitFunctionType(t, out)

	default:
		panic(fmt.Sprintf("cgen: %T in type declaration position", d))
	}
}

// emitStructType emits a struct or union definition. Module-scope
// declarations become typedefs; nested members recurse with deeper
// indentation and anonymous members emit no trailing name.
func (g *generator) emitStructType(s *ast.StructTypeDecl, out *sbuf.Builder, indent int) {
	out.Indent(indent)
	if s.Global {
		out.WriteString("typedef ")
	}
	if s.Union {
		out.WriteString("union ")
	} else {
		out.WriteString("struct ")
	}
	out.WriteString("{\n")
	for _, member := range s.Members {
		switch m := member.(type) {
		case *ast.VarDecl:
			g.emitVarDecl(m, out, indent+indentStep)
			out.WriteString(";\n")
		case *ast.StructTypeDecl:
			g.emitStructType(m, out, indent+indentStep)
		default:
			panic(fmt.Sprintf("cgen: %T as struct member", member))
		}
	}
	out.Indent(indent)
	out.WriteByte('}')
	if s.Name != "" {
		out.WriteByte(' ')
		out.WriteString(s.Name)
	}
	out.WriteString(";\n")
	if s.Global {
		out.WriteByte('\n')
	}
}

// emitEnumType emits a typedef'd enum. Constants are module-qualified,
// the type name itself is not.
func (g *generator) emitEnumType(e *ast.EnumTypeDecl, out *sbuf.Builder) {
	out.WriteString("typedef enum {\n")
	for _, c := range e.Constants {
		out.Indent(indentStep)
		g.addPrefix(g.curmod, c.Name, out)
		if c.Init != nil {
			out.WriteString(" = ")
			g.emitExpr(c.Init, out)
		}
		out.WriteString(",\n")
	}
	out.WriteString("} ")
	out.WriteString(e.Name)
	out.WriteString(";\n\n")
}

// emitFunctionType emits: typedef <ret> (*name)(args);
func (g *generator) emitFunctionType(ftd *ast.FunctionTypeDecl, out *sbuf.Builder) {
	f := ftd.Func
	out.WriteString("typedef ")
	g.emitTypePreName(f.Return, out)
	g.emitTypePostName(f.Return, out)
	out.WriteString(" (*")
	out.WriteString(f.Name)
	out.WriteByte(')')
	g.emitFunctionArgs(f, out)
	out.WriteString(";\n\n")
}

// emitVariable emits one module-scope variable. Public variables in
// multi-file mode get an extern declaration in the header; everything
// else becomes a static definition in the source.
func (g *generator) emitVariable(v *ast.VarDecl) {
	if v.Public && g.mode != SingleFile {
		g.hbuf.WriteString("extern ")
		g.emitTypePreName(v.Type, g.hbuf)
		g.hbuf.WriteByte(' ')
		g.addPrefix(g.curmod, v.Name, g.hbuf)
		g.emitTypePostName(v.Type, g.hbuf)
		g.hbuf.WriteString(";\n")
		g.hbuf.WriteByte('\n')
	} else {
		g.cbuf.WriteString("static ")
	}
	g.emitTypePreName(v.Type, g.cbuf)
	g.cbuf.WriteByte(' ')
	g.addPrefix(g.curmod, v.Name, g.cbuf)
	g.emitTypePostName(v.Type, g.cbuf)
	if v.Init != nil {
		g.cbuf.WriteString(" = ")
		g.emitExpr(v.Init, g.cbuf)
	}
	g.cbuf.WriteString(";\n")
	g.cbuf.WriteByte('\n')
}

// emitFunction emits the definition of one function into the source,
// preceded by a header prototype in single-file mode and for public
// functions in multi-file mode.
func (g *generator) emitFunction(f *ast.FunctionDecl) {
	if g.mode == SingleFile {
		// all prototypes become forward declarations in the header
		g.emitFunctionProto(f, g.hbuf)
		g.hbuf.WriteString(";\n\n")
	} else {
		if f.Public {
			g.emitFunctionProto(f, g.hbuf)
			g.hbuf.WriteString(";\n\n")
		} else {
			g.cbuf.WriteString("static ")
		}
	}

	g.emitFunctionProto(f, g.cbuf)
	g.cbuf.WriteByte(' ')
	g.emitCompoundStmt(f.Body, 0, false)
	g.cbuf.WriteByte('\n')
}

// emitFunctionProto emits the return type, mangled name and argument
// list. main keeps its name and external linkage in every mode.
func (g *generator) emitFunctionProto(f *ast.FunctionDecl, out *sbuf.Builder) {
	if g.mode == SingleFile && f.Name != "main" {
		out.WriteString("static ")
	}
	g.emitTypePreName(f.Return, out)
	g.emitTypePostName(f.Return, out)
	out.WriteByte(' ')
	if f.Name == "main" {
		out.WriteString(f.Name)
	} else {
		g.addPrefix(g.curmod, f.Name, out)
	}
	g.emitFunctionArgs(f, out)
}

func (g *generator) emitFunctionArgs(f *ast.FunctionDecl, out *sbuf.Builder) {
	out.WriteByte('(')
	for i, a := range f.Args {
		if i != 0 {
			out.WriteString(", ")
		}
		g.emitVarDecl(a, out, 0)
	}
	if f.Variadic {
		if len(f.Args) != 0 {
			out.WriteString(", ")
		}
		out.WriteString("...")
	}
	out.WriteByte(')')
}

// emitVarDecl emits a variable declarator without the trailing
// semicolon: used for arguments and struct members.
func (g *generator) emitVarDecl(d *ast.VarDecl, out *sbuf.Builder, indent int) {
	out.Indent(indent)
	g.emitTypePreName(d.Type, out)
	out.WriteByte(' ')
	out.WriteString(d.Name)
	g.emitTypePostName(d.Type, out)
	if d.Init != nil {
		out.WriteString(" = ")
		g.emitExpr(d.Init, out)
	}
}
