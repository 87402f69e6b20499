// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package cgen

import (
	"fmt"

	"github.com/llang/lc/ast"
	"github.com/llang/lc/sbuf"
)

// builtin2cname maps each builtin kind to its C99 spelling. bool lowers
// to int so generated code needs no stdbool include.
var builtin2cname = [...]string{
	ast.I8:   "char",
	ast.I16:  "short",
	ast.I32:  "int",
	ast.I64:  "long long",
	ast.U8:   "unsigned char",
	ast.U16:  "unsigned short",
	ast.U32:  "unsigned int",
	ast.U64:  "unsigned long long",
	ast.F32:  "float",
	ast.F64:  "double",
	ast.Bool: "int",
	ast.Void: "void",
}

// emitTypePreName emits everything of a declarator that precedes the
// declared name: qualifiers, the base type spelling and pointer stars.
// Array brackets follow the name and are handled by emitTypePostName.
func (g *generator) emitTypePreName(q ast.QualType, out *sbuf.Builder) {
	if q.IsConst() {
		out.WriteString("const ")
	}
	switch t := q.T.(type) {
	case ast.BuiltinType:
		out.WriteString(builtin2cname[t.Kind])

	case ast.PointerType:
		g.emitTypePreName(t.Ref, out)
		out.WriteByte('*')

	case ast.ArrayType:
		g.emitTypePreName(t.Elem, out)

	case ast.AliasType:
		g.emitDecl(t.Decl, out)

	case ast.StructType:
		out.WriteString(t.Decl.Name)

	case ast.EnumType:
		out.WriteString(t.Decl.Name)

	case ast.FuncType:
		out.WriteString(t.Decl.Name)

	case ast.UnresolvedType:
		out.WriteString(t.Name)

	default:
		panic(fmt.Sprintf("cgen: %T in declarator position", q.T))
	}
}

// emitTypePostName emits the array brackets that follow a declared name.
// Brackets are syntactic: an alias whose referent is an array emits
// nothing here, its typedef already carries the declarator.
func (g *generator) emitTypePostName(q ast.QualType, out *sbuf.Builder) {
	arr, ok := q.T.(ast.ArrayType)
	if !ok {
		return
	}
	out.WriteByte('[')
	if arr.Size != nil {
		g.emitExpr(arr.Size, out)
	}
	out.WriteByte(']')
	g.emitTypePostName(arr.Elem, out)
}
