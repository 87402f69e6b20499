// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package bundle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/llang/lc/ast"
)

// builtinKinds maps type spellings to builtin kinds.
var builtinKinds = map[string]ast.BuiltinKind{
	"i8": ast.I8, "i16": ast.I16, "i32": ast.I32, "i64": ast.I64,
	"u8": ast.U8, "u16": ast.U16, "u32": ast.U32, "u64": ast.U64,
	"f32": ast.F32, "f64": ast.F64,
	"bool": ast.Bool, "void": ast.Void,
}

// parseType parses a compact type spelling into a qualified type.
//
// Grammar: qualifiers, then a base type, then declarator suffixes.
//
//	[const] [volatile] [local] base {"*"} {"[" [size] "]"}
//
// Pointer suffixes must precede array suffixes.
// The base is a builtin name, a type name, or a module-qualified
// mod.Name reference. Array sizes are decimal integers or (possibly
// qualified) constant names. Multiple array suffixes read left to
// right, outermost first.
func (b *builder) parseType(spelling, curmod string) (ast.QualType, error) {
	s := strings.TrimSpace(spelling)
	if s == "" {
		return ast.QualType{}, fmt.Errorf("empty type")
	}

	var flags ast.Qualifiers
quals:
	for {
		switch {
		case strings.HasPrefix(s, "const "):
			flags |= ast.QualConst
			s = strings.TrimSpace(s[len("const "):])
		case strings.HasPrefix(s, "volatile "):
			flags |= ast.QualVolatile
			s = strings.TrimSpace(s[len("volatile "):])
		case strings.HasPrefix(s, "local "):
			flags |= ast.QualLocal
			s = strings.TrimSpace(s[len("local "):])
		default:
			break quals
		}
	}

	end := len(s)
	if i := strings.IndexAny(s, "*["); i >= 0 {
		end = i
	}
	name := strings.TrimSpace(s[:end])
	if name == "" {
		return ast.QualType{}, fmt.Errorf("type %q: missing base type", spelling)
	}

	var base ast.Type
	if kind, ok := builtinKinds[name]; ok {
		base = ast.BuiltinType{Kind: kind}
	} else {
		t, err := b.lookupType(name, curmod)
		if err != nil {
			return ast.QualType{}, fmt.Errorf("type %q: %w", spelling, err)
		}
		base = t
	}

	q := ast.QualType{Flags: flags, T: base}
	var sizes []ast.Expr
	rest := s[end:]
	for rest != "" {
		switch rest[0] {
		case '*':
			if len(sizes) > 0 {
				return ast.QualType{}, fmt.Errorf("type %q: pointer suffix after array suffix", spelling)
			}
			q = ast.QualType{T: ast.PointerType{Ref: q}}
			rest = rest[1:]
		case '[':
			close := strings.IndexByte(rest, ']')
			if close < 0 {
				return ast.QualType{}, fmt.Errorf("type %q: unterminated array suffix", spelling)
			}
			size, err := b.parseArraySize(strings.TrimSpace(rest[1:close]), curmod)
			if err != nil {
				return ast.QualType{}, fmt.Errorf("type %q: %w", spelling, err)
			}
			sizes = append(sizes, size)
			rest = rest[close+1:]
		default:
			return ast.QualType{}, fmt.Errorf("type %q: unexpected %q in declarator", spelling, rest[0])
		}
	}

	// Array suffixes read outermost first, so wrap in reverse.
	for i := len(sizes) - 1; i >= 0; i-- {
		q = ast.QualType{T: ast.ArrayType{Elem: q, Size: sizes[i]}}
	}
	return q, nil
}

func (b *builder) parseArraySize(s, curmod string) (ast.Expr, error) {
	if s == "" {
		return nil, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &ast.IntegerLiteral{Value: n}, nil
	}
	d, err := b.lookupValue(s, curmod)
	if err != nil {
		return nil, err
	}
	return &ast.IdentifierExpr{Name: s, Decl: d}, nil
}

// lookupType resolves a (possibly module-qualified) type name to a type
// reference.
func (b *builder) lookupType(name, curmod string) (ast.Type, error) {
	d, err := b.lookupDecl(name, curmod)
	if err != nil {
		return nil, err
	}
	switch t := d.(type) {
	case *ast.AliasTypeDecl:
		return ast.AliasType{Decl: t}, nil
	case *ast.StructTypeDecl:
		return ast.StructType{Decl: t}, nil
	case *ast.EnumTypeDecl:
		return ast.EnumType{Decl: t}, nil
	case *ast.FunctionTypeDecl:
		return ast.FuncType{Decl: t}, nil
	default:
		return nil, fmt.Errorf("%s is not a type", name)
	}
}
