// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package ast

// Qualifiers are type qualifier bitflags.
type Qualifiers uint8

const (
	// QualConst marks a const-qualified type.
	QualConst Qualifiers = 1 << iota
	// QualVolatile marks a volatile-qualified type.
	QualVolatile
	// QualLocal marks the L "local" storage qualifier.
	QualLocal
)

// QualType is a type reference plus qualifier flags.
type QualType struct {
	Flags Qualifiers
	T     Type
}

// IsConst reports whether the type is const-qualified.
func (q QualType) IsConst() bool { return q.Flags&QualConst != 0 }

// IsLocal reports whether the type carries the local qualifier.
func (q QualType) IsLocal() bool { return q.Flags&QualLocal != 0 }

// IsValid reports whether the type reference is populated.
func (q QualType) IsValid() bool { return q.T != nil }

// Canonical resolves alias chains. Qualifiers accumulate along the chain.
func (q QualType) Canonical() QualType {
	for {
		alias, ok := q.T.(AliasType)
		if !ok {
			return q
		}
		ref := alias.Decl.Type
		q = QualType{Flags: q.Flags | ref.Flags, T: ref.T}
	}
}

// IsArray reports whether the canonical type is an array.
func (q QualType) IsArray() bool {
	_, ok := q.Canonical().T.(ArrayType)
	return ok
}

// Type is the inner type kind of a QualType.
type Type interface {
	typeNode()
}

// BuiltinKind enumerates the closed set of builtin types.
type BuiltinKind uint8

const (
	I8 BuiltinKind = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
	Bool
	Void
)

var builtinNames = [...]string{
	"i8", "i16", "i32", "i64",
	"u8", "u16", "u32", "u64",
	"f32", "f64", "bool", "void",
}

// String returns the L spelling of the builtin kind.
func (k BuiltinKind) String() string {
	if int(k) < len(builtinNames) {
		return builtinNames[k]
	}
	return "invalid"
}

// BuiltinType is one of the closed set of builtin types.
type BuiltinType struct {
	Kind BuiltinKind
}

func (BuiltinType) typeNode() {}

// PointerType points at a referent type.
type PointerType struct {
	Ref QualType
}

func (PointerType) typeNode() {}

// ArrayType is an array of Elem. Size is nil for incomplete arrays.
type ArrayType struct {
	Elem QualType
	Size Expr
}

func (ArrayType) typeNode() {}

// AliasType refers to a type through its alias declaration.
type AliasType struct {
	Decl *AliasTypeDecl
}

func (AliasType) typeNode() {}

// StructType refers to a struct or union through its declaration.
type StructType struct {
	Decl *StructTypeDecl
}

func (StructType) typeNode() {}

// EnumType refers to an enum through its declaration.
type EnumType struct {
	Decl *EnumTypeDecl
}

func (EnumType) typeNode() {}

// FuncType refers to a function type through its declaration.
type FuncType struct {
	Decl *FunctionTypeDecl
}

func (FuncType) typeNode() {}

// UnresolvedType carries the literal spelling of a type the front end
// did not resolve. It only appears in trees that failed analysis.
type UnresolvedType struct {
	Name string
}

func (UnresolvedType) typeNode() {}
