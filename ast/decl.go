// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package ast

// Decl is a declaration.
//
// Every module-scoped declaration carries a non-nil Module back-reference
// in its DeclCommon; nested declarations (struct members, function
// arguments) may leave it nil.
type Decl interface {
	declNode()
	Common() *DeclCommon
}

// DeclCommon holds the fields shared by all declaration variants.
// Declaration structs embed it by pointer-free value embedding.
type DeclCommon struct {
	Name   string
	Public bool
	Module *Module
	Pos    Loc
}

// Common returns the shared declaration fields.
func (c *DeclCommon) Common() *DeclCommon { return c }

func (*DeclCommon) declNode() {}

// ImportDecl imports another module.
type ImportDecl struct {
	DeclCommon

	// ModuleName is the name of the imported module.
	ModuleName string
}

// VarDecl declares a variable. Also used for function arguments and
// struct members.
type VarDecl struct {
	DeclCommon

	Type QualType
	Init Expr
}

// FunctionDecl declares a function.
type FunctionDecl struct {
	DeclCommon

	Return   QualType
	Args     []*VarDecl
	Variadic bool
	Body     *CompoundStmt
}

// StructTypeDecl declares a struct or union type. The name is empty for
// anonymous members; nested struct/union members are permitted.
type StructTypeDecl struct {
	DeclCommon

	// Union selects union over struct.
	Union bool

	// Global marks a module-scope declaration, as opposed to a nested
	// member.
	Global bool

	// Members holds *VarDecl and nested *StructTypeDecl entries.
	Members []Decl
}

// EnumTypeDecl declares an enum type.
type EnumTypeDecl struct {
	DeclCommon

	Constants []*EnumConstantDecl
}

// EnumConstantDecl declares one enum constant. Init is nil when the
// constant takes the implicit successor value.
type EnumConstantDecl struct {
	DeclCommon

	Init Expr
}

// AliasTypeDecl declares a type alias.
type AliasTypeDecl struct {
	DeclCommon

	Type QualType
}

// FunctionTypeDecl declares a function pointer type.
type FunctionTypeDecl struct {
	DeclCommon

	Func *FunctionDecl
}

// ArrayValueDecl appends a value to an incremental array.
type ArrayValueDecl struct {
	DeclCommon

	Value Expr
}
