// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package cgen

import (
	"strings"
	"testing"

	"github.com/llang/lc/ast"
)

func TestEmitStructType_AnonymousNestedUnion(t *testing.T) {
	mod := testModule("m")
	s := &ast.StructTypeDecl{
		DeclCommon: ast.DeclCommon{Name: "S", Public: true, Module: mod},
		Global:     true,
		Members: []ast.Decl{
			&ast.VarDecl{DeclCommon: ast.DeclCommon{Name: "x"}, Type: qt(ast.I32)},
			&ast.StructTypeDecl{
				Union: true,
				Members: []ast.Decl{
					&ast.VarDecl{DeclCommon: ast.DeclCommon{Name: "a"}, Type: qt(ast.I8)},
					&ast.VarDecl{DeclCommon: ast.DeclCommon{Name: "b"}, Type: qt(ast.I16)},
				},
			},
		},
	}
	unit := &ast.AST{ModuleName: "m", FileName: "m.l", Types: []ast.Decl{s}}
	header, _ := genOne("m", unit, ast.ModuleMap{"m": mod}, Options{Mode: MultiFile})

	want := "typedef struct {\n" +
		"    int x;\n" +
		"    union {\n" +
		"        char a;\n" +
		"        short b;\n" +
		"    };\n" +
		"} S;\n"
	if !strings.Contains(header, want) {
		t.Errorf("struct layout mismatch:\nwant:\n%s\ngot:\n%s", want, header)
	}
}

func TestEmitEnumType(t *testing.T) {
	mod := testModule("gfx")
	e := &ast.EnumTypeDecl{
		DeclCommon: ast.DeclCommon{Name: "Color", Public: true, Module: mod},
		Constants: []*ast.EnumConstantDecl{
			{DeclCommon: ast.DeclCommon{Name: "Red", Module: mod}},
			{DeclCommon: ast.DeclCommon{Name: "Green", Module: mod}, Init: &ast.IntegerLiteral{Value: 5}},
			{DeclCommon: ast.DeclCommon{Name: "Blue", Module: mod}},
		},
	}
	unit := &ast.AST{ModuleName: "gfx", FileName: "gfx.l", Types: []ast.Decl{e}}
	header, _ := genOne("gfx", unit, ast.ModuleMap{"gfx": mod}, Options{Mode: MultiFile})

	want := "typedef enum {\n    gfx_Red,\n    gfx_Green = 5,\n    gfx_Blue,\n} Color;\n"
	if !strings.Contains(header, want) {
		t.Errorf("enum layout mismatch:\nwant:\n%s\ngot:\n%s", want, header)
	}
}

func TestEmitEnumType_PrivateStaysInSource(t *testing.T) {
	mod := testModule("m")
	e := &ast.EnumTypeDecl{
		DeclCommon: ast.DeclCommon{Name: "State", Module: mod},
		Constants: []*ast.EnumConstantDecl{
			{DeclCommon: ast.DeclCommon{Name: "Idle", Module: mod}},
		},
	}
	unit := &ast.AST{ModuleName: "m", FileName: "m.l", Types: []ast.Decl{e}}
	header, source := genOne("m", unit, ast.ModuleMap{"m": mod}, Options{Mode: MultiFile})

	if strings.Contains(header, "State") {
		t.Errorf("private enum leaked into header:\n%s", header)
	}
	if !strings.Contains(source, "} State;") {
		t.Errorf("private enum missing from source:\n%s", source)
	}
}

func TestEmitTypeDecl_Alias(t *testing.T) {
	mod := testModule("m")
	a := &ast.AliasTypeDecl{
		DeclCommon: ast.DeclCommon{Name: "Byte", Public: true, Module: mod},
		Type:       qt(ast.U8),
	}
	unit := &ast.AST{ModuleName: "m", FileName: "m.l", Types: []ast.Decl{a}}
	header, _ := genOne("m", unit, ast.ModuleMap{"m": mod}, Options{Mode: MultiFile})

	if !strings.Contains(header, "typedef unsigned char m_Byte;") {
		t.Errorf("alias typedef mismatch:\n%s", header)
	}
}

func TestEmitFunctionType(t *testing.T) {
	mod := testModule("ev")
	ft := &ast.FunctionTypeDecl{
		DeclCommon: ast.DeclCommon{Name: "Handler", Public: true, Module: mod},
		Func: &ast.FunctionDecl{
			DeclCommon: ast.DeclCommon{Name: "Handler"},
			Return:     qt(ast.Void),
			Args: []*ast.VarDecl{
				{DeclCommon: ast.DeclCommon{Name: "code"}, Type: qt(ast.I32)},
			},
		},
	}
	unit := &ast.AST{ModuleName: "ev", FileName: "ev.l", Types: []ast.Decl{ft}}
	header, _ := genOne("ev", unit, ast.ModuleMap{"ev": mod}, Options{Mode: MultiFile})

	if !strings.Contains(header, "typedef void (*Handler)(int code);") {
		t.Errorf("function typedef mismatch:\n%s", header)
	}
}

func TestEmitFunctionArgs_Variadic(t *testing.T) {
	mod := testModule("log")
	fn := &ast.FunctionDecl{
		DeclCommon: ast.DeclCommon{Name: "printf", Public: true, Module: mod},
		Return:     qt(ast.I32),
		Args: []*ast.VarDecl{
			{
				DeclCommon: ast.DeclCommon{Name: "format"},
				Type: ast.QualType{
					Flags: ast.QualConst,
					T:     ast.PointerType{Ref: qt(ast.I8)},
				},
			},
		},
		Variadic: true,
		Body:     &ast.CompoundStmt{},
	}
	unit := &ast.AST{ModuleName: "log", FileName: "log.l", Functions: []*ast.FunctionDecl{fn}}
	header, _ := genOne("log", unit, ast.ModuleMap{"log": mod}, Options{Mode: MultiFile})

	if !strings.Contains(header, "int log_printf(const char* format, ...);") {
		t.Errorf("variadic prototype mismatch:\n%s", header)
	}
}

func TestEmitVarDecl_ArraySuffix(t *testing.T) {
	mod := testModule("m")
	v := &ast.VarDecl{
		DeclCommon: ast.DeclCommon{Name: "grid", Public: true, Module: mod},
		Type: ast.QualType{T: ast.ArrayType{
			Elem: ast.QualType{T: ast.ArrayType{
				Elem: qt(ast.I32),
				Size: &ast.IntegerLiteral{Value: 5},
			}},
			Size: &ast.IntegerLiteral{Value: 3},
		}},
	}
	unit := &ast.AST{ModuleName: "m", FileName: "m.l", Vars: []*ast.VarDecl{v}}
	header, _ := genOne("m", unit, ast.ModuleMap{"m": mod}, Options{Mode: MultiFile})

	if !strings.Contains(header, "extern int m_grid[3][5];") {
		t.Errorf("array declarator order mismatch:\n%s", header)
	}
}

func TestEmitVarDecl_AliasedArray(t *testing.T) {
	mod := testModule("m")
	alias := &ast.AliasTypeDecl{
		DeclCommon: ast.DeclCommon{Name: "Buf", Module: mod},
		Type: ast.QualType{T: ast.ArrayType{
			Elem: qt(ast.U8),
			Size: &ast.IntegerLiteral{Value: 16},
		}},
	}
	v := &ast.VarDecl{
		DeclCommon: ast.DeclCommon{Name: "scratch", Module: mod},
		Type:       ast.QualType{T: ast.AliasType{Decl: alias}},
	}
	unit := &ast.AST{
		ModuleName: "m", FileName: "m.l",
		Types: []ast.Decl{alias},
		Vars:  []*ast.VarDecl{v},
	}
	_, source := genOne("m", unit, ast.ModuleMap{"m": mod}, Options{Mode: MultiFile})

	if !strings.Contains(source, "typedef unsigned char m_Buf[16];") {
		t.Errorf("alias typedef must carry the array declarator:\n%s", source)
	}
	// the typedef already carries the brackets, the use site must not
	// repeat them
	if !strings.Contains(source, "static m_Buf m_scratch;") {
		t.Errorf("aliased array declarator mismatch:\n%s", source)
	}
}
