// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package cgen

import (
	"fmt"
	"testing"

	"github.com/llang/lc/ast"
)

// ---------------------------------------------------------------------------
// Synthetic units for generation benchmarks
// ---------------------------------------------------------------------------

// benchUnit builds one translation unit with nVars public variables and
// nFuncs functions whose bodies loop over a local accumulator.
func benchUnit(mod *ast.Module, nVars, nFuncs int) *ast.AST {
	unit := &ast.AST{ModuleName: mod.Name, FileName: mod.Name + ".l"}

	for i := 0; i < nVars; i++ {
		unit.Vars = append(unit.Vars, &ast.VarDecl{
			DeclCommon: ast.DeclCommon{
				Name:   fmt.Sprintf("var%d", i),
				Public: true,
				Module: mod,
			},
			Type: qt(ast.I32),
			Init: &ast.IntegerLiteral{Value: int64(i)},
		})
	}

	for i := 0; i < nFuncs; i++ {
		acc := &ast.VarDecl{DeclCommon: ast.DeclCommon{Name: "acc"}, Type: qt(ast.I32)}
		idx := &ast.VarDecl{DeclCommon: ast.DeclCommon{Name: "i"}, Type: qt(ast.I32)}
		body := &ast.CompoundStmt{Stmts: []ast.Stmt{
			&ast.DeclStmt{D: &ast.DeclExpr{
				Name: "acc", Type: qt(ast.I32),
				Init: &ast.IntegerLiteral{Value: 0},
			}},
			&ast.ForStmt{
				Init: &ast.DeclExpr{Name: "i", Type: qt(ast.I32), Init: &ast.IntegerLiteral{Value: 0}},
				Cond: &ast.BinaryExpr{Op: ast.OpLT, LHS: identOf(idx), RHS: &ast.IntegerLiteral{Value: 100}},
				Incr: &ast.UnaryExpr{Op: ast.OpPostInc, X: identOf(idx)},
				Body: &ast.CompoundStmt{Stmts: []ast.Stmt{
					&ast.ExprStmt{X: &ast.BinaryExpr{
						Op: ast.OpAddAssign, LHS: identOf(acc), RHS: identOf(idx),
					}},
				}},
			},
			&ast.ReturnStmt{Result: identOf(acc)},
		}}

		unit.Functions = append(unit.Functions, &ast.FunctionDecl{
			DeclCommon: ast.DeclCommon{
				Name:   fmt.Sprintf("fn%d", i),
				Public: i%2 == 0,
				Module: mod,
			},
			Return: qt(ast.I32),
			Body:   body,
		})
	}
	return unit
}

type genBenchCase struct {
	name  string
	vars  int
	funcs int
}

var genBenchCases = []genBenchCase{
	{"small", 2, 2},
	{"medium", 10, 20},
	{"large", 50, 200},
}

// ---------------------------------------------------------------------------
// Generate benchmarks
// ---------------------------------------------------------------------------

// BenchmarkGenerate measures full unit lowering (AST to C text) for
// units of different sizes.
func BenchmarkGenerate(b *testing.B) {
	for _, bc := range genBenchCases {
		b.Run(bc.name, func(b *testing.B) {
			mod := testModule("bench")
			unit := benchUnit(mod, bc.vars, bc.funcs)
			units := []*ast.AST{unit}
			modules := ast.ModuleMap{"bench": mod}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				out := Generate("bench", units, modules, Options{Mode: MultiFile})
				if len(out.Source) == 0 {
					b.Fatal("empty source output")
				}
			}
		})
	}
}

// BenchmarkGenerateModes compares single-file and multi-file placement
// on the same unit.
func BenchmarkGenerateModes(b *testing.B) {
	mod := testModule("bench")
	unit := benchUnit(mod, 10, 20)
	units := []*ast.AST{unit}
	modules := ast.ModuleMap{"bench": mod}

	for _, mode := range []Mode{SingleFile, MultiFile} {
		b.Run(mode.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Generate("bench", units, modules, Options{Mode: mode})
			}
		})
	}
}
