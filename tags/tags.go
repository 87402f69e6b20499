// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

// Package tags records identifier cross-references while walking
// resolved translation units and serialises them to a refs file.
//
// Analysis is best effort. A use whose declaration back-reference is
// missing is skipped rather than reported; the refs output is a
// navigation aid, not a correctness check.
package tags

import (
	"fmt"
	"os"
	"sort"

	"github.com/llang/lc/ast"
	"github.com/llang/lc/sbuf"
)

// ref is one recorded use of a symbol.
type ref struct {
	line, col uint32
	symbol    string

	destFile          string
	destLine, destCol uint32
}

// file collects the refs recorded for one source file.
type file struct {
	name string
	refs []ref
}

// Writer accumulates cross-references over any number of translation
// units and writes them out in one deterministic pass.
type Writer struct {
	files []*file
	index map[string]*file

	// cur caches the file of the last recorded ref. Uses cluster
	// heavily by file, so the cursor skips most map lookups.
	cur *file
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{index: make(map[string]*file)}
}

// Analyse records every resolved identifier use in the unit.
func (w *Writer) Analyse(a *ast.AST) {
	for _, d := range a.Types {
		w.analyseDecl(d)
	}
	for _, v := range a.Vars {
		w.analyseDecl(v)
	}
	for _, f := range a.Functions {
		w.analyseDecl(f)
	}
}

func (w *Writer) analyseDecl(d ast.Decl) {
	switch t := d.(type) {
	case *ast.VarDecl:
		w.analyseType(t.Type)
		w.analyseExpr(t.Init)

	case *ast.FunctionDecl:
		w.analyseType(t.Return)
		for _, a := range t.Args {
			w.analyseDecl(a)
		}
		if t.Body != nil {
			w.analyseStmt(t.Body)
		}

	case *ast.StructTypeDecl:
		for _, m := range t.Members {
			w.analyseDecl(m)
		}

	case *ast.EnumTypeDecl:
		for _, c := range t.Constants {
			w.analyseExpr(c.Init)
		}

	case *ast.AliasTypeDecl:
		w.analyseType(t.Type)

	case *ast.FunctionTypeDecl:
		w.analyseDecl(t.Func)

	case *ast.ArrayValueDecl:
		w.analyseExpr(t.Value)
	}
}

func (w *Writer) analyseType(q ast.QualType) {
	switch t := q.T.(type) {
	case ast.PointerType:
		w.analyseType(t.Ref)
	case ast.ArrayType:
		w.analyseType(t.Elem)
		w.analyseExpr(t.Size)
	}
}

func (w *Writer) analyseStmt(s ast.Stmt) {
	switch t := s.(type) {
	case *ast.ReturnStmt:
		w.analyseExpr(t.Result)
	case *ast.ExprStmt:
		w.analyseExpr(t.X)
	case *ast.IfStmt:
		w.analyseExpr(t.Cond)
		w.analyseStmt(t.Then)
		if t.Else != nil {
			w.analyseStmt(t.Else)
		}
	case *ast.WhileStmt:
		w.analyseExpr(t.Cond)
		w.analyseStmt(t.Body)
	case *ast.DoStmt:
		w.analyseStmt(t.Body)
		w.analyseExpr(t.Cond)
	case *ast.ForStmt:
		w.analyseExpr(t.Init)
		w.analyseExpr(t.Cond)
		w.analyseExpr(t.Incr)
		w.analyseStmt(t.Body)
	case *ast.SwitchStmt:
		w.analyseExpr(t.Cond)
		for _, c := range t.Cases {
			w.analyseStmt(c)
		}
	case *ast.CaseStmt:
		w.analyseExpr(t.Value)
		for _, b := range t.Body {
			w.analyseStmt(b)
		}
	case *ast.DefaultStmt:
		for _, b := range t.Body {
			w.analyseStmt(b)
		}
	case *ast.LabelStmt:
		if t.Stmt != nil {
			w.analyseStmt(t.Stmt)
		}
	case *ast.CompoundStmt:
		for _, sub := range t.Stmts {
			w.analyseStmt(sub)
		}
	case *ast.DeclStmt:
		w.analyseDeclExpr(t.D)
	}
}

func (w *Writer) analyseExpr(e ast.Expr) {
	switch t := e.(type) {
	case nil:
	case *ast.IdentifierExpr:
		w.addRef(t.Pos, t.Name, t.Decl)
	case *ast.MemberExpr:
		if t.ModulePrefix {
			w.addRef(t.Pos, t.Member, t.Decl)
			return
		}
		w.analyseExpr(t.Base)
	case *ast.CallExpr:
		w.analyseExpr(t.Fn)
		for _, a := range t.Args {
			w.analyseExpr(a)
		}
	case *ast.ArraySubscriptExpr:
		w.analyseExpr(t.Base)
		w.analyseExpr(t.Index)
	case *ast.InitListExpr:
		for _, v := range t.Values {
			w.analyseExpr(v)
		}
	case *ast.ParenExpr:
		w.analyseExpr(t.X)
	case *ast.BinaryExpr:
		w.analyseExpr(t.LHS)
		w.analyseExpr(t.RHS)
	case *ast.ConditionalExpr:
		w.analyseExpr(t.Cond)
		w.analyseExpr(t.Then)
		w.analyseExpr(t.Else)
	case *ast.UnaryExpr:
		w.analyseExpr(t.X)
	case *ast.BuiltinExpr:
		w.analyseExpr(t.X)
	case *ast.DeclExpr:
		w.analyseDeclExpr(t)
	}
}

func (w *Writer) analyseDeclExpr(d *ast.DeclExpr) {
	w.analyseType(d.Type)
	w.analyseExpr(d.Init)
}

// addRef records one use. Uses without a resolved declaration or
// without a source position are dropped.
func (w *Writer) addRef(use ast.Loc, symbol string, d ast.Decl) {
	if d == nil || use.File == "" {
		return
	}
	def := d.Common().Pos
	if def.File == "" {
		return
	}

	f := w.cur
	if f == nil || f.name != use.File {
		f = w.index[use.File]
		if f == nil {
			f = &file{name: use.File}
			w.index[use.File] = f
			w.files = append(w.files, f)
		}
		w.cur = f
	}
	f.refs = append(f.refs, ref{
		line:     use.Line,
		col:      use.Col,
		symbol:   symbol,
		destFile: def.File,
		destLine: def.Line,
		destCol:  def.Col,
	})
}

// Write serialises all recorded refs to path. Files are ordered by
// name, refs within a file by line then column.
func (w *Writer) Write(title, path string) error {
	out := sbuf.New(4 * 1024)
	out.WriteString("# refs ")
	out.WriteString(title)
	out.WriteByte('\n')

	files := make([]*file, len(w.files))
	copy(files, w.files)
	sort.Slice(files, func(i, j int) bool { return files[i].name < files[j].name })

	for _, f := range files {
		sort.SliceStable(f.refs, func(i, j int) bool {
			a, b := f.refs[i], f.refs[j]
			if a.line != b.line {
				return a.line < b.line
			}
			return a.col < b.col
		})

		out.WriteString("file ")
		out.WriteString(f.name)
		out.WriteByte('\n')
		for _, r := range f.refs {
			out.Int(int64(r.line))
			out.WriteByte(' ')
			out.Int(int64(r.col))
			out.WriteByte(' ')
			out.WriteString(r.symbol)
			out.WriteString(" -> ")
			out.WriteString(r.destFile)
			out.WriteByte(' ')
			out.Int(int64(r.destLine))
			out.WriteByte(' ')
			out.Int(int64(r.destCol))
			out.WriteByte('\n')
		}
	}

	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("tags: writing %s: %w", path, err)
	}
	return nil
}
