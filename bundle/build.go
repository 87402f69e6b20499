// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package bundle

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/llang/lc/ast"
)

// builder turns a decoded document into resolved translation units.
// Declaration shells are created and registered first so that types,
// initialisers and bodies can resolve references in any order.
type builder struct {
	src     string
	modules ast.ModuleMap
	units   []*ast.AST
	scopes  map[string]map[string]ast.Decl

	// per-file state during the resolve pass
	curmod  string
	curfile string
	locals  []map[string]ast.Decl
}

func newBuilder(src string) *builder {
	return &builder{
		src:     src,
		modules: make(ast.ModuleMap),
		scopes:  make(map[string]map[string]ast.Decl),
	}
}

func (b *builder) build(doc *document) error {
	if err := b.declare(doc); err != nil {
		return err
	}
	return b.resolve(doc)
}

// declare creates all modules and module-scope declaration shells and
// registers them by name.
func (b *builder) declare(doc *document) error {
	for _, md := range doc.Modules {
		if md.Name == "" {
			return b.errorf("module without name")
		}
		if _, dup := b.modules[md.Name]; dup {
			return b.errorf("duplicate module %q", md.Name)
		}
		cname := md.CName
		if cname == "" {
			cname = md.Name
		}
		mod := &ast.Module{Name: md.Name, IsPlainC: md.PlainC, CName: cname}
		b.modules[md.Name] = mod
		b.scopes[md.Name] = make(map[string]ast.Decl)

		if md.PlainC {
			if len(md.Files) != 0 {
				return b.errorf("plain-C module %q cannot carry files", md.Name)
			}
			continue
		}

		for _, fd := range md.Files {
			if fd.Name == "" {
				return b.errorf("module %q: file without name", md.Name)
			}
			pos := ast.Loc{File: fd.Name}

			for _, td := range fd.Types {
				d, err := newTypeShell(td, mod, pos)
				if err != nil {
					return b.errorf("module %q: %v", md.Name, err)
				}
				if err := b.register(md.Name, d); err != nil {
					return err
				}
				if ed, ok := d.(*ast.EnumTypeDecl); ok {
					for i, cd := range td.Constants {
						c := &ast.EnumConstantDecl{DeclCommon: ast.DeclCommon{
							Name: cd.Name, Public: td.Public, Module: mod, Pos: pos,
						}}
						ed.Constants[i] = c
						if err := b.register(md.Name, c); err != nil {
							return err
						}
					}
				}
			}
			for _, vd := range fd.Vars {
				d := &ast.VarDecl{DeclCommon: ast.DeclCommon{
					Name: vd.Name, Public: vd.Public, Module: mod, Pos: pos,
				}}
				if err := b.register(md.Name, d); err != nil {
					return err
				}
			}
			for _, fn := range fd.Functions {
				d := &ast.FunctionDecl{DeclCommon: ast.DeclCommon{
					Name: fn.Name, Public: fn.Public, Module: mod, Pos: pos,
				}}
				if err := b.register(md.Name, d); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func newTypeShell(td *typeDef, mod *ast.Module, pos ast.Loc) (ast.Decl, error) {
	common := ast.DeclCommon{Name: td.Name, Public: td.Public, Module: mod, Pos: pos}
	switch td.Kind {
	case "alias":
		return &ast.AliasTypeDecl{DeclCommon: common}, nil
	case "struct":
		return &ast.StructTypeDecl{DeclCommon: common, Global: true}, nil
	case "union":
		return &ast.StructTypeDecl{DeclCommon: common, Global: true, Union: true}, nil
	case "enum":
		return &ast.EnumTypeDecl{
			DeclCommon: common,
			Constants:  make([]*ast.EnumConstantDecl, len(td.Constants)),
		}, nil
	case "functype":
		return &ast.FunctionTypeDecl{DeclCommon: common}, nil
	default:
		return nil, fmt.Errorf("type %q: unknown kind %q", td.Name, td.Kind)
	}
}

func (b *builder) register(module string, d ast.Decl) error {
	name := d.Common().Name
	if name == "" {
		return b.errorf("module %q: declaration without name", module)
	}
	scope := b.scopes[module]
	if _, dup := scope[name]; dup {
		return b.errorf("module %q: duplicate declaration %q", module, name)
	}
	scope[name] = d
	return nil
}

// resolve fills the declaration shells: types, initialisers, members,
// signatures and bodies, resolving every name reference.
func (b *builder) resolve(doc *document) error {
	for _, md := range doc.Modules {
		if md.PlainC {
			continue
		}
		mod := b.modules[md.Name]
		b.curmod = md.Name

		for _, fd := range md.Files {
			b.curfile = fd.Name
			unit := &ast.AST{ModuleName: md.Name, FileName: fd.Name}

			for _, imp := range fd.Imports {
				if _, ok := b.modules[imp]; !ok {
					return b.errorf("module %q imports unknown module %q", md.Name, imp)
				}
				unit.Imports = append(unit.Imports, &ast.ImportDecl{
					DeclCommon: ast.DeclCommon{Name: imp, Module: mod},
					ModuleName: imp,
				})
			}

			for _, td := range fd.Types {
				d, err := b.resolveTypeDecl(td)
				if err != nil {
					return err
				}
				unit.Types = append(unit.Types, d)
			}
			for _, vd := range fd.Vars {
				d := b.scopes[md.Name][vd.Name].(*ast.VarDecl)
				if err := b.resolveVar(d, vd); err != nil {
					return err
				}
				unit.Vars = append(unit.Vars, d)
			}
			for _, fn := range fd.Functions {
				d := b.scopes[md.Name][fn.Name].(*ast.FunctionDecl)
				if err := b.resolveFunc(d, fn, true); err != nil {
					return err
				}
				unit.Functions = append(unit.Functions, d)
			}

			b.units = append(b.units, unit)
		}
	}
	return nil
}

func (b *builder) resolveTypeDecl(td *typeDef) (ast.Decl, error) {
	shell := b.scopes[b.curmod][td.Name]
	switch d := shell.(type) {
	case *ast.AliasTypeDecl:
		q, err := b.parseType(td.Type, b.curmod)
		if err != nil {
			return nil, b.errorf("alias %q: %v", td.Name, err)
		}
		d.Type = q
		return d, nil

	case *ast.StructTypeDecl:
		members, err := b.buildMembers(td.Members)
		if err != nil {
			return nil, b.errorf("struct %q: %v", td.Name, err)
		}
		d.Members = members
		return d, nil

	case *ast.EnumTypeDecl:
		for i, cd := range td.Constants {
			init, err := b.buildExpr(cd.Init)
			if err != nil {
				return nil, b.errorf("enum %q constant %q: %v", td.Name, cd.Name, err)
			}
			d.Constants[i].Init = init
		}
		return d, nil

	case *ast.FunctionTypeDecl:
		if td.Func == nil {
			return nil, b.errorf("functype %q: missing signature", td.Name)
		}
		fn := &ast.FunctionDecl{DeclCommon: ast.DeclCommon{Name: td.Name, Pos: d.Pos}}
		if err := b.resolveFunc(fn, td.Func, false); err != nil {
			return nil, err
		}
		d.Func = fn
		return d, nil

	default:
		panic(fmt.Sprintf("bundle: %T as type shell", shell))
	}
}

func (b *builder) buildMembers(defs []*varDef) ([]ast.Decl, error) {
	var members []ast.Decl
	for _, vd := range defs {
		if vd.Struct != nil || vd.Union != nil {
			sub := vd.Struct
			union := false
			if vd.Union != nil {
				sub = vd.Union
				union = true
			}
			nested, err := b.buildMembers(sub)
			if err != nil {
				return nil, err
			}
			members = append(members, &ast.StructTypeDecl{
				DeclCommon: ast.DeclCommon{Name: vd.Name},
				Union:      union,
				Members:    nested,
			})
			continue
		}

		m := &ast.VarDecl{DeclCommon: ast.DeclCommon{Name: vd.Name}}
		q, err := b.parseType(vd.Type, b.curmod)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", vd.Name, err)
		}
		m.Type = q
		members = append(members, m)
	}
	return members, nil
}

func (b *builder) resolveVar(d *ast.VarDecl, vd *varDef) error {
	q, err := b.parseType(vd.Type, b.curmod)
	if err != nil {
		return b.errorf("variable %q: %v", vd.Name, err)
	}
	d.Type = q
	init, err := b.buildExpr(vd.Init)
	if err != nil {
		return b.errorf("variable %q: %v", vd.Name, err)
	}
	d.Init = init
	return nil
}

// resolveFunc fills a function declaration. withBody selects whether a
// body is built; function-type signatures never carry one.
func (b *builder) resolveFunc(d *ast.FunctionDecl, fn *funcDef, withBody bool) error {
	ret := fn.Return
	if ret == "" {
		ret = "void"
	}
	q, err := b.parseType(ret, b.curmod)
	if err != nil {
		return b.errorf("function %q: return: %v", d.Name, err)
	}
	d.Return = q
	d.Variadic = fn.Variadic

	for _, ad := range fn.Args {
		aq, err := b.parseType(ad.Type, b.curmod)
		if err != nil {
			return b.errorf("function %q: argument %q: %v", d.Name, ad.Name, err)
		}
		d.Args = append(d.Args, &ast.VarDecl{
			DeclCommon: ast.DeclCommon{Name: ad.Name, Pos: ast.Loc{File: b.curfile}},
			Type:       aq,
		})
	}

	if !withBody {
		return nil
	}

	b.pushScope()
	for _, a := range d.Args {
		b.locals[len(b.locals)-1][a.Name] = a
	}
	body, err := b.buildBlock(fn.Body)
	b.popScope()
	if err != nil {
		return b.errorf("function %q: %v", d.Name, err)
	}
	d.Body = body
	return nil
}

func (b *builder) pushScope() {
	b.locals = append(b.locals, make(map[string]ast.Decl))
}

func (b *builder) popScope() {
	b.locals = b.locals[:len(b.locals)-1]
}

func (b *builder) declareLocal(name string, d ast.Decl) {
	b.locals[len(b.locals)-1][name] = d
}

// lookupDecl resolves a possibly module-qualified name in module scope.
func (b *builder) lookupDecl(name, curmod string) (ast.Decl, error) {
	if mod, sym, qualified := strings.Cut(name, "."); qualified {
		scope, ok := b.scopes[mod]
		if !ok {
			return nil, fmt.Errorf("unknown module %q", mod)
		}
		d, ok := scope[sym]
		if !ok {
			return nil, fmt.Errorf("unknown symbol %q in module %q", sym, mod)
		}
		return d, nil
	}
	d, ok := b.scopes[curmod][name]
	if !ok {
		return nil, fmt.Errorf("unknown symbol %q", name)
	}
	return d, nil
}

// lookupValue resolves a name against the local scope stack first, then
// module scope.
func (b *builder) lookupValue(name, curmod string) (ast.Decl, error) {
	if !strings.Contains(name, ".") {
		for i := len(b.locals) - 1; i >= 0; i-- {
			if d, ok := b.locals[i][name]; ok {
				return d, nil
			}
		}
	}
	return b.lookupDecl(name, curmod)
}

func (b *builder) errorf(format string, args ...any) error {
	return fmt.Errorf("bundle: %s: %s", b.src, fmt.Sprintf(format, args...))
}

func (b *builder) nodeErrorf(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("bundle: %s:%d: %s", b.src, n.Line, fmt.Sprintf(format, args...))
}

func (b *builder) loc(n *yaml.Node) ast.Loc {
	return ast.Loc{File: b.curfile, Line: uint32(n.Line), Col: uint32(n.Column)}
}

func strconvInt(n *yaml.Node) (int64, error) {
	return strconv.ParseInt(n.Value, 0, 64)
}
