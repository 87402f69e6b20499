// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package cgen

import (
	"fmt"
	"sort"

	"github.com/llang/lc/ast"
	"github.com/llang/lc/sbuf"
)

// indentStep is the number of spaces per indentation level.
const indentStep = 4

// generator walks the translation units and fills the two output
// buffers. A generator is used for exactly one generation.
type generator struct {
	name          string
	mode          Mode
	noLocalPrefix bool
	modules       ast.ModuleMap
	entries       []*ast.AST

	// curmod is the name of the module whose declarations are being
	// emitted. Reset between per-unit passes.
	curmod string

	hbuf *sbuf.Builder
	cbuf *sbuf.Builder
}

func newGenerator(name string, entries []*ast.AST, modules ast.ModuleMap, opts Options) *generator {
	return &generator{
		name:          name,
		mode:          opts.Mode,
		noLocalPrefix: opts.NoLocalPrefix,
		modules:       modules,
		entries:       entries,
		hbuf:          sbuf.New(4 * 1024),
		cbuf:          sbuf.New(16 * 1024),
	}
}

// generate runs the four ordered passes: includes, types, variables,
// functions. The header buffer is wrapped in an include guard.
func (g *generator) generate() {
	guard := ToCapital(g.name)
	g.hbuf.WriteString("#ifndef ")
	g.hbuf.WriteString(guard)
	g.hbuf.WriteString("_H\n")
	g.hbuf.WriteString("#define ")
	g.hbuf.WriteString(guard)
	g.hbuf.WriteString("_H\n")
	g.hbuf.WriteByte('\n')

	g.emitIncludes()

	for _, a := range g.entries {
		g.curmod = a.ModuleName
		for _, d := range a.Types {
			g.emitTypeDecl(d)
		}
		g.curmod = ""
	}

	for _, a := range g.entries {
		g.curmod = a.ModuleName
		for _, v := range a.Vars {
			g.emitVariable(v)
		}
		g.curmod = ""
	}

	for _, a := range g.entries {
		g.curmod = a.ModuleName
		for _, f := range a.Functions {
			g.emitFunction(f)
		}
		g.curmod = ""
	}

	g.hbuf.WriteString("#endif\n")
}

// emitIncludes collects the import sets of all units and emits system
// includes (plain-C modules) before local includes (L modules, multi-file
// mode only). Each group is sorted and duplicate-free.
func (g *generator) emitIncludes() {
	system := make(map[string]struct{})
	local := make(map[string]struct{})

	for _, a := range g.entries {
		for _, imp := range a.Imports {
			mod, ok := g.modules[imp.ModuleName]
			if !ok {
				panic(fmt.Sprintf("cgen: import of unknown module %q", imp.ModuleName))
			}
			if mod.IsPlainC {
				system[mod.Name] = struct{}{}
				continue
			}
			if g.mode == MultiFile {
				local[mod.Name] = struct{}{}
			}
		}
	}

	for _, name := range sortedKeys(system) {
		g.cbuf.WriteString("#include <")
		g.cbuf.WriteString(name)
		g.cbuf.WriteString(".h>\n")
	}
	for _, name := range sortedKeys(local) {
		g.cbuf.WriteString("#include \"")
		g.cbuf.WriteString(name)
		g.cbuf.WriteString(".h\"\n")
	}
	g.cbuf.WriteByte('\n')
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// emitDecl appends the mangled identifier for a resolved declaration.
func (g *generator) emitDecl(d ast.Decl, out *sbuf.Builder) {
	if d == nil {
		panic("cgen: unresolved declaration reference")
	}
	c := d.Common()
	if c.Module != nil {
		g.addPrefix(c.Module.Name, c.Name, out)
	} else {
		out.WriteString(c.Name)
	}
}

// addPrefix appends name qualified with the module prefix, honouring the
// no-local-prefix mode for the current module. The mangled prefix is the
// module's C name, which may differ from its L name.
func (g *generator) addPrefix(modName, name string, out *sbuf.Builder) {
	if modName == "" {
		out.WriteString(name)
		return
	}
	if g.noLocalPrefix && modName == g.curmod {
		out.WriteString(name)
		return
	}
	cname := modName
	if mod := g.modules[modName]; mod != nil {
		cname = mod.CName
	}
	MangleName(cname, name, out)
}
