// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/llang/lc/cgen"
)

const demoBundle = `
name: demo
modules:
  - name: stdio
    plainc: true
  - name: util
    files:
      - name: util.l
        types:
          - kind: alias
            name: Byte
            public: true
            type: u8
        vars:
          - name: max
            public: true
            type: const i32
            init: 64
        functions:
          - name: clamp
            public: true
            return: i32
            args:
              - {name: v, type: i32}
            body:
              - if:
                  cond: {bin: {op: ">", lhs: v, rhs: max}}
                  then:
                    - {return: max}
              - {return: v}
  - name: main
    files:
      - name: main.l
        imports: [stdio, util]
        functions:
          - name: main
            public: true
            return: i32
            body:
              - {return: {call: {fn: util.clamp, args: [{int: 9}]}}}
`

func TestParse_ResolvesBundle(t *testing.T) {
	b, err := Parse([]byte(demoBundle), "demo.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if b.Name != "demo" {
		t.Errorf("Name = %q", b.Name)
	}
	if len(b.Modules) != 3 {
		t.Errorf("Modules = %d, want 3", len(b.Modules))
	}
	if !b.Modules["stdio"].IsPlainC {
		t.Error("stdio must be plain C")
	}
	// plain-C modules carry no units
	if len(b.Units) != 2 {
		t.Fatalf("Units = %d, want 2", len(b.Units))
	}
	if b.Units[0].ModuleName != "util" || b.Units[1].ModuleName != "main" {
		t.Errorf("unit order = %q, %q", b.Units[0].ModuleName, b.Units[1].ModuleName)
	}
	if len(b.Units[1].Imports) != 2 {
		t.Errorf("main imports = %d, want 2", len(b.Units[1].Imports))
	}
}

func TestParse_GeneratePipeline(t *testing.T) {
	b, err := Parse([]byte(demoBundle), "demo.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := cgen.Generate(b.Name, b.Units, b.Modules, cgen.Options{Mode: cgen.MultiFile})
	header, source := string(out.Header), string(out.Source)

	for _, want := range []string{
		"typedef unsigned char util_Byte;",
		"extern const int util_max;",
		"int util_clamp(int v);",
	} {
		if !strings.Contains(header, want) {
			t.Errorf("header missing %q:\n%s", want, header)
		}
	}
	for _, want := range []string{
		"#include <stdio.h>",
		`#include "util.h"`,
		"const int util_max = 64;",
		"int util_clamp(int v)",
		"if (v > util_max)",
		"    return util_max;",
		"int main()",
		"return util_clamp(9);",
	} {
		if !strings.Contains(source, want) {
			t.Errorf("source missing %q:\n%s", want, source)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			"missing name",
			"modules:\n  - name: m\n",
			"missing bundle name",
		},
		{
			"no modules",
			"name: x\n",
			"no modules",
		},
		{
			"module without name",
			"name: x\nmodules:\n  - files: []\n",
			"module without name",
		},
		{
			"duplicate module",
			"name: x\nmodules:\n  - name: m\n  - name: m\n",
			`duplicate module "m"`,
		},
		{
			"plainc with files",
			"name: x\nmodules:\n  - name: m\n    plainc: true\n    files:\n      - name: m.l\n",
			"cannot carry files",
		},
		{
			"unknown type kind",
			"name: x\nmodules:\n  - name: m\n    files:\n      - name: m.l\n        types:\n          - kind: tuple\n            name: T\n",
			`unknown kind "tuple"`,
		},
		{
			"duplicate declaration",
			"name: x\nmodules:\n  - name: m\n    files:\n      - name: m.l\n        vars:\n          - {name: v, type: i32}\n          - {name: v, type: i32}\n",
			`duplicate declaration "v"`,
		},
		{
			"unknown import",
			"name: x\nmodules:\n  - name: m\n    files:\n      - name: m.l\n        imports: [ghost]\n",
			`unknown module "ghost"`,
		},
		{
			"unknown symbol in initialiser",
			"name: x\nmodules:\n  - name: m\n    files:\n      - name: m.l\n        vars:\n          - {name: v, type: i32, init: missing}\n",
			`unknown symbol "missing"`,
		},
		{
			"bad variable type",
			"name: x\nmodules:\n  - name: m\n    files:\n      - name: m.l\n        vars:\n          - {name: v, type: 'i32[3'}\n",
			"unterminated array suffix",
		},
		{
			"functype without signature",
			"name: x\nmodules:\n  - name: m\n    files:\n      - name: m.l\n        types:\n          - kind: functype\n            name: F\n",
			"missing signature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "bad.yaml")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestParse_EnumConstantsResolveForward(t *testing.T) {
	doc := `
name: x
modules:
  - name: m
    files:
      - name: m.l
        types:
          - kind: enum
            name: State
            constants:
              - {name: Idle}
              - {name: Busy, init: 4}
        vars:
          - {name: first, type: i32, init: Idle}
`
	b, err := Parse([]byte(doc), "enum.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := cgen.Generate("x", b.Units, b.Modules, cgen.Options{Mode: cgen.SingleFile})
	if !strings.Contains(string(out.Source), "static int m_first = m_Idle;") {
		t.Errorf("enum constant reference:\n%s", out.Source)
	}
}

func TestParse_LocalScopesShadowModuleScope(t *testing.T) {
	doc := `
name: x
modules:
  - name: m
    files:
      - name: m.l
        vars:
          - {name: n, type: i32, init: 1}
        functions:
          - name: f
            return: i32
            body:
              - {decl: {name: n, type: i32, init: 2}}
              - {return: n}
`
	b, err := Parse([]byte(doc), "scope.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := cgen.Generate("x", b.Units, b.Modules, cgen.Options{Mode: cgen.MultiFile})
	if !strings.Contains(string(out.Source), "    return n;") {
		t.Errorf("local must shadow module variable:\n%s", out.Source)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte(demoBundle), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Name != "demo" {
		t.Errorf("Name = %q", b.Name)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
