// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

// Package bundle loads module bundles: YAML documents describing the
// resolved declarations of one or more modules in a compact form.
//
// A bundle stands in for a front end. The loader decodes the document,
// builds the corresponding syntax trees and resolves identifier and
// type references by name, so the result satisfies the resolved-tree
// invariants the back ends require.
package bundle

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/llang/lc/ast"
)

// document is the YAML top level.
type document struct {
	Name    string       `yaml:"name"`
	Modules []*moduleDef `yaml:"modules"`
}

// moduleDef declares one module. Plain-C modules carry no files and
// lower to system includes.
type moduleDef struct {
	Name   string     `yaml:"name"`
	CName  string     `yaml:"cname"`
	PlainC bool       `yaml:"plainc"`
	Files  []*fileDef `yaml:"files"`
}

// fileDef is one translation unit of a module.
type fileDef struct {
	Name      string     `yaml:"name"`
	Imports   []string   `yaml:"imports"`
	Types     []*typeDef `yaml:"types"`
	Vars      []*varDef  `yaml:"vars"`
	Functions []*funcDef `yaml:"functions"`
}

// typeDef is one type declaration. Kind selects which of the remaining
// fields apply.
type typeDef struct {
	Kind      string      `yaml:"kind"` // alias, struct, union, enum, functype
	Name      string      `yaml:"name"`
	Public    bool        `yaml:"public"`
	Type      string      `yaml:"type"`      // alias referent
	Members   []*varDef   `yaml:"members"`   // struct, union
	Constants []*constDef `yaml:"constants"` // enum
	Func      *funcDef    `yaml:"func"`      // functype signature
}

// varDef is a variable, argument or struct member. A member may instead
// be a nested anonymous or named struct/union, given by Struct or Union.
type varDef struct {
	Name   string     `yaml:"name"`
	Public bool       `yaml:"public"`
	Type   string     `yaml:"type"`
	Init   *yaml.Node `yaml:"init"`
	Struct []*varDef  `yaml:"struct"`
	Union  []*varDef  `yaml:"union"`
}

type constDef struct {
	Name string     `yaml:"name"`
	Init *yaml.Node `yaml:"init"`
}

type funcDef struct {
	Name     string       `yaml:"name"`
	Public   bool         `yaml:"public"`
	Return   string       `yaml:"return"`
	Args     []*varDef    `yaml:"args"`
	Variadic bool         `yaml:"variadic"`
	Body     []*yaml.Node `yaml:"body"`
}

// Bundle is a loaded, resolved module bundle.
type Bundle struct {
	// Name is the bundle name, used as the default output base name.
	Name string

	Modules ast.ModuleMap
	Units   []*ast.AST
}

// Load reads and resolves the bundle at path.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bundle: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes and resolves a bundle document. srcName is used in
// error messages only.
func Parse(data []byte, srcName string) (*Bundle, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("bundle: %s: %w", srcName, err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("bundle: %s: missing bundle name", srcName)
	}
	if len(doc.Modules) == 0 {
		return nil, fmt.Errorf("bundle: %s: no modules", srcName)
	}

	b := newBuilder(srcName)
	if err := b.build(&doc); err != nil {
		return nil, err
	}
	return &Bundle{Name: doc.Name, Modules: b.modules, Units: b.units}, nil
}
