// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

// Package lc provides a portable C back end for the L language.
//
// The package operates on resolved translation units: trees the front
// end has fully name- and type-resolved. Units are grouped into module
// bundles; the bundle package loads them from their YAML fixture form.
//
// Example usage:
//
//	b, err := bundle.Load("hello.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := lc.Generate(b, cgen.Options{Mode: cgen.SingleFile})
//	if err := out.WriteFiles("output"); err != nil {
//	    log.Fatal(err)
//	}
//
// For cross-reference output, use AnalyseTags:
//
//	refs := lc.AnalyseTags(b)
//	err = refs.Write(b.Name, "refs")
package lc

import (
	"github.com/llang/lc/bundle"
	"github.com/llang/lc/cgen"
	"github.com/llang/lc/tags"
)

// Generate lowers every unit of the bundle to C99. The bundle name
// becomes the output base name.
func Generate(b *bundle.Bundle, opts cgen.Options) *cgen.Output {
	return cgen.Generate(b.Name, b.Units, b.Modules, opts)
}

// AnalyseTags records the cross-references of every unit in the bundle.
func AnalyseTags(b *bundle.Bundle) *tags.Writer {
	w := tags.NewWriter()
	for _, u := range b.Units {
		w.Analyse(u)
	}
	return w
}
