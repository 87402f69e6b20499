// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package cgen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/llang/lc/ast"
)

// Mode selects how declarations are distributed over the two outputs.
type Mode uint8

const (
	// SingleFile emits every function prototype into the header and
	// gives every function except main internal linkage.
	SingleFile Mode = iota

	// MultiFile emits public declarations into the header and keeps
	// everything non-public static in the source file.
	MultiFile
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case SingleFile:
		return "single"
	case MultiFile:
		return "multi"
	default:
		return "invalid"
	}
}

// Options configures generation.
type Options struct {
	Mode Mode

	// NoLocalPrefix drops the module prefix from symbols referenced
	// within their own module.
	NoLocalPrefix bool
}

// Output holds the finished header and source buffers for one unit.
type Output struct {
	// Name is the output base filename, without extension.
	Name string

	Header []byte
	Source []byte
}

// Generate lowers the given translation units into C99. The name becomes
// the output base filename and the include-guard token. The units must
// satisfy the resolved-AST invariants; malformed trees panic.
//
// A fresh generation happens per call; Generate never reuses state.
func Generate(name string, entries []*ast.AST, modules ast.ModuleMap, opts Options) *Output {
	g := newGenerator(name, entries, modules, opts)
	g.generate()
	return &Output{
		Name:   name,
		Header: g.hbuf.Bytes(),
		Source: g.cbuf.Bytes(),
	}
}

// WriteFiles writes <Name>.h and <Name>.c under dir, creating dir as
// needed. Each file is written to a temporary sibling and renamed into
// place so a failed write leaves no partial file behind.
func (o *Output) WriteFiles(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cgen: creating output dir: %w", err)
	}
	if err := writeFile(filepath.Join(dir, o.Name+".h"), o.Header); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, o.Name+".c"), o.Source)
}

func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("cgen: writing %s: %w", path, err)
	}
	tmpName := tmp.Name()
	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cgen: writing %s: %w", path, err)
	}
	return nil
}

// Dump writes both buffers to w with filename banners, for debugging.
func (o *Output) Dump(w io.Writer) {
	fmt.Fprintf(w, "---- code for %s.h ----\n%s\n", o.Name, o.Header)
	fmt.Fprintf(w, "---- code for %s.c ----\n%s\n", o.Name, o.Source)
}
