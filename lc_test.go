// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package lc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/llang/lc/bundle"
	"github.com/llang/lc/cgen"
)

const helloBundle = `
name: hello
modules:
  - name: stdio
    files:
      - name: stdio.l
        functions:
          - name: puts
            public: true
            return: i32
            args:
              - {name: s, type: const i8*}
  - name: main
    files:
      - name: main.l
        imports: [stdio]
        functions:
          - name: main
            public: true
            return: i32
            body:
              - expr:
                  call:
                    fn: stdio.puts
                    args: [{str: "hello, world"}]
              - {return: {int: 0}}
`

func loadHello(t *testing.T) *bundle.Bundle {
	t.Helper()
	b, err := bundle.Parse([]byte(helloBundle), "hello.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return b
}

func TestGenerate(t *testing.T) {
	b := loadHello(t)
	out := Generate(b, cgen.Options{Mode: cgen.SingleFile})

	if out.Name != "hello" {
		t.Errorf("output name = %q", out.Name)
	}
	source := string(out.Source)
	for _, want := range []string{
		"int main()",
		`stdio_puts("hello, world");`,
		"    return 0;",
	} {
		if !strings.Contains(source, want) {
			t.Errorf("source missing %q:\n%s", want, source)
		}
	}
	if !strings.Contains(string(out.Header), "#ifndef HELLO_H") {
		t.Errorf("include guard missing:\n%s", out.Header)
	}
}

func TestGenerate_WriteFiles(t *testing.T) {
	b := loadHello(t)
	out := Generate(b, cgen.Options{Mode: cgen.MultiFile})

	dir := t.TempDir()
	if err := out.WriteFiles(dir); err != nil {
		t.Fatalf("WriteFiles: %v", err)
	}
	for _, name := range []string{"hello.h", "hello.c"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestAnalyseTags(t *testing.T) {
	b := loadHello(t)
	w := AnalyseTags(b)

	path := filepath.Join(t.TempDir(), "refs")
	if err := w.Write(b.Name, path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.HasPrefix(got, "# refs hello\n") {
		t.Errorf("refs title:\n%s", got)
	}
	if !strings.Contains(got, "file main.l\n") {
		t.Errorf("refs must record uses in main.l:\n%s", got)
	}
	if !strings.Contains(got, "puts -> stdio.l") {
		t.Errorf("call ref must point at the declaration:\n%s", got)
	}
}
