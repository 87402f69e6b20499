// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

package cgen

import (
	"strings"

	"github.com/llang/lc/sbuf"
)

// MangleName appends the module-qualified C identifier for name to out.
func MangleName(module, name string, out *sbuf.Builder) {
	out.WriteString(module)
	out.WriteByte('_')
	out.WriteString(name)
}

// ToCapital returns s uppercased with dots replaced by underscores,
// suitable as an include-guard token.
func ToCapital(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' {
			b.WriteByte('_')
			continue
		}
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
