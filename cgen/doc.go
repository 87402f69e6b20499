// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

// Package cgen generates portable C99 source from resolved L modules.
//
// The generator runs four ordered passes over the input translation
// units (includes, type declarations, variables, functions) and fills
// two buffers: one for the header, one for the source file. Placement
// of each declaration depends on the emission mode and the declaration's
// linkage: public declarations surface in the header, module-private
// declarations become static file-scope symbols in the source.
//
// All emission routines are total on valid, resolved input. Malformed
// trees (an import reaching the type-declaration emitter, an elemsof
// applied to an enum) are programmer errors and panic; the only
// recoverable errors occur when writing the finished buffers to disk.
package cgen
