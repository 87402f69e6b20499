// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

// Package ast defines the resolved abstract syntax tree for L modules.
//
// The tree is produced by the front end and consumed read-only by the
// back ends. Resolution is assumed complete: every identifier carries a
// back-reference to its declaration, every module-scoped declaration
// carries a back-reference to its module, and every declaration knows
// its source position.
package ast
