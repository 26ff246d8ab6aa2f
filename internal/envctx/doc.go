// SPDX-License-Identifier: MPL-2.0

// Package envctx holds the process-wide state of one configuration run: the
// project root and architecture tag, development-clone and batch flags, typed
// per-package options, and the compiler-language stack.
//
// Language selection is scoped. SelectLanguage pushes a language and returns a
// Selection whose Restore pops it again; callers defer Restore so the stack is
// unwound on every exit path.
package envctx
