// SPDX-License-Identifier: MPL-2.0

package envctx

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

const (
	// LangC is the C language.
	LangC = "C"
	// LangCxx is the C++ language.
	LangCxx = "Cxx"
	// LangFC is the Fortran language.
	LangFC = "FC"
)

// ErrUnknownLanguage is returned when selecting a language with no compiler mapping.
var ErrUnknownLanguage = errors.New("unknown compiler language")

type (
	// LanguageStack is the compiler-language selection stack. The zero value
	// is empty and ready to use. It is not safe for concurrent use.
	LanguageStack struct {
		langs []string
	}

	// Selection is a scoped language selection. Restore returns the stack to
	// the depth it had before the selection was made; it may be called more
	// than once.
	Selection struct {
		lang     string
		compiler string
		once     sync.Once
		restore  func()
	}
)

// NewSelection builds a Selection around a restore function. Environments other
// than Context use it to hand out selections they track themselves.
func NewSelection(lang, compiler string, restore func()) *Selection {
	return &Selection{lang: lang, compiler: compiler, restore: restore}
}

// Language returns the selected language.
func (s *Selection) Language() string { return s.lang }

// Compiler returns the compiler command for the selected language.
func (s *Selection) Compiler() string { return s.compiler }

// Restore undoes the selection. Only the first call has an effect.
func (s *Selection) Restore() {
	s.once.Do(func() {
		if s.restore != nil {
			s.restore()
		}
	})
}

// Push selects lang and returns the depth the stack had before the push.
func (s *LanguageStack) Push(lang string) int {
	depth := len(s.langs)
	s.langs = append(s.langs, lang)
	return depth
}

// RestoreTo truncates the stack to depth. Selections made after the matching
// Push are dropped with it, so an unbalanced inner selection cannot leak.
func (s *LanguageStack) RestoreTo(depth int) {
	if depth < len(s.langs) {
		s.langs = s.langs[:depth]
	}
}

// Current returns the selected language, or "" when nothing is selected.
func (s *LanguageStack) Current() string {
	if len(s.langs) == 0 {
		return ""
	}
	return s.langs[len(s.langs)-1]
}

// Depth returns the number of active selections.
func (s *LanguageStack) Depth() int { return len(s.langs) }

// defaultCompilers maps each language to its compiler, honoring the usual
// CC/CXX/FC environment variables.
func defaultCompilers() map[string]string {
	return map[string]string{
		LangC:   envOr("CC", "cc"),
		LangCxx: envOr("CXX", "c++"),
		LangFC:  envOr("FC", "gfortran"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func unknownLanguage(lang string) error {
	return fmt.Errorf("%w: %q (valid: %s, %s, %s)", ErrUnknownLanguage, lang, LangC, LangCxx, LangFC)
}
