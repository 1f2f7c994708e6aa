// Package source holds program text fully materialized in memory and exposes
// it through the peekable capability. Loading the whole file up front costs
// one read syscall and keeps every peek and read allocation-free, which is
// the right trade for source files.
package source

import (
	"github.com/sylan-lang/sylan/pkg/peekable"
)

var _ peekable.Buffer[rune] = (*Source)(nil)

// Source is a random-access character buffer with a read cursor. It has no
// lifecycle of its own; it is valid as long as its backing content.
type Source struct {
	content  []rune
	position int
}

// New wraps an already-decoded rune sequence. The slice is not copied.
func New(content []rune) *Source {
	return &Source{content: content}
}

// FromString decodes text into runes and wraps it.
func FromString(text string) *Source {
	return New([]rune(text))
}

// Position returns the cursor offset in runes from the start of the content.
func (s *Source) Position() int {
	return s.position
}

func (s *Source) Peek() (rune, bool) {
	return s.PeekNth(0)
}

func (s *Source) PeekMany(n int) ([]rune, bool) {
	if len(s.content) < s.position+n {
		return nil, false
	}
	return s.content[s.position : s.position+n], true
}

func (s *Source) PeekNth(n int) (rune, bool) {
	if len(s.content) <= s.position+n {
		return 0, false
	}
	return s.content[s.position+n], true
}

func (s *Source) Read() (rune, bool) {
	c, ok := s.PeekNth(0)
	if ok {
		s.position++
	}
	return c, ok
}

func (s *Source) ReadMany(n int) ([]rune, bool) {
	cs, ok := s.PeekMany(n)
	if ok {
		s.position += n
	}
	return cs, ok
}

func (s *Source) Discard() bool {
	return s.DiscardMany(1)
}

func (s *Source) DiscardMany(n int) bool {
	if len(s.content) < s.position+n {
		return false
	}
	s.position += n
	return true
}

func (s *Source) MatchNth(n int, pred func(rune) bool) bool {
	c, ok := s.PeekNth(n)
	return ok && pred(c)
}
