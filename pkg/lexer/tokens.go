package lexer

import (
	"fmt"

	"github.com/sylan-lang/sylan/pkg/peekable"
)

const (
	// MaxTokenLookahead is the fixed depth of simultaneous lookahead the
	// token buffer supports. The grammar is written against this bound;
	// peeking past it is a programming error, not an input condition.
	MaxTokenLookahead = 5

	// streamBound caps how far the lexer can run ahead of the consumer.
	streamBound = 2 * MaxTokenLookahead
)

var _ peekable.Buffer[Lexed] = (*Tokens)(nil)

// Tokens adapts a lexer task's token channel to the peekable capability.
// Peeks are served from a fixed-depth ring cache; reads drain the cache
// first and then fall through to the channel, so reads and discards are not
// bounded by the lookahead depth.
//
// A Tokens is for a single consumer; it is not synchronized internally.
type Tokens struct {
	task  *Task
	cache [MaxTokenLookahead]Lexed
	head  int
	size  int
}

// NewTokens wraps a running lexer task.
func NewTokens(task *Task) *Tokens {
	return &Tokens{task: task}
}

// TokensFromString lexes text in the background and returns the buffer over
// its output.
func TokensFromString(text string) *Tokens {
	return NewTokens(NewString(text).Lex())
}

// Join retires the buffer: it stops the lexer goroutine if it is still
// producing and reports its terminal outcome. Call it exactly once, after
// the last read, on success and failure paths alike.
func (t *Tokens) Join() error {
	return t.task.Join()
}

func (t *Tokens) checkDepth(n int) {
	if n > MaxTokenLookahead {
		panic(fmt.Sprintf("lookahead depth %d exceeds the fixed capacity %d", n, MaxTokenLookahead))
	}
}

// fill grows the cache to hold at least n tokens. The recorded size is only
// ever advanced per token actually received, so a shortfall leaves every
// cached token valid and a retry will fail the same way without touching
// stale slots.
func (t *Tokens) fill(n int) bool {
	for t.size < n {
		tok, ok := t.task.recv()
		if !ok {
			return false
		}
		t.cache[(t.head+t.size)%MaxTokenLookahead] = tok
		t.size++
	}
	return true
}

func (t *Tokens) Peek() (Lexed, bool) {
	return t.PeekNth(0)
}

func (t *Tokens) PeekMany(n int) ([]Lexed, bool) {
	t.checkDepth(n)
	if n == 0 {
		return []Lexed{}, true
	}
	if !t.fill(n) {
		return nil, false
	}
	out := make([]Lexed, n)
	for i := range out {
		out[i] = t.cache[(t.head+i)%MaxTokenLookahead]
	}
	return out, true
}

func (t *Tokens) PeekNth(n int) (Lexed, bool) {
	t.checkDepth(n + 1)
	if !t.fill(n + 1) {
		return Lexed{}, false
	}
	return t.cache[(t.head+n)%MaxTokenLookahead], true
}

func (t *Tokens) Read() (Lexed, bool) {
	read, ok := t.ReadMany(1)
	if !ok {
		return Lexed{}, false
	}
	return read[0], true
}

func (t *Tokens) ReadMany(n int) ([]Lexed, bool) {
	if n == 0 {
		return []Lexed{}, true
	}
	out := make([]Lexed, 0, n)
	for drain := min(n, t.size); drain > 0; drain-- {
		out = append(out, t.cache[t.head])
		t.head = (t.head + 1) % MaxTokenLookahead
		t.size--
	}
	for len(out) < n {
		tok, ok := t.task.recv()
		if !ok {
			return nil, false
		}
		out = append(out, tok)
	}
	return out, true
}

func (t *Tokens) Discard() bool {
	return t.DiscardMany(1)
}

func (t *Tokens) DiscardMany(n int) bool {
	drained := min(n, t.size)
	t.head = (t.head + drained) % MaxTokenLookahead
	t.size -= drained
	for remaining := n - drained; remaining > 0; remaining-- {
		if _, ok := t.task.recv(); !ok {
			return false
		}
	}
	return true
}

func (t *Tokens) MatchNth(n int, pred func(Lexed) bool) bool {
	tok, ok := t.PeekNth(n)
	return ok && pred(tok)
}
