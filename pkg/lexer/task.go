package lexer

import (
	"golang.org/x/sync/errgroup"
)

// Task is the handle to a running lexer goroutine. It owns the receiving end
// of the token channel; nothing outside this package touches the channel or
// the goroutine directly.
type Task struct {
	tokens <-chan Lexed
	done   chan struct{}
	group  errgroup.Group
}

// Lex spawns the scanning goroutine and hands back its task. The lexer must
// not be used directly after this call.
func (l *Lexer) Lex() *Task {
	t := &Task{tokens: l.tokens, done: l.done}
	t.group.Go(l.run)
	return t
}

// recv blocks until the next token is available, reporting false once the
// lexer has finished, normally or not. Which of the two it was is only
// knowable through Join.
func (t *Task) recv() (Lexed, bool) {
	tok, ok := <-t.tokens
	return tok, ok
}

// Join waits for the lexer goroutine to finish and returns its terminal
// outcome: nil for a fully scanned source, or the scanning fault that cut
// the stream short. If the consumer stopped reading early, Join also
// unblocks the goroutine's pending send so it can exit.
//
// Join must be called exactly once, after all reads are done.
func (t *Task) Join() error {
	close(t.done)
	return t.group.Wait()
}
