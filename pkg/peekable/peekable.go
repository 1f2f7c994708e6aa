// Package peekable defines the buffering capability shared by the character
// source and the token stream: inspect upcoming items without consuming them,
// consume singly or in batches, and never see items out of stream order.
//
// All operations follow the same contract:
//   - The boolean result is the only signal for "fewer items remain than
//     requested". No error values are produced at this layer; whether
//     exhaustion means end of input or a producer fault is for the owner of
//     the underlying source to report separately.
//   - Batch operations are all-or-nothing. A request for n items either
//     yields all n in order or reports false; partial batches are never
//     returned. Once a call fails from exhaustion, repeating the identical
//     call fails the same way.
//   - n = 0 always succeeds and touches nothing.
//   - Peeks are idempotent: until a Read or Discard, repeated peeks with the
//     same argument observe identical content.
package peekable

// Buffer is an ordered sequence of items supporting bounded lookahead.
// Implementations are not safe for concurrent use by multiple readers.
type Buffer[T any] interface {
	// Peek returns the next unread item without consuming it.
	Peek() (T, bool)

	// PeekMany returns the next n unread items without consuming them.
	PeekMany(n int) ([]T, bool)

	// PeekNth returns the nth upcoming item, 0-indexed from the next unread
	// item, without consuming anything.
	PeekNth(n int) (T, bool)

	// Read consumes and returns the next item.
	Read() (T, bool)

	// ReadMany consumes and returns the next n items in order.
	ReadMany(n int) ([]T, bool)

	// Discard consumes the next item without materializing it.
	Discard() bool

	// DiscardMany consumes the next n items without materializing them.
	DiscardMany(n int) bool

	// MatchNth reports whether the nth upcoming item satisfies pred, growing
	// lookahead as needed. Consumption state is left unchanged, and a false
	// result from exhaustion is indistinguishable from a failed match.
	MatchNth(n int, pred func(T) bool) bool
}
