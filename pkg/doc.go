// Package pkg provides the front end of the Sylan toolchain: source text in,
// ordered token stream out, with bounded lookahead for the grammar.
//   - The peekable package defines the buffering capability shared by every
//     stage: peek, read, and discard over an ordered sequence, singly or in
//     batches.
//   - The source package implements that capability over program text held
//     fully in memory.
//   - The lexer package scans characters into tokens on a background
//     goroutine and implements the same capability over the resulting
//     stream, hiding the concurrency from the grammar entirely.
package pkg
