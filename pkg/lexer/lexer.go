// Package lexer turns source text into an ordered token stream.
//
// The lexer runs in its own goroutine and publishes tokens over a bounded
// channel. Consumers never see the goroutine or the channel; they work
// through Tokens, a fixed-depth lookahead buffer implementing the same
// peekable capability as the character source, and collect the lexer's
// terminal outcome with a single Join call once they're done reading.
package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/sylan-lang/sylan/pkg/peekable"
	"github.com/sylan-lang/sylan/pkg/source"
)

var (
	ErrUnknownToken        = errors.New("unknown token")
	ErrBadEscape           = errors.New("invalid escape sequence")
	ErrUnterminatedLiteral = errors.New("unterminated literal")
	ErrUnterminatedComment = errors.New("unterminated block comment")
	ErrNoDigitAfterDecimal = errors.New("missing digit(s) after decimal")
)

// Lexer scans characters into tokens. It owns the character source
// exclusively once Lex has been called.
type Lexer struct {
	chars  peekable.Buffer[rune]
	tokens chan Lexed
	done   chan struct{}

	offset int
	line   int
	column int
}

// New returns a lexer reading from the given character buffer.
func New(chars peekable.Buffer[rune]) *Lexer {
	return &Lexer{
		chars:  chars,
		tokens: make(chan Lexed, streamBound),
		done:   make(chan struct{}),
		line:   1,
		column: 1,
	}
}

// NewString returns a lexer over text held in memory.
func NewString(text string) *Lexer {
	return New(source.FromString(text))
}

func (l *Lexer) pos() Position {
	return Position{Offset: l.offset, Line: l.line, Column: l.column}
}

func (l *Lexer) errAt(err error) error {
	return fmt.Errorf("%d:%d: %w", l.line, l.column, err)
}

func (l *Lexer) read() (rune, bool) {
	c, ok := l.chars.Read()
	if !ok {
		return 0, false
	}
	l.offset++
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c, true
}

// accept consumes the next character if it equals c.
func (l *Lexer) accept(c rune) bool {
	if next, ok := l.chars.Peek(); ok && next == c {
		l.read()
		return true
	}
	return false
}

// post publishes a token, reporting false if the consumer has abandoned the
// stream and no further tokens should be produced.
func (l *Lexer) post(t Token, trivia string, pos Position) bool {
	select {
	case l.tokens <- Lexed{Token: t, Trivia: trivia, Position: pos}:
		return true
	case <-l.done:
		return false
	}
}

// run is the lexing loop. It always closes the token channel on the way out
// so the consumer observes exhaustion; the returned error is only visible
// through the task's join.
func (l *Lexer) run() error {
	defer close(l.tokens)
	for {
		trivia, err := l.readTrivia()
		if err != nil {
			return err
		}
		pos := l.pos()
		if _, ok := l.chars.Peek(); !ok {
			l.post(Token{}, trivia, pos)
			return nil
		}
		tok, err := l.scan()
		if err != nil {
			return err
		}
		if !l.post(tok, trivia, pos) {
			return nil
		}
	}
}

// readTrivia consumes the whitespace and comment run preceding the next
// token and returns it verbatim.
func (l *Lexer) readTrivia() (string, error) {
	var b strings.Builder
	for {
		c, ok := l.chars.Peek()
		switch {
		case !ok:
			return b.String(), nil
		case unicode.IsSpace(c):
			l.read()
			b.WriteRune(c)
		case c == '/' && l.chars.MatchNth(1, func(r rune) bool { return r == '/' }):
			l.readLineComment(&b)
		case c == '/' && l.chars.MatchNth(1, func(r rune) bool { return r == '*' }):
			if err := l.readBlockComment(&b); err != nil {
				return b.String(), err
			}
		default:
			return b.String(), nil
		}
	}
}

func (l *Lexer) readLineComment(b *strings.Builder) {
	for {
		c, ok := l.chars.Peek()
		if !ok || c == '\n' {
			return
		}
		l.read()
		b.WriteRune(c)
	}
}

func (l *Lexer) readBlockComment(b *strings.Builder) error {
	// Consume the opening "/*" first so "/*/" isn't self-closing.
	for i := 0; i < 2; i++ {
		c, _ := l.read()
		b.WriteRune(c)
	}
	for {
		c, ok := l.read()
		if !ok {
			return l.errAt(ErrUnterminatedComment)
		}
		b.WriteRune(c)
		if c == '*' && l.accept('/') {
			b.WriteRune('/')
			return nil
		}
	}
}

func (l *Lexer) scan() (Token, error) {
	c, _ := l.chars.Peek()
	switch {
	case c == '_' || unicode.IsLetter(c):
		return l.scanWord(), nil
	case unicode.IsDigit(c):
		return l.scanNumber()
	case c == '"':
		return l.scanString()
	case c == '\'':
		return l.scanChar()
	case c == '`':
		return l.scanInterpolated()
	default:
		return l.scanOperator()
	}
}

func (l *Lexer) scanWord() Token {
	var b strings.Builder
	for {
		c, ok := l.chars.Peek()
		if !ok || !(c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)) {
			break
		}
		l.read()
		b.WriteRune(c)
	}
	word := b.String()
	switch {
	case word == "true":
		return Bool(true)
	case word == "false":
		return Bool(false)
	default:
		if kind, ok := keywords[word]; ok {
			return Token{Kind: kind}
		}
		return Ident(word)
	}
}

func (l *Lexer) readDigits() string {
	var b strings.Builder
	for {
		c, ok := l.chars.Peek()
		if !ok || !unicode.IsDigit(c) {
			return b.String()
		}
		l.read()
		b.WriteRune(c)
	}
}

func (l *Lexer) scanNumber() (Token, error) {
	integral := l.readDigits()
	n, err := strconv.ParseInt(integral, 10, 64)
	if err != nil {
		return Token{}, l.errAt(fmt.Errorf("number literal %s: %w", integral, err))
	}
	if !l.accept('.') {
		return Num(n, 0), nil
	}
	fraction := l.readDigits()
	if fraction == "" {
		return Token{}, l.errAt(ErrNoDigitAfterDecimal)
	}
	f, err := strconv.ParseUint(fraction, 10, 64)
	if err != nil {
		return Token{}, l.errAt(fmt.Errorf("number literal %s.%s: %w", integral, fraction, err))
	}
	return Num(n, f), nil
}

var escapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
	'`':  '`',
}

func (l *Lexer) readEscape() (rune, error) {
	c, ok := l.read()
	if !ok {
		return 0, l.errAt(ErrUnterminatedLiteral)
	}
	decoded, ok := escapes[c]
	if !ok {
		return 0, l.errAt(fmt.Errorf("%w: \\%c", ErrBadEscape, c))
	}
	return decoded, nil
}

func (l *Lexer) scanString() (Token, error) {
	l.read() // opening quote
	var b strings.Builder
	for {
		c, ok := l.read()
		if !ok {
			return Token{}, l.errAt(ErrUnterminatedLiteral)
		}
		switch c {
		case '\\':
			decoded, err := l.readEscape()
			if err != nil {
				return Token{}, err
			}
			b.WriteRune(decoded)
		case '"':
			return Str(b.String()), nil
		default:
			b.WriteRune(c)
		}
	}
}

func (l *Lexer) scanChar() (Token, error) {
	l.read() // opening quote
	c, ok := l.read()
	if !ok {
		return Token{}, l.errAt(ErrUnterminatedLiteral)
	}
	if c == '\'' {
		return Token{}, l.errAt(fmt.Errorf("%w: empty character literal", ErrUnknownToken))
	}
	if c == '\\' {
		decoded, err := l.readEscape()
		if err != nil {
			return Token{}, err
		}
		c = decoded
	}
	if !l.accept('\'') {
		return Token{}, l.errAt(ErrUnterminatedLiteral)
	}
	return Char(c), nil
}

// scanInterpolated captures the raw body between backticks. Splitting out the
// interpolation holes is grammar work, not lexing work.
func (l *Lexer) scanInterpolated() (Token, error) {
	l.read() // opening backtick
	var b strings.Builder
	for {
		c, ok := l.read()
		if !ok {
			return Token{}, l.errAt(ErrUnterminatedLiteral)
		}
		if c == '`' {
			return Interpolated(b.String()), nil
		}
		b.WriteRune(c)
	}
}

func (l *Lexer) scanOperator() (Token, error) {
	c, _ := l.read()
	var kind Kind
	switch c {
	case '(':
		kind = OpenParentheses
	case ')':
		kind = CloseParentheses
	case '{':
		kind = OpenBrace
	case '}':
		kind = CloseBrace
	case '[':
		kind = OpenSquareBracket
	case ']':
		kind = CloseSquareBracket
	case ',':
		kind = SubItemSeparator
	case '.':
		if l.accept('.') {
			if !l.accept('.') {
				return Token{}, l.errAt(fmt.Errorf("%w: ..", ErrUnknownToken))
			}
			kind = Rest
		} else {
			kind = Dot
		}
	case ':':
		if l.accept(':') {
			kind = MethodHandle
		} else {
			kind = Colon
		}
	case '-':
		if l.accept('>') {
			kind = LambdaArrow
		} else {
			kind = Subtract
		}
	case '=':
		if l.accept('=') {
			kind = Equals
		} else {
			kind = Assign
		}
	case '!':
		if l.accept('=') {
			kind = NotEquals
		} else {
			kind = Not
		}
	case '<':
		switch {
		case l.accept('='):
			kind = LessThanOrEquals
		case l.accept('<'):
			kind = ShiftLeft
		default:
			kind = LessThan
		}
	case '>':
		switch {
		case l.accept('='):
			kind = GreaterThanOrEquals
		case l.accept('>'):
			kind = ShiftRight
		default:
			kind = GreaterThan
		}
	case '&':
		if l.accept('&') {
			kind = And
		} else {
			kind = BitwiseAnd
		}
	case '|':
		switch {
		case l.accept('|'):
			kind = Or
		case l.accept('>'):
			kind = Pipe
		default:
			kind = BitwiseOr
		}
	case '^':
		kind = BitwiseXor
	case '~':
		if l.accept('>') {
			kind = Compose
		} else {
			kind = BitwiseNot
		}
	case '+':
		kind = Add
	case '*':
		kind = Multiply
	case '%':
		kind = Modulo
	case '/':
		kind = Divide
	default:
		return Token{}, l.errAt(fmt.Errorf("%w: %q", ErrUnknownToken, c))
	}
	return Token{Kind: kind}, nil
}
