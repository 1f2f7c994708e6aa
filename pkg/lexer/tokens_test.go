package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSource lexes to: List ( 1 , 2 , 3 ) . forEach ( n -> println (
// `{n}` ) ) EOF — nineteen tokens.
const testSource = "\n\n        List(1, 2, 3).forEach(n ->\n            println(`{n}`)\n        )\n\n    "

func scenario(t *testing.T, f func(tokens *Tokens)) {
	t.Helper()
	tokens := TokensFromString(testSource)
	f(tokens)
	require.NoError(t, tokens.Join())
}

func TestTokens_Peek(t *testing.T) {
	scenario(t, func(tokens *Tokens) {
		tok, ok := tokens.Peek()
		require.True(t, ok)
		assert.Equal(t, Ident("List"), tok.Token)

		// Peeking is idempotent until something consumes.
		again, ok := tokens.Peek()
		require.True(t, ok)
		assert.Equal(t, tok, again)
	})
}

func TestTokens_PeekMany(t *testing.T) {
	scenario(t, func(tokens *Tokens) {
		expected := []Token{
			Ident("List"),
			{Kind: OpenParentheses},
			Num(1, 0),
			{Kind: SubItemSeparator},
		}
		peeked, ok := tokens.PeekMany(4)
		require.True(t, ok)
		require.Len(t, peeked, 4)
		for i, tok := range peeked {
			assert.Equal(t, expected[i], tok.Token)
		}

		again, ok := tokens.PeekMany(4)
		require.True(t, ok)
		assert.Equal(t, peeked, again)
	})
}

func TestTokens_PeekNth(t *testing.T) {
	scenario(t, func(tokens *Tokens) {
		require.True(t, tokens.DiscardMany(5))
		tok, ok := tokens.PeekNth(4)
		require.True(t, ok)
		assert.Equal(t, Ident("forEach"), tok.Token)
	})
}

func TestTokens_PeekNthShiftInvariance(t *testing.T) {
	scenario(t, func(tokens *Tokens) {
		before, ok := tokens.PeekNth(4)
		require.True(t, ok)
		require.True(t, tokens.DiscardMany(2))
		after, ok := tokens.PeekNth(2)
		require.True(t, ok)
		assert.Equal(t, before, after)
	})
}

func TestTokens_Read(t *testing.T) {
	scenario(t, func(tokens *Tokens) {
		_, ok := tokens.Read()
		require.True(t, ok)
		_, ok = tokens.Read()
		require.True(t, ok)
		_, ok = tokens.Peek()
		require.True(t, ok)
		tok, ok := tokens.Read()
		require.True(t, ok)
		assert.Equal(t, Num(1, 0), tok.Token)
	})
}

func TestTokens_ReadMany(t *testing.T) {
	scenario(t, func(tokens *Tokens) {
		require.True(t, tokens.DiscardMany(8))
		read, ok := tokens.ReadMany(3)
		require.True(t, ok)
		expected := []Token{
			{Kind: Dot},
			Ident("forEach"),
			{Kind: OpenParentheses},
		}
		for i, tok := range read {
			assert.Equal(t, expected[i], tok.Token)
		}
	})
}

func TestTokens_ReadManyEquivalence(t *testing.T) {
	var batch, singles []Lexed
	scenario(t, func(tokens *Tokens) {
		read, ok := tokens.ReadMany(7)
		require.True(t, ok)
		batch = read
	})
	scenario(t, func(tokens *Tokens) {
		for i := 0; i < 7; i++ {
			tok, ok := tokens.Read()
			require.True(t, ok)
			singles = append(singles, tok)
		}
	})
	assert.Equal(t, batch, singles)
}

func TestTokens_ReadManyBeyondCapacity(t *testing.T) {
	scenario(t, func(tokens *Tokens) {
		// Only peeks are bounded by the cache depth; reads are not.
		read, ok := tokens.ReadMany(12)
		require.True(t, ok)
		require.Len(t, read, 12)
		assert.Equal(t, Ident("n"), read[11].Token)
	})
}

func TestTokens_Discard(t *testing.T) {
	scenario(t, func(tokens *Tokens) {
		for i := 0; i < 4; i++ {
			require.True(t, tokens.Discard())
		}
		tok, ok := tokens.Read()
		require.True(t, ok)
		assert.Equal(t, Num(2, 0), tok.Token)
	})
}

func TestTokens_DiscardMany(t *testing.T) {
	scenario(t, func(tokens *Tokens) {
		require.True(t, tokens.DiscardMany(3))
		tok, ok := tokens.Read()
		require.True(t, ok)
		assert.Equal(t, Token{Kind: SubItemSeparator}, tok.Token)
	})
}

func TestTokens_DiscardEquivalence(t *testing.T) {
	var afterDiscard, afterRead Lexed
	scenario(t, func(tokens *Tokens) {
		require.True(t, tokens.DiscardMany(6))
		tok, ok := tokens.Read()
		require.True(t, ok)
		afterDiscard = tok
	})
	scenario(t, func(tokens *Tokens) {
		_, ok := tokens.ReadMany(6)
		require.True(t, ok)
		tok, ok := tokens.Read()
		require.True(t, ok)
		afterRead = tok
	})
	assert.Equal(t, afterRead, afterDiscard)
	assert.Equal(t, Num(3, 0), afterDiscard.Token)
}

func TestTokens_DiscardFewerThanCached(t *testing.T) {
	scenario(t, func(tokens *Tokens) {
		// Fill the cache, then discard less than it holds.
		_, ok := tokens.PeekMany(MaxTokenLookahead)
		require.True(t, ok)
		require.True(t, tokens.DiscardMany(2))

		tok, ok := tokens.Peek()
		require.True(t, ok)
		assert.Equal(t, Num(1, 0), tok.Token)

		// Growing again wraps the ring past its highest slot.
		tok, ok = tokens.PeekNth(MaxTokenLookahead - 1)
		require.True(t, ok)
		assert.Equal(t, Num(3, 0), tok.Token)

		// And then more than it holds, crossing into the channel.
		require.True(t, tokens.DiscardMany(7))
		tok, ok = tokens.Peek()
		require.True(t, ok)
		assert.Equal(t, Ident("forEach"), tok.Token)
	})
}

func TestTokens_MatchNth(t *testing.T) {
	scenario(t, func(tokens *Tokens) {
		assert.True(t, tokens.MatchNth(2, func(tok Lexed) bool {
			return tok.Token == Num(1, 0)
		}))
		assert.False(t, tokens.MatchNth(3, func(tok Lexed) bool {
			return tok.Token == Num(1, 0)
		}))

		// Matching consumed nothing.
		tok, ok := tokens.Peek()
		require.True(t, ok)
		assert.Equal(t, Ident("List"), tok.Token)
	})
}

func TestTokens_ZeroCase(t *testing.T) {
	scenario(t, func(tokens *Tokens) {
		peeked, ok := tokens.PeekMany(0)
		assert.True(t, ok)
		assert.Len(t, peeked, 0)

		read, ok := tokens.ReadMany(0)
		assert.True(t, ok)
		assert.Len(t, read, 0)

		assert.True(t, tokens.DiscardMany(0))
		assert.Equal(t, 0, tokens.size)

		// The zero case stays trivial after the stream runs dry.
		require.True(t, tokens.DiscardMany(19))
		_, ok = tokens.PeekMany(0)
		assert.True(t, ok)
		assert.True(t, tokens.DiscardMany(0))
	})
}

func TestTokens_StableExhaustion(t *testing.T) {
	scenario(t, func(tokens *Tokens) {
		_, ok := tokens.ReadMany(25)
		require.False(t, ok)

		_, ok = tokens.ReadMany(25)
		assert.False(t, ok)
		_, ok = tokens.PeekMany(3)
		assert.False(t, ok)
		_, ok = tokens.Peek()
		assert.False(t, ok)
		assert.False(t, tokens.Discard())
	})
}

func TestTokens_PeekShortfallKeepsCache(t *testing.T) {
	tokens := TokensFromString("a b")
	defer func() {
		require.NoError(t, tokens.Join())
	}()

	// Three tokens exist: a, b, EOF. A deeper peek fails...
	_, ok := tokens.PeekMany(5)
	require.False(t, ok)

	// ...but the tokens received during the failed growth stay cached and
	// valid, and the failing call stays failing.
	peeked, ok := tokens.PeekMany(3)
	require.True(t, ok)
	assert.Equal(t, Ident("a"), peeked[0].Token)
	assert.Equal(t, Ident("b"), peeked[1].Token)
	assert.Equal(t, Eof, peeked[2].Token.Kind)

	_, ok = tokens.PeekMany(4)
	assert.False(t, ok)

	read, ok := tokens.ReadMany(3)
	require.True(t, ok)
	assert.Equal(t, Ident("a"), read[0].Token)
}

func TestTokens_CapacityViolation(t *testing.T) {
	scenario(t, func(tokens *Tokens) {
		assert.Panics(t, func() {
			tokens.PeekMany(MaxTokenLookahead + 1)
		})
		assert.Panics(t, func() {
			tokens.PeekNth(MaxTokenLookahead)
		})
		assert.Panics(t, func() {
			tokens.MatchNth(MaxTokenLookahead, func(Lexed) bool { return true })
		})

		// The cache itself is untouched by the rejected calls.
		tok, ok := tokens.Peek()
		require.True(t, ok)
		assert.Equal(t, Ident("List"), tok.Token)
	})
}

func TestTokens_Trivia(t *testing.T) {
	scenario(t, func(tokens *Tokens) {
		tok, ok := tokens.Peek()
		require.True(t, ok)
		assert.Equal(t, "\n\n        ", tok.Trivia)
	})
}

func TestTokens_FullScenarioStream(t *testing.T) {
	scenario(t, func(tokens *Tokens) {
		expected := []Token{
			Ident("List"),
			{Kind: OpenParentheses},
			Num(1, 0),
			{Kind: SubItemSeparator},
			Num(2, 0),
			{Kind: SubItemSeparator},
			Num(3, 0),
			{Kind: CloseParentheses},
			{Kind: Dot},
			Ident("forEach"),
			{Kind: OpenParentheses},
			Ident("n"),
			{Kind: LambdaArrow},
			Ident("println"),
			{Kind: OpenParentheses},
			Interpolated("{n}"),
			{Kind: CloseParentheses},
			{Kind: CloseParentheses},
			{Kind: Eof},
		}
		read, ok := tokens.ReadMany(len(expected))
		require.True(t, ok)
		for i, tok := range read {
			assert.Equalf(t, expected[i], tok.Token, "token %d mismatch", i)
		}

		_, ok = tokens.Read()
		assert.False(t, ok)
	})
}

func TestTokens_JoinReportsFault(t *testing.T) {
	tokens := TokensFromString(`var s = "abc`)

	read, ok := tokens.ReadMany(3)
	require.True(t, ok)
	assert.Equal(t, Var, read[0].Token.Kind)
	assert.Equal(t, Ident("s"), read[1].Token)
	assert.Equal(t, Assign, read[2].Token.Kind)

	// The fault is plain exhaustion in the stream; only the join names it.
	_, ok = tokens.Read()
	require.False(t, ok)
	assert.ErrorIs(t, tokens.Join(), ErrUnterminatedLiteral)
}

func TestTokens_AbandonedConsumer(t *testing.T) {
	// Enough tokens to overrun the bounded channel many times over, so the
	// lexer is certainly blocked mid-send when the consumer walks away.
	tokens := TokensFromString(strings.Repeat("x ", 20*streamBound))

	tok, ok := tokens.Read()
	require.True(t, ok)
	assert.Equal(t, Ident("x"), tok.Token)

	// Join must unblock the producer and return promptly.
	assert.NoError(t, tokens.Join())
}
