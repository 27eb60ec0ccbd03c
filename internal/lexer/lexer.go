// Package lexer splits source text into styled token runs for the source panes.
package lexer

import (
	"iter"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// TokenKind identifies the syntax category of a token.
type TokenKind = chroma.TokenType

// Styler yields (kind, text) pairs covering the whole input, left to right.
// Each call returns a fresh sequence.
type Styler interface {
	Lex(text, language string) iter.Seq2[TokenKind, string]
}

// Chroma is a Styler backed by github.com/alecthomas/chroma.
type Chroma struct {
	mu    sync.Mutex
	cache map[string]chroma.Lexer
}

// NewChroma returns a chroma-backed Styler.
func NewChroma() *Chroma {
	return &Chroma{cache: make(map[string]chroma.Lexer)}
}

func (c *Chroma) lexer(language string) chroma.Lexer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.cache[language]; ok {
		return l
	}
	l := lexers.Get(language)
	if l == nil {
		l = lexers.Match("file." + language)
	}
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)
	c.cache[language] = l
	return l
}

// Lex tokenises text with the lexer registered for language. Unknown
// languages and tokeniser failures yield the whole text as plain Text.
func (c *Chroma) Lex(text, language string) iter.Seq2[TokenKind, string] {
	return func(yield func(TokenKind, string) bool) {
		if text == "" {
			return
		}
		// EnsureLF would fold \r\n into \n and shift every offset after it.
		it, err := c.lexer(language).Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
		if err != nil {
			yield(chroma.Text, text)
			return
		}
		for tok := it(); tok != chroma.EOF; tok = it() {
			if tok.Value == "" {
				continue
			}
			if !yield(tok.Type, tok.Value) {
				return
			}
		}
	}
}

// Span is a run of runes [Start, End) sharing one token kind.
type Span struct {
	Start int
	End   int
	Kind  TokenKind
}

// Spans lexes text and returns contiguous, non-overlapping spans in rune
// offsets. Leading newlines are not handed to the lexer; the first span
// starts after them, matching how the panes lay out their text.
func Spans(s Styler, text, language string) []Span {
	trimmed := strings.TrimLeft(text, "\n")
	offset := len(text) - len(trimmed)
	limit := utf8.RuneCountInString(text)

	var spans []Span
	for kind, value := range s.Lex(trimmed, language) {
		n := utf8.RuneCountInString(value)
		end := min(offset+n, limit)
		if end > offset {
			spans = append(spans, Span{Start: offset, End: end, Kind: kind})
		}
		offset += n
	}
	return spans
}
