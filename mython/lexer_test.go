package mython

import (
	"errors"
	"strings"
	"testing"
)

func lexTokens(t *testing.T, src string) []Token {
	t.Helper()
	l, err := NewLexerString(src)
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	return l.Tokens()
}

func assertTokens(t *testing.T, got, want []Token) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %d (%v), want %d (%v)", len(got), got, len(want), want)
	}
	for i := range want {
		if !got[i].Same(want[i]) {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexAssignment(t *testing.T) {
	got := lexTokens(t, "a = 10\n")
	assertTokens(t, got, []Token{
		{Type: tokenID, Literal: "a"},
		{Type: tokenChar, Char: '='},
		{Type: tokenNumber, Number: 10},
		{Type: tokenNewline},
		{Type: tokenEOF},
	})
}

func TestLexKeywordsAndOperators(t *testing.T) {
	got := lexTokens(t, "if a >= 10 and not b:\n")
	assertTokens(t, got, []Token{
		{Type: tokenIf},
		{Type: tokenID, Literal: "a"},
		{Type: tokenGTE},
		{Type: tokenNumber, Number: 10},
		{Type: tokenAnd},
		{Type: tokenNot},
		{Type: tokenID, Literal: "b"},
		{Type: tokenChar, Char: ':'},
		{Type: tokenNewline},
		{Type: tokenEOF},
	})
}

func TestLexComparisonTokens(t *testing.T) {
	got := lexTokens(t, "a == b != c <= d >= e < f > g\n")
	want := []TokenType{
		tokenID, tokenEQ, tokenID, tokenNotEQ, tokenID, tokenLTE,
		tokenID, tokenGTE, tokenID, tokenChar, tokenID, tokenChar,
		tokenID, tokenNewline, tokenEOF,
	}
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %v", got)
	}
	for i, tt := range want {
		if got[i].Type != tt {
			t.Fatalf("token %d: got %s, want type %s", i, got[i], tt)
		}
	}
}

func TestLexIndentDedent(t *testing.T) {
	src := "if True:\n  if False:\n    x = 1\ny = 2\n"
	got := lexTokens(t, src)
	assertTokens(t, got, []Token{
		{Type: tokenIf}, {Type: tokenTrue}, {Type: tokenChar, Char: ':'}, {Type: tokenNewline},
		{Type: tokenIndent},
		{Type: tokenIf}, {Type: tokenFalse}, {Type: tokenChar, Char: ':'}, {Type: tokenNewline},
		{Type: tokenIndent},
		{Type: tokenID, Literal: "x"}, {Type: tokenChar, Char: '='}, {Type: tokenNumber, Number: 1}, {Type: tokenNewline},
		{Type: tokenDedent}, {Type: tokenDedent},
		{Type: tokenID, Literal: "y"}, {Type: tokenChar, Char: '='}, {Type: tokenNumber, Number: 2}, {Type: tokenNewline},
		{Type: tokenEOF},
	})
}

func TestLexIndentBalance(t *testing.T) {
	srcs := []string{
		"if True:\n  x = 1\n",
		"class A:\n  def m():\n    if True:\n      return 1\n",
		"if True:\n  if True:\n    x = 1\n  y = 2\nz = 3\n",
		"if True:\n  x = 1",
	}
	for _, src := range srcs {
		indents, dedents := 0, 0
		for _, tok := range lexTokens(t, src) {
			switch tok.Type {
			case tokenIndent:
				indents++
			case tokenDedent:
				dedents++
			}
		}
		if indents != dedents {
			t.Fatalf("unbalanced indentation for %q: %d indents, %d dedents", src, indents, dedents)
		}
	}
}

func TestLexNewlineCollapse(t *testing.T) {
	src := "a = 1\n\n\n# comment only\n   \nb = 2\n"
	got := lexTokens(t, src)
	for i := 1; i < len(got); i++ {
		if got[i].Type == tokenNewline && got[i-1].Type == tokenNewline {
			t.Fatalf("adjacent newlines at %d: %v", i, got)
		}
	}
	assertTokens(t, got, []Token{
		{Type: tokenID, Literal: "a"}, {Type: tokenChar, Char: '='}, {Type: tokenNumber, Number: 1}, {Type: tokenNewline},
		{Type: tokenID, Literal: "b"}, {Type: tokenChar, Char: '='}, {Type: tokenNumber, Number: 2}, {Type: tokenNewline},
		{Type: tokenEOF},
	})
}

func TestLexTrailingCommentEndsLine(t *testing.T) {
	got := lexTokens(t, "a = 1 # trailing\nb = 2\n")
	assertTokens(t, got, []Token{
		{Type: tokenID, Literal: "a"}, {Type: tokenChar, Char: '='}, {Type: tokenNumber, Number: 1}, {Type: tokenNewline},
		{Type: tokenID, Literal: "b"}, {Type: tokenChar, Char: '='}, {Type: tokenNumber, Number: 2}, {Type: tokenNewline},
		{Type: tokenEOF},
	})
}

func TestLexStrings(t *testing.T) {
	got := lexTokens(t, `s = 'it\'s' + "tab\there"` + "\n")
	assertTokens(t, got, []Token{
		{Type: tokenID, Literal: "s"},
		{Type: tokenChar, Char: '='},
		{Type: tokenString, Literal: "it's"},
		{Type: tokenChar, Char: '+'},
		{Type: tokenString, Literal: "tab\there"},
		{Type: tokenNewline},
		{Type: tokenEOF},
	})
}

func TestLexStringEscapes(t *testing.T) {
	got := lexTokens(t, `s = "a\nb\rc\td\\e\"f"`+"\n")
	if got[2].Literal != "a\nb\rc\td\\e\"f" {
		t.Fatalf("unexpected string payload %q", got[2].Literal)
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"odd indent", "a = 1\n b = 2\n"},
		{"three space indent", "if True:\n   x = 1\n"},
		{"unterminated string", "s = 'abc\n"},
		{"unterminated string at eof", "s = 'abc"},
		{"bad escape", `s = 'a\qb'` + "\n"},
		{"number out of range", "n = 99999999999999999999\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLexerString(tc.src)
			if err == nil {
				t.Fatalf("expected lex error for %q", tc.src)
			}
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *LexError, got %T: %v", err, err)
			}
		})
	}
}

func TestLexEOFWithoutTrailingNewline(t *testing.T) {
	got := lexTokens(t, "if True:\n  print 'x'")
	n := len(got)
	if n < 3 {
		t.Fatalf("too few tokens: %v", got)
	}
	if got[n-1].Type != tokenEOF || got[n-2].Type != tokenDedent || got[n-3].Type != tokenNewline {
		t.Fatalf("expected ... Newline Dedent Eof, got %v", got[n-3:])
	}
}

func TestLexFirstLineIndentIsSeparator(t *testing.T) {
	// Indentation counts only after a Newline token; spaces ahead of the
	// first token are absorbed like any other separator.
	got := lexTokens(t, "   a = 1\n")
	assertTokens(t, got, []Token{
		{Type: tokenID, Literal: "a"},
		{Type: tokenChar, Char: '='},
		{Type: tokenNumber, Number: 1},
		{Type: tokenNewline},
		{Type: tokenEOF},
	})
}

func TestLexEmptyInput(t *testing.T) {
	got := lexTokens(t, "")
	assertTokens(t, got, []Token{{Type: tokenEOF}})
}

func TestLexCursorIdempotentAtEOF(t *testing.T) {
	l, err := NewLexerString("a = 1\n")
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	if l.CurrentToken().Type != tokenID {
		t.Fatalf("unexpected first token %s", l.CurrentToken())
	}
	for l.CurrentToken().Type != tokenEOF {
		l.NextToken()
	}
	if l.NextToken().Type != tokenEOF || l.CurrentToken().Type != tokenEOF {
		t.Fatalf("NextToken not idempotent at EOF")
	}
}

func TestLexRoundTrip(t *testing.T) {
	src := "class Dog:\n  def __init__(name):\n    self.name = name\n  def bark():\n    print self.name\nd = Dog('rex')\nd.bark()\n"
	first := lexTokens(t, src)
	second := lexTokens(t, src)
	if len(first) != len(second) {
		t.Fatalf("re-lex changed token count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("re-lex changed token %d: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestLexPositions(t *testing.T) {
	got := lexTokens(t, "a = 1\nbb = 22\n")
	if got[0].Pos.Line != 1 || got[0].Pos.Column != 1 {
		t.Fatalf("unexpected position for first token: %+v", got[0].Pos)
	}
	var bb Token
	for _, tok := range got {
		if tok.Type == tokenID && tok.Literal == "bb" {
			bb = tok
		}
	}
	if bb.Pos.Line != 2 || bb.Pos.Column != 1 {
		t.Fatalf("unexpected position for bb: %+v", bb.Pos)
	}
}

func TestLexReaderInput(t *testing.T) {
	l, err := NewLexer(strings.NewReader("print 'hi'\n"))
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	if l.CurrentToken().Type != tokenPrint {
		t.Fatalf("unexpected first token %s", l.CurrentToken())
	}
}
