package lexer

import (
	"testing"

	"github.com/michaelmacinnis/sigil/internal/token"
)

func classes(toks []*token.T) []token.Class {
	cs := make([]token.Class, len(toks))
	for i, t := range toks {
		cs[i] = t.Class
	}

	return cs
}

func sameClasses(t *testing.T, got []token.Class, want []token.Class) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}

	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeSymbols(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Class
	}{
		{"func def", "f => x {\n", []token.Class{token.Ident, token.FuncArrow, token.Ident, token.LBrace, token.Newline, token.EOF}},
		{"quick func def", "f ~> x + 1\n", []token.Class{token.Ident, token.QuickArrow, token.Ident, token.Plus, token.Number, token.Newline, token.EOF}},
		{"while", "@ x < 3 {\n", []token.Class{token.At, token.Ident, token.Lt, token.Number, token.LBrace, token.Newline, token.EOF}},
		{"foreach", ">> x xs {\n", []token.Class{token.ForEach, token.Ident, token.Ident, token.LBrace, token.Newline, token.EOF}},
		{"input", "+? x\n", []token.Class{token.InputOp, token.Ident, token.Newline, token.EOF}},
		{"inline input", "y = +??\n", []token.Class{token.Ident, token.Assign, token.InlineIn, token.Newline, token.EOF}},
		{"mutate push", "^(xs -> 3)*\n", []token.Class{token.Caret, token.LParen, token.Ident, token.Arrow, token.Number, token.RParen, token.Star, token.Newline, token.EOF}},
		{"comparisons", "a >= b <= c != d == e\n", []token.Class{
			token.Ident, token.Ge, token.Ident, token.Le, token.Ident, token.Ne, token.Ident, token.Eq, token.Ident, token.Newline, token.EOF,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.name, tt.src)
			if err != nil {
				t.Fatalf("Tokenize(%q): %v", tt.src, err)
			}

			sameClasses(t, classes(toks), tt.want)
		})
	}
}

func TestTokenizeNumber(t *testing.T) {
	toks, err := Tokenize("t", "3.5\n")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	if toks[0].Class != token.Number || toks[0].Num != 3.5 {
		t.Fatalf("got %v, want Number(3.5)", toks[0])
	}
}

func TestTokenizeString(t *testing.T) {
	toks, err := Tokenize("t", `"hi\nthere"` + "\n")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	if toks[0].Class != token.Text || toks[0].Value != "hi\nthere" {
		t.Fatalf("got %q, want %q", toks[0].Value, "hi\nthere")
	}
}

func TestTokenizeComment(t *testing.T) {
	toks, err := Tokenize("t", "x = 1 // trailing note\n")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	sameClasses(t, classes(toks), []token.Class{token.Ident, token.Assign, token.Number, token.Newline, token.EOF})
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize("t", `"unterminated`)
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("t", "x = `\n")
	if err == nil {
		t.Fatal("expected an error for an unrecognized character")
	}
}

func TestTokenizeUnicodeIdent(t *testing.T) {
	toks, err := Tokenize("t", "café = 1\n")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	if toks[0].Class != token.Ident || toks[0].Value != "café" {
		t.Fatalf("got %v, want Ident(café)", toks[0])
	}
}
