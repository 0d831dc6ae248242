// Released under an MIT license. See LICENSE.

// Package token defines the lexical tokens shared by the lexer and parser.
package token

import (
	"strconv"

	"github.com/michaelmacinnis/sigil/internal/loc"
)

// Class identifies a token's lexical category.
type Class int

// Token classes.
const (
	Error Class = iota
	EOF

	Number
	Text
	Ident

	LBracket // [
	RBracket // ]
	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }

	Assign // =
	Eq     // ==
	Ne     // !=
	Ge     // >=
	Le     // <=  (comparison OR legacy block terminator; parser decides)
	Gt     // >
	Lt     // <

	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %

	At         // @
	ForEach    // >>
	Arrow      // ->
	FuncArrow  // =>
	QuickArrow // ~>
	Quest      // ?
	QuestQuest // ??
	InputOp    // +?
	InlineIn   // +??
	Colon      // :

	Hash    // #
	Dollar  // $
	Tilde   // ~
	Caret   // ^
	Amp     // &
	Bar     // |
	Bang    // !
	RandOp  // ?=
	Reverse // <>
	Inc     // ++
	Dec     // --
	Swap    // ><
	Shl     // <<

	Newline
	Semicolon
)

var names = map[Class]string{
	Error: "error", EOF: "eof",
	Number: "number", Text: "text", Ident: "identifier",
	LBracket: "[", RBracket: "]", LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	Assign: "=", Eq: "==", Ne: "!=", Ge: ">=", Le: "<=", Gt: ">", Lt: "<",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	At: "@", ForEach: ">>", Arrow: "->", FuncArrow: "=>", QuickArrow: "~>",
	Quest: "?", QuestQuest: "??", InputOp: "+?", InlineIn: "+??", Colon: ":",
	Hash: "#", Dollar: "$", Tilde: "~", Caret: "^", Amp: "&", Bar: "|", Bang: "!",
	RandOp: "?=", Reverse: "<>", Inc: "++", Dec: "--", Swap: "><", Shl: "<<",
	Newline: "newline", Semicolon: ";",
}

// String returns a human-readable name for the class c. Useful for diagnostics.
func (c Class) String() string {
	if s, ok := names[c]; ok {
		return s
	}

	return "class(" + strconv.Itoa(int(c)) + ")"
}

// T (token) is a single lexical item.
type T struct {
	Class  Class
	Value  string
	Num    float64 // populated when Class == Number
	Source loc.T
}

// New creates a token.
func New(c Class, v string, source loc.T) *T {
	return &T{Class: c, Value: v, Source: source}
}

// Is returns true if t's class is any of cs.
func (t *T) Is(cs ...Class) bool {
	if t == nil {
		return false
	}

	for _, c := range cs {
		if t.Class == c {
			return true
		}
	}

	return false
}

// String returns a debug representation of the token.
func (t *T) String() string {
	return strconv.Quote(t.Value) + "(" + t.Class.String() + "," + t.Source.String() + ")"
}

// BuiltinSymbols are the operator lexemes that begin a builtin call when
// immediately followed by '('. Every one but "v" lexes as its own symbol
// class; "v" lexes as a plain identifier (it is a letter) and is recognized
// positionally by the parser instead.
var BuiltinSymbols = map[Class]bool{
	Hash: true, Dollar: true, Tilde: true, Caret: true, Amp: true, Bar: true,
	Bang: true, RandOp: true, Reverse: true, Inc: true, Dec: true, Swap: true, Shl: true,
}
