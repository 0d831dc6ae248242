// Released under an MIT license. See LICENSE.

// Package builtin implements sigil's symbol-addressed operator catalogue:
// #, $, ~, ^, v, &, |, !, ?=, <>, ++, --, ><, << — each with a pure form
// and, where a list is the mutable first argument, a mutating form
// selected by the call's trailing `*`.
//
// Grounded on oh's internal/engine/commands layout: one function
// per operator, a table dispatching by symbol. Every arity or type
// mismatch here yields value.Nothing rather than a Go error, matching
// sigil's forgiving runtime error model.
package builtin

import (
	"strconv"
	"strings"

	"github.com/michaelmacinnis/sigil/internal/value"
)

// RandSource supplies the uniform-integer source behind ?=. Any host that
// exposes RandBelow(float64) float64 — in particular eval.Host — satisfies
// this without package builtin importing package eval.
type RandSource interface {
	RandBelow(n float64) float64
}

type fn func(args []value.T, mutate bool, rnd RandSource) value.T

var table = map[string]fn{
	"#":  length,
	"$":  display,
	"~":  toNumber,
	"!":  not,
	"?=": randBelow,
	"^":  push,
	"v":  pop,
	"<>": reverse,
	"++": sortAsc,
	"--": sortDesc,
	"><": contains,
	"<<": dedupe,
	"&":  join,
	"|":  split,
}

// Call dispatches op over args. mutate is the call's trailing `*` flag.
// Unknown ops cannot occur for a parsed program (the parser only builds
// BuiltinCall nodes for symbols in this table) but are handled defensively.
func Call(op string, args []value.T, mutate bool, rnd RandSource) value.T {
	f, ok := table[op]
	if !ok {
		return value.Nothing
	}

	return f(args, mutate, rnd)
}

func length(args []value.T, _ bool, _ RandSource) value.T {
	if len(args) != 1 {
		return value.Nothing
	}

	switch args[0].Kind {
	case value.KindList:
		return value.Number(float64(len(args[0].Elems())))
	case value.KindText:
		return value.Number(float64(len([]rune(args[0].Str))))
	default:
		return value.Nothing
	}
}

func display(args []value.T, _ bool, _ RandSource) value.T {
	if len(args) != 1 {
		return value.Nothing
	}

	return value.Text(value.Display(args[0]))
}

func toNumber(args []value.T, _ bool, _ RandSource) value.T {
	if len(args) != 1 {
		return value.Nothing
	}

	switch args[0].Kind {
	case value.KindNumber:
		return args[0]
	case value.KindText:
		n, err := strconv.ParseFloat(strings.TrimSpace(args[0].Str), 64)
		if err != nil {
			return value.Nothing
		}

		return value.Number(n)
	default:
		return value.Nothing
	}
}

func not(args []value.T, _ bool, _ RandSource) value.T {
	if len(args) != 1 {
		return value.Nothing
	}

	return value.Bool(!value.Truthy(args[0]))
}

func randBelow(args []value.T, _ bool, rnd RandSource) value.T {
	if len(args) != 1 || args[0].Kind != value.KindNumber {
		return value.Nothing
	}

	return value.Number(rnd.RandBelow(args[0].Num))
}

func push(args []value.T, mutate bool, _ RandSource) value.T {
	if len(args) != 2 || args[0].Kind != value.KindList {
		return value.Nothing
	}

	if mutate {
		*args[0].List = append(*args[0].List, args[1])

		return args[0]
	}

	elems := append(append([]value.T(nil), args[0].Elems()...), args[1])

	return value.List(elems)
}

func pop(args []value.T, mutate bool, _ RandSource) value.T {
	if len(args) != 1 || args[0].Kind != value.KindList {
		return value.Nothing
	}

	elems := args[0].Elems()
	if len(elems) == 0 {
		return value.Nothing
	}

	if mutate {
		*args[0].List = elems[:len(elems)-1]

		return args[0]
	}

	return value.List(append([]value.T(nil), elems[:len(elems)-1]...))
}

func reverse(args []value.T, mutate bool, _ RandSource) value.T {
	if len(args) != 1 || args[0].Kind != value.KindList {
		return value.Nothing
	}

	elems := args[0].Elems()
	out := make([]value.T, len(elems))

	for i, e := range elems {
		out[len(elems)-1-i] = e
	}

	if mutate {
		*args[0].List = out

		return args[0]
	}

	return value.List(out)
}

func sortAsc(args []value.T, mutate bool, _ RandSource) value.T {
	if len(args) != 1 || args[0].Kind != value.KindList {
		return value.Nothing
	}

	out := value.SortAscending(args[0].Elems())

	if mutate {
		*args[0].List = out

		return args[0]
	}

	return value.List(out)
}

func sortDesc(args []value.T, mutate bool, _ RandSource) value.T {
	if len(args) != 1 || args[0].Kind != value.KindList {
		return value.Nothing
	}

	out := value.SortDescending(args[0].Elems())

	if mutate {
		*args[0].List = out

		return args[0]
	}

	return value.List(out)
}

func contains(args []value.T, _ bool, _ RandSource) value.T {
	if len(args) != 2 || args[0].Kind != value.KindList {
		return value.Nothing
	}

	for _, e := range args[0].Elems() {
		if value.Equal(e, args[1]) {
			return value.Bool(true)
		}
	}

	return value.Bool(false)
}

func dedupe(args []value.T, mutate bool, _ RandSource) value.T {
	if len(args) != 1 || args[0].Kind != value.KindList {
		return value.Nothing
	}

	elems := args[0].Elems()

	var out []value.T

	for _, e := range elems {
		seen := false

		for _, o := range out {
			if value.Equal(e, o) {
				seen = true

				break
			}
		}

		if !seen {
			out = append(out, e)
		}
	}

	if mutate {
		*args[0].List = out

		return args[0]
	}

	return value.List(out)
}

func join(args []value.T, _ bool, _ RandSource) value.T {
	if len(args) != 2 || args[0].Kind != value.KindList {
		return value.Nothing
	}

	sep := value.Display(args[1])
	elems := args[0].Elems()
	parts := make([]string, len(elems))

	for i, e := range elems {
		parts[i] = value.Display(e)
	}

	return value.Text(strings.Join(parts, sep))
}

func split(args []value.T, _ bool, _ RandSource) value.T {
	if len(args) != 2 || args[0].Kind != value.KindText {
		return value.Nothing
	}

	text := args[0].Str
	sep := value.Display(args[1])

	var parts []string

	if sep == "" {
		for _, r := range text {
			parts = append(parts, string(r))
		}
	} else {
		parts = strings.Split(text, sep)
	}

	elems := make([]value.T, len(parts))
	for i, s := range parts {
		elems[i] = value.Text(s)
	}

	return value.List(elems)
}
