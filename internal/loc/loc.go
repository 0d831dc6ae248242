// Released under an MIT license. See LICENSE.

// Package loc tracks where a token or parse error came from in the source.
package loc

import "strconv"

// T (loc) is a lexical location: a named source and a line/column pair.
type T struct {
	Name string // Label for the source of this location (file name or "<stdin>").
	Line int    // 1-based line number.
	Char int    // 1-based column number.
}

func (l T) String() string {
	return l.Name + ":" + strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Char)
}
