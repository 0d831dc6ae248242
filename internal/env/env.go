// Released under an MIT license. See LICENSE.

// Package env implements sigil's environment: a name-to-value mapping with
// exactly two levels, global and one call frame per function invocation.
// There is no nested lexical scoping beyond that: if/while/for-each bodies
// run in the frame they appear in, never a scope of their own.
package env

import "github.com/michaelmacinnis/sigil/internal/value"

// T (env) is a single environment frame.
type T struct {
	vars     map[string]value.T
	previous *T // nil for the global environment
}

// New creates the global environment.
func New() *T {
	return &T{vars: make(map[string]value.T)}
}

// NewFrame creates a call frame whose parent is the global environment e
// belongs to. A call frame's parent is always global, never another call
// frame, so calls do not nest lexically.
func (e *T) NewFrame() *T {
	return &T{vars: make(map[string]value.T), previous: e.Global()}
}

// Global walks to the outermost frame.
func (e *T) Global() *T {
	g := e
	for g.previous != nil {
		g = g.previous
	}

	return g
}

// Get looks up k in e, then in e's parent.
func (e *T) Get(k string) (value.T, bool) {
	if v, ok := e.vars[k]; ok {
		return v, true
	}

	if e.previous != nil {
		return e.previous.Get(k)
	}

	return value.Nothing, false
}

// Set binds or rebinds k to v in e's own frame, never the parent: every
// assignment targets the frame it was made in, and inner if/while/for-each
// blocks share that frame rather than introducing their own.
func (e *T) Set(k string, v value.T) {
	e.vars[k] = v
}

// Names returns the names bound in e's own frame, for REPL completion.
func (e *T) Names() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}

	return names
}
