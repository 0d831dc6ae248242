// Released under an MIT license. See LICENSE.

// Package repl provides a liner-backed interactive host for sigil,
// implementing the eval.Host contracts plus the "run"-sentinel buffered
// evaluation mode and word completion.
//
// Grounded on internal/ui/ui.go's liner.NewLiner/TerminalMode/
// SetWordCompleter sequence. oh's caller (legacy broker.go) layers a
// job-control signal broker above ui.Run; sigil has no job control, so that
// plumbing has nothing to attach to here and is not reproduced.
package repl

import (
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/michaelmacinnis/sigil/internal/env"
	"github.com/michaelmacinnis/sigil/internal/eval"
	"github.com/michaelmacinnis/sigil/internal/randsrc"
)

// Sentinel is the v1.0 REPL line that flushes buffered source to the
// evaluator.
const Sentinel = "run"

// T is the interactive REPL host.
type T struct {
	cli *liner.State
	rnd randsrc.T
	env *env.T // set by Run; nil until then, so complete degrades gracefully
}

// New creates an interactive host backed by a liner line editor.
func New() *T {
	cli := liner.NewLiner()
	cli.SetCtrlCAborts(true)

	r := &T{cli: cli, rnd: randsrc.New()}
	cli.SetWordCompleter(r.complete)

	return r
}

// Close releases the line editor's terminal state.
func (r *T) Close() { r.cli.Close() }

// ReadLine implements eval.Host: it reads one raw line with no displayed
// prompt, for +? (no prompt clause) and +??.
func (r *T) ReadLine() (string, bool) {
	line, err := r.cli.Prompt("")
	if err != nil {
		return "", false
	}

	r.cli.AppendHistory(line)

	return line, true
}

// Write implements eval.Host.
func (r *T) Write(text string) { os.Stdout.WriteString(text + "\n") }

// WriteRaw implements eval.Host.
func (r *T) WriteRaw(text string) { os.Stdout.WriteString(text) }

// RandBelow implements eval.Host.
func (r *T) RandBelow(n float64) float64 { return r.rnd.RandBelow(n) }

// Run drives the v1.0 REPL loop: prompt for lines, buffer them, and flush
// the buffer to the evaluator whenever a bare "run" line is seen.
func (r *T) Run(e *env.T) {
	r.env = e

	var buf strings.Builder

	for {
		line, err := r.cli.Prompt("sigil> ")
		if err != nil {
			return
		}

		r.cli.AppendHistory(line)

		if strings.TrimSpace(line) == Sentinel {
			src := buf.String()
			buf.Reset()

			if err := eval.EvalSource("<stdin>", src, e, r); err != nil {
				os.Stderr.WriteString(err.Error() + "\n")
			}

			continue
		}

		buf.WriteString(line)
		buf.WriteString("\n")
	}
}

// complete offers completions for a partial line: builtin-call symbol
// prefixes and identifiers already bound in the global environment. This is
// a REPL convenience, not a language-surface feature.
func (r *T) complete(line string, pos int) (head string, completions []string, tail string) {
	head, tail = line[:pos], line[pos:]

	start := strings.LastIndexAny(head, " \t([{") + 1
	prefix := head[start:]

	if prefix == "" {
		return head, nil, tail
	}

	seen := map[string]bool{}

	for _, name := range []string{"#", "$", "~", "^", "v", "&", "|", "!", "?=", "<>", "++", "--", "><", "<<"} {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			completions = append(completions, head[:start]+name)
			seen[name] = true
		}
	}

	if r.env != nil {
		for _, name := range r.env.Names() {
			if strings.HasPrefix(name, prefix) && !seen[name] {
				completions = append(completions, head[:start]+name)
				seen[name] = true
			}
		}
	}

	return head[:start], completions, tail
}
