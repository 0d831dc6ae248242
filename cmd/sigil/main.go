// Released under an MIT license. See LICENSE.

// sigil runs programs written in a symbol-driven scripting language: every
// control-flow construct is spelled with ASCII symbols instead of
// keywords.
//
// Usage mirrors oh's own options parsing (internal/system/options),
// condensed to sigil's narrower surface: there is no job control, so sigil
// carries neither -m/--monitor nor -s/--stdin.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"

	"github.com/michaelmacinnis/sigil/internal/env"
	"github.com/michaelmacinnis/sigil/internal/eval"
	"github.com/michaelmacinnis/sigil/internal/host/repl"
)

const usage = `sigil

Usage:
  sigil SCRIPT
  sigil -c COMMAND
  sigil
  sigil -h
  sigil -v

Arguments:
  SCRIPT   Path to a sigil source file.

Options:
  -c, --command=COMMAND  Evaluate COMMAND and exit.
  -h, --help              Display this help.
  -v, --version           Print sigil's version.

With no SCRIPT or -c, sigil reads source interactively: lines are buffered
until a bare "run" line flushes them to the evaluator.
`

const version = "sigil 1.1"

func main() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		panic(err.Error())
	}

	if v, _ := opts.Bool("--version"); v {
		fmt.Println(version)

		return
	}

	command, _ := opts.String("--command")
	script, _ := opts.String("SCRIPT")

	e := env.New()

	switch {
	case script != "":
		runScript(e, script)
	case command != "":
		runCommand(e, command)
	case isatty.IsTerminal(os.Stdin.Fd()):
		r := repl.New()
		defer r.Close()
		r.Run(e)
	default:
		// Piped, non-terminal stdin: no liner, but the same "run"-sentinel
		// buffering applies, reading source and +?/+?? input from the one
		// stream in sequence.
		runBuffered(e, newStdinHost())
	}
}

// runBuffered mirrors repl.T.Run for hosts without a line editor.
func runBuffered(e *env.T, host *stdinHost) {
	var buf []byte

	for {
		line, ok := host.ReadLine()
		if !ok {
			return
		}

		if strings.TrimSpace(line) == repl.Sentinel {
			src := string(buf)
			buf = buf[:0]

			if err := eval.EvalSource("<stdin>", src, e, host); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}

			continue
		}

		buf = append(buf, line...)
		buf = append(buf, '\n')
	}
}

func runScript(e *env.T, path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	host := newStdinHost()
	if err := eval.EvalSource(path, string(src), e, host); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCommand(e *env.T, command string) {
	host := newStdinHost()
	if err := eval.EvalSource("<command>", command, e, host); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
