// Released under an MIT license. See LICENSE.

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/michaelmacinnis/sigil/internal/randsrc"
)

// stdinHost is the eval.Host used for file-mode and `-c` evaluation: program
// output goes to stdout, and +?/+?? read raw lines from the process's own
// stdin via a buffered scanner. internal/host/repl covers the interactive
// liner-backed case instead.
type stdinHost struct {
	scanner *bufio.Scanner
	rnd     randsrc.T
}

func newStdinHost() *stdinHost {
	return &stdinHost{scanner: bufio.NewScanner(os.Stdin), rnd: randsrc.New()}
}

func (h *stdinHost) ReadLine() (string, bool) {
	if !h.scanner.Scan() {
		return "", false
	}

	return h.scanner.Text(), true
}

func (h *stdinHost) Write(text string)    { fmt.Println(text) }
func (h *stdinHost) WriteRaw(text string) { fmt.Print(text) }

func (h *stdinHost) RandBelow(n float64) float64 { return h.rnd.RandBelow(n) }
