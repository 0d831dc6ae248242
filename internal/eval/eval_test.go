package eval

import (
	"strings"
	"testing"

	"github.com/michaelmacinnis/sigil/internal/env"
)

// fakeHost is an eval.Host that feeds canned input lines and records all
// output, for driving end-to-end evaluation in tests without a terminal.
type fakeHost struct {
	in      []string
	out     []string
	randSeq []float64
	randIdx int
}

func (h *fakeHost) ReadLine() (string, bool) {
	if len(h.in) == 0 {
		return "", false
	}

	line := h.in[0]
	h.in = h.in[1:]

	return line, true
}

func (h *fakeHost) Write(text string)    { h.out = append(h.out, text) }
func (h *fakeHost) WriteRaw(text string) { h.out = append(h.out, text) }

func (h *fakeHost) RandBelow(n float64) float64 {
	if h.randIdx >= len(h.randSeq) {
		return 0
	}

	v := h.randSeq[h.randIdx]
	h.randIdx++

	return v
}

func run(t *testing.T, src string, in ...string) *fakeHost {
	t.Helper()

	h := &fakeHost{in: in}
	e := env.New()

	if err := EvalSource("t", src, e, h); err != nil {
		t.Fatalf("EvalSource: %v", err)
	}

	return h
}

func TestHelloAndInput(t *testing.T) {
	h := run(t, `+? name : "who: {?}"`+"\n"+`$(name)`+"\n", "Ada")

	if len(h.out) == 0 || h.out[len(h.out)-1] != "Ada" {
		t.Fatalf("got output %v, want last line Ada", h.out)
	}

	if !strings.Contains(h.out[0], "who: 1") {
		t.Fatalf("got prompt %q, want it to contain 'who: 1'", h.out[0])
	}
}

func TestIfElseIfChain(t *testing.T) {
	src := "x = 0\n" +
		"? x > 0 {\n\"pos\"\n} ?? x < 0 {\n\"neg\"\n} ?? {\n\"zero\"\n}\n"

	h := run(t, src)

	if len(h.out) != 1 || h.out[0] != "zero" {
		t.Fatalf("got %v, want [zero]", h.out)
	}
}

func TestFactorialRecursion(t *testing.T) {
	src := "fact(n) => {\n" +
		"? n <= 1 {\n-> 1\n}\n" +
		"-> n * fact(n - 1)\n" +
		"}\n" +
		"fact(5)\n"

	h := run(t, src)

	if len(h.out) != 1 || h.out[0] != "120" {
		t.Fatalf("got %v, want [120]", h.out)
	}
}

func TestForEachMutation(t *testing.T) {
	src := "xs = [1 2 3]\n" +
		">> x xs {\n" +
		"^(xs -> x * 10)*\n" +
		"}\n" +
		"$(xs)\n"

	h := run(t, src)

	if len(h.out) != 1 {
		t.Fatalf("got %v, want one printed line", h.out)
	}

	if h.out[0] != "[1 2 3 10 20 30]" {
		t.Fatalf("got %q, want snapshot iteration over the original 3 elements", h.out[0])
	}
}

func TestDedupeAndSort(t *testing.T) {
	src := "xs = [3 1 2 1 3]\n" +
		"ys = <<(xs)\n" +
		"$(++(ys))\n"

	h := run(t, src)

	if len(h.out) != 1 || h.out[0] != "[1 2 3]" {
		t.Fatalf("got %v, want [[1 2 3]]", h.out)
	}
}

func TestMutatingSortThenBareIdent(t *testing.T) {
	src := "xs = [3 1 2]\n" +
		"++(xs)*\n" +
		"xs\n"

	h := run(t, src)

	if len(h.out) != 1 || h.out[0] != "[1 2 3]" {
		t.Fatalf("got %v, want [[1 2 3]]", h.out)
	}
}

func TestMutatingDedupeAndSortDescThenBareIdent(t *testing.T) {
	src := "s = [5 1 5 3 1]\n" +
		"<<(s)*\n" +
		"--(s)*\n" +
		"s\n"

	h := run(t, src)

	if len(h.out) != 1 || h.out[0] != "[5 3 1]" {
		t.Fatalf("got %v, want [[5 3 1]]", h.out)
	}
}

func TestInlineInputIntoQuickFunction(t *testing.T) {
	src := "double(n) ~> n * 2\n" +
		"double(+??)\n"

	h := run(t, src, "21")

	if len(h.out) != 1 || h.out[0] != "42" {
		t.Fatalf("got %v, want [42]", h.out)
	}
}

func TestWhileLoop(t *testing.T) {
	src := "x = 0\n" +
		"@ x < 3 {\n" +
		"x = x + 1\n" +
		"}\n" +
		"$(x)\n"

	h := run(t, src)

	if len(h.out) != 1 || h.out[0] != "3" {
		t.Fatalf("got %v, want [3]", h.out)
	}
}

func TestReturnBubblesThroughNestedBlocks(t *testing.T) {
	src := "f() => {\n" +
		"@ yes {\n" +
		"? yes {\n" +
		"-> 9\n" +
		"}\n" +
		"}\n" +
		"-> 0\n" +
		"}\n" +
		"f()\n"

	h := run(t, src)

	if len(h.out) != 1 || h.out[0] != "9" {
		t.Fatalf("got %v, want [9]; return should escape the while/if nesting", h.out)
	}
}

func TestAssignmentDoesNotAutoPrint(t *testing.T) {
	h := run(t, "x = 5\n")

	if len(h.out) != 0 {
		t.Fatalf("got output %v, want none: assignment should not auto-print", h.out)
	}
}
