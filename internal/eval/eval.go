// Released under an MIT license. See LICENSE.

// Package eval walks an internal/ast tree over an internal/env environment,
// producing side effects (print, read) through the Host interface.
// Evaluation is single-threaded, synchronous, and depth-first; there is no
// scheduler.
//
// Grounded on oh's internal/engine/task frame-creation shape
// ("bind params, evaluate body, propagate a completion"), simplified from
// oh's continuation-passing register machine to a plain recursive
// tree-walk: sigil has no job control, so the continuation engine oh needs
// for that has nothing to do here.
package eval

import (
	"math"
	"strconv"
	"strings"

	"github.com/michaelmacinnis/sigil/internal/ast"
	"github.com/michaelmacinnis/sigil/internal/builtin"
	"github.com/michaelmacinnis/sigil/internal/env"
	"github.com/michaelmacinnis/sigil/internal/parser"
	"github.com/michaelmacinnis/sigil/internal/value"
)

// completion is the result of evaluating a statement list: either it ran to
// the end (returning == false) or it hit a `->` (returning == true, Value
// set to the returned value).
type completion struct {
	returning bool
	value     value.T
}

var normal = completion{}

// EvalSource parses src (labelled name) and evaluates it against e using
// host. It is sigil's single core entry point.
func EvalSource(name, src string, e *env.T, host Host) error {
	prog, err := parser.Parse(name, src)
	if err != nil {
		return err
	}

	evalStmts(prog.Stmts, e, host)

	return nil
}

func evalStmts(stmts []ast.Stmt, e *env.T, host Host) completion {
	for _, s := range stmts {
		c := evalStmt(s, e, host)
		if c.returning {
			return c
		}
	}

	return normal
}

func evalStmt(s ast.Stmt, e *env.T, host Host) completion {
	switch n := s.(type) {
	case *ast.Assign:
		e.Set(n.Name, evalExpr(n.Value, e, host))

		return normal
	case *ast.FuncDef:
		e.Global().Set(n.Name, value.Func(&value.Function{
			Name: n.Name, Params: n.Params, Body: n.Body, Flavor: value.Block,
		}))

		return normal
	case *ast.QuickFuncDef:
		e.Global().Set(n.Name, value.Func(&value.Function{
			Name: n.Name, Params: n.Params, Body: n.Body, Flavor: value.Quick,
		}))

		return normal
	case *ast.IfChain:
		return evalIfChain(n, e, host)
	case *ast.While:
		return evalWhile(n, e, host)
	case *ast.ForEach:
		return evalForEach(n, e, host)
	case *ast.Input:
		evalInput(n, e, host)

		return normal
	case *ast.Return:
		return completion{returning: true, value: evalExpr(n.Value, e, host)}
	case *ast.ExprStmt:
		v := evalExpr(n.Value, e, host)

		// A mutating builtin call (e.g. `^(xs -> 3)*`) in statement position
		// runs for its side effect only; its return value is not auto-printed.
		if call, ok := n.Value.(*ast.BuiltinCall); ok && call.Mutate {
			return normal
		}

		if !v.IsNothing() {
			host.Write(value.Display(v))
		}

		return normal
	default:
		return normal
	}
}

func evalIfChain(n *ast.IfChain, e *env.T, host Host) completion {
	for i, cond := range n.Conds {
		if value.Truthy(evalExpr(cond, e, host)) {
			return evalStmts(n.Blocks[i], e, host)
		}
	}

	if n.Else != nil {
		return evalStmts(n.Else, e, host)
	}

	return normal
}

func evalWhile(n *ast.While, e *env.T, host Host) completion {
	for value.Truthy(evalExpr(n.Cond, e, host)) {
		c := evalStmts(n.Body, e, host)
		if c.returning {
			return c
		}
	}

	return normal
}

func evalForEach(n *ast.ForEach, e *env.T, host Host) completion {
	coll := evalExpr(n.Collection, e, host)
	if coll.Kind != value.KindList {
		return normal
	}

	// Iterate the element sequence as captured at loop entry, so mutation
	// of the list during the body does not invalidate iteration.
	snapshot := append([]value.T(nil), coll.Elems()...)

	for _, elem := range snapshot {
		e.Set(n.Var, elem)

		c := evalStmts(n.Body, e, host)
		if c.returning {
			return c
		}
	}

	return normal
}

func evalInput(n *ast.Input, e *env.T, host Host) {
	var promptText string

	hasPrompt := n.Prompt != nil
	if hasPrompt {
		promptText = value.Display(evalExpr(n.Prompt, e, host))
	}

	for i, name := range n.Names {
		if hasPrompt {
			host.WriteRaw(strings.ReplaceAll(promptText, "{?}", strconv.Itoa(i+1)))
		}

		line, ok := host.ReadLine()

		v := value.Nothing
		if ok {
			v = convertInput(line)
		}

		e.Set(name, v)
	}
}

// convertInput auto-converts a line of input: it becomes Number when it
// parses as one, otherwise Text, after trimming surrounding whitespace.
func convertInput(line string) value.T {
	trimmed := strings.TrimSpace(line)

	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return value.Number(n)
	}

	return value.Text(trimmed)
}

func evalExpr(x ast.Expr, e *env.T, host Host) value.T {
	switch n := x.(type) {
	case *ast.NumberLit:
		return value.Number(n.Value)
	case *ast.TextLit:
		return value.Text(n.Value)
	case *ast.BoolLit:
		return value.Bool(n.Value)
	case *ast.ListLit:
		elems := make([]value.T, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = evalExpr(el, e, host)
		}

		return value.List(elems)
	case *ast.Ident:
		v, ok := e.Get(n.Name)
		if !ok {
			return value.Nothing
		}

		return v
	case *ast.InlineInput:
		line, ok := host.ReadLine()
		if !ok {
			return value.Nothing
		}

		return convertInput(line)
	case *ast.Unary:
		return evalUnary(n, e, host)
	case *ast.Binary:
		return evalBinary(n, e, host)
	case *ast.Index:
		return evalIndex(n, e, host)
	case *ast.Call:
		return evalCall(n, e, host)
	case *ast.BuiltinCall:
		args := make([]value.T, len(n.Args))
		for i, a := range n.Args {
			args[i] = evalExpr(a, e, host)
		}

		return builtin.Call(n.Op, args, n.Mutate, host)
	default:
		return value.Nothing
	}
}

func evalUnary(n *ast.Unary, e *env.T, host Host) value.T {
	x := evalExpr(n.X, e, host)

	switch n.Op {
	case "!":
		return value.Bool(!value.Truthy(x))
	case "-":
		if x.Kind != value.KindNumber {
			return value.Nothing
		}

		return value.Number(-x.Num)
	default:
		return value.Nothing
	}
}

func evalBinary(n *ast.Binary, e *env.T, host Host) value.T {
	l := evalExpr(n.L, e, host)
	r := evalExpr(n.R, e, host)

	switch n.Op {
	case "+":
		return value.Add(l, r)
	case "-":
		return value.Sub(l, r)
	case "*":
		return value.Mul(l, r)
	case "/":
		return value.Div(l, r)
	case "%":
		return value.Mod(l, r)
	case "==", "!=", "<", "<=", ">", ">=":
		return value.Compare(n.Op, l, r)
	default:
		return value.Nothing
	}
}

func evalIndex(n *ast.Index, e *env.T, host Host) value.T {
	xs := evalExpr(n.X, e, host)
	if xs.Kind != value.KindList {
		return value.Nothing
	}

	iv := evalExpr(n.I, e, host)
	if iv.Kind != value.KindNumber {
		return value.Nothing
	}

	elems := xs.Elems()
	idx := int(math.Trunc(iv.Num))

	if idx < 0 {
		idx += len(elems)
	}

	if idx < 0 || idx >= len(elems) {
		return value.Nothing
	}

	return elems[idx]
}

func evalCall(n *ast.Call, e *env.T, host Host) value.T {
	callee := evalExpr(n.Callee, e, host)
	if callee.Kind != value.KindFunction {
		return value.Nothing
	}

	args := make([]value.T, len(n.Args))
	for i, a := range n.Args {
		args[i] = evalExpr(a, e, host)
	}

	fn := callee.Fn
	frame := e.NewFrame()

	for i, p := range fn.Params {
		v := value.Nothing
		if i < len(args) {
			v = args[i]
		}

		frame.Set(p, v)
	}

	if fn.Flavor == value.Quick {
		body, _ := fn.Body.(ast.Expr)

		return evalExpr(body, frame, host)
	}

	body, _ := fn.Body.([]ast.Stmt)
	c := evalStmts(body, frame, host)

	if c.returning {
		return c.value
	}

	return value.Nothing
}
