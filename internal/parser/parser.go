// Released under an MIT license. See LICENSE.

// Package parser builds an internal/ast tree from tokens produced by
// internal/lexer. It accepts both the brace-delimited block style and the
// legacy `stmt* <=` style, and resolves the statement-position overloading
// of `?` (if-clause vs. legacy single-variable input).
//
// Errors are reported the way oh's own parser does: a parse method panics
// with an *Error (formatted as "name:line:col: message") and a single
// recover at the top of Parse turns that into a returned error.
package parser

import (
	"fmt"

	"github.com/michaelmacinnis/sigil/internal/ast"
	"github.com/michaelmacinnis/sigil/internal/lexer"
	"github.com/michaelmacinnis/sigil/internal/loc"
	"github.com/michaelmacinnis/sigil/internal/token"
)

// Error is a syntax error with a source location.
type Error struct {
	Pos loc.T
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

type parser struct {
	toks []*token.T
	pos  int
	name string
}

// Parse tokenizes and parses src (labelled name for diagnostics).
func Parse(name, src string) (prog *ast.Program, err error) {
	toks, lexErr := lexer.Tokenize(name, src)
	if lexErr != nil {
		return nil, lexErr
	}

	p := &parser{toks: toks, name: name}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*Error); ok {
				err = e

				return
			}

			panic(r)
		}
	}()

	prog = &ast.Program{Stmts: p.parseStmts(func(t *token.T) bool { return t.Is(token.EOF) })}

	return prog, nil
}

func (p *parser) fail(t *token.T, format string, args ...interface{}) {
	panic(&Error{Pos: t.Source, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) peek() *token.T {
	return p.peekAt(0)
}

func (p *parser) peekAt(n int) *token.T {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF sentinel
	}

	return p.toks[i]
}

func (p *parser) advance() *token.T {
	t := p.peek()
	if !t.Is(token.EOF) {
		p.pos++
	}

	return t
}

func (p *parser) expect(c token.Class) *token.T {
	t := p.peek()
	if !t.Is(c) {
		p.fail(t, "expected %s, got '%s'", c, t.Value)
	}

	return p.advance()
}

func (p *parser) skipSeparators() {
	for p.peek().Is(token.Newline, token.Semicolon) {
		p.advance()
	}
}

func isTerminator(t *token.T) bool {
	return t.Is(token.Newline, token.Semicolon, token.EOF, token.RBrace, token.Le)
}

func isExprStart(t *token.T) bool {
	if t.Is(token.Number, token.Text, token.Ident, token.LBracket, token.LParen,
		token.InlineIn, token.Minus, token.Bang) {
		return true
	}

	return token.BuiltinSymbols[t.Class]
}

// parseStmts reads statements, skipping separators between them, until end
// reports true of the current token (without consuming that token).
func (p *parser) parseStmts(end func(*token.T) bool) []ast.Stmt {
	var stmts []ast.Stmt

	p.skipSeparators()

	for !end(p.peek()) {
		stmts = append(stmts, p.parseStmt())
		p.skipSeparators()
	}

	return stmts
}

// parseBlock accepts both '{' stmt* '}' and the legacy stmt* '<=' forms.
func (p *parser) parseBlock() []ast.Stmt {
	if p.peek().Is(token.LBrace) {
		p.advance()

		stmts := p.parseStmts(func(t *token.T) bool { return t.Is(token.RBrace) })
		p.expect(token.RBrace)

		return stmts
	}

	stmts := p.parseStmts(func(t *token.T) bool { return t.Is(token.Le, token.EOF) })
	p.expect(token.Le)

	return stmts
}

func (p *parser) parseStmt() ast.Stmt {
	t := p.peek()

	switch {
	case t.Is(token.At):
		return p.parseWhile()
	case t.Is(token.ForEach):
		return p.parseForEach()
	case t.Is(token.InputOp):
		return p.parseInput()
	case t.Is(token.Arrow):
		return p.parseReturn()
	case t.Is(token.Quest):
		return p.parseQuestStmt()
	case t.Is(token.Ident):
		if p.peekAt(1).Is(token.Assign) {
			return p.parseAssign()
		}

		if p.peekAt(1).Is(token.LParen) {
			if isDef, quick := p.lookaheadFuncDef(); isDef {
				return p.parseFuncDef(quick)
			}
		}

		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseAssign() ast.Stmt {
	name := p.advance()
	pos := name.Source
	p.expect(token.Assign)
	val := p.parseExpr()

	return &ast.Assign{Name: name.Value, Value: val, Pos: pos}
}

// lookaheadFuncDef decides, by pure peeking (no state mutation), whether the
// identifier call at the current position is a function definition. Params
// in a definition are always bare identifiers, so scanning the parenthesized
// list for anything other than Ident tokens rules a definition out without
// needing to backtrack.
func (p *parser) lookaheadFuncDef() (isDef, quick bool) {
	i := p.pos + 2 // just past Ident '('

	for p.toks[clampIdx(i, len(p.toks))].Is(token.Ident) {
		i++
	}

	j := clampIdx(i, len(p.toks))
	if !p.toks[j].Is(token.RParen) {
		return false, false
	}

	next := p.toks[clampIdx(j+1, len(p.toks))]
	if next.Is(token.FuncArrow) {
		return true, false
	}

	if next.Is(token.QuickArrow) {
		return true, true
	}

	return false, false
}

func clampIdx(i, n int) int {
	if i >= n {
		return n - 1
	}

	return i
}

func (p *parser) parseFuncDef(quick bool) ast.Stmt {
	name := p.expect(token.Ident)
	pos := name.Source
	p.expect(token.LParen)

	var params []string
	for p.peek().Is(token.Ident) {
		params = append(params, p.advance().Value)
	}

	p.expect(token.RParen)

	if quick {
		p.expect(token.QuickArrow)
		body := p.parseExpr()

		return &ast.QuickFuncDef{Name: name.Value, Params: params, Body: body, Pos: pos}
	}

	p.expect(token.FuncArrow)
	body := p.parseBlock()

	return &ast.FuncDef{Name: name.Value, Params: params, Body: body, Pos: pos}
}

func (p *parser) parseWhile() ast.Stmt {
	pos := p.expect(token.At).Source
	cond := p.parseExpr()
	body := p.parseBlock()

	return &ast.While{Cond: cond, Body: body, Pos: pos}
}

func (p *parser) parseForEach() ast.Stmt {
	pos := p.expect(token.ForEach).Source
	name := p.expect(token.Ident)
	coll := p.parseExpr()
	body := p.parseBlock()

	return &ast.ForEach{Var: name.Value, Collection: coll, Body: body, Pos: pos}
}

func (p *parser) parseInput() ast.Stmt {
	pos := p.expect(token.InputOp).Source

	var names []string
	for p.peek().Is(token.Ident) {
		names = append(names, p.advance().Value)
	}

	if len(names) == 0 {
		p.fail(p.peek(), "expected at least one variable name after +?")
	}

	var prompt ast.Expr
	if p.peek().Is(token.Colon) {
		p.advance()
		prompt = p.parseExpr()
	}

	return &ast.Input{Names: names, Prompt: prompt, Pos: pos}
}

func (p *parser) parseReturn() ast.Stmt {
	pos := p.expect(token.Arrow).Source
	val := p.parseExpr()

	return &ast.Return{Value: val, Pos: pos}
}

// parseQuestStmt resolves leading `?`: a legacy single-variable input
// (`? ident` with nothing else on the logical line) or an if-chain. The
// token after ident decides: Le is ambiguous on its own (it is also the
// comparison operator), so `? n <= 1` is only read as input when Le is not
// itself followed by another expression, i.e. it is the enclosing legacy
// block's terminator rather than `<=` continuing the condition.
func (p *parser) parseQuestStmt() ast.Stmt {
	if p.peekAt(1).Is(token.Ident) && p.endsLegacyInput(p.peekAt(2)) {
		pos := p.advance().Source
		name := p.advance().Value

		return &ast.Input{Names: []string{name}, Pos: pos}
	}

	return p.parseIfChain()
}

func (p *parser) endsLegacyInput(t *token.T) bool {
	if t.Is(token.Le) {
		return !isExprStart(p.peekAt(3))
	}

	return isTerminator(t)
}

func (p *parser) startsBareElse() bool {
	t := p.peek()

	return t.Is(token.LBrace) || !isExprStart(t)
}

func (p *parser) parseIfChain() ast.Stmt {
	pos := p.expect(token.Quest).Source
	cond := p.parseExpr()
	body := p.parseBlock()

	conds := []ast.Expr{cond}
	blocks := [][]ast.Stmt{body}

	var elseBlock []ast.Stmt

	for p.peek().Is(token.QuestQuest) {
		p.advance()

		if p.startsBareElse() {
			elseBlock = p.parseBlock()

			break
		}

		conds = append(conds, p.parseExpr())
		blocks = append(blocks, p.parseBlock())
	}

	return &ast.IfChain{Conds: conds, Blocks: blocks, Else: elseBlock, Pos: pos}
}

func (p *parser) parseExprStmt() ast.Stmt {
	return &ast.ExprStmt{Value: p.parseExpr()}
}

// Expression grammar, precedence low to high.

func (p *parser) parseExpr() ast.Expr {
	return p.parseEquality()
}

func (p *parser) parseEquality() ast.Expr {
	left := p.parseRelational()

	for p.peek().Is(token.Eq, token.Ne) {
		op := p.advance()
		right := p.parseRelational()
		left = &ast.Binary{Op: op.Value, L: left, R: right}
	}

	return left
}

func (p *parser) parseRelational() ast.Expr {
	left := p.parseAdditive()

	for p.peek().Is(token.Lt, token.Le, token.Gt, token.Ge) {
		op := p.advance()
		right := p.parseAdditive()
		left = &ast.Binary{Op: op.Value, L: left, R: right}
	}

	return left
}

func (p *parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()

	for p.peek().Is(token.Plus, token.Minus) {
		op := p.advance()
		right := p.parseMultiplicative()
		left = &ast.Binary{Op: op.Value, L: left, R: right}
	}

	return left
}

func (p *parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()

	for p.peek().Is(token.Star, token.Slash, token.Percent) {
		op := p.advance()
		right := p.parseUnary()
		left = &ast.Binary{Op: op.Value, L: left, R: right}
	}

	return left
}

func (p *parser) parseUnary() ast.Expr {
	t := p.peek()

	// '!' immediately followed by '(' is the !(x) builtin call, not unary
	// negation of a parenthesized expression; builtin-call syntax wins.
	if t.Is(token.Bang) && !p.peekAt(1).Is(token.LParen) {
		p.advance()

		return &ast.Unary{Op: "!", X: p.parseUnary()}
	}

	if t.Is(token.Minus) {
		p.advance()

		return &ast.Unary{Op: "-", X: p.parseUnary()}
	}

	return p.parsePostfix()
}

func (p *parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()

	for {
		switch {
		case p.peek().Is(token.LBracket):
			pos := p.advance().Source
			idx := p.parseExpr()
			p.expect(token.RBracket)
			e = &ast.Index{X: e, I: idx, Pos: pos}
		case p.peek().Is(token.LParen):
			pos := p.advance().Source
			args := p.parseArgs(false)
			p.expect(token.RParen)
			e = &ast.Call{Callee: e, Args: args, Pos: pos}
		default:
			return e
		}
	}
}

// parseArgs parses space-separated expressions up to (not including) the
// closing ')'. When arrowSugar is set, a `->` between arguments is skipped
// (the builtin-call sugar, e.g. `^(xs -> 3)`).
func (p *parser) parseArgs(arrowSugar bool) []ast.Expr {
	var args []ast.Expr

	for !p.peek().Is(token.RParen, token.EOF) {
		args = append(args, p.parseExpr())

		if arrowSugar && p.peek().Is(token.Arrow) {
			p.advance()
		}
	}

	return args
}

func (p *parser) parsePrimary() ast.Expr {
	t := p.peek()

	switch {
	case t.Is(token.Number):
		p.advance()

		return &ast.NumberLit{Value: t.Num}
	case t.Is(token.Text):
		p.advance()

		return &ast.TextLit{Value: t.Value}
	case t.Is(token.Ident):
		return p.parseIdentPrimary()
	case t.Is(token.LBracket):
		return p.parseListLit()
	case t.Is(token.LParen):
		p.advance()

		e := p.parseExpr()
		p.expect(token.RParen)

		return e
	case t.Is(token.InlineIn):
		p.advance()

		return &ast.InlineInput{Pos: t.Source}
	case token.BuiltinSymbols[t.Class]:
		return p.parseBuiltinCall(t)
	default:
		p.fail(t, "unexpected '%s'", t.Value)

		return nil
	}
}

func (p *parser) parseIdentPrimary() ast.Expr {
	t := p.advance()

	switch t.Value {
	case "yes":
		return &ast.BoolLit{Value: true}
	case "no":
		return &ast.BoolLit{Value: false}
	case "v":
		if p.peek().Is(token.LParen) {
			return p.parseBuiltinCallFrom("v", t)
		}
	}

	return &ast.Ident{Name: t.Value, Pos: t.Source}
}

func (p *parser) parseBuiltinCall(sym *token.T) ast.Expr {
	p.advance()

	return p.parseBuiltinCallFrom(sym.Value, sym)
}

func (p *parser) parseBuiltinCallFrom(op string, sym *token.T) ast.Expr {
	p.expect(token.LParen)
	args := p.parseArgs(true)
	rparen := p.expect(token.RParen)

	// `*` immediately after `)` (no intervening whitespace) is the mutate
	// flag; anywhere else it is the multiplication operator, so leave it
	// for parseMultiplicative to pick up.
	mutate := false
	if star := p.peek(); star.Is(token.Star) && adjacent(rparen, star) {
		p.advance()

		mutate = true
	}

	return &ast.BuiltinCall{Op: op, Args: args, Mutate: mutate, Pos: sym.Source}
}

// adjacent reports whether b immediately follows a in the source, with no
// whitespace between them.
func adjacent(a, b *token.T) bool {
	return a.Source.Line == b.Source.Line && a.Source.Char+len(a.Value) == b.Source.Char
}

func (p *parser) parseListLit() ast.Expr {
	p.advance()

	var elems []ast.Expr
	for !p.peek().Is(token.RBracket, token.EOF) {
		elems = append(elems, p.parseExpr())
	}

	p.expect(token.RBracket)

	return &ast.ListLit{Elems: elems}
}
