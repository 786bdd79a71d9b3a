// Package parser implements crabculator's recursive-descent expression
// parser: line classification (empty / assignment / expression), implicit
// multiplication insertion, and the grammar of spec §4.2.
//
// The parser is a hand-written recursive-descent walk, one method per
// precedence level, in the shape of the pack's small hand-written
// expression parsers (e.g. the Monkey-style parsers retrieved alongside
// this spec) rather than tunascript's Pratt/NUD-LED style: the grammar here
// is small, fixed, and explicitly given level-by-level in the
// specification, which recursive-descent expresses directly.
package parser

import (
	"fmt"

	"github.com/crabculator/crabculator/internal/ast"
	"github.com/crabculator/crabculator/internal/diagnostics"
	"github.com/crabculator/crabculator/internal/token"
)

// Kind classifies a parsed line.
type Kind int

const (
	Empty Kind = iota
	Assignment
	Expression
)

// Line is the result of classifying and parsing one source line.
type Line struct {
	Kind     Kind
	Name     string     // set only when Kind == Assignment
	NameSpan token.Span // set only when Kind == Assignment
	Expr     ast.Node   // nil when Kind == Empty
}

// Parse classifies and parses a token stream produced by the lexer for a
// single source line. source is the full original line text, used only to
// compute a whole-line fallback span when no specific token can be blamed
// for an error.
func Parse(tokens []token.Token, source string) (*Line, *diagnostics.Error) {
	if len(tokens) == 0 {
		return &Line{Kind: Empty}, nil
	}

	tokens = insertImplicitMultiplication(tokens)

	if tokens[0].Kind == token.Identifier && len(tokens) >= 2 && tokens[1].Kind == token.Equals {
		name := tokens[0].Text
		nameSpan := tokens[0].Span
		p := &parser{tokens: tokens[2:], source: source}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if !p.atEnd() {
			return nil, p.trailingError()
		}
		return &Line{Kind: Assignment, Name: name, NameSpan: nameSpan, Expr: expr}, nil
	}

	if len(tokens) >= 2 && tokens[1].Kind == token.Equals {
		return nil, diagnostics.New(diagnostics.InvalidAssignmentTarget, tokens[0].Span)
	}

	p := &parser{tokens: tokens, source: source}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.trailingError()
	}
	return &Line{Kind: Expression, Expr: expr}, nil
}

type parser struct {
	tokens []token.Token
	pos    int
	source string
}

func (p *parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() (token.Token, bool) {
	if p.atEnd() {
		return token.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) advance() token.Token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

// lineSpan is the whole-line fallback used when no specific token can be
// blamed for an error, per spec §4.2.
func (p *parser) lineSpan() token.Span {
	return token.Span{Start: 0, End: len(p.source)}
}

// currentSpan returns the span to blame for a missing-operand style error:
// the next token's span if one remains, otherwise the whole line.
func (p *parser) currentSpan() token.Span {
	if t, ok := p.peek(); ok {
		return t.Span
	}
	return p.lineSpan()
}

func (p *parser) trailingError() *diagnostics.Error {
	t, _ := p.peek()
	if t.Kind == token.RParen {
		return diagnostics.New(diagnostics.UnmatchedParen, t.Span)
	}
	return diagnostics.New(diagnostics.UnexpectedToken, t.Span, describe(t))
}

func describe(t token.Token) string {
	switch t.Kind {
	case token.Number:
		return fmt.Sprintf("%g", t.Value)
	case token.Identifier:
		return t.Text
	default:
		return string(t.Kind)
	}
}

// parseExpr is the shared entry point used for a whole expression line, an
// assignment's right-hand side, a parenthesized sub-expression, and each
// function-call argument.
func (p *parser) parseExpr() (ast.Node, *diagnostics.Error) {
	return p.parseAdd()
}

// add := mul (('+'|'-') mul)*
func (p *parser) parseAdd() (ast.Node, *diagnostics.Error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || (t.Kind != token.Plus && t.Kind != token.Minus) {
			return left, nil
		}
		p.advance()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		op := ast.Add
		if t.Kind == token.Minus {
			op = ast.Sub
		}
		left = &ast.Binary{
			Op: op, Left: left, Right: right,
			OpSpan:   t.Span,
			NodeSpan: left.Span().Cover(right.Span()),
		}
	}
}

// mul := unary (('*'|'/'|'%') unary)*
func (p *parser) parseMul() (ast.Node, *diagnostics.Error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || (t.Kind != token.Star && t.Kind != token.Slash && t.Kind != token.Percent) {
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		var op ast.BinaryOp
		switch t.Kind {
		case token.Star:
			op = ast.Mul
		case token.Slash:
			op = ast.Div
		case token.Percent:
			op = ast.Mod
		}
		left = &ast.Binary{
			Op: op, Left: left, Right: right,
			OpSpan:   t.Span,
			NodeSpan: left.Span().Cover(right.Span()),
		}
	}
}

// unary := ('+'|'-') unary | pow
func (p *parser) parseUnary() (ast.Node, *diagnostics.Error) {
	t, ok := p.peek()
	if ok && (t.Kind == token.Plus || t.Kind == token.Minus) {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := ast.Pos
		if t.Kind == token.Minus {
			op = ast.Neg
		}
		return &ast.Unary{Op: op, Operand: operand, NodeSpan: t.Span.Cover(operand.Span())}, nil
	}
	return p.parsePow()
}

// pow := postfix ('^' unary)?   -- right-associative
func (p *parser) parsePow() (ast.Node, *diagnostics.Error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	t, ok := p.peek()
	if !ok || t.Kind != token.Caret {
		return left, nil
	}
	p.advance()
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Binary{
		Op: ast.Pow, Left: left, Right: right,
		OpSpan:   t.Span,
		NodeSpan: left.Span().Cover(right.Span()),
	}, nil
}

// postfix := primary ('!')*
func (p *parser) parsePostfix() (ast.Node, *diagnostics.Error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.Kind != token.Bang {
			return left, nil
		}
		p.advance()
		left = &ast.Postfix{Operand: left, NodeSpan: left.Span().Cover(t.Span)}
	}
}

// primary := NUMBER | IDENT | IDENT '(' args? ')' | '(' expr ')'
func (p *parser) parsePrimary() (ast.Node, *diagnostics.Error) {
	t, ok := p.peek()
	if !ok {
		return nil, diagnostics.New(diagnostics.MissingOperand, p.lineSpan())
	}

	switch t.Kind {
	case token.Number:
		p.advance()
		return &ast.Number{Value: t.Value, NodeSpan: t.Span}, nil

	case token.Identifier:
		p.advance()
		if next, ok := p.peek(); ok && next.Kind == token.LParen {
			return p.parseCall(t)
		}
		return &ast.Variable{Name: t.Text, NodeSpan: t.Span}, nil

	case token.LParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if rp, ok := p.peek(); !ok || rp.Kind != token.RParen {
			return nil, diagnostics.New(diagnostics.UnmatchedParen, p.currentSpan())
		}
		p.advance()
		return inner, nil

	default:
		return nil, diagnostics.New(diagnostics.MissingOperand, t.Span)
	}
}

func (p *parser) parseCall(name token.Token) (ast.Node, *diagnostics.Error) {
	p.advance() // consume '('
	var args []ast.Node

	if next, ok := p.peek(); !ok || next.Kind != token.RParen {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			next, ok := p.peek()
			if ok && next.Kind == token.Comma {
				p.advance()
				continue
			}
			break
		}
	}

	rp, ok := p.peek()
	if !ok || rp.Kind != token.RParen {
		return nil, diagnostics.New(diagnostics.UnmatchedParen, p.currentSpan())
	}
	p.advance()

	return &ast.Call{
		Name: name.Text, NameSpan: name.Span, Args: args,
		NodeSpan: name.Span.Cover(rp.Span),
	}, nil
}

// insertImplicitMultiplication walks the raw token stream and injects a
// zero-width synthetic Star token between any adjacent pair matching one of
// the four rules in spec §4.2. Function calls (IDENT LParen) are never one
// of those pairs, so they are unaffected by construction.
func insertImplicitMultiplication(tokens []token.Token) []token.Token {
	if len(tokens) < 2 {
		return tokens
	}
	out := make([]token.Token, 0, len(tokens)+2)
	for i, t := range tokens {
		out = append(out, t)
		if i+1 >= len(tokens) {
			continue
		}
		if impliesMultiplication(t, tokens[i+1]) {
			at := t.Span.End
			out = append(out, token.Token{Kind: token.Star, Span: token.Span{Start: at, End: at}})
		}
	}
	return out
}

func impliesMultiplication(a, b token.Token) bool {
	switch {
	case a.Kind == token.Number && b.Kind == token.Identifier:
		return true
	case a.Kind == token.Number && b.Kind == token.LParen:
		return true
	case a.Kind == token.RParen && b.Kind == token.LParen:
		return true
	case a.Kind == token.RParen && b.Kind == token.Identifier:
		return true
	}
	return false
}
