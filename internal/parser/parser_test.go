package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crabculator/crabculator/internal/ast"
	"github.com/crabculator/crabculator/internal/diagnostics"
	"github.com/crabculator/crabculator/internal/lexer"
)

func parseLine(t *testing.T, line string) *Line {
	t.Helper()
	toks, lexErr := lexer.Tokenize(line)
	require.Nil(t, lexErr)
	l, parseErr := Parse(toks, line)
	require.Nil(t, parseErr, "unexpected parse error: %v", parseErr)
	return l
}

func Test_Parse_classification(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect Kind
	}{
		{name: "empty", input: "", expect: Empty},
		{name: "blank", input: "   ", expect: Empty},
		{name: "assignment", input: "x = 5", expect: Assignment},
		{name: "expression", input: "5 + 3", expect: Expression},
		{name: "bare identifier is expression, not assignment", input: "x", expect: Expression},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := parseLine(t, tc.input)
			assert.Equal(t, tc.expect, l.Kind)
		})
	}
}

func Test_Parse_assignmentCapturesName(t *testing.T) {
	l := parseLine(t, "total = 1 + 2")
	require.Equal(t, Assignment, l.Kind)
	assert.Equal(t, "total", l.Name)
	assert.Equal(t, "total", l.NameSpan.Slice("total = 1 + 2"))
}

// shape renders a node as a fully parenthesized expression so a test can
// check how the parser grouped its operands.
func shape(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Number:
		return fmt.Sprintf("%g", n.Value)
	case *ast.Variable:
		return n.Name
	case *ast.Unary:
		if n.Op == ast.Neg {
			return "-" + shape(n.Operand)
		}
		return "+" + shape(n.Operand)
	case *ast.Binary:
		ops := map[ast.BinaryOp]string{ast.Add: "+", ast.Sub: "-", ast.Mul: "*", ast.Div: "/", ast.Mod: "%", ast.Pow: "^"}
		return "(" + shape(n.Left) + " " + ops[n.Op] + " " + shape(n.Right) + ")"
	case *ast.Postfix:
		return shape(n.Operand) + "!"
	}
	return fmt.Sprintf("%T", n)
}

func Test_Parse_precedenceAndAssociativity(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "mul before add", input: "2 + 3 * 4", expect: "(2 + (3 * 4))"},
		{name: "pow right assoc", input: "2 ^ 3 ^ 2", expect: "(2 ^ (3 ^ 2))"},
		{name: "factorial binds tighter than pow", input: "3! ^ 2", expect: "(3! ^ 2)"},
		{name: "unary binds looser than pow", input: "-2 ^ 2", expect: "-(2 ^ 2)"},
		{name: "unary on rhs of pow", input: "2 ^ -3", expect: "(2 ^ -3)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := parseLine(t, tc.input)
			require.Equal(t, Expression, l.Kind)
			require.NotNil(t, l.Expr)
			assert.Equal(t, tc.expect, shape(l.Expr))
		})
	}
}

func Test_Parse_implicitMultiplication(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "number identifier", input: "2pi"},
		{name: "number lparen", input: "3(4+5)"},
		{name: "rparen lparen", input: "(2+3)(4+5)"},
		{name: "rparen identifier", input: "(2+3)pi"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := parseLine(t, tc.input)
			require.Equal(t, Expression, l.Kind)
			bin, ok := l.Expr.(*ast.Binary)
			require.True(t, ok, "expected an implicit multiplication node, got %T", l.Expr)
			assert.Equal(t, ast.Mul, bin.Op)
		})
	}
}

func Test_Parse_identifierLParenIsAlwaysACall(t *testing.T) {
	l := parseLine(t, "sqrt(9)")
	require.Equal(t, Expression, l.Kind)
	call, ok := l.Expr.(*ast.Call)
	require.True(t, ok, "expected a call node, got %T", l.Expr)
	assert.Equal(t, "sqrt", call.Name)
	assert.Len(t, call.Args, 1)
}

func Test_Parse_callWithMultipleArgs(t *testing.T) {
	l := parseLine(t, "gcd(12, 8)")
	call, ok := l.Expr.(*ast.Call)
	require.True(t, ok)
	assert.Len(t, call.Args, 2)
}

func Test_Parse_spansCoverSourceAndNest(t *testing.T) {
	line := "2 + 3 * 4"
	l := parseLine(t, line)
	root := l.Expr.Span()
	assert.Equal(t, 0, root.Start)
	assert.Equal(t, len(line), root.End)

	bin := l.Expr.(*ast.Binary)
	assert.True(t, bin.Left.Span().Start >= bin.Span().Start)
	assert.True(t, bin.Right.Span().End <= bin.Span().End)
}

func Test_Parse_errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		kind  diagnostics.Kind
	}{
		{name: "trailing garbage", input: "2 + 3 4", kind: diagnostics.UnexpectedToken},
		{name: "unmatched open paren", input: "(2 + 3", kind: diagnostics.UnmatchedParen},
		{name: "unmatched close paren", input: "2 + 3)", kind: diagnostics.UnmatchedParen},
		{name: "missing operand after operator", input: "2 +", kind: diagnostics.MissingOperand},
		{name: "missing operand at start", input: "* 3", kind: diagnostics.MissingOperand},
		{name: "assignment target not an identifier", input: "5 = 3", kind: diagnostics.InvalidAssignmentTarget},
		{name: "empty assignment rhs", input: "x =", kind: diagnostics.MissingOperand},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks, lexErr := lexer.Tokenize(tc.input)
			require.Nil(t, lexErr)
			_, err := Parse(toks, tc.input)
			require.NotNil(t, err)
			assert.Equal(t, tc.kind, err.Kind)
		})
	}
}

func Test_Parse_divisionOpSpanIsTheSlash(t *testing.T) {
	line := "5 / 0"
	l := parseLine(t, line)
	bin := l.Expr.(*ast.Binary)
	assert.Equal(t, "/", bin.OpSpan.Slice(line))
}
