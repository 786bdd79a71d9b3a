// Package evaluator walks an AST against a variable Context and produces
// either a float64 result or a span-carrying diagnostic error.
package evaluator

import (
	"math"

	"github.com/crabculator/crabculator/internal/ast"
	"github.com/crabculator/crabculator/internal/diagnostics"
	"github.com/crabculator/crabculator/internal/registry"
	"github.com/crabculator/crabculator/internal/token"
)

// Context is the identifier -> value store threaded across a buffer's
// lines during one evaluation pass. It starts pre-loaded with the built-in
// constants; user assignments may shadow them.
type Context struct {
	values map[string]float64
}

// NewContext returns a Context pre-loaded with the constant baseline.
func NewContext() *Context {
	c := &Context{values: make(map[string]float64, len(registry.Constants)+8)}
	c.Clear()
	return c
}

// Clear resets the context to the constant-only baseline, discarding every
// user assignment. This is the effect of the driver's supplemented `clear`
// command.
func (c *Context) Clear() {
	c.values = make(map[string]float64, len(registry.Constants)+8)
	for name, v := range registry.Constants {
		c.values[name] = v
	}
}

// Lookup returns a variable's current value.
func (c *Context) Lookup(name string) (float64, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Set binds name to v, shadowing a constant of the same name if present.
func (c *Context) Set(name string, v float64) {
	c.values[name] = v
}

// Snapshot returns a copy of the context's bindings, e.g. for a UI variables
// panel. The returned map is safe to mutate without affecting the context.
func (c *Context) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Eval evaluates an AST node against ctx. ctx is read but never mutated;
// the driver alone commits assignments.
func Eval(node ast.Node, ctx *Context) (float64, *diagnostics.Error) {
	switch n := node.(type) {

	case *ast.Number:
		return n.Value, nil

	case *ast.Variable:
		v, ok := ctx.Lookup(n.Name)
		if !ok {
			return 0, diagnostics.New(diagnostics.UndefinedVariable, n.NodeSpan, n.Name)
		}
		return v, nil

	case *ast.Unary:
		x, err := Eval(n.Operand, ctx)
		if err != nil {
			return 0, err
		}
		if n.Op == ast.Neg {
			return -x, nil
		}
		return x, nil

	case *ast.Binary:
		return evalBinary(n, ctx)

	case *ast.Postfix:
		x, err := Eval(n.Operand, ctx)
		if err != nil {
			return 0, err
		}
		return evalFactorial(x, n.NodeSpan)

	case *ast.Call:
		return evalCall(n, ctx)
	}

	panic("evaluator: unhandled ast node type")
}

func evalBinary(n *ast.Binary, ctx *Context) (float64, *diagnostics.Error) {
	l, err := Eval(n.Left, ctx)
	if err != nil {
		return 0, err
	}
	r, err := Eval(n.Right, ctx)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case ast.Add:
		return l + r, nil
	case ast.Sub:
		return l - r, nil
	case ast.Mul:
		return l * r, nil
	case ast.Div:
		if r == 0 {
			return 0, diagnostics.New(diagnostics.DivisionByZero, n.OpSpan)
		}
		return l / r, nil
	case ast.Mod:
		return math.Mod(l, r), nil
	case ast.Pow:
		return math.Pow(l, r), nil
	}

	panic("evaluator: unhandled binary operator")
}

func evalFactorial(x float64, span token.Span) (float64, *diagnostics.Error) {
	if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) || x < 0 || x > 170 {
		return 0, diagnostics.New(diagnostics.FactorialDomain, span)
	}
	result := 1.0
	for i := 2.0; i <= x; i++ {
		result *= i
	}
	return result, nil
}

func evalCall(n *ast.Call, ctx *Context) (float64, *diagnostics.Error) {
	fn, ok := registry.Functions[n.Name]
	if !ok {
		return 0, diagnostics.New(diagnostics.UnknownFunction, n.NameSpan, n.Name)
	}
	if len(n.Args) != fn.Arity {
		return 0, diagnostics.New(diagnostics.ArityError, n.NodeSpan, n.Name, fn.Arity, len(n.Args))
	}

	args := make([]float64, len(n.Args))
	for i, argNode := range n.Args {
		v, err := Eval(argNode, ctx)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	result, domainErr := fn.Call(args)
	if domainErr != nil {
		return 0, diagnostics.New(diagnostics.CombinatoricsDomain, n.NodeSpan)
	}
	return result, nil
}
