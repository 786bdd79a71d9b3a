// Package registry holds the immutable function and constant tables used
// by the evaluator. The parser does not consult it: identifiers are
// resolved against these tables only at evaluation time.
// It is resolved once and shared read-only, the same flat dispatch-by-name
// shape as tunascript's builtIn_* table (internal/tunascript/builtins.go)
// and funxy's MathBuiltins() map (internal/evaluator/builtins_math.go).
package registry

import "math"

// Constants maps every built-in constant name to its value. User
// assignments may shadow these within a Context; this table itself never
// changes.
var Constants = map[string]float64{
	"pi":    3.141592653589793,
	"e":     2.718281828459045,
	"tau":   6.283185307179586,
	"phi":   1.618033988749895,
	"sqrt2": 1.4142135623730951,
	"sqrt3": 1.7320508075688772,
	"ln2":   0.6931471805599453,
	"ln10":  2.302585092994046,
}

// IsConstant reports whether name is a built-in constant.
func IsConstant(name string) bool {
	_, ok := Constants[name]
	return ok
}

// Fn is a built-in function implementation. It receives its arguments
// already evaluated, left to right, and returns either a result or a
// domain-specific error (ErrCombinatoricsDomain is the only one currently
// defined; callers attach the call's span).
type Fn struct {
	Arity int
	Call  func(args []float64) (float64, error)
}

// ErrCombinatoricsDomain is returned by ncr/npr when k<0 or k>n.
var ErrCombinatoricsDomain = combinatoricsDomainError{}

type combinatoricsDomainError struct{}

func (combinatoricsDomainError) Error() string { return "combinatorics domain error" }

// Functions is the name -> implementation table, per spec.md §4.3.
var Functions = map[string]Fn{
	"sqrt": unary(math.Sqrt),
	"cbrt": unary(math.Cbrt),
	"abs":  unary(math.Abs),
	"pow":  binary(math.Pow),

	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tan":  unary(math.Tan),
	"asin": unary(math.Asin),
	"acos": unary(math.Acos),
	"atan": unary(math.Atan),
	"atan2": binary(math.Atan2),

	"sinh":   unary(math.Sinh),
	"cosh":   unary(math.Cosh),
	"tanh":   unary(math.Tanh),
	"asinh":  unary(math.Asinh),
	"acosh":  unary(math.Acosh),
	"atanh":  unary(math.Atanh),

	"ln":    unary(math.Log),
	"log":   unary(math.Log10),
	"log10": unary(math.Log10),
	"log2":  unary(math.Log2),

	"exp":  unary(math.Exp),
	"exp2": unary(math.Exp2),

	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"round": unary(roundHalfAwayFromZero),
	"trunc": unary(math.Trunc),
	"frac":  unary(frac),

	"min":    binary(math.Min),
	"max":    binary(math.Max),
	"hypot":  binary(math.Hypot),

	"sgn": unary(sgn),

	"degrees": unary(degrees),
	"radians": unary(radians),

	"cot": unary(cot),
	"sec": unary(sec),
	"csc": unary(csc),

	"gcd": Fn{Arity: 2, Call: gcd},
	"ncr": Fn{Arity: 2, Call: ncr},
	"npr": Fn{Arity: 2, Call: npr},
}

func unary(f func(float64) float64) Fn {
	return Fn{Arity: 1, Call: func(args []float64) (float64, error) {
		return f(args[0]), nil
	}}
}

func binary(f func(float64, float64) float64) Fn {
	return Fn{Arity: 2, Call: func(args []float64) (float64, error) {
		return f(args[0], args[1]), nil
	}}
}

func roundHalfAwayFromZero(x float64) float64 {
	if x < 0 {
		return -math.Floor(-x + 0.5)
	}
	return math.Floor(x + 0.5)
}

func frac(x float64) float64 {
	return x - math.Trunc(x)
}

func sgn(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
func radians(deg float64) float64 { return deg * math.Pi / 180 }

func cot(x float64) float64 { return 1 / math.Tan(x) }
func sec(x float64) float64 { return 1 / math.Cos(x) }
func csc(x float64) float64 { return 1 / math.Sin(x) }

func gcd(args []float64) (float64, error) {
	a := int64(math.Trunc(args[0]))
	b := int64(math.Trunc(args[1]))
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return float64(a), nil
}

func ncr(args []float64) (float64, error) {
	n := int64(math.Trunc(args[0]))
	k := int64(math.Trunc(args[1]))
	if k < 0 || k > n {
		return 0, ErrCombinatoricsDomain
	}
	return binomial(n, k), nil
}

func npr(args []float64) (float64, error) {
	n := int64(math.Trunc(args[0]))
	k := int64(math.Trunc(args[1]))
	if k < 0 || k > n {
		return 0, ErrCombinatoricsDomain
	}
	result := 1.0
	for i := int64(0); i < k; i++ {
		result *= float64(n - i)
	}
	return result, nil
}

func binomial(n, k int64) float64 {
	if k > n-k {
		k = n - k
	}
	result := 1.0
	for i := int64(0); i < k; i++ {
		result = result * float64(n-i) / float64(i+1)
	}
	return result
}
