package matrixgame

import (
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// DefaultTolerance is used for all equality and non-negativity checks when
// Options.Tolerance is zero. Payoff comparisons scale it by the deviating
// player's largest absolute payoff, so it is relative for any payoff magnitude.
const DefaultTolerance = 1e-9

// Equilibrium is a pair of mixed strategies, one per player.
type Equilibrium struct {
	Row []float64
	Col []float64
}

// RowSupport returns the row strategies played with probability above tol.
func (eq Equilibrium) RowSupport(tol float64) []int {
	return support(eq.Row, tol)
}

// ColSupport returns the column strategies played with probability above tol.
func (eq Equilibrium) ColSupport(tol float64) []int {
	return support(eq.Col, tol)
}

// Equal reports whether both strategies of eq and other agree within tol.
func (eq Equilibrium) Equal(other Equilibrium, tol float64) bool {
	return vecEqual(eq.Row, other.Row, tol) && vecEqual(eq.Col, other.Col, tol)
}

func (eq Equilibrium) String() string {
	return fmt.Sprintf("(%v, %v)", eq.Row, eq.Col)
}

func support(p []float64, tol float64) []int {
	var result []int
	for i, v := range p {
		if v > tol {
			result = append(result, i)
		}
	}
	return result
}

func vecEqual(x, y []float64, tol float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if math.Abs(x[i]-y[i]) > tol {
			return false
		}
	}
	return true
}

// appendUnique appends eq to result unless an equal equilibrium is present.
func appendUnique(result []Equilibrium, eq Equilibrium, tol float64) []Equilibrium {
	for _, other := range result {
		if other.Equal(eq, tol) {
			return result
		}
	}
	return append(result, eq)
}

// Method selects an equilibrium enumeration algorithm.
type Method int

const (
	SupportEnumeration Method = iota
	VertexEnumeration
)

var methodStr = [...]string{
	"support_enumeration",
	"vertex_enumeration",
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodStr) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodStr[m]
}

// ParseMethod returns the Method with the given name.
func ParseMethod(s string) (Method, error) {
	for i, name := range methodStr {
		if strings.EqualFold(s, name) {
			return Method(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownMethod, "%q", s)
}

// Options control equilibrium enumeration.
type Options struct {
	// Tolerance for equality and non-negativity checks. Zero means DefaultTolerance.
	Tolerance float64
	// MaxSupportSize caps the support sizes considered by support
	// enumeration. Zero means no cap. A cap that truncates the search is
	// logged, and equilibria with larger supports are not reported.
	MaxSupportSize int
	// Parallelism is the maximum number of concurrent workers.
	// Zero means runtime.NumCPU().
	Parallelism int
}

func (opts Options) withDefaults() Options {
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = runtime.NumCPU()
	}
	return opts
}

// Equilibria enumerates the Nash equilibria of g with the given method.
// The result is deterministic for a given game and may be empty.
func (g *Game) Equilibria(method Method, opts Options) ([]Equilibrium, error) {
	switch method {
	case SupportEnumeration:
		return g.SupportEnumeration(opts)
	case VertexEnumeration:
		return g.VertexEnumeration(opts)
	default:
		return nil, errors.Wrapf(ErrUnknownMethod, "%v", method)
	}
}
