package matrixgame

import (
	"expvar"
	"sync/atomic"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/combin"
)

var (
	supportPairsChecked = expvar.NewInt("matrixgame/support_pairs_checked")
	singularSystems     = expvar.NewInt("matrixgame/singular_systems")
	unstableSystems     = expvar.NewInt("matrixgame/unstable_systems")
	equilibriaFound     = expvar.NewInt("matrixgame/equilibria_found")
)

// SupportEnumeration returns all Nash equilibria of g that are extreme
// points found by enumerating pairs of equal-size supports.
//
// Supports are visited in ascending size, then lexicographic row support,
// then lexicographic column support, and equilibria are reported in the order
// first found. For each pair (I, J) the column strategy on J making the row
// player indifferent over I is solved from A, and the row strategy on I
// making the column player indifferent over J is solved from B. The pair is
// an equilibrium if both are non-negative and no pure strategy outside the
// supports is a strictly better response. Degenerate games with continua of
// equilibria are reported only by the extreme points this procedure reaches.
//
// The work is exponential in min(n, m) and is intended for small games.
// Row supports of each size are checked in parallel.
func (g *Game) SupportEnumeration(opts Options) ([]Equilibrium, error) {
	opts = opts.withDefaults()
	maxSize := g.nRows
	if g.nCols < maxSize {
		maxSize = g.nCols
	}
	if opts.MaxSupportSize > 0 && opts.MaxSupportSize < maxSize {
		glog.Warningf("Support enumeration limited to supports of size <= %d (game is %dx%d)",
			opts.MaxSupportSize, g.nRows, g.nCols)
		maxSize = opts.MaxSupportSize
	}

	var result []Equilibrium
	var nUnstable int64
	for k := 1; k <= maxSize; k++ {
		rowSupports := combin.Combinations(g.nRows, k)
		colSupports := combin.Combinations(g.nCols, k)
		glog.V(1).Infof("Checking %d x %d supports of size %d", len(rowSupports), len(colSupports), k)

		found := make([][]Equilibrium, len(rowSupports))
		var eg errgroup.Group
		eg.SetLimit(opts.Parallelism)
		for idx, rowSupport := range rowSupports {
			eg.Go(func() error {
				for _, colSupport := range colSupports {
					eq, status := g.checkSupports(rowSupport, colSupport, opts.Tolerance)
					if status == unstable {
						atomic.AddInt64(&nUnstable, 1)
						continue
					}
					if eq != nil {
						glog.V(2).Infof("Equilibrium on supports %v, %v: %v", rowSupport, colSupport, *eq)
						found[idx] = append(found[idx], *eq)
					}
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		for _, eqs := range found {
			for _, eq := range eqs {
				result = appendUnique(result, eq, opts.Tolerance)
			}
		}
	}

	if nUnstable > 0 {
		glog.Warningf("Support enumeration discarded %d ill-conditioned support pairs", nUnstable)
		if len(result) == 0 {
			return nil, errors.Wrapf(ErrNumericalInstability,
				"no equilibrium found and %d support pairs were ill-conditioned", nUnstable)
		}
	}

	equilibriaFound.Add(int64(len(result)))
	return result, nil
}

// checkSupports returns the equilibrium supported on (rowSupport,
// colSupport), or nil if there is none.
func (g *Game) checkSupports(rowSupport, colSupport []int, tol float64) (*Equilibrium, solveStatus) {
	supportPairsChecked.Add(1)
	k := len(rowSupport)

	// Column strategy that makes the row player indifferent over rowSupport.
	// Payoffs are divided by each player's scale so the system is well
	// conditioned regardless of the payoff magnitude.
	m, b := indifferenceSystem(k, func(o, s int) float64 {
		return g.a.At(rowSupport[o], colSupport[s]) / g.aScale
	})
	colProbs, status := solveSquare(m, b)
	if status != solved {
		countStatus(status)
		return nil, status
	}

	// Row strategy that makes the column player indifferent over colSupport.
	m, b = indifferenceSystem(k, func(o, s int) float64 {
		return g.b.At(rowSupport[s], colSupport[o]) / g.bScale
	})
	rowProbs, status := solveSquare(m, b)
	if status != solved {
		countStatus(status)
		return nil, status
	}

	x, ok := expandStrategy(rowProbs[:k], rowSupport, g.nRows, tol)
	if !ok {
		return nil, solved
	}
	y, ok := expandStrategy(colProbs[:k], colSupport, g.nCols, tol)
	if !ok {
		return nil, solved
	}

	rowValue := colProbs[k] * g.aScale
	if floats.Max(g.rowPayoffsAgainst(y)) > rowValue+tol*g.aScale {
		return nil, solved
	}
	colValue := rowProbs[k] * g.bScale
	if floats.Max(g.colPayoffsAgainst(x)) > colValue+tol*g.bScale {
		return nil, solved
	}

	return &Equilibrium{Row: x, Col: y}, solved
}

// expandStrategy places the probabilities of the strategies in support into
// a mixed strategy over n strategies. It fails if any probability is
// negative beyond tol; smaller negative values are clamped to zero.
func expandStrategy(probs []float64, support []int, n int, tol float64) ([]float64, bool) {
	result := make([]float64, n)
	for i, p := range probs {
		if p < -tol {
			return nil, false
		}
		if p < 0 {
			p = 0
		}
		result[support[i]] = p
	}

	total := floats.Sum(result)
	if total <= 0 {
		return nil, false
	}
	floats.Scale(1/total, result)
	return result, true
}

func countStatus(status solveStatus) {
	switch status {
	case singular:
		singularSystems.Add(1)
	case unstable:
		unstableSystems.Add(1)
	}
}
