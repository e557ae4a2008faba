package matrixgame

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// conditionLimit is the largest condition number for which the solution of a
// linear system is trusted.
var conditionLimit = 1e12

type solveStatus int

const (
	solved solveStatus = iota
	// The system has no unique solution.
	singular
	// The system is invertible but too ill-conditioned to trust.
	unstable
)

// solveSquare solves m * x = b for square m.
func solveSquare(m *mat.Dense, b []float64) ([]float64, solveStatus) {
	var lu mat.LU
	lu.Factorize(m)
	cond := lu.Cond()
	if lu.Det() == 0 || math.IsInf(cond, 1) || math.IsNaN(cond) {
		return nil, singular
	}
	if cond > conditionLimit {
		return nil, unstable
	}

	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, mat.NewVecDense(len(b), b)); err != nil {
		return nil, unstable
	}

	return x.RawVector().Data, solved
}

// indifferenceSystem builds the system whose solution (p, v) is the mixed
// strategy p over the given own strategies that makes the opponent
// indifferent, with value v, across its strategies. payoff(o, s) is the
// opponent's payoff when it plays o against own strategy s.
//
//	sum_s payoff(o, s) p_s - v = 0   for each opponent strategy o
//	sum_s p_s                  = 1
func indifferenceSystem(k int, payoff func(o, s int) float64) (*mat.Dense, []float64) {
	m := mat.NewDense(k+1, k+1, nil)
	for o := 0; o < k; o++ {
		for s := 0; s < k; s++ {
			m.Set(o, s, payoff(o, s))
		}
		m.Set(o, k, -1)
	}
	for s := 0; s < k; s++ {
		m.Set(k, s, 1)
	}

	b := make([]float64, k+1)
	b[k] = 1
	return m, b
}
