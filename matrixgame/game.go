package matrixgame

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Game is a finite two-player general-sum game in strategic form.
// The row player receives A[i][j] and the column player receives B[i][j]
// when the row player plays i and the column player plays j.
type Game struct {
	a, b  *mat.Dense
	nRows int
	nCols int
	// Largest absolute payoff of each player (1 if all are zero). Payoff
	// comparisons and the enumeration systems are relative to these.
	aScale float64
	bScale float64
}

// NewGame returns the game with row player payoffs a and column player
// payoffs b. The matrices are copied.
func NewGame(a, b mat.Matrix) (*Game, error) {
	if a == nil || b == nil {
		return nil, errors.Wrap(ErrShapeMismatch, "nil payoff matrix")
	}

	ra, ca := a.Dims()
	rb, cb := b.Dims()
	if ra != rb || ca != cb {
		return nil, errors.Wrapf(ErrShapeMismatch, "%dx%d != %dx%d", ra, ca, rb, cb)
	}
	if ra == 0 || ca == 0 {
		return nil, errors.Wrapf(ErrShapeMismatch, "empty %dx%d game", ra, ca)
	}

	g := &Game{
		a:     mat.DenseCopyOf(a),
		b:     mat.DenseCopyOf(b),
		nRows: ra,
		nCols: ca,
	}

	for i := 0; i < ra; i++ {
		for j := 0; j < ca; j++ {
			va, vb := g.a.At(i, j), g.b.At(i, j)
			if !isFinite(va) || !isFinite(vb) {
				return nil, errors.Wrapf(ErrInvalidPayoff, "entry (%d, %d)", i, j)
			}
			g.aScale = math.Max(g.aScale, math.Abs(va))
			g.bScale = math.Max(g.bScale, math.Abs(vb))
		}
	}
	if g.aScale == 0 {
		g.aScale = 1
	}
	if g.bScale == 0 {
		g.bScale = 1
	}

	return g, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NewGameFromSlices returns the game with payoffs given as rows of values.
func NewGameFromSlices(a, b [][]float64) (*Game, error) {
	ma, err := denseFromSlices(a)
	if err != nil {
		return nil, err
	}
	mb, err := denseFromSlices(b)
	if err != nil {
		return nil, err
	}
	return NewGame(ma, mb)
}

func denseFromSlices(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "empty payoff matrix")
	}

	nCols := len(rows[0])
	data := make([]float64, 0, len(rows)*nCols)
	for i, row := range rows {
		if len(row) != nCols {
			return nil, errors.Wrapf(ErrShapeMismatch, "row %d has %d columns, expected %d", i, len(row), nCols)
		}
		data = append(data, row...)
	}

	return mat.NewDense(len(rows), nCols, data), nil
}

// Dims returns the number of pure strategies of the row and column players.
func (g *Game) Dims() (int, int) {
	return g.nRows, g.nCols
}

// RowPayoffs returns a copy of the row player's payoff matrix.
func (g *Game) RowPayoffs() *mat.Dense {
	return mat.DenseCopyOf(g.a)
}

// ColPayoffs returns a copy of the column player's payoff matrix.
func (g *Game) ColPayoffs() *mat.Dense {
	return mat.DenseCopyOf(g.b)
}

// Payoffs returns the expected payoff of each player when both play eq.
func (g *Game) Payoffs(eq Equilibrium) (rowPayoff, colPayoff float64) {
	x := mat.NewVecDense(g.nRows, eq.Row)
	y := mat.NewVecDense(g.nCols, eq.Col)
	return mat.Inner(x, g.a, y), mat.Inner(x, g.b, y)
}

// IsNashEquilibrium reports whether eq is a pair of mixed strategies from
// which neither player gains more than tol, relative to that player's
// largest absolute payoff, by deviating to any pure strategy.
func (g *Game) IsNashEquilibrium(eq Equilibrium, tol float64) bool {
	if len(eq.Row) != g.nRows || !IsMixedStrategy(eq.Row, tol) {
		return false
	}
	if len(eq.Col) != g.nCols || !IsMixedStrategy(eq.Col, tol) {
		return false
	}

	rowValue, colValue := g.Payoffs(eq)
	rowBR := g.rowPayoffsAgainst(eq.Col)
	colBR := g.colPayoffsAgainst(eq.Row)
	return floats.Max(rowBR) <= rowValue+tol*g.aScale && floats.Max(colBR) <= colValue+tol*g.bScale
}

// rowPayoffsAgainst returns the row player's payoff of each pure strategy
// against the column player's mixed strategy y.
func (g *Game) rowPayoffsAgainst(y []float64) []float64 {
	var result mat.VecDense
	result.MulVec(g.a, mat.NewVecDense(g.nCols, y))
	return result.RawVector().Data
}

// colPayoffsAgainst returns the column player's payoff of each pure strategy
// against the row player's mixed strategy x.
func (g *Game) colPayoffsAgainst(x []float64) []float64 {
	var result mat.VecDense
	result.MulVec(g.b.T(), mat.NewVecDense(g.nRows, x))
	return result.RawVector().Data
}

// IsMixedStrategy reports whether p is a non-empty probability vector:
// no entry below -tol and a sum within tol*len(p) of one.
func IsMixedStrategy(p []float64, tol float64) bool {
	if len(p) == 0 {
		return false
	}

	for _, v := range p {
		if math.IsNaN(v) || v < -tol {
			return false
		}
	}

	return math.Abs(floats.Sum(p)-1) <= tol*float64(len(p))
}
