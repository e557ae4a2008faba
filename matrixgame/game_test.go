package matrixgame

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	matchingPenniesA = [][]float64{
		{1, -1},
		{-1, 1},
	}
	matchingPenniesB = [][]float64{
		{-1, 1},
		{1, -1},
	}

	battleOfSexesA = [][]float64{
		{3, 0},
		{0, 2},
	}
	battleOfSexesB = [][]float64{
		{2, 0},
		{0, 3},
	}

	rockPaperScissorsA = [][]float64{
		{0, -1, 1},
		{1, 0, -1},
		{-1, 1, 0},
	}
)

func negate(m [][]float64) [][]float64 {
	result := make([][]float64, len(m))
	for i, row := range m {
		result[i] = make([]float64, len(row))
		for j, v := range row {
			result[i][j] = -v
		}
	}
	return result
}

func scaledPayoffs(m [][]float64, f float64) [][]float64 {
	result := make([][]float64, len(m))
	for i, row := range m {
		result[i] = make([]float64, len(row))
		for j, v := range row {
			result[i][j] = f * v
		}
	}
	return result
}

func mustNewGame(t *testing.T, a, b [][]float64) *Game {
	g, err := NewGameFromSlices(a, b)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNewGame_ShapeMismatch(t *testing.T) {
	a := mat.NewDense(2, 3, nil)
	b := mat.NewDense(3, 2, nil)
	if _, err := NewGame(a, b); errors.Cause(err) != ErrShapeMismatch {
		t.Errorf("expected shape mismatch, got %v", err)
	}

	if _, err := NewGame(a, nil); errors.Cause(err) != ErrShapeMismatch {
		t.Errorf("expected shape mismatch for nil matrix, got %v", err)
	}

	ragged := [][]float64{{1, 2}, {3}}
	if _, err := NewGameFromSlices(ragged, ragged); errors.Cause(err) != ErrShapeMismatch {
		t.Errorf("expected shape mismatch for ragged rows, got %v", err)
	}
}

func TestNewGame_NonFinite(t *testing.T) {
	a := [][]float64{{1, math.NaN()}}
	b := [][]float64{{1, 2}}
	if _, err := NewGameFromSlices(a, b); errors.Cause(err) != ErrInvalidPayoff {
		t.Errorf("expected invalid payoff, got %v", err)
	}

	b = [][]float64{{math.Inf(-1), 2}}
	if _, err := NewGameFromSlices([][]float64{{1, 2}}, b); errors.Cause(err) != ErrInvalidPayoff {
		t.Errorf("expected invalid payoff, got %v", err)
	}
}

func TestNewGame_CopiesPayoffs(t *testing.T) {
	a := mat.NewDense(1, 2, []float64{1, 2})
	b := mat.NewDense(1, 2, []float64{3, 4})
	g, err := NewGame(a, b)
	if err != nil {
		t.Fatal(err)
	}

	a.Set(0, 0, 100)
	g.RowPayoffs().Set(0, 1, 100)
	if g.RowPayoffs().At(0, 0) != 1 || g.RowPayoffs().At(0, 1) != 2 {
		t.Errorf("game payoffs were modified: %v", mat.Formatted(g.RowPayoffs()))
	}

	if r, c := g.Dims(); r != 1 || c != 2 {
		t.Errorf("got dims %dx%d, expected 1x2", r, c)
	}
}

func TestPayoffs(t *testing.T) {
	g := mustNewGame(t, battleOfSexesA, battleOfSexesB)
	eq := Equilibrium{Row: []float64{0.6, 0.4}, Col: []float64{0.4, 0.6}}
	rowPayoff, colPayoff := g.Payoffs(eq)
	if math.Abs(rowPayoff-1.2) > 1e-12 || math.Abs(colPayoff-1.2) > 1e-12 {
		t.Errorf("got payoffs (%v, %v), expected (1.2, 1.2)", rowPayoff, colPayoff)
	}
}

func TestIsNashEquilibrium(t *testing.T) {
	g := mustNewGame(t, matchingPenniesA, matchingPenniesB)
	if !g.IsNashEquilibrium(Equilibrium{Row: []float64{0.5, 0.5}, Col: []float64{0.5, 0.5}}, DefaultTolerance) {
		t.Error("uniform strategies should be an equilibrium of matching pennies")
	}

	if g.IsNashEquilibrium(Equilibrium{Row: []float64{1, 0}, Col: []float64{1, 0}}, DefaultTolerance) {
		t.Error("pure strategies should not be an equilibrium of matching pennies")
	}

	if g.IsNashEquilibrium(Equilibrium{Row: []float64{0.5, 0.6}, Col: []float64{0.5, 0.5}}, DefaultTolerance) {
		t.Error("strategy that does not sum to one accepted")
	}

	if g.IsNashEquilibrium(Equilibrium{Row: []float64{1}, Col: []float64{0.5, 0.5}}, DefaultTolerance) {
		t.Error("strategy with wrong length accepted")
	}
}

func TestIsNashEquilibrium_SmallPayoffs(t *testing.T) {
	g := mustNewGame(t, scaledPayoffs(matchingPenniesA, 1e-13), scaledPayoffs(matchingPenniesB, 1e-13))
	if !g.IsNashEquilibrium(Equilibrium{Row: []float64{0.5, 0.5}, Col: []float64{0.5, 0.5}}, DefaultTolerance) {
		t.Error("uniform strategies should be an equilibrium of scaled matching pennies")
	}
	if g.IsNashEquilibrium(Equilibrium{Row: []float64{1, 0}, Col: []float64{1, 0}}, DefaultTolerance) {
		t.Error("pure strategies should not be an equilibrium of scaled matching pennies")
	}
}

func TestEquilibria_SmallPayoffs(t *testing.T) {
	g := mustNewGame(t, scaledPayoffs(matchingPenniesA, 1e-13), scaledPayoffs(matchingPenniesB, 1e-13))
	expected := Equilibrium{Row: []float64{0.5, 0.5}, Col: []float64{0.5, 0.5}}
	for _, method := range []Method{SupportEnumeration, VertexEnumeration} {
		eqs, err := g.Equilibria(method, Options{})
		if err != nil {
			t.Fatalf("%v: %v", method, err)
		}
		if len(eqs) != 1 || !eqs[0].Equal(expected, testTolerance) {
			t.Errorf("%v: got %v, expected [%v]", method, eqs, expected)
		}
	}
}
