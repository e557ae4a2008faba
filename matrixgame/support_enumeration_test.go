package matrixgame

import (
	"math"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

const testTolerance = 1e-7

func checkEquilibria(t *testing.T, g *Game, eqs []Equilibrium) {
	for _, eq := range eqs {
		if !g.IsNashEquilibrium(eq, DefaultTolerance) {
			t.Errorf("%v is not a Nash equilibrium", eq)
		}
	}
}

func containsEquilibrium(eqs []Equilibrium, eq Equilibrium) bool {
	for _, other := range eqs {
		if other.Equal(eq, testTolerance) {
			return true
		}
	}
	return false
}

func TestSupportEnumeration_MatchingPennies(t *testing.T) {
	g := mustNewGame(t, matchingPenniesA, matchingPenniesB)
	eqs, err := g.SupportEnumeration(Options{})
	if err != nil {
		t.Fatal(err)
	}

	if len(eqs) != 1 {
		t.Fatalf("expected 1 equilibrium, got %v", eqs)
	}

	expected := Equilibrium{Row: []float64{0.5, 0.5}, Col: []float64{0.5, 0.5}}
	if !eqs[0].Equal(expected, testTolerance) {
		t.Errorf("got %v, expected %v", eqs[0], expected)
	}
	checkEquilibria(t, g, eqs)
}

func TestSupportEnumeration_DominantStrategies(t *testing.T) {
	// Row 1 strictly dominates for the row player, column 2 for the column player.
	a := [][]float64{
		{1, 0, 2},
		{4, 3, 5},
		{2, 1, 0},
	}
	b := [][]float64{
		{1, 2, 3},
		{0, 1, 2},
		{3, 4, 5},
	}
	g := mustNewGame(t, a, b)
	eqs, err := g.SupportEnumeration(Options{})
	if err != nil {
		t.Fatal(err)
	}

	if len(eqs) != 1 {
		t.Fatalf("expected 1 equilibrium, got %v", eqs)
	}

	if s := eqs[0].RowSupport(testTolerance); !reflect.DeepEqual(s, []int{1}) {
		t.Errorf("got row support %v, expected [1]", s)
	}
	if s := eqs[0].ColSupport(testTolerance); !reflect.DeepEqual(s, []int{2}) {
		t.Errorf("got column support %v, expected [2]", s)
	}
}

func TestSupportEnumeration_BattleOfSexes(t *testing.T) {
	g := mustNewGame(t, battleOfSexesA, battleOfSexesB)
	eqs, err := g.SupportEnumeration(Options{})
	if err != nil {
		t.Fatal(err)
	}

	// Pure equilibria come first, in lexicographic support order.
	expected := []Equilibrium{
		{Row: []float64{1, 0}, Col: []float64{1, 0}},
		{Row: []float64{0, 1}, Col: []float64{0, 1}},
		{Row: []float64{0.6, 0.4}, Col: []float64{0.4, 0.6}},
	}
	if len(eqs) != len(expected) {
		t.Fatalf("expected %d equilibria, got %v", len(expected), eqs)
	}
	for i := range expected {
		if !eqs[i].Equal(expected[i], testTolerance) {
			t.Errorf("equilibrium %d: got %v, expected %v", i, eqs[i], expected[i])
		}
	}
	checkEquilibria(t, g, eqs)
}

func TestSupportEnumeration_RockPaperScissors(t *testing.T) {
	g := mustNewGame(t, rockPaperScissorsA, negate(rockPaperScissorsA))
	eqs, err := g.SupportEnumeration(Options{Parallelism: 1})
	if err != nil {
		t.Fatal(err)
	}

	if len(eqs) != 1 {
		t.Fatalf("expected 1 equilibrium, got %v", eqs)
	}
	for _, p := range append(eqs[0].Row, eqs[0].Col...) {
		if math.Abs(p-1.0/3) > testTolerance {
			t.Errorf("expected uniform strategies, got %v", eqs[0])
		}
	}
}

func TestSupportEnumeration_Degenerate(t *testing.T) {
	zeros := [][]float64{{0, 0}, {0, 0}}
	g := mustNewGame(t, zeros, zeros)
	eqs, err := g.SupportEnumeration(Options{})
	if err != nil {
		t.Fatal(err)
	}

	// Every pure strategy profile is an equilibrium; the continuum between
	// them is not reported.
	if len(eqs) != 4 {
		t.Errorf("expected 4 equilibria, got %v", eqs)
	}
	checkEquilibria(t, g, eqs)
}

func TestSupportEnumeration_MaxSupportSize(t *testing.T) {
	g := mustNewGame(t, matchingPenniesA, matchingPenniesB)
	eqs, err := g.SupportEnumeration(Options{MaxSupportSize: 1})
	if err != nil {
		t.Fatal(err)
	}

	if len(eqs) != 0 {
		t.Errorf("expected no pure equilibria, got %v", eqs)
	}
}

func TestSupportEnumeration_Idempotent(t *testing.T) {
	a := [][]float64{
		{3, 0, 1, 2},
		{0, 2, 4, 1},
		{1, 3, 0, 3},
	}
	b := [][]float64{
		{1, 3, 0, 2},
		{2, 0, 3, 1},
		{0, 2, 1, 4},
	}
	g := mustNewGame(t, a, b)
	first, err := g.SupportEnumeration(Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := g.SupportEnumeration(Options{Parallelism: 1})
	if err != nil {
		t.Fatal(err)
	}

	if len(first) == 0 {
		t.Fatal("expected at least one equilibrium")
	}
	if len(first) != len(second) {
		t.Fatalf("got %d then %d equilibria", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i], 0) {
			t.Errorf("equilibrium %d differs between runs: %v != %v", i, first[i], second[i])
		}
	}
	checkEquilibria(t, g, first)
}

func TestEquilibria_Method(t *testing.T) {
	g := mustNewGame(t, battleOfSexesA, battleOfSexesB)
	for _, name := range []string{"support_enumeration", "vertex_enumeration"} {
		method, err := ParseMethod(name)
		if err != nil {
			t.Fatal(err)
		}
		if method.String() != name {
			t.Errorf("got method %v, expected %v", method, name)
		}

		eqs, err := g.Equilibria(method, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if len(eqs) != 3 {
			t.Errorf("%v: expected 3 equilibria, got %v", method, eqs)
		}
	}

	if _, err := ParseMethod("lemke_howson"); errors.Cause(err) != ErrUnknownMethod {
		t.Errorf("expected unknown method, got %v", err)
	}
	if _, err := g.Equilibria(Method(7), Options{}); errors.Cause(err) != ErrUnknownMethod {
		t.Errorf("expected unknown method, got %v", err)
	}
}
