package matrixgame

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"
)

// vertex is a vertex of a best response polytope together with its labels:
// labels[l] is true if the constraint with label l is tight at the vertex.
type vertex struct {
	point  []float64
	labels []bool
}

// polytope is {z : G z <= h}. Row r of G carries label r.
type polytope struct {
	g *mat.Dense
	h []float64
}

// VertexEnumeration returns the Nash equilibria of g found by pairing
// completely labeled vertices of the two best response polytopes
//
//	P = {x >= 0 : B^T x <= 1}    Q = {y >= 0 : A y <= 1}
//
// after shifting both payoff matrices to be positive. Labels 0..n-1 are
// row strategies and n..n+m-1 are column strategies. Vertices are found by
// solving every choice of tight constraints, so the cost grows with
// C(n+m, n) and this is only practical for small games.
func (g *Game) VertexEnumeration(opts Options) ([]Equilibrium, error) {
	opts = opts.withDefaults()
	n, m := g.nRows, g.nCols
	a := shiftPositive(scaled(g.a, 1/g.aScale))
	b := shiftPositive(scaled(g.b, 1/g.bScale))
	glog.Infof("Vertex enumeration of %dx%d game: solving %d bases per polytope", n, m, basisCount(n, m))

	// P: x_i >= 0 (label i), (B^T x)_j <= 1 (label n+j).
	p := polytope{g: mat.NewDense(n+m, n, nil), h: make([]float64, n+m)}
	for i := 0; i < n; i++ {
		p.g.Set(i, i, -1)
	}
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			p.g.Set(n+j, i, b.At(i, j))
		}
		p.h[n+j] = 1
	}

	// Q: (A y)_i <= 1 (label i), y_j >= 0 (label n+j).
	q := polytope{g: mat.NewDense(n+m, m, nil), h: make([]float64, n+m)}
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			q.g.Set(i, j, a.At(i, j))
		}
		q.h[i] = 1
	}
	for j := 0; j < m; j++ {
		q.g.Set(n+j, j, -1)
	}

	pVertices, pUnstable := p.vertices(opts.Tolerance)
	qVertices, qUnstable := q.vertices(opts.Tolerance)
	glog.V(1).Infof("Found %d and %d best response polytope vertices", len(pVertices), len(qVertices))

	var result []Equilibrium
	for _, vx := range pVertices {
		for _, vy := range qVertices {
			if !completelyLabeled(vx.labels, vy.labels) {
				continue
			}

			x := normalized(vx.point, opts.Tolerance)
			y := normalized(vy.point, opts.Tolerance)
			result = appendUnique(result, Equilibrium{Row: x, Col: y}, opts.Tolerance)
		}
	}

	if nUnstable := pUnstable + qUnstable; nUnstable > 0 {
		glog.Warningf("Vertex enumeration discarded %d ill-conditioned bases", nUnstable)
		if len(result) == 0 {
			return nil, errors.Wrapf(ErrNumericalInstability,
				"no equilibrium found and %d bases were ill-conditioned", nUnstable)
		}
	}

	equilibriaFound.Add(int64(len(result)))
	return result, nil
}

// vertices returns the non-zero vertices of the polytope, in the order
// their first basis is reached, and the number of bases discarded as
// ill-conditioned.
func (p polytope) vertices(tol float64) ([]vertex, int) {
	nConstraints, dim := p.g.Dims()
	var result []vertex
	nUnstable := 0
	basis := make([]int, dim)
	gen := combin.NewCombinationGenerator(nConstraints, dim)
	for gen.Next() {
		gen.Combination(basis)
		m := mat.NewDense(dim, dim, nil)
		rhs := make([]float64, dim)
		for r, c := range basis {
			m.SetRow(r, p.g.RawRowView(c))
			rhs[r] = p.h[c]
		}

		z, status := solveSquare(m, rhs)
		countStatus(status)
		if status == unstable {
			nUnstable++
		}
		if status != solved {
			continue
		}

		if floats.Sum(z) <= tol {
			// The origin is the artificial equilibrium.
			continue
		}

		labels, feasible := p.labels(z, tol)
		if !feasible {
			continue
		}

		duplicate := false
		for _, v := range result {
			if vecEqual(v.point, z, tol) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			result = append(result, vertex{point: z, labels: labels})
		}
	}

	return result, nUnstable
}

// labels returns which constraints are tight at z, and whether z
// satisfies all of them.
func (p polytope) labels(z []float64, tol float64) ([]bool, bool) {
	nConstraints, _ := p.g.Dims()
	labels := make([]bool, nConstraints)
	for r := 0; r < nConstraints; r++ {
		lhs := floats.Dot(p.g.RawRowView(r), z)
		switch {
		case lhs > p.h[r]+tol:
			return nil, false
		case lhs >= p.h[r]-tol:
			labels[r] = true
		}
	}
	return labels, true
}

func completelyLabeled(x, y []bool) bool {
	for l := range x {
		if !x[l] && !y[l] {
			return false
		}
	}
	return true
}

// normalized returns z scaled to sum to one, with entries at or below tol
// (including -0 and rounding noise) set to zero.
func normalized(z []float64, tol float64) []float64 {
	result := make([]float64, len(z))
	for i, v := range z {
		if v > tol {
			result[i] = v
		}
	}
	floats.Scale(1/floats.Sum(result), result)
	return result
}

// basisCount is the number of tight-constraint choices tried for each best
// response polytope of an n x m game.
func basisCount(n, m int) int {
	return combin.Binomial(n+m, n)
}

func scaled(m *mat.Dense, f float64) *mat.Dense {
	var result mat.Dense
	result.Scale(f, m)
	return &result
}

// shiftPositive returns a copy of m with a constant added so that every
// entry is at least 1. Equilibria are invariant to the shift.
func shiftPositive(m *mat.Dense) *mat.Dense {
	result := mat.DenseCopyOf(m)
	lo := mat.Min(m)
	if lo >= 1 {
		return result
	}

	shift := 1 - lo
	result.Apply(func(i, j int, v float64) float64 {
		return v + shift
	}, result)
	return result
}
