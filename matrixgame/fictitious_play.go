package matrixgame

import (
	"math"
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// FictitiousPlay approximates an equilibrium of g for games too large to
// enumerate. In each of nIter rounds both players best respond to the
// empirical play of the other, or with probability mixingLambda play a
// uniformly random strategy instead. The returned strategies are the
// normalized play counts.
func FictitiousPlay(g *Game, nIter int, mixingLambda float64, rng *rand.Rand) (Equilibrium, error) {
	if nIter < 1 {
		return Equilibrium{}, errors.Errorf("fictitious play needs at least 1 iteration, got %d", nIter)
	}

	rowPlayCounts := make([]int, g.nRows)
	colPlayCounts := make([]int, g.nCols)
	logEvery := nIter / 10
	if logEvery == 0 {
		logEvery = 1
	}

	for i := 1; i <= nIter; i++ {
		var rowSelected int
		if rng.Float64() < mixingLambda {
			rowSelected = rng.Intn(len(rowPlayCounts))
		} else {
			rowSelected = g.rowBestResponse(colPlayCounts, rng)
		}

		var colSelected int
		if rng.Float64() < mixingLambda {
			colSelected = rng.Intn(len(colPlayCounts))
		} else {
			colSelected = g.colBestResponse(rowPlayCounts, rng)
		}
		rowPlayCounts[rowSelected]++
		colPlayCounts[colSelected]++

		if i%logEvery == 0 {
			glog.V(1).Infof("After %d iterations, row player weights: %v", i, normalize(rowPlayCounts))
			glog.V(1).Infof("After %d iterations, column player weights: %v", i, normalize(colPlayCounts))
		}
	}

	return Equilibrium{
		Row: normalize(rowPlayCounts),
		Col: normalize(colPlayCounts),
	}, nil
}

func (g *Game) rowBestResponse(colPlayCounts []int, rng *rand.Rand) int {
	utilities := make([]float64, g.nRows)
	for j, c := range colPlayCounts {
		for i := range utilities {
			utilities[i] += float64(c) * g.a.At(i, j)
		}
	}

	_, br := argMax(utilities, rng)
	return br
}

func (g *Game) colBestResponse(rowPlayCounts []int, rng *rand.Rand) int {
	utilities := make([]float64, g.nCols)
	for i, c := range rowPlayCounts {
		for j := range utilities {
			utilities[j] += float64(c) * g.b.At(i, j)
		}
	}

	_, br := argMax(utilities, rng)
	return br
}

func normalize(counts []int) []float64 {
	total := 0
	for _, v := range counts {
		total += v
	}

	result := make([]float64, len(counts))
	for i, v := range counts {
		result[i] = float64(v) / float64(total)
	}
	return result
}

// argMax returns the largest value and its index. Ties are broken at random.
func argMax(vs []float64, rng *rand.Rand) (float64, int) {
	best := -math.MaxFloat64
	bestIdx := 0
	for i, v := range vs {
		if v > best {
			best = v
			bestIdx = i
		} else if v == best && rng.Intn(2) == 1 {
			bestIdx = i
		}
	}

	return best, bestIdx
}
