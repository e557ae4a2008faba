package margingame

import (
	"github.com/timpalpant/margingame/npyio"
)

// ExportNPZ writes both payoff matrices and their axis values to a NumPy
// .npz archive at output, for plotting. Columns of the matrices correspond
// elementwise to the target_probs and spreads arrays.
func ExportNPZ(output string, attacker, defender *PayoffMatrix) error {
	if err := checkMatrices(attacker, defender); err != nil {
		return err
	}

	nRows, nCols := defender.Dims()
	columns := defender.Columns()
	targetProbs := make([]float64, nCols)
	spreads := make([]float64, nCols)
	for j, c := range columns {
		targetProbs[j] = c.TargetProb
		spreads[j] = c.Spread
	}

	return npyio.WriteNPZ(map[string]npyio.Array{
		"attacker":     {Shape: []int{nRows, nCols}, Data: attacker.Values()},
		"defender":     {Shape: []int{nRows, nCols}, Data: defender.Values()},
		"margins":      {Shape: []int{nRows}, Data: defender.Margins()},
		"target_probs": {Shape: []int{nCols}, Data: targetProbs},
		"spreads":      {Shape: []int{nCols}, Data: spreads},
	}, output)
}
