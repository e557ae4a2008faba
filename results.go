package margingame

import (
	"encoding/gob"
	"io"

	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/timpalpant/margingame/matrixgame"
)

// Results is a solved margin game as saved to disk.
type Results struct {
	Config  Config
	Margins Axis
	Columns []Column
	// Payoffs in row-major order.
	AttackerPayoffs []float64
	DefenderPayoffs []float64
	// Name of the method that found the equilibria.
	Method     string
	Equilibria []matrixgame.Equilibrium
}

// NewResults collects a solved game for saving.
func NewResults(cfg Config, attacker, defender *PayoffMatrix, method string, eqs []matrixgame.Equilibrium) *Results {
	return &Results{
		Config:          cfg,
		Margins:         defender.Margins(),
		Columns:         defender.Columns(),
		AttackerPayoffs: attacker.Values(),
		DefenderPayoffs: defender.Values(),
		Method:          method,
		Equilibria:      eqs,
	}
}

// Matrices returns the saved payoff matrices.
func (r *Results) Matrices() (attacker, defender *PayoffMatrix, err error) {
	nRows, nCols := len(r.Margins), len(r.Columns)
	if nRows*nCols == 0 || len(r.AttackerPayoffs) != nRows*nCols || len(r.DefenderPayoffs) != nRows*nCols {
		return nil, nil, errors.Wrapf(matrixgame.ErrShapeMismatch,
			"%d and %d payoffs for a %dx%d grid", len(r.AttackerPayoffs), len(r.DefenderPayoffs), nRows, nCols)
	}

	newMatrix := func(player Player, data []float64) *PayoffMatrix {
		return &PayoffMatrix{
			player:  player,
			data:    mat.NewDense(nRows, nCols, append([]float64(nil), data...)),
			margins: append(Axis(nil), r.Margins...),
			columns: append([]Column(nil), r.Columns...),
		}
	}

	return newMatrix(Attacker, r.AttackerPayoffs), newMatrix(Defender, r.DefenderPayoffs), nil
}

// SaveResults writes r to w as gzipped gob.
func SaveResults(w io.Writer, r *Results) error {
	gz := gzip.NewWriter(w)
	enc := gob.NewEncoder(gz)
	if err := enc.Encode(r); err != nil {
		gz.Close()
		return err
	}

	return gz.Close()
}

// LoadResults reads results written by SaveResults.
func LoadResults(r io.Reader) (*Results, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	var result Results
	dec := gob.NewDecoder(gz)
	if err := dec.Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}
