package margingame

import (
	"runtime"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// PayoffMatrix holds one player's expected payoff at every grid point, along
// with the axis values that label its rows (margins) and columns (target
// probability, spread). It implements mat.Matrix and is immutable.
type PayoffMatrix struct {
	player  Player
	data    *mat.Dense
	margins Axis
	columns []Column
}

// Dims returns the number of rows and columns of the matrix.
func (m *PayoffMatrix) Dims() (int, int) {
	return m.data.Dims()
}

// At returns the payoff at row i and column j.
func (m *PayoffMatrix) At(i, j int) float64 {
	return m.data.At(i, j)
}

// T returns the transpose of the matrix.
func (m *PayoffMatrix) T() mat.Matrix {
	return mat.Transpose{Matrix: m}
}

// Player returns the player whose payoffs the matrix holds.
func (m *PayoffMatrix) Player() Player {
	return m.player
}

// Margins returns the margin of each row.
func (m *PayoffMatrix) Margins() Axis {
	return append(Axis(nil), m.margins...)
}

// Columns returns the attacker strategy of each column.
func (m *PayoffMatrix) Columns() []Column {
	return append([]Column(nil), m.columns...)
}

// RowLabels returns a display label for each row.
func (m *PayoffMatrix) RowLabels() []string {
	return m.margins.Labels()
}

// ColumnLabels returns a display label for each column.
func (m *PayoffMatrix) ColumnLabels() []string {
	result := make([]string, len(m.columns))
	for j, c := range m.columns {
		result[j] = c.String()
	}
	return result
}

// Values returns a copy of the payoffs in row-major order.
func (m *PayoffMatrix) Values() []float64 {
	return mat.DenseCopyOf(m.data).RawMatrix().Data
}

// BuildPayoffMatrices evaluates the payoff model of both players on the grid
// described by cfg. Both matrices share the same shape and axis labels.
func BuildPayoffMatrices(cfg Config) (attacker, defender *PayoffMatrix, err error) {
	grid, err := NewGridFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	nRows, nCols := grid.Dims()
	probs, err := newProbabilityCache(nRows * nCols)
	if err != nil {
		return nil, nil, err
	}

	glog.V(1).Infof("Building %dx%d payoff matrices", nRows, nCols)
	defender, err = buildPayoffMatrix(grid, cfg.DefenderNaivePayoffs, cfg.Costs, Defender, probs)
	if err != nil {
		return nil, nil, errors.Wrap(err, "defender payoff matrix")
	}

	attacker, err = buildPayoffMatrix(grid, cfg.AttackerNaivePayoffs, cfg.Costs, Attacker, probs)
	if err != nil {
		return nil, nil, errors.Wrap(err, "attacker payoff matrix")
	}

	return attacker, defender, nil
}

// BuildPayoffMatrix evaluates the payoff model of a single player on grid.
func BuildPayoffMatrix(grid Grid, naive NaivePayoffs, costs CostCoefficients, player Player) (*PayoffMatrix, error) {
	nRows, nCols := grid.Dims()
	probs, err := newProbabilityCache(nRows * nCols)
	if err != nil {
		return nil, err
	}

	return buildPayoffMatrix(grid, naive, costs, player, probs)
}

func buildPayoffMatrix(grid Grid, naive NaivePayoffs, costs CostCoefficients, player Player, probs *probabilityCache) (*PayoffMatrix, error) {
	nRows, nCols := grid.Dims()
	if nRows == 0 || nCols == 0 {
		return nil, errors.Wrap(ErrConfig, "grid axes must be non-empty")
	}

	data := make([]float64, nRows*nCols)
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < nRows; i++ {
		g.Go(func() error {
			// Each row writes only to its own slice of data.
			row := data[i*nCols : (i+1)*nCols]
			for j := range row {
				pt := grid.Point(i, j)
				p, err := probs.Get(pt)
				if err != nil {
					return errors.Wrapf(err, "grid point %+v", pt)
				}

				v, err := payoffWithCosts(p, pt.Margin, pt.TargetProb, pt.Spread, naive, costs, player)
				if err != nil {
					return errors.Wrapf(err, "grid point %+v", pt)
				}
				if !isFinite(v) {
					return errors.Wrapf(ErrDomain, "%v payoff at %+v is not finite", player, pt)
				}

				row[j] = v
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &PayoffMatrix{
		player:  player,
		data:    mat.NewDense(nRows, nCols, data),
		margins: append(Axis(nil), grid.Margins...),
		columns: grid.Columns(),
	}, nil
}
