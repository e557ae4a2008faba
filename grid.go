package margingame

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Axis is a strictly increasing sequence of values of one discretized parameter.
type Axis []float64

// NewAxis returns count values evenly spaced in the open interval (0, limit),
// i.e. the interior points of an equal subdivision into count+1 segments.
func NewAxis(count int, limit float64) (Axis, error) {
	if count < 1 {
		return nil, errors.Wrapf(ErrConfig, "axis count %d must be at least 1", count)
	}
	if !(limit > 0) || math.IsInf(limit, 1) {
		return nil, errors.Wrapf(ErrConfig, "axis limit %v must be positive", limit)
	}

	result := make(Axis, count)
	step := limit / float64(count+1)
	for i := range result {
		result[i] = step * float64(i+1)
	}

	return result, nil
}

// Labels returns a display label for each value on the axis.
func (a Axis) Labels() []string {
	result := make([]string, len(a))
	for i, v := range a {
		result[i] = formatLabel(v)
	}
	return result
}

// GridPoint is one evaluation point of the payoff matrices.
type GridPoint struct {
	Margin     float64
	TargetProb float64
	Spread     float64
}

// Column identifies the attacker strategy of one payoff matrix column.
type Column struct {
	TargetProb float64
	Spread     float64
}

func (c Column) String() string {
	return fmt.Sprintf("%s-%s", formatLabel(c.TargetProb), formatLabel(c.Spread))
}

// Grid is the Cartesian product of the margin axis (rows) with the
// target probability and spread axes (columns, target-major, spread-minor).
type Grid struct {
	Margins     Axis
	TargetProbs Axis
	Spreads     Axis
}

// NewGrid returns the grid built from the given axes.
func NewGrid(margins, targetProbs, spreads Axis) (Grid, error) {
	if len(margins) == 0 || len(targetProbs) == 0 || len(spreads) == 0 {
		return Grid{}, errors.Wrap(ErrConfig, "grid axes must be non-empty")
	}

	return Grid{Margins: margins, TargetProbs: targetProbs, Spreads: spreads}, nil
}

// NewGridFromConfig builds the axes described by cfg and returns their grid.
func NewGridFromConfig(cfg Config) (Grid, error) {
	if err := cfg.Validate(); err != nil {
		return Grid{}, err
	}

	margins, err := NewAxis(cfg.MarginCount, cfg.MarginLimit)
	if err != nil {
		return Grid{}, errors.Wrap(err, "margin axis")
	}
	targetProbs, err := NewAxis(cfg.ProbCount, 1)
	if err != nil {
		return Grid{}, errors.Wrap(err, "target probability axis")
	}
	spreads, err := NewAxis(cfg.SpreadCount, cfg.SpreadLimit)
	if err != nil {
		return Grid{}, errors.Wrap(err, "spread axis")
	}

	return NewGrid(margins, targetProbs, spreads)
}

// Dims returns the number of rows and columns of the grid.
func (g Grid) Dims() (int, int) {
	return len(g.Margins), len(g.TargetProbs) * len(g.Spreads)
}

// Column returns the attacker strategy of column j.
func (g Grid) Column(j int) Column {
	return Column{
		TargetProb: g.TargetProbs[j/len(g.Spreads)],
		Spread:     g.Spreads[j%len(g.Spreads)],
	}
}

// Columns returns the attacker strategy of every column, in column order.
func (g Grid) Columns() []Column {
	_, nCols := g.Dims()
	result := make([]Column, nCols)
	for j := range result {
		result[j] = g.Column(j)
	}
	return result
}

// Point returns the grid point at row i and column j.
func (g Grid) Point(i, j int) GridPoint {
	c := g.Column(j)
	return GridPoint{
		Margin:     g.Margins[i],
		TargetProb: c.TargetProb,
		Spread:     c.Spread,
	}
}

// Points returns the full rows x columns table of grid points.
func (g Grid) Points() [][]GridPoint {
	nRows, nCols := g.Dims()
	result := make([][]GridPoint, nRows)
	for i := range result {
		result[i] = make([]GridPoint, nCols)
		for j := range result[i] {
			result[i][j] = g.Point(i, j)
		}
	}
	return result
}

func formatLabel(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
