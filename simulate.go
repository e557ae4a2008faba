package margingame

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/timpalpant/go-cfr/sampling"

	"github.com/timpalpant/margingame/matrixgame"
)

// Outcome is the result of a single attack.
type Outcome uint8

const (
	Quench Outcome = iota
	Detain
	Breach
)

var outcomeStr = [...]string{
	"Quench",
	"Detain",
	"Breach",
}

func (o Outcome) String() string {
	return outcomeStr[o]
}

// SimulationResult summarizes a number of simulated rounds of the game.
type SimulationResult struct {
	Rounds int
	Counts [3]int
	// Mean realized payoff of each player, after costs.
	DefenderPayoff float64
	AttackerPayoff float64
}

// Frequency returns the fraction of rounds that ended in the given outcome.
func (sr SimulationResult) Frequency(o Outcome) float64 {
	if sr.Rounds == 0 {
		return 0
	}
	return float64(sr.Counts[o]) / float64(sr.Rounds)
}

// Simulate plays nRounds of the game on grid in which both players sample
// their strategy from eq and the attack strength is drawn from the Gaussian
// of the chosen spread.
func Simulate(cfg Config, grid Grid, eq matrixgame.Equilibrium, nRounds int, rng *rand.Rand) (SimulationResult, error) {
	nRows, nCols := grid.Dims()
	if len(eq.Row) != nRows || len(eq.Col) != nCols {
		return SimulationResult{}, errors.Wrapf(matrixgame.ErrShapeMismatch,
			"equilibrium is %dx%d, grid is %dx%d", len(eq.Row), len(eq.Col), nRows, nCols)
	}
	if !matrixgame.IsMixedStrategy(eq.Row, matrixgame.DefaultTolerance) {
		return SimulationResult{}, errors.Wrapf(matrixgame.ErrInvalidStrategy, "defender strategy %v", eq.Row)
	}
	if !matrixgame.IsMixedStrategy(eq.Col, matrixgame.DefaultTolerance) {
		return SimulationResult{}, errors.Wrapf(matrixgame.ErrInvalidStrategy, "attacker strategy %v", eq.Col)
	}

	rowPolicy := toFloat32(eq.Row)
	colPolicy := toFloat32(eq.Col)
	result := SimulationResult{Rounds: nRounds}
	for i := 0; i < nRounds; i++ {
		row := sampling.SampleOne(rowPolicy, rng.Float32())
		col := sampling.SampleOne(colPolicy, rng.Float32())
		pt := grid.Point(row, col)
		outcome, err := sampleOutcome(pt, rng)
		if err != nil {
			return result, err
		}

		result.Counts[outcome]++
		dp, err := realizedPayoff(pt, outcome, cfg.DefenderNaivePayoffs, cfg.Costs, Defender)
		if err != nil {
			return result, err
		}
		ap, err := realizedPayoff(pt, outcome, cfg.AttackerNaivePayoffs, cfg.Costs, Attacker)
		if err != nil {
			return result, err
		}
		result.DefenderPayoff += dp
		result.AttackerPayoff += ap
	}

	if nRounds > 0 {
		result.DefenderPayoff /= float64(nRounds)
		result.AttackerPayoff /= float64(nRounds)
	}

	return result, nil
}

func sampleOutcome(pt GridPoint, rng *rand.Rand) (Outcome, error) {
	m, err := Threshold(pt.TargetProb, pt.Spread)
	if err != nil {
		return 0, err
	}

	strength := rng.NormFloat64() * pt.Spread
	switch {
	case strength < m-pt.Margin:
		return Quench, nil
	case strength > m+pt.Margin:
		return Breach, nil
	default:
		return Detain, nil
	}
}

func realizedPayoff(pt GridPoint, o Outcome, naive NaivePayoffs, costs CostCoefficients, player Player) (float64, error) {
	var p Outcomes
	switch o {
	case Quench:
		p.Quench = 1
	case Detain:
		p.Detain = 1
	case Breach:
		p.Breach = 1
	}

	return payoffWithCosts(p, pt.Margin, pt.TargetProb, pt.Spread, naive, costs, player)
}

func toFloat32(p []float64) []float32 {
	result := make([]float32, len(p))
	for i, v := range p {
		result[i] = float32(v)
	}
	return result
}
