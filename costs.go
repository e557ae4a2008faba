package margingame

import (
	"math"

	"github.com/pkg/errors"
)

// CostOfMargin is the defender's cost of a margin of the given half-width.
func CostOfMargin(margin, k float64) (float64, error) {
	if err := checkCoefficient(k); err != nil {
		return 0, err
	}
	if math.IsNaN(margin) {
		return 0, errors.Wrap(ErrDomain, "margin is NaN")
	}
	if k == 0 {
		return 0, nil
	}

	return k * math.Exp(margin), nil
}

// CostOfSuccessRate is the attacker's cost of targeting the given breach
// probability. It diverges as targetProb approaches 1.
func CostOfSuccessRate(targetProb, k float64) (float64, error) {
	if err := checkCoefficient(k); err != nil {
		return 0, err
	}
	if !(targetProb >= 0 && targetProb < 1) {
		return 0, errors.Wrapf(ErrDomain, "target probability %v must be in [0, 1)", targetProb)
	}
	if k == 0 {
		return 0, nil
	}

	return k * math.Tan(math.Pi/2*targetProb), nil
}

// CostOfSpreadReduction is the attacker's cost of narrowing its strength
// distribution to the given spread. It diverges as spread approaches 0.
func CostOfSpreadReduction(spread, k float64) (float64, error) {
	if err := checkCoefficient(k); err != nil {
		return 0, err
	}
	if !(spread > 0) {
		return 0, errors.Wrapf(ErrDomain, "spread %v must be positive", spread)
	}
	if k == 0 {
		return 0, nil
	}

	return k / spread, nil
}

func checkCoefficient(k float64) error {
	if !(k >= 0) || math.IsInf(k, 1) {
		return errors.Wrapf(ErrDomain, "cost coefficient %v must be finite and non-negative", k)
	}
	return nil
}
