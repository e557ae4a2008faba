package margingame

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// Outcomes holds the probability of each outcome of an attack.
type Outcomes struct {
	Quench float64
	Detain float64
	Breach float64
}

// Sum returns the total probability mass, which is 1 up to rounding.
func (o Outcomes) Sum() float64 {
	return o.Quench + o.Detain + o.Breach
}

// Probabilities returns the outcome probabilities of an attack whose strength
// is Gaussian with zero mean and standard deviation spread, when the defender
// sets a margin of the given half-width around the threshold.
//
// The threshold m is the point the attack exceeds with probability
// targetProb. The attack is quenched below m-margin, breaches above m+margin
// and is detained in between. All three are computed from the two CDF
// evaluations at m-margin and m+margin so they sum to one and the detain
// probability is exactly zero when margin is zero.
func Probabilities(margin, targetProb, spread float64) (Outcomes, error) {
	if !(spread > 0) || math.IsInf(spread, 1) {
		return Outcomes{}, errors.Wrapf(ErrDomain, "spread %v must be positive", spread)
	}
	if !(targetProb > 0 && targetProb < 1) {
		return Outcomes{}, errors.Wrapf(ErrDomain, "target probability %v must be in (0, 1)", targetProb)
	}
	if !(margin >= 0) || math.IsInf(margin, 1) {
		return Outcomes{}, errors.Wrapf(ErrDomain, "margin %v must be non-negative", margin)
	}

	dist := distuv.Normal{Mu: 0, Sigma: spread}
	m := dist.Quantile(1 - targetProb)
	lower := dist.CDF(m - margin)
	upper := dist.CDF(m + margin)
	return Outcomes{
		Quench: lower,
		Detain: upper - lower,
		Breach: 1 - upper,
	}, nil
}

// Threshold returns the midpoint of the detain zone for the given target
// probability and spread.
func Threshold(targetProb, spread float64) (float64, error) {
	if !(spread > 0) || math.IsInf(spread, 1) {
		return 0, errors.Wrapf(ErrDomain, "spread %v must be positive", spread)
	}
	if !(targetProb > 0 && targetProb < 1) {
		return 0, errors.Wrapf(ErrDomain, "target probability %v must be in (0, 1)", targetProb)
	}

	dist := distuv.Normal{Mu: 0, Sigma: spread}
	return dist.Quantile(1 - targetProb), nil
}
