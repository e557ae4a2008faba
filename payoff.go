package margingame

// ExpectedPayoff returns the expected payoff of player at a single grid point:
// the naive payoffs weighted by the outcome probabilities, less that player's
// costs. Only the defender pays for the margin; only the attacker pays for its
// target probability and spread.
func ExpectedPayoff(margin, targetProb, spread float64, naive NaivePayoffs, costs CostCoefficients, player Player) (float64, error) {
	p, err := Probabilities(margin, targetProb, spread)
	if err != nil {
		return 0, err
	}

	return payoffWithCosts(p, margin, targetProb, spread, naive, costs, player)
}

func payoffWithCosts(p Outcomes, margin, targetProb, spread float64, naive NaivePayoffs, costs CostCoefficients, player Player) (float64, error) {
	payoff := naive.Dot(p)
	if player == Defender {
		c, err := CostOfMargin(margin, costs.Margin)
		if err != nil {
			return 0, err
		}
		return payoff - c, nil
	}

	c1, err := CostOfSuccessRate(targetProb, costs.Prob)
	if err != nil {
		return 0, err
	}
	c2, err := CostOfSpreadReduction(spread, costs.Spread)
	if err != nil {
		return 0, err
	}
	return payoff - c1 - c2, nil
}
