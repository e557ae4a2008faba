package margingame

import (
	"github.com/pkg/errors"

	"github.com/timpalpant/margingame/matrixgame"
)

// NewBimatrixGame returns the game in which the defender (rows) and the
// attacker (columns) receive the payoffs of the given matrices.
func NewBimatrixGame(attacker, defender *PayoffMatrix) (*matrixgame.Game, error) {
	if err := checkMatrices(attacker, defender); err != nil {
		return nil, err
	}

	return matrixgame.NewGame(defender, attacker)
}

// FindEquilibria returns the Nash equilibria of the margin game given by the
// attacker and defender payoff matrices. In each equilibrium Row is the
// defender's distribution over margins and Col is the attacker's
// distribution over (target probability, spread) columns.
func FindEquilibria(attacker, defender *PayoffMatrix, method matrixgame.Method, opts matrixgame.Options) ([]matrixgame.Equilibrium, error) {
	g, err := NewBimatrixGame(attacker, defender)
	if err != nil {
		return nil, err
	}

	return g.Equilibria(method, opts)
}

// checkMatrices verifies that attacker and defender are the two players'
// payoff matrices over the same grid.
func checkMatrices(attacker, defender *PayoffMatrix) error {
	if attacker == nil || defender == nil {
		return errors.Wrap(matrixgame.ErrShapeMismatch, "nil payoff matrix")
	}
	if attacker.Player() != Attacker || defender.Player() != Defender {
		return errors.Wrapf(ErrConfig, "got %v and %v payoff matrices, expected Attacker and Defender",
			attacker.Player(), defender.Player())
	}

	ra, ca := attacker.Dims()
	rd, cd := defender.Dims()
	if ra != rd || ca != cd {
		return errors.Wrapf(matrixgame.ErrShapeMismatch, "attacker matrix is %dx%d, defender matrix is %dx%d", ra, ca, rd, cd)
	}
	if !sameAxes(attacker, defender) {
		return errors.Wrap(matrixgame.ErrShapeMismatch, "payoff matrices were built on different grids")
	}

	return nil
}

// sameAxes reports whether two matrices of equal shape have the same labels.
func sameAxes(m1, m2 *PayoffMatrix) bool {
	for i := range m1.margins {
		if m1.margins[i] != m2.margins[i] {
			return false
		}
	}
	for j := range m1.columns {
		if m1.columns[j] != m2.columns[j] {
			return false
		}
	}
	return true
}
