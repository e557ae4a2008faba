package matrixgame

import (
	"github.com/pkg/errors"
)

var (
	// ErrShapeMismatch is returned when the two payoff matrices of a game do
	// not have the same non-empty shape.
	ErrShapeMismatch = errors.New("payoff matrices have mismatched shapes")
	// ErrInvalidPayoff is returned when a payoff matrix has a NaN or infinite entry.
	ErrInvalidPayoff = errors.New("payoff is not finite")
	// ErrNumericalInstability is returned when an enumeration found no
	// equilibrium but had to discard ill-conditioned linear systems, so the
	// empty result cannot be trusted.
	ErrNumericalInstability = errors.New("linear system is numerically unstable")
	// ErrInvalidStrategy is returned for a strategy that is not a probability
	// vector over the player's pure strategies.
	ErrInvalidStrategy = errors.New("invalid mixed strategy")
	// ErrUnknownMethod is returned for an unrecognized equilibrium method.
	ErrUnknownMethod = errors.New("unknown equilibrium method")
)
