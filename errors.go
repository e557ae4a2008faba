package margingame

import (
	"github.com/pkg/errors"
)

var (
	// ErrConfig is the cause of errors returned for invalid grid, count,
	// limit or coefficient parameters.
	ErrConfig = errors.New("invalid configuration")
	// ErrDomain is the cause of errors returned when a probability or cost
	// input lies outside its mathematical domain.
	ErrDomain = errors.New("argument outside valid domain")
)
